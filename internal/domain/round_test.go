package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKmRound_OneDecimal(t *testing.T) {
	assert.Equal(t, 12.3, KmRound(12.34, 1))
	assert.Equal(t, 12.5, KmRound(12.45001, 1))
	assert.Equal(t, 0.0, KmRound(0, 1))
}

func TestKmRound_HalfBoundary(t *testing.T) {
	// 12.35 is not exactly representable in binary floating point, so the
	// half-up boundary may land on either side. Both outcomes are accepted.
	got := KmRound(12.35, 1)
	assert.Contains(t, []float64{12.3, 12.4}, got)
}

func TestKmRound_ZeroDecimals(t *testing.T) {
	assert.Equal(t, 3.0, KmRound(2.5, 0))
	assert.Equal(t, 2.0, KmRound(2.4, 0))
}

func TestKmRound_MetersToKm(t *testing.T) {
	// 12345 m reported by the routing service becomes 12.3 km on the sheet.
	assert.Equal(t, 12.3, KmRound(12345.0/1000.0, 1))
}
