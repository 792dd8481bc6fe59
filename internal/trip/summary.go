package trip

import "github.com/banciumihaicatalin-design/FoaieParcurs/internal/domain"

// LegOption adjusts how one segment counts toward the sheet total.
// The zero value is a single one-way leg.
type LegOption struct {
	RoundTrip bool
	Repeats   int
}

// EffectiveKm is the distance a segment contributes to the total: the
// one-way distance, doubled for a round trip and multiplied by repeats.
func EffectiveKm(seg domain.Segment, opt LegOption) float64 {
	repeats := opt.Repeats
	if repeats < 1 {
		repeats = 1
	}
	km := seg.KmOneWay
	if opt.RoundTrip {
		km *= 2
	}
	return km * float64(repeats)
}

// Total sums the effective distances of all segments. opts is matched to
// segments by index and may be shorter or nil; missing entries default to a
// single one-way leg.
func Total(segments []domain.Segment, opts []LegOption) float64 {
	var total float64
	for i, seg := range segments {
		var opt LegOption
		if i < len(opts) {
			opt = opts[i]
		}
		total += EffectiveKm(seg, opt)
	}
	return total
}
