package ratelimit

import (
	"context"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func waitDone(t *testing.T, done <-chan error) error {
	t.Helper()
	select {
	case err := <-done:
		return err
	case <-time.After(5 * time.Second):
		t.Fatal("Wait did not return")
		return nil
	}
}

func TestWait_FirstCallImmediate(t *testing.T) {
	fake := clockwork.NewFakeClock()
	l := New(time.Second, fake)

	// No fake-clock advance needed: the first call must not block.
	require.NoError(t, l.Wait(context.Background(), "geocode"))
}

func TestWait_SecondCallBlocksForRemainder(t *testing.T) {
	fake := clockwork.NewFakeClock()
	l := New(time.Second, fake)

	require.NoError(t, l.Wait(context.Background(), "geocode"))
	fake.Advance(400 * time.Millisecond)

	done := make(chan error, 1)
	go func() { done <- l.Wait(context.Background(), "geocode") }()

	// The second call must be sleeping for the remaining 600ms.
	fake.BlockUntil(1)
	fake.Advance(600 * time.Millisecond)

	require.NoError(t, waitDone(t, done))
}

func TestWait_ElapsedIntervalDoesNotBlock(t *testing.T) {
	fake := clockwork.NewFakeClock()
	l := New(time.Second, fake)

	require.NoError(t, l.Wait(context.Background(), "geocode"))
	fake.Advance(2 * time.Second)

	// Interval already elapsed: must return without any sleeper.
	require.NoError(t, l.Wait(context.Background(), "geocode"))
}

func TestWait_ChannelsAreIndependent(t *testing.T) {
	fake := clockwork.NewFakeClock()
	l := New(time.Second, fake)

	require.NoError(t, l.Wait(context.Background(), "geocode"))

	// A fresh channel has no last-call record, so this must not block even
	// though "geocode" was just used.
	require.NoError(t, l.Wait(context.Background(), "route"))
}

func TestWait_ContextCancellation(t *testing.T) {
	fake := clockwork.NewFakeClock()
	l := New(time.Second, fake)

	require.NoError(t, l.Wait(context.Background(), "geocode"))

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- l.Wait(ctx, "geocode") }()

	fake.BlockUntil(1)
	cancel()

	err := waitDone(t, done)
	assert.ErrorIs(t, err, context.Canceled)
}
