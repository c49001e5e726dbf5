package api

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/paujie/brocode/internal/ids"
	"github.com/paujie/brocode/internal/store"
	"github.com/paujie/brocode/internal/testutil"
)

var testRef = time.Date(2030, 6, 1, 12, 0, 0, 0, time.UTC)

// newTestAPI builds an API over a freshly seeded store with a manual
// clock, sequential ids and no latency.
func newTestAPI(t *testing.T) (*API, *testutil.ManualClock, *store.Store) {
	t.Helper()
	st := store.New()
	store.Seed(st, testRef)
	clk := testutil.NewManualClock(testRef)
	a := New(st,
		WithClock(clk),
		WithIDs(ids.NewSeqGenerator("t-")),
		WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))),
	)
	return a, clk, st
}

func TestWaitZeroLatencyPassesThrough(t *testing.T) {
	a, _, _ := newTestAPI(t)
	require.NoError(t, a.wait(context.Background()))
}

func TestWaitHonorsCancellation(t *testing.T) {
	a, _, st := newTestAPI(t)
	a.latency = time.Hour

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	// Cancellation during the simulated delay aborts before any
	// mutation reaches the store.
	_, err := a.InviteUserToSpot(ctx, "spot-2", "guest1")
	require.ErrorIs(t, err, context.Canceled)

	st.View(func(d *store.Data) {
		assert.Nil(t, d.InvitationFor("spot-2", "guest1"))
	})
}

func TestWaitCancelledContextWithZeroLatency(t *testing.T) {
	a, _, _ := newTestAPI(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	require.ErrorIs(t, a.wait(ctx), context.Canceled)
}

func TestNowUsesInjectedClock(t *testing.T) {
	a, clk, _ := newTestAPI(t)
	assert.Equal(t, testRef, a.Now())
	clk.Advance(time.Hour)
	assert.Equal(t, testRef.Add(time.Hour), a.Now())
}
