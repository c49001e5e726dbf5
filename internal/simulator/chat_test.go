package simulator

import (
	"context"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/paujie/brocode/internal/api"
	"github.com/paujie/brocode/internal/ids"
	"github.com/paujie/brocode/internal/model"
	"github.com/paujie/brocode/internal/store"
	"github.com/paujie/brocode/internal/testutil"
)

var ref = time.Date(2030, 6, 1, 12, 0, 0, 0, time.UTC)

func newTestAPI(t *testing.T, clk *testutil.ManualClock) (*api.API, *store.Store) {
	t.Helper()
	st := store.New()
	store.Seed(st, ref)
	a := api.New(st,
		api.WithClock(clk),
		api.WithIDs(ids.NewSeqGenerator("t-")),
		api.WithLogger(discard()),
	)
	return a, st
}

func discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// receive waits for one event or fails the test.
func receive[T any](t *testing.T, ch <-chan T) T {
	t.Helper()
	select {
	case v, ok := <-ch:
		require.True(t, ok, "events channel closed early")
		return v
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for simulator event")
		panic("unreachable")
	}
}

func TestChatSimulatorEmitsOnTick(t *testing.T) {
	clk := testutil.NewManualClock(ref)
	a, _ := newTestAPI(t, clk)
	sim := NewChat(a, clk, testutil.Rand(1), "brocoder1", 10*time.Second, discard())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		sim.Run(ctx)
	}()

	for i := 0; i < 3; i++ {
		clk.Advance(10 * time.Second)
		msg := receive(t, sim.Events())

		// The viewer never talks to themselves and guests never chat.
		assert.NotEqual(t, "brocoder1", msg.UserID)
		assert.NotEqual(t, "guest1", msg.UserID)
		assert.Contains(t, ChatPhrases, msg.Text)
		assert.NotEmpty(t, msg.Author.Name)
	}

	cancel()
	wg.Wait()
}

func TestChatSimulatorWritesThroughServiceLayer(t *testing.T) {
	clk := testutil.NewManualClock(ref)
	a, st := newTestAPI(t, clk)
	sim := NewChat(a, clk, testutil.Rand(7), "brocoder1", 10*time.Second, discard())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go sim.Run(ctx)

	clk.Advance(10 * time.Second)
	msg := receive(t, sim.Events())

	// The injected message is canonical store state, not a side channel.
	st.View(func(d *store.Data) {
		found := d.FindMessage(msg.ID)
		require.NotNil(t, found)
		assert.Equal(t, msg.Text, found.Text)
	})
}

func TestChatSimulatorStopsOnCancel(t *testing.T) {
	clk := testutil.NewManualClock(ref)
	a, st := newTestAPI(t, clk)
	sim := NewChat(a, clk, testutil.Rand(3), "brocoder1", 10*time.Second, discard())

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		sim.Run(ctx)
		close(done)
	}()

	cancel()
	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("simulator did not stop")
	}

	// The events channel is closed and no further ticks inject anything.
	var before int
	st.View(func(d *store.Data) { before = len(d.Messages) })
	clk.Advance(time.Minute)
	st.View(func(d *store.Data) { assert.Equal(t, before, len(d.Messages)) })

	_, ok := <-sim.Events()
	assert.False(t, ok)
}

func TestChatSimulatorPicksFreshParticipants(t *testing.T) {
	clk := testutil.NewManualClock(ref)
	a, st := newTestAPI(t, clk)

	// Strip the roster down to one counterpart so the pick is forced.
	st.Update(func(d *store.Data) {
		delete(d.Users, "brocoder3")
	})

	sim := NewChat(a, clk, testutil.Rand(5), "brocoder1", 10*time.Second, discard())
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go sim.Run(ctx)

	clk.Advance(10 * time.Second)
	msg := receive(t, sim.Events())
	assert.Equal(t, "brocoder2", msg.UserID)
}

func TestChatSimulatorDefaultInterval(t *testing.T) {
	clk := testutil.NewManualClock(ref)
	a, _ := newTestAPI(t, clk)
	sim := NewChat(a, clk, testutil.Rand(1), "brocoder1", 0, discard())
	assert.Equal(t, DefaultChatInterval, sim.interval)
}

func TestChatSimulatorNoParticipants(t *testing.T) {
	clk := testutil.NewManualClock(ref)
	a, st := newTestAPI(t, clk)
	st.Update(func(d *store.Data) {
		delete(d.Users, "brocoder2")
		delete(d.Users, "brocoder3")
	})

	sim := NewChat(a, clk, testutil.Rand(1), "brocoder1", 10*time.Second, discard())
	ctx, cancel := context.WithCancel(context.Background())
	go sim.Run(ctx)

	var before int
	st.View(func(d *store.Data) { before = len(d.Messages) })
	clk.Advance(10 * time.Second)

	// Nothing to emit; the tick is a no-op rather than an error.
	time.Sleep(50 * time.Millisecond)
	st.View(func(d *store.Data) { assert.Equal(t, before, len(d.Messages)) })

	cancel()
	_, ok := <-sim.Events()
	assert.False(t, ok)
}

func TestChatSimulatorMessageOrderPreserved(t *testing.T) {
	clk := testutil.NewManualClock(ref)
	a, _ := newTestAPI(t, clk)
	sim := NewChat(a, clk, testutil.Rand(9), "brocoder1", 10*time.Second, discard())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go sim.Run(ctx)

	var injected []*model.ChatMessage
	for i := 0; i < 2; i++ {
		clk.Advance(10 * time.Second)
		injected = append(injected, receive(t, sim.Events()))
	}

	msgs, err := a.Messages(ctx)
	require.NoError(t, err)
	n := len(msgs)
	assert.Equal(t, injected[0].ID, msgs[n-2].ID)
	assert.Equal(t, injected[1].ID, msgs[n-1].ID)
}
