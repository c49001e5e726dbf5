// Package api is the mock service layer: one coarse-grained asynchronous
// operation per use case, executed against the in-memory entity store.
//
// Every operation is modeled as if remote. It accepts a context, waits a
// simulated network latency first, and only then reads or mutates the
// store — inside a single critical section, so concurrent invocations
// never observe a half-applied mutation. Reads return deep copies.
//
// Callers must treat every operation as fallible. Failures carry a
// structured *Error with a machine-readable code; see errors.go.
package api

import (
	"context"
	"log/slog"
	"time"

	"github.com/paujie/brocode/internal/clock"
	"github.com/paujie/brocode/internal/ids"
	"github.com/paujie/brocode/internal/store"
)

// API exposes the mock backend operations over a store handle.
//
// There is no ambient singleton: construct one API per process and pass
// it by handle to the session controller, simulators and feeds.
type API struct {
	store   *store.Store
	clock   clock.Clock
	ids     ids.Generator
	latency time.Duration
	log     *slog.Logger
}

// Option configures an API.
type Option func(*API)

// WithClock overrides the wall clock. Tests inject a manual clock so
// date comparisons and timestamps are deterministic.
func WithClock(c clock.Clock) Option {
	return func(a *API) { a.clock = c }
}

// WithIDs overrides the id generator. Tests inject a fixed sequence.
func WithIDs(g ids.Generator) Option {
	return func(a *API) { a.ids = g }
}

// WithLatency sets the simulated network delay applied before every
// operation. Zero (the default) disables the delay; the CLI sets it from
// config to make the mock feel remote.
func WithLatency(d time.Duration) Option {
	return func(a *API) { a.latency = d }
}

// WithLogger overrides the logger.
func WithLogger(l *slog.Logger) Option {
	return func(a *API) { a.log = l }
}

// New creates an API over the given store.
func New(st *store.Store, opts ...Option) *API {
	a := &API{
		store: st,
		clock: clock.System{},
		ids:   ids.UUIDv7Generator{},
		log:   slog.Default(),
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Now returns the service's current instant.
func (a *API) Now() time.Time { return a.clock.Now() }

// wait simulates network latency. Cancelling the context during the wait
// aborts the operation before any store access; once wait returns nil the
// operation runs to completion without further cancellation points,
// matching the fire-and-forget contract.
func (a *API) wait(ctx context.Context) error {
	if a.latency <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(a.latency)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
