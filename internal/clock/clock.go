// Package clock abstracts wall time and periodic tickers so that
// components driven by timers (service latency, push simulators, spot
// date comparisons) can be tested against a manually advanced clock.
package clock

import "time"

// Clock provides the current instant and ticker construction.
//
// Production code uses System. Tests use testutil.ManualClock, which is
// advanced explicitly so timer-driven behavior is deterministic.
type Clock interface {
	Now() time.Time
	NewTicker(d time.Duration) Ticker
}

// Ticker delivers ticks on C until stopped.
type Ticker interface {
	C() <-chan time.Time
	Stop()
}

// System is the real-time clock backed by the time package.
type System struct{}

// Now returns the current wall-clock time.
func (System) Now() time.Time { return time.Now() }

// NewTicker returns a ticker backed by time.Ticker.
func (System) NewTicker(d time.Duration) Ticker {
	return systemTicker{time.NewTicker(d)}
}

type systemTicker struct {
	t *time.Ticker
}

func (s systemTicker) C() <-chan time.Time { return s.t.C }
func (s systemTicker) Stop()               { s.t.Stop() }
