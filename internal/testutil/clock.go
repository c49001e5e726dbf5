// Package testutil provides deterministic test doubles: a manually
// advanced clock and a seeded randomness helper.
package testutil

import (
	"sync"
	"time"

	"github.com/paujie/brocode/internal/clock"
)

// ManualClock is a clock.Clock whose time only moves when a test calls
// Advance or Set. Tickers created from it fire during Advance, once per
// elapsed interval.
//
// Thread-safety: all methods are safe for concurrent use via internal
// mutex. Tick delivery is non-blocking with a buffer of one, matching
// time.Ticker's coalescing behavior.
type ManualClock struct {
	mu      sync.Mutex
	now     time.Time
	tickers []*manualTicker
}

// NewManualClock creates a manual clock starting at the given instant.
func NewManualClock(start time.Time) *ManualClock {
	return &ManualClock{now: start}
}

// Now returns the clock's current instant.
func (c *ManualClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

// Set jumps the clock to t without firing any tickers. Used to model
// simulated time passing for date comparisons (a spot's date elapsing)
// where no timer should observe the jump.
func (c *ManualClock) Set(t time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = t
	for _, mt := range c.tickers {
		mt.next = t.Add(mt.interval)
	}
}

// Advance moves the clock forward by d, firing each ticker once per
// elapsed interval, in deadline order across tickers.
func (c *ManualClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	target := c.now.Add(d)
	for {
		var earliest *manualTicker
		for _, mt := range c.tickers {
			if mt.stopped || mt.next.After(target) {
				continue
			}
			if earliest == nil || mt.next.Before(earliest.next) {
				earliest = mt
			}
		}
		if earliest == nil {
			break
		}
		c.now = earliest.next
		earliest.next = earliest.next.Add(earliest.interval)
		earliest.fire(c.now)
	}
	c.now = target
}

// NewTicker returns a ticker that fires during Advance.
func (c *ManualClock) NewTicker(d time.Duration) clock.Ticker {
	c.mu.Lock()
	defer c.mu.Unlock()
	mt := &manualTicker{
		interval: d,
		next:     c.now.Add(d),
		ch:       make(chan time.Time, 1),
	}
	c.tickers = append(c.tickers, mt)
	return mt
}

type manualTicker struct {
	interval time.Duration
	next     time.Time
	ch       chan time.Time
	stopped  bool
}

func (t *manualTicker) C() <-chan time.Time { return t.ch }

func (t *manualTicker) Stop() { t.stopped = true }

// fire delivers a tick without blocking; an unconsumed tick is dropped,
// as with time.Ticker.
func (t *manualTicker) fire(now time.Time) {
	select {
	case t.ch <- now:
	default:
	}
}
