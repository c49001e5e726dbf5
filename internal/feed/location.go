package feed

import (
	"context"
	"log/slog"
	"sync"

	"github.com/paujie/brocode/internal/api"
	"github.com/paujie/brocode/internal/model"
)

// PositionSource is a watch-style position provider — the platform
// geolocation API in the original client. Watch invokes fn for every fix
// until the returned cancel function runs. Implementations must make
// cancel idempotent.
type PositionSource interface {
	Watch(fn func(model.Coordinates)) (cancel func(), err error)
}

// LocationPublisher forwards position fixes from a PositionSource to the
// service layer while sharing is on. The watch is explicitly cancelled on
// toggle-off and on teardown; no callback outlives Stop.
type LocationPublisher struct {
	api    *api.API
	userID string
	log    *slog.Logger

	mu     sync.Mutex
	cancel func()
}

// NewLocationPublisher creates a publisher for the given user.
func NewLocationPublisher(a *api.API, userID string, log *slog.Logger) *LocationPublisher {
	if log == nil {
		log = slog.Default()
	}
	return &LocationPublisher{api: a, userID: userID, log: log}
}

// Start begins watching and publishing. Starting an active publisher is
// a no-op.
func (p *LocationPublisher) Start(ctx context.Context, src PositionSource) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.cancel != nil {
		return nil
	}
	cancel, err := src.Watch(func(coords model.Coordinates) {
		if err := p.api.UpdateUserLocation(ctx, p.userID, coords); err != nil {
			p.log.Error("publish location", "error", err)
		}
	})
	if err != nil {
		return err
	}
	p.cancel = cancel
	p.log.Debug("location sharing started", "user", p.userID)
	return nil
}

// Stop cancels the watch. Safe to call repeatedly and on an inactive
// publisher.
func (p *LocationPublisher) Stop() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.cancel == nil {
		return
	}
	p.cancel()
	p.cancel = nil
	p.log.Debug("location sharing stopped", "user", p.userID)
}

// Active reports whether a watch is running.
func (p *LocationPublisher) Active() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.cancel != nil
}
