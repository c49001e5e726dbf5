// Package session resolves the persisted session token to a user
// identity and owns the login/logout lifecycle.
//
// The controller is a three-state machine:
//
//	RESOLVING → AUTHENTICATED   (valid persisted token, or Login)
//	RESOLVING → ANONYMOUS       (no token, or stale token cleared)
//
// Downstream consumers must not act on protected data while the state is
// RESOLVING; they gate on Resolve completing.
package session

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/paujie/brocode/internal/api"
	"github.com/paujie/brocode/internal/model"
)

// State is the controller's resolution state.
type State string

const (
	StateResolving     State = "RESOLVING"
	StateAuthenticated State = "AUTHENTICATED"
	StateAnonymous     State = "ANONYMOUS"
)

// Controller caches the authenticated identity and keeps it in sync with
// the persisted token.
type Controller struct {
	api    *api.API
	tokens TokenStore
	log    *slog.Logger

	mu       sync.Mutex
	state    State
	identity api.Identity
	profile  *model.UserProfile
}

// New creates a controller in RESOLVING state. Call Resolve before
// reading State or Profile.
func New(a *api.API, tokens TokenStore, log *slog.Logger) *Controller {
	if log == nil {
		log = slog.Default()
	}
	return &Controller{api: a, tokens: tokens, log: log, state: StateResolving}
}

// Resolve reads the persisted token and settles the state machine. A
// missing token settles ANONYMOUS. A token that no longer resolves to a
// profile is stale: it is cleared and the state settles ANONYMOUS rather
// than erroring, so a deleted account degrades gracefully.
func (c *Controller) Resolve(ctx context.Context) error {
	token, err := c.tokens.Load()
	if err != nil {
		return fmt.Errorf("resolve session: %w", err)
	}
	if token == "" {
		c.settle(StateAnonymous, api.Identity{}, nil)
		return nil
	}

	profile, err := c.api.Profile(ctx, token)
	if err != nil {
		return fmt.Errorf("resolve session: %w", err)
	}
	if profile == nil {
		c.log.Warn("stale session token cleared", "token", token)
		if err := c.tokens.Clear(); err != nil {
			return fmt.Errorf("clear stale token: %w", err)
		}
		c.settle(StateAnonymous, api.Identity{}, nil)
		return nil
	}

	c.settle(StateAuthenticated, api.Identity{UserID: profile.ID, Email: profile.Email}, profile)
	c.log.Debug("session resolved", "user", profile.ID)
	return nil
}

// Login authenticates and persists the new token. On failure the state
// remains ANONYMOUS and the service error is returned unchanged.
func (c *Controller) Login(ctx context.Context, identifier, password string) (*model.UserProfile, error) {
	identity, profile, err := c.api.Login(ctx, identifier, password)
	if err != nil {
		c.settle(StateAnonymous, api.Identity{}, nil)
		return nil, err
	}
	if err := c.tokens.Save(identity.UserID); err != nil {
		return nil, fmt.Errorf("persist session token: %w", err)
	}
	c.settle(StateAuthenticated, identity, profile)
	c.log.Info("logged in", "user", identity.UserID)
	return profile.Clone(), nil
}

// Logout clears the persisted token unconditionally and settles
// ANONYMOUS, even when no one was logged in.
func (c *Controller) Logout() error {
	if err := c.tokens.Clear(); err != nil {
		return fmt.Errorf("clear session token: %w", err)
	}
	c.settle(StateAnonymous, api.Identity{}, nil)
	c.log.Info("logged out")
	return nil
}

// UpdateProfile edits the authenticated user's profile and refreshes the
// cached identity.
func (c *Controller) UpdateProfile(ctx context.Context, upd api.ProfileUpdate) (*model.UserProfile, error) {
	c.mu.Lock()
	if c.state != StateAuthenticated {
		c.mu.Unlock()
		return nil, fmt.Errorf("no user is logged in")
	}
	userID := c.identity.UserID
	c.mu.Unlock()

	profile, err := c.api.UpdateProfile(ctx, userID, upd)
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	c.profile = profile
	c.identity.Email = profile.Email
	c.mu.Unlock()
	return profile.Clone(), nil
}

// State returns the current resolution state.
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Identity returns the session identity; zero value when not
// authenticated.
func (c *Controller) Identity() api.Identity {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.identity
}

// Profile returns a copy of the cached profile, or nil when not
// authenticated.
func (c *Controller) Profile() *model.UserProfile {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.profile.Clone()
}

func (c *Controller) settle(state State, identity api.Identity, profile *model.UserProfile) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.state = state
	c.identity = identity
	c.profile = profile
}
