// Package simulator emulates server push. Each simulator is a periodic
// background task that injects entities into the store through the
// service layer, exactly as a real push channel would make them appear.
//
// Simulators own no hidden timers: Run blocks until the context is
// cancelled, stops its ticker, closes its events channel and returns.
// Callers start a simulator only after its prerequisite data has loaded
// (the chat feed's initial message list, an authenticated viewer).
//
// Determinism is injected, not assumed: both simulators take a clock and
// a *rand.Rand, so tests drive them with a manual clock and a fixed seed.
package simulator

import (
	"context"
	"log/slog"
	"math/rand"
	"time"

	"github.com/paujie/brocode/internal/api"
	"github.com/paujie/brocode/internal/clock"
	"github.com/paujie/brocode/internal/model"
)

// ChatPhrases is the fixed pool the chat simulator draws from.
var ChatPhrases = []string{
	"lol that's hilarious 😂",
	"I agree!",
	"No way, really?",
	"That's a great idea.",
	"I'm not so sure about that.",
	"🔥🔥🔥",
	"See you there!",
}

// DefaultChatInterval is the production cadence for simulated chat.
const DefaultChatInterval = 10 * time.Second

// Chat periodically appends a message from a random participant other
// than the viewer (guests never chat). Each injected message is also
// published on Events so the chat feed can react without polling.
type Chat struct {
	api      *api.API
	clock    clock.Clock
	rng      *rand.Rand
	viewerID string
	interval time.Duration
	log      *slog.Logger
	events   chan *model.ChatMessage
}

// NewChat creates a chat simulator for the given viewer.
func NewChat(a *api.API, clk clock.Clock, rng *rand.Rand, viewerID string, interval time.Duration, log *slog.Logger) *Chat {
	if log == nil {
		log = slog.Default()
	}
	if interval <= 0 {
		interval = DefaultChatInterval
	}
	return &Chat{
		api:      a,
		clock:    clk,
		rng:      rng,
		viewerID: viewerID,
		interval: interval,
		log:      log,
		events:   make(chan *model.ChatMessage, 16),
	}
}

// Events delivers each injected message. The channel is closed when Run
// returns.
func (s *Chat) Events() <-chan *model.ChatMessage { return s.events }

// Run emits until ctx is cancelled. Must be called from exactly one
// goroutine.
func (s *Chat) Run(ctx context.Context) {
	ticker := s.clock.NewTicker(s.interval)
	defer ticker.Stop()
	defer close(s.events)

	s.log.Debug("chat simulator started", "interval", s.interval)
	for {
		select {
		case <-ctx.Done():
			s.log.Debug("chat simulator stopped")
			return
		case <-ticker.C():
			s.emit(ctx)
		}
	}
}

// emit injects one message. The participant list is read fresh from the
// store on every tick — a user created since the last tick can be picked
// immediately.
func (s *Chat) emit(ctx context.Context) {
	participants, err := s.api.ChatParticipants(ctx, s.viewerID)
	if err != nil {
		s.log.Error("chat simulator: list participants", "error", err)
		return
	}
	if len(participants) == 0 {
		return
	}

	sender := participants[s.rng.Intn(len(participants))]
	phrase := ChatPhrases[s.rng.Intn(len(ChatPhrases))]

	msg, err := s.api.SendMessage(ctx, sender.ID, phrase, nil)
	if err != nil {
		s.log.Error("chat simulator: send", "error", err)
		return
	}

	select {
	case s.events <- msg:
	case <-ctx.Done():
	}
}
