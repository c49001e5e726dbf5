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

// NotificationTemplate is one entry in the simulated push pool.
type NotificationTemplate struct {
	Title   string
	Message string
}

// NotificationTemplates is the fixed pool the notification simulator
// draws from.
var NotificationTemplates = []NotificationTemplate{
	{Title: "New Drink Suggestion", Message: `Chad suggested "Whiskey Sour". Vote now!`},
	{Title: "Payment Reminder", Message: "Don't forget to pay for the upcoming spot."},
	{Title: "New Invitation", Message: "Admin Bro invited Brenda to the spot."},
	{Title: "Spot Feedback Added", Message: `Admin Bro left feedback for "The Old Cellar".`},
}

// DefaultNotificationInterval is the production cadence for simulated
// notifications. Deliberately out of phase with the chat cadence so the
// two streams interleave.
const DefaultNotificationInterval = 12 * time.Second

// Notifications periodically prepends a notification built from the
// template pool, emulating a real-time feed.
type Notifications struct {
	api      *api.API
	clock    clock.Clock
	rng      *rand.Rand
	interval time.Duration
	log      *slog.Logger
	events   chan *model.Notification
}

// NewNotifications creates a notification simulator.
func NewNotifications(a *api.API, clk clock.Clock, rng *rand.Rand, interval time.Duration, log *slog.Logger) *Notifications {
	if log == nil {
		log = slog.Default()
	}
	if interval <= 0 {
		interval = DefaultNotificationInterval
	}
	return &Notifications{
		api:      a,
		clock:    clk,
		rng:      rng,
		interval: interval,
		log:      log,
		events:   make(chan *model.Notification, 16),
	}
}

// Events delivers each pushed notification. Closed when Run returns.
func (s *Notifications) Events() <-chan *model.Notification { return s.events }

// Run emits until ctx is cancelled.
func (s *Notifications) Run(ctx context.Context) {
	ticker := s.clock.NewTicker(s.interval)
	defer ticker.Stop()
	defer close(s.events)

	s.log.Debug("notification simulator started", "interval", s.interval)
	for {
		select {
		case <-ctx.Done():
			s.log.Debug("notification simulator stopped")
			return
		case <-ticker.C():
			s.emit(ctx)
		}
	}
}

func (s *Notifications) emit(ctx context.Context) {
	tmpl := NotificationTemplates[s.rng.Intn(len(NotificationTemplates))]
	notif, err := s.api.PushNotification(ctx, tmpl.Title, tmpl.Message)
	if err != nil {
		s.log.Error("notification simulator: push", "error", err)
		return
	}
	select {
	case s.events <- notif:
	case <-ctx.Done():
	}
}
