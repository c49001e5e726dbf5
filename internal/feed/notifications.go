package feed

import (
	"context"
	"log/slog"
	"sync"

	"github.com/paujie/brocode/internal/api"
	"github.com/paujie/brocode/internal/model"
)

// NotificationFeed is the reactive view of the notification stream:
// newest-first list plus an unread count derived from the read flags.
type NotificationFeed struct {
	api *api.API
	log *slog.Logger

	mu            sync.Mutex
	notifications []*model.Notification
}

// NewNotificationFeed creates an empty feed. Call Load to populate it.
func NewNotificationFeed(a *api.API, log *slog.Logger) *NotificationFeed {
	if log == nil {
		log = slog.Default()
	}
	return &NotificationFeed{api: a, log: log}
}

// Load fetches the current feed, newest first.
func (f *NotificationFeed) Load(ctx context.Context) error {
	notifs, err := f.api.Notifications(ctx)
	if err != nil {
		return err
	}
	f.mu.Lock()
	f.notifications = notifs
	f.mu.Unlock()
	return nil
}

// HandleIncoming reacts to a simulator push by re-reading the full feed.
func (f *NotificationFeed) HandleIncoming(ctx context.Context) error {
	return f.Load(ctx)
}

// Notifications returns a copy of the current view, newest first.
func (f *NotificationFeed) Notifications() []*model.Notification {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]*model.Notification, len(f.notifications))
	for i, n := range f.notifications {
		out[i] = n.Clone()
	}
	return out
}

// UnreadCount is the number of notifications still unread.
func (f *NotificationFeed) UnreadCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	count := 0
	for _, n := range f.notifications {
		if !n.Read {
			count++
		}
	}
	return count
}

// MarkRead flips one notification to read, optimistically: local flip
// first, verbatim restore on service failure.
func (f *NotificationFeed) MarkRead(ctx context.Context, id string) error {
	f.mu.Lock()
	snapshot := f.notifications
	updated := make([]*model.Notification, len(f.notifications))
	for i, n := range f.notifications {
		if n.ID == id {
			c := n.Clone()
			c.Read = true
			updated[i] = c
		} else {
			updated[i] = n
		}
	}
	f.notifications = updated
	f.mu.Unlock()

	if err := f.api.MarkNotificationRead(ctx, id); err != nil {
		f.log.Error("mark read failed, rolling back", "notification", id, "error", err)
		f.mu.Lock()
		f.notifications = snapshot
		f.mu.Unlock()
		return err
	}
	return nil
}

// MarkAllRead flips every notification to read with the same optimistic
// pattern.
func (f *NotificationFeed) MarkAllRead(ctx context.Context) error {
	f.mu.Lock()
	snapshot := f.notifications
	updated := make([]*model.Notification, len(f.notifications))
	for i, n := range f.notifications {
		c := n.Clone()
		c.Read = true
		updated[i] = c
	}
	f.notifications = updated
	f.mu.Unlock()

	if err := f.api.MarkAllNotificationsRead(ctx); err != nil {
		f.log.Error("mark all read failed, rolling back", "error", err)
		f.mu.Lock()
		f.notifications = snapshot
		f.mu.Unlock()
		return err
	}
	return nil
}
