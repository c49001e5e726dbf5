package api

import (
	"context"

	"github.com/paujie/brocode/internal/model"
	"github.com/paujie/brocode/internal/store"
)

// Notifications returns the notification feed, newest first. Pushes
// prepend, so store order is already the read order.
func (a *API) Notifications(ctx context.Context) ([]*model.Notification, error) {
	if err := a.wait(ctx); err != nil {
		return nil, err
	}
	var notifs []*model.Notification
	a.store.View(func(d *store.Data) {
		for _, n := range d.Notifications {
			notifs = append(notifs, n.Clone())
		}
	})
	return notifs, nil
}

// PushNotification prepends a new unread notification to the feed. This
// is the injection point the notification simulator uses to emulate
// server push.
func (a *API) PushNotification(ctx context.Context, title, message string) (*model.Notification, error) {
	if err := a.wait(ctx); err != nil {
		return nil, err
	}
	var notif *model.Notification
	a.store.Update(func(d *store.Data) {
		notif = &model.Notification{
			ID:        a.ids.NewID("n"),
			Title:     title,
			Message:   message,
			Timestamp: a.clock.Now(),
		}
		d.Notifications = append([]*model.Notification{notif}, d.Notifications...)
		notif = notif.Clone()
	})
	return notif, nil
}

// MarkNotificationRead flips a single notification to read.
func (a *API) MarkNotificationRead(ctx context.Context, id string) error {
	if err := a.wait(ctx); err != nil {
		return err
	}
	var found bool
	a.store.Update(func(d *store.Data) {
		if n := d.FindNotification(id); n != nil {
			n.Read = true
			found = true
		}
	})
	if !found {
		return NewNotFoundError("notification", id)
	}
	return nil
}

// MarkAllNotificationsRead flips every notification to read.
func (a *API) MarkAllNotificationsRead(ctx context.Context) error {
	if err := a.wait(ctx); err != nil {
		return err
	}
	a.store.Update(func(d *store.Data) {
		for _, n := range d.Notifications {
			n.Read = true
		}
	})
	return nil
}
