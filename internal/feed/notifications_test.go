package feed

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/paujie/brocode/internal/api"
	"github.com/paujie/brocode/internal/store"
)

func loadedNotificationFeed(t *testing.T) (*NotificationFeed, *api.API, *store.Store) {
	t.Helper()
	a, st := newTestAPI(t)
	f := NewNotificationFeed(a, discard())
	require.NoError(t, f.Load(context.Background()))
	return f, a, st
}

func TestNotificationFeedLoad(t *testing.T) {
	f, _, _ := loadedNotificationFeed(t)

	notifs := f.Notifications()
	require.Len(t, notifs, 5)
	assert.Equal(t, "n-5", notifs[0].ID)
	// Seed: three unread, two read.
	assert.Equal(t, 3, f.UnreadCount())
}

func TestNotificationFeedHandleIncoming(t *testing.T) {
	f, a, _ := loadedNotificationFeed(t)
	ctx := context.Background()

	pushed, err := a.PushNotification(ctx, "Reminder", "Pay up.")
	require.NoError(t, err)
	require.NoError(t, f.HandleIncoming(ctx))

	notifs := f.Notifications()
	assert.Equal(t, pushed.ID, notifs[0].ID)
	assert.Equal(t, 4, f.UnreadCount())
}

func TestNotificationFeedMarkRead(t *testing.T) {
	f, _, _ := loadedNotificationFeed(t)

	require.NoError(t, f.MarkRead(context.Background(), "n-5"))
	assert.Equal(t, 2, f.UnreadCount())
	assert.True(t, f.Notifications()[0].Read)
}

func TestNotificationFeedMarkReadRollsBack(t *testing.T) {
	f, _, st := loadedNotificationFeed(t)

	st.Update(func(d *store.Data) {
		for i, n := range d.Notifications {
			if n.ID == "n-5" {
				d.Notifications = append(d.Notifications[:i], d.Notifications[i+1:]...)
				return
			}
		}
	})

	before := f.Notifications()
	err := f.MarkRead(context.Background(), "n-5")
	assert.True(t, api.IsNotFound(err))
	assert.Equal(t, before, f.Notifications())
	assert.Equal(t, 3, f.UnreadCount())
}

func TestNotificationFeedMarkAllRead(t *testing.T) {
	f, a, _ := loadedNotificationFeed(t)
	ctx := context.Background()

	require.NoError(t, f.MarkAllRead(ctx))
	assert.Zero(t, f.UnreadCount())

	// The flips reached the store, not just the local view.
	notifs, err := a.Notifications(ctx)
	require.NoError(t, err)
	for _, n := range notifs {
		assert.True(t, n.Read)
	}
}

func TestNotificationFeedReturnsCopies(t *testing.T) {
	f, _, _ := loadedNotificationFeed(t)

	notifs := f.Notifications()
	notifs[0].Read = true
	assert.Equal(t, 3, f.UnreadCount())
}
