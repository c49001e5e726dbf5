package store

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/paujie/brocode/internal/model"
)

var ref = time.Date(2030, 6, 1, 12, 0, 0, 0, time.UTC)

func seeded(t *testing.T) *Store {
	t.Helper()
	s := New()
	Seed(s, ref)
	return s
}

func TestNewIsEmpty(t *testing.T) {
	s := New()
	s.View(func(d *Data) {
		assert.Empty(t, d.Users)
		assert.Empty(t, d.Spots)
		assert.Empty(t, d.Notifications)
	})
}

func TestUpdateVisibleToView(t *testing.T) {
	s := New()
	s.Update(func(d *Data) {
		d.Spots = append(d.Spots, &model.Spot{ID: "s1", Location: "Bar"})
	})
	s.View(func(d *Data) {
		require.Len(t, d.Spots, 1)
		assert.Equal(t, "Bar", d.Spots[0].Location)
	})
}

func TestUpdateIsAtomicUnderConcurrency(t *testing.T) {
	s := New()
	const writers = 8
	const perWriter = 100

	var wg sync.WaitGroup
	wg.Add(writers)
	for w := 0; w < writers; w++ {
		go func() {
			defer wg.Done()
			for i := 0; i < perWriter; i++ {
				s.Update(func(d *Data) {
					d.Notifications = append(d.Notifications, &model.Notification{ID: "n"})
				})
			}
		}()
	}
	wg.Wait()

	s.View(func(d *Data) {
		assert.Len(t, d.Notifications, writers*perWriter)
	})
}

func TestFinders(t *testing.T) {
	s := seeded(t)
	s.View(func(d *Data) {
		require.NotNil(t, d.FindSpot("spot-1"))
		assert.Nil(t, d.FindSpot("spot-404"))

		require.NotNil(t, d.FindDrink("drink-2"))
		assert.Nil(t, d.FindDrink("nope"))

		require.NotNil(t, d.FindInvitation("inv-4"))
		assert.Nil(t, d.FindInvitation("nope"))

		inv := d.InvitationFor("spot-1", "guest1")
		require.NotNil(t, inv)
		assert.Equal(t, "inv-4", inv.ID)
		assert.Nil(t, d.InvitationFor("spot-2", "guest1"))

		require.NotNil(t, d.FindPayment("pay-3"))
		require.NotNil(t, d.FindMessage("msg-4"))
		require.NotNil(t, d.FindNotification("n-2"))

		u := d.UserByEmail("chad@test.com")
		require.NotNil(t, u)
		assert.Equal(t, "brocoder2", u.ID)
		assert.Nil(t, d.UserByEmail("nobody@test.com"))

		u = d.UserByPhone("444-555-6666")
		require.NotNil(t, u)
		assert.Equal(t, "brocoder3", u.ID)
	})
}
