// Package store holds the canonical in-memory entity collections.
//
// The store is process-wide state with single-writer semantics: every
// mutation runs as one non-preemptible critical section via Update, so no
// two operations interleave mid-mutation. The service layer is the only
// writer; simulators and feeds go through it rather than touching
// collections directly.
//
// Nothing here persists across restarts. The only durable state in the
// system is the session token, owned by the session package.
package store

import (
	"sync"

	"github.com/paujie/brocode/internal/model"
)

// Data is the set of canonical collections.
//
// Users is keyed by id. Spots, drinks, invitations and payments are
// ordered by insertion (source order matters for stable sorts). Messages
// are in creation order. Moments are in creation order; reads sort them.
// Notifications are newest-first: pushes prepend.
type Data struct {
	Users         map[string]*model.UserProfile
	Spots         []*model.Spot
	Drinks        []*model.Drink
	Invitations   []*model.Invitation
	Payments      []*model.Payment
	Messages      []*model.ChatMessage
	Moments       []*model.Moment
	Notifications []*model.Notification
}

// Store owns Data behind a mutex.
type Store struct {
	mu   sync.Mutex
	data Data
}

// New creates an empty store.
func New() *Store {
	return &Store{data: Data{Users: make(map[string]*model.UserProfile)}}
}

// Update runs fn as a single critical section with exclusive access to
// the collections. fn must not retain pointers into Data past its return;
// callers hand out clones, never aliases.
func (s *Store) Update(fn func(*Data)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	fn(&s.data)
}

// View runs fn with exclusive access for reading. It is the same lock as
// Update — reads always observe a fully applied mutation, never a partial
// one.
func (s *Store) View(fn func(*Data)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	fn(&s.data)
}

// FindSpot returns the spot with the given id, or nil.
func (d *Data) FindSpot(id string) *model.Spot {
	for _, s := range d.Spots {
		if s.ID == id {
			return s
		}
	}
	return nil
}

// FindDrink returns the drink with the given id, or nil.
func (d *Data) FindDrink(id string) *model.Drink {
	for _, dr := range d.Drinks {
		if dr.ID == id {
			return dr
		}
	}
	return nil
}

// FindInvitation returns the invitation with the given id, or nil.
func (d *Data) FindInvitation(id string) *model.Invitation {
	for _, inv := range d.Invitations {
		if inv.ID == id {
			return inv
		}
	}
	return nil
}

// InvitationFor returns the invitation for the (spot, user) pair, or nil.
// At most one exists; the service layer enforces uniqueness at creation.
func (d *Data) InvitationFor(spotID, userID string) *model.Invitation {
	for _, inv := range d.Invitations {
		if inv.SpotID == spotID && inv.UserID == userID {
			return inv
		}
	}
	return nil
}

// FindPayment returns the payment with the given id, or nil.
func (d *Data) FindPayment(id string) *model.Payment {
	for _, p := range d.Payments {
		if p.ID == id {
			return p
		}
	}
	return nil
}

// FindMessage returns the message with the given id, or nil.
func (d *Data) FindMessage(id string) *model.ChatMessage {
	for _, m := range d.Messages {
		if m.ID == id {
			return m
		}
	}
	return nil
}

// FindNotification returns the notification with the given id, or nil.
func (d *Data) FindNotification(id string) *model.Notification {
	for _, n := range d.Notifications {
		if n.ID == id {
			return n
		}
	}
	return nil
}

// UserByEmail returns the profile whose email matches, or nil.
func (d *Data) UserByEmail(email string) *model.UserProfile {
	for _, u := range d.Users {
		if u.Email == email {
			return u
		}
	}
	return nil
}

// UserByPhone returns the profile whose phone matches, or nil.
func (d *Data) UserByPhone(phone string) *model.UserProfile {
	for _, u := range d.Users {
		if u.Phone == phone {
			return u
		}
	}
	return nil
}
