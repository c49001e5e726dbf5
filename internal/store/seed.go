package store

import (
	"time"

	"github.com/paujie/brocode/internal/model"
)

// PlaceholderImages is the fixed pool of stock photos used for drink
// suggestions, avatars and seeded posts.
var PlaceholderImages = []string{
	"https://images.unsplash.com/photo-1522335789203-aabd1fc5445c?q=80&w=800",
	"https://images.unsplash.com/photo-1551024709-8f2379907814?q=80&w=800",
	"https://images.unsplash.com/photo-1543007818-272234d026d5?q=80&w=800",
	"https://images.unsplash.com/photo-1514362545857-3bc7dca47406?q=80&w=800",
	"https://images.unsplash.com/photo-1621269552303-9c35b0255869?q=80&w=800",
	"https://images.unsplash.com/photo-1550426322-6A3820204843?q=80&w=800",
	"https://images.unsplash.com/photo-1615887222829-31742b6355cf?q=80&w=800",
	"https://images.unsplash.com/photo-1597252033092-1ab6d551cb93?q=80&w=800",
	"https://images.unsplash.com/photo-1589830530460-159496e57e93?q=80&w=800",
	"https://images.unsplash.com/photo-1544463112-58a36418389d?q=80&w=800",
	"https://images.unsplash.com/photo-1571805126042-a72d16943a41?q=80&w=800",
}

// PlaceholderImage picks a stable image for a seed string. The same seed
// always yields the same image, so suggested drinks and generated avatars
// are deterministic.
func PlaceholderImage(seed string) string {
	var hash int32
	for _, ch := range seed {
		hash = ch + ((hash << 5) - hash)
	}
	idx := int(hash) % len(PlaceholderImages)
	if idx < 0 {
		idx = -idx
	}
	return PlaceholderImages[idx]
}

// Seed populates the store with the demo dataset: four members (one
// admin, one guest), one upcoming and two past spots, drink suggestions
// with votes, invitations and payments for the upcoming spot, a short
// chat history with reactions, two moments and an initial notification
// feed.
//
// All timestamps are relative to ref so tests and golden files are
// deterministic.
func Seed(s *Store, ref time.Time) {
	s.Update(func(d *Data) {
		d.Users = map[string]*model.UserProfile{
			"brocoder1": {
				ID: "brocoder1", Name: "Admin Bro", Username: "adminbro",
				Email: "hi@paujie.com", Phone: "123-456-7890",
				Role: model.RoleAdmin, ProfilePicURL: PlaceholderImage("Admin Bro"),
				Location: "Broville", DateOfBirth: "1990-01-01",
				Password: "password", Verified: true,
			},
			"brocoder2": {
				ID: "brocoder2", Name: "Chad", Username: "chadwick",
				Email: "chad@test.com", Phone: "111-222-3333",
				Role: model.RoleUser, ProfilePicURL: PlaceholderImage("Chad"),
				Location: "Broville", DateOfBirth: "1992-05-10",
				Password: "password", Verified: true,
			},
			"brocoder3": {
				ID: "brocoder3", Name: "Brenda", Username: "brenda",
				Email: "brenda@test.com", Phone: "444-555-6666",
				Role: model.RoleUser, ProfilePicURL: PlaceholderImage("Brenda"),
				Location: "Broville", DateOfBirth: "1995-11-20",
				Password: "password", Verified: true,
			},
			"guest1": {
				ID: "guest1", Name: "Guest User", Username: "guesty",
				Email: "guest@test.com", Phone: "777-888-9999",
				Role: model.RoleGuest, ProfilePicURL: PlaceholderImage("Guest User"),
				Location: "Broville", DateOfBirth: "2000-03-15",
				Password: "password", Verified: true,
			},
		}

		d.Spots = []*model.Spot{
			{
				ID: "spot-1", Location: "The Downtown Pub",
				Date: ref.Add(5 * 24 * time.Hour), Day: "Friday", Timing: "9:00 PM",
				Budget: 50, CreatedBy: "brocoder1",
				Description: "Let's kick off the weekend with some good drinks and company.",
			},
			{
				ID: "spot-2", Location: "The Old Cellar",
				Date: ref.Add(-7 * 24 * time.Hour), Day: "Saturday", Timing: "10:00 PM",
				Budget: 60, CreatedBy: "brocoder1",
				Feedback: "Great vibe, but a bit pricey.",
			},
			{
				ID: "spot-3", Location: "Rooftop Bar",
				Date: ref.Add(-30 * 24 * time.Hour), Day: "Friday", Timing: "8:00 PM",
				Budget: 40, CreatedBy: "brocoder1",
				Feedback: "Amazing views. Recommended.",
			},
		}

		d.Drinks = []*model.Drink{
			{
				ID: "drink-1", SpotID: "spot-1", Name: "Old Fashioned",
				ImageURL: PlaceholderImages[0], Votes: 2, SuggestedBy: "brocoder2",
				VotedBy:   []string{"brocoder2", "brocoder1"},
				Suggester: model.ProfileSnapshot{Name: "Chad"},
			},
			{
				ID: "drink-2", SpotID: "spot-1", Name: "Margarita",
				ImageURL: PlaceholderImages[1], Votes: 1, SuggestedBy: "brocoder3",
				VotedBy:   []string{"brocoder3"},
				Suggester: model.ProfileSnapshot{Name: "Brenda"},
			},
		}

		snap := func(id string) model.ProfileSnapshot { return d.Users[id].Snapshot() }

		d.Invitations = []*model.Invitation{
			{ID: "inv-1", SpotID: "spot-1", UserID: "brocoder1", Profile: snap("brocoder1"), Status: model.InvitationConfirmed},
			{ID: "inv-2", SpotID: "spot-1", UserID: "brocoder2", Profile: snap("brocoder2"), Status: model.InvitationConfirmed},
			{ID: "inv-3", SpotID: "spot-1", UserID: "brocoder3", Profile: snap("brocoder3"), Status: model.InvitationPending},
			{ID: "inv-4", SpotID: "spot-1", UserID: "guest1", Profile: snap("guest1"), Status: model.InvitationPending},
		}

		d.Payments = []*model.Payment{
			{ID: "pay-1", SpotID: "spot-1", UserID: "brocoder1", Profile: snap("brocoder1"), Status: model.PaymentPaid},
			{ID: "pay-2", SpotID: "spot-1", UserID: "brocoder2", Profile: snap("brocoder2"), Status: model.PaymentNotPaid},
			{ID: "pay-3", SpotID: "spot-1", UserID: "brocoder3", Profile: snap("brocoder3"), Status: model.PaymentNotPaid},
		}

		d.Messages = []*model.ChatMessage{
			{
				ID: "msg-1", UserID: "brocoder3",
				ImageURLs: []string{PlaceholderImages[2], PlaceholderImages[3]},
				CreatedAt: ref.Add(-5 * time.Minute), Author: snap("brocoder3"),
			},
			{
				ID: "msg-2", UserID: "brocoder1", Text: "Hi peeps",
				CreatedAt: ref.Add(-4 * time.Minute), Author: snap("brocoder1"),
			},
			{
				ID: "msg-3", UserID: "brocoder2", Text: "Pls help me choose photos for insta post 🥺",
				CreatedAt: ref.Add(-3 * time.Minute), Author: snap("brocoder2"),
				Reactions: map[string][]string{"❤️": {"brocoder1"}, "👍": {"brocoder3"}},
			},
			{
				ID: "msg-4", UserID: "brocoder3", Text: "come oooooonn",
				CreatedAt: ref.Add(-2 * time.Minute), Author: snap("brocoder3"),
				Reactions: map[string][]string{"😮": {"brocoder1", "brocoder2"}, "😂": {"brocoder1"}},
			},
			{
				ID: "msg-5", UserID: "brocoder2",
				ImageURLs: append([]string(nil), PlaceholderImages...),
				CreatedAt: ref.Add(-1 * time.Minute), Author: snap("brocoder2"),
			},
		}

		d.Moments = []*model.Moment{
			{ID: "mom-1", UserID: "brocoder1", ImageURL: PlaceholderImages[0], Caption: "Last week was a blast!", CreatedAt: ref.Add(-8 * 24 * time.Hour)},
			{ID: "mom-2", UserID: "brocoder2", ImageURL: PlaceholderImages[1], Caption: "Good times.", CreatedAt: ref.Add(-10 * 24 * time.Hour)},
		}

		d.Notifications = []*model.Notification{
			{ID: "n-5", Title: "New Invitation", Message: "Admin Bro has invited you to The Downtown Pub.", Timestamp: ref.Add(-time.Minute)},
			{ID: "n-1", Title: "Payment Confirmed", Message: "Admin Bro has confirmed your payment for The Downtown Pub.", Timestamp: ref.Add(-time.Hour)},
			{ID: "n-2", Title: "Spot Updated", Message: "The budget for The Downtown Pub has been updated to $50.", Timestamp: ref.Add(-24 * time.Hour)},
			{ID: "n-3", Title: "You Confirmed!", Message: "You have confirmed your attendance for The Downtown Pub.", Timestamp: ref.Add(-48 * time.Hour), Read: true},
			{ID: "n-4", Title: "New Spot Added", Message: "Admin Bro created a new spot: The Downtown Pub.", Timestamp: ref.Add(-72 * time.Hour), Read: true},
		}
	})
}
