package model

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserProfileClone(t *testing.T) {
	orig := &UserProfile{
		ID: "u1", Name: "Chad", Role: RoleUser,
		LiveLocation: &Coordinates{Lat: 1, Lng: 2},
	}
	c := orig.Clone()
	require.Equal(t, orig, c)

	c.Name = "Brad"
	c.LiveLocation.Lat = 99
	assert.Equal(t, "Chad", orig.Name)
	assert.Equal(t, 1.0, orig.LiveLocation.Lat)
}

func TestNilClonesAreNil(t *testing.T) {
	assert.Nil(t, (*UserProfile)(nil).Clone())
	assert.Nil(t, (*Spot)(nil).Clone())
	assert.Nil(t, (*Drink)(nil).Clone())
	assert.Nil(t, (*Invitation)(nil).Clone())
	assert.Nil(t, (*Payment)(nil).Clone())
	assert.Nil(t, (*ChatMessage)(nil).Clone())
	assert.Nil(t, (*Moment)(nil).Clone())
	assert.Nil(t, (*Notification)(nil).Clone())
}

func TestDrinkCloneCopiesVoters(t *testing.T) {
	orig := &Drink{ID: "d1", Votes: 2, VotedBy: []string{"a", "b"}}
	c := orig.Clone()

	c.VotedBy[0] = "z"
	c.VotedBy = append(c.VotedBy, "c")
	assert.Equal(t, []string{"a", "b"}, orig.VotedBy)
}

func TestChatMessageCloneCopiesReactions(t *testing.T) {
	orig := &ChatMessage{
		ID:        "m1",
		ImageURLs: []string{"one"},
		Reactions: map[string][]string{"👍": {"a"}},
		CreatedAt: time.Now(),
	}
	c := orig.Clone()

	c.Reactions["👍"] = append(c.Reactions["👍"], "b")
	c.Reactions["❤️"] = []string{"c"}
	c.ImageURLs[0] = "mutated"

	assert.Equal(t, []string{"a"}, orig.Reactions["👍"])
	assert.NotContains(t, orig.Reactions, "❤️")
	assert.Equal(t, []string{"one"}, orig.ImageURLs)
}

func TestSpotCloneCopiesCoords(t *testing.T) {
	orig := &Spot{ID: "s1", Coords: &Coordinates{Lat: 3, Lng: 4}}
	c := orig.Clone()
	c.Coords.Lng = 0
	assert.Equal(t, 4.0, orig.Coords.Lng)
}

func TestSnapshotCapturesDisplayFields(t *testing.T) {
	p := &UserProfile{Name: "Brenda", ProfilePicURL: "pic", Email: "b@test.com"}
	snap := p.Snapshot()
	assert.Equal(t, "Brenda", snap.Name)
	assert.Equal(t, "pic", snap.ProfilePicURL)
}
