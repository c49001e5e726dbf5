// Package model defines the domain entities of the brocode meetup
// coordinator: profiles, spots, drinks, invitations, payments, chat
// messages, moments and notifications.
//
// Entities are plain value types. The canonical copies live in the entity
// store; the service layer hands out deep copies (see Clone methods) so no
// consumer can mutate canonical state through an alias.
package model

import "time"

// Role classifies a user profile.
type Role string

const (
	RoleAdmin Role = "ADMIN"
	RoleUser  Role = "USER"
	RoleGuest Role = "GUEST"
)

// InvitationStatus is the attendance state of an invitation.
type InvitationStatus string

const (
	InvitationPending   InvitationStatus = "PENDING"
	InvitationConfirmed InvitationStatus = "CONFIRMED"
	InvitationDeclined  InvitationStatus = "DECLINED"
)

// PaymentStatus is the settlement state of a payment record.
type PaymentStatus string

const (
	PaymentNotPaid PaymentStatus = "NOT_PAID"
	PaymentPaid    PaymentStatus = "PAID"
)

// Coordinates is a live lat/lng fix published by a user.
type Coordinates struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// UserProfile is a member of the group.
//
// Password is stored in plaintext: the backend is a mock and credential
// security is out of scope. OTP and OTPExpiresAt are set transiently
// during password reset and mobile registration.
type UserProfile struct {
	ID            string       `json:"id"`
	Name          string       `json:"name"`
	Username      string       `json:"username"`
	Email         string       `json:"email,omitempty"`
	Phone         string       `json:"phone,omitempty"`
	Role          Role         `json:"role"`
	ProfilePicURL string       `json:"profile_pic_url,omitempty"`
	Location      string       `json:"location,omitempty"`
	DateOfBirth   string       `json:"date_of_birth,omitempty"`
	Password      string       `json:"-"`
	Verified      bool         `json:"verified"`
	OTP           string       `json:"-"`
	OTPExpiresAt  time.Time    `json:"-"`
	LiveLocation  *Coordinates `json:"live_location,omitempty"`
}

// ProfileSnapshot is the denormalized display view embedded in entities
// that reference a profile. It is captured at write time and only
// refreshed where the service layer explicitly re-syncs it.
type ProfileSnapshot struct {
	Name          string `json:"name"`
	ProfilePicURL string `json:"profile_pic_url,omitempty"`
}

// Snapshot captures the profile's display fields.
func (p *UserProfile) Snapshot() ProfileSnapshot {
	return ProfileSnapshot{Name: p.Name, ProfilePicURL: p.ProfilePicURL}
}

// Spot is a planned meetup: a venue, a date and a per-person budget.
// Feedback is attached by an admin after the spot's date has passed.
type Spot struct {
	ID          string       `json:"id"`
	Location    string       `json:"location"`
	Date        time.Time    `json:"date"`
	Day         string       `json:"day"`
	Timing      string       `json:"timing"`
	Budget      float64      `json:"budget"`
	CreatedBy   string       `json:"created_by"`
	Description string       `json:"description,omitempty"`
	Feedback    string       `json:"feedback,omitempty"`
	Coords      *Coordinates `json:"coords,omitempty"`
}

// Drink is a drink suggestion for a spot.
//
// Invariant: Votes == len(VotedBy) at all times. VotedBy holds unique
// user ids; ToggleVote is the only mutation path.
type Drink struct {
	ID          string          `json:"id"`
	SpotID      string          `json:"spot_id"`
	Name        string          `json:"name"`
	ImageURL    string          `json:"image_url,omitempty"`
	Votes       int             `json:"votes"`
	SuggestedBy string          `json:"suggested_by"`
	VotedBy     []string        `json:"voted_by"`
	Suggester   ProfileSnapshot `json:"profiles"`
}

// Invitation is a per-user attendance record for a spot.
// Exactly one invitation exists per (spot, user) pair.
type Invitation struct {
	ID      string           `json:"id"`
	SpotID  string           `json:"spot_id"`
	UserID  string           `json:"user_id"`
	Profile ProfileSnapshot  `json:"profiles"`
	Status  InvitationStatus `json:"status"`
}

// Payment tracks whether a user has paid their share for a spot.
// Created 1:1 alongside each invitation.
type Payment struct {
	ID      string          `json:"id"`
	SpotID  string          `json:"spot_id"`
	UserID  string          `json:"user_id"`
	Profile ProfileSnapshot `json:"profiles"`
	Status  PaymentStatus   `json:"status"`
}

// ChatMessage is one entry in the group chat. A message carries text,
// images, or both; never neither.
//
// Reactions maps emoji to the ordered list of user ids that reacted.
// Invariant: no emoji key maps to an empty list — the entry is deleted
// when the last user unreacts.
type ChatMessage struct {
	ID        string              `json:"id"`
	UserID    string              `json:"user_id"`
	Text      string              `json:"content_text,omitempty"`
	ImageURLs []string            `json:"content_image_urls,omitempty"`
	CreatedAt time.Time           `json:"created_at"`
	Author    ProfileSnapshot     `json:"profiles"`
	Reactions map[string][]string `json:"reactions,omitempty"`
}

// MaxCaptionLen bounds a moment's caption.
const MaxCaptionLen = 280

// Moment is a user-authored photo post, unrelated to any spot.
type Moment struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	ImageURL  string    `json:"image_url"`
	Caption   string    `json:"caption,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// Notification is a system message pushed to the user's feed.
type Notification struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Message   string    `json:"message"`
	Timestamp time.Time `json:"timestamp"`
	Read      bool      `json:"read"`
}
