package api

import (
	"context"
	"regexp"
	"sort"
	"strings"
	"time"

	"golang.org/x/text/unicode/norm"

	"github.com/paujie/brocode/internal/model"
	"github.com/paujie/brocode/internal/store"
)

// mockOTP is the one-time password issued by the mock backend. A real
// backend would generate and deliver a random code; the mock always
// issues the same one so the demo flows are self-explanatory.
const mockOTP = "123456"

// otpTTL bounds how long an issued one-time password stays valid.
const otpTTL = 10 * time.Minute

var usernameRe = regexp.MustCompile(`^[a-zA-Z0-9_]+$`)

// canon normalizes an identifier to NFC and trims surrounding space, so
// visually identical identifiers compare equal regardless of the Unicode
// composition the input arrived in.
func canon(s string) string {
	return norm.NFC.String(strings.TrimSpace(s))
}

// Identity is the session identity returned by Login. The id doubles as
// the opaque session token the session controller persists.
type Identity struct {
	UserID   string    `json:"user_id"`
	Email    string    `json:"email,omitempty"`
	IssuedAt time.Time `json:"issued_at"`
}

// Login authenticates by email or phone. The identifier is matched
// against both channels; the password must match exactly and the profile
// must be verified. Any failure yields the same AUTH_FAILED error.
func (a *API) Login(ctx context.Context, identifier, password string) (Identity, *model.UserProfile, error) {
	if err := a.wait(ctx); err != nil {
		return Identity{}, nil, err
	}

	identifier = canon(identifier)
	var profile *model.UserProfile
	a.store.View(func(d *store.Data) {
		found := d.UserByEmail(identifier)
		if found == nil {
			found = d.UserByPhone(identifier)
		}
		if found != nil && found.Password == password && found.Verified {
			profile = found.Clone()
		}
	})
	if profile == nil {
		a.log.Debug("login rejected", "identifier", identifier)
		return Identity{}, nil, NewAuthError()
	}

	a.log.Debug("login accepted", "user", profile.ID)
	return Identity{UserID: profile.ID, Email: profile.Email, IssuedAt: a.clock.Now()}, profile, nil
}

// Profile resolves a user id to a profile. A missing id returns (nil,
// nil), not an error: the session controller uses the nil result to
// detect a stale persisted token and degrade to anonymous.
func (a *API) Profile(ctx context.Context, userID string) (*model.UserProfile, error) {
	if err := a.wait(ctx); err != nil {
		return nil, err
	}
	var profile *model.UserProfile
	a.store.View(func(d *store.Data) {
		profile = d.Users[userID].Clone()
	})
	return profile, nil
}

// ProfileUpdate carries the editable profile fields. Nil means "leave
// unchanged".
type ProfileUpdate struct {
	Name          *string
	Username      *string
	Email         *string
	Phone         *string
	ProfilePicURL *string
	Location      *string
	DateOfBirth   *string
}

// UpdateProfile applies a partial update and returns the new profile.
func (a *API) UpdateProfile(ctx context.Context, userID string, upd ProfileUpdate) (*model.UserProfile, error) {
	if err := a.wait(ctx); err != nil {
		return nil, err
	}
	if upd.Username != nil && !usernameRe.MatchString(canon(*upd.Username)) {
		return nil, NewValidationError("username may only contain letters, numbers and underscores")
	}

	var profile *model.UserProfile
	a.store.Update(func(d *store.Data) {
		u := d.Users[userID]
		if u == nil {
			return
		}
		apply := func(dst *string, src *string) {
			if src != nil {
				*dst = canon(*src)
			}
		}
		apply(&u.Name, upd.Name)
		apply(&u.Username, upd.Username)
		apply(&u.Email, upd.Email)
		apply(&u.Phone, upd.Phone)
		apply(&u.ProfilePicURL, upd.ProfilePicURL)
		apply(&u.Location, upd.Location)
		apply(&u.DateOfBirth, upd.DateOfBirth)
		profile = u.Clone()
	})
	if profile == nil {
		return nil, NewNotFoundError("user", userID)
	}
	return profile, nil
}

// AllUsers returns every profile, ordered by id.
func (a *API) AllUsers(ctx context.Context) ([]*model.UserProfile, error) {
	if err := a.wait(ctx); err != nil {
		return nil, err
	}
	var users []*model.UserProfile
	a.store.View(func(d *store.Data) {
		for _, u := range d.Users {
			users = append(users, u.Clone())
		}
	})
	sort.Slice(users, func(i, j int) bool { return users[i].ID < users[j].ID })
	return users, nil
}

// ChatParticipants returns the chat-capable users other than excludeID:
// everyone except guests. The list is computed fresh from the store on
// every call, never cached.
func (a *API) ChatParticipants(ctx context.Context, excludeID string) ([]*model.UserProfile, error) {
	if err := a.wait(ctx); err != nil {
		return nil, err
	}
	var users []*model.UserProfile
	a.store.View(func(d *store.Data) {
		for _, u := range d.Users {
			if u.ID == excludeID || u.Role == model.RoleGuest {
				continue
			}
			users = append(users, u.Clone())
		}
	})
	sort.Slice(users, func(i, j int) bool { return users[i].ID < users[j].ID })
	return users, nil
}

// UpdateUserLocation records a live position fix for the user.
func (a *API) UpdateUserLocation(ctx context.Context, userID string, coords model.Coordinates) error {
	if err := a.wait(ctx); err != nil {
		return err
	}
	var ok bool
	a.store.Update(func(d *store.Data) {
		u := d.Users[userID]
		if u == nil {
			return
		}
		c := coords
		u.LiveLocation = &c
		ok = true
	})
	if !ok {
		return NewNotFoundError("user", userID)
	}
	return nil
}

// SendPasswordResetOTP issues a one-time password to the account with
// the given email. The failure is AUTH_FAILED rather than NOT_FOUND so
// the operation does not reveal which emails have accounts.
func (a *API) SendPasswordResetOTP(ctx context.Context, email string) error {
	if err := a.wait(ctx); err != nil {
		return err
	}
	email = canon(email)
	var ok bool
	a.store.Update(func(d *store.Data) {
		u := d.UserByEmail(email)
		if u == nil {
			return
		}
		u.OTP = mockOTP
		u.OTPExpiresAt = a.clock.Now().Add(otpTTL)
		ok = true
	})
	if !ok {
		return NewAuthError()
	}
	return nil
}

// ResetPassword sets a new password after checking the one-time
// password issued by SendPasswordResetOTP.
func (a *API) ResetPassword(ctx context.Context, email, otp, newPassword string) error {
	if err := a.wait(ctx); err != nil {
		return err
	}
	if len(newPassword) < 6 {
		return NewValidationError("password must be at least 6 characters")
	}

	email = canon(email)
	var ok bool
	a.store.Update(func(d *store.Data) {
		u := d.UserByEmail(email)
		if u == nil || !a.otpValid(u, otp) {
			return
		}
		u.Password = newPassword
		u.OTP = ""
		u.OTPExpiresAt = time.Time{}
		ok = true
	})
	if !ok {
		return NewAuthError()
	}
	return nil
}

// SendMobileOTP starts mobile registration. An unknown number gets a
// fresh unverified profile stub; a known number just gets a new code.
func (a *API) SendMobileOTP(ctx context.Context, phone string) error {
	if err := a.wait(ctx); err != nil {
		return err
	}
	phone = canon(phone)
	if phone == "" {
		return NewValidationError("mobile number is required")
	}
	a.store.Update(func(d *store.Data) {
		u := d.UserByPhone(phone)
		if u == nil {
			u = &model.UserProfile{
				ID:    a.ids.NewID("user"),
				Phone: phone,
				Role:  model.RoleUser,
			}
			d.Users[u.ID] = u
		}
		u.OTP = mockOTP
		u.OTPExpiresAt = a.clock.Now().Add(otpTTL)
	})
	return nil
}

// VerifyOTP checks the code sent to a mobile number and returns the
// profile so registration can prefill any existing fields.
func (a *API) VerifyOTP(ctx context.Context, phone, otp string) (*model.UserProfile, error) {
	if err := a.wait(ctx); err != nil {
		return nil, err
	}
	phone = canon(phone)
	var profile *model.UserProfile
	a.store.View(func(d *store.Data) {
		u := d.UserByPhone(phone)
		if u == nil || !a.otpValid(u, otp) {
			return
		}
		profile = u.Clone()
	})
	if profile == nil {
		return nil, NewAuthError()
	}
	return profile, nil
}

// Registration carries the final mobile-registration payload.
type Registration struct {
	Name          string
	Username      string
	Password      string
	ProfilePicURL string
}

// CompleteRegistration finishes the mobile flow: sets the profile fields,
// clears the one-time password and marks the account verified so Login
// will accept it.
func (a *API) CompleteRegistration(ctx context.Context, phone string, reg Registration) (*model.UserProfile, error) {
	if err := a.wait(ctx); err != nil {
		return nil, err
	}
	if strings.TrimSpace(reg.Name) == "" {
		return nil, NewValidationError("name is required")
	}
	if !usernameRe.MatchString(canon(reg.Username)) {
		return nil, NewValidationError("username may only contain letters, numbers and underscores")
	}
	if len(reg.Password) < 6 {
		return nil, NewValidationError("password must be at least 6 characters")
	}

	phone = canon(phone)
	var profile *model.UserProfile
	a.store.Update(func(d *store.Data) {
		u := d.UserByPhone(phone)
		if u == nil {
			return
		}
		u.Name = canon(reg.Name)
		u.Username = canon(reg.Username)
		u.Password = reg.Password
		if reg.ProfilePicURL != "" {
			u.ProfilePicURL = reg.ProfilePicURL
		} else if u.ProfilePicURL == "" {
			u.ProfilePicURL = store.PlaceholderImage(u.Name)
		}
		u.Verified = true
		u.OTP = ""
		u.OTPExpiresAt = time.Time{}
		profile = u.Clone()
	})
	if profile == nil {
		return nil, NewNotFoundError("user", phone)
	}
	a.log.Debug("registration completed", "user", profile.ID)
	return profile, nil
}

// otpValid checks code match and expiry against the service clock.
func (a *API) otpValid(u *model.UserProfile, otp string) bool {
	return u.OTP != "" && u.OTP == otp && a.clock.Now().Before(u.OTPExpiresAt)
}
