package api

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/paujie/brocode/internal/model"
	"github.com/paujie/brocode/internal/store"
)

// UpcomingSpot returns the earliest spot with a date at or after now
// whose creator is an admin, or nil when none qualifies.
//
// Tie-break: equal dates keep source order (the strict before-comparison
// never replaces an earlier candidate with an equal-dated later one).
func (a *API) UpcomingSpot(ctx context.Context) (*model.Spot, error) {
	if err := a.wait(ctx); err != nil {
		return nil, err
	}
	now := a.clock.Now()
	var upcoming *model.Spot
	a.store.View(func(d *store.Data) {
		for _, s := range d.Spots {
			if s.Date.Before(now) {
				continue
			}
			creator := d.Users[s.CreatedBy]
			if creator == nil || creator.Role != model.RoleAdmin {
				continue
			}
			if upcoming == nil || s.Date.Before(upcoming.Date) {
				upcoming = s
			}
		}
		upcoming = upcoming.Clone()
	})
	return upcoming, nil
}

// PastSpots returns spots whose date has elapsed, most recent first.
func (a *API) PastSpots(ctx context.Context) ([]*model.Spot, error) {
	if err := a.wait(ctx); err != nil {
		return nil, err
	}
	now := a.clock.Now()
	var past []*model.Spot
	a.store.View(func(d *store.Data) {
		for _, s := range d.Spots {
			if s.Date.Before(now) {
				past = append(past, s.Clone())
			}
		}
	})
	sort.SliceStable(past, func(i, j int) bool { return past[i].Date.After(past[j].Date) })
	return past, nil
}

// UserSpots returns the most recent spots created by the user, capped at
// four, most recent first.
func (a *API) UserSpots(ctx context.Context, userID string) ([]*model.Spot, error) {
	if err := a.wait(ctx); err != nil {
		return nil, err
	}
	var spots []*model.Spot
	a.store.View(func(d *store.Data) {
		for _, s := range d.Spots {
			if s.CreatedBy == userID {
				spots = append(spots, s.Clone())
			}
		}
	})
	sort.SliceStable(spots, func(i, j int) bool { return spots[i].Date.After(spots[j].Date) })
	if len(spots) > 4 {
		spots = spots[:4]
	}
	return spots, nil
}

// NewSpot is the creation payload for a spot.
type NewSpot struct {
	Location    string
	Date        time.Time
	Day         string
	Timing      string
	Budget      float64
	CreatedBy   string
	Description string
	Coords      *model.Coordinates
}

// CreateSpot inserts a spot and auto-creates a CONFIRMED invitation plus
// a NOT_PAID payment for the creator — and only the creator. Everyone
// else must be invited explicitly via InviteUserToSpot.
func (a *API) CreateSpot(ctx context.Context, ns NewSpot) (*model.Spot, error) {
	if err := a.wait(ctx); err != nil {
		return nil, err
	}
	if strings.TrimSpace(ns.Location) == "" {
		return nil, NewValidationError("location is required")
	}
	if ns.Budget <= 0 {
		return nil, NewValidationError("budget must be a positive number")
	}

	day := ns.Day
	if day == "" {
		day = ns.Date.Weekday().String()
	}

	var spot *model.Spot
	a.store.Update(func(d *store.Data) {
		creator := d.Users[ns.CreatedBy]
		if creator == nil {
			return
		}
		spot = &model.Spot{
			ID:          a.ids.NewID("spot"),
			Location:    canon(ns.Location),
			Date:        ns.Date,
			Day:         day,
			Timing:      ns.Timing,
			Budget:      ns.Budget,
			CreatedBy:   ns.CreatedBy,
			Description: ns.Description,
			Coords:      ns.Coords,
		}
		d.Spots = append(d.Spots, spot)
		d.Invitations = append(d.Invitations, &model.Invitation{
			ID:      a.ids.NewID("inv"),
			SpotID:  spot.ID,
			UserID:  creator.ID,
			Profile: creator.Snapshot(),
			Status:  model.InvitationConfirmed,
		})
		d.Payments = append(d.Payments, &model.Payment{
			ID:      a.ids.NewID("pay"),
			SpotID:  spot.ID,
			UserID:  creator.ID,
			Profile: creator.Snapshot(),
			Status:  model.PaymentNotPaid,
		})
		spot = spot.Clone()
	})
	if spot == nil {
		return nil, NewNotFoundError("user", ns.CreatedBy)
	}
	a.log.Debug("spot created", "spot", spot.ID, "location", spot.Location)
	return spot, nil
}

// AddSpotFeedback attaches admin feedback to a spot. Feedback only makes
// sense in hindsight, so the spot's date must have elapsed.
func (a *API) AddSpotFeedback(ctx context.Context, spotID, feedback string) (*model.Spot, error) {
	if err := a.wait(ctx); err != nil {
		return nil, err
	}
	if strings.TrimSpace(feedback) == "" {
		return nil, NewValidationError("feedback is required")
	}

	now := a.clock.Now()
	var spot *model.Spot
	var future bool
	a.store.Update(func(d *store.Data) {
		s := d.FindSpot(spotID)
		if s == nil {
			return
		}
		if !s.Date.Before(now) {
			future = true
			return
		}
		s.Feedback = feedback
		spot = s.Clone()
	})
	if future {
		return nil, NewValidationError("feedback can only be added after the spot's date")
	}
	if spot == nil {
		return nil, NewNotFoundError("spot", spotID)
	}
	return spot, nil
}
