package api

import (
	"context"
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/paujie/brocode/internal/model"
	"github.com/paujie/brocode/internal/store"
)

// Moments returns the user's moments, newest first.
func (a *API) Moments(ctx context.Context, userID string) ([]*model.Moment, error) {
	if err := a.wait(ctx); err != nil {
		return nil, err
	}
	var moments []*model.Moment
	a.store.View(func(d *store.Data) {
		for _, m := range d.Moments {
			if m.UserID == userID {
				moments = append(moments, m.Clone())
			}
		}
	})
	sort.SliceStable(moments, func(i, j int) bool {
		return moments[i].CreatedAt.After(moments[j].CreatedAt)
	})
	return moments, nil
}

// NewMoment is the creation payload for a moment.
type NewMoment struct {
	UserID   string
	ImageURL string
	Caption  string
}

// CreateMoment posts a moment. Captions are capped at
// model.MaxCaptionLen characters, counted in runes.
func (a *API) CreateMoment(ctx context.Context, nm NewMoment) (*model.Moment, error) {
	if err := a.wait(ctx); err != nil {
		return nil, err
	}
	if strings.TrimSpace(nm.ImageURL) == "" {
		return nil, NewValidationError("image is required")
	}
	if utf8.RuneCountInString(nm.Caption) > model.MaxCaptionLen {
		return nil, NewValidationError("caption must be at most 280 characters")
	}

	var moment *model.Moment
	a.store.Update(func(d *store.Data) {
		if d.Users[nm.UserID] == nil {
			return
		}
		moment = &model.Moment{
			ID:        a.ids.NewID("moment"),
			UserID:    nm.UserID,
			ImageURL:  nm.ImageURL,
			Caption:   nm.Caption,
			CreatedAt: a.clock.Now(),
		}
		d.Moments = append(d.Moments, moment)
		moment = moment.Clone()
	})
	if moment == nil {
		return nil, NewNotFoundError("user", nm.UserID)
	}
	return moment, nil
}

// DeleteMoment removes a moment by id.
func (a *API) DeleteMoment(ctx context.Context, momentID string) error {
	if err := a.wait(ctx); err != nil {
		return err
	}
	var found bool
	a.store.Update(func(d *store.Data) {
		for i, m := range d.Moments {
			if m.ID == momentID {
				d.Moments = append(d.Moments[:i], d.Moments[i+1:]...)
				found = true
				return
			}
		}
	})
	if !found {
		return NewNotFoundError("moment", momentID)
	}
	return nil
}
