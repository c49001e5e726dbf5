package api

import (
	"context"
	"strings"

	"github.com/paujie/brocode/internal/model"
	"github.com/paujie/brocode/internal/store"
)

// Drinks returns the drink suggestions for a spot in suggestion order.
func (a *API) Drinks(ctx context.Context, spotID string) ([]*model.Drink, error) {
	if err := a.wait(ctx); err != nil {
		return nil, err
	}
	var drinks []*model.Drink
	a.store.View(func(d *store.Data) {
		for _, dr := range d.Drinks {
			if dr.SpotID == spotID {
				drinks = append(drinks, dr.Clone())
			}
		}
	})
	return drinks, nil
}

// NewDrink is the suggestion payload.
type NewDrink struct {
	SpotID      string
	Name        string
	SuggestedBy string
}

// SuggestDrink creates a drink seeded with the suggester as its sole
// initial voter, so every suggestion starts at one vote.
func (a *API) SuggestDrink(ctx context.Context, nd NewDrink) (*model.Drink, error) {
	if err := a.wait(ctx); err != nil {
		return nil, err
	}
	if strings.TrimSpace(nd.Name) == "" {
		return nil, NewValidationError("drink name is required")
	}

	var drink *model.Drink
	a.store.Update(func(d *store.Data) {
		suggester := d.Users[nd.SuggestedBy]
		if suggester == nil || d.FindSpot(nd.SpotID) == nil {
			return
		}
		drink = &model.Drink{
			ID:          a.ids.NewID("drink"),
			SpotID:      nd.SpotID,
			Name:        canon(nd.Name),
			ImageURL:    store.PlaceholderImage(nd.Name),
			Votes:       1,
			SuggestedBy: suggester.ID,
			VotedBy:     []string{suggester.ID},
			Suggester:   model.ProfileSnapshot{Name: suggester.Name},
		}
		d.Drinks = append(d.Drinks, drink)
		drink = drink.Clone()
	})
	if drink == nil {
		return nil, NewNotFoundError("spot or user", nd.SpotID+"/"+nd.SuggestedBy)
	}
	return drink, nil
}

// ToggleVote flips the user's membership in the drink's voter set and
// recomputes the vote count as the new set size. Calling it twice with
// the same arguments restores the original state.
func (a *API) ToggleVote(ctx context.Context, drinkID, userID string) (*model.Drink, error) {
	if err := a.wait(ctx); err != nil {
		return nil, err
	}
	var drink *model.Drink
	a.store.Update(func(d *store.Data) {
		dr := d.FindDrink(drinkID)
		if dr == nil {
			return
		}
		voted := false
		for i, id := range dr.VotedBy {
			if id == userID {
				dr.VotedBy = append(dr.VotedBy[:i], dr.VotedBy[i+1:]...)
				voted = true
				break
			}
		}
		if !voted {
			dr.VotedBy = append(dr.VotedBy, userID)
		}
		dr.Votes = len(dr.VotedBy)
		drink = dr.Clone()
	})
	if drink == nil {
		return nil, NewNotFoundError("drink", drinkID)
	}
	return drink, nil
}
