package api

import (
	"context"

	"github.com/paujie/brocode/internal/model"
	"github.com/paujie/brocode/internal/store"
)

// Invitations returns the invitations for a spot in creation order.
func (a *API) Invitations(ctx context.Context, spotID string) ([]*model.Invitation, error) {
	if err := a.wait(ctx); err != nil {
		return nil, err
	}
	var invs []*model.Invitation
	a.store.View(func(d *store.Data) {
		for _, inv := range d.Invitations {
			if inv.SpotID == spotID {
				invs = append(invs, inv.Clone())
			}
		}
	})
	return invs, nil
}

// InviteUserToSpot creates a PENDING invitation and a NOT_PAID payment
// for the pair, atomically: either both records are inserted or the call
// fails with no partial state. A second invite for the same pair fails
// with DUPLICATE_INVITATION and leaves the store untouched.
func (a *API) InviteUserToSpot(ctx context.Context, spotID, userID string) (*model.Invitation, error) {
	if err := a.wait(ctx); err != nil {
		return nil, err
	}
	var (
		inv       *model.Invitation
		duplicate bool
	)
	a.store.Update(func(d *store.Data) {
		if d.InvitationFor(spotID, userID) != nil {
			duplicate = true
			return
		}
		user := d.Users[userID]
		if user == nil || d.FindSpot(spotID) == nil {
			return
		}
		inv = &model.Invitation{
			ID:      a.ids.NewID("inv"),
			SpotID:  spotID,
			UserID:  userID,
			Profile: user.Snapshot(),
			Status:  model.InvitationPending,
		}
		d.Invitations = append(d.Invitations, inv)
		d.Payments = append(d.Payments, &model.Payment{
			ID:      a.ids.NewID("pay"),
			SpotID:  spotID,
			UserID:  userID,
			Profile: user.Snapshot(),
			Status:  model.PaymentNotPaid,
		})
		inv = inv.Clone()
	})
	if duplicate {
		return nil, NewDuplicateInvitationError(spotID, userID)
	}
	if inv == nil {
		return nil, NewNotFoundError("spot or user", spotID+"/"+userID)
	}
	a.log.Debug("user invited", "spot", spotID, "user", userID)
	return inv, nil
}

// UpdateInvitationStatus overwrites an invitation's status. There is no
// transition guard: re-confirming a declined invitation is allowed, which
// is what lets an admin reverse a decline.
func (a *API) UpdateInvitationStatus(ctx context.Context, invitationID string, status model.InvitationStatus) (*model.Invitation, error) {
	if err := a.wait(ctx); err != nil {
		return nil, err
	}
	var inv *model.Invitation
	a.store.Update(func(d *store.Data) {
		found := d.FindInvitation(invitationID)
		if found == nil {
			return
		}
		found.Status = status
		inv = found.Clone()
	})
	if inv == nil {
		return nil, NewNotFoundError("invitation", invitationID)
	}
	return inv, nil
}

// Payments returns the payment records for a spot in creation order.
func (a *API) Payments(ctx context.Context, spotID string) ([]*model.Payment, error) {
	if err := a.wait(ctx); err != nil {
		return nil, err
	}
	var pays []*model.Payment
	a.store.View(func(d *store.Data) {
		for _, p := range d.Payments {
			if p.SpotID == spotID {
				pays = append(pays, p.Clone())
			}
		}
	})
	return pays, nil
}

// UpdatePaymentStatus overwrites a payment's status, unconditionally,
// mirroring the invitation contract.
func (a *API) UpdatePaymentStatus(ctx context.Context, paymentID string, status model.PaymentStatus) (*model.Payment, error) {
	if err := a.wait(ctx); err != nil {
		return nil, err
	}
	var pay *model.Payment
	a.store.Update(func(d *store.Data) {
		found := d.FindPayment(paymentID)
		if found == nil {
			return
		}
		found.Status = status
		pay = found.Clone()
	})
	if pay == nil {
		return nil, NewNotFoundError("payment", paymentID)
	}
	return pay, nil
}
