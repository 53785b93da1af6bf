package command

import (
	"context"

	"github.com/tair/donation-tracker/internal/donation/domain"
	"github.com/tair/donation-tracker/kafka"
	"github.com/tair/donation-tracker/pkg/logger"
)

// DeleteDonationCommand represents the command to remove a donation
type DeleteDonationCommand struct {
	DonationID uint
	Actor      string
}

// DeleteDonationHandler handles delete donation command
type DeleteDonationHandler struct {
	lc Lifecycle
}

// NewDeleteDonationHandler creates a new delete donation handler
func NewDeleteDonationHandler(lc Lifecycle) *DeleteDonationHandler {
	return &DeleteDonationHandler{lc: lc}
}

// Handle removes the donation with its items, inspections, receipt and audit trail.
// Donations with any disposition are kept: their stock and waste must stay traceable.
func (h *DeleteDonationHandler) Handle(ctx context.Context, cmd DeleteDonationCommand) error {
	return h.lc.finish(ctx, "delete_donation", h.handle(ctx, cmd))
}

func (h *DeleteDonationHandler) handle(ctx context.Context, cmd DeleteDonationCommand) error {
	actor, err := requireActor("actor", cmd.Actor)
	if err != nil {
		return err
	}

	var status domain.DonationStatus
	err = h.lc.UoW.Atomic(ctx, func(repos domain.Repositories) error {
		donation, err := repos.Donations.FindByID(ctx, cmd.DonationID)
		if err != nil {
			return err
		}
		status = donation.Status

		dispositions, err := repos.Dispositions.CountByDonationID(ctx, donation.ID)
		if err != nil {
			return wrap("count dispositions", err)
		}
		if dispositions > 0 {
			return domain.ConflictError{Entity: domain.EntityDonation, Reason: "donation has dispositioned items"}
		}
		return wrap("delete donation", repos.Donations.Delete(ctx, donation.ID))
	})
	if err != nil {
		return err
	}

	logger.Info(ctx).
		Uint("donation_id", cmd.DonationID).
		Str("actor", actor).
		Msg("Donation deleted")

	h.lc.publish(ctx, kafka.DonationEvent{
		EventType:  kafka.EventTypeDonationDeleted,
		DonationID: cmd.DonationID,
		OldStatus:  string(status),
		Actor:      actor,
	})
	return nil
}
