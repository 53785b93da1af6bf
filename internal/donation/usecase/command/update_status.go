package command

import (
	"context"
	"strings"

	"github.com/tair/donation-tracker/internal/donation/domain"
	"github.com/tair/donation-tracker/kafka"
	"github.com/tair/donation-tracker/pkg/logger"
)

// UpdateStatusCommand represents an administrative donation status change
type UpdateStatusCommand struct {
	DonationID  uint
	Status      string
	Actor       string
	InspectedBy *string
	Notes       string
}

// UpdateStatusHandler handles update status command
type UpdateStatusHandler struct {
	lc Lifecycle
}

// NewUpdateStatusHandler creates a new update status handler
func NewUpdateStatusHandler(lc Lifecycle) *UpdateStatusHandler {
	return &UpdateStatusHandler{lc: lc}
}

// Handle executes the update status command
func (h *UpdateStatusHandler) Handle(ctx context.Context, cmd UpdateStatusCommand) (*domain.Donation, error) {
	donation, err := h.handle(ctx, cmd)
	return donation, h.lc.finish(ctx, "update_status", err)
}

func (h *UpdateStatusHandler) handle(ctx context.Context, cmd UpdateStatusCommand) (*domain.Donation, error) {
	actor, err := requireActor("actor", cmd.Actor)
	if err != nil {
		return nil, err
	}
	target, ok := domain.ParseDonationStatus(cmd.Status)
	if !ok {
		return nil, domain.ValidationError{Field: "status", Reason: "unknown status"}
	}
	var inspectedBy *string
	if cmd.InspectedBy != nil {
		if v := strings.TrimSpace(*cmd.InspectedBy); v != "" {
			inspectedBy = &v
		}
	}

	now := h.lc.now()
	var (
		updated   *domain.Donation
		oldStatus domain.DonationStatus
	)
	err = h.lc.UoW.Atomic(ctx, func(repos domain.Repositories) error {
		donation, err := repos.Donations.FindByID(ctx, cmd.DonationID)
		if err != nil {
			return err
		}
		oldStatus = donation.Status
		if err := domain.CheckAdminTransition(donation.Status, target); err != nil {
			return err
		}
		if err := repos.Donations.UpdateStatus(ctx, donation.ID, target, inspectedBy); err != nil {
			return wrap("update donation status", err)
		}

		entry := newAuditEntry(donation.ID, domain.AuditStatusChanged, actor, now)
		entry.OldStatus, entry.NewStatus = oldStatus, target
		entry.Notes = strings.TrimSpace(cmd.Notes)
		if err := repos.Audit.Append(ctx, entry); err != nil {
			return wrap("append audit entry", err)
		}

		updated, err = repos.Donations.FindByID(ctx, donation.ID)
		return wrap("load donation", err)
	})
	if err != nil {
		return nil, err
	}

	h.lc.Metrics.StatusTransition(string(oldStatus), string(target))
	logger.Info(ctx).
		Uint("donation_id", updated.ID).
		Str("old_status", string(oldStatus)).
		Str("new_status", string(target)).
		Str("actor", actor).
		Msg("Donation status changed")

	h.lc.publish(ctx, kafka.DonationEvent{
		EventType:  kafka.EventTypeStatusChanged,
		DonationID: updated.ID,
		OldStatus:  string(oldStatus),
		NewStatus:  string(target),
		Actor:      actor,
	})
	return updated, nil
}
