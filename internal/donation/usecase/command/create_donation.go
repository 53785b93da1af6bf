package command

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/tair/donation-tracker/internal/donation/domain"
	"github.com/tair/donation-tracker/kafka"
	"github.com/tair/donation-tracker/pkg/logger"
)

// CreateDonationCommand represents the command to record a new donation
type CreateDonationCommand struct {
	DonorID       uint
	DonationDate  time.Time
	ReceiptNumber string
	ReceivedBy    string
	Notes         string
	Items         []NewItem
}

// CreateDonationHandler handles donation creation command
type CreateDonationHandler struct {
	lc Lifecycle
}

// NewCreateDonationHandler creates a new create donation handler
func NewCreateDonationHandler(lc Lifecycle) *CreateDonationHandler {
	return &CreateDonationHandler{lc: lc}
}

// Handle executes the create donation command
func (h *CreateDonationHandler) Handle(ctx context.Context, cmd CreateDonationCommand) (*domain.Donation, error) {
	donation, err := h.handle(ctx, cmd)
	return donation, h.lc.finish(ctx, "create_donation", err)
}

func (h *CreateDonationHandler) handle(ctx context.Context, cmd CreateDonationCommand) (*domain.Donation, error) {
	receivedBy, err := requireActor("received_by", cmd.ReceivedBy)
	if err != nil {
		return nil, err
	}
	receiptNumber := strings.TrimSpace(cmd.ReceiptNumber)
	if receiptNumber == "" {
		return nil, domain.ValidationError{Field: "receipt_number", Reason: "is required"}
	}
	if cmd.DonorID == 0 {
		return nil, domain.ValidationError{Field: "donor_id", Reason: "is required"}
	}
	if len(cmd.Items) == 0 {
		return nil, domain.ValidationError{Field: "items", Reason: "a donation needs at least one item"}
	}
	for i, it := range cmd.Items {
		if err := it.validate(fmt.Sprintf("items[%d]", i)); err != nil {
			return nil, err
		}
	}

	now := h.lc.now()
	donationDate := cmd.DonationDate
	if donationDate.IsZero() {
		donationDate = now
	}

	var created *domain.Donation
	err = h.lc.UoW.Atomic(ctx, func(repos domain.Repositories) error {
		donor, err := repos.Donors.FindByID(ctx, cmd.DonorID)
		if err != nil {
			return referenceError("donor_id", err)
		}
		if !donor.IsActive {
			return domain.ValidationError{Field: "donor_id", Reason: fmt.Sprintf("donor %d is inactive", donor.ID)}
		}

		exists, err := repos.Donations.ExistsByReceiptNumber(ctx, receiptNumber)
		if err != nil {
			return wrap("check receipt number", err)
		}
		if exists {
			return domain.ConflictError{Entity: domain.EntityDonation, Reason: fmt.Sprintf("receipt number %q already used", receiptNumber)}
		}

		donation := &domain.Donation{
			DonorID:       donor.ID,
			DonationDate:  donationDate.UTC(),
			ReceiptNumber: receiptNumber,
			Status:        domain.StatusPending,
			ReceivedBy:    receivedBy,
			Notes:         strings.TrimSpace(cmd.Notes),
		}
		if err := repos.Donations.Create(ctx, donation); err != nil {
			return wrap("create donation", err)
		}

		total := 0
		for i, it := range cmd.Items {
			item, err := it.build(ctx, repos, fmt.Sprintf("items[%d]", i), donation.ID)
			if err != nil {
				return err
			}
			if err := repos.Items.Create(ctx, item); err != nil {
				return wrap("create donation item", err)
			}
			total += item.QuantityReceived
		}

		entry := newAuditEntry(donation.ID, domain.AuditCreated, receivedBy, now)
		entry.NewStatus = domain.StatusPending
		entry.Notes = donation.Notes
		entry.Details = auditDetails(map[string]interface{}{
			"receipt_number": receiptNumber,
			"item_count":     len(cmd.Items),
			"total_quantity": total,
		})
		if err := repos.Audit.Append(ctx, entry); err != nil {
			return wrap("append audit entry", err)
		}

		created, err = repos.Donations.FindDetailed(ctx, donation.ID)
		return wrap("load donation", err)
	})
	if err != nil {
		return nil, err
	}

	logger.Info(ctx).
		Uint("donation_id", created.ID).
		Uint("donor_id", created.DonorID).
		Int("item_count", len(created.Items)).
		Msg("Donation created")

	h.lc.publish(ctx, kafka.DonationEvent{
		EventType:  kafka.EventTypeDonationCreated,
		DonationID: created.ID,
		NewStatus:  string(created.Status),
		Actor:      receivedBy,
	})
	return created, nil
}
