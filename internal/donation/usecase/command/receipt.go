package command

import (
	"context"
	"strings"

	"github.com/tair/donation-tracker/internal/donation/domain"
	"github.com/tair/donation-tracker/kafka"
	"github.com/tair/donation-tracker/pkg/logger"
)

// ReceiptCommand issues or reissues the receipt of a donation
type ReceiptCommand struct {
	DonationID uint
	IssuedBy   string
	Notes      string
}

// GenerateReceiptHandler issues the first receipt of a donation
type GenerateReceiptHandler struct {
	lc Lifecycle
}

// NewGenerateReceiptHandler creates a new generate receipt handler
func NewGenerateReceiptHandler(lc Lifecycle) *GenerateReceiptHandler {
	return &GenerateReceiptHandler{lc: lc}
}

// Handle executes the generate receipt command
func (h *GenerateReceiptHandler) Handle(ctx context.Context, cmd ReceiptCommand) (*domain.DonationReceipt, error) {
	receipt, err := h.handle(ctx, cmd)
	return receipt, h.lc.finish(ctx, "generate_receipt", err)
}

func (h *GenerateReceiptHandler) handle(ctx context.Context, cmd ReceiptCommand) (*domain.DonationReceipt, error) {
	issuer, err := requireActor("issued_by", cmd.IssuedBy)
	if err != nil {
		return nil, err
	}

	now := h.lc.now()
	var receipt *domain.DonationReceipt
	err = h.lc.UoW.Atomic(ctx, func(repos domain.Repositories) error {
		donation, err := repos.Donations.FindDetailed(ctx, cmd.DonationID)
		if err != nil {
			return err
		}
		if donation.Receipt != nil {
			return domain.ConflictError{Entity: domain.EntityReceipt, Reason: "receipt already issued; reissue it instead"}
		}

		receipt = &domain.DonationReceipt{
			DonationID:         donation.ID,
			ReceiptNumber:      donation.ReceiptNumber,
			TotalItemsReceived: donation.TotalReceived(),
			TotalItemsApproved: donation.TotalApproved(),
			Revision:           1,
			IssuedBy:           issuer,
			IssuedAt:           now,
			Notes:              strings.TrimSpace(cmd.Notes),
		}
		if err := repos.Receipts.Create(ctx, receipt); err != nil {
			return wrap("create receipt", err)
		}

		entry := newAuditEntry(donation.ID, domain.AuditReceiptIssued, issuer, now)
		entry.Notes = receipt.Notes
		entry.Details = auditDetails(map[string]interface{}{
			"receipt_id":           receipt.ID,
			"revision":             receipt.Revision,
			"total_items_received": receipt.TotalItemsReceived,
			"total_items_approved": receipt.TotalItemsApproved,
		})
		return wrap("append audit entry", repos.Audit.Append(ctx, entry))
	})
	if err != nil {
		return nil, err
	}

	logger.Info(ctx).
		Uint("donation_id", receipt.DonationID).
		Int("total_items_received", receipt.TotalItemsReceived).
		Int("total_items_approved", receipt.TotalItemsApproved).
		Msg("Receipt issued")

	h.lc.publish(ctx, kafka.DonationEvent{
		EventType:        kafka.EventTypeReceiptIssued,
		DonationID:       receipt.DonationID,
		Actor:            issuer,
		QuantityApproved: receipt.TotalItemsApproved,
	})
	return receipt, nil
}

// ReissueReceiptHandler replaces a donation's receipt with freshly computed totals
type ReissueReceiptHandler struct {
	lc Lifecycle
}

// NewReissueReceiptHandler creates a new reissue receipt handler
func NewReissueReceiptHandler(lc Lifecycle) *ReissueReceiptHandler {
	return &ReissueReceiptHandler{lc: lc}
}

// Handle executes the reissue receipt command
func (h *ReissueReceiptHandler) Handle(ctx context.Context, cmd ReceiptCommand) (*domain.DonationReceipt, error) {
	receipt, err := h.handle(ctx, cmd)
	return receipt, h.lc.finish(ctx, "reissue_receipt", err)
}

func (h *ReissueReceiptHandler) handle(ctx context.Context, cmd ReceiptCommand) (*domain.DonationReceipt, error) {
	issuer, err := requireActor("issued_by", cmd.IssuedBy)
	if err != nil {
		return nil, err
	}

	now := h.lc.now()
	var receipt *domain.DonationReceipt
	err = h.lc.UoW.Atomic(ctx, func(repos domain.Repositories) error {
		donation, err := repos.Donations.FindDetailed(ctx, cmd.DonationID)
		if err != nil {
			return err
		}
		if donation.Receipt == nil {
			return domain.NotFoundError{Entity: domain.EntityReceipt, ID: donation.ID, Reason: "no receipt issued for donation"}
		}

		receipt = donation.Receipt
		previous := map[string]interface{}{
			"revision":             receipt.Revision,
			"total_items_received": receipt.TotalItemsReceived,
			"total_items_approved": receipt.TotalItemsApproved,
			"issued_by":            receipt.IssuedBy,
			"issued_at":            receipt.IssuedAt,
		}

		receipt.TotalItemsReceived = donation.TotalReceived()
		receipt.TotalItemsApproved = donation.TotalApproved()
		receipt.Revision++
		receipt.IssuedBy = issuer
		receipt.IssuedAt = now
		receipt.Notes = strings.TrimSpace(cmd.Notes)
		if err := repos.Receipts.Update(ctx, receipt); err != nil {
			return wrap("update receipt", err)
		}

		entry := newAuditEntry(donation.ID, domain.AuditReceiptReissued, issuer, now)
		entry.Notes = receipt.Notes
		entry.Details = auditDetails(map[string]interface{}{
			"receipt_id":           receipt.ID,
			"revision":             receipt.Revision,
			"total_items_received": receipt.TotalItemsReceived,
			"total_items_approved": receipt.TotalItemsApproved,
			"previous":             previous,
		})
		return wrap("append audit entry", repos.Audit.Append(ctx, entry))
	})
	if err != nil {
		return nil, err
	}

	logger.Info(ctx).
		Uint("donation_id", receipt.DonationID).
		Int("revision", receipt.Revision).
		Msg("Receipt reissued")

	h.lc.publish(ctx, kafka.DonationEvent{
		EventType:        kafka.EventTypeReceiptReissued,
		DonationID:       receipt.DonationID,
		Actor:            issuer,
		QuantityApproved: receipt.TotalItemsApproved,
	})
	return receipt, nil
}
