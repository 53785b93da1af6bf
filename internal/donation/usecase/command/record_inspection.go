package command

import (
	"context"
	"strings"

	"github.com/tair/donation-tracker/internal/donation/domain"
	"github.com/tair/donation-tracker/kafka"
	"github.com/tair/donation-tracker/pkg/logger"
)

// RecordInspectionCommand records the quality inspection of one item
type RecordInspectionCommand struct {
	ItemID          uint
	InspectedBy     string
	Result          string
	QualityRating   *int
	Notes           string
	RejectionReason string
}

// RecordInspectionHandler handles record inspection command
type RecordInspectionHandler struct {
	lc Lifecycle
}

// NewRecordInspectionHandler creates a new record inspection handler
func NewRecordInspectionHandler(lc Lifecycle) *RecordInspectionHandler {
	return &RecordInspectionHandler{lc: lc}
}

// Handle executes the record inspection command
func (h *RecordInspectionHandler) Handle(ctx context.Context, cmd RecordInspectionCommand) (*domain.QualityInspection, error) {
	inspection, err := h.handle(ctx, cmd)
	return inspection, h.lc.finish(ctx, "record_inspection", err)
}

func (h *RecordInspectionHandler) handle(ctx context.Context, cmd RecordInspectionCommand) (*domain.QualityInspection, error) {
	inspector, err := requireActor("inspected_by", cmd.InspectedBy)
	if err != nil {
		return nil, err
	}
	result, ok := domain.ParseInspectionResult(cmd.Result)
	if !ok {
		return nil, domain.ValidationError{Field: "result", Reason: "must be Approved, Rejected or Conditional"}
	}
	if cmd.QualityRating != nil && (*cmd.QualityRating < 1 || *cmd.QualityRating > 5) {
		return nil, domain.ValidationError{Field: "quality_rating", Reason: "must be between 1 and 5"}
	}

	now := h.lc.now()
	var (
		inspection *domain.QualityInspection
		donationID uint
		oldStatus  domain.DonationStatus
		newStatus  domain.DonationStatus
	)
	err = h.lc.UoW.Atomic(ctx, func(repos domain.Repositories) error {
		item, donation, err := workableItem(ctx, repos, cmd.ItemID, func(item *domain.DonationItem) error {
			if item.Inspection != nil {
				return domain.ConflictError{Entity: domain.EntityInspection, Reason: "item already inspected"}
			}
			if item.Disposition != nil {
				return domain.ConflictError{Entity: domain.EntityInspection, Reason: "item already dispositioned"}
			}
			return nil
		})
		if err != nil {
			return err
		}
		donationID, oldStatus = donation.ID, donation.Status

		inspection = &domain.QualityInspection{
			DonationItemID:  item.ID,
			InspectedBy:     inspector,
			InspectedAt:     now,
			Result:          result,
			QualityRating:   cmd.QualityRating,
			Notes:           strings.TrimSpace(cmd.Notes),
			RejectionReason: strings.TrimSpace(cmd.RejectionReason),
		}
		if err := repos.Inspections.Create(ctx, inspection); err != nil {
			return wrap("create inspection", err)
		}
		if err := repos.Items.UpdateStatus(ctx, item.ID, domain.ItemInspected); err != nil {
			return wrap("update item status", err)
		}

		var inspectedBy *string
		if donation.InspectedBy == nil {
			inspectedBy = &inspector
		}
		newStatus, err = rederive(ctx, repos, donation, inspectedBy)
		if err != nil {
			return wrap("derive donation status", err)
		}

		entry := newAuditEntry(donation.ID, domain.AuditInspectionRecorded, inspector, now)
		if newStatus != oldStatus {
			entry.OldStatus, entry.NewStatus = oldStatus, newStatus
		}
		entry.Notes = inspection.Notes
		entry.Details = auditDetails(map[string]interface{}{
			"item_id":          item.ID,
			"inspection_id":    inspection.ID,
			"result":           result,
			"quality_rating":   cmd.QualityRating,
			"rejection_reason": inspection.RejectionReason,
		})
		return wrap("append audit entry", repos.Audit.Append(ctx, entry))
	})
	if err != nil {
		return nil, err
	}

	h.lc.Metrics.StatusTransition(string(oldStatus), string(newStatus))
	logger.Info(ctx).
		Uint("donation_id", donationID).
		Uint("item_id", cmd.ItemID).
		Str("result", string(result)).
		Str("status", string(newStatus)).
		Msg("Inspection recorded")

	h.lc.publish(ctx, kafka.DonationEvent{
		EventType:  kafka.EventTypeInspectionRecorded,
		DonationID: donationID,
		ItemID:     cmd.ItemID,
		OldStatus:  string(oldStatus),
		NewStatus:  string(newStatus),
		Actor:      inspector,
	})
	return inspection, nil
}
