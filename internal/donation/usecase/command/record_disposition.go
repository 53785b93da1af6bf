package command

import (
	"context"
	"strings"

	"github.com/tair/donation-tracker/internal/donation/domain"
	"github.com/tair/donation-tracker/kafka"
	"github.com/tair/donation-tracker/pkg/logger"
)

// RecordDispositionCommand splits an item's received quantity into stock and waste.
// Nil quantities count as zero; an empty Type defaults from the inspection result.
type RecordDispositionCommand struct {
	ItemID           uint
	Type             string
	QuantityApproved *int
	QuantityRejected *int
	ApprovedBy       string
	Reason           string
}

// DispositionResult is everything a disposition created
type DispositionResult struct {
	Disposition    *domain.Disposition   `json:"disposition"`
	InventoryItem  *domain.InventoryItem `json:"inventory_item,omitempty"`
	WasteRecord    *domain.WasteRecord   `json:"waste_record,omitempty"`
	DonationStatus domain.DonationStatus `json:"donation_status"`
}

// RecordDispositionHandler handles record disposition command
type RecordDispositionHandler struct {
	lc Lifecycle
}

// NewRecordDispositionHandler creates a new record disposition handler
func NewRecordDispositionHandler(lc Lifecycle) *RecordDispositionHandler {
	return &RecordDispositionHandler{lc: lc}
}

// Handle executes the record disposition command
func (h *RecordDispositionHandler) Handle(ctx context.Context, cmd RecordDispositionCommand) (*DispositionResult, error) {
	res, err := h.handle(ctx, cmd)
	return res, h.lc.finish(ctx, "record_disposition", err)
}

func (h *RecordDispositionHandler) handle(ctx context.Context, cmd RecordDispositionCommand) (*DispositionResult, error) {
	approver, err := requireActor("approved_by", cmd.ApprovedBy)
	if err != nil {
		return nil, err
	}
	var requested domain.DispositionType
	if strings.TrimSpace(cmd.Type) != "" {
		t, ok := domain.ParseDispositionType(cmd.Type)
		if !ok {
			return nil, domain.ValidationError{Field: "type", Reason: "must be Accepted, Rejected or Partial"}
		}
		requested = t
	}

	now := h.lc.now()
	var (
		res        DispositionResult
		donationID uint
		oldStatus  domain.DonationStatus
		split      domain.Split
	)
	err = h.lc.UoW.Atomic(ctx, func(repos domain.Repositories) error {
		item, donation, err := workableItem(ctx, repos, cmd.ItemID, func(item *domain.DonationItem) error {
			if item.Disposition != nil {
				return domain.ConflictError{Entity: domain.EntityDisposition, Reason: "item already dispositioned"}
			}
			return nil
		})
		if err != nil {
			return err
		}
		donationID, oldStatus = donation.ID, donation.Status

		dispType := requested
		if dispType == "" {
			if item.Inspection == nil {
				return domain.ValidationError{Field: "type", Reason: "is required when the item has no inspection"}
			}
			dispType = domain.DefaultDispositionType(item.Inspection.Result)
		}

		split, err = domain.Reconcile(item.QuantityReceived, cmd.QuantityApproved, cmd.QuantityRejected)
		if err != nil {
			return err
		}

		disposition := &domain.Disposition{
			DonationItemID:   item.ID,
			Type:             dispType,
			QuantityApproved: split.Approved,
			QuantityRejected: split.Rejected,
			Reason:           strings.TrimSpace(cmd.Reason),
			ApprovedBy:       approver,
			ApprovedAt:       now,
		}
		if err := repos.Dispositions.Create(ctx, disposition); err != nil {
			return wrap("create disposition", err)
		}
		res.Disposition = disposition

		stock, waste := split.Materialize(*item, *disposition, item.Inspection, now)
		if stock != nil {
			if err := repos.Inventory.Create(ctx, stock); err != nil {
				return wrap("create inventory item", err)
			}
			res.InventoryItem = stock
		}
		if waste != nil {
			if err := repos.Waste.Create(ctx, waste); err != nil {
				return wrap("create waste record", err)
			}
			res.WasteRecord = waste
		}

		if err := repos.Items.UpdateStatus(ctx, item.ID, domain.ItemDispositioned); err != nil {
			return wrap("update item status", err)
		}
		res.DonationStatus, err = rederive(ctx, repos, donation, nil)
		if err != nil {
			return wrap("derive donation status", err)
		}

		entry := newAuditEntry(donation.ID, domain.AuditDispositionRecorded, approver, now)
		if res.DonationStatus != oldStatus {
			entry.OldStatus, entry.NewStatus = oldStatus, res.DonationStatus
		}
		entry.Notes = disposition.Reason
		details := map[string]interface{}{
			"item_id":           item.ID,
			"disposition_id":    disposition.ID,
			"type":              dispType,
			"quantity_received": item.QuantityReceived,
			"quantity_approved": split.Approved,
			"quantity_rejected": split.Rejected,
			"unallocated":       split.Unallocated(item.QuantityReceived),
		}
		if stock != nil {
			details["inventory_item_id"] = stock.ID
		}
		if waste != nil {
			details["waste_record_id"] = waste.ID
		}
		entry.Details = auditDetails(details)
		return wrap("append audit entry", repos.Audit.Append(ctx, entry))
	})
	if err != nil {
		return nil, err
	}

	h.lc.Metrics.Disposed(split.Approved, split.Rejected)
	h.lc.Metrics.StatusTransition(string(oldStatus), string(res.DonationStatus))
	logger.Info(ctx).
		Uint("donation_id", donationID).
		Uint("item_id", cmd.ItemID).
		Int("quantity_approved", split.Approved).
		Int("quantity_rejected", split.Rejected).
		Str("status", string(res.DonationStatus)).
		Msg("Disposition recorded")

	h.lc.publish(ctx, kafka.DonationEvent{
		EventType:        kafka.EventTypeDispositionRecorded,
		DonationID:       donationID,
		ItemID:           cmd.ItemID,
		OldStatus:        string(oldStatus),
		NewStatus:        string(res.DonationStatus),
		Actor:            approver,
		QuantityApproved: split.Approved,
		QuantityRejected: split.Rejected,
	})
	return &res, nil
}
