package command

import (
	"context"
	"strings"

	"github.com/tair/donation-tracker/internal/donation/domain"
	"github.com/tair/donation-tracker/pkg/logger"
)

var disposalMethods = []string{
	domain.DisposalDiscarded,
	domain.DisposalCompost,
	domain.DisposalRecycled,
	domain.DisposalAnimalFeed,
}

// LogWasteCommand records waste outside a disposition, e.g. spoiled stock
type LogWasteCommand struct {
	ProductID      *uint
	SourceItemID   *uint
	Quantity       int
	Reason         string
	DisposalMethod string
	DisposedBy     string
	Notes          string
}

// LogWasteHandler handles log waste command
type LogWasteHandler struct {
	lc Lifecycle
}

// NewLogWasteHandler creates a new log waste handler
func NewLogWasteHandler(lc Lifecycle) *LogWasteHandler {
	return &LogWasteHandler{lc: lc}
}

// Handle executes the log waste command
func (h *LogWasteHandler) Handle(ctx context.Context, cmd LogWasteCommand) (*domain.WasteRecord, error) {
	record, err := h.handle(ctx, cmd)
	return record, h.lc.finish(ctx, "log_waste", err)
}

func (h *LogWasteHandler) handle(ctx context.Context, cmd LogWasteCommand) (*domain.WasteRecord, error) {
	actor, err := requireActor("disposed_by", cmd.DisposedBy)
	if err != nil {
		return nil, err
	}
	if cmd.Quantity <= 0 {
		return nil, domain.ValidationError{Field: "quantity", Reason: "must be greater than 0"}
	}
	reason := strings.TrimSpace(cmd.Reason)
	if reason == "" {
		return nil, domain.ValidationError{Field: "reason", Reason: "is required"}
	}
	method := domain.DisposalDiscarded
	if m := strings.TrimSpace(cmd.DisposalMethod); m != "" {
		method = ""
		for _, known := range disposalMethods {
			if strings.EqualFold(known, m) {
				method = known
			}
		}
		if method == "" {
			return nil, domain.ValidationError{Field: "disposal_method", Reason: "unknown disposal method"}
		}
	}

	record := &domain.WasteRecord{
		Quantity:       cmd.Quantity,
		Reason:         reason,
		DisposalMethod: method,
		DisposedAt:     h.lc.now(),
		DisposedBy:     actor,
		Notes:          strings.TrimSpace(cmd.Notes),
	}

	err = h.lc.UoW.Atomic(ctx, func(repos domain.Repositories) error {
		if cmd.SourceItemID != nil {
			item, err := repos.Items.FindByID(ctx, *cmd.SourceItemID)
			if err != nil {
				return referenceError("source_item_id", err)
			}
			record.SourceDonationItemID = &item.ID
			productID := item.ProductID
			record.ProductID = &productID
		}
		if cmd.ProductID != nil {
			product, err := repos.Products.FindByID(ctx, *cmd.ProductID)
			if err != nil {
				return referenceError("product_id", err)
			}
			if record.ProductID != nil && *record.ProductID != product.ID {
				return domain.ValidationError{Field: "product_id", Reason: "does not match the source item's product"}
			}
			record.ProductID = &product.ID
		}
		return wrap("create waste record", repos.Waste.Create(ctx, record))
	})
	if err != nil {
		return nil, err
	}

	logger.Info(ctx).
		Uint("waste_id", record.ID).
		Int("quantity", record.Quantity).
		Str("disposal_method", record.DisposalMethod).
		Msg("Waste logged")
	return record, nil
}
