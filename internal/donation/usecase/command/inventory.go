package command

import (
	"context"
	"strings"

	"github.com/tair/donation-tracker/internal/donation/domain"
	"github.com/tair/donation-tracker/kafka"
	"github.com/tair/donation-tracker/pkg/logger"
)

// AdjustInventoryCommand changes the quantity on hand by Delta
type AdjustInventoryCommand struct {
	InventoryID uint
	Delta       int
	Actor       string
	Reason      string
}

// AdjustInventoryHandler handles adjust inventory command
type AdjustInventoryHandler struct {
	lc Lifecycle
}

// NewAdjustInventoryHandler creates a new adjust inventory handler
func NewAdjustInventoryHandler(lc Lifecycle) *AdjustInventoryHandler {
	return &AdjustInventoryHandler{lc: lc}
}

// Handle applies the delta atomically; the quantity never drops below zero
func (h *AdjustInventoryHandler) Handle(ctx context.Context, cmd AdjustInventoryCommand) (*domain.InventoryItem, error) {
	item, err := h.handle(ctx, cmd)
	return item, h.lc.finish(ctx, "adjust_inventory", err)
}

func (h *AdjustInventoryHandler) handle(ctx context.Context, cmd AdjustInventoryCommand) (*domain.InventoryItem, error) {
	actor, err := requireActor("actor", cmd.Actor)
	if err != nil {
		return nil, err
	}
	if cmd.Delta == 0 {
		return nil, domain.ValidationError{Field: "delta", Reason: "must not be zero"}
	}

	repos := h.lc.UoW.Repos()
	if err := repos.Inventory.AdjustQuantity(ctx, cmd.InventoryID, cmd.Delta); err != nil {
		return nil, wrap("adjust inventory quantity", err)
	}
	item, err := repos.Inventory.FindByID(ctx, cmd.InventoryID)
	if err != nil {
		return nil, wrap("load inventory item", err)
	}

	logger.Info(ctx).
		Uint("inventory_id", item.ID).
		Int("delta", cmd.Delta).
		Int("quantity", item.Quantity).
		Str("actor", actor).
		Str("reason", strings.TrimSpace(cmd.Reason)).
		Msg("Inventory adjusted")

	h.lc.publish(ctx, inventoryEvent(kafka.EventTypeInventoryAdjusted, item, actor))
	return item, nil
}

// SetBlockedCommand blocks or unblocks an inventory item. Blocking needs a reason.
type SetBlockedCommand struct {
	InventoryID uint
	Blocked     bool
	Reason      string
	Actor       string
}

// SetBlockedHandler handles block and unblock commands
type SetBlockedHandler struct {
	lc Lifecycle
}

// NewSetBlockedHandler creates a new set blocked handler
func NewSetBlockedHandler(lc Lifecycle) *SetBlockedHandler {
	return &SetBlockedHandler{lc: lc}
}

// Handle executes the set blocked command
func (h *SetBlockedHandler) Handle(ctx context.Context, cmd SetBlockedCommand) (*domain.InventoryItem, error) {
	item, err := h.handle(ctx, cmd)
	op := "unblock_inventory"
	if cmd.Blocked {
		op = "block_inventory"
	}
	return item, h.lc.finish(ctx, op, err)
}

func (h *SetBlockedHandler) handle(ctx context.Context, cmd SetBlockedCommand) (*domain.InventoryItem, error) {
	actor, err := requireActor("actor", cmd.Actor)
	if err != nil {
		return nil, err
	}
	reason := strings.TrimSpace(cmd.Reason)
	if cmd.Blocked && reason == "" {
		return nil, domain.ValidationError{Field: "reason", Reason: "is required to block stock"}
	}

	repos := h.lc.UoW.Repos()
	if cmd.Blocked {
		now := h.lc.now()
		err = repos.Inventory.SetBlocked(ctx, cmd.InventoryID, true, reason, actor, &now)
	} else {
		err = repos.Inventory.SetBlocked(ctx, cmd.InventoryID, false, "", "", nil)
	}
	if err != nil {
		return nil, wrap("update inventory block", err)
	}
	item, err := repos.Inventory.FindByID(ctx, cmd.InventoryID)
	if err != nil {
		return nil, wrap("load inventory item", err)
	}

	logger.Info(ctx).
		Uint("inventory_id", item.ID).
		Bool("blocked", item.IsBlocked).
		Str("actor", actor).
		Msg("Inventory block changed")

	h.lc.publish(ctx, inventoryEvent(kafka.EventTypeInventoryBlockToggle, item, actor))
	return item, nil
}

func inventoryEvent(eventType string, item *domain.InventoryItem, actor string) kafka.DonationEvent {
	event := kafka.DonationEvent{
		EventType:        eventType,
		ItemID:           item.SourceDonationItemID,
		Actor:            actor,
		QuantityApproved: item.Quantity,
	}
	if item.SourceDonationItem != nil {
		event.DonationID = item.SourceDonationItem.DonationID
	}
	return event
}
