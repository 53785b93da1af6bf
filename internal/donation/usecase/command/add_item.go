package command

import (
	"context"
	"fmt"

	"github.com/tair/donation-tracker/internal/donation/domain"
	"github.com/tair/donation-tracker/kafka"
	"github.com/tair/donation-tracker/pkg/logger"
)

// AddItemCommand appends an item to a donation still under intake
type AddItemCommand struct {
	DonationID uint
	Item       NewItem
	Actor      string
}

// AddItemHandler handles add item command
type AddItemHandler struct {
	lc Lifecycle
}

// NewAddItemHandler creates a new add item handler
func NewAddItemHandler(lc Lifecycle) *AddItemHandler {
	return &AddItemHandler{lc: lc}
}

// Handle executes the add item command
func (h *AddItemHandler) Handle(ctx context.Context, cmd AddItemCommand) (*domain.DonationItem, error) {
	item, err := h.handle(ctx, cmd)
	return item, h.lc.finish(ctx, "add_item", err)
}

func (h *AddItemHandler) handle(ctx context.Context, cmd AddItemCommand) (*domain.DonationItem, error) {
	actor, err := requireActor("actor", cmd.Actor)
	if err != nil {
		return nil, err
	}
	if err := cmd.Item.validate("item"); err != nil {
		return nil, err
	}

	now := h.lc.now()
	var item *domain.DonationItem
	err = h.lc.UoW.Atomic(ctx, func(repos domain.Repositories) error {
		donation, err := repos.Donations.FindByID(ctx, cmd.DonationID)
		if err != nil {
			return err
		}
		if !donation.Status.AcceptsItemWork() {
			return domain.NotFoundError{
				Entity: domain.EntityDonation,
				ID:     donation.ID,
				Reason: fmt.Sprintf("donation is %s", donation.Status),
			}
		}

		item, err = cmd.Item.build(ctx, repos, "item", donation.ID)
		if err != nil {
			return err
		}
		if err := repos.Items.Create(ctx, item); err != nil {
			return wrap("create donation item", err)
		}

		entry := newAuditEntry(donation.ID, domain.AuditItemAdded, actor, now)
		entry.Details = auditDetails(map[string]interface{}{
			"item_id":           item.ID,
			"product_id":        item.ProductID,
			"quantity_received": item.QuantityReceived,
		})
		return wrap("append audit entry", repos.Audit.Append(ctx, entry))
	})
	if err != nil {
		return nil, err
	}

	logger.Info(ctx).
		Uint("donation_id", item.DonationID).
		Uint("item_id", item.ID).
		Int("quantity_received", item.QuantityReceived).
		Msg("Donation item added")

	h.lc.publish(ctx, kafka.DonationEvent{
		EventType:  kafka.EventTypeItemAdded,
		DonationID: item.DonationID,
		ItemID:     item.ID,
		Actor:      actor,
	})
	return item, nil
}
