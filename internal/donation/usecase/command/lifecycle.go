package command

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"gorm.io/datatypes"

	"github.com/tair/donation-tracker/internal/donation/domain"
	"github.com/tair/donation-tracker/kafka"
	"github.com/tair/donation-tracker/pkg/logger"
	"github.com/tair/donation-tracker/pkg/metrics"
)

// EventPublisher delivers lifecycle events once their transaction has committed
type EventPublisher interface {
	PublishDonationEvent(ctx context.Context, event kafka.DonationEvent) error
}

// CacheInvalidator drops cached list pages of a namespace
type CacheInvalidator interface {
	Invalidate(ctx context.Context, namespace string) error
}

// Lifecycle bundles the collaborators shared by every command handler. Events,
// Metrics and Cache may be nil.
type Lifecycle struct {
	UoW     domain.UnitOfWork
	Clock   domain.Clock
	Events  EventPublisher
	Metrics *metrics.Metrics
	Cache   CacheInvalidator
}

func (l Lifecycle) now() time.Time {
	if l.Clock == nil {
		return domain.UTCClock()
	}
	return l.Clock()
}

// publish never fails the operation: the state change has already committed
func (l Lifecycle) publish(ctx context.Context, event kafka.DonationEvent) {
	if l.Events == nil {
		return
	}
	if event.Timestamp.IsZero() {
		event.Timestamp = l.now()
	}
	if err := l.Events.PublishDonationEvent(ctx, event); err != nil {
		logger.Error(ctx).
			Err(err).
			Str("event_type", event.EventType).
			Uint("donation_id", event.DonationID).
			Msg("Failed to publish donation event")
	}
}

func (l Lifecycle) invalidate(ctx context.Context, namespace string) {
	if l.Cache == nil {
		return
	}
	if err := l.Cache.Invalidate(ctx, namespace); err != nil {
		logger.Warn(ctx).Err(err).Str("namespace", namespace).Msg("Failed to invalidate cache")
	}
}

// finish counts the operation and logs its failure. Domain errors are expected
// outcomes and log at warn.
func (l Lifecycle) finish(ctx context.Context, op string, err error) error {
	l.Metrics.Operation(op, err)
	if err == nil {
		return nil
	}
	if isDomainError(err) {
		logger.Warn(ctx).Err(err).Str("operation", op).Msg("Operation rejected")
	} else {
		logger.Error(ctx).Err(err).Str("operation", op).Msg("Operation failed")
	}
	return err
}

func isDomainError(err error) bool {
	return domain.IsValidation(err) || domain.IsConflict(err) ||
		domain.IsNotFound(err) || domain.IsInvalidTransition(err)
}

// wrap adds operation context to infrastructure errors and leaves domain errors as they are
func wrap(action string, err error) error {
	if err == nil || isDomainError(err) {
		return err
	}
	return fmt.Errorf("failed to %s: %w", action, err)
}

func requireActor(field, actor string) (string, error) {
	actor = strings.TrimSpace(actor)
	if actor == "" {
		return "", domain.ValidationError{Field: field, Reason: "acting identity is required"}
	}
	return actor, nil
}

// referenceError turns a missing referenced entity into a validation failure of the request field
func referenceError(field string, err error) error {
	var nf domain.NotFoundError
	if errors.As(err, &nf) {
		return domain.ValidationError{Field: field, Reason: fmt.Sprintf("%s %d does not exist", nf.Entity, nf.ID)}
	}
	return err
}

func auditDetails(v map[string]interface{}) datatypes.JSON {
	if len(v) == 0 {
		return nil
	}
	raw, err := json.Marshal(v)
	if err != nil {
		return nil
	}
	return datatypes.JSON(raw)
}

func newAuditEntry(donationID uint, action domain.AuditAction, actor string, at time.Time) *domain.DonationAuditTrail {
	return &domain.DonationAuditTrail{
		DonationID:  donationID,
		Action:      action,
		PerformedBy: actor,
		PerformedAt: at,
	}
}

// workableItem loads an item and its donation. settled reports work already recorded
// on the item and runs before the donation status gate, so a repeated inspection or
// disposition conflicts even after the donation has settled. Items of donations that
// no longer accept item work are reported as not found.
func workableItem(ctx context.Context, repos domain.Repositories, itemID uint, settled func(*domain.DonationItem) error) (*domain.DonationItem, *domain.Donation, error) {
	item, err := repos.Items.FindByID(ctx, itemID)
	if err != nil {
		return nil, nil, err
	}
	if err := settled(item); err != nil {
		return nil, nil, err
	}
	donation, err := repos.Donations.FindByID(ctx, item.DonationID)
	if err != nil {
		return nil, nil, err
	}
	if !donation.Status.AcceptsItemWork() {
		return nil, nil, domain.NotFoundError{
			Entity: domain.EntityItem,
			ID:     itemID,
			Reason: fmt.Sprintf("donation %d is %s", donation.ID, donation.Status),
		}
	}
	return item, donation, nil
}

// rederive recomputes the donation status from its items and persists any change.
// inspectedBy, when set, is stored alongside.
func rederive(ctx context.Context, repos domain.Repositories, donation *domain.Donation, inspectedBy *string) (domain.DonationStatus, error) {
	items, err := repos.Items.FindByDonationID(ctx, donation.ID)
	if err != nil {
		return "", err
	}
	next := domain.DeriveStatus(donation.Status, items)
	if next == donation.Status && inspectedBy == nil {
		return next, nil
	}
	if err := repos.Donations.UpdateStatus(ctx, donation.ID, next, inspectedBy); err != nil {
		return "", err
	}
	return next, nil
}

// NewItem describes an item received with a donation
type NewItem struct {
	ProductID        uint
	QuantityReceived int
	UnitType         string
	ExpirationDate   *time.Time
	ManufactureDate  *time.Time
	BatchNumber      string
	StorageLocation  string
}

func (n NewItem) validate(field string) error {
	if n.ProductID == 0 {
		return domain.ValidationError{Field: field + ".product_id", Reason: "is required"}
	}
	if n.QuantityReceived <= 0 {
		return domain.ValidationError{Field: field + ".quantity_received", Reason: "must be greater than 0"}
	}
	if n.ExpirationDate != nil && n.ManufactureDate != nil && n.ExpirationDate.Before(*n.ManufactureDate) {
		return domain.ValidationError{Field: field + ".expiration_date", Reason: "is before the manufacture date"}
	}
	return nil
}

// build resolves the product and returns the item row ready to insert
func (n NewItem) build(ctx context.Context, repos domain.Repositories, field string, donationID uint) (*domain.DonationItem, error) {
	product, err := repos.Products.FindByID(ctx, n.ProductID)
	if err != nil {
		return nil, referenceError(field+".product_id", err)
	}
	unit := strings.TrimSpace(n.UnitType)
	if unit == "" {
		unit = product.UnitType
	}
	return &domain.DonationItem{
		DonationID:       donationID,
		ProductID:        product.ID,
		QuantityReceived: n.QuantityReceived,
		UnitType:         unit,
		ExpirationDate:   n.ExpirationDate,
		ManufactureDate:  n.ManufactureDate,
		BatchNumber:      strings.TrimSpace(n.BatchNumber),
		StorageLocation:  strings.TrimSpace(n.StorageLocation),
		Status:           domain.ItemReceived,
	}, nil
}
