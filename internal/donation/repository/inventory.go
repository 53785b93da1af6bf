package repository

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/tair/donation-tracker/internal/donation/domain"
)

type GormInventoryRepository struct {
	db *gorm.DB
}

func NewGormInventoryRepository(db *gorm.DB) *GormInventoryRepository {
	return &GormInventoryRepository{db: db}
}

func (r *GormInventoryRepository) Create(ctx context.Context, item *domain.InventoryItem) error {
	ctx, span := startSpan(ctx, "inventory.Create",
		idAttr("inventory.source_item_id", item.SourceDonationItemID),
		attribute.Int("inventory.quantity", item.Quantity),
		attribute.String("inventory.location", item.Location),
	)
	defer span.End()

	if err := r.db.WithContext(ctx).Omit(clause.Associations).Create(item).Error; err != nil {
		return recordErr(span, translate(err, domain.EntityInventory, 0))
	}
	span.SetAttributes(idAttr("inventory.id", item.ID))
	return nil
}

func (r *GormInventoryRepository) FindByID(ctx context.Context, id uint) (*domain.InventoryItem, error) {
	ctx, span := startSpan(ctx, "inventory.FindByID", idAttr("inventory.id", id))
	defer span.End()

	var item domain.InventoryItem
	err := r.db.WithContext(ctx).
		Preload("SourceDonationItem").
		Preload("SourceDonationItem.Product", unscoped).
		First(&item, id).Error
	if err != nil {
		return nil, recordErr(span, translate(err, domain.EntityInventory, id))
	}
	span.SetAttributes(
		attribute.Int("inventory.quantity", item.Quantity),
		attribute.Bool("inventory.blocked", item.IsBlocked),
	)
	return &item, nil
}

func (r *GormInventoryRepository) FindAll(ctx context.Context, filter domain.InventoryFilter) ([]domain.InventoryItem, error) {
	ctx, span := startSpan(ctx, "inventory.FindAll")
	defer span.End()

	q := r.db.WithContext(ctx).Model(&domain.InventoryItem{})
	if filter.Blocked != nil {
		q = q.Where("inventory_items.is_blocked = ?", *filter.Blocked)
	}
	if filter.ExpiringBefore != nil {
		q = q.Where("inventory_items.expiration_date IS NOT NULL AND inventory_items.expiration_date < ?", *filter.ExpiringBefore)
	}
	if filter.InStockOnly {
		q = q.Where("inventory_items.quantity > 0")
	}
	if filter.ProductID != 0 {
		q = q.Joins("JOIN donation_items ON donation_items.id = inventory_items.source_donation_item_id").
			Where("donation_items.product_id = ?", filter.ProductID)
	}

	var items []domain.InventoryItem
	err := q.Select("inventory_items.*").
		Preload("SourceDonationItem").
		Preload("SourceDonationItem.Product", unscoped).
		Order("inventory_items.id").
		Find(&items).Error
	if err != nil {
		return nil, recordErr(span, translate(err, domain.EntityInventory, 0))
	}
	span.SetAttributes(attribute.Int("result.count", len(items)))
	return items, nil
}

// AdjustQuantity applies delta in a single statement so concurrent adjustments
// never lose updates.
func (r *GormInventoryRepository) AdjustQuantity(ctx context.Context, id uint, delta int) error {
	ctx, span := startSpan(ctx, "inventory.AdjustQuantity", idAttr("inventory.id", id), attribute.Int("quantity.delta", delta))
	defer span.End()

	res := r.db.WithContext(ctx).Model(&domain.InventoryItem{}).
		Where("id = ?", id).
		Update("quantity", gorm.Expr("CASE WHEN quantity + ? < 0 THEN 0 ELSE quantity + ? END", delta, delta))
	if res.Error != nil {
		return recordErr(span, translate(res.Error, domain.EntityInventory, id))
	}
	if res.RowsAffected == 0 {
		return recordErr(span, domain.NotFoundError{Entity: domain.EntityInventory, ID: id})
	}
	return nil
}

func (r *GormInventoryRepository) SetBlocked(ctx context.Context, id uint, blocked bool, reason, actor string, at *time.Time) error {
	ctx, span := startSpan(ctx, "inventory.SetBlocked", idAttr("inventory.id", id), attribute.Bool("inventory.blocked", blocked))
	defer span.End()

	res := r.db.WithContext(ctx).Model(&domain.InventoryItem{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"is_blocked":   blocked,
			"block_reason": reason,
			"blocked_by":   actor,
			"blocked_at":   at,
		})
	if res.Error != nil {
		return recordErr(span, translate(res.Error, domain.EntityInventory, id))
	}
	if res.RowsAffected == 0 {
		return recordErr(span, domain.NotFoundError{Entity: domain.EntityInventory, ID: id})
	}
	return nil
}
