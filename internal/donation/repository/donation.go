package repository

import (
	"context"

	"go.opentelemetry.io/otel/attribute"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/tair/donation-tracker/internal/donation/domain"
)

type GormDonationRepository struct {
	db *gorm.DB
}

func NewGormDonationRepository(db *gorm.DB) *GormDonationRepository {
	return &GormDonationRepository{db: db}
}

// Create inserts the donation row only; items are added through the item repository
func (r *GormDonationRepository) Create(ctx context.Context, donation *domain.Donation) error {
	ctx, span := startSpan(ctx, "donation.Create",
		idAttr("donation.donor_id", donation.DonorID),
		attribute.String("donation.receipt_number", donation.ReceiptNumber),
	)
	defer span.End()

	if err := r.db.WithContext(ctx).Omit(clause.Associations).Create(donation).Error; err != nil {
		return recordErr(span, translate(err, domain.EntityDonation, 0))
	}
	span.SetAttributes(idAttr("donation.id", donation.ID))
	return nil
}

func (r *GormDonationRepository) FindByID(ctx context.Context, id uint) (*domain.Donation, error) {
	ctx, span := startSpan(ctx, "donation.FindByID", idAttr("donation.id", id))
	defer span.End()

	var donation domain.Donation
	if err := r.db.WithContext(ctx).First(&donation, id).Error; err != nil {
		return nil, recordErr(span, translate(err, domain.EntityDonation, id))
	}
	return &donation, nil
}

func (r *GormDonationRepository) FindDetailed(ctx context.Context, id uint) (*domain.Donation, error) {
	ctx, span := startSpan(ctx, "donation.FindDetailed", idAttr("donation.id", id))
	defer span.End()

	var donation domain.Donation
	err := r.db.WithContext(ctx).
		Preload("Donor").
		Preload("Items", func(db *gorm.DB) *gorm.DB { return db.Order("id") }).
		Preload("Items.Product", unscoped).
		Preload("Items.Inspection").
		Preload("Items.Disposition").
		Preload("Receipt").
		First(&donation, id).Error
	if err != nil {
		return nil, recordErr(span, translate(err, domain.EntityDonation, id))
	}
	span.SetAttributes(attribute.Int("donation.item_count", len(donation.Items)))
	return &donation, nil
}

func (r *GormDonationRepository) ExistsByReceiptNumber(ctx context.Context, receiptNumber string) (bool, error) {
	ctx, span := startSpan(ctx, "donation.ExistsByReceiptNumber", attribute.String("donation.receipt_number", receiptNumber))
	defer span.End()

	var count int64
	err := r.db.WithContext(ctx).Model(&domain.Donation{}).
		Where("receipt_number = ?", receiptNumber).
		Count(&count).Error
	if err != nil {
		return false, recordErr(span, translate(err, domain.EntityDonation, 0))
	}
	return count > 0, nil
}

// FindAll applies the exact-match and date-range predicates in SQL and loads the
// donor and items so callers can search across them.
func (r *GormDonationRepository) FindAll(ctx context.Context, filter domain.DonationFilter) ([]domain.Donation, error) {
	ctx, span := startSpan(ctx, "donation.FindAll", attribute.String("filter.status", string(filter.Status)))
	defer span.End()

	q := r.db.WithContext(ctx).Model(&domain.Donation{})
	if filter.Status != "" {
		q = q.Where("status = ?", filter.Status)
	}
	if filter.DonorID != 0 {
		q = q.Where("donor_id = ?", filter.DonorID)
	}
	if filter.From != nil {
		q = q.Where("donation_date >= ?", *filter.From)
	}
	if filter.To != nil {
		q = q.Where("donation_date <= ?", *filter.To)
	}

	var donations []domain.Donation
	err := q.Preload("Donor").
		Preload("Items", func(db *gorm.DB) *gorm.DB { return db.Order("id") }).
		Order("id").
		Find(&donations).Error
	if err != nil {
		return nil, recordErr(span, translate(err, domain.EntityDonation, 0))
	}
	span.SetAttributes(attribute.Int("result.count", len(donations)))
	return donations, nil
}

func (r *GormDonationRepository) UpdateStatus(ctx context.Context, id uint, status domain.DonationStatus, inspectedBy *string) error {
	ctx, span := startSpan(ctx, "donation.UpdateStatus",
		idAttr("donation.id", id),
		attribute.String("donation.status", string(status)),
	)
	defer span.End()

	updates := map[string]interface{}{"status": status}
	if inspectedBy != nil {
		updates["inspected_by"] = *inspectedBy
	}

	res := r.db.WithContext(ctx).Model(&domain.Donation{}).Where("id = ?", id).Updates(updates)
	if res.Error != nil {
		return recordErr(span, translate(res.Error, domain.EntityDonation, id))
	}
	if res.RowsAffected == 0 {
		return recordErr(span, domain.NotFoundError{Entity: domain.EntityDonation, ID: id})
	}
	return nil
}

// Delete removes the donation with its items, inspections, receipt and audit trail.
// Waste records logged against its items keep their row but lose the link.
// Dispositions and stock are not touched: callers refuse donations that have them.
func (r *GormDonationRepository) Delete(ctx context.Context, id uint) error {
	ctx, span := startSpan(ctx, "donation.Delete", idAttr("donation.id", id))
	defer span.End()

	db := r.db.WithContext(ctx)

	var itemIDs []uint
	if err := db.Model(&domain.DonationItem{}).Where("donation_id = ?", id).Pluck("id", &itemIDs).Error; err != nil {
		return recordErr(span, translate(err, domain.EntityItem, 0))
	}

	if len(itemIDs) > 0 {
		steps := []struct {
			entity string
			run    func() error
		}{
			{domain.EntityWaste, func() error {
				return db.Model(&domain.WasteRecord{}).
					Where("source_donation_item_id IN ?", itemIDs).
					Update("source_donation_item_id", nil).Error
			}},
			{domain.EntityInspection, func() error {
				return db.Where("donation_item_id IN ?", itemIDs).Delete(&domain.QualityInspection{}).Error
			}},
			{domain.EntityItem, func() error {
				return db.Where("donation_id = ?", id).Delete(&domain.DonationItem{}).Error
			}},
		}
		for _, step := range steps {
			if err := step.run(); err != nil {
				return recordErr(span, translate(err, step.entity, id))
			}
		}
	}

	if err := db.Where("donation_id = ?", id).Delete(&domain.DonationReceipt{}).Error; err != nil {
		return recordErr(span, translate(err, domain.EntityReceipt, id))
	}
	if err := db.Where("donation_id = ?", id).Delete(&domain.DonationAuditTrail{}).Error; err != nil {
		return recordErr(span, translate(err, domain.EntityDonation, id))
	}

	res := db.Delete(&domain.Donation{}, id)
	if res.Error != nil {
		return recordErr(span, translate(res.Error, domain.EntityDonation, id))
	}
	if res.RowsAffected == 0 {
		return recordErr(span, domain.NotFoundError{Entity: domain.EntityDonation, ID: id})
	}
	span.SetAttributes(attribute.Int("donation.items_deleted", len(itemIDs)))
	return nil
}

type GormDonationItemRepository struct {
	db *gorm.DB
}

func NewGormDonationItemRepository(db *gorm.DB) *GormDonationItemRepository {
	return &GormDonationItemRepository{db: db}
}

func (r *GormDonationItemRepository) Create(ctx context.Context, item *domain.DonationItem) error {
	ctx, span := startSpan(ctx, "item.Create",
		idAttr("item.donation_id", item.DonationID),
		idAttr("item.product_id", item.ProductID),
		attribute.Int("item.quantity_received", item.QuantityReceived),
	)
	defer span.End()

	if err := r.db.WithContext(ctx).Omit(clause.Associations).Create(item).Error; err != nil {
		return recordErr(span, translate(err, domain.EntityItem, 0))
	}
	span.SetAttributes(idAttr("item.id", item.ID))
	return nil
}

func (r *GormDonationItemRepository) FindByID(ctx context.Context, id uint) (*domain.DonationItem, error) {
	ctx, span := startSpan(ctx, "item.FindByID", idAttr("item.id", id))
	defer span.End()

	var item domain.DonationItem
	err := r.db.WithContext(ctx).
		Preload("Product", unscoped).
		Preload("Inspection").
		Preload("Disposition").
		First(&item, id).Error
	if err != nil {
		return nil, recordErr(span, translate(err, domain.EntityItem, id))
	}
	return &item, nil
}

func (r *GormDonationItemRepository) FindByDonationID(ctx context.Context, donationID uint) ([]domain.DonationItem, error) {
	ctx, span := startSpan(ctx, "item.FindByDonationID", idAttr("item.donation_id", donationID))
	defer span.End()

	var items []domain.DonationItem
	err := r.db.WithContext(ctx).
		Preload("Product", unscoped).
		Preload("Inspection").
		Preload("Disposition").
		Where("donation_id = ?", donationID).
		Order("id").
		Find(&items).Error
	if err != nil {
		return nil, recordErr(span, translate(err, domain.EntityItem, 0))
	}
	span.SetAttributes(attribute.Int("result.count", len(items)))
	return items, nil
}

func (r *GormDonationItemRepository) UpdateStatus(ctx context.Context, id uint, status domain.ItemStatus) error {
	ctx, span := startSpan(ctx, "item.UpdateStatus", idAttr("item.id", id), attribute.String("item.status", string(status)))
	defer span.End()

	res := r.db.WithContext(ctx).Model(&domain.DonationItem{}).Where("id = ?", id).Update("status", status)
	if res.Error != nil {
		return recordErr(span, translate(res.Error, domain.EntityItem, id))
	}
	if res.RowsAffected == 0 {
		return recordErr(span, domain.NotFoundError{Entity: domain.EntityItem, ID: id})
	}
	return nil
}
