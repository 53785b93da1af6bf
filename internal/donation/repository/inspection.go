package repository

import (
	"context"

	"go.opentelemetry.io/otel/attribute"
	"gorm.io/gorm"

	"github.com/tair/donation-tracker/internal/donation/domain"
)

type GormInspectionRepository struct {
	db *gorm.DB
}

func NewGormInspectionRepository(db *gorm.DB) *GormInspectionRepository {
	return &GormInspectionRepository{db: db}
}

func (r *GormInspectionRepository) Create(ctx context.Context, inspection *domain.QualityInspection) error {
	ctx, span := startSpan(ctx, "inspection.Create",
		idAttr("inspection.item_id", inspection.DonationItemID),
		attribute.String("inspection.result", string(inspection.Result)),
	)
	defer span.End()

	if err := r.db.WithContext(ctx).Create(inspection).Error; err != nil {
		return recordErr(span, translate(err, domain.EntityInspection, 0))
	}
	span.SetAttributes(idAttr("inspection.id", inspection.ID))
	return nil
}

func (r *GormInspectionRepository) FindByItemID(ctx context.Context, itemID uint) (*domain.QualityInspection, error) {
	ctx, span := startSpan(ctx, "inspection.FindByItemID", idAttr("inspection.item_id", itemID))
	defer span.End()

	var inspection domain.QualityInspection
	if err := r.db.WithContext(ctx).Where("donation_item_id = ?", itemID).First(&inspection).Error; err != nil {
		return nil, recordErr(span, translate(err, domain.EntityInspection, itemID))
	}
	return &inspection, nil
}

type GormDispositionRepository struct {
	db *gorm.DB
}

func NewGormDispositionRepository(db *gorm.DB) *GormDispositionRepository {
	return &GormDispositionRepository{db: db}
}

func (r *GormDispositionRepository) Create(ctx context.Context, disposition *domain.Disposition) error {
	ctx, span := startSpan(ctx, "disposition.Create",
		idAttr("disposition.item_id", disposition.DonationItemID),
		attribute.Int("disposition.quantity_approved", disposition.QuantityApproved),
		attribute.Int("disposition.quantity_rejected", disposition.QuantityRejected),
	)
	defer span.End()

	if err := r.db.WithContext(ctx).Create(disposition).Error; err != nil {
		return recordErr(span, translate(err, domain.EntityDisposition, 0))
	}
	span.SetAttributes(idAttr("disposition.id", disposition.ID))
	return nil
}

func (r *GormDispositionRepository) FindByItemID(ctx context.Context, itemID uint) (*domain.Disposition, error) {
	ctx, span := startSpan(ctx, "disposition.FindByItemID", idAttr("disposition.item_id", itemID))
	defer span.End()

	var disposition domain.Disposition
	if err := r.db.WithContext(ctx).Where("donation_item_id = ?", itemID).First(&disposition).Error; err != nil {
		return nil, recordErr(span, translate(err, domain.EntityDisposition, itemID))
	}
	return &disposition, nil
}

func (r *GormDispositionRepository) CountByDonationID(ctx context.Context, donationID uint) (int64, error) {
	ctx, span := startSpan(ctx, "disposition.CountByDonationID", idAttr("donation.id", donationID))
	defer span.End()

	var count int64
	err := r.db.WithContext(ctx).Model(&domain.Disposition{}).
		Joins("JOIN donation_items ON donation_items.id = dispositions.donation_item_id").
		Where("donation_items.donation_id = ?", donationID).
		Count(&count).Error
	if err != nil {
		return 0, recordErr(span, translate(err, domain.EntityDisposition, 0))
	}
	return count, nil
}
