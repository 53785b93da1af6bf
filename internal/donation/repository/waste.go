package repository

import (
	"context"

	"go.opentelemetry.io/otel/attribute"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/tair/donation-tracker/internal/donation/domain"
)

type GormWasteRepository struct {
	db *gorm.DB
}

func NewGormWasteRepository(db *gorm.DB) *GormWasteRepository {
	return &GormWasteRepository{db: db}
}

func (r *GormWasteRepository) Create(ctx context.Context, record *domain.WasteRecord) error {
	ctx, span := startSpan(ctx, "waste.Create",
		attribute.Int("waste.quantity", record.Quantity),
		attribute.String("waste.disposal_method", record.DisposalMethod),
	)
	defer span.End()

	if err := r.db.WithContext(ctx).Omit(clause.Associations).Create(record).Error; err != nil {
		return recordErr(span, translate(err, domain.EntityWaste, 0))
	}
	span.SetAttributes(idAttr("waste.id", record.ID))
	return nil
}

func (r *GormWasteRepository) FindByID(ctx context.Context, id uint) (*domain.WasteRecord, error) {
	ctx, span := startSpan(ctx, "waste.FindByID", idAttr("waste.id", id))
	defer span.End()

	var record domain.WasteRecord
	if err := r.db.WithContext(ctx).Preload("Product", unscoped).First(&record, id).Error; err != nil {
		return nil, recordErr(span, translate(err, domain.EntityWaste, id))
	}
	return &record, nil
}

func (r *GormWasteRepository) FindAll(ctx context.Context, filter domain.WasteFilter) ([]domain.WasteRecord, error) {
	ctx, span := startSpan(ctx, "waste.FindAll", attribute.String("filter.disposal_method", filter.DisposalMethod))
	defer span.End()

	q := r.db.WithContext(ctx).Model(&domain.WasteRecord{})
	if filter.From != nil {
		q = q.Where("disposed_at >= ?", *filter.From)
	}
	if filter.To != nil {
		q = q.Where("disposed_at <= ?", *filter.To)
	}
	if filter.DisposalMethod != "" {
		q = q.Where("disposal_method = ?", filter.DisposalMethod)
	}
	if filter.SourceItemID != 0 {
		q = q.Where("source_donation_item_id = ?", filter.SourceItemID)
	}

	var records []domain.WasteRecord
	if err := q.Preload("Product", unscoped).Order("id").Find(&records).Error; err != nil {
		return nil, recordErr(span, translate(err, domain.EntityWaste, 0))
	}
	span.SetAttributes(attribute.Int("result.count", len(records)))
	return records, nil
}
