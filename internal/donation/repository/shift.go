package repository

import (
	"context"

	"go.opentelemetry.io/otel/attribute"
	"gorm.io/gorm"

	"github.com/tair/donation-tracker/internal/donation/domain"
)

type GormVolunteerShiftRepository struct {
	db *gorm.DB
}

func NewGormVolunteerShiftRepository(db *gorm.DB) *GormVolunteerShiftRepository {
	return &GormVolunteerShiftRepository{db: db}
}

func (r *GormVolunteerShiftRepository) Create(ctx context.Context, shift *domain.VolunteerShift) error {
	ctx, span := startSpan(ctx, "shift.Create", attribute.String("shift.volunteer", shift.VolunteerName))
	defer span.End()

	if err := r.db.WithContext(ctx).Create(shift).Error; err != nil {
		return recordErr(span, translate(err, domain.EntityShift, 0))
	}
	span.SetAttributes(idAttr("shift.id", shift.ID))
	return nil
}

func (r *GormVolunteerShiftRepository) FindByID(ctx context.Context, id uint) (*domain.VolunteerShift, error) {
	ctx, span := startSpan(ctx, "shift.FindByID", idAttr("shift.id", id))
	defer span.End()

	var shift domain.VolunteerShift
	if err := r.db.WithContext(ctx).First(&shift, id).Error; err != nil {
		return nil, recordErr(span, translate(err, domain.EntityShift, id))
	}
	return &shift, nil
}

func (r *GormVolunteerShiftRepository) FindAll(ctx context.Context, filter domain.ShiftFilter) ([]domain.VolunteerShift, error) {
	ctx, span := startSpan(ctx, "shift.FindAll", attribute.String("filter.status", string(filter.Status)))
	defer span.End()

	q := r.db.WithContext(ctx).Model(&domain.VolunteerShift{})
	if filter.Status != "" {
		q = q.Where("status = ?", filter.Status)
	}
	if filter.From != nil {
		q = q.Where("starts_at >= ?", *filter.From)
	}
	if filter.To != nil {
		q = q.Where("starts_at <= ?", *filter.To)
	}

	var shifts []domain.VolunteerShift
	if err := q.Order("starts_at, id").Find(&shifts).Error; err != nil {
		return nil, recordErr(span, translate(err, domain.EntityShift, 0))
	}
	span.SetAttributes(attribute.Int("result.count", len(shifts)))
	return shifts, nil
}

func (r *GormVolunteerShiftRepository) Update(ctx context.Context, shift *domain.VolunteerShift) error {
	ctx, span := startSpan(ctx, "shift.Update", idAttr("shift.id", shift.ID), attribute.String("shift.status", string(shift.Status)))
	defer span.End()

	return recordErr(span, translate(r.db.WithContext(ctx).Save(shift).Error, domain.EntityShift, shift.ID))
}
