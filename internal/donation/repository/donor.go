package repository

import (
	"context"

	"go.opentelemetry.io/otel/attribute"
	"gorm.io/gorm"

	"github.com/tair/donation-tracker/internal/donation/domain"
)

type GormDonorRepository struct {
	db *gorm.DB
}

func NewGormDonorRepository(db *gorm.DB) *GormDonorRepository {
	return &GormDonorRepository{db: db}
}

func (r *GormDonorRepository) Create(ctx context.Context, donor *domain.Donor) error {
	ctx, span := startSpan(ctx, "donor.Create", attribute.String("donor.name", donor.Name))
	defer span.End()

	if err := r.db.WithContext(ctx).Create(donor).Error; err != nil {
		return recordErr(span, translate(err, domain.EntityDonor, 0))
	}
	span.SetAttributes(idAttr("donor.id", donor.ID))
	return nil
}

func (r *GormDonorRepository) FindByID(ctx context.Context, id uint) (*domain.Donor, error) {
	ctx, span := startSpan(ctx, "donor.FindByID", idAttr("donor.id", id))
	defer span.End()

	var donor domain.Donor
	if err := r.db.WithContext(ctx).First(&donor, id).Error; err != nil {
		return nil, recordErr(span, translate(err, domain.EntityDonor, id))
	}
	return &donor, nil
}

func (r *GormDonorRepository) FindAll(ctx context.Context, filter domain.DonorFilter) ([]domain.Donor, error) {
	ctx, span := startSpan(ctx, "donor.FindAll")
	defer span.End()

	q := r.db.WithContext(ctx).Model(&domain.Donor{})
	if filter.Active != nil {
		q = q.Where("is_active = ?", *filter.Active)
	}
	if filter.Type != "" {
		q = q.Where("type = ?", filter.Type)
	}

	var donors []domain.Donor
	if err := q.Order("id").Find(&donors).Error; err != nil {
		return nil, recordErr(span, translate(err, domain.EntityDonor, 0))
	}
	span.SetAttributes(attribute.Int("result.count", len(donors)))
	return donors, nil
}

func (r *GormDonorRepository) Update(ctx context.Context, donor *domain.Donor) error {
	ctx, span := startSpan(ctx, "donor.Update", idAttr("donor.id", donor.ID))
	defer span.End()

	return recordErr(span, translate(r.db.WithContext(ctx).Save(donor).Error, domain.EntityDonor, donor.ID))
}

func (r *GormDonorRepository) SetActive(ctx context.Context, id uint, active bool) error {
	ctx, span := startSpan(ctx, "donor.SetActive", idAttr("donor.id", id), attribute.Bool("donor.active", active))
	defer span.End()

	res := r.db.WithContext(ctx).Model(&domain.Donor{}).Where("id = ?", id).Update("is_active", active)
	if res.Error != nil {
		return recordErr(span, translate(res.Error, domain.EntityDonor, id))
	}
	if res.RowsAffected == 0 {
		return recordErr(span, domain.NotFoundError{Entity: domain.EntityDonor, ID: id})
	}
	return nil
}
