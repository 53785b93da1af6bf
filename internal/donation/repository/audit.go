package repository

import (
	"context"

	"go.opentelemetry.io/otel/attribute"
	"gorm.io/gorm"

	"github.com/tair/donation-tracker/internal/donation/domain"
)

// GormAuditRepository only inserts and reads; audit rows are never rewritten
type GormAuditRepository struct {
	db *gorm.DB
}

func NewGormAuditRepository(db *gorm.DB) *GormAuditRepository {
	return &GormAuditRepository{db: db}
}

func (r *GormAuditRepository) Append(ctx context.Context, entry *domain.DonationAuditTrail) error {
	ctx, span := startSpan(ctx, "audit.Append",
		idAttr("audit.donation_id", entry.DonationID),
		attribute.String("audit.action", string(entry.Action)),
	)
	defer span.End()

	if entry.ID != 0 {
		return recordErr(span, domain.ConflictError{Entity: domain.EntityAudit, Reason: "entries are append-only"})
	}
	if err := r.db.WithContext(ctx).Create(entry).Error; err != nil {
		return recordErr(span, translate(err, domain.EntityAudit, 0))
	}
	return nil
}

// FindByDonationID returns the trail oldest first
func (r *GormAuditRepository) FindByDonationID(ctx context.Context, donationID uint) ([]domain.DonationAuditTrail, error) {
	ctx, span := startSpan(ctx, "audit.FindByDonationID", idAttr("audit.donation_id", donationID))
	defer span.End()

	var entries []domain.DonationAuditTrail
	err := r.db.WithContext(ctx).
		Where("donation_id = ?", donationID).
		Order("performed_at, id").
		Find(&entries).Error
	if err != nil {
		return nil, recordErr(span, translate(err, domain.EntityAudit, donationID))
	}
	span.SetAttributes(attribute.Int("result.count", len(entries)))
	return entries, nil
}
