package repository

import (
	"context"

	"go.opentelemetry.io/otel/attribute"
	"gorm.io/gorm"

	"github.com/tair/donation-tracker/internal/donation/domain"
)

type GormReceiptRepository struct {
	db *gorm.DB
}

func NewGormReceiptRepository(db *gorm.DB) *GormReceiptRepository {
	return &GormReceiptRepository{db: db}
}

func (r *GormReceiptRepository) Create(ctx context.Context, receipt *domain.DonationReceipt) error {
	ctx, span := startSpan(ctx, "receipt.Create",
		idAttr("receipt.donation_id", receipt.DonationID),
		attribute.String("receipt.number", receipt.ReceiptNumber),
	)
	defer span.End()

	if err := r.db.WithContext(ctx).Create(receipt).Error; err != nil {
		return recordErr(span, translate(err, domain.EntityReceipt, 0))
	}
	span.SetAttributes(idAttr("receipt.id", receipt.ID))
	return nil
}

func (r *GormReceiptRepository) FindByDonationID(ctx context.Context, donationID uint) (*domain.DonationReceipt, error) {
	ctx, span := startSpan(ctx, "receipt.FindByDonationID", idAttr("receipt.donation_id", donationID))
	defer span.End()

	var receipt domain.DonationReceipt
	if err := r.db.WithContext(ctx).Where("donation_id = ?", donationID).First(&receipt).Error; err != nil {
		return nil, recordErr(span, translate(err, domain.EntityReceipt, donationID))
	}
	return &receipt, nil
}

func (r *GormReceiptRepository) Update(ctx context.Context, receipt *domain.DonationReceipt) error {
	ctx, span := startSpan(ctx, "receipt.Update",
		idAttr("receipt.id", receipt.ID),
		attribute.Int("receipt.revision", receipt.Revision),
	)
	defer span.End()

	return recordErr(span, translate(r.db.WithContext(ctx).Save(receipt).Error, domain.EntityReceipt, receipt.DonationID))
}
