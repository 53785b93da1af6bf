package domain

import (
	"context"
	"time"
)

// QualityInspection is the single inspection outcome recorded for a donation item
type QualityInspection struct {
	ID              uint             `json:"id" gorm:"primaryKey"`
	DonationItemID  uint             `json:"donation_item_id" gorm:"not null;uniqueIndex"`
	InspectedBy     string           `json:"inspected_by" gorm:"not null"`
	InspectedAt     time.Time        `json:"inspected_at"`
	Result          InspectionResult `json:"result" gorm:"type:varchar(20);not null"`
	QualityRating   *int             `json:"quality_rating,omitempty"`
	Notes           string           `json:"notes"`
	RejectionReason string           `json:"rejection_reason"`
	CreatedAt       time.Time        `json:"created_at"`
}

// TableName specifies the table name
func (QualityInspection) TableName() string {
	return "quality_inspections"
}

// Disposition splits a donation item's received quantity between inventory and
// waste. It is written once and never updated.
type Disposition struct {
	ID               uint            `json:"id" gorm:"primaryKey"`
	DonationItemID   uint            `json:"donation_item_id" gorm:"not null;uniqueIndex"`
	Type             DispositionType `json:"type" gorm:"type:varchar(20);not null"`
	QuantityApproved int             `json:"quantity_approved" gorm:"not null;default:0"`
	QuantityRejected int             `json:"quantity_rejected" gorm:"not null;default:0"`
	Reason           string          `json:"reason"`
	ApprovedBy       string          `json:"approved_by" gorm:"not null"`
	ApprovedAt       time.Time       `json:"approved_at"`
	CreatedAt        time.Time       `json:"created_at"`
}

// TableName specifies the table name
func (Disposition) TableName() string {
	return "dispositions"
}

// InspectionRepository defines the contract for inspection data access
type InspectionRepository interface {
	Create(ctx context.Context, inspection *QualityInspection) error
	FindByItemID(ctx context.Context, itemID uint) (*QualityInspection, error)
}

// DispositionRepository defines the contract for disposition data access.
// There is no update: dispositions are immutable.
type DispositionRepository interface {
	Create(ctx context.Context, disposition *Disposition) error
	FindByItemID(ctx context.Context, itemID uint) (*Disposition, error)
	CountByDonationID(ctx context.Context, donationID uint) (int64, error)
}
