package domain

import (
	"context"
	"time"
)

// DonationReceipt is a point-in-time snapshot of a donation's totals. It is only
// issued or reissued explicitly; Revision counts reissues.
type DonationReceipt struct {
	ID                 uint      `json:"id" gorm:"primaryKey"`
	DonationID         uint      `json:"donation_id" gorm:"not null;uniqueIndex"`
	ReceiptNumber      string    `json:"receipt_number" gorm:"not null"`
	TotalItemsReceived int       `json:"total_items_received"`
	TotalItemsApproved int       `json:"total_items_approved"`
	Revision           int       `json:"revision" gorm:"not null;default:1"`
	IssuedBy           string    `json:"issued_by" gorm:"not null"`
	IssuedAt           time.Time `json:"issued_at"`
	Notes              string    `json:"notes"`
	CreatedAt          time.Time `json:"created_at"`
	UpdatedAt          time.Time `json:"updated_at"`
}

// TableName specifies the table name
func (DonationReceipt) TableName() string {
	return "donation_receipts"
}

// ReceiptRepository defines the contract for receipt data access
type ReceiptRepository interface {
	Create(ctx context.Context, receipt *DonationReceipt) error
	FindByDonationID(ctx context.Context, donationID uint) (*DonationReceipt, error)
	Update(ctx context.Context, receipt *DonationReceipt) error
}
