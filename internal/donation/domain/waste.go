package domain

import (
	"context"
	"time"
)

// Disposal methods
const (
	DisposalDiscarded  = "Discarded"
	DisposalCompost    = "Compost"
	DisposalRecycled   = "Recycled"
	DisposalAnimalFeed = "AnimalFeed"
)

// WasteRecord represents a quantity removed from potential use
type WasteRecord struct {
	ID                   uint          `json:"id" gorm:"primaryKey"`
	SourceDonationItemID *uint         `json:"source_donation_item_id,omitempty" gorm:"index"`
	SourceDonationItem   *DonationItem `json:"source_donation_item,omitempty" gorm:"foreignKey:SourceDonationItemID"`
	ProductID            *uint         `json:"product_id,omitempty" gorm:"index"`
	Product              *Product      `json:"product,omitempty" gorm:"foreignKey:ProductID"`
	Quantity             int           `json:"quantity" gorm:"not null"`
	Reason               string        `json:"reason" gorm:"not null"`
	DisposalMethod       string        `json:"disposal_method"`
	DisposedAt           time.Time     `json:"disposed_at" gorm:"index"`
	DisposedBy           string        `json:"disposed_by"`
	Notes                string        `json:"notes"`
	CreatedAt            time.Time     `json:"created_at"`
}

// TableName specifies the table name
func (WasteRecord) TableName() string {
	return "waste_records"
}

// WasteFilter holds the predicates for listing waste records
type WasteFilter struct {
	From           *time.Time
	To             *time.Time
	DisposalMethod string
	SourceItemID   uint
}

// WasteRepository defines the contract for waste data access
type WasteRepository interface {
	Create(ctx context.Context, record *WasteRecord) error
	FindByID(ctx context.Context, id uint) (*WasteRecord, error)
	FindAll(ctx context.Context, filter WasteFilter) ([]WasteRecord, error)
}
