package domain

import (
	"context"
	"time"
)

// InventoryItem represents usable stock traceable to exactly one donation item
type InventoryItem struct {
	ID                   uint          `json:"id" gorm:"primaryKey"`
	SourceDonationItemID uint          `json:"source_donation_item_id" gorm:"not null;index"`
	SourceDonationItem   *DonationItem `json:"source_donation_item,omitempty" gorm:"foreignKey:SourceDonationItemID"`
	Quantity             int           `json:"quantity" gorm:"not null;default:0"`
	Location             string        `json:"location" gorm:"default:'warehouse'"`
	ExpirationDate       *time.Time    `json:"expiration_date,omitempty" gorm:"index"`
	IsBlocked            bool          `json:"is_blocked" gorm:"not null;default:false"`
	BlockReason          string        `json:"block_reason"`
	BlockedBy            string        `json:"blocked_by"`
	BlockedAt            *time.Time    `json:"blocked_at,omitempty"`
	DateReceived         time.Time     `json:"date_received"`
	CreatedAt            time.Time     `json:"created_at"`
	UpdatedAt            time.Time     `json:"updated_at"`
}

// TableName specifies the table name
func (InventoryItem) TableName() string {
	return "inventory_items"
}

// IsAvailable checks if the stock can be distributed
func (i *InventoryItem) IsAvailable() bool {
	return i.Quantity > 0 && !i.IsBlocked
}

// InventoryFilter holds the predicates for listing inventory
type InventoryFilter struct {
	Blocked        *bool
	ExpiringBefore *time.Time
	ProductID      uint
	InStockOnly    bool
}

// InventoryRepository defines the contract for inventory data access
type InventoryRepository interface {
	Create(ctx context.Context, item *InventoryItem) error
	FindByID(ctx context.Context, id uint) (*InventoryItem, error)
	FindAll(ctx context.Context, filter InventoryFilter) ([]InventoryItem, error)
	// AdjustQuantity applies delta atomically, clamping the result at zero
	AdjustQuantity(ctx context.Context, id uint, delta int) error
	SetBlocked(ctx context.Context, id uint, blocked bool, reason, actor string, at *time.Time) error
}
