package domain

import (
	"context"
	"time"
)

// Donation represents one intake event. It is the unit of transactional
// consistency: its status, its items and its audit trail change together.
type Donation struct {
	ID            uint                 `json:"id" gorm:"primaryKey"`
	DonorID       uint                 `json:"donor_id" gorm:"not null;index"`
	Donor         *Donor               `json:"donor,omitempty" gorm:"foreignKey:DonorID"`
	DonationDate  time.Time            `json:"donation_date" gorm:"not null;index"`
	ReceiptNumber string               `json:"receipt_number" gorm:"not null;uniqueIndex"`
	Status        DonationStatus       `json:"status" gorm:"type:varchar(20);not null;index;default:'Pending'"`
	ReceivedBy    string               `json:"received_by" gorm:"not null"`
	InspectedBy   *string              `json:"inspected_by,omitempty"`
	Notes         string               `json:"notes"`
	Items         []DonationItem       `json:"items,omitempty" gorm:"foreignKey:DonationID"`
	Receipt       *DonationReceipt     `json:"receipt,omitempty" gorm:"foreignKey:DonationID"`
	AuditTrail    []DonationAuditTrail `json:"audit_trail,omitempty" gorm:"foreignKey:DonationID"`
	CreatedAt     time.Time            `json:"created_at"`
	UpdatedAt     time.Time            `json:"updated_at"`
}

// TableName specifies the table name
func (Donation) TableName() string {
	return "donations"
}

// TotalReceived sums the received quantity over all items
func (d *Donation) TotalReceived() int {
	total := 0
	for _, it := range d.Items {
		total += it.QuantityReceived
	}
	return total
}

// TotalApproved sums the approved quantity over all dispositioned items
func (d *Donation) TotalApproved() int {
	total := 0
	for _, it := range d.Items {
		if it.Disposition != nil {
			total += it.Disposition.QuantityApproved
		}
	}
	return total
}

// DonationItem is one line item of a donation
type DonationItem struct {
	ID               uint               `json:"id" gorm:"primaryKey"`
	DonationID       uint               `json:"donation_id" gorm:"not null;index"`
	ProductID        uint               `json:"product_id" gorm:"not null;index"`
	Product          *Product           `json:"product,omitempty" gorm:"foreignKey:ProductID"`
	QuantityReceived int                `json:"quantity_received" gorm:"not null"`
	UnitType         string             `json:"unit_type"`
	ExpirationDate   *time.Time         `json:"expiration_date,omitempty"`
	ManufactureDate  *time.Time         `json:"manufacture_date,omitempty"`
	BatchNumber      string             `json:"batch_number"`
	StorageLocation  string             `json:"storage_location"`
	Status           ItemStatus         `json:"status" gorm:"type:varchar(20);not null;default:'Received'"`
	Inspection       *QualityInspection `json:"inspection,omitempty" gorm:"foreignKey:DonationItemID"`
	Disposition      *Disposition       `json:"disposition,omitempty" gorm:"foreignKey:DonationItemID"`
	CreatedAt        time.Time          `json:"created_at"`
	UpdatedAt        time.Time          `json:"updated_at"`
}

// TableName specifies the table name
func (DonationItem) TableName() string {
	return "donation_items"
}

// DonationFilter holds the exact-match and range predicates for listing donations
type DonationFilter struct {
	Status  DonationStatus
	DonorID uint
	From    *time.Time
	To      *time.Time
}

// DonationRepository defines the contract for donation data access
type DonationRepository interface {
	Create(ctx context.Context, donation *Donation) error
	FindByID(ctx context.Context, id uint) (*Donation, error)
	// FindDetailed loads the donor, items with inspection and disposition, and receipt
	FindDetailed(ctx context.Context, id uint) (*Donation, error)
	ExistsByReceiptNumber(ctx context.Context, receiptNumber string) (bool, error)
	FindAll(ctx context.Context, filter DonationFilter) ([]Donation, error)
	UpdateStatus(ctx context.Context, id uint, status DonationStatus, inspectedBy *string) error
	// Delete removes the donation together with its items, inspections, receipt and audit trail
	Delete(ctx context.Context, id uint) error
}

// DonationItemRepository defines the contract for donation item data access
type DonationItemRepository interface {
	Create(ctx context.Context, item *DonationItem) error
	FindByID(ctx context.Context, id uint) (*DonationItem, error)
	FindByDonationID(ctx context.Context, donationID uint) ([]DonationItem, error)
	UpdateStatus(ctx context.Context, id uint, status ItemStatus) error
}
