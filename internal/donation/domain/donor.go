package domain

import (
	"context"
	"time"
)

// DonorType distinguishes individual donors from organizations
type DonorType string

// Donor types
const (
	DonorIndividual   DonorType = "Individual"
	DonorOrganization DonorType = "Organization"
)

// Donor represents a person or organization that gives goods. Donors are
// deactivated rather than deleted because donations reference them.
type Donor struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	Name      string    `json:"name" gorm:"not null"`
	Email     string    `json:"email" gorm:"index"`
	Phone     string    `json:"phone"`
	Address   string    `json:"address"`
	Type      DonorType `json:"type" gorm:"type:varchar(20);default:'Individual'"`
	IsActive  bool      `json:"is_active" gorm:"not null;default:true"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName specifies the table name
func (Donor) TableName() string {
	return "donors"
}

// DonorFilter holds the exact-match predicates for listing donors
type DonorFilter struct {
	Active *bool
	Type   DonorType
}

// DonorRepository defines the contract for donor data access
type DonorRepository interface {
	Create(ctx context.Context, donor *Donor) error
	FindByID(ctx context.Context, id uint) (*Donor, error)
	FindAll(ctx context.Context, filter DonorFilter) ([]Donor, error)
	Update(ctx context.Context, donor *Donor) error
	SetActive(ctx context.Context, id uint, active bool) error
}
