package domain

import (
	"context"
	"time"

	"gorm.io/gorm"
)

// Product represents a catalog entry donated goods are recorded against
type Product struct {
	ID          uint           `json:"id" gorm:"primaryKey"`
	Name        string         `json:"name" gorm:"not null"`
	SKU         string         `json:"sku" gorm:"uniqueIndex"`
	Category    string         `json:"category" gorm:"index"`
	UnitType    string         `json:"unit_type" gorm:"default:'unit'"`
	Description string         `json:"description"`
	IsActive    bool           `json:"is_active" gorm:"not null;default:true"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `json:"-" gorm:"index"`
}

// TableName specifies the table name
func (Product) TableName() string {
	return "products"
}

// ProductFilter holds the exact-match predicates for listing products
type ProductFilter struct {
	Category string
	Active   *bool
}

// ProductRepository defines the contract for product data access
type ProductRepository interface {
	Create(ctx context.Context, product *Product) error
	FindByID(ctx context.Context, id uint) (*Product, error)
	FindBySKU(ctx context.Context, sku string) (*Product, error)
	FindAll(ctx context.Context, filter ProductFilter) ([]Product, error)
	Update(ctx context.Context, product *Product) error
	Delete(ctx context.Context, id uint) error
}
