package repository

import (
	"context"

	"go.opentelemetry.io/otel/attribute"
	"gorm.io/gorm"

	"github.com/tair/donation-tracker/internal/donation/domain"
)

type GormProductRepository struct {
	db *gorm.DB
}

func NewGormProductRepository(db *gorm.DB) *GormProductRepository {
	return &GormProductRepository{db: db}
}

func (r *GormProductRepository) Create(ctx context.Context, product *domain.Product) error {
	ctx, span := startSpan(ctx, "product.Create",
		attribute.String("product.name", product.Name),
		attribute.String("product.sku", product.SKU),
	)
	defer span.End()

	if err := r.db.WithContext(ctx).Create(product).Error; err != nil {
		return recordErr(span, translate(err, domain.EntityProduct, 0))
	}
	span.SetAttributes(idAttr("product.id", product.ID))
	return nil
}

func (r *GormProductRepository) FindByID(ctx context.Context, id uint) (*domain.Product, error) {
	ctx, span := startSpan(ctx, "product.FindByID", idAttr("product.id", id))
	defer span.End()

	var product domain.Product
	if err := r.db.WithContext(ctx).First(&product, id).Error; err != nil {
		return nil, recordErr(span, translate(err, domain.EntityProduct, id))
	}
	return &product, nil
}

// FindBySKU includes deleted products: the unique index still covers their SKU
func (r *GormProductRepository) FindBySKU(ctx context.Context, sku string) (*domain.Product, error) {
	ctx, span := startSpan(ctx, "product.FindBySKU", attribute.String("product.sku", sku))
	defer span.End()

	var product domain.Product
	if err := r.db.WithContext(ctx).Unscoped().Where("sku = ?", sku).First(&product).Error; err != nil {
		return nil, recordErr(span, translate(err, domain.EntityProduct, 0))
	}
	return &product, nil
}

func (r *GormProductRepository) FindAll(ctx context.Context, filter domain.ProductFilter) ([]domain.Product, error) {
	ctx, span := startSpan(ctx, "product.FindAll", attribute.String("filter.category", filter.Category))
	defer span.End()

	q := r.db.WithContext(ctx).Model(&domain.Product{})
	if filter.Category != "" {
		q = q.Where("category = ?", filter.Category)
	}
	if filter.Active != nil {
		q = q.Where("is_active = ?", *filter.Active)
	}

	var products []domain.Product
	if err := q.Order("id").Find(&products).Error; err != nil {
		return nil, recordErr(span, translate(err, domain.EntityProduct, 0))
	}
	span.SetAttributes(attribute.Int("result.count", len(products)))
	return products, nil
}

func (r *GormProductRepository) Update(ctx context.Context, product *domain.Product) error {
	ctx, span := startSpan(ctx, "product.Update", idAttr("product.id", product.ID))
	defer span.End()

	return recordErr(span, translate(r.db.WithContext(ctx).Save(product).Error, domain.EntityProduct, product.ID))
}

// Delete soft-deletes the product; donation items keep resolving it
func (r *GormProductRepository) Delete(ctx context.Context, id uint) error {
	ctx, span := startSpan(ctx, "product.Delete", idAttr("product.id", id))
	defer span.End()

	res := r.db.WithContext(ctx).Delete(&domain.Product{}, id)
	if res.Error != nil {
		return recordErr(span, translate(res.Error, domain.EntityProduct, id))
	}
	if res.RowsAffected == 0 {
		return recordErr(span, domain.NotFoundError{Entity: domain.EntityProduct, ID: id})
	}
	return nil
}
