package command

import (
	"context"
	"fmt"
	"strings"

	"github.com/tair/donation-tracker/internal/donation/domain"
	"github.com/tair/donation-tracker/pkg/cache"
	"github.com/tair/donation-tracker/pkg/logger"
)

// ProductCommand carries the editable product fields
type ProductCommand struct {
	ID          uint
	Name        string
	SKU         string
	Category    string
	UnitType    string
	Description string
	IsActive    *bool
}

func (c ProductCommand) apply(product *domain.Product) error {
	name := strings.TrimSpace(c.Name)
	if name == "" {
		return domain.ValidationError{Field: "name", Reason: "is required"}
	}
	sku := strings.ToUpper(strings.TrimSpace(c.SKU))
	if sku == "" {
		return domain.ValidationError{Field: "sku", Reason: "is required"}
	}
	unit := strings.TrimSpace(c.UnitType)
	if unit == "" {
		unit = "unit"
	}

	product.Name = name
	product.SKU = sku
	product.Category = strings.TrimSpace(c.Category)
	product.UnitType = unit
	product.Description = strings.TrimSpace(c.Description)
	if c.IsActive != nil {
		product.IsActive = *c.IsActive
	}
	return nil
}

// skuTaken reports a conflict when another product, deleted ones included, holds sku
func skuTaken(ctx context.Context, repos domain.Repositories, sku string, self uint) error {
	existing, err := repos.Products.FindBySKU(ctx, sku)
	if domain.IsNotFound(err) {
		return nil
	}
	if err != nil {
		return wrap("check sku", err)
	}
	if existing.ID != self {
		return domain.ConflictError{Entity: domain.EntityProduct, Reason: fmt.Sprintf("SKU %s already exists", sku)}
	}
	return nil
}

// CreateProductHandler handles product creation command
type CreateProductHandler struct {
	lc Lifecycle
}

// NewCreateProductHandler creates a new create product handler
func NewCreateProductHandler(lc Lifecycle) *CreateProductHandler {
	return &CreateProductHandler{lc: lc}
}

// Handle executes the create product command
func (h *CreateProductHandler) Handle(ctx context.Context, cmd ProductCommand) (*domain.Product, error) {
	product := &domain.Product{IsActive: true}
	repos := h.lc.UoW.Repos()
	// new products always start active
	cmd.IsActive = nil
	err := cmd.apply(product)
	if err == nil {
		err = skuTaken(ctx, repos, product.SKU, 0)
	}
	if err == nil {
		err = wrap("create product", repos.Products.Create(ctx, product))
	}
	if err = h.lc.finish(ctx, "create_product", err); err != nil {
		return nil, err
	}

	h.lc.invalidate(ctx, cache.NamespaceProducts)
	logger.Info(ctx).Uint("product_id", product.ID).Str("sku", product.SKU).Msg("Product created")
	return product, nil
}

// UpdateProductHandler handles update product command
type UpdateProductHandler struct {
	lc Lifecycle
}

// NewUpdateProductHandler creates a new update product handler
func NewUpdateProductHandler(lc Lifecycle) *UpdateProductHandler {
	return &UpdateProductHandler{lc: lc}
}

// Handle executes the update product command
func (h *UpdateProductHandler) Handle(ctx context.Context, cmd ProductCommand) (*domain.Product, error) {
	repos := h.lc.UoW.Repos()
	product, err := repos.Products.FindByID(ctx, cmd.ID)
	if err == nil {
		err = cmd.apply(product)
	}
	if err == nil {
		err = skuTaken(ctx, repos, product.SKU, product.ID)
	}
	if err == nil {
		err = wrap("update product", repos.Products.Update(ctx, product))
	}
	if err = h.lc.finish(ctx, "update_product", err); err != nil {
		return nil, err
	}

	h.lc.invalidate(ctx, cache.NamespaceProducts)
	logger.Info(ctx).Uint("product_id", product.ID).Msg("Product updated")
	return product, nil
}

// DeleteProductHandler soft-deletes catalog entries
type DeleteProductHandler struct {
	lc Lifecycle
}

// NewDeleteProductHandler creates a new delete product handler
func NewDeleteProductHandler(lc Lifecycle) *DeleteProductHandler {
	return &DeleteProductHandler{lc: lc}
}

// Handle executes the delete product command
func (h *DeleteProductHandler) Handle(ctx context.Context, id uint) error {
	err := wrap("delete product", h.lc.UoW.Repos().Products.Delete(ctx, id))
	if err = h.lc.finish(ctx, "delete_product", err); err != nil {
		return err
	}

	h.lc.invalidate(ctx, cache.NamespaceProducts)
	logger.Info(ctx).Uint("product_id", id).Msg("Product deleted")
	return nil
}
