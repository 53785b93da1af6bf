package query

import (
	"context"
	"fmt"
	"strings"

	"github.com/tair/donation-tracker/internal/donation/domain"
	"github.com/tair/donation-tracker/pkg/cache"
	"github.com/tair/donation-tracker/pkg/logger"
	"github.com/tair/donation-tracker/pkg/query"
)

// PageCache stores rendered list pages per namespace. A nil PageCache disables caching.
type PageCache interface {
	Get(ctx context.Context, namespace, key string, dest interface{}) (bool, error)
	Set(ctx context.Context, namespace, key string, value interface{}) error
}

// cached serves a page from the cache when present and fills the cache on a miss.
// Cache failures degrade to a direct load.
func cached[T any](ctx context.Context, c PageCache, namespace, key string, load func() (query.Page[T], error)) (query.Page[T], error) {
	if c == nil {
		return load()
	}
	var page query.Page[T]
	hit, err := c.Get(ctx, namespace, key, &page)
	if err != nil {
		logger.Warn(ctx).Err(err).Str("namespace", namespace).Msg("Page cache read failed")
	}
	if hit {
		return page, nil
	}

	page, err = load()
	if err != nil {
		return page, err
	}
	if err := c.Set(ctx, namespace, key, page); err != nil {
		logger.Warn(ctx).Err(err).Str("namespace", namespace).Msg("Page cache write failed")
	}
	return page, nil
}

// pageKey quotes every free-text part so separators inside values cannot collide
func pageKey(p query.Params, filters ...interface{}) string {
	n := p.Normalize()
	parts := make([]string, 0, len(filters)+5)
	for _, f := range filters {
		parts = append(parts, fmt.Sprintf("%q", fmt.Sprint(f)))
	}
	parts = append(parts,
		fmt.Sprintf("%q", strings.ToLower(n.Search)),
		fmt.Sprintf("%q", n.SortBy),
		fmt.Sprintf("%t|%d|%d", n.SortDesc, n.Page, n.PageSize),
	)
	return strings.Join(parts, "|")
}

// GetDonorQuery represents the query to get a donor by ID
type GetDonorQuery struct {
	ID uint
}

// GetDonorHandler handles get donor query
type GetDonorHandler struct {
	repo domain.DonorRepository
}

// NewGetDonorHandler creates a new get donor handler
func NewGetDonorHandler(repo domain.DonorRepository) *GetDonorHandler {
	return &GetDonorHandler{repo: repo}
}

// Handle executes the get donor query
func (h *GetDonorHandler) Handle(ctx context.Context, q GetDonorQuery) (*domain.Donor, error) {
	donor, err := h.repo.FindByID(ctx, q.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to get donor: %w", err)
	}
	return donor, nil
}

// ListDonorsQuery represents the query to list donors
type ListDonorsQuery struct {
	Active *bool
	Type   string
	query.Params
}

// ListDonorsHandler handles list donors query
type ListDonorsHandler struct {
	repo  domain.DonorRepository
	cache PageCache
}

// NewListDonorsHandler creates a new list donors handler
func NewListDonorsHandler(repo domain.DonorRepository, c PageCache) *ListDonorsHandler {
	return &ListDonorsHandler{repo: repo, cache: c}
}

// Handle executes the list donors query
func (h *ListDonorsHandler) Handle(ctx context.Context, q ListDonorsQuery) (query.Page[domain.Donor], error) {
	filter := domain.DonorFilter{Active: q.Active}
	switch t := strings.TrimSpace(q.Type); {
	case t == "":
	case strings.EqualFold(t, string(domain.DonorIndividual)):
		filter.Type = domain.DonorIndividual
	case strings.EqualFold(t, string(domain.DonorOrganization)):
		filter.Type = domain.DonorOrganization
	default:
		return query.Page[domain.Donor]{}, domain.ValidationError{Field: "type", Reason: "must be Individual or Organization"}
	}

	key := pageKey(q.Params, boolKey(filter.Active), filter.Type)
	return cached(ctx, h.cache, cache.NamespaceDonors, key, func() (query.Page[domain.Donor], error) {
		donors, err := h.repo.FindAll(ctx, filter)
		if err != nil {
			return query.Page[domain.Donor]{}, fmt.Errorf("failed to list donors: %w", err)
		}
		return query.Run(donors, nil, DonorSchema, q.Params), nil
	})
}

// GetProductQuery represents the query to get a product by ID
type GetProductQuery struct {
	ID uint
}

// GetProductHandler handles get product query
type GetProductHandler struct {
	repo domain.ProductRepository
}

// NewGetProductHandler creates a new get product handler
func NewGetProductHandler(repo domain.ProductRepository) *GetProductHandler {
	return &GetProductHandler{repo: repo}
}

// Handle executes the get product query
func (h *GetProductHandler) Handle(ctx context.Context, q GetProductQuery) (*domain.Product, error) {
	product, err := h.repo.FindByID(ctx, q.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to get product: %w", err)
	}
	return product, nil
}

// ListProductsQuery represents the query to list all products
type ListProductsQuery struct {
	Category string
	Active   *bool
	query.Params
}

// ListProductsHandler handles list products query
type ListProductsHandler struct {
	repo  domain.ProductRepository
	cache PageCache
}

// NewListProductsHandler creates a new list products handler
func NewListProductsHandler(repo domain.ProductRepository, c PageCache) *ListProductsHandler {
	return &ListProductsHandler{repo: repo, cache: c}
}

// Handle executes the list products query
func (h *ListProductsHandler) Handle(ctx context.Context, q ListProductsQuery) (query.Page[domain.Product], error) {
	filter := domain.ProductFilter{Category: strings.TrimSpace(q.Category), Active: q.Active}
	key := pageKey(q.Params, boolKey(filter.Active), filter.Category)
	return cached(ctx, h.cache, cache.NamespaceProducts, key, func() (query.Page[domain.Product], error) {
		products, err := h.repo.FindAll(ctx, filter)
		if err != nil {
			return query.Page[domain.Product]{}, fmt.Errorf("failed to list products: %w", err)
		}
		return query.Run(products, nil, ProductSchema, q.Params), nil
	})
}

func boolKey(b *bool) string {
	if b == nil {
		return "any"
	}
	return fmt.Sprintf("%t", *b)
}
