package query

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/tair/donation-tracker/internal/donation/domain"
	"github.com/tair/donation-tracker/pkg/query"
)

// GetInventoryQuery represents the query to get an inventory item by ID
type GetInventoryQuery struct {
	ID uint
}

// GetInventoryHandler handles get inventory query
type GetInventoryHandler struct {
	repo domain.InventoryRepository
}

// NewGetInventoryHandler creates a new get inventory handler
func NewGetInventoryHandler(repo domain.InventoryRepository) *GetInventoryHandler {
	return &GetInventoryHandler{repo: repo}
}

// Handle executes the get inventory query
func (h *GetInventoryHandler) Handle(ctx context.Context, q GetInventoryQuery) (*domain.InventoryItem, error) {
	item, err := h.repo.FindByID(ctx, q.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to get inventory item: %w", err)
	}
	return item, nil
}

// ListInventoryQuery represents the query to list inventory
type ListInventoryQuery struct {
	Blocked        *bool
	ExpiringBefore *time.Time
	ProductID      uint
	InStockOnly    bool
	query.Params
}

// ListInventoryHandler handles list inventory query
type ListInventoryHandler struct {
	repo domain.InventoryRepository
}

// NewListInventoryHandler creates a new list inventory handler
func NewListInventoryHandler(repo domain.InventoryRepository) *ListInventoryHandler {
	return &ListInventoryHandler{repo: repo}
}

// Handle executes the list inventory query
func (h *ListInventoryHandler) Handle(ctx context.Context, q ListInventoryQuery) (query.Page[domain.InventoryItem], error) {
	items, err := h.repo.FindAll(ctx, domain.InventoryFilter{
		Blocked:        q.Blocked,
		ExpiringBefore: q.ExpiringBefore,
		ProductID:      q.ProductID,
		InStockOnly:    q.InStockOnly,
	})
	if err != nil {
		return query.Page[domain.InventoryItem]{}, fmt.Errorf("failed to list inventory: %w", err)
	}
	return query.Run(items, nil, InventorySchema, q.Params), nil
}

// ListWasteQuery represents the query to list waste records
type ListWasteQuery struct {
	From           *time.Time
	To             *time.Time
	DisposalMethod string
	SourceItemID   uint
	query.Params
}

// ListWasteHandler handles list waste query
type ListWasteHandler struct {
	repo domain.WasteRepository
}

// NewListWasteHandler creates a new list waste handler
func NewListWasteHandler(repo domain.WasteRepository) *ListWasteHandler {
	return &ListWasteHandler{repo: repo}
}

// Handle executes the list waste query
func (h *ListWasteHandler) Handle(ctx context.Context, q ListWasteQuery) (query.Page[domain.WasteRecord], error) {
	if err := checkRange(q.From, q.To); err != nil {
		return query.Page[domain.WasteRecord]{}, err
	}
	records, err := h.repo.FindAll(ctx, domain.WasteFilter{
		From:           q.From,
		To:             q.To,
		DisposalMethod: strings.TrimSpace(q.DisposalMethod),
		SourceItemID:   q.SourceItemID,
	})
	if err != nil {
		return query.Page[domain.WasteRecord]{}, fmt.Errorf("failed to list waste: %w", err)
	}
	return query.Run(records, nil, WasteSchema, q.Params), nil
}

// ListShiftsQuery represents the query to list volunteer shifts
type ListShiftsQuery struct {
	Status string
	From   *time.Time
	To     *time.Time
	query.Params
}

// ListShiftsHandler handles list shifts query
type ListShiftsHandler struct {
	repo domain.VolunteerShiftRepository
}

// NewListShiftsHandler creates a new list shifts handler
func NewListShiftsHandler(repo domain.VolunteerShiftRepository) *ListShiftsHandler {
	return &ListShiftsHandler{repo: repo}
}

// Handle executes the list shifts query
func (h *ListShiftsHandler) Handle(ctx context.Context, q ListShiftsQuery) (query.Page[domain.VolunteerShift], error) {
	filter := domain.ShiftFilter{From: q.From, To: q.To}
	if s := strings.TrimSpace(q.Status); s != "" {
		for _, known := range []domain.ShiftStatus{domain.ShiftScheduled, domain.ShiftCompleted, domain.ShiftCancelled} {
			if strings.EqualFold(s, string(known)) {
				filter.Status = known
			}
		}
		if filter.Status == "" {
			return query.Page[domain.VolunteerShift]{}, domain.ValidationError{Field: "status", Reason: "unknown shift status"}
		}
	}
	if err := checkRange(q.From, q.To); err != nil {
		return query.Page[domain.VolunteerShift]{}, err
	}

	shifts, err := h.repo.FindAll(ctx, filter)
	if err != nil {
		return query.Page[domain.VolunteerShift]{}, fmt.Errorf("failed to list shifts: %w", err)
	}
	return query.Run(shifts, nil, ShiftSchema, q.Params), nil
}
