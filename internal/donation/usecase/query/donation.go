package query

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/tair/donation-tracker/internal/donation/domain"
	"github.com/tair/donation-tracker/pkg/query"
)

// GetDonationQuery represents the query to get a donation with its full graph
type GetDonationQuery struct {
	ID uint
}

// GetDonationHandler handles get donation query
type GetDonationHandler struct {
	donations domain.DonationRepository
	audit     domain.AuditRepository
}

// NewGetDonationHandler creates a new get donation handler
func NewGetDonationHandler(donations domain.DonationRepository, audit domain.AuditRepository) *GetDonationHandler {
	return &GetDonationHandler{donations: donations, audit: audit}
}

// Handle returns the donation with donor, items, inspections, dispositions, receipt
// and audit trail in chronological order
func (h *GetDonationHandler) Handle(ctx context.Context, q GetDonationQuery) (*domain.Donation, error) {
	donation, err := h.donations.FindDetailed(ctx, q.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to get donation: %w", err)
	}
	trail, err := h.audit.FindByDonationID(ctx, donation.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to load audit trail: %w", err)
	}
	donation.AuditTrail = trail
	return donation, nil
}

// ListDonationsQuery represents the query to list donations
type ListDonationsQuery struct {
	Status  string
	DonorID uint
	From    *time.Time
	To      *time.Time
	query.Params
}

// ListDonationsHandler handles list donations query
type ListDonationsHandler struct {
	repo domain.DonationRepository
}

// NewListDonationsHandler creates a new list donations handler
func NewListDonationsHandler(repo domain.DonationRepository) *ListDonationsHandler {
	return &ListDonationsHandler{repo: repo}
}

// Handle executes the list donations query
func (h *ListDonationsHandler) Handle(ctx context.Context, q ListDonationsQuery) (query.Page[domain.Donation], error) {
	filter := domain.DonationFilter{DonorID: q.DonorID, From: q.From, To: q.To}
	if s := strings.TrimSpace(q.Status); s != "" {
		status, ok := domain.ParseDonationStatus(s)
		if !ok {
			return query.Page[domain.Donation]{}, domain.ValidationError{Field: "status", Reason: "unknown donation status"}
		}
		filter.Status = status
	}
	if err := checkRange(q.From, q.To); err != nil {
		return query.Page[domain.Donation]{}, err
	}

	donations, err := h.repo.FindAll(ctx, filter)
	if err != nil {
		return query.Page[domain.Donation]{}, fmt.Errorf("failed to list donations: %w", err)
	}
	return query.Run(donations, nil, DonationSchema, q.Params), nil
}

// GetAuditTrailQuery represents the query to read a donation's audit trail
type GetAuditTrailQuery struct {
	DonationID uint
}

// GetAuditTrailHandler handles get audit trail query
type GetAuditTrailHandler struct {
	donations domain.DonationRepository
	audit     domain.AuditRepository
}

// NewGetAuditTrailHandler creates a new get audit trail handler
func NewGetAuditTrailHandler(donations domain.DonationRepository, audit domain.AuditRepository) *GetAuditTrailHandler {
	return &GetAuditTrailHandler{donations: donations, audit: audit}
}

// Handle executes the get audit trail query
func (h *GetAuditTrailHandler) Handle(ctx context.Context, q GetAuditTrailQuery) ([]domain.DonationAuditTrail, error) {
	if _, err := h.donations.FindByID(ctx, q.DonationID); err != nil {
		return nil, fmt.Errorf("failed to get donation: %w", err)
	}
	trail, err := h.audit.FindByDonationID(ctx, q.DonationID)
	if err != nil {
		return nil, fmt.Errorf("failed to load audit trail: %w", err)
	}
	return trail, nil
}
