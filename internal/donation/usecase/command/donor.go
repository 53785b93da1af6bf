package command

import (
	"context"
	"net/mail"
	"strings"

	"github.com/tair/donation-tracker/internal/donation/domain"
	"github.com/tair/donation-tracker/pkg/cache"
	"github.com/tair/donation-tracker/pkg/logger"
)

// DonorCommand carries the editable donor fields
type DonorCommand struct {
	ID      uint
	Name    string
	Email   string
	Phone   string
	Address string
	Type    string
}

func (c DonorCommand) apply(donor *domain.Donor) error {
	name := strings.TrimSpace(c.Name)
	if name == "" {
		return domain.ValidationError{Field: "name", Reason: "is required"}
	}
	email := strings.TrimSpace(c.Email)
	if email != "" {
		if _, err := mail.ParseAddress(email); err != nil {
			return domain.ValidationError{Field: "email", Reason: "is not a valid address"}
		}
	}
	donorType := domain.DonorIndividual
	switch {
	case strings.TrimSpace(c.Type) == "":
	case strings.EqualFold(c.Type, string(domain.DonorIndividual)):
	case strings.EqualFold(c.Type, string(domain.DonorOrganization)):
		donorType = domain.DonorOrganization
	default:
		return domain.ValidationError{Field: "type", Reason: "must be Individual or Organization"}
	}

	donor.Name = name
	donor.Email = email
	donor.Phone = strings.TrimSpace(c.Phone)
	donor.Address = strings.TrimSpace(c.Address)
	donor.Type = donorType
	return nil
}

// CreateDonorHandler handles create donor command
type CreateDonorHandler struct {
	lc Lifecycle
}

// NewCreateDonorHandler creates a new create donor handler
func NewCreateDonorHandler(lc Lifecycle) *CreateDonorHandler {
	return &CreateDonorHandler{lc: lc}
}

// Handle executes the create donor command
func (h *CreateDonorHandler) Handle(ctx context.Context, cmd DonorCommand) (*domain.Donor, error) {
	donor := &domain.Donor{IsActive: true}
	err := cmd.apply(donor)
	if err == nil {
		err = wrap("create donor", h.lc.UoW.Repos().Donors.Create(ctx, donor))
	}
	if err = h.lc.finish(ctx, "create_donor", err); err != nil {
		return nil, err
	}

	h.lc.invalidate(ctx, cache.NamespaceDonors)
	logger.Info(ctx).Uint("donor_id", donor.ID).Str("name", donor.Name).Msg("Donor created")
	return donor, nil
}

// UpdateDonorHandler handles update donor command
type UpdateDonorHandler struct {
	lc Lifecycle
}

// NewUpdateDonorHandler creates a new update donor handler
func NewUpdateDonorHandler(lc Lifecycle) *UpdateDonorHandler {
	return &UpdateDonorHandler{lc: lc}
}

// Handle replaces the editable fields of an existing donor
func (h *UpdateDonorHandler) Handle(ctx context.Context, cmd DonorCommand) (*domain.Donor, error) {
	repos := h.lc.UoW.Repos()
	donor, err := repos.Donors.FindByID(ctx, cmd.ID)
	if err == nil {
		err = cmd.apply(donor)
	}
	if err == nil {
		err = wrap("update donor", repos.Donors.Update(ctx, donor))
	}
	if err = h.lc.finish(ctx, "update_donor", err); err != nil {
		return nil, err
	}

	h.lc.invalidate(ctx, cache.NamespaceDonors)
	logger.Info(ctx).Uint("donor_id", donor.ID).Msg("Donor updated")
	return donor, nil
}

// SetDonorActiveHandler deactivates or reactivates a donor. Donors are never
// removed because donations keep referencing them.
type SetDonorActiveHandler struct {
	lc Lifecycle
}

// NewSetDonorActiveHandler creates a new set donor active handler
func NewSetDonorActiveHandler(lc Lifecycle) *SetDonorActiveHandler {
	return &SetDonorActiveHandler{lc: lc}
}

// Handle executes the set donor active command
func (h *SetDonorActiveHandler) Handle(ctx context.Context, id uint, active bool) error {
	err := wrap("set donor active", h.lc.UoW.Repos().Donors.SetActive(ctx, id, active))
	if err = h.lc.finish(ctx, "set_donor_active", err); err != nil {
		return err
	}

	h.lc.invalidate(ctx, cache.NamespaceDonors)
	logger.Info(ctx).Uint("donor_id", id).Bool("active", active).Msg("Donor activation changed")
	return nil
}
