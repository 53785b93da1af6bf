package command

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/tair/donation-tracker/internal/donation/domain"
	"github.com/tair/donation-tracker/pkg/logger"
)

// ScheduleShiftCommand books a volunteer for a block of time
type ScheduleShiftCommand struct {
	VolunteerName  string
	VolunteerEmail string
	Role           string
	Location       string
	StartsAt       time.Time
	EndsAt         time.Time
	Notes          string
}

// ScheduleShiftHandler handles schedule shift command
type ScheduleShiftHandler struct {
	lc Lifecycle
}

// NewScheduleShiftHandler creates a new schedule shift handler
func NewScheduleShiftHandler(lc Lifecycle) *ScheduleShiftHandler {
	return &ScheduleShiftHandler{lc: lc}
}

// Handle executes the schedule shift command
func (h *ScheduleShiftHandler) Handle(ctx context.Context, cmd ScheduleShiftCommand) (*domain.VolunteerShift, error) {
	shift, err := h.handle(ctx, cmd)
	return shift, h.lc.finish(ctx, "schedule_shift", err)
}

func (h *ScheduleShiftHandler) handle(ctx context.Context, cmd ScheduleShiftCommand) (*domain.VolunteerShift, error) {
	name := strings.TrimSpace(cmd.VolunteerName)
	if name == "" {
		return nil, domain.ValidationError{Field: "volunteer_name", Reason: "is required"}
	}
	if cmd.StartsAt.IsZero() || cmd.EndsAt.IsZero() {
		return nil, domain.ValidationError{Field: "starts_at", Reason: "start and end are required"}
	}
	if !cmd.EndsAt.After(cmd.StartsAt) {
		return nil, domain.ValidationError{Field: "ends_at", Reason: "must be after starts_at"}
	}

	shift := &domain.VolunteerShift{
		VolunteerName:  name,
		VolunteerEmail: strings.TrimSpace(cmd.VolunteerEmail),
		Role:           strings.TrimSpace(cmd.Role),
		Location:       strings.TrimSpace(cmd.Location),
		StartsAt:       cmd.StartsAt.UTC(),
		EndsAt:         cmd.EndsAt.UTC(),
		Status:         domain.ShiftScheduled,
		Notes:          strings.TrimSpace(cmd.Notes),
	}
	if err := h.lc.UoW.Repos().Shifts.Create(ctx, shift); err != nil {
		return nil, wrap("create shift", err)
	}

	logger.Info(ctx).
		Uint("shift_id", shift.ID).
		Str("volunteer", shift.VolunteerName).
		Time("starts_at", shift.StartsAt).
		Msg("Shift scheduled")
	return shift, nil
}

// CloseShiftCommand completes or cancels a scheduled shift. HoursLogged only applies
// to completion and defaults to the scheduled duration.
type CloseShiftCommand struct {
	ShiftID     uint
	Status      domain.ShiftStatus
	HoursLogged *float64
	Notes       string
}

// CloseShiftHandler handles complete and cancel shift commands
type CloseShiftHandler struct {
	lc Lifecycle
}

// NewCloseShiftHandler creates a new close shift handler
func NewCloseShiftHandler(lc Lifecycle) *CloseShiftHandler {
	return &CloseShiftHandler{lc: lc}
}

// Handle executes the close shift command
func (h *CloseShiftHandler) Handle(ctx context.Context, cmd CloseShiftCommand) (*domain.VolunteerShift, error) {
	shift, err := h.handle(ctx, cmd)
	return shift, h.lc.finish(ctx, "close_shift", err)
}

func (h *CloseShiftHandler) handle(ctx context.Context, cmd CloseShiftCommand) (*domain.VolunteerShift, error) {
	if cmd.Status != domain.ShiftCompleted && cmd.Status != domain.ShiftCancelled {
		return nil, domain.ValidationError{Field: "status", Reason: "must be Completed or Cancelled"}
	}
	if cmd.HoursLogged != nil && *cmd.HoursLogged < 0 {
		return nil, domain.ValidationError{Field: "hours_logged", Reason: "cannot be negative"}
	}

	var shift *domain.VolunteerShift
	err := h.lc.UoW.Atomic(ctx, func(repos domain.Repositories) error {
		var err error
		shift, err = repos.Shifts.FindByID(ctx, cmd.ShiftID)
		if err != nil {
			return err
		}
		if shift.Status != domain.ShiftScheduled {
			return domain.ConflictError{Entity: domain.EntityShift, Reason: fmt.Sprintf("shift is already %s", shift.Status)}
		}

		shift.Status = cmd.Status
		if cmd.Status == domain.ShiftCompleted {
			shift.HoursLogged = shift.Duration().Hours()
			if cmd.HoursLogged != nil {
				shift.HoursLogged = *cmd.HoursLogged
			}
		}
		if notes := strings.TrimSpace(cmd.Notes); notes != "" {
			shift.Notes = notes
		}
		return wrap("update shift", repos.Shifts.Update(ctx, shift))
	})
	if err != nil {
		return nil, err
	}

	logger.Info(ctx).
		Uint("shift_id", shift.ID).
		Str("status", string(shift.Status)).
		Float64("hours_logged", shift.HoursLogged).
		Msg("Shift closed")
	return shift, nil
}
