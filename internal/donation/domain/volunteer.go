package domain

import (
	"context"
	"time"
)

// ShiftStatus is the state of a volunteer shift
type ShiftStatus string

// Shift statuses
const (
	ShiftScheduled ShiftStatus = "Scheduled"
	ShiftCompleted ShiftStatus = "Completed"
	ShiftCancelled ShiftStatus = "Cancelled"
)

// VolunteerShift represents a scheduled block of volunteer work
type VolunteerShift struct {
	ID             uint        `json:"id" gorm:"primaryKey"`
	VolunteerName  string      `json:"volunteer_name" gorm:"not null"`
	VolunteerEmail string      `json:"volunteer_email" gorm:"index"`
	Role           string      `json:"role"`
	Location       string      `json:"location"`
	StartsAt       time.Time   `json:"starts_at" gorm:"not null;index"`
	EndsAt         time.Time   `json:"ends_at" gorm:"not null"`
	Status         ShiftStatus `json:"status" gorm:"type:varchar(20);not null;default:'Scheduled'"`
	HoursLogged    float64     `json:"hours_logged"`
	Notes          string      `json:"notes"`
	CreatedAt      time.Time   `json:"created_at"`
	UpdatedAt      time.Time   `json:"updated_at"`
}

// TableName specifies the table name
func (VolunteerShift) TableName() string {
	return "volunteer_shifts"
}

// Duration returns the scheduled length of the shift
func (s *VolunteerShift) Duration() time.Duration {
	return s.EndsAt.Sub(s.StartsAt)
}

// ShiftFilter holds the predicates for listing shifts
type ShiftFilter struct {
	Status ShiftStatus
	From   *time.Time
	To     *time.Time
}

// VolunteerShiftRepository defines the contract for shift data access
type VolunteerShiftRepository interface {
	Create(ctx context.Context, shift *VolunteerShift) error
	FindByID(ctx context.Context, id uint) (*VolunteerShift, error)
	FindAll(ctx context.Context, filter ShiftFilter) ([]VolunteerShift, error)
	Update(ctx context.Context, shift *VolunteerShift) error
}
