package domain

import (
	"errors"
	"fmt"
)

// Entity names used in error messages and audit details
const (
	EntityDonor       = "donor"
	EntityProduct     = "product"
	EntityDonation    = "donation"
	EntityItem        = "donation_item"
	EntityInspection  = "quality_inspection"
	EntityDisposition = "disposition"
	EntityInventory   = "inventory_item"
	EntityWaste       = "waste_record"
	EntityReceipt     = "donation_receipt"
	EntityShift       = "volunteer_shift"
	EntityAudit       = "audit_trail"
)

// ValidationError reports malformed or inconsistent input
type ValidationError struct {
	Field  string
	Reason string
}

func (e ValidationError) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("validation failed: %s", e.Reason)
	}
	return fmt.Sprintf("validation failed: %s: %s", e.Field, e.Reason)
}

// ConflictError reports a violated uniqueness or state invariant
type ConflictError struct {
	Entity string
	Reason string
}

func (e ConflictError) Error() string {
	return fmt.Sprintf("%s conflict: %s", e.Entity, e.Reason)
}

// NotFoundError reports a missing entity, or one whose state does not permit the operation
type NotFoundError struct {
	Entity string
	ID     uint
	Reason string
}

func (e NotFoundError) Error() string {
	if e.Reason != "" {
		return fmt.Sprintf("%s %d not found: %s", e.Entity, e.ID, e.Reason)
	}
	return fmt.Sprintf("%s %d not found", e.Entity, e.ID)
}

// InvalidTransitionError reports a donation status change outside the allowed graph
type InvalidTransitionError struct {
	From   DonationStatus
	To     DonationStatus
	Reason string
}

func (e InvalidTransitionError) Error() string {
	msg := fmt.Sprintf("invalid status transition %s -> %s", e.From, e.To)
	if e.Reason != "" {
		msg += ": " + e.Reason
	}
	return msg
}

// IsValidation reports whether err is a ValidationError
func IsValidation(err error) bool {
	var target ValidationError
	return errors.As(err, &target)
}

// IsConflict reports whether err is a ConflictError
func IsConflict(err error) bool {
	var target ConflictError
	return errors.As(err, &target)
}

// IsNotFound reports whether err is a NotFoundError
func IsNotFound(err error) bool {
	var target NotFoundError
	return errors.As(err, &target)
}

// IsInvalidTransition reports whether err is an InvalidTransitionError
func IsInvalidTransition(err error) bool {
	var target InvalidTransitionError
	return errors.As(err, &target)
}
