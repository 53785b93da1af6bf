package domain

import "strings"

// DonationStatus is the lifecycle state of a donation
type DonationStatus string

// Donation statuses
const (
	StatusPending    DonationStatus = "Pending"
	StatusInspection DonationStatus = "Inspection"
	StatusApproved   DonationStatus = "Approved"
	StatusRejected   DonationStatus = "Rejected"
	StatusArchived   DonationStatus = "Archived"
)

var donationStatuses = []DonationStatus{
	StatusPending,
	StatusInspection,
	StatusApproved,
	StatusRejected,
	StatusArchived,
}

// ParseDonationStatus resolves a status name case-insensitively
func ParseDonationStatus(s string) (DonationStatus, bool) {
	for _, st := range donationStatuses {
		if strings.EqualFold(string(st), strings.TrimSpace(s)) {
			return st, true
		}
	}
	return "", false
}

// AcceptsItemWork reports whether items of a donation in this status may still be
// added, inspected or dispositioned.
func (s DonationStatus) AcceptsItemWork() bool {
	return s == StatusPending || s == StatusInspection
}

// ItemStatus tracks how far a donation item has progressed
type ItemStatus string

// Item statuses
const (
	ItemReceived      ItemStatus = "Received"
	ItemInspected     ItemStatus = "Inspected"
	ItemDispositioned ItemStatus = "Dispositioned"
)

// InspectionResult is the outcome of a quality inspection
type InspectionResult string

// Inspection results
const (
	InspectionApproved    InspectionResult = "Approved"
	InspectionRejected    InspectionResult = "Rejected"
	InspectionConditional InspectionResult = "Conditional"
)

// ParseInspectionResult resolves a result name case-insensitively
func ParseInspectionResult(s string) (InspectionResult, bool) {
	for _, r := range []InspectionResult{InspectionApproved, InspectionRejected, InspectionConditional} {
		if strings.EqualFold(string(r), strings.TrimSpace(s)) {
			return r, true
		}
	}
	return "", false
}

// DispositionType classifies a disposition decision
type DispositionType string

// Disposition types
const (
	DispositionAccepted DispositionType = "Accepted"
	DispositionRejected DispositionType = "Rejected"
	DispositionPartial  DispositionType = "Partial"
)

// ParseDispositionType resolves a type name case-insensitively
func ParseDispositionType(s string) (DispositionType, bool) {
	for _, t := range []DispositionType{DispositionAccepted, DispositionRejected, DispositionPartial} {
		if strings.EqualFold(string(t), strings.TrimSpace(s)) {
			return t, true
		}
	}
	return "", false
}

// DefaultDispositionType maps an inspection result to the disposition type used
// when the caller supplies none.
func DefaultDispositionType(result InspectionResult) DispositionType {
	switch result {
	case InspectionApproved:
		return DispositionAccepted
	case InspectionRejected:
		return DispositionRejected
	default:
		return DispositionPartial
	}
}

// adminTransitions lists the edges UpdateStatus may take. Approved and Rejected are
// reached only through DeriveStatus.
var adminTransitions = map[DonationStatus][]DonationStatus{
	StatusPending:  {StatusInspection},
	StatusApproved: {StatusArchived},
	StatusRejected: {StatusArchived},
}

// CheckAdminTransition validates an administrative status change
func CheckAdminTransition(from, to DonationStatus) error {
	if to == StatusApproved || to == StatusRejected {
		return InvalidTransitionError{From: from, To: to, Reason: "status is derived from item dispositions"}
	}
	for _, allowed := range adminTransitions[from] {
		if allowed == to {
			return nil
		}
	}
	return InvalidTransitionError{From: from, To: to}
}

// DeriveStatus recomputes a donation's status from its items. Only Pending and
// Inspection donations move: once every item has a disposition the donation is
// Approved when any quantity was approved and Rejected otherwise; any inspection or
// disposition work moves a Pending donation to Inspection.
func DeriveStatus(current DonationStatus, items []DonationItem) DonationStatus {
	if !current.AcceptsItemWork() || len(items) == 0 {
		return current
	}

	dispositioned, started, approved := 0, false, false
	for _, it := range items {
		if it.Disposition != nil || it.Status == ItemDispositioned {
			dispositioned++
			started = true
			if it.Disposition != nil && it.Disposition.QuantityApproved > 0 {
				approved = true
			}
			continue
		}
		if it.Inspection != nil || it.Status == ItemInspected {
			started = true
		}
	}

	switch {
	case dispositioned == len(items) && approved:
		return StatusApproved
	case dispositioned == len(items):
		return StatusRejected
	case started:
		return StatusInspection
	}
	return current
}
