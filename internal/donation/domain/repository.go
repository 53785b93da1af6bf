package domain

import (
	"context"
	"time"
)

// Repositories groups the repositories bound to one database session
type Repositories struct {
	Donors       DonorRepository
	Products     ProductRepository
	Donations    DonationRepository
	Items        DonationItemRepository
	Inspections  InspectionRepository
	Dispositions DispositionRepository
	Inventory    InventoryRepository
	Waste        WasteRepository
	Receipts     ReceiptRepository
	Audit        AuditRepository
	Shifts       VolunteerShiftRepository
}

// UnitOfWork hands out repositories and runs atomic units of work. Everything fn
// writes through the supplied repositories commits together or not at all.
type UnitOfWork interface {
	Repos() Repositories
	Atomic(ctx context.Context, fn func(repos Repositories) error) error
}

// Clock supplies the current time for every timestamp the core writes
type Clock func() time.Time

// UTCClock returns the wall clock in UTC
func UTCClock() time.Time {
	return time.Now().UTC()
}
