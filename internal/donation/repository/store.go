package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/tair/donation-tracker/internal/donation/domain"
)

// GormUnitOfWork binds every repository to one gorm session and runs atomic units
// of work inside database transactions.
type GormUnitOfWork struct {
	db *gorm.DB
}

// NewGormUnitOfWork creates a unit of work over db
func NewGormUnitOfWork(db *gorm.DB) *GormUnitOfWork {
	return &GormUnitOfWork{db: db}
}

// Repos returns repositories outside any transaction
func (u *GormUnitOfWork) Repos() domain.Repositories {
	return NewRepositories(u.db)
}

// Atomic runs fn in a transaction. A returned error or panic rolls back every write.
func (u *GormUnitOfWork) Atomic(ctx context.Context, fn func(repos domain.Repositories) error) error {
	ctx, span := startSpan(ctx, "Atomic")
	defer span.End()

	err := u.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(NewRepositories(tx))
	})
	if err != nil {
		span.RecordError(err)
	}
	return err
}

// NewRepositories builds the repository set for one session
func NewRepositories(db *gorm.DB) domain.Repositories {
	return domain.Repositories{
		Donors:       NewGormDonorRepository(db),
		Products:     NewGormProductRepository(db),
		Donations:    NewGormDonationRepository(db),
		Items:        NewGormDonationItemRepository(db),
		Inspections:  NewGormInspectionRepository(db),
		Dispositions: NewGormDispositionRepository(db),
		Inventory:    NewGormInventoryRepository(db),
		Waste:        NewGormWasteRepository(db),
		Receipts:     NewGormReceiptRepository(db),
		Audit:        NewGormAuditRepository(db),
		Shifts:       NewGormVolunteerShiftRepository(db),
	}
}

// AutoMigrate creates or updates every table the donation service owns
func AutoMigrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&domain.Donor{},
		&domain.Product{},
		&domain.Donation{},
		&domain.DonationItem{},
		&domain.QualityInspection{},
		&domain.Disposition{},
		&domain.InventoryItem{},
		&domain.WasteRecord{},
		&domain.DonationReceipt{},
		&domain.DonationAuditTrail{},
		&domain.VolunteerShift{},
	); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}
	return nil
}

func unscoped(db *gorm.DB) *gorm.DB {
	return db.Unscoped()
}
