package command

import (
	"context"
	"errors"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/tair/donation-tracker/internal/donation/domain"
	"github.com/tair/donation-tracker/internal/donation/repository"
	"github.com/tair/donation-tracker/kafka"
	"github.com/tair/donation-tracker/pkg/database"
	"github.com/tair/donation-tracker/pkg/metrics"
)

var fixedNow = time.Date(2024, 5, 1, 9, 30, 0, 0, time.UTC)

type recordingPublisher struct {
	mu     sync.Mutex
	events []kafka.DonationEvent
	err    error
}

func (p *recordingPublisher) PublishDonationEvent(_ context.Context, event kafka.DonationEvent) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.err != nil {
		return p.err
	}
	p.events = append(p.events, event)
	return nil
}

func (p *recordingPublisher) types() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]string, 0, len(p.events))
	for _, e := range p.events {
		out = append(out, e.EventType)
	}
	return out
}

type env struct {
	lc        Lifecycle
	repos     domain.Repositories
	publisher *recordingPublisher
	donor     *domain.Donor
	beans     *domain.Product
	rice      *domain.Product
}

func newEnv(t *testing.T) *env {
	t.Helper()
	db, err := database.NewGormConnection(database.Config{
		Driver: database.DriverSQLite,
		Path:   filepath.Join(t.TempDir(), "donations.db"),
	})
	if err != nil {
		t.Fatalf("open database: %v", err)
	}
	if err := repository.AutoMigrate(db); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	})

	uow := repository.NewGormUnitOfWork(db)
	pub := &recordingPublisher{}
	e := &env{
		lc: Lifecycle{
			UoW:     uow,
			Clock:   func() time.Time { return fixedNow },
			Events:  pub,
			Metrics: metrics.New(prometheus.NewRegistry()),
		},
		repos:     uow.Repos(),
		publisher: pub,
	}

	ctx := context.Background()
	e.donor = &domain.Donor{Name: "Corner Market", Type: domain.DonorOrganization, IsActive: true}
	if err := e.repos.Donors.Create(ctx, e.donor); err != nil {
		t.Fatalf("seed donor: %v", err)
	}
	e.beans = &domain.Product{Name: "Canned Beans", SKU: "BEAN-01", UnitType: "can", IsActive: true}
	e.rice = &domain.Product{Name: "Rice 1kg", SKU: "RICE-01", UnitType: "bag", IsActive: true}
	for _, p := range []*domain.Product{e.beans, e.rice} {
		if err := e.repos.Products.Create(ctx, p); err != nil {
			t.Fatalf("seed product: %v", err)
		}
	}
	return e
}

// createDonation records a donation with one item per quantity, alternating products
func (e *env) createDonation(t *testing.T, receipt string, quantities ...int) *domain.Donation {
	t.Helper()
	items := make([]NewItem, 0, len(quantities))
	for i, q := range quantities {
		product := e.beans
		if i%2 == 1 {
			product = e.rice
		}
		items = append(items, NewItem{ProductID: product.ID, QuantityReceived: q})
	}
	donation, err := NewCreateDonationHandler(e.lc).Handle(context.Background(), CreateDonationCommand{
		DonorID:       e.donor.ID,
		ReceiptNumber: receipt,
		ReceivedBy:    "alice",
		Items:         items,
	})
	if err != nil {
		t.Fatalf("create donation: %v", err)
	}
	return donation
}

func (e *env) inspect(t *testing.T, itemID uint, result string) {
	t.Helper()
	_, err := NewRecordInspectionHandler(e.lc).Handle(context.Background(), RecordInspectionCommand{
		ItemID:      itemID,
		InspectedBy: "carol",
		Result:      result,
	})
	if err != nil {
		t.Fatalf("inspect item %d: %v", itemID, err)
	}
}

func (e *env) dispose(itemID uint, dispType string, approved, rejected *int) (*DispositionResult, error) {
	return NewRecordDispositionHandler(e.lc).Handle(context.Background(), RecordDispositionCommand{
		ItemID:           itemID,
		Type:             dispType,
		QuantityApproved: approved,
		QuantityRejected: rejected,
		ApprovedBy:       "dave",
	})
}

func (e *env) status(t *testing.T, donationID uint) domain.DonationStatus {
	t.Helper()
	d, err := e.repos.Donations.FindByID(context.Background(), donationID)
	if err != nil {
		t.Fatalf("load donation: %v", err)
	}
	return d.Status
}

func (e *env) trail(t *testing.T, donationID uint) []domain.DonationAuditTrail {
	t.Helper()
	trail, err := e.repos.Audit.FindByDonationID(context.Background(), donationID)
	if err != nil {
		t.Fatalf("load audit trail: %v", err)
	}
	return trail
}

func intPtr(v int) *int { return &v }

var errPublish = errors.New("broker unavailable")
