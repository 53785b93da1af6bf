package repository

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"gorm.io/gorm"

	"github.com/tair/donation-tracker/internal/donation/domain"
	"github.com/tair/donation-tracker/pkg/database"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := database.NewGormConnection(database.Config{
		Driver: database.DriverSQLite,
		Path:   filepath.Join(t.TempDir(), "donations.db"),
	})
	if err != nil {
		t.Fatalf("open database: %v", err)
	}
	if err := AutoMigrate(db); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	})
	return db
}

type fixture struct {
	repos    domain.Repositories
	donor    *domain.Donor
	product  *domain.Product
	donation *domain.Donation
	item     *domain.DonationItem
}

func seed(t *testing.T, db *gorm.DB) fixture {
	t.Helper()
	ctx := context.Background()
	repos := NewRepositories(db)

	donor := &domain.Donor{Name: "Green Grocer", Type: domain.DonorOrganization, IsActive: true}
	if err := repos.Donors.Create(ctx, donor); err != nil {
		t.Fatalf("create donor: %v", err)
	}
	product := &domain.Product{Name: "Canned Beans", SKU: "BEAN-01", Category: "canned", IsActive: true}
	if err := repos.Products.Create(ctx, product); err != nil {
		t.Fatalf("create product: %v", err)
	}
	donation := &domain.Donation{
		DonorID:       donor.ID,
		DonationDate:  time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC),
		ReceiptNumber: "R-1001",
		Status:        domain.StatusPending,
		ReceivedBy:    "alice",
	}
	if err := repos.Donations.Create(ctx, donation); err != nil {
		t.Fatalf("create donation: %v", err)
	}
	item := &domain.DonationItem{
		DonationID:       donation.ID,
		ProductID:        product.ID,
		QuantityReceived: 10,
		Status:           domain.ItemReceived,
	}
	if err := repos.Items.Create(ctx, item); err != nil {
		t.Fatalf("create item: %v", err)
	}
	return fixture{repos: repos, donor: donor, product: product, donation: donation, item: item}
}

func TestFindByIDMissingIsNotFound(t *testing.T) {
	repos := NewRepositories(newTestDB(t))
	_, err := repos.Donations.FindByID(context.Background(), 99)
	var nf domain.NotFoundError
	if !errors.As(err, &nf) {
		t.Fatalf("expected NotFoundError, got %v", err)
	}
	if nf.Entity != domain.EntityDonation || nf.ID != 99 {
		t.Fatalf("unexpected error detail: %+v", nf)
	}
}

func TestDuplicateReceiptNumberIsConflict(t *testing.T) {
	db := newTestDB(t)
	f := seed(t, db)
	ctx := context.Background()

	exists, err := f.repos.Donations.ExistsByReceiptNumber(ctx, "R-1001")
	if err != nil || !exists {
		t.Fatalf("expected receipt number to exist, got %v %v", exists, err)
	}

	dup := &domain.Donation{DonorID: f.donor.ID, DonationDate: time.Now().UTC(), ReceiptNumber: "R-1001", Status: domain.StatusPending, ReceivedBy: "bob"}
	if err := f.repos.Donations.Create(ctx, dup); !domain.IsConflict(err) {
		t.Fatalf("expected conflict, got %v", err)
	}
}

func TestSecondDispositionForItemIsConflict(t *testing.T) {
	f := seed(t, newTestDB(t))
	ctx := context.Background()

	first := &domain.Disposition{DonationItemID: f.item.ID, Type: domain.DispositionAccepted, QuantityApproved: 10, ApprovedBy: "alice", ApprovedAt: time.Now().UTC()}
	if err := f.repos.Dispositions.Create(ctx, first); err != nil {
		t.Fatalf("create disposition: %v", err)
	}
	second := &domain.Disposition{DonationItemID: f.item.ID, Type: domain.DispositionRejected, QuantityRejected: 10, ApprovedBy: "bob", ApprovedAt: time.Now().UTC()}
	if err := f.repos.Dispositions.Create(ctx, second); !domain.IsConflict(err) {
		t.Fatalf("expected conflict, got %v", err)
	}

	count, err := f.repos.Dispositions.CountByDonationID(ctx, f.donation.ID)
	if err != nil || count != 1 {
		t.Fatalf("expected one disposition, got %d (%v)", count, err)
	}
}

func TestFindDetailedLoadsGraphAndDeletedProducts(t *testing.T) {
	f := seed(t, newTestDB(t))
	ctx := context.Background()

	inspection := &domain.QualityInspection{DonationItemID: f.item.ID, InspectedBy: "carol", InspectedAt: time.Now().UTC(), Result: domain.InspectionApproved}
	if err := f.repos.Inspections.Create(ctx, inspection); err != nil {
		t.Fatalf("create inspection: %v", err)
	}
	if err := f.repos.Products.Delete(ctx, f.product.ID); err != nil {
		t.Fatalf("delete product: %v", err)
	}
	if _, err := f.repos.Products.FindByID(ctx, f.product.ID); !domain.IsNotFound(err) {
		t.Fatalf("expected deleted product hidden, got %v", err)
	}

	d, err := f.repos.Donations.FindDetailed(ctx, f.donation.ID)
	if err != nil {
		t.Fatalf("find detailed: %v", err)
	}
	if d.Donor == nil || d.Donor.Name != "Green Grocer" {
		t.Fatalf("donor not loaded: %+v", d.Donor)
	}
	if len(d.Items) != 1 || d.Items[0].Inspection == nil {
		t.Fatalf("items not loaded with inspection: %+v", d.Items)
	}
	if d.Items[0].Product == nil || d.Items[0].Product.SKU != "BEAN-01" {
		t.Fatalf("deleted product not resolved for historical item: %+v", d.Items[0].Product)
	}

	if p, err := f.repos.Products.FindBySKU(ctx, "BEAN-01"); err != nil || p.ID != f.product.ID {
		t.Fatalf("expected SKU lookup to include deleted product, got %v %v", p, err)
	}
}

func TestAdjustQuantityClampsAtZero(t *testing.T) {
	f := seed(t, newTestDB(t))
	ctx := context.Background()

	stock := &domain.InventoryItem{SourceDonationItemID: f.item.ID, Quantity: 5, Location: "shelf-a", DateReceived: time.Now().UTC()}
	if err := f.repos.Inventory.Create(ctx, stock); err != nil {
		t.Fatalf("create inventory: %v", err)
	}

	if err := f.repos.Inventory.AdjustQuantity(ctx, stock.ID, 3); err != nil {
		t.Fatalf("adjust up: %v", err)
	}
	got, _ := f.repos.Inventory.FindByID(ctx, stock.ID)
	if got.Quantity != 8 {
		t.Fatalf("expected 8, got %d", got.Quantity)
	}

	if err := f.repos.Inventory.AdjustQuantity(ctx, stock.ID, -20); err != nil {
		t.Fatalf("adjust down: %v", err)
	}
	got, _ = f.repos.Inventory.FindByID(ctx, stock.ID)
	if got.Quantity != 0 {
		t.Fatalf("expected clamp to 0, got %d", got.Quantity)
	}

	if err := f.repos.Inventory.AdjustQuantity(ctx, 999, 1); !domain.IsNotFound(err) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestInventoryFilters(t *testing.T) {
	f := seed(t, newTestDB(t))
	ctx := context.Background()
	soon := time.Now().UTC().Add(48 * time.Hour)

	rows := []*domain.InventoryItem{
		{SourceDonationItemID: f.item.ID, Quantity: 4, ExpirationDate: &soon, DateReceived: time.Now().UTC()},
		{SourceDonationItemID: f.item.ID, Quantity: 0, DateReceived: time.Now().UTC()},
	}
	for _, row := range rows {
		if err := f.repos.Inventory.Create(ctx, row); err != nil {
			t.Fatalf("create inventory: %v", err)
		}
	}
	now := time.Now().UTC()
	if err := f.repos.Inventory.SetBlocked(ctx, rows[0].ID, true, "recall", "dave", &now); err != nil {
		t.Fatalf("block: %v", err)
	}

	blocked := true
	got, err := f.repos.Inventory.FindAll(ctx, domain.InventoryFilter{Blocked: &blocked})
	if err != nil || len(got) != 1 || got[0].BlockReason != "recall" {
		t.Fatalf("unexpected blocked listing: %+v (%v)", got, err)
	}

	week := time.Now().UTC().Add(7 * 24 * time.Hour)
	got, _ = f.repos.Inventory.FindAll(ctx, domain.InventoryFilter{ExpiringBefore: &week})
	if len(got) != 1 || got[0].ID != rows[0].ID {
		t.Fatalf("unexpected expiring listing: %+v", got)
	}

	got, _ = f.repos.Inventory.FindAll(ctx, domain.InventoryFilter{InStockOnly: true, ProductID: f.product.ID})
	if len(got) != 1 || got[0].SourceDonationItem == nil {
		t.Fatalf("unexpected in-stock listing: %+v", got)
	}

	got, _ = f.repos.Inventory.FindAll(ctx, domain.InventoryFilter{ProductID: f.product.ID + 1})
	if len(got) != 0 {
		t.Fatalf("expected no rows for other product, got %d", len(got))
	}
}

func TestAtomicRollsBackOnError(t *testing.T) {
	db := newTestDB(t)
	f := seed(t, db)
	uow := NewGormUnitOfWork(db)
	ctx := context.Background()
	boom := errors.New("boom")

	err := uow.Atomic(ctx, func(repos domain.Repositories) error {
		if err := repos.Waste.Create(ctx, &domain.WasteRecord{Quantity: 2, Reason: "spoiled", DisposedAt: time.Now().UTC()}); err != nil {
			return err
		}
		if err := repos.Donations.UpdateStatus(ctx, f.donation.ID, domain.StatusInspection, nil); err != nil {
			return err
		}
		return boom
	})
	if !errors.Is(err, boom) {
		t.Fatalf("expected boom, got %v", err)
	}

	waste, _ := uow.Repos().Waste.FindAll(ctx, domain.WasteFilter{})
	if len(waste) != 0 {
		t.Fatalf("expected waste insert rolled back, got %d rows", len(waste))
	}
	d, _ := uow.Repos().Donations.FindByID(ctx, f.donation.ID)
	if d.Status != domain.StatusPending {
		t.Fatalf("expected status rolled back, got %s", d.Status)
	}
}

func TestDeleteDonationCascades(t *testing.T) {
	f := seed(t, newTestDB(t))
	ctx := context.Background()
	now := time.Now().UTC()

	itemID := f.item.ID
	must := func(err error) {
		t.Helper()
		if err != nil {
			t.Fatal(err)
		}
	}
	must(f.repos.Inspections.Create(ctx, &domain.QualityInspection{DonationItemID: itemID, InspectedBy: "carol", InspectedAt: now, Result: domain.InspectionRejected}))
	must(f.repos.Receipts.Create(ctx, &domain.DonationReceipt{DonationID: f.donation.ID, ReceiptNumber: "R-1001", Revision: 1, IssuedBy: "alice", IssuedAt: now}))
	must(f.repos.Audit.Append(ctx, &domain.DonationAuditTrail{DonationID: f.donation.ID, Action: domain.AuditCreated, PerformedBy: "alice", PerformedAt: now}))
	waste := &domain.WasteRecord{SourceDonationItemID: &itemID, Quantity: 1, Reason: "crushed", DisposedAt: now}
	must(f.repos.Waste.Create(ctx, waste))

	must(f.repos.Donations.Delete(ctx, f.donation.ID))

	if _, err := f.repos.Donations.FindByID(ctx, f.donation.ID); !domain.IsNotFound(err) {
		t.Fatalf("expected donation gone, got %v", err)
	}
	if items, _ := f.repos.Items.FindByDonationID(ctx, f.donation.ID); len(items) != 0 {
		t.Fatalf("expected items gone, got %d", len(items))
	}
	if _, err := f.repos.Inspections.FindByItemID(ctx, itemID); !domain.IsNotFound(err) {
		t.Fatalf("expected inspection gone, got %v", err)
	}
	if _, err := f.repos.Receipts.FindByDonationID(ctx, f.donation.ID); !domain.IsNotFound(err) {
		t.Fatalf("expected receipt gone, got %v", err)
	}
	if trail, _ := f.repos.Audit.FindByDonationID(ctx, f.donation.ID); len(trail) != 0 {
		t.Fatalf("expected audit gone, got %d", len(trail))
	}
	kept, err := f.repos.Waste.FindByID(ctx, waste.ID)
	if err != nil || kept.SourceDonationItemID != nil {
		t.Fatalf("expected waste kept and unlinked, got %+v (%v)", kept, err)
	}

	if err := f.repos.Donations.Delete(ctx, f.donation.ID); !domain.IsNotFound(err) {
		t.Fatalf("expected not found on second delete, got %v", err)
	}
}

func TestDonationFindAllFilters(t *testing.T) {
	f := seed(t, newTestDB(t))
	ctx := context.Background()

	other := &domain.Donation{DonorID: f.donor.ID, DonationDate: time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC), ReceiptNumber: "R-1002", Status: domain.StatusPending, ReceivedBy: "bob"}
	if err := f.repos.Donations.Create(ctx, other); err != nil {
		t.Fatal(err)
	}
	if err := f.repos.Donations.UpdateStatus(ctx, other.ID, domain.StatusInspection, nil); err != nil {
		t.Fatal(err)
	}

	got, err := f.repos.Donations.FindAll(ctx, domain.DonationFilter{Status: domain.StatusInspection})
	if err != nil || len(got) != 1 || got[0].ID != other.ID {
		t.Fatalf("unexpected status filter result: %+v (%v)", got, err)
	}

	from := time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2024, 4, 1, 0, 0, 0, 0, time.UTC)
	got, _ = f.repos.Donations.FindAll(ctx, domain.DonationFilter{From: &from, To: &to})
	if len(got) != 1 || got[0].ID != f.donation.ID {
		t.Fatalf("unexpected date filter result: %+v", got)
	}
	if got[0].Donor == nil || len(got[0].Items) != 1 {
		t.Fatalf("expected donor and items preloaded: %+v", got[0])
	}
}

func TestAuditAppendRejectsExistingRows(t *testing.T) {
	f := seed(t, newTestDB(t))
	ctx := context.Background()

	entry := &domain.DonationAuditTrail{DonationID: f.donation.ID, Action: domain.AuditCreated, PerformedBy: "alice", PerformedAt: time.Now().UTC()}
	if err := f.repos.Audit.Append(ctx, entry); err != nil {
		t.Fatal(err)
	}
	entry.Notes = "rewritten"
	if err := f.repos.Audit.Append(ctx, entry); !domain.IsConflict(err) {
		t.Fatalf("expected append-only conflict, got %v", err)
	}
	trail, _ := f.repos.Audit.FindByDonationID(ctx, f.donation.ID)
	if len(trail) != 1 || trail[0].Notes != "" {
		t.Fatalf("unexpected trail: %+v", trail)
	}
}

func TestDonorSetActive(t *testing.T) {
	f := seed(t, newTestDB(t))
	ctx := context.Background()

	if err := f.repos.Donors.SetActive(ctx, f.donor.ID, false); err != nil {
		t.Fatal(err)
	}
	active := true
	got, _ := f.repos.Donors.FindAll(ctx, domain.DonorFilter{Active: &active})
	if len(got) != 0 {
		t.Fatalf("expected no active donors, got %d", len(got))
	}
	if err := f.repos.Donors.SetActive(ctx, 404, true); !domain.IsNotFound(err) {
		t.Fatalf("expected not found, got %v", err)
	}
}
