package command

import (
	"context"
	"testing"
	"time"

	"github.com/tair/donation-tracker/internal/donation/domain"
	"github.com/tair/donation-tracker/kafka"
	"github.com/tair/donation-tracker/pkg/cache"
)

type recordingCache struct {
	namespaces []string
}

func (c *recordingCache) Invalidate(_ context.Context, namespace string) error {
	c.namespaces = append(c.namespaces, namespace)
	return nil
}

func TestDonorCommands(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	invalidations := &recordingCache{}
	e.lc.Cache = invalidations

	if _, err := NewCreateDonorHandler(e.lc).Handle(ctx, DonorCommand{Name: "  "}); !domain.IsValidation(err) {
		t.Fatalf("expected validation error for blank name, got %v", err)
	}
	if _, err := NewCreateDonorHandler(e.lc).Handle(ctx, DonorCommand{Name: "Ann", Email: "not-an-email"}); !domain.IsValidation(err) {
		t.Fatalf("expected validation error for bad email, got %v", err)
	}
	if _, err := NewCreateDonorHandler(e.lc).Handle(ctx, DonorCommand{Name: "Ann", Type: "Robot"}); !domain.IsValidation(err) {
		t.Fatalf("expected validation error for bad type, got %v", err)
	}

	donor, err := NewCreateDonorHandler(e.lc).Handle(ctx, DonorCommand{Name: " Ann Lee ", Email: "ann@example.org", Type: "organization"})
	if err != nil {
		t.Fatalf("create donor: %v", err)
	}
	if donor.Name != "Ann Lee" || donor.Type != domain.DonorOrganization || !donor.IsActive {
		t.Fatalf("unexpected donor: %+v", donor)
	}

	updated, err := NewUpdateDonorHandler(e.lc).Handle(ctx, DonorCommand{ID: donor.ID, Name: "Ann Lee-Smith", Phone: "555-0100"})
	if err != nil {
		t.Fatalf("update donor: %v", err)
	}
	if updated.Type != domain.DonorIndividual || updated.Phone != "555-0100" || updated.Email != "" {
		t.Fatalf("expected full replacement of editable fields, got %+v", updated)
	}
	if _, err := NewUpdateDonorHandler(e.lc).Handle(ctx, DonorCommand{ID: 999, Name: "x"}); !domain.IsNotFound(err) {
		t.Fatalf("expected not found, got %v", err)
	}

	if err := NewSetDonorActiveHandler(e.lc).Handle(ctx, donor.ID, false); err != nil {
		t.Fatalf("deactivate: %v", err)
	}
	reloaded, _ := e.repos.Donors.FindByID(ctx, donor.ID)
	if reloaded.IsActive {
		t.Fatal("expected donor inactive")
	}

	if len(invalidations.namespaces) != 3 {
		t.Fatalf("expected one invalidation per successful write, got %v", invalidations.namespaces)
	}
	for _, ns := range invalidations.namespaces {
		if ns != cache.NamespaceDonors {
			t.Fatalf("unexpected namespace %s", ns)
		}
	}
}

func TestProductCommands(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	invalidations := &recordingCache{}
	e.lc.Cache = invalidations
	create := NewCreateProductHandler(e.lc)

	inactive := false
	product, err := create.Handle(ctx, ProductCommand{Name: "Oats", SKU: " oat-01 ", IsActive: &inactive})
	if err != nil {
		t.Fatalf("create product: %v", err)
	}
	if product.SKU != "OAT-01" || product.UnitType != "unit" || !product.IsActive {
		t.Fatalf("unexpected product: %+v", product)
	}

	if _, err := create.Handle(ctx, ProductCommand{Name: "More oats", SKU: "OAT-01"}); !domain.IsConflict(err) {
		t.Fatalf("expected SKU conflict, got %v", err)
	}
	if _, err := create.Handle(ctx, ProductCommand{Name: "No sku"}); !domain.IsValidation(err) {
		t.Fatalf("expected validation error, got %v", err)
	}

	update := NewUpdateProductHandler(e.lc)
	if _, err := update.Handle(ctx, ProductCommand{ID: product.ID, Name: "Oats", SKU: e.beans.SKU}); !domain.IsConflict(err) {
		t.Fatalf("expected conflict taking another product's SKU, got %v", err)
	}
	updated, err := update.Handle(ctx, ProductCommand{ID: product.ID, Name: "Rolled Oats", SKU: "OAT-01", UnitType: "box", IsActive: &inactive})
	if err != nil {
		t.Fatalf("update product keeping its own SKU: %v", err)
	}
	if updated.IsActive || updated.UnitType != "box" {
		t.Fatalf("unexpected update: %+v", updated)
	}

	if err := NewDeleteProductHandler(e.lc).Handle(ctx, product.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := e.repos.Products.FindByID(ctx, product.ID); !domain.IsNotFound(err) {
		t.Fatalf("expected deleted product hidden, got %v", err)
	}
	if _, err := create.Handle(ctx, ProductCommand{Name: "Oats again", SKU: "OAT-01"}); !domain.IsConflict(err) {
		t.Fatalf("expected SKU of a deleted product to stay reserved, got %v", err)
	}
	if err := NewDeleteProductHandler(e.lc).Handle(ctx, product.ID); !domain.IsNotFound(err) {
		t.Fatalf("expected not found deleting twice, got %v", err)
	}

	if len(invalidations.namespaces) != 3 {
		t.Fatalf("expected three invalidations, got %v", invalidations.namespaces)
	}
}

func TestDeletedProductStaysOnHistoricalItems(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	donation := e.createDonation(t, "R-900", 3)

	if err := NewDeleteProductHandler(e.lc).Handle(ctx, e.beans.ID); err != nil {
		t.Fatal(err)
	}
	detailed, err := e.repos.Donations.FindDetailed(ctx, donation.ID)
	if err != nil {
		t.Fatal(err)
	}
	if detailed.Items[0].Product == nil || detailed.Items[0].Product.SKU != e.beans.SKU {
		t.Fatalf("expected deleted product still attached, got %+v", detailed.Items[0].Product)
	}
	if _, err := NewAddItemHandler(e.lc).Handle(ctx, AddItemCommand{
		DonationID: donation.ID, Item: NewItem{ProductID: e.beans.ID, QuantityReceived: 1}, Actor: "alice",
	}); !domain.IsValidation(err) {
		t.Fatalf("expected validation error adding a deleted product, got %v", err)
	}
}

func TestInventoryAdjustAndBlock(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	donation := e.createDonation(t, "R-910", 10)
	res, err := e.dispose(donation.Items[0].ID, "Accepted", intPtr(10), nil)
	if err != nil {
		t.Fatal(err)
	}
	stockID := res.InventoryItem.ID
	adjust := NewAdjustInventoryHandler(e.lc)

	if _, err := adjust.Handle(ctx, AdjustInventoryCommand{InventoryID: stockID, Delta: 0, Actor: "dave"}); !domain.IsValidation(err) {
		t.Fatalf("expected validation error for zero delta, got %v", err)
	}
	if _, err := adjust.Handle(ctx, AdjustInventoryCommand{InventoryID: stockID, Delta: -3}); !domain.IsValidation(err) {
		t.Fatalf("expected validation error without actor, got %v", err)
	}
	item, err := adjust.Handle(ctx, AdjustInventoryCommand{InventoryID: stockID, Delta: -4, Actor: "dave", Reason: "distributed"})
	if err != nil {
		t.Fatal(err)
	}
	if item.Quantity != 6 {
		t.Fatalf("expected 6 on hand, got %d", item.Quantity)
	}
	item, err = adjust.Handle(ctx, AdjustInventoryCommand{InventoryID: stockID, Delta: -50, Actor: "dave"})
	if err != nil {
		t.Fatal(err)
	}
	if item.Quantity != 0 {
		t.Fatalf("expected quantity clamped at zero, got %d", item.Quantity)
	}
	if _, err := adjust.Handle(ctx, AdjustInventoryCommand{InventoryID: 404, Delta: 1, Actor: "dave"}); !domain.IsNotFound(err) {
		t.Fatalf("expected not found, got %v", err)
	}

	block := NewSetBlockedHandler(e.lc)
	if _, err := block.Handle(ctx, SetBlockedCommand{InventoryID: stockID, Blocked: true, Actor: "dave"}); !domain.IsValidation(err) {
		t.Fatalf("expected validation error blocking without reason, got %v", err)
	}
	item, err = block.Handle(ctx, SetBlockedCommand{InventoryID: stockID, Blocked: true, Reason: "recall", Actor: "dave"})
	if err != nil {
		t.Fatal(err)
	}
	if !item.IsBlocked || item.BlockReason != "recall" || item.BlockedBy != "dave" || item.BlockedAt == nil {
		t.Fatalf("unexpected blocked item: %+v", item)
	}
	item, err = block.Handle(ctx, SetBlockedCommand{InventoryID: stockID, Blocked: false, Actor: "dave"})
	if err != nil {
		t.Fatal(err)
	}
	if item.IsBlocked || item.BlockReason != "" || item.BlockedAt != nil {
		t.Fatalf("expected block cleared, got %+v", item)
	}

	types := e.publisher.types()
	if types[len(types)-1] != kafka.EventTypeInventoryBlockToggle {
		t.Fatalf("expected block event last, got %v", types)
	}
}

func TestLogWaste(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	h := NewLogWasteHandler(e.lc)
	donation := e.createDonation(t, "R-920", 5)
	itemID := donation.Items[0].ID

	invalid := map[string]LogWasteCommand{
		"no actor":       {Quantity: 1, Reason: "spoiled"},
		"zero quantity":  {Quantity: 0, Reason: "spoiled", DisposedBy: "dave"},
		"no reason":      {Quantity: 1, DisposedBy: "dave"},
		"bad method":     {Quantity: 1, Reason: "spoiled", DisposalMethod: "Burned", DisposedBy: "dave"},
		"unknown item":   {SourceItemID: uintPtr(999), Quantity: 1, Reason: "spoiled", DisposedBy: "dave"},
		"mismatched sku": {SourceItemID: &itemID, ProductID: &e.rice.ID, Quantity: 1, Reason: "spoiled", DisposedBy: "dave"},
	}
	for name, cmd := range invalid {
		if _, err := h.Handle(ctx, cmd); !domain.IsValidation(err) {
			t.Errorf("%s: expected validation error, got %v", name, err)
		}
	}

	record, err := h.Handle(ctx, LogWasteCommand{SourceItemID: &itemID, Quantity: 2, Reason: "spoiled", DisposalMethod: "compost", DisposedBy: "dave"})
	if err != nil {
		t.Fatal(err)
	}
	if record.DisposalMethod != domain.DisposalCompost || record.ProductID == nil || *record.ProductID != e.beans.ID {
		t.Fatalf("unexpected waste record: %+v", record)
	}
	if !record.DisposedAt.Equal(fixedNow) {
		t.Fatalf("expected disposed at clock time, got %v", record.DisposedAt)
	}

	loose, err := h.Handle(ctx, LogWasteCommand{ProductID: &e.rice.ID, Quantity: 1, Reason: "torn bag", DisposedBy: "dave"})
	if err != nil {
		t.Fatal(err)
	}
	if loose.DisposalMethod != domain.DisposalDiscarded || loose.SourceDonationItemID != nil {
		t.Fatalf("unexpected loose waste record: %+v", loose)
	}
}

func TestShiftCommands(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	schedule := NewScheduleShiftHandler(e.lc)
	start := time.Date(2024, 6, 1, 8, 0, 0, 0, time.UTC)

	if _, err := schedule.Handle(ctx, ScheduleShiftCommand{VolunteerName: "Sam", StartsAt: start, EndsAt: start}); !domain.IsValidation(err) {
		t.Fatalf("expected validation error for empty shift, got %v", err)
	}
	if _, err := schedule.Handle(ctx, ScheduleShiftCommand{StartsAt: start, EndsAt: start.Add(time.Hour)}); !domain.IsValidation(err) {
		t.Fatalf("expected validation error without volunteer, got %v", err)
	}

	shift, err := schedule.Handle(ctx, ScheduleShiftCommand{VolunteerName: "Sam", Role: "sorter", StartsAt: start, EndsAt: start.Add(4 * time.Hour)})
	if err != nil {
		t.Fatal(err)
	}
	if shift.Status != domain.ShiftScheduled {
		t.Fatalf("expected Scheduled, got %s", shift.Status)
	}

	closeShift := NewCloseShiftHandler(e.lc)
	if _, err := closeShift.Handle(ctx, CloseShiftCommand{ShiftID: shift.ID, Status: domain.ShiftScheduled}); !domain.IsValidation(err) {
		t.Fatalf("expected validation error for target status, got %v", err)
	}
	done, err := closeShift.Handle(ctx, CloseShiftCommand{ShiftID: shift.ID, Status: domain.ShiftCompleted})
	if err != nil {
		t.Fatal(err)
	}
	if done.HoursLogged != 4 {
		t.Fatalf("expected hours to default to the scheduled 4, got %v", done.HoursLogged)
	}
	if _, err := closeShift.Handle(ctx, CloseShiftCommand{ShiftID: shift.ID, Status: domain.ShiftCancelled}); !domain.IsConflict(err) {
		t.Fatalf("expected conflict closing twice, got %v", err)
	}

	other, _ := schedule.Handle(ctx, ScheduleShiftCommand{VolunteerName: "Kim", StartsAt: start, EndsAt: start.Add(2 * time.Hour)})
	hours := 1.5
	done, err = closeShift.Handle(ctx, CloseShiftCommand{ShiftID: other.ID, Status: domain.ShiftCompleted, HoursLogged: &hours})
	if err != nil {
		t.Fatal(err)
	}
	if done.HoursLogged != 1.5 {
		t.Fatalf("expected explicit hours kept, got %v", done.HoursLogged)
	}
}

func uintPtr(v uint) *uint { return &v }
