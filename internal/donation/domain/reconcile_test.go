package domain

import (
	"testing"
	"time"
)

func intPtr(v int) *int { return &v }

func TestReconcile(t *testing.T) {
	cases := []struct {
		name     string
		received int
		approved *int
		rejected *int
		want     Split
		wantErr  bool
	}{
		{"split within received", 10, intPtr(7), intPtr(2), Split{Approved: 7, Rejected: 2}, false},
		{"exact allocation", 10, intPtr(4), intPtr(6), Split{Approved: 4, Rejected: 6}, false},
		{"omitted quantities default to zero", 10, nil, nil, Split{}, false},
		{"approved only", 5, intPtr(5), nil, Split{Approved: 5}, false},
		{"rejected only", 5, nil, intPtr(3), Split{Rejected: 3}, false},
		{"over allocation", 10, intPtr(8), intPtr(5), Split{}, true},
		{"negative approved", 10, intPtr(-1), nil, Split{}, true},
		{"negative rejected", 10, nil, intPtr(-4), Split{}, true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := Reconcile(tc.received, tc.approved, tc.rejected)
			if tc.wantErr {
				if !IsValidation(err) {
					t.Fatalf("expected validation error, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tc.want {
				t.Fatalf("expected %+v, got %+v", tc.want, got)
			}
		})
	}
}

func TestSplitUnallocated(t *testing.T) {
	if got := (Split{Approved: 3, Rejected: 2}).Unallocated(10); got != 5 {
		t.Fatalf("expected 5 unallocated, got %d", got)
	}
}

func TestMaterializeCreatesInventoryAndWaste(t *testing.T) {
	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	expires := now.AddDate(0, 3, 0)
	item := DonationItem{ID: 9, ProductID: 4, QuantityReceived: 10, ExpirationDate: &expires, StorageLocation: "cold-room"}
	disp := Disposition{Type: DispositionPartial, ApprovedBy: "alice", Reason: "dented cans"}

	stock, waste := Split{Approved: 7, Rejected: 2}.Materialize(item, disp, nil, now)
	if stock == nil || waste == nil {
		t.Fatalf("expected both inventory and waste, got %v %v", stock, waste)
	}
	if stock.Quantity != 7 || stock.SourceDonationItemID != 9 || stock.IsBlocked {
		t.Errorf("unexpected inventory row: %+v", stock)
	}
	if stock.ExpirationDate == nil || !stock.ExpirationDate.Equal(expires) {
		t.Errorf("expected inherited expiration date, got %v", stock.ExpirationDate)
	}
	if !stock.DateReceived.Equal(now) || stock.Location != "cold-room" {
		t.Errorf("unexpected inventory metadata: %+v", stock)
	}
	if waste.Quantity != 2 || waste.Reason != "dented cans" || waste.DisposedBy != "alice" {
		t.Errorf("unexpected waste row: %+v", waste)
	}
	if waste.SourceDonationItemID == nil || *waste.SourceDonationItemID != 9 {
		t.Errorf("waste not traced to source item: %+v", waste)
	}
	if !waste.DisposedAt.Equal(now) {
		t.Errorf("expected disposed at %v, got %v", now, waste.DisposedAt)
	}
}

func TestMaterializeWasteReasonFallsBackToInspection(t *testing.T) {
	item := DonationItem{ID: 1, QuantityReceived: 4}
	inspection := &QualityInspection{Result: InspectionRejected, RejectionReason: "mold"}

	_, waste := Split{Rejected: 4}.Materialize(item, Disposition{}, inspection, time.Now())
	if waste == nil || waste.Reason != "mold" {
		t.Fatalf("expected inspection rejection reason, got %+v", waste)
	}

	_, waste = Split{Rejected: 4}.Materialize(item, Disposition{}, nil, time.Now())
	if waste.Reason != DefaultWasteReason {
		t.Fatalf("expected default reason, got %q", waste.Reason)
	}
}

func TestMaterializeSkipsZeroSides(t *testing.T) {
	stock, waste := Split{}.Materialize(DonationItem{ID: 1, QuantityReceived: 3}, Disposition{}, nil, time.Now())
	if stock != nil || waste != nil {
		t.Fatalf("expected no rows for an empty split, got %v %v", stock, waste)
	}
	stock, _ = Split{Approved: 1}.Materialize(DonationItem{ID: 1}, Disposition{}, nil, time.Now())
	if stock.Location != "warehouse" {
		t.Fatalf("expected default location, got %q", stock.Location)
	}
}
