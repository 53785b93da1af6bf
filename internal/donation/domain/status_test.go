package domain

import "testing"

func TestCheckAdminTransition(t *testing.T) {
	cases := []struct {
		from, to DonationStatus
		ok       bool
	}{
		{StatusPending, StatusInspection, true},
		{StatusApproved, StatusArchived, true},
		{StatusRejected, StatusArchived, true},
		{StatusPending, StatusArchived, false},
		{StatusPending, StatusApproved, false},
		{StatusInspection, StatusApproved, false},
		{StatusInspection, StatusRejected, false},
		{StatusInspection, StatusArchived, false},
		{StatusArchived, StatusPending, false},
		{StatusPending, StatusPending, false},
	}
	for _, tc := range cases {
		err := CheckAdminTransition(tc.from, tc.to)
		if tc.ok && err != nil {
			t.Errorf("%s -> %s: unexpected error %v", tc.from, tc.to, err)
		}
		if !tc.ok && !IsInvalidTransition(err) {
			t.Errorf("%s -> %s: expected invalid transition, got %v", tc.from, tc.to, err)
		}
	}
}

func TestDeriveStatus(t *testing.T) {
	inspected := DonationItem{Status: ItemInspected, Inspection: &QualityInspection{}}
	received := DonationItem{Status: ItemReceived}
	approved := DonationItem{Status: ItemDispositioned, Disposition: &Disposition{QuantityApproved: 3}}
	rejected := DonationItem{Status: ItemDispositioned, Disposition: &Disposition{QuantityRejected: 3}}

	cases := []struct {
		name    string
		current DonationStatus
		items   []DonationItem
		want    DonationStatus
	}{
		{"no work stays pending", StatusPending, []DonationItem{received}, StatusPending},
		{"first inspection", StatusPending, []DonationItem{inspected, received}, StatusInspection},
		{"partial dispositions", StatusInspection, []DonationItem{approved, received}, StatusInspection},
		{"disposition without inspection", StatusPending, []DonationItem{rejected, received}, StatusInspection},
		{"all dispositioned with approval", StatusInspection, []DonationItem{approved, rejected}, StatusApproved},
		{"all dispositioned none approved", StatusInspection, []DonationItem{rejected, rejected}, StatusRejected},
		{"terminal status untouched", StatusArchived, []DonationItem{approved}, StatusArchived},
		{"approved status untouched", StatusApproved, []DonationItem{rejected}, StatusApproved},
		{"no items", StatusPending, nil, StatusPending},
	}
	for _, tc := range cases {
		if got := DeriveStatus(tc.current, tc.items); got != tc.want {
			t.Errorf("%s: expected %s, got %s", tc.name, tc.want, got)
		}
	}
}

func TestParseHelpers(t *testing.T) {
	if s, ok := ParseDonationStatus(" archived "); !ok || s != StatusArchived {
		t.Errorf("unexpected status parse: %v %v", s, ok)
	}
	if _, ok := ParseDonationStatus("shipped"); ok {
		t.Error("expected unknown status to fail")
	}
	if r, ok := ParseInspectionResult("conditional"); !ok || r != InspectionConditional {
		t.Errorf("unexpected result parse: %v %v", r, ok)
	}
	if d, ok := ParseDispositionType("PARTIAL"); !ok || d != DispositionPartial {
		t.Errorf("unexpected type parse: %v %v", d, ok)
	}
	if DefaultDispositionType(InspectionRejected) != DispositionRejected ||
		DefaultDispositionType(InspectionApproved) != DispositionAccepted ||
		DefaultDispositionType(InspectionConditional) != DispositionPartial {
		t.Error("unexpected default disposition mapping")
	}
}
