package domain

import "time"

// DefaultWasteReason is recorded when neither the disposition nor the inspection gives one
const DefaultWasteReason = "Rejected at disposition"

// Split is a validated division of a received quantity
type Split struct {
	Approved int
	Rejected int
}

// Unallocated is the part of the received quantity the split leaves undecided
func (s Split) Unallocated(received int) int {
	return received - s.Approved - s.Rejected
}

// Reconcile validates a requested split against the received quantity. Omitted
// quantities count as zero. Under-allocation is legal; no remainder record is made.
func Reconcile(received int, approved, rejected *int) (Split, error) {
	var s Split
	if approved != nil {
		s.Approved = *approved
	}
	if rejected != nil {
		s.Rejected = *rejected
	}

	if s.Approved < 0 {
		return Split{}, ValidationError{Field: "quantity_approved", Reason: "cannot be negative"}
	}
	if s.Rejected < 0 {
		return Split{}, ValidationError{Field: "quantity_rejected", Reason: "cannot be negative"}
	}
	if s.Approved+s.Rejected > received {
		return Split{}, ValidationError{
			Field:  "quantity",
			Reason: "approved plus rejected exceeds quantity received",
		}
	}
	return s, nil
}

// Materialize builds the inventory and waste rows for a split. Either result is nil
// when its side of the split is zero.
func (s Split) Materialize(item DonationItem, disposition Disposition, inspection *QualityInspection, now time.Time) (*InventoryItem, *WasteRecord) {
	var stock *InventoryItem
	if s.Approved > 0 {
		location := item.StorageLocation
		if location == "" {
			location = "warehouse"
		}
		stock = &InventoryItem{
			SourceDonationItemID: item.ID,
			Quantity:             s.Approved,
			Location:             location,
			ExpirationDate:       item.ExpirationDate,
			DateReceived:         now,
		}
	}

	var waste *WasteRecord
	if s.Rejected > 0 {
		reason := disposition.Reason
		if reason == "" && inspection != nil {
			reason = inspection.RejectionReason
		}
		if reason == "" {
			reason = DefaultWasteReason
		}
		itemID := item.ID
		productID := item.ProductID
		waste = &WasteRecord{
			SourceDonationItemID: &itemID,
			ProductID:            &productID,
			Quantity:             s.Rejected,
			Reason:               reason,
			DisposalMethod:       DisposalDiscarded,
			DisposedAt:           now,
			DisposedBy:           disposition.ApprovedBy,
		}
	}
	return stock, waste
}
