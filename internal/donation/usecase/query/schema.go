package query

import (
	"time"

	"github.com/tair/donation-tracker/internal/donation/domain"
	"github.com/tair/donation-tracker/pkg/query"
)

// DonationSchema declares the searchable and sortable donation fields
var DonationSchema = query.Schema[domain.Donation]{
	Search: []func(domain.Donation) string{
		func(d domain.Donation) string { return d.ReceiptNumber },
		func(d domain.Donation) string { return d.ReceivedBy },
		func(d domain.Donation) string { return d.Notes },
		func(d domain.Donation) string {
			if d.Donor == nil {
				return ""
			}
			return d.Donor.Name
		},
	},
	Sort: map[string]query.Compare[domain.Donation]{
		"id":             query.By(func(d domain.Donation) uint { return d.ID }),
		"donation_date":  query.ByTime(func(d domain.Donation) time.Time { return d.DonationDate }),
		"receipt_number": query.ByFold(func(d domain.Donation) string { return d.ReceiptNumber }),
		"status":         query.By(func(d domain.Donation) string { return string(d.Status) }),
		"received_by":    query.ByFold(func(d domain.Donation) string { return d.ReceivedBy }),
		"created_at":     query.ByTime(func(d domain.Donation) time.Time { return d.CreatedAt }),
		"total_received": query.By(func(d domain.Donation) int { return d.TotalReceived() }),
	},
}

// DonorSchema declares the searchable and sortable donor fields
var DonorSchema = query.Schema[domain.Donor]{
	Search: []func(domain.Donor) string{
		func(d domain.Donor) string { return d.Name },
		func(d domain.Donor) string { return d.Email },
		func(d domain.Donor) string { return d.Phone },
		func(d domain.Donor) string { return d.Address },
	},
	Sort: map[string]query.Compare[domain.Donor]{
		"id":         query.By(func(d domain.Donor) uint { return d.ID }),
		"name":       query.ByFold(func(d domain.Donor) string { return d.Name }),
		"email":      query.ByFold(func(d domain.Donor) string { return d.Email }),
		"type":       query.By(func(d domain.Donor) string { return string(d.Type) }),
		"created_at": query.ByTime(func(d domain.Donor) time.Time { return d.CreatedAt }),
	},
}

// ProductSchema declares the searchable and sortable product fields
var ProductSchema = query.Schema[domain.Product]{
	Search: []func(domain.Product) string{
		func(p domain.Product) string { return p.Name },
		func(p domain.Product) string { return p.SKU },
		func(p domain.Product) string { return p.Category },
		func(p domain.Product) string { return p.Description },
	},
	Sort: map[string]query.Compare[domain.Product]{
		"id":         query.By(func(p domain.Product) uint { return p.ID }),
		"name":       query.ByFold(func(p domain.Product) string { return p.Name }),
		"sku":        query.By(func(p domain.Product) string { return p.SKU }),
		"category":   query.ByFold(func(p domain.Product) string { return p.Category }),
		"created_at": query.ByTime(func(p domain.Product) time.Time { return p.CreatedAt }),
	},
}

func inventoryProductName(i domain.InventoryItem) string {
	if i.SourceDonationItem == nil || i.SourceDonationItem.Product == nil {
		return ""
	}
	return i.SourceDonationItem.Product.Name
}

// InventorySchema declares the searchable and sortable inventory fields
var InventorySchema = query.Schema[domain.InventoryItem]{
	Search: []func(domain.InventoryItem) string{
		inventoryProductName,
		func(i domain.InventoryItem) string { return i.Location },
		func(i domain.InventoryItem) string { return i.BlockReason },
		func(i domain.InventoryItem) string {
			if i.SourceDonationItem == nil {
				return ""
			}
			return i.SourceDonationItem.BatchNumber
		},
	},
	Sort: map[string]query.Compare[domain.InventoryItem]{
		"id":              query.By(func(i domain.InventoryItem) uint { return i.ID }),
		"quantity":        query.By(func(i domain.InventoryItem) int { return i.Quantity }),
		"location":        query.ByFold(func(i domain.InventoryItem) string { return i.Location }),
		"product":         query.ByFold(inventoryProductName),
		"expiration_date": query.ByOptionalTime(func(i domain.InventoryItem) *time.Time { return i.ExpirationDate }),
		"date_received":   query.ByTime(func(i domain.InventoryItem) time.Time { return i.DateReceived }),
	},
}

// WasteSchema declares the searchable and sortable waste fields
var WasteSchema = query.Schema[domain.WasteRecord]{
	Search: []func(domain.WasteRecord) string{
		func(w domain.WasteRecord) string { return w.Reason },
		func(w domain.WasteRecord) string { return w.DisposalMethod },
		func(w domain.WasteRecord) string { return w.DisposedBy },
		func(w domain.WasteRecord) string { return w.Notes },
		func(w domain.WasteRecord) string {
			if w.Product == nil {
				return ""
			}
			return w.Product.Name
		},
	},
	Sort: map[string]query.Compare[domain.WasteRecord]{
		"id":              query.By(func(w domain.WasteRecord) uint { return w.ID }),
		"quantity":        query.By(func(w domain.WasteRecord) int { return w.Quantity }),
		"reason":          query.ByFold(func(w domain.WasteRecord) string { return w.Reason }),
		"disposal_method": query.By(func(w domain.WasteRecord) string { return w.DisposalMethod }),
		"disposed_at":     query.ByTime(func(w domain.WasteRecord) time.Time { return w.DisposedAt }),
	},
}

// ShiftSchema declares the searchable and sortable volunteer shift fields
var ShiftSchema = query.Schema[domain.VolunteerShift]{
	Search: []func(domain.VolunteerShift) string{
		func(s domain.VolunteerShift) string { return s.VolunteerName },
		func(s domain.VolunteerShift) string { return s.VolunteerEmail },
		func(s domain.VolunteerShift) string { return s.Role },
		func(s domain.VolunteerShift) string { return s.Location },
	},
	Sort: map[string]query.Compare[domain.VolunteerShift]{
		"id":             query.By(func(s domain.VolunteerShift) uint { return s.ID }),
		"volunteer_name": query.ByFold(func(s domain.VolunteerShift) string { return s.VolunteerName }),
		"role":           query.ByFold(func(s domain.VolunteerShift) string { return s.Role }),
		"status":         query.By(func(s domain.VolunteerShift) string { return string(s.Status) }),
		"starts_at":      query.ByTime(func(s domain.VolunteerShift) time.Time { return s.StartsAt }),
		"hours_logged":   query.By(func(s domain.VolunteerShift) float64 { return s.HoursLogged }),
	},
}

func checkRange(from, to *time.Time) error {
	if from != nil && to != nil && to.Before(*from) {
		return domain.ValidationError{Field: "to", Reason: "must not be before from"}
	}
	return nil
}
