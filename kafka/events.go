package kafka

import "time"

// DonationEvent describes one committed change in a donation's lifecycle
type DonationEvent struct {
	EventID          string    `json:"event_id"`
	EventType        string    `json:"event_type"`
	DonationID       uint      `json:"donation_id"`
	ItemID           uint      `json:"item_id,omitempty"`
	OldStatus        string    `json:"old_status,omitempty"`
	NewStatus        string    `json:"new_status,omitempty"`
	Actor            string    `json:"actor"`
	QuantityApproved int       `json:"quantity_approved,omitempty"`
	QuantityRejected int       `json:"quantity_rejected,omitempty"`
	Timestamp        time.Time `json:"timestamp"`
}

// Event types
const (
	EventTypeDonationCreated      = "donation.created"
	EventTypeItemAdded            = "donation.item_added"
	EventTypeInspectionRecorded   = "donation.inspection_recorded"
	EventTypeDispositionRecorded  = "donation.disposition_recorded"
	EventTypeStatusChanged        = "donation.status_changed"
	EventTypeReceiptIssued        = "donation.receipt_issued"
	EventTypeReceiptReissued      = "donation.receipt_reissued"
	EventTypeDonationDeleted      = "donation.deleted"
	EventTypeInventoryAdjusted    = "inventory.adjusted"
	EventTypeInventoryBlockToggle = "inventory.block_changed"
)

// TopicDonationLifecycle is the default topic for lifecycle events
const TopicDonationLifecycle = "donation-lifecycle"
