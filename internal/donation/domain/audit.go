package domain

import (
	"context"
	"time"

	"gorm.io/datatypes"
)

// AuditAction names a state-changing action on a donation
type AuditAction string

// Audit actions
const (
	AuditCreated             AuditAction = "Created"
	AuditItemAdded           AuditAction = "ItemAdded"
	AuditInspectionRecorded  AuditAction = "InspectionRecorded"
	AuditDispositionRecorded AuditAction = "DispositionRecorded"
	AuditStatusChanged       AuditAction = "StatusChanged"
	AuditReceiptIssued       AuditAction = "ReceiptIssued"
	AuditReceiptReissued     AuditAction = "ReceiptReissued"
)

// DonationAuditTrail is one append-only history row for a donation
type DonationAuditTrail struct {
	ID          uint           `json:"id" gorm:"primaryKey"`
	DonationID  uint           `json:"donation_id" gorm:"not null;index"`
	Action      AuditAction    `json:"action" gorm:"type:varchar(40);not null"`
	OldStatus   DonationStatus `json:"old_status,omitempty" gorm:"type:varchar(20)"`
	NewStatus   DonationStatus `json:"new_status,omitempty" gorm:"type:varchar(20)"`
	PerformedBy string         `json:"performed_by" gorm:"not null"`
	PerformedAt time.Time      `json:"performed_at" gorm:"index"`
	Notes       string         `json:"notes"`
	Details     datatypes.JSON `json:"details,omitempty"`
}

// TableName specifies the table name
func (DonationAuditTrail) TableName() string {
	return "donation_audit_trails"
}

// AuditRepository defines the contract for the append-only audit log.
// There is no update or single-row delete.
type AuditRepository interface {
	Append(ctx context.Context, entry *DonationAuditTrail) error
	FindByDonationID(ctx context.Context, donationID uint) ([]DonationAuditTrail, error)
}
