package http

import (
	"net/http"
	"time"

	"github.com/tair/donation-tracker/internal/donation/usecase/command"
	"github.com/tair/donation-tracker/internal/donation/usecase/query"
)

// ItemRequest describes one received item
type ItemRequest struct {
	ProductID        uint       `json:"product_id"`
	QuantityReceived int        `json:"quantity_received"`
	UnitType         string     `json:"unit_type"`
	ExpirationDate   *time.Time `json:"expiration_date"`
	ManufactureDate  *time.Time `json:"manufacture_date"`
	BatchNumber      string     `json:"batch_number"`
	StorageLocation  string     `json:"storage_location"`
}

func (i ItemRequest) toNewItem() command.NewItem {
	return command.NewItem{
		ProductID:        i.ProductID,
		QuantityReceived: i.QuantityReceived,
		UnitType:         i.UnitType,
		ExpirationDate:   i.ExpirationDate,
		ManufactureDate:  i.ManufactureDate,
		BatchNumber:      i.BatchNumber,
		StorageLocation:  i.StorageLocation,
	}
}

// CreateDonationRequest is the body of POST /api/donations
type CreateDonationRequest struct {
	DonorID       uint          `json:"donor_id"`
	DonationDate  *time.Time    `json:"donation_date"`
	ReceiptNumber string        `json:"receipt_number"`
	Notes         string        `json:"notes"`
	Items         []ItemRequest `json:"items"`
}

// CreateDonation godoc
// @Summary Record a donation
// @Description Create a Pending donation with its items. The authenticated user is recorded as receiver.
// @Tags Donations
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body CreateDonationRequest true "Donation"
// @Success 201 {object} Response
// @Failure 400 {object} Response
// @Failure 409 {object} Response
// @Router /api/donations [post]
func (h *DonationHandler) CreateDonation(w http.ResponseWriter, r *http.Request) {
	var req CreateDonationRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, r, err)
		return
	}

	cmd := command.CreateDonationCommand{
		DonorID:       req.DonorID,
		ReceiptNumber: req.ReceiptNumber,
		ReceivedBy:    actor(r),
		Notes:         req.Notes,
	}
	if req.DonationDate != nil {
		cmd.DonationDate = *req.DonationDate
	}
	for _, it := range req.Items {
		cmd.Items = append(cmd.Items, it.toNewItem())
	}

	donation, err := h.cmd.CreateDonation.Handle(r.Context(), cmd)
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondOK(w, http.StatusCreated, "Donation created successfully", donation)
}

// ListDonations godoc
// @Summary List donations
// @Tags Donations
// @Security BearerAuth
// @Produce json
// @Param status query string false "Pending, Inspection, Approved, Rejected or Archived"
// @Param donor_id query int false "Donor ID"
// @Param from query string false "Earliest donation date"
// @Param to query string false "Latest donation date"
// @Param search query string false "Free-text search"
// @Param sort_by query string false "Sort field"
// @Param sort_desc query bool false "Sort descending"
// @Param page query int false "Page number (default 1)"
// @Param page_size query int false "Page size (default 10, max 100)"
// @Success 200 {object} Response
// @Failure 400 {object} Response
// @Router /api/donations [get]
func (h *DonationHandler) ListDonations(w http.ResponseWriter, r *http.Request) {
	q := query.ListDonationsQuery{Status: r.URL.Query().Get("status")}
	var err error
	if q.Params, err = listParams(r); err == nil {
		q.DonorID, err = uintParam(r, "donor_id")
	}
	if err == nil {
		q.From, err = timeParam(r, "from")
	}
	if err == nil {
		q.To, err = timeParam(r, "to")
	}
	if err != nil {
		respondError(w, r, err)
		return
	}

	page, err := h.qry.ListDonations.Handle(r.Context(), q)
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondOK(w, http.StatusOK, "", page)
}

// GetDonation godoc
// @Summary Get a donation
// @Description Donation with donor, items, inspections, dispositions, receipt and audit trail
// @Tags Donations
// @Security BearerAuth
// @Produce json
// @Param id path int true "Donation ID"
// @Success 200 {object} Response
// @Failure 404 {object} Response
// @Router /api/donations/{id} [get]
func (h *DonationHandler) GetDonation(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		respondError(w, r, err)
		return
	}
	donation, err := h.qry.GetDonation.Handle(r.Context(), query.GetDonationQuery{ID: id})
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondOK(w, http.StatusOK, "", donation)
}

// DeleteDonation godoc
// @Summary Delete a donation
// @Description Removes a donation that has no dispositions, with its items, inspections, receipt and audit trail
// @Tags Donations
// @Security BearerAuth
// @Produce json
// @Param id path int true "Donation ID"
// @Success 200 {object} Response
// @Failure 404 {object} Response
// @Failure 409 {object} Response
// @Router /api/donations/{id} [delete]
func (h *DonationHandler) DeleteDonation(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		respondError(w, r, err)
		return
	}
	if err := h.cmd.DeleteDonation.Handle(r.Context(), command.DeleteDonationCommand{DonationID: id, Actor: actor(r)}); err != nil {
		respondError(w, r, err)
		return
	}
	respondOK(w, http.StatusOK, "Donation deleted successfully", nil)
}

// AddItem godoc
// @Summary Add an item to a donation
// @Tags Donations
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path int true "Donation ID"
// @Param request body ItemRequest true "Item"
// @Success 201 {object} Response
// @Failure 400 {object} Response
// @Failure 404 {object} Response
// @Router /api/donations/{id}/items [post]
func (h *DonationHandler) AddItem(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		respondError(w, r, err)
		return
	}
	var req ItemRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, r, err)
		return
	}

	item, err := h.cmd.AddItem.Handle(r.Context(), command.AddItemCommand{
		DonationID: id,
		Item:       req.toNewItem(),
		Actor:      actor(r),
	})
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondOK(w, http.StatusCreated, "Item added successfully", item)
}

// UpdateStatusRequest is the body of PATCH /api/donations/{id}/status
type UpdateStatusRequest struct {
	Status      string  `json:"status"`
	InspectedBy *string `json:"inspected_by"`
	Notes       string  `json:"notes"`
}

// UpdateStatus godoc
// @Summary Change a donation's status
// @Description Administrative transitions only: Pending to Inspection, Approved or Rejected to Archived
// @Tags Donations
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path int true "Donation ID"
// @Param request body UpdateStatusRequest true "Target status"
// @Success 200 {object} Response
// @Failure 400 {object} Response
// @Failure 404 {object} Response
// @Failure 422 {object} Response
// @Router /api/donations/{id}/status [patch]
func (h *DonationHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		respondError(w, r, err)
		return
	}
	var req UpdateStatusRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, r, err)
		return
	}

	donation, err := h.cmd.UpdateStatus.Handle(r.Context(), command.UpdateStatusCommand{
		DonationID:  id,
		Status:      req.Status,
		Actor:       actor(r),
		InspectedBy: req.InspectedBy,
		Notes:       req.Notes,
	})
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondOK(w, http.StatusOK, "Status updated successfully", donation)
}

// GetAuditTrail godoc
// @Summary Read a donation's audit trail
// @Tags Donations
// @Security BearerAuth
// @Produce json
// @Param id path int true "Donation ID"
// @Success 200 {object} Response
// @Failure 404 {object} Response
// @Router /api/donations/{id}/audit [get]
func (h *DonationHandler) GetAuditTrail(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		respondError(w, r, err)
		return
	}
	trail, err := h.qry.AuditTrail.Handle(r.Context(), query.GetAuditTrailQuery{DonationID: id})
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondOK(w, http.StatusOK, "", trail)
}

// ReceiptRequest is the optional body of the receipt endpoints
type ReceiptRequest struct {
	Notes string `json:"notes"`
}

func (h *DonationHandler) receiptCommand(w http.ResponseWriter, r *http.Request) (command.ReceiptCommand, bool) {
	id, err := pathID(r, "id")
	if err != nil {
		respondError(w, r, err)
		return command.ReceiptCommand{}, false
	}
	var req ReceiptRequest
	if r.ContentLength != 0 {
		if err := decodeJSON(r, &req); err != nil {
			respondError(w, r, err)
			return command.ReceiptCommand{}, false
		}
	}
	return command.ReceiptCommand{DonationID: id, IssuedBy: actor(r), Notes: req.Notes}, true
}

// GenerateReceipt godoc
// @Summary Issue the donation receipt
// @Tags Receipts
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path int true "Donation ID"
// @Success 201 {object} Response
// @Failure 404 {object} Response
// @Failure 409 {object} Response
// @Router /api/donations/{id}/receipt [post]
func (h *DonationHandler) GenerateReceipt(w http.ResponseWriter, r *http.Request) {
	cmd, ok := h.receiptCommand(w, r)
	if !ok {
		return
	}
	receipt, err := h.cmd.GenerateReceipt.Handle(r.Context(), cmd)
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondOK(w, http.StatusCreated, "Receipt issued successfully", receipt)
}

// ReissueReceipt godoc
// @Summary Reissue the donation receipt with current totals
// @Tags Receipts
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path int true "Donation ID"
// @Success 200 {object} Response
// @Failure 404 {object} Response
// @Router /api/donations/{id}/receipt [put]
func (h *DonationHandler) ReissueReceipt(w http.ResponseWriter, r *http.Request) {
	cmd, ok := h.receiptCommand(w, r)
	if !ok {
		return
	}
	receipt, err := h.cmd.ReissueReceipt.Handle(r.Context(), cmd)
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondOK(w, http.StatusOK, "Receipt reissued successfully", receipt)
}

// RecordInspectionRequest is the body of POST /api/items/{id}/inspection
type RecordInspectionRequest struct {
	Result          string `json:"result"`
	QualityRating   *int   `json:"quality_rating"`
	Notes           string `json:"notes"`
	RejectionReason string `json:"rejection_reason"`
}

// RecordInspection godoc
// @Summary Record an item inspection
// @Tags Items
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path int true "Item ID"
// @Param request body RecordInspectionRequest true "Inspection"
// @Success 201 {object} Response
// @Failure 400 {object} Response
// @Failure 404 {object} Response
// @Failure 409 {object} Response
// @Router /api/items/{id}/inspection [post]
func (h *DonationHandler) RecordInspection(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		respondError(w, r, err)
		return
	}
	var req RecordInspectionRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, r, err)
		return
	}

	inspection, err := h.cmd.RecordInspection.Handle(r.Context(), command.RecordInspectionCommand{
		ItemID:          id,
		InspectedBy:     actor(r),
		Result:          req.Result,
		QualityRating:   req.QualityRating,
		Notes:           req.Notes,
		RejectionReason: req.RejectionReason,
	})
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondOK(w, http.StatusCreated, "Inspection recorded successfully", inspection)
}

// RecordDispositionRequest is the body of POST /api/items/{id}/disposition
type RecordDispositionRequest struct {
	Type             string `json:"type"`
	QuantityApproved *int   `json:"quantity_approved"`
	QuantityRejected *int   `json:"quantity_rejected"`
	Reason           string `json:"reason"`
}

// RecordDisposition godoc
// @Summary Record an item disposition
// @Description Splits the received quantity into inventory and waste and re-derives the donation status
// @Tags Items
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path int true "Item ID"
// @Param request body RecordDispositionRequest true "Disposition"
// @Success 201 {object} Response
// @Failure 400 {object} Response
// @Failure 404 {object} Response
// @Failure 409 {object} Response
// @Router /api/items/{id}/disposition [post]
func (h *DonationHandler) RecordDisposition(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		respondError(w, r, err)
		return
	}
	var req RecordDispositionRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, r, err)
		return
	}

	result, err := h.cmd.RecordDisposition.Handle(r.Context(), command.RecordDispositionCommand{
		ItemID:           id,
		Type:             req.Type,
		QuantityApproved: req.QuantityApproved,
		QuantityRejected: req.QuantityRejected,
		ApprovedBy:       actor(r),
		Reason:           req.Reason,
	})
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondOK(w, http.StatusCreated, "Disposition recorded successfully", result)
}
