package http

import (
	"net/http"
	"time"

	"github.com/tair/donation-tracker/internal/donation/domain"
	"github.com/tair/donation-tracker/internal/donation/usecase/command"
	"github.com/tair/donation-tracker/internal/donation/usecase/query"
)

// ListInventory godoc
// @Summary List inventory
// @Tags Inventory
// @Security BearerAuth
// @Produce json
// @Param blocked query bool false "Blocked flag"
// @Param expiring_before query string false "Only stock expiring before this date"
// @Param product_id query int false "Product ID"
// @Param in_stock query bool false "Only rows with quantity above zero"
// @Param search query string false "Free-text search"
// @Param sort_by query string false "Sort field"
// @Param sort_desc query bool false "Sort descending"
// @Param page query int false "Page number"
// @Param page_size query int false "Page size"
// @Success 200 {object} Response
// @Router /api/inventory [get]
func (h *DonationHandler) ListInventory(w http.ResponseWriter, r *http.Request) {
	var q query.ListInventoryQuery
	var err error
	var inStock *bool
	if q.Params, err = listParams(r); err == nil {
		q.Blocked, err = boolParam(r, "blocked")
	}
	if err == nil {
		q.ExpiringBefore, err = timeParam(r, "expiring_before")
	}
	if err == nil {
		q.ProductID, err = uintParam(r, "product_id")
	}
	if err == nil {
		inStock, err = boolParam(r, "in_stock")
	}
	if err != nil {
		respondError(w, r, err)
		return
	}
	q.InStockOnly = inStock != nil && *inStock

	page, err := h.qry.ListInventory.Handle(r.Context(), q)
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondOK(w, http.StatusOK, "", page)
}

// GetInventory godoc
// @Summary Get an inventory item
// @Tags Inventory
// @Security BearerAuth
// @Produce json
// @Param id path int true "Inventory item ID"
// @Success 200 {object} Response
// @Failure 404 {object} Response
// @Router /api/inventory/{id} [get]
func (h *DonationHandler) GetInventory(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		respondError(w, r, err)
		return
	}
	item, err := h.qry.GetInventory.Handle(r.Context(), query.GetInventoryQuery{ID: id})
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondOK(w, http.StatusOK, "", item)
}

// AdjustInventoryRequest is the body of PATCH /api/inventory/{id}/quantity
type AdjustInventoryRequest struct {
	Delta  int    `json:"delta"`
	Reason string `json:"reason"`
}

// AdjustInventory godoc
// @Summary Adjust the quantity on hand
// @Description Applies a signed delta; the quantity never drops below zero
// @Tags Inventory
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path int true "Inventory item ID"
// @Param request body AdjustInventoryRequest true "Adjustment"
// @Success 200 {object} Response
// @Failure 400 {object} Response
// @Failure 404 {object} Response
// @Router /api/inventory/{id}/quantity [patch]
func (h *DonationHandler) AdjustInventory(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		respondError(w, r, err)
		return
	}
	var req AdjustInventoryRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, r, err)
		return
	}
	item, err := h.cmd.AdjustInventory.Handle(r.Context(), command.AdjustInventoryCommand{
		InventoryID: id,
		Delta:       req.Delta,
		Actor:       actor(r),
		Reason:      req.Reason,
	})
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondOK(w, http.StatusOK, "Inventory adjusted successfully", item)
}

// BlockInventory godoc
// @Summary Block an inventory item
// @Tags Inventory
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path int true "Inventory item ID"
// @Param request body object{reason=string} true "Block reason"
// @Success 200 {object} Response
// @Failure 400 {object} Response
// @Failure 404 {object} Response
// @Router /api/inventory/{id}/block [post]
func (h *DonationHandler) BlockInventory(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		respondError(w, r, err)
		return
	}
	var req struct {
		Reason string `json:"reason"`
	}
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, r, err)
		return
	}
	item, err := h.cmd.SetBlocked.Handle(r.Context(), command.SetBlockedCommand{
		InventoryID: id,
		Blocked:     true,
		Reason:      req.Reason,
		Actor:       actor(r),
	})
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondOK(w, http.StatusOK, "Inventory item blocked", item)
}

// UnblockInventory godoc
// @Summary Unblock an inventory item
// @Tags Inventory
// @Security BearerAuth
// @Produce json
// @Param id path int true "Inventory item ID"
// @Success 200 {object} Response
// @Failure 404 {object} Response
// @Router /api/inventory/{id}/block [delete]
func (h *DonationHandler) UnblockInventory(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		respondError(w, r, err)
		return
	}
	item, err := h.cmd.SetBlocked.Handle(r.Context(), command.SetBlockedCommand{
		InventoryID: id,
		Blocked:     false,
		Actor:       actor(r),
	})
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondOK(w, http.StatusOK, "Inventory item unblocked", item)
}

// LogWasteRequest is the body of POST /api/waste
type LogWasteRequest struct {
	ProductID      *uint  `json:"product_id"`
	SourceItemID   *uint  `json:"source_item_id"`
	Quantity       int    `json:"quantity"`
	Reason         string `json:"reason"`
	DisposalMethod string `json:"disposal_method"`
	Notes          string `json:"notes"`
}

// LogWaste godoc
// @Summary Log waste outside a disposition
// @Tags Waste
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body LogWasteRequest true "Waste"
// @Success 201 {object} Response
// @Failure 400 {object} Response
// @Router /api/waste [post]
func (h *DonationHandler) LogWaste(w http.ResponseWriter, r *http.Request) {
	var req LogWasteRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, r, err)
		return
	}
	record, err := h.cmd.LogWaste.Handle(r.Context(), command.LogWasteCommand{
		ProductID:      req.ProductID,
		SourceItemID:   req.SourceItemID,
		Quantity:       req.Quantity,
		Reason:         req.Reason,
		DisposalMethod: req.DisposalMethod,
		DisposedBy:     actor(r),
		Notes:          req.Notes,
	})
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondOK(w, http.StatusCreated, "Waste logged successfully", record)
}

// ListWaste godoc
// @Summary List waste records
// @Tags Waste
// @Security BearerAuth
// @Produce json
// @Param from query string false "Earliest disposal date"
// @Param to query string false "Latest disposal date"
// @Param disposal_method query string false "Disposal method"
// @Param source_item_id query int false "Source donation item ID"
// @Param search query string false "Free-text search"
// @Param sort_by query string false "Sort field"
// @Param sort_desc query bool false "Sort descending"
// @Param page query int false "Page number"
// @Param page_size query int false "Page size"
// @Success 200 {object} Response
// @Router /api/waste [get]
func (h *DonationHandler) ListWaste(w http.ResponseWriter, r *http.Request) {
	q := query.ListWasteQuery{DisposalMethod: r.URL.Query().Get("disposal_method")}
	var err error
	if q.Params, err = listParams(r); err == nil {
		q.From, err = timeParam(r, "from")
	}
	if err == nil {
		q.To, err = timeParam(r, "to")
	}
	if err == nil {
		q.SourceItemID, err = uintParam(r, "source_item_id")
	}
	if err != nil {
		respondError(w, r, err)
		return
	}
	page, err := h.qry.ListWaste.Handle(r.Context(), q)
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondOK(w, http.StatusOK, "", page)
}

// ScheduleShiftRequest is the body of POST /api/shifts
type ScheduleShiftRequest struct {
	VolunteerName  string    `json:"volunteer_name"`
	VolunteerEmail string    `json:"volunteer_email"`
	Role           string    `json:"role"`
	Location       string    `json:"location"`
	StartsAt       time.Time `json:"starts_at"`
	EndsAt         time.Time `json:"ends_at"`
	Notes          string    `json:"notes"`
}

// ScheduleShift godoc
// @Summary Schedule a volunteer shift
// @Tags Shifts
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body ScheduleShiftRequest true "Shift"
// @Success 201 {object} Response
// @Failure 400 {object} Response
// @Router /api/shifts [post]
func (h *DonationHandler) ScheduleShift(w http.ResponseWriter, r *http.Request) {
	var req ScheduleShiftRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, r, err)
		return
	}
	shift, err := h.cmd.ScheduleShift.Handle(r.Context(), command.ScheduleShiftCommand{
		VolunteerName:  req.VolunteerName,
		VolunteerEmail: req.VolunteerEmail,
		Role:           req.Role,
		Location:       req.Location,
		StartsAt:       req.StartsAt,
		EndsAt:         req.EndsAt,
		Notes:          req.Notes,
	})
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondOK(w, http.StatusCreated, "Shift scheduled successfully", shift)
}

// CompleteShift godoc
// @Summary Complete a shift
// @Tags Shifts
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path int true "Shift ID"
// @Param request body object{hours_logged=number,notes=string} false "Hours worked"
// @Success 200 {object} Response
// @Failure 404 {object} Response
// @Failure 409 {object} Response
// @Router /api/shifts/{id}/complete [post]
func (h *DonationHandler) CompleteShift(w http.ResponseWriter, r *http.Request) {
	h.closeShift(w, r, domain.ShiftCompleted)
}

// CancelShift godoc
// @Summary Cancel a shift
// @Tags Shifts
// @Security BearerAuth
// @Produce json
// @Param id path int true "Shift ID"
// @Success 200 {object} Response
// @Failure 404 {object} Response
// @Failure 409 {object} Response
// @Router /api/shifts/{id}/cancel [post]
func (h *DonationHandler) CancelShift(w http.ResponseWriter, r *http.Request) {
	h.closeShift(w, r, domain.ShiftCancelled)
}

func (h *DonationHandler) closeShift(w http.ResponseWriter, r *http.Request, status domain.ShiftStatus) {
	id, err := pathID(r, "id")
	if err != nil {
		respondError(w, r, err)
		return
	}
	var req struct {
		HoursLogged *float64 `json:"hours_logged"`
		Notes       string   `json:"notes"`
	}
	if r.ContentLength != 0 {
		if err := decodeJSON(r, &req); err != nil {
			respondError(w, r, err)
			return
		}
	}
	shift, err := h.cmd.CloseShift.Handle(r.Context(), command.CloseShiftCommand{
		ShiftID:     id,
		Status:      status,
		HoursLogged: req.HoursLogged,
		Notes:       req.Notes,
	})
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondOK(w, http.StatusOK, "Shift "+string(status), shift)
}

// ListShifts godoc
// @Summary List volunteer shifts
// @Tags Shifts
// @Security BearerAuth
// @Produce json
// @Param status query string false "Scheduled, Completed or Cancelled"
// @Param from query string false "Earliest start"
// @Param to query string false "Latest start"
// @Param search query string false "Free-text search"
// @Param sort_by query string false "Sort field"
// @Param sort_desc query bool false "Sort descending"
// @Param page query int false "Page number"
// @Param page_size query int false "Page size"
// @Success 200 {object} Response
// @Router /api/shifts [get]
func (h *DonationHandler) ListShifts(w http.ResponseWriter, r *http.Request) {
	q := query.ListShiftsQuery{Status: r.URL.Query().Get("status")}
	var err error
	if q.Params, err = listParams(r); err == nil {
		q.From, err = timeParam(r, "from")
	}
	if err == nil {
		q.To, err = timeParam(r, "to")
	}
	if err != nil {
		respondError(w, r, err)
		return
	}
	page, err := h.qry.ListShifts.Handle(r.Context(), q)
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondOK(w, http.StatusOK, "", page)
}
