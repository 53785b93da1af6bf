package http

import (
	"net/http"

	"github.com/tair/donation-tracker/internal/donation/usecase/command"
	"github.com/tair/donation-tracker/internal/donation/usecase/query"
)

// DonorRequest is the body of the donor create and update endpoints
type DonorRequest struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	Address string `json:"address"`
	Type    string `json:"type"`
}

func (d DonorRequest) toCommand(id uint) command.DonorCommand {
	return command.DonorCommand{ID: id, Name: d.Name, Email: d.Email, Phone: d.Phone, Address: d.Address, Type: d.Type}
}

// CreateDonor godoc
// @Summary Create a donor
// @Tags Donors
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body DonorRequest true "Donor"
// @Success 201 {object} Response
// @Failure 400 {object} Response
// @Router /api/donors [post]
func (h *DonationHandler) CreateDonor(w http.ResponseWriter, r *http.Request) {
	var req DonorRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, r, err)
		return
	}
	donor, err := h.cmd.CreateDonor.Handle(r.Context(), req.toCommand(0))
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondOK(w, http.StatusCreated, "Donor created successfully", donor)
}

// UpdateDonor godoc
// @Summary Update a donor
// @Tags Donors
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path int true "Donor ID"
// @Param request body DonorRequest true "Donor"
// @Success 200 {object} Response
// @Failure 400 {object} Response
// @Failure 404 {object} Response
// @Router /api/donors/{id} [put]
func (h *DonationHandler) UpdateDonor(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		respondError(w, r, err)
		return
	}
	var req DonorRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, r, err)
		return
	}
	donor, err := h.cmd.UpdateDonor.Handle(r.Context(), req.toCommand(id))
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondOK(w, http.StatusOK, "Donor updated successfully", donor)
}

// SetDonorActive godoc
// @Summary Deactivate or reactivate a donor
// @Tags Donors
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path int true "Donor ID"
// @Param request body object{active=bool} true "Activation"
// @Success 200 {object} Response
// @Failure 404 {object} Response
// @Router /api/donors/{id}/active [patch]
func (h *DonationHandler) SetDonorActive(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		respondError(w, r, err)
		return
	}
	var req struct {
		Active bool `json:"active"`
	}
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, r, err)
		return
	}
	if err := h.cmd.SetDonorActive.Handle(r.Context(), id, req.Active); err != nil {
		respondError(w, r, err)
		return
	}
	respondOK(w, http.StatusOK, "Donor updated successfully", nil)
}

// GetDonor godoc
// @Summary Get a donor
// @Tags Donors
// @Security BearerAuth
// @Produce json
// @Param id path int true "Donor ID"
// @Success 200 {object} Response
// @Failure 404 {object} Response
// @Router /api/donors/{id} [get]
func (h *DonationHandler) GetDonor(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		respondError(w, r, err)
		return
	}
	donor, err := h.qry.GetDonor.Handle(r.Context(), query.GetDonorQuery{ID: id})
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondOK(w, http.StatusOK, "", donor)
}

// ListDonors godoc
// @Summary List donors
// @Tags Donors
// @Security BearerAuth
// @Produce json
// @Param active query bool false "Active flag"
// @Param type query string false "Individual or Organization"
// @Param search query string false "Free-text search"
// @Param sort_by query string false "Sort field"
// @Param sort_desc query bool false "Sort descending"
// @Param page query int false "Page number"
// @Param page_size query int false "Page size"
// @Success 200 {object} Response
// @Router /api/donors [get]
func (h *DonationHandler) ListDonors(w http.ResponseWriter, r *http.Request) {
	q := query.ListDonorsQuery{Type: r.URL.Query().Get("type")}
	var err error
	if q.Params, err = listParams(r); err == nil {
		q.Active, err = boolParam(r, "active")
	}
	if err != nil {
		respondError(w, r, err)
		return
	}
	page, err := h.qry.ListDonors.Handle(r.Context(), q)
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondOK(w, http.StatusOK, "", page)
}

// ProductRequest is the body of the product create and update endpoints
type ProductRequest struct {
	Name        string `json:"name"`
	SKU         string `json:"sku"`
	Category    string `json:"category"`
	UnitType    string `json:"unit_type"`
	Description string `json:"description"`
	IsActive    *bool  `json:"is_active"`
}

func (p ProductRequest) toCommand(id uint) command.ProductCommand {
	return command.ProductCommand{
		ID:          id,
		Name:        p.Name,
		SKU:         p.SKU,
		Category:    p.Category,
		UnitType:    p.UnitType,
		Description: p.Description,
		IsActive:    p.IsActive,
	}
}

// CreateProduct godoc
// @Summary Create a product
// @Tags Products
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body ProductRequest true "Product"
// @Success 201 {object} Response
// @Failure 400 {object} Response
// @Failure 409 {object} Response
// @Router /api/products [post]
func (h *DonationHandler) CreateProduct(w http.ResponseWriter, r *http.Request) {
	var req ProductRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, r, err)
		return
	}
	product, err := h.cmd.CreateProduct.Handle(r.Context(), req.toCommand(0))
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondOK(w, http.StatusCreated, "Product created successfully", product)
}

// UpdateProduct godoc
// @Summary Update a product
// @Tags Products
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path int true "Product ID"
// @Param request body ProductRequest true "Product"
// @Success 200 {object} Response
// @Failure 400 {object} Response
// @Failure 404 {object} Response
// @Failure 409 {object} Response
// @Router /api/products/{id} [put]
func (h *DonationHandler) UpdateProduct(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		respondError(w, r, err)
		return
	}
	var req ProductRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, r, err)
		return
	}
	product, err := h.cmd.UpdateProduct.Handle(r.Context(), req.toCommand(id))
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondOK(w, http.StatusOK, "Product updated successfully", product)
}

// DeleteProduct godoc
// @Summary Delete a product
// @Description Soft delete: historical donation items keep their product
// @Tags Products
// @Security BearerAuth
// @Produce json
// @Param id path int true "Product ID"
// @Success 200 {object} Response
// @Failure 404 {object} Response
// @Router /api/products/{id} [delete]
func (h *DonationHandler) DeleteProduct(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		respondError(w, r, err)
		return
	}
	if err := h.cmd.DeleteProduct.Handle(r.Context(), id); err != nil {
		respondError(w, r, err)
		return
	}
	respondOK(w, http.StatusOK, "Product deleted successfully", nil)
}

// GetProduct godoc
// @Summary Get a product
// @Tags Products
// @Security BearerAuth
// @Produce json
// @Param id path int true "Product ID"
// @Success 200 {object} Response
// @Failure 404 {object} Response
// @Router /api/products/{id} [get]
func (h *DonationHandler) GetProduct(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		respondError(w, r, err)
		return
	}
	product, err := h.qry.GetProduct.Handle(r.Context(), query.GetProductQuery{ID: id})
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondOK(w, http.StatusOK, "", product)
}

// ListProducts godoc
// @Summary List products
// @Tags Products
// @Security BearerAuth
// @Produce json
// @Param category query string false "Category"
// @Param active query bool false "Active flag"
// @Param search query string false "Free-text search"
// @Param sort_by query string false "Sort field"
// @Param sort_desc query bool false "Sort descending"
// @Param page query int false "Page number"
// @Param page_size query int false "Page size"
// @Success 200 {object} Response
// @Router /api/products [get]
func (h *DonationHandler) ListProducts(w http.ResponseWriter, r *http.Request) {
	q := query.ListProductsQuery{Category: r.URL.Query().Get("category")}
	var err error
	if q.Params, err = listParams(r); err == nil {
		q.Active, err = boolParam(r, "active")
	}
	if err != nil {
		respondError(w, r, err)
		return
	}
	page, err := h.qry.ListProducts.Handle(r.Context(), q)
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondOK(w, http.StatusOK, "", page)
}
