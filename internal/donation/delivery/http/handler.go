package http

import (
	"context"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/tair/donation-tracker/internal/donation/usecase/command"
	"github.com/tair/donation-tracker/internal/donation/usecase/query"
	"github.com/tair/donation-tracker/pkg/auth"
)

// Commands groups the mutating use cases served over HTTP
type Commands struct {
	CreateDonation    *command.CreateDonationHandler
	AddItem           *command.AddItemHandler
	RecordInspection  *command.RecordInspectionHandler
	RecordDisposition *command.RecordDispositionHandler
	UpdateStatus      *command.UpdateStatusHandler
	GenerateReceipt   *command.GenerateReceiptHandler
	ReissueReceipt    *command.ReissueReceiptHandler
	DeleteDonation    *command.DeleteDonationHandler
	AdjustInventory   *command.AdjustInventoryHandler
	SetBlocked        *command.SetBlockedHandler
	LogWaste          *command.LogWasteHandler
	CreateDonor       *command.CreateDonorHandler
	UpdateDonor       *command.UpdateDonorHandler
	SetDonorActive    *command.SetDonorActiveHandler
	CreateProduct     *command.CreateProductHandler
	UpdateProduct     *command.UpdateProductHandler
	DeleteProduct     *command.DeleteProductHandler
	ScheduleShift     *command.ScheduleShiftHandler
	CloseShift        *command.CloseShiftHandler
}

// Queries groups the read use cases served over HTTP
type Queries struct {
	GetDonation   *query.GetDonationHandler
	ListDonations *query.ListDonationsHandler
	AuditTrail    *query.GetAuditTrailHandler
	GetDonor      *query.GetDonorHandler
	ListDonors    *query.ListDonorsHandler
	GetProduct    *query.GetProductHandler
	ListProducts  *query.ListProductsHandler
	GetInventory  *query.GetInventoryHandler
	ListInventory *query.ListInventoryHandler
	ListWaste     *query.ListWasteHandler
	ListShifts    *query.ListShiftsHandler
}

// Pinger reports database reachability
type Pinger interface {
	PingContext(ctx context.Context) error
}

// DonationHandler handles HTTP requests for the donation service using CQRS pattern
type DonationHandler struct {
	cmd  Commands
	qry  Queries
	auth *auth.Authenticator
	db   Pinger
}

// NewDonationHandler creates a new donation handler
func NewDonationHandler(cmd Commands, qry Queries, authenticator *auth.Authenticator, db Pinger) *DonationHandler {
	return &DonationHandler{cmd: cmd, qry: qry, auth: authenticator, db: db}
}

// RegisterRoutes mounts the API under /api. Every API route requires a bearer token.
func (h *DonationHandler) RegisterRoutes(router *mux.Router) {
	router.HandleFunc("/health", h.HealthCheck).Methods("GET")

	api := router.PathPrefix("/api").Subrouter()
	api.Use(AuthMiddleware(h.auth))

	api.HandleFunc("/donations", h.ListDonations).Methods("GET")
	api.HandleFunc("/donations", h.CreateDonation).Methods("POST")
	api.HandleFunc("/donations/{id}", h.GetDonation).Methods("GET")
	api.HandleFunc("/donations/{id}", h.DeleteDonation).Methods("DELETE")
	api.HandleFunc("/donations/{id}/items", h.AddItem).Methods("POST")
	api.HandleFunc("/donations/{id}/status", h.UpdateStatus).Methods("PATCH")
	api.HandleFunc("/donations/{id}/audit", h.GetAuditTrail).Methods("GET")
	api.HandleFunc("/donations/{id}/receipt", h.GenerateReceipt).Methods("POST")
	api.HandleFunc("/donations/{id}/receipt", h.ReissueReceipt).Methods("PUT")
	api.HandleFunc("/items/{id}/inspection", h.RecordInspection).Methods("POST")
	api.HandleFunc("/items/{id}/disposition", h.RecordDisposition).Methods("POST")

	api.HandleFunc("/donors", h.ListDonors).Methods("GET")
	api.HandleFunc("/donors", h.CreateDonor).Methods("POST")
	api.HandleFunc("/donors/{id}", h.GetDonor).Methods("GET")
	api.HandleFunc("/donors/{id}", h.UpdateDonor).Methods("PUT")
	api.HandleFunc("/donors/{id}/active", h.SetDonorActive).Methods("PATCH")

	api.HandleFunc("/products", h.ListProducts).Methods("GET")
	api.HandleFunc("/products", h.CreateProduct).Methods("POST")
	api.HandleFunc("/products/{id}", h.GetProduct).Methods("GET")
	api.HandleFunc("/products/{id}", h.UpdateProduct).Methods("PUT")
	api.HandleFunc("/products/{id}", h.DeleteProduct).Methods("DELETE")

	api.HandleFunc("/inventory", h.ListInventory).Methods("GET")
	api.HandleFunc("/inventory/{id}", h.GetInventory).Methods("GET")
	api.HandleFunc("/inventory/{id}/quantity", h.AdjustInventory).Methods("PATCH")
	api.HandleFunc("/inventory/{id}/block", h.BlockInventory).Methods("POST")
	api.HandleFunc("/inventory/{id}/block", h.UnblockInventory).Methods("DELETE")

	api.HandleFunc("/waste", h.ListWaste).Methods("GET")
	api.HandleFunc("/waste", h.LogWaste).Methods("POST")

	api.HandleFunc("/shifts", h.ListShifts).Methods("GET")
	api.HandleFunc("/shifts", h.ScheduleShift).Methods("POST")
	api.HandleFunc("/shifts/{id}/complete", h.CompleteShift).Methods("POST")
	api.HandleFunc("/shifts/{id}/cancel", h.CancelShift).Methods("POST")
}

// HealthCheck godoc
// @Summary Health check
// @Description Check service health and database connectivity
// @Tags Health
// @Produce json
// @Success 200 {object} Response
// @Failure 503 {object} Response
// @Router /health [get]
func (h *DonationHandler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	if h.db != nil {
		if err := h.db.PingContext(r.Context()); err != nil {
			respondJSON(w, http.StatusServiceUnavailable, Response{
				Success: false,
				Error:   "Database unavailable",
			})
			return
		}
	}
	respondJSON(w, http.StatusOK, Response{
		Success: true,
		Message: "Donation service is healthy",
	})
}
