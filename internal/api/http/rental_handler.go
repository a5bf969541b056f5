package http

import (
	"net/http"
	"time"

	"atelier-rental-backend/internal/domain"
	"atelier-rental-backend/internal/service"
)

type RentalHandler struct {
	rentalSvc       service.RentalService
	availabilitySvc service.AvailabilityService
}

func NewRentalHandler(rentalSvc service.RentalService, availabilitySvc service.AvailabilityService) *RentalHandler {
	return &RentalHandler{
		rentalSvc:       rentalSvc,
		availabilitySvc: availabilitySvc,
	}
}

type rentalRequest struct {
	CustomerID   int32               `json:"customer_id"`
	EventDate    string              `json:"event_date"`
	StartDate    string              `json:"rental_start_date"`
	EndDate      string              `json:"rental_end_date"`
	Status       domain.RentalStatus `json:"status"`
	TotalCents   int32               `json:"total_cents"`
	DepositCents int32               `json:"deposit_cents"`
	Notes        string              `json:"notes"`
	Items        []domain.RentalItem `json:"items"`
}

func (req *rentalRequest) toDomain() (*domain.Rental, []domain.RentalItem) {
	return &domain.Rental{
		CustomerID:   req.CustomerID,
		EventDate:    req.EventDate,
		StartDate:    req.StartDate,
		EndDate:      req.EndDate,
		Status:       req.Status,
		TotalCents:   req.TotalCents,
		DepositCents: req.DepositCents,
		Notes:        req.Notes,
	}, req.Items
}

func (h *RentalHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req rentalRequest
	if err := decodeBody(r, &req); err != nil {
		respondError(w, err)
		return
	}
	rental, items := req.toDomain()
	created, err := h.rentalSvc.CreateRental(r.Context(), rental, items)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, created)
}

func (h *RentalHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		respondError(w, err)
		return
	}
	rental, err := h.rentalSvc.GetRental(r.Context(), id)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, rental)
}

func (h *RentalHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		respondError(w, err)
		return
	}
	var req rentalRequest
	if err := decodeBody(r, &req); err != nil {
		respondError(w, err)
		return
	}
	rental, items := req.toDomain()
	rental.ID = id
	updated, err := h.rentalSvc.UpdateRental(r.Context(), rental, items)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, updated)
}

func (h *RentalHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		respondError(w, err)
		return
	}
	if err := h.rentalSvc.DeleteRental(r.Context(), id); err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusNoContent, nil)
}

func (h *RentalHandler) List(w http.ResponseWriter, r *http.Request) {
	page := queryInt32(r, "page", 1)
	pageSize := queryInt32(r, "page_size", 50)
	status := r.URL.Query().Get("status")

	var customerID *int32
	if v := queryInt32(r, "customer_id", 0); v > 0 {
		customerID = &v
	}

	rentals, total, err := h.rentalSvc.ListRentals(r.Context(), status, customerID, page, pageSize)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, listResponse{Items: rentals, Total: total, Page: page, PageSize: pageSize})
}

// Calendar handles GET /rentals/calendar?year=2026&month=8
func (h *RentalHandler) Calendar(w http.ResponseWriter, r *http.Request) {
	now := time.Now()
	year := int(queryInt32(r, "year", int32(now.Year())))
	month := int(queryInt32(r, "month", int32(now.Month())))

	rentals, err := h.rentalSvc.ListCalendar(r.Context(), year, month)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, rentals)
}

type availabilityRequest struct {
	ProductIDs      []int32 `json:"product_ids"`
	StartDate       string  `json:"start_date"`
	EndDate         string  `json:"end_date"`
	ExcludeRentalID *int32  `json:"exclude_rental_id,omitempty"`
}

// CheckAvailability handles POST /rentals/availability.
func (h *RentalHandler) CheckAvailability(w http.ResponseWriter, r *http.Request) {
	var req availabilityRequest
	if err := decodeBody(r, &req); err != nil {
		respondError(w, err)
		return
	}

	results, err := h.availabilitySvc.CheckAvailability(r.Context(), req.ProductIDs, req.StartDate, req.EndDate, req.ExcludeRentalID)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, results)
}
