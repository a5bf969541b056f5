package http

import (
	"fmt"
	"net/http"

	"atelier-rental-backend/internal/domain"
	"atelier-rental-backend/internal/service"
)

// AdminHandler covers the back-office odds and ends that do not warrant
// a handler of their own: the dashboard summary and the settings table.
type AdminHandler struct {
	dashboardSvc service.DashboardService
	settingsSvc  service.SettingsService
}

func NewAdminHandler(dashboardSvc service.DashboardService, settingsSvc service.SettingsService) *AdminHandler {
	return &AdminHandler{dashboardSvc: dashboardSvc, settingsSvc: settingsSvc}
}

func (h *AdminHandler) GetStats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.dashboardSvc.GetStats(r.Context())
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, stats)
}

func (h *AdminHandler) GetSettings(w http.ResponseWriter, r *http.Request) {
	settings, err := h.settingsSvc.GetAll(r.Context())
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, settings)
}

func (h *AdminHandler) UpdateSettings(w http.ResponseWriter, r *http.Request) {
	var values map[string]string
	if err := decodeBody(r, &values); err != nil {
		respondError(w, err)
		return
	}
	if len(values) == 0 {
		respondError(w, fmt.Errorf("%w: no settings provided", domain.ErrInvalidInput))
		return
	}
	for key, value := range values {
		if err := h.settingsSvc.Set(r.Context(), key, value); err != nil {
			respondError(w, err)
			return
		}
	}
	settings, err := h.settingsSvc.GetAll(r.Context())
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, settings)
}
