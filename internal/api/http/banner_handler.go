package http

import (
	"fmt"
	"net/http"

	"atelier-rental-backend/internal/domain"
	"atelier-rental-backend/internal/service"
)

type BannerHandler struct {
	bannerSvc service.BannerService
}

func NewBannerHandler(bannerSvc service.BannerService) *BannerHandler {
	return &BannerHandler{bannerSvc: bannerSvc}
}

func (h *BannerHandler) Create(w http.ResponseWriter, r *http.Request) {
	file, header, err := r.FormFile("image")
	if err != nil {
		respondError(w, fmt.Errorf("%w: missing image file", domain.ErrInvalidInput))
		return
	}
	defer file.Close()

	banner := domain.Banner{
		Title:    r.FormValue("title"),
		LinkURL:  r.FormValue("link_url"),
		IsActive: r.FormValue("is_active") != "false",
	}
	if err := h.bannerSvc.CreateBanner(r.Context(), &banner, header.Filename, header.Header.Get("Content-Type"), file); err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, banner)
}

func (h *BannerHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		respondError(w, err)
		return
	}
	var banner domain.Banner
	if err := decodeBody(r, &banner); err != nil {
		respondError(w, err)
		return
	}
	banner.ID = id
	if err := h.bannerSvc.UpdateBanner(r.Context(), &banner); err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, banner)
}

func (h *BannerHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		respondError(w, err)
		return
	}
	if err := h.bannerSvc.DeleteBanner(r.Context(), id); err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusNoContent, nil)
}

func (h *BannerHandler) List(w http.ResponseWriter, r *http.Request) {
	banners, err := h.bannerSvc.ListBanners(r.Context(), false)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, banners)
}
