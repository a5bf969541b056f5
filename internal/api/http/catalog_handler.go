package http

import (
	"io"
	"net/http"
	"path/filepath"

	"github.com/gorilla/mux"

	"atelier-rental-backend/internal/service"
	"atelier-rental-backend/internal/storage"
)

// CatalogHandler serves the public, unauthenticated site surface.
type CatalogHandler struct {
	catalogSvc service.CatalogService
	store      storage.StorageInterface
}

func NewCatalogHandler(catalogSvc service.CatalogService, store storage.StorageInterface) *CatalogHandler {
	return &CatalogHandler{
		catalogSvc: catalogSvc,
		store:      store,
	}
}

// ListProducts handles GET /api/catalog?categoria=<slug>
func (h *CatalogHandler) ListProducts(w http.ResponseWriter, r *http.Request) {
	products, err := h.catalogSvc.ListCatalogProducts(r.Context(), r.URL.Query().Get("categoria"))
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, products)
}

func (h *CatalogHandler) ListCategories(w http.ResponseWriter, r *http.Request) {
	categories, err := h.catalogSvc.ListCategories(r.Context())
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, categories)
}

func (h *CatalogHandler) ListBanners(w http.ResponseWriter, r *http.Request) {
	banners, err := h.catalogSvc.ListBanners(r.Context())
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, banners)
}

// ServeFile streams a stored image. Keys look like products/3/<uuid>.jpg.
func (h *CatalogHandler) ServeFile(w http.ResponseWriter, r *http.Request) {
	key := mux.Vars(r)["key"]
	file, err := h.store.ReadFile(r.Context(), key)
	if err != nil {
		http.Error(w, "File not found", http.StatusNotFound)
		return
	}
	defer file.Close()

	contentType := "application/octet-stream"
	switch filepath.Ext(key) {
	case ".jpg", ".jpeg":
		contentType = "image/jpeg"
	case ".png":
		contentType = "image/png"
	case ".webp":
		contentType = "image/webp"
	case ".gif":
		contentType = "image/gif"
	}
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Cache-Control", "public, max-age=86400")

	// Headers are already out; a mid-stream failure has no recovery.
	io.Copy(w, file)
}
