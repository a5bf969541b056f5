package http

import (
	"net/http"

	"atelier-rental-backend/internal/domain"
	"atelier-rental-backend/internal/service"
)

type CategoryHandler struct {
	categorySvc service.CategoryService
}

func NewCategoryHandler(categorySvc service.CategoryService) *CategoryHandler {
	return &CategoryHandler{categorySvc: categorySvc}
}

func (h *CategoryHandler) Create(w http.ResponseWriter, r *http.Request) {
	var category domain.Category
	if err := decodeBody(r, &category); err != nil {
		respondError(w, err)
		return
	}
	if err := h.categorySvc.CreateCategory(r.Context(), &category); err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, category)
}

func (h *CategoryHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		respondError(w, err)
		return
	}
	var category domain.Category
	if err := decodeBody(r, &category); err != nil {
		respondError(w, err)
		return
	}
	category.ID = id
	if err := h.categorySvc.UpdateCategory(r.Context(), &category); err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, category)
}

func (h *CategoryHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		respondError(w, err)
		return
	}
	if err := h.categorySvc.DeleteCategory(r.Context(), id); err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusNoContent, nil)
}

func (h *CategoryHandler) List(w http.ResponseWriter, r *http.Request) {
	categories, err := h.categorySvc.ListCategories(r.Context())
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, categories)
}

func (h *CategoryHandler) CreateAttribute(w http.ResponseWriter, r *http.Request) {
	var attr domain.Attribute
	if err := decodeBody(r, &attr); err != nil {
		respondError(w, err)
		return
	}
	if err := h.categorySvc.CreateAttribute(r.Context(), &attr); err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, attr)
}

func (h *CategoryHandler) DeleteAttribute(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		respondError(w, err)
		return
	}
	if err := h.categorySvc.DeleteAttribute(r.Context(), id); err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusNoContent, nil)
}

func (h *CategoryHandler) ListAttributes(w http.ResponseWriter, r *http.Request) {
	kind := domain.AttributeKind(r.URL.Query().Get("kind"))
	attrs, err := h.categorySvc.ListAttributes(r.Context(), kind)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, attrs)
}
