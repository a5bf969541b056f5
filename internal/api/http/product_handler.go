package http

import (
	"net/http"

	"atelier-rental-backend/internal/domain"
	"atelier-rental-backend/internal/service"
)

type ProductHandler struct {
	productSvc   service.ProductService
	reconcileSvc service.ReconcileService
	imageSvc     service.ImageService
}

func NewProductHandler(productSvc service.ProductService, reconcileSvc service.ReconcileService, imageSvc service.ImageService) *ProductHandler {
	return &ProductHandler{
		productSvc:   productSvc,
		reconcileSvc: reconcileSvc,
		imageSvc:     imageSvc,
	}
}

func (h *ProductHandler) Create(w http.ResponseWriter, r *http.Request) {
	var product domain.Product
	if err := decodeBody(r, &product); err != nil {
		respondError(w, err)
		return
	}
	if err := h.productSvc.CreateProduct(r.Context(), &product); err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, product)
}

func (h *ProductHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		respondError(w, err)
		return
	}
	product, variants, err := h.productSvc.GetProduct(r.Context(), id)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, struct {
		*domain.Product
		Variants []domain.Product `json:"variants,omitempty"`
	}{product, variants})
}

func (h *ProductHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		respondError(w, err)
		return
	}
	var product domain.Product
	if err := decodeBody(r, &product); err != nil {
		respondError(w, err)
		return
	}
	product.ID = id
	if err := h.productSvc.UpdateProduct(r.Context(), &product); err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, product)
}

func (h *ProductHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		respondError(w, err)
		return
	}
	if err := h.productSvc.DeleteProduct(r.Context(), id); err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusNoContent, nil)
}

func (h *ProductHandler) List(w http.ResponseWriter, r *http.Request) {
	page := queryInt32(r, "page", 1)
	pageSize := queryInt32(r, "page_size", 50)
	includeVariants := r.URL.Query().Get("include_variants") == "true"

	var categoryID *int32
	if v := queryInt32(r, "category_id", 0); v > 0 {
		categoryID = &v
	}

	products, total, err := h.productSvc.ListProducts(r.Context(), categoryID, includeVariants, page, pageSize)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, listResponse{Items: products, Total: total, Page: page, PageSize: pageSize})
}

type statusRequest struct {
	Status domain.ProductStatus `json:"status"`
}

func (h *ProductHandler) SetStatus(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		respondError(w, err)
		return
	}
	var req statusRequest
	if err := decodeBody(r, &req); err != nil {
		respondError(w, err)
		return
	}
	if err := h.productSvc.SetProductStatus(r.Context(), id, req.Status); err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{"id": id, "status": req.Status})
}

// Reconcile handles POST /products/reconcile: the manual trigger for the
// bulk status reconciliation pass.
func (h *ProductHandler) Reconcile(w http.ResponseWriter, r *http.Request) {
	corrected, err := h.reconcileSvc.SyncAll(r.Context())
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]int64{"corrected": corrected})
}

// SyncOne handles POST /products/{id}/sync: per-product status spot check.
func (h *ProductHandler) SyncOne(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		respondError(w, err)
		return
	}
	status, err := h.reconcileSvc.SyncProduct(r.Context(), id)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{"id": id, "status": status})
}

func (h *ProductHandler) UploadImage(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		respondError(w, err)
		return
	}

	file, header, err := r.FormFile("image")
	if err != nil {
		respondError(w, domain.ErrInvalidInput)
		return
	}
	defer file.Close()

	img, err := h.imageSvc.UploadProductImage(r.Context(), id, header.Filename, header.Header.Get("Content-Type"), file)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, img)
}

func (h *ProductHandler) DeleteImage(w http.ResponseWriter, r *http.Request) {
	imageID, err := pathID(r, "imageID")
	if err != nil {
		respondError(w, err)
		return
	}
	if err := h.imageSvc.DeleteProductImage(r.Context(), imageID); err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusNoContent, nil)
}

func (h *ProductHandler) SetPrimaryImage(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		respondError(w, err)
		return
	}
	imageID, err := pathID(r, "imageID")
	if err != nil {
		respondError(w, err)
		return
	}
	if err := h.imageSvc.SetPrimaryImage(r.Context(), id, imageID); err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusNoContent, nil)
}
