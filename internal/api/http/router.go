package http

import (
	"net/http"

	"github.com/gorilla/mux"
)

// Handlers bundles everything the router needs so cmd/server stays thin.
type Handlers struct {
	Auth     *AuthHandler
	Catalog  *CatalogHandler
	Product  *ProductHandler
	Rental   *RentalHandler
	Customer *CustomerHandler
	Category *CategoryHandler
	Banner   *BannerHandler
	Admin    *AdminHandler
}

// NewRouter wires the public storefront routes, the auth endpoints, and
// the token-gated back-office under adminPrefix (e.g. "/api/admin").
func NewRouter(h Handlers, auth *AuthMiddleware, adminPrefix string) *mux.Router {
	r := mux.NewRouter()

	// Public storefront.
	r.HandleFunc("/api/catalog", h.Catalog.ListProducts).Methods(http.MethodGet)
	r.HandleFunc("/api/catalog/categories", h.Catalog.ListCategories).Methods(http.MethodGet)
	r.HandleFunc("/api/banners", h.Catalog.ListBanners).Methods(http.MethodGet)
	r.HandleFunc("/files/{key:.+}", h.Catalog.ServeFile).Methods(http.MethodGet)

	r.HandleFunc("/api/auth/login", h.Auth.Login).Methods(http.MethodPost)
	r.HandleFunc("/api/auth/refresh", h.Auth.Refresh).Methods(http.MethodPost)

	r.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}).Methods(http.MethodGet)

	// Back-office. Every route below requires a valid access token.
	admin := r.PathPrefix(adminPrefix).Subrouter()
	admin.Use(auth.Handler)

	admin.HandleFunc("/dashboard/stats", h.Admin.GetStats).Methods(http.MethodGet)
	admin.HandleFunc("/settings", h.Admin.GetSettings).Methods(http.MethodGet)
	admin.HandleFunc("/settings", RequireAdmin(h.Admin.UpdateSettings)).Methods(http.MethodPut)

	admin.HandleFunc("/products", h.Product.List).Methods(http.MethodGet)
	admin.HandleFunc("/products", h.Product.Create).Methods(http.MethodPost)
	admin.HandleFunc("/products/reconcile", h.Product.Reconcile).Methods(http.MethodPost)
	admin.HandleFunc("/products/{id}", h.Product.Get).Methods(http.MethodGet)
	admin.HandleFunc("/products/{id}", h.Product.Update).Methods(http.MethodPut)
	admin.HandleFunc("/products/{id}", RequireAdmin(h.Product.Delete)).Methods(http.MethodDelete)
	admin.HandleFunc("/products/{id}/status", h.Product.SetStatus).Methods(http.MethodPut)
	admin.HandleFunc("/products/{id}/sync", h.Product.SyncOne).Methods(http.MethodPost)
	admin.HandleFunc("/products/{id}/images", h.Product.UploadImage).Methods(http.MethodPost)
	admin.HandleFunc("/products/{id}/images/{imageID}", h.Product.DeleteImage).Methods(http.MethodDelete)
	admin.HandleFunc("/products/{id}/images/{imageID}/primary", h.Product.SetPrimaryImage).Methods(http.MethodPut)

	admin.HandleFunc("/rentals", h.Rental.List).Methods(http.MethodGet)
	admin.HandleFunc("/rentals", h.Rental.Create).Methods(http.MethodPost)
	admin.HandleFunc("/rentals/availability", h.Rental.CheckAvailability).Methods(http.MethodPost)
	admin.HandleFunc("/rentals/calendar", h.Rental.Calendar).Methods(http.MethodGet)
	admin.HandleFunc("/rentals/{id}", h.Rental.Get).Methods(http.MethodGet)
	admin.HandleFunc("/rentals/{id}", h.Rental.Update).Methods(http.MethodPut)
	admin.HandleFunc("/rentals/{id}", RequireAdmin(h.Rental.Delete)).Methods(http.MethodDelete)

	admin.HandleFunc("/customers", h.Customer.List).Methods(http.MethodGet)
	admin.HandleFunc("/customers", h.Customer.Create).Methods(http.MethodPost)
	admin.HandleFunc("/customers/{id}", h.Customer.Get).Methods(http.MethodGet)
	admin.HandleFunc("/customers/{id}", h.Customer.Update).Methods(http.MethodPut)
	admin.HandleFunc("/customers/{id}", RequireAdmin(h.Customer.Delete)).Methods(http.MethodDelete)

	admin.HandleFunc("/categories", h.Category.List).Methods(http.MethodGet)
	admin.HandleFunc("/categories", h.Category.Create).Methods(http.MethodPost)
	admin.HandleFunc("/categories/{id}", h.Category.Update).Methods(http.MethodPut)
	admin.HandleFunc("/categories/{id}", RequireAdmin(h.Category.Delete)).Methods(http.MethodDelete)
	admin.HandleFunc("/attributes", h.Category.ListAttributes).Methods(http.MethodGet)
	admin.HandleFunc("/attributes", h.Category.CreateAttribute).Methods(http.MethodPost)
	admin.HandleFunc("/attributes/{id}", RequireAdmin(h.Category.DeleteAttribute)).Methods(http.MethodDelete)

	admin.HandleFunc("/banners", h.Banner.List).Methods(http.MethodGet)
	admin.HandleFunc("/banners", h.Banner.Create).Methods(http.MethodPost)
	admin.HandleFunc("/banners/{id}", h.Banner.Update).Methods(http.MethodPut)
	admin.HandleFunc("/banners/{id}", RequireAdmin(h.Banner.Delete)).Methods(http.MethodDelete)

	return r
}
