package service

import (
	"context"
	"io"

	"atelier-rental-backend/internal/domain"
)

type AvailabilityService interface {
	// CheckAvailability reports, for each candidate product, whether it
	// can be booked over [start, end]. excludeRentalID suppresses the
	// rental currently being edited so it never conflicts with itself.
	CheckAvailability(ctx context.Context, productIDs []int32, start, end string, excludeRentalID *int32) (map[int32]*domain.ProductAvailability, error)
}

type ReconcileService interface {
	// SyncProduct recomputes a single product's cached status from the
	// active rentals and persists it only when it changed.
	SyncProduct(ctx context.Context, productID int32) (domain.ProductStatus, error)
	// SyncAll reconciles every product in one bulk pass and returns the
	// number of corrected rows.
	SyncAll(ctx context.Context) (int64, error)
}

type RentalService interface {
	CreateRental(ctx context.Context, rental *domain.Rental, items []domain.RentalItem) (*domain.Rental, error)
	UpdateRental(ctx context.Context, rental *domain.Rental, items []domain.RentalItem) (*domain.Rental, error)
	DeleteRental(ctx context.Context, id int32) error
	GetRental(ctx context.Context, id int32) (*domain.Rental, error)
	ListRentals(ctx context.Context, status string, customerID *int32, page, pageSize int32) ([]domain.Rental, int32, error)
	// ListCalendar returns the rentals touching the given month, for the
	// admin calendar view. month is 1-12.
	ListCalendar(ctx context.Context, year int, month int) ([]domain.Rental, error)
}

type ProductService interface {
	CreateProduct(ctx context.Context, product *domain.Product) error
	GetProduct(ctx context.Context, id int32) (*domain.Product, []domain.Product, error)
	UpdateProduct(ctx context.Context, product *domain.Product) error
	DeleteProduct(ctx context.Context, id int32) error
	ListProducts(ctx context.Context, categoryID *int32, includeVariants bool, page, pageSize int32) ([]domain.Product, int32, error)
	SetProductStatus(ctx context.Context, id int32, status domain.ProductStatus) error
}

type CatalogService interface {
	ListCatalogProducts(ctx context.Context, categorySlug string) ([]domain.Product, error)
	ListCategories(ctx context.Context) ([]domain.Category, error)
	ListBanners(ctx context.Context) ([]domain.Banner, error)
	InvalidateCatalog(ctx context.Context)
}

// CacheInvalidator is the slice of CatalogService the mutation paths
// need; every product, category, banner, or rental mutation busts the
// public catalog cache through it.
type CacheInvalidator interface {
	InvalidateCatalog(ctx context.Context)
}

type CustomerService interface {
	CreateCustomer(ctx context.Context, customer *domain.Customer) error
	GetCustomer(ctx context.Context, id int32) (*domain.Customer, error)
	UpdateCustomer(ctx context.Context, customer *domain.Customer) error
	DeleteCustomer(ctx context.Context, id int32) error
	ListCustomers(ctx context.Context, search string, page, pageSize int32) ([]domain.Customer, int32, error)
}

type CategoryService interface {
	CreateCategory(ctx context.Context, category *domain.Category) error
	UpdateCategory(ctx context.Context, category *domain.Category) error
	DeleteCategory(ctx context.Context, id int32) error
	ListCategories(ctx context.Context) ([]domain.Category, error)
	CreateAttribute(ctx context.Context, attr *domain.Attribute) error
	DeleteAttribute(ctx context.Context, id int32) error
	ListAttributes(ctx context.Context, kind domain.AttributeKind) ([]domain.Attribute, error)
}

type BannerService interface {
	CreateBanner(ctx context.Context, banner *domain.Banner, fileName, contentType string, file io.Reader) error
	UpdateBanner(ctx context.Context, banner *domain.Banner) error
	DeleteBanner(ctx context.Context, id int32) error
	ListBanners(ctx context.Context, activeOnly bool) ([]domain.Banner, error)
}

type ImageService interface {
	UploadProductImage(ctx context.Context, productID int32, fileName, contentType string, file io.Reader) (*domain.ProductImage, error)
	DeleteProductImage(ctx context.Context, imageID int32) error
	SetPrimaryImage(ctx context.Context, productID, imageID int32) error
}

type AuthService interface {
	Login(ctx context.Context, email, password string) (string, string, *domain.StaffUser, error) // access, refresh
	Refresh(ctx context.Context, refreshToken string) (string, string, error)
}

type SettingsService interface {
	GetAll(ctx context.Context) (map[string]string, error)
	Set(ctx context.Context, key, value string) error
	// MigrateLegacy seeds the settings table from the legacy config block
	// exactly once, recording a marker so the dual-path branch is gone.
	MigrateLegacy(ctx context.Context) error
}

type DashboardService interface {
	GetStats(ctx context.Context) (*domain.DashboardStats, error)
}
