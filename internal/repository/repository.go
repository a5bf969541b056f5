package repository

import (
	"context"

	"atelier-rental-backend/internal/domain"
)

type ProductRepository interface {
	Create(ctx context.Context, product *domain.Product) error
	GetByID(ctx context.Context, id int32) (*domain.Product, error)
	Update(ctx context.Context, product *domain.Product) error
	Delete(ctx context.Context, id int32) error
	List(ctx context.Context, categoryID *int32, includeVariants bool, page, pageSize int32) ([]domain.Product, int32, error)
	ListVariants(ctx context.Context, parentID int32) ([]domain.Product, error)
	ListCatalog(ctx context.Context, categorySlug string) ([]domain.Product, error)

	UpdateStatus(ctx context.Context, id int32, status domain.ProductStatus) error
	// BulkMarkStatus sets status on every given product except those in
	// maintenance, which is a manual-only state.
	BulkMarkStatus(ctx context.Context, ids []int32, status domain.ProductStatus) error
	// ReconcileStatuses recomputes the cached status column for every
	// product from the current set of active rentals in two bulk
	// conditional updates. Returns the number of corrected rows.
	ReconcileStatuses(ctx context.Context) (int64, error)
	// SyncStatus recomputes one product's status and writes it back only
	// if it changed. Returns the resulting status.
	SyncStatus(ctx context.Context, id int32) (domain.ProductStatus, error)

	CreateImage(ctx context.Context, image *domain.ProductImage) error
	GetImageByID(ctx context.Context, imageID int32) (*domain.ProductImage, error)
	ListImages(ctx context.Context, productID int32) ([]domain.ProductImage, error)
	DeleteImage(ctx context.Context, imageID int32) error
	SetPrimaryImage(ctx context.Context, productID, imageID int32) error
}

type RentalRepository interface {
	// Create inserts the rental and its items in one transaction. The
	// contract number is assigned inside from the database sequence.
	Create(ctx context.Context, rental *domain.Rental, items []domain.RentalItem) error
	GetByID(ctx context.Context, id int32) (*domain.Rental, error)
	// Update rewrites the rental row and replaces its items wholesale
	// (delete all, reinsert) in one transaction.
	Update(ctx context.Context, rental *domain.Rental, items []domain.RentalItem) error
	// Delete removes the rental and returns the product ids it held.
	Delete(ctx context.Context, id int32) ([]int32, error)
	List(ctx context.Context, status string, customerID *int32, page, pageSize int32) ([]domain.Rental, int32, error)
	ListBetween(ctx context.Context, from, to string) ([]domain.Rental, error)

	// FindConflicts returns active rentals holding any of the products
	// whose interval overlaps [start, end].
	FindConflicts(ctx context.Context, productIDs []int32, start, end string, excludeRentalID *int32) ([]domain.ConflictingRental, error)
	// FindOverdue returns active rentals holding any of the products
	// whose end date is strictly before today, independent of any
	// requested window.
	FindOverdue(ctx context.Context, productIDs []int32, today string, excludeRentalID *int32) ([]domain.ConflictingRental, error)
	ListOverdue(ctx context.Context, today string) ([]domain.Rental, error)
	ProductIDs(ctx context.Context, rentalID int32) ([]int32, error)
}

type CustomerRepository interface {
	Create(ctx context.Context, customer *domain.Customer) error
	GetByID(ctx context.Context, id int32) (*domain.Customer, error)
	Update(ctx context.Context, customer *domain.Customer) error
	Delete(ctx context.Context, id int32) error
	List(ctx context.Context, search string, page, pageSize int32) ([]domain.Customer, int32, error)
}

type CategoryRepository interface {
	Create(ctx context.Context, category *domain.Category) error
	GetByID(ctx context.Context, id int32) (*domain.Category, error)
	GetBySlug(ctx context.Context, slug string) (*domain.Category, error)
	Update(ctx context.Context, category *domain.Category) error
	Delete(ctx context.Context, id int32) error
	List(ctx context.Context) ([]domain.Category, error)
}

type AttributeRepository interface {
	Create(ctx context.Context, attr *domain.Attribute) error
	Delete(ctx context.Context, id int32) error
	ListByKind(ctx context.Context, kind domain.AttributeKind) ([]domain.Attribute, error)
}

type BannerRepository interface {
	Create(ctx context.Context, banner *domain.Banner) error
	GetByID(ctx context.Context, id int32) (*domain.Banner, error)
	Update(ctx context.Context, banner *domain.Banner) error
	Delete(ctx context.Context, id int32) error
	List(ctx context.Context, activeOnly bool) ([]domain.Banner, error)
}

type StaffRepository interface {
	Create(ctx context.Context, user *domain.StaffUser) error
	GetByID(ctx context.Context, id int32) (*domain.StaffUser, error)
	GetByEmail(ctx context.Context, email string) (*domain.StaffUser, error)
}

type SettingsRepository interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
	GetAll(ctx context.Context) (map[string]string, error)
}

type StatsRepository interface {
	GetDashboardStats(ctx context.Context, today, monthStart string) (*domain.DashboardStats, error)
}
