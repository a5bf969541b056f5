package service

import (
	"context"

	"github.com/stretchr/testify/mock"

	"atelier-rental-backend/internal/domain"
)

// MockRentalRepo
type MockRentalRepo struct {
	mock.Mock
}

func (m *MockRentalRepo) Create(ctx context.Context, rental *domain.Rental, items []domain.RentalItem) error {
	args := m.Called(ctx, rental, items)
	return args.Error(0)
}
func (m *MockRentalRepo) GetByID(ctx context.Context, id int32) (*domain.Rental, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Rental), args.Error(1)
}
func (m *MockRentalRepo) Update(ctx context.Context, rental *domain.Rental, items []domain.RentalItem) error {
	args := m.Called(ctx, rental, items)
	return args.Error(0)
}
func (m *MockRentalRepo) Delete(ctx context.Context, id int32) ([]int32, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]int32), args.Error(1)
}
func (m *MockRentalRepo) List(ctx context.Context, status string, customerID *int32, page, pageSize int32) ([]domain.Rental, int32, error) {
	args := m.Called(ctx, status, customerID, page, pageSize)
	return args.Get(0).([]domain.Rental), args.Get(1).(int32), args.Error(2)
}
func (m *MockRentalRepo) ListBetween(ctx context.Context, from, to string) ([]domain.Rental, error) {
	args := m.Called(ctx, from, to)
	return args.Get(0).([]domain.Rental), args.Error(1)
}
func (m *MockRentalRepo) FindConflicts(ctx context.Context, productIDs []int32, start, end string, excludeRentalID *int32) ([]domain.ConflictingRental, error) {
	args := m.Called(ctx, productIDs, start, end, excludeRentalID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.ConflictingRental), args.Error(1)
}
func (m *MockRentalRepo) FindOverdue(ctx context.Context, productIDs []int32, today string, excludeRentalID *int32) ([]domain.ConflictingRental, error) {
	args := m.Called(ctx, productIDs, today, excludeRentalID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.ConflictingRental), args.Error(1)
}
func (m *MockRentalRepo) ListOverdue(ctx context.Context, today string) ([]domain.Rental, error) {
	args := m.Called(ctx, today)
	return args.Get(0).([]domain.Rental), args.Error(1)
}
func (m *MockRentalRepo) ProductIDs(ctx context.Context, rentalID int32) ([]int32, error) {
	args := m.Called(ctx, rentalID)
	return args.Get(0).([]int32), args.Error(1)
}

// MockProductRepo
type MockProductRepo struct {
	mock.Mock
}

func (m *MockProductRepo) Create(ctx context.Context, product *domain.Product) error {
	args := m.Called(ctx, product)
	return args.Error(0)
}
func (m *MockProductRepo) GetByID(ctx context.Context, id int32) (*domain.Product, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Product), args.Error(1)
}
func (m *MockProductRepo) Update(ctx context.Context, product *domain.Product) error {
	args := m.Called(ctx, product)
	return args.Error(0)
}
func (m *MockProductRepo) Delete(ctx context.Context, id int32) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}
func (m *MockProductRepo) List(ctx context.Context, categoryID *int32, includeVariants bool, page, pageSize int32) ([]domain.Product, int32, error) {
	args := m.Called(ctx, categoryID, includeVariants, page, pageSize)
	return args.Get(0).([]domain.Product), args.Get(1).(int32), args.Error(2)
}
func (m *MockProductRepo) ListVariants(ctx context.Context, parentID int32) ([]domain.Product, error) {
	args := m.Called(ctx, parentID)
	return args.Get(0).([]domain.Product), args.Error(1)
}
func (m *MockProductRepo) ListCatalog(ctx context.Context, categorySlug string) ([]domain.Product, error) {
	args := m.Called(ctx, categorySlug)
	return args.Get(0).([]domain.Product), args.Error(1)
}
func (m *MockProductRepo) UpdateStatus(ctx context.Context, id int32, status domain.ProductStatus) error {
	args := m.Called(ctx, id, status)
	return args.Error(0)
}
func (m *MockProductRepo) BulkMarkStatus(ctx context.Context, ids []int32, status domain.ProductStatus) error {
	args := m.Called(ctx, ids, status)
	return args.Error(0)
}
func (m *MockProductRepo) ReconcileStatuses(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}
func (m *MockProductRepo) SyncStatus(ctx context.Context, id int32) (domain.ProductStatus, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(domain.ProductStatus), args.Error(1)
}
func (m *MockProductRepo) CreateImage(ctx context.Context, image *domain.ProductImage) error {
	args := m.Called(ctx, image)
	return args.Error(0)
}
func (m *MockProductRepo) GetImageByID(ctx context.Context, imageID int32) (*domain.ProductImage, error) {
	args := m.Called(ctx, imageID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ProductImage), args.Error(1)
}
func (m *MockProductRepo) ListImages(ctx context.Context, productID int32) ([]domain.ProductImage, error) {
	args := m.Called(ctx, productID)
	return args.Get(0).([]domain.ProductImage), args.Error(1)
}
func (m *MockProductRepo) DeleteImage(ctx context.Context, imageID int32) error {
	args := m.Called(ctx, imageID)
	return args.Error(0)
}
func (m *MockProductRepo) SetPrimaryImage(ctx context.Context, productID, imageID int32) error {
	args := m.Called(ctx, productID, imageID)
	return args.Error(0)
}

// MockCustomerRepo
type MockCustomerRepo struct {
	mock.Mock
}

func (m *MockCustomerRepo) Create(ctx context.Context, customer *domain.Customer) error {
	args := m.Called(ctx, customer)
	return args.Error(0)
}
func (m *MockCustomerRepo) GetByID(ctx context.Context, id int32) (*domain.Customer, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Customer), args.Error(1)
}
func (m *MockCustomerRepo) Update(ctx context.Context, customer *domain.Customer) error {
	args := m.Called(ctx, customer)
	return args.Error(0)
}
func (m *MockCustomerRepo) Delete(ctx context.Context, id int32) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}
func (m *MockCustomerRepo) List(ctx context.Context, search string, page, pageSize int32) ([]domain.Customer, int32, error) {
	args := m.Called(ctx, search, page, pageSize)
	return args.Get(0).([]domain.Customer), args.Get(1).(int32), args.Error(2)
}

// MockNotifier
type MockNotifier struct {
	mock.Mock
}

func (m *MockNotifier) NotifyNewRental(ctx context.Context, rental *domain.Rental, customerName string) {
	m.Called(ctx, rental, customerName)
}

// MockInvalidator
type MockInvalidator struct {
	mock.Mock
}

func (m *MockInvalidator) InvalidateCatalog(ctx context.Context) {
	m.Called(ctx)
}

// MockAvailabilitySvc
type MockAvailabilitySvc struct {
	mock.Mock
}

func (m *MockAvailabilitySvc) CheckAvailability(ctx context.Context, productIDs []int32, start, end string, excludeRentalID *int32) (map[int32]*domain.ProductAvailability, error) {
	args := m.Called(ctx, productIDs, start, end, excludeRentalID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[int32]*domain.ProductAvailability), args.Error(1)
}

// MockReconcileSvc
type MockReconcileSvc struct {
	mock.Mock
}

func (m *MockReconcileSvc) SyncProduct(ctx context.Context, productID int32) (domain.ProductStatus, error) {
	args := m.Called(ctx, productID)
	return args.Get(0).(domain.ProductStatus), args.Error(1)
}
func (m *MockReconcileSvc) SyncAll(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}
