package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"atelier-rental-backend/internal/domain"
)

type rentalFixture struct {
	rentalRepo   *MockRentalRepo
	productRepo  *MockProductRepo
	customerRepo *MockCustomerRepo
	availability *MockAvailabilitySvc
	reconciler   *MockReconcileSvc
	notifier     *MockNotifier
	invalidator  *MockInvalidator
	svc          RentalService
}

func newRentalFixture() *rentalFixture {
	f := &rentalFixture{
		rentalRepo:   new(MockRentalRepo),
		productRepo:  new(MockProductRepo),
		customerRepo: new(MockCustomerRepo),
		availability: new(MockAvailabilitySvc),
		reconciler:   new(MockReconcileSvc),
		notifier:     new(MockNotifier),
		invalidator:  new(MockInvalidator),
	}
	f.svc = NewRentalService(f.rentalRepo, f.productRepo, f.customerRepo, f.availability, f.reconciler, f.notifier, f.invalidator)
	return f
}

func allAvailable(ids ...int32) map[int32]*domain.ProductAvailability {
	out := make(map[int32]*domain.ProductAvailability, len(ids))
	for _, id := range ids {
		out[id] = &domain.ProductAvailability{ProductID: id, IsAvailable: true, Status: domain.AvailabilityStatusAvailable}
	}
	return out
}

func TestCreateRental_Success(t *testing.T) {
	f := newRentalFixture()
	ctx := context.Background()

	rental := &domain.Rental{CustomerID: 1, EventDate: "2026-06-15", StartDate: "2026-06-12", EndDate: "2026-06-17"}
	items := []domain.RentalItem{{ProductID: 10, Quantity: 1}, {ProductID: 11, Quantity: 1}}

	f.customerRepo.On("GetByID", ctx, int32(1)).Return(&domain.Customer{ID: 1, Name: "Beatriz"}, nil)
	f.availability.On("CheckAvailability", ctx, []int32{10, 11}, "2026-06-12", "2026-06-17", (*int32)(nil)).
		Return(allAvailable(10, 11), nil)
	f.rentalRepo.On("Create", ctx, rental, items).Return(nil)
	f.reconciler.On("SyncProduct", ctx, int32(10)).Return(domain.ProductStatusAvailable, nil)
	f.reconciler.On("SyncProduct", ctx, int32(11)).Return(domain.ProductStatusAvailable, nil)
	f.invalidator.On("InvalidateCatalog", ctx).Return()
	f.notifier.On("NotifyNewRental", ctx, rental, "Beatriz").Return()

	res, err := f.svc.CreateRental(ctx, rental, items)
	assert.NoError(t, err)
	assert.Equal(t, domain.RentalStatusPending, res.Status)
	assert.Len(t, res.Items, 2)
	f.notifier.AssertExpectations(t)
}

func TestCreateRental_ConfirmedBulkMarksRented(t *testing.T) {
	f := newRentalFixture()
	ctx := context.Background()

	rental := &domain.Rental{CustomerID: 1, Status: domain.RentalStatusConfirmed, StartDate: "2026-06-12", EndDate: "2026-06-17"}
	items := []domain.RentalItem{{ProductID: 10, Quantity: 1}}

	f.customerRepo.On("GetByID", ctx, int32(1)).Return(&domain.Customer{ID: 1, Name: "Beatriz"}, nil)
	f.availability.On("CheckAvailability", ctx, []int32{10}, "2026-06-12", "2026-06-17", (*int32)(nil)).
		Return(allAvailable(10), nil)
	f.rentalRepo.On("Create", ctx, rental, items).Return(nil)
	f.productRepo.On("BulkMarkStatus", ctx, []int32{10}, domain.ProductStatusRented).Return(nil)
	f.invalidator.On("InvalidateCatalog", ctx).Return()
	f.notifier.On("NotifyNewRental", ctx, rental, "Beatriz").Return()

	_, err := f.svc.CreateRental(ctx, rental, items)
	assert.NoError(t, err)
	f.productRepo.AssertCalled(t, "BulkMarkStatus", ctx, []int32{10}, domain.ProductStatusRented)
	f.reconciler.AssertNotCalled(t, "SyncProduct", mock.Anything, mock.Anything)
}

func TestCreateRental_ConflictRejected(t *testing.T) {
	f := newRentalFixture()
	ctx := context.Background()

	rental := &domain.Rental{CustomerID: 1, StartDate: "2026-06-12", EndDate: "2026-06-17"}
	items := []domain.RentalItem{{ProductID: 10, Quantity: 1}}

	blocked := map[int32]*domain.ProductAvailability{
		10: {ProductID: 10, IsAvailable: false, Status: domain.AvailabilityStatusConflict},
	}
	f.customerRepo.On("GetByID", ctx, int32(1)).Return(&domain.Customer{ID: 1, Name: "Beatriz"}, nil)
	f.availability.On("CheckAvailability", ctx, []int32{10}, "2026-06-12", "2026-06-17", (*int32)(nil)).
		Return(blocked, nil)

	_, err := f.svc.CreateRental(ctx, rental, items)
	assert.ErrorIs(t, err, domain.ErrConflict)
	f.rentalRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything, mock.Anything)
	f.notifier.AssertNotCalled(t, "NotifyNewRental", mock.Anything, mock.Anything, mock.Anything)
}

func TestCreateRental_NoItems(t *testing.T) {
	f := newRentalFixture()

	_, err := f.svc.CreateRental(context.Background(), &domain.Rental{CustomerID: 1}, nil)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestUpdateRental_ExcludesSelfFromConflictCheck(t *testing.T) {
	f := newRentalFixture()
	ctx := context.Background()

	rental := &domain.Rental{ID: 42, CustomerID: 1, Status: domain.RentalStatusPending, StartDate: "2026-06-12", EndDate: "2026-06-18"}
	items := []domain.RentalItem{{ProductID: 10, Quantity: 1}}
	existing := &domain.Rental{ID: 42, ContractNumber: "CTR-0042", Items: []domain.RentalItem{{ProductID: 10}}}

	excludeID := int32(42)
	f.rentalRepo.On("GetByID", ctx, int32(42)).Return(existing, nil)
	f.availability.On("CheckAvailability", ctx, []int32{10}, "2026-06-12", "2026-06-18", &excludeID).
		Return(allAvailable(10), nil)
	f.rentalRepo.On("Update", ctx, rental, items).Return(nil)
	f.reconciler.On("SyncProduct", ctx, int32(10)).Return(domain.ProductStatusAvailable, nil)
	f.invalidator.On("InvalidateCatalog", ctx).Return()

	res, err := f.svc.UpdateRental(ctx, rental, items)
	assert.NoError(t, err)
	assert.Equal(t, "CTR-0042", res.ContractNumber)
	f.availability.AssertExpectations(t)
}

func TestUpdateRental_CancelSkipsAvailabilityAndSyncsProducts(t *testing.T) {
	f := newRentalFixture()
	ctx := context.Background()

	rental := &domain.Rental{ID: 42, CustomerID: 1, Status: domain.RentalStatusCancelled, StartDate: "2026-06-12", EndDate: "2026-06-18"}
	items := []domain.RentalItem{{ProductID: 10, Quantity: 1}}
	existing := &domain.Rental{ID: 42, ContractNumber: "CTR-0042", Items: []domain.RentalItem{{ProductID: 10}, {ProductID: 11}}}

	f.rentalRepo.On("GetByID", ctx, int32(42)).Return(existing, nil)
	f.rentalRepo.On("Update", ctx, rental, items).Return(nil)
	// Product 10 stays on the rental, 11 was dropped; both get resynced
	// so anything still held by another active rental stays rented.
	f.reconciler.On("SyncProduct", ctx, int32(10)).Return(domain.ProductStatusAvailable, nil)
	f.reconciler.On("SyncProduct", ctx, int32(11)).Return(domain.ProductStatusRented, nil)
	f.invalidator.On("InvalidateCatalog", ctx).Return()

	_, err := f.svc.UpdateRental(ctx, rental, items)
	assert.NoError(t, err)
	f.availability.AssertNotCalled(t, "CheckAvailability", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	f.reconciler.AssertCalled(t, "SyncProduct", ctx, int32(11))
}

func TestDeleteRental_SyncsFormerProducts(t *testing.T) {
	f := newRentalFixture()
	ctx := context.Background()

	f.rentalRepo.On("Delete", ctx, int32(9)).Return([]int32{10, 11}, nil)
	f.reconciler.On("SyncProduct", ctx, int32(10)).Return(domain.ProductStatusAvailable, nil)
	f.reconciler.On("SyncProduct", ctx, int32(11)).Return(domain.ProductStatusRented, nil)
	f.invalidator.On("InvalidateCatalog", ctx).Return()

	err := f.svc.DeleteRental(ctx, 9)
	assert.NoError(t, err)
	f.reconciler.AssertNumberOfCalls(t, "SyncProduct", 2)
}

func TestDeleteRental_NotFound(t *testing.T) {
	f := newRentalFixture()
	ctx := context.Background()

	f.rentalRepo.On("Delete", ctx, int32(9)).Return(nil, domain.ErrNotFound)

	err := f.svc.DeleteRental(ctx, 9)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	f.invalidator.AssertNotCalled(t, "InvalidateCatalog", mock.Anything)
}

func TestListCalendar_MonthBounds(t *testing.T) {
	f := newRentalFixture()
	ctx := context.Background()

	f.rentalRepo.On("ListBetween", ctx, "2026-02-01", "2026-02-28").Return([]domain.Rental{}, nil)

	_, err := f.svc.ListCalendar(ctx, 2026, 2)
	assert.NoError(t, err)
	f.rentalRepo.AssertExpectations(t)

	_, err = f.svc.ListCalendar(ctx, 2026, 13)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestComputeOverdue(t *testing.T) {
	today := "2026-06-20"

	active := &domain.Rental{Status: domain.RentalStatusInProgress, EndDate: "2026-06-10"}
	assert.True(t, active.ComputeOverdue(today))

	completed := &domain.Rental{Status: domain.RentalStatusCompleted, EndDate: "2026-06-10"}
	assert.False(t, completed.ComputeOverdue(today))

	cancelled := &domain.Rental{Status: domain.RentalStatusCancelled, EndDate: "2026-06-10"}
	assert.False(t, cancelled.ComputeOverdue(today))

	dueToday := &domain.Rental{Status: domain.RentalStatusConfirmed, EndDate: today}
	assert.False(t, dueToday.ComputeOverdue(today))

	future := &domain.Rental{Status: domain.RentalStatusPending, EndDate: "2026-07-01"}
	assert.False(t, future.ComputeOverdue(today))
}
