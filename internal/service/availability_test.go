package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"atelier-rental-backend/internal/domain"
)

func fixedAvailabilityService(repo *MockRentalRepo, today string) *availabilityService {
	day, _ := time.Parse("2006-01-02", today)
	return &availabilityService{
		rentalRepo: repo,
		now:        func() time.Time { return day },
	}
}

func TestCheckAvailability_AllFree(t *testing.T) {
	repo := new(MockRentalRepo)
	svc := fixedAvailabilityService(repo, "2026-06-01")
	ctx := context.Background()

	repo.On("FindConflicts", ctx, []int32{1, 2}, "2026-06-10", "2026-06-12", (*int32)(nil)).
		Return([]domain.ConflictingRental{}, nil)
	repo.On("FindOverdue", ctx, []int32{1, 2}, "2026-06-01", (*int32)(nil)).
		Return([]domain.ConflictingRental{}, nil)

	results, err := svc.CheckAvailability(ctx, []int32{1, 2}, "2026-06-10", "2026-06-12", nil)
	assert.NoError(t, err)
	assert.Len(t, results, 2)
	for _, r := range results {
		assert.True(t, r.IsAvailable)
		assert.Equal(t, domain.AvailabilityStatusAvailable, r.Status)
	}
}

func TestCheckAvailability_ConflictBlocksOnlyHeldProduct(t *testing.T) {
	repo := new(MockRentalRepo)
	svc := fixedAvailabilityService(repo, "2026-06-01")
	ctx := context.Background()

	conflict := domain.ConflictingRental{
		RentalID:       7,
		ProductID:      1,
		ContractNumber: "CTR-0007",
		CustomerName:   "Ana",
		StartDate:      "2026-06-11",
		EndDate:        "2026-06-15",
		Status:         domain.RentalStatusPending,
	}
	repo.On("FindConflicts", ctx, []int32{1, 2}, "2026-06-10", "2026-06-12", (*int32)(nil)).
		Return([]domain.ConflictingRental{conflict}, nil)
	repo.On("FindOverdue", ctx, []int32{1, 2}, "2026-06-01", (*int32)(nil)).
		Return([]domain.ConflictingRental{}, nil)

	results, err := svc.CheckAvailability(ctx, []int32{1, 2}, "2026-06-10", "2026-06-12", nil)
	assert.NoError(t, err)

	assert.False(t, results[1].IsAvailable)
	assert.Equal(t, domain.AvailabilityStatusConflict, results[1].Status)
	assert.Len(t, results[1].ConflictingRentals, 1)
	assert.Equal(t, "CTR-0007", results[1].ConflictingRentals[0].ContractNumber)

	assert.True(t, results[2].IsAvailable)
}

func TestCheckAvailability_OverdueWinsOverConflict(t *testing.T) {
	repo := new(MockRentalRepo)
	svc := fixedAvailabilityService(repo, "2026-06-20")
	ctx := context.Background()

	conflict := domain.ConflictingRental{RentalID: 3, ProductID: 5, Status: domain.RentalStatusConfirmed}
	overdue := domain.ConflictingRental{RentalID: 4, ProductID: 5, EndDate: "2026-06-10", Status: domain.RentalStatusInProgress}

	repo.On("FindConflicts", ctx, []int32{5}, "2026-07-01", "2026-07-03", (*int32)(nil)).
		Return([]domain.ConflictingRental{conflict}, nil)
	repo.On("FindOverdue", ctx, []int32{5}, "2026-06-20", (*int32)(nil)).
		Return([]domain.ConflictingRental{overdue}, nil)

	results, err := svc.CheckAvailability(ctx, []int32{5}, "2026-07-01", "2026-07-03", nil)
	assert.NoError(t, err)

	r := results[5]
	assert.False(t, r.IsAvailable)
	assert.True(t, r.IsOverdue)
	assert.Equal(t, domain.AvailabilityStatusOverdue, r.Status)
	assert.Len(t, r.ConflictingRentals, 1)
	assert.Len(t, r.OverdueRentals, 1)
}

func TestCheckAvailability_OverdueBlocksOutsideRequestedWindow(t *testing.T) {
	// A held product with a lapsed rental is blocked even when the
	// requested window is far in the future and overlaps nothing.
	repo := new(MockRentalRepo)
	svc := fixedAvailabilityService(repo, "2026-06-20")
	ctx := context.Background()

	overdue := domain.ConflictingRental{RentalID: 9, ProductID: 8, EndDate: "2026-05-30", Status: domain.RentalStatusInProgress}
	repo.On("FindConflicts", ctx, []int32{8}, "2027-01-10", "2027-01-12", (*int32)(nil)).
		Return([]domain.ConflictingRental{}, nil)
	repo.On("FindOverdue", ctx, []int32{8}, "2026-06-20", (*int32)(nil)).
		Return([]domain.ConflictingRental{overdue}, nil)

	results, err := svc.CheckAvailability(ctx, []int32{8}, "2027-01-10", "2027-01-12", nil)
	assert.NoError(t, err)
	assert.False(t, results[8].IsAvailable)
	assert.Equal(t, domain.AvailabilityStatusOverdue, results[8].Status)
}

func TestCheckAvailability_ExcludeRentalID(t *testing.T) {
	repo := new(MockRentalRepo)
	svc := fixedAvailabilityService(repo, "2026-06-01")
	ctx := context.Background()

	excludeID := int32(42)
	repo.On("FindConflicts", ctx, []int32{1}, "2026-06-10", "2026-06-12", &excludeID).
		Return([]domain.ConflictingRental{}, nil)
	repo.On("FindOverdue", ctx, []int32{1}, "2026-06-01", &excludeID).
		Return([]domain.ConflictingRental{}, nil)

	results, err := svc.CheckAvailability(ctx, []int32{1}, "2026-06-10", "2026-06-12", &excludeID)
	assert.NoError(t, err)
	assert.True(t, results[1].IsAvailable)
	repo.AssertExpectations(t)
}

func TestCheckAvailability_InvalidDates(t *testing.T) {
	repo := new(MockRentalRepo)
	svc := fixedAvailabilityService(repo, "2026-06-01")
	ctx := context.Background()

	_, err := svc.CheckAvailability(ctx, []int32{1}, "not-a-date", "2026-06-12", nil)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = svc.CheckAvailability(ctx, []int32{1}, "2026-06-12", "2026-06-10", nil)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	repo.AssertNotCalled(t, "FindConflicts", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestCheckAvailability_SingleDayRange(t *testing.T) {
	repo := new(MockRentalRepo)
	svc := fixedAvailabilityService(repo, "2026-06-01")
	ctx := context.Background()

	repo.On("FindConflicts", ctx, []int32{1}, "2026-06-10", "2026-06-10", (*int32)(nil)).
		Return([]domain.ConflictingRental{}, nil)
	repo.On("FindOverdue", ctx, []int32{1}, "2026-06-01", (*int32)(nil)).
		Return([]domain.ConflictingRental{}, nil)

	results, err := svc.CheckAvailability(ctx, []int32{1}, "2026-06-10", "2026-06-10", nil)
	assert.NoError(t, err)
	assert.True(t, results[1].IsAvailable)
}

func TestCheckAvailability_EmptyProductList(t *testing.T) {
	repo := new(MockRentalRepo)
	svc := fixedAvailabilityService(repo, "2026-06-01")

	results, err := svc.CheckAvailability(context.Background(), nil, "2026-06-10", "2026-06-12", nil)
	assert.NoError(t, err)
	assert.Empty(t, results)
	repo.AssertNotCalled(t, "FindConflicts", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}
