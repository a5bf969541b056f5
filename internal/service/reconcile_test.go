package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"atelier-rental-backend/internal/domain"
)

func TestSyncAll_InvalidatesCacheWhenRowsCorrected(t *testing.T) {
	productRepo := new(MockProductRepo)
	invalidator := new(MockInvalidator)
	svc := NewReconcileService(productRepo, invalidator)
	ctx := context.Background()

	productRepo.On("ReconcileStatuses", ctx).Return(int64(3), nil)
	invalidator.On("InvalidateCatalog", ctx).Return()

	corrected, err := svc.SyncAll(ctx)
	assert.NoError(t, err)
	assert.Equal(t, int64(3), corrected)
	invalidator.AssertCalled(t, "InvalidateCatalog", ctx)
}

func TestSyncAll_NoCorrectionsSkipsInvalidation(t *testing.T) {
	productRepo := new(MockProductRepo)
	invalidator := new(MockInvalidator)
	svc := NewReconcileService(productRepo, invalidator)
	ctx := context.Background()

	productRepo.On("ReconcileStatuses", ctx).Return(int64(0), nil)

	corrected, err := svc.SyncAll(ctx)
	assert.NoError(t, err)
	assert.Equal(t, int64(0), corrected)
	invalidator.AssertNotCalled(t, "InvalidateCatalog", mock.Anything)
}

func TestSyncAll_RepoError(t *testing.T) {
	productRepo := new(MockProductRepo)
	invalidator := new(MockInvalidator)
	svc := NewReconcileService(productRepo, invalidator)
	ctx := context.Background()

	productRepo.On("ReconcileStatuses", ctx).Return(int64(0), errors.New("db down"))

	_, err := svc.SyncAll(ctx)
	assert.Error(t, err)
	invalidator.AssertNotCalled(t, "InvalidateCatalog", mock.Anything)
}

func TestSyncProduct(t *testing.T) {
	productRepo := new(MockProductRepo)
	svc := NewReconcileService(productRepo, nil)
	ctx := context.Background()

	productRepo.On("SyncStatus", ctx, int32(7)).Return(domain.ProductStatusRented, nil)

	status, err := svc.SyncProduct(ctx, 7)
	assert.NoError(t, err)
	assert.Equal(t, domain.ProductStatusRented, status)
}
