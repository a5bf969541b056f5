package service

import (
	"context"
	"fmt"

	"atelier-rental-backend/internal/domain"
	"atelier-rental-backend/internal/logger"
	"atelier-rental-backend/internal/repository"
)

type reconcileService struct {
	productRepo repository.ProductRepository
	invalidator CacheInvalidator
}

func NewReconcileService(productRepo repository.ProductRepository, invalidator CacheInvalidator) ReconcileService {
	return &reconcileService{
		productRepo: productRepo,
		invalidator: invalidator,
	}
}

func (s *reconcileService) SyncProduct(ctx context.Context, productID int32) (domain.ProductStatus, error) {
	status, err := s.productRepo.SyncStatus(ctx, productID)
	if err != nil {
		return "", fmt.Errorf("sync product %d: %w", productID, err)
	}
	return status, nil
}

// SyncAll replaces the old one-request-per-product loop: the whole pass
// is two bulk conditional updates in the database, so a mid-loop failure
// can no longer leave half the catalog stale.
func (s *reconcileService) SyncAll(ctx context.Context) (int64, error) {
	corrected, err := s.productRepo.ReconcileStatuses(ctx)
	if err != nil {
		return corrected, fmt.Errorf("reconcile product statuses: %w", err)
	}
	if corrected > 0 {
		logger.Info("Product statuses reconciled", "corrected", corrected)
		if s.invalidator != nil {
			s.invalidator.InvalidateCatalog(ctx)
		}
	}
	return corrected, nil
}
