package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"atelier-rental-backend/internal/domain"
	"atelier-rental-backend/internal/logger"
	"atelier-rental-backend/internal/repository"
)

// StaffNotifier is what the rental mutator needs from the notification
// dispatcher. Delivery problems stay inside the dispatcher; the mutation
// never fails because an alert did.
type StaffNotifier interface {
	NotifyNewRental(ctx context.Context, rental *domain.Rental, customerName string)
}

type rentalService struct {
	rentalRepo   repository.RentalRepository
	productRepo  repository.ProductRepository
	customerRepo repository.CustomerRepository
	availability AvailabilityService
	reconciler   ReconcileService
	notifier     StaffNotifier
	invalidator  CacheInvalidator
}

func NewRentalService(
	rentalRepo repository.RentalRepository,
	productRepo repository.ProductRepository,
	customerRepo repository.CustomerRepository,
	availability AvailabilityService,
	reconciler ReconcileService,
	notifier StaffNotifier,
	invalidator CacheInvalidator,
) RentalService {
	return &rentalService{
		rentalRepo:   rentalRepo,
		productRepo:  productRepo,
		customerRepo: customerRepo,
		availability: availability,
		reconciler:   reconciler,
		notifier:     notifier,
		invalidator:  invalidator,
	}
}

func itemProductIDs(items []domain.RentalItem) []int32 {
	ids := make([]int32, 0, len(items))
	for _, it := range items {
		ids = append(ids, it.ProductID)
	}
	return ids
}

// ensureAvailable runs the availability check and turns any conflict into
// a domain.ErrConflict naming the blocked products.
func (s *rentalService) ensureAvailable(ctx context.Context, productIDs []int32, start, end string, excludeRentalID *int32) error {
	results, err := s.availability.CheckAvailability(ctx, productIDs, start, end, excludeRentalID)
	if err != nil {
		return err
	}
	var blocked []int32
	for _, id := range productIDs {
		if r := results[id]; r != nil && !r.IsAvailable {
			blocked = append(blocked, id)
		}
	}
	if len(blocked) > 0 {
		return fmt.Errorf("%w: products unavailable for the requested dates: %v", domain.ErrConflict, blocked)
	}
	return nil
}

func (s *rentalService) CreateRental(ctx context.Context, rental *domain.Rental, items []domain.RentalItem) (*domain.Rental, error) {
	if len(items) == 0 {
		return nil, fmt.Errorf("%w: rental needs at least one item", domain.ErrInvalidInput)
	}
	if err := validateDateRange(rental.StartDate, rental.EndDate); err != nil {
		return nil, err
	}
	if rental.Status == "" {
		rental.Status = domain.RentalStatusPending
	}

	customer, err := s.customerRepo.GetByID(ctx, rental.CustomerID)
	if err != nil {
		return nil, fmt.Errorf("load customer: %w", err)
	}

	productIDs := itemProductIDs(items)
	if err := s.ensureAvailable(ctx, productIDs, rental.StartDate, rental.EndDate, nil); err != nil {
		return nil, err
	}

	if err := s.rentalRepo.Create(ctx, rental, items); err != nil {
		return nil, fmt.Errorf("create rental: %w", err)
	}
	rental.Items = items

	s.applyStatusSideEffects(ctx, rental.Status, productIDs, nil)
	s.invalidator.InvalidateCatalog(ctx)
	s.notifier.NotifyNewRental(ctx, rental, customer.Name)

	return rental, nil
}

func (s *rentalService) UpdateRental(ctx context.Context, rental *domain.Rental, items []domain.RentalItem) (*domain.Rental, error) {
	if len(items) == 0 {
		return nil, fmt.Errorf("%w: rental needs at least one item", domain.ErrInvalidInput)
	}
	if err := validateDateRange(rental.StartDate, rental.EndDate); err != nil {
		return nil, err
	}

	existing, err := s.rentalRepo.GetByID(ctx, rental.ID)
	if err != nil {
		return nil, err
	}
	previousIDs := itemProductIDs(existing.Items)

	newIDs := itemProductIDs(items)
	if rental.Status.IsActive() {
		// The rental being edited is excluded so it never conflicts with
		// its own previous dates.
		excludeID := rental.ID
		if err := s.ensureAvailable(ctx, newIDs, rental.StartDate, rental.EndDate, &excludeID); err != nil {
			return nil, err
		}
	}

	rental.ContractNumber = existing.ContractNumber
	if err := s.rentalRepo.Update(ctx, rental, items); err != nil {
		return nil, fmt.Errorf("update rental: %w", err)
	}
	rental.Items = items

	s.applyStatusSideEffects(ctx, rental.Status, newIDs, previousIDs)
	s.invalidator.InvalidateCatalog(ctx)

	return rental, nil
}

// applyStatusSideEffects keeps the cached product status in step with a
// rental mutation. Entering confirmed or in_progress bulk-marks the
// attached products rented in one round trip; every other case, plus
// any product dropped from the item set, goes through a per-product
// sync so a product still held by another active rental stays rented.
func (s *rentalService) applyStatusSideEffects(ctx context.Context, status domain.RentalStatus, currentIDs, previousIDs []int32) {
	switch status {
	case domain.RentalStatusConfirmed, domain.RentalStatusInProgress:
		if err := s.productRepo.BulkMarkStatus(ctx, currentIDs, domain.ProductStatusRented); err != nil {
			logger.Error("Failed to bulk mark products rented", "error", err)
		}
	default:
		s.syncProducts(ctx, currentIDs)
	}

	current := make(map[int32]bool, len(currentIDs))
	for _, id := range currentIDs {
		current[id] = true
	}
	var dropped []int32
	for _, id := range previousIDs {
		if !current[id] {
			dropped = append(dropped, id)
		}
	}
	s.syncProducts(ctx, dropped)
}

func (s *rentalService) syncProducts(ctx context.Context, ids []int32) {
	for _, id := range ids {
		if _, err := s.reconciler.SyncProduct(ctx, id); err != nil {
			logger.Error("Failed to sync product status", "product_id", id, "error", err)
		}
	}
}

func (s *rentalService) DeleteRental(ctx context.Context, id int32) error {
	productIDs, err := s.rentalRepo.Delete(ctx, id)
	if err != nil {
		return err
	}

	// Each formerly attached product flips back to available unless some
	// other active rental still references it.
	s.syncProducts(ctx, productIDs)
	s.invalidator.InvalidateCatalog(ctx)
	return nil
}

func (s *rentalService) GetRental(ctx context.Context, id int32) (*domain.Rental, error) {
	rental, err := s.rentalRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	customer, err := s.customerRepo.GetByID(ctx, rental.CustomerID)
	if err != nil && !errors.Is(err, domain.ErrNotFound) {
		return nil, err
	}
	rental.Customer = customer
	return rental, nil
}

func (s *rentalService) ListRentals(ctx context.Context, status string, customerID *int32, page, pageSize int32) ([]domain.Rental, int32, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 200 {
		pageSize = 50
	}
	return s.rentalRepo.List(ctx, status, customerID, page, pageSize)
}

func (s *rentalService) ListCalendar(ctx context.Context, year int, month int) ([]domain.Rental, error) {
	if month < 1 || month > 12 {
		return nil, fmt.Errorf("%w: month out of range", domain.ErrInvalidInput)
	}
	first := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
	last := first.AddDate(0, 1, -1)
	return s.rentalRepo.ListBetween(ctx, first.Format("2006-01-02"), last.Format("2006-01-02"))
}
