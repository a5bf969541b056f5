package service

import (
	"context"
	"fmt"
	"time"

	"atelier-rental-backend/internal/domain"
	"atelier-rental-backend/internal/repository"
)

type availabilityService struct {
	rentalRepo repository.RentalRepository
	// now is swappable for tests; "today" for the overdue query comes
	// from here, not from the requested window.
	now func() time.Time
}

func NewAvailabilityService(rentalRepo repository.RentalRepository) AvailabilityService {
	return &availabilityService{
		rentalRepo: rentalRepo,
		now:        time.Now,
	}
}

// CheckAvailability resolves the bookability of each candidate product
// over [start, end].
//
// A product is unavailable when an active rental (pending, confirmed or
// in progress) holds it over an interval satisfying
// rental.start <= end AND rental.end >= start. Independently, a product
// held by an active rental whose end date is already past is flagged
// overdue and blocked regardless of the requested window; overdue wins
// the status label when both apply.
//
// Quantity is deliberately not consulted: every product is treated as a
// single bookable unit even when stock says otherwise.
func (s *availabilityService) CheckAvailability(ctx context.Context, productIDs []int32, start, end string, excludeRentalID *int32) (map[int32]*domain.ProductAvailability, error) {
	if err := validateDateRange(start, end); err != nil {
		return nil, err
	}

	results := make(map[int32]*domain.ProductAvailability, len(productIDs))
	for _, id := range productIDs {
		results[id] = &domain.ProductAvailability{
			ProductID:   id,
			IsAvailable: true,
			Status:      domain.AvailabilityStatusAvailable,
		}
	}
	if len(productIDs) == 0 {
		return results, nil
	}

	conflicts, err := s.rentalRepo.FindConflicts(ctx, productIDs, start, end, excludeRentalID)
	if err != nil {
		return nil, fmt.Errorf("availability conflict query: %w", err)
	}
	for _, c := range conflicts {
		r, ok := results[c.ProductID]
		if !ok {
			continue
		}
		r.IsAvailable = false
		r.Status = domain.AvailabilityStatusConflict
		r.ConflictingRentals = append(r.ConflictingRentals, c)
	}

	today := s.now().Format("2006-01-02")
	overdue, err := s.rentalRepo.FindOverdue(ctx, productIDs, today, excludeRentalID)
	if err != nil {
		return nil, fmt.Errorf("availability overdue query: %w", err)
	}
	for _, c := range overdue {
		r, ok := results[c.ProductID]
		if !ok {
			continue
		}
		r.IsAvailable = false
		r.IsOverdue = true
		r.Status = domain.AvailabilityStatusOverdue
		r.OverdueRentals = append(r.OverdueRentals, c)
	}

	return results, nil
}

func validateDateRange(start, end string) error {
	s, err := time.Parse("2006-01-02", start)
	if err != nil {
		return fmt.Errorf("%w: invalid start date %q", domain.ErrInvalidInput, start)
	}
	e, err := time.Parse("2006-01-02", end)
	if err != nil {
		return fmt.Errorf("%w: invalid end date %q", domain.ErrInvalidInput, end)
	}
	if e.Before(s) {
		return fmt.Errorf("%w: end date before start date", domain.ErrInvalidInput)
	}
	return nil
}
