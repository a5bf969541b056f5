package postgres

import (
	"context"
	"database/sql"

	"atelier-rental-backend/internal/domain"
	"atelier-rental-backend/internal/repository"
)

type statsRepository struct {
	db *sql.DB
}

func NewStatsRepository(db *sql.DB) repository.StatsRepository {
	return &statsRepository{db: db}
}

// GetDashboardStats aggregates everything the admin landing page shows in
// a single round trip.
func (r *statsRepository) GetDashboardStats(ctx context.Context, today, monthStart string) (*domain.DashboardStats, error) {
	query := `SELECT
		(SELECT count(*) FROM products),
		(SELECT count(*) FROM products WHERE status = 'available'),
		(SELECT count(*) FROM products WHERE status = 'rented'),
		(SELECT count(*) FROM products WHERE status = 'maintenance'),
		(SELECT count(*) FROM customers),
		(SELECT count(*) FROM rentals WHERE status IN (` + activeStatusList + `)),
		(SELECT count(*) FROM rentals WHERE status IN (` + activeStatusList + `) AND rental_end_date < $1),
		(SELECT count(*) FROM rentals WHERE created_on >= $2::date),
		(SELECT COALESCE(sum(total_cents), 0) FROM rentals WHERE created_on >= $2::date AND status <> 'cancelled'),
		(SELECT count(*) FROM rentals WHERE status IN (` + activeStatusList + `) AND rental_end_date BETWEEN $1::date AND $1::date + 7)`

	s := &domain.DashboardStats{}
	err := r.db.QueryRowContext(ctx, query, today, monthStart).Scan(
		&s.TotalProducts, &s.AvailableProducts, &s.RentedProducts, &s.MaintenanceCount,
		&s.TotalCustomers, &s.ActiveRentals, &s.OverdueRentals,
		&s.RentalsThisMonth, &s.RevenueCentsMonth, &s.UpcomingReturns)
	if err != nil {
		return nil, err
	}
	return s, nil
}
