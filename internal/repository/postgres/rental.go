package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"atelier-rental-backend/internal/domain"
	"atelier-rental-backend/internal/logger"
	"atelier-rental-backend/internal/repository"

	"github.com/lib/pq"
)

// Date columns come back as text so the domain's "2006-01-02" string
// representation survives the driver round trip.
const rentalColumns = `id, customer_id, contract_number, event_date::text, rental_start_date::text, rental_end_date::text, status, total_cents, deposit_cents, notes, created_on, updated_on`

type rentalRepository struct {
	db *sql.DB
}

func NewRentalRepository(db *sql.DB) repository.RentalRepository {
	return &rentalRepository{db: db}
}

func scanRental(row interface{ Scan(...any) error }) (*domain.Rental, error) {
	rt := &domain.Rental{}
	err := row.Scan(&rt.ID, &rt.CustomerID, &rt.ContractNumber, &rt.EventDate, &rt.StartDate, &rt.EndDate, &rt.Status, &rt.TotalCents, &rt.DepositCents, &rt.Notes, &rt.CreatedOn, &rt.UpdatedOn)
	if err != nil {
		return nil, err
	}
	return rt, nil
}

func (r *rentalRepository) Create(ctx context.Context, rt *domain.Rental, items []domain.RentalItem) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	// Sequential contract numbering comes from the database function so
	// concurrent admins never mint the same number.
	if err := tx.QueryRowContext(ctx, `SELECT generate_next_contract_number()`).Scan(&rt.ContractNumber); err != nil {
		return fmt.Errorf("generate contract number: %w", err)
	}

	query := `INSERT INTO rentals (customer_id, contract_number, event_date, rental_start_date, rental_end_date, status, total_cents, deposit_cents, notes, created_on, updated_on)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11) RETURNING id`
	logger.DatabaseCall("INSERT", "rentals", "contractNumber", rt.ContractNumber)
	now := time.Now()
	err = tx.QueryRowContext(ctx, query, rt.CustomerID, rt.ContractNumber, rt.EventDate, rt.StartDate, rt.EndDate, rt.Status, rt.TotalCents, rt.DepositCents, rt.Notes, now, now).Scan(&rt.ID)
	logger.DatabaseResult("INSERT", 1, err, "rentalID", rt.ID)
	if err != nil {
		return err
	}

	if err := insertItems(ctx, tx, rt.ID, items); err != nil {
		return err
	}
	return tx.Commit()
}

func insertItems(ctx context.Context, tx *sql.Tx, rentalID int32, items []domain.RentalItem) error {
	for i := range items {
		items[i].RentalID = rentalID
		err := tx.QueryRowContext(ctx,
			`INSERT INTO rental_items (rental_id, product_id, quantity) VALUES ($1, $2, $3) RETURNING id`,
			rentalID, items[i].ProductID, items[i].Quantity).Scan(&items[i].ID)
		if err != nil {
			return fmt.Errorf("insert rental item: %w", err)
		}
	}
	return nil
}

func (r *rentalRepository) GetByID(ctx context.Context, id int32) (*domain.Rental, error) {
	query := `SELECT ` + rentalColumns + ` FROM rentals WHERE id = $1`
	rt, err := scanRental(r.db.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	items, err := r.listItems(ctx, id)
	if err != nil {
		return nil, err
	}
	rt.Items = items
	rt.IsOverdue = rt.ComputeOverdue(domain.Today())
	return rt, nil
}

func (r *rentalRepository) listItems(ctx context.Context, rentalID int32) ([]domain.RentalItem, error) {
	query := `SELECT ri.id, ri.rental_id, ri.product_id, p.name, ri.quantity
	          FROM rental_items ri JOIN products p ON p.id = ri.product_id
	          WHERE ri.rental_id = $1 ORDER BY ri.id`
	rows, err := r.db.QueryContext(ctx, query, rentalID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []domain.RentalItem
	for rows.Next() {
		var it domain.RentalItem
		if err := rows.Scan(&it.ID, &it.RentalID, &it.ProductID, &it.ProductName, &it.Quantity); err != nil {
			return nil, err
		}
		items = append(items, it)
	}
	return items, rows.Err()
}

// Update rewrites the rental row and replaces the item set wholesale.
// Items are never diffed against the previous set.
func (r *rentalRepository) Update(ctx context.Context, rt *domain.Rental, items []domain.RentalItem) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	query := `UPDATE rentals SET customer_id=$1, event_date=$2, rental_start_date=$3, rental_end_date=$4, status=$5, total_cents=$6, deposit_cents=$7, notes=$8, updated_on=$9 WHERE id=$10`
	res, err := tx.ExecContext(ctx, query, rt.CustomerID, rt.EventDate, rt.StartDate, rt.EndDate, rt.Status, rt.TotalCents, rt.DepositCents, rt.Notes, time.Now(), rt.ID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.ErrNotFound
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM rental_items WHERE rental_id = $1`, rt.ID); err != nil {
		return err
	}
	if err := insertItems(ctx, tx, rt.ID, items); err != nil {
		return err
	}
	return tx.Commit()
}

func (r *rentalRepository) Delete(ctx context.Context, id int32) ([]int32, error) {
	productIDs, err := r.ProductIDs(ctx, id)
	if err != nil {
		return nil, err
	}

	res, err := r.db.ExecContext(ctx, `DELETE FROM rentals WHERE id = $1`, id)
	if err != nil {
		return nil, err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return nil, domain.ErrNotFound
	}
	return productIDs, nil
}

func (r *rentalRepository) List(ctx context.Context, status string, customerID *int32, page, pageSize int32) ([]domain.Rental, int32, error) {
	offset := (page - 1) * pageSize
	query := `SELECT ` + rentalColumns + ` FROM rentals WHERE 1=1`

	args := []interface{}{}
	argIdx := 1
	if status != "" {
		query += fmt.Sprintf(" AND status = $%d", argIdx)
		args = append(args, status)
		argIdx++
	}
	if customerID != nil {
		query += fmt.Sprintf(" AND customer_id = $%d", argIdx)
		args = append(args, *customerID)
		argIdx++
	}

	var count int32
	countQuery := "SELECT count(*) FROM (" + query + ") as sub"
	if err := r.db.QueryRowContext(ctx, countQuery, args...).Scan(&count); err != nil {
		return nil, 0, err
	}

	query += fmt.Sprintf(" ORDER BY created_on DESC LIMIT $%d OFFSET $%d", argIdx, argIdx+1)
	args = append(args, pageSize, offset)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	today := domain.Today()
	var rentals []domain.Rental
	for rows.Next() {
		rt, err := scanRental(rows)
		if err != nil {
			return nil, 0, err
		}
		rt.IsOverdue = rt.ComputeOverdue(today)
		rentals = append(rentals, *rt)
	}
	return rentals, count, rows.Err()
}

// ListBetween returns rentals whose booked interval touches [from, to],
// used by the admin calendar.
func (r *rentalRepository) ListBetween(ctx context.Context, from, to string) ([]domain.Rental, error) {
	query := `SELECT ` + rentalColumns + ` FROM rentals
	          WHERE rental_start_date <= $2 AND rental_end_date >= $1
	          ORDER BY rental_start_date`
	rows, err := r.db.QueryContext(ctx, query, from, to)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	today := domain.Today()
	var rentals []domain.Rental
	for rows.Next() {
		rt, err := scanRental(rows)
		if err != nil {
			return nil, err
		}
		rt.IsOverdue = rt.ComputeOverdue(today)
		rentals = append(rentals, *rt)
	}
	return rentals, rows.Err()
}

const conflictColumns = `rt.id, ri.product_id, rt.contract_number, c.name, rt.rental_start_date::text, rt.rental_end_date::text, rt.status`

func scanConflicts(rows *sql.Rows) ([]domain.ConflictingRental, error) {
	var out []domain.ConflictingRental
	for rows.Next() {
		var cr domain.ConflictingRental
		if err := rows.Scan(&cr.RentalID, &cr.ProductID, &cr.ContractNumber, &cr.CustomerName, &cr.StartDate, &cr.EndDate, &cr.Status); err != nil {
			return nil, err
		}
		out = append(out, cr)
	}
	return out, rows.Err()
}

// FindConflicts returns every active rental holding one of the candidate
// products whose interval overlaps [start, end]. The overlap test is
// rental.start <= end AND rental.end >= start (inclusive bounds).
func (r *rentalRepository) FindConflicts(ctx context.Context, productIDs []int32, start, end string, excludeRentalID *int32) ([]domain.ConflictingRental, error) {
	if len(productIDs) == 0 {
		return nil, nil
	}
	query := `SELECT ` + conflictColumns + `
	          FROM rentals rt
	          JOIN rental_items ri ON ri.rental_id = rt.id
	          JOIN customers c ON c.id = rt.customer_id
	          WHERE ri.product_id = ANY($1)
	            AND rt.status IN (` + activeStatusList + `)
	            AND rt.rental_start_date <= $2
	            AND rt.rental_end_date >= $3`
	args := []interface{}{pq.Array(productIDs), end, start}
	if excludeRentalID != nil {
		query += ` AND rt.id <> $4`
		args = append(args, *excludeRentalID)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanConflicts(rows)
}

// FindOverdue returns active rentals holding one of the candidate products
// whose end date is already in the past, regardless of the window being
// asked about. An overdue hold blocks the product until resolved.
func (r *rentalRepository) FindOverdue(ctx context.Context, productIDs []int32, today string, excludeRentalID *int32) ([]domain.ConflictingRental, error) {
	if len(productIDs) == 0 {
		return nil, nil
	}
	query := `SELECT ` + conflictColumns + `
	          FROM rentals rt
	          JOIN rental_items ri ON ri.rental_id = rt.id
	          JOIN customers c ON c.id = rt.customer_id
	          WHERE ri.product_id = ANY($1)
	            AND rt.status IN (` + activeStatusList + `)
	            AND rt.rental_end_date < $2`
	args := []interface{}{pq.Array(productIDs), today}
	if excludeRentalID != nil {
		query += ` AND rt.id <> $3`
		args = append(args, *excludeRentalID)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanConflicts(rows)
}

func (r *rentalRepository) ListOverdue(ctx context.Context, today string) ([]domain.Rental, error) {
	query := `SELECT ` + rentalColumns + ` FROM rentals
	          WHERE status IN (` + activeStatusList + `) AND rental_end_date < $1
	          ORDER BY rental_end_date`
	rows, err := r.db.QueryContext(ctx, query, today)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var rentals []domain.Rental
	for rows.Next() {
		rt, err := scanRental(rows)
		if err != nil {
			return nil, err
		}
		rt.IsOverdue = true
		rentals = append(rentals, *rt)
	}
	return rentals, rows.Err()
}

func (r *rentalRepository) ProductIDs(ctx context.Context, rentalID int32) ([]int32, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT product_id FROM rental_items WHERE rental_id = $1`, rentalID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ids []int32
	for rows.Next() {
		var id int32
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}
