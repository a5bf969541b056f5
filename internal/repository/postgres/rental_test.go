package postgres

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"

	"atelier-rental-backend/internal/domain"
)

func TestRentalRepository_Create(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("error opening mock database: %v", err)
	}
	defer db.Close()

	repo := NewRentalRepository(db)
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		rental := &domain.Rental{
			CustomerID:   3,
			EventDate:    "2026-06-15",
			StartDate:    "2026-06-12",
			EndDate:      "2026-06-17",
			Status:       domain.RentalStatusPending,
			TotalCents:   90000,
			DepositCents: 20000,
		}
		items := []domain.RentalItem{{ProductID: 10, Quantity: 1}}

		mock.ExpectBegin()
		mock.ExpectQuery("SELECT generate_next_contract_number").
			WillReturnRows(sqlmock.NewRows([]string{"generate_next_contract_number"}).AddRow("CTR-0101"))
		mock.ExpectQuery("INSERT INTO rentals").
			WithArgs(rental.CustomerID, "CTR-0101", rental.EventDate, rental.StartDate, rental.EndDate, rental.Status, rental.TotalCents, rental.DepositCents, rental.Notes, sqlmock.AnyArg(), sqlmock.AnyArg()).
			WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(1))
		mock.ExpectQuery("INSERT INTO rental_items").
			WithArgs(int32(1), int32(10), int32(1)).
			WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(5))
		mock.ExpectCommit()

		err := repo.Create(ctx, rental, items)
		assert.NoError(t, err)
		assert.Equal(t, int32(1), rental.ID)
		assert.Equal(t, "CTR-0101", rental.ContractNumber)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("ItemInsertFailureRollsBack", func(t *testing.T) {
		rental := &domain.Rental{CustomerID: 3, StartDate: "2026-06-12", EndDate: "2026-06-17", Status: domain.RentalStatusPending}
		items := []domain.RentalItem{{ProductID: 10, Quantity: 1}}

		mock.ExpectBegin()
		mock.ExpectQuery("SELECT generate_next_contract_number").
			WillReturnRows(sqlmock.NewRows([]string{"generate_next_contract_number"}).AddRow("CTR-0102"))
		mock.ExpectQuery("INSERT INTO rentals").
			WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(2))
		mock.ExpectQuery("INSERT INTO rental_items").
			WillReturnError(assert.AnError)
		mock.ExpectRollback()

		err := repo.Create(ctx, rental, items)
		assert.Error(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestRentalRepository_Update(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("error opening mock database: %v", err)
	}
	defer db.Close()

	repo := NewRentalRepository(db)
	ctx := context.Background()

	rental := &domain.Rental{
		ID:         42,
		CustomerID: 3,
		EventDate:  "2026-06-15",
		StartDate:  "2026-06-12",
		EndDate:    "2026-06-18",
		Status:     domain.RentalStatusConfirmed,
	}
	items := []domain.RentalItem{{ProductID: 10, Quantity: 1}, {ProductID: 11, Quantity: 2}}

	mock.ExpectBegin()
	mock.ExpectExec("UPDATE rentals SET").
		WithArgs(rental.CustomerID, rental.EventDate, rental.StartDate, rental.EndDate, rental.Status, rental.TotalCents, rental.DepositCents, rental.Notes, sqlmock.AnyArg(), rental.ID).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("DELETE FROM rental_items WHERE rental_id").
		WithArgs(rental.ID).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery("INSERT INTO rental_items").
		WithArgs(int32(42), int32(10), int32(1)).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(7))
	mock.ExpectQuery("INSERT INTO rental_items").
		WithArgs(int32(42), int32(11), int32(2)).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(8))
	mock.ExpectCommit()

	err = repo.Update(ctx, rental, items)
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRentalRepository_Delete(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("error opening mock database: %v", err)
	}
	defer db.Close()

	repo := NewRentalRepository(db)
	ctx := context.Background()

	t.Run("ReturnsFormerProductIDs", func(t *testing.T) {
		mock.ExpectQuery("SELECT product_id FROM rental_items").
			WithArgs(int32(9)).
			WillReturnRows(sqlmock.NewRows([]string{"product_id"}).AddRow(10).AddRow(11))
		mock.ExpectExec("DELETE FROM rentals WHERE id").
			WithArgs(int32(9)).
			WillReturnResult(sqlmock.NewResult(0, 1))

		ids, err := repo.Delete(ctx, 9)
		assert.NoError(t, err)
		assert.Equal(t, []int32{10, 11}, ids)
	})

	t.Run("NotFound", func(t *testing.T) {
		mock.ExpectQuery("SELECT product_id FROM rental_items").
			WithArgs(int32(99)).
			WillReturnRows(sqlmock.NewRows([]string{"product_id"}))
		mock.ExpectExec("DELETE FROM rentals WHERE id").
			WithArgs(int32(99)).
			WillReturnResult(sqlmock.NewResult(0, 0))

		_, err := repo.Delete(ctx, 99)
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})
}

func conflictRows() *sqlmock.Rows {
	return sqlmock.NewRows([]string{"id", "product_id", "contract_number", "name", "rental_start_date", "rental_end_date", "status"})
}

func TestRentalRepository_FindConflicts(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("error opening mock database: %v", err)
	}
	defer db.Close()

	repo := NewRentalRepository(db)
	ctx := context.Background()

	t.Run("OverlapArgsOrder", func(t *testing.T) {
		// The window bounds bind as start <= $2 (requested end) and
		// end >= $3 (requested start).
		mock.ExpectQuery(`rt.rental_start_date <= \$2`).
			WithArgs(pq.Array([]int32{10}), "2026-06-17", "2026-06-12").
			WillReturnRows(conflictRows().AddRow(7, 10, "CTR-0007", "Ana", "2026-06-15", "2026-06-20", "pending"))

		conflicts, err := repo.FindConflicts(ctx, []int32{10}, "2026-06-12", "2026-06-17", nil)
		assert.NoError(t, err)
		assert.Len(t, conflicts, 1)
		assert.Equal(t, int32(7), conflicts[0].RentalID)
		assert.Equal(t, "CTR-0007", conflicts[0].ContractNumber)
		assert.Equal(t, domain.RentalStatusPending, conflicts[0].Status)
	})

	t.Run("ExcludeRentalID", func(t *testing.T) {
		excludeID := int32(42)
		mock.ExpectQuery(`rt.id <> \$4`).
			WithArgs(pq.Array([]int32{10}), "2026-06-17", "2026-06-12", excludeID).
			WillReturnRows(conflictRows())

		conflicts, err := repo.FindConflicts(ctx, []int32{10}, "2026-06-12", "2026-06-17", &excludeID)
		assert.NoError(t, err)
		assert.Empty(t, conflicts)
	})

	t.Run("OnlyActiveStatusesBlock", func(t *testing.T) {
		// Cancelled and completed rentals never hold inventory; the
		// query filters to the three active statuses.
		mock.ExpectQuery(`status IN \('pending', 'confirmed', 'in_progress'\)`).
			WithArgs(pq.Array([]int32{10}), "2026-06-17", "2026-06-12").
			WillReturnRows(conflictRows())

		conflicts, err := repo.FindConflicts(ctx, []int32{10}, "2026-06-12", "2026-06-17", nil)
		assert.NoError(t, err)
		assert.Empty(t, conflicts)
	})

	t.Run("EmptyProductList", func(t *testing.T) {
		conflicts, err := repo.FindConflicts(ctx, nil, "2026-06-12", "2026-06-17", nil)
		assert.NoError(t, err)
		assert.Nil(t, conflicts)
	})
}

func TestRentalRepository_FindOverdue(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("error opening mock database: %v", err)
	}
	defer db.Close()

	repo := NewRentalRepository(db)
	ctx := context.Background()

	mock.ExpectQuery(`rt.rental_end_date < \$2`).
		WithArgs(pq.Array([]int32{10, 11}), "2026-06-20").
		WillReturnRows(conflictRows().AddRow(4, 11, "CTR-0004", "Carla", "2026-05-28", "2026-06-02", "in_progress"))

	overdue, err := repo.FindOverdue(ctx, []int32{10, 11}, "2026-06-20", nil)
	assert.NoError(t, err)
	assert.Len(t, overdue, 1)
	assert.Equal(t, int32(11), overdue[0].ProductID)
	assert.Equal(t, domain.RentalStatusInProgress, overdue[0].Status)
}

func TestRentalRepository_ListOverdue(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("error opening mock database: %v", err)
	}
	defer db.Close()

	repo := NewRentalRepository(db)
	ctx := context.Background()

	rows := sqlmock.NewRows([]string{"id", "customer_id", "contract_number", "event_date", "rental_start_date", "rental_end_date", "status", "total_cents", "deposit_cents", "notes", "created_on", "updated_on"}).
		AddRow(3, 1, "CTR-0003", "2026-06-01", "2026-05-28", "2026-06-02", "in_progress", 50000, 10000, "", time.Now(), time.Now())

	mock.ExpectQuery(`rental_end_date < \$1`).
		WithArgs("2026-06-20").
		WillReturnRows(rows)

	rentals, err := repo.ListOverdue(ctx, "2026-06-20")
	assert.NoError(t, err)
	assert.Len(t, rentals, 1)
	assert.True(t, rentals[0].IsOverdue)
	assert.Equal(t, "2026-06-02", rentals[0].EndDate)
}
