package postgres

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"

	"atelier-rental-backend/internal/domain"
)

func TestProductRepository_ReconcileStatuses(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("error opening mock database: %v", err)
	}
	defer db.Close()

	repo := NewProductRepository(db)
	ctx := context.Background()

	t.Run("SumsBothPasses", func(t *testing.T) {
		mock.ExpectExec("UPDATE products p SET status = 'rented'").
			WillReturnResult(sqlmock.NewResult(0, 2))
		mock.ExpectExec("UPDATE products p SET status = 'available'").
			WillReturnResult(sqlmock.NewResult(0, 3))

		corrected, err := repo.ReconcileStatuses(ctx)
		assert.NoError(t, err)
		assert.Equal(t, int64(5), corrected)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("FirstPassFailure", func(t *testing.T) {
		mock.ExpectExec("UPDATE products p SET status = 'rented'").
			WillReturnError(assert.AnError)

		_, err := repo.ReconcileStatuses(ctx)
		assert.Error(t, err)
	})
}

func TestProductRepository_SyncStatus(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("error opening mock database: %v", err)
	}
	defer db.Close()

	repo := NewProductRepository(db)
	ctx := context.Background()

	statusRows := func(status string, hasActive bool) *sqlmock.Rows {
		return sqlmock.NewRows([]string{"status", "exists"}).AddRow(status, hasActive)
	}

	t.Run("AvailableBecomesRented", func(t *testing.T) {
		mock.ExpectQuery("SELECT p.status, EXISTS").
			WithArgs(int32(1)).
			WillReturnRows(statusRows("available", true))
		mock.ExpectExec("UPDATE products SET status").
			WithArgs(domain.ProductStatusRented, sqlmock.AnyArg(), int32(1)).
			WillReturnResult(sqlmock.NewResult(0, 1))

		status, err := repo.SyncStatus(ctx, 1)
		assert.NoError(t, err)
		assert.Equal(t, domain.ProductStatusRented, status)
	})

	t.Run("RentedBecomesAvailable", func(t *testing.T) {
		mock.ExpectQuery("SELECT p.status, EXISTS").
			WithArgs(int32(2)).
			WillReturnRows(statusRows("rented", false))
		mock.ExpectExec("UPDATE products SET status").
			WithArgs(domain.ProductStatusAvailable, sqlmock.AnyArg(), int32(2)).
			WillReturnResult(sqlmock.NewResult(0, 1))

		status, err := repo.SyncStatus(ctx, 2)
		assert.NoError(t, err)
		assert.Equal(t, domain.ProductStatusAvailable, status)
	})

	t.Run("NoChangeNoWrite", func(t *testing.T) {
		mock.ExpectQuery("SELECT p.status, EXISTS").
			WithArgs(int32(3)).
			WillReturnRows(statusRows("rented", true))

		status, err := repo.SyncStatus(ctx, 3)
		assert.NoError(t, err)
		assert.Equal(t, domain.ProductStatusRented, status)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("MaintenanceNeverTouched", func(t *testing.T) {
		mock.ExpectQuery("SELECT p.status, EXISTS").
			WithArgs(int32(4)).
			WillReturnRows(statusRows("maintenance", true))

		status, err := repo.SyncStatus(ctx, 4)
		assert.NoError(t, err)
		assert.Equal(t, domain.ProductStatusMaintenance, status)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("NotFound", func(t *testing.T) {
		mock.ExpectQuery("SELECT p.status, EXISTS").
			WithArgs(int32(99)).
			WillReturnRows(sqlmock.NewRows([]string{"status", "exists"}))

		_, err := repo.SyncStatus(ctx, 99)
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})
}

func TestProductRepository_BulkMarkStatus(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("error opening mock database: %v", err)
	}
	defer db.Close()

	repo := NewProductRepository(db)
	ctx := context.Background()

	t.Run("SkipsMaintenanceRows", func(t *testing.T) {
		mock.ExpectExec(`status <> 'maintenance'`).
			WithArgs(domain.ProductStatusRented, sqlmock.AnyArg(), pq.Array([]int32{10, 11})).
			WillReturnResult(sqlmock.NewResult(0, 2))

		err := repo.BulkMarkStatus(ctx, []int32{10, 11}, domain.ProductStatusRented)
		assert.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("EmptyIDListNoQuery", func(t *testing.T) {
		err := repo.BulkMarkStatus(ctx, nil, domain.ProductStatusRented)
		assert.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestProductRepository_GetByID_NotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("error opening mock database: %v", err)
	}
	defer db.Close()

	repo := NewProductRepository(db)

	mock.ExpectQuery("SELECT (.+) FROM products WHERE id").
		WithArgs(int32(99)).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	_, err = repo.GetByID(context.Background(), 99)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
