package postgres

import (
	"context"
	"database/sql"
	"time"

	"atelier-rental-backend/internal/domain"
	"atelier-rental-backend/internal/repository"
)

type attributeRepository struct {
	db *sql.DB
}

func NewAttributeRepository(db *sql.DB) repository.AttributeRepository {
	return &attributeRepository{db: db}
}

func (r *attributeRepository) Create(ctx context.Context, a *domain.Attribute) error {
	// (kind, value) carries a unique constraint; duplicates surface as
	// domain.ErrDuplicateValue.
	query := `INSERT INTO attributes (kind, label, value, created_on) VALUES ($1, $2, $3, $4) RETURNING id`
	err := r.db.QueryRowContext(ctx, query, a.Kind, a.Label, a.Value, time.Now()).Scan(&a.ID)
	return mapUniqueViolation(err)
}

func (r *attributeRepository) Delete(ctx context.Context, id int32) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM attributes WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *attributeRepository) ListByKind(ctx context.Context, kind domain.AttributeKind) ([]domain.Attribute, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id, kind, label, value, created_on FROM attributes WHERE kind = $1 ORDER BY label`, kind)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var attrs []domain.Attribute
	for rows.Next() {
		var a domain.Attribute
		if err := rows.Scan(&a.ID, &a.Kind, &a.Label, &a.Value, &a.CreatedOn); err != nil {
			return nil, err
		}
		attrs = append(attrs, a)
	}
	return attrs, rows.Err()
}
