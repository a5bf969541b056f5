package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"atelier-rental-backend/internal/domain"
	"atelier-rental-backend/internal/repository"
)

type bannerRepository struct {
	db *sql.DB
}

func NewBannerRepository(db *sql.DB) repository.BannerRepository {
	return &bannerRepository{db: db}
}

const bannerColumns = `id, title, image_path, link_url, display_order, is_active, created_on, updated_on`

func (r *bannerRepository) Create(ctx context.Context, b *domain.Banner) error {
	query := `INSERT INTO banners (title, image_path, link_url, display_order, is_active, created_on, updated_on)
	          VALUES ($1, $2, $3, $4, $5, $6, $7) RETURNING id`
	now := time.Now()
	return r.db.QueryRowContext(ctx, query, b.Title, b.ImagePath, b.LinkURL, b.DisplayOrder, b.IsActive, now, now).Scan(&b.ID)
}

func (r *bannerRepository) GetByID(ctx context.Context, id int32) (*domain.Banner, error) {
	b := &domain.Banner{}
	err := r.db.QueryRowContext(ctx, `SELECT `+bannerColumns+` FROM banners WHERE id = $1`, id).
		Scan(&b.ID, &b.Title, &b.ImagePath, &b.LinkURL, &b.DisplayOrder, &b.IsActive, &b.CreatedOn, &b.UpdatedOn)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	return b, err
}

func (r *bannerRepository) Update(ctx context.Context, b *domain.Banner) error {
	query := `UPDATE banners SET title=$1, image_path=$2, link_url=$3, display_order=$4, is_active=$5, updated_on=$6 WHERE id=$7`
	res, err := r.db.ExecContext(ctx, query, b.Title, b.ImagePath, b.LinkURL, b.DisplayOrder, b.IsActive, time.Now(), b.ID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *bannerRepository) Delete(ctx context.Context, id int32) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM banners WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *bannerRepository) List(ctx context.Context, activeOnly bool) ([]domain.Banner, error) {
	query := `SELECT ` + bannerColumns + ` FROM banners`
	if activeOnly {
		query += ` WHERE is_active = true`
	}
	query += ` ORDER BY display_order, id`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var banners []domain.Banner
	for rows.Next() {
		var b domain.Banner
		if err := rows.Scan(&b.ID, &b.Title, &b.ImagePath, &b.LinkURL, &b.DisplayOrder, &b.IsActive, &b.CreatedOn, &b.UpdatedOn); err != nil {
			return nil, err
		}
		banners = append(banners, b)
	}
	return banners, rows.Err()
}
