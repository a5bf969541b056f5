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

const activeStatusList = `'pending', 'confirmed', 'in_progress'`

const productColumns = `id, name, sku, base_sku, parent_product_id, is_variant, status, quantity, price_cents, category_id, size_value, color_value, description, created_on, updated_on`

type productRepository struct {
	db *sql.DB
}

func NewProductRepository(db *sql.DB) repository.ProductRepository {
	return &productRepository{db: db}
}

func scanProduct(row interface{ Scan(...any) error }) (*domain.Product, error) {
	p := &domain.Product{}
	var parentID, categoryID sql.NullInt32
	err := row.Scan(&p.ID, &p.Name, &p.SKU, &p.BaseSKU, &parentID, &p.IsVariant, &p.Status, &p.Quantity, &p.PriceCents, &categoryID, &p.SizeValue, &p.ColorValue, &p.Description, &p.CreatedOn, &p.UpdatedOn)
	if err != nil {
		return nil, err
	}
	if parentID.Valid {
		v := parentID.Int32
		p.ParentProductID = &v
	}
	if categoryID.Valid {
		v := categoryID.Int32
		p.CategoryID = &v
	}
	return p, nil
}

func (r *productRepository) Create(ctx context.Context, p *domain.Product) error {
	query := `INSERT INTO products (name, sku, base_sku, parent_product_id, is_variant, status, quantity, price_cents, category_id, size_value, color_value, description, created_on, updated_on)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14) RETURNING id`
	logger.DatabaseCall("INSERT", "products", "name", p.Name)
	now := time.Now()
	err := r.db.QueryRowContext(ctx, query,
		p.Name, p.SKU, p.BaseSKU, p.ParentProductID, p.IsVariant, p.Status, p.Quantity,
		p.PriceCents, p.CategoryID, p.SizeValue, p.ColorValue, p.Description, now, now).Scan(&p.ID)
	logger.DatabaseResult("INSERT", 1, err, "productID", p.ID)
	return err
}

func (r *productRepository) GetByID(ctx context.Context, id int32) (*domain.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE id = $1`
	p, err := scanProduct(r.db.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	images, err := r.ListImages(ctx, id)
	if err != nil {
		return nil, err
	}
	p.Images = images
	return p, nil
}

func (r *productRepository) Update(ctx context.Context, p *domain.Product) error {
	query := `UPDATE products SET name=$1, sku=$2, base_sku=$3, parent_product_id=$4, is_variant=$5, status=$6, quantity=$7, price_cents=$8, category_id=$9, size_value=$10, color_value=$11, description=$12, updated_on=$13 WHERE id=$14`
	res, err := r.db.ExecContext(ctx, query,
		p.Name, p.SKU, p.BaseSKU, p.ParentProductID, p.IsVariant, p.Status, p.Quantity,
		p.PriceCents, p.CategoryID, p.SizeValue, p.ColorValue, p.Description, time.Now(), p.ID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *productRepository) Delete(ctx context.Context, id int32) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM products WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *productRepository) List(ctx context.Context, categoryID *int32, includeVariants bool, page, pageSize int32) ([]domain.Product, int32, error) {
	offset := (page - 1) * pageSize
	query := `SELECT ` + productColumns + ` FROM products WHERE 1=1`

	args := []interface{}{}
	argIdx := 1
	if categoryID != nil {
		query += fmt.Sprintf(" AND category_id = $%d", argIdx)
		args = append(args, *categoryID)
		argIdx++
	}
	if !includeVariants {
		query += " AND is_variant = false"
	}

	var count int32
	countQuery := "SELECT count(*) FROM (" + query + ") as sub"
	if err := r.db.QueryRowContext(ctx, countQuery, args...).Scan(&count); err != nil {
		return nil, 0, err
	}

	query += fmt.Sprintf(" ORDER BY name LIMIT $%d OFFSET $%d", argIdx, argIdx+1)
	args = append(args, pageSize, offset)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var products []domain.Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, 0, err
		}
		products = append(products, *p)
	}
	return products, count, rows.Err()
}

func (r *productRepository) ListVariants(ctx context.Context, parentID int32) ([]domain.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE parent_product_id = $1 ORDER BY size_value`
	rows, err := r.db.QueryContext(ctx, query, parentID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var products []domain.Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, err
		}
		products = append(products, *p)
	}
	return products, rows.Err()
}

// ListCatalog returns non-variant products for the public site, each with
// its primary image attached when one exists.
func (r *productRepository) ListCatalog(ctx context.Context, categorySlug string) ([]domain.Product, error) {
	query := `SELECT p.id, p.name, p.sku, p.base_sku, p.parent_product_id, p.is_variant, p.status, p.quantity, p.price_cents, p.category_id, p.size_value, p.color_value, p.description, p.created_on, p.updated_on,
	                 (SELECT pi.file_path FROM product_images pi WHERE pi.product_id = p.id AND pi.is_primary LIMIT 1)
	          FROM products p`
	args := []interface{}{}
	if categorySlug != "" {
		query += ` JOIN categories c ON c.id = p.category_id AND c.slug = $1`
		args = append(args, categorySlug)
	}
	query += ` WHERE p.is_variant = false ORDER BY p.name`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var products []domain.Product
	for rows.Next() {
		p := domain.Product{}
		var parentID, categoryID sql.NullInt32
		var primaryImage sql.NullString
		err := rows.Scan(&p.ID, &p.Name, &p.SKU, &p.BaseSKU, &parentID, &p.IsVariant, &p.Status, &p.Quantity, &p.PriceCents, &categoryID, &p.SizeValue, &p.ColorValue, &p.Description, &p.CreatedOn, &p.UpdatedOn, &primaryImage)
		if err != nil {
			return nil, err
		}
		if parentID.Valid {
			v := parentID.Int32
			p.ParentProductID = &v
		}
		if categoryID.Valid {
			v := categoryID.Int32
			p.CategoryID = &v
		}
		if primaryImage.Valid {
			p.Images = []domain.ProductImage{{ProductID: p.ID, FilePath: primaryImage.String, IsPrimary: true}}
		}
		products = append(products, p)
	}
	return products, rows.Err()
}

func (r *productRepository) UpdateStatus(ctx context.Context, id int32, status domain.ProductStatus) error {
	res, err := r.db.ExecContext(ctx, `UPDATE products SET status = $1, updated_on = $2 WHERE id = $3`, status, time.Now(), id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *productRepository) BulkMarkStatus(ctx context.Context, ids []int32, status domain.ProductStatus) error {
	if len(ids) == 0 {
		return nil
	}
	query := `UPDATE products SET status = $1, updated_on = $2 WHERE id = ANY($3) AND status <> 'maintenance'`
	_, err := r.db.ExecContext(ctx, query, status, time.Now(), pq.Array(ids))
	return err
}

// ReconcileStatuses runs the two bulk conditional updates that bring the
// cached status column back in line with the active rentals. Maintenance
// rows are untouched in both passes.
func (r *productRepository) ReconcileStatuses(ctx context.Context) (int64, error) {
	markRented := `
		UPDATE products p SET status = 'rented', updated_on = NOW()
		WHERE p.status = 'available'
		  AND EXISTS (
			SELECT 1 FROM rental_items ri
			JOIN rentals rt ON rt.id = ri.rental_id
			WHERE ri.product_id = p.id AND rt.status IN (` + activeStatusList + `))`

	markAvailable := `
		UPDATE products p SET status = 'available', updated_on = NOW()
		WHERE p.status = 'rented'
		  AND NOT EXISTS (
			SELECT 1 FROM rental_items ri
			JOIN rentals rt ON rt.id = ri.rental_id
			WHERE ri.product_id = p.id AND rt.status IN (` + activeStatusList + `))`

	var corrected int64
	res, err := r.db.ExecContext(ctx, markRented)
	if err != nil {
		return 0, fmt.Errorf("mark rented pass: %w", err)
	}
	n, _ := res.RowsAffected()
	corrected += n

	res, err = r.db.ExecContext(ctx, markAvailable)
	if err != nil {
		return corrected, fmt.Errorf("mark available pass: %w", err)
	}
	n, _ = res.RowsAffected()
	corrected += n

	return corrected, nil
}

func (r *productRepository) SyncStatus(ctx context.Context, id int32) (domain.ProductStatus, error) {
	query := `
		SELECT p.status, EXISTS (
			SELECT 1 FROM rental_items ri
			JOIN rentals rt ON rt.id = ri.rental_id
			WHERE ri.product_id = p.id AND rt.status IN (` + activeStatusList + `))
		FROM products p WHERE p.id = $1`

	var current domain.ProductStatus
	var hasActive bool
	err := r.db.QueryRowContext(ctx, query, id).Scan(&current, &hasActive)
	if errors.Is(err, sql.ErrNoRows) {
		return "", domain.ErrNotFound
	}
	if err != nil {
		return "", err
	}

	// Maintenance is manual-only; the reconciler never sets or clears it.
	if current == domain.ProductStatusMaintenance {
		return current, nil
	}

	want := domain.ProductStatusAvailable
	if hasActive {
		want = domain.ProductStatusRented
	}
	if want == current {
		return current, nil
	}
	if err := r.UpdateStatus(ctx, id, want); err != nil {
		return current, err
	}
	return want, nil
}

func (r *productRepository) CreateImage(ctx context.Context, img *domain.ProductImage) error {
	query := `INSERT INTO product_images (product_id, file_name, file_path, file_size, mime_type, is_primary, display_order, created_on)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8) RETURNING id`
	return r.db.QueryRowContext(ctx, query, img.ProductID, img.FileName, img.FilePath, img.FileSize, img.MimeType, img.IsPrimary, img.DisplayOrder, time.Now()).Scan(&img.ID)
}

func (r *productRepository) GetImageByID(ctx context.Context, imageID int32) (*domain.ProductImage, error) {
	img := &domain.ProductImage{}
	query := `SELECT id, product_id, file_name, file_path, file_size, mime_type, is_primary, display_order, created_on FROM product_images WHERE id = $1`
	err := r.db.QueryRowContext(ctx, query, imageID).Scan(&img.ID, &img.ProductID, &img.FileName, &img.FilePath, &img.FileSize, &img.MimeType, &img.IsPrimary, &img.DisplayOrder, &img.CreatedOn)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return img, nil
}

func (r *productRepository) ListImages(ctx context.Context, productID int32) ([]domain.ProductImage, error) {
	query := `SELECT id, product_id, file_name, file_path, file_size, mime_type, is_primary, display_order, created_on
	          FROM product_images WHERE product_id = $1 ORDER BY display_order, id`
	rows, err := r.db.QueryContext(ctx, query, productID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var images []domain.ProductImage
	for rows.Next() {
		var img domain.ProductImage
		if err := rows.Scan(&img.ID, &img.ProductID, &img.FileName, &img.FilePath, &img.FileSize, &img.MimeType, &img.IsPrimary, &img.DisplayOrder, &img.CreatedOn); err != nil {
			return nil, err
		}
		images = append(images, img)
	}
	return images, rows.Err()
}

func (r *productRepository) DeleteImage(ctx context.Context, imageID int32) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM product_images WHERE id = $1`, imageID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *productRepository) SetPrimaryImage(ctx context.Context, productID, imageID int32) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `UPDATE product_images SET is_primary = false WHERE product_id = $1`, productID); err != nil {
		return err
	}
	res, err := tx.ExecContext(ctx, `UPDATE product_images SET is_primary = true WHERE id = $1 AND product_id = $2`, imageID, productID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.ErrNotFound
	}
	return tx.Commit()
}
