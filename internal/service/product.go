package service

import (
	"context"
	"fmt"

	"atelier-rental-backend/internal/domain"
	"atelier-rental-backend/internal/repository"
)

type productService struct {
	productRepo repository.ProductRepository
	invalidator CacheInvalidator
}

func NewProductService(productRepo repository.ProductRepository, invalidator CacheInvalidator) ProductService {
	return &productService{
		productRepo: productRepo,
		invalidator: invalidator,
	}
}

// validateVariant enforces that a variant points at an existing
// non-variant parent.
func (s *productService) validateVariant(ctx context.Context, p *domain.Product) error {
	if !p.IsVariant {
		if p.ParentProductID != nil {
			return fmt.Errorf("%w: only variants may reference a parent product", domain.ErrInvalidInput)
		}
		return nil
	}
	if p.ParentProductID == nil {
		return fmt.Errorf("%w: variant requires a parent product", domain.ErrInvalidInput)
	}
	parent, err := s.productRepo.GetByID(ctx, *p.ParentProductID)
	if err != nil {
		return fmt.Errorf("load parent product: %w", err)
	}
	if parent.IsVariant {
		return fmt.Errorf("%w: parent product must not itself be a variant", domain.ErrInvalidInput)
	}
	return nil
}

func (s *productService) CreateProduct(ctx context.Context, p *domain.Product) error {
	if p.Name == "" {
		return fmt.Errorf("%w: product name is required", domain.ErrInvalidInput)
	}
	if err := s.validateVariant(ctx, p); err != nil {
		return err
	}
	if p.Status == "" {
		p.Status = domain.ProductStatusAvailable
	}
	if p.Quantity <= 0 {
		p.Quantity = 1
	}
	if err := s.productRepo.Create(ctx, p); err != nil {
		return err
	}
	s.invalidator.InvalidateCatalog(ctx)
	return nil
}

func (s *productService) GetProduct(ctx context.Context, id int32) (*domain.Product, []domain.Product, error) {
	p, err := s.productRepo.GetByID(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	var variants []domain.Product
	if !p.IsVariant {
		variants, err = s.productRepo.ListVariants(ctx, id)
		if err != nil {
			return nil, nil, err
		}
	}
	return p, variants, nil
}

func (s *productService) UpdateProduct(ctx context.Context, p *domain.Product) error {
	if err := s.validateVariant(ctx, p); err != nil {
		return err
	}
	if err := s.productRepo.Update(ctx, p); err != nil {
		return err
	}
	s.invalidator.InvalidateCatalog(ctx)
	return nil
}

func (s *productService) DeleteProduct(ctx context.Context, id int32) error {
	variants, err := s.productRepo.ListVariants(ctx, id)
	if err != nil {
		return err
	}
	if len(variants) > 0 {
		return fmt.Errorf("%w: product still has %d size variants", domain.ErrConflict, len(variants))
	}
	if err := s.productRepo.Delete(ctx, id); err != nil {
		return err
	}
	s.invalidator.InvalidateCatalog(ctx)
	return nil
}

func (s *productService) ListProducts(ctx context.Context, categoryID *int32, includeVariants bool, page, pageSize int32) ([]domain.Product, int32, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 200 {
		pageSize = 50
	}
	return s.productRepo.List(ctx, categoryID, includeVariants, page, pageSize)
}

// SetProductStatus is the manual override path: it is the only way to put
// a product in or out of maintenance.
func (s *productService) SetProductStatus(ctx context.Context, id int32, status domain.ProductStatus) error {
	switch status {
	case domain.ProductStatusAvailable, domain.ProductStatusRented, domain.ProductStatusMaintenance:
	default:
		return fmt.Errorf("%w: unknown product status %q", domain.ErrInvalidInput, status)
	}
	if err := s.productRepo.UpdateStatus(ctx, id, status); err != nil {
		return err
	}
	s.invalidator.InvalidateCatalog(ctx)
	return nil
}
