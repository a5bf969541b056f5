package service

import (
	"context"
	"fmt"
	"strings"

	"atelier-rental-backend/internal/domain"
	"atelier-rental-backend/internal/repository"
)

type categoryService struct {
	categoryRepo  repository.CategoryRepository
	attributeRepo repository.AttributeRepository
	invalidator   CacheInvalidator
}

func NewCategoryService(categoryRepo repository.CategoryRepository, attributeRepo repository.AttributeRepository, invalidator CacheInvalidator) CategoryService {
	return &categoryService{
		categoryRepo:  categoryRepo,
		attributeRepo: attributeRepo,
		invalidator:   invalidator,
	}
}

func slugify(name string) string {
	slug := strings.ToLower(strings.TrimSpace(name))
	slug = strings.ReplaceAll(slug, " ", "-")
	return slug
}

func (s *categoryService) CreateCategory(ctx context.Context, c *domain.Category) error {
	if c.Name == "" {
		return fmt.Errorf("%w: category name is required", domain.ErrInvalidInput)
	}
	if c.Slug == "" {
		c.Slug = slugify(c.Name)
	}
	if err := s.categoryRepo.Create(ctx, c); err != nil {
		return err
	}
	s.invalidator.InvalidateCatalog(ctx)
	return nil
}

func (s *categoryService) UpdateCategory(ctx context.Context, c *domain.Category) error {
	if c.Slug == "" {
		c.Slug = slugify(c.Name)
	}
	if err := s.categoryRepo.Update(ctx, c); err != nil {
		return err
	}
	s.invalidator.InvalidateCatalog(ctx)
	return nil
}

func (s *categoryService) DeleteCategory(ctx context.Context, id int32) error {
	if err := s.categoryRepo.Delete(ctx, id); err != nil {
		return err
	}
	s.invalidator.InvalidateCatalog(ctx)
	return nil
}

func (s *categoryService) ListCategories(ctx context.Context) ([]domain.Category, error) {
	return s.categoryRepo.List(ctx)
}

func (s *categoryService) CreateAttribute(ctx context.Context, a *domain.Attribute) error {
	if a.Kind != domain.AttributeKindColor && a.Kind != domain.AttributeKindSize {
		return fmt.Errorf("%w: unknown attribute kind %q", domain.ErrInvalidInput, a.Kind)
	}
	if a.Label == "" {
		return fmt.Errorf("%w: attribute label is required", domain.ErrInvalidInput)
	}
	if a.Value == "" {
		a.Value = slugify(a.Label)
	}
	return s.attributeRepo.Create(ctx, a)
}

func (s *categoryService) DeleteAttribute(ctx context.Context, id int32) error {
	return s.attributeRepo.Delete(ctx, id)
}

func (s *categoryService) ListAttributes(ctx context.Context, kind domain.AttributeKind) ([]domain.Attribute, error) {
	return s.attributeRepo.ListByKind(ctx, kind)
}
