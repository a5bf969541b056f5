package service

import (
	"context"
	"fmt"
	"io"

	"atelier-rental-backend/internal/domain"
	"atelier-rental-backend/internal/logger"
	"atelier-rental-backend/internal/repository"
	"atelier-rental-backend/internal/storage"
)

type bannerService struct {
	bannerRepo  repository.BannerRepository
	store       storage.StorageInterface
	invalidator CacheInvalidator
}

func NewBannerService(bannerRepo repository.BannerRepository, store storage.StorageInterface, invalidator CacheInvalidator) BannerService {
	return &bannerService{
		bannerRepo:  bannerRepo,
		store:       store,
		invalidator: invalidator,
	}
}

func (s *bannerService) CreateBanner(ctx context.Context, b *domain.Banner, fileName, contentType string, file io.Reader) error {
	if b.Title == "" {
		return fmt.Errorf("%w: banner title is required", domain.ErrInvalidInput)
	}
	if file != nil {
		key := objectKey("banners", fileName)
		if _, err := s.store.SaveFile(ctx, key, file); err != nil {
			return fmt.Errorf("store banner image: %w", err)
		}
		b.ImagePath = key
	}
	if b.ImagePath == "" {
		return fmt.Errorf("%w: banner image is required", domain.ErrInvalidInput)
	}

	if err := s.bannerRepo.Create(ctx, b); err != nil {
		if b.ImagePath != "" && file != nil {
			if delErr := s.store.DeleteFile(ctx, b.ImagePath); delErr != nil {
				logger.Error("Failed to clean up banner blob", "key", b.ImagePath, "error", delErr)
			}
		}
		return err
	}
	s.invalidator.InvalidateCatalog(ctx)
	return nil
}

func (s *bannerService) UpdateBanner(ctx context.Context, b *domain.Banner) error {
	if err := s.bannerRepo.Update(ctx, b); err != nil {
		return err
	}
	s.invalidator.InvalidateCatalog(ctx)
	return nil
}

func (s *bannerService) DeleteBanner(ctx context.Context, id int32) error {
	b, err := s.bannerRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if err := s.bannerRepo.Delete(ctx, id); err != nil {
		return err
	}
	if b.ImagePath != "" {
		if err := s.store.DeleteFile(ctx, b.ImagePath); err != nil {
			logger.Error("Failed to delete banner blob", "key", b.ImagePath, "error", err)
		}
	}
	s.invalidator.InvalidateCatalog(ctx)
	return nil
}

func (s *bannerService) ListBanners(ctx context.Context, activeOnly bool) ([]domain.Banner, error) {
	return s.bannerRepo.List(ctx, activeOnly)
}
