package service

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"atelier-rental-backend/internal/domain"
	"atelier-rental-backend/internal/logger"
	"atelier-rental-backend/internal/repository"
	"atelier-rental-backend/internal/storage"
)

type imageService struct {
	productRepo  repository.ProductRepository
	store        storage.StorageInterface
	allowedTypes map[string]bool
	invalidator  CacheInvalidator
}

func NewImageService(productRepo repository.ProductRepository, store storage.StorageInterface, allowedTypes []string, invalidator CacheInvalidator) ImageService {
	allowed := make(map[string]bool, len(allowedTypes))
	for _, t := range allowedTypes {
		allowed[t] = true
	}
	return &imageService{
		productRepo:  productRepo,
		store:        store,
		allowedTypes: allowed,
		invalidator:  invalidator,
	}
}

func objectKey(prefix, fileName string) string {
	ext := strings.ToLower(filepath.Ext(fileName))
	return fmt.Sprintf("%s/%s%s", prefix, uuid.NewString(), ext)
}

func (s *imageService) UploadProductImage(ctx context.Context, productID int32, fileName, contentType string, file io.Reader) (*domain.ProductImage, error) {
	if !s.allowedTypes[contentType] {
		return nil, fmt.Errorf("%w: content type %q not allowed", domain.ErrInvalidInput, contentType)
	}
	product, err := s.productRepo.GetByID(ctx, productID)
	if err != nil {
		return nil, err
	}

	key := objectKey(fmt.Sprintf("products/%d", productID), fileName)
	size, err := s.store.SaveFile(ctx, key, file)
	if err != nil {
		return nil, fmt.Errorf("store image: %w", err)
	}

	img := &domain.ProductImage{
		ProductID: productID,
		FileName:  fileName,
		FilePath:  key,
		FileSize:  size,
		MimeType:  contentType,
		// First image becomes primary automatically.
		IsPrimary:    len(product.Images) == 0,
		DisplayOrder: int32(len(product.Images)),
	}
	if err := s.productRepo.CreateImage(ctx, img); err != nil {
		// Don't leave an orphaned blob behind.
		if delErr := s.store.DeleteFile(ctx, key); delErr != nil {
			logger.Error("Failed to clean up orphaned image blob", "key", key, "error", delErr)
		}
		return nil, err
	}

	s.invalidator.InvalidateCatalog(ctx)
	return img, nil
}

func (s *imageService) DeleteProductImage(ctx context.Context, imageID int32) error {
	img, err := s.productRepo.GetImageByID(ctx, imageID)
	if err != nil {
		return err
	}
	if err := s.productRepo.DeleteImage(ctx, imageID); err != nil {
		return err
	}
	if err := s.store.DeleteFile(ctx, img.FilePath); err != nil {
		logger.Error("Failed to delete image blob", "key", img.FilePath, "error", err)
	}
	s.invalidator.InvalidateCatalog(ctx)
	return nil
}

func (s *imageService) SetPrimaryImage(ctx context.Context, productID, imageID int32) error {
	if err := s.productRepo.SetPrimaryImage(ctx, productID, imageID); err != nil {
		return err
	}
	s.invalidator.InvalidateCatalog(ctx)
	return nil
}
