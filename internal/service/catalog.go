package service

import (
	"context"
	"encoding/json"
	"time"

	"atelier-rental-backend/internal/cache"
	"atelier-rental-backend/internal/domain"
	"atelier-rental-backend/internal/logger"
	"atelier-rental-backend/internal/repository"
)

const catalogKeyPrefix = "catalog:"

// catalogService serves the public site reads through a cache-aside
// layer. A cache outage degrades to plain database reads, never errors.
type catalogService struct {
	productRepo  repository.ProductRepository
	categoryRepo repository.CategoryRepository
	bannerRepo   repository.BannerRepository
	cache        *cache.Client
	ttl          time.Duration
}

func NewCatalogService(
	productRepo repository.ProductRepository,
	categoryRepo repository.CategoryRepository,
	bannerRepo repository.BannerRepository,
	cacheClient *cache.Client,
	ttl time.Duration,
) CatalogService {
	return &catalogService{
		productRepo:  productRepo,
		categoryRepo: categoryRepo,
		bannerRepo:   bannerRepo,
		cache:        cacheClient,
		ttl:          ttl,
	}
}

func cachedList[T any](ctx context.Context, s *catalogService, key string, load func(context.Context) ([]T, error)) ([]T, error) {
	if s.cache != nil {
		if raw, ok, err := s.cache.Get(ctx, key); err != nil {
			logger.Warn("Catalog cache read failed", "key", key, "error", err)
		} else if ok {
			var out []T
			if err := json.Unmarshal([]byte(raw), &out); err == nil {
				return out, nil
			}
			logger.Warn("Catalog cache payload corrupt, reloading", "key", key)
		}
	}

	out, err := load(ctx)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		if raw, err := json.Marshal(out); err == nil {
			if err := s.cache.Set(ctx, key, string(raw), s.ttl); err != nil {
				logger.Warn("Catalog cache write failed", "key", key, "error", err)
			}
		}
	}
	return out, nil
}

func (s *catalogService) ListCatalogProducts(ctx context.Context, categorySlug string) ([]domain.Product, error) {
	key := catalogKeyPrefix + "products:" + categorySlug
	return cachedList(ctx, s, key, func(ctx context.Context) ([]domain.Product, error) {
		return s.productRepo.ListCatalog(ctx, categorySlug)
	})
}

func (s *catalogService) ListCategories(ctx context.Context) ([]domain.Category, error) {
	return cachedList(ctx, s, catalogKeyPrefix+"categories", s.categoryRepo.List)
}

func (s *catalogService) ListBanners(ctx context.Context) ([]domain.Banner, error) {
	key := catalogKeyPrefix + "banners"
	return cachedList(ctx, s, key, func(ctx context.Context) ([]domain.Banner, error) {
		return s.bannerRepo.List(ctx, true)
	})
}

func (s *catalogService) InvalidateCatalog(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.DeleteByPrefix(ctx, catalogKeyPrefix); err != nil {
		logger.Warn("Catalog cache invalidation failed", "error", err)
	}
}
