package service

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/rs/zerolog"

	"storefront/internal/entity"
	"storefront/internal/repository"
)

var logger = zerolog.New(os.Stdout).With().Timestamp().Logger()

const (
	catalogCacheKey = "catalog:products"
	catalogCacheTTL = 1 * time.Minute
)

// CatalogService assembles the public product listing: every product with
// its variants nested, aggregates refreshed from the variant rows first.
type CatalogService struct {
	productRepo repository.ProductRepository
	rdb         *redis.Client
}

// NewCatalogService creates a new instance of CatalogService. rdb may be
// nil, which disables the listing cache.
func NewCatalogService(productRepo repository.ProductRepository, rdb *redis.Client) *CatalogService {
	return &CatalogService{productRepo: productRepo, rdb: rdb}
}

// ListProducts returns all products with their variants nested. The cached
// aggregate on each product row is rewritten from the variant rows before
// reading, so the listing never shows a stale sum.
func (s *CatalogService) ListProducts(ctx context.Context) ([]*entity.Product, error) {
	if cached, ok := s.readCache(ctx); ok {
		return cached, nil
	}

	if err := s.productRepo.SyncAllProductStock(ctx); err != nil {
		logger.Error().Err(err).Msg("Error syncing product stock aggregates")
		return nil, err
	}

	products, err := s.productRepo.GetProducts(ctx)
	if err != nil {
		logger.Error().Err(err).Msg("Error getting products")
		return nil, err
	}

	variants, err := s.productRepo.GetVariants(ctx)
	if err != nil {
		logger.Error().Err(err).Msg("Error getting product variants")
		return nil, err
	}

	byProduct := make(map[int]*entity.Product, len(products))
	for _, product := range products {
		product.Variants = []entity.Variant{}
		byProduct[product.ID] = product
	}
	for _, variant := range variants {
		if product, ok := byProduct[variant.ProductID]; ok {
			product.Variants = append(product.Variants, *variant)
		}
	}

	s.writeCache(ctx, products)
	return products, nil
}

func (s *CatalogService) readCache(ctx context.Context) ([]*entity.Product, bool) {
	if s.rdb == nil {
		return nil, false
	}
	cached, err := s.rdb.Get(ctx, catalogCacheKey).Result()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			logger.Error().Err(err).Msg("Error reading catalog from cache")
		}
		return nil, false
	}

	var products []*entity.Product
	if err := json.Unmarshal([]byte(cached), &products); err != nil {
		logger.Error().Err(err).Msg("Error unmarshalling cached catalog")
		return nil, false
	}
	return products, true
}

func (s *CatalogService) writeCache(ctx context.Context, products []*entity.Product) {
	if s.rdb == nil {
		return
	}
	payload, err := json.Marshal(products)
	if err != nil {
		logger.Error().Err(err).Msg("Error marshalling catalog for cache")
		return
	}
	if err := s.rdb.Set(ctx, catalogCacheKey, payload, catalogCacheTTL).Err(); err != nil {
		logger.Error().Err(err).Msg("Error setting catalog in cache")
	}
}

// InvalidateCache drops the cached listing after a variant mutation.
func (s *CatalogService) InvalidateCache(ctx context.Context) {
	if s.rdb == nil {
		return
	}
	if err := s.rdb.Del(ctx, catalogCacheKey).Err(); err != nil {
		logger.Error().Err(err).Msg("Error invalidating catalog cache")
	}
}
