package service

import (
	"context"

	"github.com/segmentio/kafka-go"

	"storefront/internal/config"
	"storefront/internal/entity"
	"storefront/internal/repository"
)

// AdminService carries the token-gated mutations: variant management and
// order status transitions.
type AdminService struct {
	productRepo repository.ProductRepository
	orderRepo   repository.OrderRepository
	catalog     *CatalogService
	kafkaWriter *kafka.Writer
	policy      config.StockPolicy
}

// NewAdminService creates a new instance of AdminService.
func NewAdminService(productRepo repository.ProductRepository, orderRepo repository.OrderRepository, catalog *CatalogService, kafkaWriter *kafka.Writer, policy config.StockPolicy) *AdminService {
	return &AdminService{
		productRepo: productRepo,
		orderRepo:   orderRepo,
		catalog:     catalog,
		kafkaWriter: kafkaWriter,
		policy:      policy,
	}
}

// ListOrders returns every order joined with product/variant names, newest
// first.
func (s *AdminService) ListOrders(ctx context.Context) ([]*entity.OrderDetail, error) {
	orders, err := s.orderRepo.GetOrders(ctx)
	if err != nil {
		logger.Error().Err(err).Msg("Error listing orders")
		return nil, err
	}
	return orders, nil
}

// UpdateVariant overwrites the variant's fields and resyncs the owning
// product's aggregate. Returns the number of rows changed.
func (s *AdminService) UpdateVariant(ctx context.Context, variant *entity.Variant) (int64, error) {
	updated, err := s.productRepo.UpdateVariant(ctx, variant)
	if err != nil {
		logger.Error().Err(err).Msgf("Error updating variant %d", variant.ID)
		return 0, err
	}
	s.catalog.InvalidateCache(ctx)
	return updated, nil
}

// AddVariant inserts a variant under the product and resyncs the aggregate.
func (s *AdminService) AddVariant(ctx context.Context, variant *entity.Variant) (*entity.Variant, error) {
	created, err := s.productRepo.CreateVariant(ctx, variant)
	if err != nil {
		logger.Error().Err(err).Msgf("Error adding variant to product %d", variant.ProductID)
		return nil, err
	}
	s.catalog.InvalidateCache(ctx)
	return created, nil
}

// DeleteVariant removes the variant and resyncs the owner it belonged to.
// Returns the number of rows deleted.
func (s *AdminService) DeleteVariant(ctx context.Context, id int) (int64, error) {
	deleted, err := s.productRepo.DeleteVariant(ctx, id)
	if err != nil {
		logger.Error().Err(err).Msgf("Error deleting variant %d", id)
		return 0, err
	}
	s.catalog.InvalidateCache(ctx)
	return deleted, nil
}

// SetOrderStatus normalizes the requested status (unknown values become
// pending) and updates the order. Under the on_paid policy a transition to
// paid also decrements the linked variant's stock and resyncs the product
// aggregate, atomically with the status change.
func (s *AdminService) SetOrderStatus(ctx context.Context, id int, requested string) (updated int64, stockAdjusted bool, err error) {
	status := entity.NormalizeStatus(requested)

	decrement := status == entity.StatusPaid && s.policy == config.DecrementOnPaid
	updated, stockAdjusted, err = s.orderRepo.UpdateOrderStatus(ctx, id, status, decrement)
	if err != nil {
		logger.Error().Err(err).Msgf("Error setting status %s on order %d", status, id)
		return 0, false, err
	}

	if stockAdjusted {
		s.catalog.InvalidateCache(ctx)
	}

	order := &entity.Order{ID: id, Status: status}
	if err := publishOrderEvent(ctx, s.kafkaWriter, order, string(status)); err != nil {
		logger.Error().Err(err).Msgf("Error publishing %s event for order %d", status, id)
	}

	return updated, stockAdjusted, nil
}
