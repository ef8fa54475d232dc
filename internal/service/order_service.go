package service

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/segmentio/kafka-go"

	"storefront/internal/config"
	"storefront/internal/entity"
	"storefront/internal/repository"
)

var (
	ErrVariantNotFound = errors.New("variant not found")
	ErrVariantMismatch = errors.New("variant does not belong to product")
)

// OrderService is the public write path: customers place orders and look
// them up by id.
type OrderService struct {
	orderRepo   repository.OrderRepository
	productRepo repository.ProductRepository
	kafkaWriter *kafka.Writer
	policy      config.StockPolicy
}

// NewOrderService creates a new instance of OrderService.
func NewOrderService(orderRepo repository.OrderRepository, productRepo repository.ProductRepository, kafkaWriter *kafka.Writer, policy config.StockPolicy) *OrderService {
	return &OrderService{
		orderRepo:   orderRepo,
		productRepo: productRepo,
		kafkaWriter: kafkaWriter,
		policy:      policy,
	}
}

// CreateOrder inserts a pending order with a server-generated timestamp.
// Under the on_create policy the variant's stock is decremented in the same
// transaction and the returned flag reports the adjustment.
func (s *OrderService) CreateOrder(ctx context.Context, order *entity.Order) (stockAdjusted bool, err error) {
	variant, err := s.productRepo.GetVariantByID(ctx, order.VariantID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return false, ErrVariantNotFound
		}
		logger.Error().Err(err).Msgf("Error looking up variant %d", order.VariantID)
		return false, err
	}
	if variant.ProductID != order.ProductID {
		return false, ErrVariantMismatch
	}

	order.CreatedAt = time.Now().UTC().Format(time.RFC3339)

	decrement := s.policy == config.DecrementOnCreate
	stockAdjusted, err = s.orderRepo.CreateOrder(ctx, order, decrement)
	if err != nil {
		logger.Error().Err(err).Msg("Error creating order")
		return false, err
	}

	if err := publishOrderEvent(ctx, s.kafkaWriter, order, "created"); err != nil {
		logger.Error().Err(err).Msgf("Error publishing created event for order %d", order.ID)
	}

	return stockAdjusted, nil
}

// GetOrder returns the order joined with product and variant names plus the
// formatted customer-facing id.
func (s *OrderService) GetOrder(ctx context.Context, id int) (*entity.OrderDetail, error) {
	detail, err := s.orderRepo.GetOrderByID(ctx, id)
	if err != nil {
		if !errors.Is(err, repository.ErrOrderNotFound) {
			logger.Error().Err(err).Msgf("Error getting order by ID %d", id)
		}
		return nil, err
	}
	return detail, nil
}

// publishOrderEvent emits the order to the order topic, keyed
// order-<event>-<id>. Best effort; callers log and move on.
func publishOrderEvent(ctx context.Context, writer *kafka.Writer, order *entity.Order, event string) error {
	// if env is set to test, return
	if os.Getenv("ENV") == "test" || writer == nil {
		return nil
	}

	orderJSON, err := json.Marshal(order)
	if err != nil {
		return err
	}

	msg := kafka.Message{
		Key:   []byte(fmt.Sprintf("order-%s-%d", event, order.ID)),
		Value: orderJSON,
	}

	return writer.WriteMessages(ctx, msg)
}
