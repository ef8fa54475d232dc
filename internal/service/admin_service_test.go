package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"storefront/internal/config"
	"storefront/internal/entity"
	"storefront/internal/repository"
)

func TestSetOrderStatus_PaidDecrementsOnce(t *testing.T) {
	env := newTestEnv(t, config.DecrementOnPaid)
	productID, variantIDs := env.seedCatalog(t, 10)
	orderID := env.placeOrder(t, productID, variantIDs[0])

	updated, stockAdjusted, err := env.admin.SetOrderStatus(context.Background(), orderID, "paid")
	require.NoError(t, err)

	assert.Equal(t, int64(1), updated)
	assert.True(t, stockAdjusted)
	assert.Equal(t, 9, env.variantStock(t, variantIDs[0]))
	assert.Equal(t, "paid", env.orderStatus(t, orderID))
}

func TestSetOrderStatus_NonPaidLeavesStock(t *testing.T) {
	env := newTestEnv(t, config.DecrementOnPaid)
	productID, variantIDs := env.seedCatalog(t, 10)
	orderID := env.placeOrder(t, productID, variantIDs[0])

	for _, status := range []string{"done", "canceled", "pending"} {
		_, stockAdjusted, err := env.admin.SetOrderStatus(context.Background(), orderID, status)
		require.NoError(t, err)
		assert.False(t, stockAdjusted)
	}
	assert.Equal(t, 10, env.variantStock(t, variantIDs[0]))
}

func TestSetOrderStatus_BogusStoredAsPending(t *testing.T) {
	env := newTestEnv(t, config.DecrementOnPaid)
	productID, variantIDs := env.seedCatalog(t, 10)
	orderID := env.placeOrder(t, productID, variantIDs[0])

	_, stockAdjusted, err := env.admin.SetOrderStatus(context.Background(), orderID, "bogus")
	require.NoError(t, err)

	assert.False(t, stockAdjusted)
	assert.Equal(t, "pending", env.orderStatus(t, orderID))
	assert.Equal(t, 10, env.variantStock(t, variantIDs[0]))
}

func TestSetOrderStatus_OnCreatePolicySkipsDecrement(t *testing.T) {
	env := newTestEnv(t, config.DecrementOnCreate)
	productID, variantIDs := env.seedCatalog(t, 10)
	orderID := env.placeOrder(t, productID, variantIDs[0])
	require.Equal(t, 9, env.variantStock(t, variantIDs[0]))

	// stock already went out at order creation; paid must not take another
	_, stockAdjusted, err := env.admin.SetOrderStatus(context.Background(), orderID, "paid")
	require.NoError(t, err)

	assert.False(t, stockAdjusted)
	assert.Equal(t, 9, env.variantStock(t, variantIDs[0]))
}

func TestSetOrderStatus_OrderNotFound(t *testing.T) {
	env := newTestEnv(t, config.DecrementOnPaid)
	env.seedCatalog(t, 10)

	_, _, err := env.admin.SetOrderStatus(context.Background(), 42, "paid")
	assert.ErrorIs(t, err, repository.ErrOrderNotFound)
}

func TestAddUpdateDeleteVariant_KeepAggregateInSync(t *testing.T) {
	env := newTestEnv(t, config.DecrementOnPaid)
	ctx := context.Background()
	productID, variantIDs := env.seedCatalog(t, 4)

	added, err := env.admin.AddVariant(ctx, &entity.Variant{ProductID: productID, Title: "Varian 2", Price: 15000, Stock: 6})
	require.NoError(t, err)
	require.NotZero(t, added.ID)

	products, err := env.catalog.ListProducts(ctx)
	require.NoError(t, err)
	require.Len(t, products, 1)
	assert.Equal(t, 10, products[0].Stock)
	assert.Len(t, products[0].Variants, 2)

	updated, err := env.admin.UpdateVariant(ctx, &entity.Variant{ID: added.ID, Title: "Varian 2", Price: 15000, Stock: 1})
	require.NoError(t, err)
	assert.Equal(t, int64(1), updated)

	deleted, err := env.admin.DeleteVariant(ctx, variantIDs[0])
	require.NoError(t, err)
	assert.Equal(t, int64(1), deleted)

	products, err = env.catalog.ListProducts(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, products[0].Stock)
	assert.Len(t, products[0].Variants, 1)
}

func TestListOrders_NewestFirst(t *testing.T) {
	env := newTestEnv(t, config.DecrementOnPaid)
	productID, variantIDs := env.seedCatalog(t, 10)
	first := env.placeOrder(t, productID, variantIDs[0])
	second := env.placeOrder(t, productID, variantIDs[0])

	orders, err := env.admin.ListOrders(context.Background())
	require.NoError(t, err)
	require.Len(t, orders, 2)
	assert.Equal(t, second, orders[0].ID)
	assert.Equal(t, first, orders[1].ID)
}
