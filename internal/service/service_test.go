package service

import (
	"context"
	"database/sql"
	"fmt"
	"path/filepath"
	"testing"

	_ "github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/require"

	"storefront/internal/config"
	"storefront/internal/entity"
	"storefront/internal/repository"
	"storefront/migrations"
)

func newTestDB(t *testing.T) *sql.DB {
	t.Helper()
	path := filepath.Join(t.TempDir(), "test.db")
	dsn := fmt.Sprintf("file:%s?_foreign_keys=on&_busy_timeout=5000&_txlock=immediate", path)
	db, err := sql.Open("sqlite3", dsn)
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	require.NoError(t, migrations.AutoMigrate(db))
	return db
}

type testEnv struct {
	db      *sql.DB
	catalog *CatalogService
	orders  *OrderService
	admin   *AdminService
}

func newTestEnv(t *testing.T, policy config.StockPolicy) *testEnv {
	t.Helper()
	t.Setenv("ENV", "test")

	db := newTestDB(t)
	productRepo := repository.NewProductRepository(db)
	orderRepo := repository.NewOrderRepository(db)

	catalog := NewCatalogService(*productRepo, nil)
	return &testEnv{
		db:      db,
		catalog: catalog,
		orders:  NewOrderService(*orderRepo, *productRepo, nil, policy),
		admin:   NewAdminService(*productRepo, *orderRepo, catalog, nil, policy),
	}
}

// seedCatalog inserts one product with one variant per given stock value.
func (e *testEnv) seedCatalog(t *testing.T, stocks ...int) (int, []int) {
	t.Helper()
	ctx := context.Background()
	db := e.db

	res, err := db.Exec(`INSERT INTO products (name, category, image, stock) VALUES (?, ?, ?, 0)`,
		"Produk", "Kategori", "img/p.png")
	require.NoError(t, err)
	productID64, err := res.LastInsertId()
	require.NoError(t, err)
	productID := int(productID64)

	var variantIDs []int
	repo := repository.NewProductRepository(db)
	for i, stock := range stocks {
		variant, err := repo.CreateVariant(ctx, &entity.Variant{
			ProductID: productID,
			Title:     fmt.Sprintf("Varian %d", i+1),
			Price:     10000,
			Stock:     stock,
		})
		require.NoError(t, err)
		variantIDs = append(variantIDs, variant.ID)
	}
	return productID, variantIDs
}

func (e *testEnv) placeOrder(t *testing.T, productID, variantID int) int {
	t.Helper()
	order := &entity.Order{
		ProductID: productID,
		VariantID: variantID,
		Name:      "Budi",
		Contact:   "0812",
		Method:    "transfer",
		Total:     10000,
	}
	_, err := e.orders.CreateOrder(context.Background(), order)
	require.NoError(t, err)
	return order.ID
}

func (e *testEnv) variantStock(t *testing.T, variantID int) int {
	t.Helper()
	var stock int
	require.NoError(t, e.db.QueryRow(`SELECT stock FROM product_variants WHERE id = ?`, variantID).Scan(&stock))
	return stock
}

func (e *testEnv) orderStatus(t *testing.T, orderID int) string {
	t.Helper()
	var status string
	require.NoError(t, e.db.QueryRow(`SELECT status FROM orders WHERE id = ?`, orderID).Scan(&status))
	return status
}
