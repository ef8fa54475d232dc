package migrations

import (
	"database/sql"
	"fmt"
	"path/filepath"
	"testing"

	_ "github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openDB(t *testing.T) *sql.DB {
	t.Helper()
	path := filepath.Join(t.TempDir(), "test.db")
	db, err := sql.Open("sqlite3", fmt.Sprintf("file:%s?_foreign_keys=on", path))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

func TestAutoMigrate_Idempotent(t *testing.T) {
	db := openDB(t)
	require.NoError(t, AutoMigrate(db))
	require.NoError(t, AutoMigrate(db))

	for _, table := range []string{"products", "product_variants", "orders"} {
		var count int
		require.NoError(t, db.QueryRow(`SELECT COUNT(*) FROM `+table).Scan(&count))
		assert.Equal(t, 0, count)
	}
}

func TestSeedIfEmpty_RunsOnce(t *testing.T) {
	db := openDB(t)
	require.NoError(t, AutoMigrate(db))

	seeded, err := SeedIfEmpty(db)
	require.NoError(t, err)
	assert.True(t, seeded)

	var products, variants int
	require.NoError(t, db.QueryRow(`SELECT COUNT(*) FROM products`).Scan(&products))
	require.NoError(t, db.QueryRow(`SELECT COUNT(*) FROM product_variants`).Scan(&variants))
	assert.Equal(t, 1, products)
	assert.Equal(t, 1, variants)

	seeded, err = SeedIfEmpty(db)
	require.NoError(t, err)
	assert.False(t, seeded, "non-empty store must not be reseeded")
}
