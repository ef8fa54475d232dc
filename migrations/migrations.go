package migrations

import (
	"database/sql"
)

// AutoMigrate creates the products, product_variants and orders tables if
// they do not exist.
func AutoMigrate(db *sql.DB) error {
	query := `
		CREATE TABLE IF NOT EXISTS products (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			name TEXT,
			category TEXT,
			image TEXT,
			stock INTEGER DEFAULT 0
		);

		CREATE TABLE IF NOT EXISTS product_variants (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			product_id INTEGER,
			title TEXT,
			price INTEGER,
			stock INTEGER DEFAULT 0,
			FOREIGN KEY(product_id) REFERENCES products(id) ON DELETE CASCADE
		);

		CREATE TABLE IF NOT EXISTS orders (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			product_id INTEGER,
			variant_id INTEGER,
			name TEXT,
			contact TEXT,
			method TEXT,
			total INTEGER,
			status TEXT DEFAULT 'pending',
			created_at TEXT
		);
	`
	_, err := db.Exec(query)
	return err
}

// SeedIfEmpty inserts one sample product with a single variant when the
// products table has no rows. Returns whether seeding ran.
func SeedIfEmpty(db *sql.DB) (bool, error) {
	var count int
	if err := db.QueryRow(`SELECT COUNT(*) FROM products`).Scan(&count); err != nil {
		return false, err
	}
	if count > 0 {
		return false, nil
	}

	res, err := db.Exec(
		`INSERT INTO products (name, category, image, stock) VALUES (?, ?, ?, ?)`,
		"Contoh Produk", "Kategori", "img/placeholder.png", 10,
	)
	if err != nil {
		return false, err
	}
	productID, err := res.LastInsertId()
	if err != nil {
		return false, err
	}

	_, err = db.Exec(
		`INSERT INTO product_variants (product_id, title, price, stock) VALUES (?, ?, ?, ?)`,
		productID, "Varian Contoh", 10000, 10,
	)
	if err != nil {
		return false, err
	}

	return true, nil
}
