package repository

import (
	"context"
	"database/sql"

	"storefront/internal/entity"
)

type ProductRepository struct {
	db *sql.DB
}

func NewProductRepository(db *sql.DB) *ProductRepository {
	return &ProductRepository{db}
}

type execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

// syncProductStock rewrites the cached aggregate on the product row as the
// sum of its variants' stock. Runs against either the DB or an open tx.
func syncProductStock(ctx context.Context, ex execer, productID int) error {
	query := `
		UPDATE products
		SET stock = (SELECT COALESCE(SUM(stock), 0) FROM product_variants WHERE product_id = ?)
		WHERE id = ?`
	_, err := ex.ExecContext(ctx, query, productID, productID)
	return err
}

// SyncProductStock recomputes one product's aggregate stock.
func (r *ProductRepository) SyncProductStock(ctx context.Context, productID int) error {
	return syncProductStock(ctx, r.db, productID)
}

// SyncAllProductStock refreshes the aggregate for every product in one pass.
func (r *ProductRepository) SyncAllProductStock(ctx context.Context) error {
	query := `
		UPDATE products
		SET stock = (SELECT COALESCE(SUM(stock), 0) FROM product_variants WHERE product_id = products.id)`
	_, err := r.db.ExecContext(ctx, query)
	return err
}

func (r *ProductRepository) GetProducts(ctx context.Context) ([]*entity.Product, error) {
	query := `SELECT id, name, category, image, stock FROM products ORDER BY id`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var products []*entity.Product
	for rows.Next() {
		var product entity.Product
		err := rows.Scan(&product.ID, &product.Name, &product.Category, &product.Image, &product.Stock)
		if err != nil {
			return nil, err
		}
		products = append(products, &product)
	}

	return products, rows.Err()
}

func (r *ProductRepository) GetProductByID(ctx context.Context, id int) (*entity.Product, error) {
	product := &entity.Product{}
	query := `SELECT id, name, category, image, stock FROM products WHERE id = ?`
	err := r.db.QueryRowContext(ctx, query, id).Scan(&product.ID, &product.Name, &product.Category, &product.Image, &product.Stock)
	if err != nil {
		return nil, err
	}
	return product, nil
}

func (r *ProductRepository) CreateProduct(ctx context.Context, product *entity.Product) (*entity.Product, error) {
	query := `INSERT INTO products (name, category, image, stock) VALUES (?, ?, ?, ?)`
	res, err := r.db.ExecContext(ctx, query, product.Name, product.Category, product.Image, product.Stock)
	if err != nil {
		return nil, err
	}

	id, err := res.LastInsertId()
	if err != nil {
		return nil, err
	}

	product.ID = int(id)
	return product, nil
}

// DeleteProduct removes a product; its variants go with it via the
// ON DELETE CASCADE foreign key.
func (r *ProductRepository) DeleteProduct(ctx context.Context, id int) error {
	query := `DELETE FROM products WHERE id = ?`
	_, err := r.db.ExecContext(ctx, query, id)
	return err
}

func (r *ProductRepository) GetVariants(ctx context.Context) ([]*entity.Variant, error) {
	query := `SELECT id, product_id, title, price, stock FROM product_variants ORDER BY id`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var variants []*entity.Variant
	for rows.Next() {
		var variant entity.Variant
		err := rows.Scan(&variant.ID, &variant.ProductID, &variant.Title, &variant.Price, &variant.Stock)
		if err != nil {
			return nil, err
		}
		variants = append(variants, &variant)
	}

	return variants, rows.Err()
}

func (r *ProductRepository) GetVariantByID(ctx context.Context, id int) (*entity.Variant, error) {
	variant := &entity.Variant{}
	query := `SELECT id, product_id, title, price, stock FROM product_variants WHERE id = ?`
	err := r.db.QueryRowContext(ctx, query, id).Scan(&variant.ID, &variant.ProductID, &variant.Title, &variant.Price, &variant.Stock)
	if err != nil {
		return nil, err
	}
	return variant, nil
}

// CreateVariant inserts a variant and resyncs the owning product's
// aggregate inside one transaction.
func (r *ProductRepository) CreateVariant(ctx context.Context, variant *entity.Variant) (*entity.Variant, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}

	query := `INSERT INTO product_variants (product_id, title, price, stock) VALUES (?, ?, ?, ?)`
	res, err := tx.ExecContext(ctx, query, variant.ProductID, variant.Title, variant.Price, variant.Stock)
	if err != nil {
		tx.Rollback()
		return nil, err
	}

	id, err := res.LastInsertId()
	if err != nil {
		tx.Rollback()
		return nil, err
	}

	if err := syncProductStock(ctx, tx, variant.ProductID); err != nil {
		tx.Rollback()
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}

	variant.ID = int(id)
	return variant, nil
}

// UpdateVariant overwrites title, price and stock, resyncing the owning
// product in the same transaction. Returns the number of rows changed.
func (r *ProductRepository) UpdateVariant(ctx context.Context, variant *entity.Variant) (int64, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, err
	}

	var productID int
	err = tx.QueryRowContext(ctx, `SELECT product_id FROM product_variants WHERE id = ?`, variant.ID).Scan(&productID)
	if err != nil {
		tx.Rollback()
		if err == sql.ErrNoRows {
			return 0, nil
		}
		return 0, err
	}

	query := `UPDATE product_variants SET title = ?, price = ?, stock = ? WHERE id = ?`
	res, err := tx.ExecContext(ctx, query, variant.Title, variant.Price, variant.Stock, variant.ID)
	if err != nil {
		tx.Rollback()
		return 0, err
	}

	updated, err := res.RowsAffected()
	if err != nil {
		tx.Rollback()
		return 0, err
	}

	if err := syncProductStock(ctx, tx, productID); err != nil {
		tx.Rollback()
		return 0, err
	}

	if err := tx.Commit(); err != nil {
		return 0, err
	}

	return updated, nil
}

// DeleteVariant looks up the owning product first so the aggregate can be
// resynced after the row is gone. Returns the number of rows deleted.
func (r *ProductRepository) DeleteVariant(ctx context.Context, id int) (int64, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, err
	}

	var productID int
	err = tx.QueryRowContext(ctx, `SELECT product_id FROM product_variants WHERE id = ?`, id).Scan(&productID)
	if err != nil {
		tx.Rollback()
		if err == sql.ErrNoRows {
			return 0, nil
		}
		return 0, err
	}

	res, err := tx.ExecContext(ctx, `DELETE FROM product_variants WHERE id = ?`, id)
	if err != nil {
		tx.Rollback()
		return 0, err
	}

	deleted, err := res.RowsAffected()
	if err != nil {
		tx.Rollback()
		return 0, err
	}

	if err := syncProductStock(ctx, tx, productID); err != nil {
		tx.Rollback()
		return 0, err
	}

	if err := tx.Commit(); err != nil {
		return 0, err
	}

	return deleted, nil
}
