package repository

import (
	"context"
	"database/sql"
	"errors"

	"storefront/internal/entity"
)

var (
	ErrOrderNotFound = errors.New("order not found")
	ErrOutOfStock    = errors.New("variant out of stock")
)

type OrderRepository struct {
	db *sql.DB
}

func NewOrderRepository(db *sql.DB) *OrderRepository {
	return &OrderRepository{db}
}

// decrementVariantStock takes one unit off a variant, refusing to go below
// zero. The guard doubles as the compare-and-swap against concurrent
// decrements: whichever transaction lands second sees the updated row.
func decrementVariantStock(ctx context.Context, ex execer, variantID int) error {
	res, err := ex.ExecContext(ctx,
		`UPDATE product_variants SET stock = stock - 1 WHERE id = ? AND stock > 0`, variantID)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrOutOfStock
	}
	return nil
}

// CreateOrder inserts the order with status pending. When decrement is set
// the variant loses one unit and the product aggregate is resynced in the
// same transaction; the order is not created if the variant is out of stock.
func (r *OrderRepository) CreateOrder(ctx context.Context, order *entity.Order, decrement bool) (stockAdjusted bool, err error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return false, err
	}

	query := `INSERT INTO orders (product_id, variant_id, name, contact, method, total, status, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`
	res, err := tx.ExecContext(ctx, query,
		order.ProductID, order.VariantID, order.Name, order.Contact, order.Method,
		order.Total, string(entity.StatusPending), order.CreatedAt)
	if err != nil {
		tx.Rollback()
		return false, err
	}

	orderID, err := res.LastInsertId()
	if err != nil {
		tx.Rollback()
		return false, err
	}

	if decrement {
		if err := decrementVariantStock(ctx, tx, order.VariantID); err != nil {
			tx.Rollback()
			return false, err
		}
		if err := syncProductStock(ctx, tx, order.ProductID); err != nil {
			tx.Rollback()
			return false, err
		}
	}

	if err := tx.Commit(); err != nil {
		return false, err
	}

	order.ID = int(orderID)
	order.Status = entity.StatusPending
	return decrement, nil
}

const orderDetailColumns = `
	o.id, o.product_id, o.variant_id, o.name, o.contact, o.method,
	o.total, o.status, o.created_at,
	COALESCE(p.name, ''), COALESCE(v.title, '')`

func scanOrderDetail(row interface{ Scan(...any) error }) (*entity.OrderDetail, error) {
	detail := &entity.OrderDetail{}
	err := row.Scan(
		&detail.ID, &detail.ProductID, &detail.VariantID, &detail.Name, &detail.Contact,
		&detail.Method, &detail.Total, &detail.Status, &detail.CreatedAt,
		&detail.ProductName, &detail.VariantTitle)
	if err != nil {
		return nil, err
	}
	detail.FormattedID = entity.FormatOrderID(detail.ID)
	return detail, nil
}

func (r *OrderRepository) GetOrderByID(ctx context.Context, id int) (*entity.OrderDetail, error) {
	query := `
		SELECT ` + orderDetailColumns + `
		FROM orders o
		LEFT JOIN products p ON p.id = o.product_id
		LEFT JOIN product_variants v ON v.id = o.variant_id
		WHERE o.id = ?`
	detail, err := scanOrderDetail(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrOrderNotFound
		}
		return nil, err
	}
	return detail, nil
}

// GetOrders returns every order joined with product and variant names,
// newest first.
func (r *OrderRepository) GetOrders(ctx context.Context) ([]*entity.OrderDetail, error) {
	query := `
		SELECT ` + orderDetailColumns + `
		FROM orders o
		LEFT JOIN products p ON p.id = o.product_id
		LEFT JOIN product_variants v ON v.id = o.variant_id
		ORDER BY o.id DESC`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var orders []*entity.OrderDetail
	for rows.Next() {
		detail, err := scanOrderDetail(rows)
		if err != nil {
			return nil, err
		}
		orders = append(orders, detail)
	}

	return orders, rows.Err()
}

// UpdateOrderStatus sets the order's status. When decrement is set the
// linked variant loses one unit and the product aggregate is resynced, all
// in one transaction so a failed decrement rolls the status change back.
func (r *OrderRepository) UpdateOrderStatus(ctx context.Context, id int, status entity.Status, decrement bool) (updated int64, stockAdjusted bool, err error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, false, err
	}

	var productID, variantID int
	err = tx.QueryRowContext(ctx, `SELECT product_id, variant_id FROM orders WHERE id = ?`, id).
		Scan(&productID, &variantID)
	if err != nil {
		tx.Rollback()
		if errors.Is(err, sql.ErrNoRows) {
			return 0, false, ErrOrderNotFound
		}
		return 0, false, err
	}

	res, err := tx.ExecContext(ctx, `UPDATE orders SET status = ? WHERE id = ?`, string(status), id)
	if err != nil {
		tx.Rollback()
		return 0, false, err
	}
	updated, err = res.RowsAffected()
	if err != nil {
		tx.Rollback()
		return 0, false, err
	}

	if decrement {
		if err := decrementVariantStock(ctx, tx, variantID); err != nil {
			tx.Rollback()
			return 0, false, err
		}
		if err := syncProductStock(ctx, tx, productID); err != nil {
			tx.Rollback()
			return 0, false, err
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, false, err
	}

	return updated, decrement, nil
}
