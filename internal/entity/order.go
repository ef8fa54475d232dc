package entity

import "fmt"

// FormatOrderID renders the human-readable id shown to customers,
// e.g. order 1 -> "NV00001".
func FormatOrderID(id int) string {
	return fmt.Sprintf("NV%05d", id)
}

type Order struct {
	ID        int    `json:"id"`
	ProductID int    `json:"product_id"`
	VariantID int    `json:"variant_id"`
	Name      string `json:"name"`
	Contact   string `json:"contact"`
	Method    string `json:"method"`
	Total     int    `json:"total"`
	Status    Status `json:"status"`
	CreatedAt string `json:"created_at"` // RFC 3339, server generated
}

// OrderDetail is an order joined with its product and variant names,
// the shape the admin list and the order lookup endpoints return.
type OrderDetail struct {
	Order
	ProductName  string `json:"product_name"`
	VariantTitle string `json:"variant_title"`
	FormattedID  string `json:"formattedId"`
}

/*
SQLite schema:

CREATE TABLE orders (
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

Orders are never deleted; only their status changes.
*/
