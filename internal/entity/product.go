package entity

type Product struct {
	ID       int       `json:"id"`
	Name     string    `json:"name"`
	Category string    `json:"category"`
	Image    string    `json:"image"`
	Stock    int       `json:"stock"`
	Variants []Variant `json:"variants"`
}

type Variant struct {
	ID        int    `json:"id"`
	ProductID int    `json:"product_id"`
	Title     string `json:"title"`
	Price     int    `json:"price"` // smallest currency unit
	Stock     int    `json:"stock"`
}

/*
SQLite schema:

CREATE TABLE products (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	name TEXT,
	category TEXT,
	image TEXT,
	stock INTEGER DEFAULT 0
);

CREATE TABLE product_variants (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	product_id INTEGER,
	title TEXT,
	price INTEGER,
	stock INTEGER DEFAULT 0,
	FOREIGN KEY(product_id) REFERENCES products(id) ON DELETE CASCADE
);

products.stock is a cached aggregate of the variants' stock; the variant
rows are the source of truth.
*/
