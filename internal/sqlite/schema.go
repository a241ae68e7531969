package sqlite

// Schema DDL. Position keeps the catalog order; id is not unique because
// duplicate product ids are allowed.
const (
	createProducts = `CREATE TABLE IF NOT EXISTS products (
    position INTEGER PRIMARY KEY,
    id INTEGER NOT NULL,
    name TEXT NOT NULL,
    category TEXT NOT NULL,
    price TEXT NOT NULL,
    quantity INTEGER NOT NULL
);`

	createSaves = `CREATE TABLE IF NOT EXISTS saves (
    save_id TEXT PRIMARY KEY,
    saved_at TEXT NOT NULL,
    product_count INTEGER NOT NULL
);`
)

// Index DDL for lookups by product id.
const (
	idxProductsID = `CREATE INDEX IF NOT EXISTS idx_products_id ON products(id);`
)

// schemaDDL lists all CREATE statements in execution order.
var schemaDDL = []string{
	createProducts,
	createSaves,
	idxProductsID,
}
