// Package sqlite implements a SQLite storage backend for the product
// catalog. The database holds the catalog rows in display order plus a log
// of saves; each Save replaces the rows in a single transaction.
package sqlite

import (
	"database/sql"
	"errors"
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/mesh-intelligence/stockroom/internal/paths"
	"github.com/mesh-intelligence/stockroom/pkg/types"
)

// DBFileName is the database file created in the data directory.
const DBFileName = "stockroom.db"

// ErrNoSaves is returned by LastSave when the catalog was never saved.
var ErrNoSaves = errors.New("no saves recorded")

// SaveInfo describes one recorded Save.
type SaveInfo struct {
	SaveID       string    `json:"save_id"`
	SavedAt      time.Time `json:"saved_at"`
	ProductCount int       `json:"product_count"`
}

// Backend implements types.Inventory on a SQLite database.
type Backend struct {
	mu       sync.RWMutex
	attached bool
	config   types.Config
	path     string
	db       *sql.DB
}

var _ types.Inventory = (*Backend)(nil)

// NewBackend creates a new SQLite backend instance.
// The backend is not attached; call Attach with a Config to initialize.
func NewBackend() *Backend {
	return &Backend{}
}

// Attach opens (creating if needed) the database in config.DataDir and
// applies the schema. Existing rows are kept.
// Returns ErrAlreadyAttached if already attached.
func (b *Backend) Attach(config types.Config) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.attached {
		return types.ErrAlreadyAttached
	}

	if err := config.Validate(); err != nil {
		return err
	}

	dataDir := config.DataDir
	if dataDir == "" {
		dataDir = "."
	}
	if err := paths.EnsureDir(dataDir); err != nil {
		return err
	}

	dbPath := filepath.Join(dataDir, DBFileName)
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return fmt.Errorf("%w: opening database: %w", types.ErrStorage, err)
	}

	for _, ddl := range schemaDDL {
		if _, err := db.Exec(ddl); err != nil {
			db.Close()
			return fmt.Errorf("%w: applying schema: %w", types.ErrStorage, err)
		}
	}

	b.db = db
	b.config = config
	b.path = dbPath
	b.attached = true
	return nil
}

// Path returns the database file location, or "" when detached.
func (b *Backend) Path() string {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.path
}

// Detach closes the database. Idempotent.
func (b *Backend) Detach() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if !b.attached {
		return nil
	}

	if b.db != nil {
		if err := b.db.Close(); err != nil {
			return err
		}
		b.db = nil
	}

	b.attached = false
	b.path = ""
	return nil
}

// Load returns every product in stored order. A database that was never
// saved to yields an empty catalog.
func (b *Backend) Load() ([]types.Product, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	if !b.attached {
		return nil, types.ErrDetached
	}

	rows, err := b.db.Query(`SELECT id, name, category, price, quantity FROM products ORDER BY position`)
	if err != nil {
		return nil, fmt.Errorf("%w: querying products: %w", types.ErrStorage, err)
	}
	defer rows.Close()

	products := []types.Product{}
	for rows.Next() {
		var (
			p     types.Product
			price string
		)
		if err := rows.Scan(&p.ID, &p.Name, &p.Category, &price, &p.Quantity); err != nil {
			return nil, fmt.Errorf("%w: scanning product: %w", types.ErrStorage, err)
		}
		if p.Price, err = types.ParsePrice(price); err != nil {
			return nil, err
		}
		products = append(products, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: iterating products: %w", types.ErrStorage, err)
	}
	return products, nil
}

// Save replaces all stored products with products and records the save.
// Either every row is replaced or none is.
func (b *Backend) Save(products []types.Product) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if !b.attached {
		return types.ErrDetached
	}

	tx, err := b.db.Begin()
	if err != nil {
		return fmt.Errorf("%w: beginning save transaction: %w", types.ErrStorage, err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`DELETE FROM products`); err != nil {
		return fmt.Errorf("%w: clearing products: %w", types.ErrStorage, err)
	}

	stmt, err := tx.Prepare(`INSERT INTO products (position, id, name, category, price, quantity) VALUES (?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("%w: preparing insert: %w", types.ErrStorage, err)
	}
	defer stmt.Close()

	for i, p := range products {
		if _, err := stmt.Exec(i, p.ID, p.Name, p.Category, types.FormatPrice(p.Price), p.Quantity); err != nil {
			return fmt.Errorf("%w: inserting product %d: %w", types.ErrStorage, p.ID, err)
		}
	}

	if _, err := tx.Exec(
		`INSERT INTO saves (save_id, saved_at, product_count) VALUES (?, ?, ?)`,
		generateUUID(), time.Now().UTC().Format(time.RFC3339Nano), len(products),
	); err != nil {
		return fmt.Errorf("%w: recording save: %w", types.ErrStorage, err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("%w: committing save: %w", types.ErrStorage, err)
	}
	return nil
}

// LastSave returns the most recent save. Returns ErrNoSaves if there is none.
func (b *Backend) LastSave() (SaveInfo, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	if !b.attached {
		return SaveInfo{}, types.ErrDetached
	}

	var (
		info    SaveInfo
		savedAt string
	)
	err := b.db.QueryRow(
		`SELECT save_id, saved_at, product_count FROM saves ORDER BY rowid DESC LIMIT 1`,
	).Scan(&info.SaveID, &savedAt, &info.ProductCount)
	if errors.Is(err, sql.ErrNoRows) {
		return SaveInfo{}, ErrNoSaves
	}
	if err != nil {
		return SaveInfo{}, fmt.Errorf("%w: querying saves: %w", types.ErrStorage, err)
	}

	info.SavedAt, err = time.Parse(time.RFC3339Nano, savedAt)
	if err != nil {
		return SaveInfo{}, fmt.Errorf("parsing saved_at %q: %w", savedAt, err)
	}
	return info, nil
}

// generateUUID generates a new UUID v7 for save ids.
func generateUUID() string {
	id, err := uuid.NewV7()
	if err != nil {
		// Fallback to UUID v4 if v7 generation fails
		return uuid.New().String()
	}
	return id.String()
}
