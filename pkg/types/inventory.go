package types

import "errors"

// Inventory is a storage backend for the product catalog. Callers attach to
// a backend, load the catalog into memory, save it back, and detach when done.
// The catalog itself is a plain []Product owned by the caller.
type Inventory interface {
	// Attach connects the Inventory to the backend described by config.
	// Creates the DataDir if it does not exist. Returns ErrAlreadyAttached
	// if called while already attached.
	Attach(config Config) error

	// Load reads the whole catalog. A catalog that was never saved loads
	// as an empty slice, not an error.
	Load() ([]Product, error)

	// Save replaces the persisted catalog with products.
	Save(products []Product) error

	// Detach releases backend resources. Idempotent: multiple calls succeed.
	Detach() error
}

// Inventory lifecycle errors.
var (
	ErrDetached        = errors.New("inventory is detached")
	ErrAlreadyAttached = errors.New("inventory is already attached")
)
