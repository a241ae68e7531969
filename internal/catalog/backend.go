package catalog

import (
	"path/filepath"
	"sync"

	"github.com/mesh-intelligence/stockroom/internal/paths"
	"github.com/mesh-intelligence/stockroom/pkg/types"
)

// FileBackend implements types.Inventory over a single catalog file in the
// data directory.
type FileBackend struct {
	mu       sync.Mutex
	attached bool
	path     string
}

var _ types.Inventory = (*FileBackend)(nil)

// NewFileBackend creates a detached file backend. Call Attach before use.
func NewFileBackend() *FileBackend {
	return &FileBackend{}
}

// Attach validates config and creates the data directory if needed. The
// catalog file itself is not touched until Load or Save.
func (b *FileBackend) Attach(config types.Config) error {
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

	b.path = filepath.Join(dataDir, config.GetCatalogFile())
	b.attached = true
	return nil
}

// Path returns the catalog file location, or "" when detached.
func (b *FileBackend) Path() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.path
}

// Load reads the catalog file.
func (b *FileBackend) Load() ([]types.Product, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if !b.attached {
		return nil, types.ErrDetached
	}
	return LoadFile(b.path)
}

// Save overwrites the catalog file with products.
func (b *FileBackend) Save(products []types.Product) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if !b.attached {
		return types.ErrDetached
	}
	return SaveFile(b.path, products)
}

// Detach forgets the catalog path. Idempotent.
func (b *FileBackend) Detach() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.attached = false
	b.path = ""
	return nil
}
