package types

import "errors"

// Config holds backend selection and parameters for Inventory.Attach.
type Config struct {
	Backend     string `json:"backend" yaml:"backend"`
	DataDir     string `json:"data_dir" yaml:"data_dir"`
	CatalogFile string `json:"catalog_file,omitempty" yaml:"catalog_file,omitempty"`
}

// Supported backend names.
const (
	BackendCSV    = "csv"
	BackendSQLite = "sqlite"
)

// DefaultCatalogFile is the catalog file name used when Config.CatalogFile
// is empty.
const DefaultCatalogFile = "products.csv"

// Config validation errors.
var (
	ErrBackendEmpty   = errors.New("backend must not be empty")
	ErrBackendUnknown = errors.New("unknown backend")
)

// knownBackends lists the backends that Validate accepts.
var knownBackends = map[string]bool{
	BackendCSV:    true,
	BackendSQLite: true,
}

// Validate checks that the Config is well-formed. It returns a sentinel error
// from this package on failure.
func (c Config) Validate() error {
	if c.Backend == "" {
		return ErrBackendEmpty
	}
	if !knownBackends[c.Backend] {
		return ErrBackendUnknown
	}
	return nil
}

// GetCatalogFile returns the configured catalog file name, or
// DefaultCatalogFile when unset.
func (c Config) GetCatalogFile() string {
	if c.CatalogFile == "" {
		return DefaultCatalogFile
	}
	return c.CatalogFile
}
