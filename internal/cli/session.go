package cli

import (
	"errors"
	"fmt"
	"io"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/stockroom/internal/catalog"
	"github.com/mesh-intelligence/stockroom/internal/logging"
	"github.com/mesh-intelligence/stockroom/internal/paths"
	"github.com/mesh-intelligence/stockroom/internal/sqlite"
	"github.com/mesh-intelligence/stockroom/pkg/types"
)

// session is one command run: resolved config, logger, an attached backend
// and the catalog loaded from it.
type session struct {
	cfg       types.Config
	configDir string
	log       zerolog.Logger
	logCloser io.Closer
	store     types.Inventory
	products  []types.Product
}

// openSession resolves directories and config, attaches the configured
// backend (which bootstraps the data directory) and loads the catalog. The
// caller must call close.
func openSession(opts *rootOptions) (*session, error) {
	configDir, err := paths.ResolveConfigDir(opts.configDir)
	if err != nil {
		return nil, fmt.Errorf("resolve config dir: %w", err)
	}
	v, err := loadConfig(configDir)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	dataDir, err := paths.ResolveDataDir(opts.dataDir, v.GetString(cfgKeyDataDir))
	if err != nil {
		return nil, fmt.Errorf("resolve data dir: %w", err)
	}

	logger, closer, err := logging.New(logConfig(v), Version)
	if err != nil {
		return nil, fmt.Errorf("init logging: %w", err)
	}

	s := &session{
		cfg: types.Config{
			Backend:     v.GetString(cfgKeyBackend),
			DataDir:     dataDir,
			CatalogFile: v.GetString(cfgKeyCatalogFile),
		},
		configDir: configDir,
		log:       *logger,
		logCloser: closer,
	}
	s.log.Debug().
		Str("config_dir", configDir).
		Str("data_dir", dataDir).
		Str("backend", s.cfg.Backend).
		Msg("configuration resolved")

	if err := s.attach(); err != nil {
		s.closeLog()
		return nil, err
	}
	return s, nil
}

func (s *session) attach() error {
	store, err := newBackend(s.cfg.Backend)
	if err != nil {
		return err
	}
	return s.attachStore(store)
}

// attachStore attaches store and loads the catalog from it. On a failed load
// the store is detached again.
func (s *session) attachStore(store types.Inventory) error {
	if err := store.Attach(s.cfg); err != nil {
		return fmt.Errorf("attach backend: %w", err)
	}
	s.log.Debug().Str("backend", s.cfg.Backend).Msg("backend attached")

	products, err := store.Load()
	if err != nil {
		return errors.Join(fmt.Errorf("load catalog: %w", err), store.Detach())
	}
	s.log.Info().Int("count", len(products)).Msg("catalog loaded")

	s.store = store
	s.products = products
	return nil
}

// save writes the current catalog back to the backend.
func (s *session) save() error {
	if err := s.store.Save(s.products); err != nil {
		return fmt.Errorf("save catalog: %w", err)
	}
	s.log.Info().Int("count", len(s.products)).Msg("catalog saved")
	return nil
}

// close detaches the backend and closes the log file, if any.
func (s *session) close() error {
	var err error
	if s.store != nil {
		err = s.store.Detach()
		s.log.Debug().Msg("backend detached")
	}
	s.closeLog()
	return err
}

func (s *session) closeLog() {
	if s.logCloser != nil {
		s.logCloser.Close()
	}
}

// newBackend returns a detached backend for the named storage type.
func newBackend(name string) (types.Inventory, error) {
	switch name {
	case types.BackendCSV:
		return catalog.NewFileBackend(), nil
	case types.BackendSQLite:
		return sqlite.NewBackend(), nil
	case "":
		return nil, types.ErrBackendEmpty
	default:
		return nil, fmt.Errorf("%w %q (valid: %s, %s)", types.ErrBackendUnknown, name, types.BackendCSV, types.BackendSQLite)
	}
}

// withSession opens a session for the duration of fn.
func withSession(opts *rootOptions, fn func(s *session) error) (err error) {
	s, err := openSession(opts)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := s.close(); cerr != nil && err == nil {
			err = cerr
		}
	}()
	return fn(s)
}

// runShell starts the interactive menu over the loaded catalog.
func runShell(cmd *cobra.Command, opts *rootOptions) error {
	return withSession(opts, func(s *session) error {
		return newShell(cmd, s).Run()
	})
}
