package cli

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/stockroom/internal/catalog"
	"github.com/mesh-intelligence/stockroom/internal/sqlite"
)

// statusReport is the --json form of the status command.
type statusReport struct {
	Backend  string           `json:"backend"`
	DataDir  string           `json:"data_dir"`
	Location string           `json:"location"`
	Products int              `json:"products"`
	LastSave *sqlite.SaveInfo `json:"last_save,omitempty"`
}

func newStatusCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show the active backend, catalog location and product count",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withSession(opts, func(s *session) error {
				report := statusReport{
					Backend:  s.cfg.Backend,
					DataDir:  s.cfg.DataDir,
					Products: len(s.products),
				}

				switch store := s.store.(type) {
				case *catalog.FileBackend:
					report.Location = store.Path()
				case *sqlite.Backend:
					report.Location = store.Path()
					info, err := store.LastSave()
					switch {
					case err == nil:
						report.LastSave = &info
					case !errors.Is(err, sqlite.ErrNoSaves):
						return err
					}
				}

				if opts.jsonMode {
					return printJSON(cmd.OutOrStdout(), report)
				}

				out := cmd.OutOrStdout()
				fmt.Fprintf(out, "Backend:   %s\n", report.Backend)
				fmt.Fprintf(out, "Location:  %s\n", report.Location)
				fmt.Fprintf(out, "Products:  %d\n", report.Products)
				if report.LastSave != nil {
					fmt.Fprintf(out, "Last save: %s (%s)\n",
						report.LastSave.SavedAt.Local().Format(time.DateTime), report.LastSave.SaveID)
				}
				return nil
			})
		},
	}
}
