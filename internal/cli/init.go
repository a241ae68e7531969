package cli

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/stockroom/internal/catalog"
)

func newInitCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Initialize stockroom storage",
		Long:  "Create the configuration and data directories, write a default config.yaml if missing, and create an empty catalog.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withSession(opts, func(s *session) error {
				// A file catalog only exists after its first save; write the
				// header so the file is there to edit. Existing data is kept.
				if fb, ok := s.store.(*catalog.FileBackend); ok && len(s.products) == 0 {
					if err := s.save(); err != nil {
						return err
					}
					s.log.Debug().Str("path", fb.Path()).Msg("catalog file initialized")
				}

				out := cmd.OutOrStdout()
				fmt.Fprintln(out, "Stockroom initialized successfully")
				fmt.Fprintf(out, "config: %s\n", filepath.Join(s.configDir, configFileExt))
				fmt.Fprintf(out, "data:   %s\n", s.cfg.DataDir)
				return nil
			})
		},
	}
}
