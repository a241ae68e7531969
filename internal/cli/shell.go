package cli

import (
	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/stockroom/internal/shell"
)

func newShellCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "shell",
		Short: "Open the interactive inventory menu",
		Long: `Shell loads the catalog and shows a numbered menu: view all, add, update
quantity, delete, search, sort, filter by price, and save & exit. The catalog
is saved when the menu exits or the input ends.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runShell(cmd, opts)
		},
	}
}

func newShell(cmd *cobra.Command, s *session) *shell.Shell {
	return shell.New(cmd.InOrStdin(), cmd.OutOrStdout(), s.store, s.products, s.log)
}
