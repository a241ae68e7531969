// Package cli implements the stockroom command-line interface: the cobra
// command tree, configuration loading, and the wiring between the storage
// backend, the logger, and the interactive shell.
package cli

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/stockroom/pkg/types"
)

// Exit codes.
const (
	exitSuccess   = 0
	exitUserError = 1
	exitSysError  = 2
)

// rootOptions holds global flag values accessible to all subcommands.
type rootOptions struct {
	configDir string
	dataDir   string
	jsonMode  bool
}

// NewRootCmd creates the top-level "stockroom" command with global flags
// and all subcommands registered. Run without a subcommand it starts the
// interactive shell.
func NewRootCmd() *cobra.Command {
	opts := &rootOptions{}

	root := &cobra.Command{
		Use:   "stockroom",
		Short: "Manage a small product inventory",
		Long: `Stockroom keeps a catalog of products (id, name, category, price, quantity)
in a comma-delimited file or a SQLite database. Without a subcommand it opens
an interactive menu; the subcommands run single operations.`,
		Version: Version,
		Args:    cobra.NoArgs,
		// Errors are printed once by Execute.
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runShell(cmd, opts)
		},
	}

	root.PersistentFlags().StringVar(&opts.configDir, "config-dir", "", "configuration directory (default: platform config dir)")
	root.PersistentFlags().StringVar(&opts.dataDir, "data-dir", "", "data directory (default: $(CWD)/data)")
	root.PersistentFlags().BoolVar(&opts.jsonMode, "json", false, "output in JSON format")

	root.AddCommand(newVersionCmd())
	root.AddCommand(newInitCmd(opts))
	root.AddCommand(newShellCmd(opts))
	root.AddCommand(newStatusCmd(opts))
	root.AddCommand(newListCmd(opts))
	root.AddCommand(newAddCmd(opts))
	root.AddCommand(newUpdateCmd(opts))
	root.AddCommand(newDeleteCmd(opts))
	root.AddCommand(newSearchCmd(opts))
	root.AddCommand(newSortCmd(opts))
	root.AddCommand(newFilterCmd(opts))

	return root
}

// Execute runs the root command and exits with the appropriate code.
func Execute() {
	root := NewRootCmd()
	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(exitCode(err))
	}
	os.Exit(exitSuccess)
}

// exitCode maps storage failures to exitSysError and everything else
// (bad input, unknown ids, bad flags) to exitUserError.
func exitCode(err error) int {
	if errors.Is(err, types.ErrStorage) || errors.Is(err, types.ErrDetached) {
		return exitSysError
	}
	return exitUserError
}
