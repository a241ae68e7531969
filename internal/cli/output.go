package cli

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/mesh-intelligence/stockroom/internal/shell"
	"github.com/mesh-intelligence/stockroom/pkg/types"
)

// printProducts renders products as lines, or as indented JSON in --json mode.
func printProducts(w io.Writer, opts *rootOptions, products []types.Product) error {
	if opts.jsonMode {
		if products == nil {
			products = []types.Product{}
		}
		return printJSON(w, products)
	}
	shell.RenderProducts(w, products)
	return nil
}

func printJSON(w io.Writer, v any) error {
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal JSON: %w", err)
	}
	fmt.Fprintln(w, string(out))
	return nil
}
