package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/stockroom/internal/catalog"
	"github.com/mesh-intelligence/stockroom/pkg/types"
)

func newListCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List all products in catalog order",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withSession(opts, func(s *session) error {
				return printProducts(cmd.OutOrStdout(), opts, s.products)
			})
		},
	}
}

func newAddCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "add <id> <name> <category> <price> <quantity>",
		Short: "Append a product to the catalog",
		Long: `Add appends a product and saves the catalog. Ids are not checked for
uniqueness; update and delete act on the first product with a given id.

Example:
  stockroom add 3 Stapler Office 12.75 4`,
		Args: cobra.ExactArgs(5),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := types.NewProduct(args[0], args[1], args[2], args[3], args[4])
			if err != nil {
				return err
			}
			return withSession(opts, func(s *session) error {
				if _, exists := catalog.Find(s.products, p.ID); exists {
					s.log.Warn().Int("id", p.ID).Msg("adding product with duplicate id")
				}
				s.products = catalog.Add(s.products, p)
				if err := s.save(); err != nil {
					return err
				}
				if opts.jsonMode {
					return printJSON(cmd.OutOrStdout(), p)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Added product %d\n", p.ID)
				return nil
			})
		},
	}
}

func newUpdateCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "update <id> <quantity>",
		Short: "Set the quantity of the first product with the given id",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := types.ParseID(args[0])
			if err != nil {
				return err
			}
			qty, err := types.ParseQuantity(args[1])
			if err != nil {
				return err
			}
			return withSession(opts, func(s *session) error {
				if err := catalog.UpdateQuantity(s.products, id, qty); err != nil {
					s.log.Warn().Int("id", id).Msg("update target missing")
					return fmt.Errorf("update product %d: %w", id, err)
				}
				if err := s.save(); err != nil {
					return err
				}
				if opts.jsonMode {
					p, _ := catalog.Find(s.products, id)
					return printJSON(cmd.OutOrStdout(), p)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Updated product %d\n", id)
				return nil
			})
		},
	}
}

func newDeleteCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Remove the first product with the given id",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := types.ParseID(args[0])
			if err != nil {
				return err
			}
			return withSession(opts, func(s *session) error {
				removed, _ := catalog.Find(s.products, id)
				products, err := catalog.Remove(s.products, id)
				if err != nil {
					s.log.Warn().Int("id", id).Msg("delete target missing")
					return fmt.Errorf("delete product %d: %w", id, err)
				}
				s.products = products
				if err := s.save(); err != nil {
					return err
				}
				if opts.jsonMode {
					return printJSON(cmd.OutOrStdout(), removed)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Deleted product %d\n", id)
				return nil
			})
		},
	}
}

func newSearchCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "search [keyword]",
		Short: "List products whose name contains keyword (case-insensitive)",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var keyword string
			if len(args) == 1 {
				keyword = args[0]
			}
			return withSession(opts, func(s *session) error {
				return printProducts(cmd.OutOrStdout(), opts, catalog.Search(s.products, keyword))
			})
		},
	}
}

func newSortCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "sort <price|quantity>",
		Short: "Sort the catalog ascending by a field and save the new order",
		Long: `Sort reorders the stored catalog by price or quantity, ascending. Products
with equal values keep their relative order. Any other field leaves the
catalog unchanged.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			field := args[0]
			return withSession(opts, func(s *session) error {
				if _, ok := catalog.ParseSortField(field); !ok {
					s.log.Debug().Str("field", field).Msg("unrecognized sort field, order unchanged")
					return printProducts(cmd.OutOrStdout(), opts, s.products)
				}
				catalog.Sort(s.products, field)
				if err := s.save(); err != nil {
					return err
				}
				return printProducts(cmd.OutOrStdout(), opts, s.products)
			})
		},
	}
}

func newFilterCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "filter <min> <max>",
		Short: "List products priced between min and max, inclusive",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			minPrice, err := types.ParsePrice(args[0])
			if err != nil {
				return err
			}
			maxPrice, err := types.ParsePrice(args[1])
			if err != nil {
				return err
			}
			return withSession(opts, func(s *session) error {
				return printProducts(cmd.OutOrStdout(), opts, catalog.FilterByPrice(s.products, minPrice, maxPrice))
			})
		},
	}
}
