// Package shell runs the interactive inventory menu. A Shell reads one menu
// choice at a time, prompts for the fields the chosen command needs, applies
// the matching catalog operation, and renders the result.
package shell

import (
	"bufio"
	"errors"
	"fmt"
	"io"

	"github.com/rs/zerolog"

	"github.com/mesh-intelligence/stockroom/internal/catalog"
	"github.com/mesh-intelligence/stockroom/pkg/types"
)

// Menu choices.
const (
	ChoiceViewAll        = "1"
	ChoiceAdd            = "2"
	ChoiceUpdateQuantity = "3"
	ChoiceDelete         = "4"
	ChoiceSearch         = "5"
	ChoiceSort           = "6"
	ChoiceFilterByPrice  = "7"
	ChoiceSaveAndExit    = "8"
)

const menu = `
=== INVENTORY MANAGER ===
1. View all
2. Add product
3. Update quantity
4. Delete product
5. Search products
6. Sort products
7. Filter by price
8. Save & exit
`

// errEndOfInput signals that the input closed in the middle of a prompt.
var errEndOfInput = errors.New("end of input")

// Shell is one interactive session over a loaded catalog.
type Shell struct {
	in       *bufio.Reader
	out      io.Writer
	store    types.Inventory
	products []types.Product
	log      zerolog.Logger
}

// New creates a Shell that reads commands from in, writes to out, and saves
// products to store on exit.
func New(in io.Reader, out io.Writer, store types.Inventory, products []types.Product, log zerolog.Logger) *Shell {
	return &Shell{
		in:       bufio.NewReader(in),
		out:      out,
		store:    store,
		products: products,
		log:      log,
	}
}

// Products returns the current catalog.
func (s *Shell) Products() []types.Product {
	return s.products
}

// Run processes commands until save-and-exit is chosen or the input ends,
// then saves the catalog. Parse errors and unknown ids are reported to the
// user and do not stop the loop.
func (s *Shell) Run() error {
	for {
		fmt.Fprint(s.out, menu)
		choice, err := s.prompt("Choose: ")
		if err != nil {
			if !errors.Is(err, errEndOfInput) {
				s.report(err)
			}
			break
		}
		if choice == ChoiceSaveAndExit {
			break
		}
		if err := s.dispatch(choice); err != nil {
			if errors.Is(err, errEndOfInput) {
				break
			}
			s.report(err)
		}
	}
	return s.save()
}

func (s *Shell) dispatch(choice string) error {
	switch choice {
	case ChoiceViewAll:
		RenderProducts(s.out, s.products)
		return nil
	case ChoiceAdd:
		return s.add()
	case ChoiceUpdateQuantity:
		return s.updateQuantity()
	case ChoiceDelete:
		return s.remove()
	case ChoiceSearch:
		return s.search()
	case ChoiceSort:
		return s.sort()
	case ChoiceFilterByPrice:
		return s.filterByPrice()
	default:
		fmt.Fprintln(s.out, "Invalid choice.")
		return nil
	}
}

func (s *Shell) add() error {
	labels := []string{"ID: ", "Name: ", "Category: ", "Price: ", "Quantity: "}
	fields := make([]string, len(labels))
	for i, label := range labels {
		v, err := s.prompt(label)
		if err != nil {
			return err
		}
		fields[i] = v
	}

	p, err := types.NewProduct(fields[0], fields[1], fields[2], fields[3], fields[4])
	if err != nil {
		return err
	}
	s.products = catalog.Add(s.products, p)
	s.log.Debug().Int("id", p.ID).Msg("product added")
	fmt.Fprintln(s.out, "Product added.")
	return nil
}

func (s *Shell) updateQuantity() error {
	id, err := s.promptID()
	if err != nil {
		return err
	}
	if _, ok := catalog.Find(s.products, id); !ok {
		return fmt.Errorf("update product %d: %w", id, types.ErrNotFound)
	}

	raw, err := s.prompt("New quantity: ")
	if err != nil {
		return err
	}
	qty, err := types.ParseQuantity(raw)
	if err != nil {
		return err
	}
	if err := catalog.UpdateQuantity(s.products, id, qty); err != nil {
		return fmt.Errorf("update product %d: %w", id, err)
	}
	s.log.Debug().Int("id", id).Int("quantity", qty).Msg("quantity updated")
	fmt.Fprintln(s.out, "Quantity updated.")
	return nil
}

func (s *Shell) remove() error {
	id, err := s.promptID()
	if err != nil {
		return err
	}
	products, err := catalog.Remove(s.products, id)
	if err != nil {
		return fmt.Errorf("delete product %d: %w", id, err)
	}
	s.products = products
	s.log.Debug().Int("id", id).Msg("product deleted")
	fmt.Fprintln(s.out, "Product deleted.")
	return nil
}

func (s *Shell) search() error {
	keyword, err := s.prompt("Keyword: ")
	if err != nil {
		return err
	}
	RenderProducts(s.out, catalog.Search(s.products, keyword))
	return nil
}

func (s *Shell) sort() error {
	field, err := s.prompt("Sort by (price/quantity): ")
	if err != nil {
		return err
	}
	if _, ok := catalog.ParseSortField(field); !ok {
		s.log.Debug().Str("field", field).Msg("unrecognized sort field, order unchanged")
	}
	catalog.Sort(s.products, field)
	RenderProducts(s.out, s.products)
	return nil
}

func (s *Shell) filterByPrice() error {
	rawMin, err := s.prompt("Minimum price: ")
	if err != nil {
		return err
	}
	minPrice, err := types.ParsePrice(rawMin)
	if err != nil {
		return err
	}
	rawMax, err := s.prompt("Maximum price: ")
	if err != nil {
		return err
	}
	maxPrice, err := types.ParsePrice(rawMax)
	if err != nil {
		return err
	}
	RenderProducts(s.out, catalog.FilterByPrice(s.products, minPrice, maxPrice))
	return nil
}

func (s *Shell) promptID() (int, error) {
	raw, err := s.prompt("Product ID: ")
	if err != nil {
		return 0, err
	}
	return types.ParseID(raw)
}

// prompt prints label and returns the next input line.
func (s *Shell) prompt(label string) (string, error) {
	fmt.Fprint(s.out, label)
	line, err := catalog.ReadLine(s.in)
	if errors.Is(err, io.EOF) {
		fmt.Fprintln(s.out)
		return "", errEndOfInput
	}
	if err != nil {
		return "", fmt.Errorf("read input: %w", err)
	}
	return line, nil
}

// report prints a non-fatal command error.
func (s *Shell) report(err error) {
	switch {
	case errors.Is(err, types.ErrNotFound):
		s.log.Warn().Err(err).Msg("command target missing")
		fmt.Fprintln(s.out, "Product not found.")
	case errors.Is(err, types.ErrInvalidFormat):
		s.log.Warn().Err(err).Msg("invalid input")
		fmt.Fprintf(s.out, "Invalid input: %v\n", err)
	default:
		s.log.Error().Err(err).Msg("command failed")
		fmt.Fprintf(s.out, "Error: %v\n", err)
	}
}

func (s *Shell) save() error {
	if err := s.store.Save(s.products); err != nil {
		return fmt.Errorf("save catalog: %w", err)
	}
	s.log.Info().Int("count", len(s.products)).Msg("catalog saved")
	fmt.Fprintln(s.out, "Catalog saved.")
	return nil
}
