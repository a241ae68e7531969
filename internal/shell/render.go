package shell

import (
	"fmt"
	"io"

	"github.com/mesh-intelligence/stockroom/pkg/types"
)

// RenderProducts writes one line per product, or a placeholder line when
// products is empty.
func RenderProducts(w io.Writer, products []types.Product) {
	if len(products) == 0 {
		fmt.Fprintln(w, "No products.")
		return
	}
	for _, p := range products {
		fmt.Fprintf(w, "ID: %d | %s | %s | %s | Qty: %d\n",
			p.ID, p.Name, p.Category, types.FormatPrice(p.Price), p.Quantity)
	}
}
