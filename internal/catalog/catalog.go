// Package catalog implements the in-memory product store: loading and saving
// the comma-delimited catalog format, and the search, sort, filter, and
// mutation operations over a []types.Product.
//
// Every operation is a plain function over the slice it is given. Search and
// FilterByPrice return new slices; Sort and UpdateQuantity modify the slice
// in place; Add and Remove return the resulting slice.
package catalog

import (
	"cmp"
	"slices"
	"strings"

	"github.com/mesh-intelligence/stockroom/pkg/types"
)

// SortField names a product field the catalog can be ordered by.
type SortField string

// Recognized sort fields.
const (
	SortByPrice    SortField = "price"
	SortByQuantity SortField = "quantity"
)

// ParseSortField matches name case-insensitively against the recognized
// sort fields. The second result is false for an unrecognized name.
func ParseSortField(name string) (SortField, bool) {
	switch {
	case strings.EqualFold(name, string(SortByPrice)):
		return SortByPrice, true
	case strings.EqualFold(name, string(SortByQuantity)):
		return SortByQuantity, true
	}
	return "", false
}

// Search returns the products whose name contains keyword, ignoring case.
// An empty keyword matches every product. Relative order is preserved.
func Search(products []types.Product, keyword string) []types.Product {
	keyword = strings.ToLower(keyword)
	result := make([]types.Product, 0, len(products))
	for _, p := range products {
		if strings.Contains(strings.ToLower(p.Name), keyword) {
			result = append(result, p)
		}
	}
	return result
}

// Sort orders products in place by field, ascending and stable. An
// unrecognized field leaves the order unchanged.
func Sort(products []types.Product, field string) {
	sf, ok := ParseSortField(field)
	if !ok {
		return
	}
	switch sf {
	case SortByPrice:
		slices.SortStableFunc(products, func(a, b types.Product) int {
			return cmp.Compare(a.Price, b.Price)
		})
	case SortByQuantity:
		slices.SortStableFunc(products, func(a, b types.Product) int {
			return cmp.Compare(a.Quantity, b.Quantity)
		})
	}
}

// FilterByPrice returns the products with minPrice <= price <= maxPrice, in
// their original order. When minPrice > maxPrice the result is empty.
func FilterByPrice(products []types.Product, minPrice, maxPrice float64) []types.Product {
	result := make([]types.Product, 0, len(products))
	for _, p := range products {
		if p.Price >= minPrice && p.Price <= maxPrice {
			result = append(result, p)
		}
	}
	return result
}

// Add appends p to products. Duplicate ids are accepted.
func Add(products []types.Product, p types.Product) []types.Product {
	return append(products, p)
}

// UpdateQuantity sets the quantity of the first product with the given id.
// Later products sharing the id are untouched. Returns ErrNotFound if no
// product matches.
func UpdateQuantity(products []types.Product, id, quantity int) error {
	i := indexOf(products, id)
	if i < 0 {
		return types.ErrNotFound
	}
	products[i].Quantity = quantity
	return nil
}

// Remove deletes the first product with the given id and returns the
// shortened slice. Returns the input unchanged and ErrNotFound if no
// product matches.
func Remove(products []types.Product, id int) ([]types.Product, error) {
	i := indexOf(products, id)
	if i < 0 {
		return products, types.ErrNotFound
	}
	return slices.Delete(products, i, i+1), nil
}

// Find returns the first product with the given id.
func Find(products []types.Product, id int) (types.Product, bool) {
	i := indexOf(products, id)
	if i < 0 {
		return types.Product{}, false
	}
	return products[i], true
}

func indexOf(products []types.Product, id int) int {
	return slices.IndexFunc(products, func(p types.Product) bool {
		return p.ID == id
	})
}
