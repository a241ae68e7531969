package types

import (
	"fmt"
	"strconv"
	"strings"
)

// Header is the first line of every catalog file.
const Header = "id,name,category,price,quantity"

// fieldCount is the number of comma-separated fields in a catalog line.
const fieldCount = 5

// Product is one inventory item. ID is the lookup key but uniqueness is not
// enforced.
type Product struct {
	ID       int     `json:"id" yaml:"id"`
	Name     string  `json:"name" yaml:"name"`
	Category string  `json:"category" yaml:"category"`
	Price    float64 `json:"price" yaml:"price"`
	Quantity int     `json:"quantity" yaml:"quantity"`
}

// ParseProduct decodes one catalog line in the fixed order id, name,
// category, price, quantity. Fields are split on every comma; embedded
// commas are not supported and surface as a field-count error.
func ParseProduct(line string) (Product, error) {
	fields := strings.Split(line, ",")
	if len(fields) != fieldCount {
		return Product{}, &FormatError{
			Input: line,
			Err:   fmt.Errorf("expected %d fields, got %d", fieldCount, len(fields)),
		}
	}
	return NewProduct(fields[0], fields[1], fields[2], fields[3], fields[4])
}

// NewProduct builds a Product from raw field strings, as collected by a
// prompt or split from a catalog line.
func NewProduct(id, name, category, price, quantity string) (Product, error) {
	p := Product{Name: name, Category: category}
	var err error
	if p.ID, err = ParseID(id); err != nil {
		return Product{}, err
	}
	if p.Price, err = ParsePrice(price); err != nil {
		return Product{}, err
	}
	if p.Quantity, err = ParseQuantity(quantity); err != nil {
		return Product{}, err
	}
	return p, nil
}

// ParseID parses a product id.
func ParseID(s string) (int, error) {
	return parseInt("id", s)
}

// ParseQuantity parses a stock quantity.
func ParseQuantity(s string) (int, error) {
	return parseInt("quantity", s)
}

// ParsePrice parses a decimal price.
func ParsePrice(s string) (float64, error) {
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, &FormatError{Field: "price", Input: s, Err: err}
	}
	return v, nil
}

func parseInt(field, s string) (int, error) {
	v, err := strconv.Atoi(s)
	if err != nil {
		return 0, &FormatError{Field: field, Input: s, Err: err}
	}
	return v, nil
}

// Line encodes the product as one catalog line. Price is always rendered
// with two fractional digits.
func (p Product) Line() string {
	return strings.Join([]string{
		strconv.Itoa(p.ID),
		p.Name,
		p.Category,
		FormatPrice(p.Price),
		strconv.Itoa(p.Quantity),
	}, ",")
}

// FormatPrice renders a price the way the catalog file and the console show it.
func FormatPrice(price float64) string {
	return strconv.FormatFloat(price, 'f', 2, 64)
}
