package support

import (
	"fmt"
	"strings"
)

// Product is one catalog entry.
type Product struct {
	Name        string
	Price       float64
	Quantity    int
	Description string
}

// Catalog returns the product list. The catalog is static; it is rebuilt on
// every call so tools never share mutable state.
func Catalog() []Product {
	return []Product{
		{
			Name:        "Notebook",
			Price:       4.99,
			Quantity:    120,
			Description: "A5 ruled notebook, 200 pages, lay-flat binding.",
		},
		{
			Name:        "Wireless Mouse",
			Price:       19.99,
			Quantity:    45,
			Description: "Ergonomic 2.4GHz wireless mouse with USB receiver.",
		},
		{
			Name:        "Laptop Backpack",
			Price:       34.50,
			Quantity:    18,
			Description: "Water-resistant 15.6\" laptop backpack with padded straps.",
		},
	}
}

// FindProduct looks up a catalog entry by case-insensitive substring match.
func FindProduct(name string) (Product, bool) {
	query := strings.ToLower(strings.TrimSpace(name))
	if query == "" {
		return Product{}, false
	}

	for _, product := range Catalog() {
		if strings.Contains(strings.ToLower(product.Name), query) {
			return product, true
		}
	}

	return Product{}, false
}

// FormatProduct renders a product line for the model.
func FormatProduct(p Product) string {
	return fmt.Sprintf("%s: $%.2f (%d in stock) - %s", p.Name, p.Price, p.Quantity, p.Description)
}
