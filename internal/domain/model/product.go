// Package model contains domain models passed between layers.
package model

// Product is a named catalog item and the dealers that carry it.
type Product struct {
	ID      uint
	Name    string   // unique, case-sensitive lookup key
	Dealers []string // insertion order is preserved; never nil once loaded
}

// DealerPriceList maps the products a dealer sells to a display price.
type DealerPriceList struct {
	ID     uint
	Dealer string            // unique
	Prices map[string]string // product name -> price, e.g. "Laptop" -> "$850"
}

// Price returns the listed price for product and whether the dealer sells it.
func (d DealerPriceList) Price(product string) (string, bool) {
	p, ok := d.Prices[product]
	if !ok || p == "" {
		return "", false
	}
	return p, true
}
