// Package types contains the read shapes shared by the service and HTTP layers.
package types

// ProductDealers is one element of the product listing. The capitalised
// "Dealers" key is part of the public contract.
type ProductDealers struct {
	Product string   `json:"product"`
	Dealers []string `json:"Dealers"`
}

// PriceEntry is a dealer/price pair returned for a product.
type PriceEntry struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

// PriceQuote is the result of looking a product up in one dealer's price list.
type PriceQuote struct {
	Dealer    string
	Product   string
	Price     string
	Available bool
}

// Stats summarises the catalog for monitoring.
type Stats struct {
	Started    bool  `json:"started"`
	Products   int64 `json:"products"`
	PriceLists int64 `json:"dealerPriceLists"`
}
