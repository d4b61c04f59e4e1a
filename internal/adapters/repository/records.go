package repository

import (
	"gorm.io/datatypes"

	"github.com/okian/catalog/internal/domain/model"
)

// maxNameLen matches the products.name column size.
const maxNameLen = 80

// productRecord is the persisted shape of a product. Dealers live in a JSON
// column so their order survives the round trip.
type productRecord struct {
	ID      uint                        `gorm:"primaryKey"`
	Name    string                      `gorm:"size:80;not null;uniqueIndex"`
	Dealers datatypes.JSONSlice[string] `gorm:"not null"`
}

func (productRecord) TableName() string { return "products" }

func newProductRecord(p model.Product) productRecord {
	dealers := p.Dealers
	if dealers == nil {
		dealers = []string{}
	}
	return productRecord{Name: p.Name, Dealers: datatypes.JSONSlice[string](dealers)}
}

func (r productRecord) toModel() model.Product {
	dealers := []string(r.Dealers)
	if dealers == nil {
		dealers = []string{}
	}
	return model.Product{ID: r.ID, Name: r.Name, Dealers: dealers}
}

// dealerPriceRecord is the persisted shape of a dealer price list.
type dealerPriceRecord struct {
	ID     uint                                  `gorm:"primaryKey"`
	Name   string                                `gorm:"size:80;not null;uniqueIndex"`
	Prices datatypes.JSONType[map[string]string] `gorm:"not null"`
}

func (dealerPriceRecord) TableName() string { return "dealers" }

func newDealerPriceRecord(d model.DealerPriceList) dealerPriceRecord {
	prices := d.Prices
	if prices == nil {
		prices = map[string]string{}
	}
	return dealerPriceRecord{Name: d.Dealer, Prices: datatypes.NewJSONType(prices)}
}

func (r dealerPriceRecord) toModel() model.DealerPriceList {
	prices := r.Prices.Data()
	if prices == nil {
		prices = map[string]string{}
	}
	return model.DealerPriceList{ID: r.ID, Dealer: r.Name, Prices: prices}
}
