// Package repository defines the catalog store interface and its gorm backend.
package repository

import (
	"context"

	"github.com/okian/catalog/internal/domain/model"
)

// ProductStore provides access to products and their dealer lists.
type ProductStore interface {
	// Insert adds a product. Returns ErrDuplicateName if the name is taken
	// and ErrInvalidProduct if the name is empty or too long.
	Insert(ctx context.Context, p model.Product) (model.Product, error)

	// InsertBatch inserts products in order inside one transaction.
	InsertBatch(ctx context.Context, ps []model.Product) ([]model.Product, error)

	// ListAll returns every product ordered by primary key.
	ListAll(ctx context.Context) ([]model.Product, error)

	// FindByName returns the product with exactly this name, or ErrNotFound.
	FindByName(ctx context.Context, name string) (model.Product, error)

	// Count returns the number of stored products.
	Count(ctx context.Context) (int64, error)
}

// PriceListStore provides access to dealer price lists.
type PriceListStore interface {
	InsertPriceLists(ctx context.Context, lists []model.DealerPriceList) error
	// FindPriceList returns ErrNotFound for unknown dealers.
	FindPriceList(ctx context.Context, dealer string) (model.DealerPriceList, error)
	ListPriceLists(ctx context.Context) ([]model.DealerPriceList, error)
	CountPriceLists(ctx context.Context) (int64, error)
}

// Store is the full catalog store including lifecycle hooks.
type Store interface {
	ProductStore
	PriceListStore

	// Migrate creates or updates the schema.
	Migrate(ctx context.Context) error
	Ping(ctx context.Context) error
	Close() error
}
