package service

import (
	"context"
	"fmt"

	repository "github.com/okian/catalog/internal/adapters/repository"
	"github.com/okian/catalog/internal/domain/model"
	"github.com/okian/catalog/pkg/logger"
	"github.com/okian/catalog/pkg/metrics"
)

// SampleProducts is the baseline catalog inserted into an empty store.
func SampleProducts() []model.Product {
	return []model.Product{
		{Name: "Headphones", Dealers: []string{"Binglee", "DXC Electronics", "Bobay"}},
		{Name: "Laptop", Dealers: []string{"GH Computers", "Tech City", "Ez PC"}},
		{Name: "Mouse", Dealers: []string{"DXC Electronics", "Tech City"}},
		{Name: "Printer", Dealers: []string{"Binglee", "DXC Electronics", "Bobay", "GH Computers"}},
	}
}

// SamplePriceLists is the baseline dealer price data inserted into an empty store.
func SamplePriceLists() []model.DealerPriceList {
	return []model.DealerPriceList{
		{Dealer: "Binglee", Prices: map[string]string{"Headphones": "$30", "Printer": "$75"}},
		{Dealer: "DXC Electronics", Prices: map[string]string{"Mouse": "$20", "Printer": "$85", "Headphones": "$20"}},
		{Dealer: "Bobay", Prices: map[string]string{"Headphones": "$20", "Printer": "$80"}},
		{Dealer: "Tech City", Prices: map[string]string{"Mouse": "$20", "Laptop": "$850"}},
		{Dealer: "Ez PC", Prices: map[string]string{"Laptop": "$1000"}},
		{Dealer: "GH Computers", Prices: map[string]string{"Laptop": "$1500", "Printer": "$95"}},
	}
}

// SeedReport tells how many rows each seeding step inserted. Zero means the
// table already had data and was left alone.
type SeedReport struct {
	Products   int
	PriceLists int
}

// Seed inserts products and price lists into whichever of the two tables is
// empty. Each table is filled in a single transaction.
func Seed(ctx context.Context, store repository.Store, products []model.Product, lists []model.DealerPriceList, log logger.Logger) (SeedReport, error) {
	var report SeedReport

	n, err := store.Count(ctx)
	if err != nil {
		return report, fmt.Errorf("%w: count products: %w", ErrSeed, err)
	}
	if n == 0 && len(products) > 0 {
		if _, err := store.InsertBatch(ctx, products); err != nil {
			return report, fmt.Errorf("%w: products: %w", ErrSeed, err)
		}
		report.Products = len(products)
		metrics.RecordSeeded("products", report.Products)
		log.Info(ctx, "seeded products", logger.Int("count", report.Products))
	} else {
		log.Debug(ctx, "products table not empty; skipping seed", logger.Int64("existing", n))
	}

	n, err = store.CountPriceLists(ctx)
	if err != nil {
		return report, fmt.Errorf("%w: count price lists: %w", ErrSeed, err)
	}
	if n == 0 && len(lists) > 0 {
		if err := store.InsertPriceLists(ctx, lists); err != nil {
			return report, fmt.Errorf("%w: price lists: %w", ErrSeed, err)
		}
		report.PriceLists = len(lists)
		metrics.RecordSeeded("dealers", report.PriceLists)
		log.Info(ctx, "seeded dealer price lists", logger.Int("count", report.PriceLists))
	} else {
		log.Debug(ctx, "dealers table not empty; skipping seed", logger.Int64("existing", n))
	}

	return report, nil
}
