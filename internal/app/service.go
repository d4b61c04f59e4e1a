// Package service provides the catalog query service that implements
// the dependencies required by the HTTP API.
package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	repository "github.com/okian/catalog/internal/adapters/repository"
	"github.com/okian/catalog/internal/domain/model"
	"github.com/okian/catalog/internal/domain/types"
	"github.com/okian/catalog/pkg/logger"
	"github.com/okian/catalog/pkg/metrics"
)

const defaultDatabaseURL = "sqlite://products.db"

// Service owns the store for the lifetime of the process:
// New -> Start (open, migrate, seed) -> serve -> Stop (close).
type Service struct {
	mu sync.RWMutex

	store      repository.Store
	ownsStore  bool
	lastReport SeedReport

	// Configuration
	databaseURL    string
	seed           bool
	traceSQL       bool
	slowQuery      time.Duration
	seedProducts   []model.Product
	seedPriceLists []model.DealerPriceList

	// State
	started bool

	logger logger.Logger
}

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithLogger sets a custom logger for the service.
func WithLogger(l logger.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithDatabaseURL selects the store opened by Start.
func WithDatabaseURL(url string) Option {
	return func(s *Service) {
		if url != "" {
			s.databaseURL = url
		}
	}
}

// WithStore injects an already opened store. The service will not close it.
func WithStore(store repository.Store) Option {
	return func(s *Service) {
		s.store = store
	}
}

// WithSeed toggles seeding of empty tables during Start.
func WithSeed(enabled bool) Option {
	return func(s *Service) {
		s.seed = enabled
	}
}

// WithSeedData replaces the sample data used by seeding.
func WithSeedData(products []model.Product, lists []model.DealerPriceList) Option {
	return func(s *Service) {
		s.seedProducts = products
		s.seedPriceLists = lists
	}
}

// WithSQLTrace logs every SQL statement at debug level.
func WithSQLTrace(enabled bool) Option {
	return func(s *Service) {
		s.traceSQL = enabled
	}
}

// WithSlowQueryThreshold logs SQL statements slower than d as warnings.
func WithSlowQueryThreshold(d time.Duration) Option {
	return func(s *Service) {
		s.slowQuery = d
	}
}

// New constructs a Service with default configuration.
func New(opts ...Option) *Service {
	s := &Service{
		databaseURL:    defaultDatabaseURL,
		seed:           true,
		seedProducts:   SampleProducts(),
		seedPriceLists: SamplePriceLists(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Start opens and migrates the store and seeds empty tables. It must
// complete before requests are served.
func (s *Service) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.started {
		return nil
	}
	if s.logger == nil {
		s.logger = logger.Get()
	}

	s.logger.Info(ctx, "starting catalog service...")

	if s.store == nil {
		store, err := repository.Open(ctx, s.databaseURL,
			repository.WithLogger(s.logger),
			repository.WithSQLTrace(s.traceSQL),
			repository.WithSlowQueryThreshold(s.slowQuery),
		)
		if err != nil {
			return fmt.Errorf("open store: %w", err)
		}
		s.store = store
		s.ownsStore = true
	}

	if err := s.store.Migrate(ctx); err != nil {
		s.closeOwnedStore()
		return fmt.Errorf("migrate store: %w", err)
	}

	if s.seed {
		report, err := Seed(ctx, s.store, s.seedProducts, s.seedPriceLists, s.logger)
		if err != nil {
			s.closeOwnedStore()
			return err
		}
		s.lastReport = report
	}

	s.started = true
	s.refreshCatalogMetrics(ctx)
	s.logger.Info(ctx, "catalog service started",
		logger.Bool("seed", s.seed),
		logger.Int("seededProducts", s.lastReport.Products),
		logger.Int("seededPriceLists", s.lastReport.PriceLists),
	)
	return nil
}

// Stop closes the store if the service opened it.
func (s *Service) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.started {
		return
	}
	s.logger.Info(context.Background(), "stopping catalog service...")
	s.closeOwnedStore()
	s.started = false
	s.logger.Info(context.Background(), "catalog service stopped")
}

func (s *Service) closeOwnedStore() {
	if !s.ownsStore || s.store == nil {
		return
	}
	if err := s.store.Close(); err != nil {
		s.logger.Warn(context.Background(), "closing store failed", logger.Error(err))
	}
	s.store = nil
	s.ownsStore = false
}

// SeedReport returns what the last Start inserted.
func (s *Service) SeedReport() SeedReport {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.lastReport
}

func (s *Service) activeStore() (repository.Store, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if !s.started || s.store == nil {
		return nil, ErrNotStarted
	}
	return s.store, nil
}

// ListProducts returns every product with its dealers in store order.
func (s *Service) ListProducts(ctx context.Context) ([]types.ProductDealers, error) {
	store, err := s.activeStore()
	if err != nil {
		return nil, err
	}
	products, err := store.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	out := make([]types.ProductDealers, len(products))
	for i, p := range products {
		out[i] = types.ProductDealers{Product: p.Name, Dealers: nonNil(p.Dealers)}
	}
	return out, nil
}

// GetDealers returns the dealers of the product with exactly this name.
// Returns ErrNotFound when no such product exists.
func (s *Service) GetDealers(ctx context.Context, product string) ([]string, error) {
	store, err := s.activeStore()
	if err != nil {
		return nil, err
	}
	p, err := store.FindByName(ctx, product)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, product)
	}
	if err != nil {
		return nil, fmt.Errorf("get dealers: %w", err)
	}
	return nonNil(p.Dealers), nil
}

// PriceAt looks product up in dealer's price list. An unknown product is
// not an error; the quote is simply unavailable.
func (s *Service) PriceAt(ctx context.Context, dealer, product string) (types.PriceQuote, error) {
	store, err := s.activeStore()
	if err != nil {
		return types.PriceQuote{}, err
	}
	list, err := store.FindPriceList(ctx, dealer)
	if errors.Is(err, repository.ErrNotFound) {
		return types.PriceQuote{}, fmt.Errorf("%w: %s", ErrDealerNotFound, dealer)
	}
	if err != nil {
		return types.PriceQuote{}, fmt.Errorf("price at: %w", err)
	}
	price, ok := list.Price(product)
	return types.PriceQuote{Dealer: dealer, Product: product, Price: price, Available: ok}, nil
}

// AllPrices returns the price of product at every dealer that sells it,
// in dealer insertion order.
func (s *Service) AllPrices(ctx context.Context, product string) ([]types.PriceEntry, error) {
	store, err := s.activeStore()
	if err != nil {
		return nil, err
	}
	lists, err := store.ListPriceLists(ctx)
	if err != nil {
		return nil, fmt.Errorf("all prices: %w", err)
	}
	out := make([]types.PriceEntry, 0, len(lists))
	for _, l := range lists {
		if price, ok := l.Price(product); ok {
			out = append(out, types.PriceEntry{Key: l.Dealer, Value: price})
		}
	}
	return out, nil
}

// Stats returns catalog counts for monitoring.
func (s *Service) Stats(ctx context.Context) (types.Stats, error) {
	store, err := s.activeStore()
	if err != nil {
		return types.Stats{}, nil
	}
	products, err := store.Count(ctx)
	if err != nil {
		return types.Stats{}, fmt.Errorf("stats: %w", err)
	}
	lists, err := store.CountPriceLists(ctx)
	if err != nil {
		return types.Stats{}, fmt.Errorf("stats: %w", err)
	}
	metrics.UpdateCatalogSize(products, lists)
	return types.Stats{Started: true, Products: products, PriceLists: lists}, nil
}

// Ping reports whether the store is reachable.
func (s *Service) Ping(ctx context.Context) error {
	store, err := s.activeStore()
	if err != nil {
		return err
	}
	return store.Ping(ctx)
}

// refreshCatalogMetrics is called with s.mu held.
func (s *Service) refreshCatalogMetrics(ctx context.Context) {
	products, err := s.store.Count(ctx)
	if err != nil {
		s.logger.Warn(ctx, "counting products failed", logger.Error(err))
		return
	}
	lists, err := s.store.CountPriceLists(ctx)
	if err != nil {
		s.logger.Warn(ctx, "counting price lists failed", logger.Error(err))
		return
	}
	metrics.UpdateCatalogSize(products, lists)
}

func nonNil(dealers []string) []string {
	if dealers == nil {
		return []string{}
	}
	return dealers
}
