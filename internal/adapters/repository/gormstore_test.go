package repository_test

import (
	"context"
	"errors"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/okian/catalog/internal/adapters/repository"
	"github.com/okian/catalog/internal/domain/model"
)

func newMemoryStore(t *testing.T) *repository.GormStore {
	t.Helper()
	ctx := context.Background()
	s, err := repository.Open(ctx, "sqlite://:memory:")
	require.NoError(t, err)
	require.NoError(t, s.Migrate(ctx))
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func TestInsertAndFindByName(t *testing.T) {
	ctx := context.Background()
	s := newMemoryStore(t)

	got, err := s.Insert(ctx, model.Product{Name: "Laptop", Dealers: []string{"GH Computers", "Tech City", "Ez PC"}})
	require.NoError(t, err)
	assert.NotZero(t, got.ID)

	found, err := s.FindByName(ctx, "Laptop")
	require.NoError(t, err)
	assert.Equal(t, got.ID, found.ID)
	// order as inserted, no sorting
	assert.Equal(t, []string{"GH Computers", "Tech City", "Ez PC"}, found.Dealers)
}

func TestFindByName_NotFound(t *testing.T) {
	ctx := context.Background()
	s := newMemoryStore(t)

	_, err := s.Insert(ctx, model.Product{Name: "Laptop", Dealers: []string{"Tech City"}})
	require.NoError(t, err)

	_, err = s.FindByName(ctx, "Tablet")
	assert.ErrorIs(t, err, repository.ErrNotFound)

	// lookups are case-sensitive
	_, err = s.FindByName(ctx, "laptop")
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestInsert_EmptyDealersRoundTrip(t *testing.T) {
	ctx := context.Background()
	s := newMemoryStore(t)

	_, err := s.Insert(ctx, model.Product{Name: "Mouse"})
	require.NoError(t, err)

	found, err := s.FindByName(ctx, "Mouse")
	require.NoError(t, err)
	require.NotNil(t, found.Dealers)
	assert.Empty(t, found.Dealers)
}

func TestInsert_DuplicateName(t *testing.T) {
	ctx := context.Background()
	s := newMemoryStore(t)

	_, err := s.Insert(ctx, model.Product{Name: "Printer", Dealers: []string{"Binglee"}})
	require.NoError(t, err)

	_, err = s.Insert(ctx, model.Product{Name: "Printer", Dealers: []string{"Bobay"}})
	require.Error(t, err)
	assert.ErrorIs(t, err, repository.ErrDuplicateName)

	n, err := s.Count(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 1, n)
}

func TestInsert_InvalidName(t *testing.T) {
	ctx := context.Background()
	s := newMemoryStore(t)

	_, err := s.Insert(ctx, model.Product{Name: "   "})
	assert.ErrorIs(t, err, repository.ErrInvalidProduct)

	_, err = s.Insert(ctx, model.Product{Name: strings.Repeat("x", 81)})
	assert.ErrorIs(t, err, repository.ErrInvalidProduct)

	_, err = s.Insert(ctx, model.Product{Name: strings.Repeat("x", 80)})
	assert.NoError(t, err)
}

func TestListAll_PrimaryKeyOrder(t *testing.T) {
	ctx := context.Background()
	s := newMemoryStore(t)

	empty, err := s.ListAll(ctx)
	require.NoError(t, err)
	assert.NotNil(t, empty)
	assert.Empty(t, empty)

	for _, name := range []string{"Printer", "Headphones", "Mouse"} {
		_, err := s.Insert(ctx, model.Product{Name: name, Dealers: []string{"Binglee"}})
		require.NoError(t, err)
	}

	all, err := s.ListAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, "Printer", all[0].Name)
	assert.Equal(t, "Headphones", all[1].Name)
	assert.Equal(t, "Mouse", all[2].Name)
	assert.Less(t, all[0].ID, all[1].ID)
	assert.Less(t, all[1].ID, all[2].ID)
}

func TestInsertBatch_IsAtomic(t *testing.T) {
	ctx := context.Background()
	s := newMemoryStore(t)

	_, err := s.InsertBatch(ctx, []model.Product{
		{Name: "Headphones", Dealers: []string{"Binglee"}},
		{Name: "Laptop", Dealers: []string{"Ez PC"}},
		{Name: "Headphones", Dealers: []string{"Bobay"}},
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, repository.ErrDuplicateName)

	n, err := s.Count(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 0, n, "a failed batch must not leave partial rows")

	inserted, err := s.InsertBatch(ctx, []model.Product{
		{Name: "Headphones", Dealers: []string{"Binglee"}},
		{Name: "Laptop", Dealers: []string{"Ez PC"}},
	})
	require.NoError(t, err)
	require.Len(t, inserted, 2)
	assert.Less(t, inserted[0].ID, inserted[1].ID)
}

func TestInsertBatch_RejectsInvalidBeforeWriting(t *testing.T) {
	ctx := context.Background()
	s := newMemoryStore(t)

	_, err := s.InsertBatch(ctx, []model.Product{{Name: "Mouse"}, {Name: ""}})
	assert.ErrorIs(t, err, repository.ErrInvalidProduct)

	n, err := s.Count(ctx)
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestPriceLists(t *testing.T) {
	ctx := context.Background()
	s := newMemoryStore(t)

	n, err := s.CountPriceLists(ctx)
	require.NoError(t, err)
	assert.Zero(t, n)

	err = s.InsertPriceLists(ctx, []model.DealerPriceList{
		{Dealer: "Tech City", Prices: map[string]string{"Mouse": "$20", "Laptop": "$850"}},
		{Dealer: "Ez PC", Prices: map[string]string{"Laptop": "$1000"}},
		{Dealer: "Empty"},
	})
	require.NoError(t, err)

	list, err := s.FindPriceList(ctx, "Tech City")
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"Mouse": "$20", "Laptop": "$850"}, list.Prices)

	empty, err := s.FindPriceList(ctx, "Empty")
	require.NoError(t, err)
	assert.NotNil(t, empty.Prices)

	_, err = s.FindPriceList(ctx, "Unknown")
	assert.ErrorIs(t, err, repository.ErrNotFound)

	all, err := s.ListPriceLists(ctx)
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, "Tech City", all[0].Dealer)
	assert.Equal(t, "Ez PC", all[1].Dealer)

	err = s.InsertPriceLists(ctx, []model.DealerPriceList{{Dealer: "Ez PC"}})
	assert.ErrorIs(t, err, repository.ErrDuplicateName)

	err = s.InsertPriceLists(ctx, []model.DealerPriceList{{Dealer: " "}})
	assert.ErrorIs(t, err, repository.ErrInvalidProduct)

	n, err = s.CountPriceLists(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 3, n)
}

func TestConcurrentReads(t *testing.T) {
	ctx := context.Background()
	s := newMemoryStore(t)

	_, err := s.Insert(ctx, model.Product{Name: "Mouse", Dealers: []string{"DXC Electronics", "Tech City"}})
	require.NoError(t, err)

	var wg sync.WaitGroup
	errs := make(chan error, 50)
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			p, err := s.FindByName(ctx, "Mouse")
			if err == nil && len(p.Dealers) != 2 {
				err = errors.New("unexpected dealers")
			}
			errs <- err
		}()
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		assert.NoError(t, err)
	}
}

func TestOpen_FilePersistsAcrossReopen(t *testing.T) {
	ctx := context.Background()
	dsn := "sqlite://" + filepath.Join(t.TempDir(), "products.db")

	s, err := repository.Open(ctx, dsn)
	require.NoError(t, err)
	require.NoError(t, s.Migrate(ctx))
	_, err = s.Insert(ctx, model.Product{Name: "Laptop", Dealers: []string{"Tech City"}})
	require.NoError(t, err)
	require.NoError(t, s.Close())

	s, err = repository.Open(ctx, dsn)
	require.NoError(t, err)
	defer func() { _ = s.Close() }()
	require.NoError(t, s.Migrate(ctx))
	require.NoError(t, s.Ping(ctx))

	p, err := s.FindByName(ctx, "Laptop")
	require.NoError(t, err)
	assert.Equal(t, []string{"Tech City"}, p.Dealers)
}

func TestOpen_UnsupportedURL(t *testing.T) {
	ctx := context.Background()

	for _, dsn := range []string{"mysql://root@localhost/catalog", "products.db", "sqlite://"} {
		_, err := repository.Open(ctx, dsn)
		assert.ErrorIs(t, err, repository.ErrUnsupportedDSN, dsn)
	}
}
