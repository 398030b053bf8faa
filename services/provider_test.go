package services

import (
	"context"
	"errors"
	"math"
	"net/url"
	"testing"

	"github.com/Modeva-Ecommerce/modeva-storefront/filters"
	"github.com/Modeva-Ecommerce/modeva-storefront/fixtures"
	"github.com/Modeva-Ecommerce/modeva-storefront/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func fixtureProducts(t *testing.T) []models.Product {
	t.Helper()
	products, err := fixtures.Products()
	require.NoError(t, err)
	return products
}

func newSQLiteProvider(t *testing.T) *GormProvider {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, db.AutoMigrate(&models.Product{}))
	require.NoError(t, db.CreateInBatches(fixtureProducts(t), 50).Error)
	return NewGormProvider(db)
}

func providers(t *testing.T) map[string]Catalog {
	return map[string]Catalog{
		"memory": NewMemoryProvider(fixtureProducts(t)),
		"gorm":   newSQLiteProvider(t),
	}
}

func titles(list []models.Product) []string {
	out := make([]string, 0, len(list))
	for _, p := range list {
		out = append(out, p.Title)
	}
	return out
}

func paramsFor(actions ...filters.Action) filters.Params {
	s := filters.DefaultState()
	for _, a := range actions {
		s = filters.Reduce(s, a)
	}
	return filters.ToParams(s)
}

func TestProviderListing(t *testing.T) {
	ctx := context.Background()
	for name, p := range providers(t) {
		t.Run(name, func(t *testing.T) {
			page, err := p.ListProducts(ctx, paramsFor())
			require.NoError(t, err)
			assert.Equal(t, 32, page.Total)
			assert.Len(t, page.Data, 20)
			assert.Equal(t, 2, page.TotalPages)

			page, err = p.ListProducts(ctx, paramsFor(filters.SetPage{Page: 2}))
			require.NoError(t, err)
			assert.Len(t, page.Data, 12)
			assert.Equal(t, 2, page.Page)

			page, err = p.ListProducts(ctx, paramsFor(filters.SetPage{Page: 9}))
			require.NoError(t, err)
			assert.Empty(t, page.Data)
			assert.Equal(t, 32, page.Total)
		})
	}
}

func TestProviderHugePageIsEmpty(t *testing.T) {
	ctx := context.Background()
	huge := filters.FromValues(url.Values{filters.ParamPage: {"922337203685477580"}})
	require.Equal(t, filters.MaxPage, huge.Page)

	for name, p := range providers(t) {
		t.Run(name, func(t *testing.T) {
			page, err := p.ListProducts(ctx, filters.ToParams(huge))
			require.NoError(t, err)
			assert.Empty(t, page.Data)
			assert.Equal(t, 32, page.Total)
			assert.Equal(t, filters.MaxPage, page.Page)

			page, err = p.ListProducts(ctx, paramsFor(filters.SetPage{Page: math.MaxInt}))
			require.NoError(t, err)
			assert.Empty(t, page.Data)
		})
	}
}

func TestPageOffset(t *testing.T) {
	assert.Equal(t, 0, pageOffset(1, 20, 32))
	assert.Equal(t, 20, pageOffset(2, 20, 32))
	assert.Equal(t, 32, pageOffset(3, 20, 32))
	assert.Equal(t, 32, pageOffset(math.MaxInt, 100, 32))
	assert.Equal(t, 0, pageOffset(5, 20, 0))
}

func TestProviderFilters(t *testing.T) {
	ctx := context.Background()
	for name, p := range providers(t) {
		t.Run(name, func(t *testing.T) {
			page, err := p.ListProducts(ctx, paramsFor(
				filters.SelectSubcategory{Subcategory: "Sneakers"},
				filters.SetSort{By: filters.SortTitle, Order: "asc"},
			))
			require.NoError(t, err)
			assert.Equal(t, []string{"Canvas Low Top", "Leather Court Sneaker", "Retro Runner", "Trail Sneaker"}, titles(page.Data))

			page, err = p.ListProducts(ctx, paramsFor(
				filters.SelectSubcategory{Subcategory: "Sneakers"},
				filters.SetSort{By: filters.SortPrice, Order: "desc"},
			))
			require.NoError(t, err)
			assert.Equal(t, []string{"Leather Court Sneaker", "Trail Sneaker", "Retro Runner", "Canvas Low Top"}, titles(page.Data))

			n, err := p.GetCount(ctx, paramsFor(filters.ToggleBrand{Brand: "Halden"}, filters.ToggleRating{Rating: 4}))
			require.NoError(t, err)
			assert.Equal(t, 4, n)

			page, err = p.ListProducts(ctx, paramsFor(
				filters.SetPriceRange{Min: 60, Max: 50},
				filters.SetSort{By: filters.SortTitle},
			))
			require.NoError(t, err)
			assert.Equal(t, []string{"Canvas Low Top", "Knit Bodycon Dress", "Linen Camp Shirt", "Oversized Poplin Shirt", "Slim Chino"}, titles(page.Data))

			n, err = p.GetCount(ctx, paramsFor(filters.SetSearch{Query: "LINEN"}))
			require.NoError(t, err)
			assert.Equal(t, 2, n)
		})
	}
}

func TestProviderGetProduct(t *testing.T) {
	ctx := context.Background()
	for name, p := range providers(t) {
		t.Run(name, func(t *testing.T) {
			product, err := p.GetProduct(ctx, "0191d3a0-5b2c-7001-8007-4f6e2a9c0001")
			require.NoError(t, err)
			assert.Equal(t, "Linen Wrap Dress", product.Title)

			_, err = p.GetProduct(ctx, "0191d3a0-0000-7000-8000-000000000000")
			assert.True(t, errors.Is(err, ErrNotFound))
		})
	}
}

func TestProviderMetadata(t *testing.T) {
	ctx := context.Background()
	for name, p := range providers(t) {
		t.Run(name, func(t *testing.T) {
			brands, err := p.BrandCounts(ctx)
			require.NoError(t, err)
			require.Len(t, brands, 8)
			assert.Equal(t, models.FilterOption{Label: "Aurelle", Value: "Aurelle", Count: 4}, brands[0])

			tree, err := p.CategoryTree(ctx)
			require.NoError(t, err)
			require.Len(t, tree, 3)
			assert.Equal(t, "Accessories", tree[0].Name)
			assert.Equal(t, 7, tree[0].Count)
			assert.Equal(t, "Men", tree[1].Name)
			assert.Equal(t, 13, tree[1].Count)

			ratings, err := p.RatingCounts(ctx)
			require.NoError(t, err)
			require.Len(t, ratings, 6)
			assert.Equal(t, models.FilterOption{Label: "5 stars", Value: "5", Count: 1}, ratings[0])
			assert.Equal(t, models.FilterOption{Label: "4 stars", Value: "4", Count: 17}, ratings[1])

			bounds, err := p.PriceBounds(ctx)
			require.NoError(t, err)
			assert.Equal(t, 15.0, bounds.Min)
			assert.Equal(t, 1250.0, bounds.Max)
		})
	}
}

func TestMemoryProviderDoesNotShareBacking(t *testing.T) {
	p := NewMemoryProvider(fixtureProducts(t))
	page, err := p.ListProducts(context.Background(), paramsFor())
	require.NoError(t, err)
	page.Data[0].Title = "changed"

	again, err := p.ListProducts(context.Background(), paramsFor())
	require.NoError(t, err)
	assert.Equal(t, "Linen Wrap Dress", again.Data[0].Title)
}

func TestMemoryProviderHonoursCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := NewMemoryProvider(nil).ListProducts(ctx, paramsFor())
	assert.ErrorIs(t, err, context.Canceled)
}

func TestEmptyCatalogPriceBounds(t *testing.T) {
	bounds, err := NewMemoryProvider(nil).PriceBounds(context.Background())
	require.NoError(t, err)
	assert.Equal(t, &models.PriceRangeData{Min: 0, Max: 1000}, bounds)
}
