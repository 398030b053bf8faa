package services

import (
	"cmp"
	"context"
	"fmt"
	"slices"
	"strings"

	"github.com/Modeva-Ecommerce/modeva-storefront/filters"
	"github.com/Modeva-Ecommerce/modeva-storefront/models"
)

// MemoryProvider serves a fixed catalog held in memory. Filtering goes
// through filters.Recompute, so results match the optimistic lists exactly.
type MemoryProvider struct {
	products []models.Product
}

func NewMemoryProvider(products []models.Product) *MemoryProvider {
	return &MemoryProvider{products: slices.Clone(products)}
}

func (m *MemoryProvider) ListProducts(ctx context.Context, params filters.Params) (models.ProductPage, error) {
	if err := ctx.Err(); err != nil {
		return models.ProductPage{}, err
	}

	state := stateFromParams(params)
	list := filters.Recompute(m.products, state)
	sortProducts(list, state.SortBy, state.SortOrder)

	total := len(list)
	start := pageOffset(state.Page, state.Limit, total)
	end := min(start+state.Limit, total)

	return models.ProductPage{
		Data:       slices.Clone(list[start:end]),
		Total:      total,
		Page:       state.Page,
		Limit:      state.Limit,
		TotalPages: models.TotalPages(total, state.Limit),
	}, nil
}

func (m *MemoryProvider) GetCount(ctx context.Context, params filters.Params) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	return len(filters.Recompute(m.products, stateFromParams(params))), nil
}

func (m *MemoryProvider) GetProduct(ctx context.Context, id string) (models.Product, error) {
	if err := ctx.Err(); err != nil {
		return models.Product{}, err
	}
	i := slices.IndexFunc(m.products, func(p models.Product) bool { return p.ID == id })
	if i < 0 {
		return models.Product{}, fmt.Errorf("product %s: %w", id, ErrNotFound)
	}
	return m.products[i], nil
}

func (m *MemoryProvider) BrandCounts(ctx context.Context) ([]models.FilterOption, error) {
	counts := make(map[string]int)
	for _, p := range m.products {
		counts[p.Brand]++
	}
	rows := make([]brandCount, 0, len(counts))
	for brand, n := range counts {
		rows = append(rows, brandCount{Brand: brand, Count: n})
	}
	return brandOptions(rows), ctx.Err()
}

func (m *MemoryProvider) CategoryTree(ctx context.Context) ([]models.CategoryData, error) {
	type key struct{ category, subcategory string }
	counts := make(map[key]int)
	for _, p := range m.products {
		counts[key{p.Category, p.Subcategory}]++
	}
	rows := make([]subcategoryCount, 0, len(counts))
	for k, n := range counts {
		rows = append(rows, subcategoryCount{Category: k.category, Subcategory: k.subcategory, Count: n})
	}
	return categoryTree(rows), ctx.Err()
}

func (m *MemoryProvider) RatingCounts(ctx context.Context) ([]models.FilterOption, error) {
	ratings := make([]float64, 0, len(m.products))
	for _, p := range m.products {
		ratings = append(ratings, p.Rating)
	}
	return ratingBuckets(ratings), ctx.Err()
}

func (m *MemoryProvider) PriceBounds(ctx context.Context) (*models.PriceRangeData, error) {
	if len(m.products) == 0 {
		return &models.PriceRangeData{Min: filters.DefaultMinPrice, Max: filters.DefaultMaxPrice}, ctx.Err()
	}
	bounds := &models.PriceRangeData{Min: m.products[0].Price, Max: m.products[0].Price}
	for _, p := range m.products[1:] {
		bounds.Min = min(bounds.Min, p.Price)
		bounds.Max = max(bounds.Max, p.Price)
	}
	return bounds, ctx.Err()
}

// sortProducts orders list in place. The default sort keeps catalog order.
func sortProducts(list []models.Product, sortBy, sortOrder string) {
	var compare func(a, b models.Product) int
	switch sortBy {
	case filters.SortPrice:
		compare = func(a, b models.Product) int { return cmp.Compare(a.Price, b.Price) }
	case filters.SortRating:
		compare = func(a, b models.Product) int { return cmp.Compare(a.Rating, b.Rating) }
	case filters.SortTitle:
		compare = func(a, b models.Product) int {
			return strings.Compare(strings.ToLower(a.Title), strings.ToLower(b.Title))
		}
	default:
		return
	}
	if sortOrder == "desc" {
		asc := compare
		compare = func(a, b models.Product) int { return asc(b, a) }
	}
	slices.SortStableFunc(list, compare)
}
