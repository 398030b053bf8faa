package services

import (
	"context"
	"errors"
	"slices"
	"strconv"
	"strings"

	"github.com/Modeva-Ecommerce/modeva-storefront/filters"
	"github.com/Modeva-Ecommerce/modeva-storefront/models"
)

var (
	ErrNotFound        = errors.New("not found")
	ErrSessionNotFound = errors.New("session not found")
)

// ProductProvider serves product listings for a parameter record produced by
// filters.ToParams.
type ProductProvider interface {
	ListProducts(ctx context.Context, params filters.Params) (models.ProductPage, error)
	GetCount(ctx context.Context, params filters.Params) (int, error)
	GetProduct(ctx context.Context, id string) (models.Product, error)
}

// MetadataProvider serves the data behind the storefront filter panel.
type MetadataProvider interface {
	BrandCounts(ctx context.Context) ([]models.FilterOption, error)
	CategoryTree(ctx context.Context) ([]models.CategoryData, error)
	RatingCounts(ctx context.Context) ([]models.FilterOption, error)
	PriceBounds(ctx context.Context) (*models.PriceRangeData, error)
}

// Catalog is a provider of both listings and filter metadata.
type Catalog interface {
	ProductProvider
	MetadataProvider
}

// stateFromParams reads a parameter record back into a normalized state, the
// same way an HTTP query string is read.
func stateFromParams(params filters.Params) filters.FilterState {
	return filters.FromValues(params.Values())
}

// pageOffset is the index of the first row of page, capped at total. Pages
// past the end never multiply out, so huge page numbers cannot overflow.
func pageOffset(page, limit, total int) int {
	if page <= 1 || limit <= 0 {
		return 0
	}
	if page-1 > total/limit {
		return total
	}
	return min((page-1)*limit, total)
}

// ─────────────────────────────────────────────────────────────
// Metadata helpers shared by providers
// ─────────────────────────────────────────────────────────────

type brandCount struct {
	Brand string
	Count int
}

func brandOptions(rows []brandCount) []models.FilterOption {
	out := make([]models.FilterOption, 0, len(rows))
	for _, r := range rows {
		out = append(out, models.FilterOption{Label: r.Brand, Value: r.Brand, Count: r.Count})
	}
	slices.SortFunc(out, func(a, b models.FilterOption) int { return strings.Compare(a.Value, b.Value) })
	return out
}

type subcategoryCount struct {
	Category    string
	Subcategory string
	Count       int
}

// categoryTree groups subcategory counts under their category, both sorted
// by name.
func categoryTree(rows []subcategoryCount) []models.CategoryData {
	index := make(map[string]int)
	var tree []models.CategoryData
	for _, r := range rows {
		i, ok := index[r.Category]
		if !ok {
			i = len(tree)
			index[r.Category] = i
			tree = append(tree, models.CategoryData{Name: r.Category, Subcategories: []models.FilterOption{}})
		}
		tree[i].Count += r.Count
		tree[i].Subcategories = append(tree[i].Subcategories, models.FilterOption{
			Label: r.Subcategory,
			Value: r.Subcategory,
			Count: r.Count,
		})
	}

	slices.SortFunc(tree, func(a, b models.CategoryData) int { return strings.Compare(a.Name, b.Name) })
	for i := range tree {
		slices.SortFunc(tree[i].Subcategories, func(a, b models.FilterOption) int {
			return strings.Compare(a.Value, b.Value)
		})
	}
	if tree == nil {
		tree = []models.CategoryData{}
	}
	return tree
}

// ratingBuckets counts products per floored rating, highest first. Empty
// buckets are left out.
func ratingBuckets(ratings []float64) []models.FilterOption {
	var counts [filters.MaxRating + 1]int
	for _, r := range ratings {
		b := int(r)
		if b < filters.MinRating || b > filters.MaxRating {
			continue
		}
		counts[b]++
	}

	out := make([]models.FilterOption, 0, len(counts))
	for b := filters.MaxRating; b >= filters.MinRating; b-- {
		if counts[b] == 0 {
			continue
		}
		label := strconv.Itoa(b) + " stars"
		if b == 1 {
			label = "1 star"
		}
		out = append(out, models.FilterOption{Label: label, Value: strconv.Itoa(b), Count: counts[b]})
	}
	return out
}
