package filters

import (
	"fmt"
	"math"
	"slices"
	"strings"

	"github.com/Modeva-Ecommerce/modeva-storefront/models"
	"go.uber.org/zap"
)

// OptimisticAction narrows a product list along one filter dimension. It is
// created per interaction and consumed once by Apply.
type OptimisticAction interface {
	optimistic()
}

type (
	// FilterSubcategory keeps products of one subcategory. Empty passes all.
	FilterSubcategory struct{ Subcategory string }
	// FilterBrands keeps products whose brand is listed. Empty passes all.
	FilterBrands struct{ Brands []string }
	// FilterRatings keeps products whose floored rating is listed. Empty passes all.
	FilterRatings struct{ Ratings []int }
	// FilterPrice keeps products priced within [Min, Max].
	FilterPrice struct{ Min, Max float64 }
	// ClearFilters returns the basis list unfiltered.
	ClearFilters struct{}
)

func (FilterSubcategory) optimistic() {}
func (FilterBrands) optimistic()      {}
func (FilterRatings) optimistic()     {}
func (FilterPrice) optimistic()       {}
func (ClearFilters) optimistic()      {}

// Apply computes the list a visitor should see right after action, before the
// provider confirms it. When base is non-nil it is filtered instead of
// current, so filters are re-applied to a snapshot rather than compounded.
//
// Apply never modifies its inputs and keeps the relative order of surviving
// products. An action it does not know is logged and current is returned.
func Apply(current []models.Product, action OptimisticAction, base []models.Product) []models.Product {
	basis := current
	if base != nil {
		basis = base
	}

	switch a := action.(type) {
	case FilterSubcategory:
		if a.Subcategory == "" {
			return slices.Clone(basis)
		}
		return keep(basis, func(p models.Product) bool { return p.Subcategory == a.Subcategory })
	case FilterBrands:
		if len(a.Brands) == 0 {
			return slices.Clone(basis)
		}
		return keep(basis, func(p models.Product) bool { return slices.Contains(a.Brands, p.Brand) })
	case FilterRatings:
		if len(a.Ratings) == 0 {
			return slices.Clone(basis)
		}
		return keep(basis, func(p models.Product) bool { return slices.Contains(a.Ratings, floorRating(p.Rating)) })
	case FilterPrice:
		return keep(basis, func(p models.Product) bool { return p.Price >= a.Min && p.Price <= a.Max })
	case ClearFilters:
		return slices.Clone(basis)
	default:
		zap.L().Warn("unknown optimistic action, keeping current list",
			zap.String("action", fmt.Sprintf("%T", action)),
		)
		return current
	}
}

// Recompute applies every active dimension of state, plus its search text,
// to base. The price range only filters when it differs from the default,
// matching what ToParams sends upstream.
func Recompute(base []models.Product, state FilterState) []models.Product {
	list := Apply(base, FilterSubcategory{Subcategory: state.Subcategory}, nil)
	list = Apply(list, FilterBrands{Brands: state.Brands}, nil)
	list = Apply(list, FilterRatings{Ratings: state.Ratings}, nil)
	if state.PriceRange != DefaultPriceRange {
		list = Apply(list, FilterPrice{Min: state.PriceRange.Min, Max: state.PriceRange.Max}, nil)
	}
	if q := strings.ToLower(strings.TrimSpace(state.Search)); q != "" {
		list = keep(list, func(p models.Product) bool { return MatchesSearch(p, q) })
	}
	return list
}

// MatchesSearch reports whether the lower-cased query occurs in the title,
// brand or description of p.
func MatchesSearch(p models.Product, lowerQuery string) bool {
	return strings.Contains(strings.ToLower(p.Title), lowerQuery) ||
		strings.Contains(strings.ToLower(p.Brand), lowerQuery) ||
		strings.Contains(strings.ToLower(p.Description), lowerQuery)
}

func floorRating(r float64) int {
	return int(math.Floor(r))
}

func keep(list []models.Product, pred func(models.Product) bool) []models.Product {
	out := make([]models.Product, 0, len(list))
	for _, p := range list {
		if pred(p) {
			out = append(out, p)
		}
	}
	return out
}
