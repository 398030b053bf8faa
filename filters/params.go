package filters

import (
	"net/url"
	"slices"
	"strconv"
	"strings"
)

// Query-string keys produced by ToParams and read by FromValues.
const (
	ParamPage        = "p"
	ParamLimit       = "l"
	ParamSortBy      = "sortBy"
	ParamSortOrder   = "sortOrder"
	ParamSubcategory = "subcategory"
	ParamBrand       = "brand"
	ParamRating      = "rating"
	ParamMinPrice    = "minPrice"
	ParamMaxPrice    = "maxPrice"
	ParamSearch      = "q"
)

// Params is a flat request-parameter record. Values are int, float64,
// string, []string or []int.
type Params map[string]any

// ToParams translates a filter state into request parameters. Paging and sort
// keys are always present; every other key is omitted while it holds its
// unset value so emitted query strings stay minimal.
func ToParams(s FilterState) Params {
	p := Params{
		ParamPage:      s.Page,
		ParamLimit:     s.Limit,
		ParamSortBy:    s.SortBy,
		ParamSortOrder: s.SortOrder,
	}
	if s.Subcategory != "" {
		p[ParamSubcategory] = s.Subcategory
	}
	if len(s.Brands) > 0 {
		p[ParamBrand] = slices.Clone(s.Brands)
	}
	if len(s.Ratings) > 0 {
		p[ParamRating] = slices.Clone(s.Ratings)
	}
	if s.PriceRange.Min != DefaultMinPrice {
		p[ParamMinPrice] = s.PriceRange.Min
	}
	if s.PriceRange.Max != DefaultMaxPrice {
		p[ParamMaxPrice] = s.PriceRange.Max
	}
	if s.Search != "" {
		p[ParamSearch] = s.Search
	}
	return p
}

// Values renders p as url.Values. Unsupported value types are skipped.
func (p Params) Values() url.Values {
	v := make(url.Values, len(p))
	for key, raw := range p {
		switch val := raw.(type) {
		case string:
			v.Set(key, val)
		case int:
			v.Set(key, strconv.Itoa(val))
		case float64:
			v.Set(key, strconv.FormatFloat(val, 'f', -1, 64))
		case []string:
			for _, s := range val {
				v.Add(key, s)
			}
		case []int:
			for _, n := range val {
				v.Add(key, strconv.Itoa(n))
			}
		}
	}
	return v
}

// Encode returns the query string for p with keys and repeated values in a
// stable order, so equal records always encode identically.
func (p Params) Encode() string {
	v := p.Values()
	for key := range v {
		slices.Sort(v[key])
	}
	return v.Encode()
}

// CountKey serializes the parameters that affect a product count. Paging and
// sort keys are dropped since they never change the total.
func CountKey(p Params) string {
	rest := make(Params, len(p))
	for key, val := range p {
		switch key {
		case ParamPage, ParamLimit, ParamSortBy, ParamSortOrder:
			continue
		}
		rest[key] = val
	}
	if key := rest.Encode(); key != "" {
		return key
	}
	return "all"
}

// FromValues parses a query string in ToParams format back into a normalized
// FilterState. Malformed values fall back to their defaults.
func FromValues(v url.Values) FilterState {
	s := DefaultState()

	if page, err := strconv.Atoi(v.Get(ParamPage)); err == nil && page > 0 {
		s.Page = min(page, MaxPage)
	}
	if limit, err := strconv.Atoi(v.Get(ParamLimit)); err == nil && limit > 0 && limit <= MaxLimit {
		s.Limit = limit
	}
	s.SortBy = NormalizeSortBy(v.Get(ParamSortBy))
	s.SortOrder = NormalizeSortOrder(v.Get(ParamSortOrder))
	s.Subcategory = strings.TrimSpace(v.Get(ParamSubcategory))
	s.Brands = NormalizeBrands(v[ParamBrand])

	ratings := make([]int, 0, len(v[ParamRating]))
	for _, raw := range v[ParamRating] {
		if r, err := strconv.Atoi(strings.TrimSpace(raw)); err == nil {
			ratings = append(ratings, r)
		}
	}
	s.Ratings = NormalizeRatings(ratings)

	lo, hi := DefaultMinPrice, DefaultMaxPrice
	if f, err := strconv.ParseFloat(v.Get(ParamMinPrice), 64); err == nil && finite(f) {
		lo = f
	}
	if f, err := strconv.ParseFloat(v.Get(ParamMaxPrice), 64); err == nil && finite(f) {
		hi = f
	}
	if lo > hi {
		lo, hi = hi, lo
	}
	s.PriceRange = PriceRange{Min: lo, Max: hi}

	s.Search = strings.TrimSpace(v.Get(ParamSearch))
	return s
}
