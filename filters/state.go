// Package filters holds the storefront browsing pipeline: the filter state
// store and its reducer, the request parameter mapper, the optimistic list
// updater and the pagination window calculator. Everything here is pure and
// synchronous apart from Store, which serializes Dispatch calls.
package filters

import (
	"math"
	"slices"
	"strings"
	"sync"
)

const (
	DefaultPage      = 1
	DefaultLimit     = 20
	MaxLimit         = 100
	// MaxPage keeps (page-1)*limit inside int for any valid limit.
	MaxPage          = math.MaxInt / MaxLimit
	DefaultSortBy    = "default"
	DefaultSortOrder = "asc"
	DefaultMinPrice  = 0.0
	DefaultMaxPrice  = 1000.0
	MinRating        = 0
	MaxRating        = 5
)

// Sort keys understood by the providers.
const (
	SortDefault = "default"
	SortPrice   = "price"
	SortRating  = "rating"
	SortTitle   = "title"
)

type PriceRange struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

// DefaultPriceRange is the unset price filter.
var DefaultPriceRange = PriceRange{Min: DefaultMinPrice, Max: DefaultMaxPrice}

// FilterState is the full set of browse selections for one visitor. Brands
// and Ratings are sets: kept sorted and free of duplicates by the reducer.
type FilterState struct {
	Subcategory string     `json:"subcategory"`
	Brands      []string   `json:"selectedBrands"`
	Ratings     []int      `json:"selectedRatings"`
	PriceRange  PriceRange `json:"priceRange"`
	Search      string     `json:"searchQuery"`
	Page        int        `json:"currentPage"`
	Limit       int        `json:"limit"`
	SortBy      string     `json:"sortBy"`
	SortOrder   string     `json:"sortOrder"`
}

// DefaultState returns the state of a visitor who has selected nothing.
func DefaultState() FilterState {
	return FilterState{
		Brands:     []string{},
		Ratings:    []int{},
		PriceRange: DefaultPriceRange,
		Page:       DefaultPage,
		Limit:      DefaultLimit,
		SortBy:     DefaultSortBy,
		SortOrder:  DefaultSortOrder,
	}
}

// Unfiltered reports whether no filter dimension or search text is active.
// Paging and sorting are not filters.
func (s FilterState) Unfiltered() bool {
	return s.Subcategory == "" &&
		len(s.Brands) == 0 &&
		len(s.Ratings) == 0 &&
		s.PriceRange == DefaultPriceRange &&
		s.Search == ""
}

func (s FilterState) clone() FilterState {
	s.Brands = slices.Clone(s.Brands)
	s.Ratings = slices.Clone(s.Ratings)
	if s.Brands == nil {
		s.Brands = []string{}
	}
	if s.Ratings == nil {
		s.Ratings = []int{}
	}
	return s
}

// ─────────────────────────────────────────────────────────────
// Store actions
// ─────────────────────────────────────────────────────────────

// Action is a named change to a FilterState. The set of actions is closed.
type Action interface {
	reduce(FilterState) FilterState
}

type (
	SelectSubcategory struct{ Subcategory string }
	SetBrands         struct{ Brands []string }
	ToggleBrand       struct{ Brand string }
	SetRatings        struct{ Ratings []int }
	ToggleRating      struct{ Rating int }
	SetPriceRange     struct{ Min, Max float64 }
	SetSearch         struct{ Query string }
	SetPage           struct{ Page int }
	SetLimit          struct{ Limit int }
	SetSort           struct{ By, Order string }
	ResetFilters      struct{}
)

func (a SelectSubcategory) reduce(s FilterState) FilterState {
	s.Subcategory = strings.TrimSpace(a.Subcategory)
	s.Page = DefaultPage
	return s
}

func (a SetBrands) reduce(s FilterState) FilterState {
	s.Brands = NormalizeBrands(a.Brands)
	s.Page = DefaultPage
	return s
}

func (a ToggleBrand) reduce(s FilterState) FilterState {
	brand := strings.TrimSpace(a.Brand)
	if brand == "" {
		return s
	}
	if i := slices.Index(s.Brands, brand); i >= 0 {
		s.Brands = slices.Delete(s.Brands, i, i+1)
	} else {
		s.Brands = NormalizeBrands(append(s.Brands, brand))
	}
	s.Page = DefaultPage
	return s
}

func (a SetRatings) reduce(s FilterState) FilterState {
	s.Ratings = NormalizeRatings(a.Ratings)
	s.Page = DefaultPage
	return s
}

func (a ToggleRating) reduce(s FilterState) FilterState {
	if a.Rating < MinRating || a.Rating > MaxRating {
		return s
	}
	if i := slices.Index(s.Ratings, a.Rating); i >= 0 {
		s.Ratings = slices.Delete(s.Ratings, i, i+1)
	} else {
		s.Ratings = NormalizeRatings(append(s.Ratings, a.Rating))
	}
	s.Page = DefaultPage
	return s
}

// reduce keeps min <= max by swapping reversed bounds. Non-finite bounds
// leave the state unchanged.
func (a SetPriceRange) reduce(s FilterState) FilterState {
	if !finite(a.Min) || !finite(a.Max) {
		return s
	}
	lo, hi := a.Min, a.Max
	if lo > hi {
		lo, hi = hi, lo
	}
	s.PriceRange = PriceRange{Min: lo, Max: hi}
	s.Page = DefaultPage
	return s
}

func (a SetSearch) reduce(s FilterState) FilterState {
	s.Search = strings.TrimSpace(a.Query)
	s.Page = DefaultPage
	return s
}

func (a SetPage) reduce(s FilterState) FilterState {
	if a.Page > 0 {
		s.Page = min(a.Page, MaxPage)
	}
	return s
}

func (a SetLimit) reduce(s FilterState) FilterState {
	if a.Limit > 0 && a.Limit <= MaxLimit {
		s.Limit = a.Limit
		s.Page = DefaultPage
	}
	return s
}

func (a SetSort) reduce(s FilterState) FilterState {
	s.SortBy = NormalizeSortBy(a.By)
	s.SortOrder = NormalizeSortOrder(a.Order)
	s.Page = DefaultPage
	return s
}

// reduce clears every filter dimension and the search text. Limit and sort
// survive a reset.
func (ResetFilters) reduce(s FilterState) FilterState {
	s.Subcategory = ""
	s.Brands = []string{}
	s.Ratings = []int{}
	s.PriceRange = DefaultPriceRange
	s.Search = ""
	s.Page = DefaultPage
	return s
}

// Reduce returns the state that results from applying a to s. The input is
// never modified. A nil action leaves the state unchanged.
func Reduce(s FilterState, a Action) FilterState {
	s = s.clone()
	if a == nil {
		return s
	}
	return a.reduce(s)
}

// ─────────────────────────────────────────────────────────────
// Store
// ─────────────────────────────────────────────────────────────

// Store owns one FilterState and applies actions to it one at a time.
type Store struct {
	mu    sync.Mutex
	state FilterState
}

func NewStore(initial FilterState) *Store {
	return &Store{state: initial.clone()}
}

// Dispatch reduces the current state with a and returns the new state.
func (s *Store) Dispatch(a Action) FilterState {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = Reduce(s.state, a)
	return s.state.clone()
}

// State returns a copy of the current state.
func (s *Store) State() FilterState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.clone()
}

// OptimisticActionFor maps a store action to the list filter for the
// dimension it touched, read from the post-action state. Actions that do not
// map onto a single list filter (paging, sorting, search, a price range reset
// to the default) report false.
func OptimisticActionFor(a Action, next FilterState) (OptimisticAction, bool) {
	switch a.(type) {
	case SelectSubcategory:
		return FilterSubcategory{Subcategory: next.Subcategory}, true
	case SetBrands, ToggleBrand:
		return FilterBrands{Brands: slices.Clone(next.Brands)}, true
	case SetRatings, ToggleRating:
		return FilterRatings{Ratings: slices.Clone(next.Ratings)}, true
	case SetPriceRange:
		// The default range is no filter at all; callers recompute instead.
		if next.PriceRange == DefaultPriceRange {
			return nil, false
		}
		return FilterPrice{Min: next.PriceRange.Min, Max: next.PriceRange.Max}, true
	case ResetFilters:
		return ClearFilters{}, true
	}
	return nil, false
}

// ─────────────────────────────────────────────────────────────
// Normalizers
// ─────────────────────────────────────────────────────────────

// NormalizeBrands trims, drops empties, de-duplicates and sorts.
func NormalizeBrands(brands []string) []string {
	out := make([]string, 0, len(brands))
	for _, b := range brands {
		if b = strings.TrimSpace(b); b != "" {
			out = append(out, b)
		}
	}
	slices.Sort(out)
	return slices.Compact(out)
}

// NormalizeRatings drops values outside 0..5, de-duplicates and sorts.
func NormalizeRatings(ratings []int) []int {
	out := make([]int, 0, len(ratings))
	for _, r := range ratings {
		if r >= MinRating && r <= MaxRating {
			out = append(out, r)
		}
	}
	slices.Sort(out)
	return slices.Compact(out)
}

func finite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}

func NormalizeSortBy(by string) string {
	switch strings.ToLower(strings.TrimSpace(by)) {
	case SortPrice:
		return SortPrice
	case SortRating:
		return SortRating
	case SortTitle, "name":
		return SortTitle
	default:
		return SortDefault
	}
}

func NormalizeSortOrder(order string) string {
	if strings.EqualFold(strings.TrimSpace(order), "desc") {
		return "desc"
	}
	return "asc"
}
