package filters

import (
	"errors"
	"math"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReduceResetsPageOnFilterChange(t *testing.T) {
	s := DefaultState()
	s.Page = 7

	next := Reduce(s, ToggleBrand{Brand: "Oxley"})
	assert.Equal(t, DefaultPage, next.Page)
	assert.Equal(t, []string{"Oxley"}, next.Brands)
	assert.Equal(t, 7, s.Page, "input state must not change")
	assert.Empty(t, s.Brands)
}

func TestReduceToggles(t *testing.T) {
	s := Reduce(DefaultState(), ToggleBrand{Brand: "Weave"})
	s = Reduce(s, ToggleBrand{Brand: "Oxley"})
	assert.Equal(t, []string{"Oxley", "Weave"}, s.Brands)
	s = Reduce(s, ToggleBrand{Brand: "Weave"})
	assert.Equal(t, []string{"Oxley"}, s.Brands)

	s = Reduce(s, ToggleRating{Rating: 4})
	s = Reduce(s, ToggleRating{Rating: 2})
	s = Reduce(s, ToggleRating{Rating: 9})
	assert.Equal(t, []int{2, 4}, s.Ratings)
	s = Reduce(s, ToggleRating{Rating: 2})
	assert.Equal(t, []int{4}, s.Ratings)
}

func TestReducePriceRangeKeepsMinBelowMax(t *testing.T) {
	s := Reduce(DefaultState(), SetPriceRange{Min: 80, Max: 20})
	assert.Equal(t, PriceRange{Min: 20, Max: 80}, s.PriceRange)
}

func TestReduceIgnoresInvalidPaging(t *testing.T) {
	s := Reduce(DefaultState(), SetPage{Page: 3})
	s = Reduce(s, SetPage{Page: 0})
	assert.Equal(t, 3, s.Page)

	s = Reduce(s, SetLimit{Limit: -1})
	assert.Equal(t, DefaultLimit, s.Limit)
	assert.Equal(t, 3, s.Page)

	s = Reduce(s, SetLimit{Limit: 40})
	assert.Equal(t, 40, s.Limit)
	assert.Equal(t, DefaultPage, s.Page)
}

func TestReduceResetKeepsLimitAndSort(t *testing.T) {
	s := DefaultState()
	s = Reduce(s, SetLimit{Limit: 12})
	s = Reduce(s, SetSort{By: "price", Order: "DESC"})
	s = Reduce(s, SelectSubcategory{Subcategory: "shoes"})
	s = Reduce(s, SetBrands{Brands: []string{"Oxley"}})
	s = Reduce(s, SetSearch{Query: "boot"})
	s = Reduce(s, SetPriceRange{Min: 1, Max: 2})

	s = Reduce(s, ResetFilters{})
	assert.True(t, s.Unfiltered())
	assert.Equal(t, 12, s.Limit)
	assert.Equal(t, SortPrice, s.SortBy)
	assert.Equal(t, "desc", s.SortOrder)
}

func TestReducePriceRangeIgnoresNonFinite(t *testing.T) {
	s := Reduce(DefaultState(), SetPriceRange{Min: 10, Max: 20})
	for _, bad := range []SetPriceRange{
		{Min: math.NaN(), Max: 20},
		{Min: 10, Max: math.Inf(1)},
		{Min: math.Inf(-1), Max: math.NaN()},
	} {
		assert.Equal(t, PriceRange{Min: 10, Max: 20}, Reduce(s, bad).PriceRange)
	}
}

func TestReduceClampsPage(t *testing.T) {
	s := Reduce(DefaultState(), SetPage{Page: math.MaxInt})
	assert.Equal(t, MaxPage, s.Page)

	_, err := DecodeAction([]byte(`{"type":"SET_PAGE","page":9223372036854775807}`))
	assert.Error(t, err)
}

func TestReduceNilActionIsNoop(t *testing.T) {
	assert.Equal(t, DefaultState(), Reduce(DefaultState(), nil))
}

func TestStoreDispatchConcurrent(t *testing.T) {
	st := NewStore(DefaultState())
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			st.Dispatch(ToggleRating{Rating: 3})
		}()
	}
	wg.Wait()
	// An even number of toggles leaves the rating unselected.
	assert.Empty(t, st.State().Ratings)
}

func TestOptimisticActionFor(t *testing.T) {
	next := Reduce(DefaultState(), SetBrands{Brands: []string{"Stride"}})
	opt, ok := OptimisticActionFor(SetBrands{}, next)
	require.True(t, ok)
	assert.Equal(t, FilterBrands{Brands: []string{"Stride"}}, opt)

	next = Reduce(next, SetPriceRange{Min: 30, Max: 5})
	opt, ok = OptimisticActionFor(SetPriceRange{}, next)
	require.True(t, ok)
	assert.Equal(t, FilterPrice{Min: 5, Max: 30}, opt)

	// back to the default range is not a price filter
	reset := Reduce(next, SetPriceRange{Min: DefaultMinPrice, Max: DefaultMaxPrice})
	_, ok = OptimisticActionFor(SetPriceRange{}, reset)
	assert.False(t, ok)

	opt, ok = OptimisticActionFor(ResetFilters{}, next)
	require.True(t, ok)
	assert.Equal(t, ClearFilters{}, opt)

	_, ok = OptimisticActionFor(SetPage{Page: 2}, next)
	assert.False(t, ok)
}

func TestDecodeAction(t *testing.T) {
	a, err := DecodeAction([]byte(`{"type":"SET_PRICE_RANGE","min":10,"max":20}`))
	require.NoError(t, err)
	assert.Equal(t, SetPriceRange{Min: 10, Max: 20}, a)

	a, err = DecodeAction([]byte(`{"type":"TOGGLE_RATING","rating":0}`))
	require.NoError(t, err)
	assert.Equal(t, ToggleRating{Rating: 0}, a)

	a, err = DecodeAction([]byte(`{"type":"RESET_FILTERS"}`))
	require.NoError(t, err)
	assert.Equal(t, ResetFilters{}, a)

	_, err = DecodeAction([]byte(`{"type":"FILTER_COLOUR"}`))
	assert.True(t, errors.Is(err, ErrUnknownAction))

	_, err = DecodeAction([]byte(`{"type":"SET_PRICE_RANGE","min":10}`))
	assert.Error(t, err)

	_, err = DecodeAction([]byte(`not json`))
	assert.Error(t, err)
}
