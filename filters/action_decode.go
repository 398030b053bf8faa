package filters

import (
	"encoding/json"
	"errors"
	"fmt"
)

// ErrUnknownAction is returned when an action's type tag is not recognised.
var ErrUnknownAction = errors.New("unknown filter action")

// Wire tags for store actions.
const (
	TagSelectSubcategory = "SELECT_SUBCATEGORY"
	TagSetBrands         = "SET_BRANDS"
	TagToggleBrand       = "TOGGLE_BRAND"
	TagSetRatings        = "SET_RATINGS"
	TagToggleRating      = "TOGGLE_RATING"
	TagSetPriceRange     = "SET_PRICE_RANGE"
	TagSetSearch         = "SET_SEARCH"
	TagSetPage           = "SET_PAGE"
	TagSetLimit          = "SET_LIMIT"
	TagSetSort           = "SET_SORT"
	TagResetFilters      = "RESET_FILTERS"
)

type actionEnvelope struct {
	Type        string   `json:"type"`
	Subcategory string   `json:"subcategory"`
	Brands      []string `json:"brands"`
	Brand       string   `json:"brand"`
	Ratings     []int    `json:"ratings"`
	Rating      *int     `json:"rating"`
	Min         *float64 `json:"min"`
	Max         *float64 `json:"max"`
	Query       string   `json:"query"`
	Page        int      `json:"page"`
	Limit       int      `json:"limit"`
	SortBy      string   `json:"sortBy"`
	SortOrder   string   `json:"sortOrder"`
}

// DecodeAction parses a JSON action such as
// {"type":"SET_PRICE_RANGE","min":10,"max":20}. Unknown tags fail with
// ErrUnknownAction instead of being silently ignored.
func DecodeAction(data []byte) (Action, error) {
	var env actionEnvelope
	if err := json.Unmarshal(data, &env); err != nil {
		return nil, fmt.Errorf("decode filter action: %w", err)
	}

	switch env.Type {
	case TagSelectSubcategory:
		return SelectSubcategory{Subcategory: env.Subcategory}, nil
	case TagSetBrands:
		return SetBrands{Brands: env.Brands}, nil
	case TagToggleBrand:
		if env.Brand == "" {
			return nil, fmt.Errorf("%s requires brand", env.Type)
		}
		return ToggleBrand{Brand: env.Brand}, nil
	case TagSetRatings:
		return SetRatings{Ratings: env.Ratings}, nil
	case TagToggleRating:
		if env.Rating == nil {
			return nil, fmt.Errorf("%s requires rating", env.Type)
		}
		return ToggleRating{Rating: *env.Rating}, nil
	case TagSetPriceRange:
		if env.Min == nil || env.Max == nil {
			return nil, fmt.Errorf("%s requires min and max", env.Type)
		}
		return SetPriceRange{Min: *env.Min, Max: *env.Max}, nil
	case TagSetSearch:
		return SetSearch{Query: env.Query}, nil
	case TagSetPage:
		if env.Page < 1 || env.Page > MaxPage {
			return nil, fmt.Errorf("%s requires page in 1..%d", env.Type, MaxPage)
		}
		return SetPage{Page: env.Page}, nil
	case TagSetLimit:
		if env.Limit < 1 || env.Limit > MaxLimit {
			return nil, fmt.Errorf("%s requires limit in 1..%d", env.Type, MaxLimit)
		}
		return SetLimit{Limit: env.Limit}, nil
	case TagSetSort:
		return SetSort{By: env.SortBy, Order: env.SortOrder}, nil
	case TagResetFilters:
		return ResetFilters{}, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownAction, env.Type)
	}
}
