// models/filters.go
package models

// FilterMetadata represents all filter data for the storefront
type FilterMetadata struct {
	Brands     []FilterOption  `json:"brands"`
	Categories []CategoryData  `json:"categories"`
	Ratings    []FilterOption  `json:"ratings"`
	PriceRange *PriceRangeData `json:"priceRange"`
}

// FilterOption represents a single filter option
type FilterOption struct {
	Label string `json:"label"`
	Value string `json:"value"`
	Count int    `json:"count"`
}

// CategoryData represents a category with its subcategories
type CategoryData struct {
	Name          string         `json:"name"`
	Count         int            `json:"count"`
	Subcategories []FilterOption `json:"subcategories,omitempty"`
}

// PriceRangeData represents the minimum and maximum price in the store
type PriceRangeData struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}
