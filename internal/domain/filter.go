package domain

import "strings"

type SortKey string

const (
	SortNewest    SortKey = "newest"
	SortPopular   SortKey = "popular"
	SortPriceAsc  SortKey = "price-asc"
	SortPriceDesc SortKey = "price-desc"
	SortNameAsc   SortKey = "name-asc"
	SortNameDesc  SortKey = "name-desc"
	SortFeatured  SortKey = "featured"
)

// PriceRange is an inclusive [Min, Max] bound on the final price. An inverted
// range matches nothing.
type PriceRange struct {
	Min int64 `json:"min"`
	Max int64 `json:"max"`
}

func (r PriceRange) Contains(price int64) bool {
	return price >= r.Min && price <= r.Max
}

// FilterState is the full browse state owned by the session controller.
type FilterState struct {
	Category    string      `json:"category"`
	SearchQuery string      `json:"search_query"`
	PriceRange  *PriceRange `json:"price_range,omitempty"`
	Sort        SortKey     `json:"sort"`
	Page        int         `json:"page"` // 1-based
	PageSize    int         `json:"page_size"`
}

// Query returns the trimmed search query; empty means no search filter.
func (s *FilterState) Query() string {
	return strings.TrimSpace(s.SearchQuery)
}

func DefaultFilterState(pageSize int) FilterState {
	return FilterState{
		Category: CategoryAll,
		Sort:     SortNewest,
		Page:     1,
		PageSize: pageSize,
	}
}
