// Package paginate slices filtered result lists into display pages.
package paginate

import "indusrobotix/storefront/internal/domain"

type Page struct {
	Items      []domain.Product `json:"items"`
	Number     int              `json:"number"` // Requested page, 1-based
	PerPage    int              `json:"per_page"`
	TotalItems int              `json:"total_items"`
	TotalPages int              `json:"total_pages"` // At least 1, so controls can render a "no results" state
	Start      int              `json:"start"`       // 1-based index of the first item shown, 0 when empty
	End        int              `json:"end"`         // 1-based index of the last item shown
}

// Paginate returns the requested page. Out-of-range pages yield an empty
// Items slice rather than an error; clamping is the caller's concern.
func Paginate(items []domain.Product, page, perPage int) Page {
	if perPage < 1 {
		perPage = 1
	}

	result := Page{
		Number:     page,
		PerPage:    perPage,
		TotalItems: len(items),
		TotalPages: (len(items) + perPage - 1) / perPage,
	}
	if result.TotalPages < 1 {
		result.TotalPages = 1
	}

	start := (page - 1) * perPage
	if page < 1 || start >= len(items) {
		result.Items = []domain.Product{}
		return result
	}

	end := start + perPage
	if end > len(items) {
		end = len(items)
	}

	result.Items = items[start:end]
	result.Start = start + 1
	result.End = end
	return result
}
