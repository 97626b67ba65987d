// Package pipeline implements the pure browse pipeline: category filter,
// free-text search, price filter, then a stable sort. It never mutates its
// input and has no side effects.
package pipeline

import (
	"sort"
	"strings"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"indusrobotix/storefront/internal/domain"
)

type Pipeline struct {
	rules map[string]*domain.CategoryRule
	tag   language.Tag
}

// New builds a pipeline over the given category descriptors. Descriptors with
// a rule become synthetic filter buckets; everything else falls through to a
// literal category match.
func New(descriptors []domain.CategoryDescriptor, locale string) *Pipeline {
	rules := make(map[string]*domain.CategoryRule)
	for _, d := range descriptors {
		if !d.Rule.Empty() {
			rules[d.ID] = d.Rule
		}
	}

	tag, err := language.Parse(locale)
	if err != nil {
		tag = language.English
	}

	return &Pipeline{rules: rules, tag: tag}
}

// Apply runs the full pipeline in fixed order: category, search, price, sort.
// The result is always a subset of products with the input's relative order
// preserved up to the final sort.
func (p *Pipeline) Apply(products []domain.Product, state domain.FilterState) []domain.Product {
	filtered := make([]domain.Product, len(products))
	copy(filtered, products)

	if state.Category != domain.CategoryAll {
		filtered = p.ByCategory(filtered, state.Category)
	}

	if q := state.Query(); q != "" {
		filtered = BySearch(filtered, q)
	}

	if state.PriceRange != nil {
		filtered = ByPrice(filtered, *state.PriceRange)
	}

	return p.Sort(filtered, state.Sort)
}

// ByCategory keeps products matching the requested category bucket.
func (p *Pipeline) ByCategory(products []domain.Product, category string) []domain.Product {
	switch {
	case category == domain.CategoryNew:
		return keep(products, func(pr *domain.Product) bool {
			return pr.Launch.IsNew
		})
	default:
		if rule, ok := p.rules[category]; ok {
			return keep(products, rule.Matches)
		}
		return keep(products, func(pr *domain.Product) bool {
			return pr.Category == category
		})
	}
}

// BySearch keeps products where any of name, specialty, description, features
// or tags contains the query, case-insensitively.
func BySearch(products []domain.Product, query string) []domain.Product {
	term := strings.ToLower(query)
	return keep(products, func(pr *domain.Product) bool {
		if strings.Contains(strings.ToLower(pr.Name), term) ||
			strings.Contains(strings.ToLower(pr.Specialty), term) ||
			strings.Contains(strings.ToLower(pr.Description), term) {
			return true
		}
		for _, f := range pr.Features {
			if strings.Contains(strings.ToLower(f), term) {
				return true
			}
		}
		for _, t := range pr.Tags {
			if strings.Contains(strings.ToLower(t), term) {
				return true
			}
		}
		return false
	})
}

// ByPrice keeps products whose final price falls inside the inclusive range.
func ByPrice(products []domain.Product, r domain.PriceRange) []domain.Product {
	return keep(products, func(pr *domain.Product) bool {
		return r.Contains(pr.Pricing.FinalPrice)
	})
}

// Sort orders products by the given key. The sort is stable; an unknown key
// returns the input order unchanged.
func (p *Pipeline) Sort(products []domain.Product, key domain.SortKey) []domain.Product {
	switch key {
	case domain.SortNewest:
		sort.SliceStable(products, func(i, j int) bool {
			// Missing launch dates parse to the zero time and sort last
			ti, _ := products[i].LaunchTime()
			tj, _ := products[j].LaunchTime()
			return ti.After(tj)
		})
	case domain.SortPriceAsc:
		sort.SliceStable(products, func(i, j int) bool {
			return products[i].Pricing.FinalPrice < products[j].Pricing.FinalPrice
		})
	case domain.SortPriceDesc:
		sort.SliceStable(products, func(i, j int) bool {
			return products[i].Pricing.FinalPrice > products[j].Pricing.FinalPrice
		})
	case domain.SortNameAsc, domain.SortNameDesc:
		col := collate.New(p.tag)
		sort.SliceStable(products, func(i, j int) bool {
			cmp := col.CompareString(products[i].Name, products[j].Name)
			if key == domain.SortNameDesc {
				return cmp > 0
			}
			return cmp < 0
		})
	case domain.SortPopular:
		sort.SliceStable(products, func(i, j int) bool {
			return products[i].Launch.Popularity > products[j].Launch.Popularity
		})
	case domain.SortFeatured:
		sort.SliceStable(products, func(i, j int) bool {
			return products[i].Launch.IsFeatured && !products[j].Launch.IsFeatured
		})
	}

	return products
}

func keep(products []domain.Product, pred func(*domain.Product) bool) []domain.Product {
	out := products[:0:0]
	for i := range products {
		if pred(&products[i]) {
			out = append(out, products[i])
		}
	}
	return out
}
