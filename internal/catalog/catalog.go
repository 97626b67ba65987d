// Package catalog loads and holds the immutable product set for a storefront
// instance. Resolution order: remote source, local file, embedded sample.
package catalog

import (
	"indusrobotix/storefront/internal/domain"
)

// SourceData is the wire shape of a catalog source file.
type SourceData struct {
	Meta       Meta                        `json:"meta,omitempty"`
	Products   []domain.Product            `json:"products"`
	Categories []domain.CategoryDescriptor `json:"categories,omitempty"`
}

type Meta struct {
	Company     string `json:"company,omitempty"`
	Currency    string `json:"currency,omitempty"`
	LastUpdated string `json:"last_updated,omitempty"`
}

// Catalog is the validated, normalized product set. Products are immutable
// after load except for classifier-derived launch fields, which the owning
// session rewrites in place on each classification pass.
type Catalog struct {
	products   []domain.Product
	categories []domain.CategoryDescriptor
	byID       map[string]int
}

// Stats summarizes the catalog for the storefront footer.
type Stats struct {
	Total          int            `json:"total"`
	ByCategory     map[string]int `json:"by_category"`
	AveragePrice   int64          `json:"average_price"`
	FeaturedCount  int            `json:"featured_count"`
	WithLaunchDate int            `json:"with_launch_date"`
}

// All returns the product slice. Callers treat it as read-only; the recency
// classifier is the one sanctioned writer of launch-derived fields.
func (c *Catalog) All() []domain.Product {
	return c.products
}

func (c *Catalog) Len() int {
	return len(c.products)
}

// ByID returns the current record for a product id, or nil when the id is not
// in the catalog (a stale reference, treated as a no-op by callers).
func (c *Catalog) ByID(id string) *domain.Product {
	i, ok := c.byID[id]
	if !ok {
		return nil
	}
	return &c.products[i]
}

func (c *Catalog) Categories() []domain.CategoryDescriptor {
	return c.categories
}

func (c *Catalog) Stats() Stats {
	stats := Stats{
		Total:      len(c.products),
		ByCategory: make(map[string]int),
	}
	if len(c.products) == 0 {
		return stats
	}

	var total int64
	for i := range c.products {
		p := &c.products[i]
		stats.ByCategory[p.Category]++
		total += p.Pricing.FinalPrice
		if p.Launch.IsFeatured {
			stats.FeaturedCount++
		}
		if p.Launch.LaunchDate != "" {
			stats.WithLaunchDate++
		}
	}
	stats.AveragePrice = total / int64(len(c.products))
	return stats
}
