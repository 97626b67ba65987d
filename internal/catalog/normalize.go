package catalog

import (
	"fmt"
	"time"

	log "github.com/sirupsen/logrus"

	"indusrobotix/storefront/internal/domain"
)

// build validates source data and fills defaults once, so the pipeline and
// views can assume well-formed records with no repeated nil-guards.
func build(data *SourceData, currency string) (*Catalog, error) {
	if len(data.Products) == 0 {
		return nil, domain.ErrEmptyCatalog
	}

	products := make([]domain.Product, len(data.Products))
	copy(products, data.Products)

	byID := make(map[string]int, len(products))
	for i := range products {
		p := &products[i]

		if p.ID == "" {
			return nil, fmt.Errorf("product at index %d has no id", i)
		}
		if _, ok := byID[p.ID]; ok {
			return nil, fmt.Errorf("%w: %s", domain.ErrDuplicateProduct, p.ID)
		}
		byID[p.ID] = i

		if p.Name == "" {
			p.Name = p.ID
		}
		if p.Specialty == "" {
			p.Specialty = p.Description
		}
		if p.Features == nil {
			p.Features = []string{}
		}
		if p.Tags == nil {
			p.Tags = []string{}
		}
		if p.Pricing.FinalPrice < 0 {
			log.Warnf("⚠️ Product %s has negative price %d, clamping to 0", p.ID, p.Pricing.FinalPrice)
			p.Pricing.FinalPrice = 0
		}
		if p.Pricing.Currency == "" {
			p.Pricing.Currency = currency
		}

		// An unparsable launch date is the same as no launch date
		if p.Launch.LaunchDate != "" {
			if _, err := time.Parse(domain.DateLayout, p.Launch.LaunchDate); err != nil {
				log.Warnf("⚠️ Product %s has unparsable launch date %q, ignoring", p.ID, p.Launch.LaunchDate)
				p.Launch.LaunchDate = ""
			}
		}
		if p.Launch.LaunchDate == "" {
			p.Launch.IsNew = false
		}
	}

	categories := data.Categories
	if categories == nil {
		categories = []domain.CategoryDescriptor{}
	}

	return &Catalog{
		products:   products,
		categories: categories,
		byID:       byID,
	}, nil
}
