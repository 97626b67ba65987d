package domain

import "time"

// DateLayout is the calendar date format used for launch and promotion dates.
const DateLayout = "2006-01-02"

type Pricing struct {
	ComponentCost      int64  `json:"component_cost,omitempty"` // Raw component cost
	FinalPrice         int64  `json:"final_price"`              // Displayed price in whole currency units
	Currency           string `json:"currency,omitempty"`       // e.g. "PKR"
	DiscountPercentage int    `json:"discount_percentage,omitempty"`
}

type Inventory struct {
	Stock   int  `json:"stock,omitempty"`
	InStock bool `json:"in_stock"`
}

type Promotion struct {
	Active      bool   `json:"active"`
	Description string `json:"description,omitempty"`
	ValidUntil  string `json:"valid_until,omitempty"` // Date in DateLayout format
}

type LaunchInfo struct {
	LaunchDate string `json:"launch_date,omitempty"` // Date in DateLayout format, empty when unknown
	IsNew      bool   `json:"is_new"`                // Derived by the recency classifier, not a source fact
	IsFeatured bool   `json:"is_featured,omitempty"`
	Popularity int    `json:"popularity,omitempty"`

	// Derived fields, filled by the recency classifier.
	DaysSinceLaunch int        `json:"days_since_launch,omitempty"`
	HasPromotion    bool       `json:"has_promotion,omitempty"`
	Promotion       *Promotion `json:"launch_promotion,omitempty"`
}

type Product struct {
	ID          string     `json:"id"`
	SKU         string     `json:"sku,omitempty"`
	Name        string     `json:"name"`
	ShortName   string     `json:"short_name,omitempty"`
	Category    string     `json:"category"` // "main", "extension", "starter", ...
	Specialty   string     `json:"specialty,omitempty"`
	Description string     `json:"description,omitempty"`
	Features    []string   `json:"features,omitempty"` // Display-truncated to the first 3
	Tags        []string   `json:"tags,omitempty"`
	Pricing     Pricing    `json:"pricing"`
	Inventory   Inventory  `json:"inventory,omitempty"`
	Launch      LaunchInfo `json:"launch_info,omitempty"`
}

// LaunchTime parses the launch date. The second return value is false when the
// product has no parsable launch date; such products are never "new" and sort
// last under the newest ordering.
func (p *Product) LaunchTime() (time.Time, bool) {
	if p.Launch.LaunchDate == "" {
		return time.Time{}, false
	}
	t, err := time.Parse(DateLayout, p.Launch.LaunchDate)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// HasTag reports whether the product carries the given tag.
func (p *Product) HasTag(tag string) bool {
	for _, t := range p.Tags {
		if t == tag {
			return true
		}
	}
	return false
}
