// Package recency classifies products as newly launched relative to a rolling
// day threshold and derives the announcement feed from the result.
package recency

import (
	"fmt"
	"sort"
	"time"

	log "github.com/sirupsen/logrus"

	"indusrobotix/storefront/internal/domain"
)

type Classifier struct {
	thresholdDays int
	promotionDays int
}

// Result is one classification pass over the catalog. It is recomputed from
// wall-clock time; "new" status can flip to false between passes as time
// advances.
type Result struct {
	Recent []domain.Product `json:"recent"` // Newest first, ties in catalog order
	Count  int              `json:"count"`
	Stats  Stats            `json:"stats"`
}

type Stats struct {
	TotalNew     int             `json:"total_new"`
	ByCategory   map[string]int  `json:"by_category"`
	AveragePrice int64           `json:"average_price"`
	PriceRange   PriceSpread     `json:"price_range"`
	Timeline     []TimelineEntry `json:"timeline"` // Newest first
}

type PriceSpread struct {
	Min int64 `json:"min"`
	Max int64 `json:"max"`
}

type TimelineEntry struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Date    string `json:"date"`
	DaysAgo int    `json:"days_ago"`
}

func NewClassifier(thresholdDays, promotionDays int) *Classifier {
	return &Classifier{thresholdDays: thresholdDays, promotionDays: promotionDays}
}

// Classify marks every product's launch-derived fields in place and returns
// the recent subset. A launch date exactly thresholdDays in the past still
// counts as new; products without a parsable launch date are never new.
func (c *Classifier) Classify(products []domain.Product, now time.Time) Result {
	cutoff := now.AddDate(0, 0, -c.thresholdDays)
	promoCutoff := now.AddDate(0, 0, -c.promotionDays)

	recent := make([]domain.Product, 0)
	for i := range products {
		p := &products[i]
		launch, ok := p.LaunchTime()
		if !ok {
			p.Launch.IsNew = false
			p.Launch.HasPromotion = false
			continue
		}

		p.Launch.IsNew = !launch.Before(cutoff)
		p.Launch.DaysSinceLaunch = int(now.Sub(launch).Hours() / 24)
		if c.promotionDays > 0 {
			p.Launch.HasPromotion = !launch.Before(promoCutoff)
		}

		if p.Launch.IsNew {
			recent = append(recent, *p)
		}
	}

	sort.SliceStable(recent, func(i, j int) bool {
		ti, _ := recent[i].LaunchTime()
		tj, _ := recent[j].LaunchTime()
		return ti.After(tj)
	})

	log.Infof("🚀 Detected %d new products in last %d days", len(recent), c.thresholdDays)

	return Result{
		Recent: recent,
		Count:  len(recent),
		Stats:  computeStats(recent),
	}
}

// Announcements derives the banner feed: one launch announcement (single or
// aggregate), plus one promotion announcement per recent product with an
// active promotion. Promotions are additive and ordered first.
func (c *Classifier) Announcements(result Result) []domain.Announcement {
	if result.Count == 0 {
		return nil
	}

	announcements := make([]domain.Announcement, 0, 1+result.Count)

	if result.Count == 1 {
		p := result.Recent[0]
		announcements = append(announcements, domain.Announcement{
			Type:      domain.AnnouncementSingle,
			Title:     "New Product Launch!",
			Message:   fmt.Sprintf("%s is now available", p.Name),
			ProductID: p.ID,
			Priority:  domain.PriorityHigh,
		})
	} else {
		announcements = append(announcements, domain.Announcement{
			Type:     domain.AnnouncementMultiple,
			Title:    fmt.Sprintf("%d New Products!", result.Count),
			Message:  fmt.Sprintf("Explore our latest robotics kits launched in the last %d days", c.thresholdDays),
			Priority: domain.PriorityHigh,
		})
	}

	for _, p := range result.Recent {
		if !p.Launch.HasPromotion || p.Launch.Promotion == nil || !p.Launch.Promotion.Active {
			continue
		}
		announcements = append(announcements, domain.Announcement{
			Type:       domain.AnnouncementPromotion,
			Title:      "Limited Time Offer!",
			Message:    fmt.Sprintf("%s: %s", p.Name, p.Launch.Promotion.Description),
			ProductID:  p.ID,
			ValidUntil: p.Launch.Promotion.ValidUntil,
			Priority:   domain.PriorityUrgent,
		})
	}

	// Urgent first; insertion order within equal priority
	sort.SliceStable(announcements, func(i, j int) bool {
		return announcements[i].Priority.Rank() < announcements[j].Priority.Rank()
	})

	return announcements
}

// ByRecency returns products launched within the given number of days, newest
// first. Used for narrower windows than the classifier threshold.
func ByRecency(products []domain.Product, days int, now time.Time) []domain.Product {
	cutoff := now.AddDate(0, 0, -days)

	out := make([]domain.Product, 0)
	for i := range products {
		launch, ok := products[i].LaunchTime()
		if !ok {
			continue
		}
		if !launch.Before(cutoff) {
			out = append(out, products[i])
		}
	}

	sort.SliceStable(out, func(i, j int) bool {
		ti, _ := out[i].LaunchTime()
		tj, _ := out[j].LaunchTime()
		return ti.After(tj)
	})

	return out
}

// PromotionRemaining returns the time left on a product's launch promotion.
// Expired or absent promotions return zero.
func PromotionRemaining(p *domain.Product, now time.Time) time.Duration {
	if p.Launch.Promotion == nil || p.Launch.Promotion.ValidUntil == "" {
		return 0
	}
	until, err := time.Parse(domain.DateLayout, p.Launch.Promotion.ValidUntil)
	if err != nil {
		return 0
	}
	if remaining := until.Sub(now); remaining > 0 {
		return remaining
	}
	return 0
}

func computeStats(recent []domain.Product) Stats {
	stats := Stats{ByCategory: make(map[string]int)}
	stats.TotalNew = len(recent)
	if len(recent) == 0 {
		return stats
	}

	var total int64
	stats.PriceRange.Min = recent[0].Pricing.FinalPrice
	for i := range recent {
		p := &recent[i]

		category := p.Category
		if category == "" {
			category = "uncategorized"
		}
		stats.ByCategory[category]++

		price := p.Pricing.FinalPrice
		total += price
		if price < stats.PriceRange.Min {
			stats.PriceRange.Min = price
		}
		if price > stats.PriceRange.Max {
			stats.PriceRange.Max = price
		}

		stats.Timeline = append(stats.Timeline, TimelineEntry{
			ID:      p.ID,
			Name:    p.Name,
			Date:    p.Launch.LaunchDate,
			DaysAgo: p.Launch.DaysSinceLaunch,
		})
	}

	stats.AveragePrice = total / int64(len(recent))
	return stats
}
