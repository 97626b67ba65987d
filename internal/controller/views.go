package controller

import (
	"fmt"

	"github.com/shopspring/decimal"

	"indusrobotix/storefront/internal/cart"
	"indusrobotix/storefront/internal/catalog"
	"indusrobotix/storefront/internal/domain"
	"indusrobotix/storefront/internal/paginate"
	"indusrobotix/storefront/internal/recency"
)

// ProductCard is the per-product view record. Features are truncated to the
// configured display maximum.
type ProductCard struct {
	ID              string   `json:"id"`
	SKU             string   `json:"sku,omitempty"`
	Name            string   `json:"name"`
	ShortName       string   `json:"short_name,omitempty"`
	Specialty       string   `json:"specialty,omitempty"`
	Description     string   `json:"description,omitempty"`
	Category        string   `json:"category"`
	Tags            []string `json:"tags,omitempty"`
	Features        []string `json:"features,omitempty"`
	Price           int64    `json:"price"`
	Currency        string   `json:"currency,omitempty"`
	InStock         bool     `json:"in_stock"`
	LaunchDate      string   `json:"launch_date,omitempty"`
	IsNew           bool     `json:"is_new"`
	IsFeatured      bool     `json:"is_featured,omitempty"`
	HasPromotion    bool     `json:"has_promotion,omitempty"`
	PromotionText   string   `json:"promotion_text,omitempty"`
	DaysSinceLaunch int      `json:"days_since_launch,omitempty"`
}

// ListView is the browse page: the current page of filtered products plus the
// pagination descriptor and any load warning.
type ListView struct {
	Products   []ProductCard `json:"products"`
	Page       int           `json:"page"`
	PerPage    int           `json:"per_page"`
	TotalItems int           `json:"total_items"`
	TotalPages int           `json:"total_pages"`
	Showing    string        `json:"showing"` // e.g. "Showing 1-12 of 25 products"
	Warning    string        `json:"warning,omitempty"`
}

type RecentView struct {
	Products []ProductCard `json:"products"`
	Count    int           `json:"count"`
	Stats    recency.Stats `json:"stats"`
}

type CartView struct {
	Summary cart.Summary `json:"summary"`
	Badge   int          `json:"badge"` // Sum of quantities
}

type CompareView struct {
	Products []ProductCard `json:"products"`
	Max      int           `json:"max"`
}

type PreferencesView struct {
	Theme        string `json:"theme"`
	ItemsPerPage int    `json:"items_per_page"`
}

// ProductList runs the pipeline over the current filter state and paginates.
func (s *Session) ProductList() ListView {
	s.mu.Lock()
	defer s.mu.Unlock()

	filtered := s.pipeline.Apply(s.catalog.All(), s.state)
	page := paginate.Paginate(filtered, s.state.Page, s.state.PageSize)

	view := ListView{
		Products:   s.cards(page.Items),
		Page:       page.Number,
		PerPage:    page.PerPage,
		TotalItems: page.TotalItems,
		TotalPages: page.TotalPages,
		Warning:    s.warning,
	}
	if page.TotalItems == 0 {
		view.Showing = "No products found"
	} else {
		view.Showing = fmt.Sprintf("Showing %d-%d of %d products", page.Start, page.End, page.TotalItems)
	}
	return view
}

// Product returns the detail card for one product id.
func (s *Session) Product(id string) (ProductCard, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	p := s.catalog.ByID(id)
	if p == nil {
		return ProductCard{}, domain.ErrProductNotFound
	}
	return s.card(p), nil
}

func (s *Session) Recent() RecentView {
	s.mu.Lock()
	defer s.mu.Unlock()

	return RecentView{
		Products: s.cards(s.recent.Recent),
		Count:    s.recent.Count,
		Stats:    s.recent.Stats,
	}
}

// RecentWithin narrows the launch window to the given number of days.
func (s *Session) RecentWithin(days int) []ProductCard {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cards(recency.ByRecency(s.catalog.All(), days, s.now()))
}

// JustLaunched returns products from the configured just-launched window,
// narrower than the recent list.
func (s *Session) JustLaunched() []ProductCard {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cards(recency.ByRecency(s.catalog.All(), s.cfg.Display.JustLaunchedDays, s.now()))
}

func (s *Session) Announcements() []domain.Announcement {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.classifier.Announcements(s.recent)
}

func (s *Session) Categories() []domain.CategoryDescriptor {
	s.mu.Lock()
	defer s.mu.Unlock()

	if cats := s.catalog.Categories(); len(cats) > 0 {
		return cats
	}
	return s.cfg.Descriptors()
}

func (s *Session) Stats() catalog.Stats {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.catalog.Stats()
}

// Cart builds the cart view with the full price breakdown. Unit prices come
// from the current catalog records.
func (s *Session) Cart() CartView {
	s.mu.Lock()
	defer s.mu.Unlock()

	var shipping *cart.Shipping
	if s.shippingIdx >= 0 && s.shippingIdx < len(s.cfg.Shipping) {
		opt := s.cfg.Shipping[s.shippingIdx]
		shipping = &cart.Shipping{Name: opt.Name, Price: opt.Price, Days: opt.Days}
	}

	return CartView{
		Summary: s.calculator.Summarize(s.ledger, s.catalog.ByID, s.discount, shipping),
		Badge:   s.ledger.Count(),
	}
}

// CartBadge returns just the badge count.
func (s *Session) CartBadge() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ledger.Count()
}

func (s *Session) Compare() CompareView {
	s.mu.Lock()
	defer s.mu.Unlock()

	view := CompareView{
		Products: make([]ProductCard, 0, len(s.compare)),
		Max:      s.cfg.Display.MaxCompare,
	}
	for _, id := range s.compare {
		if p := s.catalog.ByID(id); p != nil {
			view.Products = append(view.Products, s.card(p))
		}
	}
	return view
}

func (s *Session) Preferences() PreferencesView {
	s.mu.Lock()
	defer s.mu.Unlock()
	return PreferencesView{Theme: s.theme, ItemsPerPage: s.state.PageSize}
}

// ExportRecent serializes the recent-launch list in the given format.
func (s *Session) ExportRecent(format string) ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return recency.Export(s.recent, format, s.now())
}

func (s *Session) cards(products []domain.Product) []ProductCard {
	out := make([]ProductCard, 0, len(products))
	for i := range products {
		out = append(out, s.card(&products[i]))
	}
	return out
}

func (s *Session) card(p *domain.Product) ProductCard {
	features := p.Features
	if max := s.cfg.Display.MaxFeatures; max > 0 && len(features) > max {
		features = features[:max]
	}

	card := ProductCard{
		ID:              p.ID,
		SKU:             p.SKU,
		Name:            p.Name,
		ShortName:       p.ShortName,
		Specialty:       p.Specialty,
		Description:     p.Description,
		Category:        p.Category,
		Tags:            p.Tags,
		Features:        features,
		Price:           p.Pricing.FinalPrice,
		Currency:        p.Pricing.Currency,
		InStock:         p.Inventory.InStock,
		LaunchDate:      p.Launch.LaunchDate,
		IsNew:           p.Launch.IsNew,
		IsFeatured:      p.Launch.IsFeatured,
		HasPromotion:    p.Launch.HasPromotion,
		DaysSinceLaunch: p.Launch.DaysSinceLaunch,
	}
	if p.Launch.HasPromotion && p.Launch.Promotion != nil && p.Launch.Promotion.Active {
		card.PromotionText = p.Launch.Promotion.Description
	}
	return card
}

func decimalFrom(f float64) decimal.Decimal {
	return decimal.NewFromFloat(f)
}
