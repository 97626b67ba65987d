// Package controller owns all mutable storefront state: the loaded catalog,
// the browse filter state, the cart ledger, the compare set and the persisted
// preferences. Every mutation goes through a Session method; views are plain
// data structures for an external renderer.
package controller

import (
	"context"
	"fmt"
	"strconv"
	"time"

	log "github.com/sirupsen/logrus"

	"indusrobotix/storefront/internal/cart"
	"indusrobotix/storefront/internal/catalog"
	"indusrobotix/storefront/internal/config"
	"indusrobotix/storefront/internal/debounce"
	"indusrobotix/storefront/internal/domain"
	"indusrobotix/storefront/internal/paginate"
	"indusrobotix/storefront/internal/pipeline"
	"indusrobotix/storefront/internal/prefs"
	"indusrobotix/storefront/internal/recency"
	"sync"
)

var ErrCompareFull = fmt.Errorf("comparison list is full")

type Session struct {
	mu sync.Mutex

	cfg        *config.Config
	loader     *catalog.Loader
	pipeline   *pipeline.Pipeline
	classifier *recency.Classifier
	calculator *cart.Calculator
	store      prefs.Store
	searchDeb  *debounce.Debouncer
	now        func() time.Time

	catalog     *catalog.Catalog
	state       domain.FilterState
	ledger      *cart.Ledger
	compare     []string
	theme       string
	recent      recency.Result
	warning     string
	discount    string
	shippingIdx int // Index into cfg.Shipping, -1 when none selected
}

// New builds a session and runs the initial catalog load and classification.
// The load gates startup: a session always starts with a usable catalog, even
// if only the embedded sample.
func New(ctx context.Context, cfg *config.Config, loader *catalog.Loader, store prefs.Store) (*Session, error) {
	s := &Session{
		cfg:        cfg,
		loader:     loader,
		pipeline:   pipeline.New(cfg.Descriptors(), "en"),
		classifier: recency.NewClassifier(cfg.Display.RecentLaunchDays, cfg.Display.PromotionDays),
		calculator: cart.NewCalculator(cfg.Cart.TaxRate, discounts(cfg)),
		store:      store,
		searchDeb:  debounce.New(time.Duration(cfg.Display.DebounceMillis) * time.Millisecond),
		now:        time.Now,

		ledger:      cart.NewLedger(cfg.Cart.MaxQuantity),
		theme:       cfg.Display.DefaultTheme,
		shippingIdx: -1,
	}

	s.state = domain.DefaultFilterState(cfg.Display.ProductsPerPage)
	s.state.Sort = domain.SortKey(cfg.Display.DefaultSort)

	s.restorePreferences(ctx)

	c, warning, err := loader.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load catalog: %w", err)
	}
	s.catalog = c
	s.warning = warning
	s.recent = s.classifier.Classify(s.catalog.All(), s.now())

	return s, nil
}

func (s *Session) restorePreferences(ctx context.Context) {
	if theme, ok, err := s.store.Get(ctx, prefs.KeyTheme); err != nil {
		log.Warnf("⚠️ Could not read theme preference: %v", err)
	} else if ok {
		s.theme = theme
	}

	if val, ok, err := s.store.Get(ctx, prefs.KeyItemsPerPage); err != nil {
		log.Warnf("⚠️ Could not read items-per-page preference: %v", err)
	} else if ok {
		if n, err := strconv.Atoi(val); err == nil && n > 0 {
			s.state.PageSize = n
		}
	}
}

// Refresh re-runs the catalog load chain and reclassifies. On a degraded load
// the previous catalog stays in place only if even the fallback chain failed;
// the chain itself always produces a usable catalog.
func (s *Session) Refresh(ctx context.Context) {
	c, warning, err := s.loader.Load(ctx)
	if err != nil {
		log.Errorf("❌ Refresh failed, keeping current catalog: %v", err)
		s.mu.Lock()
		s.warning = "Failed to refresh the catalog. Showing previous data."
		s.mu.Unlock()
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.catalog = c
	s.warning = warning
	s.recent = s.classifier.Classify(s.catalog.All(), s.now())
	s.state.Page = 1
}

// SelectCategory switches the active category bucket and resets to page 1.
func (s *Session) SelectCategory(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.Category = id
	s.state.Page = 1
}

func (s *Session) SetSort(key domain.SortKey) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.Sort = key
}

// Search coalesces rapid keystrokes: only the last query within the debounce
// window is applied.
func (s *Session) Search(query string) {
	s.searchDeb.Trigger(func() {
		s.SearchNow(query)
	})
}

// SearchNow applies a search query immediately, bypassing the debounce.
func (s *Session) SearchNow(query string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.SearchQuery = query
	s.state.Page = 1
}

func (s *Session) SetPriceRange(r *domain.PriceRange) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.PriceRange = r
	s.state.Page = 1
}

// ClearFilters resets category, search and price range, keeping sort and page
// size.
func (s *Session) ClearFilters() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.Category = domain.CategoryAll
	s.state.SearchQuery = ""
	s.state.PriceRange = nil
	s.state.Page = 1
}

// GoToPage moves to the requested page. Out-of-range requests are rejected
// here, before the paginator ever sees them.
func (s *Session) GoToPage(page int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	filtered := s.pipeline.Apply(s.catalog.All(), s.state)
	totalPages := paginate.Paginate(filtered, 1, s.state.PageSize).TotalPages
	if page < 1 || page > totalPages {
		log.Debugf("page %d out of range [1, %d], ignoring", page, totalPages)
		return
	}
	s.state.Page = page
}

// SetItemsPerPage updates the page size and persists it as a preference.
func (s *Session) SetItemsPerPage(ctx context.Context, n int) {
	if n < 1 {
		return
	}

	s.mu.Lock()
	s.state.PageSize = n
	s.state.Page = 1
	s.mu.Unlock()

	if err := s.store.Set(ctx, prefs.KeyItemsPerPage, strconv.Itoa(n)); err != nil {
		log.Warnf("⚠️ Could not persist items-per-page preference: %v", err)
	}
}

// SetTheme switches the theme and persists the choice.
func (s *Session) SetTheme(ctx context.Context, theme string) {
	s.mu.Lock()
	s.theme = theme
	s.mu.Unlock()

	if err := s.store.Set(ctx, prefs.KeyTheme, theme); err != nil {
		log.Warnf("⚠️ Could not persist theme preference: %v", err)
	}
}

// AddToCart adds qty units of the product to the ledger. An unknown id is a
// logged no-op surfaced as ErrProductNotFound.
func (s *Session) AddToCart(productID string, qty int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.catalog.ByID(productID) == nil {
		log.Debugf("add to cart for unknown product %s, ignoring", productID)
		return domain.ErrProductNotFound
	}
	s.ledger.Add(productID, qty)
	return nil
}

// ChangeQuantity applies a signed delta to a cart line; reaching zero removes
// the line.
func (s *Session) ChangeQuantity(productID string, delta int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ledger.ChangeQuantity(productID, delta)
}

// SetQuantity replaces a cart line quantity; zero or below removes the line.
func (s *Session) SetQuantity(productID string, qty int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ledger.SetQuantity(productID, qty)
}

func (s *Session) RemoveFromCart(productID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ledger.Remove(productID)
}

// SetDiscountCode records a discount code for the cart breakdown. Unknown
// codes are rejected here; whether the minimum purchase is met is decided at
// summary time and surfaces as a warning, not an error.
func (s *Session) SetDiscountCode(code string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if code != "" && !s.calculator.HasDiscount(code) {
		return domain.ErrUnknownDiscount
	}
	s.discount = code
	return nil
}

// SelectShipping picks a configured shipping option by name; an unknown name
// clears the selection.
func (s *Session) SelectShipping(name string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.shippingIdx = -1
	for i, opt := range s.cfg.Shipping {
		if opt.Name == name {
			s.shippingIdx = i
			return
		}
	}
}

// ToggleCompare adds or removes a product from the compare set, capped at the
// configured maximum.
func (s *Session) ToggleCompare(productID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.catalog.ByID(productID) == nil {
		log.Debugf("compare toggle for unknown product %s, ignoring", productID)
		return domain.ErrProductNotFound
	}

	for i, id := range s.compare {
		if id == productID {
			s.compare = append(s.compare[:i], s.compare[i+1:]...)
			return nil
		}
	}

	if len(s.compare) >= s.cfg.Display.MaxCompare {
		return ErrCompareFull
	}
	s.compare = append(s.compare, productID)
	return nil
}

func discounts(cfg *config.Config) []cart.Discount {
	out := make([]cart.Discount, 0, len(cfg.Discounts))
	for _, d := range cfg.Discounts {
		out = append(out, cart.Discount{
			Code:        d.Code,
			Amount:      decimalFrom(d.Discount),
			Fixed:       d.Type == "fixed",
			MinPurchase: d.MinPurchase,
		})
	}
	return out
}
