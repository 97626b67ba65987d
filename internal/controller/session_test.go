package controller

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"indusrobotix/storefront/internal/catalog"
	"indusrobotix/storefront/internal/config"
	"indusrobotix/storefront/internal/domain"
	"indusrobotix/storefront/internal/prefs"
)

func testConfig() *config.Config {
	return &config.Config{
		Display: config.DisplayConfig{
			ProductsPerPage:  12,
			MaxFeatures:      3,
			RecentLaunchDays: 30,
			PromotionDays:    7,
			DebounceMillis:   50,
			DefaultTheme:     "dark",
			DefaultSort:      "newest",
			MaxCompare:       2,
			Currency:         "PKR",
		},
		Cart: config.CartConfig{MaxQuantity: 10, TaxRate: 0.18},
		Categories: []config.CategoryConfig{
			{ID: "all", Name: "All Products"},
			{ID: "main", Name: "Main Modules"},
			{ID: "extension", Name: "Extension Modules"},
			{ID: "new", Name: "Recent Launches"},
			{ID: "premium", Name: "Premium Kits", MinPrice: 4000},
			{ID: "starter", Name: "Starter Kits", AnyTag: []string{"starter"}},
		},
		Discounts: []config.DiscountConfig{
			{Code: "WELCOME10", Discount: 0.10, Type: "percentage"},
		},
		Shipping: []config.ShippingConfig{
			{Name: "Standard Shipping", Price: 100, Days: "5-7"},
		},
	}
}

func recentDate(daysAgo int) string {
	return time.Now().AddDate(0, 0, -daysAgo).Format(domain.DateLayout)
}

func testProducts() []domain.Product {
	return []domain.Product{
		{ID: "IR-001", Name: "Foundation Kit", Specialty: "Robot Chassis Kit", Category: "main",
			Tags: []string{"starter"}, Pricing: domain.Pricing{FinalPrice: 1300},
			Features: []string{"one", "two", "three", "four", "five"},
			Launch:   domain.LaunchInfo{LaunchDate: "2023-01-15", Popularity: 95}},
		{ID: "IR-002", Name: "Smart Navigator", Specialty: "Obstacle Avoiding Robot", Category: "main",
			Tags: []string{"ai"}, Pricing: domain.Pricing{FinalPrice: 3450},
			Launch: domain.LaunchInfo{LaunchDate: "2023-03-20", Popularity: 88}},
		{ID: "IR-009", Name: "AI Vision Bot", Specialty: "AI-Powered Computer Vision Robot", Category: "main",
			Tags: []string{"ai", "premium"}, Pricing: domain.Pricing{FinalPrice: 14200},
			Launch: domain.LaunchInfo{LaunchDate: recentDate(2), Popularity: 92}},
		{ID: "IR-101", Name: "Extension II", Specialty: "Obstacle Avoidance Add-on", Category: "extension",
			Pricing: domain.Pricing{FinalPrice: 2080}},
	}
}

func writeCatalog(t *testing.T, dir string, products []domain.Product) string {
	t.Helper()

	raw, err := json.Marshal(catalog.SourceData{Products: products})
	require.NoError(t, err)

	path := filepath.Join(dir, "products-data.json")
	require.NoError(t, os.WriteFile(path, raw, 0o644))
	return path
}

func newTestSession(t *testing.T, store prefs.Store) (*Session, string) {
	t.Helper()

	dir := t.TempDir()
	path := writeCatalog(t, dir, testProducts())

	cfg := testConfig()
	cfg.Catalog = config.CatalogConfig{LocalFile: path}

	loader := catalog.NewLoader(nil, cfg.Catalog, cfg.Display.Currency)
	s, err := New(context.Background(), cfg, loader, store)
	require.NoError(t, err)
	return s, path
}

func TestInitialLoadAndClassification(t *testing.T) {
	s, _ := newTestSession(t, prefs.NewMemoryStore())

	view := s.ProductList()
	assert.Equal(t, 4, view.TotalItems)
	assert.Empty(t, view.Warning)
	assert.Equal(t, "Showing 1-4 of 4 products", view.Showing)

	// The classifier ran at load: the 2-day-old launch is new
	recent := s.Recent()
	require.Equal(t, 1, recent.Count)
	assert.Equal(t, "IR-009", recent.Products[0].ID)
	assert.True(t, recent.Products[0].IsNew)

	announcements := s.Announcements()
	require.Len(t, announcements, 1)
	assert.Equal(t, domain.AnnouncementSingle, announcements[0].Type)
}

func TestCategorySelectionResetsPage(t *testing.T) {
	s, _ := newTestSession(t, prefs.NewMemoryStore())

	s.SetItemsPerPage(context.Background(), 2)
	s.GoToPage(2)
	assert.Equal(t, 2, s.ProductList().Page)

	s.SelectCategory("main")
	view := s.ProductList()
	assert.Equal(t, 1, view.Page)
	assert.Equal(t, 3, view.TotalItems)
}

func TestGoToPageRejectsOutOfRange(t *testing.T) {
	s, _ := newTestSession(t, prefs.NewMemoryStore())

	s.SetItemsPerPage(context.Background(), 2)
	s.GoToPage(99)
	assert.Equal(t, 1, s.ProductList().Page)

	s.GoToPage(0)
	assert.Equal(t, 1, s.ProductList().Page)
}

func TestSyntheticCategories(t *testing.T) {
	s, _ := newTestSession(t, prefs.NewMemoryStore())

	s.SelectCategory("premium")
	view := s.ProductList()
	require.Equal(t, 1, view.TotalItems)
	assert.Equal(t, "IR-009", view.Products[0].ID)

	s.SelectCategory("starter")
	view = s.ProductList()
	require.Equal(t, 1, view.TotalItems)
	assert.Equal(t, "IR-001", view.Products[0].ID)
}

func TestDebouncedSearchAppliesLastQuery(t *testing.T) {
	s, _ := newTestSession(t, prefs.NewMemoryStore())

	s.Search("foundation")
	s.Search("navigator")
	s.Search("vision")

	// Within the window nothing has been applied yet
	assert.Equal(t, 4, s.ProductList().TotalItems)

	assert.Eventually(t, func() bool {
		view := s.ProductList()
		return view.TotalItems == 1 && view.Products[0].ID == "IR-009"
	}, time.Second, 10*time.Millisecond)
}

func TestFeatureTruncation(t *testing.T) {
	s, _ := newTestSession(t, prefs.NewMemoryStore())

	card, err := s.Product("IR-001")
	require.NoError(t, err)
	assert.Equal(t, []string{"one", "two", "three"}, card.Features)
}

func TestCartFlow(t *testing.T) {
	s, _ := newTestSession(t, prefs.NewMemoryStore())

	require.NoError(t, s.AddToCart("IR-001", 3))
	require.NoError(t, s.AddToCart("IR-002", 2))
	assert.Equal(t, 5, s.CartBadge())

	assert.ErrorIs(t, s.AddToCart("nope", 1), domain.ErrProductNotFound)
	assert.Equal(t, 5, s.CartBadge(), "unknown product is a no-op")

	s.SetQuantity("IR-002", 0)
	assert.Equal(t, 3, s.CartBadge())

	view := s.Cart()
	require.Len(t, view.Summary.Lines, 1)
	assert.Equal(t, "3900", view.Summary.Subtotal)
}

func TestCartDiscountAndShipping(t *testing.T) {
	s, _ := newTestSession(t, prefs.NewMemoryStore())

	require.NoError(t, s.AddToCart("IR-001", 1)) // 1300
	assert.ErrorIs(t, s.SetDiscountCode("BOGUS"), domain.ErrUnknownDiscount)
	require.NoError(t, s.SetDiscountCode("WELCOME10"))
	s.SelectShipping("Standard Shipping")

	summary := s.Cart().Summary
	assert.Equal(t, "130", summary.Discount)
	assert.Equal(t, "100", summary.Shipping)
}

func TestCompareCap(t *testing.T) {
	s, _ := newTestSession(t, prefs.NewMemoryStore())

	require.NoError(t, s.ToggleCompare("IR-001"))
	require.NoError(t, s.ToggleCompare("IR-002"))
	assert.ErrorIs(t, s.ToggleCompare("IR-009"), ErrCompareFull)

	// Toggling off frees a slot
	require.NoError(t, s.ToggleCompare("IR-001"))
	require.NoError(t, s.ToggleCompare("IR-009"))

	view := s.Compare()
	assert.Equal(t, 2, len(view.Products))
}

func TestPreferencesSurviveRestart(t *testing.T) {
	store := prefs.NewMemoryStore()

	s1, _ := newTestSession(t, store)
	s1.SetTheme(context.Background(), "light")
	s1.SetItemsPerPage(context.Background(), 24)

	s2, _ := newTestSession(t, store)
	view := s2.Preferences()
	assert.Equal(t, "light", view.Theme)
	assert.Equal(t, 24, view.ItemsPerPage)
}

func TestRefreshPropagatesPriceChanges(t *testing.T) {
	s, path := newTestSession(t, prefs.NewMemoryStore())

	require.NoError(t, s.AddToCart("IR-001", 2))
	assert.Equal(t, "2600", s.Cart().Summary.Subtotal)

	updated := testProducts()
	updated[0].Pricing.FinalPrice = 1500
	raw, err := json.Marshal(catalog.SourceData{Products: updated})
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(path, raw, 0o644))

	s.Refresh(context.Background())

	assert.Equal(t, "3000", s.Cart().Summary.Subtotal, "cart resolves prices from the refreshed catalog")
}

func TestRefreshFallsBackToSampleWhenFileVanishes(t *testing.T) {
	s, path := newTestSession(t, prefs.NewMemoryStore())
	require.NoError(t, os.Remove(path))

	s.Refresh(context.Background())

	view := s.ProductList()
	assert.NotEmpty(t, view.Warning)
	assert.Greater(t, view.TotalItems, 0, "fallback sample keeps the storefront usable")
}

func TestStaleCartEntryAfterRefreshIsSkipped(t *testing.T) {
	s, path := newTestSession(t, prefs.NewMemoryStore())

	require.NoError(t, s.AddToCart("IR-101", 1))

	// Drop IR-101 from the source and refresh
	kept := testProducts()[:3]
	raw, err := json.Marshal(catalog.SourceData{Products: kept})
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(path, raw, 0o644))
	s.Refresh(context.Background())

	summary := s.Cart().Summary
	assert.Empty(t, summary.Lines)
	assert.Equal(t, "0", summary.Subtotal)
}
