package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"

	"indusrobotix/storefront/internal/domain"
)

// Config holds all configuration for the storefront engine
type Config struct {
	Server      ServerConfig       `mapstructure:"server"`
	Catalog     CatalogConfig      `mapstructure:"catalog"`
	Display     DisplayConfig      `mapstructure:"display"`
	Cart        CartConfig         `mapstructure:"cart"`
	Redis       RedisConfig        `mapstructure:"redis"`
	Categories  []CategoryConfig   `mapstructure:"categories"`
	PriceRanges []PriceRangeConfig `mapstructure:"price_ranges"`
	Discounts   []DiscountConfig   `mapstructure:"discounts"`
	Shipping    []ShippingConfig   `mapstructure:"shipping"`
}

// ServerConfig holds the HTTP delivery surface configuration
type ServerConfig struct {
	Host string `mapstructure:"host"`
	Port int    `mapstructure:"port"`
}

// CatalogConfig holds the catalog source resolution chain configuration
type CatalogConfig struct {
	SourceURL            string `mapstructure:"source_url"` // Remote products-data.json; empty disables remote fetch
	LocalFile            string `mapstructure:"local_file"` // On-disk fallback
	Timeout              int    `mapstructure:"timeout"`    // Seconds
	MaxRequestsPerMinute int    `mapstructure:"max_requests_per_minute"`
}

// DisplayConfig holds browse/presentation knobs consumed by the core
type DisplayConfig struct {
	ProductsPerPage  int    `mapstructure:"products_per_page"`
	MaxFeatures      int    `mapstructure:"max_features"` // Features shown per product card
	RecentLaunchDays int    `mapstructure:"recent_launch_days"`
	PromotionDays    int    `mapstructure:"promotion_days"`
	JustLaunchedDays int    `mapstructure:"just_launched_days"`
	DebounceMillis   int    `mapstructure:"debounce_millis"`
	DefaultTheme     string `mapstructure:"default_theme"`
	DefaultSort      string `mapstructure:"default_sort"`
	MaxCompare       int    `mapstructure:"max_compare"`
	Currency         string `mapstructure:"currency"`
}

// CartConfig holds cart behavior configuration
type CartConfig struct {
	MaxQuantity int     `mapstructure:"max_quantity"` // Per-line cap
	TaxRate     float64 `mapstructure:"tax_rate"`
}

// RedisConfig holds the preference store connection details
type RedisConfig struct {
	Enabled  bool   `mapstructure:"enabled"`
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	Password string `mapstructure:"password"`
	Database int    `mapstructure:"database"`
}

// CategoryConfig declares a category filter bucket. Synthetic buckets carry a
// declarative rule; plain buckets match the product category field literally.
type CategoryConfig struct {
	ID          string   `mapstructure:"id"`
	Name        string   `mapstructure:"name"`
	Description string   `mapstructure:"description"`
	Order       int      `mapstructure:"order"`
	MinPrice    int64    `mapstructure:"min_price"`
	AnyTag      []string `mapstructure:"any_tag"`
}

// PriceRangeConfig declares a preset price filter bucket
type PriceRangeConfig struct {
	Label string `mapstructure:"label"`
	Min   int64  `mapstructure:"min"`
	Max   int64  `mapstructure:"max"`
}

// DiscountConfig declares a display-only discount code
type DiscountConfig struct {
	Code        string  `mapstructure:"code"`
	Discount    float64 `mapstructure:"discount"` // Fraction for percentage, amount for fixed
	Type        string  `mapstructure:"type"`     // "percentage" or "fixed"
	MinPurchase int64   `mapstructure:"min_purchase"`
}

// ShippingConfig declares a shipping option shown in the cart breakdown
type ShippingConfig struct {
	Name  string `mapstructure:"name"`
	Price int64  `mapstructure:"price"`
	Days  string `mapstructure:"days"`
}

// Descriptors converts configured categories into domain descriptors.
func (c *Config) Descriptors() []domain.CategoryDescriptor {
	out := make([]domain.CategoryDescriptor, 0, len(c.Categories))
	for _, cc := range c.Categories {
		d := domain.CategoryDescriptor{
			ID:          cc.ID,
			Name:        cc.Name,
			Description: cc.Description,
			Order:       cc.Order,
		}
		if cc.MinPrice > 0 || len(cc.AnyTag) > 0 {
			d.Rule = &domain.CategoryRule{MinPrice: cc.MinPrice, AnyTag: cc.AnyTag}
		}
		out = append(out, d)
	}
	return out
}

// Load loads configuration from YAML file with environment variable overrides
func Load() (*Config, error) {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")

	setDefaults()

	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if err := viper.ReadInConfig(); err != nil {
		// Defaults alone are a complete configuration
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}

	if len(config.Categories) == 0 {
		config.Categories = defaultCategories()
	}

	return &config, nil
}

func setDefaults() {
	viper.SetDefault("server.host", "localhost")
	viper.SetDefault("server.port", 8080)

	viper.SetDefault("catalog.source_url", "")
	viper.SetDefault("catalog.local_file", "products-data.json")
	viper.SetDefault("catalog.timeout", 30)
	viper.SetDefault("catalog.max_requests_per_minute", 100)

	viper.SetDefault("display.products_per_page", 12)
	viper.SetDefault("display.max_features", 3)
	viper.SetDefault("display.recent_launch_days", 30)
	viper.SetDefault("display.promotion_days", 7)
	viper.SetDefault("display.just_launched_days", 14)
	viper.SetDefault("display.debounce_millis", 300)
	viper.SetDefault("display.default_theme", "dark")
	viper.SetDefault("display.default_sort", "newest")
	viper.SetDefault("display.max_compare", 4)
	viper.SetDefault("display.currency", "PKR")

	viper.SetDefault("cart.max_quantity", 10)
	viper.SetDefault("cart.tax_rate", 0.18)

	viper.SetDefault("redis.enabled", false)
	viper.SetDefault("redis.host", "localhost")
	viper.SetDefault("redis.port", 6379)
	viper.SetDefault("redis.password", "")
	viper.SetDefault("redis.database", 0)
}

func defaultCategories() []CategoryConfig {
	return []CategoryConfig{
		{ID: "all", Name: "All Products", Description: "Browse all available robotics kits", Order: 1},
		{ID: "main", Name: "Main Modules", Description: "Complete standalone robotics kits", Order: 2},
		{ID: "extension", Name: "Extension Modules", Description: "Add-on kits to upgrade existing modules", Order: 3},
		{ID: "new", Name: "Recent Launches", Description: "Newly launched products", Order: 4},
		{ID: "premium", Name: "Premium Kits", Description: "Advanced kits with premium features", Order: 5, MinPrice: 4000},
		{ID: "starter", Name: "Starter Kits", Description: "Beginner-friendly kits", Order: 6, AnyTag: []string{"starter"}},
		{ID: "ai", Name: "AI & Vision", Description: "Kits with AI and computer vision", Order: 7, AnyTag: []string{"ai"}},
		{ID: "wireless", Name: "Wireless Control", Description: "Bluetooth and remote controlled", Order: 8, AnyTag: []string{"bluetooth", "remote"}},
	}
}
