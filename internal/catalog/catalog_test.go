package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"indusrobotix/storefront/internal/config"
	"indusrobotix/storefront/internal/domain"
)

func writeCatalogFile(t *testing.T, data SourceData) string {
	t.Helper()

	raw, err := json.Marshal(data)
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "products-data.json")
	require.NoError(t, os.WriteFile(path, raw, 0o644))
	return path
}

type stubClient struct {
	data *SourceData
	err  error
}

func (s *stubClient) FetchCatalog(context.Context) (*SourceData, error) {
	return s.data, s.err
}

func TestBuildValidatesAndNormalizes(t *testing.T) {
	t.Run("fills defaults once", func(t *testing.T) {
		c, err := build(&SourceData{Products: []domain.Product{
			{ID: "X", Name: "X kit", Description: "does things"},
		}}, "PKR")
		require.NoError(t, err)

		p := c.ByID("X")
		require.NotNil(t, p)
		assert.Equal(t, "does things", p.Specialty, "specialty falls back to description")
		assert.NotNil(t, p.Features)
		assert.NotNil(t, p.Tags)
		assert.Equal(t, "PKR", p.Pricing.Currency)
	})

	t.Run("rejects duplicate ids", func(t *testing.T) {
		_, err := build(&SourceData{Products: []domain.Product{
			{ID: "X", Name: "first"},
			{ID: "X", Name: "second"},
		}}, "PKR")
		assert.ErrorIs(t, err, domain.ErrDuplicateProduct)
	})

	t.Run("rejects empty catalog", func(t *testing.T) {
		_, err := build(&SourceData{}, "PKR")
		assert.ErrorIs(t, err, domain.ErrEmptyCatalog)
	})

	t.Run("clamps negative prices", func(t *testing.T) {
		c, err := build(&SourceData{Products: []domain.Product{
			{ID: "X", Name: "X", Pricing: domain.Pricing{FinalPrice: -50}},
		}}, "PKR")
		require.NoError(t, err)
		assert.Equal(t, int64(0), c.ByID("X").Pricing.FinalPrice)
	})

	t.Run("drops unparsable launch dates", func(t *testing.T) {
		c, err := build(&SourceData{Products: []domain.Product{
			{ID: "X", Name: "X", Launch: domain.LaunchInfo{LaunchDate: "not-a-date", IsNew: true}},
		}}, "PKR")
		require.NoError(t, err)

		p := c.ByID("X")
		assert.Empty(t, p.Launch.LaunchDate)
		assert.False(t, p.Launch.IsNew)
	})
}

func TestLoaderUsesLocalFile(t *testing.T) {
	path := writeCatalogFile(t, SourceData{Products: []domain.Product{
		{ID: "IR-001", Name: "Foundation Kit", Category: "main", Pricing: domain.Pricing{FinalPrice: 1300}},
	}})

	loader := NewLoader(&stubClient{}, config.CatalogConfig{LocalFile: path}, "PKR")

	c, warning, err := loader.Load(context.Background())
	require.NoError(t, err)
	assert.Empty(t, warning)
	assert.Equal(t, 1, c.Len())
}

func TestLoaderFallsBackToSampleWithWarning(t *testing.T) {
	loader := NewLoader(&stubClient{}, config.CatalogConfig{LocalFile: "does-not-exist.json"}, "PKR")

	c, warning, err := loader.Load(context.Background())
	require.NoError(t, err)
	assert.NotEmpty(t, warning)
	assert.Greater(t, c.Len(), 0, "embedded sample is always usable")
	assert.NotNil(t, c.ByID("IR-001"))
}

func TestLoaderRemoteFailureFallsThroughOnce(t *testing.T) {
	path := writeCatalogFile(t, SourceData{Products: []domain.Product{
		{ID: "IR-002", Name: "Smart Navigator", Category: "main", Pricing: domain.Pricing{FinalPrice: 3450}},
	}})

	loader := NewLoader(
		&stubClient{err: fmt.Errorf("connection refused")},
		config.CatalogConfig{SourceURL: "http://catalog.invalid/products-data.json", LocalFile: path},
		"PKR",
	)

	c, warning, err := loader.Load(context.Background())
	require.NoError(t, err)
	assert.NotEmpty(t, warning, "degraded load surfaces a warning")
	assert.Equal(t, 1, c.Len())
	assert.NotNil(t, c.ByID("IR-002"))
}

func TestLoaderPrefersRemote(t *testing.T) {
	remote := &SourceData{Products: []domain.Product{
		{ID: "R-001", Name: "Remote Kit", Category: "main", Pricing: domain.Pricing{FinalPrice: 9999}},
	}}

	loader := NewLoader(
		&stubClient{data: remote},
		config.CatalogConfig{SourceURL: "http://catalog.example/products-data.json", LocalFile: "ignored.json"},
		"PKR",
	)

	c, warning, err := loader.Load(context.Background())
	require.NoError(t, err)
	assert.Empty(t, warning)
	assert.NotNil(t, c.ByID("R-001"))
}

func TestCatalogStats(t *testing.T) {
	c, err := build(&SourceData{Products: []domain.Product{
		{ID: "a", Name: "A", Category: "main", Pricing: domain.Pricing{FinalPrice: 1000}, Launch: domain.LaunchInfo{LaunchDate: "2023-01-15", IsFeatured: true}},
		{ID: "b", Name: "B", Category: "main", Pricing: domain.Pricing{FinalPrice: 3000}},
		{ID: "c", Name: "C", Category: "extension", Pricing: domain.Pricing{FinalPrice: 2000}},
	}}, "PKR")
	require.NoError(t, err)

	stats := c.Stats()
	assert.Equal(t, 3, stats.Total)
	assert.Equal(t, 2, stats.ByCategory["main"])
	assert.Equal(t, int64(2000), stats.AveragePrice)
	assert.Equal(t, 1, stats.FeaturedCount)
	assert.Equal(t, 1, stats.WithLaunchDate)
}
