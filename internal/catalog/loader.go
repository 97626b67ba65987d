package catalog

import (
	"context"
	_ "embed"
	"encoding/json"
	"fmt"
	"os"

	log "github.com/sirupsen/logrus"

	"indusrobotix/storefront/internal/config"
)

//go:embed sample.json
var sampleData []byte

// Loader resolves the catalog through a fixed fallback chain: remote source
// (when configured), local file, embedded sample. Each step falls through
// exactly once on failure; nothing retries on its own. A manual refresh
// re-runs the whole chain.
type Loader struct {
	client   SourceClient
	cfg      config.CatalogConfig
	currency string
}

func NewLoader(client SourceClient, cfg config.CatalogConfig, currency string) *Loader {
	return &Loader{client: client, cfg: cfg, currency: currency}
}

// Load returns the catalog plus a non-fatal warning describing any fallback
// taken. An error is only possible when even the embedded sample is
// unusable, which means a broken build.
func (l *Loader) Load(ctx context.Context) (*Catalog, string, error) {
	warning := ""

	if l.cfg.SourceURL != "" {
		data, err := l.client.FetchCatalog(ctx)
		if err == nil {
			if c, buildErr := build(data, l.currency); buildErr == nil {
				log.Infof("✅ Loaded %d products from remote source", c.Len())
				return c, "", nil
			} else {
				err = buildErr
			}
		}
		log.Warnf("⚠️ Remote catalog unavailable, falling back to local file: %v", err)
		warning = "Could not reach the catalog source. Showing locally cached data."
	}

	if l.cfg.LocalFile != "" {
		c, err := l.loadFile(l.cfg.LocalFile)
		if err == nil {
			log.Infof("✅ Loaded %d products from %s", c.Len(), l.cfg.LocalFile)
			return c, warning, nil
		}
		log.Warnf("⚠️ Local catalog file unusable, falling back to sample data: %v", err)
	}

	warning = "Using sample data. Product file not found."

	c, err := l.loadEmbedded()
	if err != nil {
		return nil, "", fmt.Errorf("embedded sample catalog is invalid: %w", err)
	}
	log.Infof("✅ Loaded %d sample products", c.Len())
	return c, warning, nil
}

func (l *Loader) loadFile(path string) (*Catalog, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog file: %w", err)
	}

	var data SourceData
	if err := json.Unmarshal(raw, &data); err != nil {
		return nil, fmt.Errorf("failed to parse catalog file %s: %w", path, err)
	}

	return build(&data, l.currency)
}

func (l *Loader) loadEmbedded() (*Catalog, error) {
	var data SourceData
	if err := json.Unmarshal(sampleData, &data); err != nil {
		return nil, err
	}
	return build(&data, l.currency)
}
