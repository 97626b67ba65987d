package catalog

import (
	"context"
	"fmt"
	"time"

	log "github.com/sirupsen/logrus"
	"go.uber.org/ratelimit"
	"resty.dev/v3"

	"indusrobotix/storefront/internal/config"
)

// SourceClient fetches catalog data from the configured remote source.
type SourceClient interface {
	FetchCatalog(ctx context.Context) (*SourceData, error)
}

type sourceClient struct {
	rl         ratelimit.Limiter
	httpClient *resty.Client
	sourceURL  string
}

// NewSourceClient builds the catalog HTTP client. Requests are paced by the
// configured per-minute limit so a manual refresh cannot hammer the source.
// There is no retry: a failed fetch falls through to the next source in the
// loader chain instead.
func NewSourceClient(cfg config.CatalogConfig) SourceClient {
	client := resty.New().
		SetTimeout(time.Duration(cfg.Timeout) * time.Second).
		SetHeader("Accept", "application/json")

	perMinute := cfg.MaxRequestsPerMinute
	if perMinute < 1 {
		perMinute = 1
	}

	return &sourceClient{
		rl:         ratelimit.New(perMinute, ratelimit.Per(time.Minute)),
		httpClient: client,
		sourceURL:  cfg.SourceURL,
	}
}

func (c *sourceClient) FetchCatalog(ctx context.Context) (*SourceData, error) {
	c.rl.Take()

	var data SourceData
	resp, err := c.httpClient.R().
		SetContext(ctx).
		SetResult(&data).
		Get(c.sourceURL)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch catalog from %s: %w", c.sourceURL, err)
	}
	if resp.IsError() {
		return nil, fmt.Errorf("catalog source %s returned status %d", c.sourceURL, resp.StatusCode())
	}

	log.Debugf("Fetched %d products from %s", len(data.Products), c.sourceURL)
	return &data, nil
}
