// Package feed implements the price-feed provider backing the quote catalog.
package feed

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"sync"

	"github.com/TheCodister/swapdesk/pkg/config"
	"github.com/TheCodister/swapdesk/pkg/quote"
)

var (
	// ErrFeedUnavailable indicates the feed could not be reached or answered
	// with a non-2xx status, after the bounded retries were exhausted.
	ErrFeedUnavailable = errors.New("price feed unavailable")

	// ErrFeedMalformed indicates the response is not a sequence of well-formed
	// quote objects. Malformed payloads are never retried.
	ErrFeedMalformed = errors.New("malformed price feed response")
)

// fetchRetries bounds the retries on transient failure before surfacing
// ErrFeedUnavailable.
const fetchRetries = 2

// Provider fetches raw quotes over HTTP and reduces them to a catalog. The
// feed is treated as static for the session, so the first successful catalog
// is cached indefinitely; callers needing freshness call FetchCatalog.
type Provider struct {
	url        string
	httpClient *http.Client
	logger     *slog.Logger

	mu      sync.Mutex
	catalog quote.Catalog
}

// NewProvider creates a price feed provider from config.
func NewProvider(cfg config.PriceFeed, logger *slog.Logger) *Provider {
	if logger == nil {
		logger = slog.Default()
	}
	return &Provider{
		url: cfg.Url,
		httpClient: &http.Client{
			Timeout: cfg.HTTPTimeout,
		},
		logger: logger,
	}
}

// Catalog returns the session catalog, fetching it on first use.
func (p *Provider) Catalog(ctx context.Context) (quote.Catalog, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.catalog != nil {
		return p.catalog, nil
	}

	catalog, err := p.fetch(ctx)
	if err != nil {
		return nil, err
	}
	p.catalog = catalog
	return catalog, nil
}

// FetchCatalog fetches the feed and atomically replaces the session catalog.
// The previous catalog stays untouched on failure.
func (p *Provider) FetchCatalog(ctx context.Context) (quote.Catalog, error) {
	catalog, err := p.fetch(ctx)
	if err != nil {
		return nil, err
	}

	p.mu.Lock()
	p.catalog = catalog
	p.mu.Unlock()
	return catalog, nil
}

func (p *Provider) fetch(ctx context.Context) (quote.Catalog, error) {
	var lastErr error
	for attempt := 0; attempt <= fetchRetries; attempt++ {
		raw, err := p.fetchQuotes(ctx)
		if err == nil {
			catalog := quote.Reduce(raw)
			p.logger.Info("price catalog built",
				"raw_quotes", len(raw), "instruments", len(catalog))
			return catalog, nil
		}
		if errors.Is(err, ErrFeedMalformed) {
			return nil, err
		}
		lastErr = err
		p.logger.Warn("price feed fetch failed",
			"attempt", attempt+1, "url", p.url, "error", err)
	}
	return nil, lastErr
}

func (p *Provider) fetchQuotes(ctx context.Context) ([]quote.Quote, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.url, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFeedUnavailable, err)
	}

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFeedUnavailable, err)
	}
	defer resp.Body.Close() //nolint:errcheck

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("%w: status %d: %s", ErrFeedUnavailable, resp.StatusCode, body)
	}

	var raw []quote.Quote
	if err = json.NewDecoder(resp.Body).Decode(&raw); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFeedMalformed, err)
	}

	for i, q := range raw {
		if q.Currency == "" || q.Price <= 0 {
			return nil, fmt.Errorf("%w: quote %d has no currency or a non-positive price", ErrFeedMalformed, i)
		}
	}
	return raw, nil
}
