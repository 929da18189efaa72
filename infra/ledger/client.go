// Package ledger implements the HTTP client for the remote conversion ledger.
package ledger

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"sync"

	"github.com/TheCodister/swapdesk/pkg/config"
	"github.com/TheCodister/swapdesk/pkg/conversion"
)

const conversionsPath = "/api/v1/conversions"

// Client talks to the conversion ledger API and caches the ledger view.
// Every successful mutation invalidates exactly one cached collection, the
// view, so the next List reflects server truth (read-your-writes).
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     *slog.Logger

	mu        sync.Mutex
	view      []conversion.Record
	viewValid bool
}

// New creates a ledger client from config.
func New(cfg config.Ledger, logger *slog.Logger) *Client {
	if logger == nil {
		logger = slog.Default()
	}
	return &Client{
		baseURL: cfg.BaseUrl,
		httpClient: &http.Client{
			Timeout: cfg.HTTPTimeout,
		},
		logger: logger,
	}
}

// Create submits a conversion to the ledger and returns the created record.
// The in-flight request survives caller cancellation so the ledger write stays
// at-most-once; only the result is discarded, the view invalidation is not.
func (c *Client) Create(ctx context.Context, req conversion.Request) (*conversion.Record, error) {
	body, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", conversion.ErrLedgerWriteFailed, err)
	}

	httpReq, err := http.NewRequestWithContext(
		context.WithoutCancel(ctx), http.MethodPost, c.baseURL+conversionsPath, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", conversion.ErrLedgerWriteFailed, err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", conversion.ErrLedgerWriteFailed, err)
	}
	defer resp.Body.Close() //nolint:errcheck

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		respBody, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("%w: status %d: %s", conversion.ErrLedgerWriteFailed, resp.StatusCode, respBody)
	}

	var record conversion.Record
	if err = json.NewDecoder(resp.Body).Decode(&record); err != nil {
		return nil, fmt.Errorf("%w: %v", conversion.ErrLedgerWriteFailed, err)
	}

	c.Invalidate()
	c.logger.Info("conversion created",
		"id", record.ID, "from", record.FromCurrency, "to", record.ToCurrency)
	return &record, nil
}

// List returns the ledger view, refetching it when the cache was invalidated.
// Ordering is server-defined; the client imposes no additional sort.
func (c *Client) List(ctx context.Context) ([]conversion.Record, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.viewValid {
		return c.view, nil
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+conversionsPath, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", conversion.ErrLedgerReadFailed, err)
	}

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", conversion.ErrLedgerReadFailed, err)
	}
	defer resp.Body.Close() //nolint:errcheck

	if resp.StatusCode != http.StatusOK {
		respBody, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("%w: status %d: %s", conversion.ErrLedgerReadFailed, resp.StatusCode, respBody)
	}

	var records []conversion.Record
	if err = json.NewDecoder(resp.Body).Decode(&records); err != nil {
		return nil, fmt.Errorf("%w: %v", conversion.ErrLedgerReadFailed, err)
	}

	c.view = records
	c.viewValid = true
	return records, nil
}

// Delete removes a record from the ledger. Like Create, the request survives
// caller cancellation and the view is invalidated on success.
func (c *Client) Delete(ctx context.Context, id string) error {
	httpReq, err := http.NewRequestWithContext(
		context.WithoutCancel(ctx), http.MethodDelete, c.baseURL+conversionsPath+"/"+id, nil)
	if err != nil {
		return fmt.Errorf("%w: %v", conversion.ErrLedgerDeleteFailed, err)
	}

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return fmt.Errorf("%w: %v", conversion.ErrLedgerDeleteFailed, err)
	}
	defer resp.Body.Close() //nolint:errcheck

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		respBody, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("%w: status %d: %s", conversion.ErrLedgerDeleteFailed, resp.StatusCode, respBody)
	}

	c.Invalidate()
	c.logger.Info("conversion deleted", "id", id)
	return nil
}

// Invalidate discards the cached view so the next List refetches it.
func (c *Client) Invalidate() {
	c.mu.Lock()
	c.view = nil
	c.viewValid = false
	c.mu.Unlock()
}
