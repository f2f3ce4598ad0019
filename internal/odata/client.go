package odata

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/vendorlink/supplier-dashboard/internal/notice"
	"go.uber.org/zap"
)

// Entity sets exposed by the remote business-entity service.
const (
	EntityBusinessValueTrend    = "BusinessValueTrend"
	EntityTopProducts           = "TopProducts"
	EntityTopOpenPurchaseOrders = "TopOpenPurchaseOrders"
	EntityBusinessCommitments   = "BusinessCommitments"
)

// vendorCodeField is the filter field common to all four entity sets.
const vendorCodeField = "VendorCode"

// FetchError is a failed fetch for one entity set. It carries the entity-set
// name so the caller can attribute blame when a joined aggregation fails.
type FetchError struct {
	EntitySet string
	Err       error
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("fetch %s: %v", e.EntitySet, e.Err)
}

func (e *FetchError) Unwrap() error {
	return e.Err
}

// Config holds entity-query service configuration.
type Config struct {
	BaseURL string
	Timeout time.Duration
}

// Client queries the remote entity service. A response with zero rows is a
// successful result; only transport and service errors surface as failures.
type Client struct {
	baseURL    string
	httpClient *http.Client
	notices    *notice.Center
	logger     *zap.Logger
}

// NewClient creates an entity-query client.
func NewClient(cfg Config, notices *notice.Center, logger *zap.Logger) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Client{
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
		notices:    notices,
		logger:     logger,
	}
}

// envelope covers both the OData v2 ("d.results") and v4 ("value") response
// shapes.
type envelope struct {
	D struct {
		Results []Row `json:"results"`
	} `json:"d"`
	Value []Row `json:"value"`
}

// Fetch queries one entity set filtered to the given vendor code. Extra URL
// parameters are passed through to the service. On failure it publishes a
// transient notice naming the entity set and returns a *FetchError.
func (c *Client) Fetch(ctx context.Context, entitySet, vendorCode string, params url.Values) ([]Row, error) {
	rows, err := c.fetch(ctx, entitySet, vendorCode, params)
	if err != nil {
		c.logger.Error("Failed to load entity set",
			zap.String("entity_set", entitySet),
			zap.String("vendor_code", vendorCode),
			zap.Error(err))
		c.notices.Toastf("Failed to load %s", entitySet)
		return nil, &FetchError{EntitySet: entitySet, Err: err}
	}

	if len(rows) == 0 {
		c.logger.Warn("No data for entity set",
			zap.String("entity_set", entitySet),
			zap.String("vendor_code", vendorCode))
		return []Row{}, nil
	}

	c.logger.Debug("Entity set loaded",
		zap.String("entity_set", entitySet),
		zap.String("vendor_code", vendorCode),
		zap.Int("rows", len(rows)))
	return rows, nil
}

func (c *Client) fetch(ctx context.Context, entitySet, vendorCode string, params url.Values) ([]Row, error) {
	query := url.Values{}
	for key, values := range params {
		for _, v := range values {
			query.Add(key, v)
		}
	}
	// OData string literals escape embedded quotes by doubling them.
	escaped := strings.ReplaceAll(vendorCode, "'", "''")
	query.Set("$filter", fmt.Sprintf("%s eq '%s'", vendorCodeField, escaped))
	query.Set("$format", "json")

	endpoint := fmt.Sprintf("%s/%s?%s", c.baseURL, entitySet, query.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("service returned %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	var env envelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}

	if env.D.Results != nil {
		return env.D.Results, nil
	}
	return env.Value, nil
}
