// Package tracker is the gateway to the external price-tracker backend. It
// owns request construction, identity propagation via the user_id parameter,
// and the translation of HTTP failures into the typed error taxonomy.
package tracker

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/pricewatch/pricewatch-bff/pkg/config"
	pkgerrors "github.com/pricewatch/pricewatch-bff/pkg/errors"
	"github.com/pricewatch/pricewatch-bff/pkg/metrics"
)

// Operation names carried on gateway failures for caller-level messaging.
const (
	OpListProducts      = "list_products"
	OpGetProduct        = "get_product"
	OpGetPriceHistory   = "get_price_history"
	OpAddProduct        = "add_product"
	OpUpdateTargetPrice = "update_target_price"
	OpDeleteProduct     = "delete_product"
)

const responseBodyReadLimit int64 = 1024

// RawProduct is one loosely-typed backend product record. Field names vary
// across backend revisions; internal/products owns the normalization.
type RawProduct map[string]any

// HistoryPoint is a single observed price. The backend serializes prices as
// either JSON numbers or numeric strings; decimal handles both.
type HistoryPoint struct {
	Timestamp int64           `json:"timestamp"`
	Price     decimal.Decimal `json:"price"`
}

// AddProductPayload is the create request shape the backend expects.
type AddProductPayload struct {
	URL         string          `json:"url"`
	TargetPrice decimal.Decimal `json:"target_price"`
	UserID      string          `json:"user_id"`
}

// UpdateTargetPricePayload is the only mutable field on an existing product.
type UpdateTargetPricePayload struct {
	TargetPrice decimal.Decimal `json:"target_price"`
}

// Client issues requests against the tracker backend.
type Client struct {
	httpClient   *http.Client
	baseURL      string
	historyLimit int
	metrics      *metrics.UpstreamMetrics
}

// Option configures optional client behavior.
type Option func(*Client)

// WithHTTPClient overrides the default HTTP client.
func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		if client != nil {
			c.httpClient = client
		}
	}
}

// WithMetrics wires upstream call instrumentation.
func WithMetrics(m *metrics.UpstreamMetrics) Option {
	return func(c *Client) {
		c.metrics = m
	}
}

// New builds a tracker client from the upstream configuration.
func New(cfg config.UpstreamConfig, opts ...Option) (*Client, error) {
	baseURL := strings.TrimSpace(cfg.BaseURL)
	if baseURL == "" {
		return nil, fmt.Errorf("tracker base URL is required")
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	historyLimit := cfg.HistoryLimit
	if historyLimit <= 0 {
		historyLimit = 1000
	}

	client := &Client{
		baseURL:      strings.TrimRight(baseURL, "/"),
		historyLimit: historyLimit,
		httpClient:   &http.Client{Timeout: timeout},
	}

	for _, opt := range opts {
		if opt != nil {
			opt(client)
		}
	}

	return client, nil
}

// HistoryLimit returns the configured maximum number of history points per fetch.
func (c *Client) HistoryLimit() int {
	return c.historyLimit
}

// ListProducts fetches all products tracked by the given user.
func (c *Client) ListProducts(ctx context.Context, userID string) ([]RawProduct, error) {
	endpoint := c.buildURL("/products", url.Values{"user_id": {userID}})
	body, err := c.do(ctx, OpListProducts, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}

	var records []RawProduct
	if err := decodeJSON(body, &records); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeMapping, err, "decode product list").
			WithDetails(map[string]any{"operation": OpListProducts})
	}
	return records, nil
}

// GetProduct fetches one product record, including summary and prediction
// fields when the backend has them.
func (c *Client) GetProduct(ctx context.Context, productID, userID string) (RawProduct, error) {
	endpoint := c.buildURL("/product/"+url.PathEscape(productID), url.Values{"user_id": {userID}})
	body, err := c.do(ctx, OpGetProduct, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}

	var record RawProduct
	if err := decodeJSON(body, &record); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeMapping, err, "decode product detail").
			WithDetails(map[string]any{"operation": OpGetProduct})
	}
	return record, nil
}

// GetPriceHistory fetches up to limit observed prices for a product. The
// limit is clamped to the configured maximum.
func (c *Client) GetPriceHistory(ctx context.Context, productID string, limit int) ([]HistoryPoint, error) {
	if limit <= 0 || limit > c.historyLimit {
		limit = c.historyLimit
	}

	endpoint := c.buildURL("/price-history/"+url.PathEscape(productID), url.Values{"limit": {strconv.Itoa(limit)}})
	body, err := c.do(ctx, OpGetPriceHistory, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}

	var points []HistoryPoint
	if err := decodeJSON(body, &points); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeMapping, err, "decode price history").
			WithDetails(map[string]any{"operation": OpGetPriceHistory})
	}
	return points, nil
}

// AddProduct registers a new product for tracking.
func (c *Client) AddProduct(ctx context.Context, payload AddProductPayload) (RawProduct, error) {
	endpoint := c.buildURL("/add-product", nil)
	body, err := c.do(ctx, OpAddProduct, http.MethodPost, endpoint, payload)
	if err != nil {
		return nil, err
	}

	var record RawProduct
	if err := decodeJSON(body, &record); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeMapping, err, "decode add-product response").
			WithDetails(map[string]any{"operation": OpAddProduct})
	}
	return record, nil
}

// UpdateTargetPrice changes the target price of a tracked product.
func (c *Client) UpdateTargetPrice(ctx context.Context, productID, userID string, payload UpdateTargetPricePayload) (RawProduct, error) {
	endpoint := c.buildURL("/product/"+url.PathEscape(productID), url.Values{"user_id": {userID}})
	body, err := c.do(ctx, OpUpdateTargetPrice, http.MethodPatch, endpoint, payload)
	if err != nil {
		return nil, err
	}

	var record RawProduct
	if err := decodeJSON(body, &record); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeMapping, err, "decode update response").
			WithDetails(map[string]any{"operation": OpUpdateTargetPrice})
	}
	return record, nil
}

// DeleteProduct stops tracking a product.
func (c *Client) DeleteProduct(ctx context.Context, productID, userID string) error {
	endpoint := c.buildURL("/product/"+url.PathEscape(productID), url.Values{"user_id": {userID}})
	_, err := c.do(ctx, OpDeleteProduct, http.MethodDelete, endpoint, nil)
	return err
}

func (c *Client) do(ctx context.Context, operation, method, endpoint string, payload any) ([]byte, error) {
	var reqBody io.Reader
	if payload != nil {
		encoded, err := json.Marshal(payload)
		if err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeOperation, err, "marshal request").
				WithDetails(map[string]any{"operation": operation})
		}
		reqBody = bytes.NewReader(encoded)
	}

	httpReq, err := http.NewRequestWithContext(ctx, method, endpoint, reqBody)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeOperation, err, "build request").
			WithDetails(map[string]any{"operation": operation})
	}
	if payload != nil {
		httpReq.Header.Set("Content-Type", "application/json")
	}
	httpReq.Header.Set("Accept", "application/json")

	start := time.Now()
	resp, err := c.httpClient.Do(httpReq)
	c.metrics.ObserveDuration(operation, time.Since(start))
	if err != nil {
		c.metrics.IncFailure(operation)
		return nil, pkgerrors.Wrap(pkgerrors.CodeOperation, err, "execute request").
			WithDetails(map[string]any{"operation": operation})
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		c.metrics.IncFailure(operation)
		return nil, c.statusError(operation, resp)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		c.metrics.IncFailure(operation)
		return nil, pkgerrors.Wrap(pkgerrors.CodeOperation, err, "read response").
			WithDetails(map[string]any{"operation": operation})
	}

	c.metrics.IncSuccess(operation)
	return body, nil
}

// statusError maps upstream HTTP failures onto the typed taxonomy. Auth
// failures are never retried; everything else is a generic operation failure
// carrying the operation name.
func (c *Client) statusError(operation string, resp *http.Response) error {
	msg, _ := io.ReadAll(io.LimitReader(resp.Body, responseBodyReadLimit))
	cause := fmt.Errorf("status %d: %s", resp.StatusCode, strings.TrimSpace(string(msg)))

	switch resp.StatusCode {
	case http.StatusUnauthorized:
		return pkgerrors.Wrap(pkgerrors.CodeAuthRequired, cause, "tracker rejected credentials")
	case http.StatusForbidden:
		return pkgerrors.Wrap(pkgerrors.CodePermission, cause, "tracker denied access")
	case http.StatusNotFound:
		return pkgerrors.Wrap(pkgerrors.CodeNotFound, cause, "product not found")
	default:
		return pkgerrors.Wrap(pkgerrors.CodeOperation, cause, operation+" failed").
			WithDetails(map[string]any{"operation": operation})
	}
}

func (c *Client) buildURL(path string, query url.Values) string {
	endpoint := c.baseURL + "/" + strings.TrimLeft(path, "/")
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}
	return endpoint
}

// decodeJSON keeps numbers as json.Number so price fields survive untouched
// until the mapper coerces them to decimals.
func decodeJSON(body []byte, dest any) error {
	decoder := json.NewDecoder(bytes.NewReader(body))
	decoder.UseNumber()
	return decoder.Decode(dest)
}
