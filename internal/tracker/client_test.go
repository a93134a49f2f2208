package tracker

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/pricewatch/pricewatch-bff/pkg/config"
	pkgerrors "github.com/pricewatch/pricewatch-bff/pkg/errors"
)

func newTestClient(t *testing.T, rt roundTripFunc) *Client {
	t.Helper()
	client, err := New(
		config.UpstreamConfig{BaseURL: "http://tracker.test", HistoryLimit: 1000},
		WithHTTPClient(&http.Client{Transport: rt}),
	)
	if err != nil {
		t.Fatalf("new client: %v", err)
	}
	return client
}

func jsonResponse(status int, body string) *http.Response {
	return &http.Response{
		StatusCode: status,
		Body:       io.NopCloser(strings.NewReader(body)),
		Header:     http.Header{},
	}
}

func TestListProductsRequest(t *testing.T) {
	const respBody = `[{"product_id":"p1","url":"https://example.com/item","target_price":"500"}]`

	var capturedURL string
	client := newTestClient(t, func(req *http.Request) (*http.Response, error) {
		capturedURL = req.URL.String()
		return jsonResponse(http.StatusOK, respBody), nil
	})

	records, err := client.ListProducts(context.Background(), "user-42")
	if err != nil {
		t.Fatalf("list products: %v", err)
	}
	if capturedURL != "http://tracker.test/products?user_id=user-42" {
		t.Fatalf("unexpected URL %q", capturedURL)
	}
	if len(records) != 1 {
		t.Fatalf("expected 1 record, got %d", len(records))
	}
	if records[0]["product_id"] != "p1" {
		t.Fatalf("unexpected record %+v", records[0])
	}
	// Prices must arrive untouched for the mapper to coerce.
	if _, ok := records[0]["target_price"].(string); !ok {
		t.Fatalf("expected target_price to stay a string, got %T", records[0]["target_price"])
	}
}

func TestListProductsKeepsNumbersRaw(t *testing.T) {
	client := newTestClient(t, func(req *http.Request) (*http.Response, error) {
		return jsonResponse(http.StatusOK, `[{"product_id":"p1","current_price":450.5}]`), nil
	})

	records, err := client.ListProducts(context.Background(), "user-42")
	if err != nil {
		t.Fatalf("list products: %v", err)
	}
	if _, ok := records[0]["current_price"].(json.Number); !ok {
		t.Fatalf("expected current_price as json.Number, got %T", records[0]["current_price"])
	}
}

func TestAddProductSendsBackendPayload(t *testing.T) {
	var capturedBody map[string]any
	var capturedMethod string
	client := newTestClient(t, func(req *http.Request) (*http.Response, error) {
		capturedMethod = req.Method
		if err := json.NewDecoder(req.Body).Decode(&capturedBody); err != nil {
			t.Fatalf("decode request body: %v", err)
		}
		return jsonResponse(http.StatusOK, `{"product_id":"p9","url":"https://example.com/item","target_price":999}`), nil
	})

	payload := AddProductPayload{
		URL:         "https://example.com/item",
		TargetPrice: decimal.NewFromInt(999),
		UserID:      "user-42",
	}
	record, err := client.AddProduct(context.Background(), payload)
	if err != nil {
		t.Fatalf("add product: %v", err)
	}
	if capturedMethod != http.MethodPost {
		t.Fatalf("expected POST, got %s", capturedMethod)
	}
	if capturedBody["url"] != "https://example.com/item" {
		t.Fatalf("unexpected url %v", capturedBody["url"])
	}
	if capturedBody["user_id"] != "user-42" {
		t.Fatalf("unexpected user_id %v", capturedBody["user_id"])
	}
	if record["product_id"] != "p9" {
		t.Fatalf("unexpected record %+v", record)
	}
}

func TestUpdateTargetPriceRequest(t *testing.T) {
	var capturedURL, capturedMethod string
	client := newTestClient(t, func(req *http.Request) (*http.Response, error) {
		capturedURL = req.URL.String()
		capturedMethod = req.Method
		return jsonResponse(http.StatusOK, `{"product_id":"p1","target_price":450}`), nil
	})

	_, err := client.UpdateTargetPrice(context.Background(), "p1", "user-42", UpdateTargetPricePayload{
		TargetPrice: decimal.NewFromInt(450),
	})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if capturedMethod != http.MethodPatch {
		t.Fatalf("expected PATCH, got %s", capturedMethod)
	}
	if capturedURL != "http://tracker.test/product/p1?user_id=user-42" {
		t.Fatalf("unexpected URL %q", capturedURL)
	}
}

func TestDeleteProductRequest(t *testing.T) {
	var capturedURL, capturedMethod string
	client := newTestClient(t, func(req *http.Request) (*http.Response, error) {
		capturedURL = req.URL.String()
		capturedMethod = req.Method
		return jsonResponse(http.StatusOK, `{}`), nil
	})

	if err := client.DeleteProduct(context.Background(), "p1", "user-42"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if capturedMethod != http.MethodDelete {
		t.Fatalf("expected DELETE, got %s", capturedMethod)
	}
	if capturedURL != "http://tracker.test/product/p1?user_id=user-42" {
		t.Fatalf("unexpected URL %q", capturedURL)
	}
}

func TestGetPriceHistoryClampsLimit(t *testing.T) {
	var capturedURL string
	client := newTestClient(t, func(req *http.Request) (*http.Response, error) {
		capturedURL = req.URL.String()
		return jsonResponse(http.StatusOK, `[{"timestamp":1704067200,"price":"3999"},{"timestamp":1706745600,"price":3800}]`), nil
	})

	points, err := client.GetPriceHistory(context.Background(), "p1", 5000)
	if err != nil {
		t.Fatalf("history: %v", err)
	}
	if capturedURL != "http://tracker.test/price-history/p1?limit=1000" {
		t.Fatalf("expected clamped limit, got %q", capturedURL)
	}
	if len(points) != 2 {
		t.Fatalf("expected 2 points, got %d", len(points))
	}
	if !points[0].Price.Equal(decimal.NewFromInt(3999)) {
		t.Fatalf("string price not coerced: %s", points[0].Price)
	}
	if !points[1].Price.Equal(decimal.NewFromInt(3800)) {
		t.Fatalf("numeric price not coerced: %s", points[1].Price)
	}
}

func TestStatusCodeTranslation(t *testing.T) {
	cases := []struct {
		status int
		code   pkgerrors.Code
	}{
		{http.StatusUnauthorized, pkgerrors.CodeAuthRequired},
		{http.StatusForbidden, pkgerrors.CodePermission},
		{http.StatusNotFound, pkgerrors.CodeNotFound},
		{http.StatusInternalServerError, pkgerrors.CodeOperation},
		{http.StatusBadGateway, pkgerrors.CodeOperation},
	}
	for _, tc := range cases {
		client := newTestClient(t, func(req *http.Request) (*http.Response, error) {
			return jsonResponse(tc.status, `{"detail":"nope"}`), nil
		})
		_, err := client.ListProducts(context.Background(), "user-42")
		if !pkgerrors.HasCode(err, tc.code) {
			t.Fatalf("status %d: expected code %s, got %v", tc.status, tc.code, err)
		}
	}
}

func TestOperationNameOnFailure(t *testing.T) {
	client := newTestClient(t, func(req *http.Request) (*http.Response, error) {
		return jsonResponse(http.StatusInternalServerError, ``), nil
	})

	err := client.DeleteProduct(context.Background(), "p1", "user-42")
	typed := pkgerrors.As(err)
	if typed == nil {
		t.Fatalf("expected typed error, got %v", err)
	}
	details, ok := typed.Details().(map[string]any)
	if !ok || details["operation"] != OpDeleteProduct {
		t.Fatalf("expected operation in details, got %+v", typed.Details())
	}
}

type roundTripFunc func(*http.Request) (*http.Response, error)

func (f roundTripFunc) RoundTrip(req *http.Request) (*http.Response, error) {
	return f(req)
}
