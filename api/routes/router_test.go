package routes

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/pricewatch/pricewatch-bff/internal/products"
	pkgauth "github.com/pricewatch/pricewatch-bff/pkg/auth"
	"github.com/pricewatch/pricewatch-bff/pkg/config"
	"github.com/pricewatch/pricewatch-bff/pkg/enums"
)

type stubService struct{}

func (stubService) ListProducts(ctx context.Context) ([]products.ProductView, error) {
	return []products.ProductView{}, nil
}

func (stubService) GetProduct(ctx context.Context, productID string) (products.ProductView, error) {
	return products.ProductView{Product: products.Product{ID: productID}}, nil
}

func (stubService) GetPriceHistory(ctx context.Context, productID string, rng enums.HistoryRange, limit int) (products.PriceHistoryView, error) {
	return products.PriceHistoryView{ProductID: productID, Range: rng, Points: []products.PricePoint{}}, nil
}

func (stubService) AddProduct(ctx context.Context, input products.CreateProductInput) (products.Product, error) {
	return products.Product{ID: "p-new", URL: input.URL}, nil
}

func (stubService) UpdateTargetPrice(ctx context.Context, productID string, input products.UpdateTargetPriceInput) (products.Product, error) {
	return products.Product{ID: productID}, nil
}

func (stubService) DeleteProduct(ctx context.Context, productID string) error {
	return nil
}

func testConfig() *config.Config {
	return &config.Config{
		App:  config.AppConfig{Env: "development"},
		JWT:  config.JWTConfig{Secret: "router-secret", Issuer: "pricewatch"},
		CORS: config.CORSConfig{AllowedOrigins: []string{"http://localhost:3000"}},
	}
}

func TestRouterHealthIsPublic(t *testing.T) {
	router := NewRouter(testConfig(), nil, stubService{}, nil)

	for _, path := range []string{"/health/live", "/health/ready"} {
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
		if rec.Code != http.StatusOK {
			t.Fatalf("%s: expected 200, got %d", path, rec.Code)
		}
	}
}

func TestRouterProductsRequireAuth(t *testing.T) {
	router := NewRouter(testConfig(), nil, stubService{}, nil)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/products", nil))
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 without token, got %d", rec.Code)
	}
}

func TestRouterProductsWithToken(t *testing.T) {
	cfg := testConfig()
	router := NewRouter(cfg, nil, stubService{}, nil)

	token, err := pkgauth.MintAccessToken(cfg.JWT, time.Now(), "user-1", time.Hour)
	if err != nil {
		t.Fatalf("mint token: %v", err)
	}

	cases := []struct {
		method string
		path   string
		want   int
	}{
		{http.MethodGet, "/api/v1/products", http.StatusOK},
		{http.MethodGet, "/api/v1/products/p1", http.StatusOK},
		{http.MethodGet, "/api/v1/products/p1/history?range=1M", http.StatusOK},
		{http.MethodDelete, "/api/v1/products/p1", http.StatusNoContent},
		{http.MethodDelete, "/api/v1/auth/session", http.StatusOK},
	}
	for _, tc := range cases {
		req := httptest.NewRequest(tc.method, tc.path, nil)
		req.Header.Set("Authorization", "Bearer "+token)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)
		if rec.Code != tc.want {
			t.Fatalf("%s %s: expected %d, got %d: %s", tc.method, tc.path, tc.want, rec.Code, rec.Body.String())
		}
	}
}

func TestRouterMetricsEndpoint(t *testing.T) {
	registry := prometheus.NewRegistry()
	router := NewRouter(testConfig(), nil, stubService{}, registry)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 from metrics, got %d", rec.Code)
	}
}
