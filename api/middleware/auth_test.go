package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	pkgauth "github.com/pricewatch/pricewatch-bff/pkg/auth"
	"github.com/pricewatch/pricewatch-bff/pkg/config"
)

func TestAuthMiddleware(t *testing.T) {
	cfg := config.JWTConfig{Secret: "test-secret", Issuer: "pricewatch"}

	var seenUserID string
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		identity, ok := pkgauth.IdentityFromContext(r.Context())
		if !ok {
			t.Fatalf("identity missing from context")
		}
		seenUserID = identity.UserID
		w.WriteHeader(http.StatusNoContent)
	})
	handler := Auth(cfg, nil)(next)

	t.Run("missing header", func(t *testing.T) {
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/products", nil))
		if rec.Code != http.StatusUnauthorized {
			t.Fatalf("expected 401, got %d", rec.Code)
		}
	})

	t.Run("garbage token", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/products", nil)
		req.Header.Set("Authorization", "Bearer not-a-token")
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		if rec.Code != http.StatusUnauthorized {
			t.Fatalf("expected 401, got %d", rec.Code)
		}
	})

	t.Run("valid token seeds identity", func(t *testing.T) {
		token, err := pkgauth.MintAccessToken(cfg, time.Now(), "user-42", time.Hour)
		if err != nil {
			t.Fatalf("mint token: %v", err)
		}
		req := httptest.NewRequest(http.MethodGet, "/products", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		if rec.Code != http.StatusNoContent {
			t.Fatalf("expected passthrough, got %d", rec.Code)
		}
		if seenUserID != "user-42" {
			t.Fatalf("expected user-42 in context, got %q", seenUserID)
		}
	})
}
