package controllers

import (
	"net/http"

	"github.com/pricewatch/pricewatch-bff/api/responses"
	"github.com/pricewatch/pricewatch-bff/pkg/config"
)

func HealthLive(cfg *config.Config) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-PriceWatch-Env", cfg.App.Env)
		responses.WriteSuccess(w, map[string]string{"status": "live"})
	}
}

func HealthReady(cfg *config.Config) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-PriceWatch-Env", cfg.App.Env)
		responses.WriteSuccess(w, map[string]string{
			"status":   "ready",
			"upstream": cfg.Upstream.BaseURL,
		})
	}
}
