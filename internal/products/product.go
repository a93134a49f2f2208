package products

import (
	"net/url"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/pricewatch/pricewatch-bff/pkg/enums"
)

// Product is the canonical client view-model of a tracked product. A nil
// CurrentPrice means the tracker has not checked the product yet; zero is a
// valid real price and must stay distinguishable from "unknown".
type Product struct {
	ID            string              `json:"id"`
	URL           string              `json:"url"`
	Title         string              `json:"title"`
	CurrentPrice  *decimal.Decimal    `json:"current_price,omitempty"`
	TargetPrice   decimal.Decimal     `json:"target_price"`
	Status        enums.ProductStatus `json:"status"`
	HistoryStatus enums.HistoryStatus `json:"history_status"`
	PriceSummary  *PriceSummary       `json:"price_summary,omitempty"`
	Prediction    *Prediction         `json:"prediction,omitempty"`
	UserID        string              `json:"user_id,omitempty"`
	LastCheckedAt *time.Time          `json:"last_checked_at,omitempty"`
}

// PriceSummary aggregates observed prices. Each sub-field is independently
// optional; absence means insufficient data, never zero.
type PriceSummary struct {
	Lowest  *decimal.Decimal `json:"lowest_price,omitempty"`
	Average *decimal.Decimal `json:"average_price,omitempty"`
	Highest *decimal.Decimal `json:"highest_price,omitempty"`
}

// Prediction is the backend's advisory price outlook. Informational only.
type Prediction struct {
	Message    *string                    `json:"message,omitempty"`
	Confidence enums.PredictionConfidence `json:"confidence"`
}

// PricePoint is one observed price for chart rendering.
type PricePoint struct {
	Timestamp int64           `json:"timestamp"`
	Price     decimal.Decimal `json:"price"`
}

const maxDisplayHostLen = 25

// DisplayName returns the title, falling back to a trimmed host of the URL
// when the tracker has not scraped a product name yet.
func (p Product) DisplayName() string {
	if title := strings.TrimSpace(p.Title); title != "" {
		return title
	}
	if p.URL == "" {
		return "Product"
	}

	parsed, err := url.Parse(p.URL)
	if err != nil || parsed.Hostname() == "" {
		return truncate(p.URL, 30)
	}
	host := strings.TrimPrefix(parsed.Hostname(), "www.")
	return truncate(host, maxDisplayHostLen)
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max-3] + "..."
}
