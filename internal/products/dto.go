package products

import (
	"net/url"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/pricewatch/pricewatch-bff/internal/tracker"
	"github.com/pricewatch/pricewatch-bff/pkg/enums"
	pkgerrors "github.com/pricewatch/pricewatch-bff/pkg/errors"
)

// CreateProductInput is the user-entered form data for tracking a new product.
type CreateProductInput struct {
	URL         string          `json:"url" validate:"required"`
	TargetPrice decimal.Decimal `json:"target_price"`
}

// Validate applies the pre-network constraints. Violations never reach the
// tracker backend.
func (in CreateProductInput) Validate() error {
	details := map[string]string{}

	trimmed := strings.TrimSpace(in.URL)
	if trimmed == "" {
		details["url"] = "is required"
	} else if parsed, err := url.Parse(trimmed); err != nil || !parsed.IsAbs() || parsed.Host == "" {
		details["url"] = "must be a valid absolute URL"
	}

	if !in.TargetPrice.IsPositive() {
		details["target_price"] = "must be greater than zero"
	}

	if len(details) > 0 {
		return pkgerrors.New(pkgerrors.CodeValidation, "validation failed").WithDetails(details)
	}
	return nil
}

// BackendPayload attaches the resolved user identity and produces the
// backend's create request shape.
func (in CreateProductInput) BackendPayload(userID string) tracker.AddProductPayload {
	return tracker.AddProductPayload{
		URL:         strings.TrimSpace(in.URL),
		TargetPrice: in.TargetPrice,
		UserID:      userID,
	}
}

// UpdateTargetPriceInput carries the only mutable field of a tracked product.
type UpdateTargetPriceInput struct {
	TargetPrice decimal.Decimal `json:"target_price"`
}

// Validate applies the pre-network constraints.
func (in UpdateTargetPriceInput) Validate() error {
	if !in.TargetPrice.IsPositive() {
		return pkgerrors.New(pkgerrors.CodeValidation, "validation failed").
			WithDetails(map[string]string{"target_price": "must be greater than zero"})
	}
	return nil
}

// BackendPayload produces the backend's update request shape.
func (in UpdateTargetPriceInput) BackendPayload() tracker.UpdateTargetPricePayload {
	return tracker.UpdateTargetPricePayload{TargetPrice: in.TargetPrice}
}

// ProductView pairs a product with its derived display insight and the
// pre-rendered display strings the frontend shows on cards.
type ProductView struct {
	Product
	DisplayName         string  `json:"display_name"`
	CurrentPriceDisplay string  `json:"current_price_display"`
	LastCheckedDisplay  string  `json:"last_checked_display,omitempty"`
	Insight             Insight `json:"insight"`
}

// PriceHistoryView is the chart payload for one product and range.
type PriceHistoryView struct {
	ProductID string             `json:"product_id"`
	Range     enums.HistoryRange `json:"range"`
	Points    []PricePoint       `json:"points"`
	Count     int                `json:"count"`
	Trend     string             `json:"trend"`
}
