package products

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/pricewatch/pricewatch-bff/internal/tracker"
	"github.com/pricewatch/pricewatch-bff/pkg/enums"
	pkgerrors "github.com/pricewatch/pricewatch-bff/pkg/errors"
)

// fieldAliases is the single source of truth for backend field naming drift.
// Earlier backend revisions used different names for the same field; the
// first alias that carries a non-null value wins.
var fieldAliases = map[string][]string{
	"id":              {"id", "product_id"},
	"url":             {"url", "product_url"},
	"title":           {"title", "product_name"},
	"current_price":   {"current_price"},
	"target_price":    {"target_price"},
	"status":          {"status"},
	"history_status":  {"history_status"},
	"price_summary":   {"price_summary"},
	"prediction":      {"prediction"},
	"user_id":         {"user_id"},
	"last_checked_at": {"last_checked_at", "checked_at"},
}

// MapBackendProduct normalizes one raw backend record into the canonical
// Product. Missing optional fields get documented defaults; a missing id,
// url, or target price is a contract violation and fails with a mapping
// error.
func MapBackendProduct(raw tracker.RawProduct) (Product, error) {
	if raw == nil {
		return Product{}, mappingError("record", "backend record is null")
	}

	id, ok := stringField(raw, "id")
	if !ok || id == "" {
		return Product{}, mappingError("id", "backend record has no product id")
	}

	rawURL, ok := stringField(raw, "url")
	if !ok || rawURL == "" {
		return Product{}, mappingError("url", "backend record has no url")
	}

	targetPrice, present, err := decimalField(raw, "target_price")
	if err != nil {
		return Product{}, err
	}
	if !present {
		return Product{}, mappingError("target_price", "backend record has no target price")
	}
	if !targetPrice.IsPositive() {
		return Product{}, mappingError("target_price", fmt.Sprintf("target price must be positive, got %s", targetPrice))
	}

	product := Product{
		ID:          id,
		URL:         rawURL,
		TargetPrice: targetPrice,
	}

	if title, ok := stringField(raw, "title"); ok {
		product.Title = title
	}

	if current, present, err := decimalField(raw, "current_price"); err != nil {
		return Product{}, err
	} else if present {
		product.CurrentPrice = &current
	}

	product.Status = statusField(raw)

	historyStatus, err := historyStatusField(raw)
	if err != nil {
		return Product{}, err
	}
	product.HistoryStatus = historyStatus

	summary, err := summaryField(raw)
	if err != nil {
		return Product{}, err
	}
	product.PriceSummary = summary

	prediction, err := predictionField(raw)
	if err != nil {
		return Product{}, err
	}
	product.Prediction = prediction

	if userID, ok := stringField(raw, "user_id"); ok {
		product.UserID = userID
	}

	if checkedAt, present, err := epochField(raw, "last_checked_at"); err != nil {
		return Product{}, err
	} else if present {
		product.LastCheckedAt = &checkedAt
	}

	return product, nil
}

// MapBackendProducts maps a list payload, failing on the first malformed record.
func MapBackendProducts(raws []tracker.RawProduct) ([]Product, error) {
	mapped := make([]Product, 0, len(raws))
	for i, raw := range raws {
		product, err := MapBackendProduct(raw)
		if err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeMapping, err, fmt.Sprintf("record %d", i))
		}
		mapped = append(mapped, product)
	}
	return mapped, nil
}

// MapHistoryPoints converts gateway history points into the client shape.
func MapHistoryPoints(points []tracker.HistoryPoint) []PricePoint {
	mapped := make([]PricePoint, 0, len(points))
	for _, point := range points {
		mapped = append(mapped, PricePoint{Timestamp: point.Timestamp, Price: point.Price})
	}
	return mapped
}

// lookup returns the first aliased value that is present and non-null.
func lookup(raw tracker.RawProduct, field string) (any, bool) {
	for _, alias := range fieldAliases[field] {
		if value, ok := raw[alias]; ok && value != nil {
			return value, true
		}
	}
	return nil, false
}

func stringField(raw tracker.RawProduct, field string) (string, bool) {
	value, ok := lookup(raw, field)
	if !ok {
		return "", false
	}
	s, ok := value.(string)
	if !ok {
		return "", false
	}
	return strings.TrimSpace(s), true
}

// decimalField coerces a price-like value. Backend revisions serialize prices
// as JSON numbers or as numeric strings; both are accepted. Absence is
// reported separately from coercion failure so callers can keep "no price
// yet" distinct from a malformed payload.
func decimalField(raw tracker.RawProduct, field string) (decimal.Decimal, bool, error) {
	value, ok := lookup(raw, field)
	if !ok {
		return decimal.Decimal{}, false, nil
	}
	parsed, err := coerceDecimal(value)
	if err != nil {
		return decimal.Decimal{}, false, mappingError(field, err.Error())
	}
	return parsed, true, nil
}

func coerceDecimal(value any) (decimal.Decimal, error) {
	switch v := value.(type) {
	case json.Number:
		return decimal.NewFromString(v.String())
	case string:
		trimmed := strings.TrimSpace(v)
		if trimmed == "" {
			return decimal.Decimal{}, fmt.Errorf("empty numeric string")
		}
		return decimal.NewFromString(trimmed)
	case float64:
		return decimal.NewFromFloat(v), nil
	case int64:
		return decimal.NewFromInt(v), nil
	default:
		return decimal.Decimal{}, fmt.Errorf("unsupported numeric type %T", value)
	}
}

// statusField trusts the backend enum verbatim. Absence maps to the
// documented WAIT_FOR_DROP fallback; values the enum set does not know yet
// are passed through unchanged so a new backend status never breaks the
// list, and the classifier treats them as waiting.
func statusField(raw tracker.RawProduct) enums.ProductStatus {
	value, ok := stringField(raw, "status")
	if !ok || value == "" {
		return enums.ProductStatusWaitForDrop
	}
	return enums.ProductStatus(value)
}

func historyStatusField(raw tracker.RawProduct) (enums.HistoryStatus, error) {
	value, ok := stringField(raw, "history_status")
	if !ok || value == "" {
		return enums.HistoryStatusNotAvailable, nil
	}
	status, err := enums.ParseHistoryStatus(value)
	if err != nil {
		return "", mappingError("history_status", err.Error())
	}
	return status, nil
}

func summaryField(raw tracker.RawProduct) (*PriceSummary, error) {
	value, ok := lookup(raw, "price_summary")
	if !ok {
		return nil, nil
	}
	nested, ok := value.(map[string]any)
	if !ok {
		return nil, mappingError("price_summary", fmt.Sprintf("expected object, got %T", value))
	}

	summary := &PriceSummary{}
	fields := []struct {
		keys []string
		dest **decimal.Decimal
	}{
		{[]string{"lowest_price", "lowest"}, &summary.Lowest},
		{[]string{"average_price", "average"}, &summary.Average},
		{[]string{"highest_price", "highest"}, &summary.Highest},
	}
	for _, f := range fields {
		for _, key := range f.keys {
			value, ok := nested[key]
			if !ok || value == nil {
				continue
			}
			parsed, err := coerceDecimal(value)
			if err != nil {
				return nil, mappingError("price_summary."+key, err.Error())
			}
			*f.dest = &parsed
			break
		}
	}

	if summary.Lowest == nil && summary.Average == nil && summary.Highest == nil {
		return nil, nil
	}
	return summary, nil
}

func predictionField(raw tracker.RawProduct) (*Prediction, error) {
	value, ok := lookup(raw, "prediction")
	if !ok {
		return nil, nil
	}
	nested, ok := value.(map[string]any)
	if !ok {
		return nil, mappingError("prediction", fmt.Sprintf("expected object, got %T", value))
	}

	prediction := &Prediction{Confidence: enums.PredictionConfidenceLow}
	if msg, ok := nested["message"].(string); ok && strings.TrimSpace(msg) != "" {
		trimmed := strings.TrimSpace(msg)
		prediction.Message = &trimmed
	}
	if conf, ok := nested["confidence"].(string); ok && conf != "" {
		parsed, err := enums.ParsePredictionConfidence(conf)
		if err != nil {
			return nil, mappingError("prediction.confidence", err.Error())
		}
		prediction.Confidence = parsed
	}

	if prediction.Message == nil {
		return nil, nil
	}
	return prediction, nil
}

func epochField(raw tracker.RawProduct, field string) (time.Time, bool, error) {
	value, ok := lookup(raw, field)
	if !ok {
		return time.Time{}, false, nil
	}

	var seconds int64
	switch v := value.(type) {
	case json.Number:
		parsed, err := v.Int64()
		if err != nil {
			return time.Time{}, false, mappingError(field, err.Error())
		}
		seconds = parsed
	case string:
		parsed, err := strconv.ParseInt(strings.TrimSpace(v), 10, 64)
		if err != nil {
			return time.Time{}, false, mappingError(field, err.Error())
		}
		seconds = parsed
	case float64:
		seconds = int64(v)
	default:
		return time.Time{}, false, mappingError(field, fmt.Sprintf("unsupported timestamp type %T", value))
	}

	return time.Unix(seconds, 0).UTC(), true, nil
}

func mappingError(field, reason string) *pkgerrors.Error {
	return pkgerrors.New(pkgerrors.CodeMapping, reason).
		WithDetails(map[string]any{"field": field})
}
