package validators

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/pricewatch/pricewatch-bff/pkg/enums"
	pkgerrors "github.com/pricewatch/pricewatch-bff/pkg/errors"
)

func ParseQueryInt(r *http.Request, key string, defaultVal, min, max int) (int, error) {
	raw := strings.TrimSpace(r.URL.Query().Get(key))
	if raw == "" {
		return defaultVal, nil
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return 0, pkgerrors.New(pkgerrors.CodeValidation, "query parameter must be numeric").WithDetails(map[string]any{"field": key})
	}
	if value < min || value > max {
		return 0, pkgerrors.New(pkgerrors.CodeValidation, "query parameter out of range").WithDetails(map[string]any{"field": key, "min": min, "max": max})
	}
	return value, nil
}

// ParseHistoryRange reads the chart window from the query string. An absent
// or unrecognized value falls back to the full range.
func ParseHistoryRange(r *http.Request, key string) enums.HistoryRange {
	raw := strings.ToUpper(strings.TrimSpace(r.URL.Query().Get(key)))
	if raw == "" {
		return enums.HistoryRangeAll
	}
	rng, err := enums.ParseHistoryRange(raw)
	if err != nil {
		return enums.HistoryRangeAll
	}
	return rng
}
