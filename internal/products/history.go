package products

import (
	"sort"
	"time"

	"github.com/pricewatch/pricewatch-bff/pkg/enums"
)

// Trend labels for a filtered series. Display metadata only; never fed back
// into product status.
const (
	TrendDecreasing = "DECREASING"
	TrendIncreasing = "INCREASING"
	TrendStable     = "STABLE"
)

// FilterRange returns the points inside the requested window, sorted
// ascending by timestamp. The input may arrive unsorted and is not mutated.
// ALL and unrecognized ranges return the full sorted series. An empty result
// is valid; loading state is the caller's flag, never inferred from emptiness.
func FilterRange(points []PricePoint, rng enums.HistoryRange, now time.Time) []PricePoint {
	sorted := make([]PricePoint, len(points))
	copy(sorted, points)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Timestamp < sorted[j].Timestamp
	})

	days := rng.Days()
	if days == 0 {
		return sorted
	}

	cutoff := now.AddDate(0, 0, -days).Unix()
	filtered := sorted[:0:0]
	for _, point := range sorted {
		if point.Timestamp >= cutoff {
			filtered = append(filtered, point)
		}
	}
	return filtered
}

// Trend compares the first and last point of an ascending series.
func Trend(points []PricePoint) string {
	if len(points) < 2 {
		return TrendStable
	}
	first, last := points[0].Price, points[len(points)-1].Price
	switch {
	case first.GreaterThan(last):
		return TrendDecreasing
	case first.LessThan(last):
		return TrendIncreasing
	default:
		return TrendStable
	}
}
