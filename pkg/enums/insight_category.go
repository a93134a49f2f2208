package enums

import "fmt"

// InsightCategory is the user-facing display category derived from a
// product's backend status.
type InsightCategory string

const (
	InsightCategoryStartingSoon   InsightCategory = "STARTING_SOON"
	InsightCategoryWaiting        InsightCategory = "WAITING"
	InsightCategoryTargetReached  InsightCategory = "TARGET_REACHED"
	InsightCategoryTrackingFailed InsightCategory = "TRACKING_FAILED"
	InsightCategoryUnavailable    InsightCategory = "UNAVAILABLE"
)

var validInsightCategories = []InsightCategory{
	InsightCategoryStartingSoon,
	InsightCategoryWaiting,
	InsightCategoryTargetReached,
	InsightCategoryTrackingFailed,
	InsightCategoryUnavailable,
}

// String implements fmt.Stringer.
func (c InsightCategory) String() string {
	return string(c)
}

// IsValid reports whether the value is a known InsightCategory.
func (c InsightCategory) IsValid() bool {
	for _, candidate := range validInsightCategories {
		if candidate == c {
			return true
		}
	}
	return false
}

// ParseInsightCategory converts raw input into an InsightCategory.
func ParseInsightCategory(value string) (InsightCategory, error) {
	for _, candidate := range validInsightCategories {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid insight category %q", value)
}
