package enums

import "fmt"

// HistoryRange is the chart window requested by the frontend.
type HistoryRange string

const (
	HistoryRangeMonth    HistoryRange = "1M"
	HistoryRangeHalfYear HistoryRange = "6M"
	HistoryRangeYear     HistoryRange = "1Y"
	HistoryRangeAll      HistoryRange = "ALL"
)

var validHistoryRanges = []HistoryRange{
	HistoryRangeMonth,
	HistoryRangeHalfYear,
	HistoryRangeYear,
	HistoryRangeAll,
}

// Days returns the window size in days, or 0 for the unbounded range.
func (r HistoryRange) Days() int {
	switch r {
	case HistoryRangeMonth:
		return 30
	case HistoryRangeHalfYear:
		return 180
	case HistoryRangeYear:
		return 365
	default:
		return 0
	}
}

// String implements fmt.Stringer.
func (r HistoryRange) String() string {
	return string(r)
}

// IsValid reports whether the value is a known HistoryRange.
func (r HistoryRange) IsValid() bool {
	for _, candidate := range validHistoryRanges {
		if candidate == r {
			return true
		}
	}
	return false
}

// ParseHistoryRange converts raw input into a HistoryRange.
func ParseHistoryRange(value string) (HistoryRange, error) {
	for _, candidate := range validHistoryRanges {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid history range %q", value)
}
