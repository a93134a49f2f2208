package enums

import "fmt"

// HistoryStatus is the backend-reported readiness of a product's price
// history, independent of the tracking status.
type HistoryStatus string

const (
	HistoryStatusAvailable    HistoryStatus = "AVAILABLE"
	HistoryStatusInProgress   HistoryStatus = "IN_PROGRESS"
	HistoryStatusFailed       HistoryStatus = "FAILED"
	HistoryStatusNotAvailable HistoryStatus = "NOT_AVAILABLE"
)

var validHistoryStatuses = []HistoryStatus{
	HistoryStatusAvailable,
	HistoryStatusInProgress,
	HistoryStatusFailed,
	HistoryStatusNotAvailable,
}

// String implements fmt.Stringer.
func (s HistoryStatus) String() string {
	return string(s)
}

// IsValid reports whether the value is a known HistoryStatus.
func (s HistoryStatus) IsValid() bool {
	for _, candidate := range validHistoryStatuses {
		if candidate == s {
			return true
		}
	}
	return false
}

// ParseHistoryStatus converts raw input into a HistoryStatus.
func ParseHistoryStatus(value string) (HistoryStatus, error) {
	for _, candidate := range validHistoryStatuses {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid history status %q", value)
}
