package enums

import "fmt"

// ProductStatus is the tracker backend's authoritative tracking state for a
// product. The client never re-derives it from price arithmetic.
type ProductStatus string

const (
	ProductStatusPendingFirstCheck ProductStatus = "PENDING_FIRST_CHECK"
	ProductStatusWaitForDrop       ProductStatus = "WAIT_FOR_DROP"
	ProductStatusReadyToBuy        ProductStatus = "READY_TO_BUY"
	ProductStatusError             ProductStatus = "ERROR"
	ProductStatusUnavailable       ProductStatus = "UNAVAILABLE"
)

var validProductStatuses = []ProductStatus{
	ProductStatusPendingFirstCheck,
	ProductStatusWaitForDrop,
	ProductStatusReadyToBuy,
	ProductStatusError,
	ProductStatusUnavailable,
}

// String implements fmt.Stringer.
func (s ProductStatus) String() string {
	return string(s)
}

// IsValid reports whether the value is a known ProductStatus.
func (s ProductStatus) IsValid() bool {
	for _, candidate := range validProductStatuses {
		if candidate == s {
			return true
		}
	}
	return false
}

// ParseProductStatus converts raw input into a ProductStatus.
func ParseProductStatus(value string) (ProductStatus, error) {
	for _, candidate := range validProductStatuses {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid product status %q", value)
}
