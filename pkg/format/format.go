// Package format renders prices and timestamps the way the tracker frontend
// displays them: rupee amounts with en-IN digit grouping and coarse relative
// times.
package format

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

var printer = message.NewPrinter(language.MustParse("en-IN"))

// Currency renders a price as a rupee display string with locale grouping,
// e.g. 123456 -> "₹1,23,456".
func Currency(amount decimal.Decimal) string {
	if amount.IsInteger() {
		return printer.Sprintf("₹%v", number.Decimal(amount.IntPart()))
	}
	value, _ := amount.Float64()
	return printer.Sprintf("₹%v", number.Decimal(value,
		number.MinFractionDigits(2),
		number.MaxFractionDigits(2),
	))
}

// CurrencyPtr renders an optional price; absent amounts render as "₹0" to
// match the frontend fallback.
func CurrencyPtr(amount *decimal.Decimal) string {
	if amount == nil {
		return "₹0"
	}
	return Currency(*amount)
}

// RelativeTime buckets the elapsed time into a coarse human label.
func RelativeTime(t, now time.Time) string {
	if t.IsZero() {
		return "Unknown"
	}

	diff := now.Sub(t)
	minutes := int(diff.Minutes())
	hours := int(diff.Hours())
	days := int(diff.Hours() / 24)

	switch {
	case minutes < 1:
		return "Just now"
	case minutes < 60:
		return fmt.Sprintf("%d minutes ago", minutes)
	case hours < 24:
		return fmt.Sprintf("%d hours ago", hours)
	case days < 30:
		return fmt.Sprintf("%d days ago", days)
	default:
		return ShortDate(t)
	}
}

// ShortDate renders a date in en-IN day/month/year order.
func ShortDate(t time.Time) string {
	return t.Format("2/1/2006")
}

// LongDate renders a full date with time for detail views.
func LongDate(t time.Time) string {
	if t.IsZero() {
		return "Unknown"
	}
	return t.Format("2 January 2006, 3:04 PM")
}
