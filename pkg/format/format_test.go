package format

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
)

func TestCurrencyGroupsIndianStyle(t *testing.T) {
	cases := []struct {
		amount string
		want   string
	}{
		{"0", "₹0"},
		{"999", "₹999"},
		{"3999", "₹3,999"},
		{"123456", "₹1,23,456"},
		{"12345678", "₹1,23,45,678"},
	}
	for _, tc := range cases {
		amount, err := decimal.NewFromString(tc.amount)
		if err != nil {
			t.Fatalf("parse %q: %v", tc.amount, err)
		}
		if got := Currency(amount); got != tc.want {
			t.Fatalf("Currency(%s) = %q, want %q", tc.amount, got, tc.want)
		}
	}
}

func TestCurrencyFractional(t *testing.T) {
	amount := decimal.RequireFromString("1499.50")
	if got := Currency(amount); got != "₹1,499.50" {
		t.Fatalf("unexpected fractional rendering %q", got)
	}
}

func TestCurrencyPtrAbsent(t *testing.T) {
	if got := CurrencyPtr(nil); got != "₹0" {
		t.Fatalf("expected fallback ₹0, got %q", got)
	}
}

func TestRelativeTimeBuckets(t *testing.T) {
	now := time.Date(2026, 8, 28, 12, 0, 0, 0, time.UTC)
	cases := []struct {
		at   time.Time
		want string
	}{
		{now.Add(-30 * time.Second), "Just now"},
		{now.Add(-5 * time.Minute), "5 minutes ago"},
		{now.Add(-3 * time.Hour), "3 hours ago"},
		{now.Add(-48 * time.Hour), "2 days ago"},
		{now.Add(-40 * 24 * time.Hour), "19/7/2026"},
	}
	for _, tc := range cases {
		if got := RelativeTime(tc.at, now); got != tc.want {
			t.Fatalf("RelativeTime(%v) = %q, want %q", tc.at, got, tc.want)
		}
	}
	if got := RelativeTime(time.Time{}, now); got != "Unknown" {
		t.Fatalf("zero time should render Unknown, got %q", got)
	}
}
