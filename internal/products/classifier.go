package products

import (
	"github.com/shopspring/decimal"

	"github.com/pricewatch/pricewatch-bff/pkg/enums"
	"github.com/pricewatch/pricewatch-bff/pkg/format"
)

// Insight is the derived display state for a product card.
type Insight struct {
	Category        enums.InsightCategory `json:"category"`
	Headline        string                `json:"headline"`
	PriceDifference *decimal.Decimal      `json:"price_difference,omitempty"`
	Savings         *decimal.Decimal      `json:"savings,omitempty"`
}

// Classify derives the display category and price figures for a product.
//
// The backend status is authoritative: the category is never overridden by
// price arithmetic, even when current price is already below target. That
// guards against races where the price just dropped but the backend has not
// reclassified yet.
func Classify(p Product) Insight {
	var diff *decimal.Decimal
	if p.CurrentPrice != nil {
		d := p.CurrentPrice.Sub(p.TargetPrice)
		diff = &d
	}

	insight := Insight{PriceDifference: diff}

	switch p.Status {
	case enums.ProductStatusPendingFirstCheck:
		insight.Category = enums.InsightCategoryStartingSoon
		insight.Headline = "Tracking will start soon"

	case enums.ProductStatusReadyToBuy:
		insight.Category = enums.InsightCategoryTargetReached
		insight.Headline = "Target price reached"
		if diff != nil {
			savings := diff.Abs()
			insight.Savings = &savings
		}

	case enums.ProductStatusError:
		insight.Category = enums.InsightCategoryTrackingFailed
		insight.Headline = "Tracking failed, try removing and re-adding the product"

	case enums.ProductStatusUnavailable:
		insight.Category = enums.InsightCategoryUnavailable
		insight.Headline = "Price not available right now"

	default:
		// WAIT_FOR_DROP, and the documented fallback for anything the
		// mapper let through.
		insight.Category = enums.InsightCategoryWaiting
		switch {
		case diff == nil:
			insight.Headline = "Monitoring price"
		case diff.IsPositive():
			insight.Headline = format.Currency(*diff) + " to go"
		default:
			insight.Headline = "Waiting for price drop"
		}
	}

	return insight
}
