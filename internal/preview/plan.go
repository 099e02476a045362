package preview

import (
	"github.com/shopspring/decimal"

	"github.com/noah-isme/billing-preview/internal/coupon"
	"github.com/noah-isme/billing-preview/internal/pricing"
)

// PlanAggregate is the result of summing a plan's charges with line-item
// discounts applied.
type PlanAggregate struct {
	// Total is the discounted sum payable for the plan's charges.
	Total decimal.Decimal
	// OriginalTotal is the undiscounted sum across fixed and usage charges.
	OriginalTotal decimal.Decimal
	// LineDiscounts maps charge id to the discount applied on that line.
	LineDiscounts map[string]decimal.Decimal
	// TotalDiscount is the sum of all line-item discounts.
	TotalDiscount decimal.Decimal
}

// AggregatePlan sums plan charges, applying line-item coupons to fixed
// charges only. Usage charges are counted in both totals but never
// discounted: their real amount is unknown at preview time, so a line-item
// coupon has nothing concrete to bite on.
func AggregatePlan(charges []pricing.Charge, overrides pricing.Overrides, lineCoupons map[string]coupon.Coupon) PlanAggregate {
	agg := PlanAggregate{
		Total:         decimal.Zero,
		OriginalTotal: decimal.Zero,
		LineDiscounts: make(map[string]decimal.Decimal, len(charges)),
		TotalDiscount: decimal.Zero,
	}
	for _, charge := range charges {
		amount := pricing.CurrentAmount(charge, overrides)
		agg.OriginalTotal = agg.OriginalTotal.Add(amount)

		if charge.Type != pricing.PriceTypeFixed {
			agg.Total = agg.Total.Add(amount)
			continue
		}

		discount := decimal.Zero
		if c, ok := lineCoupons[charge.ID]; ok {
			discount = coupon.Discount(c, amount)
		}
		agg.LineDiscounts[charge.ID] = discount
		agg.TotalDiscount = agg.TotalDiscount.Add(discount)

		net := amount.Sub(discount)
		if net.IsNegative() {
			net = decimal.Zero
		}
		agg.Total = agg.Total.Add(net)
	}
	return agg
}
