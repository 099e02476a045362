package coupon

import "github.com/shopspring/decimal"

// Type enumerates supported coupon kinds.
type Type string

const (
	TypeFixed      Type = "fixed"
	TypePercentage Type = "percentage"
)

// Coupon is a discount applied either to a single charge (line-item
// coupon) or to the aggregated plan total (subscription coupon).
type Coupon struct {
	Name          string
	Type          Type
	AmountOff     decimal.Decimal
	PercentageOff decimal.Decimal
}

// Discount computes the coupon's discount against a base amount. Fixed
// coupons are capped at the base so the residual never goes negative;
// percentage coupons take base*pct/100. Unknown types discount nothing.
func Discount(c Coupon, base decimal.Decimal) decimal.Decimal {
	var discount decimal.Decimal
	switch c.Type {
	case TypeFixed:
		discount = c.AmountOff
		if discount.GreaterThan(base) {
			discount = base
		}
	case TypePercentage:
		discount = base.Mul(c.PercentageOff).Div(decimal.NewFromInt(100))
	default:
		return decimal.Zero
	}
	if discount.IsNegative() {
		return decimal.Zero
	}
	return discount
}

// TotalDiscount sums each coupon's discount computed independently against
// the same base. Discounts are deliberately not compounded: two 50%-off
// coupons on a base of 100 yield 100, not 75. This keeps stacking
// commutative regardless of coupon order.
func TotalDiscount(coupons []Coupon, base decimal.Decimal) decimal.Decimal {
	total := decimal.Zero
	for _, c := range coupons {
		total = total.Add(Discount(c, base))
	}
	return total
}
