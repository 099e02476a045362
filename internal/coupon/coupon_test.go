package coupon

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func TestDiscountFixed(t *testing.T) {
	c := Coupon{Type: TypeFixed, AmountOff: decimal.NewFromInt(20)}
	require.True(t, Discount(c, decimal.NewFromInt(100)).Equal(decimal.NewFromInt(20)))
}

func TestDiscountFixedCappedAtBase(t *testing.T) {
	c := Coupon{Type: TypeFixed, AmountOff: decimal.NewFromInt(150)}
	require.True(t, Discount(c, decimal.NewFromInt(100)).Equal(decimal.NewFromInt(100)))
}

func TestDiscountPercentage(t *testing.T) {
	c := Coupon{Type: TypePercentage, PercentageOff: decimal.NewFromInt(10)}
	require.True(t, Discount(c, decimal.NewFromInt(90)).Equal(decimal.NewFromInt(9)))
}

func TestDiscountUnknownTypeIsZero(t *testing.T) {
	c := Coupon{Type: "mystery", AmountOff: decimal.NewFromInt(50)}
	require.True(t, Discount(c, decimal.NewFromInt(100)).IsZero())
}

func TestDiscountNegativeClampsToZero(t *testing.T) {
	c := Coupon{Type: TypeFixed, AmountOff: decimal.NewFromInt(-5)}
	require.True(t, Discount(c, decimal.NewFromInt(100)).IsZero())
}

func TestTotalDiscountStacksAgainstSameBase(t *testing.T) {
	// Two 50% coupons discount 100, not 75: each is computed against the
	// undiscounted base.
	coupons := []Coupon{
		{Type: TypePercentage, PercentageOff: decimal.NewFromInt(50)},
		{Type: TypePercentage, PercentageOff: decimal.NewFromInt(50)},
	}
	total := TotalDiscount(coupons, decimal.NewFromInt(100))
	require.True(t, total.Equal(decimal.NewFromInt(100)))
}

func TestTotalDiscountMixedTypes(t *testing.T) {
	coupons := []Coupon{
		{Type: TypePercentage, PercentageOff: decimal.NewFromInt(10)},
		{Type: TypeFixed, AmountOff: decimal.NewFromInt(20)},
	}
	total := TotalDiscount(coupons, decimal.NewFromInt(100))
	require.True(t, total.Equal(decimal.NewFromInt(30)))
}
