package preview

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/billing-preview/internal/catalog"
	"github.com/noah-isme/billing-preview/internal/coupon"
	"github.com/noah-isme/billing-preview/internal/pricing"
	"github.com/noah-isme/billing-preview/internal/schedule"
)

func monthlyAddonCatalog() []catalog.Addon {
	return []catalog.Addon{
		{
			ID:   "addon_support",
			Name: "Priority Support",
			Prices: []catalog.AddonPrice{
				{Type: "FIXED", Currency: "USD", BillingPeriod: "MONTHLY", Amount: decimal.NewFromInt(50)},
				{Type: "FIXED", Currency: "EUR", BillingPeriod: "ANNUAL", Amount: decimal.NewFromInt(500)},
			},
		},
	}
}

func TestBuildLineAndSubscriptionDiscounts(t *testing.T) {
	in := Input{
		PlanCharges: []pricing.Charge{fixedCharge("ch_1", 100)},
		LineItemCoupons: map[string]coupon.Coupon{
			"ch_1": {Type: coupon.TypePercentage, PercentageOff: decimal.NewFromInt(10)},
		},
		Coupons: []coupon.Coupon{
			{Type: coupon.TypeFixed, AmountOff: decimal.NewFromInt(20)},
		},
	}

	b := Build(in)
	require.True(t, b.PlanSubtotal.Equal(decimal.NewFromInt(90)), "got %s", b.PlanSubtotal)
	require.True(t, b.LineItemDiscount.Equal(decimal.NewFromInt(10)))
	require.True(t, b.SubscriptionDiscount.Equal(decimal.NewFromInt(20)))
	require.True(t, b.NetPayable.Equal(decimal.NewFromInt(70)), "got %s", b.NetPayable)
	require.Equal(t, "USD", b.Currency)
}

func TestBuildAddonsAndTax(t *testing.T) {
	in := Input{
		PlanCharges:  []pricing.Charge{fixedCharge("ch_1", 100)},
		Addons:       []AddonRequest{{AddonID: "addon_support", Quantity: 1}},
		Catalog:      monthlyAddonCatalog(),
		TaxOverrides: []TaxRateOverride{{Currency: "usd", AutoApply: true}},
	}

	b := Build(in)
	require.True(t, b.AddonSubtotal.Equal(decimal.NewFromInt(50)))
	require.Len(t, b.AddonLines, 1)
	require.Equal(t, "Priority Support", b.AddonLines[0].Name)
	// Tax applies to plan-after-discount plus addons: 10% of 150.
	require.True(t, b.Tax.Equal(decimal.NewFromInt(15)), "got %s", b.Tax)
	require.True(t, b.NetPayable.Equal(decimal.NewFromInt(165)), "got %s", b.NetPayable)
}

func TestBuildSubscriptionCouponsNeverTouchAddons(t *testing.T) {
	in := Input{
		PlanCharges: []pricing.Charge{fixedCharge("ch_1", 100)},
		Coupons: []coupon.Coupon{
			{Type: coupon.TypePercentage, PercentageOff: decimal.NewFromInt(50)},
			{Type: coupon.TypePercentage, PercentageOff: decimal.NewFromInt(50)},
		},
		Addons:  []AddonRequest{{AddonID: "addon_support", Quantity: 1}},
		Catalog: monthlyAddonCatalog(),
	}

	b := Build(in)
	// Two 50% coupons zero out the plan but the addon is untouched.
	require.True(t, b.SubscriptionDiscount.Equal(decimal.NewFromInt(100)))
	require.True(t, b.NetPayable.Equal(decimal.NewFromInt(50)), "got %s", b.NetPayable)
}

func TestBuildSubscriptionDiscountClampsAtZero(t *testing.T) {
	in := Input{
		PlanCharges: []pricing.Charge{fixedCharge("ch_1", 100)},
		Coupons: []coupon.Coupon{
			{Type: coupon.TypePercentage, PercentageOff: decimal.NewFromInt(60)},
			{Type: coupon.TypePercentage, PercentageOff: decimal.NewFromInt(60)},
		},
	}

	b := Build(in)
	require.True(t, b.SubscriptionDiscount.Equal(decimal.NewFromInt(120)))
	require.True(t, b.NetPayable.IsZero())
}

func TestBuildAddonMismatchContributesNothing(t *testing.T) {
	annual := fixedCharge("ch_1", 1000)
	annual.BillingPeriod = "ANNUAL"
	in := Input{
		PlanCharges: []pricing.Charge{annual},
		Addons:      []AddonRequest{{AddonID: "addon_support", Quantity: 1}},
		Catalog:     monthlyAddonCatalog(),
	}

	// The addon only has a USD MONTHLY and a EUR ANNUAL price; a USD ANNUAL
	// plan matches neither.
	b := Build(in)
	require.True(t, b.AddonSubtotal.IsZero())
	require.Empty(t, b.AddonLines)
}

func TestBuildUsageChargesExcludedFromPlanTotals(t *testing.T) {
	in := Input{
		PlanCharges: []pricing.Charge{fixedCharge("ch_1", 100), usageCharge("ch_2", 30)},
	}

	b := Build(in)
	// Usage charges are filtered out of the preview's plan aggregate; only
	// fixed charges are payable at preview time.
	require.True(t, b.PlanSubtotal.Equal(decimal.NewFromInt(100)))
	require.True(t, b.PlanOriginalTotal.Equal(decimal.NewFromInt(100)))
}

func TestBuildBillingDescriptionAdvance(t *testing.T) {
	advance := fixedCharge("ch_1", 100)
	advance.InvoiceCadence = pricing.CadenceAdvance
	start := time.Date(2026, time.March, 15, 0, 0, 0, 0, time.UTC)
	in := Input{
		PlanCharges: []pricing.Charge{advance},
		Phases:      []schedule.Phase{{StartDate: start, BillingCycle: schedule.CycleAnniversary}},
	}

	b := Build(in)
	require.Equal(t, "Bills immediately for 1 month", b.BillingDescription)
	require.Equal(t, start, b.StartDate)
	require.Equal(t, start.AddDate(0, 1, 0), b.FirstInvoiceAt)
}

func TestBuildBillingDescriptionArrear(t *testing.T) {
	arrear := fixedCharge("ch_1", 100)
	arrear.InvoiceCadence = pricing.CadenceArrear
	start := time.Date(2026, time.March, 15, 0, 0, 0, 0, time.UTC)
	in := Input{
		PlanCharges: []pricing.Charge{arrear},
		Phases:      []schedule.Phase{{StartDate: start, BillingCycle: schedule.CycleCalendar}},
	}

	b := Build(in)
	require.Equal(t, "Bills on Apr 1, 2026 for 1 month", b.BillingDescription)
}

func TestBuildDefaultsCurrencyAndPeriod(t *testing.T) {
	b := Build(Input{})
	require.Equal(t, "USD", b.Currency)
	require.True(t, b.NetPayable.IsZero())
}

func tierUpTo(v int64) *int64 { return &v }

func supportTiers() []pricing.Tier {
	return []pricing.Tier{
		{UpTo: tierUpTo(10), UnitAmount: decimal.NewFromInt(5)},
		{UnitAmount: decimal.NewFromInt(3)},
	}
}

func TestBuildPlanLinesFlatFee(t *testing.T) {
	b := Build(Input{PlanCharges: []pricing.Charge{fixedCharge("ch_1", 100)}})
	require.Len(t, b.PlanLines, 1)
	require.Equal(t, "ch_1", b.PlanLines[0].ChargeID)
	require.True(t, b.PlanLines[0].Amount.Equal(decimal.NewFromInt(100)))
	require.Equal(t, "$100.00/month", b.PlanLines[0].PriceLabel)
}

func TestBuildPlanLinesTieredStartsAt(t *testing.T) {
	tiered := fixedCharge("ch_1", 0)
	tiered.Scheme = pricing.Tiered{Tiers: supportTiers()}

	b := Build(Input{PlanCharges: []pricing.Charge{tiered}})
	require.Equal(t, "Starts at $5.00/month", b.PlanLines[0].PriceLabel)
}

func TestBuildPlanLinesTieredOverrideQuantity(t *testing.T) {
	tiered := fixedCharge("ch_1", 0)
	tiered.Scheme = pricing.Tiered{Tiers: supportTiers()}
	qty := int64(50)
	in := Input{
		PlanCharges: []pricing.Charge{tiered},
		Overrides:   pricing.Overrides{"ch_1": {Quantity: &qty}},
	}

	b := Build(in)
	// Quantity 50 falls past the bounded tier into the open-ended one.
	require.Equal(t, "$3.00/month", b.PlanLines[0].PriceLabel)
}

func TestBuildPlanLinesSchemeOverride(t *testing.T) {
	in := Input{
		PlanCharges: []pricing.Charge{fixedCharge("ch_1", 100)},
		Overrides:   pricing.Overrides{"ch_1": {Scheme: pricing.Tiered{Tiers: supportTiers()}}},
	}

	b := Build(in)
	require.Equal(t, "Starts at $5.00/month", b.PlanLines[0].PriceLabel)
}

func TestTaxAmountRequiresAutoApplyMatch(t *testing.T) {
	base := decimal.NewFromInt(150)

	require.True(t, TaxAmount(base, nil, "USD").IsZero())
	require.True(t, TaxAmount(base, []TaxRateOverride{{Currency: "EUR", AutoApply: true}}, "USD").IsZero())
	require.True(t, TaxAmount(base, []TaxRateOverride{{Currency: "USD", AutoApply: false}}, "USD").IsZero())
	require.True(t, TaxAmount(base, []TaxRateOverride{{Currency: "usd", AutoApply: true}}, "USD").Equal(decimal.NewFromInt(15)))
}
