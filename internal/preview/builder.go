package preview

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/noah-isme/billing-preview/internal/catalog"
	"github.com/noah-isme/billing-preview/internal/coupon"
	"github.com/noah-isme/billing-preview/internal/currency"
	"github.com/noah-isme/billing-preview/internal/pricing"
	"github.com/noah-isme/billing-preview/internal/schedule"
)

const defaultCurrency = "USD"

// Input carries everything the invoice preview is derived from. All
// values are plain in-memory data; the builder performs no I/O.
type Input struct {
	PlanCharges     []pricing.Charge
	Phases          []schedule.Phase
	Coupons         []coupon.Coupon
	LineItemCoupons map[string]coupon.Coupon
	Overrides       pricing.Overrides
	TaxOverrides    []TaxRateOverride
	Addons          []AddonRequest
	Catalog         []catalog.Addon
}

// PlanLine is one plan charge's rendered price line.
type PlanLine struct {
	ChargeID   string
	Amount     decimal.Decimal
	PriceLabel string
}

// Breakdown is the computed first-invoice preview.
type Breakdown struct {
	Currency             string
	PlanSubtotal         decimal.Decimal
	PlanOriginalTotal    decimal.Decimal
	PlanLines            []PlanLine
	AddonSubtotal        decimal.Decimal
	AddonLines           []AddonLine
	LineItemDiscount     decimal.Decimal
	SubscriptionDiscount decimal.Decimal
	Tax                  decimal.Decimal
	NetPayable           decimal.Decimal
	StartDate            time.Time
	FirstInvoiceAt       time.Time
	BillingDescription   string
}

// Build assembles the invoice preview. The ordering is load-bearing:
// subscription coupons discount the plan total after line-item discounts
// and never touch addons, and tax applies to the discounted plan plus
// addons.
func Build(in Input) Breakdown {
	fixedCharges := make([]pricing.Charge, 0, len(in.PlanCharges))
	for _, c := range in.PlanCharges {
		if c.Type == pricing.PriceTypeFixed {
			fixedCharges = append(fixedCharges, c)
		}
	}

	plan := AggregatePlan(fixedCharges, in.Overrides, in.LineItemCoupons)

	subscriptionDiscount := coupon.TotalDiscount(in.Coupons, plan.Total)
	planAfterDiscount := plan.Total.Sub(subscriptionDiscount)
	if planAfterDiscount.IsNegative() {
		planAfterDiscount = decimal.Zero
	}

	cur := previewCurrency(fixedCharges)
	period := previewPeriod(in.PlanCharges)

	addonAgg := AggregateAddons(in.Addons, in.Catalog, string(period), cur)

	beforeTax := planAfterDiscount.Add(addonAgg.Total)
	tax := TaxAmount(beforeTax, in.TaxOverrides, cur)
	net := beforeTax.Add(tax)

	b := Breakdown{
		Currency:             cur,
		PlanSubtotal:         plan.Total,
		PlanOriginalTotal:    plan.OriginalTotal,
		PlanLines:            planLines(fixedCharges, in.Overrides, cur, period),
		AddonSubtotal:        addonAgg.Total,
		AddonLines:           addonAgg.Lines,
		LineItemDiscount:     plan.TotalDiscount,
		SubscriptionDiscount: subscriptionDiscount,
		Tax:                  tax,
		NetPayable:           net,
	}

	if len(in.Phases) > 0 {
		first := in.Phases[0]
		b.StartDate = first.StartDate
		b.FirstInvoiceAt = schedule.FirstInvoiceDate(first.StartDate, period, first.BillingCycle)
		b.BillingDescription = billingDescription(in.PlanCharges, period, b.FirstInvoiceAt)
	}
	return b
}

// planLines renders one price line per fixed charge. Tiered charges show
// the applicable tier's unit price when an override pins a quantity, and
// a "Starts at" first-tier price otherwise.
func planLines(charges []pricing.Charge, overrides pricing.Overrides, cur string, period schedule.BillingPeriod) []PlanLine {
	if len(charges) == 0 {
		return nil
	}
	lines := make([]PlanLine, 0, len(charges))
	for _, c := range charges {
		lines = append(lines, PlanLine{
			ChargeID:   c.ID,
			Amount:     pricing.CurrentAmount(c, overrides),
			PriceLabel: priceLabel(c, overrides, cur, period),
		})
	}
	return lines
}

func priceLabel(c pricing.Charge, overrides pricing.Overrides, cur string, period schedule.BillingPeriod) string {
	c.Scheme = pricing.EffectiveScheme(c, overrides)
	tiers := c.SchemeTiers()
	if len(tiers) == 0 {
		return perUnit(pricing.CurrentAmount(c, overrides), cur, period)
	}
	if ov, ok := overrides[c.ID]; ok && ov.Quantity != nil {
		if tier, err := pricing.ResolveTier(tiers, *ov.Quantity); err == nil {
			return perUnit(tier.UnitAmount, cur, period)
		}
	}
	return "Starts at " + perUnit(pricing.StartingUnitAmount(tiers), cur, period)
}

func perUnit(amount decimal.Decimal, cur string, period schedule.BillingPeriod) string {
	return currency.Format(amount, cur) + "/" + period.Unit()
}

// billingDescription explains when the first invoice bills. Any charge
// billed in advance makes the whole invoice bill immediately.
func billingDescription(charges []pricing.Charge, period schedule.BillingPeriod, anchor time.Time) string {
	if hasAdvanceCharge(charges) {
		return fmt.Sprintf("Bills immediately for %s", period.Duration())
	}
	return fmt.Sprintf("Bills on %s for %s", anchor.Format("Jan 2, 2006"), period.Duration())
}

func hasAdvanceCharge(charges []pricing.Charge) bool {
	for _, c := range charges {
		if c.InvoiceCadence == pricing.CadenceAdvance {
			return true
		}
	}
	return false
}

// previewCurrency takes the first fixed charge's currency, defaulting to
// USD for plans with no fixed charges.
func previewCurrency(fixedCharges []pricing.Charge) string {
	for _, c := range fixedCharges {
		if strings.TrimSpace(c.Currency) != "" {
			return c.Currency
		}
	}
	return defaultCurrency
}

// previewPeriod takes the billing period from the first plan charge.
func previewPeriod(charges []pricing.Charge) schedule.BillingPeriod {
	for _, c := range charges {
		if p, ok := schedule.ParsePeriod(c.BillingPeriod); ok {
			return p
		}
	}
	return schedule.PeriodMonthly
}
