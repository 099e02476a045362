package preview

import (
	"strings"

	"github.com/shopspring/decimal"
)

// TaxRateOverride enables automatic tax application for a currency.
type TaxRateOverride struct {
	Currency  string
	AutoApply bool
}

var flatTaxRate = decimal.NewFromFloat(0.10)

// TaxAmount applies a flat 10% tax when at least one override matches the
// invoice currency (case-insensitive) with auto-apply enabled.
// TODO: replace the flat rate with proper tax-rate lookup once rates are
// served by the backend.
func TaxAmount(subtotal decimal.Decimal, overrides []TaxRateOverride, cur string) decimal.Decimal {
	for _, o := range overrides {
		if o.AutoApply && strings.EqualFold(o.Currency, cur) {
			return subtotal.Mul(flatTaxRate)
		}
	}
	return decimal.Zero
}
