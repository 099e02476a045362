package preview

import (
	"strings"

	"github.com/shopspring/decimal"

	"github.com/noah-isme/billing-preview/internal/catalog"
	"github.com/noah-isme/billing-preview/internal/pricing"
)

// AddonRequest asks for an addon to be attached to the subscription.
type AddonRequest struct {
	AddonID  string
	Quantity int64
}

// AddonLine is one addon's contribution to the invoice preview.
type AddonLine struct {
	Name   string
	Amount decimal.Decimal
}

// AddonAggregate sums the addon contributions for a billing period.
type AddonAggregate struct {
	Total decimal.Decimal
	Lines []AddonLine
}

// AggregateAddons resolves each requested addon against the catalog and
// sums the FIXED price matching the plan's billing period and currency,
// both compared case-insensitively. Addons without a matching price
// contribute nothing and are skipped without error.
func AggregateAddons(requests []AddonRequest, addons []catalog.Addon, billingPeriod, cur string) AddonAggregate {
	agg := AddonAggregate{Total: decimal.Zero}
	for _, req := range requests {
		addon, ok := findAddon(addons, req.AddonID)
		if !ok {
			continue
		}
		price, ok := matchAddonPrice(addon.Prices, billingPeriod, cur)
		if !ok {
			continue
		}
		agg.Total = agg.Total.Add(price.Amount)
		agg.Lines = append(agg.Lines, AddonLine{Name: addon.Name, Amount: price.Amount})
	}
	return agg
}

func findAddon(addons []catalog.Addon, id string) (catalog.Addon, bool) {
	for _, a := range addons {
		if a.ID == id {
			return a, true
		}
	}
	return catalog.Addon{}, false
}

func matchAddonPrice(prices []catalog.AddonPrice, billingPeriod, cur string) (catalog.AddonPrice, bool) {
	for _, p := range prices {
		if p.Type != string(pricing.PriceTypeFixed) {
			continue
		}
		if !strings.EqualFold(p.BillingPeriod, billingPeriod) {
			continue
		}
		if !strings.EqualFold(p.Currency, cur) {
			continue
		}
		return p, true
	}
	return catalog.AddonPrice{}, false
}
