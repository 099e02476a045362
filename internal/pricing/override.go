package pricing

import "github.com/shopspring/decimal"

// Override is a partial, per-subscription replacement of a charge's price.
// Only set fields take effect; an override with nothing set is identical
// to no override at all.
type Override struct {
	Amount   *decimal.Decimal
	Quantity *int64
	Scheme   Scheme
}

// IsZero reports whether no field of the override is set.
func (o Override) IsZero() bool {
	return o.Amount == nil && o.Quantity == nil && o.Scheme == nil
}

// Overrides maps charge ids to their overrides.
type Overrides map[string]Override

// Set records an override for the charge. Storing a zero override is the
// same as resetting: the entry is removed so behaviour matches a charge
// that was never overridden.
func (m Overrides) Set(chargeID string, o Override) {
	if o.IsZero() {
		delete(m, chargeID)
		return
	}
	m[chargeID] = o
}

// Reset removes any override for the charge, restoring the original price.
func (m Overrides) Reset(chargeID string) {
	delete(m, chargeID)
}

// CurrentAmount resolves the monetary amount a charge contributes right
// now. Precedence: an override amount always wins; custom price units read
// their configured amount; otherwise the charge's own amount applies.
// Absent data resolves to zero — this function never fails.
func CurrentAmount(c Charge, overrides Overrides) decimal.Decimal {
	if ov, ok := overrides[c.ID]; ok && ov.Amount != nil {
		return *ov.Amount
	}
	if c.PriceUnitType == PriceUnitCustom {
		if c.PriceUnitConfig != nil && c.PriceUnitConfig.Amount != nil {
			return *c.PriceUnitConfig.Amount
		}
		return decimal.Zero
	}
	if c.Amount != nil {
		return *c.Amount
	}
	return decimal.Zero
}

// EffectiveScheme returns the billing scheme in force for the charge,
// honouring a scheme override when present.
func EffectiveScheme(c Charge, overrides Overrides) Scheme {
	if ov, ok := overrides[c.ID]; ok && ov.Scheme != nil {
		return ov.Scheme
	}
	return c.Scheme
}
