package pricing

import "github.com/shopspring/decimal"

// PriceType distinguishes recurring fixed fees from usage-metered charges.
type PriceType string

const (
	// PriceTypeFixed is a flat recurring fee, resolvable at preview time.
	PriceTypeFixed PriceType = "FIXED"
	// PriceTypeUsage is a metered charge whose real amount is only known
	// after consumption is reported.
	PriceTypeUsage PriceType = "USAGE"
)

// PriceUnitType marks whether a charge is denominated in a fiat currency
// or in a custom unit of account (credits, tokens, ...).
type PriceUnitType string

const (
	PriceUnitFiat   PriceUnitType = "FIAT"
	PriceUnitCustom PriceUnitType = "CUSTOM"
)

// InvoiceCadence controls whether a charge is billed up front or after the period.
type InvoiceCadence string

const (
	CadenceAdvance InvoiceCadence = "ADVANCE"
	CadenceArrear  InvoiceCadence = "ARREAR"
)

// Scheme is the closed set of billing models a charge can carry. Each
// variant holds only the fields relevant to it; callers resolve behaviour
// with an exhaustive type switch.
type Scheme interface {
	scheme()
}

// FlatFee bills a single per-unit amount.
type FlatFee struct{}

// Package bills the charge amount per block of DivideBy units.
type Package struct {
	DivideBy int64
}

// Tiered bills using volume tiers; the applicable tier's unit and flat
// amounts depend on the quantity.
type Tiered struct {
	Tiers []Tier
}

func (FlatFee) scheme() {}
func (Package) scheme() {}
func (Tiered) scheme()  {}

// PriceUnitConfig carries the amount and tiers for custom price units,
// which live outside the fiat amount field.
type PriceUnitConfig struct {
	Amount *decimal.Decimal
	Tiers  []Tier
}

// Charge is a single plan price line: a fixed or usage charge with its
// billing scheme, currency, and cadence. Amounts are decimals end to end;
// a nil amount means the backend did not supply one and resolves to zero.
type Charge struct {
	ID              string
	Type            PriceType
	Currency        string
	Amount          *decimal.Decimal
	Scheme          Scheme
	PriceUnitType   PriceUnitType
	PriceUnitConfig *PriceUnitConfig
	InvoiceCadence  InvoiceCadence
	BillingPeriod   string
}

// SchemeTiers returns the tiers applicable to the charge, preferring the
// custom price-unit tiers when configured.
func (c Charge) SchemeTiers() []Tier {
	if c.PriceUnitConfig != nil && len(c.PriceUnitConfig.Tiers) > 0 {
		return c.PriceUnitConfig.Tiers
	}
	if t, ok := c.Scheme.(Tiered); ok {
		return t.Tiers
	}
	return nil
}
