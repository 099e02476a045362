package pricing

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

var (
	// ErrNoTiers is returned when a tier lookup runs against an empty list;
	// callers fall back to the base price display.
	ErrNoTiers = errors.New("pricing: no tiers configured")
)

// Tier is one volume-pricing band. UpTo is the inclusive upper quantity
// bound; nil marks the open-ended final tier. The implied lower bound is
// the previous tier's UpTo plus one.
type Tier struct {
	UpTo       *int64
	UnitAmount decimal.Decimal
	FlatAmount decimal.Decimal
}

// StartingUnitAmount reports the first tier's unit amount, used for
// "Starts at" price displays. An empty list yields zero.
func StartingUnitAmount(tiers []Tier) decimal.Decimal {
	if len(tiers) == 0 {
		return decimal.Zero
	}
	return tiers[0].UnitAmount
}

// ResolveTier returns the tier applicable to the quantity: the first tier
// whose upper bound covers it, or the open-ended final tier. Validity of
// the tier list is assumed; see ValidateTiers.
func ResolveTier(tiers []Tier, quantity int64) (Tier, error) {
	if len(tiers) == 0 {
		return Tier{}, ErrNoTiers
	}
	for _, t := range tiers {
		if t.UpTo == nil || quantity <= *t.UpTo {
			return t, nil
		}
	}
	// Quantity exceeds every bounded tier; the last tier absorbs it.
	return tiers[len(tiers)-1], nil
}

// ValidateTiers enforces the invariants assumed by ResolveTier: bounds
// strictly ascending (no overlap between implied ranges), only the final
// tier open-ended, and non-negative amounts. It is meant to run at
// input-edit time, not during calculation.
func ValidateTiers(tiers []Tier) error {
	if len(tiers) == 0 {
		return ErrNoTiers
	}
	from := int64(1)
	for i, t := range tiers {
		if t.UnitAmount.IsNegative() || t.FlatAmount.IsNegative() {
			return fmt.Errorf("pricing: tier %d has a negative amount", i+1)
		}
		if t.UpTo == nil {
			if i != len(tiers)-1 {
				return fmt.Errorf("pricing: tier %d is open-ended but not last", i+1)
			}
			continue
		}
		if *t.UpTo < from {
			return fmt.Errorf("pricing: tier %d upper bound %d is below its lower bound %d", i+1, *t.UpTo, from)
		}
		from = *t.UpTo + 1
	}
	return nil
}
