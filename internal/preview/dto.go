package preview

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/noah-isme/billing-preview/internal/catalog"
	"github.com/noah-isme/billing-preview/internal/coupon"
	"github.com/noah-isme/billing-preview/internal/currency"
	"github.com/noah-isme/billing-preview/internal/pricing"
	"github.com/noah-isme/billing-preview/internal/schedule"
)

// Request is the wire shape of a preview computation. Enumerations arrive
// as strings and amounts as decimal strings; conversion into the internal
// types happens in ToInput after validation.
type Request struct {
	PlanCharges      []ChargeDTO               `json:"plan_charges" validate:"required,min=1,dive"`
	Phases           []PhaseDTO                `json:"phases" validate:"required,min=1,dive"`
	Coupons          []CouponDTO               `json:"coupons" validate:"omitempty,dive"`
	LineItemCoupons  map[string]CouponDTO      `json:"line_item_coupons" validate:"omitempty,dive"`
	PriceOverrides   map[string]OverrideDTO    `json:"price_overrides"`
	TaxRateOverrides []TaxRateOverrideDTO      `json:"tax_rate_overrides" validate:"omitempty,dive"`
	Addons           []AddonRequestDTO         `json:"addons" validate:"omitempty,dive"`
}

// ChargeDTO mirrors the backend's price payload.
type ChargeDTO struct {
	ID                string                `json:"id" validate:"required"`
	Type              string                `json:"type" validate:"required,oneof=FIXED USAGE"`
	Currency          string                `json:"currency" validate:"required"`
	Amount            *string               `json:"amount"`
	BillingModel      string                `json:"billing_model" validate:"required,oneof=FLAT_FEE PACKAGE TIERED"`
	TransformQuantity *TransformQuantityDTO `json:"transform_quantity"`
	Tiers             []TierDTO             `json:"tiers" validate:"omitempty,dive"`
	PriceUnitType     string                `json:"price_unit_type" validate:"omitempty,oneof=FIAT CUSTOM"`
	PriceUnitConfig   *PriceUnitConfigDTO   `json:"price_unit_config"`
	InvoiceCadence    string                `json:"invoice_cadence" validate:"omitempty,oneof=ADVANCE ARREAR"`
	BillingPeriod     string                `json:"billing_period" validate:"required"`
}

// TransformQuantityDTO carries the package block size.
type TransformQuantityDTO struct {
	DivideBy int64 `json:"divide_by" validate:"gt=0"`
}

// TierDTO is one volume tier; up_to null marks the open-ended final tier.
type TierDTO struct {
	UpTo       *int64 `json:"up_to"`
	UnitAmount string `json:"unit_amount"`
	FlatAmount string `json:"flat_amount"`
}

// PriceUnitConfigDTO carries custom price-unit amounts and tiers.
type PriceUnitConfigDTO struct {
	Amount         *string   `json:"amount"`
	PriceUnitTiers []TierDTO `json:"price_unit_tiers" validate:"omitempty,dive"`
}

// CouponDTO mirrors the backend's coupon payload.
type CouponDTO struct {
	Name          string  `json:"name"`
	Type          string  `json:"type" validate:"required,oneof=fixed percentage"`
	AmountOff     *string `json:"amount_off"`
	PercentageOff *string `json:"percentage_off"`
}

// OverrideDTO is a partial charge replacement keyed by charge id. An
// override with no fields set resets the charge to its original price.
type OverrideDTO struct {
	Amount            *string               `json:"amount"`
	BillingModel      *string               `json:"billing_model"`
	Quantity          *int64                `json:"quantity"`
	Tiers             []TierDTO             `json:"tiers"`
	TransformQuantity *TransformQuantityDTO `json:"transform_quantity"`
}

// PhaseDTO is one subscription phase.
type PhaseDTO struct {
	StartDate    time.Time  `json:"start_date" validate:"required"`
	EndDate      *time.Time `json:"end_date"`
	BillingCycle string     `json:"billing_cycle" validate:"omitempty,oneof=CALENDAR ANNIVERSARY"`
}

// TaxRateOverrideDTO enables automatic tax for a currency.
type TaxRateOverrideDTO struct {
	Currency  string `json:"currency" validate:"required"`
	AutoApply bool   `json:"auto_apply"`
}

// AddonRequestDTO attaches an addon to the preview.
type AddonRequestDTO struct {
	AddonID  string `json:"addon_id" validate:"required"`
	Quantity int64  `json:"quantity" validate:"omitempty,gt=0"`
}

// Response is the rendered invoice preview.
type Response struct {
	Currency             string          `json:"currency"`
	PlanSubtotal         string          `json:"plan_subtotal"`
	PlanOriginalTotal    string          `json:"plan_original_total"`
	PlanLines            []PlanLineDTO   `json:"plan_lines,omitempty"`
	AddonSubtotal        string          `json:"addon_subtotal"`
	AddonLines           []AddonLineDTO  `json:"addon_lines,omitempty"`
	LineItemDiscount     string          `json:"line_item_discount"`
	SubscriptionDiscount string          `json:"subscription_discount"`
	Tax                  string          `json:"tax"`
	NetPayable           string          `json:"net_payable"`
	NetPayableDisplay    string          `json:"net_payable_display"`
	StartDate            *time.Time      `json:"start_date,omitempty"`
	FirstInvoiceAt       *time.Time      `json:"first_invoice_at,omitempty"`
	BillingDescription   string          `json:"billing_description,omitempty"`
	CouponsApplied       CouponsApplied  `json:"coupons_applied"`
}

// PlanLineDTO is one plan charge's rendered price line.
type PlanLineDTO struct {
	ChargeID   string `json:"charge_id"`
	Amount     string `json:"amount"`
	PriceLabel string `json:"price_label"`
}

// AddonLineDTO is one addon's rendered contribution.
type AddonLineDTO struct {
	Name    string `json:"name"`
	Amount  string `json:"amount"`
	Display string `json:"display"`
}

// CouponsApplied summarises how many coupons took part in the preview.
type CouponsApplied struct {
	Total        int `json:"total"`
	LineItem     int `json:"line_item"`
	Subscription int `json:"subscription"`
}

// ToInput converts the wire request into calculation inputs. Malformed
// amounts resolve to zero rather than failing: the calculation layer is
// total over its domain.
func (r Request) ToInput(catalogAddons []catalog.Addon) Input {
	in := Input{
		Catalog:   catalogAddons,
		Overrides: make(pricing.Overrides, len(r.PriceOverrides)),
	}
	for _, dto := range r.PlanCharges {
		in.PlanCharges = append(in.PlanCharges, dto.toCharge())
	}
	for _, dto := range r.Phases {
		in.Phases = append(in.Phases, schedule.Phase{
			StartDate:    dto.StartDate,
			EndDate:      dto.EndDate,
			BillingCycle: phaseCycle(dto.BillingCycle),
		})
	}
	for _, dto := range r.Coupons {
		in.Coupons = append(in.Coupons, dto.toCoupon())
	}
	if len(r.LineItemCoupons) > 0 {
		in.LineItemCoupons = make(map[string]coupon.Coupon, len(r.LineItemCoupons))
		for id, dto := range r.LineItemCoupons {
			in.LineItemCoupons[id] = dto.toCoupon()
		}
	}
	for id, dto := range r.PriceOverrides {
		in.Overrides.Set(id, dto.toOverride())
	}
	for _, dto := range r.TaxRateOverrides {
		in.TaxOverrides = append(in.TaxOverrides, TaxRateOverride(dto))
	}
	for _, dto := range r.Addons {
		in.Addons = append(in.Addons, AddonRequest(dto))
	}
	return in
}

// ValidateTiers rejects malformed tier lists on charges and overrides.
// This runs at the input edge; the calculators assume validity.
func (r Request) ValidateTiers() error {
	for _, c := range r.PlanCharges {
		if c.BillingModel == "TIERED" && len(c.Tiers) > 0 {
			if err := pricing.ValidateTiers(toTiers(c.Tiers)); err != nil {
				return err
			}
		}
	}
	for _, o := range r.PriceOverrides {
		if len(o.Tiers) > 0 {
			if err := pricing.ValidateTiers(toTiers(o.Tiers)); err != nil {
				return err
			}
		}
	}
	return nil
}

func (d ChargeDTO) toCharge() pricing.Charge {
	c := pricing.Charge{
		ID:             d.ID,
		Type:           pricing.PriceType(strings.ToUpper(d.Type)),
		Currency:       d.Currency,
		Amount:         parseOptionalAmount(d.Amount),
		Scheme:         toScheme(d.BillingModel, d.TransformQuantity, d.Tiers),
		PriceUnitType:  pricing.PriceUnitType(strings.ToUpper(d.PriceUnitType)),
		InvoiceCadence: pricing.InvoiceCadence(strings.ToUpper(d.InvoiceCadence)),
		BillingPeriod:  d.BillingPeriod,
	}
	if c.PriceUnitType == "" {
		c.PriceUnitType = pricing.PriceUnitFiat
	}
	if d.PriceUnitConfig != nil {
		c.PriceUnitConfig = &pricing.PriceUnitConfig{
			Amount: parseOptionalAmount(d.PriceUnitConfig.Amount),
			Tiers:  toTiers(d.PriceUnitConfig.PriceUnitTiers),
		}
	}
	return c
}

func (d CouponDTO) toCoupon() coupon.Coupon {
	return coupon.Coupon{
		Name:          d.Name,
		Type:          coupon.Type(strings.ToLower(d.Type)),
		AmountOff:     parseAmount(d.AmountOff),
		PercentageOff: parseAmount(d.PercentageOff),
	}
}

func (d OverrideDTO) toOverride() pricing.Override {
	o := pricing.Override{
		Amount:   parseOptionalAmount(d.Amount),
		Quantity: d.Quantity,
	}
	if d.BillingModel != nil {
		o.Scheme = toScheme(*d.BillingModel, d.TransformQuantity, d.Tiers)
	}
	return o
}

func toScheme(model string, tq *TransformQuantityDTO, tiers []TierDTO) pricing.Scheme {
	switch strings.ToUpper(model) {
	case "PACKAGE":
		p := pricing.Package{DivideBy: 1}
		if tq != nil && tq.DivideBy > 0 {
			p.DivideBy = tq.DivideBy
		}
		return p
	case "TIERED":
		return pricing.Tiered{Tiers: toTiers(tiers)}
	default:
		return pricing.FlatFee{}
	}
}

func toTiers(dtos []TierDTO) []pricing.Tier {
	if len(dtos) == 0 {
		return nil
	}
	tiers := make([]pricing.Tier, 0, len(dtos))
	for _, t := range dtos {
		tiers = append(tiers, pricing.Tier{
			UpTo:       t.UpTo,
			UnitAmount: parseAmountString(t.UnitAmount),
			FlatAmount: parseAmountString(t.FlatAmount),
		})
	}
	return tiers
}

func phaseCycle(s string) schedule.BillingCycle {
	if strings.EqualFold(s, string(schedule.CycleCalendar)) {
		return schedule.CycleCalendar
	}
	return schedule.CycleAnniversary
}

func parseOptionalAmount(s *string) *decimal.Decimal {
	if s == nil || strings.TrimSpace(*s) == "" {
		return nil
	}
	d, err := decimal.NewFromString(strings.TrimSpace(*s))
	if err != nil {
		d = decimal.Zero
	}
	return &d
}

func parseAmount(s *string) decimal.Decimal {
	if s == nil {
		return decimal.Zero
	}
	return parseAmountString(*s)
}

func parseAmountString(s string) decimal.Decimal {
	d, err := decimal.NewFromString(strings.TrimSpace(s))
	if err != nil {
		return decimal.Zero
	}
	return d
}

// ToResponse renders a breakdown with display strings for the console.
func ToResponse(b Breakdown, coupons CouponsApplied) Response {
	resp := Response{
		Currency:             b.Currency,
		PlanSubtotal:         b.PlanSubtotal.String(),
		PlanOriginalTotal:    b.PlanOriginalTotal.String(),
		AddonSubtotal:        b.AddonSubtotal.String(),
		LineItemDiscount:     b.LineItemDiscount.String(),
		SubscriptionDiscount: b.SubscriptionDiscount.String(),
		Tax:                  b.Tax.String(),
		NetPayable:           b.NetPayable.String(),
		NetPayableDisplay:    currency.Format(b.NetPayable, b.Currency),
		BillingDescription:   b.BillingDescription,
		CouponsApplied:       coupons,
	}
	for _, line := range b.PlanLines {
		resp.PlanLines = append(resp.PlanLines, PlanLineDTO{
			ChargeID:   line.ChargeID,
			Amount:     line.Amount.String(),
			PriceLabel: line.PriceLabel,
		})
	}
	for _, line := range b.AddonLines {
		resp.AddonLines = append(resp.AddonLines, AddonLineDTO{
			Name:    line.Name,
			Amount:  line.Amount.String(),
			Display: currency.Format(line.Amount, b.Currency),
		})
	}
	if !b.StartDate.IsZero() {
		start := b.StartDate
		resp.StartDate = &start
	}
	if !b.FirstInvoiceAt.IsZero() {
		anchor := b.FirstInvoiceAt
		resp.FirstInvoiceAt = &anchor
	}
	return resp
}
