package schedule

import "strings"

// BillingPeriod is the recurring interval a subscription bills on.
type BillingPeriod string

const (
	PeriodDaily      BillingPeriod = "DAILY"
	PeriodWeekly     BillingPeriod = "WEEKLY"
	PeriodMonthly    BillingPeriod = "MONTHLY"
	PeriodQuarterly  BillingPeriod = "QUARTERLY"
	PeriodHalfYearly BillingPeriod = "HALF_YEARLY"
	PeriodAnnual     BillingPeriod = "ANNUAL"
)

// ParsePeriod normalises a wire value into a known billing period.
func ParsePeriod(s string) (BillingPeriod, bool) {
	p := BillingPeriod(strings.ToUpper(strings.TrimSpace(s)))
	switch p {
	case PeriodDaily, PeriodWeekly, PeriodMonthly, PeriodQuarterly, PeriodHalfYearly, PeriodAnnual:
		return p, true
	}
	return "", false
}

// Duration renders the period's length for invoice copy ("1 month").
func (p BillingPeriod) Duration() string {
	switch p {
	case PeriodDaily:
		return "1 day"
	case PeriodWeekly:
		return "1 week"
	case PeriodMonthly:
		return "1 month"
	case PeriodQuarterly:
		return "3 months"
	case PeriodHalfYearly:
		return "6 months"
	case PeriodAnnual:
		return "1 year"
	default:
		return strings.ToLower(string(p))
	}
}

// DisplayName renders the period as a sentence adjective ("Monthly").
func (p BillingPeriod) DisplayName() string {
	switch p {
	case PeriodDaily:
		return "Daily"
	case PeriodWeekly:
		return "Weekly"
	case PeriodMonthly:
		return "Monthly"
	case PeriodQuarterly:
		return "Quarterly"
	case PeriodHalfYearly:
		return "Half Yearly"
	case PeriodAnnual:
		return "Annually"
	default:
		return "--"
	}
}

// Unit renders the period's unit for per-price displays ("50/month").
func (p BillingPeriod) Unit() string {
	switch p {
	case PeriodDaily:
		return "day"
	case PeriodWeekly:
		return "week"
	case PeriodMonthly:
		return "month"
	case PeriodQuarterly:
		return "quarter"
	case PeriodHalfYearly:
		return "half year"
	case PeriodAnnual:
		return "year"
	default:
		return "--"
	}
}
