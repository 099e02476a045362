package schedule

import "time"

// BillingCycle controls how the first invoice date is anchored.
type BillingCycle string

const (
	// CycleCalendar bills on calendar boundaries (1st of the month, Monday, Jan 1).
	CycleCalendar BillingCycle = "CALENDAR"
	// CycleAnniversary bills one full period after the start date.
	CycleAnniversary BillingCycle = "ANNIVERSARY"
)

// Phase is one segment of a subscription's timeline. The first phase
// determines the preview's start date and first-invoice anchor.
type Phase struct {
	StartDate    time.Time
	EndDate      *time.Time
	BillingCycle BillingCycle
}

// FirstInvoiceDate computes the first invoice anchor for a subscription
// starting at the given date.
func FirstInvoiceDate(start time.Time, period BillingPeriod, cycle BillingCycle) time.Time {
	if cycle == CycleCalendar {
		return CalendarAnchor(start, period)
	}
	return AnniversaryAnchor(start, period)
}

// AnniversaryAnchor adds exactly one billing period to the start date.
func AnniversaryAnchor(start time.Time, period BillingPeriod) time.Time {
	switch period {
	case PeriodDaily:
		return start.AddDate(0, 0, 1)
	case PeriodWeekly:
		return start.AddDate(0, 0, 7)
	case PeriodMonthly:
		return start.AddDate(0, 1, 0)
	case PeriodQuarterly:
		return start.AddDate(0, 3, 0)
	case PeriodHalfYearly:
		return start.AddDate(0, 6, 0)
	case PeriodAnnual:
		return start.AddDate(1, 0, 0)
	default:
		return start.AddDate(0, 1, 0)
	}
}

// CalendarAnchor snaps to the start of the next calendar boundary for the
// period: next day, next Monday, 1st of next month, next quarter start,
// next half-year start, or January 1st.
func CalendarAnchor(start time.Time, period BillingPeriod) time.Time {
	y, m, d := start.Date()
	loc := start.Location()
	midnight := time.Date(y, m, d, 0, 0, 0, 0, loc)

	switch period {
	case PeriodDaily:
		return midnight.AddDate(0, 0, 1)
	case PeriodWeekly:
		days := int(time.Monday - midnight.Weekday())
		if days <= 0 {
			days += 7
		}
		return midnight.AddDate(0, 0, days)
	case PeriodMonthly:
		return time.Date(y, m, 1, 0, 0, 0, 0, loc).AddDate(0, 1, 0)
	case PeriodQuarterly:
		quarterStart := time.Month((int(m)-1)/3*3 + 1)
		return time.Date(y, quarterStart, 1, 0, 0, 0, 0, loc).AddDate(0, 3, 0)
	case PeriodHalfYearly:
		halfStart := time.January
		if m >= time.July {
			halfStart = time.July
		}
		return time.Date(y, halfStart, 1, 0, 0, 0, 0, loc).AddDate(0, 6, 0)
	case PeriodAnnual:
		return time.Date(y+1, time.January, 1, 0, 0, 0, 0, loc)
	default:
		return time.Date(y, m, 1, 0, 0, 0, 0, loc).AddDate(0, 1, 0)
	}
}
