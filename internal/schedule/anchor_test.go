package schedule

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestAnniversaryAnchor(t *testing.T) {
	start := time.Date(2026, time.March, 15, 9, 30, 0, 0, time.UTC)

	require.Equal(t, start.AddDate(0, 0, 1), AnniversaryAnchor(start, PeriodDaily))
	require.Equal(t, start.AddDate(0, 0, 7), AnniversaryAnchor(start, PeriodWeekly))
	require.Equal(t, start.AddDate(0, 1, 0), AnniversaryAnchor(start, PeriodMonthly))
	require.Equal(t, start.AddDate(0, 3, 0), AnniversaryAnchor(start, PeriodQuarterly))
	require.Equal(t, start.AddDate(0, 6, 0), AnniversaryAnchor(start, PeriodHalfYearly))
	require.Equal(t, start.AddDate(1, 0, 0), AnniversaryAnchor(start, PeriodAnnual))
}

func TestCalendarAnchor(t *testing.T) {
	// Sunday, March 15 2026.
	start := time.Date(2026, time.March, 15, 13, 45, 0, 0, time.UTC)

	require.Equal(t, date(2026, time.March, 16), CalendarAnchor(start, PeriodDaily))
	// Next Monday.
	require.Equal(t, date(2026, time.March, 16), CalendarAnchor(start, PeriodWeekly))
	require.Equal(t, date(2026, time.April, 1), CalendarAnchor(start, PeriodMonthly))
	// Q1 start is January 1st; the next quarter begins April 1st.
	require.Equal(t, date(2026, time.April, 1), CalendarAnchor(start, PeriodQuarterly))
	require.Equal(t, date(2026, time.July, 1), CalendarAnchor(start, PeriodHalfYearly))
	require.Equal(t, date(2027, time.January, 1), CalendarAnchor(start, PeriodAnnual))
}

func TestCalendarAnchorWeeklyOnMonday(t *testing.T) {
	// Starting on a Monday still snaps to the following Monday.
	monday := time.Date(2026, time.March, 16, 0, 0, 0, 0, time.UTC)
	require.Equal(t, date(2026, time.March, 23), CalendarAnchor(monday, PeriodWeekly))
}

func TestCalendarAnchorSecondHalf(t *testing.T) {
	start := time.Date(2026, time.October, 10, 0, 0, 0, 0, time.UTC)
	require.Equal(t, date(2027, time.January, 1), CalendarAnchor(start, PeriodHalfYearly))
}

func TestFirstInvoiceDate(t *testing.T) {
	start := time.Date(2026, time.March, 15, 0, 0, 0, 0, time.UTC)
	require.Equal(t, date(2026, time.April, 1), FirstInvoiceDate(start, PeriodMonthly, CycleCalendar))
	require.Equal(t, date(2026, time.April, 15), FirstInvoiceDate(start, PeriodMonthly, CycleAnniversary))
}

func TestParsePeriod(t *testing.T) {
	p, ok := ParsePeriod(" monthly ")
	require.True(t, ok)
	require.Equal(t, PeriodMonthly, p)

	_, ok = ParsePeriod("fortnightly")
	require.False(t, ok)
}

func TestPeriodDisplay(t *testing.T) {
	require.Equal(t, "1 month", PeriodMonthly.Duration())
	require.Equal(t, "6 months", PeriodHalfYearly.Duration())
	require.Equal(t, "Half Yearly", PeriodHalfYearly.DisplayName())
	require.Equal(t, "Annually", PeriodAnnual.DisplayName())
	require.Equal(t, "quarter", PeriodQuarterly.Unit())
}
