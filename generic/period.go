package generic

import (
	"fmt"
	"strings"
)

// =============================================================================
// MODE - Period granularity
// =============================================================================

// Mode selects how a useful life is cut into periods.
type Mode string

const (
	ModeMonthly Mode = "monthly"
	ModeYearly  Mode = "yearly"
)

// ParseMode accepts "monthly"/"yearly" in any case, plus the "Straight-Line
// (Monthly)" style labels used by form front-ends.
func ParseMode(s string) (Mode, error) {
	v := strings.ToLower(strings.TrimSpace(s))
	switch {
	case v == "" || v == string(ModeYearly) || strings.Contains(v, "(yearly)"):
		return ModeYearly, nil
	case v == string(ModeMonthly) || strings.Contains(v, "(monthly)"):
		return ModeMonthly, nil
	}
	return "", fmt.Errorf("unknown mode %q (want monthly or yearly)", s)
}

// PeriodsPerYear is 12 for monthly schedules and 1 for yearly ones.
func (m Mode) PeriodsPerYear() int {
	if m == ModeMonthly {
		return 12
	}
	return 1
}

// MaxUsefulLifeYears is the longest useful life a schedule is built for.
// Longer lives yield no periods.
const MaxUsefulLifeYears = 1000

// PeriodCount returns how many periods a useful life of lifeYears spans.
// Lives outside [1, MaxUsefulLifeYears] span none.
func (m Mode) PeriodCount(lifeYears int) int {
	if lifeYears <= 0 || lifeYears > MaxUsefulLifeYears {
		return 0
	}
	return lifeYears * m.PeriodsPerYear()
}

// Label formats a period start as "Jan 2025" (monthly) or "Year 2025" (yearly).
func (m Mode) Label(start TimePoint) string {
	if m == ModeMonthly {
		return start.Time.Format("Jan 2006")
	}
	return fmt.Sprintf("Year %d", start.Year())
}

// Bucket returns the first day of the calendar month or year a period start
// falls in. Labels that share a bucket share a table column.
func (m Mode) Bucket(start TimePoint) TimePoint {
	if m == ModeMonthly {
		return StartOfMonth(start.Year(), start.Month())
	}
	return StartOfYear(start.Year())
}

// =============================================================================
// PERIOD GENERATOR
// =============================================================================

// GeneratePeriods returns the start date of every period in a useful life:
// start + i months (monthly) or start + i years (yearly). Each offset is
// taken from start, not from the previous period, so a Jan 31 start yields
// Feb 28 and then Mar 31. A life outside [1, MaxUsefulLifeYears] yields an
// empty slice.
func GeneratePeriods(start TimePoint, lifeYears int, mode Mode) []TimePoint {
	n := mode.PeriodCount(lifeYears)
	if n == 0 {
		return []TimePoint{}
	}
	step := 12 / mode.PeriodsPerYear()
	periods := make([]TimePoint, n)
	for i := 0; i < n; i++ {
		periods[i] = start.AddMonths(i * step)
	}
	return periods
}
