package generic

import (
	"time"
)

// =============================================================================
// TIME POINT - Calendar date (day granularity, UTC)
// =============================================================================

// DateLayout is the ISO date format used on every external surface.
const DateLayout = "2006-01-02"

// TimePoint is a calendar date. The time-of-day part is always midnight UTC.
type TimePoint struct {
	Time time.Time
}

// Constructors
func NewTimePoint(year int, month time.Month, day int) TimePoint {
	return TimePoint{Time: time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

// FromTime drops the clock and location of t, keeping its calendar date.
func FromTime(t time.Time) TimePoint {
	return NewTimePoint(t.Year(), t.Month(), t.Day())
}

func Today() TimePoint {
	return FromTime(time.Now())
}

// ParseDate parses a YYYY-MM-DD date.
func ParseDate(s string) (TimePoint, error) {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return TimePoint{}, err
	}
	return FromTime(t), nil
}

// Comparison
func (tp TimePoint) Before(other TimePoint) bool        { return tp.Time.Before(other.Time) }
func (tp TimePoint) Equal(other TimePoint) bool         { return tp.Time.Equal(other.Time) }
func (tp TimePoint) After(other TimePoint) bool         { return tp.Time.After(other.Time) }
func (tp TimePoint) BeforeOrEqual(other TimePoint) bool { return !tp.After(other) }
func (tp TimePoint) AfterOrEqual(other TimePoint) bool  { return !tp.Before(other) }

// Arithmetic
//
// AddMonths and AddYears keep the day of month and clamp it to the last
// valid day of the target month: Jan 31 + 1 month = Feb 28 (29 in leap
// years), Feb 29 + 1 year = Feb 28. time.AddDate would normalise those to
// early March instead.
func (tp TimePoint) AddDays(n int) TimePoint { return TimePoint{Time: tp.Time.AddDate(0, 0, n)} }
func (tp TimePoint) AddMonths(n int) TimePoint {
	total := int(tp.Month()) - 1 + n
	year := tp.Year() + floorDiv(total, 12)
	month := time.Month(total-floorDiv(total, 12)*12 + 1)
	day := tp.Day()
	if last := DaysInMonth(year, month); day > last {
		day = last
	}
	return NewTimePoint(year, month, day)
}
func (tp TimePoint) AddYears(n int) TimePoint { return tp.AddMonths(12 * n) }

// Properties
func (tp TimePoint) Year() int         { return tp.Time.Year() }
func (tp TimePoint) Month() time.Month { return tp.Time.Month() }
func (tp TimePoint) Day() int          { return tp.Time.Day() }
func (tp TimePoint) IsZero() bool      { return tp.Time.IsZero() }

func (tp TimePoint) String() string { return tp.Time.Format(DateLayout) }

// =============================================================================
// TIME UTILITIES
// =============================================================================

func StartOfYear(year int) TimePoint                    { return NewTimePoint(year, time.January, 1) }
func StartOfMonth(year int, month time.Month) TimePoint { return NewTimePoint(year, month, 1) }

// DaysInMonth returns 28..31.
func DaysInMonth(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

func floorDiv(a, b int) int {
	q := a / b
	if a%b != 0 && (a < 0) != (b < 0) {
		q--
	}
	return q
}
