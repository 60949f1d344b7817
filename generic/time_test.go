package generic_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/warp/depreciation-engine/generic"
)

// =============================================================================
// CALENDAR ARITHMETIC
// =============================================================================

func TestAddMonths_ClampsToMonthEnd(t *testing.T) {
	tests := []struct {
		name   string
		start  generic.TimePoint
		months int
		want   string
	}{
		{"plain", generic.NewTimePoint(2024, time.January, 15), 1, "2024-02-15"},
		{"jan31 to feb leap", generic.NewTimePoint(2024, time.January, 31), 1, "2024-02-29"},
		{"jan31 to feb", generic.NewTimePoint(2025, time.January, 31), 1, "2025-02-28"},
		{"jan31 to mar keeps 31", generic.NewTimePoint(2025, time.January, 31), 2, "2025-03-31"},
		{"aug31 to sep", generic.NewTimePoint(2025, time.August, 31), 1, "2025-09-30"},
		{"year rollover", generic.NewTimePoint(2024, time.November, 30), 3, "2025-02-28"},
		{"negative", generic.NewTimePoint(2025, time.March, 31), -1, "2025-02-28"},
		{"negative across year", generic.NewTimePoint(2025, time.January, 15), -13, "2023-12-15"},
		{"zero", generic.NewTimePoint(2025, time.May, 5), 0, "2025-05-05"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.start.AddMonths(tt.months).String())
		})
	}
}

func TestAddYears_LeapDay(t *testing.T) {
	feb29 := generic.NewTimePoint(2024, time.February, 29)
	assert.Equal(t, "2025-02-28", feb29.AddYears(1).String())
	assert.Equal(t, "2028-02-29", feb29.AddYears(4).String())
}

func TestParseDate(t *testing.T) {
	tp, err := generic.ParseDate("2024-01-15")
	require.NoError(t, err)
	assert.Equal(t, 2024, tp.Year())
	assert.Equal(t, time.January, tp.Month())
	assert.Equal(t, 15, tp.Day())

	_, err = generic.ParseDate("15/01/2024")
	assert.Error(t, err)
	_, err = generic.ParseDate("")
	assert.Error(t, err)
}

func TestTimePoint_Comparisons(t *testing.T) {
	a := generic.NewTimePoint(2024, time.June, 15)
	b := generic.NewTimePoint(2024, time.June, 20)

	assert.True(t, a.Before(b))
	assert.True(t, a.BeforeOrEqual(a))
	assert.True(t, b.After(a))
	assert.True(t, b.AfterOrEqual(b))
	assert.False(t, a.After(b))
}

func TestDaysInMonth(t *testing.T) {
	assert.Equal(t, 29, generic.DaysInMonth(2024, time.February))
	assert.Equal(t, 28, generic.DaysInMonth(2100, time.February))
	assert.Equal(t, 31, generic.DaysInMonth(2025, time.December))
	assert.Equal(t, 30, generic.DaysInMonth(2025, time.April))
}
