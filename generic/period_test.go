package generic_test

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/warp/depreciation-engine/generic"
)

// =============================================================================
// PERIOD GENERATOR
// =============================================================================

func dates(tps []generic.TimePoint) []string {
	out := make([]string, len(tps))
	for i, tp := range tps {
		out[i] = tp.String()
	}
	return out
}

func TestGeneratePeriods_Monthly(t *testing.T) {
	// GIVEN: A one-year life starting mid-month
	// WHEN: Generating monthly periods
	// THEN: 12 periods on the same day of each month

	start := generic.NewTimePoint(2024, time.January, 15)
	periods := generic.GeneratePeriods(start, 1, generic.ModeMonthly)

	require.Len(t, periods, 12)
	assert.Equal(t, "2024-01-15", periods[0].String())
	assert.Equal(t, "2024-06-15", periods[5].String())
	assert.Equal(t, "2024-12-15", periods[11].String())
}

func TestGeneratePeriods_Yearly(t *testing.T) {
	start := generic.NewTimePoint(2024, time.March, 1)
	periods := generic.GeneratePeriods(start, 5, generic.ModeYearly)

	assert.Equal(t, []string{"2024-03-01", "2025-03-01", "2026-03-01", "2027-03-01", "2028-03-01"}, dates(periods))
}

func TestGeneratePeriods_MonthEndOffsetsFromStart(t *testing.T) {
	// GIVEN: A Jan 31 start
	// THEN: Feb is clamped, but Mar is back on the 31st (offsets are not chained)

	start := generic.NewTimePoint(2025, time.January, 31)
	periods := generic.GeneratePeriods(start, 1, generic.ModeMonthly)

	assert.Equal(t, []string{"2025-01-31", "2025-02-28", "2025-03-31", "2025-04-30"}, dates(periods[:4]))
}

func TestGeneratePeriods_NonPositiveLife(t *testing.T) {
	start := generic.NewTimePoint(2025, time.January, 1)

	for _, life := range []int{0, -3} {
		periods := generic.GeneratePeriods(start, life, generic.ModeMonthly)
		assert.NotNil(t, periods)
		assert.Empty(t, periods)
	}
}

func TestMode_Labels(t *testing.T) {
	start := generic.NewTimePoint(2025, time.September, 15)

	assert.Equal(t, "Sep 2025", generic.ModeMonthly.Label(start))
	assert.Equal(t, "Year 2025", generic.ModeYearly.Label(start))
	assert.Equal(t, "2025-09-01", generic.ModeMonthly.Bucket(start).String())
	assert.Equal(t, "2025-01-01", generic.ModeYearly.Bucket(start).String())
}

func TestParseMode(t *testing.T) {
	tests := []struct {
		in   string
		want generic.Mode
	}{
		{"", generic.ModeYearly},
		{"yearly", generic.ModeYearly},
		{"Monthly", generic.ModeMonthly},
		{"Straight-Line (Monthly)", generic.ModeMonthly},
		{"Straight-Line (Yearly)", generic.ModeYearly},
	}
	for _, tt := range tests {
		got, err := generic.ParseMode(tt.in)
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got, tt.in)
	}

	_, err := generic.ParseMode("declining-balance")
	assert.Error(t, err)
}

func TestMode_PeriodCount(t *testing.T) {
	assert.Equal(t, 12, generic.ModeMonthly.PeriodCount(1))
	assert.Equal(t, 1, generic.ModeYearly.PeriodCount(1))
	assert.Equal(t, 60, generic.ModeMonthly.PeriodCount(5))
	assert.Equal(t, 0, generic.ModeYearly.PeriodCount(0))
	assert.Equal(t, 12000, generic.ModeMonthly.PeriodCount(generic.MaxUsefulLifeYears))
	assert.Equal(t, 0, generic.ModeMonthly.PeriodCount(generic.MaxUsefulLifeYears+1))
	assert.Equal(t, 0, generic.ModeMonthly.PeriodCount(math.MaxInt/12+1), "no overflow into a negative count")
}

func TestGeneratePeriods_LifeBeyondLimit(t *testing.T) {
	var periods []generic.TimePoint
	require.NotPanics(t, func() {
		periods = generic.GeneratePeriods(generic.NewTimePoint(2024, time.January, 1), math.MaxInt, generic.ModeMonthly)
	})
	assert.Empty(t, periods)
}
