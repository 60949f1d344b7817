package depreciation_test

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/warp/depreciation-engine/depreciation"
	"github.com/warp/depreciation-engine/generic"
)

// =============================================================================
// TEST HELPERS
// =============================================================================

func date(y int, m time.Month, d int) generic.TimePoint {
	return generic.NewTimePoint(y, m, d)
}

func asset(cost, salvage string, life int, mode generic.Mode, inService generic.TimePoint) depreciation.AssetInput {
	return depreciation.AssetInput{
		Name:            "Asset",
		Cost:            generic.MustMoney(cost),
		Salvage:         generic.MustMoney(salvage),
		InServiceDate:   inService,
		UsefulLifeYears: life,
		Mode:            mode,
	}
}

func withAsOf(a depreciation.AssetInput, asOf generic.TimePoint) depreciation.AssetInput {
	a.ProvisionAsOf = &asOf
	return a
}

func labels(s depreciation.Schedule) []string {
	out := make([]string, len(s.Entries))
	for i, e := range s.Entries {
		out[i] = e.Label
	}
	return out
}

// =============================================================================
// WORKED EXAMPLES
// =============================================================================

func TestBuildSchedule_YearlyFiveYears(t *testing.T) {
	// GIVEN: cost 10000, salvage 1000, 5 years, yearly, no provision date
	// THEN: 5 rows of 1800.00; accumulated 9000.00; book value 1000.00

	s := depreciation.BuildSchedule(asset("10000", "1000", 5, generic.ModeYearly, date(2024, time.January, 1)))

	require.Len(t, s.Entries, 5)
	assert.Equal(t, []string{"Year 2024", "Year 2025", "Year 2026", "Year 2027", "Year 2028"}, labels(s))
	for _, e := range s.Entries {
		assert.Equal(t, "1800.00", e.Expense.String())
	}
	last := s.Entries[4]
	assert.Equal(t, "9000.00", last.Accumulated.String())
	assert.Equal(t, "1000.00", last.BookValue.String())
	assert.Equal(t, "9000.00", s.TotalDepreciation.String())
	assert.Equal(t, "Year 2028", s.FinalPeriodLabel)
	assert.Equal(t, depreciation.StatusOK, s.Status)
	assert.Empty(t, s.Warnings)
}

func TestBuildSchedule_MonthlyOneYear(t *testing.T) {
	// GIVEN: 1-year monthly schedule from 2024-01-15
	// THEN: Jan 2024..Dec 2024 at 750.00, summing to 9000.00

	s := depreciation.BuildSchedule(asset("10000", "1000", 1, generic.ModeMonthly, date(2024, time.January, 15)))

	require.Len(t, s.Entries, 12)
	assert.Equal(t, "Jan 2024", s.Entries[0].Label)
	assert.Equal(t, "Dec 2024", s.Entries[11].Label)
	for _, e := range s.Entries {
		assert.Equal(t, "750.00", e.Expense.String())
	}
	assert.Equal(t, "9000.00", s.TotalDepreciation.String())
	assert.Equal(t, "1000.00", s.NetBookValue().String())
}

func TestBuildSchedule_ProvisionCutoff(t *testing.T) {
	// GIVEN: Same monthly asset, provisioned as of 2024-06-20
	// THEN: Periods starting Jan 15..Jun 15 are kept; total 4500.00

	a := withAsOf(asset("10000", "1000", 1, generic.ModeMonthly, date(2024, time.January, 15)), date(2024, time.June, 20))
	s := depreciation.BuildSchedule(a)

	require.Len(t, s.Entries, 6)
	assert.Equal(t, "Jun 2024", s.FinalPeriodLabel)
	assert.Equal(t, "4500.00", s.TotalDepreciation.String())
	assert.Equal(t, "5500.00", s.NetBookValue().String())
	assert.Equal(t, 12, s.FullLifePeriods)
}

func TestBuildSchedule_ProvisionDateOnPeriodStartIsInclusive(t *testing.T) {
	a := withAsOf(asset("10000", "1000", 1, generic.ModeMonthly, date(2024, time.January, 15)), date(2024, time.June, 15))
	s := depreciation.BuildSchedule(a)

	assert.Len(t, s.Entries, 6)

	a = withAsOf(asset("10000", "1000", 1, generic.ModeMonthly, date(2024, time.January, 15)), date(2024, time.June, 14))
	assert.Len(t, depreciation.BuildSchedule(a).Entries, 5)
}

func TestBuildSchedule_SalvageExceedsCost(t *testing.T) {
	// GIVEN: salvage 6000 > cost 5000
	// THEN: base clamps to zero, every period is 0.00, warning raised

	s := depreciation.BuildSchedule(asset("5000", "6000", 5, generic.ModeYearly, date(2024, time.January, 1)))

	require.Len(t, s.Entries, 5)
	for _, e := range s.Entries {
		assert.Equal(t, "0.00", e.Expense.String())
		assert.Equal(t, "5000.00", e.BookValue.String())
	}
	assert.Equal(t, "0.00", s.DepreciableBase.String())
	assert.Equal(t, "0.00", s.TotalDepreciation.String())
	assert.Equal(t, "5000.00", s.Salvage.String())
	assert.True(t, s.HasWarning(depreciation.WarnSalvageExceedsCost))
	assert.Equal(t, depreciation.StatusOK, s.Status)
}

func TestBuildSchedule_StartsAfterProvision(t *testing.T) {
	// GIVEN: in service 2030-01-01, provisioned as of 2025-01-01
	// THEN: empty schedule, zero total, starts-after-provision status

	a := withAsOf(asset("250000", "25000", 20, generic.ModeYearly, date(2030, time.January, 1)), date(2025, time.January, 1))
	s := depreciation.BuildSchedule(a)

	assert.NotNil(t, s.Entries)
	assert.Empty(t, s.Entries)
	assert.Equal(t, "0.00", s.TotalDepreciation.String())
	assert.Equal(t, depreciation.StatusStartsAfterProvision, s.Status)
	assert.Equal(t, depreciation.LabelStartsAfterProvision, s.FinalPeriodLabel)
	assert.True(t, s.HasWarning(depreciation.WarnStartsAfterProvision))
	assert.Equal(t, "250000.00", s.NetBookValue().String())
}

// =============================================================================
// EDGE CASES
// =============================================================================

func TestBuildSchedule_ZeroLife(t *testing.T) {
	s := depreciation.BuildSchedule(asset("1000", "0", 0, generic.ModeMonthly, date(2024, time.January, 1)))

	assert.Empty(t, s.Entries)
	assert.Equal(t, depreciation.StatusNoPeriods, s.Status)
	assert.Equal(t, depreciation.LabelNoPeriods, s.FinalPeriodLabel)
	assert.Equal(t, "0.00", s.TotalDepreciation.String())
}

func TestBuildSchedule_NoPeriodsWinsOverStartsAfterProvision(t *testing.T) {
	a := withAsOf(asset("1000", "0", 0, generic.ModeYearly, date(2030, time.January, 1)), date(2025, time.January, 1))
	s := depreciation.BuildSchedule(a)

	assert.Equal(t, depreciation.StatusNoPeriods, s.Status)
	assert.False(t, s.HasWarning(depreciation.WarnStartsAfterProvision))
}

func TestBuildSchedule_LifeBeyondLimitYieldsNoPeriods(t *testing.T) {
	// GIVEN: Monthly lives too long to materialise, up to one whose
	//        period count would overflow int
	// THEN: No panic, no periods, and an out-of-range warning

	for _, life := range []int{generic.MaxUsefulLifeYears + 1, 100_000_000, math.MaxInt/12 + 1, math.MaxInt} {
		var s depreciation.Schedule
		require.NotPanics(t, func() {
			s = depreciation.BuildSchedule(asset("1000", "0", life, generic.ModeMonthly, date(2024, time.January, 1)))
		}, "life %d", life)

		assert.Empty(t, s.Entries)
		assert.Equal(t, depreciation.StatusNoPeriods, s.Status)
		assert.Equal(t, 0, s.FullLifePeriods)
		assert.True(t, s.HasWarning(depreciation.WarnLifeOutOfRange))
	}
}

func TestBuildSchedule_LifeAtLimit(t *testing.T) {
	s := depreciation.BuildSchedule(asset("12000", "0", generic.MaxUsefulLifeYears, generic.ModeYearly, date(2024, time.January, 1)))

	assert.Len(t, s.Entries, generic.MaxUsefulLifeYears)
	assert.Equal(t, depreciation.StatusOK, s.Status)
	assert.False(t, s.HasWarning(depreciation.WarnLifeOutOfRange))
	assert.Equal(t, "12000.00", s.TotalDepreciation.String())
}

func TestBuildSchedule_RoundingOvershootWarns(t *testing.T) {
	// GIVEN: 8.00 over 40 years monthly (480 periods)
	// WHEN: 8.00/480 = 0.0166... rounds up to 0.02
	// THEN: Accumulated passes 8.00 early, the plug is 8.00 - 479*0.02 = -1.58,
	//       the full life still sums to 8.00 and the schedule is flagged

	s := depreciation.BuildSchedule(asset("8", "0", 40, generic.ModeMonthly, date(2024, time.January, 1)))

	require.Len(t, s.Entries, 480)
	assert.Equal(t, "0.02", s.Entries[0].Expense.String())
	assert.Equal(t, "-1.58", s.Entries[479].Expense.String())
	assert.Equal(t, "8.00", s.TotalDepreciation.String())
	assert.True(t, s.Entries[400].Accumulated.GreaterThan(s.DepreciableBase))
	assert.True(t, s.HasWarning(depreciation.WarnRoundingOvershoot))
}

func TestBuildSchedule_RoundingOvershootWarnsWhenTruncated(t *testing.T) {
	// GIVEN: The same 8.00 asset cut after its first year
	// THEN: The warning describes the full life, so it is still raised

	a := withAsOf(asset("8", "0", 40, generic.ModeMonthly, date(2024, time.January, 1)), date(2024, time.December, 31))
	s := depreciation.BuildSchedule(a)

	require.Len(t, s.Entries, 12)
	assert.True(t, s.HasWarning(depreciation.WarnRoundingOvershoot))
}

func TestBuildSchedule_RoundingDownDoesNotWarn(t *testing.T) {
	// 1000 over 3 years: 333.33, 333.33, 333.34
	s := depreciation.BuildSchedule(asset("1000", "0", 3, generic.ModeYearly, date(2024, time.January, 1)))

	assert.False(t, s.HasWarning(depreciation.WarnRoundingOvershoot))
}

func TestBuildSchedule_NegativeCostClampsToZero(t *testing.T) {
	s := depreciation.BuildSchedule(asset("-100", "0", 2, generic.ModeYearly, date(2024, time.January, 1)))

	assert.Equal(t, "0.00", s.Cost.String())
	for _, e := range s.Entries {
		assert.Equal(t, "0.00", e.Expense.String())
	}
}

func TestBuildSchedule_EmptyModeIsYearly(t *testing.T) {
	s := depreciation.BuildSchedule(asset("300", "0", 3, "", date(2024, time.January, 1)))

	assert.Equal(t, generic.ModeYearly, s.Mode)
	assert.Len(t, s.Entries, 3)
}

func TestBuildSchedule_PlugStaysOnLastLifePeriodWhenTruncated(t *testing.T) {
	// GIVEN: 1000 over 3 years (333.33, 333.33, 333.34), cut after year 2
	// THEN: The truncated schedule shows the regular amount, not the plug

	a := withAsOf(asset("1000", "0", 3, generic.ModeYearly, date(2024, time.January, 1)), date(2025, time.December, 31))
	s := depreciation.BuildSchedule(a)

	require.Len(t, s.Entries, 2)
	assert.Equal(t, "333.33", s.Entries[1].Expense.String())
	assert.Equal(t, "666.66", s.TotalDepreciation.String())
}

// =============================================================================
// PROPERTIES
// =============================================================================

func TestBuildSchedule_FullLifeSumsToBase(t *testing.T) {
	for _, tt := range []struct {
		cost, salvage string
		life          int
		mode          generic.Mode
	}{
		{"10000", "1000", 5, generic.ModeMonthly},
		{"12345.67", "345.67", 7, generic.ModeMonthly},
		{"999.99", "0", 3, generic.ModeYearly},
		{"100", "33.333", 1, generic.ModeMonthly},
	} {
		s := depreciation.BuildSchedule(asset(tt.cost, tt.salvage, tt.life, tt.mode, date(2024, time.March, 31)))
		want := generic.MustMoney(tt.cost).Sub(generic.MustMoney(tt.salvage)).Round2()
		assert.Equal(t, want.String(), s.TotalDepreciation.String(), "%+v", tt)
		assert.Equal(t, want.String(), s.Entries[len(s.Entries)-1].Accumulated.String())
	}
}

func TestBuildSchedule_BookValueNonIncreasing(t *testing.T) {
	s := depreciation.BuildSchedule(asset("12345.67", "345.67", 7, generic.ModeMonthly, date(2024, time.January, 31)))

	prev := s.Cost
	for _, e := range s.Entries {
		assert.Equal(t, s.Cost.Sub(e.Accumulated).String(), e.BookValue.String())
		assert.True(t, e.BookValue.LessThanOrEqual(prev), "book value rose at %s", e.Label)
		prev = e.BookValue
	}
}

func TestBuildSchedule_TruncationIsMonotonicPrefix(t *testing.T) {
	// GIVEN: Two provision dates d1 < d2
	// THEN: The d1 schedule is a prefix of the d2 schedule

	base := asset("10000", "1000", 2, generic.ModeMonthly, date(2024, time.January, 15))
	full := depreciation.BuildSchedule(base)

	d1 := date(2024, time.May, 1)
	d2 := date(2025, time.March, 1)
	short := depreciation.BuildSchedule(withAsOf(base, d1))
	long := depreciation.BuildSchedule(withAsOf(base, d2))

	require.LessOrEqual(t, len(short.Entries), len(long.Entries))
	assert.Equal(t, short.Entries, long.Entries[:len(short.Entries)])
	assert.Equal(t, long.Entries, full.Entries[:len(long.Entries)])
	assert.True(t, short.TotalDepreciation.LessThanOrEqual(long.TotalDepreciation))
}

func TestBuildSchedule_Idempotent(t *testing.T) {
	a := withAsOf(asset("8000", "500", 3, generic.ModeMonthly, date(2024, time.February, 29)), date(2025, time.August, 1))

	assert.Equal(t, depreciation.BuildSchedule(a), depreciation.BuildSchedule(a))
}

func TestBuildSchedule_LifeOfOneYear(t *testing.T) {
	monthly := depreciation.BuildSchedule(asset("1200", "0", 1, generic.ModeMonthly, date(2024, time.January, 1)))
	yearly := depreciation.BuildSchedule(asset("1200", "0", 1, generic.ModeYearly, date(2024, time.January, 1)))

	assert.Len(t, monthly.Entries, 12)
	assert.Len(t, yearly.Entries, 1)
	assert.Equal(t, "1200.00", yearly.Entries[0].Expense.String())
}

func TestBuildSchedules_KeepsOrderAndNames(t *testing.T) {
	a := asset("100", "0", 1, generic.ModeYearly, date(2024, time.January, 1))
	a.Name = "First"
	b := a
	b.Name = "Second"

	out := depreciation.BuildSchedules([]depreciation.AssetInput{a, b})
	require.Len(t, out, 2)
	assert.Equal(t, "First", out[0].Name)
	assert.Equal(t, "Second", out[1].Name)
}
