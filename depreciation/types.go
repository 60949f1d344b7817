/*
Package depreciation computes straight-line depreciation schedules.

PURPOSE:
  Given an asset's cost, salvage value, useful life and in-service date,
  produce the periods (months or years) of its life with the expense
  allocated to each, the running accumulated depreciation and the book
  value, cut off at an optional provision date. Several schedules can be
  merged into one wide report.

KEY CONCEPTS IN THIS FILE (types.go):
  - AssetInput:  One asset as entered on the form
  - PeriodEntry: One retained period of a schedule
  - Schedule:    All retained periods of one asset plus totals and status

FLOW:
  AssetInput -> BuildSchedule -> Schedule -> Aggregate -> Report -> CSV

  BuildSchedule never fails. Salvage above cost, a useful life outside
  [1, generic.MaxUsefulLifeYears] and an in-service date after the
  provision date all produce well-defined zero or empty schedules, flagged
  through Status and Warnings.

SEE ALSO:
  - allocator.go: Straight-line split with rounding plug
  - schedule.go: BuildSchedule
  - aggregate.go: Multi-asset report
  - csv.go: CSV export
*/
package depreciation

import (
	"github.com/warp/depreciation-engine/generic"
)

// =============================================================================
// INPUT
// =============================================================================

// AssetInput is one asset to depreciate. It has no identity: two inputs
// with the same fields always yield the same schedule.
type AssetInput struct {
	Name            string
	Standard        string // accounting standard, display only
	AssetType       string // display only
	Cost            generic.Money
	Salvage         generic.Money
	InServiceDate   generic.TimePoint
	UsefulLifeYears int
	Mode            generic.Mode

	// ProvisionAsOf cuts the schedule after the last period starting on or
	// before it. Nil keeps the full life.
	ProvisionAsOf *generic.TimePoint
}

// =============================================================================
// OUTPUT
// =============================================================================

// PeriodEntry is one period of a schedule.
type PeriodEntry struct {
	Label       string
	Start       generic.TimePoint
	Bucket      generic.TimePoint // first day of the labelled month or year
	Expense     generic.Money
	Accumulated generic.Money
	BookValue   generic.Money // Cost - Accumulated
}

// Status tells why a schedule has the periods it has.
type Status string

const (
	StatusOK                   Status = "ok"
	StatusNoPeriods            Status = "no_periods"
	StatusStartsAfterProvision Status = "starts_after_provision"
)

// Final-period labels for empty schedules.
const (
	LabelNoPeriods            = "N/A"
	LabelStartsAfterProvision = "N/A (starts after provision)"
)

// Warning is informational; it never blocks computation.
type Warning string

const (
	WarnSalvageExceedsCost   Warning = "salvage_exceeds_cost"
	WarnStartsAfterProvision Warning = "starts_after_provision"
	WarnLifeOutOfRange       Warning = "useful_life_out_of_range"

	// WarnRoundingOvershoot: the rounded per-period amount runs past the
	// depreciable base before the last period, whose plug is negative.
	WarnRoundingOvershoot Warning = "rounding_overshoot"
)

// Schedule is the depreciation of one asset through the provision date.
type Schedule struct {
	Entries           []PeriodEntry
	TotalDepreciation generic.Money // sum of included Expense, not the full-life total
	FinalPeriodLabel  string
	FullLifePeriods   int

	Cost            generic.Money
	Salvage         generic.Money // after clamping to [0, Cost]
	DepreciableBase generic.Money
	UsefulLifeYears int
	Mode            generic.Mode

	Status   Status
	Warnings []Warning
}

// NetBookValue is cost minus the depreciation accrued through the
// provision date.
func (s Schedule) NetBookValue() generic.Money {
	return s.Cost.Sub(s.TotalDepreciation)
}

// HasWarning reports whether w was raised while building the schedule.
func (s Schedule) HasWarning(w Warning) bool {
	for _, got := range s.Warnings {
		if got == w {
			return true
		}
	}
	return false
}

// NamedSchedule pairs a schedule with the asset name it is reported under.
// Names are display text and need not be unique.
type NamedSchedule struct {
	Name     string
	Schedule Schedule
}
