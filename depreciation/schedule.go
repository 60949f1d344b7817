package depreciation

import (
	"github.com/warp/depreciation-engine/generic"
)

// =============================================================================
// SCHEDULE BUILDER
// =============================================================================

// BuildSchedule computes the straight-line schedule of one asset.
//
// The allocation always covers the full useful life, so the rounding plug
// sits on the last period of the life even when the provision date cuts
// the schedule earlier. Truncation keeps the prefix of periods whose start
// date is on or before ProvisionAsOf.
func BuildSchedule(asset AssetInput) Schedule {
	cost := asset.Cost.Max(generic.ZeroMoney)
	salvage := asset.Salvage.Clamp(generic.ZeroMoney, cost)
	base := cost.Sub(salvage).Max(generic.ZeroMoney).Round2()

	mode := asset.Mode
	if mode == "" {
		mode = generic.ModeYearly
	}

	sched := Schedule{
		Entries:           []PeriodEntry{},
		TotalDepreciation: generic.ZeroMoney,
		FullLifePeriods:   mode.PeriodCount(asset.UsefulLifeYears),
		Cost:              cost,
		Salvage:           salvage,
		DepreciableBase:   base,
		UsefulLifeYears:   asset.UsefulLifeYears,
		Mode:              mode,
		Status:            StatusOK,
	}
	if asset.Salvage.GreaterThan(cost) {
		sched.Warnings = append(sched.Warnings, WarnSalvageExceedsCost)
	}

	starts := generic.GeneratePeriods(asset.InServiceDate, asset.UsefulLifeYears, mode)
	if len(starts) == 0 {
		if asset.UsefulLifeYears > generic.MaxUsefulLifeYears {
			sched.Warnings = append(sched.Warnings, WarnLifeOutOfRange)
		}
		sched.Status = StatusNoPeriods
		sched.FinalPeriodLabel = LabelNoPeriods
		return sched
	}

	asOf := asset.ProvisionAsOf
	if asOf != nil && asset.InServiceDate.After(*asOf) {
		sched.Status = StatusStartsAfterProvision
		sched.FinalPeriodLabel = LabelStartsAfterProvision
		sched.Warnings = append(sched.Warnings, WarnStartsAfterProvision)
		return sched
	}

	amounts := Allocate(base, len(starts))
	if amounts[len(amounts)-1].IsNegative() {
		sched.Warnings = append(sched.Warnings, WarnRoundingOvershoot)
	}
	accumulated := generic.ZeroMoney
	for i, start := range starts {
		// Periods are chronological: the first one past the cutoff ends it.
		if asOf != nil && start.After(*asOf) {
			break
		}
		accumulated = accumulated.Add(amounts[i])
		sched.Entries = append(sched.Entries, PeriodEntry{
			Label:       mode.Label(start),
			Start:       start,
			Bucket:      mode.Bucket(start),
			Expense:     amounts[i],
			Accumulated: accumulated,
			BookValue:   cost.Sub(accumulated),
		})
	}

	sched.TotalDepreciation = accumulated
	sched.FinalPeriodLabel = sched.Entries[len(sched.Entries)-1].Label
	return sched
}

// BuildSchedules builds every asset in order.
func BuildSchedules(assets []AssetInput) []NamedSchedule {
	out := make([]NamedSchedule, len(assets))
	for i, a := range assets {
		out[i] = NamedSchedule{Name: a.Name, Schedule: BuildSchedule(a)}
	}
	return out
}
