package depreciation

import (
	"sort"

	"github.com/warp/depreciation-engine/generic"
)

// =============================================================================
// MULTI-ASSET REPORT
// =============================================================================

// Column is one period label of the wide table.
type Column struct {
	Label  string
	Bucket generic.TimePoint
}

// Row is one asset of the wide table. Cells line up with Report.Columns;
// periods the asset has no entry for are zero.
type Row struct {
	Asset string
	Cells []generic.Money
	Total generic.Money
}

// AssetSummary is the per-asset digest shown under the table.
type AssetSummary struct {
	Asset                   string
	UsefulLifeYears         int
	Mode                    generic.Mode
	AccumulatedDepreciation generic.Money
	FinalBookValue          generic.Money
	FinalPeriod             string
	Status                  Status
	Warnings                []Warning
}

// NBVRow is one line of the net-book-value view.
type NBVRow struct {
	Asset                   string
	Cost                    generic.Money
	AccumulatedDepreciation generic.Money
	NetBookValue            generic.Money
}

// Report is the combined view of several schedules.
type Report struct {
	Columns      []Column
	Rows         []Row
	ColumnTotals []generic.Money
	GrandTotal   generic.Money

	Summaries []AssetSummary
	NBV       []NBVRow
	NBVTotal  NBVRow
}

// NBVTotalLabel names the grand-total line of the NBV view.
const NBVTotalLabel = "Total"

// Aggregate merges schedules into one report. Rows keep input order. The
// columns are the union of every period label, sorted by the calendar
// month or year they denote; two labels on the same bucket sort by text.
func Aggregate(schedules []NamedSchedule) Report {
	columns := unionColumns(schedules)
	index := make(map[string]int, len(columns))
	for i, c := range columns {
		index[c.Label] = i
	}

	report := Report{
		Columns:      columns,
		Rows:         make([]Row, 0, len(schedules)),
		ColumnTotals: zeros(len(columns)),
		GrandTotal:   generic.ZeroMoney,
		Summaries:    make([]AssetSummary, 0, len(schedules)),
		NBV:          make([]NBVRow, 0, len(schedules)),
		NBVTotal: NBVRow{
			Asset:                   NBVTotalLabel,
			Cost:                    generic.ZeroMoney,
			AccumulatedDepreciation: generic.ZeroMoney,
			NetBookValue:            generic.ZeroMoney,
		},
	}

	for _, ns := range schedules {
		s := ns.Schedule
		row := Row{Asset: ns.Name, Cells: zeros(len(columns)), Total: s.TotalDepreciation}
		for _, e := range s.Entries {
			i := index[e.Label]
			row.Cells[i] = row.Cells[i].Add(e.Expense)
			report.ColumnTotals[i] = report.ColumnTotals[i].Add(e.Expense)
		}
		report.Rows = append(report.Rows, row)
		report.GrandTotal = report.GrandTotal.Add(s.TotalDepreciation)

		report.Summaries = append(report.Summaries, AssetSummary{
			Asset:                   ns.Name,
			UsefulLifeYears:         s.UsefulLifeYears,
			Mode:                    s.Mode,
			AccumulatedDepreciation: s.TotalDepreciation,
			FinalBookValue:          s.NetBookValue(),
			FinalPeriod:             s.FinalPeriodLabel,
			Status:                  s.Status,
			Warnings:                s.Warnings,
		})

		nbv := NBVRow{
			Asset:                   ns.Name,
			Cost:                    s.Cost,
			AccumulatedDepreciation: s.TotalDepreciation,
			NetBookValue:            s.NetBookValue(),
		}
		report.NBV = append(report.NBV, nbv)
		report.NBVTotal.Cost = report.NBVTotal.Cost.Add(nbv.Cost)
		report.NBVTotal.AccumulatedDepreciation = report.NBVTotal.AccumulatedDepreciation.Add(nbv.AccumulatedDepreciation)
		report.NBVTotal.NetBookValue = report.NBVTotal.NetBookValue.Add(nbv.NetBookValue)
	}

	return report
}

func unionColumns(schedules []NamedSchedule) []Column {
	seen := make(map[string]bool)
	var columns []Column
	for _, ns := range schedules {
		for _, e := range ns.Schedule.Entries {
			if seen[e.Label] {
				continue
			}
			seen[e.Label] = true
			columns = append(columns, Column{Label: e.Label, Bucket: e.Bucket})
		}
	}
	sort.Slice(columns, func(i, j int) bool {
		if !columns[i].Bucket.Equal(columns[j].Bucket) {
			return columns[i].Bucket.Before(columns[j].Bucket)
		}
		return columns[i].Label < columns[j].Label
	})
	if columns == nil {
		columns = []Column{}
	}
	return columns
}

func zeros(n int) []generic.Money {
	out := make([]generic.Money, n)
	for i := range out {
		out[i] = generic.ZeroMoney
	}
	return out
}
