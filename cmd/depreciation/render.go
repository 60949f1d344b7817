package main

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/warp/depreciation-engine/depreciation"
	"github.com/warp/depreciation-engine/factory"
	"github.com/warp/depreciation-engine/generic"
)

// =============================================================================
// TEXT RENDERING
// =============================================================================

func newTable(out io.Writer) *tabwriter.Writer {
	return tabwriter.NewWriter(out, 0, 0, 2, ' ', tabwriter.AlignRight)
}

func money(c factory.Currency, m generic.Money) string {
	return c.Format(m.String())
}

// renderReport prints the merged period table followed by the NBV view.
func renderReport(out io.Writer, report depreciation.Report, cur factory.Currency) error {
	tw := newTable(out)

	header := []string{"Asset"}
	for _, c := range report.Columns {
		header = append(header, c.Label)
	}
	header = append(header, "Total Depreciation")
	fmt.Fprintln(tw, strings.Join(header, "\t")+"\t")

	for _, row := range report.Rows {
		cells := []string{row.Asset}
		for _, v := range row.Cells {
			cells = append(cells, money(cur, v))
		}
		cells = append(cells, money(cur, row.Total))
		fmt.Fprintln(tw, strings.Join(cells, "\t")+"\t")
	}

	totals := []string{"Total"}
	for _, v := range report.ColumnTotals {
		totals = append(totals, money(cur, v))
	}
	totals = append(totals, money(cur, report.GrandTotal))
	fmt.Fprintln(tw, strings.Join(totals, "\t")+"\t")
	if err := tw.Flush(); err != nil {
		return err
	}

	fmt.Fprintln(out)
	fmt.Fprintln(out, "Net Book Value")
	tw = newTable(out)
	fmt.Fprintln(tw, "Asset\tCost\tAccumulated Depreciation\tNet Book Value\t")
	for _, n := range append(report.NBV, report.NBVTotal) {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t\n", n.Asset,
			money(cur, n.Cost), money(cur, n.AccumulatedDepreciation), money(cur, n.NetBookValue))
	}
	return tw.Flush()
}

// renderSchedules prints each asset's period-by-period schedule.
func renderSchedules(out io.Writer, schedules []depreciation.NamedSchedule, cur factory.Currency) error {
	for _, ns := range schedules {
		s := ns.Schedule
		fmt.Fprintln(out)
		fmt.Fprintf(out, "%s (%d years, %s, %s)\n", ns.Name, s.UsefulLifeYears, s.Mode, s.Status)

		tw := newTable(out)
		fmt.Fprintln(tw, "Period\tStart\tDepreciation Expense\tAccumulated Depreciation\tBook Value\t")
		for _, e := range s.Entries {
			fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t\n", e.Label, e.Start,
				money(cur, e.Expense), money(cur, e.Accumulated), money(cur, e.BookValue))
		}
		if err := tw.Flush(); err != nil {
			return err
		}
		if len(s.Entries) == 0 {
			fmt.Fprintf(out, "  no periods: %s\n", s.FinalPeriodLabel)
		}
	}
	return nil
}

func renderWarnings(out io.Writer, schedules []depreciation.NamedSchedule) {
	for _, ns := range schedules {
		for _, w := range ns.Schedule.Warnings {
			fmt.Fprintf(out, "warning: %s: %s\n", ns.Name, w)
		}
	}
}

// renderLives prints one row per asset type, one column per standard.
func renderLives(out io.Writer, lives *factory.UsefulLifeTable) error {
	standards := lives.Standards()

	tw := newTable(out)
	fmt.Fprintln(tw, "Asset Type\t"+strings.Join(standards, "\t")+"\t")
	for _, assetType := range lives.AssetTypes() {
		cells := []string{assetType}
		for _, s := range standards {
			if years, ok := lives.Suggest(s, assetType); ok {
				cells = append(cells, fmt.Sprintf("%d", years))
			} else {
				cells = append(cells, "-")
			}
		}
		fmt.Fprintln(tw, strings.Join(cells, "\t")+"\t")
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	fmt.Fprintf(out, "\nDefault for untabulated pairs: %d years\n", lives.DefaultYears())
	return nil
}
