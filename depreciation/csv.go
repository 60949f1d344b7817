package depreciation

import (
	"encoding/csv"
	"fmt"
	"io"
)

// Header cells shared by both exports.
const (
	csvAssetHeader = "Asset"
	csvTotalHeader = "Total Depreciation"
)

// WriteCSV writes the wide table: Asset, one column per period label in
// report order, Total Depreciation. Amounts carry exactly two decimals and
// no currency symbol.
func WriteCSV(w io.Writer, report Report) error {
	cw := csv.NewWriter(w)

	header := make([]string, 0, len(report.Columns)+2)
	header = append(header, csvAssetHeader)
	for _, c := range report.Columns {
		header = append(header, c.Label)
	}
	header = append(header, csvTotalHeader)
	if err := cw.Write(header); err != nil {
		return fmt.Errorf("write csv header: %w", err)
	}

	for _, row := range report.Rows {
		record := make([]string, 0, len(row.Cells)+2)
		record = append(record, row.Asset)
		for _, cell := range row.Cells {
			record = append(record, cell.String())
		}
		record = append(record, row.Total.String())
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("write csv row %q: %w", row.Asset, err)
		}
	}

	cw.Flush()
	return cw.Error()
}

// WriteDetailCSV writes one line per retained period of every schedule, in
// the long layout of the combined download.
func WriteDetailCSV(w io.Writer, schedules []NamedSchedule) error {
	cw := csv.NewWriter(w)

	header := []string{csvAssetHeader, "Period", "Period Start", "Depreciation Expense", "Accumulated Depreciation", "Book Value"}
	if err := cw.Write(header); err != nil {
		return fmt.Errorf("write csv header: %w", err)
	}

	for _, ns := range schedules {
		for _, e := range ns.Schedule.Entries {
			record := []string{
				ns.Name,
				e.Label,
				e.Start.String(),
				e.Expense.String(),
				e.Accumulated.String(),
				e.BookValue.String(),
			}
			if err := cw.Write(record); err != nil {
				return fmt.Errorf("write csv row %q: %w", ns.Name, err)
			}
		}
	}

	cw.Flush()
	return cw.Error()
}
