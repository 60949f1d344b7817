/*
dto.go - Data Transfer Objects for API requests and responses

PURPOSE:
  Defines the JSON structures for API communication. These types decouple
  the calculation types from the external API contract.

NAMING CONVENTION:
  - *DTO: Response types returned to clients
  - Requests reuse factory.RequestJSON, the same schema the CLI reads

MONEY:
  Amounts are generic.Money and serialise as JSON numbers with exactly two
  decimals (1800.00). Currency symbols are never embedded in amounts; the
  report names the display currency and clients prefix it.

TYPES:
  Report:
    ReportDTO, RowDTO, SummaryDTO, NBVDTO, ScheduleDTO, PeriodDTO, WarningDTO

  Runs:
    RunDTO

  Lookup:
    UsefulLivesDTO, SuggestionDTO, factory.Currency

  Scenarios:
    ScenarioDTO

SEE ALSO:
  - handlers.go: Uses these types
  - factory/asset.go: RequestJSON
*/
package api

import (
	"fmt"
	"time"

	"github.com/warp/depreciation-engine/depreciation"
	"github.com/warp/depreciation-engine/factory"
	"github.com/warp/depreciation-engine/generic"
)

// =============================================================================
// REPORT TYPES
// =============================================================================

// ReportDTO is the response of a generate request.
type ReportDTO struct {
	RunID         string           `json:"run_id,omitempty"`
	CreatedAt     string           `json:"created_at,omitempty"`
	Currency      factory.Currency `json:"currency"`
	ProvisionAsOf string           `json:"provision_as_of,omitempty"`

	Columns      []string        `json:"columns"`
	Rows         []RowDTO        `json:"rows"`
	ColumnTotals []generic.Money `json:"column_totals"`
	GrandTotal   generic.Money   `json:"grand_total"`

	Summaries         []SummaryDTO `json:"summaries"`
	NetBookValue      []NBVDTO     `json:"net_book_value"`
	NetBookValueTotal NBVDTO       `json:"net_book_value_total"`

	Schedules []ScheduleDTO `json:"schedules"`
	Warnings  []WarningDTO  `json:"warnings"`
}

// RowDTO is one asset of the wide table. Cells line up with Columns.
type RowDTO struct {
	Asset string          `json:"asset"`
	Cells []generic.Money `json:"cells"`
	Total generic.Money   `json:"total"`
}

// SummaryDTO is the per-asset digest.
type SummaryDTO struct {
	Asset                   string        `json:"asset"`
	UsefulLifeYears         int           `json:"useful_life_years"`
	Mode                    string        `json:"mode"`
	AccumulatedDepreciation generic.Money `json:"accumulated_depreciation"`
	FinalBookValue          generic.Money `json:"final_book_value"`
	FinalPeriod             string        `json:"final_period"`
	Status                  string        `json:"status"`
}

// NBVDTO is one line of the net-book-value view.
type NBVDTO struct {
	Asset                   string        `json:"asset"`
	Cost                    generic.Money `json:"cost"`
	AccumulatedDepreciation generic.Money `json:"accumulated_depreciation"`
	NetBookValue            generic.Money `json:"net_book_value"`
}

// ScheduleDTO is the period-by-period schedule of one asset.
type ScheduleDTO struct {
	Asset             string        `json:"asset"`
	Standard          string        `json:"standard,omitempty"`
	AssetType         string        `json:"asset_type,omitempty"`
	Status            string        `json:"status"`
	Mode              string        `json:"mode"`
	UsefulLifeYears   int           `json:"useful_life_years"`
	Cost              generic.Money `json:"cost"`
	Salvage           generic.Money `json:"salvage"`
	DepreciableBase   generic.Money `json:"depreciable_base"`
	TotalDepreciation generic.Money `json:"total_depreciation"`
	NetBookValue      generic.Money `json:"net_book_value"`
	FinalPeriod       string        `json:"final_period"`
	Periods           []PeriodDTO   `json:"periods"`
}

// PeriodDTO is one period of a schedule.
type PeriodDTO struct {
	Label                   string        `json:"label"`
	Start                   string        `json:"start"`
	DepreciationExpense     generic.Money `json:"depreciation_expense"`
	AccumulatedDepreciation generic.Money `json:"accumulated_depreciation"`
	BookValue               generic.Money `json:"book_value"`
}

// WarningDTO is an informational message about one asset.
type WarningDTO struct {
	Asset   string `json:"asset"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

// =============================================================================
// RUN / LOOKUP / SCENARIO TYPES
// =============================================================================

// RunDTO lists a cached run without its payload.
type RunDTO struct {
	ID                string        `json:"id"`
	CreatedAt         string        `json:"created_at"`
	AssetCount        int           `json:"asset_count"`
	Currency          string        `json:"currency"`
	ProvisionAsOf     string        `json:"provision_as_of,omitempty"`
	TotalDepreciation generic.Money `json:"total_depreciation"`
}

// UsefulLivesDTO is the lookup table for form pre-population.
type UsefulLivesDTO struct {
	Standards    []string                  `json:"standards"`
	AssetTypes   []string                  `json:"asset_types"`
	DefaultYears int                       `json:"default_years"`
	Lives        map[string]map[string]int `json:"lives"`
}

// SuggestionDTO answers a single lookup. Tabulated is false when the
// default life was used.
type SuggestionDTO struct {
	Standard        string `json:"standard"`
	AssetType       string `json:"asset_type"`
	UsefulLifeYears int    `json:"useful_life_years"`
	Tabulated       bool   `json:"tabulated"`
}

// ScenarioDTO represents a demo portfolio.
type ScenarioDTO struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

// ErrorResponse is the standard error response.
type ErrorResponse struct {
	Error   string `json:"error"`
	Code    string `json:"code,omitempty"`
	Details any    `json:"details,omitempty"`
}

// =============================================================================
// CONVERSION HELPERS
// =============================================================================

func toReportDTO(batch *factory.Batch, schedules []depreciation.NamedSchedule, report depreciation.Report) ReportDTO {
	dto := ReportDTO{
		Currency:          batch.Currency,
		Columns:           make([]string, len(report.Columns)),
		Rows:              make([]RowDTO, len(report.Rows)),
		ColumnTotals:      report.ColumnTotals,
		GrandTotal:        report.GrandTotal,
		Summaries:         make([]SummaryDTO, len(report.Summaries)),
		NetBookValue:      make([]NBVDTO, len(report.NBV)),
		NetBookValueTotal: toNBVDTO(report.NBVTotal),
		Schedules:         make([]ScheduleDTO, len(schedules)),
		Warnings:          []WarningDTO{},
	}
	if batch.ProvisionAsOf != nil {
		dto.ProvisionAsOf = batch.ProvisionAsOf.String()
	}

	for i, c := range report.Columns {
		dto.Columns[i] = c.Label
	}
	for i, r := range report.Rows {
		dto.Rows[i] = RowDTO{Asset: r.Asset, Cells: r.Cells, Total: r.Total}
	}
	for i, s := range report.Summaries {
		dto.Summaries[i] = SummaryDTO{
			Asset:                   s.Asset,
			UsefulLifeYears:         s.UsefulLifeYears,
			Mode:                    string(s.Mode),
			AccumulatedDepreciation: s.AccumulatedDepreciation,
			FinalBookValue:          s.FinalBookValue,
			FinalPeriod:             s.FinalPeriod,
			Status:                  string(s.Status),
		}
	}
	for i, n := range report.NBV {
		dto.NetBookValue[i] = toNBVDTO(n)
	}

	for i, ns := range schedules {
		asset := batch.Assets[i]
		dto.Schedules[i] = toScheduleDTO(asset, ns.Schedule)
		for _, w := range ns.Schedule.Warnings {
			dto.Warnings = append(dto.Warnings, WarningDTO{
				Asset:   ns.Name,
				Code:    string(w),
				Message: warningMessage(w, asset, batch),
			})
		}
	}
	return dto
}

func toScheduleDTO(asset depreciation.AssetInput, s depreciation.Schedule) ScheduleDTO {
	dto := ScheduleDTO{
		Asset:             asset.Name,
		Standard:          asset.Standard,
		AssetType:         asset.AssetType,
		Status:            string(s.Status),
		Mode:              string(s.Mode),
		UsefulLifeYears:   s.UsefulLifeYears,
		Cost:              s.Cost,
		Salvage:           s.Salvage,
		DepreciableBase:   s.DepreciableBase,
		TotalDepreciation: s.TotalDepreciation,
		NetBookValue:      s.NetBookValue(),
		FinalPeriod:       s.FinalPeriodLabel,
		Periods:           make([]PeriodDTO, len(s.Entries)),
	}
	for i, e := range s.Entries {
		dto.Periods[i] = PeriodDTO{
			Label:                   e.Label,
			Start:                   e.Start.String(),
			DepreciationExpense:     e.Expense,
			AccumulatedDepreciation: e.Accumulated,
			BookValue:               e.BookValue,
		}
	}
	return dto
}

func toNBVDTO(n depreciation.NBVRow) NBVDTO {
	return NBVDTO{
		Asset:                   n.Asset,
		Cost:                    n.Cost,
		AccumulatedDepreciation: n.AccumulatedDepreciation,
		NetBookValue:            n.NetBookValue,
	}
}

func toRunDTO(run generic.Run) RunDTO {
	dto := RunDTO{
		ID:                string(run.ID),
		CreatedAt:         run.CreatedAt.UTC().Format(time.RFC3339),
		AssetCount:        run.AssetCount,
		Currency:          run.Currency,
		TotalDepreciation: run.TotalDepreciation,
	}
	if run.ProvisionAsOf != nil {
		dto.ProvisionAsOf = run.ProvisionAsOf.String()
	}
	return dto
}

func warningMessage(w depreciation.Warning, asset depreciation.AssetInput, batch *factory.Batch) string {
	switch w {
	case depreciation.WarnSalvageExceedsCost:
		return fmt.Sprintf("salvage value %s exceeds cost %s; depreciation is zero",
			batch.Currency.Format(asset.Salvage.String()), batch.Currency.Format(asset.Cost.String()))
	case depreciation.WarnStartsAfterProvision:
		return fmt.Sprintf("in-service date %s is after the provision date %s; no depreciation is provisioned",
			asset.InServiceDate, batch.ProvisionAsOf)
	case depreciation.WarnLifeOutOfRange:
		return fmt.Sprintf("useful life of %d years exceeds %d; no periods were generated",
			asset.UsefulLifeYears, generic.MaxUsefulLifeYears)
	case depreciation.WarnRoundingOvershoot:
		return "the rounded per-period amount overshoots the depreciable base; the final period is negative"
	default:
		return string(w)
	}
}
