/*
handlers.go - HTTP API handlers for the depreciation calculator

PURPOSE:
  Exposes the depreciation engine via REST API. Handles HTTP
  request/response, JSON serialization, and delegates to the calculation
  packages (factory -> depreciation -> report DTO).

ENDPOINTS:
  Schedules:
    POST   /api/schedules              Generate report, cache the run
    POST   /api/schedules/csv          Generate and download CSV (not cached)

  Runs:
    GET    /api/runs                   List cached runs, newest first
    GET    /api/runs/{id}              Cached report
    GET    /api/runs/{id}/csv          CSV download (?format=wide|detail)
    DELETE /api/runs/{id}              Drop a cached run

  Lookup:
    GET    /api/useful-lives           Useful-life table
    GET    /api/useful-lives/suggest   ?standard=&asset_type=
    GET    /api/currencies             Display currencies

  Scenarios:
    GET    /api/scenarios              List demo portfolios
    POST   /api/scenarios/{id}/run     Generate a demo portfolio

ARCHITECTURE:
  Handler struct holds all dependencies:
  - Store: Run cache (generic.RunStore)
  - Factory: JSON to AssetInput conversion
  - Log: Structured logger

REQUEST FLOW:
  1. Read and parse the request body
  2. Validate input (factory)
  3. Build schedules and aggregate (depreciation)
  4. Cache the run, serialize response
  5. Handle errors

ERROR HANDLING:
  Errors are returned as JSON {error, code, details}:
  - 400: Malformed JSON, invalid asset definitions, empty asset list
  - 404: Unknown run or scenario
  - 500: Internal errors

SEE ALSO:
  - dto.go: Request/response data structures
  - scenarios.go: Demo portfolios
  - server.go: Router setup and middleware
*/
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/warp/depreciation-engine/depreciation"
	"github.com/warp/depreciation-engine/factory"
	"github.com/warp/depreciation-engine/generic"
)

// maxRequestBytes caps request bodies.
const maxRequestBytes = 1 << 20

// DefaultListLimit is the number of runs GET /api/runs returns when the
// handler is not configured otherwise.
const DefaultListLimit = 50

// CSV export layouts.
const (
	csvFormatWide   = "wide"
	csvFormatDetail = "detail"
)

// =============================================================================
// HANDLER CONTEXT
// =============================================================================

// Handler holds all dependencies for HTTP handlers.
type Handler struct {
	Store   generic.RunStore
	Factory *factory.AssetFactory
	Log     logrus.FieldLogger

	// ListLimit bounds GET /api/runs.
	ListLimit int

	// Now and NewID are replaceable in tests.
	Now   func() time.Time
	NewID func() generic.RunID
}

// NewHandler creates a new handler with the given store.
func NewHandler(store generic.RunStore, log logrus.FieldLogger) *Handler {
	return &Handler{
		Store:     store,
		Factory:   factory.NewAssetFactory(),
		Log:       log,
		ListLimit: DefaultListLimit,
		Now:       time.Now,
		NewID:     func() generic.RunID { return generic.RunID(uuid.NewString()) },
	}
}

// =============================================================================
// SCHEDULE ENDPOINTS
// =============================================================================

// CreateSchedule computes the report for a batch of assets and caches it.
func (h *Handler) CreateSchedule(w http.ResponseWriter, r *http.Request) {
	batch, ok := h.readBatch(w, r)
	if !ok {
		return
	}

	report, err := h.generate(r.Context(), batch)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "internal", "Failed to generate schedule", err)
		return
	}
	writeJSON(w, http.StatusCreated, report)
}

// ExportScheduleCSV computes a batch and streams the CSV without caching.
func (h *Handler) ExportScheduleCSV(w http.ResponseWriter, r *http.Request) {
	format, ok := csvFormat(w, r)
	if !ok {
		return
	}
	batch, ok := h.readBatch(w, r)
	if !ok {
		return
	}
	h.writeBatchCSV(w, batch, format)
}

// generate builds, aggregates and caches one batch.
func (h *Handler) generate(ctx context.Context, batch *factory.Batch) (ReportDTO, error) {
	schedules := depreciation.BuildSchedules(batch.Assets)
	report := depreciation.Aggregate(schedules)

	dto := toReportDTO(batch, schedules, report)
	run := generic.Run{
		ID:                h.NewID(),
		CreatedAt:         h.Now().UTC(),
		AssetCount:        len(batch.Assets),
		Currency:          batch.Currency.Code,
		ProvisionAsOf:     batch.ProvisionAsOf,
		TotalDepreciation: report.GrandTotal,
	}
	dto.RunID = string(run.ID)
	dto.CreatedAt = run.CreatedAt.Format(time.RFC3339)

	var err error
	if run.RequestJSON, err = json.Marshal(h.Factory.ToJSON(batch)); err != nil {
		return ReportDTO{}, fmt.Errorf("encode request: %w", err)
	}
	if run.ReportJSON, err = json.Marshal(dto); err != nil {
		return ReportDTO{}, fmt.Errorf("encode report: %w", err)
	}
	if err := h.Store.SaveRun(ctx, run); err != nil {
		return ReportDTO{}, err
	}

	log := h.Log.WithFields(logrus.Fields{
		"run_id":      run.ID,
		"assets":      run.AssetCount,
		"total":       run.TotalDepreciation.String(),
		"columns":     len(report.Columns),
		"provisioned": batch.ProvisionAsOf != nil,
	})
	log.Info("schedule generated")
	for _, wdto := range dto.Warnings {
		log.WithFields(logrus.Fields{"asset": wdto.Asset, "warning": wdto.Code}).Debug(wdto.Message)
	}
	return dto, nil
}

// =============================================================================
// RUN ENDPOINTS
// =============================================================================

// ListRuns returns cached runs, newest first.
func (h *Handler) ListRuns(w http.ResponseWriter, r *http.Request) {
	runs, err := h.Store.ListRuns(r.Context(), h.ListLimit)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "internal", "Failed to list runs", err)
		return
	}

	dtos := make([]RunDTO, len(runs))
	for i, run := range runs {
		dtos[i] = toRunDTO(run)
	}
	writeJSON(w, http.StatusOK, dtos)
}

// GetRun returns the cached report of a run.
func (h *Handler) GetRun(w http.ResponseWriter, r *http.Request) {
	run, ok := h.lookupRun(w, r)
	if !ok {
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write(run.ReportJSON)
}

// GetRunCSV rebuilds a cached run from its request and downloads the CSV.
func (h *Handler) GetRunCSV(w http.ResponseWriter, r *http.Request) {
	format, ok := csvFormat(w, r)
	if !ok {
		return
	}
	run, ok := h.lookupRun(w, r)
	if !ok {
		return
	}

	batch, err := h.Factory.ParseRequest(run.RequestJSON)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "internal", "Cached run is unreadable", err)
		return
	}
	h.writeBatchCSV(w, batch, format)
}

// DeleteRun drops a cached run.
func (h *Handler) DeleteRun(w http.ResponseWriter, r *http.Request) {
	id := generic.RunID(chi.URLParam(r, "id"))
	if err := h.Store.DeleteRun(r.Context(), id); err != nil {
		if errors.Is(err, generic.ErrRunNotFound) {
			writeError(w, http.StatusNotFound, "run_not_found", "Run not found", err)
			return
		}
		writeError(w, http.StatusInternalServerError, "internal", "Failed to delete run", err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "deleted", "id": string(id)})
}

func (h *Handler) lookupRun(w http.ResponseWriter, r *http.Request) (*generic.Run, bool) {
	id := generic.RunID(chi.URLParam(r, "id"))
	run, err := h.Store.GetRun(r.Context(), id)
	if errors.Is(err, generic.ErrRunNotFound) {
		writeError(w, http.StatusNotFound, "run_not_found", "Run not found", err)
		return nil, false
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, "internal", "Failed to get run", err)
		return nil, false
	}
	return run, true
}

// =============================================================================
// LOOKUP ENDPOINTS
// =============================================================================

// ListUsefulLives returns the useful-life table.
func (h *Handler) ListUsefulLives(w http.ResponseWriter, r *http.Request) {
	lives := h.Factory.Lives()
	writeJSON(w, http.StatusOK, UsefulLivesDTO{
		Standards:    lives.Standards(),
		AssetTypes:   lives.AssetTypes(),
		DefaultYears: lives.DefaultYears(),
		Lives:        lives.Entries(),
	})
}

// SuggestUsefulLife looks up one standard / asset type pair.
func (h *Handler) SuggestUsefulLife(w http.ResponseWriter, r *http.Request) {
	standard := r.URL.Query().Get("standard")
	assetType := r.URL.Query().Get("asset_type")

	lives := h.Factory.Lives()
	years, ok := lives.Suggest(standard, assetType)
	if !ok {
		years = lives.DefaultYears()
	}
	writeJSON(w, http.StatusOK, SuggestionDTO{
		Standard:        standard,
		AssetType:       assetType,
		UsefulLifeYears: years,
		Tabulated:       ok,
	})
}

// ListCurrencies returns the display currencies.
func (h *Handler) ListCurrencies(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, factory.Currencies())
}

// =============================================================================
// HELPERS
// =============================================================================

// readBatch parses the request body. On failure the error response has
// already been written.
func (h *Handler) readBatch(w http.ResponseWriter, r *http.Request) (*factory.Batch, bool) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxRequestBytes))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", "Invalid request body", err)
		return nil, false
	}

	batch, err := h.Factory.ParseRequest(body)
	if err != nil {
		writeBatchError(w, err)
		return nil, false
	}
	return batch, true
}

func writeBatchError(w http.ResponseWriter, err error) {
	var verr *generic.ValidationError
	switch {
	case errors.As(err, &verr):
		writeJSON(w, http.StatusBadRequest, ErrorResponse{
			Error:   "Invalid asset",
			Code:    "invalid_asset",
			Details: verr,
		})
	case errors.Is(err, generic.ErrNoAssets):
		writeError(w, http.StatusBadRequest, "no_assets", "At least one asset is required", err)
	default:
		writeError(w, http.StatusBadRequest, "invalid_request", "Invalid request body", err)
	}
}

func csvFormat(w http.ResponseWriter, r *http.Request) (string, bool) {
	switch f := r.URL.Query().Get("format"); f {
	case "", csvFormatWide:
		return csvFormatWide, true
	case csvFormatDetail:
		return csvFormatDetail, true
	default:
		writeError(w, http.StatusBadRequest, "invalid_format", "format must be wide or detail",
			fmt.Errorf("unknown format %q", f))
		return "", false
	}
}

// writeBatchCSV renders into a buffer first so a failure can still be
// reported as JSON.
func (h *Handler) writeBatchCSV(w http.ResponseWriter, batch *factory.Batch, format string) {
	schedules := depreciation.BuildSchedules(batch.Assets)

	var (
		buf      bytes.Buffer
		err      error
		filename = "multi_asset_schedule.csv"
	)
	if format == csvFormatDetail {
		filename = "multi_asset_schedule_detail.csv"
		err = depreciation.WriteDetailCSV(&buf, schedules)
	} else {
		err = depreciation.WriteCSV(&buf, depreciation.Aggregate(schedules))
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, "internal", "Failed to render CSV", err)
		return
	}

	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	w.WriteHeader(http.StatusOK)
	w.Write(buf.Bytes())
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, status int, code, message string, err error) {
	resp := ErrorResponse{Error: message, Code: code}
	if err != nil {
		resp.Details = err.Error()
	}
	writeJSON(w, status, resp)
}
