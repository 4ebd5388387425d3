/*
handlers.go - HTTP handlers for the time-clock reporting API

PURPOSE:
  Exposes the shift reconstruction engine via REST. Handles HTTP
  request/response, JSON serialization, and delegates to the report
  builder. The raw punch capture API of the surrounding dashboard is a
  separate system; this surface serves reconstructed output only.

ENDPOINTS:
  Reporting:
    GET  /api/timeclock/report     Full report: shifts + analytics + anomalies
    GET  /api/timeclock/shifts     Shift list only
    GET  /api/timeclock/analytics  Per-staff analytics only
    GET  /api/timeclock/rules      Business rules snapshot (read-only)

  Directory:
    GET  /api/staff                Staff seen in the event log (cached ~30s)

  Scenarios:
    GET  /api/scenarios            List demo scenarios
    POST /api/scenarios/load       Seed the store with a demo scenario

QUERY PARAMETERS (reporting routes):
  start, end   Reporting window dates (YYYY-MM-DD, business zone, required;
               the window spans start 00:00 through end 23:59:59)
  staff_id     Optional, repeatable staff filter

ERROR HANDLING:
  Errors are returned as JSON with appropriate HTTP status:
  - 400: Invalid window or parameters
  - 422: Invalid business rules configuration
  - 500: Storage failures
  Structural anomalies and malformed events are NOT errors; they ride
  inside the report payload so data problems never vanish from a payroll
  report.

SEE ALSO:
  - dto.go: Request/response data structures
  - scenarios.go: Demo scenario loaders
  - server.go: Router setup and middleware
*/
package api

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/lengolf/timeclock-engine/engine"
	"github.com/lengolf/timeclock-engine/report"
	"github.com/lengolf/timeclock-engine/store/sqlite"
)

const dateLayout = "2006-01-02"

// =============================================================================
// HANDLER CONTEXT
// =============================================================================

// Handler holds all dependencies for HTTP handlers.
type Handler struct {
	Store   *sqlite.Store
	Builder *report.Builder
	Zone    *time.Location

	// Track currently loaded demo scenario
	currentScenario string
}

// NewHandler wires a handler around the store, rules, and business zone.
func NewHandler(store *sqlite.Store, rules engine.Rules, zone *time.Location) *Handler {
	return &Handler{
		Store:   store,
		Builder: report.NewBuilder(store, rules, zone),
		Zone:    zone,
	}
}

// =============================================================================
// REPORTING HANDLERS
// =============================================================================

// GetReport returns the full report for the requested window.
func (h *Handler) GetReport(w http.ResponseWriter, r *http.Request) {
	rep, ok := h.buildReport(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, toReportDTO(rep))
}

// ListShifts returns only the reconstructed shifts (clock-in descending).
func (h *Handler) ListShifts(w http.ResponseWriter, r *http.Request) {
	rep, ok := h.buildReport(w, r)
	if !ok {
		return
	}
	dto := toReportDTO(rep)
	writeJSON(w, http.StatusOK, map[string]any{
		"window_start": dto.WindowStart,
		"window_end":   dto.WindowEnd,
		"shifts":       dto.Shifts,
		"anomalies":    dto.Anomalies,
	})
}

// GetAnalytics returns only the per-staff analytics.
func (h *Handler) GetAnalytics(w http.ResponseWriter, r *http.Request) {
	rep, ok := h.buildReport(w, r)
	if !ok {
		return
	}
	dto := toReportDTO(rep)
	writeJSON(w, http.StatusOK, map[string]any{
		"window_start": dto.WindowStart,
		"window_end":   dto.WindowEnd,
		"analytics":    dto.Analytics,
	})
}

// GetRules returns the business rules snapshot in effect.
func (h *Handler) GetRules(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, toRulesDTO(h.Builder.Rules))
}

// buildReport parses the window/filter parameters and runs the pipeline.
// On failure it writes the error response and returns ok=false.
func (h *Handler) buildReport(w http.ResponseWriter, r *http.Request) (*report.Report, bool) {
	window, err := h.parseWindow(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid reporting window", err)
		return nil, false
	}

	var staffIDs []engine.StaffID
	for _, id := range r.URL.Query()["staff_id"] {
		if id != "" {
			staffIDs = append(staffIDs, engine.StaffID(id))
		}
	}

	rep, err := h.Builder.Build(r.Context(), report.Request{
		Window:   window,
		StaffIDs: staffIDs,
		AsOf:     time.Now().In(h.Zone),
	})
	if err != nil {
		switch {
		case engine.IsConfigError(err):
			writeError(w, http.StatusUnprocessableEntity, "Invalid business rules configuration", err)
		case engine.IsClientError(err):
			writeError(w, http.StatusBadRequest, "Invalid request", err)
		default:
			writeError(w, http.StatusInternalServerError, "Failed to build report", err)
		}
		return nil, false
	}
	return rep, true
}

// parseWindow reads start/end date parameters in the business zone. The
// window covers the whole end day.
func (h *Handler) parseWindow(r *http.Request) (engine.Window, error) {
	q := r.URL.Query()
	start, err := time.ParseInLocation(dateLayout, q.Get("start"), h.Zone)
	if err != nil {
		return engine.Window{}, engine.ErrInvalidWindow
	}
	end, err := time.ParseInLocation(dateLayout, q.Get("end"), h.Zone)
	if err != nil {
		return engine.Window{}, engine.ErrInvalidWindow
	}
	return engine.NewWindow(start, end.Add(24*time.Hour-time.Second))
}

// =============================================================================
// DIRECTORY HANDLERS
// =============================================================================

// ListStaff returns the staff directory derived from the event log.
func (h *Handler) ListStaff(w http.ResponseWriter, r *http.Request) {
	records, err := h.Store.StaffDirectory(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to list staff", err)
		return
	}
	dtos := make([]StaffDTO, len(records))
	for i, rec := range records {
		dtos[i] = toStaffDTO(rec)
	}
	writeJSON(w, http.StatusOK, map[string]any{"staff": dtos})
}

// =============================================================================
// JSON HELPERS
// =============================================================================

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, status int, message string, err error) {
	resp := ErrorResponse{Error: message}
	if err != nil {
		resp.Details = err.Error()
	}
	writeJSON(w, status, resp)
}
