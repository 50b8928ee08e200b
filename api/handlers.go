/*
handlers.go - HTTP API handlers for the ASN monitor

PURPOSE:
  Exposes the record set and the notification engine via REST API. Handles
  HTTP request/response and JSON serialization, and delegates to the
  personnel.Registry.

ENDPOINTS:
  Records:
    GET    /api/records                List all records
    POST   /api/records                Add a record
    GET    /api/records/{id}           Record with all milestones
    DELETE /api/records/{id}           Delete a record

  Notifications:
    GET    /api/notifications          Soon and overdue lists
                                       ?horizon=90&as_of=YYYY-MM-DD

  Bulk:
    GET    /api/export                 Download the record document
    POST   /api/import                 Replace the set with a document

  Admin:
    POST   /api/admin/recompute        Refresh derived dates

  Scenarios:
    GET    /api/scenarios              List demo scenarios
    POST   /api/scenarios/load         Load a demo scenario
    POST   /api/scenarios/reset        Clear the set

ERROR HANDLING:
  Errors are returned as JSON with appropriate HTTP status:
  - 400: Validation errors, invalid import document, bad query values
  - 404: Record not found
  - 500: Internal errors

SECURITY NOTE:
  No authentication. All endpoints are public.

SEE ALSO:
  - dto.go: Request/response data structures
  - scenarios.go: Demo scenario loaders
  - server.go: Router setup and middleware
*/
package api

import (
	"errors"
	"io"
	"net/http"
	"strconv"
	"sync"

	"github.com/go-chi/chi/v5"
	json "github.com/goccy/go-json"
	"github.com/warp/asn-monitor/personnel"
	"github.com/warp/asn-monitor/pkg/logger"
	"github.com/warp/asn-monitor/pkg/metrics"
	"github.com/warp/asn-monitor/schedule"
)

// maxImportBytes caps the import document size.
const maxImportBytes = 10 << 20

// =============================================================================
// HANDLER CONTEXT
// =============================================================================

// Handler holds all dependencies for HTTP handlers.
type Handler struct {
	Registry *personnel.Registry
	Metrics  *metrics.Metrics
	Log      logger.Logger

	// Track currently loaded scenario
	mu              sync.Mutex
	currentScenario string
}

// NewHandler creates a new handler. A nil logger discards output.
func NewHandler(reg *personnel.Registry, m *metrics.Metrics, log logger.Logger) *Handler {
	if m == nil {
		m = metrics.NewMetrics("asn")
	}
	if log == nil {
		log = logger.NewNop()
	}
	h := &Handler{
		Registry: reg,
		Metrics:  m,
		Log:      log,
	}
	h.Metrics.RecordsTotal.Set(float64(reg.Len()))
	return h
}

// =============================================================================
// RECORD HANDLERS
// =============================================================================

// ListRecords returns all records in insertion order.
func (h *Handler) ListRecords(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, toRecordDTOs(h.Registry.List()))
}

// GetRecord returns a single record with all of its milestones.
func (h *Handler) GetRecord(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	horizon, err := horizonParam(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid horizon", err)
		return
	}

	rec, err := h.Registry.Get(id)
	if err != nil {
		h.writeDomainError(w, "Failed to get record", err)
		return
	}
	milestones, err := h.Registry.Milestones(id, horizon)
	if err != nil {
		h.writeDomainError(w, "Failed to get record", err)
		return
	}
	if milestones == nil {
		milestones = []schedule.Notification{}
	}

	writeJSON(w, http.StatusOK, RecordDetailDTO{
		Record:     toRecordDTO(rec),
		Milestones: milestones,
	})
}

// CreateRecord adds a record after validation.
func (h *Handler) CreateRecord(w http.ResponseWriter, r *http.Request) {
	var req CreateRecordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	rec, err := h.Registry.Add(r.Context(), req.toInput())
	if err != nil {
		var vErr *personnel.ValidationError
		if errors.As(err, &vErr) {
			h.Metrics.ValidationErrors.WithLabelValues(vErr.Field).Inc()
		}
		h.writeDomainError(w, "Failed to create record", err)
		return
	}

	h.Metrics.RecordsAdded.Inc()
	h.Metrics.RecordsTotal.Set(float64(h.Registry.Len()))
	h.Log.Info("Record added", "id", rec.ID)

	writeJSON(w, http.StatusCreated, toRecordDTO(rec))
}

// DeleteRecord removes a record by ID.
func (h *Handler) DeleteRecord(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if err := h.Registry.Delete(r.Context(), id); err != nil {
		h.writeDomainError(w, "Failed to delete record", err)
		return
	}

	h.Metrics.RecordsDeleted.Inc()
	h.Metrics.RecordsTotal.Set(float64(h.Registry.Len()))
	h.Log.Info("Record deleted", "id", id)

	w.WriteHeader(http.StatusNoContent)
}

// =============================================================================
// NOTIFICATION HANDLERS
// =============================================================================

// GetNotifications classifies the current set. Query parameters:
//   - horizon: soon window in days (default: configured horizon)
//   - as_of: evaluate as if today were this date (default: server clock)
func (h *Handler) GetNotifications(w http.ResponseWriter, r *http.Request) {
	horizon, err := horizonParam(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid horizon", err)
		return
	}
	if horizon <= 0 {
		horizon = h.Registry.HorizonDays()
	}

	today := h.Registry.Today()
	if s := r.URL.Query().Get("as_of"); s != "" {
		d, ok := schedule.ParseDate(s)
		if !ok {
			writeError(w, http.StatusBadRequest, "Invalid as_of date (use YYYY-MM-DD)", nil)
			return
		}
		today = d
	}

	res := h.Registry.NotificationsAsOf(today, horizon)
	for status, n := range res.Counts() {
		h.Metrics.Notifications.WithLabelValues(string(status)).Set(float64(n))
	}

	writeJSON(w, http.StatusOK, NotificationsResponse{
		AsOf:        today.String(),
		HorizonDays: horizon,
		Soon:        res.Soon,
		Overdue:     res.Overdue,
	})
}

// =============================================================================
// BULK HANDLERS
// =============================================================================

// Export downloads the full record document.
func (h *Handler) Export(w http.ResponseWriter, r *http.Request) {
	data, err := h.Registry.Export()
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to export records", err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Content-Disposition", `attachment; filename="data-asn.json"`)
	w.WriteHeader(http.StatusOK)
	w.Write(data)
}

// Import replaces the set with the uploaded document. On a malformed
// document the current set is left unchanged.
func (h *Handler) Import(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxImportBytes))
	if err != nil {
		h.Metrics.Imports.WithLabelValues("rejected").Inc()
		writeError(w, http.StatusBadRequest, "Failed to read import document", err)
		return
	}

	n, err := h.Registry.Import(r.Context(), body)
	if err != nil {
		h.Metrics.Imports.WithLabelValues("rejected").Inc()
		h.Log.Warn("Import rejected", "error", err)
		h.writeDomainError(w, "Invalid import file", err)
		return
	}

	h.Metrics.Imports.WithLabelValues("accepted").Inc()
	h.Metrics.RecordsTotal.Set(float64(n))
	h.Log.Info("Records imported", "count", n)

	writeJSON(w, http.StatusOK, ImportResponse{Imported: n})
}

// =============================================================================
// ADMIN HANDLERS
// =============================================================================

// Recompute refreshes stale derived dates across the set.
func (h *Handler) Recompute(w http.ResponseWriter, r *http.Request) {
	updated := h.Registry.Recompute(r.Context())
	h.Log.Info("Derived dates recomputed", "updated", updated)

	writeJSON(w, http.StatusOK, RecomputeResponse{
		Updated: updated,
		Total:   h.Registry.Len(),
	})
}

// =============================================================================
// HELPERS
// =============================================================================

func horizonParam(r *http.Request) (int, error) {
	s := r.URL.Query().Get("horizon")
	if s == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, err
	}
	if n < 0 {
		return 0, errors.New("horizon must not be negative")
	}
	return n, nil
}

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

// writeDomainError maps personnel errors to HTTP statuses.
func (h *Handler) writeDomainError(w http.ResponseWriter, message string, err error) {
	switch {
	case personnel.IsNotFound(err):
		writeError(w, http.StatusNotFound, "Record not found", err)
	case personnel.IsClientError(err):
		resp := ErrorResponse{Error: message, Details: err.Error()}
		var vErr *personnel.ValidationError
		if errors.As(err, &vErr) {
			resp.Field = vErr.Field
		}
		writeJSON(w, http.StatusBadRequest, resp)
	default:
		h.Log.Error(message, "error", err)
		writeError(w, http.StatusInternalServerError, message, err)
	}
}
