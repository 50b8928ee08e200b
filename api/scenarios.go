/*
scenarios.go - Demo scenario loaders for testing and demonstrations

PURPOSE:

	Provides pre-built record sets so the notification panels have
	something to show. Anchor dates are computed backwards from the
	registry's "today", so a scenario always produces the same mix of
	soon / overdue / future milestones whenever it is loaded.

AVAILABLE SCENARIOS:

	due-soon:      three KGB milestones inside the 90-day window
	overdue:       missed KGB and rank promotions
	mixed-office:  a small office with every status, absent dates and a
	               Feb 29 anchor

HOW SCENARIOS WORK:
 1. Build each record through Registry.Build (validation + derived dates)
 2. Swap the whole set in with a single Registry.Replace

USAGE VIA API:

	POST /api/scenarios/load
	{"scenario_id": "mixed-office"}

NOTE:

	Scenarios replace the whole record set. Only use in development/demo
	environments.

SEE ALSO:
  - handlers.go: shares the Handler
  - personnel/registry.go: Build, Replace
*/
package api

import (
	"context"
	"fmt"
	"net/http"

	json "github.com/goccy/go-json"
	"github.com/warp/asn-monitor/personnel"
	"github.com/warp/asn-monitor/schedule"
)

// =============================================================================
// SCENARIO DEFINITIONS
// =============================================================================

var scenarios = []ScenarioDTO{
	{
		ID:          "due-soon",
		Name:        "Due Soon",
		Description: "Three salary increments due within the next 90 days",
	},
	{
		ID:          "overdue",
		Name:        "Overdue",
		Description: "Salary increments and promotions that have already passed",
	},
	{
		ID:          "mixed-office",
		Name:        "Mixed Office",
		Description: "Soon, overdue and future milestones, missing dates and a leap-day anchor",
	},
}

// seed describes one demo employee. Offsets are days from today to the
// next milestone; nil means the anchor is left empty.
type seed struct {
	name, nip, phone string
	kgbInDays        *int
	rankInDays       *int
	rawKGB           string // used instead of kgbInDays when set
}

func days(n int) *int { return &n }

var scenarioSeeds = map[string][]seed{
	"due-soon": {
		{name: "Siti Aminah", nip: "198703122010012004", phone: "081234567801", kgbInDays: days(12), rankInDays: days(400)},
		{name: "Budi Santoso", nip: "197905212005011003", phone: "081234567802", kgbInDays: days(45)},
		{name: "Dewi Lestari", nip: "199002142015032001", phone: "081234567803", kgbInDays: days(80), rankInDays: days(700)},
	},
	"overdue": {
		{name: "Agus Pratama", nip: "198112302008011005", phone: "081234567804", kgbInDays: days(-15)},
		{name: "Rina Wulandari", nip: "198506172009022002", phone: "081234567805", kgbInDays: days(-120), rankInDays: days(-3)},
	},
	"mixed-office": {
		{name: "Hendra Gunawan", nip: "197701012003121001", phone: "081234567806", kgbInDays: days(5), rankInDays: days(-30)},
		{name: "Maya Sari", nip: "199108082019032011", phone: "081234567807", kgbInDays: days(300), rankInDays: days(60)},
		{name: "Yusuf Hidayat", nip: "198404042010011012", phone: "081234567808", kgbInDays: days(-1)},
		{name: "Lina Marlina", nip: "199512122020122013", phone: "081234567809"},
		{name: "Fajar Nugroho", nip: "198802292012011014", phone: "081234567810", rawKGB: "2024-02-29"},
	},
}

// anchorFor returns the last-TMT date whose next milestone falls
// inDays from today.
func anchorFor(today schedule.Date, inDays *int, cadence int) string {
	if inDays == nil {
		return ""
	}
	return today.AddDays(*inDays).AddYears(-cadence).String()
}

// =============================================================================
// SCENARIO HANDLERS
// =============================================================================

// ListScenarios returns available scenarios.
func (h *Handler) ListScenarios(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, scenarios)
}

// GetCurrentScenario returns the currently loaded scenario, if any.
func (h *Handler) GetCurrentScenario(w http.ResponseWriter, r *http.Request) {
	h.mu.Lock()
	current := h.currentScenario
	h.mu.Unlock()

	for _, s := range scenarios {
		if s.ID == current {
			writeJSON(w, http.StatusOK, s)
			return
		}
	}
	writeJSON(w, http.StatusOK, nil)
}

// LoadScenario replaces the record set with a predefined scenario.
func (h *Handler) LoadScenario(w http.ResponseWriter, r *http.Request) {
	var req LoadScenarioRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	if _, ok := scenarioSeeds[req.ScenarioID]; !ok {
		writeError(w, http.StatusBadRequest, "Unknown scenario", nil)
		return
	}

	n, err := h.loadScenario(r.Context(), req.ScenarioID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, fmt.Sprintf("Failed to load scenario: %v", err), err)
		return
	}

	h.Metrics.RecordsTotal.Set(float64(n))
	h.Log.Info("Scenario loaded", "scenario", req.ScenarioID, "records", n)

	writeJSON(w, http.StatusOK, LoadScenarioResponse{ScenarioID: req.ScenarioID, Records: n})
}

// ResetRecords clears the record set.
func (h *Handler) ResetRecords(w http.ResponseWriter, r *http.Request) {
	h.Registry.Replace(r.Context(), nil)

	h.mu.Lock()
	h.currentScenario = ""
	h.mu.Unlock()

	h.Metrics.RecordsTotal.Set(0)
	h.Log.Info("Record set cleared")

	writeJSON(w, http.StatusOK, map[string]string{"status": "reset"})
}

// =============================================================================
// SCENARIO LOADERS
// =============================================================================

func (h *Handler) loadScenario(ctx context.Context, id string) (int, error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	today := h.Registry.Today()
	seeds := scenarioSeeds[id]
	records := make([]personnel.Record, 0, len(seeds))
	for _, s := range seeds {
		kgb := s.rawKGB
		if kgb == "" {
			kgb = anchorFor(today, s.kgbInDays, schedule.SalaryIncrementYears)
		}
		rec, err := h.Registry.Build(personnel.Input{
			Name:                    s.name,
			EmployeeNumber:          s.nip,
			Phone:                   s.phone,
			CivilServiceStartDate:   today.AddYears(-10).String(),
			LastSalaryIncrementDate: kgb,
			LastRankPromotionDate:   anchorFor(today, s.rankInDays, schedule.RankPromotionYears),
		})
		if err != nil {
			return 0, fmt.Errorf("seed %s: %w", s.name, err)
		}
		records = append(records, rec)
	}

	// One commit, so readers see either the old set or the whole scenario.
	h.Registry.Replace(ctx, records)
	h.currentScenario = id
	return len(records), nil
}
