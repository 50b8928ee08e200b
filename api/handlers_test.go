/*
handlers_test.go - Tests for the HTTP API

Tests for:
- Record create / get / delete and status mapping
- Notification lists, query overrides
- Export / import, including rejected documents
- Recompute and metrics exposition
*/
package api_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	json "github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/warp/asn-monitor/api"
	"github.com/warp/asn-monitor/personnel"
	"github.com/warp/asn-monitor/personnel/store"
	"github.com/warp/asn-monitor/pkg/metrics"
	"github.com/warp/asn-monitor/schedule"
)

// =============================================================================
// TEST SETUP
// =============================================================================

// The server believes today is 2025-03-10.
var now = time.Date(2025, time.March, 10, 9, 30, 0, 0, time.Local)

type testServer struct {
	router   *chi.Mux
	registry *personnel.Registry
	kv       *store.Memory
}

func newTestServer(t *testing.T, opts ...personnel.Option) *testServer {
	t.Helper()
	kv := store.NewMemory()
	reg := personnel.NewRegistry(kv, append([]personnel.Option{
		personnel.WithClock(schedule.FixedClock{At: now}),
	}, opts...)...)
	reg.Load(context.Background())

	h := api.NewHandler(reg, metrics.NewMetrics("asn"), nil)
	return &testServer{router: api.NewRouter(h, nil), registry: reg, kv: kv}
}

func (s *testServer) do(method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rr := httptest.NewRecorder()
	s.router.ServeHTTP(rr, req)
	return rr
}

func decode[T any](t *testing.T, rr *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &v), rr.Body.String())
	return v
}

func (s *testServer) create(t *testing.T, name, lastKGB, lastRank string) api.RecordDTO {
	t.Helper()
	body := `{"name":"` + name + `","employee_number":"198703122010012004","phone":"0812",` +
		`"last_salary_increment_date":"` + lastKGB + `","last_rank_promotion_date":"` + lastRank + `"}`
	rr := s.do(http.MethodPost, "/api/records", body)
	require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())
	return decode[api.RecordDTO](t, rr)
}

// =============================================================================
// RECORDS
// =============================================================================

func TestCreateRecord_Success(t *testing.T) {
	s := newTestServer(t)

	rec := s.create(t, "Siti Aminah", "2020-01-15", "2021-10-01")

	assert.NotEmpty(t, rec.ID)
	assert.Equal(t, "2022-01-15", rec.NextSalaryIncrementDate)
	assert.Equal(t, "2025-10-01", rec.NextRankPromotionDate)
	assert.Equal(t, "", rec.CivilServiceStartDate)
	assert.Equal(t, 1, s.registry.Len())
}

func TestCreateRecord_ValidationFailure(t *testing.T) {
	s := newTestServer(t)

	rr := s.do(http.MethodPost, "/api/records", `{"name":"Budi","employee_number":"123"}`)

	assert.Equal(t, http.StatusBadRequest, rr.Code)
	resp := decode[api.ErrorResponse](t, rr)
	assert.Equal(t, "employee_number", resp.Field)
	assert.Equal(t, 0, s.registry.Len())
}

func TestCreateRecord_RelaxedPolicy(t *testing.T) {
	s := newTestServer(t, personnel.WithPolicy(personnel.RelaxedPolicy()))

	rr := s.do(http.MethodPost, "/api/records", `{"name":"Budi","employee_number":"123"}`)

	assert.Equal(t, http.StatusCreated, rr.Code)
}

func TestCreateRecord_InvalidBody(t *testing.T) {
	s := newTestServer(t)

	rr := s.do(http.MethodPost, "/api/records", `{"name":`)

	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestListRecords_EmptyIsArray(t *testing.T) {
	s := newTestServer(t)

	rr := s.do(http.MethodGet, "/api/records", "")

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `[]`, rr.Body.String())
}

func TestGetRecord(t *testing.T) {
	s := newTestServer(t)
	rec := s.create(t, "Siti", "2024-01-01", "")

	rr := s.do(http.MethodGet, "/api/records/"+rec.ID, "")
	require.Equal(t, http.StatusOK, rr.Code)

	detail := decode[api.RecordDetailDTO](t, rr)
	assert.Equal(t, rec.ID, detail.Record.ID)
	require.Len(t, detail.Milestones, 1)
	assert.Equal(t, schedule.StatusFuture, detail.Milestones[0].Status)
	assert.Equal(t, "2026-01-01", detail.Milestones[0].Date.String())

	assert.Equal(t, http.StatusNotFound, s.do(http.MethodGet, "/api/records/missing", "").Code)
}

func TestDeleteRecord(t *testing.T) {
	// GIVEN: two records with soon milestones
	s := newTestServer(t)
	a := s.create(t, "A", "2023-04-01", "")
	b := s.create(t, "B", "2023-05-01", "")

	// WHEN: A is deleted
	rr := s.do(http.MethodDelete, "/api/records/"+a.ID, "")
	require.Equal(t, http.StatusNoContent, rr.Code)

	// THEN: only B's notification remains, and a second delete is a 404
	resp := decode[api.NotificationsResponse](t, s.do(http.MethodGet, "/api/notifications", ""))
	require.Len(t, resp.Soon, 1)
	assert.Equal(t, b.ID, resp.Soon[0].RecordID)

	assert.Equal(t, http.StatusNotFound, s.do(http.MethodDelete, "/api/records/"+a.ID, "").Code)
}

// =============================================================================
// NOTIFICATIONS
// =============================================================================

func TestGetNotifications(t *testing.T) {
	s := newTestServer(t)
	s.create(t, "Later", "2023-03-20", "")  // KGB 2025-03-20, 10 days
	s.create(t, "Sooner", "2023-03-15", "") // KGB 2025-03-15, 5 days
	s.create(t, "Late", "", "2021-03-09")   // rank 2025-03-09, -1 day
	s.create(t, "Far", "2023-06-09", "")    // KGB 2025-06-09, 91 days

	rr := s.do(http.MethodGet, "/api/notifications", "")
	require.Equal(t, http.StatusOK, rr.Code)
	resp := decode[api.NotificationsResponse](t, rr)

	assert.Equal(t, "2025-03-10", resp.AsOf)
	assert.Equal(t, 90, resp.HorizonDays)

	require.Len(t, resp.Soon, 2)
	assert.Equal(t, "Sooner", resp.Soon[0].Name)
	assert.Equal(t, 5, resp.Soon[0].DaysRemaining)
	assert.Equal(t, "Later", resp.Soon[1].Name)
	assert.Equal(t, schedule.MilestoneSalaryIncrement, resp.Soon[1].Kind)

	require.Len(t, resp.Overdue, 1)
	assert.Equal(t, -1, resp.Overdue[0].DaysRemaining)
	assert.Equal(t, schedule.MilestoneRankPromotion, resp.Overdue[0].Kind)
}

func TestGetNotifications_QueryOverrides(t *testing.T) {
	s := newTestServer(t)
	s.create(t, "A", "2023-03-20", "") // KGB 2025-03-20

	resp := decode[api.NotificationsResponse](t, s.do(http.MethodGet, "/api/notifications?horizon=5", ""))
	assert.Empty(t, resp.Soon)
	assert.Equal(t, 5, resp.HorizonDays)

	resp = decode[api.NotificationsResponse](t, s.do(http.MethodGet, "/api/notifications?as_of=2025-04-01", ""))
	require.Len(t, resp.Overdue, 1)
	assert.Equal(t, -12, resp.Overdue[0].DaysRemaining)
}

func TestGetNotifications_BadQuery(t *testing.T) {
	s := newTestServer(t)

	assert.Equal(t, http.StatusBadRequest, s.do(http.MethodGet, "/api/notifications?horizon=abc", "").Code)
	assert.Equal(t, http.StatusBadRequest, s.do(http.MethodGet, "/api/notifications?horizon=-3", "").Code)
	assert.Equal(t, http.StatusBadRequest, s.do(http.MethodGet, "/api/notifications?as_of=2025-02-30", "").Code)
}

func TestGetNotifications_EmptyListsAreArrays(t *testing.T) {
	s := newTestServer(t)

	rr := s.do(http.MethodGet, "/api/notifications", "")

	assert.JSONEq(t, `{"as_of":"2025-03-10","horizon_days":90,"soon":[],"overdue":[]}`, rr.Body.String())
}

// =============================================================================
// EXPORT / IMPORT
// =============================================================================

func TestExport(t *testing.T) {
	s := newTestServer(t)
	rec := s.create(t, "Siti", "2020-01-15", "")

	rr := s.do(http.MethodGet, "/api/export", "")

	require.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Header().Get("Content-Disposition"), "data-asn.json")
	var doc []map[string]string
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &doc))
	require.Len(t, doc, 1)
	assert.Equal(t, rec.ID, doc[0]["id"])
	assert.Equal(t, "2022-01-15", doc[0]["jadwalKgbBerikutnya"])
}

func TestImport_NonArrayRejected(t *testing.T) {
	// GIVEN: an existing record
	s := newTestServer(t)
	rec := s.create(t, "Siti", "2020-01-15", "")

	// WHEN: importing an object instead of an array
	rr := s.do(http.MethodPost, "/api/import", `{"nama":"x"}`)

	// THEN: the import is rejected and the set is unchanged
	assert.Equal(t, http.StatusBadRequest, rr.Code)
	list := s.registry.List()
	require.Len(t, list, 1)
	assert.Equal(t, rec.ID, list[0].ID)
}

func TestImport_ReplacesSet(t *testing.T) {
	s := newTestServer(t)
	s.create(t, "Old", "", "")

	doc := `[
		{"id":"a","nama":"A","nip":"1","riwayatTmtKgb":"2023-03-15","jadwalKgbBerikutnya":"2025-03-15"},
		{"id":"b","nama":"B","nip":"2","jadwalPangkatBerikutnya":"not a date"}
	]`
	rr := s.do(http.MethodPost, "/api/import", doc)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, 2, decode[api.ImportResponse](t, rr).Imported)

	list := decode[[]api.RecordDTO](t, s.do(http.MethodGet, "/api/records", ""))
	require.Len(t, list, 2)
	assert.Equal(t, "a", list[0].ID)

	resp := decode[api.NotificationsResponse](t, s.do(http.MethodGet, "/api/notifications", ""))
	require.Len(t, resp.Soon, 1)
	assert.Equal(t, "a-kgb", resp.Soon[0].ID)
}

// =============================================================================
// ADMIN / METRICS
// =============================================================================

func TestRecompute(t *testing.T) {
	s := newTestServer(t)
	doc := `[{"id":"a","nama":"A","riwayatTmtKgb":"2020-01-15","jadwalKgbBerikutnya":"2030-01-01"}]`
	require.Equal(t, http.StatusOK, s.do(http.MethodPost, "/api/import", doc).Code)

	rr := s.do(http.MethodPost, "/api/admin/recompute", "")

	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, api.RecomputeResponse{Updated: 1, Total: 1}, decode[api.RecomputeResponse](t, rr))
	rec, err := s.registry.Get("a")
	require.NoError(t, err)
	assert.Equal(t, "2022-01-15", rec.NextSalaryIncrementDate.String())
}

func TestMetricsEndpoint(t *testing.T) {
	s := newTestServer(t)
	s.create(t, "A", "", "")
	s.do(http.MethodPost, "/api/import", `"nope"`)

	rr := s.do(http.MethodGet, "/metrics", "")

	require.Equal(t, http.StatusOK, rr.Code)
	body := rr.Body.String()
	assert.Contains(t, body, "asn_records_added_total 1")
	assert.Contains(t, body, `asn_imports_total{outcome="rejected"} 1`)
}
