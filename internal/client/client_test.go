package client

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/noah-isme/edu-advisor-api/internal/models"
	appErrors "github.com/noah-isme/edu-advisor-api/pkg/errors"
	"github.com/noah-isme/edu-advisor-api/pkg/export"
	"github.com/noah-isme/edu-advisor-api/pkg/records"
)

const testToken = "tok-123"

func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func requireBearer(t *testing.T, r *http.Request) {
	t.Helper()
	assert.Equal(t, "Bearer "+testToken, r.Header.Get("Authorization"))
}

func newAPI(t *testing.T) (*httptest.Server, *int32) {
	t.Helper()
	var queryCalls int32
	mux := http.NewServeMux()
	mux.HandleFunc("/api/admin/login", func(w http.ResponseWriter, r *http.Request) {
		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		if body["password"] != "secret" {
			writeJSON(w, http.StatusUnauthorized, map[string]interface{}{
				"success": false,
				"detail":  "invalid credentials",
				"error":   map[string]interface{}{"code": "INVALID_CREDENTIALS", "message": "invalid credentials", "status": 401},
			})
			return
		}
		writeJSON(w, http.StatusOK, map[string]interface{}{
			"success":    true,
			"token":      testToken,
			"role":       "ADMIN",
			"expires_at": time.Now().Add(time.Hour).UTC(),
		})
	})
	mux.HandleFunc("/api/consultant/login", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "c-1", r.URL.Query().Get("user_id"))
		writeJSON(w, http.StatusOK, map[string]interface{}{
			"success":         true,
			"consultant_id":   "c-1",
			"consultant_name": "Meera",
			"token":           testToken,
			"expires_at":      time.Now().Add(time.Hour).UTC(),
		})
	})
	mux.HandleFunc("/api/queries", func(w http.ResponseWriter, r *http.Request) {
		requireBearer(t, r)
		atomic.AddInt32(&queryCalls, 1)
		writeJSON(w, http.StatusOK, map[string]interface{}{
			"success": true,
			"count":   2,
			"queries": []map[string]interface{}{
				{"id": "q1", "name": "Ravi Kumar", "phone": "+919876543210", "course": "BTech", "status": "new", "created_at": "2024-03-01T20:00:00Z", "is_new": true},
				{"id": "q2", "name": "Asha", "phone": "+919812345678", "course": "MBA", "status": "closed", "created_at": "2024-03-02T05:00:00Z"},
			},
		})
	})
	mux.HandleFunc("/api/admin/consultant-reports", func(w http.ResponseWriter, r *http.Request) {
		requireBearer(t, r)
		writeJSON(w, http.StatusOK, map[string]interface{}{
			"success": true,
			"reports": []map[string]interface{}{
				{"id": "r1", "consultant_name": "Meera", "student_name": "Ravi", "interest_scope": "ACTIVELY INTERESTED", "created_at": "2024-03-01T06:00:00Z"},
			},
		})
	})
	mux.HandleFunc("/api/admin/admissions", func(w http.ResponseWriter, r *http.Request) {
		requireBearer(t, r)
		writeJSON(w, http.StatusOK, map[string]interface{}{
			"success": true,
			"admissions": []map[string]interface{}{
				{"id": "a1", "student_name": "Ravi", "admission_date": "2024-03-05", "payout_amount": 15000, "payout_status": "PAYOUT NOT CREDITED YET"},
			},
		})
	})
	mux.HandleFunc("/api/consultant/reports/c-1", func(w http.ResponseWriter, r *http.Request) {
		requireBearer(t, r)
		writeJSON(w, http.StatusOK, map[string]interface{}{
			"success": true,
			"reports": []map[string]interface{}{{"id": "r9", "consultant_id": "c-1", "student_name": "Kiran"}},
		})
	})
	mux.HandleFunc("/api/auth/logout", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusInternalServerError, map[string]interface{}{"success": false, "detail": "boom"})
	})
	mux.HandleFunc("/api/throttled", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Retry-After", "4")
		writeJSON(w, http.StatusTooManyRequests, map[string]interface{}{
			"success": false,
			"detail":  "slow down",
			"error":   map[string]interface{}{"code": "TOO_MANY_REQUESTS", "message": "slow down", "status": 429},
		})
	})

	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv, &queryCalls
}

func loggedInAdmin(t *testing.T, srv *httptest.Server) *Client {
	t.Helper()
	c := New(srv.URL + "/api/")
	_, err := c.AdminLogin(context.Background(), "admin", "secret")
	require.NoError(t, err)
	return c
}

func TestAdminLoginStoresSession(t *testing.T) {
	srv, _ := newAPI(t)
	c := New(srv.URL + "/api")

	s, err := c.AdminLogin(context.Background(), "admin", "secret")
	require.NoError(t, err)
	assert.Equal(t, testToken, s.Token)
	assert.Equal(t, models.RoleAdmin, s.Role)
	assert.False(t, s.Expired(time.Now()))
	assert.Equal(t, testToken, c.Session().Token)
}

func TestAdminLoginMapsErrorEnvelope(t *testing.T) {
	srv, _ := newAPI(t)
	c := New(srv.URL + "/api")

	_, err := c.AdminLogin(context.Background(), "admin", "wrong")
	require.Error(t, err)
	assert.True(t, appErrors.Is(err, appErrors.ErrInvalidCredentials))
	assert.Equal(t, http.StatusUnauthorized, appErrors.FromError(err).Status)
	assert.Nil(t, c.Session())
}

func TestConsultantLoginUsesQueryParams(t *testing.T) {
	srv, _ := newAPI(t)
	c := New(srv.URL + "/api")

	s, err := c.ConsultantLogin(context.Background(), "c-1", "pw")
	require.NoError(t, err)
	assert.Equal(t, models.RoleConsultant, s.Role)
	assert.Equal(t, "Meera", s.Name)

	reports, err := c.MyReports(context.Background())
	require.NoError(t, err)
	require.Len(t, reports, 1)
	assert.Equal(t, "r9", reports[0].ID)
}

func TestAuthedCallWithoutSession(t *testing.T) {
	srv, calls := newAPI(t)
	c := New(srv.URL + "/api")

	_, err := c.Queries(context.Background())
	assert.True(t, appErrors.Is(err, appErrors.ErrUnauthorized))
	assert.Zero(t, atomic.LoadInt32(calls))
}

func TestExpiredSessionIsNotSent(t *testing.T) {
	srv, calls := newAPI(t)
	c := New(srv.URL+"/api", WithSession(&AuthSession{Token: testToken, ExpiresAt: time.Now().Add(-time.Minute)}))

	_, err := c.Queries(context.Background())
	assert.True(t, appErrors.Is(err, appErrors.ErrUnauthorized))
	assert.Zero(t, atomic.LoadInt32(calls))
}

func TestThrottledResponseCarriesRetryAfter(t *testing.T) {
	srv, _ := newAPI(t)
	c := New(srv.URL + "/api")

	err := c.do(context.Background(), http.MethodGet, "/throttled", nil, nil, nil, false)
	appErr := appErrors.FromError(err)
	assert.Equal(t, "TOO_MANY_REQUESTS", appErr.Code)
	assert.Equal(t, 4*time.Second, appErr.RetryAfter)
}

func TestLogoutDropsSessionOnServerError(t *testing.T) {
	srv, _ := newAPI(t)
	c := loggedInAdmin(t, srv)

	err := c.Logout(context.Background())
	require.Error(t, err)
	assert.Equal(t, http.StatusInternalServerError, appErrors.FromError(err).Status)
	assert.Nil(t, c.Session())
}

func TestAdminDashboardRefresh(t *testing.T) {
	srv, _ := newAPI(t)
	d := NewAdminDashboard(loggedInAdmin(t, srv), records.IST())
	defer d.Close()

	require.NoError(t, d.Refresh(context.Background()))
	assert.Equal(t, 2, d.Queries.Len())
	assert.Equal(t, 1, d.Reports.Len())
	require.Equal(t, 1, d.Admissions.Len())
	assert.Equal(t, "2024-03-05", d.Admissions.View()[0].AdmissionDate.String())
	assert.True(t, d.Queries.View()[0].IsNew)

	// 20:00 UTC on Mar 1 is Mar 2 in IST.
	day, err := records.ParseDate("2024-03-02")
	require.NoError(t, err)
	d.Queries.UpdateFilter(func(f *records.FilterState) { f.Date = day })
	assert.Len(t, d.Queries.View(), 2)

	d.Queries.SetFilter(d.Queries.Filter().WithEquals(records.FieldStatus, "closed"))
	require.Len(t, d.Queries.View(), 1)
	assert.Equal(t, "q2", d.Queries.View()[0].ID)
}

func TestRefreshFailureKeepsStoreState(t *testing.T) {
	srv, _ := newAPI(t)
	d := NewAdminDashboard(loggedInAdmin(t, srv), records.IST())
	require.NoError(t, d.Refresh(context.Background()))

	srv.Close()
	err := d.Refresh(context.Background())
	require.Error(t, err)
	assert.True(t, appErrors.Is(err, appErrors.ErrUnavailable))
	assert.Equal(t, 2, d.Queries.Len())
	assert.Equal(t, 1, d.Admissions.Len())
}

func TestLoadDiscardsStaleResponse(t *testing.T) {
	store := records.NewStore[models.QueryView](records.FilterState{})
	fresh := []models.QueryView{{StudentQuery: models.StudentQuery{ID: "fresh"}}}

	err := load(context.Background(), zap.NewNop(), "queries", store, func(context.Context) ([]models.QueryView, error) {
		// A newer refresh lands while this one is still in flight.
		tok := store.Begin()
		require.True(t, store.Commit(tok, fresh))
		return []models.QueryView{{StudentQuery: models.StudentQuery{ID: "stale"}}}, nil
	})
	require.NoError(t, err)
	require.Len(t, store.Raw(), 1)
	assert.Equal(t, "fresh", store.Raw()[0].ID)
}

func TestExportRendersFilteredView(t *testing.T) {
	srv, _ := newAPI(t)
	d := NewAdminDashboard(loggedInAdmin(t, srv), records.IST())
	require.NoError(t, d.Refresh(context.Background()))

	d.Queries.UpdateFilter(func(f *records.FilterState) { f.SearchTerm = "ravi" })
	now := time.Date(2024, 3, 10, 23, 0, 0, 0, time.UTC)
	file, err := Export(d.Queries, "student-queries", QueryColumns(records.IST()), export.NewCSVExporter(), now)
	require.NoError(t, err)

	assert.Equal(t, "student-queries-2024-03-10.csv", file.Name)
	assert.Equal(t, 1, file.Rows)
	lines := strings.Split(string(file.Data), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, "Date,Name,Phone,Email,Institution,Course,Message,Status", lines[0])
	assert.True(t, strings.HasPrefix(lines[1], `"2024-03-02","Ravi Kumar"`), lines[1])
}

func TestQueryColumnsMatchServerLayout(t *testing.T) {
	f := records.IST()
	q := models.StudentQuery{ID: "q1", Name: "Ravi", Course: "BTech", Status: models.QueryStatusNew,
		CreatedAt: time.Date(2024, 3, 1, 20, 0, 0, 0, time.UTC)}

	server := records.Project("q", []models.StudentQuery{q}, models.QueryColumns(f))
	dashboard := records.Project("q", []models.QueryView{{StudentQuery: q, IsNew: true}}, QueryColumns(f))

	assert.Equal(t, server.Headers, dashboard.Headers)
	assert.Equal(t, server.Rows, dashboard.Rows)
	assert.Equal(t, "2024-03-02", dashboard.Rows[0][0])
}

func TestExportEmptyViewIsHeaderOnly(t *testing.T) {
	store := records.NewStore[models.Admission](records.FilterState{})
	file, err := Export(store, "admissions", models.AdmissionColumns(records.IST()), export.NewCSVExporter(), time.Now())
	require.NoError(t, err)
	assert.Zero(t, file.Rows)
	assert.NotContains(t, string(file.Data), "\n")
}
