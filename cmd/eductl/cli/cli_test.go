package cli

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/edu-advisor-api/pkg/config"
	"github.com/noah-isme/edu-advisor-api/pkg/export"
)

func fakeAPI(t *testing.T) *httptest.Server {
	t.Helper()
	reply := func(w http.ResponseWriter, body map[string]interface{}) {
		w.Header().Set("Content-Type", "application/json")
		body["success"] = true
		_ = json.NewEncoder(w).Encode(body)
	}
	mux := http.NewServeMux()
	mux.HandleFunc("/api/admin/login", func(w http.ResponseWriter, r *http.Request) {
		reply(w, map[string]interface{}{"token": "t", "role": "ADMIN", "expires_at": time.Now().Add(time.Hour)})
	})
	mux.HandleFunc("/api/auth/logout", func(w http.ResponseWriter, r *http.Request) {
		reply(w, map[string]interface{}{"message": "logged out"})
	})
	mux.HandleFunc("/api/queries", func(w http.ResponseWriter, r *http.Request) {
		reply(w, map[string]interface{}{"queries": []map[string]interface{}{
			{"id": "q1", "name": "Ravi", "course": "BTech, CSE", "status": "new", "created_at": "2024-03-01T06:00:00Z"},
			{"id": "q2", "name": "Asha", "course": "MBA", "status": "closed", "created_at": "2024-03-01T07:00:00Z"},
		}})
	})
	mux.HandleFunc("/api/admin/consultant-reports", func(w http.ResponseWriter, r *http.Request) {
		reply(w, map[string]interface{}{"reports": []map[string]interface{}{
			{"id": "r1", "consultant_name": "Meera", "interest_scope": "LESS INTERESTED"},
		}})
	})
	mux.HandleFunc("/api/admin/admissions", func(w http.ResponseWriter, r *http.Request) {
		reply(w, map[string]interface{}{"admissions": []map[string]interface{}{
			{"id": "a1", "admission_date": "2024-03-05", "payout_amount": 1000, "payout_status": "PAYOUT REFLECTED"},
		}})
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	viper.Reset()
	t.Cleanup(viper.Reset)

	root := NewRootCommand(VersionInfo{Version: "test", Commit: "x"})
	root.AddCommand(NewSummaryCommand(), NewQueriesCommand(), NewReportsCommand(), NewAdmissionsCommand())

	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func TestQueriesExportWritesFilteredCSV(t *testing.T) {
	srv := fakeAPI(t)
	dir := t.TempDir()

	out, err := execute(t, "--api-url", srv.URL+"/api", "--username", "admin", "--password", "pw",
		"queries", "export", "--status", "new", "--out", dir)
	require.NoError(t, err)
	assert.Contains(t, out, "wrote 1 rows")

	matches, err := filepath.Glob(filepath.Join(dir, "student-queries-*.csv"))
	require.NoError(t, err)
	require.Len(t, matches, 1)
	data, err := os.ReadFile(matches[0])
	require.NoError(t, err)

	lines := strings.Split(string(data), "\n")
	require.Len(t, lines, 2)
	assert.Contains(t, lines[1], `"BTech; CSE"`)
}

func TestQueriesExportUsesConfiguredCommaReplacement(t *testing.T) {
	srv := fakeAPI(t)
	dir := t.TempDir()
	t.Setenv("EDUCTL_EXPORTS_CSV_COMMA_REPLACEMENT", " /")

	_, err := execute(t, "--api-url", srv.URL+"/api", "--username", "admin", "--password", "pw",
		"queries", "export", "--status", "new", "--out", dir)
	require.NoError(t, err)

	matches, err := filepath.Glob(filepath.Join(dir, "student-queries-*.csv"))
	require.NoError(t, err)
	require.Len(t, matches, 1)
	data, err := os.ReadFile(matches[0])
	require.NoError(t, err)
	assert.Contains(t, string(data), `"BTech / CSE"`)
}

func TestRendererFollowsConfig(t *testing.T) {
	flags := exportFlags{format: "csv"}
	r, err := flags.renderer("Student Queries", &config.Config{Exports: config.ExportsConfig{CommaReplacement: "|"}})
	require.NoError(t, err)
	csv, ok := r.(*export.CSVExporter)
	require.True(t, ok)
	assert.Equal(t, "|", csv.CommaReplacement)

	flags.format = "pdf"
	r, err = flags.renderer("Student Queries", &config.Config{})
	require.NoError(t, err)
	assert.Equal(t, "pdf", r.Extension())
}

func TestReportsExportRejectsUnknownScope(t *testing.T) {
	_, err := execute(t, "reports", "export", "--scope", "MAYBE")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown interest scope")
}

func TestExportRequiresCredentials(t *testing.T) {
	srv := fakeAPI(t)
	_, err := execute(t, "--api-url", srv.URL+"/api", "admissions", "export", "--out", t.TempDir())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "admin credentials required")
}

func TestExportRejectsUnknownFormat(t *testing.T) {
	_, err := execute(t, "queries", "export", "--format", "xlsx")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported format")
}

func TestSummaryPrintsTotals(t *testing.T) {
	srv := fakeAPI(t)
	out, err := execute(t, "--api-url", srv.URL+"/api", "--username", "admin", "--password", "pw", "summary")
	require.NoError(t, err)
	assert.Contains(t, out, "QUERIES")
	assert.Contains(t, out, "ADMISSIONS")
	assert.Contains(t, out, "1000.00")
}

func TestRootRegistersSubcommands(t *testing.T) {
	root := NewRootCommand(VersionInfo{Version: "1", Commit: "c"})
	root.AddCommand(NewQueriesCommand())
	cmd, _, err := root.Find([]string{"queries", "export"})
	require.NoError(t, err)
	assert.IsType(t, &cobra.Command{}, cmd)
	assert.Equal(t, "export", cmd.Name())
	assert.Equal(t, "1.c", root.Version)
}
