package models

import (
	"testing"
	"time"

	"cloud.google.com/go/civil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/edu-advisor-api/pkg/records"
)

func TestQueryStatusValid(t *testing.T) {
	assert.True(t, QueryStatusContacted.Valid())
	assert.False(t, QueryStatus("archived").Valid())
}

func TestStudentQueryFields(t *testing.T) {
	q := StudentQuery{ID: "q1", Name: "Ravi", Phone: "9000000001", Status: QueryStatusNew}

	assert.Equal(t, "q1", records.Lookup(q, records.FieldID))
	assert.Equal(t, "new", records.Lookup(q, records.FieldStatus))
	_, ok := q.Field("unknown")
	assert.False(t, ok)
	_, ok = q.Instant(records.FieldCreatedAt)
	assert.False(t, ok)
}

func TestGroupReportsByConsultant(t *testing.T) {
	reports := []ConsultantReport{
		{ID: "1", ConsultantName: "Meera"},
		{ID: "2", ConsultantName: "Arun"},
		{ID: "3", ConsultantName: "Meera"},
	}

	grouped := GroupReportsByConsultant(reports)

	require.Len(t, grouped, 2)
	assert.Equal(t, "1", grouped["Meera"][0].ID)
	assert.Equal(t, "3", grouped["Meera"][1].ID)
}

func TestCallStatsAdd(t *testing.T) {
	var s CallStats
	s.Add(CallSuccessful, 3)
	s.Add(CallFailed, 1)
	s.Add(CallType("bogus"), 10)

	assert.Equal(t, 4, s.TotalCalls)
	assert.InDelta(t, 75.0, s.SuccessRate, 0.001)
}

func TestDateScan(t *testing.T) {
	var d Date
	require.NoError(t, d.Scan(time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)))
	assert.Equal(t, civil.Date{Year: 2025, Month: 3, Day: 10}, d.Date)

	require.NoError(t, d.Scan([]byte("2025-04-01T00:00:00Z")))
	assert.Equal(t, "2025-04-01", d.String())

	assert.Error(t, d.Scan(42))
	v, err := d.Value()
	require.NoError(t, err)
	assert.Equal(t, "2025-04-01", v)
}

func TestSummarizePayouts(t *testing.T) {
	s := SummarizePayouts([]Admission{
		{PayoutAmount: 5000, PayoutStatus: PayoutNotCredited},
		{PayoutAmount: 2500.5, PayoutStatus: PayoutReflected},
	})

	assert.Equal(t, 2, s.TotalAdmissions)
	assert.InDelta(t, 7500.5, s.TotalPayout, 0.001)
	assert.Equal(t, 0, s.ByStatus[PayoutCommission])
	assert.Equal(t, 1, s.ByStatus[PayoutReflected])
}

func TestExportJobParamsScan(t *testing.T) {
	var p ExportJobParams
	require.NoError(t, p.Scan([]byte(`{"format":"pdf","status":"new"}`)))
	assert.Equal(t, ExportFormatPDF, p.Format)
	assert.Equal(t, "new", p.Status)
	assert.Error(t, p.Scan(3))
	require.NoError(t, p.Scan(nil))
	assert.Equal(t, ExportJobParams{}, p)
}
