package repository

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/edu-advisor-api/internal/models"
)

func sampleReport() *models.ConsultantReport {
	return &models.ConsultantReport{
		ConsultantID:    "ravi",
		ConsultantName:  "Ravi",
		StudentName:     "Asha",
		ContactNumber:   "+919876543210",
		InstitutionName: "DPS",
		InterestScope:   models.InterestActive,
	}
}

func TestConsultantReportRepositoryCreateLogsCallInTransaction(t *testing.T) {
	db, mock, cleanup := newMockDB(t)
	defer cleanup()
	repo := NewConsultantReportRepository(db)

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO consultant_reports").WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectExec("INSERT INTO call_logs").
		WithArgs(sqlmock.AnyArg(), "ravi", "Ravi", models.CallSuccessful, "Asha", "+919876543210", "", sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectCommit()

	report := sampleReport()
	call := &models.CallLog{ConsultantID: "ravi", ConsultantName: "Ravi", CallType: models.CallSuccessful, StudentName: "Asha", ContactNumber: "+919876543210"}
	require.NoError(t, repo.Create(context.Background(), report, call))

	require.NotNil(t, call.ReportID)
	assert.Equal(t, report.ID, *call.ReportID)
	assert.Equal(t, report.CreatedAt, call.CreatedAt)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestConsultantReportRepositoryCreateRollsBackOnCallFailure(t *testing.T) {
	db, mock, cleanup := newMockDB(t)
	defer cleanup()
	repo := NewConsultantReportRepository(db)

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO consultant_reports").WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectExec("INSERT INTO call_logs").WillReturnError(errors.New("boom"))
	mock.ExpectRollback()

	err := repo.Create(context.Background(), sampleReport(), &models.CallLog{CallType: models.CallSuccessful})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "log report call")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestConsultantReportRepositoryListByConsultant(t *testing.T) {
	db, mock, cleanup := newMockDB(t)
	defer cleanup()
	repo := NewConsultantReportRepository(db)

	now := time.Now()
	rows := sqlmock.NewRows([]string{"id", "consultant_id", "consultant_name", "student_name", "contact_number", "institution_name", "competitive_exam_preference", "career_interest", "college_interest", "interest_scope", "other_remarks", "created_at", "updated_at"}).
		AddRow("r1", "ravi", "Ravi", "Asha", "+919876543210", "DPS", "JEE", "Engineering", "VIT", "ACTIVELY INTERESTED", "", now, now)
	mock.ExpectQuery(regexp.QuoteMeta("FROM consultant_reports WHERE consultant_id = $1 ORDER BY created_at DESC LIMIT $2")).
		WithArgs("ravi", 1000).
		WillReturnRows(rows)

	out, err := repo.ListByConsultant(context.Background(), "ravi", 0)
	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.Equal(t, models.InterestActive, out[0].InterestScope)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestConsultantReportRepositoryDeleteScope(t *testing.T) {
	db, mock, cleanup := newMockDB(t)
	defer cleanup()
	repo := NewConsultantReportRepository(db)

	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM consultant_reports WHERE consultant_id = $1")).
		WithArgs("ravi").
		WillReturnResult(sqlmock.NewResult(0, 3))

	n, err := repo.DeleteScope(context.Background(), DeleteScope{ConsultantID: "ravi"})
	require.NoError(t, err)
	assert.Equal(t, int64(3), n)
}
