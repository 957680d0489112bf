package repository

import (
	"context"
	"database/sql"
	"regexp"
	"testing"
	"time"

	"cloud.google.com/go/civil"
	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/edu-advisor-api/internal/models"
)

var admissionRowColumns = []string{"id", "student_name", "course", "college", "admission_date", "consultant_id", "consultant_name", "payout_amount", "payout_status", "created_at", "updated_at"}

func TestAdmissionRepositoryCreateDefaultsPayoutStatus(t *testing.T) {
	db, mock, cleanup := newMockDB(t)
	defer cleanup()
	repo := NewAdmissionRepository(db)

	mock.ExpectExec("INSERT INTO admissions").
		WithArgs(sqlmock.AnyArg(), "Asha", "CSE", "VIT", "2025-03-10", "ravi", "Ravi", 25000.0, models.PayoutNotCredited, sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(1, 1))

	a := &models.Admission{
		StudentName:    "Asha",
		Course:         "CSE",
		College:        "VIT",
		AdmissionDate:  models.NewDate(civil.Date{Year: 2025, Month: time.March, Day: 10}),
		ConsultantID:   "ravi",
		ConsultantName: "Ravi",
		PayoutAmount:   25000,
	}
	require.NoError(t, repo.Create(context.Background(), a))
	assert.Equal(t, models.PayoutNotCredited, a.PayoutStatus)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAdmissionRepositoryListByConsultantScansDates(t *testing.T) {
	db, mock, cleanup := newMockDB(t)
	defer cleanup()
	repo := NewAdmissionRepository(db)

	now := time.Now()
	rows := sqlmock.NewRows(admissionRowColumns).
		AddRow("a1", "Asha", "CSE", "VIT", time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC), "ravi", "Ravi", 25000.0, "PAYOUT REFLECTED", now, now)
	mock.ExpectQuery(regexp.QuoteMeta("FROM admissions WHERE consultant_id = $1")).
		WithArgs("ravi").
		WillReturnRows(rows)

	out, err := repo.ListByConsultant(context.Background(), "ravi")
	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.Equal(t, "2025-03-10", out[0].AdmissionDate.String())
	assert.Equal(t, models.PayoutReflected, out[0].PayoutStatus)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAdmissionRepositoryUpdateMissing(t *testing.T) {
	db, mock, cleanup := newMockDB(t)
	defer cleanup()
	repo := NewAdmissionRepository(db)

	mock.ExpectExec("UPDATE admissions SET").WillReturnResult(sqlmock.NewResult(0, 0))

	a := &models.Admission{ID: "a9", AdmissionDate: models.NewDate(civil.Date{Year: 2025, Month: time.March, Day: 10}), PayoutStatus: models.PayoutReflected}
	assert.ErrorIs(t, repo.Update(context.Background(), a), sql.ErrNoRows)
}
