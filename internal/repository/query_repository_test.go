package repository

import (
	"context"
	"database/sql"
	"regexp"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/edu-advisor-api/internal/models"
)

var queryRowColumns = []string{"id", "name", "phone", "email", "current_institution", "course", "message", "status", "created_at", "updated_at"}

func TestQueryRepositoryListDefaultsLimit(t *testing.T) {
	db, mock, cleanup := newMockDB(t)
	defer cleanup()
	repo := NewQueryRepository(db)

	now := time.Now()
	rows := sqlmock.NewRows(queryRowColumns).
		AddRow("q1", "Asha", "+919876543210", "asha@example.com", "DPS", "CSE", "hi", "new", now, now)
	mock.ExpectQuery(regexp.QuoteMeta("SELECT " + queryColumns + " FROM student_queries ORDER BY created_at DESC LIMIT $1")).
		WithArgs(1000).
		WillReturnRows(rows)

	out, err := repo.List(context.Background(), 0)
	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.Equal(t, models.QueryStatusNew, out[0].Status)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestQueryRepositoryCreateAssignsDefaults(t *testing.T) {
	db, mock, cleanup := newMockDB(t)
	defer cleanup()
	repo := NewQueryRepository(db)

	mock.ExpectExec("INSERT INTO student_queries").
		WithArgs(sqlmock.AnyArg(), "Asha", "+919876543210", "asha@example.com", "DPS", "CSE", "hi", models.QueryStatusNew, sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(1, 1))

	q := &models.StudentQuery{Name: "Asha", Phone: "+919876543210", Email: "asha@example.com", CurrentInstitution: "DPS", Course: "CSE", Message: "hi"}
	require.NoError(t, repo.Create(context.Background(), q))
	assert.NotEmpty(t, q.ID)
	assert.Equal(t, models.QueryStatusNew, q.Status)
	assert.Equal(t, time.UTC, q.CreatedAt.Location())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestQueryRepositoryUpdateStatusMissing(t *testing.T) {
	db, mock, cleanup := newMockDB(t)
	defer cleanup()
	repo := NewQueryRepository(db)

	mock.ExpectExec(regexp.QuoteMeta("UPDATE student_queries SET status = $1, updated_at = $2 WHERE id = $3")).
		WithArgs(models.QueryStatusClosed, sqlmock.AnyArg(), "missing").
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.UpdateStatus(context.Background(), "missing", models.QueryStatusClosed)
	assert.ErrorIs(t, err, sql.ErrNoRows)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestQueryRepositoryFindByIDNotFound(t *testing.T) {
	db, mock, cleanup := newMockDB(t)
	defer cleanup()
	repo := NewQueryRepository(db)

	mock.ExpectQuery("FROM student_queries WHERE id = \\$1").
		WithArgs("q9").
		WillReturnError(sql.ErrNoRows)

	_, err := repo.FindByID(context.Background(), "q9")
	assert.ErrorIs(t, err, sql.ErrNoRows)
}

func TestQueryRepositoryDeleteScopeIgnoresConsultant(t *testing.T) {
	db, mock, cleanup := newMockDB(t)
	defer cleanup()
	repo := NewQueryRepository(db)

	from := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)
	until := from.AddDate(0, 0, 2)
	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM student_queries WHERE created_at >= $1 AND created_at < $2")).
		WithArgs(from, until).
		WillReturnResult(sqlmock.NewResult(0, 4))

	n, err := repo.DeleteScope(context.Background(), DeleteScope{ConsultantID: "c1", From: &from, Until: &until})
	require.NoError(t, err)
	assert.Equal(t, int64(4), n)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDeleteScopeWhere(t *testing.T) {
	from := time.Date(2025, 3, 1, 0, 0, 0, 0, time.FixedZone("IST", 19800))

	where, args := DeleteScope{}.where("created_at", "consultant_id")
	assert.Empty(t, where)
	assert.Empty(t, args)

	where, args = DeleteScope{ConsultantID: "c1", From: &from}.where("created_at", "consultant_id")
	assert.Equal(t, " WHERE consultant_id = $1 AND created_at >= $2", where)
	require.Len(t, args, 2)
	assert.Equal(t, time.UTC, args[1].(time.Time).Location())
}
