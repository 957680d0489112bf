package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/edu-advisor-api/internal/models"
)

const queryColumns = `id, name, phone, email, current_institution, course, message, status, created_at, updated_at`

// QueryRepository persists student enquiries.
type QueryRepository struct {
	db *sqlx.DB
}

// NewQueryRepository constructs the repository.
func NewQueryRepository(db *sqlx.DB) *QueryRepository {
	return &QueryRepository{db: db}
}

// List returns the most recent enquiries, newest first.
func (r *QueryRepository) List(ctx context.Context, limit int) ([]models.StudentQuery, error) {
	if limit <= 0 {
		limit = 1000
	}
	query := `SELECT ` + queryColumns + ` FROM student_queries ORDER BY created_at DESC LIMIT $1`
	var out []models.StudentQuery
	if err := r.db.SelectContext(ctx, &out, query, limit); err != nil {
		return nil, fmt.Errorf("list student queries: %w", err)
	}
	return out, nil
}

// FindByID returns one enquiry.
func (r *QueryRepository) FindByID(ctx context.Context, id string) (*models.StudentQuery, error) {
	query := `SELECT ` + queryColumns + ` FROM student_queries WHERE id = $1`
	var q models.StudentQuery
	if err := r.db.GetContext(ctx, &q, query, id); err != nil {
		return nil, err
	}
	return &q, nil
}

// Create inserts a new enquiry with generated defaults.
func (r *QueryRepository) Create(ctx context.Context, q *models.StudentQuery) error {
	if q.ID == "" {
		q.ID = uuid.NewString()
	}
	if q.Status == "" {
		q.Status = models.QueryStatusNew
	}
	now := time.Now().UTC()
	q.CreatedAt = now
	q.UpdatedAt = now
	const query = `INSERT INTO student_queries (id, name, phone, email, current_institution, course, message, status, created_at, updated_at)
VALUES (:id, :name, :phone, :email, :current_institution, :course, :message, :status, :created_at, :updated_at)`
	if _, err := r.db.NamedExecContext(ctx, query, q); err != nil {
		return fmt.Errorf("create student query: %w", err)
	}
	return nil
}

// UpdateStatus sets the status of one enquiry. Missing rows yield sql.ErrNoRows.
func (r *QueryRepository) UpdateStatus(ctx context.Context, id string, status models.QueryStatus) error {
	const query = `UPDATE student_queries SET status = $1, updated_at = $2 WHERE id = $3`
	res, err := r.db.ExecContext(ctx, query, status, time.Now().UTC(), id)
	if err != nil {
		return fmt.Errorf("update student query status: %w", err)
	}
	return expectAffected(res)
}

// Delete removes one enquiry. Missing rows yield sql.ErrNoRows.
func (r *QueryRepository) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM student_queries WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete student query: %w", err)
	}
	return expectAffected(res)
}

// DeleteScope removes enquiries created inside the scope. Enquiries have no
// consultant, so ConsultantID is ignored.
func (r *QueryRepository) DeleteScope(ctx context.Context, scope DeleteScope) (int64, error) {
	where, args := scope.where("created_at", "")
	res, err := r.db.ExecContext(ctx, `DELETE FROM student_queries`+where, args...)
	if err != nil {
		return 0, fmt.Errorf("bulk delete student queries: %w", err)
	}
	return res.RowsAffected()
}

func expectAffected(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if n == 0 {
		return sql.ErrNoRows
	}
	return nil
}
