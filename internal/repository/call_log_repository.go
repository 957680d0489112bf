package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/edu-advisor-api/internal/models"
)

const callColumns = `id, consultant_id, consultant_name, call_type, student_name, contact_number, remarks, report_id, created_at`

const insertCallLog = `INSERT INTO call_logs (` + callColumns + `)
VALUES (:id, :consultant_id, :consultant_name, :call_type, :student_name, :contact_number, :remarks, :report_id, :created_at)`

// CallLogRepository persists consultant call outcomes.
type CallLogRepository struct {
	db *sqlx.DB
}

// NewCallLogRepository constructs the repository.
func NewCallLogRepository(db *sqlx.DB) *CallLogRepository {
	return &CallLogRepository{db: db}
}

// Create inserts a call log entry.
func (r *CallLogRepository) Create(ctx context.Context, call *models.CallLog) error {
	if call.ID == "" {
		call.ID = uuid.NewString()
	}
	call.CreatedAt = time.Now().UTC()
	if _, err := r.db.NamedExecContext(ctx, insertCallLog, call); err != nil {
		return fmt.Errorf("create call log: %w", err)
	}
	return nil
}

// ListByConsultant returns a consultant's calls, newest first.
func (r *CallLogRepository) ListByConsultant(ctx context.Context, consultantID string, limit int) ([]models.CallLog, error) {
	if limit <= 0 {
		limit = 500
	}
	query := `SELECT ` + callColumns + ` FROM call_logs WHERE consultant_id = $1 ORDER BY created_at DESC LIMIT $2`
	var out []models.CallLog
	if err := r.db.SelectContext(ctx, &out, query, consultantID, limit); err != nil {
		return nil, fmt.Errorf("list calls for consultant: %w", err)
	}
	return out, nil
}

// ListAll returns recent calls across consultants, newest first.
func (r *CallLogRepository) ListAll(ctx context.Context, limit int) ([]models.CallLog, error) {
	if limit <= 0 {
		limit = 1000
	}
	query := `SELECT ` + callColumns + ` FROM call_logs ORDER BY created_at DESC LIMIT $1`
	var out []models.CallLog
	if err := r.db.SelectContext(ctx, &out, query, limit); err != nil {
		return nil, fmt.Errorf("list calls: %w", err)
	}
	return out, nil
}

// CountByType aggregates calls per consultant and type. An empty
// consultantID aggregates every consultant.
func (r *CallLogRepository) CountByType(ctx context.Context, consultantID string) ([]models.CallTypeCount, error) {
	query := `SELECT consultant_id, MAX(consultant_name) AS consultant_name, call_type, COUNT(*) AS count FROM call_logs`
	args := []interface{}{}
	if consultantID != "" {
		query += ` WHERE consultant_id = $1`
		args = append(args, consultantID)
	}
	query += ` GROUP BY consultant_id, call_type ORDER BY consultant_id`
	var out []models.CallTypeCount
	if err := r.db.SelectContext(ctx, &out, query, args...); err != nil {
		return nil, fmt.Errorf("count calls by type: %w", err)
	}
	return out, nil
}

// DeleteScope removes calls inside the scope.
func (r *CallLogRepository) DeleteScope(ctx context.Context, scope DeleteScope) (int64, error) {
	where, args := scope.where("created_at", "consultant_id")
	res, err := r.db.ExecContext(ctx, `DELETE FROM call_logs`+where, args...)
	if err != nil {
		return 0, fmt.Errorf("bulk delete call logs: %w", err)
	}
	return res.RowsAffected()
}
