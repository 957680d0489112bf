package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/edu-advisor-api/internal/models"
)

const reportColumns = `id, consultant_id, consultant_name, student_name, contact_number, institution_name, competitive_exam_preference, career_interest, college_interest, interest_scope, other_remarks, created_at, updated_at`

// ConsultantReportRepository persists daily calling reports.
type ConsultantReportRepository struct {
	db *sqlx.DB
}

// NewConsultantReportRepository constructs the repository.
func NewConsultantReportRepository(db *sqlx.DB) *ConsultantReportRepository {
	return &ConsultantReportRepository{db: db}
}

// Create inserts a report and, when call is non-nil, the matching call log
// entry in the same transaction.
func (r *ConsultantReportRepository) Create(ctx context.Context, report *models.ConsultantReport, call *models.CallLog) error {
	if report.ID == "" {
		report.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	report.CreatedAt = now
	report.UpdatedAt = now

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin report tx: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck

	const insertReport = `INSERT INTO consultant_reports (` + reportColumns + `)
VALUES (:id, :consultant_id, :consultant_name, :student_name, :contact_number, :institution_name, :competitive_exam_preference, :career_interest, :college_interest, :interest_scope, :other_remarks, :created_at, :updated_at)`
	if _, err := tx.NamedExecContext(ctx, insertReport, report); err != nil {
		return fmt.Errorf("create consultant report: %w", err)
	}

	if call != nil {
		if call.ID == "" {
			call.ID = uuid.NewString()
		}
		call.ReportID = &report.ID
		call.CreatedAt = now
		if _, err := tx.NamedExecContext(ctx, insertCallLog, call); err != nil {
			return fmt.Errorf("log report call: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit report tx: %w", err)
	}
	return nil
}

// ListAll returns the most recent reports across consultants, newest first.
func (r *ConsultantReportRepository) ListAll(ctx context.Context, limit int) ([]models.ConsultantReport, error) {
	if limit <= 0 {
		limit = 1000
	}
	query := `SELECT ` + reportColumns + ` FROM consultant_reports ORDER BY created_at DESC LIMIT $1`
	var out []models.ConsultantReport
	if err := r.db.SelectContext(ctx, &out, query, limit); err != nil {
		return nil, fmt.Errorf("list consultant reports: %w", err)
	}
	return out, nil
}

// ListByConsultant returns one consultant's reports, newest first.
func (r *ConsultantReportRepository) ListByConsultant(ctx context.Context, consultantID string, limit int) ([]models.ConsultantReport, error) {
	if limit <= 0 {
		limit = 1000
	}
	query := `SELECT ` + reportColumns + ` FROM consultant_reports WHERE consultant_id = $1 ORDER BY created_at DESC LIMIT $2`
	var out []models.ConsultantReport
	if err := r.db.SelectContext(ctx, &out, query, consultantID, limit); err != nil {
		return nil, fmt.Errorf("list reports for consultant: %w", err)
	}
	return out, nil
}

// Delete removes one report. Missing rows yield sql.ErrNoRows.
func (r *ConsultantReportRepository) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM consultant_reports WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete consultant report: %w", err)
	}
	return expectAffected(res)
}

// DeleteScope removes reports inside the scope.
func (r *ConsultantReportRepository) DeleteScope(ctx context.Context, scope DeleteScope) (int64, error) {
	where, args := scope.where("created_at", "consultant_id")
	res, err := r.db.ExecContext(ctx, `DELETE FROM consultant_reports`+where, args...)
	if err != nil {
		return 0, fmt.Errorf("bulk delete consultant reports: %w", err)
	}
	return res.RowsAffected()
}
