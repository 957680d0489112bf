package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/edu-advisor-api/internal/models"
)

const admissionColumns = `id, student_name, course, college, admission_date, consultant_id, consultant_name, payout_amount, payout_status, created_at, updated_at`

// AdmissionRepository persists referral admissions.
type AdmissionRepository struct {
	db *sqlx.DB
}

// NewAdmissionRepository constructs the repository.
func NewAdmissionRepository(db *sqlx.DB) *AdmissionRepository {
	return &AdmissionRepository{db: db}
}

// List returns admissions ordered by admission date, newest first.
func (r *AdmissionRepository) List(ctx context.Context) ([]models.Admission, error) {
	query := `SELECT ` + admissionColumns + ` FROM admissions ORDER BY admission_date DESC, created_at DESC`
	var out []models.Admission
	if err := r.db.SelectContext(ctx, &out, query); err != nil {
		return nil, fmt.Errorf("list admissions: %w", err)
	}
	return out, nil
}

// ListByConsultant returns one consultant's admissions.
func (r *AdmissionRepository) ListByConsultant(ctx context.Context, consultantID string) ([]models.Admission, error) {
	query := `SELECT ` + admissionColumns + ` FROM admissions WHERE consultant_id = $1 ORDER BY admission_date DESC, created_at DESC`
	var out []models.Admission
	if err := r.db.SelectContext(ctx, &out, query, consultantID); err != nil {
		return nil, fmt.Errorf("list admissions for consultant: %w", err)
	}
	return out, nil
}

// FindByID returns one admission.
func (r *AdmissionRepository) FindByID(ctx context.Context, id string) (*models.Admission, error) {
	query := `SELECT ` + admissionColumns + ` FROM admissions WHERE id = $1`
	var a models.Admission
	if err := r.db.GetContext(ctx, &a, query, id); err != nil {
		return nil, err
	}
	return &a, nil
}

// Create inserts an admission with generated defaults.
func (r *AdmissionRepository) Create(ctx context.Context, a *models.Admission) error {
	if a.ID == "" {
		a.ID = uuid.NewString()
	}
	if a.PayoutStatus == "" {
		a.PayoutStatus = models.PayoutNotCredited
	}
	now := time.Now().UTC()
	a.CreatedAt = now
	a.UpdatedAt = now
	const query = `INSERT INTO admissions (` + admissionColumns + `)
VALUES (:id, :student_name, :course, :college, :admission_date, :consultant_id, :consultant_name, :payout_amount, :payout_status, :created_at, :updated_at)`
	if _, err := r.db.NamedExecContext(ctx, query, a); err != nil {
		return fmt.Errorf("create admission: %w", err)
	}
	return nil
}

// Update persists every mutable column of an admission.
func (r *AdmissionRepository) Update(ctx context.Context, a *models.Admission) error {
	a.UpdatedAt = time.Now().UTC()
	const query = `UPDATE admissions SET student_name = :student_name, course = :course, college = :college, admission_date = :admission_date,
consultant_id = :consultant_id, consultant_name = :consultant_name, payout_amount = :payout_amount, payout_status = :payout_status, updated_at = :updated_at
WHERE id = :id`
	res, err := r.db.NamedExecContext(ctx, query, a)
	if err != nil {
		return fmt.Errorf("update admission: %w", err)
	}
	return expectAffected(res)
}

// Delete removes one admission. Missing rows yield sql.ErrNoRows.
func (r *AdmissionRepository) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM admissions WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete admission: %w", err)
	}
	return expectAffected(res)
}

// DeleteScope removes admissions recorded inside the scope.
func (r *AdmissionRepository) DeleteScope(ctx context.Context, scope DeleteScope) (int64, error) {
	where, args := scope.where("created_at", "consultant_id")
	res, err := r.db.ExecContext(ctx, `DELETE FROM admissions`+where, args...)
	if err != nil {
		return 0, fmt.Errorf("bulk delete admissions: %w", err)
	}
	return res.RowsAffected()
}
