package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/edu-advisor-api/internal/models"
)

const consultantColumns = `user_id, name, password_hash, active, created_at, updated_at`

// ConsultantRepository persists consultant accounts.
type ConsultantRepository struct {
	db *sqlx.DB
}

// NewConsultantRepository constructs the repository.
func NewConsultantRepository(db *sqlx.DB) *ConsultantRepository {
	return &ConsultantRepository{db: db}
}

// FindByID returns the consultant with the given user id.
func (r *ConsultantRepository) FindByID(ctx context.Context, userID string) (*models.Consultant, error) {
	query := `SELECT ` + consultantColumns + ` FROM consultants WHERE user_id = $1`
	var c models.Consultant
	if err := r.db.GetContext(ctx, &c, query, userID); err != nil {
		return nil, err
	}
	return &c, nil
}

// List returns every consultant ordered by name.
func (r *ConsultantRepository) List(ctx context.Context) ([]models.Consultant, error) {
	query := `SELECT ` + consultantColumns + ` FROM consultants ORDER BY name ASC`
	var out []models.Consultant
	if err := r.db.SelectContext(ctx, &out, query); err != nil {
		return nil, fmt.Errorf("list consultants: %w", err)
	}
	return out, nil
}

// Create inserts a consultant.
func (r *ConsultantRepository) Create(ctx context.Context, c *models.Consultant) error {
	now := time.Now().UTC()
	c.CreatedAt = now
	c.UpdatedAt = now
	const query = `INSERT INTO consultants (user_id, name, password_hash, active, created_at, updated_at)
VALUES (:user_id, :name, :password_hash, :active, :created_at, :updated_at)`
	if _, err := r.db.NamedExecContext(ctx, query, c); err != nil {
		return fmt.Errorf("create consultant: %w", err)
	}
	return nil
}

// Update persists name, password hash and active flag.
func (r *ConsultantRepository) Update(ctx context.Context, c *models.Consultant) error {
	c.UpdatedAt = time.Now().UTC()
	const query = `UPDATE consultants SET name = :name, password_hash = :password_hash, active = :active, updated_at = :updated_at WHERE user_id = :user_id`
	res, err := r.db.NamedExecContext(ctx, query, c)
	if err != nil {
		return fmt.Errorf("update consultant: %w", err)
	}
	return expectAffected(res)
}

// Delete removes a consultant account. Their reports and calls are kept.
func (r *ConsultantRepository) Delete(ctx context.Context, userID string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM consultants WHERE user_id = $1`, userID)
	if err != nil {
		return fmt.Errorf("delete consultant: %w", err)
	}
	return expectAffected(res)
}
