package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/erasmus-advisor-api/internal/models"
)

// UniversityRepository handles persistence for university accounts.
type UniversityRepository struct {
	db *sqlx.DB
}

// NewUniversityRepository instantiates a university repository.
func NewUniversityRepository(db *sqlx.DB) *UniversityRepository {
	return &UniversityRepository{db: db}
}

const universityColumns = "id, name, email, password_hash, contact_person, phone, verified, last_login, created_at, updated_at"

// FindByEmail loads a university account by its institutional email.
func (r *UniversityRepository) FindByEmail(ctx context.Context, email string) (*models.University, error) {
	query := fmt.Sprintf(`SELECT %s FROM universities WHERE LOWER(email) = LOWER($1) LIMIT 1`, universityColumns)
	var uni models.University
	if err := r.db.GetContext(ctx, &uni, query, email); err != nil {
		return nil, err
	}
	return &uni, nil
}

// FindByName loads a university by its exact name, case-insensitively.
func (r *UniversityRepository) FindByName(ctx context.Context, name string) (*models.University, error) {
	query := fmt.Sprintf(`SELECT %s FROM universities WHERE LOWER(name) = LOWER($1) LIMIT 1`, universityColumns)
	var uni models.University
	if err := r.db.GetContext(ctx, &uni, query, name); err != nil {
		return nil, err
	}
	return &uni, nil
}

// Create inserts a new university account.
func (r *UniversityRepository) Create(ctx context.Context, uni *models.University) error {
	if uni.ID == "" {
		uni.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	if uni.CreatedAt.IsZero() {
		uni.CreatedAt = now
	}
	uni.UpdatedAt = now

	const query = `INSERT INTO universities (id, name, email, password_hash, contact_person, phone, verified, created_at, updated_at) VALUES (:id, :name, :email, :password_hash, :contact_person, :phone, :verified, :created_at, :updated_at)`
	if _, err := r.db.NamedExecContext(ctx, query, uni); err != nil {
		return fmt.Errorf("create university: %w", err)
	}
	return nil
}

// UpdateLastLogin stamps a successful authentication.
func (r *UniversityRepository) UpdateLastLogin(ctx context.Context, id string) error {
	if _, err := r.db.ExecContext(ctx, `UPDATE universities SET last_login = $1, updated_at = $1 WHERE id = $2`, time.Now().UTC(), id); err != nil {
		return fmt.Errorf("update last login: %w", err)
	}
	return nil
}

// ListWithActiveCall returns the names of universities that currently have
// an active call document.
func (r *UniversityRepository) ListWithActiveCall(ctx context.Context) ([]string, error) {
	const query = `SELECT DISTINCT u.name FROM universities u JOIN uploaded_documents d ON d.university_id = u.id WHERE d.document_type = 'call' AND d.active = TRUE ORDER BY u.name`
	var names []string
	if err := r.db.SelectContext(ctx, &names, query); err != nil {
		return nil, fmt.Errorf("list universities with active call: %w", err)
	}
	return names, nil
}
