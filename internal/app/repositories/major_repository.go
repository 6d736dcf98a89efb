package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/tutorlink/tutorlink/internal/app/models"
	"github.com/tutorlink/tutorlink/internal/pkg/apperrors"
	"github.com/tutorlink/tutorlink/internal/pkg/dberrors"
)

// IMajorRepository defines the interface for major persistence
type IMajorRepository interface {
	Create(ctx context.Context, major *models.Major) error
	GetByID(ctx context.Context, id int64) (*models.Major, error)
	GetAll(ctx context.Context) ([]*models.Major, error)
	Update(ctx context.Context, id int64, name, description string) error
	Delete(ctx context.Context, id int64) error
}

// MajorRepository handles major database operations
type MajorRepository struct {
	db *pgxpool.Pool
}

// NewMajorRepository creates a new MajorRepository
func NewMajorRepository(db *pgxpool.Pool) *MajorRepository {
	return &MajorRepository{db: db}
}

// Create inserts a new major
func (r *MajorRepository) Create(ctx context.Context, major *models.Major) error {
	err := r.db.QueryRow(ctx,
		`INSERT INTO majors (name, description) VALUES ($1, $2) RETURNING id, created_at`,
		major.Name, major.Description).Scan(&major.ID, &major.CreatedAt)
	if err != nil {
		if dberrors.IsDuplicateConstraintError(err, "majors_name_key") {
			return apperrors.ErrMajorAlreadyExists
		}
		return fmt.Errorf("error creating major: %w", err)
	}
	return nil
}

// GetByID retrieves a major by ID
func (r *MajorRepository) GetByID(ctx context.Context, id int64) (*models.Major, error) {
	var m models.Major
	err := r.db.QueryRow(ctx,
		`SELECT id, name, description, created_at FROM majors WHERE id = $1`,
		id).Scan(&m.ID, &m.Name, &m.Description, &m.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrMajorNotFound
		}
		return nil, fmt.Errorf("error retrieving major: %w", err)
	}
	return &m, nil
}

// GetAll retrieves every major ordered by name
func (r *MajorRepository) GetAll(ctx context.Context) ([]*models.Major, error) {
	rows, err := r.db.Query(ctx, `SELECT id, name, description, created_at FROM majors ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("error querying majors: %w", err)
	}
	defer rows.Close()

	var majors []*models.Major
	for rows.Next() {
		var m models.Major
		if err := rows.Scan(&m.ID, &m.Name, &m.Description, &m.CreatedAt); err != nil {
			return nil, fmt.Errorf("error scanning major row: %w", err)
		}
		majors = append(majors, &m)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating major rows: %w", err)
	}

	return majors, nil
}

// Update changes a major's name and description
func (r *MajorRepository) Update(ctx context.Context, id int64, name, description string) error {
	cmdTag, err := r.db.Exec(ctx,
		`UPDATE majors SET name = $1, description = $2 WHERE id = $3`,
		name, description, id)
	if err != nil {
		if dberrors.IsDuplicateConstraintError(err, "majors_name_key") {
			return apperrors.ErrMajorAlreadyExists
		}
		return fmt.Errorf("error updating major: %w", err)
	}

	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrMajorNotFound
	}

	return nil
}

// Delete removes a major
func (r *MajorRepository) Delete(ctx context.Context, id int64) error {
	cmdTag, err := r.db.Exec(ctx, `DELETE FROM majors WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("error deleting major: %w", err)
	}

	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrMajorNotFound
	}

	return nil
}
