package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/tutorlink/tutorlink/internal/app/models"
	"github.com/tutorlink/tutorlink/internal/pkg/apperrors"
	"github.com/tutorlink/tutorlink/internal/pkg/dberrors"
)

// ISpecialUserRepository defines the interface for the registration allow-list
type ISpecialUserRepository interface {
	Create(ctx context.Context, specialUser *models.SpecialUser) error
	GetByEmail(ctx context.Context, email string) (*models.SpecialUser, error)
	GetAll(ctx context.Context) ([]*models.SpecialUser, error)
	Delete(ctx context.Context, id int64) error
}

// SpecialUserRepository handles allow-list database operations
type SpecialUserRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewSpecialUserRepository creates a new SpecialUserRepository
func NewSpecialUserRepository(db *pgxpool.Pool) *SpecialUserRepository {
	return &SpecialUserRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

// Create inserts a new allow-list entry
func (r *SpecialUserRepository) Create(ctx context.Context, specialUser *models.SpecialUser) error {
	sql, args, err := r.sb.Insert("special_users").
		Columns("email", "role_type").
		Values(specialUser.Email, specialUser.RoleType).
		Suffix("RETURNING id, created_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build create special user query: %w", err)
	}

	err = r.db.QueryRow(ctx, sql, args...).Scan(&specialUser.ID, &specialUser.CreatedAt)
	if err != nil {
		if dberrors.IsDuplicateConstraintError(err, "special_users_email_key") {
			return apperrors.NewConflictError("special user with this email already exists")
		}
		return fmt.Errorf("error creating special user: %w", err)
	}

	return nil
}

// GetByEmail retrieves an allow-list entry by email
func (r *SpecialUserRepository) GetByEmail(ctx context.Context, email string) (*models.SpecialUser, error) {
	var su models.SpecialUser
	err := r.db.QueryRow(ctx,
		`SELECT id, email, role_type, created_at FROM special_users WHERE email = $1`,
		email).Scan(&su.ID, &su.Email, &su.RoleType, &su.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrResourceNotFound
		}
		return nil, fmt.Errorf("error retrieving special user: %w", err)
	}

	return &su, nil
}

// GetAll retrieves every allow-list entry
func (r *SpecialUserRepository) GetAll(ctx context.Context) ([]*models.SpecialUser, error) {
	rows, err := r.db.Query(ctx, `SELECT id, email, role_type, created_at FROM special_users ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("error querying special users: %w", err)
	}
	defer rows.Close()

	var specialUsers []*models.SpecialUser
	for rows.Next() {
		var su models.SpecialUser
		if err := rows.Scan(&su.ID, &su.Email, &su.RoleType, &su.CreatedAt); err != nil {
			return nil, fmt.Errorf("error scanning special user row: %w", err)
		}
		specialUsers = append(specialUsers, &su)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating special user rows: %w", err)
	}

	return specialUsers, nil
}

// Delete removes an allow-list entry
func (r *SpecialUserRepository) Delete(ctx context.Context, id int64) error {
	cmdTag, err := r.db.Exec(ctx, `DELETE FROM special_users WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("error deleting special user: %w", err)
	}

	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrResourceNotFound
	}

	return nil
}
