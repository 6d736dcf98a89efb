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
)

// ICommentRepository defines the interface for blog comment persistence
type ICommentRepository interface {
	Create(ctx context.Context, comment *models.Comment) error
	GetByID(ctx context.Context, id int64) (*models.Comment, error)
	ListByBlog(ctx context.Context, blogID int64, status *models.ModerationStatus) ([]*models.Comment, error)
	UpdateStatus(ctx context.Context, id int64, status models.ModerationStatus) error
	Delete(ctx context.Context, id int64) error
}

// CommentRepository handles blog comment database operations
type CommentRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewCommentRepository creates a new CommentRepository
func NewCommentRepository(db *pgxpool.Pool) *CommentRepository {
	return &CommentRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

// Create inserts a new comment in PENDING moderation state
func (r *CommentRepository) Create(ctx context.Context, comment *models.Comment) error {
	query := `
		INSERT INTO comments (blog_id, user_id, content, status)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at
	`

	err := r.db.QueryRow(ctx, query,
		comment.BlogID,
		comment.UserID,
		comment.Content,
		models.ModerationStatusPending,
	).Scan(&comment.ID, &comment.CreatedAt)
	if err != nil {
		return fmt.Errorf("error creating comment: %w", err)
	}

	comment.Status = models.ModerationStatusPending
	return nil
}

// GetByID retrieves a comment by ID
func (r *CommentRepository) GetByID(ctx context.Context, id int64) (*models.Comment, error) {
	var c models.Comment
	err := r.db.QueryRow(ctx,
		`SELECT id, blog_id, user_id, content, status, created_at FROM comments WHERE id = $1`,
		id).Scan(&c.ID, &c.BlogID, &c.UserID, &c.Content, &c.Status, &c.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrCommentNotFound
		}
		return nil, fmt.Errorf("error retrieving comment: %w", err)
	}
	return &c, nil
}

// ListByBlog retrieves a blog's comments oldest first, optionally filtered
// by moderation status
func (r *CommentRepository) ListByBlog(ctx context.Context, blogID int64, status *models.ModerationStatus) ([]*models.Comment, error) {
	builder := r.sb.Select("id", "blog_id", "user_id", "content", "status", "created_at").
		From("comments").
		Where(squirrel.Eq{"blog_id": blogID}).
		OrderBy("created_at ASC")

	if status != nil {
		builder = builder.Where(squirrel.Eq{"status": *status})
	}

	sql, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build list comments query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("error querying comments: %w", err)
	}
	defer rows.Close()

	var comments []*models.Comment
	for rows.Next() {
		var c models.Comment
		if err := rows.Scan(&c.ID, &c.BlogID, &c.UserID, &c.Content, &c.Status, &c.CreatedAt); err != nil {
			return nil, fmt.Errorf("error scanning comment row: %w", err)
		}
		comments = append(comments, &c)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating comment rows: %w", err)
	}

	return comments, nil
}

// UpdateStatus sets a comment's moderation status
func (r *CommentRepository) UpdateStatus(ctx context.Context, id int64, status models.ModerationStatus) error {
	cmdTag, err := r.db.Exec(ctx,
		`UPDATE comments SET status = $1 WHERE id = $2`, status, id)
	if err != nil {
		return fmt.Errorf("error updating comment status: %w", err)
	}

	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrCommentNotFound
	}

	return nil
}

// Delete removes a comment
func (r *CommentRepository) Delete(ctx context.Context, id int64) error {
	cmdTag, err := r.db.Exec(ctx, `DELETE FROM comments WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("error deleting comment: %w", err)
	}

	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrCommentNotFound
	}

	return nil
}
