package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/tutorlink/tutorlink/internal/app/models"
	"github.com/tutorlink/tutorlink/internal/pkg/apperrors"
)

// IBlogRepository defines the interface for blog persistence
type IBlogRepository interface {
	Create(ctx context.Context, blog *models.Blog) error
	GetByID(ctx context.Context, id int64) (*models.Blog, error)
	List(ctx context.Context, status *models.ModerationStatus, userID *int64, tag *string) ([]*models.Blog, error)
	Update(ctx context.Context, id int64, title string, tags []string) error
	UpdateStatus(ctx context.Context, id int64, status models.ModerationStatus) error
	Delete(ctx context.Context, id int64) error
	CountByStatus(ctx context.Context) (map[string]int64, error)
}

// BlogRepository handles blog database operations
type BlogRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewBlogRepository creates a new BlogRepository
func NewBlogRepository(db *pgxpool.Pool) *BlogRepository {
	return &BlogRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

const blogColumns = `id, user_id, title, path, tags, status, created_at, updated_at`

func scanBlog(row pgx.Row) (*models.Blog, error) {
	var b models.Blog
	err := row.Scan(
		&b.ID,
		&b.UserID,
		&b.Title,
		&b.Path,
		&b.Tags,
		&b.Status,
		&b.CreatedAt,
		&b.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &b, nil
}

// Create inserts a new blog in PENDING moderation state
func (r *BlogRepository) Create(ctx context.Context, blog *models.Blog) error {
	query := `
		INSERT INTO blogs (user_id, title, path, tags, status)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at, updated_at
	`

	tags := blog.Tags
	if tags == nil {
		tags = []string{}
	}

	err := r.db.QueryRow(ctx, query,
		blog.UserID,
		blog.Title,
		blog.Path,
		tags,
		models.ModerationStatusPending,
	).Scan(&blog.ID, &blog.CreatedAt, &blog.UpdatedAt)
	if err != nil {
		return fmt.Errorf("error creating blog: %w", err)
	}

	blog.Status = models.ModerationStatusPending
	return nil
}

// GetByID retrieves a blog by ID
func (r *BlogRepository) GetByID(ctx context.Context, id int64) (*models.Blog, error) {
	query := fmt.Sprintf(`SELECT %s FROM blogs WHERE id = $1`, blogColumns)

	blog, err := scanBlog(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrBlogNotFound
		}
		return nil, fmt.Errorf("error retrieving blog: %w", err)
	}

	return blog, nil
}

// List retrieves blogs with optional status, author and tag filters
func (r *BlogRepository) List(ctx context.Context, status *models.ModerationStatus, userID *int64, tag *string) ([]*models.Blog, error) {
	builder := r.sb.Select(blogColumns).
		From("blogs").
		OrderBy("created_at DESC")

	if status != nil {
		builder = builder.Where(squirrel.Eq{"status": *status})
	}
	if userID != nil {
		builder = builder.Where(squirrel.Eq{"user_id": *userID})
	}
	if tag != nil {
		builder = builder.Where(`? = ANY(tags)`, *tag)
	}

	sql, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build list blogs query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("error querying blogs: %w", err)
	}
	defer rows.Close()

	var blogs []*models.Blog
	for rows.Next() {
		blog, err := scanBlog(rows)
		if err != nil {
			return nil, fmt.Errorf("error scanning blog row: %w", err)
		}
		blogs = append(blogs, blog)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating blog rows: %w", err)
	}

	return blogs, nil
}

// Update changes a blog's title and tags. Edits send the blog back through
// moderation.
func (r *BlogRepository) Update(ctx context.Context, id int64, title string, tags []string) error {
	if tags == nil {
		tags = []string{}
	}

	cmdTag, err := r.db.Exec(ctx,
		`UPDATE blogs SET title = $1, tags = $2, status = $3, updated_at = $4 WHERE id = $5`,
		title, tags, models.ModerationStatusPending, time.Now(), id)
	if err != nil {
		return fmt.Errorf("error updating blog: %w", err)
	}

	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrBlogNotFound
	}

	return nil
}

// UpdateStatus sets a blog's moderation status
func (r *BlogRepository) UpdateStatus(ctx context.Context, id int64, status models.ModerationStatus) error {
	cmdTag, err := r.db.Exec(ctx,
		`UPDATE blogs SET status = $1, updated_at = $2 WHERE id = $3`,
		status, time.Now(), id)
	if err != nil {
		return fmt.Errorf("error updating blog status: %w", err)
	}

	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrBlogNotFound
	}

	return nil
}

// Delete removes a blog and its comments
func (r *BlogRepository) Delete(ctx context.Context, id int64) error {
	cmdTag, err := r.db.Exec(ctx, `DELETE FROM blogs WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("error deleting blog: %w", err)
	}

	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrBlogNotFound
	}

	return nil
}

// CountByStatus returns blog counts grouped by moderation status
func (r *BlogRepository) CountByStatus(ctx context.Context) (map[string]int64, error) {
	rows, err := r.db.Query(ctx, `SELECT status, COUNT(*) FROM blogs GROUP BY status`)
	if err != nil {
		return nil, fmt.Errorf("error counting blogs: %w", err)
	}
	defer rows.Close()

	counts := make(map[string]int64)
	for rows.Next() {
		var status string
		var count int64
		if err := rows.Scan(&status, &count); err != nil {
			return nil, fmt.Errorf("error scanning blog count row: %w", err)
		}
		counts[status] = count
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating blog count rows: %w", err)
	}

	return counts, nil
}
