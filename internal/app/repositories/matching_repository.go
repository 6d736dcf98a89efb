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

// IMatchingRepository defines the interface for matching request and
// matching persistence
type IMatchingRepository interface {
	CreateRequest(ctx context.Context, request *models.MatchingRequest) error
	GetRequestByID(ctx context.Context, id int64) (*models.MatchingRequest, error)
	ListRequests(ctx context.Context, studentID *int64, status *models.RequestStatus) ([]*models.MatchingRequest, error)
	UpdateRequestStatus(ctx context.Context, id int64, status models.RequestStatus, staffID int64) error
	HasPendingRequest(ctx context.Context, studentID, tutorID int64) (bool, error)
	CreateMatching(ctx context.Context, matching *models.Matching) error
	ListMatchings(ctx context.Context, userID *int64) ([]*models.Matching, error)
	CountRequestsByStatus(ctx context.Context) (map[string]int64, error)
	CountMatchings(ctx context.Context) (int64, error)
}

// MatchingRepository handles matching workflow database operations
type MatchingRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewMatchingRepository creates a new MatchingRepository
func NewMatchingRepository(db *pgxpool.Pool) *MatchingRepository {
	return &MatchingRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

const matchingRequestColumns = `id, student_id, tutor_id, status, staff_id, created_at, updated_at`

func scanMatchingRequest(row pgx.Row) (*models.MatchingRequest, error) {
	var mr models.MatchingRequest
	err := row.Scan(
		&mr.ID,
		&mr.StudentID,
		&mr.TutorID,
		&mr.Status,
		&mr.StaffID,
		&mr.CreatedAt,
		&mr.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &mr, nil
}

// CreateRequest inserts a new matching request in PENDING state
func (r *MatchingRepository) CreateRequest(ctx context.Context, request *models.MatchingRequest) error {
	query := `
		INSERT INTO matching_requests (student_id, tutor_id, status)
		VALUES ($1, $2, $3)
		RETURNING id, created_at, updated_at
	`

	err := r.db.QueryRow(ctx, query,
		request.StudentID,
		request.TutorID,
		models.RequestStatusPending,
	).Scan(&request.ID, &request.CreatedAt, &request.UpdatedAt)
	if err != nil {
		return fmt.Errorf("error creating matching request: %w", err)
	}

	request.Status = models.RequestStatusPending
	return nil
}

// GetRequestByID retrieves a matching request by ID
func (r *MatchingRepository) GetRequestByID(ctx context.Context, id int64) (*models.MatchingRequest, error) {
	query := fmt.Sprintf(`SELECT %s FROM matching_requests WHERE id = $1`, matchingRequestColumns)

	request, err := scanMatchingRequest(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrMatchingRequestNotFound
		}
		return nil, fmt.Errorf("error retrieving matching request: %w", err)
	}

	return request, nil
}

// ListRequests retrieves matching requests, optionally filtered by student
// and status
func (r *MatchingRepository) ListRequests(ctx context.Context, studentID *int64, status *models.RequestStatus) ([]*models.MatchingRequest, error) {
	builder := r.sb.Select(matchingRequestColumns).
		From("matching_requests").
		OrderBy("created_at DESC")

	if studentID != nil {
		builder = builder.Where(squirrel.Eq{"student_id": *studentID})
	}
	if status != nil {
		builder = builder.Where(squirrel.Eq{"status": *status})
	}

	sql, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build list matching requests query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("error querying matching requests: %w", err)
	}
	defer rows.Close()

	var requests []*models.MatchingRequest
	for rows.Next() {
		request, err := scanMatchingRequest(rows)
		if err != nil {
			return nil, fmt.Errorf("error scanning matching request row: %w", err)
		}
		requests = append(requests, request)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating matching request rows: %w", err)
	}

	return requests, nil
}

// UpdateRequestStatus transitions a PENDING request to a decided state and
// records the deciding staff member. Zero rows affected means the request
// either does not exist or was already decided.
func (r *MatchingRepository) UpdateRequestStatus(ctx context.Context, id int64, status models.RequestStatus, staffID int64) error {
	cmdTag, err := r.db.Exec(ctx,
		`UPDATE matching_requests
		 SET status = $1, staff_id = $2, updated_at = $3
		 WHERE id = $4 AND status = $5`,
		status, staffID, time.Now(), id, models.RequestStatusPending)
	if err != nil {
		return fmt.Errorf("error updating matching request status: %w", err)
	}

	if cmdTag.RowsAffected() == 0 {
		var exists bool
		if err := r.db.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM matching_requests WHERE id = $1)`, id).Scan(&exists); err != nil {
			return fmt.Errorf("error verifying matching request: %w", err)
		}
		if !exists {
			return apperrors.ErrMatchingRequestNotFound
		}
		return apperrors.ErrRequestAlreadyDecided
	}

	return nil
}

// HasPendingRequest reports whether a student already has a pending request
// toward the given tutor
func (r *MatchingRepository) HasPendingRequest(ctx context.Context, studentID, tutorID int64) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM matching_requests WHERE student_id = $1 AND tutor_id = $2 AND status = $3)`,
		studentID, tutorID, models.RequestStatusPending).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("error checking pending request: %w", err)
	}
	return exists, nil
}

// CreateMatching inserts an established matching
func (r *MatchingRepository) CreateMatching(ctx context.Context, matching *models.Matching) error {
	query := `
		INSERT INTO matchings (student_id, tutor_id, status)
		VALUES ($1, $2, $3)
		RETURNING id, created_at
	`

	err := r.db.QueryRow(ctx, query,
		matching.StudentID,
		matching.TutorID,
		models.MatchingStatusOn,
	).Scan(&matching.ID, &matching.CreatedAt)
	if err != nil {
		return fmt.Errorf("error creating matching: %w", err)
	}

	matching.Status = models.MatchingStatusOn
	return nil
}

// ListMatchings retrieves matchings, optionally restricted to those a user
// participates in on either side
func (r *MatchingRepository) ListMatchings(ctx context.Context, userID *int64) ([]*models.Matching, error) {
	builder := r.sb.Select("id", "student_id", "tutor_id", "status", "created_at").
		From("matchings").
		OrderBy("created_at DESC")

	if userID != nil {
		builder = builder.Where(squirrel.Or{
			squirrel.Eq{"student_id": *userID},
			squirrel.Eq{"tutor_id": *userID},
		})
	}

	sql, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build list matchings query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("error querying matchings: %w", err)
	}
	defer rows.Close()

	var matchings []*models.Matching
	for rows.Next() {
		var m models.Matching
		if err := rows.Scan(&m.ID, &m.StudentID, &m.TutorID, &m.Status, &m.CreatedAt); err != nil {
			return nil, fmt.Errorf("error scanning matching row: %w", err)
		}
		matchings = append(matchings, &m)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating matching rows: %w", err)
	}

	return matchings, nil
}

// CountRequestsByStatus returns matching request counts grouped by status
func (r *MatchingRepository) CountRequestsByStatus(ctx context.Context) (map[string]int64, error) {
	rows, err := r.db.Query(ctx, `SELECT status, COUNT(*) FROM matching_requests GROUP BY status`)
	if err != nil {
		return nil, fmt.Errorf("error counting matching requests: %w", err)
	}
	defer rows.Close()

	counts := make(map[string]int64)
	for rows.Next() {
		var status string
		var count int64
		if err := rows.Scan(&status, &count); err != nil {
			return nil, fmt.Errorf("error scanning request count row: %w", err)
		}
		counts[status] = count
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating request count rows: %w", err)
	}

	return counts, nil
}

// CountMatchings returns the number of active matchings
func (r *MatchingRepository) CountMatchings(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM matchings WHERE status = $1`, models.MatchingStatusOn).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("error counting matchings: %w", err)
	}
	return count, nil
}
