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

// IScheduleRepository defines the interface for schedule request and
// schedule persistence
type IScheduleRepository interface {
	CreateRequest(ctx context.Context, request *models.ScheduleRequest) error
	GetRequestByID(ctx context.Context, id int64) (*models.ScheduleRequest, error)
	ListRequestsForUser(ctx context.Context, userID int64) ([]*models.ScheduleRequest, error)
	UpdateRequestStatus(ctx context.Context, id int64, status models.RequestStatus) error
	CreateSchedule(ctx context.Context, schedule *models.Schedule) error
	ListSchedulesForUser(ctx context.Context, userID int64) ([]*models.Schedule, error)
}

// ScheduleRepository handles schedule workflow database operations
type ScheduleRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewScheduleRepository creates a new ScheduleRepository
func NewScheduleRepository(db *pgxpool.Pool) *ScheduleRepository {
	return &ScheduleRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

const scheduleRequestColumns = `id, sender_id, receiver_id, slot_id, days, status, created_at, updated_at`

func scanScheduleRequest(row pgx.Row) (*models.ScheduleRequest, error) {
	var sr models.ScheduleRequest
	err := row.Scan(
		&sr.ID,
		&sr.SenderID,
		&sr.ReceiverID,
		&sr.SlotID,
		&sr.Days,
		&sr.Status,
		&sr.CreatedAt,
		&sr.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &sr, nil
}

// CreateRequest inserts a new schedule request in PENDING state
func (r *ScheduleRepository) CreateRequest(ctx context.Context, request *models.ScheduleRequest) error {
	query := `
		INSERT INTO schedule_requests (sender_id, receiver_id, slot_id, days, status)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at, updated_at
	`

	err := r.db.QueryRow(ctx, query,
		request.SenderID,
		request.ReceiverID,
		request.SlotID,
		request.Days,
		models.RequestStatusPending,
	).Scan(&request.ID, &request.CreatedAt, &request.UpdatedAt)
	if err != nil {
		return fmt.Errorf("error creating schedule request: %w", err)
	}

	request.Status = models.RequestStatusPending
	return nil
}

// GetRequestByID retrieves a schedule request by ID
func (r *ScheduleRepository) GetRequestByID(ctx context.Context, id int64) (*models.ScheduleRequest, error) {
	query := fmt.Sprintf(`SELECT %s FROM schedule_requests WHERE id = $1`, scheduleRequestColumns)

	request, err := scanScheduleRequest(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrScheduleRequestNotFound
		}
		return nil, fmt.Errorf("error retrieving schedule request: %w", err)
	}

	return request, nil
}

// ListRequestsForUser retrieves schedule requests the user sent or received
func (r *ScheduleRepository) ListRequestsForUser(ctx context.Context, userID int64) ([]*models.ScheduleRequest, error) {
	sql, args, err := r.sb.Select(scheduleRequestColumns).
		From("schedule_requests").
		Where(squirrel.Or{
			squirrel.Eq{"sender_id": userID},
			squirrel.Eq{"receiver_id": userID},
		}).
		OrderBy("created_at DESC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build list schedule requests query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("error querying schedule requests: %w", err)
	}
	defer rows.Close()

	var requests []*models.ScheduleRequest
	for rows.Next() {
		request, err := scanScheduleRequest(rows)
		if err != nil {
			return nil, fmt.Errorf("error scanning schedule request row: %w", err)
		}
		requests = append(requests, request)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating schedule request rows: %w", err)
	}

	return requests, nil
}

// UpdateRequestStatus transitions a PENDING schedule request to a decided
// state
func (r *ScheduleRepository) UpdateRequestStatus(ctx context.Context, id int64, status models.RequestStatus) error {
	cmdTag, err := r.db.Exec(ctx,
		`UPDATE schedule_requests
		 SET status = $1, updated_at = $2
		 WHERE id = $3 AND status = $4`,
		status, time.Now(), id, models.RequestStatusPending)
	if err != nil {
		return fmt.Errorf("error updating schedule request status: %w", err)
	}

	if cmdTag.RowsAffected() == 0 {
		var exists bool
		if err := r.db.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM schedule_requests WHERE id = $1)`, id).Scan(&exists); err != nil {
			return fmt.Errorf("error verifying schedule request: %w", err)
		}
		if !exists {
			return apperrors.ErrScheduleRequestNotFound
		}
		return apperrors.ErrRequestAlreadyDecided
	}

	return nil
}

// CreateSchedule inserts an established schedule
func (r *ScheduleRepository) CreateSchedule(ctx context.Context, schedule *models.Schedule) error {
	query := `
		INSERT INTO schedules (user_id, receiver_id, slot_id, days)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at
	`

	err := r.db.QueryRow(ctx, query,
		schedule.UserID,
		schedule.ReceiverID,
		schedule.SlotID,
		schedule.Days,
	).Scan(&schedule.ID, &schedule.CreatedAt)
	if err != nil {
		return fmt.Errorf("error creating schedule: %w", err)
	}

	return nil
}

// ListSchedulesForUser retrieves schedules the user appears in on either side
func (r *ScheduleRepository) ListSchedulesForUser(ctx context.Context, userID int64) ([]*models.Schedule, error) {
	sql, args, err := r.sb.Select("id", "user_id", "receiver_id", "slot_id", "days", "created_at").
		From("schedules").
		Where(squirrel.Or{
			squirrel.Eq{"user_id": userID},
			squirrel.Eq{"receiver_id": userID},
		}).
		OrderBy("created_at DESC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build list schedules query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("error querying schedules: %w", err)
	}
	defer rows.Close()

	var schedules []*models.Schedule
	for rows.Next() {
		var s models.Schedule
		if err := rows.Scan(&s.ID, &s.UserID, &s.ReceiverID, &s.SlotID, &s.Days, &s.CreatedAt); err != nil {
			return nil, fmt.Errorf("error scanning schedule row: %w", err)
		}
		schedules = append(schedules, &s)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating schedule rows: %w", err)
	}

	return schedules, nil
}
