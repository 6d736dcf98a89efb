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

// IRoomRepository defines the interface for chat room persistence
type IRoomRepository interface {
	Create(ctx context.Context, room *models.Room) error
	GetByID(ctx context.Context, id int64) (*models.Room, error)
	GetByPair(ctx context.Context, userID, tutorID int64) (*models.Room, error)
	ListForUser(ctx context.Context, userID int64) ([]*models.Room, error)
	Count(ctx context.Context) (int64, error)
}

// RoomRepository handles chat room database operations
type RoomRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewRoomRepository creates a new RoomRepository
func NewRoomRepository(db *pgxpool.Pool) *RoomRepository {
	return &RoomRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

// Create inserts a new room
func (r *RoomRepository) Create(ctx context.Context, room *models.Room) error {
	query := `
		INSERT INTO rooms (user_id, tutor_id)
		VALUES ($1, $2)
		RETURNING id, created_at
	`

	err := r.db.QueryRow(ctx, query, room.UserID, room.TutorID).Scan(&room.ID, &room.CreatedAt)
	if err != nil {
		return fmt.Errorf("error creating room: %w", err)
	}

	return nil
}

// GetByID retrieves a room by ID
func (r *RoomRepository) GetByID(ctx context.Context, id int64) (*models.Room, error) {
	var room models.Room
	err := r.db.QueryRow(ctx,
		`SELECT id, user_id, tutor_id, created_at FROM rooms WHERE id = $1`,
		id).Scan(&room.ID, &room.UserID, &room.TutorID, &room.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrRoomNotFound
		}
		return nil, fmt.Errorf("error retrieving room: %w", err)
	}

	return &room, nil
}

// GetByPair retrieves the room for an exact ordered (user, tutor) pair.
// The lookup is deliberately not symmetric; rooms are keyed by who holds
// which side of the conversation.
func (r *RoomRepository) GetByPair(ctx context.Context, userID, tutorID int64) (*models.Room, error) {
	var room models.Room
	err := r.db.QueryRow(ctx,
		`SELECT id, user_id, tutor_id, created_at FROM rooms WHERE user_id = $1 AND tutor_id = $2`,
		userID, tutorID).Scan(&room.ID, &room.UserID, &room.TutorID, &room.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrRoomNotFound
		}
		return nil, fmt.Errorf("error retrieving room by pair: %w", err)
	}

	return &room, nil
}

// ListForUser retrieves every room the user participates in on either side
func (r *RoomRepository) ListForUser(ctx context.Context, userID int64) ([]*models.Room, error) {
	sql, args, err := r.sb.Select("id", "user_id", "tutor_id", "created_at").
		From("rooms").
		Where(squirrel.Or{
			squirrel.Eq{"user_id": userID},
			squirrel.Eq{"tutor_id": userID},
		}).
		OrderBy("created_at DESC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build list rooms query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("error querying rooms: %w", err)
	}
	defer rows.Close()

	var rooms []*models.Room
	for rows.Next() {
		var room models.Room
		if err := rows.Scan(&room.ID, &room.UserID, &room.TutorID, &room.CreatedAt); err != nil {
			return nil, fmt.Errorf("error scanning room row: %w", err)
		}
		rooms = append(rooms, &room)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating room rows: %w", err)
	}

	return rooms, nil
}

// Count returns the total number of rooms
func (r *RoomRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM rooms`).Scan(&count); err != nil {
		return 0, fmt.Errorf("error counting rooms: %w", err)
	}
	return count, nil
}
