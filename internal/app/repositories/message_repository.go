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

// IMessageRepository defines the interface for chat message persistence
type IMessageRepository interface {
	Create(ctx context.Context, message *models.Message) error
	GetByID(ctx context.Context, id int64) (*models.Message, error)
	ListByRoom(ctx context.Context, roomID int64) ([]*models.Message, error)
	SoftDelete(ctx context.Context, id int64) error
	Count(ctx context.Context) (int64, error)
}

// MessageRepository handles chat message database operations
type MessageRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewMessageRepository creates a new MessageRepository
func NewMessageRepository(db *pgxpool.Pool) *MessageRepository {
	return &MessageRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

// Create inserts a new message
func (r *MessageRepository) Create(ctx context.Context, message *models.Message) error {
	query := `
		INSERT INTO messages (room_id, sender_id, text)
		VALUES ($1, $2, $3)
		RETURNING id, created_at
	`

	err := r.db.QueryRow(ctx, query,
		message.RoomID,
		message.SenderID,
		message.Text,
	).Scan(&message.ID, &message.CreatedAt)
	if err != nil {
		return fmt.Errorf("error creating message: %w", err)
	}

	return nil
}

// GetByID retrieves a message by ID
func (r *MessageRepository) GetByID(ctx context.Context, id int64) (*models.Message, error) {
	var m models.Message
	err := r.db.QueryRow(ctx,
		`SELECT id, room_id, sender_id, text, created_at, deleted_at FROM messages WHERE id = $1`,
		id).Scan(&m.ID, &m.RoomID, &m.SenderID, &m.Text, &m.CreatedAt, &m.DeletedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrMessageNotFound
		}
		return nil, fmt.Errorf("error retrieving message: %w", err)
	}

	return &m, nil
}

// ListByRoom retrieves a room's messages oldest first. Soft-deleted rows are
// kept in the result; clients render them from the deletedAt marker.
func (r *MessageRepository) ListByRoom(ctx context.Context, roomID int64) ([]*models.Message, error) {
	sql, args, err := r.sb.Select("id", "room_id", "sender_id", "text", "created_at", "deleted_at").
		From("messages").
		Where(squirrel.Eq{"room_id": roomID}).
		OrderBy("created_at ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build list messages query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("error querying messages: %w", err)
	}
	defer rows.Close()

	var messages []*models.Message
	for rows.Next() {
		var m models.Message
		if err := rows.Scan(&m.ID, &m.RoomID, &m.SenderID, &m.Text, &m.CreatedAt, &m.DeletedAt); err != nil {
			return nil, fmt.Errorf("error scanning message row: %w", err)
		}
		messages = append(messages, &m)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating message rows: %w", err)
	}

	return messages, nil
}

// SoftDelete marks a message as deleted without removing the row
func (r *MessageRepository) SoftDelete(ctx context.Context, id int64) error {
	cmdTag, err := r.db.Exec(ctx,
		`UPDATE messages SET deleted_at = $1 WHERE id = $2 AND deleted_at IS NULL`,
		time.Now(), id)
	if err != nil {
		return fmt.Errorf("error deleting message: %w", err)
	}

	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrMessageNotFound
	}

	return nil
}

// Count returns the total number of messages, deleted ones included
func (r *MessageRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM messages`).Scan(&count); err != nil {
		return 0, fmt.Errorf("error counting messages: %w", err)
	}
	return count, nil
}
