package repositories

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/tutorlink/tutorlink/internal/app/models"
	"github.com/tutorlink/tutorlink/internal/pkg/apperrors"
)

// INotificationRepository defines the interface for notification persistence
type INotificationRepository interface {
	Create(ctx context.Context, notification *models.Notification) error
	ListByRecipient(ctx context.Context, userID int64) ([]*models.Notification, error)
	MarkRead(ctx context.Context, id, userID int64) error
	MarkAllRead(ctx context.Context, userID int64) error
	CountUnread(ctx context.Context, userID int64) (int64, error)
	CountAllUnread(ctx context.Context) (int64, error)
}

// NotificationRepository handles notification database operations
type NotificationRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewNotificationRepository creates a new NotificationRepository
func NewNotificationRepository(db *pgxpool.Pool) *NotificationRepository {
	return &NotificationRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

// Create inserts a new notification in UNREAD state
func (r *NotificationRepository) Create(ctx context.Context, notification *models.Notification) error {
	query := `
		INSERT INTO notifications (notification_from, notification_to, title, blog_id, status)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at
	`

	err := r.db.QueryRow(ctx, query,
		notification.NotificationFrom,
		notification.NotificationTo,
		notification.Title,
		notification.BlogID,
		models.NotificationStatusUnread,
	).Scan(&notification.ID, &notification.CreatedAt)
	if err != nil {
		return fmt.Errorf("error creating notification: %w", err)
	}

	notification.Status = models.NotificationStatusUnread
	return nil
}

// ListByRecipient retrieves all notifications addressed to a user, newest first
func (r *NotificationRepository) ListByRecipient(ctx context.Context, userID int64) ([]*models.Notification, error) {
	sql, args, err := r.sb.Select("id", "notification_from", "notification_to", "title", "blog_id", "status", "created_at").
		From("notifications").
		Where(squirrel.Eq{"notification_to": userID}).
		OrderBy("created_at DESC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build list notifications query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("error querying notifications: %w", err)
	}
	defer rows.Close()

	var notifications []*models.Notification
	for rows.Next() {
		var n models.Notification
		if err := rows.Scan(&n.ID, &n.NotificationFrom, &n.NotificationTo, &n.Title, &n.BlogID, &n.Status, &n.CreatedAt); err != nil {
			return nil, fmt.Errorf("error scanning notification row: %w", err)
		}
		notifications = append(notifications, &n)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating notification rows: %w", err)
	}

	return notifications, nil
}

// MarkRead marks a single notification as read. The recipient check keeps
// users from acknowledging notifications that are not theirs.
func (r *NotificationRepository) MarkRead(ctx context.Context, id, userID int64) error {
	cmdTag, err := r.db.Exec(ctx,
		`UPDATE notifications SET status = $1 WHERE id = $2 AND notification_to = $3`,
		models.NotificationStatusRead, id, userID)
	if err != nil {
		return fmt.Errorf("error marking notification read: %w", err)
	}

	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNotificationNotFound
	}

	return nil
}

// MarkAllRead marks every notification of a recipient as read
func (r *NotificationRepository) MarkAllRead(ctx context.Context, userID int64) error {
	_, err := r.db.Exec(ctx,
		`UPDATE notifications SET status = $1 WHERE notification_to = $2 AND status = $3`,
		models.NotificationStatusRead, userID, models.NotificationStatusUnread)
	if err != nil {
		return fmt.Errorf("error marking notifications read: %w", err)
	}
	return nil
}

// CountUnread returns the number of unread notifications for a user
func (r *NotificationRepository) CountUnread(ctx context.Context, userID int64) (int64, error) {
	var count int64
	err := r.db.QueryRow(ctx,
		`SELECT COUNT(*) FROM notifications WHERE notification_to = $1 AND status = $2`,
		userID, models.NotificationStatusUnread).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("error counting unread notifications: %w", err)
	}
	return count, nil
}

// CountAllUnread returns the platform-wide unread notification count
func (r *NotificationRepository) CountAllUnread(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.QueryRow(ctx,
		`SELECT COUNT(*) FROM notifications WHERE status = $1`,
		models.NotificationStatusUnread).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("error counting unread notifications: %w", err)
	}
	return count, nil
}
