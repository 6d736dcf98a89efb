package services

import (
	"context"

	"github.com/rs/zerolog"
	"github.com/tutorlink/tutorlink/internal/app/models"
	"github.com/tutorlink/tutorlink/internal/app/models/dto"
	"github.com/tutorlink/tutorlink/internal/app/repositories"
)

// INotificationService is the notification fan-in point used by the other
// services
type INotificationService interface {
	Notify(ctx context.Context, fromUserID, toUserID int64, title string, blogID *int64) error
	NotifyMatching(ctx context.Context, fromUserID, toUserID int64, title string) error
}

// NotificationPusher pushes real-time notification events to a user's open
// WebSocket connections. Satisfied by websocket.Hub.
type NotificationPusher interface {
	SendNotificationComment(toUserID int64, title string)
	MatchingNotification(fromUserID, toUserID int64, title string)
}

// NotificationService persists notifications and pushes them over open
// WebSocket connections. The push happens before the database write and is
// never gated on it; a recipient with an open socket sees the event even if
// persistence later fails.
type NotificationService struct {
	notificationRepo repositories.INotificationRepository
	hub              NotificationPusher
	logger           zerolog.Logger
}

// NewNotificationService creates a new NotificationService
func NewNotificationService(
	notificationRepo repositories.INotificationRepository,
	hub NotificationPusher,
	logger zerolog.Logger,
) *NotificationService {
	return &NotificationService{
		notificationRepo: notificationRepo,
		hub:              hub,
		logger:           logger,
	}
}

// Notify pushes and persists a generic notification
func (s *NotificationService) Notify(ctx context.Context, fromUserID, toUserID int64, title string, blogID *int64) error {
	if s.hub != nil {
		s.hub.SendNotificationComment(toUserID, title)
	}

	notification := &models.Notification{
		NotificationFrom: fromUserID,
		NotificationTo:   toUserID,
		Title:            title,
		BlogID:           blogID,
	}

	if err := s.notificationRepo.Create(ctx, notification); err != nil {
		s.logger.Error().Err(err).Int64("toUserID", toUserID).Msg("Failed to persist notification")
		return err
	}

	return nil
}

// NotifyMatching pushes and persists a matching workflow notification
func (s *NotificationService) NotifyMatching(ctx context.Context, fromUserID, toUserID int64, title string) error {
	if s.hub != nil {
		s.hub.MatchingNotification(fromUserID, toUserID, title)
	}

	notification := &models.Notification{
		NotificationFrom: fromUserID,
		NotificationTo:   toUserID,
		Title:            title,
	}

	if err := s.notificationRepo.Create(ctx, notification); err != nil {
		s.logger.Error().Err(err).Int64("toUserID", toUserID).Msg("Failed to persist matching notification")
		return err
	}

	return nil
}

// ListNotifications retrieves the caller's notifications, newest first
func (s *NotificationService) ListNotifications(ctx context.Context, userID int64) ([]*dto.NotificationResponse, error) {
	notifications, err := s.notificationRepo.ListByRecipient(ctx, userID)
	if err != nil {
		return nil, err
	}

	responses := make([]*dto.NotificationResponse, 0, len(notifications))
	for _, n := range notifications {
		responses = append(responses, dto.NewNotificationResponse(n))
	}

	return responses, nil
}

// MarkRead marks one of the caller's notifications as read
func (s *NotificationService) MarkRead(ctx context.Context, id, userID int64) error {
	return s.notificationRepo.MarkRead(ctx, id, userID)
}

// MarkAllRead marks every notification of the caller as read
func (s *NotificationService) MarkAllRead(ctx context.Context, userID int64) error {
	return s.notificationRepo.MarkAllRead(ctx, userID)
}

// CountUnread returns the caller's unread notification count
func (s *NotificationService) CountUnread(ctx context.Context, userID int64) (int64, error) {
	return s.notificationRepo.CountUnread(ctx, userID)
}
