package services

import (
	"context"

	"github.com/rs/zerolog"
	"github.com/tutorlink/tutorlink/internal/app/models/dto"
	"github.com/tutorlink/tutorlink/internal/app/repositories"
)

// ConnectionCounter reports the number of open WebSocket connections.
// Satisfied by websocket.Hub.
type ConnectionCounter interface {
	ConnectionCount() int
}

// DashboardService aggregates platform counts for staff reporting
type DashboardService struct {
	userRepo         repositories.IUserRepository
	matchingRepo     repositories.IMatchingRepository
	roomRepo         repositories.IRoomRepository
	messageRepo      repositories.IMessageRepository
	blogRepo         repositories.IBlogRepository
	notificationRepo repositories.INotificationRepository
	connections      ConnectionCounter
	logger           zerolog.Logger
}

// NewDashboardService creates a new DashboardService
func NewDashboardService(
	userRepo repositories.IUserRepository,
	matchingRepo repositories.IMatchingRepository,
	roomRepo repositories.IRoomRepository,
	messageRepo repositories.IMessageRepository,
	blogRepo repositories.IBlogRepository,
	notificationRepo repositories.INotificationRepository,
	connections ConnectionCounter,
	logger zerolog.Logger,
) *DashboardService {
	return &DashboardService{
		userRepo:         userRepo,
		matchingRepo:     matchingRepo,
		roomRepo:         roomRepo,
		messageRepo:      messageRepo,
		blogRepo:         blogRepo,
		notificationRepo: notificationRepo,
		connections:      connections,
		logger:           logger,
	}
}

// GetSummary collects platform-wide counts in one response
func (s *DashboardService) GetSummary(ctx context.Context) (*dto.DashboardSummaryResponse, error) {
	usersByRole, err := s.userRepo.CountByRole(ctx)
	if err != nil {
		return nil, err
	}

	requestsByStatus, err := s.matchingRepo.CountRequestsByStatus(ctx)
	if err != nil {
		return nil, err
	}

	activeMatchings, err := s.matchingRepo.CountMatchings(ctx)
	if err != nil {
		return nil, err
	}

	rooms, err := s.roomRepo.Count(ctx)
	if err != nil {
		return nil, err
	}

	messages, err := s.messageRepo.Count(ctx)
	if err != nil {
		return nil, err
	}

	blogsByStatus, err := s.blogRepo.CountByStatus(ctx)
	if err != nil {
		return nil, err
	}

	unread, err := s.notificationRepo.CountAllUnread(ctx)
	if err != nil {
		return nil, err
	}

	online := 0
	if s.connections != nil {
		online = s.connections.ConnectionCount()
	}

	return &dto.DashboardSummaryResponse{
		UsersByRole:        usersByRole,
		RequestsByStatus:   requestsByStatus,
		ActiveMatchings:    activeMatchings,
		Rooms:              rooms,
		Messages:           messages,
		BlogsByStatus:      blogsByStatus,
		UnreadNotification: unread,
		OnlineConnections:  online,
	}, nil
}
