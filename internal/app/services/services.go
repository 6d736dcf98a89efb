package services

import (
	"github.com/rs/zerolog"
	"github.com/tutorlink/tutorlink/internal/app/repositories"
	"github.com/tutorlink/tutorlink/internal/pkg/auth"
	"github.com/tutorlink/tutorlink/internal/pkg/email"
	"github.com/tutorlink/tutorlink/internal/pkg/filestorage"
	"github.com/tutorlink/tutorlink/internal/pkg/websocket"
)

// Services bundles every service for dependency injection
type Services struct {
	Auth         *AuthService
	User         *UserService
	Matching     *MatchingService
	Notification *NotificationService
	Chat         *ChatService
	Schedule     *ScheduleService
	Major        *MajorService
	Blog         *BlogService
	Dashboard    *DashboardService
}

// NewServices wires all services onto the shared repositories and
// infrastructure
func NewServices(
	repos *repositories.Repositories,
	jwtService *auth.JWTService,
	emailService email.EmailService,
	fileStorage filestorage.FileStorage,
	hub *websocket.Hub,
	logger zerolog.Logger,
) *Services {
	notificationSvc := NewNotificationService(repos.Notification, hub, logger)

	return &Services{
		Auth:         NewAuthService(repos.User, repos.SpecialUser, repos.Token, repos.Revocation, jwtService, emailService, logger),
		User:         NewUserService(repos.User, repos.SpecialUser, fileStorage, logger),
		Matching:     NewMatchingService(repos.Matching, repos.User, notificationSvc, emailService, logger),
		Notification: notificationSvc,
		Chat:         NewChatService(repos.Room, repos.Message, repos.User, hub, logger),
		Schedule:     NewScheduleService(repos.Schedule, repos.Slot, repos.User, notificationSvc, logger),
		Major:        NewMajorService(repos.Major, logger),
		Blog:         NewBlogService(repos.Blog, repos.Comment, repos.User, notificationSvc, logger),
		Dashboard:    NewDashboardService(repos.User, repos.Matching, repos.Room, repos.Message, repos.Blog, repos.Notification, hub, logger),
	}
}
