package repositories

import (
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
)

// Repositories bundles every repository for dependency injection
type Repositories struct {
	User         *UserRepository
	SpecialUser  *SpecialUserRepository
	Token        *TokenRepository
	Revocation   *RevocationStore
	Matching     *MatchingRepository
	Notification *NotificationRepository
	Room         *RoomRepository
	Message      *MessageRepository
	Schedule     *ScheduleRepository
	Slot         *SlotRepository
	Major        *MajorRepository
	Blog         *BlogRepository
	Comment      *CommentRepository
}

// NewRepositories creates all repositories sharing the given connections
func NewRepositories(db *pgxpool.Pool, redisClient *redis.Client) *Repositories {
	return &Repositories{
		User:         NewUserRepository(db),
		SpecialUser:  NewSpecialUserRepository(db),
		Token:        NewTokenRepository(db),
		Revocation:   NewRevocationStore(redisClient),
		Matching:     NewMatchingRepository(db),
		Notification: NewNotificationRepository(db),
		Room:         NewRoomRepository(db),
		Message:      NewMessageRepository(db),
		Schedule:     NewScheduleRepository(db),
		Slot:         NewSlotRepository(db),
		Major:        NewMajorRepository(db),
		Blog:         NewBlogRepository(db),
		Comment:      NewCommentRepository(db),
	}
}
