package services

import (
	"context"
	"sync"
	"time"

	"github.com/tutorlink/tutorlink/internal/app/models"
	"github.com/tutorlink/tutorlink/internal/pkg/apperrors"
)

// In-memory repository fakes shared by the service tests.

type fakeUserRepo struct {
	mu     sync.Mutex
	users  map[int64]*models.User
	nextID int64
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[int64]*models.User), nextID: 1}
}

func (r *fakeUserRepo) add(user *models.User) *models.User {
	r.mu.Lock()
	defer r.mu.Unlock()
	if user.ID == 0 {
		user.ID = r.nextID
		r.nextID++
	} else if user.ID >= r.nextID {
		r.nextID = user.ID + 1
	}
	user.CreatedAt = time.Now()
	r.users[user.ID] = user
	return user
}

func (r *fakeUserRepo) Create(ctx context.Context, user *models.User) error {
	r.add(user)
	return nil
}

func (r *fakeUserRepo) GetByID(ctx context.Context, id int64) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	user, ok := r.users[id]
	if !ok {
		return nil, apperrors.ErrUserNotFound
	}
	return user, nil
}

func (r *fakeUserRepo) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, user := range r.users {
		if user.Email == email {
			return user, nil
		}
	}
	return nil, apperrors.ErrUserNotFound
}

func (r *fakeUserRepo) EmailExists(ctx context.Context, email string) (bool, error) {
	_, err := r.GetByEmail(ctx, email)
	if err != nil {
		return false, nil
	}
	return true, nil
}

func (r *fakeUserRepo) GetByRole(ctx context.Context, role models.RoleType) ([]*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var result []*models.User
	for _, user := range r.users {
		if user.RoleType == role {
			result = append(result, user)
		}
	}
	return result, nil
}

func (r *fakeUserRepo) GetAll(ctx context.Context, offset uint64, limit int) ([]*models.User, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var result []*models.User
	for _, user := range r.users {
		result = append(result, user)
	}
	return result, int64(len(r.users)), nil
}

func (r *fakeUserRepo) UpdateProfile(ctx context.Context, userID int64, firstName, lastName string, profilePhotoURL *string) error {
	user, err := r.GetByID(ctx, userID)
	if err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	user.FirstName = firstName
	user.LastName = lastName
	if profilePhotoURL != nil {
		user.ProfilePhotoURL = profilePhotoURL
	}
	return nil
}

func (r *fakeUserRepo) SetTutor(ctx context.Context, studentID int64, tutorID *int64) error {
	user, err := r.GetByID(ctx, studentID)
	if err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	user.TutorID = tutorID
	return nil
}

func (r *fakeUserRepo) AddMember(ctx context.Context, tutorID, studentID int64) error {
	user, err := r.GetByID(ctx, tutorID)
	if err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	user.Members = append(user.Members, studentID)
	return nil
}

func (r *fakeUserRepo) UpdateLastLogin(ctx context.Context, userID int64) error {
	user, err := r.GetByID(ctx, userID)
	if err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	now := time.Now()
	user.LastLoginAt = &now
	return nil
}

func (r *fakeUserRepo) CountByRole(ctx context.Context) (map[string]int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	counts := make(map[string]int64)
	for _, user := range r.users {
		counts[string(user.RoleType)]++
	}
	return counts, nil
}

type fakeSpecialUserRepo struct {
	mu      sync.Mutex
	entries map[string]*models.SpecialUser
	nextID  int64
}

func newFakeSpecialUserRepo() *fakeSpecialUserRepo {
	return &fakeSpecialUserRepo{entries: make(map[string]*models.SpecialUser), nextID: 1}
}

func (r *fakeSpecialUserRepo) Create(ctx context.Context, specialUser *models.SpecialUser) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.entries[specialUser.Email]; ok {
		return apperrors.NewConflictError("special user with this email already exists")
	}
	specialUser.ID = r.nextID
	r.nextID++
	specialUser.CreatedAt = time.Now()
	r.entries[specialUser.Email] = specialUser
	return nil
}

func (r *fakeSpecialUserRepo) GetByEmail(ctx context.Context, email string) (*models.SpecialUser, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	entry, ok := r.entries[email]
	if !ok {
		return nil, apperrors.ErrResourceNotFound
	}
	return entry, nil
}

func (r *fakeSpecialUserRepo) GetAll(ctx context.Context) ([]*models.SpecialUser, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var result []*models.SpecialUser
	for _, entry := range r.entries {
		result = append(result, entry)
	}
	return result, nil
}

func (r *fakeSpecialUserRepo) Delete(ctx context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for email, entry := range r.entries {
		if entry.ID == id {
			delete(r.entries, email)
			return nil
		}
	}
	return apperrors.ErrResourceNotFound
}

type storedToken struct {
	userID     int64
	expiryDate time.Time
	revoked    bool
}

type fakeTokenRepo struct {
	mu     sync.Mutex
	tokens map[string]*storedToken
}

func newFakeTokenRepo() *fakeTokenRepo {
	return &fakeTokenRepo{tokens: make(map[string]*storedToken)}
}

func (r *fakeTokenRepo) CreateToken(ctx context.Context, token string, userID int64, expiryDate time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.tokens[token] = &storedToken{userID: userID, expiryDate: expiryDate}
	return nil
}

func (r *fakeTokenRepo) GetTokenByValue(ctx context.Context, token string) (int64, time.Time, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	stored, ok := r.tokens[token]
	if !ok {
		return 0, time.Time{}, apperrors.ErrTokenNotFound
	}
	if stored.revoked {
		return 0, time.Time{}, apperrors.ErrTokenRevoked
	}
	if stored.expiryDate.Before(time.Now()) {
		return 0, time.Time{}, apperrors.ErrTokenExpired
	}
	return stored.userID, stored.expiryDate, nil
}

func (r *fakeTokenRepo) RevokeToken(ctx context.Context, token string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	stored, ok := r.tokens[token]
	if !ok {
		return apperrors.ErrTokenNotFound
	}
	stored.revoked = true
	return nil
}

func (r *fakeTokenRepo) RevokeAllUserTokens(ctx context.Context, userID int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, stored := range r.tokens {
		if stored.userID == userID {
			stored.revoked = true
		}
	}
	return nil
}

func (r *fakeTokenRepo) CleanupExpiredTokens(ctx context.Context) (int64, error) {
	return 0, nil
}

type fakeRevocationStore struct {
	mu      sync.Mutex
	revoked map[string]bool
	lastTTL time.Duration
	err     error
}

func newFakeRevocationStore() *fakeRevocationStore {
	return &fakeRevocationStore{revoked: make(map[string]bool)}
}

func (r *fakeRevocationStore) Revoke(ctx context.Context, token string, ttl time.Duration) error {
	if r.err != nil {
		return r.err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.revoked[token] = true
	r.lastTTL = ttl
	return nil
}

func (r *fakeRevocationStore) IsRevoked(ctx context.Context, token string) (bool, error) {
	if r.err != nil {
		return false, r.err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.revoked[token], nil
}

type fakeMatchingRepo struct {
	mu        sync.Mutex
	requests  map[int64]*models.MatchingRequest
	matchings []*models.Matching
	nextID    int64
}

func newFakeMatchingRepo() *fakeMatchingRepo {
	return &fakeMatchingRepo{requests: make(map[int64]*models.MatchingRequest), nextID: 1}
}

func (r *fakeMatchingRepo) CreateRequest(ctx context.Context, request *models.MatchingRequest) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	request.ID = r.nextID
	r.nextID++
	request.Status = models.RequestStatusPending
	request.CreatedAt = time.Now()
	request.UpdatedAt = request.CreatedAt
	r.requests[request.ID] = request
	return nil
}

func (r *fakeMatchingRepo) GetRequestByID(ctx context.Context, id int64) (*models.MatchingRequest, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	request, ok := r.requests[id]
	if !ok {
		return nil, apperrors.ErrMatchingRequestNotFound
	}
	return request, nil
}

func (r *fakeMatchingRepo) ListRequests(ctx context.Context, studentID *int64, status *models.RequestStatus) ([]*models.MatchingRequest, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var result []*models.MatchingRequest
	for _, request := range r.requests {
		if studentID != nil && request.StudentID != *studentID {
			continue
		}
		if status != nil && request.Status != *status {
			continue
		}
		result = append(result, request)
	}
	return result, nil
}

func (r *fakeMatchingRepo) UpdateRequestStatus(ctx context.Context, id int64, status models.RequestStatus, staffID int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	request, ok := r.requests[id]
	if !ok {
		return apperrors.ErrMatchingRequestNotFound
	}
	if request.Status != models.RequestStatusPending {
		return apperrors.ErrRequestAlreadyDecided
	}
	request.Status = status
	request.StaffID = &staffID
	request.UpdatedAt = time.Now()
	return nil
}

func (r *fakeMatchingRepo) HasPendingRequest(ctx context.Context, studentID, tutorID int64) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, request := range r.requests {
		if request.StudentID == studentID && request.TutorID == tutorID && request.Status == models.RequestStatusPending {
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeMatchingRepo) CreateMatching(ctx context.Context, matching *models.Matching) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	matching.ID = r.nextID
	r.nextID++
	matching.Status = models.MatchingStatusOn
	matching.CreatedAt = time.Now()
	r.matchings = append(r.matchings, matching)
	return nil
}

func (r *fakeMatchingRepo) ListMatchings(ctx context.Context, userID *int64) ([]*models.Matching, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var result []*models.Matching
	for _, m := range r.matchings {
		if userID != nil && m.StudentID != *userID && m.TutorID != *userID {
			continue
		}
		result = append(result, m)
	}
	return result, nil
}

func (r *fakeMatchingRepo) CountRequestsByStatus(ctx context.Context) (map[string]int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	counts := make(map[string]int64)
	for _, request := range r.requests {
		counts[string(request.Status)]++
	}
	return counts, nil
}

func (r *fakeMatchingRepo) CountMatchings(ctx context.Context) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return int64(len(r.matchings)), nil
}

type fakeRoomRepo struct {
	mu     sync.Mutex
	rooms  map[int64]*models.Room
	nextID int64
}

func newFakeRoomRepo() *fakeRoomRepo {
	return &fakeRoomRepo{rooms: make(map[int64]*models.Room), nextID: 1}
}

func (r *fakeRoomRepo) Create(ctx context.Context, room *models.Room) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	room.ID = r.nextID
	r.nextID++
	room.CreatedAt = time.Now()
	r.rooms[room.ID] = room
	return nil
}

func (r *fakeRoomRepo) GetByID(ctx context.Context, id int64) (*models.Room, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	room, ok := r.rooms[id]
	if !ok {
		return nil, apperrors.ErrRoomNotFound
	}
	return room, nil
}

func (r *fakeRoomRepo) GetByPair(ctx context.Context, userID, tutorID int64) (*models.Room, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, room := range r.rooms {
		if room.UserID == userID && room.TutorID == tutorID {
			return room, nil
		}
	}
	return nil, apperrors.ErrRoomNotFound
}

func (r *fakeRoomRepo) ListForUser(ctx context.Context, userID int64) ([]*models.Room, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var result []*models.Room
	for _, room := range r.rooms {
		if room.UserID == userID || room.TutorID == userID {
			result = append(result, room)
		}
	}
	return result, nil
}

func (r *fakeRoomRepo) Count(ctx context.Context) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return int64(len(r.rooms)), nil
}

type fakeMessageRepo struct {
	mu       sync.Mutex
	messages map[int64]*models.Message
	nextID   int64
}

func newFakeMessageRepo() *fakeMessageRepo {
	return &fakeMessageRepo{messages: make(map[int64]*models.Message), nextID: 1}
}

func (r *fakeMessageRepo) Create(ctx context.Context, message *models.Message) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	message.ID = r.nextID
	r.nextID++
	message.CreatedAt = time.Now()
	r.messages[message.ID] = message
	return nil
}

func (r *fakeMessageRepo) GetByID(ctx context.Context, id int64) (*models.Message, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	message, ok := r.messages[id]
	if !ok {
		return nil, apperrors.ErrMessageNotFound
	}
	return message, nil
}

func (r *fakeMessageRepo) ListByRoom(ctx context.Context, roomID int64) ([]*models.Message, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var result []*models.Message
	for _, message := range r.messages {
		if message.RoomID == roomID {
			result = append(result, message)
		}
	}
	return result, nil
}

func (r *fakeMessageRepo) SoftDelete(ctx context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	message, ok := r.messages[id]
	if !ok {
		return apperrors.ErrMessageNotFound
	}
	now := time.Now()
	message.DeletedAt = &now
	return nil
}

func (r *fakeMessageRepo) Count(ctx context.Context) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return int64(len(r.messages)), nil
}

type fakeNotificationRepo struct {
	mu            sync.Mutex
	notifications []*models.Notification
	nextID        int64
	createErr     error
}

func newFakeNotificationRepo() *fakeNotificationRepo {
	return &fakeNotificationRepo{nextID: 1}
}

func (r *fakeNotificationRepo) Create(ctx context.Context, notification *models.Notification) error {
	if r.createErr != nil {
		return r.createErr
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	notification.ID = r.nextID
	r.nextID++
	notification.Status = models.NotificationStatusUnread
	notification.CreatedAt = time.Now()
	r.notifications = append(r.notifications, notification)
	return nil
}

func (r *fakeNotificationRepo) ListByRecipient(ctx context.Context, userID int64) ([]*models.Notification, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var result []*models.Notification
	for _, n := range r.notifications {
		if n.NotificationTo == userID {
			result = append(result, n)
		}
	}
	return result, nil
}

func (r *fakeNotificationRepo) MarkRead(ctx context.Context, id, userID int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, n := range r.notifications {
		if n.ID == id && n.NotificationTo == userID {
			n.Status = models.NotificationStatusRead
			return nil
		}
	}
	return apperrors.ErrNotificationNotFound
}

func (r *fakeNotificationRepo) MarkAllRead(ctx context.Context, userID int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, n := range r.notifications {
		if n.NotificationTo == userID {
			n.Status = models.NotificationStatusRead
		}
	}
	return nil
}

func (r *fakeNotificationRepo) CountUnread(ctx context.Context, userID int64) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var count int64
	for _, n := range r.notifications {
		if n.NotificationTo == userID && n.Status == models.NotificationStatusUnread {
			count++
		}
	}
	return count, nil
}

func (r *fakeNotificationRepo) CountAllUnread(ctx context.Context) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var count int64
	for _, n := range r.notifications {
		if n.Status == models.NotificationStatusUnread {
			count++
		}
	}
	return count, nil
}

// fakeNotificationSvc records deliveries and can fail for selected recipients.
type fakeNotificationSvc struct {
	mu        sync.Mutex
	delivered []int64
	failFor   map[int64]error
}

func newFakeNotificationSvc() *fakeNotificationSvc {
	return &fakeNotificationSvc{failFor: make(map[int64]error)}
}

func (s *fakeNotificationSvc) Notify(ctx context.Context, fromUserID, toUserID int64, title string, blogID *int64) error {
	return s.NotifyMatching(ctx, fromUserID, toUserID, title)
}

func (s *fakeNotificationSvc) NotifyMatching(ctx context.Context, fromUserID, toUserID int64, title string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err, ok := s.failFor[toUserID]; ok {
		return err
	}
	s.delivered = append(s.delivered, toUserID)
	return nil
}

func (s *fakeNotificationSvc) deliveredTo() []int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]int64(nil), s.delivered...)
}

type fakeEmailService struct {
	mu       sync.Mutex
	welcomes []string
	decided  []string
}

func (s *fakeEmailService) SendWelcomeEmail(toEmail, toName string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.welcomes = append(s.welcomes, toEmail)
	return nil
}

func (s *fakeEmailService) SendMatchingDecisionEmail(toEmail, toName, decision string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.decided = append(s.decided, toEmail+":"+decision)
	return nil
}
