package services

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"
	"github.com/tutorlink/tutorlink/internal/app/models"
	"github.com/tutorlink/tutorlink/internal/app/models/dto"
	"github.com/tutorlink/tutorlink/internal/app/repositories"
	"github.com/tutorlink/tutorlink/internal/pkg/apperrors"
	"github.com/tutorlink/tutorlink/internal/pkg/websocket"
)

// ChatService handles rooms and messages
type ChatService struct {
	roomRepo    repositories.IRoomRepository
	messageRepo repositories.IMessageRepository
	userRepo    repositories.IUserRepository
	hub         *websocket.Hub
	logger      zerolog.Logger
}

// NewChatService creates a new ChatService
func NewChatService(
	roomRepo repositories.IRoomRepository,
	messageRepo repositories.IMessageRepository,
	userRepo repositories.IUserRepository,
	hub *websocket.Hub,
	logger zerolog.Logger,
) *ChatService {
	return &ChatService{
		roomRepo:    roomRepo,
		messageRepo: messageRepo,
		userRepo:    userRepo,
		hub:         hub,
		logger:      logger,
	}
}

// OpenRoom returns the caller's room with a tutor, creating it on first
// use. Deduplication is by the exact ordered (user, tutor) pair.
func (s *ChatService) OpenRoom(ctx context.Context, userID int64, req *dto.CreateRoomRequest) (*dto.RoomResponse, error) {
	tutor, err := s.userRepo.GetByID(ctx, req.TutorID)
	if err != nil {
		return nil, apperrors.ErrTutorNotFound
	}
	if tutor.RoleType != models.RoleTutor {
		return nil, apperrors.ErrTutorNotFound
	}

	room, err := s.roomRepo.GetByPair(ctx, userID, req.TutorID)
	if err == nil {
		return newRoomResponse(room), nil
	}
	if !errors.Is(err, apperrors.ErrRoomNotFound) {
		return nil, err
	}

	room = &models.Room{
		UserID:  userID,
		TutorID: req.TutorID,
	}
	if err := s.roomRepo.Create(ctx, room); err != nil {
		return nil, err
	}

	return newRoomResponse(room), nil
}

// ListRooms retrieves every room the caller participates in
func (s *ChatService) ListRooms(ctx context.Context, userID int64) ([]*dto.RoomResponse, error) {
	rooms, err := s.roomRepo.ListForUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	responses := make([]*dto.RoomResponse, 0, len(rooms))
	for _, room := range rooms {
		responses = append(responses, newRoomResponse(room))
	}

	return responses, nil
}

// SendMessage posts a message into a room the caller participates in and
// pushes it to the other participant's open connections
func (s *ChatService) SendMessage(ctx context.Context, roomID, senderID int64, req *dto.SendMessageRequest) (*dto.MessageResponse, error) {
	room, err := s.roomRepo.GetByID(ctx, roomID)
	if err != nil {
		return nil, err
	}

	if room.UserID != senderID && room.TutorID != senderID {
		return nil, apperrors.ErrNotParticipant
	}

	message := &models.Message{
		RoomID:   roomID,
		SenderID: senderID,
		Text:     req.Text,
	}
	if err := s.messageRepo.Create(ctx, message); err != nil {
		return nil, err
	}

	response := newMessageResponse(message)

	// Push to the other side of the room, best effort
	if s.hub != nil {
		recipient := room.UserID
		if recipient == senderID {
			recipient = room.TutorID
		}
		s.hub.SendMessage(recipient, senderID, response)
	}

	return response, nil
}

// ListMessages retrieves a room's messages for a participant. Soft-deleted
// messages stay in the list with their deletion marker set.
func (s *ChatService) ListMessages(ctx context.Context, roomID, callerID int64) ([]*dto.MessageResponse, error) {
	room, err := s.roomRepo.GetByID(ctx, roomID)
	if err != nil {
		return nil, err
	}

	if room.UserID != callerID && room.TutorID != callerID {
		return nil, apperrors.ErrNotParticipant
	}

	messages, err := s.messageRepo.ListByRoom(ctx, roomID)
	if err != nil {
		return nil, err
	}

	responses := make([]*dto.MessageResponse, 0, len(messages))
	for _, message := range messages {
		responses = append(responses, newMessageResponse(message))
	}

	return responses, nil
}

// DeleteMessage soft deletes a message. Only the sender may delete their own
// messages.
func (s *ChatService) DeleteMessage(ctx context.Context, messageID, callerID int64) error {
	message, err := s.messageRepo.GetByID(ctx, messageID)
	if err != nil {
		return err
	}

	if message.SenderID != callerID {
		return apperrors.ErrPermissionDenied
	}

	return s.messageRepo.SoftDelete(ctx, messageID)
}

func newRoomResponse(room *models.Room) *dto.RoomResponse {
	return &dto.RoomResponse{
		ID:        room.ID,
		UserID:    room.UserID,
		TutorID:   room.TutorID,
		CreatedAt: room.CreatedAt.Format(time.RFC3339),
	}
}

func newMessageResponse(message *models.Message) *dto.MessageResponse {
	resp := &dto.MessageResponse{
		ID:        message.ID,
		RoomID:    message.RoomID,
		SenderID:  message.SenderID,
		Text:      message.Text,
		CreatedAt: message.CreatedAt.Format(time.RFC3339),
	}
	if message.DeletedAt != nil {
		resp.DeletedAt = message.DeletedAt.Format(time.RFC3339)
	}
	return resp
}
