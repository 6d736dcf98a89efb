package services

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"github.com/tutorlink/tutorlink/internal/app/models"
	"github.com/tutorlink/tutorlink/internal/app/models/dto"
	"github.com/tutorlink/tutorlink/internal/pkg/apperrors"
)

type chatFixture struct {
	svc      *ChatService
	userRepo *fakeUserRepo
	user     *models.User
	tutor    *models.User
}

func newChatFixture() *chatFixture {
	userRepo := newFakeUserRepo()
	user := userRepo.add(&models.User{Email: "user@example.com", RoleType: models.RoleUser, IsActive: true})
	tutor := userRepo.add(&models.User{Email: "tutor@example.com", RoleType: models.RoleTutor, IsActive: true})

	return &chatFixture{
		svc:      NewChatService(newFakeRoomRepo(), newFakeMessageRepo(), userRepo, nil, zerolog.Nop()),
		userRepo: userRepo,
		user:     user,
		tutor:    tutor,
	}
}

func TestOpenRoomReusesExistingRoom(t *testing.T) {
	f := newChatFixture()

	first, err := f.svc.OpenRoom(context.Background(), f.user.ID, &dto.CreateRoomRequest{TutorID: f.tutor.ID})
	if err != nil {
		t.Fatalf("open room failed: %v", err)
	}
	second, err := f.svc.OpenRoom(context.Background(), f.user.ID, &dto.CreateRoomRequest{TutorID: f.tutor.ID})
	if err != nil {
		t.Fatalf("second open failed: %v", err)
	}
	if first.ID != second.ID {
		t.Fatalf("same pair should reuse the room: %d vs %d", first.ID, second.ID)
	}
}

func TestOpenRoomDedupIsOrderSensitive(t *testing.T) {
	f := newChatFixture()
	tutor2 := f.userRepo.add(&models.User{Email: "tutor2@example.com", RoleType: models.RoleTutor, IsActive: true})

	// Two tutors opening rooms toward each other get two distinct rooms,
	// deduplication keys on the exact ordered pair.
	forward, err := f.svc.OpenRoom(context.Background(), f.tutor.ID, &dto.CreateRoomRequest{TutorID: tutor2.ID})
	if err != nil {
		t.Fatalf("open room failed: %v", err)
	}
	reverse, err := f.svc.OpenRoom(context.Background(), tutor2.ID, &dto.CreateRoomRequest{TutorID: f.tutor.ID})
	if err != nil {
		t.Fatalf("open room failed: %v", err)
	}
	if forward.ID == reverse.ID {
		t.Fatalf("reversed pair should get its own room")
	}
}

func TestOpenRoomRequiresTutorRole(t *testing.T) {
	f := newChatFixture()
	other := f.userRepo.add(&models.User{Email: "other@example.com", RoleType: models.RoleUser, IsActive: true})

	if _, err := f.svc.OpenRoom(context.Background(), f.user.ID, &dto.CreateRoomRequest{TutorID: other.ID}); !errors.Is(err, apperrors.ErrTutorNotFound) {
		t.Fatalf("expected ErrTutorNotFound for non-tutor, got %v", err)
	}
	if _, err := f.svc.OpenRoom(context.Background(), f.user.ID, &dto.CreateRoomRequest{TutorID: 777}); !errors.Is(err, apperrors.ErrTutorNotFound) {
		t.Fatalf("expected ErrTutorNotFound for unknown id, got %v", err)
	}
}

func TestSendMessageRejectsNonParticipants(t *testing.T) {
	f := newChatFixture()
	outsider := f.userRepo.add(&models.User{Email: "outsider@example.com", RoleType: models.RoleUser, IsActive: true})

	room, err := f.svc.OpenRoom(context.Background(), f.user.ID, &dto.CreateRoomRequest{TutorID: f.tutor.ID})
	if err != nil {
		t.Fatalf("open room failed: %v", err)
	}

	if _, err := f.svc.SendMessage(context.Background(), room.ID, outsider.ID, &dto.SendMessageRequest{Text: "hi"}); !errors.Is(err, apperrors.ErrNotParticipant) {
		t.Fatalf("expected ErrNotParticipant, got %v", err)
	}
	if _, err := f.svc.ListMessages(context.Background(), room.ID, outsider.ID); !errors.Is(err, apperrors.ErrNotParticipant) {
		t.Fatalf("expected ErrNotParticipant on read, got %v", err)
	}

	// Both participants can post
	if _, err := f.svc.SendMessage(context.Background(), room.ID, f.user.ID, &dto.SendMessageRequest{Text: "hello"}); err != nil {
		t.Fatalf("participant send failed: %v", err)
	}
	if _, err := f.svc.SendMessage(context.Background(), room.ID, f.tutor.ID, &dto.SendMessageRequest{Text: "hi there"}); err != nil {
		t.Fatalf("tutor send failed: %v", err)
	}
}

func TestDeletedMessagesStayInHistory(t *testing.T) {
	f := newChatFixture()

	room, err := f.svc.OpenRoom(context.Background(), f.user.ID, &dto.CreateRoomRequest{TutorID: f.tutor.ID})
	if err != nil {
		t.Fatalf("open room failed: %v", err)
	}

	message, err := f.svc.SendMessage(context.Background(), room.ID, f.user.ID, &dto.SendMessageRequest{Text: "oops"})
	if err != nil {
		t.Fatalf("send failed: %v", err)
	}

	if err := f.svc.DeleteMessage(context.Background(), message.ID, f.user.ID); err != nil {
		t.Fatalf("delete failed: %v", err)
	}

	messages, err := f.svc.ListMessages(context.Background(), room.ID, f.tutor.ID)
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(messages) != 1 {
		t.Fatalf("deleted message should stay in the history, got %d messages", len(messages))
	}
	if messages[0].DeletedAt == "" {
		t.Fatalf("expected the deletion marker to be set")
	}
}

func TestDeleteMessageSenderOnly(t *testing.T) {
	f := newChatFixture()

	room, err := f.svc.OpenRoom(context.Background(), f.user.ID, &dto.CreateRoomRequest{TutorID: f.tutor.ID})
	if err != nil {
		t.Fatalf("open room failed: %v", err)
	}

	message, err := f.svc.SendMessage(context.Background(), room.ID, f.user.ID, &dto.SendMessageRequest{Text: "mine"})
	if err != nil {
		t.Fatalf("send failed: %v", err)
	}

	// The other participant cannot delete it
	if err := f.svc.DeleteMessage(context.Background(), message.ID, f.tutor.ID); !errors.Is(err, apperrors.ErrPermissionDenied) {
		t.Fatalf("expected ErrPermissionDenied, got %v", err)
	}
	if err := f.svc.DeleteMessage(context.Background(), 555, f.user.ID); !errors.Is(err, apperrors.ErrMessageNotFound) {
		t.Fatalf("expected ErrMessageNotFound, got %v", err)
	}
}
