package services

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/rs/zerolog"
	"github.com/tutorlink/tutorlink/internal/app/models"
	"github.com/tutorlink/tutorlink/internal/pkg/apperrors"
)

type pushedEvent struct {
	from  int64
	to    int64
	title string
}

// fakePusher records every push so tests can observe socket delivery order.
type fakePusher struct {
	mu     sync.Mutex
	pushed []pushedEvent
}

func (p *fakePusher) SendNotificationComment(toUserID int64, title string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.pushed = append(p.pushed, pushedEvent{to: toUserID, title: title})
}

func (p *fakePusher) MatchingNotification(fromUserID, toUserID int64, title string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.pushed = append(p.pushed, pushedEvent{from: fromUserID, to: toUserID, title: title})
}

func (p *fakePusher) events() []pushedEvent {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]pushedEvent(nil), p.pushed...)
}

func TestNotifyPersistsUnread(t *testing.T) {
	repo := newFakeNotificationRepo()
	pusher := &fakePusher{}
	svc := NewNotificationService(repo, pusher, zerolog.Nop())

	blogID := int64(7)
	if err := svc.Notify(context.Background(), 1, 2, "New comment", &blogID); err != nil {
		t.Fatalf("notify failed: %v", err)
	}

	stored, err := repo.ListByRecipient(context.Background(), 2)
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(stored) != 1 {
		t.Fatalf("expected one stored notification, got %d", len(stored))
	}
	if stored[0].Status != models.NotificationStatusUnread {
		t.Fatalf("new notifications must be UNREAD, got %s", stored[0].Status)
	}
	if stored[0].BlogID == nil || *stored[0].BlogID != blogID {
		t.Fatalf("expected the blog reference to persist, got %v", stored[0].BlogID)
	}

	events := pusher.events()
	if len(events) != 1 || events[0].to != 2 || events[0].title != "New comment" {
		t.Fatalf("expected one push to the recipient, got %v", events)
	}
}

func TestNotifyPushesEvenWhenPersistFails(t *testing.T) {
	repo := newFakeNotificationRepo()
	repo.createErr = errors.New("insert failed")
	pusher := &fakePusher{}
	svc := NewNotificationService(repo, pusher, zerolog.Nop())

	err := svc.Notify(context.Background(), 1, 2, "hello", nil)
	if err == nil {
		t.Fatalf("expected the persistence error to surface")
	}

	// The socket push happens before the insert resolves, so a recipient
	// with an open connection still sees the event
	if got := len(pusher.events()); got != 1 {
		t.Fatalf("expected the push despite the failed insert, got %d pushes", got)
	}
}

func TestNotifyMatchingPushesEvenWhenPersistFails(t *testing.T) {
	repo := newFakeNotificationRepo()
	repo.createErr = errors.New("insert failed")
	pusher := &fakePusher{}
	svc := NewNotificationService(repo, pusher, zerolog.Nop())

	if err := svc.NotifyMatching(context.Background(), 3, 4, "request"); err == nil {
		t.Fatalf("expected the persistence error to surface")
	}

	events := pusher.events()
	if len(events) != 1 || events[0].from != 3 || events[0].to != 4 {
		t.Fatalf("expected the matching push despite the failed insert, got %v", events)
	}
}

func TestNotifyWithoutHub(t *testing.T) {
	repo := newFakeNotificationRepo()
	svc := NewNotificationService(repo, nil, zerolog.Nop())

	if err := svc.Notify(context.Background(), 1, 2, "quiet", nil); err != nil {
		t.Fatalf("notify without a hub should still persist: %v", err)
	}

	count, err := svc.CountUnread(context.Background(), 2)
	if err != nil {
		t.Fatalf("count failed: %v", err)
	}
	if count != 1 {
		t.Fatalf("expected 1 unread, got %d", count)
	}
}

func TestMarkReadScopedToRecipient(t *testing.T) {
	repo := newFakeNotificationRepo()
	svc := NewNotificationService(repo, nil, zerolog.Nop())

	if err := svc.Notify(context.Background(), 1, 2, "yours", nil); err != nil {
		t.Fatalf("notify failed: %v", err)
	}
	stored, _ := repo.ListByRecipient(context.Background(), 2)

	if err := svc.MarkRead(context.Background(), stored[0].ID, 99); !errors.Is(err, apperrors.ErrNotificationNotFound) {
		t.Fatalf("other users must not acknowledge the notification, got %v", err)
	}
	if err := svc.MarkRead(context.Background(), stored[0].ID, 2); err != nil {
		t.Fatalf("recipient mark read failed: %v", err)
	}

	count, _ := svc.CountUnread(context.Background(), 2)
	if count != 0 {
		t.Fatalf("expected 0 unread after mark read, got %d", count)
	}
}
