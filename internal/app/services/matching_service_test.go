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

type matchingFixture struct {
	svc          *MatchingService
	userRepo     *fakeUserRepo
	matchingRepo *fakeMatchingRepo
	notification *fakeNotificationSvc
	email        *fakeEmailService
	student      *models.User
	tutor        *models.User
}

func newMatchingFixture(staffCount int) *matchingFixture {
	userRepo := newFakeUserRepo()
	matchingRepo := newFakeMatchingRepo()
	notification := newFakeNotificationSvc()
	emailSvc := &fakeEmailService{}

	student := userRepo.add(&models.User{Email: "student@example.com", FirstName: "Stu", LastName: "Dent", RoleType: models.RoleUser, IsActive: true})
	tutor := userRepo.add(&models.User{Email: "tutor@example.com", FirstName: "Tu", LastName: "Tor", RoleType: models.RoleTutor, IsActive: true})
	for i := 0; i < staffCount; i++ {
		userRepo.add(&models.User{Email: "staff@example.com", FirstName: "Staff", LastName: "Member", RoleType: models.RoleStaff, IsActive: true})
	}

	return &matchingFixture{
		svc:          NewMatchingService(matchingRepo, userRepo, notification, emailSvc, zerolog.Nop()),
		userRepo:     userRepo,
		matchingRepo: matchingRepo,
		notification: notification,
		email:        emailSvc,
		student:      student,
		tutor:        tutor,
	}
}

func TestCreateRequestNotifiesEveryStaffMember(t *testing.T) {
	f := newMatchingFixture(3)

	resp, err := f.svc.CreateRequest(context.Background(), f.student.ID, &dto.CreateMatchingRequestRequest{TutorID: f.tutor.ID})
	if err != nil {
		t.Fatalf("create request failed: %v", err)
	}
	if resp.Status != string(models.RequestStatusPending) {
		t.Fatalf("expected PENDING, got %s", resp.Status)
	}
	if got := len(f.notification.deliveredTo()); got != 3 {
		t.Fatalf("expected 3 staff notifications, got %d", got)
	}
}

func TestCreateRequestStaffNotificationFailureIsIsolated(t *testing.T) {
	f := newMatchingFixture(3)

	staff, _ := f.userRepo.GetByRole(context.Background(), models.RoleStaff)
	f.notification.failFor[staff[0].ID] = errors.New("connection reset")

	if _, err := f.svc.CreateRequest(context.Background(), f.student.ID, &dto.CreateMatchingRequestRequest{TutorID: f.tutor.ID}); err != nil {
		t.Fatalf("a failing staff notification must not fail the request: %v", err)
	}
	if got := len(f.notification.deliveredTo()); got != 2 {
		t.Fatalf("expected the 2 healthy staff members to be notified, got %d", got)
	}
}

func TestCreateRequestRejectsUnverifiableTutor(t *testing.T) {
	f := newMatchingFixture(1)

	// Unknown tutor id
	if _, err := f.svc.CreateRequest(context.Background(), f.student.ID, &dto.CreateMatchingRequestRequest{TutorID: 9999}); !errors.Is(err, apperrors.ErrTutorNotFound) {
		t.Fatalf("expected ErrTutorNotFound for unknown id, got %v", err)
	}

	// Existing user who is not a tutor
	other := f.userRepo.add(&models.User{Email: "other@example.com", RoleType: models.RoleUser, IsActive: true})
	if _, err := f.svc.CreateRequest(context.Background(), f.student.ID, &dto.CreateMatchingRequestRequest{TutorID: other.ID}); !errors.Is(err, apperrors.ErrTutorNotFound) {
		t.Fatalf("expected ErrTutorNotFound for non-tutor, got %v", err)
	}

	if got := len(f.notification.deliveredTo()); got != 0 {
		t.Fatalf("rejected requests must not notify staff, got %d notifications", got)
	}
}

func TestCreateRequestDuplicatePendingConflicts(t *testing.T) {
	f := newMatchingFixture(1)

	if _, err := f.svc.CreateRequest(context.Background(), f.student.ID, &dto.CreateMatchingRequestRequest{TutorID: f.tutor.ID}); err != nil {
		t.Fatalf("first request failed: %v", err)
	}
	if _, err := f.svc.CreateRequest(context.Background(), f.student.ID, &dto.CreateMatchingRequestRequest{TutorID: f.tutor.ID}); !errors.Is(err, apperrors.ErrConflict) {
		t.Fatalf("expected conflict for duplicate pending request, got %v", err)
	}
}

func TestApproveEstablishesMatchingAndLinksBothSides(t *testing.T) {
	f := newMatchingFixture(1)
	staff, _ := f.userRepo.GetByRole(context.Background(), models.RoleStaff)

	resp, err := f.svc.CreateRequest(context.Background(), f.student.ID, &dto.CreateMatchingRequestRequest{TutorID: f.tutor.ID})
	if err != nil {
		t.Fatalf("create request failed: %v", err)
	}

	matching, err := f.svc.Approve(context.Background(), resp.ID, staff[0].ID)
	if err != nil {
		t.Fatalf("approve failed: %v", err)
	}
	if matching.Status != models.MatchingStatusOn {
		t.Fatalf("expected matching status ON, got %s", matching.Status)
	}

	student, _ := f.userRepo.GetByID(context.Background(), f.student.ID)
	if student.TutorID == nil || *student.TutorID != f.tutor.ID {
		t.Fatalf("student should be linked to the tutor, got %v", student.TutorID)
	}

	tutor, _ := f.userRepo.GetByID(context.Background(), f.tutor.ID)
	found := false
	for _, member := range tutor.Members {
		if member == f.student.ID {
			found = true
		}
	}
	if !found {
		t.Fatalf("tutor members should contain the student, got %v", tutor.Members)
	}

	request, _ := f.matchingRepo.GetRequestByID(context.Background(), resp.ID)
	if request.Status != models.RequestStatusApproved {
		t.Fatalf("expected APPROVED, got %s", request.Status)
	}
}

func TestApproveAlreadyDecidedRequest(t *testing.T) {
	f := newMatchingFixture(1)
	staff, _ := f.userRepo.GetByRole(context.Background(), models.RoleStaff)

	resp, err := f.svc.CreateRequest(context.Background(), f.student.ID, &dto.CreateMatchingRequestRequest{TutorID: f.tutor.ID})
	if err != nil {
		t.Fatalf("create request failed: %v", err)
	}

	if _, err := f.svc.Approve(context.Background(), resp.ID, staff[0].ID); err != nil {
		t.Fatalf("first approve failed: %v", err)
	}
	if _, err := f.svc.Approve(context.Background(), resp.ID, staff[0].ID); !errors.Is(err, apperrors.ErrRequestAlreadyDecided) {
		t.Fatalf("expected ErrRequestAlreadyDecided, got %v", err)
	}
	if err := f.svc.Reject(context.Background(), resp.ID, staff[0].ID); !errors.Is(err, apperrors.ErrRequestAlreadyDecided) {
		t.Fatalf("expected ErrRequestAlreadyDecided on reject, got %v", err)
	}
}

func TestApproveMissingRequest(t *testing.T) {
	f := newMatchingFixture(1)
	staff, _ := f.userRepo.GetByRole(context.Background(), models.RoleStaff)

	if _, err := f.svc.Approve(context.Background(), 424242, staff[0].ID); !errors.Is(err, apperrors.ErrMatchingRequestNotFound) {
		t.Fatalf("expected ErrMatchingRequestNotFound, got %v", err)
	}
}

func TestRejectNotifiesStudent(t *testing.T) {
	f := newMatchingFixture(1)
	staff, _ := f.userRepo.GetByRole(context.Background(), models.RoleStaff)

	resp, err := f.svc.CreateRequest(context.Background(), f.student.ID, &dto.CreateMatchingRequestRequest{TutorID: f.tutor.ID})
	if err != nil {
		t.Fatalf("create request failed: %v", err)
	}

	before := len(f.notification.deliveredTo())
	if err := f.svc.Reject(context.Background(), resp.ID, staff[0].ID); err != nil {
		t.Fatalf("reject failed: %v", err)
	}

	delivered := f.notification.deliveredTo()
	if len(delivered) != before+1 || delivered[len(delivered)-1] != f.student.ID {
		t.Fatalf("expected one rejection notification to the student, got %v", delivered)
	}
}

func TestListRequestsScopedByRole(t *testing.T) {
	f := newMatchingFixture(1)
	other := f.userRepo.add(&models.User{Email: "other@example.com", RoleType: models.RoleUser, IsActive: true})
	tutor2 := f.userRepo.add(&models.User{Email: "tutor2@example.com", RoleType: models.RoleTutor, IsActive: true})

	if _, err := f.svc.CreateRequest(context.Background(), f.student.ID, &dto.CreateMatchingRequestRequest{TutorID: f.tutor.ID}); err != nil {
		t.Fatalf("request failed: %v", err)
	}
	if _, err := f.svc.CreateRequest(context.Background(), other.ID, &dto.CreateMatchingRequestRequest{TutorID: tutor2.ID}); err != nil {
		t.Fatalf("request failed: %v", err)
	}

	own, err := f.svc.ListRequests(context.Background(), f.student.ID, models.RoleUser, nil)
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(own) != 1 || own[0].StudentID != f.student.ID {
		t.Fatalf("students must only see their own requests, got %v", own)
	}

	all, err := f.svc.ListRequests(context.Background(), 0, models.RoleStaff, nil)
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(all) != 2 {
		t.Fatalf("staff should see every request, got %d", len(all))
	}
}
