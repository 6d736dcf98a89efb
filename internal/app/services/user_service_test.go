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

func newTestUserService() (*UserService, *fakeUserRepo, *fakeSpecialUserRepo) {
	userRepo := newFakeUserRepo()
	specialUserRepo := newFakeSpecialUserRepo()
	svc := NewUserService(userRepo, specialUserRepo, nil, zerolog.Nop())
	return svc, userRepo, specialUserRepo
}

func TestListUsersPaginationMetadata(t *testing.T) {
	svc, userRepo, _ := newTestUserService()
	for i := 0; i < 3; i++ {
		userRepo.add(&models.User{Email: "u@example.com", RoleType: models.RoleUser, IsActive: true})
	}

	resp, err := svc.ListUsers(context.Background(), 2, 2)
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}

	p := resp.Pagination
	if p.TotalItems != 3 {
		t.Fatalf("expected 3 total items, got %d", p.TotalItems)
	}
	if p.CurrentPage != 2 || p.PageSize != 2 {
		t.Fatalf("expected page 2 of size 2, got page %d size %d", p.CurrentPage, p.PageSize)
	}
	if p.TotalPages != 2 {
		t.Fatalf("expected 2 pages, got %d", p.TotalPages)
	}
}

func TestListTutorsOnlyReturnsTutors(t *testing.T) {
	svc, userRepo, _ := newTestUserService()
	userRepo.add(&models.User{Email: "student@example.com", RoleType: models.RoleUser, IsActive: true})
	tutor := userRepo.add(&models.User{Email: "tutor@example.com", RoleType: models.RoleTutor, IsActive: true})

	tutors, err := svc.ListTutors(context.Background())
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(tutors) != 1 || tutors[0].ID != tutor.ID {
		t.Fatalf("expected only the tutor, got %v", tutors)
	}
}

func TestCreateSpecialUserRejectsUnknownRole(t *testing.T) {
	svc, _, _ := newTestUserService()

	if _, err := svc.CreateSpecialUser(context.Background(), &dto.CreateSpecialUserRequest{
		Email:    "x@example.com",
		RoleType: "OVERLORD",
	}); !errors.Is(err, apperrors.ErrInvalidRole) {
		t.Fatalf("expected ErrInvalidRole, got %v", err)
	}
}

func TestUpdateProfileKeepsUnsetFields(t *testing.T) {
	svc, userRepo, _ := newTestUserService()
	user := userRepo.add(&models.User{
		Email:     "me@example.com",
		FirstName: "Old",
		LastName:  "Name",
		RoleType:  models.RoleUser,
		IsActive:  true,
	})

	resp, err := svc.UpdateProfile(context.Background(), user.ID, &dto.UpdateProfileRequest{FirstName: "New"}, nil)
	if err != nil {
		t.Fatalf("update failed: %v", err)
	}
	if resp.FirstName != "New" || resp.LastName != "Name" {
		t.Fatalf("expected only the first name to change, got %s %s", resp.FirstName, resp.LastName)
	}
}
