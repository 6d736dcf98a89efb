package services

import (
	"context"
	"fmt"
	"mime/multipart"

	"github.com/rs/zerolog"
	"github.com/tutorlink/tutorlink/internal/app/models"
	"github.com/tutorlink/tutorlink/internal/app/models/dto"
	"github.com/tutorlink/tutorlink/internal/app/repositories"
	"github.com/tutorlink/tutorlink/internal/pkg/apperrors"
	"github.com/tutorlink/tutorlink/internal/pkg/filestorage"
	"github.com/tutorlink/tutorlink/internal/pkg/helpers"
)

// UserService handles user directory and profile operations
type UserService struct {
	userRepo        repositories.IUserRepository
	specialUserRepo repositories.ISpecialUserRepository
	fileStorage     filestorage.FileStorage
	logger          zerolog.Logger
}

// NewUserService creates a new UserService
func NewUserService(
	userRepo repositories.IUserRepository,
	specialUserRepo repositories.ISpecialUserRepository,
	fileStorage filestorage.FileStorage,
	logger zerolog.Logger,
) *UserService {
	return &UserService{
		userRepo:        userRepo,
		specialUserRepo: specialUserRepo,
		fileStorage:     fileStorage,
		logger:          logger,
	}
}

// GetUser retrieves a single user by ID
func (s *UserService) GetUser(ctx context.Context, id int64) (*dto.UserResponse, error) {
	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return dto.NewUserResponse(user), nil
}

// ListUsers retrieves a page of users
func (s *UserService) ListUsers(ctx context.Context, page, pageSize int) (*dto.PagedResponse, error) {
	offset, limit := helpers.CalculateOffsetLimit(page, pageSize)

	users, total, err := s.userRepo.GetAll(ctx, offset, limit)
	if err != nil {
		return nil, err
	}

	responses := make([]*dto.UserResponse, 0, len(users))
	for _, user := range users {
		responses = append(responses, dto.NewUserResponse(user))
	}

	return &dto.PagedResponse{
		Items:      responses,
		Pagination: helpers.NewPaginationInfo(total, page, pageSize),
	}, nil
}

// ListTutors retrieves every active tutor
func (s *UserService) ListTutors(ctx context.Context) ([]*dto.UserResponse, error) {
	tutors, err := s.userRepo.GetByRole(ctx, models.RoleTutor)
	if err != nil {
		return nil, err
	}

	responses := make([]*dto.UserResponse, 0, len(tutors))
	for _, tutor := range tutors {
		responses = append(responses, dto.NewUserResponse(tutor))
	}

	return responses, nil
}

// UpdateProfile updates the caller's own profile, optionally replacing the
// profile photo
func (s *UserService) UpdateProfile(ctx context.Context, userID int64, req *dto.UpdateProfileRequest, photo *multipart.FileHeader) (*dto.UserResponse, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	var photoURL *string
	if photo != nil {
		info, err := s.fileStorage.SaveFileWithPath(photo, "profiles")
		if err != nil {
			return nil, err
		}
		photoURL = &info.Path

		if user.ProfilePhotoURL != nil {
			if err := s.fileStorage.DeleteFile(*user.ProfilePhotoURL); err != nil {
				s.logger.Warn().Err(err).Int64("userID", userID).Msg("Failed to delete previous profile photo")
			}
		}
	}

	firstName := user.FirstName
	if req.FirstName != "" {
		firstName = req.FirstName
	}
	lastName := user.LastName
	if req.LastName != "" {
		lastName = req.LastName
	}

	if err := s.userRepo.UpdateProfile(ctx, userID, firstName, lastName, photoURL); err != nil {
		return nil, err
	}

	return s.GetUser(ctx, userID)
}

// CreateSpecialUser adds an entry to the registration allow-list
func (s *UserService) CreateSpecialUser(ctx context.Context, req *dto.CreateSpecialUserRequest) (*models.SpecialUser, error) {
	role := models.RoleType(req.RoleType)
	if !models.IsValidRole(role) {
		return nil, apperrors.ErrInvalidRole
	}

	specialUser := &models.SpecialUser{
		Email:    req.Email,
		RoleType: role,
	}

	if err := s.specialUserRepo.Create(ctx, specialUser); err != nil {
		return nil, err
	}

	return specialUser, nil
}

// ListSpecialUsers retrieves the full allow-list
func (s *UserService) ListSpecialUsers(ctx context.Context) ([]*models.SpecialUser, error) {
	return s.specialUserRepo.GetAll(ctx)
}

// DeleteSpecialUser removes an allow-list entry
func (s *UserService) DeleteSpecialUser(ctx context.Context, id int64) error {
	if err := s.specialUserRepo.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete special user: %w", err)
	}
	return nil
}
