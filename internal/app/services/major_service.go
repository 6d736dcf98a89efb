package services

import (
	"context"

	"github.com/rs/zerolog"
	"github.com/tutorlink/tutorlink/internal/app/models"
	"github.com/tutorlink/tutorlink/internal/app/models/dto"
	"github.com/tutorlink/tutorlink/internal/app/repositories"
)

// MajorService handles the subject area catalog
type MajorService struct {
	majorRepo repositories.IMajorRepository
	logger    zerolog.Logger
}

// NewMajorService creates a new MajorService
func NewMajorService(majorRepo repositories.IMajorRepository, logger zerolog.Logger) *MajorService {
	return &MajorService{
		majorRepo: majorRepo,
		logger:    logger,
	}
}

// CreateMajor adds a subject area
func (s *MajorService) CreateMajor(ctx context.Context, req *dto.CreateMajorRequest) (*models.Major, error) {
	major := &models.Major{
		Name:        req.Name,
		Description: req.Description,
	}
	if err := s.majorRepo.Create(ctx, major); err != nil {
		return nil, err
	}
	return major, nil
}

// GetMajor retrieves a single subject area
func (s *MajorService) GetMajor(ctx context.Context, id int64) (*models.Major, error) {
	return s.majorRepo.GetByID(ctx, id)
}

// ListMajors retrieves every subject area
func (s *MajorService) ListMajors(ctx context.Context) ([]*models.Major, error) {
	return s.majorRepo.GetAll(ctx)
}

// UpdateMajor edits a subject area
func (s *MajorService) UpdateMajor(ctx context.Context, id int64, req *dto.UpdateMajorRequest) (*models.Major, error) {
	if err := s.majorRepo.Update(ctx, id, req.Name, req.Description); err != nil {
		return nil, err
	}
	return s.majorRepo.GetByID(ctx, id)
}

// DeleteMajor removes a subject area
func (s *MajorService) DeleteMajor(ctx context.Context, id int64) error {
	return s.majorRepo.Delete(ctx, id)
}
