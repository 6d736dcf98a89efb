package services

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"github.com/tutorlink/tutorlink/internal/app/models"
	"github.com/tutorlink/tutorlink/internal/app/models/dto"
	"github.com/tutorlink/tutorlink/internal/app/repositories"
	"github.com/tutorlink/tutorlink/internal/pkg/apperrors"
	"github.com/tutorlink/tutorlink/internal/pkg/email"
)

// MatchingService handles the student-tutor matching workflow
type MatchingService struct {
	matchingRepo    repositories.IMatchingRepository
	userRepo        repositories.IUserRepository
	notificationSvc INotificationService
	emailService    email.EmailService
	logger          zerolog.Logger
}

// NewMatchingService creates a new MatchingService
func NewMatchingService(
	matchingRepo repositories.IMatchingRepository,
	userRepo repositories.IUserRepository,
	notificationSvc INotificationService,
	emailService email.EmailService,
	logger zerolog.Logger,
) *MatchingService {
	return &MatchingService{
		matchingRepo:    matchingRepo,
		userRepo:        userRepo,
		notificationSvc: notificationSvc,
		emailService:    emailService,
		logger:          logger,
	}
}

// CreateRequest files a matching request toward a tutor and alerts every
// staff member. The tutor is verified up front; a lookup failure rejects the
// request rather than letting an unverifiable reference through.
func (s *MatchingService) CreateRequest(ctx context.Context, studentID int64, req *dto.CreateMatchingRequestRequest) (*dto.MatchingRequestResponse, error) {
	student, err := s.userRepo.GetByID(ctx, studentID)
	if err != nil {
		return nil, err
	}

	tutor, err := s.userRepo.GetByID(ctx, req.TutorID)
	if err != nil {
		return nil, apperrors.ErrTutorNotFound
	}
	if tutor.RoleType != models.RoleTutor {
		return nil, apperrors.ErrTutorNotFound
	}

	pending, err := s.matchingRepo.HasPendingRequest(ctx, studentID, req.TutorID)
	if err != nil {
		return nil, err
	}
	if pending {
		return nil, apperrors.NewConflictError("a pending request toward this tutor already exists")
	}

	request := &models.MatchingRequest{
		StudentID: studentID,
		TutorID:   req.TutorID,
	}
	if err := s.matchingRepo.CreateRequest(ctx, request); err != nil {
		return nil, err
	}

	s.notifyStaff(ctx, student, tutor)

	return newMatchingRequestResponse(request, student, tutor), nil
}

// notifyStaff fans out a matching request alert to every staff member. Each
// delivery runs in its own goroutine; one failing staff member never blocks
// or cancels the others.
func (s *MatchingService) notifyStaff(ctx context.Context, student, tutor *models.User) {
	staff, err := s.userRepo.GetByRole(ctx, models.RoleStaff)
	if err != nil {
		s.logger.Error().Err(err).Msg("Failed to load staff for matching request fan-out")
		return
	}

	title := fmt.Sprintf("%s %s requested tutor %s %s",
		student.FirstName, student.LastName, tutor.FirstName, tutor.LastName)

	// The request handler returns before deliveries finish; detach from the
	// request context so cancellation does not cut the fan-out short.
	bgCtx := context.WithoutCancel(ctx)

	var wg sync.WaitGroup
	for _, member := range staff {
		wg.Add(1)
		go func(staffID int64) {
			defer wg.Done()
			defer func() {
				if r := recover(); r != nil {
					s.logger.Error().Interface("panic", r).Int64("staffID", staffID).Msg("Panic during staff notification")
				}
			}()

			notifyCtx, cancel := context.WithTimeout(bgCtx, 10*time.Second)
			defer cancel()

			if err := s.notificationSvc.NotifyMatching(notifyCtx, student.ID, staffID, title); err != nil {
				s.logger.Warn().Err(err).Int64("staffID", staffID).Msg("Failed to notify staff member")
			}
		}(member.ID)
	}
	wg.Wait()
}

// ListRequests retrieves matching requests. Students only ever see their own;
// staff and admins see everything.
func (s *MatchingService) ListRequests(ctx context.Context, callerID int64, callerRole models.RoleType, status *models.RequestStatus) ([]*dto.MatchingRequestResponse, error) {
	var studentFilter *int64
	if callerRole != models.RoleStaff && callerRole != models.RoleAdmin {
		studentFilter = &callerID
	}

	requests, err := s.matchingRepo.ListRequests(ctx, studentFilter, status)
	if err != nil {
		return nil, err
	}

	responses := make([]*dto.MatchingRequestResponse, 0, len(requests))
	for _, request := range requests {
		responses = append(responses, newMatchingRequestResponse(request, nil, nil))
	}

	return responses, nil
}

// Approve transitions a pending request to APPROVED, establishes the
// matching, links both sides and notifies them
func (s *MatchingService) Approve(ctx context.Context, requestID, staffID int64) (*dto.MatchingResponse, error) {
	request, err := s.matchingRepo.GetRequestByID(ctx, requestID)
	if err != nil {
		return nil, err
	}

	if err := s.matchingRepo.UpdateRequestStatus(ctx, requestID, models.RequestStatusApproved, staffID); err != nil {
		return nil, err
	}

	matching := &models.Matching{
		StudentID: request.StudentID,
		TutorID:   request.TutorID,
	}
	if err := s.matchingRepo.CreateMatching(ctx, matching); err != nil {
		return nil, err
	}

	if err := s.userRepo.SetTutor(ctx, request.StudentID, &request.TutorID); err != nil {
		s.logger.Error().Err(err).Int64("studentID", request.StudentID).Msg("Failed to link student to tutor")
	}
	if err := s.userRepo.AddMember(ctx, request.TutorID, request.StudentID); err != nil {
		s.logger.Error().Err(err).Int64("tutorID", request.TutorID).Msg("Failed to add student to tutor members")
	}

	if err := s.notificationSvc.NotifyMatching(ctx, staffID, request.StudentID, "Your matching request was approved"); err != nil {
		s.logger.Warn().Err(err).Int64("studentID", request.StudentID).Msg("Failed to notify student about approval")
	}
	if err := s.notificationSvc.NotifyMatching(ctx, staffID, request.TutorID, "You have been matched with a new student"); err != nil {
		s.logger.Warn().Err(err).Int64("tutorID", request.TutorID).Msg("Failed to notify tutor about approval")
	}

	s.sendDecisionEmail(ctx, request.StudentID, "Approved")

	return &dto.MatchingResponse{
		ID:        matching.ID,
		StudentID: matching.StudentID,
		TutorID:   matching.TutorID,
		Status:    string(matching.Status),
		CreatedAt: matching.CreatedAt.Format(time.RFC3339),
	}, nil
}

// Reject transitions a pending request to REJECTED and notifies the student
func (s *MatchingService) Reject(ctx context.Context, requestID, staffID int64) error {
	request, err := s.matchingRepo.GetRequestByID(ctx, requestID)
	if err != nil {
		return err
	}

	if err := s.matchingRepo.UpdateRequestStatus(ctx, requestID, models.RequestStatusRejected, staffID); err != nil {
		return err
	}

	if err := s.notificationSvc.NotifyMatching(ctx, staffID, request.StudentID, "Your matching request was rejected"); err != nil {
		s.logger.Warn().Err(err).Int64("studentID", request.StudentID).Msg("Failed to notify student about rejection")
	}

	s.sendDecisionEmail(ctx, request.StudentID, "Rejected")

	return nil
}

// sendDecisionEmail mails the student about a decision, best effort
func (s *MatchingService) sendDecisionEmail(ctx context.Context, studentID int64, decision string) {
	student, err := s.userRepo.GetByID(ctx, studentID)
	if err != nil {
		s.logger.Warn().Err(err).Int64("studentID", studentID).Msg("Failed to load student for decision email")
		return
	}

	go func() {
		if err := s.emailService.SendMatchingDecisionEmail(student.Email, student.FirstName, decision); err != nil {
			s.logger.Warn().Err(err).Str("email", student.Email).Msg("Failed to send decision email")
		}
	}()
}

// ListMatchings retrieves matchings. Students and tutors only see their own;
// staff and admins see everything.
func (s *MatchingService) ListMatchings(ctx context.Context, callerID int64, callerRole models.RoleType) ([]*dto.MatchingResponse, error) {
	var userFilter *int64
	if callerRole != models.RoleStaff && callerRole != models.RoleAdmin {
		userFilter = &callerID
	}

	matchings, err := s.matchingRepo.ListMatchings(ctx, userFilter)
	if err != nil {
		return nil, err
	}

	responses := make([]*dto.MatchingResponse, 0, len(matchings))
	for _, m := range matchings {
		responses = append(responses, &dto.MatchingResponse{
			ID:        m.ID,
			StudentID: m.StudentID,
			TutorID:   m.TutorID,
			Status:    string(m.Status),
			CreatedAt: m.CreatedAt.Format(time.RFC3339),
		})
	}

	return responses, nil
}

func newMatchingRequestResponse(request *models.MatchingRequest, student, tutor *models.User) *dto.MatchingRequestResponse {
	resp := &dto.MatchingRequestResponse{
		ID:        request.ID,
		StudentID: request.StudentID,
		TutorID:   request.TutorID,
		Status:    string(request.Status),
		StaffID:   request.StaffID,
		CreatedAt: request.CreatedAt.Format(time.RFC3339),
	}
	if student != nil {
		resp.StudentName = student.FirstName + " " + student.LastName
	}
	if tutor != nil {
		resp.TutorName = tutor.FirstName + " " + tutor.LastName
	}
	return resp
}
