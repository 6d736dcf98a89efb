package services

import (
	"context"
	"time"

	"github.com/rs/zerolog"
	"github.com/tutorlink/tutorlink/internal/app/models"
	"github.com/tutorlink/tutorlink/internal/app/models/dto"
	"github.com/tutorlink/tutorlink/internal/app/repositories"
	"github.com/tutorlink/tutorlink/internal/pkg/apperrors"
)

// ScheduleService handles recurring meeting proposals and confirmed
// schedules
type ScheduleService struct {
	scheduleRepo    repositories.IScheduleRepository
	slotRepo        repositories.ISlotRepository
	userRepo        repositories.IUserRepository
	notificationSvc INotificationService
	logger          zerolog.Logger
}

// NewScheduleService creates a new ScheduleService
func NewScheduleService(
	scheduleRepo repositories.IScheduleRepository,
	slotRepo repositories.ISlotRepository,
	userRepo repositories.IUserRepository,
	notificationSvc INotificationService,
	logger zerolog.Logger,
) *ScheduleService {
	return &ScheduleService{
		scheduleRepo:    scheduleRepo,
		slotRepo:        slotRepo,
		userRepo:        userRepo,
		notificationSvc: notificationSvc,
		logger:          logger,
	}
}

// CreateRequest proposes a recurring meeting to another user
func (s *ScheduleService) CreateRequest(ctx context.Context, senderID int64, req *dto.CreateScheduleRequestRequest) (*dto.ScheduleRequestResponse, error) {
	if _, err := s.userRepo.GetByID(ctx, req.ReceiverID); err != nil {
		return nil, err
	}

	slot, err := s.slotRepo.GetByID(ctx, req.SlotID)
	if err != nil {
		return nil, err
	}

	request := &models.ScheduleRequest{
		SenderID:   senderID,
		ReceiverID: req.ReceiverID,
		SlotID:     req.SlotID,
		Days:       req.Days,
	}
	if err := s.scheduleRepo.CreateRequest(ctx, request); err != nil {
		return nil, err
	}

	if err := s.notificationSvc.Notify(ctx, senderID, req.ReceiverID, "You received a new schedule request", nil); err != nil {
		s.logger.Warn().Err(err).Int64("receiverID", req.ReceiverID).Msg("Failed to notify schedule request receiver")
	}

	return newScheduleRequestResponse(request, slot), nil
}

// ListRequests retrieves schedule requests the caller sent or received
func (s *ScheduleService) ListRequests(ctx context.Context, userID int64) ([]*dto.ScheduleRequestResponse, error) {
	requests, err := s.scheduleRepo.ListRequestsForUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	responses := make([]*dto.ScheduleRequestResponse, 0, len(requests))
	for _, request := range requests {
		responses = append(responses, newScheduleRequestResponse(request, nil))
	}

	return responses, nil
}

// Accept confirms a pending schedule request. Only the receiver may accept;
// acceptance materializes the schedule and notifies the sender.
func (s *ScheduleService) Accept(ctx context.Context, requestID, callerID int64) (*dto.ScheduleResponse, error) {
	request, err := s.scheduleRepo.GetRequestByID(ctx, requestID)
	if err != nil {
		return nil, err
	}

	if request.ReceiverID != callerID {
		return nil, apperrors.ErrPermissionDenied
	}

	if err := s.scheduleRepo.UpdateRequestStatus(ctx, requestID, models.RequestStatusApproved); err != nil {
		return nil, err
	}

	schedule := &models.Schedule{
		UserID:     request.SenderID,
		ReceiverID: request.ReceiverID,
		SlotID:     request.SlotID,
		Days:       request.Days,
	}
	if err := s.scheduleRepo.CreateSchedule(ctx, schedule); err != nil {
		return nil, err
	}

	if err := s.notificationSvc.Notify(ctx, callerID, request.SenderID, "Your schedule request was accepted", nil); err != nil {
		s.logger.Warn().Err(err).Int64("senderID", request.SenderID).Msg("Failed to notify schedule request sender")
	}

	return newScheduleResponse(schedule, nil), nil
}

// Decline rejects a pending schedule request. Only the receiver may decline.
func (s *ScheduleService) Decline(ctx context.Context, requestID, callerID int64) error {
	request, err := s.scheduleRepo.GetRequestByID(ctx, requestID)
	if err != nil {
		return err
	}

	if request.ReceiverID != callerID {
		return apperrors.ErrPermissionDenied
	}

	if err := s.scheduleRepo.UpdateRequestStatus(ctx, requestID, models.RequestStatusRejected); err != nil {
		return err
	}

	if err := s.notificationSvc.Notify(ctx, callerID, request.SenderID, "Your schedule request was declined", nil); err != nil {
		s.logger.Warn().Err(err).Int64("senderID", request.SenderID).Msg("Failed to notify schedule request sender")
	}

	return nil
}

// ListSchedules retrieves the caller's confirmed schedules
func (s *ScheduleService) ListSchedules(ctx context.Context, userID int64) ([]*dto.ScheduleResponse, error) {
	schedules, err := s.scheduleRepo.ListSchedulesForUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	responses := make([]*dto.ScheduleResponse, 0, len(schedules))
	for _, schedule := range schedules {
		responses = append(responses, newScheduleResponse(schedule, nil))
	}

	return responses, nil
}

// CreateSlot adds a bookable time window
func (s *ScheduleService) CreateSlot(ctx context.Context, name, timeStart, timeEnd string) (*dto.SlotResponse, error) {
	slot := &models.Slot{
		Name:      name,
		TimeStart: timeStart,
		TimeEnd:   timeEnd,
	}
	if err := s.slotRepo.Create(ctx, slot); err != nil {
		return nil, err
	}
	return newSlotResponse(slot), nil
}

// ListSlots retrieves every bookable time window
func (s *ScheduleService) ListSlots(ctx context.Context) ([]*dto.SlotResponse, error) {
	slots, err := s.slotRepo.GetAll(ctx)
	if err != nil {
		return nil, err
	}

	responses := make([]*dto.SlotResponse, 0, len(slots))
	for _, slot := range slots {
		responses = append(responses, newSlotResponse(slot))
	}

	return responses, nil
}

// DeleteSlot removes a bookable time window
func (s *ScheduleService) DeleteSlot(ctx context.Context, id int64) error {
	return s.slotRepo.Delete(ctx, id)
}

func newScheduleRequestResponse(request *models.ScheduleRequest, slot *models.Slot) *dto.ScheduleRequestResponse {
	resp := &dto.ScheduleRequestResponse{
		ID:         request.ID,
		SenderID:   request.SenderID,
		ReceiverID: request.ReceiverID,
		SlotID:     request.SlotID,
		Days:       request.Days,
		Status:     string(request.Status),
		CreatedAt:  request.CreatedAt.Format(time.RFC3339),
	}
	if slot != nil {
		resp.SlotName = slot.Name
	}
	return resp
}

func newScheduleResponse(schedule *models.Schedule, slot *models.Slot) *dto.ScheduleResponse {
	resp := &dto.ScheduleResponse{
		ID:         schedule.ID,
		UserID:     schedule.UserID,
		ReceiverID: schedule.ReceiverID,
		SlotID:     schedule.SlotID,
		Days:       schedule.Days,
		CreatedAt:  schedule.CreatedAt.Format(time.RFC3339),
	}
	if slot != nil {
		resp.SlotName = slot.Name
	}
	return resp
}

func newSlotResponse(slot *models.Slot) *dto.SlotResponse {
	return &dto.SlotResponse{
		ID:        slot.ID,
		Name:      slot.Name,
		TimeStart: slot.TimeStart,
		TimeEnd:   slot.TimeEnd,
	}
}
