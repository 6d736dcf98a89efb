package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/tutorlink/tutorlink/internal/app/models/dto"
	"github.com/tutorlink/tutorlink/internal/app/services"
	"github.com/tutorlink/tutorlink/internal/middleware"
)

// ScheduleController handles schedule requests, schedules and slots
type ScheduleController struct {
	scheduleService *services.ScheduleService
	logger          zerolog.Logger
}

// NewScheduleController creates a new ScheduleController
func NewScheduleController(scheduleService *services.ScheduleService, logger zerolog.Logger) *ScheduleController {
	return &ScheduleController{
		scheduleService: scheduleService,
		logger:          logger,
	}
}

// CreateRequest proposes a recurring meeting
// @Summary Propose a schedule
// @Tags schedules
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreateScheduleRequestRequest true "Proposed meeting"
// @Success 201 {object} dto.APIResponse{data=dto.ScheduleRequestResponse} "Request created"
// @Failure 404 {object} dto.ErrorResponse "Receiver or slot not found"
// @Router /schedule-requests [post]
func (c *ScheduleController) CreateRequest(ctx *gin.Context) {
	userID, ok := middleware.GetUserID(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, dto.NewErrorResponse(
			dto.NewErrorDetail(dto.ErrorCodeUnauthorized, "Authentication required")))
		return
	}

	var req dto.CreateScheduleRequestRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(dto.HandleValidationError(err)))
		return
	}

	response, err := c.scheduleService.CreateRequest(ctx.Request.Context(), userID, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.APIResponse{Data: response})
}

// ListRequests returns schedule requests the caller sent or received
// @Summary List schedule requests
// @Tags schedules
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=[]dto.ScheduleRequestResponse} "Requests"
// @Router /schedule-requests [get]
func (c *ScheduleController) ListRequests(ctx *gin.Context) {
	userID, ok := middleware.GetUserID(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, dto.NewErrorResponse(
			dto.NewErrorDetail(dto.ErrorCodeUnauthorized, "Authentication required")))
		return
	}

	requests, err := c.scheduleService.ListRequests(ctx.Request.Context(), userID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{Data: requests})
}

// Accept confirms a pending schedule request
// @Summary Accept a schedule request
// @Tags schedules
// @Produce json
// @Security BearerAuth
// @Param id path int true "Request ID"
// @Success 200 {object} dto.APIResponse{data=dto.ScheduleResponse} "Schedule confirmed"
// @Failure 403 {object} dto.ErrorResponse "Only the receiver may accept"
// @Failure 404 {object} dto.ErrorResponse "Request not found"
// @Failure 409 {object} dto.ErrorResponse "Request already decided"
// @Router /schedule-requests/{id}/accept [post]
func (c *ScheduleController) Accept(ctx *gin.Context) {
	userID, ok := middleware.GetUserID(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, dto.NewErrorResponse(
			dto.NewErrorDetail(dto.ErrorCodeUnauthorized, "Authentication required")))
		return
	}

	requestID, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	schedule, err := c.scheduleService.Accept(ctx.Request.Context(), requestID, userID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{Data: schedule})
}

// Decline rejects a pending schedule request
// @Summary Decline a schedule request
// @Tags schedules
// @Produce json
// @Security BearerAuth
// @Param id path int true "Request ID"
// @Success 200 {object} dto.APIResponse{data=dto.SuccessResponse} "Request declined"
// @Failure 403 {object} dto.ErrorResponse "Only the receiver may decline"
// @Failure 404 {object} dto.ErrorResponse "Request not found"
// @Router /schedule-requests/{id}/decline [post]
func (c *ScheduleController) Decline(ctx *gin.Context) {
	userID, ok := middleware.GetUserID(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, dto.NewErrorResponse(
			dto.NewErrorDetail(dto.ErrorCodeUnauthorized, "Authentication required")))
		return
	}

	requestID, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	if err := c.scheduleService.Decline(ctx.Request.Context(), requestID, userID); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{Data: dto.SuccessResponse{Message: "Schedule request declined"}})
}

// ListSchedules returns the caller's confirmed schedules
// @Summary List schedules
// @Tags schedules
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=[]dto.ScheduleResponse} "Schedules"
// @Router /schedules [get]
func (c *ScheduleController) ListSchedules(ctx *gin.Context) {
	userID, ok := middleware.GetUserID(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, dto.NewErrorResponse(
			dto.NewErrorDetail(dto.ErrorCodeUnauthorized, "Authentication required")))
		return
	}

	schedules, err := c.scheduleService.ListSchedules(ctx.Request.Context(), userID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{Data: schedules})
}

// CreateSlot adds a bookable time window
// @Summary Create a slot
// @Tags slots
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreateSlotRequest true "Slot definition"
// @Success 201 {object} dto.APIResponse{data=dto.SlotResponse} "Slot created"
// @Failure 403 {object} dto.ErrorResponse "Forbidden"
// @Router /slots [post]
func (c *ScheduleController) CreateSlot(ctx *gin.Context) {
	var req dto.CreateSlotRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(dto.HandleValidationError(err)))
		return
	}

	slot, err := c.scheduleService.CreateSlot(ctx.Request.Context(), req.Name, req.TimeStart, req.TimeEnd)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.APIResponse{Data: slot})
}

// ListSlots returns every bookable time window
// @Summary List slots
// @Tags slots
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=[]dto.SlotResponse} "Slots"
// @Router /slots [get]
func (c *ScheduleController) ListSlots(ctx *gin.Context) {
	slots, err := c.scheduleService.ListSlots(ctx.Request.Context())
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{Data: slots})
}

// DeleteSlot removes a bookable time window
// @Summary Delete a slot
// @Tags slots
// @Produce json
// @Security BearerAuth
// @Param id path int true "Slot ID"
// @Success 200 {object} dto.APIResponse{data=dto.SuccessResponse} "Slot deleted"
// @Failure 404 {object} dto.ErrorResponse "Slot not found"
// @Router /slots/{id} [delete]
func (c *ScheduleController) DeleteSlot(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	if err := c.scheduleService.DeleteSlot(ctx.Request.Context(), id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{Data: dto.SuccessResponse{Message: "Slot deleted"}})
}
