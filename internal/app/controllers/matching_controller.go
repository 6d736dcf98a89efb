package controllers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/tutorlink/tutorlink/internal/app/models"
	"github.com/tutorlink/tutorlink/internal/app/models/dto"
	"github.com/tutorlink/tutorlink/internal/app/services"
	"github.com/tutorlink/tutorlink/internal/middleware"
)

// MatchingController handles the matching request workflow
type MatchingController struct {
	matchingService *services.MatchingService
	logger          zerolog.Logger
}

// NewMatchingController creates a new MatchingController
func NewMatchingController(matchingService *services.MatchingService, logger zerolog.Logger) *MatchingController {
	return &MatchingController{
		matchingService: matchingService,
		logger:          logger,
	}
}

// CreateRequest files a matching request
// @Summary Request a tutor
// @Description Creates a pending matching request toward a tutor and alerts the staff
// @Tags matching
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreateMatchingRequestRequest true "Requested tutor"
// @Success 201 {object} dto.APIResponse{data=dto.MatchingRequestResponse} "Request created"
// @Failure 404 {object} dto.ErrorResponse "Tutor not found"
// @Failure 409 {object} dto.ErrorResponse "Pending request already exists"
// @Router /matching-requests [post]
func (c *MatchingController) CreateRequest(ctx *gin.Context) {
	userID, ok := middleware.GetUserID(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, dto.NewErrorResponse(
			dto.NewErrorDetail(dto.ErrorCodeUnauthorized, "Authentication required")))
		return
	}

	var req dto.CreateMatchingRequestRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(dto.HandleValidationError(err)))
		return
	}

	response, err := c.matchingService.CreateRequest(ctx.Request.Context(), userID, &req)
	if err != nil {
		c.logger.Warn().Err(err).Int64("studentID", userID).Int64("tutorID", req.TutorID).Msg("Failed to create matching request")
		middleware.HandleAPIError(ctx, err)
		return
	}

	c.logger.Info().Int64("requestID", response.ID).Int64("studentID", userID).Msg("Matching request created")

	ctx.JSON(http.StatusCreated, dto.APIResponse{Data: response})
}

// ListRequests returns matching requests visible to the caller
// @Summary List matching requests
// @Description Students see their own requests, staff and admins see all. Optional status filter.
// @Tags matching
// @Produce json
// @Security BearerAuth
// @Param status query string false "Filter by status" Enums(PENDING, APPROVED, REJECTED)
// @Success 200 {object} dto.APIResponse{data=[]dto.MatchingRequestResponse} "Requests"
// @Router /matching-requests [get]
func (c *MatchingController) ListRequests(ctx *gin.Context) {
	userID, ok := middleware.GetUserID(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, dto.NewErrorResponse(
			dto.NewErrorDetail(dto.ErrorCodeUnauthorized, "Authentication required")))
		return
	}

	var status *models.RequestStatus
	if raw := ctx.Query("status"); raw != "" {
		parsed := models.RequestStatus(strings.ToUpper(raw))
		status = &parsed
	}

	role := models.RoleType(middleware.GetRoleType(ctx))
	requests, err := c.matchingService.ListRequests(ctx.Request.Context(), userID, role, status)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{Data: requests})
}

// Approve approves a pending matching request
// @Summary Approve a matching request
// @Description Establishes the matching, links the student to the tutor and notifies both sides
// @Tags matching
// @Produce json
// @Security BearerAuth
// @Param id path int true "Request ID"
// @Success 200 {object} dto.APIResponse{data=dto.MatchingResponse} "Matching established"
// @Failure 404 {object} dto.ErrorResponse "Request not found"
// @Failure 409 {object} dto.ErrorResponse "Request already decided"
// @Router /matching-requests/{id}/approve [post]
func (c *MatchingController) Approve(ctx *gin.Context) {
	staffID, ok := middleware.GetUserID(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, dto.NewErrorResponse(
			dto.NewErrorDetail(dto.ErrorCodeUnauthorized, "Authentication required")))
		return
	}

	requestID, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	matching, err := c.matchingService.Approve(ctx.Request.Context(), requestID, staffID)
	if err != nil {
		c.logger.Warn().Err(err).Int64("requestID", requestID).Msg("Failed to approve matching request")
		middleware.HandleAPIError(ctx, err)
		return
	}

	c.logger.Info().Int64("requestID", requestID).Int64("staffID", staffID).Msg("Matching request approved")

	ctx.JSON(http.StatusOK, dto.APIResponse{Data: matching})
}

// Reject rejects a pending matching request
// @Summary Reject a matching request
// @Tags matching
// @Produce json
// @Security BearerAuth
// @Param id path int true "Request ID"
// @Success 200 {object} dto.APIResponse{data=dto.SuccessResponse} "Request rejected"
// @Failure 404 {object} dto.ErrorResponse "Request not found"
// @Failure 409 {object} dto.ErrorResponse "Request already decided"
// @Router /matching-requests/{id}/reject [post]
func (c *MatchingController) Reject(ctx *gin.Context) {
	staffID, ok := middleware.GetUserID(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, dto.NewErrorResponse(
			dto.NewErrorDetail(dto.ErrorCodeUnauthorized, "Authentication required")))
		return
	}

	requestID, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	if err := c.matchingService.Reject(ctx.Request.Context(), requestID, staffID); err != nil {
		c.logger.Warn().Err(err).Int64("requestID", requestID).Msg("Failed to reject matching request")
		middleware.HandleAPIError(ctx, err)
		return
	}

	c.logger.Info().Int64("requestID", requestID).Int64("staffID", staffID).Msg("Matching request rejected")

	ctx.JSON(http.StatusOK, dto.APIResponse{Data: dto.SuccessResponse{Message: "Matching request rejected"}})
}

// ListMatchings returns matchings visible to the caller
// @Summary List matchings
// @Description Students and tutors see their own matchings, staff and admins see all
// @Tags matching
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=[]dto.MatchingResponse} "Matchings"
// @Router /matchings [get]
func (c *MatchingController) ListMatchings(ctx *gin.Context) {
	userID, ok := middleware.GetUserID(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, dto.NewErrorResponse(
			dto.NewErrorDetail(dto.ErrorCodeUnauthorized, "Authentication required")))
		return
	}

	role := models.RoleType(middleware.GetRoleType(ctx))
	matchings, err := c.matchingService.ListMatchings(ctx.Request.Context(), userID, role)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{Data: matchings})
}
