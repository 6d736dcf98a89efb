package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/tutorlink/tutorlink/internal/app/models/dto"
	"github.com/tutorlink/tutorlink/internal/app/services"
	"github.com/tutorlink/tutorlink/internal/middleware"
)

// MajorController handles the subject area catalog
type MajorController struct {
	majorService *services.MajorService
	logger       zerolog.Logger
}

// NewMajorController creates a new MajorController
func NewMajorController(majorService *services.MajorService, logger zerolog.Logger) *MajorController {
	return &MajorController{
		majorService: majorService,
		logger:       logger,
	}
}

// CreateMajor adds a subject area
// @Summary Create a major
// @Tags majors
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreateMajorRequest true "Major definition"
// @Success 201 {object} dto.APIResponse "Major created"
// @Failure 403 {object} dto.ErrorResponse "Forbidden"
// @Failure 409 {object} dto.ErrorResponse "Name already in use"
// @Router /majors [post]
func (c *MajorController) CreateMajor(ctx *gin.Context) {
	var req dto.CreateMajorRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(dto.HandleValidationError(err)))
		return
	}

	major, err := c.majorService.CreateMajor(ctx.Request.Context(), &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.APIResponse{Data: major})
}

// GetMajor returns a single subject area
// @Summary Get a major
// @Tags majors
// @Produce json
// @Security BearerAuth
// @Param id path int true "Major ID"
// @Success 200 {object} dto.APIResponse "Major"
// @Failure 404 {object} dto.ErrorResponse "Major not found"
// @Router /majors/{id} [get]
func (c *MajorController) GetMajor(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	major, err := c.majorService.GetMajor(ctx.Request.Context(), id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{Data: major})
}

// ListMajors returns every subject area
// @Summary List majors
// @Tags majors
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse "Majors"
// @Router /majors [get]
func (c *MajorController) ListMajors(ctx *gin.Context) {
	majors, err := c.majorService.ListMajors(ctx.Request.Context())
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{Data: majors})
}

// UpdateMajor edits a subject area
// @Summary Update a major
// @Tags majors
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Major ID"
// @Param request body dto.UpdateMajorRequest true "Updated definition"
// @Success 200 {object} dto.APIResponse "Updated major"
// @Failure 403 {object} dto.ErrorResponse "Forbidden"
// @Failure 404 {object} dto.ErrorResponse "Major not found"
// @Failure 409 {object} dto.ErrorResponse "Name already in use"
// @Router /majors/{id} [put]
func (c *MajorController) UpdateMajor(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	var req dto.UpdateMajorRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(dto.HandleValidationError(err)))
		return
	}

	major, err := c.majorService.UpdateMajor(ctx.Request.Context(), id, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{Data: major})
}

// DeleteMajor removes a subject area
// @Summary Delete a major
// @Tags majors
// @Produce json
// @Security BearerAuth
// @Param id path int true "Major ID"
// @Success 200 {object} dto.APIResponse{data=dto.SuccessResponse} "Major deleted"
// @Failure 403 {object} dto.ErrorResponse "Forbidden"
// @Failure 404 {object} dto.ErrorResponse "Major not found"
// @Router /majors/{id} [delete]
func (c *MajorController) DeleteMajor(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	if err := c.majorService.DeleteMajor(ctx.Request.Context(), id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{Data: dto.SuccessResponse{Message: "Major deleted"}})
}
