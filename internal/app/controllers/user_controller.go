package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/tutorlink/tutorlink/internal/app/models/dto"
	"github.com/tutorlink/tutorlink/internal/app/services"
	"github.com/tutorlink/tutorlink/internal/middleware"
	"github.com/tutorlink/tutorlink/internal/pkg/helpers"
)

// UserController handles user directory and allow-list operations
type UserController struct {
	userService *services.UserService
	logger      zerolog.Logger
}

// NewUserController creates a new UserController
func NewUserController(userService *services.UserService, logger zerolog.Logger) *UserController {
	return &UserController{
		userService: userService,
		logger:      logger,
	}
}

// parseIDParam reads an int64 path parameter
func parseIDParam(ctx *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(ctx.Param(name), 10, 64)
	if err != nil || id <= 0 {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(
			dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid "+name+" parameter")))
		return 0, false
	}
	return id, true
}

// ListUsers returns a page of users
// @Summary List users
// @Tags users
// @Produce json
// @Security BearerAuth
// @Param page query int false "Page number" default(1)
// @Param pageSize query int false "Page size" default(10)
// @Success 200 {object} dto.APIResponse{data=dto.PagedResponse} "Users"
// @Failure 403 {object} dto.ErrorResponse "Forbidden"
// @Router /users [get]
func (c *UserController) ListUsers(ctx *gin.Context) {
	page, pageSize := helpers.ParsePaginationParams(ctx)

	response, err := c.userService.ListUsers(ctx.Request.Context(), page, pageSize)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{Data: response})
}

// ListTutors returns every active tutor
// @Summary List tutors
// @Tags users
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=[]dto.UserResponse} "Tutors"
// @Router /users/tutors [get]
func (c *UserController) ListTutors(ctx *gin.Context) {
	tutors, err := c.userService.ListTutors(ctx.Request.Context())
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{Data: tutors})
}

// GetUser returns a single user
// @Summary Get a user
// @Tags users
// @Produce json
// @Security BearerAuth
// @Param id path int true "User ID"
// @Success 200 {object} dto.APIResponse{data=dto.UserResponse} "User"
// @Failure 404 {object} dto.ErrorResponse "User not found"
// @Router /users/{id} [get]
func (c *UserController) GetUser(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	user, err := c.userService.GetUser(ctx.Request.Context(), id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{Data: user})
}

// UpdateProfile updates the caller's profile
// @Summary Update own profile
// @Description Updates name fields and optionally replaces the profile photo
// @Tags users
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param firstName formData string false "First name"
// @Param lastName formData string false "Last name"
// @Param photo formData file false "Profile photo (jpg, jpeg or png)"
// @Success 200 {object} dto.APIResponse{data=dto.UserResponse} "Updated profile"
// @Failure 400 {object} dto.ErrorResponse "Unsupported file type"
// @Router /users/me [put]
func (c *UserController) UpdateProfile(ctx *gin.Context) {
	userID, ok := middleware.GetUserID(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, dto.NewErrorResponse(
			dto.NewErrorDetail(dto.ErrorCodeUnauthorized, "Authentication required")))
		return
	}

	req := dto.UpdateProfileRequest{
		FirstName: ctx.PostForm("firstName"),
		LastName:  ctx.PostForm("lastName"),
	}

	// Photo is optional
	photo, err := ctx.FormFile("photo")
	if err != nil {
		photo = nil
	}

	user, err := c.userService.UpdateProfile(ctx.Request.Context(), userID, &req, photo)
	if err != nil {
		c.logger.Warn().Err(err).Int64("userID", userID).Msg("Failed to update profile")
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{Data: user})
}

// CreateSpecialUser adds an allow-list entry
// @Summary Add an allow-list entry
// @Description Registers an email that will receive a privileged role on sign-up
// @Tags special-users
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreateSpecialUserRequest true "Allow-list entry"
// @Success 201 {object} dto.APIResponse "Created"
// @Failure 403 {object} dto.ErrorResponse "Forbidden"
// @Failure 409 {object} dto.ErrorResponse "Email already on the list"
// @Router /special-users [post]
func (c *UserController) CreateSpecialUser(ctx *gin.Context) {
	var req dto.CreateSpecialUserRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(dto.HandleValidationError(err)))
		return
	}

	specialUser, err := c.userService.CreateSpecialUser(ctx.Request.Context(), &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	c.logger.Info().Str("email", specialUser.Email).Str("role", string(specialUser.RoleType)).Msg("Allow-list entry created")

	ctx.JSON(http.StatusCreated, dto.APIResponse{Data: specialUser})
}

// ListSpecialUsers returns the full allow-list
// @Summary List allow-list entries
// @Tags special-users
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse "Allow-list"
// @Failure 403 {object} dto.ErrorResponse "Forbidden"
// @Router /special-users [get]
func (c *UserController) ListSpecialUsers(ctx *gin.Context) {
	specialUsers, err := c.userService.ListSpecialUsers(ctx.Request.Context())
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{Data: specialUsers})
}

// DeleteSpecialUser removes an allow-list entry
// @Summary Delete an allow-list entry
// @Tags special-users
// @Produce json
// @Security BearerAuth
// @Param id path int true "Entry ID"
// @Success 200 {object} dto.APIResponse{data=dto.SuccessResponse} "Deleted"
// @Failure 404 {object} dto.ErrorResponse "Entry not found"
// @Router /special-users/{id} [delete]
func (c *UserController) DeleteSpecialUser(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	if err := c.userService.DeleteSpecialUser(ctx.Request.Context(), id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{Data: dto.SuccessResponse{Message: "Allow-list entry deleted"}})
}
