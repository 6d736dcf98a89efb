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

// BlogController handles blog posts, comments and their moderation
type BlogController struct {
	blogService *services.BlogService
	logger      zerolog.Logger
}

// NewBlogController creates a new BlogController
func NewBlogController(blogService *services.BlogService, logger zerolog.Logger) *BlogController {
	return &BlogController{
		blogService: blogService,
		logger:      logger,
	}
}

// CreateBlog submits a blog post for moderation
// @Summary Create a blog post
// @Description Submits a post referencing an uploaded file. The post stays pending until a moderator approves it.
// @Tags blogs
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreateBlogRequest true "Post content"
// @Success 201 {object} dto.APIResponse{data=dto.BlogResponse} "Post created"
// @Router /blogs [post]
func (c *BlogController) CreateBlog(ctx *gin.Context) {
	userID, ok := middleware.GetUserID(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, dto.NewErrorResponse(
			dto.NewErrorDetail(dto.ErrorCodeUnauthorized, "Authentication required")))
		return
	}

	var req dto.CreateBlogRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(dto.HandleValidationError(err)))
		return
	}

	blog, err := c.blogService.CreateBlog(ctx.Request.Context(), userID, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.APIResponse{Data: blog})
}

// GetBlog returns a single blog post
// @Summary Get a blog post
// @Tags blogs
// @Produce json
// @Security BearerAuth
// @Param id path int true "Blog ID"
// @Success 200 {object} dto.APIResponse{data=dto.BlogResponse} "Post"
// @Failure 404 {object} dto.ErrorResponse "Post not found"
// @Router /blogs/{id} [get]
func (c *BlogController) GetBlog(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	blog, err := c.blogService.GetBlog(ctx.Request.Context(), id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{Data: blog})
}

// ListBlogs returns blog posts visible to the caller
// @Summary List blog posts
// @Description Regular users see approved posts. Staff and admins may filter by status. Use mine=true for your own posts.
// @Tags blogs
// @Produce json
// @Security BearerAuth
// @Param status query string false "Filter by status (staff only)" Enums(PENDING, APPROVED, REJECTED)
// @Param mine query bool false "Only the caller's posts"
// @Param tag query string false "Filter by tag"
// @Success 200 {object} dto.APIResponse{data=[]dto.BlogResponse} "Posts"
// @Router /blogs [get]
func (c *BlogController) ListBlogs(ctx *gin.Context) {
	userID, ok := middleware.GetUserID(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, dto.NewErrorResponse(
			dto.NewErrorDetail(dto.ErrorCodeUnauthorized, "Authentication required")))
		return
	}

	var status *models.ModerationStatus
	if raw := ctx.Query("status"); raw != "" {
		parsed := models.ModerationStatus(strings.ToUpper(raw))
		status = &parsed
	}

	var tag *string
	if raw := ctx.Query("tag"); raw != "" {
		tag = &raw
	}

	mine := ctx.Query("mine") == "true"
	role := models.RoleType(middleware.GetRoleType(ctx))

	blogs, err := c.blogService.ListBlogs(ctx.Request.Context(), userID, role, status, mine, tag)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{Data: blogs})
}

// UpdateBlog edits one of the caller's posts
// @Summary Update a blog post
// @Description Edits the post and sends it back to moderation
// @Tags blogs
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Blog ID"
// @Param request body dto.UpdateBlogRequest true "Updated content"
// @Success 200 {object} dto.APIResponse{data=dto.BlogResponse} "Updated post"
// @Failure 403 {object} dto.ErrorResponse "Not the author"
// @Failure 404 {object} dto.ErrorResponse "Post not found"
// @Router /blogs/{id} [put]
func (c *BlogController) UpdateBlog(ctx *gin.Context) {
	userID, ok := middleware.GetUserID(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, dto.NewErrorResponse(
			dto.NewErrorDetail(dto.ErrorCodeUnauthorized, "Authentication required")))
		return
	}

	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	var req dto.UpdateBlogRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(dto.HandleValidationError(err)))
		return
	}

	blog, err := c.blogService.UpdateBlog(ctx.Request.Context(), id, userID, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{Data: blog})
}

// ModerateBlog approves or rejects a blog post
// @Summary Moderate a blog post
// @Tags blogs
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Blog ID"
// @Param request body dto.ModerateBlogRequest true "Decision"
// @Success 200 {object} dto.APIResponse{data=dto.SuccessResponse} "Status updated"
// @Failure 403 {object} dto.ErrorResponse "Forbidden"
// @Failure 404 {object} dto.ErrorResponse "Post not found"
// @Router /blogs/{id}/moderate [post]
func (c *BlogController) ModerateBlog(ctx *gin.Context) {
	moderatorID, ok := middleware.GetUserID(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, dto.NewErrorResponse(
			dto.NewErrorDetail(dto.ErrorCodeUnauthorized, "Authentication required")))
		return
	}

	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	var req dto.ModerateBlogRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(dto.HandleValidationError(err)))
		return
	}

	status := models.ModerationStatus(strings.ToUpper(req.Status))
	if err := c.blogService.ModerateBlog(ctx.Request.Context(), id, moderatorID, status); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	c.logger.Info().Int64("blogID", id).Str("status", string(status)).Msg("Blog post moderated")

	ctx.JSON(http.StatusOK, dto.APIResponse{Data: dto.SuccessResponse{Message: "Blog status updated"}})
}

// DeleteBlog removes a blog post
// @Summary Delete a blog post
// @Description Authors may delete their own posts, staff and admins may delete any
// @Tags blogs
// @Produce json
// @Security BearerAuth
// @Param id path int true "Blog ID"
// @Success 200 {object} dto.APIResponse{data=dto.SuccessResponse} "Post deleted"
// @Failure 403 {object} dto.ErrorResponse "Forbidden"
// @Failure 404 {object} dto.ErrorResponse "Post not found"
// @Router /blogs/{id} [delete]
func (c *BlogController) DeleteBlog(ctx *gin.Context) {
	userID, ok := middleware.GetUserID(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, dto.NewErrorResponse(
			dto.NewErrorDetail(dto.ErrorCodeUnauthorized, "Authentication required")))
		return
	}

	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	role := models.RoleType(middleware.GetRoleType(ctx))
	if err := c.blogService.DeleteBlog(ctx.Request.Context(), id, userID, role); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{Data: dto.SuccessResponse{Message: "Blog post deleted"}})
}

// CreateComment adds a comment to a blog post
// @Summary Comment on a blog post
// @Description Adds a comment that stays pending until a moderator approves it. The author is notified.
// @Tags blogs
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Blog ID"
// @Param request body dto.CreateCommentRequest true "Comment text"
// @Success 201 {object} dto.APIResponse{data=dto.CommentResponse} "Comment created"
// @Failure 404 {object} dto.ErrorResponse "Post not found"
// @Router /blogs/{id}/comments [post]
func (c *BlogController) CreateComment(ctx *gin.Context) {
	userID, ok := middleware.GetUserID(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, dto.NewErrorResponse(
			dto.NewErrorDetail(dto.ErrorCodeUnauthorized, "Authentication required")))
		return
	}

	blogID, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	var req dto.CreateCommentRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(dto.HandleValidationError(err)))
		return
	}

	comment, err := c.blogService.CreateComment(ctx.Request.Context(), blogID, userID, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.APIResponse{Data: comment})
}

// ListComments returns a blog post's comments
// @Summary List comments
// @Description Regular users see approved comments only
// @Tags blogs
// @Produce json
// @Security BearerAuth
// @Param id path int true "Blog ID"
// @Success 200 {object} dto.APIResponse{data=[]dto.CommentResponse} "Comments"
// @Failure 404 {object} dto.ErrorResponse "Post not found"
// @Router /blogs/{id}/comments [get]
func (c *BlogController) ListComments(ctx *gin.Context) {
	blogID, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	role := models.RoleType(middleware.GetRoleType(ctx))
	comments, err := c.blogService.ListComments(ctx.Request.Context(), blogID, role)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{Data: comments})
}

// ModerateComment approves or rejects a comment
// @Summary Moderate a comment
// @Tags blogs
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Comment ID"
// @Param request body dto.ModerateBlogRequest true "Decision"
// @Success 200 {object} dto.APIResponse{data=dto.SuccessResponse} "Status updated"
// @Failure 403 {object} dto.ErrorResponse "Forbidden"
// @Failure 404 {object} dto.ErrorResponse "Comment not found"
// @Router /comments/{id}/moderate [post]
func (c *BlogController) ModerateComment(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	var req dto.ModerateBlogRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(dto.HandleValidationError(err)))
		return
	}

	status := models.ModerationStatus(strings.ToUpper(req.Status))
	if err := c.blogService.ModerateComment(ctx.Request.Context(), id, status); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{Data: dto.SuccessResponse{Message: "Comment status updated"}})
}

// DeleteComment removes a comment
// @Summary Delete a comment
// @Description Authors may delete their own comments, staff and admins may delete any
// @Tags blogs
// @Produce json
// @Security BearerAuth
// @Param id path int true "Comment ID"
// @Success 200 {object} dto.APIResponse{data=dto.SuccessResponse} "Comment deleted"
// @Failure 403 {object} dto.ErrorResponse "Forbidden"
// @Failure 404 {object} dto.ErrorResponse "Comment not found"
// @Router /comments/{id} [delete]
func (c *BlogController) DeleteComment(ctx *gin.Context) {
	userID, ok := middleware.GetUserID(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, dto.NewErrorResponse(
			dto.NewErrorDetail(dto.ErrorCodeUnauthorized, "Authentication required")))
		return
	}

	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	role := models.RoleType(middleware.GetRoleType(ctx))
	if err := c.blogService.DeleteComment(ctx.Request.Context(), id, userID, role); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{Data: dto.SuccessResponse{Message: "Comment deleted"}})
}
