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

// BlogService handles blog posts, comments and their moderation
type BlogService struct {
	blogRepo        repositories.IBlogRepository
	commentRepo     repositories.ICommentRepository
	userRepo        repositories.IUserRepository
	notificationSvc INotificationService
	logger          zerolog.Logger
}

// NewBlogService creates a new BlogService
func NewBlogService(
	blogRepo repositories.IBlogRepository,
	commentRepo repositories.ICommentRepository,
	userRepo repositories.IUserRepository,
	notificationSvc INotificationService,
	logger zerolog.Logger,
) *BlogService {
	return &BlogService{
		blogRepo:        blogRepo,
		commentRepo:     commentRepo,
		userRepo:        userRepo,
		notificationSvc: notificationSvc,
		logger:          logger,
	}
}

// CreateBlog files a new blog post for moderation
func (s *BlogService) CreateBlog(ctx context.Context, userID int64, req *dto.CreateBlogRequest) (*dto.BlogResponse, error) {
	blog := &models.Blog{
		UserID: userID,
		Title:  req.Title,
		Path:   req.Path,
		Tags:   req.Tags,
	}
	if err := s.blogRepo.Create(ctx, blog); err != nil {
		return nil, err
	}

	return newBlogResponse(blog, nil), nil
}

// GetBlog retrieves a single blog post
func (s *BlogService) GetBlog(ctx context.Context, id int64) (*dto.BlogResponse, error) {
	blog, err := s.blogRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	author, err := s.userRepo.GetByID(ctx, blog.UserID)
	if err != nil {
		s.logger.Warn().Err(err).Int64("blogID", id).Msg("Could not resolve blog author")
		author = nil
	}

	return newBlogResponse(blog, author), nil
}

// ListBlogs retrieves blogs. Regular callers only see approved posts; staff
// and admins may filter by any status, and authors see their own drafts.
func (s *BlogService) ListBlogs(ctx context.Context, callerID int64, callerRole models.RoleType, statusFilter *models.ModerationStatus, mine bool, tag *string) ([]*dto.BlogResponse, error) {
	var status *models.ModerationStatus
	var userFilter *int64

	switch {
	case mine:
		userFilter = &callerID
	case callerRole == models.RoleStaff || callerRole == models.RoleAdmin:
		status = statusFilter
	default:
		approved := models.ModerationStatusApproved
		status = &approved
	}

	blogs, err := s.blogRepo.List(ctx, status, userFilter, tag)
	if err != nil {
		return nil, err
	}

	responses := make([]*dto.BlogResponse, 0, len(blogs))
	for _, blog := range blogs {
		responses = append(responses, newBlogResponse(blog, nil))
	}

	return responses, nil
}

// UpdateBlog edits a blog post. Only the author may edit, and the edit puts
// the post back into moderation.
func (s *BlogService) UpdateBlog(ctx context.Context, id, callerID int64, req *dto.UpdateBlogRequest) (*dto.BlogResponse, error) {
	blog, err := s.blogRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if blog.UserID != callerID {
		return nil, apperrors.ErrPermissionDenied
	}

	if err := s.blogRepo.Update(ctx, id, req.Title, req.Tags); err != nil {
		return nil, err
	}

	return s.GetBlog(ctx, id)
}

// ModerateBlog approves or rejects a pending blog post and notifies the
// author
func (s *BlogService) ModerateBlog(ctx context.Context, id, moderatorID int64, status models.ModerationStatus) error {
	blog, err := s.blogRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if err := s.blogRepo.UpdateStatus(ctx, id, status); err != nil {
		return err
	}

	title := "Your blog post was approved"
	if status == models.ModerationStatusRejected {
		title = "Your blog post was rejected"
	}
	if err := s.notificationSvc.Notify(ctx, moderatorID, blog.UserID, title, &blog.ID); err != nil {
		s.logger.Warn().Err(err).Int64("blogID", id).Msg("Failed to notify blog author about moderation")
	}

	return nil
}

// DeleteBlog removes a blog post. Authors delete their own; staff and
// admins delete anything.
func (s *BlogService) DeleteBlog(ctx context.Context, id, callerID int64, callerRole models.RoleType) error {
	blog, err := s.blogRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if blog.UserID != callerID && callerRole != models.RoleStaff && callerRole != models.RoleAdmin {
		return apperrors.ErrPermissionDenied
	}

	return s.blogRepo.Delete(ctx, id)
}

// CreateComment adds a comment to an existing blog post. The post is looked
// up first so commenting on a missing post fails with not found, and the
// author is notified about the new comment.
func (s *BlogService) CreateComment(ctx context.Context, blogID, userID int64, req *dto.CreateCommentRequest) (*dto.CommentResponse, error) {
	blog, err := s.blogRepo.GetByID(ctx, blogID)
	if err != nil {
		return nil, err
	}

	comment := &models.Comment{
		BlogID:  blogID,
		UserID:  userID,
		Content: req.Content,
	}
	if err := s.commentRepo.Create(ctx, comment); err != nil {
		return nil, err
	}

	if blog.UserID != userID {
		if err := s.notificationSvc.Notify(ctx, userID, blog.UserID, "New comment on your blog post", &blog.ID); err != nil {
			s.logger.Warn().Err(err).Int64("blogID", blogID).Msg("Failed to notify blog author about comment")
		}
	}

	return newCommentResponse(comment, nil), nil
}

// ListComments retrieves a blog's comments. Regular callers only see
// approved comments; staff and admins see everything.
func (s *BlogService) ListComments(ctx context.Context, blogID int64, callerRole models.RoleType) ([]*dto.CommentResponse, error) {
	if _, err := s.blogRepo.GetByID(ctx, blogID); err != nil {
		return nil, err
	}

	var status *models.ModerationStatus
	if callerRole != models.RoleStaff && callerRole != models.RoleAdmin {
		approved := models.ModerationStatusApproved
		status = &approved
	}

	comments, err := s.commentRepo.ListByBlog(ctx, blogID, status)
	if err != nil {
		return nil, err
	}

	responses := make([]*dto.CommentResponse, 0, len(comments))
	for _, comment := range comments {
		responses = append(responses, newCommentResponse(comment, nil))
	}

	return responses, nil
}

// ModerateComment approves or rejects a pending comment
func (s *BlogService) ModerateComment(ctx context.Context, id int64, status models.ModerationStatus) error {
	return s.commentRepo.UpdateStatus(ctx, id, status)
}

// DeleteComment removes a comment. Authors delete their own; staff and
// admins delete anything.
func (s *BlogService) DeleteComment(ctx context.Context, id, callerID int64, callerRole models.RoleType) error {
	comment, err := s.commentRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if comment.UserID != callerID && callerRole != models.RoleStaff && callerRole != models.RoleAdmin {
		return apperrors.ErrPermissionDenied
	}

	return s.commentRepo.Delete(ctx, id)
}

func newBlogResponse(blog *models.Blog, author *models.User) *dto.BlogResponse {
	resp := &dto.BlogResponse{
		ID:        blog.ID,
		UserID:    blog.UserID,
		Title:     blog.Title,
		Path:      blog.Path,
		Tags:      blog.Tags,
		Status:    string(blog.Status),
		CreatedAt: blog.CreatedAt.Format(time.RFC3339),
	}
	if author != nil {
		resp.AuthorName = author.FirstName + " " + author.LastName
	}
	return resp
}

func newCommentResponse(comment *models.Comment, author *models.User) *dto.CommentResponse {
	resp := &dto.CommentResponse{
		ID:        comment.ID,
		BlogID:    comment.BlogID,
		UserID:    comment.UserID,
		Content:   comment.Content,
		Status:    string(comment.Status),
		CreatedAt: comment.CreatedAt.Format(time.RFC3339),
	}
	if author != nil {
		resp.AuthorName = author.FirstName + " " + author.LastName
	}
	return resp
}
