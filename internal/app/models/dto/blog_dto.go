package dto

// CreateBlogRequest creates a blog post referencing uploaded content
type CreateBlogRequest struct {
	Title string   `json:"title" binding:"required"`
	Path  string   `json:"path" binding:"required"`
	Tags  []string `json:"tags"`
}

// UpdateBlogRequest edits a blog post owned by the caller
type UpdateBlogRequest struct {
	Title string   `json:"title" binding:"required"`
	Path  string   `json:"path" binding:"required"`
	Tags  []string `json:"tags"`
}

// ModerateBlogRequest sets a blog's moderation status
type ModerateBlogRequest struct {
	Status string `json:"status" binding:"required,oneof=APPROVED REJECTED"`
}

// BlogResponse represents a blog post
type BlogResponse struct {
	ID         int64    `json:"id"`
	UserID     int64    `json:"userId"`
	AuthorName string   `json:"authorName,omitempty"`
	Title      string   `json:"title"`
	Path       string   `json:"path"`
	Tags       []string `json:"tags"`
	Status     string   `json:"status"`
	CreatedAt  string   `json:"createdAt"`
}

// CreateCommentRequest adds a comment to a blog post
type CreateCommentRequest struct {
	Content string `json:"content" binding:"required"`
}

// CommentResponse represents a comment
type CommentResponse struct {
	ID         int64  `json:"id"`
	BlogID     int64  `json:"blogId"`
	UserID     int64  `json:"userId"`
	AuthorName string `json:"authorName,omitempty"`
	Content    string `json:"content"`
	Status     string `json:"status"`
	CreatedAt  string `json:"createdAt"`
}

// CreateMajorRequest creates a subject area
type CreateMajorRequest struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
}

// UpdateMajorRequest edits a subject area
type UpdateMajorRequest struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
}
