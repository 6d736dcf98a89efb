package models

import "time"

// Blog defines a blog post based on the 'blogs' table. Content lives on disk
// (uploaded file); Path points at it. Posts go through moderation and are
// never hard-deleted: rejection is the deletion state.
type Blog struct {
	ID        int64            `json:"id" db:"id"`
	UserID    int64            `json:"userId" db:"user_id"`
	Title     string           `json:"title" db:"title"`
	Path      string           `json:"path" db:"path"`
	Tags      []string         `json:"tags" db:"tags"`
	Status    ModerationStatus `json:"status" db:"status"`
	CreatedAt time.Time        `json:"createdAt" db:"created_at"`
	UpdatedAt time.Time        `json:"updatedAt" db:"updated_at"`

	// Related entities
	Author *User `json:"author,omitempty"`
}

// Comment defines a comment on a blog post based on the 'comments' table.
type Comment struct {
	ID        int64            `json:"id" db:"id"`
	BlogID    int64            `json:"blogId" db:"blog_id"`
	UserID    int64            `json:"userId" db:"user_id"`
	Content   string           `json:"content" db:"content"`
	Status    ModerationStatus `json:"status" db:"status"`
	CreatedAt time.Time        `json:"createdAt" db:"created_at"`

	// Related entities
	Author *User `json:"author,omitempty"`
}

// Major defines a subject area based on the 'majors' table. Plain reference
// data managed by staff.
type Major struct {
	ID          int64     `json:"id" db:"id"`
	Name        string    `json:"name" db:"name"`
	Description string    `json:"description" db:"description"`
	CreatedAt   time.Time `json:"createdAt" db:"created_at"`
}
