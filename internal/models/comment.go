package models

import "time"

// Comment represents a comment on a post. Replies are comments too; the
// parent/child relation lives in ReplyLink, never on the comment itself.
type Comment struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	PostID    uint      `json:"post_id" gorm:"index"`
	AuthorID  uint      `json:"author_id" gorm:"index"`
	Content   string    `json:"content"`
	IsDeleted bool      `json:"is_deleted" gorm:"default:false;index"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ReplyLink ties a reply comment to its top-level parent. A comment appears
// as a reply in at most one link, which is what caps the tree at two levels.
// ReplyNumber is a dense 1-based sequence among a parent's replies and is
// never renumbered, even when a sibling is soft-deleted.
type ReplyLink struct {
	ID              uint      `json:"id" gorm:"primaryKey"`
	ParentCommentID uint      `json:"parent_comment_id" gorm:"index;uniqueIndex:idx_parent_reply"`
	ReplyCommentID  uint      `json:"reply_comment_id" gorm:"uniqueIndex;uniqueIndex:idx_parent_reply"`
	ReplyNumber     int       `json:"reply_number"`
	CreatedAt       time.Time `json:"created_at"`
}

// CreateCommentRequest defines the request body for creating a new comment
type CreateCommentRequest struct {
	Content string `json:"content" validate:"required,min=1,max=2000"`
}

// UpdateCommentRequest defines the request body for updating an existing comment
type UpdateCommentRequest struct {
	Content string `json:"content" validate:"required,min=1,max=2000"`
}

// CommentView is a top-level comment annotated with its reply count
type CommentView struct {
	Comment
	ReplyCount int `json:"reply_count"`
}
