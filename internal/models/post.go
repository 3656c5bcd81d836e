package models

import "time"

// PostStatus is the lifecycle state of a post
type PostStatus string

const (
	PostStatusDraft     PostStatus = "draft"
	PostStatusPublished PostStatus = "published"
	PostStatusArchived  PostStatus = "archived"
)

// Post represents a blog post. The count columns are denormalized caches
// maintained by the counter service; the Like/ReplyLink tables remain the
// source of truth.
type Post struct {
	ID           uint       `json:"id" gorm:"primaryKey"`
	AuthorID     uint       `json:"author_id" gorm:"index"`
	Title        string     `json:"title"`
	Content      string     `json:"content"`
	Status       PostStatus `json:"status" gorm:"size:20;index;default:draft"`
	ThumbnailURL string     `json:"thumbnail_url,omitempty"`
	ViewCount    int        `json:"view_count" gorm:"default:0"`
	LikeCount    int        `json:"like_count" gorm:"default:0"`
	CommentCount int        `json:"comment_count" gorm:"default:0"`
	IsDeleted    bool       `json:"is_deleted" gorm:"default:false;index"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}

// CreatePostRequest defines the request body for creating a new post
type CreatePostRequest struct {
	Title        string     `json:"title" validate:"required,min=1,max=120"`
	Content      string     `json:"content" validate:"required,min=1"`
	Status       PostStatus `json:"status,omitempty" validate:"omitempty,oneof=draft published"`
	ThumbnailURL string     `json:"thumbnail_url,omitempty" validate:"omitempty,url"`
}

// UpdatePostRequest defines the request body for updating an existing post
type UpdatePostRequest struct {
	Title        string     `json:"title,omitempty" validate:"omitempty,min=1,max=120"`
	Content      string     `json:"content,omitempty" validate:"omitempty,min=1"`
	Status       PostStatus `json:"status,omitempty" validate:"omitempty,oneof=draft published archived"`
	ThumbnailURL string     `json:"thumbnail_url,omitempty" validate:"omitempty,url"`
}

// PostView is a post annotated with the viewer's like status
type PostView struct {
	Post
	IsLiked bool `json:"is_liked"`
}
