package models

import "time"

// NotificationType identifies the event that produced a notification
type NotificationType string

const (
	NotificationTypeFollow      NotificationType = "follow"
	NotificationTypeComment     NotificationType = "comment"
	NotificationTypePostCreated NotificationType = "post_created"
)

// Notification is always produced by the notification service as a side
// effect of follow/comment/publish events, never written directly by API
// callers. An unread notification is retracted (soft-deleted) when its
// triggering event is undone; once read it is permanent history.
type Notification struct {
	ID               uint             `json:"id" gorm:"primaryKey"`
	TargetUserID     uint             `json:"target_user_id" gorm:"index"`
	TriggerUserID    uint             `json:"trigger_user_id" gorm:"index"`
	Type             NotificationType `json:"type" gorm:"size:30;index"`
	RelatedPostID    *uint            `json:"related_post_id,omitempty" gorm:"index"`
	RelatedCommentID *uint            `json:"related_comment_id,omitempty" gorm:"index"`
	IsRead           bool             `json:"is_read" gorm:"default:false;index"`
	IsDeleted        bool             `json:"is_deleted" gorm:"default:false;index"`
	ReadAt           *time.Time       `json:"read_at,omitempty"`
	CreatedAt        time.Time        `json:"created_at" gorm:"index"`
}

// MarkReadRequest defines the request body for marking notifications as read
type MarkReadRequest struct {
	NotificationIDs []uint `json:"notification_ids" validate:"required,min=1,dive,min=1"`
}
