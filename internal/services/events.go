package services

// EventType identifies a domain event produced by a user action.
type EventType string

const (
	EventFollowCreated  EventType = "follow.created"
	EventFollowRemoved  EventType = "follow.removed"
	EventCommentCreated EventType = "comment.created"
	EventCommentDeleted EventType = "comment.deleted"
	EventPostPublished  EventType = "post.published"
	EventPostDeleted    EventType = "post.deleted"
)

// Event describes what happened and to whom. The notification service is the
// only consumer; it is dispatched inside the same transaction as the primary
// write, so fan-out commits or aborts with the action that caused it.
type Event struct {
	Type          EventType
	TriggerUserID uint // the acting user
	TargetUserID  uint // follow target or post author, when relevant
	PostID        uint
	CommentID     uint
}
