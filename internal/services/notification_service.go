package services

import (
	"fmt"
	"time"

	"github.com/hazelcrest/backstage/backend/internal/models"
	"github.com/hazelcrest/backstage/backend/internal/repositories"
	"gorm.io/gorm"
)

// NotificationService owns every notification write in the system. Creation
// and retraction are driven exclusively by domain events through a dispatch
// table; read notifications are never retracted.
type NotificationService struct {
	notificationRepository repositories.NotificationRepository
	followRepository       repositories.FollowRepository

	handlers map[EventType]func(tx *gorm.DB, ev Event) error
}

// NewNotificationService creates a new NotificationService
func NewNotificationService(notifRepo repositories.NotificationRepository, followRepo repositories.FollowRepository) *NotificationService {
	s := &NotificationService{
		notificationRepository: notifRepo,
		followRepository:       followRepo,
	}
	s.handlers = map[EventType]func(tx *gorm.DB, ev Event) error{
		EventFollowCreated:  s.onFollowCreated,
		EventFollowRemoved:  s.onFollowRemoved,
		EventCommentCreated: s.onCommentCreated,
		EventCommentDeleted: s.onCommentDeleted,
		EventPostPublished:  s.onPostPublished,
		EventPostDeleted:    s.onPostDeleted,
	}
	return s
}

// Dispatch applies the notification side effect of a domain event inside the
// caller's transaction. Events without a handler are a programming error.
func (s *NotificationService) Dispatch(tx *gorm.DB, ev Event) error {
	handler, ok := s.handlers[ev.Type]
	if !ok {
		return fmt.Errorf("no notification handler for event type %q", ev.Type)
	}
	return handler(tx, ev)
}

func (s *NotificationService) onFollowCreated(tx *gorm.DB, ev Event) error {
	return s.notificationRepository.WithTx(tx).CreateNotification(&models.Notification{
		TargetUserID:  ev.TargetUserID,
		TriggerUserID: ev.TriggerUserID,
		Type:          models.NotificationTypeFollow,
	})
}

func (s *NotificationService) onFollowRemoved(tx *gorm.DB, ev Event) error {
	repo := s.notificationRepository.WithTx(tx)
	notifications, err := repo.FindUnreadFollow(ev.TargetUserID, ev.TriggerUserID)
	if err != nil {
		return err
	}
	return repo.SoftDeleteByIDs(notificationIDs(notifications))
}

func (s *NotificationService) onCommentCreated(tx *gorm.DB, ev Event) error {
	// Commenting on your own post does not notify anyone.
	if ev.TargetUserID == ev.TriggerUserID {
		return nil
	}
	postID := ev.PostID
	commentID := ev.CommentID
	return s.notificationRepository.WithTx(tx).CreateNotification(&models.Notification{
		TargetUserID:     ev.TargetUserID,
		TriggerUserID:    ev.TriggerUserID,
		Type:             models.NotificationTypeComment,
		RelatedPostID:    &postID,
		RelatedCommentID: &commentID,
	})
}

func (s *NotificationService) onCommentDeleted(tx *gorm.DB, ev Event) error {
	repo := s.notificationRepository.WithTx(tx)
	notifications, err := repo.FindUnreadByCommentID(ev.CommentID)
	if err != nil {
		return err
	}
	return repo.SoftDeleteByIDs(notificationIDs(notifications))
}

// onPostPublished fans a post_created notification out to every current
// follower of the author. The author never notifies themselves.
func (s *NotificationService) onPostPublished(tx *gorm.DB, ev Event) error {
	followers, err := s.followRepository.WithTx(tx).GetFollowers(ev.TriggerUserID)
	if err != nil {
		return err
	}
	repo := s.notificationRepository.WithTx(tx)
	for _, follower := range followers {
		postID := ev.PostID
		notification := &models.Notification{
			TargetUserID:  follower.ID,
			TriggerUserID: ev.TriggerUserID,
			Type:          models.NotificationTypePostCreated,
			RelatedPostID: &postID,
		}
		if err := repo.CreateNotification(notification); err != nil {
			return err
		}
	}
	return nil
}

func (s *NotificationService) onPostDeleted(tx *gorm.DB, ev Event) error {
	repo := s.notificationRepository.WithTx(tx)
	notifications, err := repo.FindUnreadPostCreatedByPostID(ev.PostID)
	if err != nil {
		return err
	}
	return repo.SoftDeleteByIDs(notificationIDs(notifications))
}

// CountUnread returns the number of unread notifications for a user
func (s *NotificationService) CountUnread(userID uint) (int64, error) {
	return s.notificationRepository.CountUnread(userID)
}

// ListUnread returns the unread notifications for a user, newest first
func (s *NotificationService) ListUnread(userID uint) ([]models.Notification, error) {
	return s.notificationRepository.FindUnread(userID)
}

// ListAll returns all non-retracted notifications for a user, newest first
func (s *NotificationService) ListAll(userID uint) ([]models.Notification, error) {
	return s.notificationRepository.FindAll(userID)
}

// MarkRead marks the given notifications as read for the acting user.
// Already-read and retracted rows are skipped.
func (s *NotificationService) MarkRead(actor *models.User, ids []uint) error {
	if len(ids) == 0 {
		return nil
	}
	return s.notificationRepository.MarkRead(ids, actor.ID, time.Now())
}

func notificationIDs(notifications []models.Notification) []uint {
	ids := make([]uint, 0, len(notifications))
	for _, n := range notifications {
		ids = append(ids, n.ID)
	}
	return ids
}
