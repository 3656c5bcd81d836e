package repositories

import (
	"time"

	"github.com/hazelcrest/backstage/backend/internal/models"
	"gorm.io/gorm"
)

// NotificationRepository defines the interface for notification operations
type NotificationRepository interface {
	WithTx(tx *gorm.DB) NotificationRepository
	CreateNotification(notification *models.Notification) error
	CountUnread(targetUserID uint) (int64, error)
	FindUnread(targetUserID uint) ([]models.Notification, error)
	FindAll(targetUserID uint) ([]models.Notification, error)
	MarkRead(ids []uint, targetUserID uint, readAt time.Time) error
	FindUnreadFollow(targetUserID, triggerUserID uint) ([]models.Notification, error)
	FindUnreadByCommentID(commentID uint) ([]models.Notification, error)
	FindUnreadPostCreatedByPostID(postID uint) ([]models.Notification, error)
	SoftDeleteByIDs(ids []uint) error
}

type postgresNotificationRepository struct {
	db *gorm.DB
}

func NewPostgresNotificationRepository(db *gorm.DB) NotificationRepository {
	return &postgresNotificationRepository{db: db}
}

func (r *postgresNotificationRepository) WithTx(tx *gorm.DB) NotificationRepository {
	return &postgresNotificationRepository{db: tx}
}

func (r *postgresNotificationRepository) CreateNotification(notification *models.Notification) error {
	return r.db.Create(notification).Error
}

func (r *postgresNotificationRepository) CountUnread(targetUserID uint) (int64, error) {
	var count int64
	err := r.db.Model(&models.Notification{}).
		Where("target_user_id = ? AND is_read = ? AND is_deleted = ?", targetUserID, false, false).
		Count(&count).Error
	return count, err
}

func (r *postgresNotificationRepository) FindUnread(targetUserID uint) ([]models.Notification, error) {
	var notifications []models.Notification
	err := r.db.Where("target_user_id = ? AND is_read = ? AND is_deleted = ?", targetUserID, false, false).
		Order("created_at DESC").
		Find(&notifications).Error
	return notifications, err
}

func (r *postgresNotificationRepository) FindAll(targetUserID uint) ([]models.Notification, error) {
	var notifications []models.Notification
	err := r.db.Where("target_user_id = ? AND is_deleted = ?", targetUserID, false).
		Order("created_at DESC").
		Find(&notifications).Error
	return notifications, err
}

// MarkRead marks the given notifications read, scoped to the target user so
// one user cannot consume another's inbox. Deleted rows and rows already read
// are left untouched.
func (r *postgresNotificationRepository) MarkRead(ids []uint, targetUserID uint, readAt time.Time) error {
	return r.db.Model(&models.Notification{}).
		Where("id IN ? AND target_user_id = ? AND is_read = ? AND is_deleted = ?", ids, targetUserID, false, false).
		Updates(map[string]interface{}{"is_read": true, "read_at": readAt}).Error
}

func (r *postgresNotificationRepository) FindUnreadFollow(targetUserID, triggerUserID uint) ([]models.Notification, error) {
	var notifications []models.Notification
	err := r.db.Where(
		"target_user_id = ? AND trigger_user_id = ? AND type = ? AND is_read = ? AND is_deleted = ?",
		targetUserID, triggerUserID, models.NotificationTypeFollow, false, false,
	).Find(&notifications).Error
	return notifications, err
}

func (r *postgresNotificationRepository) FindUnreadByCommentID(commentID uint) ([]models.Notification, error) {
	var notifications []models.Notification
	err := r.db.Where(
		"related_comment_id = ? AND is_read = ? AND is_deleted = ?",
		commentID, false, false,
	).Find(&notifications).Error
	return notifications, err
}

func (r *postgresNotificationRepository) FindUnreadPostCreatedByPostID(postID uint) ([]models.Notification, error) {
	var notifications []models.Notification
	err := r.db.Where(
		"related_post_id = ? AND type = ? AND is_read = ? AND is_deleted = ?",
		postID, models.NotificationTypePostCreated, false, false,
	).Find(&notifications).Error
	return notifications, err
}

func (r *postgresNotificationRepository) SoftDeleteByIDs(ids []uint) error {
	if len(ids) == 0 {
		return nil
	}
	return r.db.Model(&models.Notification{}).
		Where("id IN ?", ids).
		Update("is_deleted", true).Error
}
