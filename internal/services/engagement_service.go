package services

import (
	"errors"

	"github.com/hazelcrest/backstage/backend/internal/apperrors"
	"github.com/hazelcrest/backstage/backend/internal/repositories"
	"gorm.io/gorm"
)

// EngagementService is the façade every user action goes through. Each action
// runs the primary write, the counter adjustment and the notification fan-out
// in one transaction; a failure in any step rolls the whole action back.
type EngagementService struct {
	db *gorm.DB

	userRepository      repositories.UserRepository
	postRepository      repositories.PostRepository
	commentRepository   repositories.CommentRepository
	replyLinkRepository repositories.ReplyLinkRepository
	followRepository    repositories.FollowRepository
	likeRepository      repositories.LikeRepository

	counters *CounterService
	notifier *NotificationService
}

// NewEngagementService creates a new EngagementService
func NewEngagementService(
	db *gorm.DB,
	userRepo repositories.UserRepository,
	postRepo repositories.PostRepository,
	commentRepo repositories.CommentRepository,
	replyLinkRepo repositories.ReplyLinkRepository,
	followRepo repositories.FollowRepository,
	likeRepo repositories.LikeRepository,
	counters *CounterService,
	notifier *NotificationService,
) *EngagementService {
	return &EngagementService{
		db:                  db,
		userRepository:      userRepo,
		postRepository:      postRepo,
		commentRepository:   commentRepo,
		replyLinkRepository: replyLinkRepo,
		followRepository:    followRepo,
		likeRepository:      likeRepo,
		counters:            counters,
		notifier:            notifier,
	}
}

// asConflict converts a duplicate-key insert into the Conflict taxonomy.
// Duplicates on the toggle paths mean a concurrent action won the insert race
// despite the existence pre-check.
func asConflict(err error) error {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return apperrors.ErrConflict
	}
	return err
}
