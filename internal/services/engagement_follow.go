package services

import (
	"errors"
	"time"

	"github.com/hazelcrest/backstage/backend/internal/apperrors"
	"github.com/hazelcrest/backstage/backend/internal/models"
	"gorm.io/gorm"
)

// ToggleFollow sets or clears the follow relationship from the actor to the
// target. Both directions are idempotent: following twice or unfollowing a
// relationship that does not exist is a no-op, not an error. Notifications
// follow the state change only.
func (s *EngagementService) ToggleFollow(actor *models.User, targetID uint, on bool) error {
	err := s.toggleFollow(actor, targetID, on)
	if errors.Is(err, apperrors.ErrConflict) {
		// A concurrent toggle won the insert race; the re-run sees its row
		// and no-ops. Retried exactly once.
		err = s.toggleFollow(actor, targetID, on)
	}
	return err
}

func (s *EngagementService) toggleFollow(actor *models.User, targetID uint, on bool) error {
	if actor.ID == targetID {
		return apperrors.ErrInvalidOperation
	}

	return s.db.Transaction(func(tx *gorm.DB) error {
		if _, err := s.userRepository.WithTx(tx).GetUserByID(targetID); err != nil {
			return err
		}

		follows := s.followRepository.WithTx(tx)
		isFollowing, err := follows.IsFollowing(actor.ID, targetID)
		if err != nil {
			return err
		}

		if on {
			if isFollowing {
				return nil
			}
			follow := &models.Follow{
				FollowerID: actor.ID,
				FollowedID: targetID,
				FollowedAt: time.Now(),
			}
			if err := follows.CreateFollow(follow); err != nil {
				return asConflict(err)
			}
			return s.notifier.Dispatch(tx, Event{
				Type:          EventFollowCreated,
				TriggerUserID: actor.ID,
				TargetUserID:  targetID,
			})
		}

		removed, err := follows.DeleteFollow(actor.ID, targetID)
		if err != nil {
			return err
		}
		if !removed {
			return nil
		}
		return s.notifier.Dispatch(tx, Event{
			Type:          EventFollowRemoved,
			TriggerUserID: actor.ID,
			TargetUserID:  targetID,
		})
	})
}

// Followers returns the users following the given user
func (s *EngagementService) Followers(userID uint) ([]models.UserCompact, error) {
	if _, err := s.userRepository.GetUserByID(userID); err != nil {
		return nil, err
	}
	users, err := s.followRepository.GetFollowers(userID)
	if err != nil {
		return nil, err
	}
	return toCompact(users), nil
}

// Following returns the users the given user follows
func (s *EngagementService) Following(userID uint) ([]models.UserCompact, error) {
	if _, err := s.userRepository.GetUserByID(userID); err != nil {
		return nil, err
	}
	users, err := s.followRepository.GetFollowing(userID)
	if err != nil {
		return nil, err
	}
	return toCompact(users), nil
}

// IsFollowing reports whether follower currently follows followed
func (s *EngagementService) IsFollowing(followerID, followedID uint) (bool, error) {
	return s.followRepository.IsFollowing(followerID, followedID)
}

func toCompact(users []models.User) []models.UserCompact {
	compact := make([]models.UserCompact, len(users))
	for i := range users {
		compact[i] = users[i].ToCompact()
	}
	return compact
}
