package services

import (
	"errors"

	"github.com/hazelcrest/backstage/backend/internal/apperrors"
	"github.com/hazelcrest/backstage/backend/internal/models"
	"gorm.io/gorm"
)

// ToggleLike sets or clears the actor's like on a post and returns the post's
// like count afterwards. The like count is only adjusted when the like state
// actually changes; repeated likes and unlikes are no-ops.
func (s *EngagementService) ToggleLike(actor *models.User, postID uint, on bool) (int, error) {
	count, err := s.toggleLike(actor, postID, on)
	if errors.Is(err, apperrors.ErrConflict) {
		// Lost the insert race to a concurrent like; retried exactly once.
		count, err = s.toggleLike(actor, postID, on)
	}
	return count, err
}

func (s *EngagementService) toggleLike(actor *models.User, postID uint, on bool) (int, error) {
	var likeCount int
	err := s.db.Transaction(func(tx *gorm.DB) error {
		post, err := s.postRepository.WithTx(tx).GetPostByID(postID)
		if err != nil {
			return err
		}

		likes := s.likeRepository.WithTx(tx)
		hasLiked, err := likes.HasUserLikedPost(actor.ID, postID)
		if err != nil {
			return err
		}

		if on {
			if hasLiked {
				likeCount = post.LikeCount
				return nil
			}
			if err := likes.CreateLike(&models.Like{UserID: actor.ID, PostID: postID}); err != nil {
				return asConflict(err)
			}
			likeCount, err = s.counters.AdjustCount(tx, postID, CounterLikes, 1)
			return err
		}

		removed, err := likes.DeleteLike(actor.ID, postID)
		if err != nil {
			return err
		}
		if !removed {
			likeCount = post.LikeCount
			return nil
		}
		likeCount, err = s.counters.AdjustCount(tx, postID, CounterLikes, -1)
		return err
	})
	return likeCount, err
}

// HasLiked reports whether the user currently likes the post
func (s *EngagementService) HasLiked(userID, postID uint) (bool, error) {
	return s.likeRepository.HasUserLikedPost(userID, postID)
}
