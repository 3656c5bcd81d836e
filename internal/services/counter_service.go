package services

import (
	"fmt"

	"github.com/hazelcrest/backstage/backend/internal/repositories"
	"gorm.io/gorm"
)

// Counter column names on the posts table.
const (
	CounterViews    = "view_count"
	CounterLikes    = "like_count"
	CounterComments = "comment_count"
)

// CounterService maintains the denormalized count columns on a post. The
// cycle is read-modify-write inside the caller's transaction, not an atomic
// increment: two concurrent adjustments of the same counter can lose one
// update. That drift is an accepted trade-off (see DESIGN.md); the clamp
// below is the hard guarantee — a counter never goes negative.
type CounterService struct {
	postRepository repositories.PostRepository
}

// NewCounterService creates a new CounterService
func NewCounterService(postRepo repositories.PostRepository) *CounterService {
	return &CounterService{postRepository: postRepo}
}

// AdjustCount applies delta to one of a post's counters and returns the new
// value, clamped at zero.
func (s *CounterService) AdjustCount(tx *gorm.DB, postID uint, counter string, delta int) (int, error) {
	repo := s.postRepository.WithTx(tx)
	post, err := repo.GetPostByID(postID)
	if err != nil {
		return 0, err
	}

	var current int
	switch counter {
	case CounterViews:
		current = post.ViewCount
	case CounterLikes:
		current = post.LikeCount
	case CounterComments:
		current = post.CommentCount
	default:
		return 0, fmt.Errorf("unknown post counter %q", counter)
	}

	next := current + delta
	if next < 0 {
		next = 0
	}

	if err := repo.UpdateCount(postID, counter, next); err != nil {
		return 0, err
	}
	return next, nil
}
