package services

import (
	"github.com/hazelcrest/backstage/backend/internal/apperrors"
	"github.com/hazelcrest/backstage/backend/internal/models"
	"gorm.io/gorm"
)

// CreatePost creates a post. A post may start life as a draft or be published
// directly; publishing directly fans the post_created notification out to the
// author's followers right away.
func (s *EngagementService) CreatePost(actor *models.User, req models.CreatePostRequest) (*models.Post, error) {
	status := req.Status
	if status == "" {
		status = models.PostStatusDraft
	}

	post := &models.Post{
		AuthorID:     actor.ID,
		Title:        req.Title,
		Content:      req.Content,
		Status:       status,
		ThumbnailURL: req.ThumbnailURL,
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := s.postRepository.WithTx(tx).CreatePost(post); err != nil {
			return err
		}
		if post.Status != models.PostStatusPublished {
			return nil
		}
		return s.notifier.Dispatch(tx, Event{
			Type:          EventPostPublished,
			TriggerUserID: actor.ID,
			PostID:        post.ID,
		})
	})
	if err != nil {
		return nil, err
	}
	return post, nil
}

// UpdatePost patches a post. Only the author may update. Moving a draft to
// published fires the publish fan-out; no other status change produces
// notifications, and an archived post cannot leave the archived state.
func (s *EngagementService) UpdatePost(actor *models.User, postID uint, req models.UpdatePostRequest) (*models.Post, error) {
	var updated *models.Post
	err := s.db.Transaction(func(tx *gorm.DB) error {
		posts := s.postRepository.WithTx(tx)
		post, err := posts.GetPostByID(postID)
		if err != nil {
			return err
		}
		if post.AuthorID != actor.ID {
			return apperrors.ErrForbidden
		}

		publishing := false
		if req.Status != "" && req.Status != post.Status {
			if post.Status == models.PostStatusArchived {
				// Un-archiving is not supported.
				return apperrors.ErrInvalidOperation
			}
			publishing = post.Status == models.PostStatusDraft && req.Status == models.PostStatusPublished
		}

		fields := map[string]interface{}{}
		if req.Title != "" {
			fields["title"] = req.Title
		}
		if req.Content != "" {
			fields["content"] = req.Content
		}
		if req.ThumbnailURL != "" {
			fields["thumbnail_url"] = req.ThumbnailURL
		}
		if req.Status != "" {
			fields["status"] = req.Status
		}
		if len(fields) > 0 {
			if err := posts.UpdatePost(postID, fields); err != nil {
				return err
			}
		}

		updated, err = posts.GetPostByID(postID)
		if err != nil {
			return err
		}

		if !publishing {
			return nil
		}
		return s.notifier.Dispatch(tx, Event{
			Type:          EventPostPublished,
			TriggerUserID: actor.ID,
			PostID:        postID,
		})
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// UnpublishPost takes a published post out of circulation by archiving it.
// Notifications produced by the earlier publish are left alone; unpublishing
// is not deletion.
func (s *EngagementService) UnpublishPost(actor *models.User, postID uint) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		posts := s.postRepository.WithTx(tx)
		post, err := posts.GetPostByID(postID)
		if err != nil {
			return err
		}
		if post.AuthorID != actor.ID {
			return apperrors.ErrForbidden
		}
		if post.Status != models.PostStatusPublished {
			return apperrors.ErrInvalidOperation
		}
		return posts.UpdatePost(postID, map[string]interface{}{"status": models.PostStatusArchived})
	})
}

// DeletePost soft-deletes a post and retracts the unread post_created
// notifications that referenced it. Comments and likes are not cascaded; they
// stay addressable and simply disappear from listings with the post.
func (s *EngagementService) DeletePost(actor *models.User, postID uint) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		posts := s.postRepository.WithTx(tx)
		post, err := posts.GetPostByID(postID)
		if err != nil {
			return err
		}
		if post.AuthorID != actor.ID {
			return apperrors.ErrForbidden
		}

		if err := posts.SoftDelete(postID); err != nil {
			return err
		}

		return s.notifier.Dispatch(tx, Event{
			Type:          EventPostDeleted,
			TriggerUserID: actor.ID,
			PostID:        postID,
		})
	})
}

// GetPost returns a post annotated with the viewer's like status
func (s *EngagementService) GetPost(viewer *models.User, postID uint) (*models.PostView, error) {
	post, err := s.postRepository.GetPostByID(postID)
	if err != nil {
		return nil, err
	}
	isLiked, err := s.likeRepository.HasUserLikedPost(viewer.ID, postID)
	if err != nil {
		return nil, err
	}
	return &models.PostView{Post: *post, IsLiked: isLiked}, nil
}

// RegisterView bumps a post's view count and returns the new value
func (s *EngagementService) RegisterView(postID uint) (int, error) {
	var count int
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var err error
		count, err = s.counters.AdjustCount(tx, postID, CounterViews, 1)
		return err
	})
	return count, err
}

// ListDrafts returns the actor's draft posts
func (s *EngagementService) ListDrafts(actor *models.User) ([]models.Post, error) {
	return s.postRepository.FindByAuthorAndStatus(actor.ID, models.PostStatusDraft)
}

// ListArchived returns the actor's archived posts
func (s *EngagementService) ListArchived(actor *models.User) ([]models.Post, error) {
	return s.postRepository.FindByAuthorAndStatus(actor.ID, models.PostStatusArchived)
}

// ListPublished returns published posts, newest first
func (s *EngagementService) ListPublished(limit, offset int) ([]models.Post, error) {
	return s.postRepository.FindPublished(limit, offset)
}
