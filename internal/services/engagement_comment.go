package services

import (
	"github.com/hazelcrest/backstage/backend/internal/apperrors"
	"github.com/hazelcrest/backstage/backend/internal/models"
	"gorm.io/gorm"
)

// AddComment creates a top-level comment on a post, bumps the post's comment
// count and notifies the post author (unless they commented themselves).
func (s *EngagementService) AddComment(actor *models.User, postID uint, content string) (*models.Comment, error) {
	var comment *models.Comment
	err := s.db.Transaction(func(tx *gorm.DB) error {
		post, err := s.postRepository.WithTx(tx).GetPostByID(postID)
		if err != nil {
			return err
		}

		comment = &models.Comment{
			PostID:   postID,
			AuthorID: actor.ID,
			Content:  content,
		}
		if err := s.commentRepository.WithTx(tx).CreateComment(comment); err != nil {
			return err
		}

		if _, err := s.counters.AdjustCount(tx, postID, CounterComments, 1); err != nil {
			return err
		}

		return s.notifier.Dispatch(tx, Event{
			Type:          EventCommentCreated,
			TriggerUserID: actor.ID,
			TargetUserID:  post.AuthorID,
			PostID:        postID,
			CommentID:     comment.ID,
		})
	})
	if err != nil {
		return nil, err
	}
	return comment, nil
}

// AddReply creates a reply to a top-level comment. The reply number is the
// parent's current link count plus one, computed inside the same transaction
// as the link insert. Replying to a reply is rejected, which is what keeps
// the tree at two levels.
func (s *EngagementService) AddReply(actor *models.User, parentCommentID uint, content string) (*models.Comment, error) {
	var reply *models.Comment
	err := s.db.Transaction(func(tx *gorm.DB) error {
		comments := s.commentRepository.WithTx(tx)
		parent, err := comments.GetCommentByID(parentCommentID)
		if err != nil {
			return err
		}

		replyLinks := s.replyLinkRepository.WithTx(tx)
		parentIsReply, err := replyLinks.IsReply(parentCommentID)
		if err != nil {
			return err
		}
		if parentIsReply {
			return apperrors.ErrInvalidOperation
		}

		post, err := s.postRepository.WithTx(tx).GetPostByID(parent.PostID)
		if err != nil {
			return err
		}

		reply = &models.Comment{
			PostID:   parent.PostID,
			AuthorID: actor.ID,
			Content:  content,
		}
		if err := comments.CreateComment(reply); err != nil {
			return err
		}

		replyCount, err := replyLinks.CountByParentID(parentCommentID)
		if err != nil {
			return err
		}
		link := &models.ReplyLink{
			ParentCommentID: parentCommentID,
			ReplyCommentID:  reply.ID,
			ReplyNumber:     int(replyCount) + 1,
		}
		if err := replyLinks.CreateReplyLink(link); err != nil {
			return asConflict(err)
		}

		if _, err := s.counters.AdjustCount(tx, parent.PostID, CounterComments, 1); err != nil {
			return err
		}

		return s.notifier.Dispatch(tx, Event{
			Type:          EventCommentCreated,
			TriggerUserID: actor.ID,
			TargetUserID:  post.AuthorID,
			PostID:        parent.PostID,
			CommentID:     reply.ID,
		})
	})
	if err != nil {
		return nil, err
	}
	return reply, nil
}

// ListTopLevel returns a post's non-deleted top-level comments, newest first,
// each annotated with its reply count.
func (s *EngagementService) ListTopLevel(postID uint) ([]models.CommentView, error) {
	if _, err := s.postRepository.GetPostByID(postID); err != nil {
		return nil, err
	}

	comments, err := s.commentRepository.FindTopLevelByPostID(postID)
	if err != nil {
		return nil, err
	}

	ids := make([]uint, len(comments))
	for i := range comments {
		ids[i] = comments[i].ID
	}
	counts, err := s.replyLinkRepository.ReplyCounts(ids)
	if err != nil {
		return nil, err
	}

	views := make([]models.CommentView, len(comments))
	for i := range comments {
		views[i] = models.CommentView{
			Comment:    comments[i],
			ReplyCount: counts[comments[i].ID],
		}
	}
	return views, nil
}

// ListReplies returns the non-deleted replies of a top-level comment in reply
// number order.
func (s *EngagementService) ListReplies(parentCommentID uint) ([]models.Comment, error) {
	if _, err := s.commentRepository.GetCommentByID(parentCommentID); err != nil {
		return nil, err
	}
	return s.replyLinkRepository.FindRepliesByParentID(parentCommentID)
}

// UpdateComment edits a comment's content. Only the comment author may edit.
func (s *EngagementService) UpdateComment(actor *models.User, commentID uint, content string) (*models.Comment, error) {
	var updated *models.Comment
	err := s.db.Transaction(func(tx *gorm.DB) error {
		comments := s.commentRepository.WithTx(tx)
		comment, err := comments.GetCommentByID(commentID)
		if err != nil {
			return err
		}
		if comment.AuthorID != actor.ID {
			return apperrors.ErrForbidden
		}
		if err := comments.UpdateContent(commentID, content); err != nil {
			return err
		}
		updated, err = comments.GetCommentByID(commentID)
		return err
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// DeleteComment soft-deletes a comment, decrements the post's comment count
// and retracts the unread notification the comment produced, if any. Reply
// links are kept so sibling reply numbers stay stable.
func (s *EngagementService) DeleteComment(actor *models.User, commentID uint) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		comments := s.commentRepository.WithTx(tx)
		comment, err := comments.GetCommentByID(commentID)
		if err != nil {
			return err
		}
		if comment.AuthorID != actor.ID {
			return apperrors.ErrForbidden
		}

		if err := comments.SoftDelete(commentID); err != nil {
			return err
		}

		if _, err := s.counters.AdjustCount(tx, comment.PostID, CounterComments, -1); err != nil {
			return err
		}

		return s.notifier.Dispatch(tx, Event{
			Type:          EventCommentDeleted,
			TriggerUserID: actor.ID,
			CommentID:     commentID,
		})
	})
}
