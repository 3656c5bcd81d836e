package services

import (
	"testing"

	"github.com/hazelcrest/backstage/backend/internal/apperrors"
	"github.com/hazelcrest/backstage/backend/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreatePost_PublishedFansOutToFollowers(t *testing.T) {
	env := newTestEnv(t)
	author := env.createUser(t, "author")
	followers := []*models.User{
		env.createUser(t, "f1"),
		env.createUser(t, "f2"),
		env.createUser(t, "f3"),
	}
	for _, f := range followers {
		require.NoError(t, env.engagement.ToggleFollow(f, author.ID, true))
	}

	post := env.createPublishedPost(t, author)

	for _, f := range followers {
		unread, err := env.notifications.ListUnread(f.ID)
		require.NoError(t, err)
		require.Len(t, unread, 1)
		assert.Equal(t, models.NotificationTypePostCreated, unread[0].Type)
		require.NotNil(t, unread[0].RelatedPostID)
		assert.Equal(t, post.ID, *unread[0].RelatedPostID)
	}

	// The author receives follow notifications but never their own publish.
	unread, err := env.notifications.ListUnread(author.ID)
	require.NoError(t, err)
	for _, n := range unread {
		assert.NotEqual(t, models.NotificationTypePostCreated, n.Type)
	}
}

func TestCreatePost_DraftIsSilent(t *testing.T) {
	env := newTestEnv(t)
	author := env.createUser(t, "author")
	follower := env.createUser(t, "follower")
	require.NoError(t, env.engagement.ToggleFollow(follower, author.ID, true))

	env.createDraftPost(t, author)

	unread, err := env.notifications.ListUnread(follower.ID)
	require.NoError(t, err)
	assert.Empty(t, unread)
}

func TestUpdatePost_DraftToPublishedFiresFanOut(t *testing.T) {
	env := newTestEnv(t)
	author := env.createUser(t, "author")
	follower := env.createUser(t, "follower")
	require.NoError(t, env.engagement.ToggleFollow(follower, author.ID, true))

	post := env.createDraftPost(t, author)

	updated, err := env.engagement.UpdatePost(author, post.ID, models.UpdatePostRequest{
		Status: models.PostStatusPublished,
	})
	require.NoError(t, err)
	assert.Equal(t, models.PostStatusPublished, updated.Status)

	unread, err := env.notifications.ListUnread(follower.ID)
	require.NoError(t, err)
	require.Len(t, unread, 1)
	assert.Equal(t, models.NotificationTypePostCreated, unread[0].Type)

	// Re-publishing an already-published post does not notify again.
	_, err = env.engagement.UpdatePost(author, post.ID, models.UpdatePostRequest{
		Status: models.PostStatusPublished,
	})
	require.NoError(t, err)

	unread, err = env.notifications.ListUnread(follower.ID)
	require.NoError(t, err)
	assert.Len(t, unread, 1)
}

func TestUpdatePost_AuthorOnly(t *testing.T) {
	env := newTestEnv(t)
	author := env.createUser(t, "author")
	other := env.createUser(t, "other")
	post := env.createDraftPost(t, author)

	_, err := env.engagement.UpdatePost(other, post.ID, models.UpdatePostRequest{Title: "mine now"})
	assert.ErrorIs(t, err, apperrors.ErrForbidden)
}

func TestUpdatePost_UnarchivingRejected(t *testing.T) {
	env := newTestEnv(t)
	author := env.createUser(t, "author")
	post := env.createPublishedPost(t, author)
	require.NoError(t, env.engagement.UnpublishPost(author, post.ID))

	_, err := env.engagement.UpdatePost(author, post.ID, models.UpdatePostRequest{
		Status: models.PostStatusPublished,
	})
	assert.ErrorIs(t, err, apperrors.ErrInvalidOperation)
}

func TestUnpublishPost_Asymmetry(t *testing.T) {
	env := newTestEnv(t)
	author := env.createUser(t, "author")
	follower := env.createUser(t, "follower")
	require.NoError(t, env.engagement.ToggleFollow(follower, author.ID, true))

	post := env.createPublishedPost(t, author)

	// Unpublishing leaves the publish notifications alone.
	require.NoError(t, env.engagement.UnpublishPost(author, post.ID))

	unread, err := env.notifications.ListUnread(follower.ID)
	require.NoError(t, err)
	require.Len(t, unread, 1)
	assert.Equal(t, models.NotificationTypePostCreated, unread[0].Type)

	// Deleting the post afterwards retracts the unread ones.
	require.NoError(t, env.engagement.DeletePost(author, post.ID))

	all, err := env.notifications.ListAll(follower.ID)
	require.NoError(t, err)
	for _, n := range all {
		assert.NotEqual(t, models.NotificationTypePostCreated, n.Type)
	}
}

func TestDeletePost_ReadNotificationSurvives(t *testing.T) {
	env := newTestEnv(t)
	author := env.createUser(t, "author")
	follower := env.createUser(t, "follower")
	require.NoError(t, env.engagement.ToggleFollow(follower, author.ID, true))

	post := env.createPublishedPost(t, author)

	unread, err := env.notifications.ListUnread(follower.ID)
	require.NoError(t, err)
	require.Len(t, unread, 1)
	require.NoError(t, env.notifications.MarkRead(follower, []uint{unread[0].ID}))

	require.NoError(t, env.engagement.DeletePost(author, post.ID))

	all, err := env.notifications.ListAll(follower.ID)
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, models.NotificationTypePostCreated, all[0].Type)
	assert.True(t, all[0].IsRead)
}

func TestDeletePost_DoesNotCascadeToComments(t *testing.T) {
	env := newTestEnv(t)
	author := env.createUser(t, "author")
	bob := env.createUser(t, "bob")
	post := env.createPublishedPost(t, author)

	comment, err := env.engagement.AddComment(bob, post.ID, "still here")
	require.NoError(t, err)
	_, err = env.engagement.ToggleLike(bob, post.ID, true)
	require.NoError(t, err)

	require.NoError(t, env.engagement.DeletePost(author, post.ID))

	var stored models.Comment
	require.NoError(t, env.db.First(&stored, comment.ID).Error)
	assert.False(t, stored.IsDeleted)

	var likeRows int64
	require.NoError(t, env.db.Model(&models.Like{}).Where("post_id = ?", post.ID).Count(&likeRows).Error)
	assert.EqualValues(t, 1, likeRows)

	// But the post itself is gone from reads.
	_, err = env.engagement.GetPost(bob, post.ID)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestUnpublishPost_RequiresPublished(t *testing.T) {
	env := newTestEnv(t)
	author := env.createUser(t, "author")
	post := env.createDraftPost(t, author)

	err := env.engagement.UnpublishPost(author, post.ID)
	assert.ErrorIs(t, err, apperrors.ErrInvalidOperation)
}

func TestGetPost_AnnotatesLikeStatus(t *testing.T) {
	env := newTestEnv(t)
	author := env.createUser(t, "author")
	bob := env.createUser(t, "bob")
	post := env.createPublishedPost(t, author)

	view, err := env.engagement.GetPost(bob, post.ID)
	require.NoError(t, err)
	assert.False(t, view.IsLiked)

	_, err = env.engagement.ToggleLike(bob, post.ID, true)
	require.NoError(t, err)

	view, err = env.engagement.GetPost(bob, post.ID)
	require.NoError(t, err)
	assert.True(t, view.IsLiked)
	assert.Equal(t, 1, view.LikeCount)
}

func TestPostListings(t *testing.T) {
	env := newTestEnv(t)
	author := env.createUser(t, "author")

	draft := env.createDraftPost(t, author)
	published := env.createPublishedPost(t, author)
	archived := env.createPublishedPost(t, author)
	require.NoError(t, env.engagement.UnpublishPost(author, archived.ID))

	drafts, err := env.engagement.ListDrafts(author)
	require.NoError(t, err)
	require.Len(t, drafts, 1)
	assert.Equal(t, draft.ID, drafts[0].ID)

	archivedPosts, err := env.engagement.ListArchived(author)
	require.NoError(t, err)
	require.Len(t, archivedPosts, 1)
	assert.Equal(t, archived.ID, archivedPosts[0].ID)

	publishedPosts, err := env.engagement.ListPublished(10, 0)
	require.NoError(t, err)
	require.Len(t, publishedPosts, 1)
	assert.Equal(t, published.ID, publishedPosts[0].ID)
}
