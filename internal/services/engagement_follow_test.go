package services

import (
	"testing"

	"github.com/hazelcrest/backstage/backend/internal/apperrors"
	"github.com/hazelcrest/backstage/backend/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToggleFollow_Idempotent(t *testing.T) {
	env := newTestEnv(t)
	alice := env.createUser(t, "alice")
	bob := env.createUser(t, "bob")

	require.NoError(t, env.engagement.ToggleFollow(alice, bob.ID, true))
	require.NoError(t, env.engagement.ToggleFollow(alice, bob.ID, true))

	var followCount int64
	require.NoError(t, env.db.Model(&models.Follow{}).
		Where("follower_id = ? AND followed_id = ?", alice.ID, bob.ID).
		Count(&followCount).Error)
	assert.EqualValues(t, 1, followCount)

	unread, err := env.notifications.ListUnread(bob.ID)
	require.NoError(t, err)
	require.Len(t, unread, 1)
	assert.Equal(t, models.NotificationTypeFollow, unread[0].Type)
	assert.Equal(t, alice.ID, unread[0].TriggerUserID)
}

func TestToggleFollow_SelfFollow(t *testing.T) {
	env := newTestEnv(t)
	alice := env.createUser(t, "alice")

	err := env.engagement.ToggleFollow(alice, alice.ID, true)
	assert.ErrorIs(t, err, apperrors.ErrInvalidOperation)
}

func TestToggleFollow_MissingTarget(t *testing.T) {
	env := newTestEnv(t)
	alice := env.createUser(t, "alice")

	err := env.engagement.ToggleFollow(alice, 9999, true)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestToggleFollow_UnfollowNonexistentIsNoop(t *testing.T) {
	env := newTestEnv(t)
	alice := env.createUser(t, "alice")
	bob := env.createUser(t, "bob")

	require.NoError(t, env.engagement.ToggleFollow(alice, bob.ID, false))
}

func TestToggleFollow_RetractionSymmetry(t *testing.T) {
	env := newTestEnv(t)
	alice := env.createUser(t, "alice")
	bob := env.createUser(t, "bob")

	// Unfollow before the notification is read: it disappears entirely.
	require.NoError(t, env.engagement.ToggleFollow(alice, bob.ID, true))
	require.NoError(t, env.engagement.ToggleFollow(alice, bob.ID, false))

	all, err := env.notifications.ListAll(bob.ID)
	require.NoError(t, err)
	assert.Empty(t, all)

	// Follow again, read the notification, then unfollow: it stays.
	require.NoError(t, env.engagement.ToggleFollow(alice, bob.ID, true))
	unread, err := env.notifications.ListUnread(bob.ID)
	require.NoError(t, err)
	require.Len(t, unread, 1)
	require.NoError(t, env.notifications.MarkRead(bob, []uint{unread[0].ID}))

	require.NoError(t, env.engagement.ToggleFollow(alice, bob.ID, false))

	all, err = env.notifications.ListAll(bob.ID)
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.True(t, all[0].IsRead)
	assert.NotNil(t, all[0].ReadAt)
}

func TestFollowQueries(t *testing.T) {
	env := newTestEnv(t)
	alice := env.createUser(t, "alice")
	bob := env.createUser(t, "bob")
	carol := env.createUser(t, "carol")

	require.NoError(t, env.engagement.ToggleFollow(alice, carol.ID, true))
	require.NoError(t, env.engagement.ToggleFollow(bob, carol.ID, true))

	followers, err := env.engagement.Followers(carol.ID)
	require.NoError(t, err)
	assert.Len(t, followers, 2)

	following, err := env.engagement.Following(alice.ID)
	require.NoError(t, err)
	require.Len(t, following, 1)
	assert.Equal(t, carol.ID, following[0].ID)

	isFollowing, err := env.engagement.IsFollowing(alice.ID, carol.ID)
	require.NoError(t, err)
	assert.True(t, isFollowing)

	isFollowing, err = env.engagement.IsFollowing(carol.ID, alice.ID)
	require.NoError(t, err)
	assert.False(t, isFollowing)
}
