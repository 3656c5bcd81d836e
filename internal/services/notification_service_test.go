package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMarkRead_ScopedToTargetUser(t *testing.T) {
	env := newTestEnv(t)
	alice := env.createUser(t, "alice")
	bob := env.createUser(t, "bob")
	mallory := env.createUser(t, "mallory")

	require.NoError(t, env.engagement.ToggleFollow(alice, bob.ID, true))

	unread, err := env.notifications.ListUnread(bob.ID)
	require.NoError(t, err)
	require.Len(t, unread, 1)

	// Another user cannot consume bob's inbox.
	require.NoError(t, env.notifications.MarkRead(mallory, []uint{unread[0].ID}))

	count, err := env.notifications.CountUnread(bob.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 1, count)

	require.NoError(t, env.notifications.MarkRead(bob, []uint{unread[0].ID}))

	count, err = env.notifications.CountUnread(bob.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 0, count)
}

func TestMarkRead_NoopOnAlreadyRead(t *testing.T) {
	env := newTestEnv(t)
	alice := env.createUser(t, "alice")
	bob := env.createUser(t, "bob")

	require.NoError(t, env.engagement.ToggleFollow(alice, bob.ID, true))

	unread, err := env.notifications.ListUnread(bob.ID)
	require.NoError(t, err)
	require.Len(t, unread, 1)

	require.NoError(t, env.notifications.MarkRead(bob, []uint{unread[0].ID}))

	all, err := env.notifications.ListAll(bob.ID)
	require.NoError(t, err)
	require.Len(t, all, 1)
	firstReadAt := all[0].ReadAt
	require.NotNil(t, firstReadAt)

	// Marking again does not rewrite the read timestamp.
	require.NoError(t, env.notifications.MarkRead(bob, []uint{unread[0].ID}))

	all, err = env.notifications.ListAll(bob.ID)
	require.NoError(t, err)
	require.Len(t, all, 1)
	require.NotNil(t, all[0].ReadAt)
	assert.Equal(t, firstReadAt.Unix(), all[0].ReadAt.Unix())
}

func TestDispatch_UnknownEvent(t *testing.T) {
	env := newTestEnv(t)
	err := env.notifications.Dispatch(env.db, Event{Type: EventType("bogus")})
	assert.Error(t, err)
}

func TestCountUnread_ExcludesRetracted(t *testing.T) {
	env := newTestEnv(t)
	alice := env.createUser(t, "alice")
	bob := env.createUser(t, "bob")
	carol := env.createUser(t, "carol")

	require.NoError(t, env.engagement.ToggleFollow(alice, carol.ID, true))
	require.NoError(t, env.engagement.ToggleFollow(bob, carol.ID, true))
	require.NoError(t, env.engagement.ToggleFollow(alice, carol.ID, false))

	count, err := env.notifications.CountUnread(carol.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 1, count)

	all, err := env.notifications.ListAll(carol.ID)
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, bob.ID, all[0].TriggerUserID)
}
