package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wafflestudio/team2-server/internal/domain"
	"github.com/wafflestudio/team2-server/internal/repository"
)

func TestFollowRules(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	alice := env.register(t, "alice")
	bob := env.register(t, "bob")

	assert.ErrorIs(t, env.follows.Follow(ctx, alice, alice), ErrSelfFollow)
	assert.ErrorIs(t, env.follows.Follow(ctx, alice, "ghost"), repository.ErrUserNotFound)

	require.NoError(t, env.follows.Follow(ctx, alice, bob))
	assert.ErrorIs(t, env.follows.Follow(ctx, alice, bob), repository.ErrAlreadyFollowing)
}

func TestFollowNotifies(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	alice := env.register(t, "alice")
	bob := env.register(t, "bob")

	require.NoError(t, env.follows.Follow(ctx, alice, bob))

	views, p, err := env.notifications.List(ctx, bob, 1, 10)
	require.NoError(t, err)
	assert.Equal(t, int64(1), p.Total)
	assert.Equal(t, domain.NotifyFollow, views[0].Kind)
	assert.Nil(t, views[0].Tweet)
}

func TestProfileHeader(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	alice := env.register(t, "alice")
	bob := env.register(t, "bob")
	carol := env.register(t, "carol")

	require.NoError(t, env.follows.Follow(ctx, alice, bob))
	require.NoError(t, env.follows.Follow(ctx, carol, bob))
	require.NoError(t, env.follows.Follow(ctx, bob, alice))

	view, err := env.follows.ProfileOf(ctx, alice, bob)
	require.NoError(t, err)
	assert.Equal(t, "bob", view.User.Username)
	assert.Equal(t, int64(2), view.Followers)
	assert.Equal(t, int64(1), view.Following)
	assert.True(t, view.IsFollowing)

	// Anonymous viewers get the counts without the flag.
	anon, err := env.follows.ProfileOf(ctx, "", bob)
	require.NoError(t, err)
	assert.False(t, anon.IsFollowing)
}

func TestFollowerPagesRenderUsers(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	alice := env.register(t, "alice")
	bob := env.register(t, "bob")

	require.NoError(t, env.follows.Follow(ctx, alice, bob))

	followers, p, err := env.follows.Followers(ctx, bob, 1, 10)
	require.NoError(t, err)
	assert.Equal(t, int64(1), p.Total)
	require.Len(t, followers, 1)
	assert.Equal(t, "alice", followers[0].Username)

	following, _, err := env.follows.Following(ctx, alice, 1, 10)
	require.NoError(t, err)
	require.Len(t, following, 1)
	assert.Equal(t, "bob", following[0].Username)
}
