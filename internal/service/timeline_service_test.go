package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wafflestudio/team2-server/internal/domain"
)

func TestHomeFeedComposition(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	alice := env.register(t, "alice")
	bob := env.register(t, "bob")
	carol := env.register(t, "carol")

	require.NoError(t, env.follows.Follow(ctx, alice, bob))

	own, err := env.tweets.Post(ctx, alice, "my own tweet", nil)
	require.NoError(t, err)
	followee, err := env.tweets.Post(ctx, bob, "followee tweet", nil)
	require.NoError(t, err)
	outsider, err := env.tweets.Post(ctx, carol, "outsider tweet", nil)
	require.NoError(t, err)
	rt, err := env.tweets.Retweet(ctx, bob, outsider.ID)
	require.NoError(t, err)

	require.NoError(t, env.engagement.Like(ctx, alice, followee.ID))

	views, p, err := env.timeline.Home(ctx, alice, 1, 10)
	require.NoError(t, err)
	assert.Equal(t, int64(3), p.Total)

	ids := make([]uint64, 0, len(views))
	for _, v := range views {
		ids = append(ids, v.ID)
	}
	// Newest first; Carol's tweet enters only through Bob's retweet.
	assert.Equal(t, []uint64{rt.ID, followee.ID, own.ID}, ids)

	// The retweet view carries the original author and the performer.
	assert.Equal(t, domain.KindRetweet, views[0].Kind)
	assert.Equal(t, "carol", views[0].Author.Username)
	assert.Equal(t, "bob", views[0].RetweetingUser)

	// Viewer engagement flags.
	assert.True(t, views[1].UserLike)
	assert.False(t, views[2].UserLike)
	assert.Equal(t, int64(1), views[1].Likes)
}

func TestProfileVisibleToAnonymous(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	alice := env.register(t, "alice")

	_, err := env.tweets.Post(ctx, alice, "public tweet", nil)
	require.NoError(t, err)

	views, p, err := env.timeline.Profile(ctx, "", alice, 1, 10)
	require.NoError(t, err)
	assert.Equal(t, int64(1), p.Total)
	assert.False(t, views[0].UserLike)
	assert.False(t, views[0].UserRetweet)
}

func TestThreadAncestorChain(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	alice := env.register(t, "alice")
	bob := env.register(t, "bob")

	root, err := env.tweets.Post(ctx, alice, "root", nil)
	require.NoError(t, err)
	child, err := env.tweets.Reply(ctx, bob, root.ID, "child", nil)
	require.NoError(t, err)
	grandchild, err := env.tweets.Reply(ctx, alice, child.ID, "grandchild", nil)
	require.NoError(t, err)

	thread, err := env.timeline.Thread(ctx, bob, grandchild.ID, 1, 10)
	require.NoError(t, err)

	assert.Equal(t, grandchild.ID, thread.Tweet.ID)
	require.NotNil(t, thread.RepliedTweet)
	assert.False(t, thread.RepliedTweet.Deleted)
	assert.Equal(t, child.ID, thread.RepliedTweet.Tweet.ID)
	require.NotNil(t, thread.RepliedTweet.RepliedTweet)
	assert.Equal(t, root.ID, thread.RepliedTweet.RepliedTweet.Tweet.ID)
	assert.Nil(t, thread.RepliedTweet.RepliedTweet.RepliedTweet)
}

func TestThreadDeletedAncestor(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	alice := env.register(t, "alice")
	bob := env.register(t, "bob")

	root, err := env.tweets.Post(ctx, alice, "root", nil)
	require.NoError(t, err)
	child, err := env.tweets.Reply(ctx, bob, root.ID, "child", nil)
	require.NoError(t, err)
	grandchild, err := env.tweets.Reply(ctx, alice, child.ID, "grandchild", nil)
	require.NoError(t, err)

	require.NoError(t, env.tweets.Delete(ctx, bob, child.ID))

	thread, err := env.timeline.Thread(ctx, alice, grandchild.ID, 1, 10)
	require.NoError(t, err)

	// The chain stops at the deleted placeholder; root is unreachable.
	require.NotNil(t, thread.RepliedTweet)
	assert.True(t, thread.RepliedTweet.Deleted)
	assert.NotEmpty(t, thread.RepliedTweet.Message)
	assert.Nil(t, thread.RepliedTweet.Tweet)
	assert.Nil(t, thread.RepliedTweet.RepliedTweet)
}

func TestThreadOfRetweetShowsSource(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	alice := env.register(t, "alice")
	bob := env.register(t, "bob")

	src, err := env.tweets.Post(ctx, alice, "original", nil)
	require.NoError(t, err)
	reply, err := env.tweets.Reply(ctx, bob, src.ID, "a reply", nil)
	require.NoError(t, err)
	rt, err := env.tweets.Retweet(ctx, bob, src.ID)
	require.NoError(t, err)

	thread, err := env.timeline.Thread(ctx, bob, rt.ID, 1, 10)
	require.NoError(t, err)

	assert.Equal(t, src.ID, thread.Tweet.ID)
	require.Len(t, thread.ReplyingTweets, 1)
	assert.Equal(t, reply.ID, thread.ReplyingTweets[0].ID)
	assert.True(t, thread.Tweet.UserRetweet)
}
