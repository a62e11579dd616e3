package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wafflestudio/team2-server/internal/domain"
)

func TestHomeMembershipAndOrder(t *testing.T) {
	db := testDB(t)
	ctx := context.Background()
	timeline := NewGormTimelineRepository(db)
	tweets := NewGormTweetRepository(db)

	alice := seedUser(t, db, "alice")
	bob := seedUser(t, db, "bob")
	carol := seedUser(t, db, "carol")

	t1 := seedTweet(t, db, alice.ID, "first")
	t2 := seedTweet(t, db, bob.ID, "second")
	t3 := seedTweet(t, db, carol.ID, "outsider")
	rt, err := tweets.CreateRetweet(ctx, t3.ID, bob.ID)
	require.NoError(t, err)

	page, p, err := timeline.Home(ctx, []string{alice.ID, bob.ID}, 1, 10)
	require.NoError(t, err)
	assert.Equal(t, int64(3), p.Total)

	// Carol's tweet reaches the feed only through Bob's retweet, and the
	// page is ordered newest first.
	ids := make([]uint64, 0, len(page))
	for _, tw := range page {
		ids = append(ids, tw.ID)
	}
	assert.Equal(t, []uint64{rt.ID, t2.ID, t1.ID}, ids)
}

func TestHomeExcludesForeignRetweetsOfFollowees(t *testing.T) {
	db := testDB(t)
	ctx := context.Background()
	timeline := NewGormTimelineRepository(db)
	tweets := NewGormTweetRepository(db)

	alice := seedUser(t, db, "alice")
	carol := seedUser(t, db, "carol")

	src := seedTweet(t, db, alice.ID, "original")
	// Carol retweets Alice; a feed covering only Alice must not show
	// Carol's synthetic retweet even though its author is Alice.
	_, err := tweets.CreateRetweet(ctx, src.ID, carol.ID)
	require.NoError(t, err)

	page, p, err := timeline.Home(ctx, []string{alice.ID}, 1, 10)
	require.NoError(t, err)
	assert.Equal(t, int64(1), p.Total)
	require.Len(t, page, 1)
	assert.Equal(t, src.ID, page[0].ID)
}

func TestProfileIncludesOwnRetweets(t *testing.T) {
	db := testDB(t)
	ctx := context.Background()
	timeline := NewGormTimelineRepository(db)
	tweets := NewGormTweetRepository(db)

	alice := seedUser(t, db, "alice")
	bob := seedUser(t, db, "bob")

	own := seedTweet(t, db, bob.ID, "mine")
	src := seedTweet(t, db, alice.ID, "theirs")
	rt, err := tweets.CreateRetweet(ctx, src.ID, bob.ID)
	require.NoError(t, err)

	page, p, err := timeline.Profile(ctx, bob.ID, 1, 10)
	require.NoError(t, err)
	assert.Equal(t, int64(2), p.Total)

	ids := []uint64{page[0].ID, page[1].ID}
	assert.Equal(t, []uint64{rt.ID, own.ID}, ids)
}

func TestRepliesPage(t *testing.T) {
	db := testDB(t)
	ctx := context.Background()
	timeline := NewGormTimelineRepository(db)

	alice := seedUser(t, db, "alice")
	bob := seedUser(t, db, "bob")
	target := seedTweet(t, db, alice.ID, "busy thread")

	r1 := seedReply(t, db, bob.ID, target.ID, "first reply")
	r2 := seedReply(t, db, bob.ID, target.ID, "second reply")

	page, p, err := timeline.Replies(ctx, target.ID, 1, 10)
	require.NoError(t, err)
	assert.Equal(t, int64(2), p.Total)
	require.Len(t, page, 2)
	assert.Equal(t, r2.ID, page[0].ID)
	assert.Equal(t, r1.ID, page[1].ID)
}

func TestRepliedIDWithoutEdge(t *testing.T) {
	db := testDB(t)
	ctx := context.Background()
	timeline := NewGormTimelineRepository(db)

	alice := seedUser(t, db, "alice")
	tweet := seedTweet(t, db, alice.ID, "not a reply")

	_, hasEdge, err := timeline.RepliedID(ctx, tweet.ID)
	require.NoError(t, err)
	assert.False(t, hasEdge)
}

func TestRetweetSource(t *testing.T) {
	db := testDB(t)
	ctx := context.Background()
	timeline := NewGormTimelineRepository(db)
	tweets := NewGormTweetRepository(db)

	alice := seedUser(t, db, "alice")
	bob := seedUser(t, db, "bob")
	src := seedTweet(t, db, alice.ID, "source")

	rt, err := tweets.CreateRetweet(ctx, src.ID, bob.ID)
	require.NoError(t, err)

	resolved, err := timeline.RetweetSource(ctx, rt.ID)
	require.NoError(t, err)
	assert.Equal(t, src.ID, resolved)

	_, err = timeline.RetweetSource(ctx, src.ID)
	assert.ErrorIs(t, err, ErrTweetNotFound)
}

func TestSearchTweetsExcludesRetweets(t *testing.T) {
	db := testDB(t)
	ctx := context.Background()
	timeline := NewGormTimelineRepository(db)
	tweets := NewGormTweetRepository(db)

	alice := seedUser(t, db, "alice")
	bob := seedUser(t, db, "bob")

	match := seedTweet(t, db, alice.ID, "golang rocks")
	seedTweet(t, db, alice.ID, "unrelated")
	_, err := tweets.CreateRetweet(ctx, match.ID, bob.ID)
	require.NoError(t, err)

	page, p, err := timeline.SearchTweets(ctx, "golang", 1, 10)
	require.NoError(t, err)
	// The retweet copies the matching content but must not appear twice.
	assert.Equal(t, int64(1), p.Total)
	require.Len(t, page, 1)
	assert.Equal(t, match.ID, page[0].ID)
}

func TestHomePagination(t *testing.T) {
	db := testDB(t)
	ctx := context.Background()
	timeline := NewGormTimelineRepository(db)

	alice := seedUser(t, db, "alice")
	for i := 0; i < 25; i++ {
		seedTweet(t, db, alice.ID, "tweet")
	}

	page, p, err := timeline.Home(ctx, []string{alice.ID}, 3, 10)
	require.NoError(t, err)
	assert.Len(t, page, 5)
	assert.Equal(t, 3, p.Number)
	assert.Nil(t, p.Next)
	require.NotNil(t, p.Previous)
	assert.Equal(t, 2, *p.Previous)

	// Out-of-range pages clamp to the last page.
	clamped, p, err := timeline.Home(ctx, []string{alice.ID}, 99, 10)
	require.NoError(t, err)
	assert.Equal(t, 3, p.Number)
	assert.Len(t, clamped, 5)

	var kinds []domain.TweetKind
	for _, tw := range clamped {
		kinds = append(kinds, tw.Kind)
	}
	assert.NotContains(t, kinds, domain.TweetKind(""))
}
