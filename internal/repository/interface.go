package repository

import (
	"context"
	"errors"

	"github.com/wafflestudio/team2-server/internal/domain"
	"github.com/wafflestudio/team2-server/internal/pagination"
)

var (
	ErrTweetNotFound    = errors.New("tweet not found")
	ErrAlreadyRetweeted = errors.New("tweet already retweeted by user")
	ErrNoRetweet        = errors.New("retweet not found")
	ErrAlreadyLiked     = errors.New("tweet already liked by user")
	ErrNoLike           = errors.New("like not found")
	ErrFollowNotFound   = errors.New("follow relationship not found")
	ErrAlreadyFollowing = errors.New("already following")
	ErrUserNotFound     = errors.New("user not found")
	ErrEmailExists      = errors.New("email already registered")
	ErrUsernameExists   = errors.New("username already taken")
)

// TweetRepository owns tweet rows and the reply/retweet/quote edges. Every
// compound write runs in one transaction: either the tweet and its edge row
// both land, or neither does.
type TweetRepository interface {
	// CreateTweet inserts a GENERAL tweet with its media rows.
	CreateTweet(ctx context.Context, t *domain.Tweet) error

	// CreateReply inserts a REPLY tweet and its edge to the target.
	// Returns ErrTweetNotFound when the target is absent.
	CreateReply(ctx context.Context, targetID uint64, t *domain.Tweet) error

	// CreateQuote inserts a QUOTE tweet and its edge to the target.
	CreateQuote(ctx context.Context, targetID uint64, t *domain.Tweet) error

	// CreateRetweet inserts the synthetic RETWEET tweet (author, content,
	// written_at, and media copied verbatim from the source) and its edge.
	// A duplicate (source, user) pair returns ErrAlreadyRetweeted; the
	// unique index is the arbiter, so concurrent retweets cannot both land.
	CreateRetweet(ctx context.Context, sourceID uint64, userID string) (*domain.Tweet, error)

	// DeleteRetweet removes the user's retweet of the source tweet,
	// cascading to the synthetic tweet. Returns ErrNoRetweet when the user
	// has no active retweet of the source.
	DeleteRetweet(ctx context.Context, sourceID uint64, userID string) error

	// GetByID loads one tweet with its media keys.
	GetByID(ctx context.Context, id uint64) (*domain.Tweet, error)

	// MediaFor returns the ordered media keys for each of the given tweets.
	MediaFor(ctx context.Context, ids []uint64) (map[uint64][]string, error)

	// Delete removes a tweet and cascades: synthetic retweets of it die
	// with it, its own edge rows are removed, and reply/quote edges
	// pointing at it have their target set to NULL.
	Delete(ctx context.Context, id uint64) error
}

// TimelineRepository reads the tweet graph for feed composition. It never
// mutates edges; only TweetRepository does.
type TimelineRepository interface {
	// Home returns one page of the home timeline for the given authors:
	// their non-retweet tweets plus tweets they retweeted, newest first.
	Home(ctx context.Context, userIDs []string, page, size int) ([]domain.Tweet, pagination.Page, error)

	// Profile returns one page of a single user's timeline.
	Profile(ctx context.Context, userID string, page, size int) ([]domain.Tweet, pagination.Page, error)

	// Replies returns one page of direct replies to a tweet, newest first.
	Replies(ctx context.Context, tweetID uint64, page, size int) ([]domain.Tweet, pagination.Page, error)

	// RepliedID returns the target of a reply tweet's edge. hasEdge is
	// false when the tweet is not a reply; a nil id with hasEdge true
	// means the target was deleted.
	RepliedID(ctx context.Context, replyingID uint64) (repliedID *uint64, hasEdge bool, err error)

	// RetweetSource resolves a synthetic retweet to its source tweet id.
	RetweetSource(ctx context.Context, retweetingID uint64) (uint64, error)

	// SearchTweets returns one page of non-retweet tweets whose content
	// matches the query, newest first.
	SearchTweets(ctx context.Context, query string, page, size int) ([]domain.Tweet, pagination.Page, error)
}

// EngagementRepository owns like rows and answers cardinality questions
// over all four edge tables.
type EngagementRepository interface {
	// Like records a like; ErrTweetNotFound when the tweet is absent,
	// ErrAlreadyLiked on a duplicate (user, tweet) pair.
	Like(ctx context.Context, tweetID uint64, userID string) error

	// Unlike removes a like; ErrNoLike when none exists.
	Unlike(ctx context.Context, tweetID uint64, userID string) error

	// CountsFor returns the reply/retweet/quote/like cardinalities for
	// each of the given tweets. Tweets without edges map to zero counts.
	CountsFor(ctx context.Context, ids []uint64) (map[uint64]domain.EngagementCounts, error)

	// LikedSet reports which of the given tweets the user has liked.
	LikedSet(ctx context.Context, userID string, ids []uint64) (map[uint64]bool, error)

	// RetweetedSet reports which of the given tweets the user has retweeted.
	RetweetedSet(ctx context.Context, userID string, ids []uint64) (map[uint64]bool, error)
}

// FollowRepository defines persistence operations for follow relationships.
type FollowRepository interface {
	Follow(ctx context.Context, followerID, followingID string) error
	Unfollow(ctx context.Context, followerID, followingID string) error
	IsFollowing(ctx context.Context, followerID, followingID string) (bool, error)

	// FolloweeIDs returns every user the given user follows.
	FolloweeIDs(ctx context.Context, followerID string) ([]string, error)

	// FollowerIDs returns one page of the user's followers, newest first.
	FollowerIDs(ctx context.Context, userID string, page, size int) ([]string, pagination.Page, error)

	// FollowingIDs returns one page of the users the given user follows.
	FollowingIDs(ctx context.Context, userID string, page, size int) ([]string, pagination.Page, error)

	FollowersCount(ctx context.Context, userID string) (int64, error)
	FollowingCount(ctx context.Context, userID string) (int64, error)
}

// UserRepository defines persistence operations for accounts.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	GetByID(ctx context.Context, id string) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	GetByIDs(ctx context.Context, ids []string) (map[string]*domain.User, error)

	// Search returns one page of users whose username, display name, or
	// bio contains the query.
	Search(ctx context.Context, query string, page, size int) ([]domain.User, pagination.Page, error)
}

// NotificationRepository owns notification rows.
type NotificationRepository interface {
	Create(ctx context.Context, n *domain.Notification) error
	PageFor(ctx context.Context, userID string, page, size int) ([]domain.Notification, pagination.Page, error)
	MarkAllRead(ctx context.Context, userID string) error
}
