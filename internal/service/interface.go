package service

import (
	"context"
	"errors"
	"io"

	"github.com/wafflestudio/team2-server/internal/domain"
	"github.com/wafflestudio/team2-server/internal/pagination"
)

// MaxContentLength is the longest tweet content accepted, in characters.
const MaxContentLength = 500

var (
	ErrContentRequired    = errors.New("content or media required")
	ErrContentTooLong     = errors.New("content exceeds maximum length")
	ErrNotTweetOwner      = errors.New("user does not own the tweet")
	ErrSelfFollow         = errors.New("users cannot follow themselves")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrQueryRequired      = errors.New("search query required")
)

// TweetService owns tweet creation and deletion, including the edge
// variants. Every successful engagement notifies the target's owner.
type TweetService interface {
	// Post publishes a GENERAL tweet.
	Post(ctx context.Context, authorID, content string, mediaKeys []string) (*domain.TweetView, error)

	// Reply publishes a REPLY to the target tweet.
	Reply(ctx context.Context, authorID string, targetID uint64, content string, mediaKeys []string) (*domain.TweetView, error)

	// Quote publishes a QUOTE of the target tweet.
	Quote(ctx context.Context, authorID string, targetID uint64, content string, mediaKeys []string) (*domain.TweetView, error)

	// Retweet creates the synthetic retweet of the target. Retweeting a
	// retweet resolves to its source first, so the synthetic row always
	// points at an original tweet.
	Retweet(ctx context.Context, userID string, targetID uint64) (*domain.TweetView, error)

	// CancelRetweet removes the user's retweet of the target.
	CancelRetweet(ctx context.Context, userID string, targetID uint64) error

	// Delete removes the tweet. Only the effective owner may delete; a
	// retweet belongs to the user who performed it.
	Delete(ctx context.Context, userID string, tweetID uint64) error
}

// TimelineService composes feeds and thread pages. viewerID may be empty
// for anonymous reads; engagement flags are then false.
type TimelineService interface {
	// Home returns one page of the viewer's home timeline: tweets and
	// retweets by the viewer and everyone they follow.
	Home(ctx context.Context, viewerID string, page, size int) ([]domain.TweetView, pagination.Page, error)

	// Profile returns one page of a single user's timeline.
	Profile(ctx context.Context, viewerID, userID string, page, size int) ([]domain.TweetView, pagination.Page, error)

	// Thread returns a tweet's detail page. A retweet id resolves to its
	// source. Deleted ancestors render as placeholders.
	Thread(ctx context.Context, viewerID string, tweetID uint64, page, size int) (*domain.ThreadView, error)
}

// EngagementService owns likes.
type EngagementService interface {
	Like(ctx context.Context, userID string, tweetID uint64) error
	Unlike(ctx context.Context, userID string, tweetID uint64) error
}

// FollowService owns the follow graph and the profile header.
type FollowService interface {
	Follow(ctx context.Context, followerID, followingID string) error
	Unfollow(ctx context.Context, followerID, followingID string) error

	// Followers returns one page of the user's followers, newest first.
	Followers(ctx context.Context, userID string, page, size int) ([]domain.UserResponse, pagination.Page, error)

	// Following returns one page of the users the given user follows.
	Following(ctx context.Context, userID string, page, size int) ([]domain.UserResponse, pagination.Page, error)

	// ProfileOf returns the profile header for a user. viewerID may be
	// empty; IsFollowing is then false.
	ProfileOf(ctx context.Context, viewerID, userID string) (*domain.ProfileView, error)
}

// UserService owns accounts and authentication.
type UserService interface {
	Register(ctx context.Context, req *domain.RegisterRequest) (*domain.AuthResponse, error)
	Login(ctx context.Context, req *domain.LoginRequest) (*domain.AuthResponse, error)
	Refresh(ctx context.Context, refreshToken string) (*domain.AuthResponse, error)

	// Logout revokes the presented access token, and the refresh token
	// when the client sends it along. Tokens from a later login are
	// unaffected.
	Logout(ctx context.Context, accessToken, refreshToken string) error

	GetByID(ctx context.Context, id string) (*domain.User, error)
}

// SearchService finds tweets and users by substring match.
type SearchService interface {
	SearchTweets(ctx context.Context, viewerID, query string, page, size int) ([]domain.TweetView, pagination.Page, error)
	SearchUsers(ctx context.Context, query string, page, size int) ([]domain.UserResponse, pagination.Page, error)
}

// NotificationService renders and manages a user's notifications.
type NotificationService interface {
	List(ctx context.Context, userID string, page, size int) ([]domain.NotificationView, pagination.Page, error)
	MarkAllRead(ctx context.Context, userID string) error
}

// MediaService stores media blobs ahead of tweet creation and resolves
// keys back to readable content.
type MediaService interface {
	// Upload stores the blob and returns its key and serving URL.
	Upload(ctx context.Context, userID, filename, contentType string, r io.Reader, size int64) (key, url string, err error)

	// Open returns the blob content for a key.
	Open(ctx context.Context, key string) (io.ReadCloser, error)
}
