package domain

import "time"

// TweetView is one rendered tweet: the record plus author info, resolved
// media URLs, edge counts, and the viewer's own engagement flags.
// Retweets reports direct retweets plus quotes; Quotes is also broken out
// for the detail view.
type TweetView struct {
	ID             uint64       `json:"id"`
	Kind           TweetKind    `json:"kind"`
	Author         UserResponse `json:"author"`
	RetweetingUser string       `json:"retweeting_user,omitempty"`
	Content        string       `json:"content,omitempty"`
	Media          []string     `json:"media,omitempty"`
	WrittenAt      time.Time    `json:"written_at"`
	CreatedAt      time.Time    `json:"created_at"`
	Replies        int64        `json:"replies"`
	Retweets       int64        `json:"retweets"`
	Quotes         int64        `json:"quotes"`
	Likes          int64        `json:"likes"`
	UserRetweet    bool         `json:"user_retweet"`
	UserLike       bool         `json:"user_like"`
}

// AncestorView is one step of a thread's ancestor chain. When the replied
// tweet was deleted the placeholder carries deleted=true and the chain
// stops there.
type AncestorView struct {
	Deleted      bool          `json:"deleted"`
	Message      string        `json:"message,omitempty"`
	Tweet        *TweetView    `json:"tweet,omitempty"`
	RepliedTweet *AncestorView `json:"replied_tweet,omitempty"`
}

// ThreadView is a tweet's detail page: the tweet, its ancestor chain, and
// one page of direct replies (newest first).
type ThreadView struct {
	Tweet          TweetView     `json:"tweet"`
	RepliedTweet   *AncestorView `json:"replied_tweet,omitempty"`
	ReplyingTweets []TweetView   `json:"replying_tweets"`
}

// ProfileView is a user's profile page header: the public user record,
// follow-graph cardinalities, and whether the viewer follows them.
type ProfileView struct {
	User        UserResponse `json:"user"`
	Followers   int64        `json:"followers"`
	Following   int64        `json:"following"`
	IsFollowing bool         `json:"is_following"`
}

// NotificationView is one rendered notification.
type NotificationView struct {
	ID        uint64           `json:"id"`
	Actor     UserResponse     `json:"actor"`
	Kind      NotificationKind `json:"kind"`
	Tweet     *TweetView       `json:"tweet,omitempty"`
	CreatedAt time.Time        `json:"created_at"`
}
