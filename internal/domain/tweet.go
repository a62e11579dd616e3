package domain

import (
	"time"
)

// TweetKind discriminates the four tweet variants sharing the tweets table.
type TweetKind string

const (
	KindGeneral TweetKind = "GENERAL"
	KindReply   TweetKind = "REPLY"
	KindRetweet TweetKind = "RETWEET"
	KindQuote   TweetKind = "QUOTE"
)

// TweetModel is the GORM model for the tweets table. All four kinds share
// the table; kind-specific fields stay empty for the other kinds.
type TweetModel struct {
	ID               uint64    `gorm:"primaryKey;autoIncrement"`
	Kind             TweetKind `gorm:"column:kind;type:varchar(10);not null;index"`
	AuthorID         string    `gorm:"column:author_id;type:varchar(36);not null;index"`
	RetweetingUserID string    `gorm:"column:retweeting_user_id;type:varchar(36);index"` // RETWEET only
	Content          string    `gorm:"type:varchar(500)"`
	WrittenAt        time.Time `gorm:"column:written_at"`
	CreatedAt        time.Time `gorm:"autoCreateTime;index:idx_tweets_created_at"`
}

func (TweetModel) TableName() string { return "tweets" }

// TweetMediaModel holds one ordered media reference of a tweet.
type TweetMediaModel struct {
	ID       uint64 `gorm:"primaryKey;autoIncrement"`
	TweetID  uint64 `gorm:"column:tweet_id;not null;index"`
	Position int    `gorm:"not null"`
	Key      string `gorm:"type:varchar(255);not null"`
}

func (TweetMediaModel) TableName() string { return "tweet_media" }

// Tweet is the domain representation of a tweet of any kind.
type Tweet struct {
	ID               uint64
	Kind             TweetKind
	AuthorID         string
	RetweetingUserID string // set only for RETWEET; the user who performed it
	Content          string
	MediaKeys        []string
	WrittenAt        time.Time // display timestamp; copied verbatim on retweet
	CreatedAt        time.Time
}

// EffectiveOwner returns the user entitled to delete the tweet.
// A retweet belongs to the user who performed it, not the original author.
func (t *Tweet) EffectiveOwner() string {
	if t.Kind == KindRetweet {
		return t.RetweetingUserID
	}
	return t.AuthorID
}

// ToDomain converts TweetModel to a domain Tweet. Media keys are attached
// separately by the repository.
func (m *TweetModel) ToDomain() *Tweet {
	return &Tweet{
		ID:               m.ID,
		Kind:             m.Kind,
		AuthorID:         m.AuthorID,
		RetweetingUserID: m.RetweetingUserID,
		Content:          m.Content,
		WrittenAt:        m.WrittenAt,
		CreatedAt:        m.CreatedAt,
	}
}

// TweetToModel converts a domain Tweet to its GORM model.
func TweetToModel(t *Tweet) *TweetModel {
	return &TweetModel{
		ID:               t.ID,
		Kind:             t.Kind,
		AuthorID:         t.AuthorID,
		RetweetingUserID: t.RetweetingUserID,
		Content:          t.Content,
		WrittenAt:        t.WrittenAt,
		CreatedAt:        t.CreatedAt,
	}
}
