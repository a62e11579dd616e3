package domain

// ReplyModel links a reply tweet to the tweet it replies to.
// replied_id goes NULL when the target is deleted; the reply itself
// survives and renders a deleted placeholder.
type ReplyModel struct {
	ID         uint64  `gorm:"primaryKey;autoIncrement"`
	RepliedID  *uint64 `gorm:"column:replied_id;index"`
	ReplyingID uint64  `gorm:"column:replying_id;not null;uniqueIndex"`
}

func (ReplyModel) TableName() string { return "replies" }

// RetweetModel links a synthetic retweet tweet to its source. The
// (retweeted_id, user_id) pair is unique: one active retweet per user per
// source. The constraint, not a prior read, is what rejects duplicates.
type RetweetModel struct {
	ID           uint64 `gorm:"primaryKey;autoIncrement"`
	RetweetedID  uint64 `gorm:"column:retweeted_id;not null;uniqueIndex:uidx_retweet_pair,priority:1"`
	RetweetingID uint64 `gorm:"column:retweeting_id;not null;uniqueIndex"`
	UserID       string `gorm:"column:user_id;type:varchar(36);not null;uniqueIndex:uidx_retweet_pair,priority:2"`
}

func (RetweetModel) TableName() string { return "retweets" }

// QuoteModel links a quote tweet to the tweet it quotes. Like replies,
// quoted_id goes NULL when the target is deleted.
type QuoteModel struct {
	ID        uint64  `gorm:"primaryKey;autoIncrement"`
	QuotedID  *uint64 `gorm:"column:quoted_id;index"`
	QuotingID uint64  `gorm:"column:quoting_id;not null;uniqueIndex"`
}

func (QuoteModel) TableName() string { return "quotes" }

// UserLikeModel records one like; unique per (user, tweet).
type UserLikeModel struct {
	ID      uint64 `gorm:"primaryKey;autoIncrement"`
	UserID  string `gorm:"column:user_id;type:varchar(36);not null;uniqueIndex:uidx_like_pair,priority:1"`
	LikedID uint64 `gorm:"column:liked_id;not null;uniqueIndex:uidx_like_pair,priority:2"`
}

func (UserLikeModel) TableName() string { return "user_likes" }

// EngagementCounts carries the edge cardinalities for one tweet.
type EngagementCounts struct {
	Replies  int64
	Retweets int64
	Quotes   int64
	Likes    int64
}
