package domain

import "time"

// FollowModel is the GORM model for the follows table. The pair is unique;
// unfollow removes the row, so re-follows insert fresh rows.
type FollowModel struct {
	ID          uint64    `gorm:"primaryKey;autoIncrement"`
	FollowerID  string    `gorm:"column:follower_id;type:varchar(36);not null;uniqueIndex:uidx_follow_pair,priority:1"`
	FollowingID string    `gorm:"column:following_id;type:varchar(36);not null;uniqueIndex:uidx_follow_pair,priority:2;index"`
	CreatedAt   time.Time `gorm:"autoCreateTime"`
}

func (FollowModel) TableName() string { return "follows" }

// Follow is the domain representation of a follow relationship.
type Follow struct {
	FollowerID  string
	FollowingID string
	CreatedAt   time.Time
}
