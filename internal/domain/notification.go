package domain

import "time"

// NotificationKind names the engagement that produced a notification.
type NotificationKind string

const (
	NotifyReply   NotificationKind = "REPLY"
	NotifyRetweet NotificationKind = "RETWEET"
	NotifyQuote   NotificationKind = "QUOTE"
	NotifyLike    NotificationKind = "LIKE"
	NotifyFollow  NotificationKind = "FOLLOW"
)

// NotificationModel is the GORM model for the notifications table.
// tweet_id is empty for FOLLOW notifications and for notifications whose
// tweet has since been deleted (cleared by the delete cascade).
type NotificationModel struct {
	ID        uint64           `gorm:"primaryKey;autoIncrement"`
	UserID    string           `gorm:"column:user_id;type:varchar(36);not null;index"` // recipient
	ActorID   string           `gorm:"column:actor_id;type:varchar(36);not null"`
	Kind      NotificationKind `gorm:"type:varchar(10);not null"`
	TweetID   *uint64          `gorm:"column:tweet_id;index"`
	IsRead    bool             `gorm:"column:is_read;not null;default:false"`
	CreatedAt time.Time        `gorm:"autoCreateTime;index"`
}

func (NotificationModel) TableName() string { return "notifications" }

// Notification is the domain representation of one notification.
type Notification struct {
	ID        uint64
	UserID    string
	ActorID   string
	Kind      NotificationKind
	TweetID   *uint64
	IsRead    bool
	CreatedAt time.Time
}

// ToDomain converts NotificationModel to a domain Notification.
func (m *NotificationModel) ToDomain() *Notification {
	return &Notification{
		ID:        m.ID,
		UserID:    m.UserID,
		ActorID:   m.ActorID,
		Kind:      m.Kind,
		TweetID:   m.TweetID,
		IsRead:    m.IsRead,
		CreatedAt: m.CreatedAt,
	}
}
