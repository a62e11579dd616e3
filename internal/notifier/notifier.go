package notifier

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/wafflestudio/team2-server/internal/domain"
	"github.com/wafflestudio/team2-server/internal/repository"
	"github.com/wafflestudio/team2-server/pkg/log"
)

// channelPrefix is the per-recipient pub/sub channel namespace. Clients
// subscribe to their own channel to receive live notifications.
const channelPrefix = "notifications:"

// Event is the wire envelope published for each notification.
type Event struct {
	Type      string          `json:"type"`
	UserID    string          `json:"user_id"`
	Payload   json.RawMessage `json:"payload"`
	Timestamp time.Time       `json:"timestamp"`
}

// NewEvent builds an event with the current timestamp.
func NewEvent(eventType, userID string, payload interface{}) (*Event, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return &Event{
		Type:      eventType,
		UserID:    userID,
		Payload:   data,
		Timestamp: time.Now(),
	}, nil
}

// Notifier records engagement notifications and announces them to live
// subscribers. Failures are logged and swallowed so a broken notification
// path never fails the engagement that caused it.
type Notifier interface {
	Notify(ctx context.Context, kind domain.NotificationKind, recipientID, actorID string, tweetID *uint64)
}

// RedisNotifier persists notification rows and publishes each one to the
// recipient's Redis channel.
type RedisNotifier struct {
	repo   repository.NotificationRepository
	client *redis.Client
}

// NewRedisNotifier creates a notifier. client may be nil; rows are then
// still written but nothing is published.
func NewRedisNotifier(repo repository.NotificationRepository, client *redis.Client) *RedisNotifier {
	return &RedisNotifier{repo: repo, client: client}
}

// Notify stores and publishes one notification. Self-engagements are
// dropped; nobody is notified about their own likes or replies.
func (n *RedisNotifier) Notify(ctx context.Context, kind domain.NotificationKind, recipientID, actorID string, tweetID *uint64) {
	if recipientID == actorID {
		return
	}

	notification := domain.Notification{
		UserID:  recipientID,
		ActorID: actorID,
		Kind:    kind,
		TweetID: tweetID,
	}
	if err := n.repo.Create(ctx, &notification); err != nil {
		logger := log.Ctx(ctx)
		logger.Error().Err(err).
			Str(log.FieldUserID, recipientID).
			Str("kind", string(kind)).
			Msg("failed to store notification")
		return
	}

	if n.client == nil {
		return
	}
	if err := n.publish(ctx, &notification); err != nil {
		logger := log.Ctx(ctx)
		logger.Warn().Err(err).
			Str(log.FieldUserID, recipientID).
			Msg("failed to publish notification")
	}
}

func (n *RedisNotifier) publish(ctx context.Context, notification *domain.Notification) error {
	event, err := NewEvent(string(notification.Kind), notification.UserID, notification)
	if err != nil {
		return fmt.Errorf("marshal notification event: %w", err)
	}
	data, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshal event envelope: %w", err)
	}
	return n.client.Publish(ctx, channelPrefix+notification.UserID, data).Err()
}

// Ensure interface is satisfied at compile time.
var _ Notifier = (*RedisNotifier)(nil)
