package service

import (
	"context"
	"errors"

	"github.com/wafflestudio/team2-server/internal/domain"
	"github.com/wafflestudio/team2-server/internal/pagination"
	"github.com/wafflestudio/team2-server/internal/repository"
	"github.com/wafflestudio/team2-server/pkg/storage"
)

// notificationService implements NotificationService.
type notificationService struct {
	notifications repository.NotificationRepository
	tweets        repository.TweetRepository
	users         repository.UserRepository
	views         *viewBuilder
}

// NewNotificationService creates the notification service.
func NewNotificationService(
	notifications repository.NotificationRepository,
	tweets repository.TweetRepository,
	engage repository.EngagementRepository,
	users repository.UserRepository,
	store storage.Storage,
) NotificationService {
	return &notificationService{
		notifications: notifications,
		tweets:        tweets,
		users:         users,
		views:         newViewBuilder(tweets, engage, users, store),
	}
}

func (s *notificationService) List(ctx context.Context, userID string, page, size int) ([]domain.NotificationView, pagination.Page, error) {
	notifications, p, err := s.notifications.PageFor(ctx, userID, page, size)
	if err != nil {
		return nil, pagination.Page{}, err
	}

	actorIDs := make([]string, 0, len(notifications))
	for i := range notifications {
		actorIDs = append(actorIDs, notifications[i].ActorID)
	}
	actors, err := s.users.GetByIDs(ctx, actorIDs)
	if err != nil {
		return nil, pagination.Page{}, err
	}

	out := make([]domain.NotificationView, 0, len(notifications))
	for i := range notifications {
		n := &notifications[i]

		view := domain.NotificationView{
			ID:        n.ID,
			Kind:      n.Kind,
			CreatedAt: n.CreatedAt,
		}
		if actor, ok := actors[n.ActorID]; ok {
			view.Actor = actor.ToResponse()
		}
		if n.TweetID != nil {
			// The delete cascade removes notifications of dead tweets,
			// but a tweet can still vanish between the two reads.
			t, err := s.tweets.GetByID(ctx, *n.TweetID)
			if err != nil {
				if !errors.Is(err, repository.ErrTweetNotFound) {
					return nil, pagination.Page{}, err
				}
			} else {
				tv, err := s.views.composeOne(ctx, userID, t)
				if err != nil {
					return nil, pagination.Page{}, err
				}
				view.Tweet = tv
			}
		}
		out = append(out, view)
	}
	return out, p, nil
}

func (s *notificationService) MarkAllRead(ctx context.Context, userID string) error {
	return s.notifications.MarkAllRead(ctx, userID)
}

var _ NotificationService = (*notificationService)(nil)
