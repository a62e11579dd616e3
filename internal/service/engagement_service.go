package service

import (
	"context"

	"github.com/wafflestudio/team2-server/internal/domain"
	"github.com/wafflestudio/team2-server/internal/notifier"
	"github.com/wafflestudio/team2-server/internal/repository"
)

// engagementService implements EngagementService.
type engagementService struct {
	tweets repository.TweetRepository
	engage repository.EngagementRepository
	notify notifier.Notifier
}

// NewEngagementService creates the engagement service.
func NewEngagementService(
	tweets repository.TweetRepository,
	engage repository.EngagementRepository,
	notify notifier.Notifier,
) EngagementService {
	return &engagementService{tweets: tweets, engage: engage, notify: notify}
}

func (s *engagementService) Like(ctx context.Context, userID string, tweetID uint64) error {
	t, err := s.tweets.GetByID(ctx, tweetID)
	if err != nil {
		return err
	}

	if err := s.engage.Like(ctx, tweetID, userID); err != nil {
		return err
	}

	s.notify.Notify(ctx, domain.NotifyLike, t.EffectiveOwner(), userID, &tweetID)
	return nil
}

func (s *engagementService) Unlike(ctx context.Context, userID string, tweetID uint64) error {
	return s.engage.Unlike(ctx, tweetID, userID)
}

var _ EngagementService = (*engagementService)(nil)
