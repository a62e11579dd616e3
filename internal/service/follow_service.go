package service

import (
	"context"

	"github.com/wafflestudio/team2-server/internal/cache"
	"github.com/wafflestudio/team2-server/internal/domain"
	"github.com/wafflestudio/team2-server/internal/notifier"
	"github.com/wafflestudio/team2-server/internal/pagination"
	"github.com/wafflestudio/team2-server/internal/repository"
	"github.com/wafflestudio/team2-server/pkg/log"
)

// followService implements FollowService with a read-through count cache.
type followService struct {
	follows repository.FollowRepository
	users   repository.UserRepository
	counts  cache.FollowCache
	notify  notifier.Notifier
}

// NewFollowService creates the follow service.
func NewFollowService(
	follows repository.FollowRepository,
	users repository.UserRepository,
	counts cache.FollowCache,
	notify notifier.Notifier,
) FollowService {
	return &followService{follows: follows, users: users, counts: counts, notify: notify}
}

func (s *followService) Follow(ctx context.Context, followerID, followingID string) error {
	if followerID == followingID {
		return ErrSelfFollow
	}
	if _, err := s.users.GetByID(ctx, followingID); err != nil {
		return err
	}

	if err := s.follows.Follow(ctx, followerID, followingID); err != nil {
		return err
	}
	s.invalidateCounts(ctx, followerID, followingID)

	s.notify.Notify(ctx, domain.NotifyFollow, followingID, followerID, nil)
	return nil
}

func (s *followService) Unfollow(ctx context.Context, followerID, followingID string) error {
	if err := s.follows.Unfollow(ctx, followerID, followingID); err != nil {
		return err
	}
	s.invalidateCounts(ctx, followerID, followingID)
	return nil
}

// invalidateCounts drops both users' cached counters. Cache failures are
// logged, not surfaced; the TTL bounds the staleness.
func (s *followService) invalidateCounts(ctx context.Context, followerID, followingID string) {
	for _, id := range []string{followerID, followingID} {
		if err := s.counts.Invalidate(ctx, id); err != nil {
			logger := log.Ctx(ctx)
			logger.Warn().Err(err).Str(log.FieldUserID, id).Msg("failed to invalidate follow counts")
		}
	}
}

func (s *followService) Followers(ctx context.Context, userID string, page, size int) ([]domain.UserResponse, pagination.Page, error) {
	ids, p, err := s.follows.FollowerIDs(ctx, userID, page, size)
	if err != nil {
		return nil, pagination.Page{}, err
	}
	users, err := s.renderUsers(ctx, ids)
	if err != nil {
		return nil, pagination.Page{}, err
	}
	return users, p, nil
}

func (s *followService) Following(ctx context.Context, userID string, page, size int) ([]domain.UserResponse, pagination.Page, error) {
	ids, p, err := s.follows.FollowingIDs(ctx, userID, page, size)
	if err != nil {
		return nil, pagination.Page{}, err
	}
	users, err := s.renderUsers(ctx, ids)
	if err != nil {
		return nil, pagination.Page{}, err
	}
	return users, p, nil
}

// renderUsers loads the page's users and keeps the id order of the page.
func (s *followService) renderUsers(ctx context.Context, ids []string) ([]domain.UserResponse, error) {
	users, err := s.users.GetByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	out := make([]domain.UserResponse, 0, len(ids))
	for _, id := range ids {
		if u, ok := users[id]; ok {
			out = append(out, u.ToResponse())
		}
	}
	return out, nil
}

func (s *followService) ProfileOf(ctx context.Context, viewerID, userID string) (*domain.ProfileView, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	followers, err := s.followersCount(ctx, userID)
	if err != nil {
		return nil, err
	}
	following, err := s.followingCount(ctx, userID)
	if err != nil {
		return nil, err
	}

	view := domain.ProfileView{
		User:      user.ToResponse(),
		Followers: followers,
		Following: following,
	}
	if viewerID != "" && viewerID != userID {
		view.IsFollowing, err = s.follows.IsFollowing(ctx, viewerID, userID)
		if err != nil {
			return nil, err
		}
	}
	return &view, nil
}

func (s *followService) followersCount(ctx context.Context, userID string) (int64, error) {
	if count, ok, err := s.counts.GetFollowersCount(ctx, userID); err == nil && ok {
		return count, nil
	}
	count, err := s.follows.FollowersCount(ctx, userID)
	if err != nil {
		return 0, err
	}
	if err := s.counts.SetFollowersCount(ctx, userID, count); err != nil {
		logger := log.Ctx(ctx)
		logger.Warn().Err(err).Str(log.FieldUserID, userID).Msg("failed to cache followers count")
	}
	return count, nil
}

func (s *followService) followingCount(ctx context.Context, userID string) (int64, error) {
	if count, ok, err := s.counts.GetFollowingCount(ctx, userID); err == nil && ok {
		return count, nil
	}
	count, err := s.follows.FollowingCount(ctx, userID)
	if err != nil {
		return 0, err
	}
	if err := s.counts.SetFollowingCount(ctx, userID, count); err != nil {
		logger := log.Ctx(ctx)
		logger.Warn().Err(err).Str(log.FieldUserID, userID).Msg("failed to cache following count")
	}
	return count, nil
}

var _ FollowService = (*followService)(nil)
