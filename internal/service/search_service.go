package service

import (
	"context"
	"strings"

	"github.com/wafflestudio/team2-server/internal/domain"
	"github.com/wafflestudio/team2-server/internal/pagination"
	"github.com/wafflestudio/team2-server/internal/repository"
	"github.com/wafflestudio/team2-server/pkg/storage"
)

// searchService implements SearchService with substring matching in the
// relational store.
type searchService struct {
	timeline repository.TimelineRepository
	users    repository.UserRepository
	views    *viewBuilder
}

// NewSearchService creates the search service.
func NewSearchService(
	tweets repository.TweetRepository,
	timeline repository.TimelineRepository,
	engage repository.EngagementRepository,
	users repository.UserRepository,
	store storage.Storage,
) SearchService {
	return &searchService{
		timeline: timeline,
		users:    users,
		views:    newViewBuilder(tweets, engage, users, store),
	}
}

func (s *searchService) SearchTweets(ctx context.Context, viewerID, query string, page, size int) ([]domain.TweetView, pagination.Page, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, pagination.Page{}, ErrQueryRequired
	}

	tweets, p, err := s.timeline.SearchTweets(ctx, query, page, size)
	if err != nil {
		return nil, pagination.Page{}, err
	}

	views, err := s.views.compose(ctx, viewerID, tweets)
	if err != nil {
		return nil, pagination.Page{}, err
	}
	return views, p, nil
}

func (s *searchService) SearchUsers(ctx context.Context, query string, page, size int) ([]domain.UserResponse, pagination.Page, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, pagination.Page{}, ErrQueryRequired
	}

	users, p, err := s.users.Search(ctx, query, page, size)
	if err != nil {
		return nil, pagination.Page{}, err
	}

	out := make([]domain.UserResponse, 0, len(users))
	for i := range users {
		out = append(out, users[i].ToResponse())
	}
	return out, p, nil
}

var _ SearchService = (*searchService)(nil)
