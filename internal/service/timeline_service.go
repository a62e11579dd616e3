package service

import (
	"context"
	"errors"

	"github.com/wafflestudio/team2-server/internal/domain"
	"github.com/wafflestudio/team2-server/internal/pagination"
	"github.com/wafflestudio/team2-server/internal/repository"
	"github.com/wafflestudio/team2-server/pkg/storage"
)

// deletedTweetMessage is the placeholder text shown where a thread
// ancestor was deleted out from under its replies.
const deletedTweetMessage = "This tweet has been deleted."

// timelineService implements TimelineService.
type timelineService struct {
	tweets   repository.TweetRepository
	timeline repository.TimelineRepository
	follows  repository.FollowRepository
	views    *viewBuilder
}

// NewTimelineService creates the timeline service.
func NewTimelineService(
	tweets repository.TweetRepository,
	timeline repository.TimelineRepository,
	follows repository.FollowRepository,
	engage repository.EngagementRepository,
	users repository.UserRepository,
	store storage.Storage,
) TimelineService {
	return &timelineService{
		tweets:   tweets,
		timeline: timeline,
		follows:  follows,
		views:    newViewBuilder(tweets, engage, users, store),
	}
}

func (s *timelineService) Home(ctx context.Context, viewerID string, page, size int) ([]domain.TweetView, pagination.Page, error) {
	followees, err := s.follows.FolloweeIDs(ctx, viewerID)
	if err != nil {
		return nil, pagination.Page{}, err
	}
	// The viewer sees their own tweets alongside their followees'.
	authorIDs := append(followees, viewerID)

	tweets, p, err := s.timeline.Home(ctx, authorIDs, page, size)
	if err != nil {
		return nil, pagination.Page{}, err
	}

	views, err := s.views.compose(ctx, viewerID, tweets)
	if err != nil {
		return nil, pagination.Page{}, err
	}
	return views, p, nil
}

func (s *timelineService) Profile(ctx context.Context, viewerID, userID string, page, size int) ([]domain.TweetView, pagination.Page, error) {
	tweets, p, err := s.timeline.Profile(ctx, userID, page, size)
	if err != nil {
		return nil, pagination.Page{}, err
	}

	views, err := s.views.compose(ctx, viewerID, tweets)
	if err != nil {
		return nil, pagination.Page{}, err
	}
	return views, p, nil
}

func (s *timelineService) Thread(ctx context.Context, viewerID string, tweetID uint64, page, size int) (*domain.ThreadView, error) {
	t, err := s.tweets.GetByID(ctx, tweetID)
	if err != nil {
		return nil, err
	}

	// A retweet has no thread of its own; show the source's.
	if t.Kind == domain.KindRetweet {
		sourceID, err := s.timeline.RetweetSource(ctx, tweetID)
		if err != nil {
			return nil, err
		}
		if t, err = s.tweets.GetByID(ctx, sourceID); err != nil {
			return nil, err
		}
	}

	view, err := s.views.composeOne(ctx, viewerID, t)
	if err != nil {
		return nil, err
	}

	ancestors, err := s.ancestorsOf(ctx, viewerID, t.ID)
	if err != nil {
		return nil, err
	}

	replies, _, err := s.timeline.Replies(ctx, t.ID, page, size)
	if err != nil {
		return nil, err
	}
	replyViews, err := s.views.compose(ctx, viewerID, replies)
	if err != nil {
		return nil, err
	}

	return &domain.ThreadView{
		Tweet:          *view,
		RepliedTweet:   ancestors,
		ReplyingTweets: replyViews,
	}, nil
}

// ancestorsOf walks the reply chain upward from a tweet. A nil edge target
// means the parent was deleted; the chain stops at a placeholder.
func (s *timelineService) ancestorsOf(ctx context.Context, viewerID string, tweetID uint64) (*domain.AncestorView, error) {
	repliedID, hasEdge, err := s.timeline.RepliedID(ctx, tweetID)
	if err != nil {
		return nil, err
	}
	if !hasEdge {
		return nil, nil
	}
	if repliedID == nil {
		return &domain.AncestorView{Deleted: true, Message: deletedTweetMessage}, nil
	}

	parent, err := s.tweets.GetByID(ctx, *repliedID)
	if err != nil {
		// Edge target vanished between the two reads.
		if errors.Is(err, repository.ErrTweetNotFound) {
			return &domain.AncestorView{Deleted: true, Message: deletedTweetMessage}, nil
		}
		return nil, err
	}

	view, err := s.views.composeOne(ctx, viewerID, parent)
	if err != nil {
		return nil, err
	}

	grandparent, err := s.ancestorsOf(ctx, viewerID, parent.ID)
	if err != nil {
		return nil, err
	}

	return &domain.AncestorView{Tweet: view, RepliedTweet: grandparent}, nil
}

var _ TimelineService = (*timelineService)(nil)
