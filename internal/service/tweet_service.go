package service

import (
	"context"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/wafflestudio/team2-server/internal/domain"
	"github.com/wafflestudio/team2-server/internal/notifier"
	"github.com/wafflestudio/team2-server/internal/repository"
	"github.com/wafflestudio/team2-server/pkg/log"
	"github.com/wafflestudio/team2-server/pkg/storage"
)

// tweetService implements TweetService.
type tweetService struct {
	tweets   repository.TweetRepository
	timeline repository.TimelineRepository
	views    *viewBuilder
	notify   notifier.Notifier
}

// NewTweetService creates the tweet service.
func NewTweetService(
	tweets repository.TweetRepository,
	timeline repository.TimelineRepository,
	engage repository.EngagementRepository,
	users repository.UserRepository,
	store storage.Storage,
	notify notifier.Notifier,
) TweetService {
	return &tweetService{
		tweets:   tweets,
		timeline: timeline,
		views:    newViewBuilder(tweets, engage, users, store),
		notify:   notify,
	}
}

// validateContent rejects empty and over-length content. A tweet carrying
// media may have empty text.
func validateContent(content string, mediaKeys []string) error {
	if strings.TrimSpace(content) == "" && len(mediaKeys) == 0 {
		return ErrContentRequired
	}
	if utf8.RuneCountInString(content) > MaxContentLength {
		return ErrContentTooLong
	}
	return nil
}

func (s *tweetService) Post(ctx context.Context, authorID, content string, mediaKeys []string) (*domain.TweetView, error) {
	if err := validateContent(content, mediaKeys); err != nil {
		return nil, err
	}

	t := domain.Tweet{
		Kind:      domain.KindGeneral,
		AuthorID:  authorID,
		Content:   content,
		MediaKeys: mediaKeys,
		WrittenAt: time.Now(),
	}
	if err := s.tweets.CreateTweet(ctx, &t); err != nil {
		return nil, err
	}

	logger := log.Ctx(ctx)
	logger.Info().
		Uint64(log.FieldTweetID, t.ID).
		Str(log.FieldAuthorID, authorID).
		Msg("tweet created")

	return s.views.composeOne(ctx, authorID, &t)
}

func (s *tweetService) Reply(ctx context.Context, authorID string, targetID uint64, content string, mediaKeys []string) (*domain.TweetView, error) {
	if err := validateContent(content, mediaKeys); err != nil {
		return nil, err
	}

	target, err := s.tweets.GetByID(ctx, targetID)
	if err != nil {
		return nil, err
	}

	t := domain.Tweet{
		Kind:      domain.KindReply,
		AuthorID:  authorID,
		Content:   content,
		MediaKeys: mediaKeys,
		WrittenAt: time.Now(),
	}
	if err := s.tweets.CreateReply(ctx, targetID, &t); err != nil {
		return nil, err
	}

	tweetID := t.ID
	s.notify.Notify(ctx, domain.NotifyReply, target.EffectiveOwner(), authorID, &tweetID)

	return s.views.composeOne(ctx, authorID, &t)
}

func (s *tweetService) Quote(ctx context.Context, authorID string, targetID uint64, content string, mediaKeys []string) (*domain.TweetView, error) {
	if err := validateContent(content, mediaKeys); err != nil {
		return nil, err
	}

	target, err := s.tweets.GetByID(ctx, targetID)
	if err != nil {
		return nil, err
	}

	t := domain.Tweet{
		Kind:      domain.KindQuote,
		AuthorID:  authorID,
		Content:   content,
		MediaKeys: mediaKeys,
		WrittenAt: time.Now(),
	}
	if err := s.tweets.CreateQuote(ctx, targetID, &t); err != nil {
		return nil, err
	}

	tweetID := t.ID
	s.notify.Notify(ctx, domain.NotifyQuote, target.EffectiveOwner(), authorID, &tweetID)

	return s.views.composeOne(ctx, authorID, &t)
}

func (s *tweetService) Retweet(ctx context.Context, userID string, targetID uint64) (*domain.TweetView, error) {
	sourceID, err := s.resolveSource(ctx, targetID)
	if err != nil {
		return nil, err
	}

	t, err := s.tweets.CreateRetweet(ctx, sourceID, userID)
	if err != nil {
		return nil, err
	}

	s.notify.Notify(ctx, domain.NotifyRetweet, t.AuthorID, userID, &sourceID)

	return s.views.composeOne(ctx, userID, t)
}

func (s *tweetService) CancelRetweet(ctx context.Context, userID string, targetID uint64) error {
	sourceID, err := s.resolveSource(ctx, targetID)
	if err != nil {
		return err
	}
	return s.tweets.DeleteRetweet(ctx, sourceID, userID)
}

func (s *tweetService) Delete(ctx context.Context, userID string, tweetID uint64) error {
	t, err := s.tweets.GetByID(ctx, tweetID)
	if err != nil {
		return err
	}
	if t.EffectiveOwner() != userID {
		return ErrNotTweetOwner
	}

	if err := s.tweets.Delete(ctx, tweetID); err != nil {
		return err
	}

	logger := log.Ctx(ctx)
	logger.Info().
		Uint64(log.FieldTweetID, tweetID).
		Str(log.FieldUserID, userID).
		Msg("tweet deleted")
	return nil
}

// resolveSource maps a retweet id to its source so engagement always
// targets original tweets.
func (s *tweetService) resolveSource(ctx context.Context, targetID uint64) (uint64, error) {
	t, err := s.tweets.GetByID(ctx, targetID)
	if err != nil {
		return 0, err
	}
	if t.Kind != domain.KindRetweet {
		return targetID, nil
	}
	return s.timeline.RetweetSource(ctx, targetID)
}

var _ TweetService = (*tweetService)(nil)
