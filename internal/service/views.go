package service

import (
	"context"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/wafflestudio/team2-server/internal/domain"
	"github.com/wafflestudio/team2-server/internal/repository"
	"github.com/wafflestudio/team2-server/pkg/log"
	"github.com/wafflestudio/team2-server/pkg/storage"
)

// mediaURLTTL bounds presigned media URLs. Local storage ignores it.
const mediaURLTTL = 15 * time.Minute

// viewBuilder turns raw tweet rows into rendered views. All lookups are
// batched per page: one grouped count query per edge table, one user
// fetch, one media fetch, and two membership checks for the viewer.
type viewBuilder struct {
	tweets repository.TweetRepository
	engage repository.EngagementRepository
	users  repository.UserRepository
	store  storage.Storage
}

func newViewBuilder(
	tweets repository.TweetRepository,
	engage repository.EngagementRepository,
	users repository.UserRepository,
	store storage.Storage,
) *viewBuilder {
	return &viewBuilder{tweets: tweets, engage: engage, users: users, store: store}
}

// composeOne renders a single tweet for the given viewer.
func (b *viewBuilder) composeOne(ctx context.Context, viewerID string, t *domain.Tweet) (*domain.TweetView, error) {
	views, err := b.compose(ctx, viewerID, []domain.Tweet{*t})
	if err != nil {
		return nil, err
	}
	return &views[0], nil
}

// compose renders a page of tweets for the given viewer. An empty viewerID
// means anonymous; engagement flags stay false without extra queries.
func (b *viewBuilder) compose(ctx context.Context, viewerID string, tweets []domain.Tweet) ([]domain.TweetView, error) {
	if len(tweets) == 0 {
		return []domain.TweetView{}, nil
	}

	ids := make([]uint64, 0, len(tweets))
	userIDSet := make(map[string]struct{}, len(tweets))
	for i := range tweets {
		ids = append(ids, tweets[i].ID)
		userIDSet[tweets[i].AuthorID] = struct{}{}
		if tweets[i].RetweetingUserID != "" {
			userIDSet[tweets[i].RetweetingUserID] = struct{}{}
		}
	}
	userIDs := make([]string, 0, len(userIDSet))
	for id := range userIDSet {
		userIDs = append(userIDs, id)
	}

	var (
		counts    map[uint64]domain.EngagementCounts
		media     map[uint64][]string
		users     map[string]*domain.User
		liked     map[uint64]bool
		retweeted map[uint64]bool
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		counts, err = b.engage.CountsFor(gctx, ids)
		return err
	})
	g.Go(func() (err error) {
		media, err = b.tweets.MediaFor(gctx, ids)
		return err
	})
	g.Go(func() (err error) {
		users, err = b.users.GetByIDs(gctx, userIDs)
		return err
	})
	if viewerID != "" {
		g.Go(func() (err error) {
			liked, err = b.engage.LikedSet(gctx, viewerID, ids)
			return err
		})
		g.Go(func() (err error) {
			retweeted, err = b.engage.RetweetedSet(gctx, viewerID, ids)
			return err
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	views := make([]domain.TweetView, 0, len(tweets))
	for i := range tweets {
		t := &tweets[i]
		c := counts[t.ID]

		view := domain.TweetView{
			ID:        t.ID,
			Kind:      t.Kind,
			Content:   t.Content,
			WrittenAt: t.WrittenAt,
			CreatedAt: t.CreatedAt,
			Replies:   c.Replies,
			Retweets:  c.Retweets + c.Quotes,
			Quotes:    c.Quotes,
			Likes:     c.Likes,
		}
		if author, ok := users[t.AuthorID]; ok {
			view.Author = author.ToResponse()
		}
		if t.RetweetingUserID != "" {
			if performer, ok := users[t.RetweetingUserID]; ok {
				view.RetweetingUser = performer.Username
			}
		}
		if viewerID != "" {
			view.UserLike = liked[t.ID]
			view.UserRetweet = retweeted[t.ID]
		}
		view.Media = b.resolveMedia(ctx, media[t.ID])

		views = append(views, view)
	}
	return views, nil
}

// resolveMedia turns stored keys into serving URLs. A key that fails to
// resolve is dropped from the view rather than failing the page.
func (b *viewBuilder) resolveMedia(ctx context.Context, keys []string) []string {
	if len(keys) == 0 {
		return nil
	}
	urls := make([]string, 0, len(keys))
	for _, key := range keys {
		url, err := b.store.GetURL(ctx, key, mediaURLTTL)
		if err != nil {
			logger := log.Ctx(ctx)
			logger.Warn().Err(err).Str(log.FieldMediaKey, key).Msg("failed to resolve media url")
			continue
		}
		urls = append(urls, url)
	}
	return urls
}
