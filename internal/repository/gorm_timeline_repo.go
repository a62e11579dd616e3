package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/wafflestudio/team2-server/internal/domain"
	"github.com/wafflestudio/team2-server/internal/pagination"
)

// GormTimelineRepository implements TimelineRepository using GORM. It only
// reads the tweet graph; all edge mutation lives in GormTweetRepository.
type GormTimelineRepository struct {
	db *gorm.DB
}

// NewGormTimelineRepository creates a new GORM-backed timeline repository.
func NewGormTimelineRepository(db *gorm.DB) *GormTimelineRepository {
	return &GormTimelineRepository{db: db}
}

// Home returns one page of the home timeline: non-retweet tweets authored
// by any of the given users, unioned with retweets performed by any of
// them, as a single ordered query so pages stay stable.
func (r *GormTimelineRepository) Home(ctx context.Context, userIDs []string, page, size int) ([]domain.Tweet, pagination.Page, error) {
	scope := func() *gorm.DB {
		return r.db.WithContext(ctx).Model(&domain.TweetModel{}).
			Where("(author_id IN ? AND kind <> ?) OR (retweeting_user_id IN ? AND kind = ?)",
				userIDs, domain.KindRetweet, userIDs, domain.KindRetweet)
	}
	return r.pageOf(scope, page, size)
}

// Profile returns one page of a single user's timeline: their own
// non-retweet tweets plus their retweets.
func (r *GormTimelineRepository) Profile(ctx context.Context, userID string, page, size int) ([]domain.Tweet, pagination.Page, error) {
	scope := func() *gorm.DB {
		return r.db.WithContext(ctx).Model(&domain.TweetModel{}).
			Where("(author_id = ? AND kind <> ?) OR (retweeting_user_id = ? AND kind = ?)",
				userID, domain.KindRetweet, userID, domain.KindRetweet)
	}
	return r.pageOf(scope, page, size)
}

// Replies returns one page of direct replies to a tweet, newest first.
func (r *GormTimelineRepository) Replies(ctx context.Context, tweetID uint64, page, size int) ([]domain.Tweet, pagination.Page, error) {
	scope := func() *gorm.DB {
		return r.db.WithContext(ctx).Model(&domain.TweetModel{}).
			Joins("JOIN replies ON replies.replying_id = tweets.id").
			Where("replies.replied_id = ?", tweetID)
	}
	return r.pageOf(scope, page, size)
}

// RepliedID returns the reply edge target of a tweet, if it has one.
func (r *GormTimelineRepository) RepliedID(ctx context.Context, replyingID uint64) (*uint64, bool, error) {
	var edge domain.ReplyModel
	err := r.db.WithContext(ctx).First(&edge, "replying_id = ?", replyingID).Error
	if err != nil {
		if isNotFound(err) {
			return nil, false, nil
		}
		return nil, false, err
	}
	return edge.RepliedID, true, nil
}

// RetweetSource resolves a synthetic retweet to its source tweet id.
func (r *GormTimelineRepository) RetweetSource(ctx context.Context, retweetingID uint64) (uint64, error) {
	var edge domain.RetweetModel
	err := r.db.WithContext(ctx).First(&edge, "retweeting_id = ?", retweetingID).Error
	if err != nil {
		if isNotFound(err) {
			return 0, ErrTweetNotFound
		}
		return 0, err
	}
	return edge.RetweetedID, nil
}

// SearchTweets returns one page of non-retweet tweets matching the query.
func (r *GormTimelineRepository) SearchTweets(ctx context.Context, query string, page, size int) ([]domain.Tweet, pagination.Page, error) {
	scope := func() *gorm.DB {
		return r.db.WithContext(ctx).Model(&domain.TweetModel{}).
			Where("kind <> ? AND content LIKE ?", domain.KindRetweet, "%"+query+"%")
	}
	return r.pageOf(scope, page, size)
}

// pageOf counts the scoped query, slices the requested page, and loads it
// ordered newest-first with id as the tie-breaker. The scope is a factory
// because GORM sessions cannot be reused across Count and Find.
func (r *GormTimelineRepository) pageOf(scope func() *gorm.DB, page, size int) ([]domain.Tweet, pagination.Page, error) {
	var total int64
	if err := scope().Count(&total).Error; err != nil {
		return nil, pagination.Page{}, err
	}

	offset, p := pagination.Slice(total, page, size)

	var models []domain.TweetModel
	err := scope().
		Order("tweets.created_at DESC, tweets.id DESC").
		Offset(offset).
		Limit(p.Size).
		Find(&models).Error
	if err != nil {
		return nil, pagination.Page{}, err
	}

	tweets := make([]domain.Tweet, 0, len(models))
	for i := range models {
		tweets = append(tweets, *models[i].ToDomain())
	}
	return tweets, p, nil
}

// Ensure interface is satisfied at compile time.
var _ TimelineRepository = (*GormTimelineRepository)(nil)
