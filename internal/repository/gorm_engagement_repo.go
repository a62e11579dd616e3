package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/wafflestudio/team2-server/internal/domain"
)

// GormEngagementRepository implements EngagementRepository using GORM.
type GormEngagementRepository struct {
	db *gorm.DB
}

// NewGormEngagementRepository creates a new GORM-backed engagement repository.
func NewGormEngagementRepository(db *gorm.DB) *GormEngagementRepository {
	return &GormEngagementRepository{db: db}
}

// Like records a like for (user, tweet). The unique pair index rejects
// duplicates regardless of interleaving.
func (r *GormEngagementRepository) Like(ctx context.Context, tweetID uint64, userID string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var tweet domain.TweetModel
		if err := tx.First(&tweet, "id = ?", tweetID).Error; err != nil {
			if isNotFound(err) {
				return ErrTweetNotFound
			}
			return err
		}

		like := domain.UserLikeModel{UserID: userID, LikedID: tweetID}
		if err := tx.Create(&like).Error; err != nil {
			if isUniqueViolation(err) {
				return ErrAlreadyLiked
			}
			return err
		}
		return nil
	})
}

// Unlike removes a like; ErrNoLike when the user never liked the tweet.
func (r *GormEngagementRepository) Unlike(ctx context.Context, tweetID uint64, userID string) error {
	result := r.db.WithContext(ctx).
		Where("user_id = ? AND liked_id = ?", userID, tweetID).
		Delete(&domain.UserLikeModel{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNoLike
	}
	return nil
}

// countRow receives one GROUP BY row of an edge-count query.
type countRow struct {
	TweetID uint64
	N       int64
}

// CountsFor returns the edge cardinalities for each tweet with one grouped
// query per edge table instead of four queries per tweet.
func (r *GormEngagementRepository) CountsFor(ctx context.Context, ids []uint64) (map[uint64]domain.EngagementCounts, error) {
	result := make(map[uint64]domain.EngagementCounts, len(ids))
	for _, id := range ids {
		result[id] = domain.EngagementCounts{}
	}
	if len(ids) == 0 {
		return result, nil
	}

	collect := func(model interface{}, fkColumn string, assign func(c *domain.EngagementCounts, n int64)) error {
		var rows []countRow
		err := r.db.WithContext(ctx).Model(model).
			Select(fkColumn+" AS tweet_id, COUNT(*) AS n").
			Where(fkColumn+" IN ?", ids).
			Group(fkColumn).
			Scan(&rows).Error
		if err != nil {
			return err
		}
		for _, row := range rows {
			c := result[row.TweetID]
			assign(&c, row.N)
			result[row.TweetID] = c
		}
		return nil
	}

	if err := collect(&domain.ReplyModel{}, "replied_id", func(c *domain.EngagementCounts, n int64) { c.Replies = n }); err != nil {
		return nil, err
	}
	if err := collect(&domain.RetweetModel{}, "retweeted_id", func(c *domain.EngagementCounts, n int64) { c.Retweets = n }); err != nil {
		return nil, err
	}
	if err := collect(&domain.QuoteModel{}, "quoted_id", func(c *domain.EngagementCounts, n int64) { c.Quotes = n }); err != nil {
		return nil, err
	}
	if err := collect(&domain.UserLikeModel{}, "liked_id", func(c *domain.EngagementCounts, n int64) { c.Likes = n }); err != nil {
		return nil, err
	}

	return result, nil
}

// LikedSet reports which of the given tweets the user has liked.
func (r *GormEngagementRepository) LikedSet(ctx context.Context, userID string, ids []uint64) (map[uint64]bool, error) {
	result := make(map[uint64]bool, len(ids))
	for _, id := range ids {
		result[id] = false
	}
	if len(ids) == 0 {
		return result, nil
	}

	var liked []uint64
	err := r.db.WithContext(ctx).Model(&domain.UserLikeModel{}).
		Where("user_id = ? AND liked_id IN ?", userID, ids).
		Pluck("liked_id", &liked).Error
	if err != nil {
		return nil, err
	}
	for _, id := range liked {
		result[id] = true
	}
	return result, nil
}

// RetweetedSet reports which of the given tweets the user has retweeted.
func (r *GormEngagementRepository) RetweetedSet(ctx context.Context, userID string, ids []uint64) (map[uint64]bool, error) {
	result := make(map[uint64]bool, len(ids))
	for _, id := range ids {
		result[id] = false
	}
	if len(ids) == 0 {
		return result, nil
	}

	var retweeted []uint64
	err := r.db.WithContext(ctx).Model(&domain.RetweetModel{}).
		Where("user_id = ? AND retweeted_id IN ?", userID, ids).
		Pluck("retweeted_id", &retweeted).Error
	if err != nil {
		return nil, err
	}
	for _, id := range retweeted {
		result[id] = true
	}
	return result, nil
}

// Ensure interface is satisfied at compile time.
var _ EngagementRepository = (*GormEngagementRepository)(nil)
