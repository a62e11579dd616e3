package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/wafflestudio/team2-server/internal/domain"
)

// isUniqueViolation reports whether err is a unique-constraint violation.
// pkg/database opens GORM with TranslateError, so every driver wraps these
// as gorm.ErrDuplicatedKey.
func isUniqueViolation(err error) bool {
	return errors.Is(err, gorm.ErrDuplicatedKey)
}

// isNotFound checks if the error is a "record not found" error.
func isNotFound(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound)
}

// GormTweetRepository implements TweetRepository using GORM.
type GormTweetRepository struct {
	db *gorm.DB
}

// NewGormTweetRepository creates a new GORM-backed tweet repository.
func NewGormTweetRepository(db *gorm.DB) *GormTweetRepository {
	return &GormTweetRepository{db: db}
}

// CreateTweet inserts a GENERAL tweet with its media rows.
func (r *GormTweetRepository) CreateTweet(ctx context.Context, t *domain.Tweet) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return insertTweet(tx, t)
	})
}

// CreateReply inserts a REPLY tweet and its edge inside one transaction.
func (r *GormTweetRepository) CreateReply(ctx context.Context, targetID uint64, t *domain.Tweet) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var target domain.TweetModel
		if err := tx.First(&target, "id = ?", targetID).Error; err != nil {
			if isNotFound(err) {
				return ErrTweetNotFound
			}
			return err
		}

		if err := insertTweet(tx, t); err != nil {
			return err
		}

		edge := domain.ReplyModel{RepliedID: &target.ID, ReplyingID: t.ID}
		return tx.Create(&edge).Error
	})
}

// CreateQuote inserts a QUOTE tweet and its edge inside one transaction.
func (r *GormTweetRepository) CreateQuote(ctx context.Context, targetID uint64, t *domain.Tweet) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var target domain.TweetModel
		if err := tx.First(&target, "id = ?", targetID).Error; err != nil {
			if isNotFound(err) {
				return ErrTweetNotFound
			}
			return err
		}

		if err := insertTweet(tx, t); err != nil {
			return err
		}

		edge := domain.QuoteModel{QuotedID: &target.ID, QuotingID: t.ID}
		return tx.Create(&edge).Error
	})
}

// CreateRetweet inserts the synthetic RETWEET tweet and its edge. The
// unique (retweeted_id, user_id) index rejects duplicates; the rolled-back
// transaction then leaves no synthetic tweet behind.
func (r *GormTweetRepository) CreateRetweet(ctx context.Context, sourceID uint64, userID string) (*domain.Tweet, error) {
	var created *domain.Tweet

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var src domain.TweetModel
		if err := tx.First(&src, "id = ?", sourceID).Error; err != nil {
			if isNotFound(err) {
				return ErrTweetNotFound
			}
			return err
		}

		synthetic := domain.TweetModel{
			Kind:             domain.KindRetweet,
			AuthorID:         src.AuthorID,
			RetweetingUserID: userID,
			Content:          src.Content,
			WrittenAt:        src.WrittenAt,
		}
		if err := tx.Create(&synthetic).Error; err != nil {
			return err
		}

		edge := domain.RetweetModel{
			RetweetedID:  src.ID,
			RetweetingID: synthetic.ID,
			UserID:       userID,
		}
		if err := tx.Create(&edge).Error; err != nil {
			if isUniqueViolation(err) {
				return ErrAlreadyRetweeted
			}
			return err
		}

		// Copy the source's media rows verbatim.
		var media []domain.TweetMediaModel
		if err := tx.Where("tweet_id = ?", src.ID).Order("position").Find(&media).Error; err != nil {
			return err
		}
		keys := make([]string, 0, len(media))
		for i, m := range media {
			copied := domain.TweetMediaModel{TweetID: synthetic.ID, Position: i, Key: m.Key}
			if err := tx.Create(&copied).Error; err != nil {
				return err
			}
			keys = append(keys, m.Key)
		}

		created = synthetic.ToDomain()
		created.MediaKeys = keys
		return nil
	})
	if err != nil {
		return nil, err
	}
	return created, nil
}

// DeleteRetweet removes the user's retweet of the source, cascading to the
// synthetic tweet and its rows.
func (r *GormTweetRepository) DeleteRetweet(ctx context.Context, sourceID uint64, userID string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var edge domain.RetweetModel
		err := tx.First(&edge, "retweeted_id = ? AND user_id = ?", sourceID, userID).Error
		if err != nil {
			if isNotFound(err) {
				return ErrNoRetweet
			}
			return err
		}

		var synthetic domain.TweetModel
		if err := tx.First(&synthetic, "id = ?", edge.RetweetingID).Error; err != nil {
			if isNotFound(err) {
				// Edge without a tweet should not happen; drop the edge.
				return tx.Delete(&edge).Error
			}
			return err
		}

		return deleteTweetTree(tx, synthetic.ID)
	})
}

// GetByID loads one tweet with its media keys.
func (r *GormTweetRepository) GetByID(ctx context.Context, id uint64) (*domain.Tweet, error) {
	var model domain.TweetModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if isNotFound(err) {
			return nil, ErrTweetNotFound
		}
		return nil, err
	}

	t := model.ToDomain()

	var media []domain.TweetMediaModel
	if err := r.db.WithContext(ctx).
		Where("tweet_id = ?", id).Order("position").Find(&media).Error; err != nil {
		return nil, err
	}
	for _, m := range media {
		t.MediaKeys = append(t.MediaKeys, m.Key)
	}

	return t, nil
}

// MediaFor returns the ordered media keys for each of the given tweets.
func (r *GormTweetRepository) MediaFor(ctx context.Context, ids []uint64) (map[uint64][]string, error) {
	result := make(map[uint64][]string, len(ids))
	if len(ids) == 0 {
		return result, nil
	}

	var media []domain.TweetMediaModel
	err := r.db.WithContext(ctx).
		Where("tweet_id IN ?", ids).
		Order("tweet_id, position").
		Find(&media).Error
	if err != nil {
		return nil, err
	}

	for _, m := range media {
		result[m.TweetID] = append(result[m.TweetID], m.Key)
	}
	return result, nil
}

// Delete removes a tweet and everything that must not outlive it.
func (r *GormTweetRepository) Delete(ctx context.Context, id uint64) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var model domain.TweetModel
		if err := tx.First(&model, "id = ?", id).Error; err != nil {
			if isNotFound(err) {
				return ErrTweetNotFound
			}
			return err
		}
		return deleteTweetTree(tx, model.ID)
	})
}

// insertTweet creates the tweet row and its ordered media rows.
func insertTweet(tx *gorm.DB, t *domain.Tweet) error {
	model := domain.TweetToModel(t)
	if err := tx.Create(model).Error; err != nil {
		return err
	}
	t.ID = model.ID
	t.CreatedAt = model.CreatedAt

	for i, key := range t.MediaKeys {
		m := domain.TweetMediaModel{TweetID: model.ID, Position: i, Key: key}
		if err := tx.Create(&m).Error; err != nil {
			return err
		}
	}
	return nil
}

// deleteTweetTree removes a tweet, the synthetic retweets depending on it
// (transitively), every edge row owned by a removed tweet, and the media,
// like, and notification rows attached to them. Reply and quote edges
// pointing AT a removed tweet survive with a NULL target: those tweets
// carry their own content and render a deleted placeholder instead.
func deleteTweetTree(tx *gorm.DB, id uint64) error {
	doomed := []uint64{id}

	// Synthetic retweets of a doomed tweet die with it.
	frontier := doomed
	for len(frontier) > 0 {
		var next []uint64
		err := tx.Model(&domain.RetweetModel{}).
			Where("retweeted_id IN ?", frontier).
			Pluck("retweeting_id", &next).Error
		if err != nil {
			return err
		}
		doomed = append(doomed, next...)
		frontier = next
	}

	// Edge rows owned by doomed tweets (pure cascade).
	if err := tx.Where("replying_id IN ?", doomed).Delete(&domain.ReplyModel{}).Error; err != nil {
		return err
	}
	if err := tx.Where("quoting_id IN ?", doomed).Delete(&domain.QuoteModel{}).Error; err != nil {
		return err
	}
	if err := tx.Where("retweeting_id IN ? OR retweeted_id IN ?", doomed, doomed).
		Delete(&domain.RetweetModel{}).Error; err != nil {
		return err
	}

	// Replies and quotes pointing at a doomed tweet keep their row but
	// lose the target.
	if err := tx.Model(&domain.ReplyModel{}).
		Where("replied_id IN ?", doomed).
		Update("replied_id", nil).Error; err != nil {
		return err
	}
	if err := tx.Model(&domain.QuoteModel{}).
		Where("quoted_id IN ?", doomed).
		Update("quoted_id", nil).Error; err != nil {
		return err
	}

	// Rows attached to doomed tweets.
	if err := tx.Where("liked_id IN ?", doomed).Delete(&domain.UserLikeModel{}).Error; err != nil {
		return err
	}
	if err := tx.Where("tweet_id IN ?", doomed).Delete(&domain.TweetMediaModel{}).Error; err != nil {
		return err
	}
	if err := tx.Where("tweet_id IN ?", doomed).Delete(&domain.NotificationModel{}).Error; err != nil {
		return err
	}

	return tx.Where("id IN ?", doomed).Delete(&domain.TweetModel{}).Error
}

// Ensure interface is satisfied at compile time.
var _ TweetRepository = (*GormTweetRepository)(nil)
