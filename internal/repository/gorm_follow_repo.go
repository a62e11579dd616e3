package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/wafflestudio/team2-server/internal/domain"
	"github.com/wafflestudio/team2-server/internal/pagination"
)

// GormFollowRepository implements FollowRepository using GORM.
type GormFollowRepository struct {
	db *gorm.DB
}

// NewGormFollowRepository creates a new GORM-backed follow repository.
func NewGormFollowRepository(db *gorm.DB) *GormFollowRepository {
	return &GormFollowRepository{db: db}
}

// Follow creates a follow relationship between two users. The unique
// (follower, following) index rejects duplicates.
func (r *GormFollowRepository) Follow(ctx context.Context, followerID, followingID string) error {
	model := domain.FollowModel{
		FollowerID:  followerID,
		FollowingID: followingID,
	}
	if err := r.db.WithContext(ctx).Create(&model).Error; err != nil {
		if isUniqueViolation(err) {
			return ErrAlreadyFollowing
		}
		return err
	}
	return nil
}

// Unfollow removes a follow relationship between two users.
func (r *GormFollowRepository) Unfollow(ctx context.Context, followerID, followingID string) error {
	result := r.db.WithContext(ctx).
		Where("follower_id = ? AND following_id = ?", followerID, followingID).
		Delete(&domain.FollowModel{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrFollowNotFound
	}
	return nil
}

// IsFollowing checks if followerID follows followingID.
func (r *GormFollowRepository) IsFollowing(ctx context.Context, followerID, followingID string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&domain.FollowModel{}).
		Where("follower_id = ? AND following_id = ?", followerID, followingID).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// FolloweeIDs returns every user the given user follows.
func (r *GormFollowRepository) FolloweeIDs(ctx context.Context, followerID string) ([]string, error) {
	var ids []string
	err := r.db.WithContext(ctx).Model(&domain.FollowModel{}).
		Where("follower_id = ?", followerID).
		Pluck("following_id", &ids).Error
	if err != nil {
		return nil, err
	}
	return ids, nil
}

// FollowerIDs returns one page of the user's followers, newest first.
func (r *GormFollowRepository) FollowerIDs(ctx context.Context, userID string, page, size int) ([]string, pagination.Page, error) {
	return r.idPage(ctx, "following_id = ?", userID, "follower_id", page, size)
}

// FollowingIDs returns one page of the users the given user follows.
func (r *GormFollowRepository) FollowingIDs(ctx context.Context, userID string, page, size int) ([]string, pagination.Page, error) {
	return r.idPage(ctx, "follower_id = ?", userID, "following_id", page, size)
}

func (r *GormFollowRepository) idPage(ctx context.Context, cond, userID, pluck string, page, size int) ([]string, pagination.Page, error) {
	var total int64
	err := r.db.WithContext(ctx).Model(&domain.FollowModel{}).
		Where(cond, userID).
		Count(&total).Error
	if err != nil {
		return nil, pagination.Page{}, err
	}

	offset, p := pagination.Slice(total, page, size)

	var ids []string
	err = r.db.WithContext(ctx).Model(&domain.FollowModel{}).
		Where(cond, userID).
		Order("created_at DESC, id DESC").
		Offset(offset).
		Limit(p.Size).
		Pluck(pluck, &ids).Error
	if err != nil {
		return nil, pagination.Page{}, err
	}
	return ids, p, nil
}

// FollowersCount returns the total number of followers for a given user.
func (r *GormFollowRepository) FollowersCount(ctx context.Context, userID string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&domain.FollowModel{}).
		Where("following_id = ?", userID).
		Count(&count).Error
	if err != nil {
		return 0, err
	}
	return count, nil
}

// FollowingCount returns how many users the given user follows.
func (r *GormFollowRepository) FollowingCount(ctx context.Context, userID string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&domain.FollowModel{}).
		Where("follower_id = ?", userID).
		Count(&count).Error
	if err != nil {
		return 0, err
	}
	return count, nil
}

// Ensure interface is satisfied at compile time.
var _ FollowRepository = (*GormFollowRepository)(nil)
