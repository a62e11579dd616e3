package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/wafflestudio/team2-server/internal/domain"
	"github.com/wafflestudio/team2-server/internal/pagination"
)

// GormNotificationRepository implements NotificationRepository using GORM.
type GormNotificationRepository struct {
	db *gorm.DB
}

// NewGormNotificationRepository creates a new GORM-backed notification repository.
func NewGormNotificationRepository(db *gorm.DB) *GormNotificationRepository {
	return &GormNotificationRepository{db: db}
}

// Create inserts a notification row.
func (r *GormNotificationRepository) Create(ctx context.Context, n *domain.Notification) error {
	model := domain.NotificationModel{
		UserID:  n.UserID,
		ActorID: n.ActorID,
		Kind:    n.Kind,
		TweetID: n.TweetID,
	}
	if err := r.db.WithContext(ctx).Create(&model).Error; err != nil {
		return err
	}
	n.ID = model.ID
	n.CreatedAt = model.CreatedAt
	return nil
}

// PageFor returns one page of a user's notifications, newest first.
func (r *GormNotificationRepository) PageFor(ctx context.Context, userID string, page, size int) ([]domain.Notification, pagination.Page, error) {
	var total int64
	err := r.db.WithContext(ctx).Model(&domain.NotificationModel{}).
		Where("user_id = ?", userID).
		Count(&total).Error
	if err != nil {
		return nil, pagination.Page{}, err
	}

	offset, p := pagination.Slice(total, page, size)

	var models []domain.NotificationModel
	err = r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC, id DESC").
		Offset(offset).
		Limit(p.Size).
		Find(&models).Error
	if err != nil {
		return nil, pagination.Page{}, err
	}

	notifications := make([]domain.Notification, 0, len(models))
	for i := range models {
		notifications = append(notifications, *models[i].ToDomain())
	}
	return notifications, p, nil
}

// MarkAllRead marks every notification of the user as read.
func (r *GormNotificationRepository) MarkAllRead(ctx context.Context, userID string) error {
	return r.db.WithContext(ctx).Model(&domain.NotificationModel{}).
		Where("user_id = ? AND is_read = ?", userID, false).
		Update("is_read", true).Error
}

// Ensure interface is satisfied at compile time.
var _ NotificationRepository = (*GormNotificationRepository)(nil)
