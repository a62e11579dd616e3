package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/wafflestudio/team2-server/internal/domain"
	"github.com/wafflestudio/team2-server/internal/pagination"
)

// GormUserRepository implements UserRepository using GORM.
type GormUserRepository struct {
	db *gorm.DB
}

// NewGormUserRepository creates a new GORM-backed user repository.
func NewGormUserRepository(db *gorm.DB) *GormUserRepository {
	return &GormUserRepository{db: db}
}

// Create creates a new user.
func (r *GormUserRepository) Create(ctx context.Context, user *domain.User) error {
	user.ID = uuid.New().String()

	model := domain.UserToModel(user)
	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		if isUniqueViolation(err) {
			return r.classifyConflict(ctx, user)
		}
		return err
	}

	user.CreatedAt = model.CreatedAt
	user.UpdatedAt = model.UpdatedAt
	return nil
}

// classifyConflict decides which unique column a rejected insert hit. The
// translated driver error carries no column info, so look the email up.
func (r *GormUserRepository) classifyConflict(ctx context.Context, user *domain.User) error {
	var count int64
	err := r.db.WithContext(ctx).Model(&domain.UserModel{}).
		Where("email = ?", user.Email).
		Count(&count).Error
	if err != nil {
		return err
	}
	if count > 0 {
		return ErrEmailExists
	}
	return ErrUsernameExists
}

// GetByID retrieves a user by ID.
func (r *GormUserRepository) GetByID(ctx context.Context, id string) (*domain.User, error) {
	var model domain.UserModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if isNotFound(err) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// GetByEmail retrieves a user by email.
func (r *GormUserRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	var model domain.UserModel
	if err := r.db.WithContext(ctx).First(&model, "email = ?", email).Error; err != nil {
		if isNotFound(err) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// GetByIDs loads the given users keyed by id. Missing ids are absent from
// the map, not an error; deleted authors render as unknown at the edge.
func (r *GormUserRepository) GetByIDs(ctx context.Context, ids []string) (map[string]*domain.User, error) {
	result := make(map[string]*domain.User, len(ids))
	if len(ids) == 0 {
		return result, nil
	}

	var models []domain.UserModel
	err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&models).Error
	if err != nil {
		return nil, err
	}
	for i := range models {
		result[models[i].ID] = models[i].ToDomain()
	}
	return result, nil
}

// Search returns one page of users matching the query on username,
// display name, or bio.
func (r *GormUserRepository) Search(ctx context.Context, query string, page, size int) ([]domain.User, pagination.Page, error) {
	pattern := "%" + query + "%"
	scope := func() *gorm.DB {
		return r.db.WithContext(ctx).Model(&domain.UserModel{}).
			Where("username LIKE ? OR display_name LIKE ? OR bio LIKE ?", pattern, pattern, pattern)
	}

	var total int64
	if err := scope().Count(&total).Error; err != nil {
		return nil, pagination.Page{}, err
	}

	offset, p := pagination.Slice(total, page, size)

	var models []domain.UserModel
	err := scope().
		Order("created_at DESC, id DESC").
		Offset(offset).
		Limit(p.Size).
		Find(&models).Error
	if err != nil {
		return nil, pagination.Page{}, err
	}

	users := make([]domain.User, 0, len(models))
	for i := range models {
		users = append(users, *models[i].ToDomain())
	}
	return users, p, nil
}

// Ensure interface is satisfied at compile time.
var _ UserRepository = (*GormUserRepository)(nil)
