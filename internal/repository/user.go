package repository

import (
	"context"
	"errors"

	"snsproject/internal/models"
	"snsproject/internal/observability"

	"gorm.io/gorm"
)

// UserRepository defines persistence operations for users.
type UserRepository interface {
	FindByUserName(ctx context.Context, userName string) (*models.User, error)
	ExistsByUserName(ctx context.Context, userName string) (bool, error)
	Create(ctx context.Context, user *models.User) error
}

type userRepository struct {
	db  *gorm.DB
	log *observability.RepoLogger
}

// NewUserRepository returns a new UserRepository implementation.
func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db, log: observability.NewRepoLogger("users")}
}

func (r *userRepository) FindByUserName(ctx context.Context, userName string) (_ *models.User, err error) {
	defer r.log.Track(ctx, "read", &err)()

	var user models.User
	if err := r.db.WithContext(ctx).Where("user_name = ?", userName).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewUserNotFoundError(userName)
		}
		return nil, models.NewInternalError(err)
	}
	return &user, nil
}

func (r *userRepository) ExistsByUserName(ctx context.Context, userName string) (_ bool, err error) {
	defer r.log.Track(ctx, "read", &err)()

	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.User{}).
		Where("user_name = ?", userName).
		Count(&count).Error; err != nil {
		return false, models.NewInternalError(err)
	}
	return count > 0, nil
}

func (r *userRepository) Create(ctx context.Context, user *models.User) (err error) {
	defer r.log.Track(ctx, "create", &err)()

	if err := r.db.WithContext(ctx).Create(user).Error; err != nil {
		if isUniqueConstraintError(err) {
			return ErrDuplicateKey
		}
		return models.NewInternalError(err)
	}
	return nil
}
