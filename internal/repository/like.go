package repository

import (
	"context"
	"errors"

	"snsproject/internal/models"
	"snsproject/internal/observability"

	"gorm.io/gorm"
)

// LikeRepository defines persistence operations for likes.
type LikeRepository interface {
	// FindByUserAndPost returns nil, nil when the user has not liked the post.
	FindByUserAndPost(ctx context.Context, userID, postID uint) (*models.Like, error)
	Create(ctx context.Context, like *models.Like) error
	CountByPost(ctx context.Context, postID uint) (int64, error)
	DeleteByPost(ctx context.Context, postID uint) error
}

type likeRepository struct {
	db  *gorm.DB
	log *observability.RepoLogger
}

// NewLikeRepository creates a new LikeRepository
func NewLikeRepository(db *gorm.DB) LikeRepository {
	return &likeRepository{db: db, log: observability.NewRepoLogger("likes")}
}

func (r *likeRepository) FindByUserAndPost(ctx context.Context, userID, postID uint) (_ *models.Like, err error) {
	defer r.log.Track(ctx, "read", &err)()

	var like models.Like
	if err := r.db.WithContext(ctx).
		Where("user_id = ? AND post_id = ?", userID, postID).
		First(&like).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, models.NewInternalError(err)
	}
	return &like, nil
}

// Create inserts the like; a concurrent duplicate surfaces as ErrDuplicateKey.
func (r *likeRepository) Create(ctx context.Context, like *models.Like) (err error) {
	defer r.log.Track(ctx, "create", &err)()

	if err := r.db.WithContext(ctx).Create(like).Error; err != nil {
		if isUniqueConstraintError(err) {
			return ErrDuplicateKey
		}
		return models.NewInternalError(err)
	}
	return nil
}

func (r *likeRepository) CountByPost(ctx context.Context, postID uint) (_ int64, err error) {
	defer r.log.Track(ctx, "read", &err)()

	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.Like{}).
		Where("post_id = ?", postID).
		Count(&count).Error; err != nil {
		return 0, models.NewInternalError(err)
	}
	return count, nil
}

func (r *likeRepository) DeleteByPost(ctx context.Context, postID uint) (err error) {
	defer r.log.Track(ctx, "delete", &err)()

	if err := r.db.WithContext(ctx).Where("post_id = ?", postID).Delete(&models.Like{}).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}
