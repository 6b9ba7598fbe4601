package repository

import (
	"context"
	"errors"

	"snsproject/internal/models"
	"snsproject/internal/observability"

	"gorm.io/gorm"
)

// PostRepository defines the interface for post data operations
type PostRepository interface {
	FindByID(ctx context.Context, id uint) (*models.Post, error)
	Create(ctx context.Context, post *models.Post) error
	Update(ctx context.Context, post *models.Post) error
	Delete(ctx context.Context, id uint) error
	FindPage(ctx context.Context, req models.PageRequest) (*models.Page[models.Post], error)
	FindPageByUser(ctx context.Context, userID uint, req models.PageRequest) (*models.Page[models.Post], error)
}

// postRepository implements PostRepository
type postRepository struct {
	db  *gorm.DB
	log *observability.RepoLogger
}

// NewPostRepository creates a new post repository
func NewPostRepository(db *gorm.DB) PostRepository {
	return &postRepository{db: db, log: observability.NewRepoLogger("posts")}
}

func (r *postRepository) FindByID(ctx context.Context, id uint) (_ *models.Post, err error) {
	defer r.log.Track(ctx, "read", &err)()

	var post models.Post
	if err := r.db.WithContext(ctx).Preload("User").First(&post, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewPostNotFoundError(id)
		}
		return nil, models.NewInternalError(err)
	}
	return &post, nil
}

func (r *postRepository) Create(ctx context.Context, post *models.Post) (err error) {
	defer r.log.Track(ctx, "create", &err)()

	if err := r.db.WithContext(ctx).Omit("User").Create(post).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

func (r *postRepository) Update(ctx context.Context, post *models.Post) (err error) {
	defer r.log.Track(ctx, "update", &err)()

	if err := r.db.WithContext(ctx).Omit("User").Save(post).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

// Delete removes the post row permanently.
func (r *postRepository) Delete(ctx context.Context, id uint) (err error) {
	defer r.log.Track(ctx, "delete", &err)()

	if err := r.db.WithContext(ctx).Delete(&models.Post{}, id).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

func (r *postRepository) FindPage(ctx context.Context, req models.PageRequest) (_ *models.Page[models.Post], err error) {
	defer r.log.Track(ctx, "read", &err)()
	return r.findPage(r.db.WithContext(ctx), req)
}

func (r *postRepository) FindPageByUser(
	ctx context.Context,
	userID uint,
	req models.PageRequest,
) (_ *models.Page[models.Post], err error) {
	defer r.log.Track(ctx, "read", &err)()
	return r.findPage(r.db.WithContext(ctx).Where("user_id = ?", userID), req)
}

func (r *postRepository) findPage(scope *gorm.DB, req models.PageRequest) (*models.Page[models.Post], error) {
	req = req.Normalize()

	var total int64
	if err := scope.Session(&gorm.Session{}).Model(&models.Post{}).Count(&total).Error; err != nil {
		return nil, models.NewInternalError(err)
	}

	var posts []models.Post
	if err := scope.Session(&gorm.Session{}).
		Preload("User").
		Order(req.OrderClause()).
		Limit(req.Size).
		Offset(req.Offset()).
		Find(&posts).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return models.NewPage(posts, req, total), nil
}
