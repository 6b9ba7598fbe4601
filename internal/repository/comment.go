package repository

import (
	"context"

	"snsproject/internal/models"
	"snsproject/internal/observability"

	"gorm.io/gorm"
)

// CommentRepository defines interface for comment operations
type CommentRepository interface {
	Create(ctx context.Context, comment *models.Comment) error
	FindPageByPost(ctx context.Context, postID uint, req models.PageRequest) (*models.Page[models.Comment], error)
	DeleteByPost(ctx context.Context, postID uint) error
}

type commentRepository struct {
	db  *gorm.DB
	log *observability.RepoLogger
}

// NewCommentRepository creates a new CommentRepository
func NewCommentRepository(db *gorm.DB) CommentRepository {
	return &commentRepository{db: db, log: observability.NewRepoLogger("comments")}
}

func (r *commentRepository) Create(ctx context.Context, comment *models.Comment) (err error) {
	defer r.log.Track(ctx, "create", &err)()

	if err := r.db.WithContext(ctx).Omit("User").Create(comment).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

func (r *commentRepository) FindPageByPost(
	ctx context.Context,
	postID uint,
	req models.PageRequest,
) (_ *models.Page[models.Comment], err error) {
	defer r.log.Track(ctx, "read", &err)()

	req = req.Normalize()
	scope := r.db.WithContext(ctx).Where("post_id = ?", postID)

	var total int64
	if err := scope.Session(&gorm.Session{}).Model(&models.Comment{}).Count(&total).Error; err != nil {
		return nil, models.NewInternalError(err)
	}

	var comments []models.Comment
	if err := scope.Session(&gorm.Session{}).
		Preload("User").
		Order(req.OrderClause()).
		Limit(req.Size).
		Offset(req.Offset()).
		Find(&comments).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return models.NewPage(comments, req, total), nil
}

func (r *commentRepository) DeleteByPost(ctx context.Context, postID uint) (err error) {
	defer r.log.Track(ctx, "delete", &err)()

	if err := r.db.WithContext(ctx).Where("post_id = ?", postID).Delete(&models.Comment{}).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}
