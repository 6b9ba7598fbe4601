package repository

import (
	"context"

	"gorm.io/gorm"
)

// Stores hands out the repositories of one unit of work.
type Stores struct {
	Users    UserRepository
	Posts    PostRepository
	Likes    LikeRepository
	Comments CommentRepository
}

// NewStores binds every repository to db, which may be a transaction.
func NewStores(db *gorm.DB) Stores {
	return Stores{
		Users:    NewUserRepository(db),
		Posts:    NewPostRepository(db),
		Likes:    NewLikeRepository(db),
		Comments: NewCommentRepository(db),
	}
}

// UnitOfWork runs fn atomically: everything fn writes through the given
// stores commits together, or rolls back when fn returns an error or panics.
type UnitOfWork interface {
	Do(ctx context.Context, fn func(s Stores) error) error
}

type gormUnitOfWork struct {
	db *gorm.DB
}

// NewUnitOfWork returns a UnitOfWork backed by database transactions.
func NewUnitOfWork(db *gorm.DB) UnitOfWork {
	return &gormUnitOfWork{db: db}
}

func (u *gormUnitOfWork) Do(ctx context.Context, fn func(s Stores) error) error {
	return u.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(NewStores(tx))
	})
}
