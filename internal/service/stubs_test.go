package service

import (
	"context"
	"errors"
	"testing"

	"snsproject/internal/models"
	"snsproject/internal/notifications"
	"snsproject/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// userRepoStub is a stub for repository.UserRepository.
type userRepoStub struct {
	findByUserNameFn   func(context.Context, string) (*models.User, error)
	existsByUserNameFn func(context.Context, string) (bool, error)
	createFn           func(context.Context, *models.User) error
}

func (s *userRepoStub) FindByUserName(ctx context.Context, userName string) (*models.User, error) {
	return s.findByUserNameFn(ctx, userName)
}
func (s *userRepoStub) ExistsByUserName(ctx context.Context, userName string) (bool, error) {
	return s.existsByUserNameFn(ctx, userName)
}
func (s *userRepoStub) Create(ctx context.Context, user *models.User) error {
	return s.createFn(ctx, user)
}

// usersNamed returns a user stub that knows exactly the given users.
func usersNamed(users ...*models.User) *userRepoStub {
	return &userRepoStub{
		findByUserNameFn: func(_ context.Context, name string) (*models.User, error) {
			for _, u := range users {
				if u.UserName == name {
					return u, nil
				}
			}
			return nil, models.NewUserNotFoundError(name)
		},
		existsByUserNameFn: func(_ context.Context, name string) (bool, error) {
			for _, u := range users {
				if u.UserName == name {
					return true, nil
				}
			}
			return false, nil
		},
		createFn: func(_ context.Context, u *models.User) error {
			u.ID = uint(len(users) + 1)
			return nil
		},
	}
}

// postRepoStub is a stub for repository.PostRepository.
type postRepoStub struct {
	findByIDFn       func(context.Context, uint) (*models.Post, error)
	createFn         func(context.Context, *models.Post) error
	updateFn         func(context.Context, *models.Post) error
	deleteFn         func(context.Context, uint) error
	findPageFn       func(context.Context, models.PageRequest) (*models.Page[models.Post], error)
	findPageByUserFn func(context.Context, uint, models.PageRequest) (*models.Page[models.Post], error)
}

func (s *postRepoStub) FindByID(ctx context.Context, id uint) (*models.Post, error) {
	return s.findByIDFn(ctx, id)
}
func (s *postRepoStub) Create(ctx context.Context, post *models.Post) error {
	return s.createFn(ctx, post)
}
func (s *postRepoStub) Update(ctx context.Context, post *models.Post) error {
	return s.updateFn(ctx, post)
}
func (s *postRepoStub) Delete(ctx context.Context, id uint) error {
	return s.deleteFn(ctx, id)
}
func (s *postRepoStub) FindPage(ctx context.Context, req models.PageRequest) (*models.Page[models.Post], error) {
	return s.findPageFn(ctx, req)
}
func (s *postRepoStub) FindPageByUser(ctx context.Context, userID uint, req models.PageRequest) (*models.Page[models.Post], error) {
	return s.findPageByUserFn(ctx, userID, req)
}

// postsHolding returns a post stub that finds exactly the given posts.
func postsHolding(posts ...*models.Post) *postRepoStub {
	return &postRepoStub{
		findByIDFn: func(_ context.Context, id uint) (*models.Post, error) {
			for _, p := range posts {
				if p.ID == id {
					cp := *p
					return &cp, nil
				}
			}
			return nil, models.NewPostNotFoundError(id)
		},
		createFn: func(_ context.Context, _ *models.Post) error { return nil },
		updateFn: func(_ context.Context, _ *models.Post) error { return nil },
		deleteFn: func(_ context.Context, _ uint) error { return nil },
		findPageFn: func(_ context.Context, req models.PageRequest) (*models.Page[models.Post], error) {
			return models.NewPage[models.Post](nil, req, 0), nil
		},
		findPageByUserFn: func(_ context.Context, _ uint, req models.PageRequest) (*models.Page[models.Post], error) {
			return models.NewPage[models.Post](nil, req, 0), nil
		},
	}
}

// likeRepoStub is a stub for repository.LikeRepository.
type likeRepoStub struct {
	findByUserAndPostFn func(context.Context, uint, uint) (*models.Like, error)
	createFn            func(context.Context, *models.Like) error
	countByPostFn       func(context.Context, uint) (int64, error)
	deleteByPostFn      func(context.Context, uint) error
}

func (s *likeRepoStub) FindByUserAndPost(ctx context.Context, userID, postID uint) (*models.Like, error) {
	return s.findByUserAndPostFn(ctx, userID, postID)
}
func (s *likeRepoStub) Create(ctx context.Context, like *models.Like) error {
	return s.createFn(ctx, like)
}
func (s *likeRepoStub) CountByPost(ctx context.Context, postID uint) (int64, error) {
	return s.countByPostFn(ctx, postID)
}
func (s *likeRepoStub) DeleteByPost(ctx context.Context, postID uint) error {
	return s.deleteByPostFn(ctx, postID)
}

func noopLikeRepo() *likeRepoStub {
	return &likeRepoStub{
		findByUserAndPostFn: func(_ context.Context, _, _ uint) (*models.Like, error) { return nil, nil },
		createFn:            func(_ context.Context, _ *models.Like) error { return nil },
		countByPostFn:       func(_ context.Context, _ uint) (int64, error) { return 0, nil },
		deleteByPostFn:      func(_ context.Context, _ uint) error { return nil },
	}
}

// commentRepoStub is a stub for repository.CommentRepository.
type commentRepoStub struct {
	createFn         func(context.Context, *models.Comment) error
	findPageByPostFn func(context.Context, uint, models.PageRequest) (*models.Page[models.Comment], error)
	deleteByPostFn   func(context.Context, uint) error
}

func (s *commentRepoStub) Create(ctx context.Context, comment *models.Comment) error {
	return s.createFn(ctx, comment)
}
func (s *commentRepoStub) FindPageByPost(ctx context.Context, postID uint, req models.PageRequest) (*models.Page[models.Comment], error) {
	return s.findPageByPostFn(ctx, postID, req)
}
func (s *commentRepoStub) DeleteByPost(ctx context.Context, postID uint) error {
	return s.deleteByPostFn(ctx, postID)
}

func noopCommentRepo() *commentRepoStub {
	return &commentRepoStub{
		createFn: func(_ context.Context, _ *models.Comment) error { return nil },
		findPageByPostFn: func(_ context.Context, _ uint, req models.PageRequest) (*models.Page[models.Comment], error) {
			return models.NewPage[models.Comment](nil, req, 0), nil
		},
		deleteByPostFn: func(_ context.Context, _ uint) error { return nil },
	}
}

// stubUnitOfWork hands the same stores to every call.
type stubUnitOfWork struct {
	stores repository.Stores
	calls  int
}

func (u *stubUnitOfWork) Do(_ context.Context, fn func(repository.Stores) error) error {
	u.calls++
	return fn(u.stores)
}

func newStubUnitOfWork(users *userRepoStub, posts *postRepoStub, likes *likeRepoStub, comments *commentRepoStub) *stubUnitOfWork {
	return &stubUnitOfWork{stores: repository.Stores{
		Users:    users,
		Posts:    posts,
		Likes:    likes,
		Comments: comments,
	}}
}

type publishedAlarm struct {
	ownerID  uint
	kind     notifications.AlarmType
	fromUser string
	postID   uint
}

// alarmRecorder is an AlarmPublisher that keeps every alarm it receives.
type alarmRecorder struct {
	alarms []publishedAlarm
}

func (r *alarmRecorder) PublishAlarm(_ context.Context, ownerID uint, kind notifications.AlarmType, fromUser string, postID uint) {
	r.alarms = append(r.alarms, publishedAlarm{ownerID: ownerID, kind: kind, fromUser: fromUser, postID: postID})
}

// assertCode asserts that err is an AppError with the given code.
func assertCode(t *testing.T, err error, code string) {
	t.Helper()
	require.Error(t, err)
	var appErr *models.AppError
	require.True(t, errors.As(err, &appErr), "expected AppError, got %T: %v", err, err)
	assert.Equal(t, code, appErr.Code)
}
