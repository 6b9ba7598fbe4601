package service

import (
	"context"
	"errors"

	"snsproject/internal/cache"
	"snsproject/internal/models"
	"snsproject/internal/notifications"
	"snsproject/internal/repository"

	"go.opentelemetry.io/otel/attribute"
)

// PostService owns posts and the likes and comments attached to them.
// Every operation resolves its actor by user name and runs in one unit of work.
type PostService struct {
	uow    repository.UnitOfWork
	alarms AlarmPublisher
}

// NewPostService creates a PostService. alarms may be nil.
func NewPostService(uow repository.UnitOfWork, alarms AlarmPublisher) *PostService {
	return &PostService{uow: uow, alarms: alarms}
}

// Create stores a new post owned by userName.
func (s *PostService) Create(ctx context.Context, title, body, userName string) (err error) {
	ctx, end := startOp(ctx, "post.create", attribute.String("user_name", userName))
	defer func() { end(err) }()

	return s.uow.Do(ctx, func(st repository.Stores) error {
		user, err := st.Users.FindByUserName(ctx, userName)
		if err != nil {
			return err
		}
		return st.Posts.Create(ctx, &models.Post{
			Title:  title,
			Body:   body,
			UserID: user.ID,
		})
	})
}

// Modify overwrites the title and body of a post owned by userName.
func (s *PostService) Modify(ctx context.Context, title, body, userName string, postID uint) (_ *models.PostView, err error) {
	ctx, end := startOp(ctx, "post.modify",
		attribute.String("user_name", userName),
		attribute.Int64("post_id", int64(postID)),
	)
	defer func() { end(err) }()

	var view models.PostView
	err = s.uow.Do(ctx, func(st repository.Stores) error {
		post, err := ownedPost(ctx, st, userName, postID)
		if err != nil {
			return err
		}
		post.Title = title
		post.Body = body
		if err := st.Posts.Update(ctx, post); err != nil {
			return err
		}
		view = models.NewPostView(post)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &view, nil
}

// Delete permanently removes a post owned by userName together with its likes and comments.
func (s *PostService) Delete(ctx context.Context, userName string, postID uint) (err error) {
	ctx, end := startOp(ctx, "post.delete",
		attribute.String("user_name", userName),
		attribute.Int64("post_id", int64(postID)),
	)
	defer func() { end(err) }()

	err = s.uow.Do(ctx, func(st repository.Stores) error {
		if _, err := ownedPost(ctx, st, userName, postID); err != nil {
			return err
		}
		if err := st.Likes.DeleteByPost(ctx, postID); err != nil {
			return err
		}
		if err := st.Comments.DeleteByPost(ctx, postID); err != nil {
			return err
		}
		return st.Posts.Delete(ctx, postID)
	})
	if err != nil {
		return err
	}
	cache.InvalidateLikeCount(ctx, postID)
	return nil
}

// List returns one page of all posts.
func (s *PostService) List(ctx context.Context, req models.PageRequest) (_ *models.Page[models.PostView], err error) {
	ctx, end := startOp(ctx, "post.list")
	defer func() { end(err) }()

	var page *models.Page[models.Post]
	err = s.uow.Do(ctx, func(st repository.Stores) error {
		var err error
		page, err = st.Posts.FindPage(ctx, req)
		return err
	})
	if err != nil {
		return nil, err
	}
	return models.MapPage(page, toPostView), nil
}

// My returns one page of the posts owned by userName.
func (s *PostService) My(ctx context.Context, userName string, req models.PageRequest) (_ *models.Page[models.PostView], err error) {
	ctx, end := startOp(ctx, "post.my", attribute.String("user_name", userName))
	defer func() { end(err) }()

	var page *models.Page[models.Post]
	err = s.uow.Do(ctx, func(st repository.Stores) error {
		user, err := st.Users.FindByUserName(ctx, userName)
		if err != nil {
			return err
		}
		page, err = st.Posts.FindPageByUser(ctx, user.ID, req)
		return err
	})
	if err != nil {
		return nil, err
	}
	return models.MapPage(page, toPostView), nil
}

// Like records that userName likes a post. A user likes a post at most once.
func (s *PostService) Like(ctx context.Context, postID uint, userName string) (err error) {
	ctx, end := startOp(ctx, "post.like",
		attribute.String("user_name", userName),
		attribute.Int64("post_id", int64(postID)),
	)
	defer func() { end(err) }()

	var ownerID, actorID uint
	err = s.uow.Do(ctx, func(st repository.Stores) error {
		post, err := st.Posts.FindByID(ctx, postID)
		if err != nil {
			return err
		}
		user, err := st.Users.FindByUserName(ctx, userName)
		if err != nil {
			return err
		}

		existing, err := st.Likes.FindByUserAndPost(ctx, user.ID, post.ID)
		if err != nil {
			return err
		}
		if existing != nil {
			return models.NewAlreadyLikedError(userName, postID)
		}
		if err := st.Likes.Create(ctx, &models.Like{UserID: user.ID, PostID: post.ID}); err != nil {
			if errors.Is(err, repository.ErrDuplicateKey) {
				return models.NewAlreadyLikedError(userName, postID)
			}
			return err
		}
		ownerID, actorID = post.UserID, user.ID
		return nil
	})
	if err != nil {
		return err
	}

	cache.InvalidateLikeCount(ctx, postID)
	s.notifyOwner(ctx, ownerID, actorID, notifications.AlarmNewLikeOnPost, userName, postID)
	return nil
}

// LikeCount returns the number of likes on a post.
func (s *PostService) LikeCount(ctx context.Context, postID uint) (_ int64, err error) {
	ctx, end := startOp(ctx, "post.like_count", attribute.Int64("post_id", int64(postID)))
	defer func() { end(err) }()

	var count int64
	err = s.uow.Do(ctx, func(st repository.Stores) error {
		if _, err := st.Posts.FindByID(ctx, postID); err != nil {
			return err
		}
		return cache.AsideLikeCount(ctx, postID, &count, func() error {
			var err error
			count, err = st.Likes.CountByPost(ctx, postID)
			return err
		})
	})
	if err != nil {
		return 0, err
	}
	return count, nil
}

// Comment adds a comment by userName to a post. The text is stored as given.
func (s *PostService) Comment(ctx context.Context, postID uint, userName, text string) (err error) {
	ctx, end := startOp(ctx, "post.comment",
		attribute.String("user_name", userName),
		attribute.Int64("post_id", int64(postID)),
	)
	defer func() { end(err) }()

	var ownerID, actorID uint
	err = s.uow.Do(ctx, func(st repository.Stores) error {
		post, err := st.Posts.FindByID(ctx, postID)
		if err != nil {
			return err
		}
		user, err := st.Users.FindByUserName(ctx, userName)
		if err != nil {
			return err
		}
		if err := st.Comments.Create(ctx, &models.Comment{
			Comment: text,
			UserID:  user.ID,
			PostID:  post.ID,
		}); err != nil {
			return err
		}
		ownerID, actorID = post.UserID, user.ID
		return nil
	})
	if err != nil {
		return err
	}

	s.notifyOwner(ctx, ownerID, actorID, notifications.AlarmNewCommentOnPost, userName, postID)
	return nil
}

// GetComments returns one page of the comments on a post.
func (s *PostService) GetComments(
	ctx context.Context,
	postID uint,
	req models.PageRequest,
) (_ *models.Page[models.CommentView], err error) {
	ctx, end := startOp(ctx, "post.get_comments", attribute.Int64("post_id", int64(postID)))
	defer func() { end(err) }()

	var page *models.Page[models.Comment]
	err = s.uow.Do(ctx, func(st repository.Stores) error {
		if _, err := st.Posts.FindByID(ctx, postID); err != nil {
			return err
		}
		var err error
		page, err = st.Comments.FindPageByPost(ctx, postID, req)
		return err
	})
	if err != nil {
		return nil, err
	}
	return models.MapPage(page, func(c models.Comment) models.CommentView {
		return models.NewCommentView(&c)
	}), nil
}

// ownedPost resolves the actor and the post, failing when the actor does not own it.
func ownedPost(ctx context.Context, st repository.Stores, userName string, postID uint) (*models.Post, error) {
	user, err := st.Users.FindByUserName(ctx, userName)
	if err != nil {
		return nil, err
	}
	post, err := st.Posts.FindByID(ctx, postID)
	if err != nil {
		return nil, err
	}
	if post.UserID != user.ID {
		return nil, models.NewInvalidPermissionError(userName, postID)
	}
	return post, nil
}

// notifyOwner alarms the post owner unless they acted on their own post.
func (s *PostService) notifyOwner(
	ctx context.Context,
	ownerID, actorID uint,
	alarmType notifications.AlarmType,
	fromUser string,
	postID uint,
) {
	if s.alarms == nil || ownerID == actorID {
		return
	}
	s.alarms.PublishAlarm(ctx, ownerID, alarmType, fromUser, postID)
}

func toPostView(p models.Post) models.PostView {
	return models.NewPostView(&p)
}
