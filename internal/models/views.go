package models

import "time"

// UserView is the public representation of a user.
type UserView struct {
	ID        uint      `json:"id"`
	UserName  string    `json:"user_name"`
	Role      UserRole  `json:"role"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// PostView is the public representation of a post.
type PostView struct {
	ID        uint      `json:"id"`
	Title     string    `json:"title"`
	Body      string    `json:"body"`
	User      UserView  `json:"user"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// CommentView is the public representation of a comment.
type CommentView struct {
	ID        uint      `json:"id"`
	Comment   string    `json:"comment"`
	UserName  string    `json:"user_name"`
	PostID    uint      `json:"post_id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func NewUserView(u *User) UserView {
	return UserView{
		ID:        u.ID,
		UserName:  u.UserName,
		Role:      u.Role,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}

// NewPostView maps a post and its preloaded owner.
func NewPostView(p *Post) PostView {
	return PostView{
		ID:        p.ID,
		Title:     p.Title,
		Body:      p.Body,
		User:      NewUserView(&p.User),
		CreatedAt: p.CreatedAt,
		UpdatedAt: p.UpdatedAt,
	}
}

// NewCommentView maps a comment and its preloaded author.
func NewCommentView(c *Comment) CommentView {
	return CommentView{
		ID:        c.ID,
		Comment:   c.Comment,
		UserName:  c.User.UserName,
		PostID:    c.PostID,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
}
