package server

import (
	"snsproject/internal/models"

	"github.com/gofiber/fiber/v2"
)

// PostRequest is the body of post create and modify.
type PostRequest struct {
	Title string `json:"title"`
	Body  string `json:"body"`
}

// CommentRequest is the body of comment create.
type CommentRequest struct {
	Comment string `json:"comment"`
}

// CreatePost handles POST /api/v1/posts
func (s *Server) CreatePost(c *fiber.Ctx) error {
	var req PostRequest
	if err := c.BodyParser(&req); err != nil {
		return respondError(c, models.NewValidationError("Invalid request body"))
	}
	if err := s.postService.Create(c.UserContext(), req.Title, req.Body, currentUserName(c)); err != nil {
		return respondError(c, err)
	}
	return respondOK(c, nil)
}

// ModifyPost handles PUT /api/v1/posts/:postId
func (s *Server) ModifyPost(c *fiber.Ctx) error {
	postID, err := parsePostID(c)
	if err != nil {
		return respondError(c, err)
	}
	var req PostRequest
	if err := c.BodyParser(&req); err != nil {
		return respondError(c, models.NewValidationError("Invalid request body"))
	}

	post, err := s.postService.Modify(c.UserContext(), req.Title, req.Body, currentUserName(c), postID)
	if err != nil {
		return respondError(c, err)
	}
	return respondOK(c, post)
}

// DeletePost handles DELETE /api/v1/posts/:postId
func (s *Server) DeletePost(c *fiber.Ctx) error {
	postID, err := parsePostID(c)
	if err != nil {
		return respondError(c, err)
	}
	if err := s.postService.Delete(c.UserContext(), currentUserName(c), postID); err != nil {
		return respondError(c, err)
	}
	return respondOK(c, nil)
}

// ListPosts handles GET /api/v1/posts
func (s *Server) ListPosts(c *fiber.Ctx) error {
	page, err := s.postService.List(c.UserContext(), parsePageRequest(c))
	if err != nil {
		return respondError(c, err)
	}
	return respondOK(c, page)
}

// MyPosts handles GET /api/v1/posts/my
func (s *Server) MyPosts(c *fiber.Ctx) error {
	page, err := s.postService.My(c.UserContext(), currentUserName(c), parsePageRequest(c))
	if err != nil {
		return respondError(c, err)
	}
	return respondOK(c, page)
}

// LikePost handles POST /api/v1/posts/:postId/likes
func (s *Server) LikePost(c *fiber.Ctx) error {
	postID, err := parsePostID(c)
	if err != nil {
		return respondError(c, err)
	}
	if err := s.postService.Like(c.UserContext(), postID, currentUserName(c)); err != nil {
		return respondError(c, err)
	}
	return respondOK(c, nil)
}

// LikeCount handles GET /api/v1/posts/:postId/likes
func (s *Server) LikeCount(c *fiber.Ctx) error {
	postID, err := parsePostID(c)
	if err != nil {
		return respondError(c, err)
	}
	count, err := s.postService.LikeCount(c.UserContext(), postID)
	if err != nil {
		return respondError(c, err)
	}
	return respondOK(c, count)
}

// CreateComment handles POST /api/v1/posts/:postId/comments
func (s *Server) CreateComment(c *fiber.Ctx) error {
	postID, err := parsePostID(c)
	if err != nil {
		return respondError(c, err)
	}
	var req CommentRequest
	if err := c.BodyParser(&req); err != nil {
		return respondError(c, models.NewValidationError("Invalid request body"))
	}
	if err := s.postService.Comment(c.UserContext(), postID, currentUserName(c), req.Comment); err != nil {
		return respondError(c, err)
	}
	return respondOK(c, nil)
}

// GetComments handles GET /api/v1/posts/:postId/comments
func (s *Server) GetComments(c *fiber.Ctx) error {
	postID, err := parsePostID(c)
	if err != nil {
		return respondError(c, err)
	}
	page, err := s.postService.GetComments(c.UserContext(), postID, parsePageRequest(c))
	if err != nil {
		return respondError(c, err)
	}
	return respondOK(c, page)
}
