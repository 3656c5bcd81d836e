package handlers

import (
	"net/http"
	"strconv"

	"github.com/hazelcrest/backstage/backend/internal/models"
	"github.com/hazelcrest/backstage/backend/internal/repositories"
	"github.com/hazelcrest/backstage/backend/internal/services"
	"github.com/labstack/echo/v4"
)

// CommentHandler handles HTTP requests related to comments and replies
type CommentHandler struct {
	engagement     *services.EngagementService
	userRepository repositories.UserRepository
}

// NewCommentHandler creates a new CommentHandler
func NewCommentHandler(engagement *services.EngagementService, userRepo repositories.UserRepository) *CommentHandler {
	return &CommentHandler{
		engagement:     engagement,
		userRepository: userRepo,
	}
}

// RegisterCommentRoutes registers comment-related routes
func (h *CommentHandler) RegisterCommentRoutes(g *echo.Group) {
	g.POST("/posts/:post_id/comments", h.CreateComment)
	g.GET("/posts/:post_id/comments", h.GetCommentsByPostID)
	g.POST("/comments/:id/replies", h.CreateReply)
	g.GET("/comments/:id/replies", h.GetReplies)
	g.PUT("/comments/:id", h.UpdateComment)
	g.DELETE("/comments/:id", h.DeleteComment)
}

func commentIDParam(c echo.Context) (uint, error) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return 0, echo.NewHTTPError(http.StatusBadRequest, "Invalid comment ID")
	}
	return uint(id), nil
}

// CreateComment creates a new top-level comment on a post
func (h *CommentHandler) CreateComment(c echo.Context) error {
	user, err := currentUser(c, h.userRepository)
	if err != nil {
		return err
	}

	postID, err := strconv.ParseUint(c.Param("post_id"), 10, 32)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid post ID")
	}

	var req models.CreateCommentRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	comment, err := h.engagement.AddComment(user, uint(postID), req.Content)
	if err != nil {
		return serviceError(err)
	}

	return c.JSON(http.StatusCreated, comment)
}

// GetCommentsByPostID returns a post's top-level comments with reply counts
func (h *CommentHandler) GetCommentsByPostID(c echo.Context) error {
	postID, err := strconv.ParseUint(c.Param("post_id"), 10, 32)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid post ID")
	}

	comments, err := h.engagement.ListTopLevel(uint(postID))
	if err != nil {
		return serviceError(err)
	}

	return c.JSON(http.StatusOK, comments)
}

// CreateReply creates a reply to a top-level comment
func (h *CommentHandler) CreateReply(c echo.Context) error {
	user, err := currentUser(c, h.userRepository)
	if err != nil {
		return err
	}
	parentID, err := commentIDParam(c)
	if err != nil {
		return err
	}

	var req models.CreateCommentRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	reply, err := h.engagement.AddReply(user, parentID, req.Content)
	if err != nil {
		return serviceError(err)
	}

	return c.JSON(http.StatusCreated, reply)
}

// GetReplies returns a comment's replies in reply order
func (h *CommentHandler) GetReplies(c echo.Context) error {
	parentID, err := commentIDParam(c)
	if err != nil {
		return err
	}

	replies, err := h.engagement.ListReplies(parentID)
	if err != nil {
		return serviceError(err)
	}

	return c.JSON(http.StatusOK, replies)
}

// UpdateComment edits a comment's content
func (h *CommentHandler) UpdateComment(c echo.Context) error {
	user, err := currentUser(c, h.userRepository)
	if err != nil {
		return err
	}
	commentID, err := commentIDParam(c)
	if err != nil {
		return err
	}

	var req models.UpdateCommentRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	comment, err := h.engagement.UpdateComment(user, commentID, req.Content)
	if err != nil {
		return serviceError(err)
	}

	return c.JSON(http.StatusOK, comment)
}

// DeleteComment soft-deletes a comment
func (h *CommentHandler) DeleteComment(c echo.Context) error {
	user, err := currentUser(c, h.userRepository)
	if err != nil {
		return err
	}
	commentID, err := commentIDParam(c)
	if err != nil {
		return err
	}

	if err := h.engagement.DeleteComment(user, commentID); err != nil {
		return serviceError(err)
	}

	return c.NoContent(http.StatusNoContent)
}
