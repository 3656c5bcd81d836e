package handlers

import (
	"net/http"
	"strconv"

	"github.com/hazelcrest/backstage/backend/internal/models"
	"github.com/hazelcrest/backstage/backend/internal/repositories"
	"github.com/hazelcrest/backstage/backend/internal/services"
	"github.com/labstack/echo/v4"
)

// PostHandler handles post lifecycle HTTP requests
type PostHandler struct {
	engagement     *services.EngagementService
	userRepository repositories.UserRepository
}

// NewPostHandler creates a new PostHandler
func NewPostHandler(engagement *services.EngagementService, userRepo repositories.UserRepository) *PostHandler {
	return &PostHandler{
		engagement:     engagement,
		userRepository: userRepo,
	}
}

// RegisterPostRoutes registers post-related routes
func (h *PostHandler) RegisterPostRoutes(g *echo.Group) {
	g.POST("/posts", h.CreatePost)
	g.GET("/posts", h.ListPosts)
	g.GET("/posts/:id", h.GetPost)
	g.PUT("/posts/:id", h.UpdatePost)
	g.POST("/posts/:id/unpublish", h.UnpublishPost)
	g.DELETE("/posts/:id", h.DeletePost)
	g.POST("/posts/:id/views", h.RegisterView)
	g.GET("/me/drafts", h.ListDrafts)
	g.GET("/me/archived", h.ListArchived)
}

func postIDParam(c echo.Context) (uint, error) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return 0, echo.NewHTTPError(http.StatusBadRequest, "Invalid post ID")
	}
	return uint(id), nil
}

// CreatePost creates a new post (draft or directly published)
func (h *PostHandler) CreatePost(c echo.Context) error {
	user, err := currentUser(c, h.userRepository)
	if err != nil {
		return err
	}

	var req models.CreatePostRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	post, err := h.engagement.CreatePost(user, req)
	if err != nil {
		return serviceError(err)
	}

	return c.JSON(http.StatusCreated, post)
}

// ListPosts returns published posts, newest first
func (h *PostHandler) ListPosts(c echo.Context) error {
	page, _ := strconv.Atoi(c.QueryParam("page"))
	limit, _ := strconv.Atoi(c.QueryParam("limit"))
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 50 {
		limit = 20
	}

	posts, err := h.engagement.ListPublished(limit, (page-1)*limit)
	if err != nil {
		return serviceError(err)
	}

	return c.JSON(http.StatusOK, echo.Map{"posts": posts, "page": page})
}

// GetPost returns a post annotated with the viewer's like status
func (h *PostHandler) GetPost(c echo.Context) error {
	user, err := currentUser(c, h.userRepository)
	if err != nil {
		return err
	}
	postID, err := postIDParam(c)
	if err != nil {
		return err
	}

	view, err := h.engagement.GetPost(user, postID)
	if err != nil {
		return serviceError(err)
	}

	return c.JSON(http.StatusOK, view)
}

// UpdatePost patches a post; moving a draft to published triggers follower
// notifications
func (h *PostHandler) UpdatePost(c echo.Context) error {
	user, err := currentUser(c, h.userRepository)
	if err != nil {
		return err
	}
	postID, err := postIDParam(c)
	if err != nil {
		return err
	}

	var req models.UpdatePostRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	post, err := h.engagement.UpdatePost(user, postID, req)
	if err != nil {
		return serviceError(err)
	}

	return c.JSON(http.StatusOK, post)
}

// UnpublishPost archives a published post
func (h *PostHandler) UnpublishPost(c echo.Context) error {
	user, err := currentUser(c, h.userRepository)
	if err != nil {
		return err
	}
	postID, err := postIDParam(c)
	if err != nil {
		return err
	}

	if err := h.engagement.UnpublishPost(user, postID); err != nil {
		return serviceError(err)
	}

	return c.NoContent(http.StatusNoContent)
}

// DeletePost soft-deletes a post
func (h *PostHandler) DeletePost(c echo.Context) error {
	user, err := currentUser(c, h.userRepository)
	if err != nil {
		return err
	}
	postID, err := postIDParam(c)
	if err != nil {
		return err
	}

	if err := h.engagement.DeletePost(user, postID); err != nil {
		return serviceError(err)
	}

	return c.NoContent(http.StatusNoContent)
}

// RegisterView bumps a post's view count
func (h *PostHandler) RegisterView(c echo.Context) error {
	postID, err := postIDParam(c)
	if err != nil {
		return err
	}

	count, err := h.engagement.RegisterView(postID)
	if err != nil {
		return serviceError(err)
	}

	return c.JSON(http.StatusOK, echo.Map{"post_id": postID, "view_count": count})
}

// ListDrafts returns the authenticated user's draft posts
func (h *PostHandler) ListDrafts(c echo.Context) error {
	user, err := currentUser(c, h.userRepository)
	if err != nil {
		return err
	}

	posts, err := h.engagement.ListDrafts(user)
	if err != nil {
		return serviceError(err)
	}

	return c.JSON(http.StatusOK, posts)
}

// ListArchived returns the authenticated user's archived posts
func (h *PostHandler) ListArchived(c echo.Context) error {
	user, err := currentUser(c, h.userRepository)
	if err != nil {
		return err
	}

	posts, err := h.engagement.ListArchived(user)
	if err != nil {
		return serviceError(err)
	}

	return c.JSON(http.StatusOK, posts)
}
