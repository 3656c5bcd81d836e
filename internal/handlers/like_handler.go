package handlers

import (
	"net/http"
	"strconv"

	"github.com/hazelcrest/backstage/backend/internal/repositories"
	"github.com/hazelcrest/backstage/backend/internal/services"
	"github.com/labstack/echo/v4"
)

// LikeHandler handles HTTP requests related to likes
type LikeHandler struct {
	engagement     *services.EngagementService
	userRepository repositories.UserRepository
}

// NewLikeHandler creates a new LikeHandler
func NewLikeHandler(engagement *services.EngagementService, userRepo repositories.UserRepository) *LikeHandler {
	return &LikeHandler{
		engagement:     engagement,
		userRepository: userRepo,
	}
}

// RegisterLikeRoutes registers like-related routes
func (h *LikeHandler) RegisterLikeRoutes(g *echo.Group) {
	g.POST("/posts/:post_id/likes", h.LikePost)
	g.DELETE("/posts/:post_id/likes", h.UnlikePost)
	g.GET("/posts/:post_id/likes/status", h.GetUserLikeStatusForPost)
}

func likePostIDParam(c echo.Context) (uint, error) {
	id, err := strconv.ParseUint(c.Param("post_id"), 10, 32)
	if err != nil {
		return 0, echo.NewHTTPError(http.StatusBadRequest, "Invalid post ID")
	}
	return uint(id), nil
}

// LikePost handles liking a post
func (h *LikeHandler) LikePost(c echo.Context) error {
	user, err := currentUser(c, h.userRepository)
	if err != nil {
		return err
	}
	postID, err := likePostIDParam(c)
	if err != nil {
		return err
	}

	count, err := h.engagement.ToggleLike(user, postID, true)
	if err != nil {
		return serviceError(err)
	}

	return c.JSON(http.StatusOK, echo.Map{"post_id": postID, "liked": true, "like_count": count})
}

// UnlikePost handles unliking a post
func (h *LikeHandler) UnlikePost(c echo.Context) error {
	user, err := currentUser(c, h.userRepository)
	if err != nil {
		return err
	}
	postID, err := likePostIDParam(c)
	if err != nil {
		return err
	}

	count, err := h.engagement.ToggleLike(user, postID, false)
	if err != nil {
		return serviceError(err)
	}

	return c.JSON(http.StatusOK, echo.Map{"post_id": postID, "liked": false, "like_count": count})
}

// GetUserLikeStatusForPost checks if the authenticated user has liked a post
func (h *LikeHandler) GetUserLikeStatusForPost(c echo.Context) error {
	user, err := currentUser(c, h.userRepository)
	if err != nil {
		return err
	}
	postID, err := likePostIDParam(c)
	if err != nil {
		return err
	}

	hasLiked, err := h.engagement.HasLiked(user.ID, postID)
	if err != nil {
		return serviceError(err)
	}

	return c.JSON(http.StatusOK, echo.Map{"post_id": postID, "user_id": user.ID, "has_liked": hasLiked})
}
