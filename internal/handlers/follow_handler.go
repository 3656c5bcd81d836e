package handlers

import (
	"net/http"
	"strconv"

	"github.com/hazelcrest/backstage/backend/internal/repositories"
	"github.com/hazelcrest/backstage/backend/internal/services"
	"github.com/labstack/echo/v4"
)

// FollowHandler handles follow/unfollow HTTP requests
type FollowHandler struct {
	engagement     *services.EngagementService
	userRepository repositories.UserRepository
}

// NewFollowHandler creates a new FollowHandler
func NewFollowHandler(engagement *services.EngagementService, userRepo repositories.UserRepository) *FollowHandler {
	return &FollowHandler{
		engagement:     engagement,
		userRepository: userRepo,
	}
}

// RegisterFollowRoutes registers follow-related routes
func (h *FollowHandler) RegisterFollowRoutes(g *echo.Group) {
	g.POST("/users/:id/follow", h.FollowUser)
	g.DELETE("/users/:id/follow", h.UnfollowUser)
	g.GET("/users/:id/followers", h.GetFollowers)
	g.GET("/users/:id/following", h.GetFollowing)
	g.GET("/users/:id/follow-status", h.GetFollowStatus)
}

func userIDParam(c echo.Context) (uint, error) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return 0, echo.NewHTTPError(http.StatusBadRequest, "Invalid user ID")
	}
	return uint(id), nil
}

// FollowUser follows a user
func (h *FollowHandler) FollowUser(c echo.Context) error {
	user, err := currentUser(c, h.userRepository)
	if err != nil {
		return err
	}
	targetID, err := userIDParam(c)
	if err != nil {
		return err
	}

	if err := h.engagement.ToggleFollow(user, targetID, true); err != nil {
		return serviceError(err)
	}

	return c.JSON(http.StatusOK, echo.Map{"following": true})
}

// UnfollowUser unfollows a user
func (h *FollowHandler) UnfollowUser(c echo.Context) error {
	user, err := currentUser(c, h.userRepository)
	if err != nil {
		return err
	}
	targetID, err := userIDParam(c)
	if err != nil {
		return err
	}

	if err := h.engagement.ToggleFollow(user, targetID, false); err != nil {
		return serviceError(err)
	}

	return c.JSON(http.StatusOK, echo.Map{"following": false})
}

// GetFollowers returns the users following the given user
func (h *FollowHandler) GetFollowers(c echo.Context) error {
	userID, err := userIDParam(c)
	if err != nil {
		return err
	}

	followers, err := h.engagement.Followers(userID)
	if err != nil {
		return serviceError(err)
	}

	return c.JSON(http.StatusOK, followers)
}

// GetFollowing returns the users the given user follows
func (h *FollowHandler) GetFollowing(c echo.Context) error {
	userID, err := userIDParam(c)
	if err != nil {
		return err
	}

	following, err := h.engagement.Following(userID)
	if err != nil {
		return serviceError(err)
	}

	return c.JSON(http.StatusOK, following)
}

// GetFollowStatus reports whether the authenticated user follows the given user
func (h *FollowHandler) GetFollowStatus(c echo.Context) error {
	user, err := currentUser(c, h.userRepository)
	if err != nil {
		return err
	}
	targetID, err := userIDParam(c)
	if err != nil {
		return err
	}

	isFollowing, err := h.engagement.IsFollowing(user.ID, targetID)
	if err != nil {
		return serviceError(err)
	}

	return c.JSON(http.StatusOK, echo.Map{"user_id": targetID, "following": isFollowing})
}
