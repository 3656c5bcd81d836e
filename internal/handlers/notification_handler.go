package handlers

import (
	"net/http"

	"github.com/hazelcrest/backstage/backend/internal/models"
	"github.com/hazelcrest/backstage/backend/internal/repositories"
	"github.com/hazelcrest/backstage/backend/internal/services"
	"github.com/labstack/echo/v4"
)

// NotificationHandler handles notification-related HTTP requests
type NotificationHandler struct {
	notifications  *services.NotificationService
	userRepository repositories.UserRepository
}

// NewNotificationHandler creates a new NotificationHandler
func NewNotificationHandler(notifications *services.NotificationService, userRepo repositories.UserRepository) *NotificationHandler {
	return &NotificationHandler{
		notifications:  notifications,
		userRepository: userRepo,
	}
}

// RegisterNotificationRoutes registers notification routes
func (h *NotificationHandler) RegisterNotificationRoutes(g *echo.Group) {
	g.GET("/notifications", h.GetNotifications)
	g.GET("/notifications/unread", h.GetUnreadNotifications)
	g.GET("/notifications/unread-count", h.GetUnreadCount)
	g.PUT("/notifications/read", h.MarkRead)
}

// GetNotifications returns all non-retracted notifications for the user
func (h *NotificationHandler) GetNotifications(c echo.Context) error {
	user, err := currentUser(c, h.userRepository)
	if err != nil {
		return err
	}

	notifications, err := h.notifications.ListAll(user.ID)
	if err != nil {
		return serviceError(err)
	}

	return c.JSON(http.StatusOK, echo.Map{"notifications": notifications})
}

// GetUnreadNotifications returns the user's unread notifications
func (h *NotificationHandler) GetUnreadNotifications(c echo.Context) error {
	user, err := currentUser(c, h.userRepository)
	if err != nil {
		return err
	}

	notifications, err := h.notifications.ListUnread(user.ID)
	if err != nil {
		return serviceError(err)
	}

	return c.JSON(http.StatusOK, echo.Map{"notifications": notifications})
}

// GetUnreadCount returns the unread notification count
func (h *NotificationHandler) GetUnreadCount(c echo.Context) error {
	user, err := currentUser(c, h.userRepository)
	if err != nil {
		return err
	}

	count, err := h.notifications.CountUnread(user.ID)
	if err != nil {
		return serviceError(err)
	}

	return c.JSON(http.StatusOK, echo.Map{"count": count})
}

// MarkRead marks the given notifications as read for the user
func (h *NotificationHandler) MarkRead(c echo.Context) error {
	user, err := currentUser(c, h.userRepository)
	if err != nil {
		return err
	}

	var req models.MarkReadRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	if err := h.notifications.MarkRead(user, req.NotificationIDs); err != nil {
		return serviceError(err)
	}

	return c.JSON(http.StatusOK, echo.Map{"success": true})
}
