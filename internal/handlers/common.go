package handlers

import (
	"net/http"

	"github.com/hazelcrest/backstage/backend/internal/apperrors"
	"github.com/hazelcrest/backstage/backend/internal/models"
	"github.com/hazelcrest/backstage/backend/internal/repositories"
	"github.com/labstack/echo/v4"
)

// currentUser resolves the JWT claims set by the auth middleware into the
// acting user row. Handlers pass the resolved user down into the services;
// nothing below this layer reads the principal from context.
func currentUser(c echo.Context, userRepo repositories.UserRepository) (*models.User, error) {
	claims, ok := c.Get("user").(*models.JwtCustomClaims)
	if !ok || claims.UserID == 0 {
		return nil, echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}
	user, err := userRepo.GetUserByID(claims.UserID)
	if err != nil {
		return nil, echo.NewHTTPError(http.StatusUnauthorized, "Authenticated user not found in database")
	}
	return user, nil
}

// serviceError translates a service error into an echo HTTP error. Storage
// errors surface as a generic 500 without leaking details.
func serviceError(err error) *echo.HTTPError {
	status := apperrors.HTTPStatus(err)
	if status == http.StatusInternalServerError {
		return echo.NewHTTPError(status, "Internal server error")
	}
	return echo.NewHTTPError(status, err.Error())
}
