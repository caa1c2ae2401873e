// Package handler contains the HTTP handlers for the marketplace API.
package handler

import (
	"net/http"

	"croptrade/internal/delivery/http/response"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// currentUserID extracts the authenticated user's ID placed on the context
// by the auth middleware.
func currentUserID(c echo.Context) (uuid.UUID, bool) {
	userID, ok := c.Get("userID").(uuid.UUID)

	return userID, ok
}

// HealthCheck is a simple handler to check if the service is up.
func HealthCheck(c echo.Context) error {
	return response.Success(c, http.StatusOK, map[string]string{"status": "ok"}, "Service is healthy")
}
