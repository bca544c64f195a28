package handler

import (
	"errors"
	"net/http"

	"warbler/backend/internal/database"
	"warbler/backend/internal/service"
	"warbler/backend/pkg/apperr"

	"github.com/gin-gonic/gin"
)

// ErrorResponse represents a generic error response.
type ErrorResponse struct {
	Error string `json:"error" example:"An error message"`
}

// Service accessors. The database connection is established at startup, so
// the services are built per call against the live handle.

func userService() *service.UserService {
	return service.NewUserService(database.DB)
}

func graphService() *service.GraphService {
	return service.NewGraphService(database.DB)
}

func messageService() *service.MessageService {
	return service.NewMessageService(database.DB)
}

func timelineService() *service.TimelineService {
	return service.NewTimelineService(database.DB)
}

// respondError maps a service error to an HTTP status. Unknown errors are
// reported as a bare 500 without leaking internals.
func respondError(c *gin.Context, err error) {
	var app *apperr.AppError
	if !errors.As(err, &app) {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	status := http.StatusInternalServerError
	switch app.Code {
	case apperr.CodeInvalidArgument:
		status = http.StatusBadRequest
	case apperr.CodeNotFound:
		status = http.StatusNotFound
	case apperr.CodeAlreadyExists:
		status = http.StatusConflict
	case apperr.CodePermissionDenied:
		status = http.StatusForbidden
	case apperr.CodeUnauthenticated:
		status = http.StatusUnauthorized
	case apperr.CodeUnavailable:
		status = http.StatusServiceUnavailable
	}

	c.JSON(status, gin.H{"error": app.Message})
}
