package handlers

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/velotrack/velotrack_backend/internal/apperrors"
	"github.com/velotrack/velotrack_backend/internal/core/domain"
	"github.com/velotrack/velotrack_backend/internal/dto"
	"github.com/velotrack/velotrack_backend/internal/middleware"
)

// dateLocation is the zone yyyy-mm-dd parameters are interpreted in.
var dateLocation = time.Local

// requireActor returns the caller set by AuthMiddleware or aborts with 401.
func requireActor(c *gin.Context) (domain.Actor, bool) {
	actor, ok := middleware.GetActorFromContext(c)
	if !ok {
		middleware.GetLoggerFromCtx(c.Request.Context()).Error("Actor not found in context")
		c.JSON(http.StatusUnauthorized, dto.ErrorResponse{Error: "Unauthorized"})
		return domain.Actor{}, false
	}
	return actor, true
}

// respondError maps err to its HTTP status. Server-side failures are logged at error level.
func respondError(c *gin.Context, err error, msg string) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	status := apperrors.HTTPStatus(err)
	if status >= http.StatusInternalServerError {
		logger.Error(msg, slog.String("error", err.Error()))
	} else {
		logger.Warn(msg, slog.String("error", err.Error()), slog.Int("status", status))
	}

	body := apperrors.UserMessage(err)
	if status == http.StatusInternalServerError {
		body = msg
	}
	c.JSON(status, dto.ErrorResponse{Error: body})
}

// respondBindError answers 400 for malformed bodies and query strings.
func respondBindError(c *gin.Context, err error, what string) {
	middleware.GetLoggerFromCtx(c.Request.Context()).Warn("Failed to bind "+what, slog.String("error", err.Error()))
	c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "Invalid " + what + ": " + err.Error()})
}

// respondNotFound answers 404 with a message naming the resource.
func respondNotFound(c *gin.Context, what, id string) {
	middleware.GetLoggerFromCtx(c.Request.Context()).Warn(what+" not found", slog.String("id", id))
	c.JSON(http.StatusNotFound, dto.ErrorResponse{Error: what + " not found"})
}
