package middleware

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/velotrack/velotrack_backend/internal/core/domain"
)

// contextKey is used for values stored in the request context.
// Using a custom type prevents collisions.
type contextKey string

const (
	loggerCtxKey = contextKey("logger")
	userIDKey    = contextKey("userID")
	roleKey      = contextKey("role")
)

// GetActorFromContext returns the authenticated caller as a service-level actor.
func GetActorFromContext(c *gin.Context) (domain.Actor, bool) {
	return ActorFromCtx(c.Request.Context())
}

// ActorFromCtx reads the actor stored by AuthMiddleware from a standard context.
func ActorFromCtx(ctx context.Context) (domain.Actor, bool) {
	userID, ok := ctx.Value(userIDKey).(string)
	if !ok || userID == "" {
		return domain.Actor{}, false
	}
	role, _ := ctx.Value(roleKey).(domain.UserRole)
	return domain.Actor{UserID: userID, Role: role}, true
}

// WithActor stores the actor in ctx. Used by AuthMiddleware and by tests.
func WithActor(ctx context.Context, actor domain.Actor) context.Context {
	ctx = context.WithValue(ctx, userIDKey, actor.UserID)
	return context.WithValue(ctx, roleKey, actor.Role)
}
