package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/velotrack/velotrack_backend/internal/core/domain"
	"github.com/velotrack/velotrack_backend/internal/middleware"
	"github.com/velotrack/velotrack_backend/internal/utils"
)

const testSecret = "test-secret"

func newRouter(handlers ...gin.HandlerFunc) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/protected", handlers...)
	return r
}

func echoActor(c *gin.Context) {
	actor, _ := middleware.GetActorFromContext(c)
	c.JSON(http.StatusOK, gin.H{"userID": actor.UserID, "role": actor.Role})
}

func TestAuthMiddleware(t *testing.T) {
	r := newRouter(middleware.AuthMiddleware(testSecret), echoActor)

	valid, _, err := utils.GenerateJWT("mitra-1", string(domain.RoleMitra), testSecret, time.Hour, "test")
	require.NoError(t, err)
	expired, _, err := utils.GenerateJWT("mitra-1", string(domain.RoleMitra), testSecret, -time.Hour, "test")
	require.NoError(t, err)
	badRole, _, err := utils.GenerateJWT("mitra-1", "ADMIN", testSecret, time.Hour, "test")
	require.NoError(t, err)

	tests := []struct {
		name   string
		header string
		want   int
	}{
		{"missing header", "", http.StatusUnauthorized},
		{"wrong scheme", "Basic abc", http.StatusUnauthorized},
		{"expired", "Bearer " + expired, http.StatusUnauthorized},
		{"unknown role", "Bearer " + badRole, http.StatusUnauthorized},
		{"valid", "Bearer " + valid, http.StatusOK},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/protected", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)
			assert.Equal(t, tt.want, w.Code)
		})
	}
}

func TestRequireRole(t *testing.T) {
	r := newRouter(middleware.AuthMiddleware(testSecret), middleware.OwnerOnly(), echoActor)

	for role, want := range map[domain.UserRole]int{
		domain.RoleOwner: http.StatusOK,
		domain.RoleMitra: http.StatusForbidden,
	} {
		token, _, err := utils.GenerateJWT("u1", string(role), testSecret, time.Hour, "test")
		require.NoError(t, err)
		req := httptest.NewRequest(http.MethodGet, "/protected", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		assert.Equal(t, want, w.Code, string(role))
	}
}

func TestRateLimit(t *testing.T) {
	lim, err := middleware.NewIPLimiter("2-M")
	require.NoError(t, err)
	r := newRouter(middleware.RateLimit(lim), func(c *gin.Context) { c.Status(http.StatusOK) })

	codes := make([]int, 0, 3)
	for i := 0; i < 3; i++ {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/protected", nil))
		codes = append(codes, w.Code)
	}
	assert.Equal(t, []int{http.StatusOK, http.StatusOK, http.StatusTooManyRequests}, codes)

	_, err = middleware.NewIPLimiter("lots")
	assert.Error(t, err)
}
