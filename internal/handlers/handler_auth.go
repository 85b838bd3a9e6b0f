package handlers

import (
	"log/slog"
	"net/http"

	portssvc "github.com/velotrack/velotrack_backend/internal/core/ports/services"
	"github.com/velotrack/velotrack_backend/internal/dto"
	"github.com/velotrack/velotrack_backend/internal/middleware"

	"github.com/gin-gonic/gin"
)

// authHandler handles sign-in requests.
type authHandler struct {
	authService portssvc.AuthSvcFacade
	userService portssvc.UserReaderSvc
}

func newAuthHandler(as portssvc.AuthSvcFacade, us portssvc.UserReaderSvc) *authHandler {
	return &authHandler{authService: as, userService: us}
}

// registerAuthRoutes sets up the public sign-in routes on auth and the authenticated profile route on v1.
func registerAuthRoutes(auth *gin.RouterGroup, v1 *gin.RouterGroup, loginLimit gin.HandlerFunc, services *portssvc.ServiceContainer) {
	h := newAuthHandler(services.Auth, services.User)

	auth.POST("/login", loginLimit, h.login)
	auth.POST("/google", loginLimit, h.loginWithGoogle)

	v1.GET("/auth/me", h.me)
}

// login godoc
// @Summary User login
// @Description Authenticates an active account with username and password and returns a JWT token.
// @Tags auth
// @Accept json
// @Produce json
// @Param login body dto.LoginRequest true "Login Credentials"
// @Success 200 {object} dto.LoginResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 429 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /auth/login [post]
func (h *authHandler) login(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err, "request body")
		return
	}

	resp, err := h.authService.Login(c.Request.Context(), req)
	if err != nil {
		respondError(c, err, "Failed to sign in")
		return
	}

	middleware.GetLoggerFromCtx(c.Request.Context()).Info("User signed in", slog.String("user_id", resp.User.UserID))
	c.JSON(http.StatusOK, resp)
}

// loginWithGoogle godoc
// @Summary Google sign-in
// @Description Exchanges a Google authorization code or ID token for a JWT token. The Google email must belong to an existing active account.
// @Tags auth
// @Accept json
// @Produce json
// @Param login body dto.GoogleLoginRequest true "Authorization code or ID token"
// @Success 200 {object} dto.LoginResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 502 {object} dto.ErrorResponse "Google sign-in not configured or unreachable"
// @Router /auth/google [post]
func (h *authHandler) loginWithGoogle(c *gin.Context) {
	var req dto.GoogleLoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err, "request body")
		return
	}

	resp, err := h.authService.LoginWithGoogle(c.Request.Context(), req)
	if err != nil {
		respondError(c, err, "Failed to sign in with Google")
		return
	}

	middleware.GetLoggerFromCtx(c.Request.Context()).Info("User signed in with Google", slog.String("user_id", resp.User.UserID))
	c.JSON(http.StatusOK, resp)
}

// me godoc
// @Summary Current user
// @Description Returns the profile of the authenticated caller.
// @Tags auth
// @Produce json
// @Success 200 {object} dto.UserResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /auth/me [get]
func (h *authHandler) me(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}

	user, err := h.userService.GetUserByID(c.Request.Context(), actor.UserID)
	if err != nil {
		respondError(c, err, "Failed to retrieve user")
		return
	}
	c.JSON(http.StatusOK, dto.ToUserResponse(user))
}
