package handlers

import (
	"log/slog"
	"net/http"

	"github.com/velotrack/velotrack_backend/internal/core/domain"
	portssvc "github.com/velotrack/velotrack_backend/internal/core/ports/services"
	"github.com/velotrack/velotrack_backend/internal/dto"
	"github.com/velotrack/velotrack_backend/internal/middleware"

	"github.com/gin-gonic/gin"
)

// userHandler handles HTTP requests related to partner accounts and the caller's own account.
type userHandler struct {
	userService portssvc.UserSvcFacade
}

// newUserHandler creates a new userHandler.
func newUserHandler(us portssvc.UserSvcFacade) *userHandler {
	return &userHandler{
		userService: us,
	}
}

// registerUserRoutes registers partner management (owner only) and self-service routes.
func registerUserRoutes(rg *gin.RouterGroup, userService portssvc.UserSvcFacade) {
	h := newUserHandler(userService)

	mitras := rg.Group("/mitras", middleware.OwnerOnly())
	{
		mitras.GET("", h.listMitras)
		mitras.POST("", h.createMitra)
		mitras.GET("/:id", h.getMitra)
		mitras.PUT("/:id", h.updateMitra)
		mitras.PATCH("/:id/active", h.setMitraActive)
	}

	rg.PUT("/users/me/password", h.changePassword)
}

// createMitra godoc
// @Summary Create a partner
// @Description Registers a MITRA account that can sign in with the given username and password.
// @Tags users
// @Accept  json
// @Produce  json
// @Param   mitra body dto.CreateMitraRequest true "Partner details"
// @Success 201 {object} dto.UserResponse
// @Failure 400 {object} dto.ErrorResponse "Invalid input"
// @Failure 403 {object} dto.ErrorResponse
// @Failure 409 {object} dto.ErrorResponse "Username or email already taken"
// @Security BearerAuth
// @Router /mitras [post]
func (h *userHandler) createMitra(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}
	var req dto.CreateMitraRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err, "request body")
		return
	}

	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	logger.Info("Received request to create partner", slog.String("username", req.Username))

	created, err := h.userService.CreateMitra(c.Request.Context(), actor, req)
	if err != nil {
		respondError(c, err, "Failed to create partner")
		return
	}

	logger.Info("Partner created successfully", slog.String("new_user_id", created.UserID))
	c.JSON(http.StatusCreated, dto.ToUserResponse(created))
}

// listMitras godoc
// @Summary List partners
// @Tags users
// @Produce  json
// @Param   activeOnly query bool false "Only active partners"
// @Param   limit query int false "Page size" default(50)
// @Param   offset query int false "Offset" default(0)
// @Success 200 {object} dto.ListUsersResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 403 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /mitras [get]
func (h *userHandler) listMitras(c *gin.Context) {
	var params dto.ListMitrasParams
	if err := c.ShouldBindQuery(&params); err != nil {
		respondBindError(c, err, "query parameters")
		return
	}

	users, err := h.userService.ListMitras(c.Request.Context(), params.ActiveOnly, params.Limit, params.Offset)
	if err != nil {
		respondError(c, err, "Failed to list partners")
		return
	}
	c.JSON(http.StatusOK, dto.ListUsersResponse{Users: dto.ToListUserResponse(users)})
}

// getMitra godoc
// @Summary Get a partner
// @Tags users
// @Produce  json
// @Param   id path string true "User ID"
// @Success 200 {object} dto.UserResponse
// @Failure 403 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /mitras/{id} [get]
func (h *userHandler) getMitra(c *gin.Context) {
	userID := c.Param("id")
	user, err := h.userService.GetUserByID(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err, "Failed to retrieve partner")
		return
	}
	if user.Role != domain.RoleMitra {
		respondNotFound(c, "Partner", userID)
		return
	}
	c.JSON(http.StatusOK, dto.ToUserResponse(user))
}

// updateMitra godoc
// @Summary Update a partner
// @Description Updates the provided profile and bank fields of a partner.
// @Tags users
// @Accept  json
// @Produce  json
// @Param   id path string true "User ID"
// @Param   mitra body dto.UpdateMitraRequest true "Fields to update"
// @Success 200 {object} dto.UserResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 409 {object} dto.ErrorResponse "Email already taken"
// @Security BearerAuth
// @Router /mitras/{id} [put]
func (h *userHandler) updateMitra(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}
	var req dto.UpdateMitraRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err, "request body")
		return
	}

	updated, err := h.userService.UpdateMitra(c.Request.Context(), actor, c.Param("id"), req)
	if err != nil {
		respondError(c, err, "Failed to update partner")
		return
	}
	c.JSON(http.StatusOK, dto.ToUserResponse(updated))
}

// setMitraActive godoc
// @Summary Activate or deactivate a partner
// @Description Inactive partners cannot sign in and cannot be assigned to leads or projects.
// @Tags users
// @Accept  json
// @Produce  json
// @Param   id path string true "User ID"
// @Param   active body dto.SetActiveRequest true "Active flag"
// @Success 200 {object} dto.UserResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /mitras/{id}/active [patch]
func (h *userHandler) setMitraActive(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}
	var req dto.SetActiveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err, "request body")
		return
	}

	updated, err := h.userService.SetMitraActive(c.Request.Context(), actor, c.Param("id"), *req.IsActive)
	if err != nil {
		respondError(c, err, "Failed to change partner status")
		return
	}
	c.JSON(http.StatusOK, dto.ToUserResponse(updated))
}

// changePassword godoc
// @Summary Change own password
// @Tags users
// @Accept  json
// @Produce  json
// @Param   password body dto.ChangePasswordRequest true "Current and new password"
// @Success 200 {object} dto.MessageResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 401 {object} dto.ErrorResponse "Current password is wrong"
// @Security BearerAuth
// @Router /users/me/password [put]
func (h *userHandler) changePassword(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}
	var req dto.ChangePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err, "request body")
		return
	}

	if err := h.userService.ChangePassword(c.Request.Context(), actor, req); err != nil {
		respondError(c, err, "Failed to change password")
		return
	}
	c.JSON(http.StatusOK, dto.MessageResponse{Message: "Password updated"})
}
