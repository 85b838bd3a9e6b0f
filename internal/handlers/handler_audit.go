package handlers

import (
	"net/http"

	"github.com/velotrack/velotrack_backend/internal/core/domain"
	portssvc "github.com/velotrack/velotrack_backend/internal/core/ports/services"
	"github.com/velotrack/velotrack_backend/internal/dto"

	"github.com/gin-gonic/gin"
)

type auditHandler struct {
	auditService portssvc.AuditSvcFacade
}

// registerAuditRoutes registers the audit log route on an owner-only group.
func registerAuditRoutes(rg *gin.RouterGroup, as portssvc.AuditSvcFacade) {
	h := &auditHandler{auditService: as}
	rg.GET("/audit-logs", h.listAuditLogs)
}

// listAuditLogs godoc
// @Summary Audit log
// @Description Lists audit entries newest first. Pass nextToken from the previous page to continue.
// @Tags audit
// @Produce json
// @Param entityType query string false "LEAD, PROJECT, USER, INCOME, EXPENSE, DOCUMENT or SETTINGS"
// @Param entityID query string false "Entity ID"
// @Param limit query int false "Page size" default(50)
// @Param nextToken query string false "Cursor"
// @Success 200 {object} dto.ListAuditLogsResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 403 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /audit-logs [get]
func (h *auditHandler) listAuditLogs(c *gin.Context) {
	var params dto.ListAuditLogsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		respondBindError(c, err, "query parameters")
		return
	}

	logs, next, err := h.auditService.ListAuditLogs(c.Request.Context(), domain.AuditFilter{
		EntityType: params.EntityType,
		EntityID:   params.EntityID,
		Limit:      params.Limit,
		NextToken:  params.NextToken,
	})
	if err != nil {
		respondError(c, err, "Failed to list audit logs")
		return
	}
	c.JSON(http.StatusOK, dto.ListAuditLogsResponse{AuditLogs: logs, NextToken: next})
}
