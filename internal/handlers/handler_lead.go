package handlers

import (
	"log/slog"
	"net/http"

	portssvc "github.com/velotrack/velotrack_backend/internal/core/ports/services"
	"github.com/velotrack/velotrack_backend/internal/dto"
	"github.com/velotrack/velotrack_backend/internal/middleware"

	"github.com/gin-gonic/gin"
)

// leadHandler handles HTTP requests related to leads.
type leadHandler struct {
	leadService      portssvc.LeadSvcFacade
	converterService portssvc.LeadConverterSvc
}

func newLeadHandler(ls portssvc.LeadSvcFacade, cs portssvc.LeadConverterSvc) *leadHandler {
	return &leadHandler{leadService: ls, converterService: cs}
}

// registerLeadRoutes registers all lead routes. Partner scoping is enforced by the service.
func registerLeadRoutes(rg *gin.RouterGroup, ls portssvc.LeadSvcFacade, cs portssvc.LeadConverterSvc) {
	h := newLeadHandler(ls, cs)

	leads := rg.Group("/leads")
	{
		leads.GET("", h.listLeads)
		leads.POST("", h.createLead)
		leads.GET("/:id", h.getLead)
		leads.PUT("/:id", h.updateLead)
		leads.DELETE("/:id", h.deleteLead)
		leads.PATCH("/:id/status", h.changeStatus)
		leads.POST("/:id/notes", h.addNote)
		leads.POST("/:id/convert", h.convertLead)
	}
}

// createLead godoc
// @Summary Create a lead
// @Description Creates a PENDING lead. Partners always create leads attributed to themselves.
// @Tags leads
// @Accept json
// @Produce json
// @Param lead body dto.CreateLeadRequest true "Lead details"
// @Success 201 {object} domain.Lead
// @Failure 400 {object} dto.ErrorResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse "Partner not found"
// @Security BearerAuth
// @Router /leads [post]
func (h *leadHandler) createLead(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}
	var req dto.CreateLeadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err, "request body")
		return
	}

	lead, err := h.leadService.CreateLead(c.Request.Context(), actor, req)
	if err != nil {
		respondError(c, err, "Failed to create lead")
		return
	}

	middleware.GetLoggerFromCtx(c.Request.Context()).Info("Lead created", slog.String("lead_id", lead.LeadID))
	c.JSON(http.StatusCreated, lead)
}

// listLeads godoc
// @Summary List leads
// @Description Lists leads newest first, optionally filtered by status, partner or a name/contact search.
// @Tags leads
// @Produce json
// @Param status query string false "PENDING, DEAL or CANCEL"
// @Param mitraID query string false "Partner ID"
// @Param q query string false "Search"
// @Param limit query int false "Page size" default(50)
// @Param offset query int false "Offset" default(0)
// @Success 200 {object} dto.ListLeadsResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 401 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /leads [get]
func (h *leadHandler) listLeads(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}
	var params dto.ListLeadsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		respondBindError(c, err, "query parameters")
		return
	}

	leads, err := h.leadService.ListLeads(c.Request.Context(), actor, params.ToFilter())
	if err != nil {
		respondError(c, err, "Failed to list leads")
		return
	}
	c.JSON(http.StatusOK, dto.ListLeadsResponse{Leads: leads})
}

// getLead godoc
// @Summary Get a lead
// @Description Returns the lead with its notes, audit history, partner and converted project.
// @Tags leads
// @Produce json
// @Param id path string true "Lead ID"
// @Success 200 {object} domain.LeadDetail
// @Failure 401 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /leads/{id} [get]
func (h *leadHandler) getLead(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}
	leadID := c.Param("id")

	detail, err := h.leadService.GetLeadDetail(c.Request.Context(), actor, leadID)
	if err != nil {
		respondError(c, err, "Failed to retrieve lead")
		return
	}
	if detail == nil {
		respondNotFound(c, "Lead", leadID)
		return
	}
	c.JSON(http.StatusOK, detail)
}

// updateLead godoc
// @Summary Update a lead
// @Description Updates the name, contact, source or partner of a lead that is not DEAL.
// @Tags leads
// @Accept json
// @Produce json
// @Param id path string true "Lead ID"
// @Param lead body dto.UpdateLeadRequest true "Fields to update"
// @Success 200 {object} domain.Lead
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 409 {object} dto.ErrorResponse "Lead is locked"
// @Security BearerAuth
// @Router /leads/{id} [put]
func (h *leadHandler) updateLead(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}
	var req dto.UpdateLeadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err, "request body")
		return
	}

	lead, err := h.leadService.UpdateLead(c.Request.Context(), actor, c.Param("id"), req)
	if err != nil {
		respondError(c, err, "Failed to update lead")
		return
	}
	c.JSON(http.StatusOK, lead)
}

// deleteLead godoc
// @Summary Delete a lead
// @Description Deletes a lead and its notes. Converted leads cannot be deleted.
// @Tags leads
// @Param id path string true "Lead ID"
// @Success 204 "No Content"
// @Failure 403 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 409 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /leads/{id} [delete]
func (h *leadHandler) deleteLead(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}
	leadID := c.Param("id")

	if err := h.leadService.DeleteLead(c.Request.Context(), actor, leadID); err != nil {
		respondError(c, err, "Failed to delete lead")
		return
	}

	middleware.GetLoggerFromCtx(c.Request.Context()).Info("Lead deleted", slog.String("lead_id", leadID))
	c.Status(http.StatusNoContent)
}

// changeStatus godoc
// @Summary Change lead status
// @Description Moves a lead to PENDING, DEAL or CANCEL. Cancelling requires a reason, which is kept as a note. DEAL is final.
// @Tags leads
// @Accept json
// @Produce json
// @Param id path string true "Lead ID"
// @Param status body dto.ChangeLeadStatusRequest true "New status"
// @Success 200 {object} domain.Lead
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 409 {object} dto.ErrorResponse "Lead is locked"
// @Security BearerAuth
// @Router /leads/{id}/status [patch]
func (h *leadHandler) changeStatus(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}
	var req dto.ChangeLeadStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err, "request body")
		return
	}

	lead, err := h.leadService.ChangeStatus(c.Request.Context(), actor, c.Param("id"), req.Status, req.Reason)
	if err != nil {
		respondError(c, err, "Failed to change lead status")
		return
	}
	c.JSON(http.StatusOK, lead)
}

// addNote godoc
// @Summary Add a lead note
// @Tags leads
// @Accept json
// @Produce json
// @Param id path string true "Lead ID"
// @Param note body dto.AddNoteRequest true "Note"
// @Success 201 {object} domain.Note
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /leads/{id}/notes [post]
func (h *leadHandler) addNote(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}
	var req dto.AddNoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err, "request body")
		return
	}

	note, err := h.leadService.AddNote(c.Request.Context(), actor, c.Param("id"), req.Content)
	if err != nil {
		respondError(c, err, "Failed to add note")
		return
	}
	c.JSON(http.StatusCreated, note)
}

// convertLead godoc
// @Summary Convert a lead to a project
// @Description Marks the lead DEAL and creates its project in one transaction. A lead converts at most once.
// @Tags leads
// @Accept json
// @Produce json
// @Param id path string true "Lead ID"
// @Param project body dto.ConvertLeadRequest true "Project details"
// @Success 201 {object} domain.Project
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 409 {object} dto.ErrorResponse "Lead cancelled or already converted"
// @Security BearerAuth
// @Router /leads/{id}/convert [post]
func (h *leadHandler) convertLead(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}
	var req dto.ConvertLeadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err, "request body")
		return
	}
	leadID := c.Param("id")

	project, err := h.converterService.ConvertLead(c.Request.Context(), actor, leadID, req)
	if err != nil {
		respondError(c, err, "Failed to convert lead")
		return
	}

	middleware.GetLoggerFromCtx(c.Request.Context()).Info("Lead converted",
		slog.String("lead_id", leadID), slog.String("project_id", project.ProjectID))
	c.JSON(http.StatusCreated, project)
}
