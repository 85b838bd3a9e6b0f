package handlers

import (
	"log/slog"
	"net/http"
	"time"

	portssvc "github.com/velotrack/velotrack_backend/internal/core/ports/services"
	"github.com/velotrack/velotrack_backend/internal/dto"
	"github.com/velotrack/velotrack_backend/internal/middleware"

	"github.com/gin-gonic/gin"
)

// projectHandler handles HTTP requests related to projects.
type projectHandler struct {
	projectService portssvc.ProjectSvcFacade
}

func newProjectHandler(ps portssvc.ProjectSvcFacade) *projectHandler {
	return &projectHandler{projectService: ps}
}

// registerProjectRoutes registers all project routes. Creation and reassignment are owner-only.
func registerProjectRoutes(rg *gin.RouterGroup, ps portssvc.ProjectSvcFacade) {
	h := newProjectHandler(ps)
	ownerOnly := middleware.OwnerOnly()

	projects := rg.Group("/projects")
	{
		projects.GET("", h.listProjects)
		projects.POST("", ownerOnly, h.createProject)
		projects.GET("/:id", h.getProject)
		projects.PATCH("/:id/status", h.updateStatus)
		projects.PATCH("/:id/pic", ownerOnly, h.updatePic)
		projects.PATCH("/:id/deadline", ownerOnly, h.updateDeadline)
		projects.POST("/:id/notes", h.addNote)
	}
}

// createProject godoc
// @Summary Create a project
// @Description Creates a project without a lead. The deadline defaults to one month from today.
// @Tags projects
// @Accept json
// @Produce json
// @Param project body dto.CreateProjectRequest true "Project details"
// @Success 201 {object} domain.Project
// @Failure 400 {object} dto.ErrorResponse
// @Failure 403 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse "PIC not found"
// @Security BearerAuth
// @Router /projects [post]
func (h *projectHandler) createProject(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}
	var req dto.CreateProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err, "request body")
		return
	}

	project, err := h.projectService.CreateProject(c.Request.Context(), actor, req)
	if err != nil {
		respondError(c, err, "Failed to create project")
		return
	}

	middleware.GetLoggerFromCtx(c.Request.Context()).Info("Project created", slog.String("project_id", project.ProjectID))
	c.JSON(http.StatusCreated, project)
}

// listProjects godoc
// @Summary List projects
// @Description Lists projects by nearest deadline. The status filter matches the displayed status, so OVERDUE selects late unfinished projects.
// @Tags projects
// @Produce json
// @Param status query string false "TODO, ON_PROGRESS, DONE or OVERDUE"
// @Param picID query string false "PIC user ID"
// @Param q query string false "Search"
// @Param limit query int false "Page size" default(50)
// @Param offset query int false "Offset" default(0)
// @Success 200 {object} dto.ListProjectsResponse
// @Failure 400 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /projects [get]
func (h *projectHandler) listProjects(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}
	var params dto.ListProjectsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		respondBindError(c, err, "query parameters")
		return
	}

	projects, err := h.projectService.ListProjects(c.Request.Context(), actor, params.ToFilter(time.Time{}))
	if err != nil {
		respondError(c, err, "Failed to list projects")
		return
	}
	c.JSON(http.StatusOK, dto.ListProjectsResponse{Projects: projects})
}

// getProject godoc
// @Summary Get a project
// @Description Returns the project with its displayed status, PIC, notes, audit history and finance totals.
// @Tags projects
// @Produce json
// @Param id path string true "Project ID"
// @Success 200 {object} domain.ProjectDetail
// @Failure 404 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /projects/{id} [get]
func (h *projectHandler) getProject(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}
	projectID := c.Param("id")

	detail, err := h.projectService.GetProjectDetail(c.Request.Context(), actor, projectID)
	if err != nil {
		respondError(c, err, "Failed to retrieve project")
		return
	}
	if detail == nil {
		respondNotFound(c, "Project", projectID)
		return
	}
	c.JSON(http.StatusOK, detail)
}

// updateStatus godoc
// @Summary Change project status
// @Description Sets TODO, ON_PROGRESS or DONE. DONE projects are locked.
// @Tags projects
// @Accept json
// @Produce json
// @Param id path string true "Project ID"
// @Param status body dto.UpdateProjectStatusRequest true "New status"
// @Success 200 {object} domain.Project
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 409 {object} dto.ErrorResponse "Project is DONE"
// @Security BearerAuth
// @Router /projects/{id}/status [patch]
func (h *projectHandler) updateStatus(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}
	var req dto.UpdateProjectStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err, "request body")
		return
	}

	project, err := h.projectService.UpdateStatus(c.Request.Context(), actor, c.Param("id"), req.Status)
	if err != nil {
		respondError(c, err, "Failed to update project status")
		return
	}
	c.JSON(http.StatusOK, project)
}

// updatePic godoc
// @Summary Reassign a project
// @Description Sets the PIC to an active partner, or to nobody (the owner) when picID is null.
// @Tags projects
// @Accept json
// @Produce json
// @Param id path string true "Project ID"
// @Param pic body dto.UpdateProjectPicRequest true "New PIC"
// @Success 200 {object} domain.Project
// @Failure 403 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 409 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /projects/{id}/pic [patch]
func (h *projectHandler) updatePic(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}
	var req dto.UpdateProjectPicRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err, "request body")
		return
	}

	project, err := h.projectService.UpdatePic(c.Request.Context(), actor, c.Param("id"), req.PicID)
	if err != nil {
		respondError(c, err, "Failed to update project PIC")
		return
	}
	c.JSON(http.StatusOK, project)
}

// updateDeadline godoc
// @Summary Move a project deadline
// @Tags projects
// @Accept json
// @Produce json
// @Param id path string true "Project ID"
// @Param deadline body dto.UpdateProjectDeadlineRequest true "New deadline"
// @Success 200 {object} domain.Project
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 409 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /projects/{id}/deadline [patch]
func (h *projectHandler) updateDeadline(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}
	var req dto.UpdateProjectDeadlineRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err, "request body")
		return
	}
	deadline, err := dto.ParseDate(req.Deadline, dateLocation)
	if err != nil {
		respondError(c, err, "Invalid deadline")
		return
	}

	project, err := h.projectService.UpdateDeadline(c.Request.Context(), actor, c.Param("id"), deadline)
	if err != nil {
		respondError(c, err, "Failed to update project deadline")
		return
	}
	c.JSON(http.StatusOK, project)
}

// addNote godoc
// @Summary Add a project note
// @Tags projects
// @Accept json
// @Produce json
// @Param id path string true "Project ID"
// @Param note body dto.AddNoteRequest true "Note"
// @Success 201 {object} domain.Note
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /projects/{id}/notes [post]
func (h *projectHandler) addNote(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}
	var req dto.AddNoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err, "request body")
		return
	}

	note, err := h.projectService.AddNote(c.Request.Context(), actor, c.Param("id"), req.Content)
	if err != nil {
		respondError(c, err, "Failed to add note")
		return
	}
	c.JSON(http.StatusCreated, note)
}
