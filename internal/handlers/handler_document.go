package handlers

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"github.com/velotrack/velotrack_backend/internal/apperrors"
	"github.com/velotrack/velotrack_backend/internal/core/domain"
	portssvc "github.com/velotrack/velotrack_backend/internal/core/ports/services"
	"github.com/velotrack/velotrack_backend/internal/dto"
	"github.com/velotrack/velotrack_backend/internal/middleware"

	"github.com/gin-gonic/gin"
)

// documentHandler handles document generation and WhatsApp delivery.
type documentHandler struct {
	documentService     portssvc.DocumentSvcFacade
	notificationService portssvc.NotificationSvcFacade
}

func newDocumentHandler(ds portssvc.DocumentSvcFacade, ns portssvc.NotificationSvcFacade) *documentHandler {
	return &documentHandler{documentService: ds, notificationService: ns}
}

// registerDocumentRoutes registers document and notification routes on an owner-only group.
func registerDocumentRoutes(rg *gin.RouterGroup, ds portssvc.DocumentSvcFacade, ns portssvc.NotificationSvcFacade) {
	h := newDocumentHandler(ds, ns)

	documents := rg.Group("/documents")
	{
		documents.GET("", h.listDocuments)
		documents.POST("", h.generateDocument)
		documents.GET("/:id", h.getDocument)
		documents.GET("/:id/pdf", h.downloadPDF)
		documents.POST("/:id/send", h.sendDocument)
	}

	rg.POST("/notifications/whatsapp", h.sendWhatsApp)
}

// generateDocument godoc
// @Summary Generate a document
// @Description Assigns the next {PREFIX}/{YEAR}/{NNN} number, stores the record, then renders and uploads the PDF.
// @Description When rendering or upload fails the numbered record is kept and returned with status 502.
// @Tags documents
// @Accept json
// @Produce json
// @Param document body dto.GenerateDocumentRequest true "Document inputs"
// @Success 201 {object} dto.GenerateDocumentResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse "Lead, project or partner not found"
// @Failure 502 {object} dto.GenerateDocumentResponse "Stored, but the PDF could not be produced"
// @Security BearerAuth
// @Router /documents [post]
func (h *documentHandler) generateDocument(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}
	var req dto.GenerateDocumentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err, "request body")
		return
	}
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	doc, err := h.documentService.GenerateDocument(c.Request.Context(), actor, req.ToDomain())
	if err != nil {
		if doc != nil && errors.Is(err, apperrors.ErrExternalService) {
			logger.Error("Document stored without file",
				slog.String("document_id", doc.DocumentID), slog.String("error", err.Error()))
			c.JSON(http.StatusBadGateway, dto.GenerateDocumentResponse{Document: *doc, Error: apperrors.UserMessage(err)})
			return
		}
		respondError(c, err, "Failed to generate document")
		return
	}

	logger.Info("Document generated", slog.String("document_id", doc.DocumentID), slog.String("number", doc.Number))
	c.JSON(http.StatusCreated, dto.GenerateDocumentResponse{Document: *doc})
}

// listDocuments godoc
// @Summary List documents
// @Tags documents
// @Produce json
// @Param type query string false "PROPOSAL, INVOICE_DP, INVOICE_FINAL or AGREEMENT"
// @Param projectID query string false "Project ID"
// @Param leadID query string false "Lead ID"
// @Param limit query int false "Page size" default(50)
// @Param offset query int false "Offset" default(0)
// @Success 200 {object} dto.ListDocumentsResponse
// @Failure 400 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /documents [get]
func (h *documentHandler) listDocuments(c *gin.Context) {
	var params dto.ListDocumentsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		respondBindError(c, err, "query parameters")
		return
	}
	docs, err := h.documentService.ListDocuments(c.Request.Context(), params.ToFilter())
	if err != nil {
		respondError(c, err, "Failed to list documents")
		return
	}
	c.JSON(http.StatusOK, dto.ListDocumentsResponse{Documents: docs})
}

// getDocument godoc
// @Summary Get a document
// @Tags documents
// @Produce json
// @Param id path string true "Document ID"
// @Success 200 {object} domain.Document
// @Failure 404 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /documents/{id} [get]
func (h *documentHandler) getDocument(c *gin.Context) {
	doc, err := h.documentService.GetDocument(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err, "Failed to retrieve document")
		return
	}
	c.JSON(http.StatusOK, doc)
}

// downloadPDF godoc
// @Summary Render a document PDF
// @Description Renders the PDF of a stored document on demand.
// @Tags documents
// @Produce application/pdf
// @Param id path string true "Document ID"
// @Success 200 {file} file
// @Failure 404 {object} dto.ErrorResponse
// @Failure 502 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /documents/{id}/pdf [get]
func (h *documentHandler) downloadPDF(c *gin.Context) {
	documentID := c.Param("id")
	var buf bytes.Buffer
	if err := h.documentService.RenderDocument(c.Request.Context(), documentID, &buf); err != nil {
		respondError(c, err, "Failed to render document")
		return
	}
	c.Header("Content-Disposition", fmt.Sprintf("inline; filename=%q", "document-"+documentID+".pdf"))
	c.Data(http.StatusOK, "application/pdf", buf.Bytes())
}

// sendDocument godoc
// @Summary Send a document over WhatsApp
// @Description Sends the stored PDF link to the recipient phone, or to the phone in the body. The outcome is recorded on the document.
// @Tags documents
// @Accept json
// @Produce json
// @Param id path string true "Document ID"
// @Param send body dto.SendDocumentRequest false "Overrides"
// @Success 200 {object} domain.SendResult
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 409 {object} dto.ErrorResponse "Document has no file"
// @Failure 502 {object} domain.SendResult "Delivery rejected"
// @Security BearerAuth
// @Router /documents/{id}/send [post]
func (h *documentHandler) sendDocument(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}
	var req dto.SendDocumentRequest
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		respondBindError(c, err, "request body")
		return
	}

	result, err := h.notificationService.SendDocument(c.Request.Context(), actor, c.Param("id"), req)
	if err != nil {
		respondError(c, err, "Failed to send document")
		return
	}
	respondSendResult(c, result)
}

// sendWhatsApp godoc
// @Summary Send a WhatsApp message
// @Tags notifications
// @Accept json
// @Produce json
// @Param message body dto.SendWhatsAppRequest true "Message"
// @Success 200 {object} domain.SendResult
// @Failure 400 {object} dto.ErrorResponse
// @Failure 502 {object} domain.SendResult "Delivery rejected"
// @Security BearerAuth
// @Router /notifications/whatsapp [post]
func (h *documentHandler) sendWhatsApp(c *gin.Context) {
	var req dto.SendWhatsAppRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err, "request body")
		return
	}
	respondSendResult(c, h.notificationService.SendMessage(c.Request.Context(), req.Phone, req.Message))
}

func respondSendResult(c *gin.Context, result domain.SendResult) {
	if !result.Success {
		middleware.GetLoggerFromCtx(c.Request.Context()).Warn("WhatsApp delivery failed", slog.String("reason", result.Message))
		c.JSON(http.StatusBadGateway, result)
		return
	}
	c.JSON(http.StatusOK, result)
}
