package documents

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/avpaithankar2000-avp/metro-docs-hub13/internal/shared/server/middleware"
	"github.com/avpaithankar2000-avp/metro-docs-hub13/internal/shared/server/respond"
)

const maxUploadSize = 25 << 20 // 25MB

// Handler wires HTTP handlers to the service.
type Handler struct {
	Svc *Service
}

// NewHandler constructs a Handler.
func NewHandler(svc *Service) *Handler {
	return &Handler{Svc: svc}
}

// RegisterRoutes attaches document routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/upload", h.upload)
	rg.GET("/pending", h.pending)
	rg.POST("/:id/approve", h.approve)
	rg.POST("/:id/reject", h.reject)
	rg.GET("/approved/:userId", h.approvedFor)
}

func callerFromContext(c *gin.Context) Identity {
	return Identity{
		UserID: middleware.UserIDFromContext(c),
		Role:   middleware.RoleFromContext(c),
	}
}

func (h *Handler) upload(c *gin.Context) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxUploadSize)

	fileHeader, err := c.FormFile("file")
	if err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "file is required", nil)
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "unable to read file", nil)
		return
	}
	defer file.Close()

	title := c.PostForm("title")

	doc, err := h.Svc.Upload(c.Request.Context(), callerFromContext(c), title, fileHeader.Filename, file)
	if err != nil {
		h.respondError(c, err, "failed to upload document")
		return
	}

	c.Set("documentId", doc.ID)
	respond.JSON(c, http.StatusCreated, toUploadResponse(doc))
}

func (h *Handler) pending(c *gin.Context) {
	docs, err := h.Svc.Pending(c.Request.Context(), callerFromContext(c))
	if err != nil {
		h.respondError(c, err, "failed to list pending documents")
		return
	}
	respond.JSON(c, http.StatusOK, toResponses(docs))
}

type approveRequest struct {
	UserIDs []string `json:"userIds"`
}

func (h *Handler) approve(c *gin.Context) {
	docID := c.Param("id")

	var req approveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request body", nil)
		return
	}

	if err := h.Svc.Approve(c.Request.Context(), callerFromContext(c), docID, req.UserIDs); err != nil {
		h.respondError(c, err, "failed to approve document")
		return
	}

	c.Set("documentId", docID)
	respond.JSON(c, http.StatusOK, gin.H{"ok": true})
}

type rejectRequest struct {
	Reason string `json:"reason"`
}

func (h *Handler) reject(c *gin.Context) {
	docID := c.Param("id")

	var req rejectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request body", nil)
		return
	}

	if err := h.Svc.Reject(c.Request.Context(), callerFromContext(c), docID, req.Reason); err != nil {
		h.respondError(c, err, "failed to reject document")
		return
	}

	c.Set("documentId", docID)
	respond.JSON(c, http.StatusOK, gin.H{"ok": true})
}

func (h *Handler) approvedFor(c *gin.Context) {
	userID := c.Param("userId")

	docs, err := h.Svc.VisibleFor(c.Request.Context(), callerFromContext(c), userID)
	if err != nil {
		h.respondError(c, err, "failed to list documents")
		return
	}
	respond.JSON(c, http.StatusOK, toResponses(docs))
}

func (h *Handler) respondError(c *gin.Context, err error, fallback string) {
	switch {
	case errors.Is(err, ErrForbidden):
		respond.Error(c, http.StatusForbidden, "forbidden", "insufficient role", nil)
	case errors.Is(err, ErrInvalidInput):
		respond.Error(c, http.StatusBadRequest, "validation_error", err.Error(), nil)
	case errors.Is(err, ErrNotFound):
		respond.Error(c, http.StatusNotFound, "not_found", "document not found", nil)
	default:
		respond.Error(c, http.StatusInternalServerError, "internal_error", fallback, nil)
	}
}
