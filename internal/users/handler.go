package users

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/avpaithankar2000-avp/metro-docs-hub13/internal/shared/server/middleware"
	"github.com/avpaithankar2000-avp/metro-docs-hub13/internal/shared/server/respond"
)

// Handler wires HTTP handlers to the service.
type Handler struct {
	Svc *Service
}

// NewHandler constructs a Handler.
func NewHandler(svc *Service) *Handler {
	return &Handler{Svc: svc}
}

// RegisterRoutes attaches user routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/users", h.list)
}

// list returns all known users so an admin can build assignment lists.
func (h *Handler) list(c *gin.Context) {
	if !middleware.IsAdmin(c) {
		respond.Error(c, http.StatusForbidden, "forbidden", "admin role required", nil)
		return
	}

	all, err := h.Svc.List(c.Request.Context())
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to list users", nil)
		return
	}

	resp := make([]gin.H, 0, len(all))
	for _, user := range all {
		resp = append(resp, gin.H{
			"id":       user.ID,
			"email":    user.Email,
			"fullName": user.FullName,
			"role":     user.Role,
		})
	}
	respond.JSON(c, http.StatusOK, resp)
}
