package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/avpaithankar2000-avp/metro-docs-hub13/internal/auth"
	"github.com/avpaithankar2000-avp/metro-docs-hub13/internal/documents"
	"github.com/avpaithankar2000-avp/metro-docs-hub13/internal/shared/config"
	"github.com/avpaithankar2000-avp/metro-docs-hub13/internal/shared/server/middleware"
	"github.com/avpaithankar2000-avp/metro-docs-hub13/internal/shared/server/respond"
	"github.com/avpaithankar2000-avp/metro-docs-hub13/internal/users"
)

// RouterDeps carries the wired handlers the router mounts.
type RouterDeps struct {
	Config           config.Config
	DocumentsHandler *documents.Handler
	UsersHandler     *users.Handler
	GoogleAuth       *auth.GoogleService
	Roles            middleware.RoleLookup

	// LocalFilesDir, when non-empty, is served under /files so locally
	// stored uploads resolve as public URLs.
	LocalFilesDir string
}

// NewRouter constructs the Gin engine with middleware and routes registered.
func NewRouter(deps RouterDeps) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()

	r.Use(
		middleware.RequestID(),
		middleware.Logging(),
		middleware.Recovery(),
		middleware.CORS(deps.Config.CORSAllowOrigin),
		middleware.Auth(deps.Config.AllowHeaderIdentity, deps.Roles),
	)

	root := r.Group("/")
	root.GET("/healthz", func(c *gin.Context) {
		respond.JSON(c, http.StatusOK, gin.H{"ok": true})
	})
	registerMeRoutes(root)
	if deps.GoogleAuth != nil {
		deps.GoogleAuth.RegisterRoutes(root)
	}
	deps.DocumentsHandler.RegisterRoutes(root)
	deps.UsersHandler.RegisterRoutes(root)

	if deps.LocalFilesDir != "" {
		r.Static("/files", deps.LocalFilesDir)
	}

	return r
}

// Addr normalizes the listen address.
func Addr(port string) string {
	if port == "" {
		return ":8080"
	}
	if port[0] == ':' {
		return port
	}
	return ":" + port
}
