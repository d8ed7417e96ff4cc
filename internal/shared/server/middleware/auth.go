package middleware

import (
	"context"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/avpaithankar2000-avp/metro-docs-hub13/internal/shared/auth"
	"github.com/avpaithankar2000-avp/metro-docs-hub13/internal/shared/telemetry"
)

const (
	userIDKey    = "userId"
	userEmailKey = "userEmail"
	userNameKey  = "userName"
	userRoleKey  = "userRole"

	// RoleAdmin and RoleEmployee are the only roles a user can hold.
	RoleAdmin    = "admin"
	RoleEmployee = "employee"
)

// RoleLookup resolves the stored role for a user id.
type RoleLookup interface {
	RoleByID(ctx context.Context, userID string) (string, error)
}

// Auth resolves the caller's identity and stores it in the gin context.
//
// Resolution failure is not fatal: requests without a resolvable identity
// proceed anonymously and handlers reject privileged operations themselves.
// The header-based fixture path (X-Debug-User / X-Debug-Role) exists for
// local and offline testing only and must stay disabled in production, since
// any caller able to set headers could otherwise claim the admin role.
func Auth(allowHeaderIdentity bool, roles RoleLookup) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := strings.TrimSpace(c.GetHeader("Authorization"))

		if strings.HasPrefix(authHeader, "Bearer ") {
			token := strings.TrimSpace(strings.TrimPrefix(authHeader, "Bearer"))
			if token != "" {
				claims, err := auth.VerifyJWT(token)
				if err == nil {
					c.Set(userIDKey, claims.Sub)
					if claims.Email != "" {
						c.Set(userEmailKey, claims.Email)
					}
					if claims.Name != "" {
						c.Set(userNameKey, claims.Name)
					}
					c.Set(userRoleKey, lookupRole(c.Request.Context(), roles, claims.Sub))
					c.Next()
					return
				}
				telemetry.Error("auth.token_rejected", map[string]any{
					"request_id": RequestIDFromContext(c),
					"error":      err.Error(),
				})
			}
		}

		if allowHeaderIdentity {
			debugUser := strings.TrimSpace(c.GetHeader("X-Debug-User"))
			debugRole := strings.TrimSpace(c.GetHeader("X-Debug-Role"))
			if debugUser != "" && validRole(debugRole) {
				c.Set(userIDKey, debugUser)
				c.Set(userRoleKey, debugRole)
				c.Next()
				return
			}
		}

		// Anonymous: no identity keys set.
		c.Next()
	}
}

func lookupRole(ctx context.Context, roles RoleLookup, userID string) string {
	if roles == nil {
		return RoleEmployee
	}
	role, err := roles.RoleByID(ctx, userID)
	if err != nil || !validRole(role) {
		return RoleEmployee
	}
	return role
}

func validRole(role string) bool {
	return role == RoleAdmin || role == RoleEmployee
}

// UserIDFromContext fetches the user ID set by the auth middleware.
func UserIDFromContext(c *gin.Context) string {
	if c == nil {
		return ""
	}
	val, _ := c.Get(userIDKey)
	if id, ok := val.(string); ok {
		return id
	}
	return ""
}

// UserEmailFromContext fetches the user email set by the auth middleware.
func UserEmailFromContext(c *gin.Context) string {
	if c == nil {
		return ""
	}
	val, _ := c.Get(userEmailKey)
	if email, ok := val.(string); ok {
		return email
	}
	return ""
}

// UserNameFromContext fetches the user name set by the auth middleware.
func UserNameFromContext(c *gin.Context) string {
	if c == nil {
		return ""
	}
	val, _ := c.Get(userNameKey)
	if name, ok := val.(string); ok {
		return name
	}
	return ""
}

// RoleFromContext fetches the role set by the auth middleware.
func RoleFromContext(c *gin.Context) string {
	if c == nil {
		return ""
	}
	val, _ := c.Get(userRoleKey)
	if role, ok := val.(string); ok {
		return role
	}
	return ""
}

// HasIdentity reports whether the request resolved to a known identity.
func HasIdentity(c *gin.Context) bool {
	return UserIDFromContext(c) != ""
}

// IsAdmin reports whether the resolved identity holds the admin role.
func IsAdmin(c *gin.Context) bool {
	return RoleFromContext(c) == RoleAdmin
}
