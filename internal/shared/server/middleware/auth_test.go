package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/avpaithankar2000-avp/metro-docs-hub13/internal/shared/auth"
)

type staticRoles map[string]string

func (s staticRoles) RoleByID(ctx context.Context, userID string) (string, error) {
	role, ok := s[userID]
	if !ok {
		return "", errors.New("not found")
	}
	return role, nil
}

type resolved struct {
	UserID string
	Role   string
}

func resolveWith(t *testing.T, allowHeaders bool, roles RoleLookup, mutate func(*http.Request)) resolved {
	t.Helper()
	gin.SetMode(gin.TestMode)

	var got resolved
	r := gin.New()
	r.Use(Auth(allowHeaders, roles))
	r.GET("/probe", func(c *gin.Context) {
		got = resolved{UserID: UserIDFromContext(c), Role: RoleFromContext(c)}
		c.Status(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/probe", nil)
	mutate(req)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("probe status = %d, anonymous requests must pass through", w.Code)
	}
	return got
}

func TestAuthAnonymousPassesThrough(t *testing.T) {
	got := resolveWith(t, false, nil, func(*http.Request) {})
	if got.UserID != "" || got.Role != "" {
		t.Fatalf("expected no identity, got %+v", got)
	}
}

func TestAuthBearerToken(t *testing.T) {
	os.Setenv("JWT_SECRET", "test-secret")
	defer os.Unsetenv("JWT_SECRET")

	token, err := auth.SignJWT(auth.Claims{Sub: "u-42", Email: "u@corp.test", Name: "U"})
	if err != nil {
		t.Fatalf("sign: %v", err)
	}

	roles := staticRoles{"u-42": RoleAdmin}
	got := resolveWith(t, false, roles, func(req *http.Request) {
		req.Header.Set("Authorization", "Bearer "+token)
	})
	if got.UserID != "u-42" {
		t.Fatalf("user id = %q", got.UserID)
	}
	if got.Role != RoleAdmin {
		t.Fatalf("role = %q, want admin from the role lookup", got.Role)
	}
}

func TestAuthBearerToken_UnknownUserDefaultsToEmployee(t *testing.T) {
	os.Setenv("JWT_SECRET", "test-secret")
	defer os.Unsetenv("JWT_SECRET")

	token, err := auth.SignJWT(auth.Claims{Sub: "u-99"})
	if err != nil {
		t.Fatalf("sign: %v", err)
	}

	got := resolveWith(t, false, staticRoles{}, func(req *http.Request) {
		req.Header.Set("Authorization", "Bearer "+token)
	})
	if got.Role != RoleEmployee {
		t.Fatalf("role = %q, want employee fallback", got.Role)
	}
}

func TestAuthInvalidTokenIsAnonymous(t *testing.T) {
	got := resolveWith(t, false, nil, func(req *http.Request) {
		req.Header.Set("Authorization", "Bearer not.a.token")
	})
	if got.UserID != "" {
		t.Fatalf("expected anonymous for invalid token, got %+v", got)
	}
}

func TestAuthDebugHeaders(t *testing.T) {
	got := resolveWith(t, true, nil, func(req *http.Request) {
		req.Header.Set("X-Debug-User", "tester")
		req.Header.Set("X-Debug-Role", RoleAdmin)
	})
	if got.UserID != "tester" || got.Role != RoleAdmin {
		t.Fatalf("got %+v", got)
	}
}

func TestAuthDebugHeadersDisabled(t *testing.T) {
	got := resolveWith(t, false, nil, func(req *http.Request) {
		req.Header.Set("X-Debug-User", "tester")
		req.Header.Set("X-Debug-Role", RoleAdmin)
	})
	if got.UserID != "" || got.Role != "" {
		t.Fatalf("debug headers must be ignored when disabled, got %+v", got)
	}
}

func TestAuthDebugHeadersRejectInvalidRole(t *testing.T) {
	got := resolveWith(t, true, nil, func(req *http.Request) {
		req.Header.Set("X-Debug-User", "tester")
		req.Header.Set("X-Debug-Role", "superuser")
	})
	if got.UserID != "" || got.Role != "" {
		t.Fatalf("invalid role must leave the request anonymous, got %+v", got)
	}
}
