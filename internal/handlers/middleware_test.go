package handlers

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"password_vault/internal/models"
	"password_vault/internal/service"

	"github.com/gin-gonic/gin"
)

// minimal router wiring only the middleware + a protected endpoint
func newMiddlewareOnlyRouter(s *service.Service) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	h := NewHandler(s, nil)
	r.GET("/secure", h.authMiddleware, func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": true, "userId": currentUser(c).ID})
	})
	r.GET("/admin", h.adminMiddleware, func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})
	return r
}

func TestAuthMiddleware_Errors(t *testing.T) {
	cases := []struct {
		name     string
		err      error
		wantCode int
		wantMsg  string
	}{
		{"unauthenticated", service.ErrUnauthenticated, http.StatusUnauthorized, service.ErrUnauthenticated.Error()},
		{"wrapped token error", errors.Join(service.ErrUnauthenticated, errors.New("token expired")), http.StatusUnauthorized, service.ErrUnauthenticated.Error()},
		{"store failure", errors.New("db down"), http.StatusInternalServerError, errInternal},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			access := &mockAccess{err: tc.err}
			r := newMiddlewareOnlyRouter(&service.Service{Access: access})

			w := do(t, r, http.MethodGet, "/secure", "", authHeader("x"))
			if w.Code != tc.wantCode {
				t.Fatalf("status=%d want %d", w.Code, tc.wantCode)
			}
			if got := errorMessage(t, w); got != tc.wantMsg {
				t.Fatalf("error=%q want %q", got, tc.wantMsg)
			}
			if tc.wantCode == http.StatusUnauthorized && w.Header().Get("WWW-Authenticate") != "Bearer" {
				t.Fatalf("expected WWW-Authenticate: Bearer header")
			}
		})
	}
}

func TestAuthMiddleware_PassesUserAndHeader(t *testing.T) {
	access := &mockAccess{user: &models.User{ID: 5, Username: "alice"}}
	r := newMiddlewareOnlyRouter(&service.Service{Access: access})

	w := do(t, r, http.MethodGet, "/secure", "", authHeader("abc"))
	if w.Code != http.StatusOK {
		t.Fatalf("status=%d body=%s", w.Code, w.Body.String())
	}
	if access.lastHeader != "Bearer abc" || access.lastRequireAdmin {
		t.Fatalf("unexpected guard call header=%q admin=%v", access.lastHeader, access.lastRequireAdmin)
	}
	var body map[string]any
	decode(t, w, &body)
	if int(body["userId"].(float64)) != 5 {
		t.Fatalf("expected userId 5, got %v", body["userId"])
	}
}

func TestAdminMiddleware(t *testing.T) {
	regular := &mockAccess{user: &models.User{ID: 5}}
	r := newMiddlewareOnlyRouter(&service.Service{Access: regular})
	if w := do(t, r, http.MethodGet, "/admin", "", authHeader("abc")); w.Code != http.StatusForbidden {
		t.Fatalf("expected 403 for regular user, got %d", w.Code)
	}
	if !regular.lastRequireAdmin {
		t.Fatalf("admin middleware must require admin")
	}

	admin := &mockAccess{user: &models.User{ID: 1, IsAdmin: true}}
	r = newMiddlewareOnlyRouter(&service.Service{Access: admin})
	if w := do(t, r, http.MethodGet, "/admin", "", authHeader("abc")); w.Code != http.StatusOK {
		t.Fatalf("expected 200 for admin, got %d", w.Code)
	}
}

func TestRequestLogger_RequestID(t *testing.T) {
	r := newTestRouter(&service.Service{})

	w := do(t, r, http.MethodGet, "/health", "", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("health status=%d", w.Code)
	}
	if w.Header().Get(requestIDHeader) == "" {
		t.Fatalf("expected generated request id")
	}

	hdr := http.Header{}
	hdr.Set(requestIDHeader, "rid-1")
	w = do(t, r, http.MethodGet, "/health", "", hdr)
	if got := w.Header().Get(requestIDHeader); got != "rid-1" {
		t.Fatalf("expected echoed request id, got %q", got)
	}
}

func TestCurrentUser_Missing(t *testing.T) {
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	if currentUser(c) != nil {
		t.Fatalf("expected nil user without guard")
	}
}
