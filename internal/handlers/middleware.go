package handlers

import (
	"net/http"
	"time"

	"password_vault/internal/models"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	requestIDHeader = "X-Request-ID"
	ctxUserKey      = "user"
	ctxRequestIDKey = "request_id"
)

// authMiddleware admits any authenticated user.
func (h *Handler) authMiddleware(c *gin.Context) {
	h.guard(c, false)
}

// adminMiddleware admits only users whose stored record is admin.
func (h *Handler) adminMiddleware(c *gin.Context) {
	h.guard(c, true)
}

func (h *Handler) guard(c *gin.Context, requireAdmin bool) {
	user, err := h.services.Resolve(c.Request.Context(), c.GetHeader("Authorization"), requireAdmin)
	if err != nil {
		h.respondError(c, err, "auth_guard_rejected", "path", c.FullPath())
		c.Abort()
		return
	}

	// store in Gin context
	c.Set(ctxUserKey, user)
	c.Next()
}

// currentUser returns the identity stored by the guard.
func currentUser(c *gin.Context) *models.User {
	v, ok := c.Get(ctxUserKey)
	if !ok {
		return nil
	}
	u, _ := v.(*models.User)
	return u
}

// requestLogger tags every request with an id and logs its outcome.
func (h *Handler) requestLogger(c *gin.Context) {
	start := time.Now()
	rid := c.GetHeader(requestIDHeader)
	if rid == "" {
		rid = uuid.NewString()
	}
	c.Set(ctxRequestIDKey, rid)
	c.Header(requestIDHeader, rid)

	c.Next()

	status := c.Writer.Status()
	kv := []interface{}{
		"request_id", rid,
		"method", c.Request.Method,
		"path", c.Request.URL.Path,
		"status", status,
		"latency_ms", time.Since(start).Milliseconds(),
	}
	if status >= http.StatusInternalServerError {
		h.log.Warnw("http_request", kv...)
		return
	}
	h.log.Debugw("http_request", kv...)
}
