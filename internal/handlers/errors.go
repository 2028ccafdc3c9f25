package handlers

import (
	"errors"
	"net/http"

	"password_vault/internal/cipher"
	"password_vault/internal/service"

	"github.com/gin-gonic/gin"
)

const (
	errInternal    = "internal error"
	errInvalidID   = "invalid id"
	errNotFound    = "not found"
	errInvalidBody = "invalid body: "
)

// errorResponse maps a service error to an HTTP status and a client-safe message.
func errorResponse(err error) (int, string) {
	switch {
	case errors.Is(err, service.ErrValidation):
		return http.StatusBadRequest, err.Error()
	case errors.Is(err, service.ErrInvalidOperation):
		return http.StatusBadRequest, err.Error()
	case errors.Is(err, service.ErrInvalidCredentials):
		return http.StatusUnauthorized, service.ErrInvalidCredentials.Error()
	case errors.Is(err, service.ErrUnauthenticated):
		return http.StatusUnauthorized, service.ErrUnauthenticated.Error()
	case errors.Is(err, service.ErrForbidden):
		return http.StatusForbidden, service.ErrForbidden.Error()
	case errors.Is(err, service.ErrNotFound):
		return http.StatusNotFound, errNotFound
	case errors.Is(err, service.ErrUsernameTaken):
		return http.StatusConflict, "username already registered"
	case errors.Is(err, service.ErrAdminAlreadyExists):
		return http.StatusConflict, "admin already exists"
	case errors.Is(err, service.ErrConflict):
		return http.StatusConflict, service.ErrConflict.Error()
	case errors.Is(err, cipher.ErrDecryption):
		return http.StatusInternalServerError, cipher.ErrDecryption.Error()
	default:
		return http.StatusInternalServerError, errInternal
	}
}

// respondError logs err under logKey and writes the mapped JSON error.
// Server faults log at error level, client faults at info.
func (h *Handler) respondError(c *gin.Context, err error, logKey string, kv ...interface{}) {
	code, msg := errorResponse(err)
	fields := append([]interface{}{"err", err, "request_id", c.GetString(ctxRequestIDKey)}, kv...)
	if code >= http.StatusInternalServerError {
		h.log.Errorw(logKey, fields...)
	} else {
		h.log.Infow(logKey, fields...)
	}
	if code == http.StatusUnauthorized {
		c.Header("WWW-Authenticate", "Bearer")
	}
	c.JSON(code, gin.H{"error": msg})
}

// bindJSONOrBadRequest tries to bind the request body into dst and writes a 400 JSON on failure.
// Returns false if the request was already handled (aborted), true otherwise.
func (h *Handler) bindJSONOrBadRequest(c *gin.Context, dst any) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		h.log.Infow("bad_request_body", "err", err, "path", c.FullPath())
		c.JSON(http.StatusBadRequest, gin.H{"error": errInvalidBody + err.Error()})
		return false
	}
	return true
}
