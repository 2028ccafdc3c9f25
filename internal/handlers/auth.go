package handlers

import (
	"net/http"

	vault "password_vault"
	"password_vault/internal/models"

	"github.com/gin-gonic/gin"
)

const tokenTypeBearer = "bearer"

func toUserResponse(u *models.User) vault.UserResponse {
	return vault.UserResponse{ID: u.ID, Username: u.Username, IsAdmin: u.IsAdmin}
}

// @Summary      Register a user
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        input  body      password_vault.CredentialsInput  true  "credentials"
// @Success      200    {object}  password_vault.UserResponse
// @Failure      400    {object}  password_vault.ErrorResponse
// @Failure      409    {object}  password_vault.ErrorResponse
// @Router       /auth/register [post]
func (h *Handler) register(c *gin.Context) {
	var input vault.CredentialsInput
	if ok := h.bindJSONOrBadRequest(c, &input); !ok {
		return
	}

	u, err := h.services.Register(c.Request.Context(), input.Username, input.Password)
	if err != nil {
		h.respondError(c, err, "auth_register_failed", "username", input.Username)
		return
	}

	h.log.Infow("auth_registered", "user_id", u.ID)
	c.JSON(http.StatusOK, toUserResponse(u))
}

// @Summary      Log in
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        input  body      password_vault.CredentialsInput  true  "credentials"
// @Success      200    {object}  password_vault.TokenResponse
// @Failure      400    {object}  password_vault.ErrorResponse
// @Failure      401    {object}  password_vault.ErrorResponse
// @Router       /auth/login [post]
func (h *Handler) login(c *gin.Context) {
	var input vault.CredentialsInput
	if ok := h.bindJSONOrBadRequest(c, &input); !ok {
		return
	}

	token, err := h.services.Login(c.Request.Context(), input.Username, input.Password)
	if err != nil {
		h.respondError(c, err, "auth_login_failed", "username", input.Username)
		return
	}

	c.JSON(http.StatusOK, vault.TokenResponse{AccessToken: token, TokenType: tokenTypeBearer})
}
