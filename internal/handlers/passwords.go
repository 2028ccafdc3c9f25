package handlers

import (
	"net/http"

	vault "password_vault"
	"password_vault/internal/models"

	"github.com/gin-gonic/gin"
)

func toPasswordResponse(c *models.Credential) vault.PasswordResponse {
	return vault.PasswordResponse{ID: c.ID, Service: c.Service, Username: c.Username, Password: c.Password}
}

// @Summary      Store a password
// @Tags         passwords
// @Accept       json
// @Produce      json
// @Param        input  body      password_vault.PasswordInput  true  "credential"
// @Success      200    {object}  password_vault.PasswordResponse
// @Failure      400    {object}  password_vault.ErrorResponse
// @Failure      401    {object}  password_vault.ErrorResponse
// @Router       /passwords [post]
// @Security     BearerAuth
func (h *Handler) createPassword(c *gin.Context) {
	var input vault.PasswordInput
	if ok := h.bindJSONOrBadRequest(c, &input); !ok {
		return
	}
	owner := currentUser(c)

	cred, err := h.services.Vault.Create(c.Request.Context(), owner.ID, models.Credential{
		Service:  input.Service,
		Username: input.Username,
		Password: input.Password,
	})
	if err != nil {
		h.respondError(c, err, "vault_entry_create_failed", "owner_id", owner.ID)
		return
	}

	c.JSON(http.StatusOK, toPasswordResponse(cred))
}

// @Summary      List stored passwords
// @Tags         passwords
// @Produce      json
// @Success      200  {array}   password_vault.PasswordResponse
// @Failure      401  {object}  password_vault.ErrorResponse
// @Failure      500  {object}  password_vault.ErrorResponse
// @Router       /passwords [get]
// @Security     BearerAuth
func (h *Handler) listPasswords(c *gin.Context) {
	owner := currentUser(c)

	creds, err := h.services.Vault.List(c.Request.Context(), owner.ID)
	if err != nil {
		h.respondError(c, err, "vault_entry_list_failed", "owner_id", owner.ID)
		return
	}

	out := make([]vault.PasswordResponse, 0, len(creds))
	for i := range creds {
		out = append(out, toPasswordResponse(&creds[i]))
	}
	c.JSON(http.StatusOK, out)
}

// @Summary      Get a stored password
// @Tags         passwords
// @Produce      json
// @Param        id   path      int  true  "entry id"
// @Success      200  {object}  password_vault.PasswordResponse
// @Failure      401  {object}  password_vault.ErrorResponse
// @Failure      404  {object}  password_vault.ErrorResponse
// @Failure      500  {object}  password_vault.ErrorResponse
// @Router       /passwords/{id} [get]
// @Security     BearerAuth
func (h *Handler) getPassword(c *gin.Context) {
	id, ok := h.pathID(c)
	if !ok {
		return
	}
	owner := currentUser(c)

	cred, err := h.services.Vault.Get(c.Request.Context(), owner.ID, id)
	if err != nil {
		h.respondError(c, err, "vault_entry_get_failed", "owner_id", owner.ID, "entry_id", id)
		return
	}

	c.JSON(http.StatusOK, toPasswordResponse(cred))
}

// @Summary      Update a stored password
// @Description  Only non-empty fields are changed.
// @Tags         passwords
// @Accept       json
// @Produce      json
// @Param        id     path      int                                true  "entry id"
// @Param        input  body      password_vault.PasswordUpdateInput  true  "fields to change"
// @Success      200    {object}  password_vault.PasswordResponse
// @Failure      400    {object}  password_vault.ErrorResponse
// @Failure      401    {object}  password_vault.ErrorResponse
// @Failure      404    {object}  password_vault.ErrorResponse
// @Router       /passwords/{id} [put]
// @Security     BearerAuth
func (h *Handler) updatePassword(c *gin.Context) {
	id, ok := h.pathID(c)
	if !ok {
		return
	}
	var input vault.PasswordUpdateInput
	if ok := h.bindJSONOrBadRequest(c, &input); !ok {
		return
	}
	owner := currentUser(c)

	cred, err := h.services.Vault.Update(c.Request.Context(), owner.ID, id, models.CredentialUpdate{
		Service:  input.Service,
		Username: input.Username,
		Password: input.Password,
	})
	if err != nil {
		h.respondError(c, err, "vault_entry_update_failed", "owner_id", owner.ID, "entry_id", id)
		return
	}

	c.JSON(http.StatusOK, toPasswordResponse(cred))
}

// @Summary      Delete a stored password
// @Tags         passwords
// @Produce      json
// @Param        id   path      int  true  "entry id"
// @Success      200  {object}  password_vault.StatusResponse
// @Failure      401  {object}  password_vault.ErrorResponse
// @Failure      404  {object}  password_vault.ErrorResponse
// @Router       /passwords/{id} [delete]
// @Security     BearerAuth
func (h *Handler) deletePassword(c *gin.Context) {
	id, ok := h.pathID(c)
	if !ok {
		return
	}
	owner := currentUser(c)

	if err := h.services.Vault.Delete(c.Request.Context(), owner.ID, id); err != nil {
		h.respondError(c, err, "vault_entry_delete_failed", "owner_id", owner.ID, "entry_id", id)
		return
	}

	c.JSON(http.StatusOK, vault.StatusResponse{Status: statusDeleted})
}
