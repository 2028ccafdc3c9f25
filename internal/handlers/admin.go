package handlers

import (
	"net/http"
	"strconv"

	vault "password_vault"

	"github.com/gin-gonic/gin"
)

const statusDeleted = "deleted"

// @Summary      Bootstrap the first admin
// @Description  Open endpoint; refuses with 409 once any admin exists.
// @Tags         admin
// @Accept       json
// @Produce      json
// @Param        input  body      password_vault.CredentialsInput  true  "credentials"
// @Success      200    {object}  password_vault.UserResponse
// @Failure      400    {object}  password_vault.ErrorResponse
// @Failure      409    {object}  password_vault.ErrorResponse
// @Router       /admin/users [post]
func (h *Handler) bootstrapAdmin(c *gin.Context) {
	var input vault.CredentialsInput
	if ok := h.bindJSONOrBadRequest(c, &input); !ok {
		return
	}

	u, err := h.services.BootstrapAdmin(c.Request.Context(), input.Username, input.Password)
	if err != nil {
		h.respondError(c, err, "admin_bootstrap_failed", "username", input.Username)
		return
	}

	h.log.Infow("admin_bootstrapped", "user_id", u.ID)
	c.JSON(http.StatusOK, toUserResponse(u))
}

// @Summary      List users
// @Tags         admin
// @Produce      json
// @Success      200  {array}   password_vault.UserResponse
// @Failure      401  {object}  password_vault.ErrorResponse
// @Failure      403  {object}  password_vault.ErrorResponse
// @Router       /admin/users [get]
// @Security     BearerAuth
func (h *Handler) listUsers(c *gin.Context) {
	users, err := h.services.ListUsers(c.Request.Context())
	if err != nil {
		h.respondError(c, err, "admin_list_users_failed")
		return
	}

	out := make([]vault.UserResponse, 0, len(users))
	for i := range users {
		out = append(out, toUserResponse(&users[i]))
	}
	c.JSON(http.StatusOK, out)
}

// @Summary      Delete a user and all of their stored passwords
// @Tags         admin
// @Produce      json
// @Param        id   path      int  true  "user id"
// @Success      200  {object}  password_vault.DeleteUserResponse
// @Failure      400  {object}  password_vault.ErrorResponse
// @Failure      401  {object}  password_vault.ErrorResponse
// @Failure      403  {object}  password_vault.ErrorResponse
// @Failure      404  {object}  password_vault.ErrorResponse
// @Router       /admin/users/{id} [delete]
// @Security     BearerAuth
func (h *Handler) deleteUser(c *gin.Context) {
	id, ok := h.pathID(c)
	if !ok {
		return
	}
	actor := currentUser(c)

	removed, err := h.services.DeleteUser(c.Request.Context(), actor.ID, id)
	if err != nil {
		h.respondError(c, err, "admin_delete_user_failed", "actor_id", actor.ID, "user_id", id)
		return
	}

	h.log.Infow("admin_user_deleted", "actor_id", actor.ID, "user_id", id, "deleted_entries", removed)
	c.JSON(http.StatusOK, vault.DeleteUserResponse{Status: statusDeleted, DeletedEntries: removed})
}

// pathID parses the :id parameter and writes a 400 on failure.
func (h *Handler) pathID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": errInvalidID})
		return 0, false
	}
	return id, true
}
