package handler

import (
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/cityworks/complaints-api/internal/core/ports"
)

// AdminHandler exposes the master-admin approval workflow. Routes are
// guarded by middleware.MasterAdmin.
type AdminHandler struct {
	service ports.AdminService
}

func NewAdminHandler(service ports.AdminService) *AdminHandler {
	return &AdminHandler{service: service}
}

// List returns all admin accounts except the master admin.
//
// @Summary      List admin accounts
// @Tags         admins
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   adminAccountResponse
// @Failure      403  {object}  messageResponse
// @Router       /admins [get]
func (h *AdminHandler) List(c echo.Context) error {
	admins, err := h.service.ListAdmins(c.Request().Context())
	if err != nil {
		return err
	}

	out := make([]adminAccountResponse, len(admins))
	for i, u := range admins {
		out[i] = toAdminAccountResponse(u)
	}
	return c.JSON(http.StatusOK, out)
}

// SetStatus approves or rejects a pending admin account.
//
// @Summary      Approve or reject an admin account
// @Tags         admins
// @Produce      json
// @Security     BearerAuth
// @Param        username  path      string  true  "Target admin username"
// @Param        action    path      string  true  "approve or reject"
// @Success      200       {object}  messageResponse
// @Failure      400       {object}  messageResponse
// @Failure      403       {object}  messageResponse
// @Failure      404       {object}  messageResponse
// @Router       /admins/{username}/{action} [put]
func (h *AdminHandler) SetStatus(c echo.Context) error {
	username := c.Param("username")
	action := c.Param("action")

	user, err := h.service.SetStatus(c.Request().Context(), username, action)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, messageResponse{
		Message: fmt.Sprintf("Admin user %s status updated to %s.", user.Username, user.Status),
	})
}
