package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/cityworks/complaints-api/internal/api/middleware"
	"github.com/cityworks/complaints-api/internal/core/ports"
)

// ProfileHandler serves the caller's own account record.
type ProfileHandler struct {
	service ports.ProfileService
}

func NewProfileHandler(service ports.ProfileService) *ProfileHandler {
	return &ProfileHandler{service: service}
}

// Get returns the caller's public profile.
//
// @Summary      Get own profile
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  profileResponse
// @Failure      404  {object}  messageResponse
// @Router       /users/profile [get]
func (h *ProfileHandler) Get(c echo.Context) error {
	username, _ := c.Get(middleware.ContextUsername).(string)

	user, err := h.service.Profile(c.Request().Context(), username)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, profileResponse{User: toUserResponse(user)})
}

// Update changes the caller's address, the only mutable profile field.
//
// @Summary      Update own profile
// @Tags         users
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      updateProfileRequest  true  "Profile fields"
// @Success      200   {object}  profileResponse
// @Failure      400   {object}  messageResponse
// @Failure      404   {object}  messageResponse
// @Router       /users/profile [put]
func (h *ProfileHandler) Update(c echo.Context) error {
	username, _ := c.Get(middleware.ContextUsername).(string)

	var req updateProfileRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload.")
	}

	user, err := h.service.UpdateProfile(c.Request().Context(), username, req.Address)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, profileResponse{
		Message: "Profile updated successfully.",
		User:    toUserResponse(user),
	})
}
