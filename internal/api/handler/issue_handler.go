package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/cityworks/complaints-api/internal/api/middleware"
	"github.com/cityworks/complaints-api/internal/core/ports"
)

// IssueHandler handles HTTP requests for complaint operations.
type IssueHandler struct {
	service ports.IssueService
}

func NewIssueHandler(service ports.IssueService) *IssueHandler {
	return &IssueHandler{service: service}
}

// List returns the issues visible to the caller, newest first.
//
// @Summary      List issues
// @Tags         issues
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   issueResponse
// @Failure      403  {object}  messageResponse
// @Router       /issues [get]
func (h *IssueHandler) List(c echo.Context) error {
	username, _ := c.Get(middleware.ContextUsername).(string)
	role, _ := c.Get(middleware.ContextRole).(string)

	issues, err := h.service.List(c.Request().Context(), username, role)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, toIssueListResponse(issues))
}

// Create files a new complaint on behalf of the authenticated resident.
//
// @Summary      Create an issue
// @Tags         issues
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createIssueRequest  true  "Issue details"
// @Success      201   {object}  issueResponse
// @Failure      400   {object}  messageResponse
// @Failure      403   {object}  messageResponse
// @Router       /issues [post]
func (h *IssueHandler) Create(c echo.Context) error {
	var req createIssueRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload.")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	username, _ := c.Get(middleware.ContextUsername).(string)

	issue, err := h.service.Create(c.Request().Context(), ports.CreateIssueInput{
		Reporter:    username,
		Title:       req.Title,
		Description: req.Description,
		Type:        req.Type,
		Location:    req.Location,
		PhotoURL:    req.PhotoURL,
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, toIssueResponse(issue))
}

// Update applies triage changes: assignment, status, and/or an appended
// comment. Field updates and the comment append are independent; both may
// happen in one call.
//
// @Summary      Update an issue
// @Tags         issues
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string              true  "Issue id"
// @Param        body  body      updateIssueRequest  true  "Fields to update"
// @Success      200   {object}  issueResponse
// @Failure      400   {object}  messageResponse
// @Failure      403   {object}  messageResponse
// @Failure      404   {object}  messageResponse
// @Router       /issues/{id} [put]
func (h *IssueHandler) Update(c echo.Context) error {
	var req updateIssueRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload.")
	}

	username, _ := c.Get(middleware.ContextUsername).(string)

	input := ports.UpdateIssueInput{
		ID:      c.Param("id"),
		Actor:   username,
		Comment: req.Comment,
	}
	if req.AssignedTo.Set {
		input.AssignedTo = &req.AssignedTo.Value
	}
	if req.Status.Set {
		input.Status = &req.Status.Value
	}

	issue, err := h.service.Update(c.Request().Context(), input)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, toIssueResponse(issue))
}
