package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/voteflow/poll-system/internal/api/metrics"
	"github.com/voteflow/poll-system/internal/core/ports"
)

// PollHandler handles HTTP requests for poll operations. Domain errors are
// returned as-is and mapped to status codes by the central error handler.
type PollHandler struct {
	service ports.PollService
}

func NewPollHandler(service ports.PollService) *PollHandler {
	return &PollHandler{service: service}
}

// List handles GET /api/polls.
//
// @Summary      List all polls (aggregate counts only)
// @Tags         polls
// @Produce      json
// @Success      200  {array}  pollSummaryResponse
// @Router       /api/polls [get]
func (h *PollHandler) List(c echo.Context) error {
	summaries, err := h.service.List(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toListResponse(summaries))
}

// Get handles GET /api/polls/:id.
//
// @Summary      Get a poll including per-user ballots
// @Tags         polls
// @Produce      json
// @Param        id   path      string  true  "Poll id"
// @Success      200  {object}  pollDetailResponse
// @Failure      404  {object}  errorResponse
// @Router       /api/polls/{id} [get]
func (h *PollHandler) Get(c echo.Context) error {
	poll, err := h.service.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toDetailResponse(poll))
}

// Create handles POST /api/polls.
//
// @Summary      Create a new poll
// @Tags         polls
// @Accept       json
// @Produce      json
// @Security     TokenAuth
// @Param        body  body      createPollRequest  true  "Poll details"
// @Success      201   {object}  pollDetailResponse
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Router       /api/polls [post]
func (h *PollHandler) Create(c echo.Context) error {
	username, err := ctxUsername(c)
	if err != nil {
		return err
	}

	var req createPollRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	poll, err := h.service.Create(c.Request().Context(), toCreateInput(req, username))
	if err != nil {
		return err
	}

	metrics.PollsCreatedTotal.Inc()
	return c.JSON(http.StatusCreated, toDetailResponse(poll))
}

// Vote handles POST /api/polls/:id/vote. A user's new selection fully
// replaces their previous one.
//
// @Summary      Cast or replace a vote
// @Tags         polls
// @Accept       json
// @Produce      json
// @Security     TokenAuth
// @Param        id    path      string       true  "Poll id"
// @Param        body  body      voteRequest  true  "Selected option ids"
// @Success      200   {object}  successResponse
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Router       /api/polls/{id}/vote [post]
func (h *PollHandler) Vote(c echo.Context) error {
	username, err := ctxUsername(c)
	if err != nil {
		return err
	}

	var req voteRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	err = h.service.Vote(c.Request().Context(), ports.VoteInput{
		PollID:    c.Param("id"),
		Username:  username,
		OptionIDs: req.OptionIDs,
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, successResponse{Success: true})
}

// Delete handles DELETE /api/polls/:id. Only the poll's creator may delete it.
//
// @Summary      Delete a poll
// @Tags         polls
// @Produce      json
// @Security     TokenAuth
// @Param        id   path      string  true  "Poll id"
// @Success      200  {object}  successResponse
// @Failure      401  {object}  errorResponse
// @Failure      403  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /api/polls/{id} [delete]
func (h *PollHandler) Delete(c echo.Context) error {
	username, err := ctxUsername(c)
	if err != nil {
		return err
	}

	if err := h.service.Delete(c.Request().Context(), c.Param("id"), username); err != nil {
		return err
	}

	metrics.PollsDeletedTotal.Inc()
	return c.JSON(http.StatusOK, successResponse{Success: true})
}
