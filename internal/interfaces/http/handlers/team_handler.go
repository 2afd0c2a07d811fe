package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"projecthub.backend/internal/domain/entities"
	domainerrors "projecthub.backend/internal/domain/errors"
	"projecthub.backend/internal/interfaces/http/middleware"
	"projecthub.backend/internal/interfaces/http/response"
	"projecthub.backend/internal/metrics"
	"projecthub.backend/internal/usecases"
)

type TeamHandler struct {
	teamUsecase *usecases.TeamUsecase
	collector   *metrics.Collector
}

func NewTeamHandler(teamUsecase *usecases.TeamUsecase, collector *metrics.Collector) *TeamHandler {
	return &TeamHandler{teamUsecase: teamUsecase, collector: collector}
}

// AutoJoin joins a team by code and registered email, without a session.
// POST /api/team/auto-join/:teamCode
func (h *TeamHandler) AutoJoin(c *gin.Context) {
	teamCode := c.Param("teamCode")

	var input entities.AutoJoinInput
	if err := c.ShouldBindJSON(&input); err != nil {
		h.collector.RecordAutoJoin("invalid")
		response.Error(c, domainerrors.BadRequest("email is required"))
		return
	}

	result, err := h.teamUsecase.AutoJoin(c.Request.Context(), teamCode, input.Email)
	if err != nil {
		h.collector.RecordAutoJoin(outcomeFromError(err))
		response.Error(c, err)
		return
	}

	h.collector.RecordAutoJoin("success")
	response.Success(c, http.StatusCreated, result)
}

// GetTeamByProject resolves the team owned by a project.
// GET /api/team/:projectId
func (h *TeamHandler) GetTeamByProject(c *gin.Context) {
	projectID, err := uuid.Parse(c.Param("projectId"))
	if err != nil {
		response.Error(c, domainerrors.BadRequest("invalid project ID"))
		return
	}

	team, err := h.teamUsecase.GetTeamByProject(c.Request.Context(), projectID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, team)
}

// LeaveTeam removes the authenticated caller from a project's team. The
// path userId must match the session identity; members can only remove
// themselves here.
// DELETE /api/team/:projectId/members/:userId
func (h *TeamHandler) LeaveTeam(c *gin.Context) {
	projectID, err := uuid.Parse(c.Param("projectId"))
	if err != nil {
		response.Error(c, domainerrors.BadRequest("invalid project ID"))
		return
	}
	userID, err := uuid.Parse(c.Param("userId"))
	if err != nil {
		response.Error(c, domainerrors.BadRequest("invalid user ID"))
		return
	}

	callerID, ok := middleware.GetUserID(c)
	if !ok {
		h.collector.RecordLeave("unauthorized")
		response.Error(c, domainerrors.Unauthorized("authentication required"))
		return
	}
	if callerID != userID {
		h.collector.RecordLeave("forbidden")
		response.Error(c, domainerrors.Forbidden("you can only remove yourself from a team"))
		return
	}

	result, err := h.teamUsecase.LeaveTeam(c.Request.Context(), projectID, userID)
	if err != nil {
		h.collector.RecordLeave(outcomeFromError(err))
		response.Error(c, err)
		return
	}

	h.collector.RecordLeave("success")
	response.Success(c, http.StatusOK, result)
}

func outcomeFromError(err error) string {
	switch {
	case errors.Is(err, domainerrors.ErrNotFound):
		return "not_found"
	case errors.Is(err, domainerrors.ErrAlreadyExists):
		return "conflict"
	case errors.Is(err, domainerrors.ErrInvalidInput):
		return "invalid"
	default:
		return "error"
	}
}
