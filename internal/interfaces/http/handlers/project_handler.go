package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	domainerrors "projecthub.backend/internal/domain/errors"
	"projecthub.backend/internal/domain/repositories"
	"projecthub.backend/internal/interfaces/http/response"
)

type ProjectHandler struct {
	repo repositories.ProjectRepository
}

func NewProjectHandler(repo repositories.ProjectRepository) *ProjectHandler {
	return &ProjectHandler{repo: repo}
}

// GetProject returns a single project.
// GET /api/project/:projectId
func (h *ProjectHandler) GetProject(c *gin.Context) {
	id, err := uuid.Parse(c.Param("projectId"))
	if err != nil {
		response.Error(c, domainerrors.BadRequest("invalid project ID"))
		return
	}

	project, err := h.repo.GetByID(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, domainerrors.ErrNotFound) {
			response.Error(c, domainerrors.NotFound("project not found"))
			return
		}
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, project)
}

// ListProjects returns all projects.
// GET /api/project
func (h *ProjectHandler) ListProjects(c *gin.Context) {
	items, err := h.repo.List(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, items)
}
