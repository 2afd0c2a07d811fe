package repositories

import (
	"context"

	"github.com/google/uuid"
	"projecthub.backend/internal/domain/entities"
)

// ProjectRepository defines project data operations
type ProjectRepository interface {
	Create(ctx context.Context, project *entities.Project) error
	GetByID(ctx context.Context, id uuid.UUID) (*entities.Project, error)
	GetByCode(ctx context.Context, code string) (*entities.Project, error)
	List(ctx context.Context) ([]*entities.Project, error)
}
