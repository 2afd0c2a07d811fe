package repositories

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"projecthub.backend/internal/domain/entities"
	domainerrors "projecthub.backend/internal/domain/errors"
	"projecthub.backend/internal/infrastructure/models"
	"projecthub.backend/pkg/utils"
)

type ProjectRepository struct {
	db *gorm.DB
}

func NewProjectRepository(db *gorm.DB) *ProjectRepository {
	return &ProjectRepository{db: db}
}

func (r *ProjectRepository) Create(ctx context.Context, project *entities.Project) error {
	if project.ID == uuid.Nil {
		project.ID = utils.GenerateUUIDv7()
	}
	m := r.toModel(project)
	if err := GetDB(ctx, r.db).Create(m).Error; err != nil {
		return err
	}
	project.ID = m.ID
	project.CreatedAt = m.CreatedAt
	project.UpdatedAt = m.UpdatedAt
	return nil
}

func (r *ProjectRepository) GetByID(ctx context.Context, id uuid.UUID) (*entities.Project, error) {
	var m models.Project
	if err := GetDB(ctx, r.db).Where("id = ?", id).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerrors.ErrNotFound
		}
		return nil, err
	}
	return r.toEntity(&m), nil
}

func (r *ProjectRepository) GetByCode(ctx context.Context, code string) (*entities.Project, error) {
	var m models.Project
	if err := GetDB(ctx, r.db).Where("code = ?", code).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerrors.ErrNotFound
		}
		return nil, err
	}
	return r.toEntity(&m), nil
}

func (r *ProjectRepository) List(ctx context.Context) ([]*entities.Project, error) {
	var ms []models.Project
	if err := GetDB(ctx, r.db).Order("created_at ASC").Find(&ms).Error; err != nil {
		return nil, err
	}
	items := make([]*entities.Project, 0, len(ms))
	for i := range ms {
		items = append(items, r.toEntity(&ms[i]))
	}
	return items, nil
}

func (r *ProjectRepository) toEntity(m *models.Project) *entities.Project {
	return &entities.Project{
		ID:        m.ID,
		Code:      m.Code,
		Topic:     m.Topic,
		Status:    entities.ProjectStatus(m.Status),
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}

func (r *ProjectRepository) toModel(e *entities.Project) *models.Project {
	return &models.Project{
		ID:        e.ID,
		Code:      e.Code,
		Topic:     e.Topic,
		Status:    string(e.Status),
		CreatedAt: e.CreatedAt,
		UpdatedAt: e.UpdatedAt,
	}
}
