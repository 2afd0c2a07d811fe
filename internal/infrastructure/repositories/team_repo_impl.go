package repositories

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"
	"gorm.io/gorm"
	"projecthub.backend/internal/domain/entities"
	domainerrors "projecthub.backend/internal/domain/errors"
	"projecthub.backend/internal/infrastructure/models"
	"projecthub.backend/pkg/utils"
)

type TeamRepository struct {
	db *gorm.DB
}

func NewTeamRepository(db *gorm.DB) *TeamRepository {
	return &TeamRepository{db: db}
}

func (r *TeamRepository) Create(ctx context.Context, team *entities.Team) error {
	if team.ID == uuid.Nil {
		team.ID = utils.GenerateUUIDv7()
	}
	m := &models.Team{
		ID:          team.ID,
		Name:        team.Name,
		Description: team.Description.Ptr(),
		Code:        team.Code,
		CreatedAt:   team.CreatedAt,
		UpdatedAt:   team.UpdatedAt,
	}
	if team.Project != nil {
		m.ProjectID = team.Project.ID
	}
	if err := GetDB(ctx, r.db).Create(m).Error; err != nil {
		return err
	}
	team.ID = m.ID
	team.CreatedAt = m.CreatedAt
	team.UpdatedAt = m.UpdatedAt
	return nil
}

// GetByCode resolves a team by its join code, membership list populated.
func (r *TeamRepository) GetByCode(ctx context.Context, code string) (*entities.Team, error) {
	var m models.Team
	if err := GetDB(ctx, r.db).Where("code = ?", code).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerrors.ErrNotFound
		}
		return nil, err
	}
	return r.loadTeam(ctx, &m)
}

// GetByProjectID resolves the team owned by a project, membership list
// populated. A team without members yields an empty list.
func (r *TeamRepository) GetByProjectID(ctx context.Context, projectID uuid.UUID) (*entities.Team, error) {
	var m models.Team
	if err := GetDB(ctx, r.db).Where("project_id = ?", projectID).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerrors.ErrNotFound
		}
		return nil, err
	}
	return r.loadTeam(ctx, &m)
}

// AddMember inserts a membership row. The uniqueness check and the insert
// both run against the caller's transaction when one is in flight, and the
// composite unique index backs the check under concurrent requests.
func (r *TeamRepository) AddMember(ctx context.Context, teamID, userID uuid.UUID, teamLeader int) error {
	db := GetDB(ctx, r.db)

	var count int64
	if err := db.Model(&models.TeamMember{}).
		Where("team_id = ? AND user_id = ?", teamID, userID).
		Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return domainerrors.ErrAlreadyExists
	}

	m := &models.TeamMember{
		ID:         utils.GenerateUUIDv7(),
		TeamID:     teamID,
		UserID:     userID,
		TeamLeader: teamLeader,
		CreatedAt:  time.Now(),
	}
	if err := db.Create(m).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return domainerrors.ErrAlreadyExists
		}
		return err
	}
	return nil
}

// RemoveMember deletes the membership row for (teamID, userID).
func (r *TeamRepository) RemoveMember(ctx context.Context, teamID, userID uuid.UUID) error {
	result := GetDB(ctx, r.db).
		Where("team_id = ? AND user_id = ?", teamID, userID).
		Delete(&models.TeamMember{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrNotFound
	}
	return nil
}

// loadTeam assembles the full entity: owning project plus the ordered
// membership list with populated users.
func (r *TeamRepository) loadTeam(ctx context.Context, m *models.Team) (*entities.Team, error) {
	db := GetDB(ctx, r.db)

	team := &entities.Team{
		ID:          m.ID,
		Name:        m.Name,
		Description: null.StringFromPtr(m.Description),
		Code:        m.Code,
		Members:     []entities.Membership{},
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
	}

	var pm models.Project
	if err := db.Where("id = ?", m.ProjectID).First(&pm).Error; err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
	} else {
		team.Project = &entities.Project{
			ID:        pm.ID,
			Code:      pm.Code,
			Topic:     pm.Topic,
			Status:    entities.ProjectStatus(pm.Status),
			CreatedAt: pm.CreatedAt,
			UpdatedAt: pm.UpdatedAt,
		}
	}

	var rows []models.TeamMember
	if err := db.Where("team_id = ?", m.ID).Order("created_at ASC").Find(&rows).Error; err != nil {
		return nil, err
	}
	for i := range rows {
		var um models.User
		if err := db.Where("id = ?", rows[i].UserID).First(&um).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				// Orphaned row (user soft-deleted); skip rather than fail the read.
				continue
			}
			return nil, err
		}
		team.Members = append(team.Members, entities.Membership{
			ID:         rows[i].ID,
			User:       toUserEntity(&um),
			TeamLeader: rows[i].TeamLeader,
			JoinedAt:   rows[i].CreatedAt,
		})
	}

	return team, nil
}
