package repositories

import (
	"context"

	"github.com/google/uuid"
	"projecthub.backend/internal/domain/entities"
)

// TeamRepository defines team and membership data operations. GetByCode and
// GetByProjectID return the team with its membership list populated; a team
// with no members yields an empty list, not an error.
type TeamRepository interface {
	Create(ctx context.Context, team *entities.Team) error
	GetByCode(ctx context.Context, code string) (*entities.Team, error)
	GetByProjectID(ctx context.Context, projectID uuid.UUID) (*entities.Team, error)
	// AddMember inserts a membership row. Returns ErrAlreadyExists when the
	// user is already on the team.
	AddMember(ctx context.Context, teamID, userID uuid.UUID, teamLeader int) error
	// RemoveMember deletes the membership row. Returns ErrNotFound when the
	// user is not a member.
	RemoveMember(ctx context.Context, teamID, userID uuid.UUID) error
}
