package repositories

import (
	"context"

	"github.com/google/uuid"
	"projecthub.backend/internal/domain/entities"
)

// UserRepository defines user data operations. The team workflows only
// resolve identities; Create exists for seeding and tests.
type UserRepository interface {
	Create(ctx context.Context, user *entities.User) error
	GetByID(ctx context.Context, id uuid.UUID) (*entities.User, error)
	GetByEmail(ctx context.Context, email string) (*entities.User, error)
}
