package repositories

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"
	"gorm.io/gorm"
	"projecthub.backend/internal/domain/entities"
	domainerrors "projecthub.backend/internal/domain/errors"
	"projecthub.backend/internal/infrastructure/models"
	"projecthub.backend/pkg/utils"
)

// UserRepository implements user data operations
type UserRepository struct {
	db *gorm.DB
}

// NewUserRepository creates a new user repository
func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

// Create creates a new user
func (r *UserRepository) Create(ctx context.Context, user *entities.User) error {
	if user.ID == uuid.Nil {
		user.ID = utils.GenerateUUIDv7()
	}
	m := &models.User{
		ID:           user.ID,
		Email:        strings.ToLower(strings.TrimSpace(user.Email)),
		Name:         user.Name,
		AvatarURL:    user.AvatarURL.Ptr(),
		Role:         user.Role,
		PasswordHash: user.PasswordHash,
		CreatedAt:    user.CreatedAt,
		UpdatedAt:    user.UpdatedAt,
	}
	if err := GetDB(ctx, r.db).Create(m).Error; err != nil {
		return err
	}
	user.ID = m.ID
	user.Email = m.Email
	user.CreatedAt = m.CreatedAt
	user.UpdatedAt = m.UpdatedAt
	return nil
}

// GetByID gets a user by ID
func (r *UserRepository) GetByID(ctx context.Context, id uuid.UUID) (*entities.User, error) {
	var m models.User
	if err := GetDB(ctx, r.db).Where("id = ?", id).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerrors.ErrNotFound
		}
		return nil, err
	}
	return toUserEntity(&m), nil
}

// GetByEmail gets a user by email. Matching is case-insensitive: addresses
// are stored lowercased and the lookup lowercases its argument.
func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*entities.User, error) {
	var m models.User
	normalized := strings.ToLower(strings.TrimSpace(email))
	if err := GetDB(ctx, r.db).Where("lower(email) = ?", normalized).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerrors.ErrNotFound
		}
		return nil, err
	}
	return toUserEntity(&m), nil
}

func toUserEntity(m *models.User) *entities.User {
	var deletedAt *time.Time
	if m.DeletedAt.Valid {
		deletedAt = &m.DeletedAt.Time
	}
	return &entities.User{
		ID:           m.ID,
		Email:        m.Email,
		Name:         m.Name,
		AvatarURL:    null.StringFromPtr(m.AvatarURL),
		Role:         m.Role,
		PasswordHash: m.PasswordHash,
		CreatedAt:    m.CreatedAt,
		UpdatedAt:    m.UpdatedAt,
		DeletedAt:    deletedAt,
	}
}
