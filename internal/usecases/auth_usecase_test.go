package usecases_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"projecthub.backend/internal/domain/entities"
	domainerrors "projecthub.backend/internal/domain/errors"
	"projecthub.backend/internal/usecases"
	"projecthub.backend/pkg/crypto"
	"projecthub.backend/pkg/jwt"
)

func newAuthUsecase() (*usecases.AuthUsecase, *MockUserRepository) {
	userRepo := new(MockUserRepository)
	jwtService := jwt.NewJWTService("test-secret", 15*time.Minute, 24*time.Hour)
	return usecases.NewAuthUsecase(userRepo, jwtService), userRepo
}

func TestAuthUsecase_Login_Success(t *testing.T) {
	uc, userRepo := newAuthUsecase()
	ctx := context.Background()

	hash, err := crypto.HashPassword("s3cret-pass")
	assert.NoError(t, err)
	alice := &entities.User{
		ID:           uuid.New(),
		Email:        "alice@example.com",
		Name:         "Alice",
		Role:         entities.RoleMember,
		PasswordHash: hash,
	}
	userRepo.On("GetByEmail", ctx, "alice@example.com").Return(alice, nil).Once()

	resp, err := uc.Login(ctx, &entities.LoginInput{
		Email:    "alice@example.com",
		Password: "s3cret-pass",
	})
	assert.NoError(t, err)
	assert.NotEmpty(t, resp.AccessToken)
	assert.NotEmpty(t, resp.RefreshToken)
	assert.Equal(t, alice.ID, resp.User.ID)
}

func TestAuthUsecase_Login_WrongPassword(t *testing.T) {
	uc, userRepo := newAuthUsecase()
	ctx := context.Background()

	hash, err := crypto.HashPassword("s3cret-pass")
	assert.NoError(t, err)
	alice := &entities.User{ID: uuid.New(), Email: "alice@example.com", PasswordHash: hash}
	userRepo.On("GetByEmail", ctx, "alice@example.com").Return(alice, nil).Once()

	_, err = uc.Login(ctx, &entities.LoginInput{
		Email:    "alice@example.com",
		Password: "wrong",
	})
	assert.ErrorIs(t, err, domainerrors.ErrUnauthorized)
}

func TestAuthUsecase_Login_UnknownEmail(t *testing.T) {
	uc, userRepo := newAuthUsecase()
	ctx := context.Background()

	userRepo.On("GetByEmail", ctx, "ghost@example.com").Return(nil, domainerrors.ErrNotFound).Once()

	_, err := uc.Login(ctx, &entities.LoginInput{
		Email:    "ghost@example.com",
		Password: "whatever",
	})
	assert.ErrorIs(t, err, domainerrors.ErrUnauthorized)
}

func TestAuthUsecase_GetProfile(t *testing.T) {
	uc, userRepo := newAuthUsecase()
	ctx := context.Background()

	alice := &entities.User{ID: uuid.New(), Email: "alice@example.com", Role: entities.RoleSupervisor}
	userRepo.On("GetByID", ctx, alice.ID).Return(alice, nil).Once()

	got, err := uc.GetProfile(ctx, alice.ID)
	assert.NoError(t, err)
	assert.True(t, got.IsSupervisor())

	gone := uuid.New()
	userRepo.On("GetByID", ctx, gone).Return(nil, domainerrors.ErrNotFound).Once()
	_, err = uc.GetProfile(ctx, gone)
	assert.ErrorIs(t, err, domainerrors.ErrUnauthorized)
}
