package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"projecthub.backend/internal/domain/entities"
	domainerrors "projecthub.backend/internal/domain/errors"
	"projecthub.backend/internal/interfaces/http/middleware"
	"projecthub.backend/internal/interfaces/http/response"
	"projecthub.backend/internal/usecases"
	"projecthub.backend/pkg/redis"
)

const sessionExpiry = 7 * 24 * time.Hour

type AuthHandler struct {
	authUsecase  *usecases.AuthUsecase
	sessionStore *redis.SessionStore
}

func NewAuthHandler(authUsecase *usecases.AuthUsecase, sessionStore *redis.SessionStore) *AuthHandler {
	return &AuthHandler{
		authUsecase:  authUsecase,
		sessionStore: sessionStore,
	}
}

// Login authenticates a user with email and password.
// POST /api/auth/login
func (h *AuthHandler) Login(c *gin.Context) {
	var input entities.LoginInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, domainerrors.BadRequest("email and password are required"))
		return
	}

	resp, err := h.authUsecase.Login(c.Request.Context(), &input)
	if err != nil {
		response.Error(c, err)
		return
	}

	if input.UseSession && h.sessionStore != nil {
		sessionID := uuid.New().String()
		data := &redis.SessionData{
			UserID:       resp.User.ID,
			AccessToken:  resp.AccessToken,
			RefreshToken: resp.RefreshToken,
		}
		if err := h.sessionStore.CreateSession(c.Request.Context(), sessionID, data, sessionExpiry); err != nil {
			response.Error(c, err)
			return
		}
		// Tokens stay server-side; the client holds only the session ID.
		resp.SessionID = sessionID
		resp.AccessToken = ""
		resp.RefreshToken = ""
	}

	response.Success(c, http.StatusOK, resp)
}

// GetProfile returns the identity of the authenticated caller.
// GET /api/auth/profile
func (h *AuthHandler) GetProfile(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.Error(c, domainerrors.Unauthorized("authentication required"))
		return
	}

	user, err := h.authUsecase.GetProfile(c.Request.Context(), userID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, user)
}
