package entities

import (
	"time"

	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"
)

// Role tiers carried on the user record. The numeric values mirror the
// backing store; 4 marks a supervisor.
const (
	RoleMember     = 1
	RoleLecturer   = 2
	RoleStaff      = 3
	RoleSupervisor = 4
)

// User represents an identity record. Identity is resolved, never created,
// by the team workflows; registration lives outside this service.
type User struct {
	ID           uuid.UUID   `json:"id"`
	Email        string      `json:"email"`
	Name         string      `json:"full_name"`
	AvatarURL    null.String `json:"avatar,omitempty"`
	Role         int         `json:"role"`
	PasswordHash string      `json:"-"`
	CreatedAt    time.Time   `json:"created_at"`
	UpdatedAt    time.Time   `json:"updated_at"`
	DeletedAt    *time.Time  `json:"-"`
}

// IsSupervisor reports whether the user holds the supervisor role tier.
func (u *User) IsSupervisor() bool {
	return u.Role == RoleSupervisor
}

// LoginInput represents input for user login
type LoginInput struct {
	Email      string `json:"email" binding:"required,email"`
	Password   string `json:"password" binding:"required"`
	UseSession bool   `json:"useSession"` // If true, store tokens in Redis and return SessionID
}

// AuthResponse represents authentication response
type AuthResponse struct {
	AccessToken  string `json:"accessToken,omitempty"`
	RefreshToken string `json:"refreshToken,omitempty"`
	SessionID    string `json:"sessionId,omitempty"`
	User         *User  `json:"user"`
}
