package entities

import (
	"time"

	"github.com/google/uuid"
)

// ProjectStatus is an open string enumeration; values outside the known
// constants pass through untouched.
type ProjectStatus string

const (
	ProjectStatusActive ProjectStatus = "active"
	ProjectStatusOnHold ProjectStatus = "on-hold"
)

// Project owns at most one team and is referenced by code and topic.
type Project struct {
	ID        uuid.UUID     `json:"_id"`
	Code      string        `json:"code"`
	Topic     string        `json:"topic"`
	Status    ProjectStatus `json:"status,omitempty"`
	CreatedAt time.Time     `json:"created_at"`
	UpdatedAt time.Time     `json:"updated_at"`
}
