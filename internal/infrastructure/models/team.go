package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Team belongs to exactly one project; the unique index on ProjectID keeps
// the relationship one-to-one at the store level.
type Team struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey;default:uuid_generate_v4()"`
	ProjectID   uuid.UUID `gorm:"type:uuid;uniqueIndex;not null"`
	Name        string    `gorm:"type:varchar(120);not null"`
	Description *string   `gorm:"type:text"`
	Code        string    `gorm:"type:varchar(30);uniqueIndex;not null"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
	DeletedAt   gorm.DeletedAt `gorm:"index"`
}

// TeamMember is the membership join row. The composite unique index on
// (team_id, user_id) is what makes concurrent auto-joins safe: two racing
// inserts for the same pair cannot both commit.
type TeamMember struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey;default:uuid_generate_v4()"`
	TeamID     uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_team_members_team_user"`
	UserID     uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_team_members_team_user"`
	TeamLeader int       `gorm:"not null;default:0"`
	CreatedAt  time.Time
}

func (TeamMember) TableName() string {
	return "team_members"
}
