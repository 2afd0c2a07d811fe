package entities

import (
	"time"

	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"
)

// Leader marker values stored on a membership row.
const (
	MemberRegular = 0
	MemberLeader  = 1
)

// Team is scoped to exactly one project. The JSON field names follow the
// wire contract consumed by the web front end: the owning project is
// populated under "project_id" and memberships under "team_member".
type Team struct {
	ID          uuid.UUID    `json:"_id"`
	Name        string       `json:"team_name"`
	Description null.String  `json:"description,omitempty"`
	Code        string       `json:"team_code"`
	Project     *Project     `json:"project_id"`
	Members     []Membership `json:"team_member"`
	CreatedAt   time.Time    `json:"created_at"`
	UpdatedAt   time.Time    `json:"updated_at"`
}

// Membership links a user to a team. The populated user travels under
// "user_id" on the wire, matching the front end contract.
type Membership struct {
	ID         uuid.UUID `json:"_id"`
	User       *User     `json:"user_id"`
	TeamLeader int       `json:"team_leader"`
	JoinedAt   time.Time `json:"joined_at"`
}

// IsLeader reports whether the membership carries the leader marker.
func (m *Membership) IsLeader() bool {
	return m.TeamLeader == MemberLeader
}

// FindMember returns the membership for userID, or nil when absent.
func (t *Team) FindMember(userID uuid.UUID) *Membership {
	for i := range t.Members {
		if t.Members[i].User != nil && t.Members[i].User.ID == userID {
			return &t.Members[i]
		}
	}
	return nil
}

// LeaderCount returns the number of leader-flagged memberships.
func (t *Team) LeaderCount() int {
	n := 0
	for i := range t.Members {
		if t.Members[i].IsLeader() {
			n++
		}
	}
	return n
}

// AutoJoinInput represents the auto-join request body.
type AutoJoinInput struct {
	Email string `json:"email" binding:"required"`
}

// AutoJoinResult is returned on a successful auto-join so the caller can
// render a personalized success state without another round trip.
type AutoJoinResult struct {
	Team *Team `json:"team"`
	User *User `json:"user"`
}

// LeaveResult acknowledges a leave. LeftLeaderless is set when the
// departure removed the last leader; the system warns, it does not block.
type LeaveResult struct {
	TeamID         uuid.UUID `json:"team_id"`
	UserID         uuid.UUID `json:"user_id"`
	LeftLeaderless bool      `json:"left_leaderless"`
}
