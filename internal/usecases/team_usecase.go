package usecases

import (
	"context"
	"errors"
	"net/mail"
	"strings"

	"github.com/google/uuid"
	"projecthub.backend/internal/domain/entities"
	domainerrors "projecthub.backend/internal/domain/errors"
	"projecthub.backend/internal/domain/repositories"
)

// TeamUsecase handles the team membership workflows: auto-join by code and
// voluntary leave. Both mutations run inside a unit of work so the
// existence checks, the uniqueness check and the write commit as one unit.
type TeamUsecase struct {
	teamRepo repositories.TeamRepository
	userRepo repositories.UserRepository
	uow      repositories.UnitOfWork
}

// NewTeamUsecase creates a new team usecase
func NewTeamUsecase(
	teamRepo repositories.TeamRepository,
	userRepo repositories.UserRepository,
	uow repositories.UnitOfWork,
) *TeamUsecase {
	return &TeamUsecase{
		teamRepo: teamRepo,
		userRepo: userRepo,
		uow:      uow,
	}
}

// AutoJoin lets an unauthenticated visitor holding a team code and a
// registered email join that team as a regular member. The operation is
// deliberately not idempotent: once the membership exists, repeating the
// call fails with a conflict.
func (u *TeamUsecase) AutoJoin(ctx context.Context, teamCode, email string) (*entities.AutoJoinResult, error) {
	code := strings.TrimSpace(teamCode)
	if code == "" {
		return nil, domainerrors.BadRequest("team code is required")
	}

	normalized := strings.ToLower(strings.TrimSpace(email))
	if normalized == "" {
		return nil, domainerrors.BadRequest("email is required")
	}
	if _, err := mail.ParseAddress(normalized); err != nil {
		return nil, domainerrors.Unprocessable("email is not a valid address")
	}

	var result *entities.AutoJoinResult
	err := u.uow.Do(ctx, func(txCtx context.Context) error {
		team, err := u.teamRepo.GetByCode(txCtx, code)
		if err != nil {
			if errors.Is(err, domainerrors.ErrNotFound) {
				return domainerrors.NotFound("no team matches this code")
			}
			return err
		}

		user, err := u.userRepo.GetByEmail(txCtx, normalized)
		if err != nil {
			if errors.Is(err, domainerrors.ErrNotFound) {
				return domainerrors.NotFound("this email is not registered")
			}
			return err
		}

		if team.FindMember(user.ID) != nil {
			return domainerrors.Conflict("this email already belongs to a member of the team")
		}

		// Auto-join never mints a leader.
		if err := u.teamRepo.AddMember(txCtx, team.ID, user.ID, entities.MemberRegular); err != nil {
			if errors.Is(err, domainerrors.ErrAlreadyExists) {
				return domainerrors.Conflict("this email already belongs to a member of the team")
			}
			return err
		}

		// Reload inside the transaction so the returned team reflects the
		// membership just written.
		joined, err := u.teamRepo.GetByCode(txCtx, code)
		if err != nil {
			return err
		}

		result = &entities.AutoJoinResult{Team: joined, User: user}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// LeaveTeam removes the caller's membership from the team owned by the
// given project. A departing leader is allowed through; the acknowledgement
// flags the team as leaderless so the caller surface can warn. No successor
// leader is appointed.
func (u *TeamUsecase) LeaveTeam(ctx context.Context, projectID, userID uuid.UUID) (*entities.LeaveResult, error) {
	var result *entities.LeaveResult
	err := u.uow.Do(ctx, func(txCtx context.Context) error {
		team, err := u.teamRepo.GetByProjectID(txCtx, projectID)
		if err != nil {
			if errors.Is(err, domainerrors.ErrNotFound) {
				return domainerrors.NotFound("no team found for this project")
			}
			return err
		}

		member := team.FindMember(userID)
		if member == nil {
			return domainerrors.NotFound("you are not a member of this team")
		}
		wasLeader := member.IsLeader()

		if err := u.teamRepo.RemoveMember(txCtx, team.ID, userID); err != nil {
			if errors.Is(err, domainerrors.ErrNotFound) {
				return domainerrors.NotFound("you are not a member of this team")
			}
			return err
		}

		result = &entities.LeaveResult{
			TeamID:         team.ID,
			UserID:         userID,
			LeftLeaderless: wasLeader && team.LeaderCount() == 1,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// GetTeamByProject resolves a team with its membership list and owning
// project. A team may validly have zero members.
func (u *TeamUsecase) GetTeamByProject(ctx context.Context, projectID uuid.UUID) (*entities.Team, error) {
	team, err := u.teamRepo.GetByProjectID(ctx, projectID)
	if err != nil {
		if errors.Is(err, domainerrors.ErrNotFound) {
			return nil, domainerrors.NotFound("no team found for this project")
		}
		return nil, err
	}
	return team, nil
}
