package repositories

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
	"projecthub.backend/internal/domain/entities"
)

func TestUnitOfWork_CommitAndRollback(t *testing.T) {
	db := newTestDB(t)
	createUserTable(t, db)
	createProjectTable(t, db)
	createTeamTables(t, db)
	ctx := context.Background()

	_, team := seedProjectAndTeam(t, db, "UOW123")
	alice := seedUser(t, db, "alice@example.com")

	uow := NewUnitOfWork(db)
	teamRepo := NewTeamRepository(db)

	// Commit path: the membership written inside the tx is visible after.
	err := uow.Do(ctx, func(txCtx context.Context) error {
		return teamRepo.AddMember(txCtx, team.ID, alice.ID, entities.MemberRegular)
	})
	require.NoError(t, err)

	got, err := teamRepo.GetByCode(ctx, "UOW123")
	require.NoError(t, err)
	require.Len(t, got.Members, 1)

	// Rollback path: a failing fn leaves no partial write behind.
	bob := seedUser(t, db, "bob@example.com")
	boom := errors.New("boom")
	err = uow.Do(ctx, func(txCtx context.Context) error {
		if err := teamRepo.AddMember(txCtx, team.ID, bob.ID, entities.MemberRegular); err != nil {
			return err
		}
		return boom
	})
	require.ErrorIs(t, err, boom)

	got, err = teamRepo.GetByCode(ctx, "UOW123")
	require.NoError(t, err)
	require.Len(t, got.Members, 1, "rolled-back membership must not persist")
	require.Equal(t, alice.ID, got.Members[0].User.ID)
}
