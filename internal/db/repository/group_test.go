package repository

import (
	"testing"

	_ "github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	internaldb "github.com/marcelofalero/swse-architech/internal/db"
	"github.com/marcelofalero/swse-architech/internal/domain"
)

func TestGroupMembership(t *testing.T) {
	db, _ := internaldb.OpenTestSQLite(t)
	repo := NewGroupRepo(db)

	group, err := repo.Create(ctx, &domain.Group{Name: "squadron", OwnerID: "owner"})
	require.NoError(t, err)
	require.NotEmpty(t, group.ID)

	require.NoError(t, repo.AddMember(ctx, group.ID, "u1"))
	require.NoError(t, repo.AddMember(ctx, group.ID, "u2"))
	// Re-adding is a no-op, not an error.
	require.NoError(t, repo.AddMember(ctx, group.ID, "u1"))

	members, err := repo.ListMembers(ctx, group.ID)
	require.NoError(t, err)
	assert.Len(t, members, 2)

	mine, err := repo.ListMembershipsForUser(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, mine, 1)
	assert.Equal(t, group.ID, mine[0].GroupID)

	require.NoError(t, repo.RemoveMember(ctx, group.ID, "u1"))
	mine, err = repo.ListMembershipsForUser(ctx, "u1")
	require.NoError(t, err)
	assert.Empty(t, mine)
}

func TestGroupNotFound(t *testing.T) {
	db, _ := internaldb.OpenTestSQLite(t)
	repo := NewGroupRepo(db)

	var notFound *domain.NotFoundError
	_, err := repo.GetByID(ctx, "nope")
	require.ErrorAs(t, err, &notFound)
}
