package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wafflestudio/team2-server/internal/domain"
)

func TestUserCreateAndLookup(t *testing.T) {
	db := testDB(t)
	ctx := context.Background()
	users := NewGormUserRepository(db)

	alice := seedUser(t, db, "alice")
	assert.NotEmpty(t, alice.ID)

	byID, err := users.GetByID(ctx, alice.ID)
	require.NoError(t, err)
	assert.Equal(t, "alice", byID.Username)

	byEmail, err := users.GetByEmail(ctx, "alice@example.com")
	require.NoError(t, err)
	assert.Equal(t, alice.ID, byEmail.ID)

	_, err = users.GetByID(ctx, "missing")
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestUserCreateConflicts(t *testing.T) {
	db := testDB(t)
	ctx := context.Background()
	users := NewGormUserRepository(db)

	seedUser(t, db, "alice")

	dupEmail := domain.User{
		Email:        "alice@example.com",
		Username:     "someone-else",
		PasswordHash: "hash",
	}
	assert.ErrorIs(t, users.Create(ctx, &dupEmail), ErrEmailExists)

	dupUsername := domain.User{
		Email:        "fresh@example.com",
		Username:     "alice",
		PasswordHash: "hash",
	}
	assert.ErrorIs(t, users.Create(ctx, &dupUsername), ErrUsernameExists)
}

func TestUserGetByIDs(t *testing.T) {
	db := testDB(t)
	ctx := context.Background()
	users := NewGormUserRepository(db)

	alice := seedUser(t, db, "alice")
	bob := seedUser(t, db, "bob")

	got, err := users.GetByIDs(ctx, []string{alice.ID, bob.ID, "missing"})
	require.NoError(t, err)
	assert.Len(t, got, 2)
	assert.Equal(t, "alice", got[alice.ID].Username)
	assert.NotContains(t, got, "missing")

	empty, err := users.GetByIDs(ctx, nil)
	require.NoError(t, err)
	assert.Empty(t, empty)
}

func TestUserSearch(t *testing.T) {
	db := testDB(t)
	ctx := context.Background()
	users := NewGormUserRepository(db)

	seedUser(t, db, "gopher")
	seedUser(t, db, "gopherina")
	seedUser(t, db, "rustacean")

	found, p, err := users.Search(ctx, "gopher", 1, 10)
	require.NoError(t, err)
	assert.Equal(t, int64(2), p.Total)
	assert.Len(t, found, 2)
}
