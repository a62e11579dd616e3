package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wafflestudio/team2-server/internal/domain"
	"github.com/wafflestudio/team2-server/internal/repository"
	"github.com/wafflestudio/team2-server/pkg/jwt"
)

func TestRegisterAndLogin(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	resp, err := env.users.Register(ctx, &domain.RegisterRequest{
		Email:    "alice@example.com",
		Username: "alice",
		Password: "correct horse battery",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, resp.AccessToken)
	assert.NotEmpty(t, resp.RefreshToken)
	// Display name defaults to the username.
	assert.Equal(t, "alice", resp.User.DisplayName)

	_, err = env.users.Login(ctx, &domain.LoginRequest{
		Email:    "alice@example.com",
		Password: "wrong password",
	})
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	// Unknown accounts fail the same way as bad passwords.
	_, err = env.users.Login(ctx, &domain.LoginRequest{
		Email:    "ghost@example.com",
		Password: "whatever",
	})
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	logged, err := env.users.Login(ctx, &domain.LoginRequest{
		Email:    "alice@example.com",
		Password: "correct horse battery",
	})
	require.NoError(t, err)
	assert.Equal(t, resp.User.ID, logged.User.ID)
}

func TestRegisterConflicts(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	env.register(t, "alice")

	_, err := env.users.Register(ctx, &domain.RegisterRequest{
		Email:    "alice@example.com",
		Username: "different",
		Password: "some password",
	})
	assert.ErrorIs(t, err, repository.ErrEmailExists)

	_, err = env.users.Register(ctx, &domain.RegisterRequest{
		Email:    "other@example.com",
		Username: "alice",
		Password: "some password",
	})
	assert.ErrorIs(t, err, repository.ErrUsernameExists)
}

func TestRefreshTokens(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	resp, err := env.users.Register(ctx, &domain.RegisterRequest{
		Email:    "alice@example.com",
		Username: "alice",
		Password: "correct horse battery",
	})
	require.NoError(t, err)

	refreshed, err := env.users.Refresh(ctx, resp.RefreshToken)
	require.NoError(t, err)
	assert.Equal(t, resp.User.ID, refreshed.User.ID)
	assert.NotEmpty(t, refreshed.AccessToken)

	// An access token is not accepted as a refresh token.
	_, err = env.users.Refresh(ctx, resp.AccessToken)
	assert.Error(t, err)
}

func TestLogoutRevokesTokens(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	resp, err := env.users.Register(ctx, &domain.RegisterRequest{
		Email:    "alice@example.com",
		Username: "alice",
		Password: "correct horse battery",
	})
	require.NoError(t, err)

	require.NoError(t, env.users.Logout(ctx, resp.AccessToken, resp.RefreshToken))

	// Both tokens of the session are dead for the rest of their lifetime.
	_, err = env.tokens.ValidateToken(resp.AccessToken)
	assert.ErrorIs(t, err, jwt.ErrRevokedToken)
	_, err = env.users.Refresh(ctx, resp.RefreshToken)
	assert.ErrorIs(t, err, jwt.ErrRevokedToken)

	// Logging back in issues a fresh session unaffected by the logout.
	logged, err := env.users.Login(ctx, &domain.LoginRequest{
		Email:    "alice@example.com",
		Password: "correct horse battery",
	})
	require.NoError(t, err)
	_, err = env.tokens.ValidateToken(logged.AccessToken)
	assert.NoError(t, err)
}

func TestLogoutWithoutRefreshToken(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	resp, err := env.users.Register(ctx, &domain.RegisterRequest{
		Email:    "alice@example.com",
		Username: "alice",
		Password: "correct horse battery",
	})
	require.NoError(t, err)

	require.NoError(t, env.users.Logout(ctx, resp.AccessToken, ""))

	_, err = env.tokens.ValidateToken(resp.AccessToken)
	assert.ErrorIs(t, err, jwt.ErrRevokedToken)
	// The refresh token stays usable until it is presented and revoked.
	_, err = env.users.Refresh(ctx, resp.RefreshToken)
	assert.NoError(t, err)
}
