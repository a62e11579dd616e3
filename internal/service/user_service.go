package service

import (
	"context"
	"errors"

	"golang.org/x/crypto/bcrypt"

	"github.com/wafflestudio/team2-server/internal/domain"
	"github.com/wafflestudio/team2-server/internal/repository"
	"github.com/wafflestudio/team2-server/pkg/jwt"
	"github.com/wafflestudio/team2-server/pkg/log"
)

// userService implements UserService.
type userService struct {
	users  repository.UserRepository
	tokens *jwt.Manager
}

// NewUserService creates the user service.
func NewUserService(users repository.UserRepository, tokens *jwt.Manager) UserService {
	return &userService{users: users, tokens: tokens}
}

func (s *userService) Register(ctx context.Context, req *domain.RegisterRequest) (*domain.AuthResponse, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	displayName := req.DisplayName
	if displayName == "" {
		displayName = req.Username
	}

	user := domain.User{
		Email:        req.Email,
		Username:     req.Username,
		DisplayName:  displayName,
		PasswordHash: string(hash),
	}
	if err := s.users.Create(ctx, &user); err != nil {
		return nil, err
	}

	logger := log.Ctx(ctx)
	logger.Info().
		Str(log.FieldUserID, user.ID).
		Str(log.FieldUsername, user.Username).
		Msg("user registered")

	return s.issueTokens(&user)
}

func (s *userService) Login(ctx context.Context, req *domain.LoginRequest) (*domain.AuthResponse, error) {
	user, err := s.users.GetByEmail(ctx, req.Email)
	if err != nil {
		// Hide whether the account exists.
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	return s.issueTokens(user)
}

func (s *userService) Refresh(ctx context.Context, refreshToken string) (*domain.AuthResponse, error) {
	access, refresh, accessExp, _, err := s.tokens.RefreshTokens(refreshToken)
	if err != nil {
		return nil, err
	}

	claims, err := s.tokens.ValidateToken(access)
	if err != nil {
		return nil, err
	}
	user, err := s.users.GetByID(ctx, claims.UserID)
	if err != nil {
		return nil, err
	}

	return &domain.AuthResponse{
		User:         user.ToResponse(),
		AccessToken:  access,
		RefreshToken: refresh,
		ExpiresAt:    accessExp,
	}, nil
}

func (s *userService) Logout(ctx context.Context, accessToken, refreshToken string) error {
	if err := s.tokens.RevokeToken(accessToken); err != nil {
		return err
	}
	if refreshToken != "" {
		err := s.tokens.RevokeToken(refreshToken)
		// A refresh token that no longer validates has nothing left to
		// revoke.
		if err != nil && !errors.Is(err, jwt.ErrInvalidToken) && !errors.Is(err, jwt.ErrExpiredToken) {
			return err
		}
	}
	return nil
}

func (s *userService) GetByID(ctx context.Context, id string) (*domain.User, error) {
	return s.users.GetByID(ctx, id)
}

func (s *userService) issueTokens(user *domain.User) (*domain.AuthResponse, error) {
	access, refresh, accessExp, _, err := s.tokens.GenerateTokenPair(user.ID, user.Username)
	if err != nil {
		return nil, err
	}
	return &domain.AuthResponse{
		User:         user.ToResponse(),
		AccessToken:  access,
		RefreshToken: refresh,
		ExpiresAt:    accessExp,
	}, nil
}

var _ UserService = (*userService)(nil)
