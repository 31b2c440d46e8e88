// Package service manages login state: backend authentication, token
// persistence in the OS keyring, and the user record on disk.
package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/golang-jwt/jwt/v5"

	"leadclip/internal/modules/auth/domain"
	authout "leadclip/internal/modules/auth/port/out"
	"leadclip/internal/platform/clock"
	apperrors "leadclip/internal/platform/errors"
)

type AuthService struct {
	clock  clock.Clock
	api    authout.AuthAPI
	tokens authout.TokenStore
	users  authout.UserStore
}

func NewAuthService(clk clock.Clock, api authout.AuthAPI, tokens authout.TokenStore, users authout.UserStore) *AuthService {
	return &AuthService{clock: clk, api: api, tokens: tokens, users: users}
}

func (s *AuthService) Login(ctx context.Context, email, password string) (domain.Session, error) {
	user, token, err := s.api.Login(ctx, email, password)
	if err != nil {
		return domain.Session{}, err
	}
	return s.persist(ctx, user, token)
}

func (s *AuthService) DashboardLogin(ctx context.Context, email, password string) (domain.Session, error) {
	user, token, err := s.api.DashboardLogin(ctx, email, password)
	if err != nil {
		return domain.Session{}, err
	}
	return s.persist(ctx, user, token)
}

func (s *AuthService) persist(ctx context.Context, user domain.User, token string) (domain.Session, error) {
	if err := s.users.Save(ctx, user); err != nil {
		return domain.Session{}, fmt.Errorf("persist user: %w", err)
	}
	if err := s.tokens.Save(token); err != nil {
		return domain.Session{}, fmt.Errorf("persist token: %w", err)
	}
	return s.sessionFrom(user, token), nil
}

// Current loads the stored session. A missing token or user record
// means nobody is logged in.
func (s *AuthService) Current(ctx context.Context) (domain.Session, error) {
	token, err := s.tokens.Load()
	if err != nil || token == "" {
		return domain.Session{}, apperrors.ErrNotLoggedIn
	}
	user, err := s.users.Load(ctx)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotLoggedIn) {
			return domain.Session{}, err
		}
		return domain.Session{}, fmt.Errorf("load user: %w", err)
	}
	session := s.sessionFrom(user, token)
	if session.Expired(s.clock.Now()) {
		return domain.Session{}, apperrors.ErrNotLoggedIn
	}
	return session, nil
}

func (s *AuthService) ChangePassword(ctx context.Context, currentPassword, newPassword string) error {
	session, err := s.Current(ctx)
	if err != nil {
		return err
	}
	return s.api.ChangePassword(ctx, session.Token, currentPassword, newPassword)
}

func (s *AuthService) Logout(ctx context.Context) error {
	tokenErr := s.tokens.Clear()
	userErr := s.users.Clear(ctx)
	if tokenErr != nil {
		return fmt.Errorf("clear token: %w", tokenErr)
	}
	if userErr != nil {
		return fmt.Errorf("clear user: %w", userErr)
	}
	return nil
}

// sessionFrom builds the session, preferring JWT claims for role and
// expiry when the token parses as one. The signature is not checked
// here; the backend verifies on every request.
func (s *AuthService) sessionFrom(user domain.User, token string) domain.Session {
	session := domain.Session{User: user, Token: token}
	claims := jwt.MapClaims{}
	parser := jwt.NewParser()
	if _, _, err := parser.ParseUnverified(token, claims); err != nil {
		return session
	}
	if role, ok := claims["role"].(string); ok && role != "" {
		session.User.Role = role
	}
	if exp, err := claims.GetExpirationTime(); err == nil && exp != nil {
		session.ExpiresAt = exp.Time
	}
	return session
}
