// Authentication business logic.
//
// AuthService sits between the HTTP handlers and the repository/auth
// utilities:
//
//	AuthHandler (HTTP) → AuthService (credential rules) → UserRepository (DB)
//	                   ↘ auth.TokenService (JWT)
//
// It does NOT set cookies or read requests — those are handler concerns.
package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/HerosSMP/Heros-shop.de/internal/apperror"
	"github.com/HerosSMP/Heros-shop.de/internal/auth"
	"github.com/HerosSMP/Heros-shop.de/internal/model"
	"github.com/HerosSMP/Heros-shop.de/internal/repository"
)

// AuthService handles admin login.
type AuthService struct {
	users      repository.UserRepository
	tokens     *auth.TokenService
	passwords  *auth.PasswordService
	sessionTTL time.Duration
	logger     *slog.Logger
}

func NewAuthService(
	users repository.UserRepository,
	tokens *auth.TokenService,
	passwords *auth.PasswordService,
	sessionTTL time.Duration,
	logger *slog.Logger,
) *AuthService {
	return &AuthService{
		users:      users,
		tokens:     tokens,
		passwords:  passwords,
		sessionTTL: sessionTTL,
		logger:     logger,
	}
}

// AuthResult bundles the authenticated user and the issued session token so
// the handler can set the cookie and respond in one step.
type AuthResult struct {
	User  *model.User
	Token string
}

// Login verifies admin credentials and issues a session token.
//
// FAILS CLOSED: an unknown username, a wrong password, a case mismatch, or
// a non-admin role all return the same generic Unauthorized error — the
// response never reveals WHICH check failed, so an attacker can't probe for
// valid usernames.
//
// On success the user's LastLogin is stamped with the current time and
// persisted before the result is returned.
func (s *AuthService) Login(ctx context.Context, username, password string) (*AuthResult, error) {
	failed := apperror.Unauthorized("invalid credentials")

	user, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, apperror.ErrNotFound) {
			s.logger.Info("login failed: unknown username", slog.String("username", username))
			return nil, failed
		}
		return nil, fmt.Errorf("service/auth: looking up user %q: %w", username, err)
	}

	// Only admins may log in — a "user" role account with the right
	// password is still rejected.
	if user.Role != model.RoleAdmin {
		s.logger.Info("login failed: not an admin", slog.String("username", username))
		return nil, failed
	}

	if err := s.passwords.Verify(user.PasswordHash, password); err != nil {
		s.logger.Info("login failed: wrong password", slog.String("username", username))
		return nil, failed
	}

	now := time.Now()
	if err := s.users.UpdateLastLogin(ctx, user.ID, now); err != nil {
		return nil, fmt.Errorf("service/auth: stamping last login for %s: %w", user.ID, err)
	}
	user.LastLogin = &now

	token, err := s.tokens.Generate(user.ID, s.sessionTTL)
	if err != nil {
		return nil, fmt.Errorf("service/auth: generating token for user %s: %w", user.ID, err)
	}

	s.logger.Info("admin logged in",
		slog.String("userID", user.ID),
		slog.String("username", user.Username),
	)

	return &AuthResult{
		User:  user,
		Token: token,
	}, nil
}

// SessionTTL returns the configured session lifetime. The handler needs it
// for the cookie's MaxAge.
func (s *AuthService) SessionTTL() time.Duration {
	return s.sessionTTL
}

// CurrentUser returns the account for an authenticated session's userID.
// Used by the /api/auth/me handler after the middleware validates the JWT.
func (s *AuthService) CurrentUser(ctx context.Context, id string) (*model.User, error) {
	if id == "" {
		return nil, apperror.Unauthorized("no session")
	}

	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		// The account may have been deleted while the token was still
		// valid — treat that as an expired session, not a 404.
		if errors.Is(err, apperror.ErrNotFound) {
			return nil, apperror.Unauthorized("session user no longer exists")
		}
		return nil, fmt.Errorf("service/auth: fetching user %s: %w", id, err)
	}

	return user, nil
}
