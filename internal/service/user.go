package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/HerosSMP/Heros-shop.de/internal/apperror"
	"github.com/HerosSMP/Heros-shop.de/internal/auth"
	"github.com/HerosSMP/Heros-shop.de/internal/model"
	"github.com/HerosSMP/Heros-shop.de/internal/repository"
)

const (
	MinUsernameLength = 3
	MaxUsernameLength = 50
	MinPasswordLength = 6
)

// UserService handles account management for the admin panel.
//
// The uniqueness rules (username, email) and the last-admin guard live
// HERE, not in the repository — the repository stores what it is told, the
// service decides what is allowed.
type UserService struct {
	repo      repository.UserRepository
	passwords *auth.PasswordService
	logger    *slog.Logger
}

func NewUserService(repo repository.UserRepository, passwords *auth.PasswordService, logger *slog.Logger) *UserService {
	return &UserService{
		repo:      repo,
		passwords: passwords,
		logger:    logger,
	}
}

// UpdateUserParams carries a partial user edit. Nil fields are not changed.
// The admin edit form only submits the fields that were actually touched —
// in particular, leaving the password box empty keeps the old password.
type UpdateUserParams struct {
	Username *string
	Password *string
	Email    *string
	Role     *model.Role
}

func validateUsername(username string) error {
	if len(username) < MinUsernameLength {
		return apperror.ValidationFailed("username",
			fmt.Sprintf("username must be at least %d characters", MinUsernameLength))
	}
	if len(username) > MaxUsernameLength {
		return apperror.ValidationFailed("username",
			fmt.Sprintf("username must be %d characters or less", MaxUsernameLength))
	}
	return nil
}

func validatePassword(password string) error {
	if len(password) < MinPasswordLength {
		return apperror.ValidationFailed("password",
			fmt.Sprintf("password must be at least %d characters", MinPasswordLength))
	}
	return nil
}

// checkUnique runs the username/email probes, excluding excludeID so edits
// don't collide with their own record. Empty probe values are skipped (an
// edit that doesn't touch the username doesn't probe it).
func (s *UserService) checkUnique(ctx context.Context, username, email, excludeID string) error {
	if username != "" {
		taken, err := s.repo.UsernameExists(ctx, username, excludeID)
		if err != nil {
			return fmt.Errorf("checking username: %w", err)
		}
		if taken {
			return apperror.Conflict("username", "username is already taken")
		}
	}
	if email != "" {
		taken, err := s.repo.EmailExists(ctx, email, excludeID)
		if err != nil {
			return fmt.Errorf("checking email: %w", err)
		}
		if taken {
			return apperror.Conflict("email", "email is already in use")
		}
	}
	return nil
}

// Create validates and registers a new account. The plaintext password is
// hashed here and never stored.
func (s *UserService) Create(ctx context.Context, username, password, email string, role model.Role) (*model.User, error) {
	username = strings.TrimSpace(username)
	email = strings.TrimSpace(email)

	if err := validateUsername(username); err != nil {
		return nil, err
	}
	if err := validatePassword(password); err != nil {
		return nil, err
	}
	if !emailPattern.MatchString(email) {
		return nil, apperror.ValidationFailed("email", "a valid email address is required")
	}
	if !role.Valid() {
		return nil, apperror.ValidationFailed("role", fmt.Sprintf("unknown role %q", role))
	}

	if err := s.checkUnique(ctx, username, email, ""); err != nil {
		return nil, err
	}

	hash, err := s.passwords.Hash(password)
	if err != nil {
		return nil, apperror.ValidationFailed("password", err.Error())
	}

	user := &model.User{
		Username:     username,
		PasswordHash: hash,
		Role:         role,
		Email:        email,
	}

	if err := s.repo.Create(ctx, user); err != nil {
		s.logger.Error("failed to create user",
			slog.String("username", username),
			slog.String("error", err.Error()),
		)
		return nil, fmt.Errorf("creating user: %w", err)
	}

	s.logger.Info("user created",
		slog.String("id", user.ID),
		slog.String("username", user.Username),
		slog.String("role", string(user.Role)),
	)

	return user, nil
}

// GetByID retrieves a user by their ID.
func (s *UserService) GetByID(ctx context.Context, id string) (*model.User, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, apperror.ValidationFailed("id", "user ID is required")
	}

	return s.repo.GetByID(ctx, id)
}

// List returns all users, newest first.
func (s *UserService) List(ctx context.Context) ([]model.User, error) {
	users, err := s.repo.List(ctx)
	if err != nil {
		s.logger.Error("failed to list users", slog.String("error", err.Error()))
		return nil, fmt.Errorf("listing users: %w", err)
	}
	return users, nil
}

// Update applies a partial edit to a user. Only non-nil params are
// validated and written; everything else is retained.
func (s *UserService) Update(ctx context.Context, id string, params UpdateUserParams) (*model.User, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, apperror.ValidationFailed("id", "user ID is required")
	}

	update := repository.UserUpdate{}
	var probeUsername, probeEmail string

	if params.Username != nil {
		username := strings.TrimSpace(*params.Username)
		if err := validateUsername(username); err != nil {
			return nil, err
		}
		update.Username = &username
		probeUsername = username
	}
	if params.Password != nil {
		if err := validatePassword(*params.Password); err != nil {
			return nil, err
		}
		hash, err := s.passwords.Hash(*params.Password)
		if err != nil {
			return nil, apperror.ValidationFailed("password", err.Error())
		}
		update.PasswordHash = &hash
	}
	if params.Email != nil {
		email := strings.TrimSpace(*params.Email)
		if !emailPattern.MatchString(email) {
			return nil, apperror.ValidationFailed("email", "a valid email address is required")
		}
		update.Email = &email
		probeEmail = email
	}
	if params.Role != nil {
		if !params.Role.Valid() {
			return nil, apperror.ValidationFailed("role", fmt.Sprintf("unknown role %q", *params.Role))
		}
		update.Role = params.Role
	}

	// The record's own id is excluded so keeping the same username/email
	// on an edit isn't reported as a duplicate.
	if err := s.checkUnique(ctx, probeUsername, probeEmail, id); err != nil {
		return nil, err
	}

	if err := s.repo.Update(ctx, id, update); err != nil {
		return nil, err
	}

	s.logger.Info("user updated", slog.String("id", id))

	return s.repo.GetByID(ctx, id)
}

// Delete removes a user — unless they are the last remaining admin.
//
// LAST-ADMIN GUARD: with zero admins nobody can log in to create one, so
// the final admin account is undeletable. The guard lives here so every
// caller gets it; the repository's Delete stays unconditional.
func (s *UserService) Delete(ctx context.Context, id string) error {
	id = strings.TrimSpace(id)
	if id == "" {
		return apperror.ValidationFailed("id", "user ID is required")
	}

	user, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if user.Role == model.RoleAdmin {
		admins, err := s.repo.CountAdmins(ctx)
		if err != nil {
			return fmt.Errorf("counting admins: %w", err)
		}
		if admins <= 1 {
			return apperror.Forbidden("cannot delete the last remaining admin")
		}
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	s.logger.Info("user deleted",
		slog.String("id", id),
		slog.String("username", user.Username),
	)
	return nil
}

// UsernameExists and EmailExists expose the uniqueness probes to the
// frontend, which pre-checks while the admin types. The create/update paths
// re-check server-side regardless — the probes are a convenience, not the
// enforcement.
func (s *UserService) UsernameExists(ctx context.Context, username, excludeID string) (bool, error) {
	return s.repo.UsernameExists(ctx, strings.TrimSpace(username), excludeID)
}

func (s *UserService) EmailExists(ctx context.Context, email, excludeID string) (bool, error) {
	return s.repo.EmailExists(ctx, strings.TrimSpace(email), excludeID)
}
