package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/rs/xid"

	"github.com/HerosSMP/Heros-shop.de/internal/apperror"
	"github.com/HerosSMP/Heros-shop.de/internal/model"
	"github.com/HerosSMP/Heros-shop.de/internal/repository"
)

var _ repository.UserRepository = (*UserRepo)(nil)

// UserRepo stores user accounts.
type UserRepo struct {
	conn *sql.DB
}

// Create inserts a new user. The caller (service layer) is responsible for
// hashing the password and probing username/email uniqueness first; the
// UNIQUE constraints are the backstop.
func (r *UserRepo) Create(ctx context.Context, user *model.User) error {
	user.ID = xid.New().String()
	user.CreatedAt = time.Now()

	_, err := r.conn.ExecContext(ctx,
		`INSERT INTO users (id, username, password_hash, role, email, created_at, last_login)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		user.ID,
		user.Username,
		user.PasswordHash,
		user.Role,
		user.Email,
		user.CreatedAt,
		user.LastLogin,
	)
	if err != nil {
		return fmt.Errorf("sqlite: creating user %q: %w", user.Username, err)
	}

	return nil
}

// GetByID retrieves a user by their internal ID.
// Returns apperror.ErrNotFound if no user exists with that ID.
func (r *UserRepo) GetByID(ctx context.Context, id string) (*model.User, error) {
	return r.getOne(ctx,
		`SELECT id, username, password_hash, role, email, created_at, last_login
		 FROM users WHERE id = ?`,
		id, id)
}

// GetByUsername retrieves a user by their exact username. The lookup is
// case-sensitive — "Admin" and "admin" are different accounts.
func (r *UserRepo) GetByUsername(ctx context.Context, username string) (*model.User, error) {
	return r.getOne(ctx,
		`SELECT id, username, password_hash, role, email, created_at, last_login
		 FROM users WHERE username = ?`,
		username, username)
}

// getOne runs a single-row user query and maps sql.ErrNoRows to NotFound.
func (r *UserRepo) getOne(ctx context.Context, query, arg, notFoundID string) (*model.User, error) {
	var (
		u         model.User
		lastLogin sql.NullTime
	)

	err := r.conn.QueryRowContext(ctx, query, arg).Scan(
		&u.ID,
		&u.Username,
		&u.PasswordHash,
		&u.Role,
		&u.Email,
		&u.CreatedAt,
		&lastLogin,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, apperror.NotFound("user", notFoundID)
		}
		return nil, fmt.Errorf("sqlite: getting user %s: %w", notFoundID, err)
	}

	// sql.NullTime bridges the nullable last_login column and the *time.Time
	// model field — NULL stays nil, anything else becomes a pointer.
	if lastLogin.Valid {
		t := lastLogin.Time
		u.LastLogin = &t
	}

	return &u, nil
}

// List returns all users, newest first — same data-layer ordering contract
// as orders.
func (r *UserRepo) List(ctx context.Context) ([]model.User, error) {
	rows, err := r.conn.QueryContext(ctx,
		`SELECT id, username, password_hash, role, email, created_at, last_login
		 FROM users
		 ORDER BY created_at DESC, id DESC`,
	)
	if err != nil {
		return nil, fmt.Errorf("sqlite: listing users: %w", err)
	}
	defer rows.Close()

	users := []model.User{}
	for rows.Next() {
		var (
			u         model.User
			lastLogin sql.NullTime
		)
		if err := rows.Scan(
			&u.ID, &u.Username, &u.PasswordHash, &u.Role,
			&u.Email, &u.CreatedAt, &lastLogin,
		); err != nil {
			return nil, fmt.Errorf("sqlite: scanning user row: %w", err)
		}
		if lastLogin.Valid {
			t := lastLogin.Time
			u.LastLogin = &t
		}
		users = append(users, u)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("sqlite: iterating users: %w", err)
	}

	return users, nil
}

// Update applies a partial update: nil fields in the UserUpdate are left
// untouched. This is the shallow-merge contract the admin's edit form
// relies on — it only sends the fields the admin actually changed.
//
// Implemented as fetch-then-write so the merge happens in Go rather than in
// dynamically assembled SQL.
func (r *UserRepo) Update(ctx context.Context, id string, update repository.UserUpdate) error {
	existing, err := r.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if update.Username != nil {
		existing.Username = *update.Username
	}
	if update.PasswordHash != nil {
		existing.PasswordHash = *update.PasswordHash
	}
	if update.Role != nil {
		existing.Role = *update.Role
	}
	if update.Email != nil {
		existing.Email = *update.Email
	}

	_, err = r.conn.ExecContext(ctx,
		`UPDATE users SET username = ?, password_hash = ?, role = ?, email = ?
		 WHERE id = ?`,
		existing.Username,
		existing.PasswordHash,
		existing.Role,
		existing.Email,
		id,
	)
	if err != nil {
		return fmt.Errorf("sqlite: updating user %s: %w", id, err)
	}

	return nil
}

// Delete removes a user by their ID. The last-admin guard lives in the
// service layer — this method deletes whoever it is told to.
func (r *UserRepo) Delete(ctx context.Context, id string) error {
	result, err := r.conn.ExecContext(ctx,
		`DELETE FROM users WHERE id = ?`,
		id,
	)
	if err != nil {
		return fmt.Errorf("sqlite: deleting user %s: %w", id, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("sqlite: checking rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return apperror.NotFound("user", id)
	}

	return nil
}

// UsernameExists reports whether any user other than excludeID already has
// this username. Pass excludeID="" when creating; pass the record's own id
// when editing so it doesn't collide with itself.
func (r *UserRepo) UsernameExists(ctx context.Context, username, excludeID string) (bool, error) {
	var count int
	err := r.conn.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM users WHERE username = ? AND id != ?`,
		username, excludeID,
	).Scan(&count)
	if err != nil {
		return false, fmt.Errorf("sqlite: checking username %q: %w", username, err)
	}
	return count > 0, nil
}

// EmailExists is the email counterpart of UsernameExists.
func (r *UserRepo) EmailExists(ctx context.Context, email, excludeID string) (bool, error) {
	var count int
	err := r.conn.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM users WHERE email = ? AND id != ?`,
		email, excludeID,
	).Scan(&count)
	if err != nil {
		return false, fmt.Errorf("sqlite: checking email %q: %w", email, err)
	}
	return count > 0, nil
}

// CountAdmins returns how many admin accounts exist. Used by the service
// layer's last-admin delete guard.
func (r *UserRepo) CountAdmins(ctx context.Context) (int, error) {
	var count int
	err := r.conn.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM users WHERE role = ?`,
		model.RoleAdmin,
	).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("sqlite: counting admins: %w", err)
	}
	return count, nil
}

// UpdateLastLogin stamps the user's last successful login time.
func (r *UserRepo) UpdateLastLogin(ctx context.Context, id string, at time.Time) error {
	result, err := r.conn.ExecContext(ctx,
		`UPDATE users SET last_login = ? WHERE id = ?`,
		at, id,
	)
	if err != nil {
		return fmt.Errorf("sqlite: updating last login for user %s: %w", id, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("sqlite: checking rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return apperror.NotFound("user", id)
	}

	return nil
}
