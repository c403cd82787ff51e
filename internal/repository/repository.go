// Package repository declares the storage interfaces for the four shop
// collections. The service layer depends on these interfaces; the sqlite
// subpackage provides the implementation. Tests swap in hand-written mocks.
package repository

import (
	"context"
	"time"

	"github.com/HerosSMP/Heros-shop.de/internal/model"
)

type ProductRepository interface {
	Create(ctx context.Context, product *model.Product) error
	GetByID(ctx context.Context, id string) (*model.Product, error)
	List(ctx context.Context) ([]model.Product, error)
	Update(ctx context.Context, product *model.Product) error
	Delete(ctx context.Context, id string) error
}

type OrderRepository interface {
	Create(ctx context.Context, order *model.Order) error
	GetByID(ctx context.Context, id string) (*model.Order, error)
	// List returns orders newest-first (sorted by creation time).
	List(ctx context.Context) ([]model.Order, error)
	UpdateStatus(ctx context.Context, id string, status model.OrderStatus) error
	Delete(ctx context.Context, id string) error
	// DeleteLast removes the most recently created order and returns its id.
	// Returns apperror.ErrNotFound when there are no orders.
	DeleteLast(ctx context.Context) (string, error)
}

type SiteTextRepository interface {
	Create(ctx context.Context, text *model.SiteText) error
	List(ctx context.Context) ([]model.SiteText, error)
	// GetValue resolves a text key to its value. Unknown keys fall back to
	// the key itself, so rendering never fails on missing copy.
	GetValue(ctx context.Context, key string) (string, error)
	UpdateValue(ctx context.Context, key, value string) error
	Delete(ctx context.Context, id string) error
}

// UserUpdate carries a partial update for a user record. Nil fields are
// left untouched — this is the shallow-merge contract user edits rely on.
type UserUpdate struct {
	Username     *string
	PasswordHash *string
	Role         *model.Role
	Email        *string
}

type UserRepository interface {
	Create(ctx context.Context, user *model.User) error
	GetByID(ctx context.Context, id string) (*model.User, error)
	GetByUsername(ctx context.Context, username string) (*model.User, error)
	// List returns users newest-first (sorted by creation time).
	List(ctx context.Context) ([]model.User, error)
	Update(ctx context.Context, id string, update UserUpdate) error
	Delete(ctx context.Context, id string) error
	// UsernameExists / EmailExists are the uniqueness probes used before
	// create/update. excludeID lets an edit-in-progress ignore its own
	// record; pass "" when creating.
	UsernameExists(ctx context.Context, username, excludeID string) (bool, error)
	EmailExists(ctx context.Context, email, excludeID string) (bool, error)
	CountAdmins(ctx context.Context) (int, error)
	UpdateLastLogin(ctx context.Context, id string, at time.Time) error
}
