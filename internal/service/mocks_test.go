package service

// Hand-written in-memory mocks for the four repository interfaces.
//
// Instead of talking to SQLite, these store records in maps. The services
// don't know the difference — that's the point of taking the repository as
// an interface. Each mock honors the same contracts as the real thing
// (NotFound translation, forced pending status, partial user merge) so the
// service tests exercise realistic behavior.

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"sort"
	"testing"
	"time"

	"github.com/HerosSMP/Heros-shop.de/internal/apperror"
	"github.com/HerosSMP/Heros-shop.de/internal/model"
	"github.com/HerosSMP/Heros-shop.de/internal/repository"
)

func testLogger(t *testing.T) *slog.Logger {
	t.Helper()
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))
}

// --- products ---

type mockProductRepo struct {
	products map[string]*model.Product
	nextID   int
}

func newMockProductRepo() *mockProductRepo {
	return &mockProductRepo{products: make(map[string]*model.Product)}
}

func (m *mockProductRepo) Create(_ context.Context, product *model.Product) error {
	m.nextID++
	product.ID = fmt.Sprintf("product-%d", m.nextID)
	product.CreatedAt = time.Now()
	stored := *product
	m.products[product.ID] = &stored
	return nil
}

func (m *mockProductRepo) GetByID(_ context.Context, id string) (*model.Product, error) {
	product, ok := m.products[id]
	if !ok {
		return nil, apperror.NotFound("product", id)
	}
	result := *product
	return &result, nil
}

func (m *mockProductRepo) List(_ context.Context) ([]model.Product, error) {
	result := make([]model.Product, 0, len(m.products))
	for _, p := range m.products {
		result = append(result, *p)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result, nil
}

func (m *mockProductRepo) Update(_ context.Context, product *model.Product) error {
	if _, ok := m.products[product.ID]; !ok {
		return apperror.NotFound("product", product.ID)
	}
	stored := *product
	m.products[product.ID] = &stored
	return nil
}

func (m *mockProductRepo) Delete(_ context.Context, id string) error {
	if _, ok := m.products[id]; !ok {
		return apperror.NotFound("product", id)
	}
	delete(m.products, id)
	return nil
}

// --- orders ---

type mockOrderRepo struct {
	orders map[string]*model.Order
	nextID int
}

func newMockOrderRepo() *mockOrderRepo {
	return &mockOrderRepo{orders: make(map[string]*model.Order)}
}

func (m *mockOrderRepo) Create(_ context.Context, order *model.Order) error {
	m.nextID++
	order.ID = fmt.Sprintf("order-%d", m.nextID)
	order.Status = model.OrderStatusPending
	order.CreatedAt = time.Now()
	stored := *order
	m.orders[order.ID] = &stored
	return nil
}

func (m *mockOrderRepo) GetByID(_ context.Context, id string) (*model.Order, error) {
	order, ok := m.orders[id]
	if !ok {
		return nil, apperror.NotFound("order", id)
	}
	result := *order
	return &result, nil
}

func (m *mockOrderRepo) List(_ context.Context) ([]model.Order, error) {
	result := make([]model.Order, 0, len(m.orders))
	for _, o := range m.orders {
		result = append(result, *o)
	}
	// Newest first, like the real repository.
	sort.Slice(result, func(i, j int) bool {
		if !result[i].CreatedAt.Equal(result[j].CreatedAt) {
			return result[i].CreatedAt.After(result[j].CreatedAt)
		}
		return result[i].ID > result[j].ID
	})
	return result, nil
}

func (m *mockOrderRepo) UpdateStatus(_ context.Context, id string, status model.OrderStatus) error {
	order, ok := m.orders[id]
	if !ok {
		return apperror.NotFound("order", id)
	}
	order.Status = status
	return nil
}

func (m *mockOrderRepo) Delete(_ context.Context, id string) error {
	if _, ok := m.orders[id]; !ok {
		return apperror.NotFound("order", id)
	}
	delete(m.orders, id)
	return nil
}

func (m *mockOrderRepo) DeleteLast(ctx context.Context) (string, error) {
	all, _ := m.List(ctx)
	if len(all) == 0 {
		return "", apperror.NotFound("order", "latest")
	}
	id := all[0].ID
	delete(m.orders, id)
	return id, nil
}

// --- site texts ---

type mockSiteTextRepo struct {
	texts  map[string]*model.SiteText // keyed by text key, not id
	nextID int
}

func newMockSiteTextRepo() *mockSiteTextRepo {
	return &mockSiteTextRepo{texts: make(map[string]*model.SiteText)}
}

func (m *mockSiteTextRepo) Create(_ context.Context, text *model.SiteText) error {
	m.nextID++
	text.ID = fmt.Sprintf("text-%d", m.nextID)
	stored := *text
	m.texts[text.Key] = &stored
	return nil
}

func (m *mockSiteTextRepo) List(_ context.Context) ([]model.SiteText, error) {
	result := make([]model.SiteText, 0, len(m.texts))
	for _, txt := range m.texts {
		result = append(result, *txt)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result, nil
}

func (m *mockSiteTextRepo) GetValue(_ context.Context, key string) (string, error) {
	text, ok := m.texts[key]
	if !ok {
		return key, nil // fallback to the key, same as the real repository
	}
	return text.Value, nil
}

func (m *mockSiteTextRepo) UpdateValue(_ context.Context, key, value string) error {
	text, ok := m.texts[key]
	if !ok {
		return apperror.NotFound("site text", key)
	}
	text.Value = value
	return nil
}

func (m *mockSiteTextRepo) Delete(_ context.Context, id string) error {
	for key, text := range m.texts {
		if text.ID == id {
			delete(m.texts, key)
			return nil
		}
	}
	return apperror.NotFound("site text", id)
}

// --- users ---

type mockUserRepo struct {
	users  map[string]*model.User
	nextID int
}

func newMockUserRepo() *mockUserRepo {
	return &mockUserRepo{users: make(map[string]*model.User)}
}

func (m *mockUserRepo) Create(_ context.Context, user *model.User) error {
	m.nextID++
	user.ID = fmt.Sprintf("user-%d", m.nextID)
	user.CreatedAt = time.Now()
	stored := *user
	m.users[user.ID] = &stored
	return nil
}

func (m *mockUserRepo) GetByID(_ context.Context, id string) (*model.User, error) {
	user, ok := m.users[id]
	if !ok {
		return nil, apperror.NotFound("user", id)
	}
	result := *user
	return &result, nil
}

func (m *mockUserRepo) GetByUsername(_ context.Context, username string) (*model.User, error) {
	for _, u := range m.users {
		if u.Username == username {
			result := *u
			return &result, nil
		}
	}
	return nil, apperror.NotFound("user", username)
}

func (m *mockUserRepo) List(_ context.Context) ([]model.User, error) {
	result := make([]model.User, 0, len(m.users))
	for _, u := range m.users {
		result = append(result, *u)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID > result[j].ID })
	return result, nil
}

func (m *mockUserRepo) Update(_ context.Context, id string, update repository.UserUpdate) error {
	user, ok := m.users[id]
	if !ok {
		return apperror.NotFound("user", id)
	}
	if update.Username != nil {
		user.Username = *update.Username
	}
	if update.PasswordHash != nil {
		user.PasswordHash = *update.PasswordHash
	}
	if update.Role != nil {
		user.Role = *update.Role
	}
	if update.Email != nil {
		user.Email = *update.Email
	}
	return nil
}

func (m *mockUserRepo) Delete(_ context.Context, id string) error {
	if _, ok := m.users[id]; !ok {
		return apperror.NotFound("user", id)
	}
	delete(m.users, id)
	return nil
}

func (m *mockUserRepo) UsernameExists(_ context.Context, username, excludeID string) (bool, error) {
	for _, u := range m.users {
		if u.Username == username && u.ID != excludeID {
			return true, nil
		}
	}
	return false, nil
}

func (m *mockUserRepo) EmailExists(_ context.Context, email, excludeID string) (bool, error) {
	for _, u := range m.users {
		if u.Email == email && u.ID != excludeID {
			return true, nil
		}
	}
	return false, nil
}

func (m *mockUserRepo) CountAdmins(_ context.Context) (int, error) {
	count := 0
	for _, u := range m.users {
		if u.Role == model.RoleAdmin {
			count++
		}
	}
	return count, nil
}

func (m *mockUserRepo) UpdateLastLogin(_ context.Context, id string, at time.Time) error {
	user, ok := m.users[id]
	if !ok {
		return apperror.NotFound("user", id)
	}
	stamp := at
	user.LastLogin = &stamp
	return nil
}
