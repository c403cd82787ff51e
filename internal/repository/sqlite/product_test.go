package sqlite

import (
	"context"
	"errors"
	"testing"

	"github.com/HerosSMP/Heros-shop.de/internal/apperror"
	"github.com/HerosSMP/Heros-shop.de/internal/model"
)

func createTestProduct(t *testing.T, db *DB, title string, price float64) *model.Product {
	t.Helper()
	product := &model.Product{Title: title, Description: "test product", Price: price}
	if err := db.Products.Create(context.Background(), product); err != nil {
		t.Fatalf("failed to create test product: %v", err)
	}
	return product
}

func TestProductCreate(t *testing.T) {
	db := newTestDB(t)

	product := &model.Product{
		Title:       "VIP Rang",
		Description: "VIP-Status mit exklusiven Vorteilen",
		Price:       9.99,
		Image:       "/placeholder.svg",
	}

	if err := db.Products.Create(context.Background(), product); err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	// The caller's struct is filled in-place.
	if product.ID == "" {
		t.Error("Create() did not set product.ID")
	}
	if product.CreatedAt.IsZero() {
		t.Error("Create() did not set product.CreatedAt")
	}
}

func TestProductGetByID(t *testing.T) {
	db := newTestDB(t)
	created := createTestProduct(t, db, "Premium Kit", 4.99)

	found, err := db.Products.GetByID(context.Background(), created.ID)
	if err != nil {
		t.Fatalf("GetByID() error = %v", err)
	}

	if found.Title != "Premium Kit" {
		t.Errorf("Title = %q, want %q", found.Title, "Premium Kit")
	}
	if found.Price != 4.99 {
		t.Errorf("Price = %v, want 4.99", found.Price)
	}
}

func TestProductGetByID_NotFound(t *testing.T) {
	db := newTestDB(t)

	_, err := db.Products.GetByID(context.Background(), "nonexistent-id")
	if !errors.Is(err, apperror.ErrNotFound) {
		t.Errorf("GetByID() error = %v, want ErrNotFound", err)
	}
}

func TestProductList_Empty(t *testing.T) {
	db := newTestDB(t)

	products, err := db.Products.List(context.Background())
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(products) != 0 {
		t.Errorf("List() returned %d products, want 0", len(products))
	}
}

func TestProductList_InsertionOrder(t *testing.T) {
	db := newTestDB(t)

	first := createTestProduct(t, db, "first", 1)
	second := createTestProduct(t, db, "second", 2)
	third := createTestProduct(t, db, "third", 3)

	products, err := db.Products.List(context.Background())
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(products) != 3 {
		t.Fatalf("List() returned %d products, want 3", len(products))
	}

	// The catalog lists oldest-first, unlike orders and users.
	wantOrder := []string{first.ID, second.ID, third.ID}
	for i, want := range wantOrder {
		if products[i].ID != want {
			t.Errorf("products[%d].ID = %s, want %s (%s)", i, products[i].ID, want, products[i].Title)
		}
	}
}

func TestProductUpdate(t *testing.T) {
	db := newTestDB(t)
	product := createTestProduct(t, db, "old title", 1.00)
	originalCreatedAt := product.CreatedAt

	product.Title = "new title"
	product.Price = 2.50
	product.Image = "data:image/png;base64,xyz"

	if err := db.Products.Update(context.Background(), product); err != nil {
		t.Fatalf("Update() error = %v", err)
	}

	found, err := db.Products.GetByID(context.Background(), product.ID)
	if err != nil {
		t.Fatalf("GetByID() after update error = %v", err)
	}
	if found.Title != "new title" {
		t.Errorf("Title = %q, want %q", found.Title, "new title")
	}
	if found.Price != 2.50 {
		t.Errorf("Price = %v, want 2.50", found.Price)
	}
	// created_at is immutable.
	if !found.CreatedAt.Equal(originalCreatedAt) {
		t.Errorf("CreatedAt changed on update: %v → %v", originalCreatedAt, found.CreatedAt)
	}
}

func TestProductUpdate_NotFound(t *testing.T) {
	db := newTestDB(t)

	err := db.Products.Update(context.Background(), &model.Product{ID: "nonexistent", Title: "x"})
	if !errors.Is(err, apperror.ErrNotFound) {
		t.Errorf("Update() error = %v, want ErrNotFound", err)
	}
}

func TestProductDelete(t *testing.T) {
	db := newTestDB(t)
	product := createTestProduct(t, db, "to delete", 1)

	if err := db.Products.Delete(context.Background(), product.ID); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}

	_, err := db.Products.GetByID(context.Background(), product.ID)
	if !errors.Is(err, apperror.ErrNotFound) {
		t.Errorf("GetByID() after delete: error = %v, want ErrNotFound", err)
	}
}

func TestProductDelete_NotFound(t *testing.T) {
	db := newTestDB(t)

	err := db.Products.Delete(context.Background(), "nonexistent-id")
	if !errors.Is(err, apperror.ErrNotFound) {
		t.Errorf("Delete() error = %v, want ErrNotFound", err)
	}
}

// Deleting a product must not touch orders that reference it — order history
// keeps the dangling product_id.
func TestProductDelete_OrdersKeepDanglingReference(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	product := createTestProduct(t, db, "soon gone", 9.99)

	order := &model.Order{
		ProductID:       product.ID,
		Email:           "kunde@example.com",
		DiscordName:     "kunde#0001",
		PaysafecardCode: "1234-5678-9012-3456",
	}
	if err := db.Orders.Create(ctx, order); err != nil {
		t.Fatalf("creating order: %v", err)
	}

	if err := db.Products.Delete(ctx, product.ID); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}

	found, err := db.Orders.GetByID(ctx, order.ID)
	if err != nil {
		t.Fatalf("order should survive product deletion, got error = %v", err)
	}
	if found.ProductID != product.ID {
		t.Errorf("order.ProductID = %q, want dangling %q", found.ProductID, product.ID)
	}
}
