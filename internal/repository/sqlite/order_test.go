package sqlite

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/HerosSMP/Heros-shop.de/internal/apperror"
	"github.com/HerosSMP/Heros-shop.de/internal/model"
)

func createTestOrder(t *testing.T, db *DB, productID string) *model.Order {
	t.Helper()
	order := &model.Order{
		ProductID:       productID,
		Email:           "kunde@example.com",
		DiscordName:     "kunde#0001",
		PaysafecardCode: "1234-5678-9012-3456",
	}
	if err := db.Orders.Create(context.Background(), order); err != nil {
		t.Fatalf("failed to create test order: %v", err)
	}
	return order
}

// insertOrderAt writes an order row directly with a crafted created_at, so
// ordering tests don't depend on wall-clock resolution between Creates.
func insertOrderAt(t *testing.T, db *DB, id string, createdAt time.Time) {
	t.Helper()
	_, err := db.conn.Exec(
		`INSERT INTO orders (id, product_id, email, discord_name, paysafecard_code, status, created_at)
		 VALUES (?, 'p1', 'a@b.de', 'd#1', 'code', 'pending', ?)`,
		id, createdAt,
	)
	if err != nil {
		t.Fatalf("failed to insert order row: %v", err)
	}
}

func TestOrderCreate(t *testing.T) {
	db := newTestDB(t)

	order := &model.Order{
		ProductID:       "some-product",
		Email:           "spieler@example.com",
		DiscordName:     "spieler#1234",
		PaysafecardCode: "0000-1111-2222-3333",
		// Callers can't smuggle in a different starting status.
		Status: model.OrderStatusCompleted,
	}

	if err := db.Orders.Create(context.Background(), order); err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	if order.ID == "" {
		t.Error("Create() did not set order.ID")
	}
	if order.Status != model.OrderStatusPending {
		t.Errorf("Status = %q, want forced %q", order.Status, model.OrderStatusPending)
	}
	if order.CreatedAt.IsZero() {
		t.Error("Create() did not set order.CreatedAt")
	}
}

func TestOrderGetByID_NotFound(t *testing.T) {
	db := newTestDB(t)

	_, err := db.Orders.GetByID(context.Background(), "nonexistent-id")
	if !errors.Is(err, apperror.ErrNotFound) {
		t.Errorf("GetByID() error = %v, want ErrNotFound", err)
	}
}

func TestOrderList_NewestFirst(t *testing.T) {
	db := newTestDB(t)

	base := time.Date(2026, 1, 15, 12, 0, 0, 0, time.UTC)
	insertOrderAt(t, db, "order-oldest", base)
	insertOrderAt(t, db, "order-middle", base.Add(time.Hour))
	insertOrderAt(t, db, "order-newest", base.Add(2*time.Hour))

	orders, err := db.Orders.List(context.Background())
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(orders) != 3 {
		t.Fatalf("List() returned %d orders, want 3", len(orders))
	}

	wantOrder := []string{"order-newest", "order-middle", "order-oldest"}
	for i, want := range wantOrder {
		if orders[i].ID != want {
			t.Errorf("orders[%d].ID = %s, want %s", i, orders[i].ID, want)
		}
	}
}

func TestOrderList_StableOnEqualTimestamps(t *testing.T) {
	db := newTestDB(t)

	// Same created_at — the id tiebreaker (descending) must decide.
	at := time.Date(2026, 1, 15, 12, 0, 0, 0, time.UTC)
	insertOrderAt(t, db, "aaa", at)
	insertOrderAt(t, db, "zzz", at)

	orders, err := db.Orders.List(context.Background())
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if orders[0].ID != "zzz" || orders[1].ID != "aaa" {
		t.Errorf("tie-break order = [%s, %s], want [zzz, aaa]", orders[0].ID, orders[1].ID)
	}
}

func TestOrderUpdateStatus(t *testing.T) {
	db := newTestDB(t)
	order := createTestOrder(t, db, "p1")

	if err := db.Orders.UpdateStatus(context.Background(), order.ID, model.OrderStatusProcessing); err != nil {
		t.Fatalf("UpdateStatus() error = %v", err)
	}

	found, err := db.Orders.GetByID(context.Background(), order.ID)
	if err != nil {
		t.Fatalf("GetByID() error = %v", err)
	}
	if found.Status != model.OrderStatusProcessing {
		t.Errorf("Status = %q, want %q", found.Status, model.OrderStatusProcessing)
	}
}

func TestOrderUpdateStatus_BackwardsTransition(t *testing.T) {
	db := newTestDB(t)
	order := createTestOrder(t, db, "p1")
	ctx := context.Background()

	// completed → pending is legal; any status is reachable from any other.
	if err := db.Orders.UpdateStatus(ctx, order.ID, model.OrderStatusCompleted); err != nil {
		t.Fatalf("UpdateStatus(completed) error = %v", err)
	}
	if err := db.Orders.UpdateStatus(ctx, order.ID, model.OrderStatusPending); err != nil {
		t.Fatalf("UpdateStatus(pending) error = %v", err)
	}

	found, _ := db.Orders.GetByID(ctx, order.ID)
	if found.Status != model.OrderStatusPending {
		t.Errorf("Status = %q, want %q", found.Status, model.OrderStatusPending)
	}
}

func TestOrderUpdateStatus_NotFound(t *testing.T) {
	db := newTestDB(t)

	err := db.Orders.UpdateStatus(context.Background(), "nonexistent", model.OrderStatusCompleted)
	if !errors.Is(err, apperror.ErrNotFound) {
		t.Errorf("UpdateStatus() error = %v, want ErrNotFound", err)
	}
}

func TestOrderDelete(t *testing.T) {
	db := newTestDB(t)
	order := createTestOrder(t, db, "p1")

	if err := db.Orders.Delete(context.Background(), order.ID); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}

	_, err := db.Orders.GetByID(context.Background(), order.ID)
	if !errors.Is(err, apperror.ErrNotFound) {
		t.Errorf("GetByID() after delete: error = %v, want ErrNotFound", err)
	}
}

func TestOrderDeleteLast(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	base := time.Date(2026, 1, 15, 12, 0, 0, 0, time.UTC)
	insertOrderAt(t, db, "order-old", base)
	insertOrderAt(t, db, "order-new", base.Add(time.Hour))

	deletedID, err := db.Orders.DeleteLast(ctx)
	if err != nil {
		t.Fatalf("DeleteLast() error = %v", err)
	}
	if deletedID != "order-new" {
		t.Errorf("DeleteLast() deleted %s, want order-new", deletedID)
	}

	// The older order survives.
	if _, err := db.Orders.GetByID(ctx, "order-old"); err != nil {
		t.Errorf("older order should survive: %v", err)
	}
	if _, err := db.Orders.GetByID(ctx, "order-new"); !errors.Is(err, apperror.ErrNotFound) {
		t.Errorf("newest order should be gone, got error = %v", err)
	}
}

func TestOrderDeleteLast_Empty(t *testing.T) {
	db := newTestDB(t)

	_, err := db.Orders.DeleteLast(context.Background())
	if !errors.Is(err, apperror.ErrNotFound) {
		t.Errorf("DeleteLast() on empty table: error = %v, want ErrNotFound", err)
	}
}

// The admin's typical cleanup session: a few checkouts come in, one gets
// processed, a test checkout is scrubbed with "delete last".
func TestOrderQueueLifecycle(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	base := time.Date(2026, 1, 15, 12, 0, 0, 0, time.UTC)
	insertOrderAt(t, db, "real-1", base)
	insertOrderAt(t, db, "real-2", base.Add(time.Minute))
	insertOrderAt(t, db, "test-checkout", base.Add(2*time.Minute))

	if err := db.Orders.UpdateStatus(ctx, "real-1", model.OrderStatusCompleted); err != nil {
		t.Fatalf("UpdateStatus: %v", err)
	}

	deletedID, err := db.Orders.DeleteLast(ctx)
	if err != nil {
		t.Fatalf("DeleteLast: %v", err)
	}
	if deletedID != "test-checkout" {
		t.Fatalf("DeleteLast removed %s, want test-checkout", deletedID)
	}

	orders, err := db.Orders.List(ctx)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(orders) != 2 {
		t.Fatalf("List returned %d orders, want 2", len(orders))
	}
	if orders[0].ID != "real-2" || orders[1].ID != "real-1" {
		t.Errorf("queue = [%s, %s], want [real-2, real-1]", orders[0].ID, orders[1].ID)
	}
	if orders[1].Status != model.OrderStatusCompleted {
		t.Errorf("real-1 status = %q, want completed", orders[1].Status)
	}
}
