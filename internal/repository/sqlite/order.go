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

var _ repository.OrderRepository = (*OrderRepo)(nil)

// OrderRepo stores customer orders.
type OrderRepo struct {
	conn *sql.DB
}

// Create inserts a new order. The status is forced to pending regardless of
// what the caller set — every order starts at the back of the queue.
//
// product_id is stored as given, without checking the products table. A
// customer can complete checkout in the instant after an admin deletes the
// product; the order survives with a dangling reference.
func (r *OrderRepo) Create(ctx context.Context, order *model.Order) error {
	order.ID = xid.New().String()
	order.Status = model.OrderStatusPending
	order.CreatedAt = time.Now()

	_, err := r.conn.ExecContext(ctx,
		`INSERT INTO orders (id, product_id, email, discord_name, paysafecard_code, status, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		order.ID,
		order.ProductID,
		order.Email,
		order.DiscordName,
		order.PaysafecardCode,
		order.Status,
		order.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("sqlite: creating order: %w", err)
	}

	return nil
}

// GetByID retrieves a single order by its ID.
func (r *OrderRepo) GetByID(ctx context.Context, id string) (*model.Order, error) {
	var o model.Order

	err := r.conn.QueryRowContext(ctx,
		`SELECT id, product_id, email, discord_name, paysafecard_code, status, created_at
		 FROM orders
		 WHERE id = ?`,
		id,
	).Scan(
		&o.ID,
		&o.ProductID,
		&o.Email,
		&o.DiscordName,
		&o.PaysafecardCode,
		&o.Status,
		&o.CreatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, apperror.NotFound("order", id)
		}
		return nil, fmt.Errorf("sqlite: getting order %s: %w", id, err)
	}

	return &o, nil
}

// List returns all orders, newest first. The descending sort is part of the
// data-layer contract — the admin queue always shows the latest order on top.
// The secondary sort on id keeps results stable when two orders share a
// timestamp (xid is time-prefixed, so id order still follows creation order).
func (r *OrderRepo) List(ctx context.Context) ([]model.Order, error) {
	rows, err := r.conn.QueryContext(ctx,
		`SELECT id, product_id, email, discord_name, paysafecard_code, status, created_at
		 FROM orders
		 ORDER BY created_at DESC, id DESC`,
	)
	if err != nil {
		return nil, fmt.Errorf("sqlite: listing orders: %w", err)
	}
	defer rows.Close()

	orders := []model.Order{}
	for rows.Next() {
		var o model.Order
		if err := rows.Scan(
			&o.ID, &o.ProductID, &o.Email, &o.DiscordName,
			&o.PaysafecardCode, &o.Status, &o.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("sqlite: scanning order row: %w", err)
		}
		orders = append(orders, o)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("sqlite: iterating orders: %w", err)
	}

	return orders, nil
}

// UpdateStatus overwrites an order's status. Any status can be set from any
// other — the admin is trusted to move orders backwards (e.g. completed →
// processing after a chargeback).
func (r *OrderRepo) UpdateStatus(ctx context.Context, id string, status model.OrderStatus) error {
	result, err := r.conn.ExecContext(ctx,
		`UPDATE orders SET status = ? WHERE id = ?`,
		status, id,
	)
	if err != nil {
		return fmt.Errorf("sqlite: updating order %s status: %w", id, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("sqlite: checking rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return apperror.NotFound("order", id)
	}

	return nil
}

// Delete removes an order by its ID.
func (r *OrderRepo) Delete(ctx context.Context, id string) error {
	result, err := r.conn.ExecContext(ctx,
		`DELETE FROM orders WHERE id = ?`,
		id,
	)
	if err != nil {
		return fmt.Errorf("sqlite: deleting order %s: %w", id, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("sqlite: checking rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return apperror.NotFound("order", id)
	}

	return nil
}

// DeleteLast removes the most recently created order — the admin panel's
// "undo the newest order" button, used to scrub test checkouts.
//
// "Last" means newest by created_at, the same ordering List uses. Returns
// the deleted order's id for logging, or apperror.ErrNotFound when the
// orders table is empty.
func (r *OrderRepo) DeleteLast(ctx context.Context) (string, error) {
	var id string
	err := r.conn.QueryRowContext(ctx,
		`SELECT id FROM orders ORDER BY created_at DESC, id DESC LIMIT 1`,
	).Scan(&id)
	if err != nil {
		if err == sql.ErrNoRows {
			return "", apperror.NotFound("order", "latest")
		}
		return "", fmt.Errorf("sqlite: finding latest order: %w", err)
	}

	if err := r.Delete(ctx, id); err != nil {
		return "", err
	}

	return id, nil
}
