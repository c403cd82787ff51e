package model

import "time"

// OrderStatus is the processing state of an order.
//
// WHY A NAMED STRING TYPE?
// A plain string would accept any value. A named type plus a Valid() check
// lets the service layer reject typos ("complete" vs "completed") while the
// database still stores a readable string.
type OrderStatus string

const (
	OrderStatusPending    OrderStatus = "pending"
	OrderStatusProcessing OrderStatus = "processing"
	OrderStatusCompleted  OrderStatus = "completed"
	OrderStatusRejected   OrderStatus = "rejected"
)

// Valid reports whether s is one of the four known statuses.
func (s OrderStatus) Valid() bool {
	switch s {
	case OrderStatusPending, OrderStatusProcessing, OrderStatusCompleted, OrderStatusRejected:
		return true
	}
	return false
}

// Order is a customer's purchase of a single product, paid with a
// paysafecard voucher code and delivered via Discord.
//
// ProductID is NOT a foreign key. Orders for a deleted product keep their
// product_id and the admin views tolerate the dangling reference.
//
// Every new order starts in OrderStatusPending; the admin moves it through
// the other statuses by hand. Any status can be set from any other — there
// is no transition graph.
type Order struct {
	ID              string      `json:"id"`
	ProductID       string      `json:"productId"`
	Email           string      `json:"email"`
	DiscordName     string      `json:"discordName"`
	PaysafecardCode string      `json:"paysafecardCode"`
	Status          OrderStatus `json:"status"`
	CreatedAt       time.Time   `json:"createdAt"`
}
