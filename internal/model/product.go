// Package model defines the data structures used throughout the application.
// In Go, we use structs to represent our data — similar to classes in other languages,
// but without inheritance. Go favours composition over inheritance.
package model

import "time"

// Product is one purchasable item in the shop.
//
// The `json:"..."` tags tell Go's encoding/json package how to serialize/deserialize
// this struct to/from JSON. The frontend reads these exact field names, so the
// tags are part of the API contract.
//
// Image holds either a URL ("/placeholder.svg") or a base64 data URL produced
// by the admin image upload — both are plain strings to the store.
type Product struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Price       float64   `json:"price"`
	Image       string    `json:"image"`
	CreatedAt   time.Time `json:"createdAt"`
}
