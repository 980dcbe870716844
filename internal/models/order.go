package models

import "time"

// Order is a finalized, not-yet-paid cart. It carries a snapshot of the
// user's name so admin views survive later identity edits (the store
// rewrites these snapshots when an identity edit is propagated).
type Order struct {
	OrderID   string     `json:"order_id"`
	UserID    int64      `json:"user_id"`
	FirstName string     `json:"first_name"`
	LastName  string     `json:"last_name"`
	Items     []CartItem `json:"items"`
	Total     int        `json:"total"`
	Timestamp time.Time  `json:"timestamp"`
	Paid      bool       `json:"paid"`
}
