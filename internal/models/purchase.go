package models

import "time"

// Purchase is an approved order. Only ever created from an Order.
type Purchase struct {
	PurchaseID string     `json:"purchase_id"`
	UserID     int64      `json:"user_id"`
	FirstName  string     `json:"first_name"`
	LastName   string     `json:"last_name"`
	Items      []CartItem `json:"items"`
	Total      int        `json:"total"`
	Timestamp  time.Time  `json:"timestamp"`
}
