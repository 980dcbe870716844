package models

import "time"

const (
	PaymentPending  = "pending"
	PaymentApproved = "approved"
	PaymentRejected = "rejected"
)

// PendingPayment is created when a user uploads a bank receipt for one of
// their finalized orders. It is terminal on approve/reject and never deleted.
type PendingPayment struct {
	PaymentID   string     `json:"payment_id"`
	UserID      int64      `json:"user_id"`
	FirstName   string     `json:"first_name"`
	LastName    string     `json:"last_name"`
	IsDorm      bool       `json:"is_dorm"`
	DormName    string     `json:"dorm_name"`
	OrderID     string     `json:"order_id"`
	Items       []CartItem `json:"items"`
	Total       int        `json:"total"`
	FileID      string     `json:"file_id"`
	Timestamp   time.Time  `json:"timestamp"`
	Status      string     `json:"status"`
	ProcessedBy int64      `json:"processed_by,omitempty"`
	ProcessedAt *time.Time `json:"processed_at,omitempty"`
}
