package store

import (
	"errors"
	"time"

	"github.com/google/uuid"

	"jozveh_bot/internal/models"
)

var (
	// ErrPaymentNotFound: the payment record vanished or was never created.
	ErrPaymentNotFound = errors.New("payment not found")
	// ErrOrderNotFound: the referenced order is gone, typically because the
	// payment was already approved once. Approval is a no-op in that case.
	ErrOrderNotFound = errors.New("order not found")
)

// CreatePendingPayment re-locates the order by the stashed ID and records a
// pending payment carrying a copy of its items and total plus the receipt
// photo reference. Returns ok=false when the order was already processed.
func (s *Store) CreatePendingPayment(uid int64, orderID, fileID string) (models.PendingPayment, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var order *models.Order
	for i := range s.orders[key(uid)] {
		if s.orders[key(uid)][i].OrderID == orderID {
			order = &s.orders[key(uid)][i]
			break
		}
	}
	if order == nil {
		return models.PendingPayment{}, false
	}
	u := s.userLocked(uid)
	pay := models.PendingPayment{
		PaymentID: uuid.NewString(),
		UserID:    uid,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		IsDorm:    u.IsDorm,
		DormName:  u.DormName,
		OrderID:   orderID,
		Items:     append([]models.CartItem(nil), order.Items...),
		Total:     order.Total,
		FileID:    fileID,
		Timestamp: time.Now().UTC(),
		Status:    models.PaymentPending,
	}
	s.payments[pay.PaymentID] = &pay
	s.persist()
	cp := pay
	return cp, true
}

// PendingPayments returns copies of every payment still awaiting a decision.
func (s *Store) PendingPayments() []models.PendingPayment {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []models.PendingPayment
	for _, pay := range s.payments {
		if pay.Status == models.PaymentPending {
			out = append(out, *pay)
		}
	}
	return out
}

// ApprovePayment converts the referenced order into a purchase and marks the
// payment approved. Both lookups happen inside the store lock, so a second
// approval (or a racing rejection) sees the order already gone and fails
// with ErrOrderNotFound instead of double-converting.
func (s *Store) ApprovePayment(payID string, processor int64) (models.Purchase, int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	pay, ok := s.payments[payID]
	if !ok {
		return models.Purchase{}, 0, ErrPaymentNotFound
	}
	uid := pay.UserID
	list := s.orders[key(uid)]
	idx := -1
	for i := range list {
		if list[i].OrderID == pay.OrderID {
			idx = i
			break
		}
	}
	if idx < 0 {
		return models.Purchase{}, uid, ErrOrderNotFound
	}
	order := list[idx]
	purchase := models.Purchase{
		PurchaseID: uuid.NewString(),
		UserID:     uid,
		FirstName:  s.userLocked(uid).FirstName,
		LastName:   s.userLocked(uid).LastName,
		Items:      order.Items,
		Total:      order.Total,
		Timestamp:  time.Now().UTC(),
	}
	s.purchases[key(uid)] = append(s.purchases[key(uid)], purchase)
	s.orders[key(uid)] = append(list[:idx], list[idx+1:]...)
	if len(s.orders[key(uid)]) == 0 {
		delete(s.orders, key(uid))
	}
	now := time.Now().UTC()
	pay.Status = models.PaymentApproved
	pay.ProcessedBy = processor
	pay.ProcessedAt = &now
	s.persist()
	return purchase, uid, nil
}

// RejectPayment marks the payment rejected and leaves the order untouched, so
// the user may resubmit a receipt for it.
func (s *Store) RejectPayment(payID string, processor int64) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	pay, ok := s.payments[payID]
	if !ok {
		return 0, ErrPaymentNotFound
	}
	now := time.Now().UTC()
	pay.Status = models.PaymentRejected
	pay.ProcessedBy = processor
	pay.ProcessedAt = &now
	s.persist()
	return pay.UserID, nil
}
