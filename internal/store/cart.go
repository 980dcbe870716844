package store

import (
	"time"

	"github.com/google/uuid"

	"jozveh_bot/internal/models"
)

// AddCartItem appends a snapshotted item to the user's cart.
func (s *Store) AddCartItem(uid int64, item models.CartItem) {
	s.mu.Lock()
	defer s.mu.Unlock()
	u := s.userLocked(uid)
	u.Cart = append(u.Cart, item)
	s.persist()
}

func (s *Store) Cart(uid int64) []models.CartItem {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[key(uid)]
	if !ok {
		return nil
	}
	return append([]models.CartItem(nil), u.Cart...)
}

// RemoveCartItem removes the item at the 1-based position parsed out of the
// button label. A stale position (cart changed meanwhile) returns ok=false.
func (s *Store) RemoveCartItem(uid int64, pos int) (models.CartItem, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[key(uid)]
	if !ok {
		return models.CartItem{}, false
	}
	idx := pos - 1
	if idx < 0 || idx >= len(u.Cart) {
		return models.CartItem{}, false
	}
	removed := u.Cart[idx]
	u.Cart = append(u.Cart[:idx], u.Cart[idx+1:]...)
	s.persist()
	return removed, true
}

// FinalizeCart converts the whole cart into one Order, or nothing when the
// cart is empty. There is no partial finalize.
func (s *Store) FinalizeCart(uid int64) (models.Order, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	u := s.userLocked(uid)
	if len(u.Cart) == 0 {
		return models.Order{}, false
	}
	order := models.Order{
		OrderID:   uuid.NewString(),
		UserID:    uid,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		Items:     append([]models.CartItem(nil), u.Cart...),
		Total:     models.ItemsTotal(u.Cart),
		Timestamp: time.Now().UTC(),
	}
	s.orders[key(uid)] = append(s.orders[key(uid)], order)
	u.Cart = []models.CartItem{}
	s.persist()
	return order, true
}
