package store

import "jozveh_bot/internal/models"

func (s *Store) Orders(uid int64) []models.Order {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]models.Order(nil), s.orders[key(uid)]...)
}

func (s *Store) Purchases(uid int64) []models.Purchase {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]models.Purchase(nil), s.purchases[key(uid)]...)
}

// DeleteUserOrders drops every finalized order of one user.
func (s *Store) DeleteUserOrders(uid int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.orders, key(uid))
	s.persist()
}

func (s *Store) DeleteUserPurchases(uid int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.purchases, key(uid))
	s.persist()
}

// DeleteAllOrders wipes the entire finalized list for every user.
func (s *Store) DeleteAllOrders() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.orders = map[string][]models.Order{}
	s.persist()
}

func (s *Store) DeleteAllPurchases() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.purchases = map[string][]models.Purchase{}
	s.persist()
}
