package store

import (
	"sort"
	"strconv"

	"jozveh_bot/internal/models"
)

// Products returns all products sorted by numeric ID (insertion order).
func (s *Store) Products() []models.Product {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.productsLocked()
}

func (s *Store) productsLocked() []models.Product {
	out := make([]models.Product, 0, len(s.products))
	for _, p := range s.products {
		out = append(out, *p)
	}
	sort.Slice(out, func(i, j int) bool {
		a, _ := strconv.Atoi(out[i].ID)
		b, _ := strconv.Atoi(out[j].ID)
		return a < b
	})
	return out
}

func (s *Store) ProductByTitle(title string) (models.Product, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, p := range s.products {
		if p.Title == title {
			return *p, true
		}
	}
	return models.Product{}, false
}

func (s *Store) Product(id string) (models.Product, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if p, ok := s.products[id]; ok {
		return *p, true
	}
	return models.Product{}, false
}

// AddProduct registers a new title with zero prices and returns its ID; the
// prices are filled in by the admin afterwards.
func (s *Store) AddProduct(title string) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := s.nextProductID()
	s.products[id] = &models.Product{ID: id, Title: title}
	s.persist()
	return id
}

func (s *Store) SetColorPrice(id string, price int) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.products[id]
	if !ok {
		return false
	}
	p.ColorPrice = price
	s.persist()
	return true
}

func (s *Store) SetBWPrice(id string, price int) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.products[id]
	if !ok {
		return false
	}
	p.BWPrice = price
	s.persist()
	return true
}

// DeleteProduct removes the product and cascades: its items disappear from
// every order and purchase, totals are recomputed, and orders or purchases
// left empty are removed entirely.
func (s *Store) DeleteProduct(id string) (models.Product, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.products[id]
	if !ok {
		return models.Product{}, false
	}
	removed := *p
	delete(s.products, id)

	for uid := range s.orders {
		var kept []models.Order
		for _, ord := range s.orders[uid] {
			items := withoutProduct(ord.Items, id)
			if len(items) == 0 {
				continue
			}
			ord.Items = items
			ord.Total = models.ItemsTotal(items)
			kept = append(kept, ord)
		}
		if len(kept) > 0 {
			s.orders[uid] = kept
		} else {
			delete(s.orders, uid)
		}
	}
	for uid := range s.purchases {
		var kept []models.Purchase
		for _, pur := range s.purchases[uid] {
			items := withoutProduct(pur.Items, id)
			if len(items) == 0 {
				continue
			}
			pur.Items = items
			pur.Total = models.ItemsTotal(items)
			kept = append(kept, pur)
		}
		if len(kept) > 0 {
			s.purchases[uid] = kept
		} else {
			delete(s.purchases, uid)
		}
	}
	s.persist()
	return removed, true
}

func withoutProduct(items []models.CartItem, id string) []models.CartItem {
	var kept []models.CartItem
	for _, it := range items {
		if it.ProductID != id {
			kept = append(kept, it)
		}
	}
	return kept
}

// nextProductID continues the numeric sequence. Callers must hold the mutex.
func (s *Store) nextProductID() string {
	max := 0
	for id := range s.products {
		if n, err := strconv.Atoi(id); err == nil && n > max {
			max = n
		}
	}
	return strconv.Itoa(max + 1)
}
