package store

import (
	"strconv"

	"jozveh_bot/internal/models"
)

func key(uid int64) string { return strconv.FormatInt(uid, 10) }

// EnsureUser creates an empty user record on first contact.
func (s *Store) EnsureUser(uid int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.users[key(uid)]; !ok {
		s.users[key(uid)] = &models.User{Cart: []models.CartItem{}}
		s.persist()
	}
}

// User returns a copy of the user record, or an empty record when unknown.
func (s *Store) User(uid int64) models.User {
	s.mu.Lock()
	defer s.mu.Unlock()
	if u, ok := s.users[key(uid)]; ok {
		cp := *u
		cp.Cart = append([]models.CartItem(nil), u.Cart...)
		return cp
	}
	return models.User{}
}

func (s *Store) HasIdentity(uid int64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.users[key(uid)].HasIdentity()
}

// SetName stores the registered name; dormitory details arrive separately.
func (s *Store) SetName(uid int64, first, last string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	u := s.userLocked(uid)
	u.FirstName = first
	u.LastName = last
	s.persist()
}

// SetResidency completes registration with the dormitory flag and name.
// Tehran residents carry no dormitory name.
func (s *Store) SetResidency(uid int64, isDorm bool, dormName string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	u := s.userLocked(uid)
	u.IsDorm = isDorm
	u.DormName = dormName
	if !isDorm {
		u.DormName = ""
	}
	s.persist()
}

// ResetIdentity clears the identity fields for re-registration and returns a
// snapshot of the previous values so the edit can be reported to the admin.
func (s *Store) ResetIdentity(uid int64) models.User {
	s.mu.Lock()
	defer s.mu.Unlock()
	u := s.userLocked(uid)
	old := *u
	u.FirstName = ""
	u.LastName = ""
	u.IsDorm = false
	u.DormName = ""
	s.persist()
	return old
}

// PropagateIdentity rewrites the denormalized name snapshots in orders,
// pending payments and purchases after an identity edit.
func (s *Store) PropagateIdentity(uid int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[key(uid)]
	if !ok {
		return
	}
	for _, list := range s.orders {
		for i := range list {
			if list[i].UserID == uid {
				list[i].FirstName = u.FirstName
				list[i].LastName = u.LastName
			}
		}
	}
	for _, pay := range s.payments {
		if pay.UserID == uid {
			pay.FirstName = u.FirstName
			pay.LastName = u.LastName
		}
	}
	for _, list := range s.purchases {
		for i := range list {
			if list[i].UserID == uid {
				list[i].FirstName = u.FirstName
				list[i].LastName = u.LastName
			}
		}
	}
	s.persist()
}

// DisplayName resolves the formatted name for a user ID.
func (s *Store) DisplayName(uid int64) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.users[key(uid)].DisplayName()
}

// userLocked fetches or creates the record. Callers must hold the mutex.
func (s *Store) userLocked(uid int64) *models.User {
	u, ok := s.users[key(uid)]
	if !ok {
		u = &models.User{Cart: []models.CartItem{}}
		s.users[key(uid)] = u
	}
	return u
}
