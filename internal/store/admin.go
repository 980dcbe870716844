package store

// IsBlocked gates every interaction; checked once at router entry.
func (s *Store) IsBlocked(uid int64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, b := range s.blocked {
		if b == uid {
			return true
		}
	}
	return false
}

func (s *Store) Block(uid int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, b := range s.blocked {
		if b == uid {
			return
		}
	}
	s.blocked = append(s.blocked, uid)
	s.persist()
}

func (s *Store) Unblock(uid int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, b := range s.blocked {
		if b == uid {
			s.blocked = append(s.blocked[:i], s.blocked[i+1:]...)
			s.persist()
			return
		}
	}
}

// MergeAdmins folds the configured secondary admin IDs into the persisted
// roster at startup.
func (s *Store) MergeAdmins(ids []int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	changed := false
	for _, id := range ids {
		if !containsID(s.admins, id) {
			s.admins = append(s.admins, id)
			changed = true
		}
	}
	if changed {
		s.persist()
	}
}

// IsRosterAdmin checks the persisted roster only; the primary admin from
// configuration is checked by the caller.
func (s *Store) IsRosterAdmin(uid int64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return containsID(s.admins, uid)
}

func (s *Store) Admins() []int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]int64(nil), s.admins...)
}

// AddAdmin promotes an ID. Any pre-existing plain-user record for it is
// deleted, matching the original cascade.
func (s *Store) AddAdmin(uid int64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if containsID(s.admins, uid) {
		return false
	}
	delete(s.users, key(uid))
	s.admins = append(s.admins, uid)
	s.persist()
	return true
}

func (s *Store) RemoveAdmin(uid int64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, a := range s.admins {
		if a == uid {
			s.admins = append(s.admins[:i], s.admins[i+1:]...)
			s.persist()
			return true
		}
	}
	return false
}

func containsID(ids []int64, id int64) bool {
	for _, v := range ids {
		if v == id {
			return true
		}
	}
	return false
}
