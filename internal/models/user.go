package models

import "strings"

type User struct {
	FirstName string     `json:"first_name"`
	LastName  string     `json:"last_name"`
	IsDorm    bool       `json:"is_dorm"`
	DormName  string     `json:"dorm_name"`
	Cart      []CartItem `json:"cart"`
}

// HasIdentity reports whether registration is complete.
func (u *User) HasIdentity() bool {
	return u != nil && u.FirstName != "" && u.LastName != ""
}

// DisplayName renders "نام نام‌خانوادگی (خوابگاه)" for dormitory users and
// "نام نام‌خانوادگی (تهرانی)" for the rest.
func (u *User) DisplayName() string {
	full := "نام‌ثبت‌نشده"
	if u != nil {
		if s := strings.TrimSpace(strings.TrimSpace(u.FirstName) + " " + strings.TrimSpace(u.LastName)); s != "" {
			full = s
		}
	}
	if u != nil && u.IsDorm {
		dorm := u.DormName
		if dorm == "" {
			dorm = "نام‌خوابگاه"
		}
		return full + " (" + dorm + ")"
	}
	return full + " (تهرانی)"
}
