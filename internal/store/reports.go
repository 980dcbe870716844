package store

import (
	"sort"
	"strconv"

	"jozveh_bot/internal/models"
)

// Source selects which collection an aggregation view reads.
type Source string

const (
	SourceFinalized Source = "finalized"
	SourcePurchased Source = "purchased"
)

// TitleCounts groups one product's quantities by print type.
type TitleCounts struct {
	Title string
	Color int
	BW    int
}

// NamedUser pairs a user ID with its display name for admin pick lists.
type NamedUser struct {
	ID   int64
	Name string
}

// UserCount is one row of a per-user drilldown for a product and print type.
type UserCount struct {
	Name string
	Qty  int
}

// Summary aggregates all items of the chosen source into per-title
// color/monochrome counts, sorted by title.
func (s *Store) Summary(src Source) []TitleCounts {
	s.mu.Lock()
	defer s.mu.Unlock()
	agg := map[string]*TitleCounts{}
	s.eachItem(src, func(_ string, it models.CartItem) {
		tc, ok := agg[it.Title]
		if !ok {
			tc = &TitleCounts{Title: it.Title}
			agg[it.Title] = tc
		}
		if it.Type == models.TypeColor {
			tc.Color += it.Qty
		} else {
			tc.BW += it.Qty
		}
	})
	out := make([]TitleCounts, 0, len(agg))
	for _, tc := range agg {
		out = append(out, *tc)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Title < out[j].Title })
	return out
}

// Breakdown lists, per user, the quantity of one product in one print type
// across the chosen source.
func (s *Store) Breakdown(src Source, productID, printType string) []UserCount {
	s.mu.Lock()
	defer s.mu.Unlock()
	byUser := map[string]int{}
	s.eachItem(src, func(uid string, it models.CartItem) {
		if it.ProductID == productID && it.Type == printType {
			byUser[uid] += it.Qty
		}
	})
	keys := make([]string, 0, len(byUser))
	for uid := range byUser {
		keys = append(keys, uid)
	}
	sort.Strings(keys)
	out := make([]UserCount, 0, len(keys))
	for _, uid := range keys {
		out = append(out, UserCount{Name: s.users[uid].DisplayName(), Qty: byUser[uid]})
	}
	return out
}

// Finalizers lists users that currently hold finalized orders.
func (s *Store) Finalizers() []NamedUser {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []NamedUser
	for uid, list := range s.orders {
		if len(list) == 0 {
			continue
		}
		id, _ := strconv.ParseInt(uid, 10, 64)
		out = append(out, NamedUser{ID: id, Name: s.users[uid].DisplayName()})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// Buyers lists users with at least one approved purchase.
func (s *Store) Buyers() []NamedUser {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []NamedUser
	for uid, list := range s.purchases {
		if len(list) == 0 {
			continue
		}
		id, _ := strconv.ParseInt(uid, 10, 64)
		out = append(out, NamedUser{ID: id, Name: s.users[uid].DisplayName()})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// OrderDetail reports the finalized color/monochrome totals for one product
// plus one line per ordering user, for the admin product drilldown.
func (s *Store) OrderDetail(productID string) (color, bw int, lines []string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, list := range s.orders {
		for _, ord := range list {
			for _, it := range ord.Items {
				if it.ProductID != productID {
					continue
				}
				if it.Type == models.TypeColor {
					color += it.Qty
				} else {
					bw += it.Qty
				}
				lines = append(lines, ord.FirstName+" "+ord.LastName+" — "+strconv.Itoa(it.Qty)+" — "+it.Type)
			}
		}
	}
	sort.Strings(lines)
	return color, bw, lines
}

// eachItem walks every item of the source. Callers must hold the mutex.
func (s *Store) eachItem(src Source, fn func(uid string, it models.CartItem)) {
	if src == SourcePurchased {
		for uid, list := range s.purchases {
			for _, pur := range list {
				for _, it := range pur.Items {
					fn(uid, it)
				}
			}
		}
		return
	}
	for uid, list := range s.orders {
		for _, ord := range list {
			for _, it := range ord.Items {
				fn(uid, it)
			}
		}
	}
}

// ReportUsers returns every known user keyed by ID string, for the
// spreadsheet export.
func (s *Store) ReportUsers() map[string]models.User {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make(map[string]models.User, len(s.users))
	for uid, u := range s.users {
		cp := *u
		cp.Cart = append([]models.CartItem(nil), u.Cart...)
		out[uid] = cp
	}
	return out
}

// ReportPurchases returns a copy of the purchase lists keyed by user ID.
func (s *Store) ReportPurchases() map[string][]models.Purchase {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make(map[string][]models.Purchase, len(s.purchases))
	for uid, list := range s.purchases {
		out[uid] = append([]models.Purchase(nil), list...)
	}
	return out
}
