package models

// Print types as shown to the user; stored verbatim in cart items.
const (
	TypeColor = "رنگی"
	TypeBW    = "سیاه و سفید"
)

type CartItem struct {
	ProductID string `json:"product_id"`
	Title     string `json:"title"`
	Type      string `json:"type"`
	Qty       int    `json:"qty"`
	UnitPrice int    `json:"unit_price"`
}

// ItemsTotal is the invariant every order and purchase total must satisfy.
func ItemsTotal(items []CartItem) int {
	total := 0
	for _, it := range items {
		total += it.Qty * it.UnitPrice
	}
	return total
}
