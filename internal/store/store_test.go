package store

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"jozveh_bot/internal/models"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := New(t.TempDir(), zaptest.NewLogger(t))
	require.NoError(t, err)
	return s
}

func addCalculusNotes(t *testing.T, s *Store) models.Product {
	t.Helper()
	id := s.AddProduct("جزوه ریاضی عمومی")
	require.True(t, s.SetColorPrice(id, 5000))
	require.True(t, s.SetBWPrice(id, 2000))
	p, ok := s.Product(id)
	require.True(t, ok)
	return p
}

func TestFinalizeCartProducesOrderWithCorrectTotal(t *testing.T) {
	s := newTestStore(t)
	const uid int64 = 42

	s.EnsureUser(uid)
	s.SetName(uid, "علی", "رضایی")
	s.SetResidency(uid, true, "دانش")

	p := addCalculusNotes(t, s)
	s.AddCartItem(uid, models.CartItem{
		ProductID: p.ID,
		Title:     p.Title,
		Type:      models.TypeColor,
		Qty:       2,
		UnitPrice: p.ColorPrice,
	})

	order, ok := s.FinalizeCart(uid)
	require.True(t, ok)
	assert.Equal(t, 10000, order.Total)
	assert.Equal(t, models.ItemsTotal(order.Items), order.Total)
	assert.Equal(t, "علی", order.FirstName)
	assert.Empty(t, s.Cart(uid), "finalize must empty the cart")

	orders := s.Orders(uid)
	require.Len(t, orders, 1)
	assert.Equal(t, order.OrderID, orders[0].OrderID)

	// finalize again with an empty cart: nothing changes
	_, ok = s.FinalizeCart(uid)
	assert.False(t, ok)
	assert.Len(t, s.Orders(uid), 1)
}

func TestFinalizeSurvivesRestart(t *testing.T) {
	dir := t.TempDir()
	s, err := New(dir, zaptest.NewLogger(t))
	require.NoError(t, err)

	const uid int64 = 7
	s.EnsureUser(uid)
	p := addCalculusNotes(t, s)
	s.AddCartItem(uid, models.CartItem{ProductID: p.ID, Title: p.Title, Type: models.TypeBW, Qty: 3, UnitPrice: p.BWPrice})
	_, ok := s.FinalizeCart(uid)
	require.True(t, ok)

	reopened, err := New(dir, zaptest.NewLogger(t))
	require.NoError(t, err)
	orders := reopened.Orders(uid)
	require.Len(t, orders, 1)
	assert.Equal(t, 6000, orders[0].Total)
}

func TestApprovePaymentConvertsOrderExactlyOnce(t *testing.T) {
	s := newTestStore(t)
	const uid int64 = 42
	const admin int64 = 1

	s.EnsureUser(uid)
	s.SetName(uid, "علی", "رضایی")
	p := addCalculusNotes(t, s)
	s.AddCartItem(uid, models.CartItem{ProductID: p.ID, Title: p.Title, Type: models.TypeColor, Qty: 2, UnitPrice: p.ColorPrice})
	order, ok := s.FinalizeCart(uid)
	require.True(t, ok)

	pay, ok := s.CreatePendingPayment(uid, order.OrderID, "receipt-file-id")
	require.True(t, ok)
	assert.Equal(t, models.PaymentPending, pay.Status)
	assert.Equal(t, order.Total, pay.Total)

	purchase, payer, err := s.ApprovePayment(pay.PaymentID, admin)
	require.NoError(t, err)
	assert.Equal(t, uid, payer)
	assert.Equal(t, order.Total, purchase.Total)
	assert.Equal(t, order.Items, purchase.Items)
	assert.Empty(t, s.Orders(uid), "approved order must leave the order list")

	purchases := s.Purchases(uid)
	require.Len(t, purchases, 1)
	assert.Equal(t, purchase.PurchaseID, purchases[0].PurchaseID)

	// second approval of the same payment is a no-op
	_, _, err = s.ApprovePayment(pay.PaymentID, admin)
	assert.ErrorIs(t, err, ErrOrderNotFound)
	assert.Len(t, s.Purchases(uid), 1)
	assert.Empty(t, s.PendingPayments())
}

func TestRejectPaymentLeavesOrderUntouched(t *testing.T) {
	s := newTestStore(t)
	const uid int64 = 42

	s.EnsureUser(uid)
	p := addCalculusNotes(t, s)
	s.AddCartItem(uid, models.CartItem{ProductID: p.ID, Title: p.Title, Type: models.TypeBW, Qty: 1, UnitPrice: p.BWPrice})
	order, _ := s.FinalizeCart(uid)
	pay, ok := s.CreatePendingPayment(uid, order.OrderID, "f")
	require.True(t, ok)

	payer, err := s.RejectPayment(pay.PaymentID, 1)
	require.NoError(t, err)
	assert.Equal(t, uid, payer)
	assert.Len(t, s.Orders(uid), 1, "rejection must not touch the order")
	assert.Empty(t, s.Purchases(uid))

	// a new receipt for the same order still works
	_, ok = s.CreatePendingPayment(uid, order.OrderID, "f2")
	assert.True(t, ok)
}

func TestCreatePendingPaymentForProcessedOrder(t *testing.T) {
	s := newTestStore(t)
	s.EnsureUser(1)
	_, ok := s.CreatePendingPayment(1, "no-such-order", "f")
	assert.False(t, ok)
}

func TestDeleteProductCascades(t *testing.T) {
	s := newTestStore(t)
	const uid int64 = 42

	s.EnsureUser(uid)
	jozveh := addCalculusNotes(t, s)
	otherID := s.AddProduct("جزوه فیزیک")
	s.SetColorPrice(otherID, 3000)

	s.AddCartItem(uid, models.CartItem{ProductID: jozveh.ID, Title: jozveh.Title, Type: models.TypeColor, Qty: 2, UnitPrice: 5000})
	s.AddCartItem(uid, models.CartItem{ProductID: otherID, Title: "جزوه فیزیک", Type: models.TypeColor, Qty: 1, UnitPrice: 3000})
	order, _ := s.FinalizeCart(uid)
	require.Equal(t, 13000, order.Total)

	pay, _ := s.CreatePendingPayment(uid, order.OrderID, "f")
	_, _, err := s.ApprovePayment(pay.PaymentID, 1)
	require.NoError(t, err)

	_, ok := s.DeleteProduct(jozveh.ID)
	require.True(t, ok)

	purchases := s.Purchases(uid)
	require.Len(t, purchases, 1)
	assert.Equal(t, 3000, purchases[0].Total, "total recomputed after cascade")
	for _, it := range purchases[0].Items {
		assert.NotEqual(t, jozveh.ID, it.ProductID)
	}

	// deleting the remaining product leaves the purchase empty, so it goes away
	_, ok = s.DeleteProduct(otherID)
	require.True(t, ok)
	assert.Empty(t, s.Purchases(uid))
	assert.Empty(t, s.Buyers())
}

func TestBlockGate(t *testing.T) {
	s := newTestStore(t)
	assert.False(t, s.IsBlocked(9))
	s.Block(9)
	s.Block(9) // repeat blocking keeps one entry
	assert.True(t, s.IsBlocked(9))
	s.Unblock(9)
	assert.False(t, s.IsBlocked(9))
}

func TestRemoveCartItemStalePosition(t *testing.T) {
	s := newTestStore(t)
	const uid int64 = 5
	s.EnsureUser(uid)
	s.AddCartItem(uid, models.CartItem{Title: "الف", Qty: 1, UnitPrice: 100})

	_, ok := s.RemoveCartItem(uid, 2)
	assert.False(t, ok, "stale position fails without mutating")
	assert.Len(t, s.Cart(uid), 1)

	removed, ok := s.RemoveCartItem(uid, 1)
	require.True(t, ok)
	assert.Equal(t, "الف", removed.Title)
	assert.Empty(t, s.Cart(uid))
}

func TestAdminRoster(t *testing.T) {
	s := newTestStore(t)
	s.EnsureUser(77)
	require.True(t, s.AddAdmin(77))
	assert.False(t, s.AddAdmin(77), "already an admin")
	assert.True(t, s.IsRosterAdmin(77))
	u77 := s.User(77)
	assert.False(t, u77.HasIdentity(), "plain-user record removed on promotion")

	s.MergeAdmins([]int64{77, 88})
	assert.ElementsMatch(t, []int64{77, 88}, s.Admins())

	require.True(t, s.RemoveAdmin(77))
	assert.False(t, s.RemoveAdmin(77))
	assert.False(t, s.IsRosterAdmin(77))
}

func TestIdentityPropagation(t *testing.T) {
	s := newTestStore(t)
	const uid int64 = 42
	s.EnsureUser(uid)
	s.SetName(uid, "علی", "رضایی")
	p := addCalculusNotes(t, s)
	s.AddCartItem(uid, models.CartItem{ProductID: p.ID, Title: p.Title, Type: models.TypeColor, Qty: 1, UnitPrice: 5000})
	order, _ := s.FinalizeCart(uid)
	s.CreatePendingPayment(uid, order.OrderID, "f")

	old := s.ResetIdentity(uid)
	assert.Equal(t, "علی", old.FirstName)
	s.SetName(uid, "حسین", "موسوی")
	s.SetResidency(uid, false, "")
	s.PropagateIdentity(uid)

	assert.Equal(t, "حسین", s.Orders(uid)[0].FirstName)
	for _, pay := range allPayments(s) {
		assert.Equal(t, "حسین", pay.FirstName)
	}
}

func allPayments(s *Store) []models.PendingPayment {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []models.PendingPayment
	for _, p := range s.payments {
		out = append(out, *p)
	}
	return out
}

func TestCorruptCollectionLoadsEmpty(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, UsersFile), []byte("{not json"), 0o644))

	s, err := New(dir, zaptest.NewLogger(t))
	require.NoError(t, err)
	assert.False(t, s.HasIdentity(1))
}

func TestSummaryAndBreakdown(t *testing.T) {
	s := newTestStore(t)
	s.EnsureUser(1)
	s.SetName(1, "علی", "رضایی")
	s.EnsureUser(2)
	s.SetName(2, "زهرا", "کریمی")
	p := addCalculusNotes(t, s)

	s.AddCartItem(1, models.CartItem{ProductID: p.ID, Title: p.Title, Type: models.TypeColor, Qty: 2, UnitPrice: 5000})
	s.FinalizeCart(1)
	s.AddCartItem(2, models.CartItem{ProductID: p.ID, Title: p.Title, Type: models.TypeBW, Qty: 4, UnitPrice: 2000})
	s.FinalizeCart(2)

	summary := s.Summary(SourceFinalized)
	require.Len(t, summary, 1)
	assert.Equal(t, p.Title, summary[0].Title)
	assert.Equal(t, 2, summary[0].Color)
	assert.Equal(t, 4, summary[0].BW)
	assert.Empty(t, s.Summary(SourcePurchased))

	rows := s.Breakdown(SourceFinalized, p.ID, models.TypeColor)
	require.Len(t, rows, 1)
	assert.Equal(t, 2, rows[0].Qty)
	assert.Contains(t, rows[0].Name, "علی")

	finalizers := s.Finalizers()
	require.Len(t, finalizers, 2)
	assert.Equal(t, int64(1), finalizers[0].ID)
}

func TestReloadDiscardsUnsavedState(t *testing.T) {
	dir := t.TempDir()
	s, err := New(dir, zaptest.NewLogger(t))
	require.NoError(t, err)
	s.AddProduct("جزوه آمار")

	// simulate a restored archive: another snapshot lands on disk
	other, err := New(t.TempDir(), zaptest.NewLogger(t))
	require.NoError(t, err)
	other.AddProduct("جزوه مدار")
	data, err := os.ReadFile(filepath.Join(other.Dir(), ProductsFile))
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(filepath.Join(dir, ProductsFile), data, 0o644))

	s.Reload()
	products := s.Products()
	require.Len(t, products, 1)
	assert.Equal(t, "جزوه مدار", products[0].Title)
}
