package bot

import (
	"fmt"
	"strconv"
	"strings"

	tele "gopkg.in/telebot.v3"

	"jozveh_bot/internal/models"
)

// handleBuySelectProduct also serves the cart-edit flow, whose buttons carry
// a "حذف:" prefix with the 1-based cart position.
func (b *Bot) handleBuySelectProduct(c tele.Context, sess *session, text string) error {
	uid := c.Sender().ID
	if text == btnBack {
		sess.state = stateMain
		return c.Send("بازگشت به منوی اصلی", b.userMainKeyboard(true))
	}

	if strings.HasPrefix(text, "حذف:") {
		sess.state = stateMain
		pos, err := parseRemovalPosition(text)
		if err != nil {
			return c.Send("خطا در حذف.")
		}
		removed, ok := b.store.RemoveCartItem(uid, pos)
		if !ok {
			return c.Send("خطا در حذف.")
		}
		return c.Send(fmt.Sprintf("آیتم %s حذف شد.", removed.Title), b.userMainKeyboard(true))
	}

	p, ok := b.store.ProductByTitle(text)
	if !ok {
		sess.state = stateMain
		return c.Send("جزوه‌ای با این نام یافت نشد.")
	}
	sess.selectedProduct = p.ID
	sess.state = stateBuySelectType
	priceInfo := fmt.Sprintf("قیمت رنگی: %d — سیاه و سفید: %d", p.ColorPrice, p.BWPrice)
	return c.Send(fmt.Sprintf("(%s)\nلطفا نوع چاپ را انتخاب کنید:", priceInfo), printTypeKeyboard())
}

func (b *Bot) handleBuySelectType(c tele.Context, sess *session, text string) error {
	if text == btnBack {
		sess.state = stateMain
		return c.Send("بازگشت", b.userMainKeyboard(true))
	}
	if sess.selectedProduct == "" {
		sess.state = stateMain
		return c.Send("ابتدا جزوه را انتخاب کنید.")
	}
	p, ok := b.store.Product(sess.selectedProduct)
	if !ok {
		sess.state = stateMain
		return c.Send("ابتدا جزوه را انتخاب کنید.")
	}
	// tolerant matching, same as the button labels vary between flows
	switch {
	case strings.Contains(text, "رنگ"):
		sess.buyType = models.TypeColor
		sess.unitPrice = p.ColorPrice
	case strings.Contains(text, "سیاه"):
		sess.buyType = models.TypeBW
		sess.unitPrice = p.BWPrice
	default:
		return c.Send("لطفا رنگی یا سیاه‌وسفید را انتخاب کنید.")
	}
	sess.state = stateBuyEnterQty
	return c.Send("لطفا تعداد را وارد کنید (عدد صحیح):", backKeyboard())
}

func (b *Bot) handleBuyEnterQty(c tele.Context, sess *session, text string) error {
	uid := c.Sender().ID
	if text == btnBack {
		sess.state = stateMain
		return c.Send("بازگشت", b.userMainKeyboard(true))
	}
	qty, err := strconv.Atoi(text)
	if err != nil || qty <= 0 {
		return c.Send("لطفا یک عدد صحیح بزرگتر از صفر وارد کنید.")
	}
	p, ok := b.store.Product(sess.selectedProduct)
	if !ok {
		sess.state = stateMain
		return c.Send("ابتدا جزوه را انتخاب کنید.")
	}
	b.store.AddCartItem(uid, models.CartItem{
		ProductID: p.ID,
		Title:     p.Title,
		Type:      sess.buyType,
		Qty:       qty,
		UnitPrice: sess.unitPrice,
	})
	sess.state = stateMain
	return c.Send("ثبت شد ✅", b.userMainKeyboard(true))
}

// handleAwaitingReceiptText covers text arriving while a receipt photo is
// expected: back cancels, anything else re-prompts.
func (b *Bot) handleAwaitingReceiptText(c tele.Context, sess *session, text string) error {
	if text == btnBack {
		sess.payOrderID = ""
		sess.state = stateMain
		return c.Send("بازگشت", b.userMainKeyboard(true))
	}
	return c.Send("لطفا فیش پرداخت را به صورت عکس ارسال کنید یا '🔙 بازگشت' را بزنید.", backKeyboard())
}

// parseRemovalPosition extracts the 1-based position from a "حذف: 1. ..."
// button label.
func parseRemovalPosition(label string) (int, error) {
	fields := strings.Fields(label)
	if len(fields) < 2 {
		return 0, fmt.Errorf("malformed removal label: %q", label)
	}
	return strconv.Atoi(strings.TrimSuffix(fields[1], "."))
}

// parseOrderIndex extracts the 0-based order index from a
// "سفارش: N - ... تومان" button label; malformed or out-of-range input
// falls back to the first order, matching the menu's lenient parsing.
func parseOrderIndex(label string, listLen int) int {
	idx := 0
	fields := strings.Fields(label)
	if len(fields) >= 2 {
		if n, err := strconv.Atoi(strings.SplitN(fields[1], ":", 2)[0]); err == nil {
			idx = n - 1
		}
	}
	if idx < 0 || idx >= listLen {
		idx = 0
	}
	return idx
}
