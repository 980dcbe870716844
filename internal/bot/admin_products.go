package bot

import (
	"fmt"
	"strconv"
	"strings"

	tele "gopkg.in/telebot.v3"
)

func productSetupKeyboard() *tele.ReplyMarkup {
	m := &tele.ReplyMarkup{ResizeKeyboard: true}
	m.Reply(
		m.Row(m.Text("🎨 رنگی"), m.Text("⬛ سیاه سفید")),
		m.Row(m.Text("✅ ثبت جزوه")),
		m.Row(m.Text(btnBack)),
	)
	return m
}

func (b *Bot) handleAdminAddName(c tele.Context, sess *session, text string) error {
	if text == btnBack {
		sess.state = stateMain
		return c.Send("منوی ادمین", b.adminMainKeyboard())
	}
	if text == "" {
		return c.Send("نام جزوه نمی‌تواند خالی باشد.")
	}
	sess.newProductID = b.store.AddProduct(text)
	sess.state = stateAdminAddChoose
	return c.Send(
		fmt.Sprintf("جزوه '%s' اضافه شد. قیمت کدام نوع چاپ را وارد می‌کنید؟", text),
		productSetupKeyboard(),
	)
}

func (b *Bot) handleAdminAddChoose(c tele.Context, sess *session, text string) error {
	switch {
	case text == btnBack, text == "✅ ثبت جزوه":
		sess.newProductID = ""
		sess.state = stateMain
		return c.Send("جزوه ثبت شد.", b.adminMainKeyboard())
	case strings.Contains(text, "رنگ"):
		sess.state = stateAdminAddColorPrice
		return c.Send("قیمت چاپ رنگی را به تومان وارد کنید:", backKeyboard())
	case strings.Contains(text, "سیاه"):
		sess.state = stateAdminAddBWPrice
		return c.Send("قیمت چاپ سیاه و سفید را به تومان وارد کنید:", backKeyboard())
	}
	return c.Send("از دکمه‌ها استفاده کنید.", productSetupKeyboard())
}

func (b *Bot) handleAdminAddColorPrice(c tele.Context, sess *session, text string) error {
	if text == btnBack {
		sess.state = stateAdminAddChoose
		return c.Send("قیمت کدام نوع چاپ را وارد می‌کنید؟", productSetupKeyboard())
	}
	price, err := strconv.Atoi(text)
	if err != nil || price < 0 {
		return c.Send("قیمت باید یک عدد باشد.")
	}
	if !b.store.SetColorPrice(sess.newProductID, price) {
		sess.state = stateMain
		return c.Send("جزوه یافت نشد.", b.adminMainKeyboard())
	}
	sess.state = stateAdminAddChoose
	return c.Send("قیمت رنگی ثبت شد ✅", productSetupKeyboard())
}

func (b *Bot) handleAdminAddBWPrice(c tele.Context, sess *session, text string) error {
	if text == btnBack {
		sess.state = stateAdminAddChoose
		return c.Send("قیمت کدام نوع چاپ را وارد می‌کنید؟", productSetupKeyboard())
	}
	price, err := strconv.Atoi(text)
	if err != nil || price < 0 {
		return c.Send("قیمت باید یک عدد باشد.")
	}
	if !b.store.SetBWPrice(sess.newProductID, price) {
		sess.state = stateMain
		return c.Send("جزوه یافت نشد.", b.adminMainKeyboard())
	}
	sess.state = stateAdminAddChoose
	return c.Send("قیمت سیاه و سفید ثبت شد ✅", productSetupKeyboard())
}

// handleAdminList serves the product list view: per-title drilldown into the
// finalized orders, or the jump into the delete flow.
func (b *Bot) handleAdminList(c tele.Context, sess *session, text string) error {
	if text == btnBack {
		sess.state = stateMain
		return c.Send("منوی ادمین", b.adminMainKeyboard())
	}
	if text == "🗑 حذف جزوه" {
		products := b.store.Products()
		if len(products) == 0 {
			sess.state = stateMain
			return c.Send("هیچ جزوه‌ای ثبت نشده است.", b.adminMainKeyboard())
		}
		sess.state = stateAdminDeleteSelect
		return c.Send("کدام جزوه حذف شود؟", listKeyboard(productTitles(products), btnBack))
	}

	p, ok := b.store.ProductByTitle(text)
	if !ok {
		return c.Send("جزوه‌ای با این نام یافت نشد.")
	}
	color, bw, lines := b.store.OrderDetail(p.ID)
	msg := fmt.Sprintf("جزوه: %s\nتعداد رنگی نهایی شده: %d\nتعداد سیاه و سفید نهایی شده: %d", p.Title, color, bw)
	if len(lines) > 0 {
		msg += "\n\n" + strings.Join(lines, "\n")
	}
	return c.Send(msg)
}

func (b *Bot) handleAdminDeleteSelect(c tele.Context, sess *session, text string) error {
	if text == btnBack {
		sess.state = stateMain
		return c.Send("منوی ادمین", b.adminMainKeyboard())
	}
	p, ok := b.store.ProductByTitle(text)
	if !ok {
		return c.Send("جزوه‌ای با این نام یافت نشد.")
	}
	deleted, ok := b.store.DeleteProduct(p.ID)
	if !ok {
		sess.state = stateMain
		return c.Send("حذف ناموفق بود.", b.adminMainKeyboard())
	}
	sess.state = stateMain
	return c.Send(
		fmt.Sprintf("جزوه '%s' حذف شد و از سفارشات/خریدها نیز پاک شد.", deleted.Title),
		b.adminMainKeyboard(),
	)
}
