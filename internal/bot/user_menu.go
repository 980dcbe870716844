package bot

import (
	"fmt"
	"strings"

	"go.uber.org/zap"
	tele "gopkg.in/telebot.v3"

	"jozveh_bot/internal/models"
)

// handleMain is the MAIN-state dispatcher. User flows first, then the admin
// overlay, then back/unknown.
func (b *Bot) handleMain(c tele.Context, sess *session, text string) error {
	uid := c.Sender().ID
	hasIdentity := b.store.HasIdentity(uid)

	// chat-with-admin mode: everything except back is forwarded verbatim
	if uid != b.cfg.AdminID && sess.chatWithAdmin {
		if text == btnBack {
			sess.chatWithAdmin = false
			return c.Send("چت با ادمین لغو شد.", b.userMainKeyboard(hasIdentity))
		}
		caption := fmt.Sprintf("پیام از %s — id:%d\n\n%s", b.store.DisplayName(uid), uid, text)
		if _, err := b.tele.Send(tele.ChatID(b.cfg.AdminID), caption, replyUserMarkup(uid)); err != nil {
			b.logger.Warn("Failed to forward chat message to admin", zap.Error(err))
		}
		return c.Send("پیام شما به ادمین ارسال شد.", b.userMainKeyboard(hasIdentity))
	}

	// identity gate: everything except registration entry and back redirects
	if uid != b.cfg.AdminID && !hasIdentity && text != "📝 ثبت اطلاعات هویتی" && text != btnBack {
		return c.Send("لطفا ابتدا اطلاعات هویتی خود را ثبت کنید.", b.userMainKeyboard(false))
	}

	switch text {
	case "✏️ ویرایش اطلاعات هویتی":
		old := b.store.ResetIdentity(uid)
		sess.oldIdentity = &old
		sess.state = stateRegisterName
		return c.Send("اطلاعات قبلی پاک شد. لطفا نام و نام خانوادگی جدید را وارد کنید:", backKeyboard())

	case "📝 ثبت اطلاعات هویتی":
		sess.state = stateRegisterName
		return c.Send("لطفا نام و نام خانوادگی را (مثال: علی رضایی) وارد کنید:", backKeyboard())

	case "🛒 انتخاب جزوه":
		products := b.store.Products()
		if len(products) == 0 {
			return c.Send("فعلا هیچ جزوه‌ای موجود نیست.", b.userMainKeyboard(hasIdentity))
		}
		sess.state = stateBuySelectProduct
		return c.Send("لطفا جزوه مورد نظر را انتخاب کنید:", listKeyboard(productTitles(products), btnBack))

	case "📦 سبد خرید":
		cart := b.store.Cart(uid)
		if len(cart) == 0 {
			return c.Send("سبد خرید شما خالی است.", b.userMainKeyboard(hasIdentity))
		}
		var lines []string
		for i, item := range cart {
			lines = append(lines, fmt.Sprintf("%d. %s - %s - تعداد: %d - قیمت واحد: %d", i+1, item.Title, item.Type, item.Qty, item.UnitPrice))
		}
		lines = append(lines, fmt.Sprintf("\nجمع کل: %d", models.ItemsTotal(cart)))
		return c.Send(strings.Join(lines, "\n"), b.userMainKeyboard(hasIdentity))

	case "🗑 ویرایش سبد خرید":
		cart := b.store.Cart(uid)
		if len(cart) == 0 {
			return c.Send("سبد خرید خالی است", b.userMainKeyboard(hasIdentity))
		}
		labels := make([]string, 0, len(cart))
		for i, item := range cart {
			labels = append(labels, fmt.Sprintf("حذف: %d. %s - %s", i+1, item.Title, item.Type))
		}
		sess.state = stateBuySelectProduct
		return c.Send("کدام مورد را حذف می‌کنید؟", listKeyboard(labels, btnBack))

	case "✅ ثبت نهایی سبد خرید":
		order, ok := b.store.FinalizeCart(uid)
		if !ok {
			return c.Send("سبد خرید شما خالی است.", b.userMainKeyboard(hasIdentity))
		}
		return c.Send(
			fmt.Sprintf("سبد شما ثبت نهایی شد. جمع کل: %d تومان.\nبرای پرداخت به منوی «💳 خرید جزوات نهایی شده» بروید.", order.Total),
			b.userMainKeyboard(hasIdentity),
		)

	case "📄 جزوات نهایی شده":
		finalized := b.store.Orders(uid)
		if len(finalized) == 0 {
			return c.Send("شما تا کنون ثبت نهایی نداشته‌اید.", b.userMainKeyboard(hasIdentity))
		}
		var blocks []string
		for i, ord := range finalized {
			blocks = append(blocks, fmt.Sprintf("سفارش %d — مجموع: %d\n%s", i+1, ord.Total, itemLines(ord.Items)))
		}
		sess.viewingFinalized = true
		return c.Send(strings.Join(blocks, "\n\n"), listKeyboard([]string{"🗑 پاک کردن لیست"}, btnBack))

	case "🗑 پاک کردن لیست":
		if !sess.viewingFinalized {
			return c.Send("هیچ لیستی برای پاک کردن مشاهده نمی‌شود.", b.userMainKeyboard(hasIdentity))
		}
		sess.viewingFinalized = false
		b.store.DeleteUserOrders(uid)
		return c.Send("لیست جزوات نهایی شده شما پاک شد.", b.userMainKeyboard(hasIdentity))

	case "💳 خرید جزوات نهایی شده":
		finalized := b.store.Orders(uid)
		if len(finalized) == 0 {
			return c.Send("سفارشی برای پرداخت وجود ندارد.", b.userMainKeyboard(hasIdentity))
		}
		labels := make([]string, 0, len(finalized))
		for i, ord := range finalized {
			labels = append(labels, fmt.Sprintf("سفارش: %d - %d تومان", i+1, ord.Total))
		}
		sess.finalizedList = finalized
		return c.Send("کدام سفارش را می‌خواهید پرداخت کنید؟", listKeyboard(labels, btnBack))

	case "📦 جزوات خریداری شده":
		return b.sendPurchasedView(c, sess, uid, hasIdentity)

	case "💬 چت با ادمین":
		sess.chatWithAdmin = true
		return c.Send("حالا پیام خود را بنویسید؛ پیام شما به ادمین ارسال می‌شود. برای خروج '🔙 بازگشت' را بزنید.", backKeyboard())
	}

	// pay-order pick: label generated above, index parsed back out of it
	if strings.HasPrefix(text, "سفارش:") {
		idx := parseOrderIndex(text, len(sess.finalizedList))
		if idx < 0 || idx >= len(sess.finalizedList) {
			return c.Send("سفارشی برای پرداخت وجود ندارد.", b.userMainKeyboard(hasIdentity))
		}
		sel := sess.finalizedList[idx]
		sess.payOrderID = sel.OrderID
		sess.state = stateAwaitingReceipt
		return c.Send(
			fmt.Sprintf("شما سفارش با جمع %d تومان را انتخاب کردید.\nلطفا فیش پرداخت را به صورت عکس ارسال کنید یا '🔙 بازگشت' را بزنید.", sel.Total),
			backKeyboard(),
		)
	}

	if b.isAdmin(uid) {
		return b.handleAdminMain(c, sess, text)
	}

	if text == btnBack {
		return c.Send("بازگشت به منوی اصلی", b.userMainKeyboard(hasIdentity))
	}
	return c.Send("گزینه نامشخص — از دکمه‌ها استفاده کنید.", b.userMainKeyboard(hasIdentity))
}

func (b *Bot) sendPurchasedView(c tele.Context, sess *session, uid int64, hasIdentity bool) error {
	purchases := b.store.Purchases(uid)
	if len(purchases) == 0 {
		return c.Send("شما هنوز خرید تایید شده‌ای ندارید.", b.userMainKeyboard(hasIdentity))
	}
	type counts struct{ color, bw int }
	agg := map[string]*counts{}
	var order []string
	var detail []string
	for _, pur := range purchases {
		detail = append(detail, fmt.Sprintf("%s — مجموع: %d تومان\n%s", pur.PurchaseID, pur.Total, itemLines(pur.Items)))
		for _, it := range pur.Items {
			cnt, ok := agg[it.Title]
			if !ok {
				cnt = &counts{}
				agg[it.Title] = cnt
				order = append(order, it.Title)
			}
			if it.Type == models.TypeColor {
				cnt.color += it.Qty
			} else {
				cnt.bw += it.Qty
			}
		}
	}
	var summary []string
	for _, title := range order {
		summary = append(summary, fmt.Sprintf("%s : رنگی %d - سیاه و سفید %d", title, agg[title].color, agg[title].bw))
	}
	return c.Send(
		"جزوات خریداری شده:\n\n"+strings.Join(summary, "\n")+"\n\nجزئیات خریدها:\n\n"+strings.Join(detail, "\n\n"),
		b.userMainKeyboard(hasIdentity),
	)
}

func itemLines(items []models.CartItem) string {
	var lines []string
	for _, it := range items {
		lines = append(lines, fmt.Sprintf("- %s (%s) x %d", it.Title, it.Type, it.Qty))
	}
	return strings.Join(lines, "\n")
}
