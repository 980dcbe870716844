package bot

import (
	"fmt"
	"path/filepath"
	"strconv"
	"strings"

	"go.uber.org/zap"
	tele "gopkg.in/telebot.v3"

	"jozveh_bot/internal/backup"
	"jozveh_bot/internal/export"
	"jozveh_bot/internal/models"
	"jozveh_bot/internal/store"
)

// handleAdminMain is the admin overlay of the MAIN state. It only runs for
// texts handleMain did not recognize as user-flow buttons, and only for
// admins.
func (b *Bot) handleAdminMain(c tele.Context, sess *session, text string) error {
	uid := c.Sender().ID

	// reply-to-user mode: the next text goes to the selected user
	if sess.replyTo != 0 {
		target := sess.replyTo
		sess.replyTo = 0
		if text == btnBack {
			return c.Send("پاسخ لغو شد.", b.adminMainKeyboard())
		}
		if _, err := b.tele.Send(tele.ChatID(target), "[پاسخ ادمین]:\n"+text); err != nil {
			b.logger.Warn("Failed to deliver admin reply", zap.Int64("user_id", target), zap.Error(err))
			return c.Send("ارسال پیام به کاربر ناموفق بود.", b.adminMainKeyboard())
		}
		return c.Send("پیام شما برای کاربر ارسال شد.", b.adminMainKeyboard())
	}

	if text == btnBack {
		sess.clearAdminContext()
		return c.Send("منوی ادمین", b.adminMainKeyboard())
	}

	switch text {
	case "➕ اضافه کردن جزوه":
		sess.state = stateAdminAddName
		return c.Send("نام جزوه را وارد کنید:", backKeyboard())

	case "📚 لیست جزوات":
		products := b.store.Products()
		if len(products) == 0 {
			return c.Send("هیچ جزوه‌ای ثبت نشده است.", b.adminMainKeyboard())
		}
		lines := make([]string, 0, len(products))
		for _, p := range products {
			lines = append(lines, fmt.Sprintf("%s — رنگی: %d — سیاه و سفید: %d", p.Title, p.ColorPrice, p.BWPrice))
		}
		sess.state = stateAdminList
		return c.Send(
			strings.Join(lines, "\n"),
			listKeyboard(productTitles(products), "🗑 حذف جزوه", btnBack),
		)

	case "👥 اسامی ثبت نام نهایی کنندگان":
		finalizers := b.store.Finalizers()
		if len(finalizers) == 0 {
			return c.Send("هنوز کسی ثبت نهایی نکرده است.", b.adminMainKeyboard())
		}
		sess.clearAdminContext()
		sess.regNames = map[string]int64{}
		labels := make([]string, 0, len(finalizers))
		for _, u := range finalizers {
			label := fmt.Sprintf("%s — id:%d", u.Name, u.ID)
			sess.regNames[label] = u.ID
			labels = append(labels, label)
		}
		return c.Send("اسامی ثبت نام نهایی کنندگان:", listKeyboard(labels, "🗑 حذف لیست", btnBack))

	case "👤 اسامی خریداران":
		buyers := b.store.Buyers()
		if len(buyers) == 0 {
			return c.Send("هنوز خریدی تایید نشده است.", b.adminMainKeyboard())
		}
		sess.clearAdminContext()
		sess.buyers = map[string]int64{}
		labels := make([]string, 0, len(buyers))
		for _, u := range buyers {
			label := fmt.Sprintf("%s — id:%d", u.Name, u.ID)
			sess.buyers[label] = u.ID
			labels = append(labels, label)
		}
		return c.Send("اسامی خریداران:", listKeyboard(labels, "🗑 حذف لیست", btnBack))

	case "📚 جزوات خریداری شده":
		return b.sendAggregation(c, sess, store.SourcePurchased)

	case "📄 جزوات ثبت نهایی شده":
		return b.sendAggregation(c, sess, store.SourceFinalized)

	case "🕓 فیش‌های در انتظار تایید":
		return b.rebroadcastPending(c)

	case "📊 دریافت فایل اکسل خرید جزوات":
		return b.sendExcelReport(c)

	case "⛔ مسدود کردن کاربر":
		sess.state = stateAdminBlockID
		return c.Send("آیدی عددی کاربر مورد نظر را وارد کنید:", backKeyboard())

	case "✅ رفع مسدودیت":
		sess.state = stateAdminUnblockID
		return c.Send("آیدی عددی کاربر مورد نظر را وارد کنید:", backKeyboard())

	case "📤 دریافت بکاپ":
		buf, err := backup.Archive(b.store.DataFiles())
		if err != nil {
			b.logger.Error("Backup archive failed", zap.Error(err))
			return c.Send("ساخت بکاپ ناموفق بود.", b.adminMainKeyboard())
		}
		doc := &tele.Document{File: tele.FromReader(buf), FileName: "backup.zip", Caption: "📦 بکاپ داده‌ها"}
		return c.Send(doc, b.adminMainKeyboard())

	case "📥 وارد کردن بکاپ":
		sess.awaitingBackup = true
		return c.Send("فایل zip بکاپ را به صورت سند (document) ارسال کنید:", backKeyboard())

	case "⚙️ مدیریت ادمین‌ها":
		if uid != b.cfg.AdminID {
			return c.Send("فقط ادمین اصلی به این بخش دسترسی دارد.", b.adminMainKeyboard())
		}
		sess.state = stateManageAdmins
		return c.Send("مدیریت ادمین‌ها:", listKeyboard([]string{"➕ اضافه کردن ادمین جدید", "➖ حذف ادمین‌های موجود"}, btnBack))

	case "🗑 حذف لیست":
		if sess.buyers != nil {
			return c.Send("تمام خریدهای ثبت شده حذف شوند؟", confirmMarkup("del_list", "buyers"))
		}
		if sess.regNames != nil {
			return c.Send("تمام سفارشات نهایی شده حذف شوند؟", confirmMarkup("del_list", "reg_names"))
		}
		return c.Send("ابتدا یکی از لیست‌ها را باز کنید.", b.adminMainKeyboard())

	case "🗑 حذف همه جزوات کاربر":
		if sess.selectedRegUser == 0 {
			return c.Send("ابتدا کاربر را از لیست انتخاب کنید.", b.adminMainKeyboard())
		}
		return c.Send(
			fmt.Sprintf("همه سفارشات کاربر %d حذف شوند؟", sess.selectedRegUser),
			confirmMarkup("del_reg_user", strconv.FormatInt(sess.selectedRegUser, 10)),
		)

	case "🗑 حذف همه خریدهای کاربر":
		if sess.selectedBuyer == 0 {
			return c.Send("ابتدا کاربر را از لیست انتخاب کنید.", b.adminMainKeyboard())
		}
		return c.Send(
			fmt.Sprintf("همه خریدهای کاربر %d حذف شوند؟", sess.selectedBuyer),
			confirmMarkup("del_buyer", strconv.FormatInt(sess.selectedBuyer, 10)),
		)

	case "💬 چت با کاربر":
		target := sess.selectedRegUser
		if target == 0 {
			target = sess.selectedBuyer
		}
		if target == 0 {
			return c.Send("ابتدا کاربر را از لیست انتخاب کنید.", b.adminMainKeyboard())
		}
		sess.replyTo = target
		return c.Send(fmt.Sprintf("پیام خود را برای کاربر %d بنویسید:", target), backKeyboard())
	}

	// print type pick inside an aggregation drilldown
	if sess.inspectPID != "" && (strings.Contains(text, "رنگ") || strings.Contains(text, "سیاه")) {
		return b.sendBreakdown(c, sess, text)
	}

	// aggregation title pick: ask for the print type next
	if sess.purchasedAgg[text] || sess.finalizedAgg[text] {
		p, ok := b.store.ProductByTitle(text)
		if !ok {
			return c.Send("جزوه یافت نشد.", b.adminMainKeyboard())
		}
		sess.inspectPID = p.ID
		if sess.purchasedAgg[text] {
			sess.inspectSource = store.SourcePurchased
		} else {
			sess.inspectSource = store.SourceFinalized
		}
		return c.Send("نوع چاپ را انتخاب کنید:", printTypeKeyboard())
	}

	// finalizer pick: that user's orders
	if id, ok := sess.regNames[text]; ok {
		sess.selectedRegUser = id
		sess.selectedBuyer = 0
		orders := b.store.Orders(id)
		if len(orders) == 0 {
			return c.Send("این کاربر سفارش نهایی شده‌ای ندارد.", b.adminMainKeyboard())
		}
		var blocks []string
		for i, ord := range orders {
			blocks = append(blocks, fmt.Sprintf("سفارش %d — مجموع: %d\n%s", i+1, ord.Total, itemLines(ord.Items)))
		}
		return c.Send(
			strings.Join(blocks, "\n\n"),
			listKeyboard([]string{"🗑 حذف همه جزوات کاربر", "💬 چت با کاربر"}, btnBack),
		)
	}

	// buyer pick: that user's approved purchases
	if id, ok := sess.buyers[text]; ok {
		sess.selectedBuyer = id
		sess.selectedRegUser = 0
		purchases := b.store.Purchases(id)
		if len(purchases) == 0 {
			return c.Send("این کاربر خرید تایید شده‌ای ندارد.", b.adminMainKeyboard())
		}
		var blocks []string
		for _, pur := range purchases {
			blocks = append(blocks, fmt.Sprintf("%s — مجموع: %d تومان\n%s", pur.PurchaseID, pur.Total, itemLines(pur.Items)))
		}
		return c.Send(
			strings.Join(blocks, "\n\n"),
			listKeyboard([]string{"🗑 حذف همه خریدهای کاربر", "💬 چت با کاربر"}, btnBack),
		)
	}

	return c.Send("دستور نامعتبر.", b.adminMainKeyboard())
}

// sendAggregation shows the per-title color/monochrome totals of a source and
// arms the per-title drilldown.
func (b *Bot) sendAggregation(c tele.Context, sess *session, src store.Source) error {
	summary := b.store.Summary(src)
	if len(summary) == 0 {
		if src == store.SourcePurchased {
			return c.Send("هنوز خریدی تایید نشده است.", b.adminMainKeyboard())
		}
		return c.Send("هنوز سفارشی نهایی نشده است.", b.adminMainKeyboard())
	}
	sess.clearAdminContext()
	agg := map[string]bool{}
	labels := make([]string, 0, len(summary))
	for _, tc := range summary {
		agg[tc.Title] = true
		labels = append(labels, tc.Title)
	}
	if src == store.SourcePurchased {
		sess.purchasedAgg = agg
	} else {
		sess.finalizedAgg = agg
	}
	return c.Send(
		strings.Join(summaryLines(summary), "\n")+"\n\nبرای جزئیات، جزوه را انتخاب کنید:",
		listKeyboard(labels, btnBack),
	)
}

// sendBreakdown answers the print type pick of a drilldown with the per-user
// quantities of the selected product.
func (b *Bot) sendBreakdown(c tele.Context, sess *session, text string) error {
	printType := typeFromLabel(text)
	rows := b.store.Breakdown(sess.inspectSource, sess.inspectPID, printType)
	sess.inspectPID = ""
	if len(rows) == 0 {
		return c.Send("موردی یافت نشد.", b.adminMainKeyboard())
	}
	lines := make([]string, 0, len(rows))
	for _, r := range rows {
		lines = append(lines, fmt.Sprintf("%s — %d عدد", r.Name, r.Qty))
	}
	return c.Send(strings.Join(lines, "\n"), b.adminMainKeyboard())
}

// rebroadcastPending resends every unprocessed receipt to all admins with a
// fresh review markup.
func (b *Bot) rebroadcastPending(c tele.Context) error {
	pending := b.store.PendingPayments()
	if len(pending) == 0 {
		return c.Send("فیش در انتظار تاییدی وجود ندارد.", b.adminMainKeyboard())
	}
	for _, p := range pending {
		caption := fmt.Sprintf(
			"📌 فیش پرداختی از %s %s\nآیدی: %d\nجمع: %d تومان\npayment_id: %s",
			p.FirstName, p.LastName, p.UserID, p.Total, p.PaymentID,
		)
		photo := &tele.Photo{File: tele.File{FileID: p.FileID}, Caption: caption}
		markup := paymentReviewMarkup(p.PaymentID, p.UserID)
		for _, adminID := range b.adminIDs() {
			if _, err := b.tele.Send(tele.ChatID(adminID), photo, markup); err != nil {
				b.logger.Warn("Pending receipt rebroadcast failed",
					zap.Int64("admin_id", adminID), zap.String("payment_id", p.PaymentID), zap.Error(err))
			}
		}
	}
	return c.Send(fmt.Sprintf("%d فیش در انتظار تایید ارسال شد.", len(pending)), b.adminMainKeyboard())
}

// sendExcelReport writes the purchase spreadsheet to the data directory and
// sends it to every admin.
func (b *Bot) sendExcelReport(c tele.Context) error {
	path := filepath.Join(b.store.Dir(), "purchases.xlsx")
	err := export.WritePurchaseReport(path, b.store.ReportUsers(), b.store.Products(), b.store.ReportPurchases())
	if err != nil {
		b.logger.Error("Excel export failed", zap.Error(err))
		return c.Send("ساخت فایل اکسل ناموفق بود.", b.adminMainKeyboard())
	}
	for _, adminID := range b.adminIDs() {
		doc := &tele.Document{File: tele.FromDisk(path), FileName: "purchases.xlsx"}
		if _, err := b.tele.Send(tele.ChatID(adminID), doc); err != nil {
			b.logger.Warn("Excel delivery failed", zap.Int64("admin_id", adminID), zap.Error(err))
		}
	}
	return c.Send("📊 فایل اکسل ارسال شد.", b.adminMainKeyboard())
}

func typeFromLabel(text string) string {
	if strings.Contains(text, "رنگ") {
		return models.TypeColor
	}
	return models.TypeBW
}
