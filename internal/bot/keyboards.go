package bot

import (
	"fmt"
	"strconv"

	tele "gopkg.in/telebot.v3"

	"jozveh_bot/internal/models"
	"jozveh_bot/internal/store"
)

var dorms = []string{
	"خوابگاه امام علی",
	"خوابگاه الزهرا",
	"خوابگاه رستاک",
	"خوابگاه سمیه",
	"خوابگاه دانش",
	"سایر خوابگاه ها",
}

func backKeyboard() *tele.ReplyMarkup {
	m := &tele.ReplyMarkup{ResizeKeyboard: true}
	m.Reply(m.Row(m.Text(btnBack)))
	return m
}

func (b *Bot) userMainKeyboard(hasIdentity bool) *tele.ReplyMarkup {
	m := &tele.ReplyMarkup{ResizeKeyboard: true}
	if !hasIdentity {
		m.Reply(
			m.Row(m.Text("📝 ثبت اطلاعات هویتی")),
			m.Row(m.Text(btnBack)),
		)
		return m
	}
	m.Reply(
		m.Row(m.Text("🛒 انتخاب جزوه"), m.Text("📦 سبد خرید")),
		m.Row(m.Text("🗑 ویرایش سبد خرید"), m.Text("✅ ثبت نهایی سبد خرید")),
		m.Row(m.Text("📄 جزوات نهایی شده"), m.Text("💳 خرید جزوات نهایی شده")),
		m.Row(m.Text("📦 جزوات خریداری شده"), m.Text("💬 چت با ادمین")),
		m.Row(m.Text("✏️ ویرایش اطلاعات هویتی")),
		m.Row(m.Text(btnBack)),
	)
	return m
}

func (b *Bot) adminMainKeyboard() *tele.ReplyMarkup {
	m := &tele.ReplyMarkup{ResizeKeyboard: true}
	m.Reply(
		m.Row(m.Text("➕ اضافه کردن جزوه"), m.Text("📚 لیست جزوات")),
		m.Row(m.Text("👥 اسامی ثبت نام نهایی کنندگان"), m.Text("👤 اسامی خریداران")),
		m.Row(m.Text("📚 جزوات خریداری شده"), m.Text("📄 جزوات ثبت نهایی شده")),
		m.Row(m.Text("🕓 فیش‌های در انتظار تایید"), m.Text("📊 دریافت فایل اکسل خرید جزوات")),
		m.Row(m.Text("⛔ مسدود کردن کاربر"), m.Text("✅ رفع مسدودیت")),
		m.Row(m.Text("📤 دریافت بکاپ"), m.Text("📥 وارد کردن بکاپ")),
		m.Row(m.Text(btnBack)),
		m.Row(m.Text("⚙️ مدیریت ادمین‌ها")),
	)
	return m
}

// listKeyboard builds one button per label plus trailing rows.
func listKeyboard(labels []string, trailing ...string) *tele.ReplyMarkup {
	m := &tele.ReplyMarkup{ResizeKeyboard: true}
	rows := make([]tele.Row, 0, len(labels)+len(trailing))
	for _, l := range labels {
		rows = append(rows, m.Row(m.Text(l)))
	}
	for _, l := range trailing {
		rows = append(rows, m.Row(m.Text(l)))
	}
	m.Reply(rows...)
	return m
}

func productTitles(products []models.Product) []string {
	titles := make([]string, 0, len(products))
	for _, p := range products {
		titles = append(titles, p.Title)
	}
	return titles
}

func printTypeKeyboard() *tele.ReplyMarkup {
	m := &tele.ReplyMarkup{ResizeKeyboard: true}
	m.Reply(
		m.Row(m.Text("🎨 رنگی"), m.Text("⬛ سیاه سفید")),
		m.Row(m.Text(btnBack)),
	)
	return m
}

func dormKeyboard() *tele.ReplyMarkup {
	return listKeyboard(dorms, btnBack)
}

func residencyKeyboard() *tele.ReplyMarkup {
	m := &tele.ReplyMarkup{ResizeKeyboard: true}
	m.Reply(
		m.Row(m.Text("تهرانی"), m.Text("خوابگاهی")),
		m.Row(m.Text(btnBack)),
	)
	return m
}

// paymentReviewMarkup carries the approve/reject pair plus the reply-to-user
// shortcut on every forwarded receipt.
func paymentReviewMarkup(payID string, userID int64) *tele.ReplyMarkup {
	m := &tele.ReplyMarkup{}
	m.Inline(
		m.Row(
			m.Data("✅ تایید", "pay_approve", payID),
			m.Data("❌ عدم تایید", "pay_reject", payID),
		),
		m.Row(m.Data("↩️ پاسخ دادن", "reply_user", strconv.FormatInt(userID, 10))),
	)
	return m
}

func replyUserMarkup(userID int64) *tele.ReplyMarkup {
	m := &tele.ReplyMarkup{}
	m.Inline(m.Row(m.Data("↩️ پاسخ دادن", "reply_user", strconv.FormatInt(userID, 10))))
	return m
}

func confirmMarkup(unique, payload string) *tele.ReplyMarkup {
	m := &tele.ReplyMarkup{}
	m.Inline(m.Row(
		m.Data("بله حذف کن", unique, payload),
		m.Data("لغو", unique, "cancel"),
	))
	return m
}

func summaryLines(summary []store.TitleCounts) []string {
	lines := make([]string, 0, len(summary))
	for _, tc := range summary {
		lines = append(lines, fmt.Sprintf("%s : رنگی %d - سیاه و سفید %d", tc.Title, tc.Color, tc.BW))
	}
	return lines
}
