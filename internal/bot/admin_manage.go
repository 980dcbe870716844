package bot

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"go.uber.org/zap"
	tele "gopkg.in/telebot.v3"

	"jozveh_bot/internal/backup"
)

func (b *Bot) handleAdminBlockID(c tele.Context, sess *session, text string) error {
	if text == btnBack {
		sess.state = stateMain
		return c.Send("منوی ادمین", b.adminMainKeyboard())
	}
	id, err := strconv.ParseInt(text, 10, 64)
	if err != nil {
		return c.Send("آیدی باید یک عدد باشد.")
	}
	b.store.Block(id)
	sess.state = stateMain
	return c.Send(fmt.Sprintf("کاربر %d مسدود شد.", id), b.adminMainKeyboard())
}

func (b *Bot) handleAdminUnblockID(c tele.Context, sess *session, text string) error {
	if text == btnBack {
		sess.state = stateMain
		return c.Send("منوی ادمین", b.adminMainKeyboard())
	}
	id, err := strconv.ParseInt(text, 10, 64)
	if err != nil {
		return c.Send("آیدی باید یک عدد باشد.")
	}
	b.store.Unblock(id)
	sess.state = stateMain
	return c.Send(fmt.Sprintf("مسدودیت کاربر %d برداشته شد.", id), b.adminMainKeyboard())
}

func (b *Bot) handleManageAdmins(c tele.Context, sess *session, text string) error {
	switch text {
	case btnBack:
		sess.state = stateMain
		return c.Send("منوی ادمین", b.adminMainKeyboard())
	case "➕ اضافه کردن ادمین جدید":
		sess.state = stateAddAdmin
		return c.Send("آیدی عددی ادمین جدید را وارد کنید:", backKeyboard())
	case "➖ حذف ادمین‌های موجود":
		admins := b.store.Admins()
		if len(admins) == 0 {
			return c.Send("ادمین دیگری به جز شما ثبت نشده است.")
		}
		lines := make([]string, 0, len(admins))
		for _, id := range admins {
			lines = append(lines, strconv.FormatInt(id, 10))
		}
		sess.state = stateRemoveAdmin
		return c.Send("ادمین‌های فعلی:\n"+strings.Join(lines, "\n")+"\n\nآیدی ادمینی که حذف می‌شود را وارد کنید:", backKeyboard())
	}
	return c.Send("از دکمه‌ها استفاده کنید.")
}

func (b *Bot) handleAddAdmin(c tele.Context, sess *session, text string) error {
	if text == btnBack {
		sess.state = stateManageAdmins
		return c.Send("مدیریت ادمین‌ها:", listKeyboard([]string{"➕ اضافه کردن ادمین جدید", "➖ حذف ادمین‌های موجود"}, btnBack))
	}
	id, err := strconv.ParseInt(text, 10, 64)
	if err != nil {
		return c.Send("آیدی باید یک عدد باشد.")
	}
	sess.state = stateMain
	if !b.store.AddAdmin(id) {
		return c.Send("⚠️ این کاربر از قبل ادمین است.", b.adminMainKeyboard())
	}
	return c.Send(fmt.Sprintf("✅ کاربر %d به عنوان ادمین اضافه شد.", id), b.adminMainKeyboard())
}

func (b *Bot) handleRemoveAdmin(c tele.Context, sess *session, text string) error {
	if text == btnBack {
		sess.state = stateManageAdmins
		return c.Send("مدیریت ادمین‌ها:", listKeyboard([]string{"➕ اضافه کردن ادمین جدید", "➖ حذف ادمین‌های موجود"}, btnBack))
	}
	id, err := strconv.ParseInt(text, 10, 64)
	if err != nil {
		return c.Send("آیدی باید یک عدد باشد.")
	}
	sess.state = stateMain
	if !b.store.RemoveAdmin(id) {
		return c.Send("چنین ادمینی در لیست نیست.", b.adminMainKeyboard())
	}
	return c.Send(fmt.Sprintf("🚫 ادمین %d حذف شد و به کاربر عادی تبدیل گردید.", id), b.adminMainKeyboard())
}

// onDocument handles the backup restore upload. Only an admin who pressed
// the import button gets this far; everyone else is told documents are not
// accepted.
func (b *Bot) onDocument(c tele.Context) error {
	uid := c.Sender().ID
	if b.store.IsBlocked(uid) {
		return c.Send("🚫 شما مسدود شده‌اید.")
	}
	sess := b.sessions.get(uid)
	if !b.isAdmin(uid) || !sess.awaitingBackup {
		return c.Send("ارسال فایل پشتیبانی نمی‌شود.")
	}
	sess.awaitingBackup = false

	doc := c.Message().Document
	if doc == nil {
		return c.Send("فایل دریافت نشد.", b.adminMainKeyboard())
	}
	rc, err := b.tele.File(&doc.File)
	if err != nil {
		b.logger.Error("Backup download failed", zap.Error(err))
		return c.Send("دانلود فایل بکاپ ناموفق بود.", b.adminMainKeyboard())
	}
	defer rc.Close()
	data, err := io.ReadAll(rc)
	if err != nil {
		b.logger.Error("Backup read failed", zap.Error(err))
		return c.Send("خواندن فایل بکاپ ناموفق بود.", b.adminMainKeyboard())
	}
	if err := backup.Restore(b.store.Dir(), data, b.store.DataFiles()); err != nil {
		b.logger.Error("Backup restore failed", zap.Error(err))
		return c.Send("فایل بکاپ معتبر نیست.", b.adminMainKeyboard())
	}
	b.store.Reload()
	return c.Send("✅ بکاپ با موفقیت بازیابی شد.", b.adminMainKeyboard())
}
