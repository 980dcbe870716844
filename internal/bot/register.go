package bot

import (
	"fmt"
	"strings"

	"go.uber.org/zap"
	tele "gopkg.in/telebot.v3"

	"jozveh_bot/internal/models"
)

func (b *Bot) handleRegisterName(c tele.Context, sess *session, text string) error {
	uid := c.Sender().ID
	if text == btnBack {
		sess.state = stateMain
		return c.Send("لغو ثبت اطلاعات.", b.userMainKeyboard(b.store.HasIdentity(uid)))
	}
	parts := strings.Fields(text)
	if len(parts) < 2 {
		return c.Send("لطفا نام و نام‌خانوادگی را با فاصله وارد کنید (مثال: علی رضایی)", backKeyboard())
	}
	b.store.SetName(uid, parts[0], strings.Join(parts[1:], " "))
	sess.state = stateRegisterDorm
	return c.Send("شما خوابگاهی هستید یا تهرانی؟", residencyKeyboard())
}

func (b *Bot) handleRegisterDorm(c tele.Context, sess *session, text string) error {
	uid := c.Sender().ID
	switch text {
	case btnBack:
		sess.state = stateMain
		return c.Send("بازگشت", b.userMainKeyboard(b.store.HasIdentity(uid)))
	case "تهرانی":
		b.store.SetResidency(uid, false, "")
		sess.state = stateMain
		if err := c.Send("اطلاعات هویتی تکمیل شد ✅️", b.userMainKeyboard(true)); err != nil {
			return err
		}
		b.finishRegistration(uid, sess)
		return nil
	case "خوابگاهی":
		b.store.SetResidency(uid, true, "")
		sess.state = stateRegisterOtherDorm
		return c.Send("لطفا خوابگاه خود را انتخاب کنید:", dormKeyboard())
	default:
		return c.Send("لطفا یکی از گزینه‌ها را انتخاب کنید: تهرانی یا خوابگاهی", backKeyboard())
	}
}

func (b *Bot) handleRegisterOtherDorm(c tele.Context, sess *session, text string) error {
	uid := c.Sender().ID
	if text == btnBack {
		sess.state = stateMain
		return c.Send("بازگشت", b.userMainKeyboard(true))
	}
	if text == "سایر خوابگاه ها" {
		return c.Send("لطفا نام خوابگاه خود را تایپ کنید:", backKeyboard())
	}
	b.store.SetResidency(uid, true, text)
	sess.state = stateMain
	if err := c.Send("اطلاعات هویتی تکمیل شد ✅️", b.userMainKeyboard(true)); err != nil {
		return err
	}
	b.finishRegistration(uid, sess)
	return nil
}

// finishRegistration notifies the primary admin and, after an identity edit,
// reports the change and rewrites the denormalized name snapshots.
func (b *Bot) finishRegistration(uid int64, sess *session) {
	msg := fmt.Sprintf("کاربری ثبت نام کرد: %s — آیدی: %d", b.store.DisplayName(uid), uid)
	if _, err := b.tele.Send(tele.ChatID(b.cfg.AdminID), msg); err != nil {
		b.logger.Warn("Failed to notify admin of registration", zap.Error(err))
	}
	if sess.oldIdentity == nil {
		return
	}
	old := sess.oldIdentity
	sess.oldIdentity = nil
	current := b.store.User(uid)
	edit := fmt.Sprintf(
		"✏️ کاربر با آیدی %d\nاسم خود را از \"%s\" ➝ \"%s\" تغییر داد\nخوابگاه خود را از \"%s\" ➝ \"%s\"",
		uid, identityName(old), identityName(&current), identityDorm(old), identityDorm(&current),
	)
	if _, err := b.tele.Send(tele.ChatID(b.cfg.AdminID), edit); err != nil {
		b.logger.Warn("Failed to notify admin of identity edit", zap.Error(err))
	}
	b.store.PropagateIdentity(uid)
}

func identityName(u *models.User) string {
	first := u.FirstName
	if first == "" {
		first = "نامشخص"
	}
	return strings.TrimSpace(first + " " + u.LastName)
}

func identityDorm(u *models.User) string {
	if !u.IsDorm {
		return "تهرانی"
	}
	if u.DormName == "" {
		return "نامشخص"
	}
	return u.DormName
}
