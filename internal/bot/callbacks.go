package bot

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"go.uber.org/zap"
	tele "gopkg.in/telebot.v3"

	"jozveh_bot/internal/store"
)

// callbackPayload strips telebot's unique prefix from the callback data.
func callbackPayload(c tele.Context) string {
	data := c.Callback().Data
	if i := strings.IndexByte(data, '|'); i >= 0 {
		data = data[i+1:]
	}
	return strings.TrimSpace(data)
}

func (b *Bot) onPayApprove(c tele.Context) error {
	payID := callbackPayload(c)
	purchase, userID, err := b.store.ApprovePayment(payID, c.Sender().ID)
	switch {
	case errors.Is(err, store.ErrPaymentNotFound):
		_ = c.EditCaption(c.Message().Caption + "\n\nاین فیش دیگر موجود نیست یا قبلا پردازش شده.")
		return c.Respond()
	case errors.Is(err, store.ErrOrderNotFound):
		_ = c.EditCaption(c.Message().Caption + "\n\nسفارش مربوطه یافت نشد.")
		return c.Respond()
	case err != nil:
		b.logger.Error("Approve failed", zap.String("payment_id", payID), zap.Error(err))
		return c.Respond(&tele.CallbackResponse{Text: "خطا در تایید فیش"})
	}

	if err := c.EditCaption(c.Message().Caption + "\n\n✅ این فیش تأیید شد."); err != nil {
		b.logger.Warn("Caption edit after approve failed", zap.Error(err))
	}
	if _, err := b.tele.Send(tele.ChatID(userID), "پرداخت شما تایید شد ✅️"); err != nil {
		b.logger.Warn("Approve notification failed", zap.Int64("user_id", userID), zap.Error(err))
	}
	b.logger.Info("Payment approved",
		zap.String("payment_id", payID),
		zap.String("purchase_id", purchase.PurchaseID),
		zap.Int64("user_id", userID),
		zap.Int64("by", c.Sender().ID))
	return c.Respond(&tele.CallbackResponse{Text: "تایید شد"})
}

func (b *Bot) onPayReject(c tele.Context) error {
	payID := callbackPayload(c)
	userID, err := b.store.RejectPayment(payID, c.Sender().ID)
	if err != nil {
		_ = c.EditCaption(c.Message().Caption + "\n\nاین فیش دیگر موجود نیست یا قبلا پردازش شده.")
		return c.Respond()
	}

	if err := c.EditCaption(c.Message().Caption + "\n\n❌ این فیش رد شد."); err != nil {
		b.logger.Warn("Caption edit after reject failed", zap.Error(err))
	}
	if _, err := b.tele.Send(tele.ChatID(userID), "متاسفانه پرداخت شما توسط ادمین تایید نشد ❌"); err != nil {
		b.logger.Warn("Reject notification failed", zap.Int64("user_id", userID), zap.Error(err))
	}
	b.logger.Info("Payment rejected",
		zap.String("payment_id", payID),
		zap.Int64("user_id", userID),
		zap.Int64("by", c.Sender().ID))
	return c.Respond(&tele.CallbackResponse{Text: "رد شد"})
}

// onReplyUser arms reply-to-user mode for the pressing admin.
func (b *Bot) onReplyUser(c tele.Context) error {
	uid := c.Sender().ID
	if !b.isAdmin(uid) {
		return c.Respond()
	}
	target, err := strconv.ParseInt(callbackPayload(c), 10, 64)
	if err != nil {
		return c.Respond(&tele.CallbackResponse{Text: "آیدی نامعتبر"})
	}
	sess := b.sessions.get(uid)
	sess.replyTo = target
	if err := c.Send(fmt.Sprintf("پیام خود را برای کاربر %d بنویسید:", target), backKeyboard()); err != nil {
		return err
	}
	return c.Respond()
}

// onConfirmDeleteList wipes a whole collection after the inline confirm.
func (b *Bot) onConfirmDeleteList(c tele.Context) error {
	if !b.isAdmin(c.Sender().ID) {
		return c.Respond()
	}
	switch callbackPayload(c) {
	case "buyers":
		b.store.DeleteAllPurchases()
		_ = c.Send("لیست خریداران به طور کامل پاک شد.", b.adminMainKeyboard())
	case "reg_names":
		b.store.DeleteAllOrders()
		_ = c.Send("لیست سفارشات نهایی شده به طور کامل پاک شد.", b.adminMainKeyboard())
	default:
		_ = c.Send("عملیات حذف لغو شد.", b.adminMainKeyboard())
	}
	return c.Respond()
}

func (b *Bot) onDeleteBuyer(c tele.Context) error {
	if !b.isAdmin(c.Sender().ID) {
		return c.Respond()
	}
	payload := callbackPayload(c)
	if payload == "cancel" {
		_ = c.Send("عملیات حذف لغو شد.", b.adminMainKeyboard())
		return c.Respond()
	}
	id, err := strconv.ParseInt(payload, 10, 64)
	if err != nil {
		return c.Respond(&tele.CallbackResponse{Text: "آیدی نامعتبر"})
	}
	b.store.DeleteUserPurchases(id)
	_ = c.Send(fmt.Sprintf("همه خریدهای کاربر %d حذف شد.", id), b.adminMainKeyboard())
	return c.Respond()
}

func (b *Bot) onDeleteRegUser(c tele.Context) error {
	if !b.isAdmin(c.Sender().ID) {
		return c.Respond()
	}
	payload := callbackPayload(c)
	if payload == "cancel" {
		_ = c.Send("عملیات حذف لغو شد.", b.adminMainKeyboard())
		return c.Respond()
	}
	id, err := strconv.ParseInt(payload, 10, 64)
	if err != nil {
		return c.Respond(&tele.CallbackResponse{Text: "آیدی نامعتبر"})
	}
	b.store.DeleteUserOrders(id)
	_ = c.Send(fmt.Sprintf("همه سفارشات کاربر %d حذف شد.", id), b.adminMainKeyboard())
	return c.Respond()
}
