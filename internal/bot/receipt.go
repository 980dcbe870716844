package bot

import (
	"fmt"

	"go.uber.org/zap"
	tele "gopkg.in/telebot.v3"
)

// onPhoto accepts a payment receipt when one is expected. Photos arriving
// outside the receipt flow are ignored with a hint.
func (b *Bot) onPhoto(c tele.Context) error {
	uid := c.Sender().ID
	if b.store.IsBlocked(uid) {
		return c.Send("🚫 شما مسدود شده‌اید.")
	}
	b.store.EnsureUser(uid)
	sess := b.sessions.get(uid)

	if sess.state != stateAwaitingReceipt || sess.payOrderID == "" {
		return c.Send("برای ارسال فیش ابتدا از منو گزینه پرداخت را انتخاب کنید.")
	}

	photo := c.Message().Photo
	if photo == nil {
		return c.Send("لطفا فیش پرداخت را به صورت عکس ارسال کنید.")
	}

	payment, ok := b.store.CreatePendingPayment(uid, sess.payOrderID, photo.FileID)
	if !ok {
		sess.payOrderID = ""
		sess.state = stateMain
		return c.Send("سفارش یافت نشد یا قبلاً پردازش شده است.", b.userMainKeyboard(b.store.HasIdentity(uid)))
	}

	caption := fmt.Sprintf(
		"📌 فیش پرداختی از %s\nآیدی: %d\nجمع: %d تومان\npayment_id: %s",
		b.store.DisplayName(uid), uid, payment.Total, payment.PaymentID,
	)
	b.broadcastReceipt(payment.PaymentID, uid, photo.FileID, caption)

	sess.payOrderID = ""
	sess.state = stateMain
	return c.Send("✅ فیش شما ارسال شد و در انتظار تایید می‌باشد.", b.userMainKeyboard(b.store.HasIdentity(uid)))
}

// broadcastReceipt delivers the receipt photo for review: to the dedicated
// photo group when one is configured, otherwise to every admin directly.
// Delivery failures are logged and skipped, never surfaced to the payer.
func (b *Bot) broadcastReceipt(payID string, userID int64, fileID, caption string) {
	photo := &tele.Photo{File: tele.File{FileID: fileID}, Caption: caption}
	markup := paymentReviewMarkup(payID, userID)

	if b.cfg.PhotoGroupID != 0 {
		if _, err := b.tele.Send(tele.ChatID(b.cfg.PhotoGroupID), photo, markup); err == nil {
			return
		} else {
			b.logger.Warn("receipt delivery to photo group failed, falling back to admins",
				zap.Int64("group_id", b.cfg.PhotoGroupID), zap.Error(err))
		}
	}

	for _, adminID := range b.adminIDs() {
		if _, err := b.tele.Send(tele.ChatID(adminID), photo, markup); err != nil {
			b.logger.Warn("receipt delivery to admin failed",
				zap.Int64("admin_id", adminID), zap.Error(err))
		}
	}
}
