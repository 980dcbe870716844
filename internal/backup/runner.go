package backup

import (
	"context"
	"time"

	"go.uber.org/zap"
	tele "gopkg.in/telebot.v3"
)

// Runner periodically ships a backup archive to a Telegram chat. Send
// failures are logged and ignored; there is no backoff.
type Runner struct {
	bot      *tele.Bot
	chatID   int64
	files    func() []string
	interval time.Duration
	logger   *zap.Logger
}

func NewRunner(bot *tele.Bot, chatID int64, files func() []string, interval time.Duration, logger *zap.Logger) *Runner {
	return &Runner{bot: bot, chatID: chatID, files: files, interval: interval, logger: logger}
}

// Run blocks until ctx is cancelled.
func (r *Runner) Run(ctx context.Context) {
	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			r.send()
		}
	}
}

func (r *Runner) send() {
	if r.chatID == 0 {
		return
	}
	buf, err := Archive(r.files())
	if err != nil {
		r.logger.Warn("Auto backup failed to build archive", zap.Error(err))
		return
	}
	doc := &tele.Document{
		File:     tele.FromReader(buf),
		FileName: "auto_backup.zip",
		Caption:  "📦 بکاپ خودکار",
	}
	if _, err := r.bot.Send(tele.ChatID(r.chatID), doc); err != nil {
		r.logger.Warn("Auto backup failed", zap.Error(err))
	}
}
