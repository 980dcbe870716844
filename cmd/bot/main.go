package main

import (
	"context"
	"log"
	"time"

	"go.uber.org/zap"
	tele "gopkg.in/telebot.v3"

	"jozveh_bot/internal/backup"
	"jozveh_bot/internal/bot"
	"jozveh_bot/internal/config"
	"jozveh_bot/internal/server"
	"jozveh_bot/internal/store"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal("❌ Configuration invalide :", err)
	}

	logger, err := zap.NewProduction()
	if err != nil {
		log.Fatal("❌ Logger init failed:", err)
	}
	defer logger.Sync()

	st, err := store.New(cfg.DataDir, logger)
	if err != nil {
		logger.Fatal("Store init failed", zap.Error(err))
	}
	st.MergeAdmins(cfg.OtherAdmins)

	settings := tele.Settings{
		Token: cfg.Token,
		OnError: func(err error, c tele.Context) {
			logger.Error("Handler error", zap.Error(err))
		},
	}
	if cfg.WebhookURL == "" {
		settings.Poller = &tele.LongPoller{Timeout: 10 * time.Second}
	}
	tb, err := tele.NewBot(settings)
	if err != nil {
		logger.Fatal("Bot init failed", zap.Error(err))
	}

	b := bot.New(tb, st, cfg, logger)
	b.Register()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	runner := backup.NewRunner(tb, cfg.BackupGroupID, st.DataFiles, cfg.BackupInterval, logger)
	go runner.Run(ctx)

	r := server.NewRouter(tb, logger)

	if cfg.WebhookURL != "" {
		if _, err := tb.Raw("setWebhook", map[string]string{"url": cfg.WebhookURL + "/webhook"}); err != nil {
			logger.Fatal("setWebhook failed", zap.Error(err))
		}
		logger.Info("🚀 Webhook mode", zap.String("url", cfg.WebhookURL), zap.String("port", cfg.Port))
		if err := r.Run(":" + cfg.Port); err != nil {
			logger.Fatal("HTTP server stopped", zap.Error(err))
		}
		return
	}

	go tb.Start()
	logger.Info("🚀 Long polling mode", zap.String("port", cfg.Port))
	if err := r.Run(":" + cfg.Port); err != nil {
		logger.Fatal("HTTP server stopped", zap.Error(err))
	}
}
