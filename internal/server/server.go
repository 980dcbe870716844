package server

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	tele "gopkg.in/telebot.v3"
)

// UpdateProcessor is the slice of the Telegram bot the ingress needs.
// Satisfied by *tele.Bot.
type UpdateProcessor interface {
	ProcessUpdate(u tele.Update)
}

// NewRouter builds the HTTP ingress: platform-pushed updates on /webhook and
// a liveness probe on /health.
func NewRouter(bot UpdateProcessor, logger *zap.Logger) *gin.Engine {
	r := gin.Default()

	r.POST("/webhook", func(c *gin.Context) {
		var upd tele.Update
		if err := c.ShouldBindJSON(&upd); err != nil {
			logger.Warn("Rejected malformed update payload", zap.Error(err))
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid update"})
			return
		}
		bot.ProcessUpdate(upd)
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})

	health := func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status": "ok",
			"time":   time.Now().UTC().Format(time.RFC3339),
		})
	}
	r.GET("/health", health)
	r.HEAD("/health", health)

	return r
}
