package server

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
	tele "gopkg.in/telebot.v3"
)

type fakeBot struct {
	updates []tele.Update
}

func (f *fakeBot) ProcessUpdate(u tele.Update) { f.updates = append(f.updates, u) }

func setupRouter(t *testing.T) (*fakeBot, *gin.Engine) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	bot := &fakeBot{}
	return bot, NewRouter(bot, zaptest.NewLogger(t))
}

func TestHealthEndpoint(t *testing.T) {
	_, router := setupRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	var body map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "ok", body["status"])
	assert.NotEmpty(t, body["time"])
}

func TestWebhookForwardsUpdate(t *testing.T) {
	bot, router := setupRouter(t)

	payload := `{"update_id":123,"message":{"message_id":1,"text":"سلام","chat":{"id":42,"type":"private"},"from":{"id":42}}}`
	req := httptest.NewRequest(http.MethodPost, "/webhook", strings.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	require.Len(t, bot.updates, 1)
	assert.Equal(t, 123, bot.updates[0].ID)
	assert.Equal(t, "سلام", bot.updates[0].Message.Text)
}

func TestWebhookRejectsGarbage(t *testing.T) {
	bot, router := setupRouter(t)

	req := httptest.NewRequest(http.MethodPost, "/webhook", strings.NewReader("not json"))
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Empty(t, bot.updates)
}
