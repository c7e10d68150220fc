package telegram

import (
	"net/http"
	"time"

	"builders-panel/pkg/log"

	tele "gopkg.in/telebot.v4"
)

// Config targets a single chat, optionally a forum topic.
type Config struct {
	Token    string
	ChatID   int64
	ThreadID int
	Timeout  time.Duration
	APIURL   string
}

type telegramImpl struct {
	l      log.Logger
	bot    *tele.Bot
	client *http.Client
	chat   *tele.Chat
	opts   *tele.SendOptions
}
