package telegram

import (
	"context"
	"net/http"
	"strings"

	"builders-panel/pkg/log"

	tele "gopkg.in/telebot.v4"
)

// ITelegram posts HTML messages to one chat.
type ITelegram interface {
	SendText(ctx context.Context, text string) error
	Close() error
}

// New builds a send-only bot. No request is made until the first message.
func New(l log.Logger, cfg Config) (ITelegram, error) {
	if strings.TrimSpace(cfg.Token) == "" || cfg.ChatID == 0 {
		return nil, ErrChatRequired
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}
	if cfg.APIURL == "" {
		cfg.APIURL = DefaultAPIURL
	}

	client := &http.Client{Timeout: cfg.Timeout}
	bot, err := tele.NewBot(tele.Settings{
		URL:     strings.TrimRight(cfg.APIURL, "/"),
		Token:   cfg.Token,
		Client:  client,
		Offline: true,
	})
	if err != nil {
		return nil, err
	}

	return &telegramImpl{
		l:      l,
		bot:    bot,
		client: client,
		chat:   &tele.Chat{ID: cfg.ChatID},
		opts: &tele.SendOptions{
			ParseMode:             tele.ModeHTML,
			DisableWebPagePreview: true,
			ThreadID:              cfg.ThreadID,
		},
	}, nil
}
