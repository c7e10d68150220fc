package telegram

import "errors"

var ErrChatRequired = errors.New("telegram: bot token and chat id are required")
