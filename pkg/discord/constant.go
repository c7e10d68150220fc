package discord

import "time"

const (
	webhookBaseURL = "https://discord.com/api/webhooks"

	ColorBlue   = 3447003
	ColorGreen  = 3066993
	ColorYellow = 16776960
	ColorRed    = 15158332
	ColorGray   = 9807270

	ColorInfo    = ColorBlue
	ColorSuccess = ColorGreen
	ColorWarning = ColorYellow
	ColorError   = ColorRed

	MaxMessageLength  = 2000
	MaxEmbedLength    = 6000
	MaxTitleLen       = 256
	MaxDescriptionLen = 4096
	MaxFieldNameLen   = 256
	MaxFieldValueLen  = 1024
)

const (
	DefaultTimeout    = 10 * time.Second
	DefaultRetryCount = 2
	DefaultRetryDelay = 1 * time.Second
)

const (
	DefaultUsername = "Builders Panel"
	UserAgent       = "BuildersPanel-Bot/1.0"
	ReportBugTitle  = "Builders Panel Error Report"
)
