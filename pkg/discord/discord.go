package discord

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
	"unicode/utf8"
)

func (d *discordImpl) webhookURL() string {
	return fmt.Sprintf("%s/%s/%s", d.config.BaseURL, d.id, d.token)
}

func (d *discordImpl) Close() error {
	d.client.CloseIdleConnections()
	return nil
}

// sendWithRetry sends a request with retry mechanism.
func (d *discordImpl) sendWithRetry(ctx context.Context, payload *WebhookPayload) error {
	var lastErr error

	for attempt := 0; attempt <= d.config.RetryCount; attempt++ {
		if attempt > 0 {
			d.l.Infof(ctx, "pkg.discord.sendWithRetry: retrying attempt %d/%d", attempt, d.config.RetryCount)
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(d.config.RetryDelay):
			}
		}

		err := d.sendRequest(ctx, payload)
		if err == nil {
			return nil
		}

		lastErr = err
		d.l.Warnf(ctx, "pkg.discord.sendWithRetry: attempt %d failed: %v", attempt+1, err)
	}

	return fmt.Errorf("failed after %d attempts, last error: %w", d.config.RetryCount+1, lastErr)
}

// sendRequest sends a request to Discord webhook.
func (d *discordImpl) sendRequest(ctx context.Context, payload *WebhookPayload) error {
	jsonData, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, d.webhookURL(), bytes.NewReader(jsonData))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("User-Agent", UserAgent)

	resp, err := d.client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusNoContent {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("discord webhook returned status %d: %s", resp.StatusCode, string(body))
	}
	return nil
}

func colorFor(msgType MessageType) int {
	switch msgType {
	case MessageTypeSuccess:
		return ColorSuccess
	case MessageTypeWarning:
		return ColorWarning
	case MessageTypeError:
		return ColorError
	default:
		return ColorInfo
	}
}

// Truncate cuts s to maxLen characters, marking the cut with an ellipsis.
// Discord counts limits in characters, so the cut never splits a rune.
func Truncate(s string, maxLen int) string {
	if utf8.RuneCountInString(s) <= maxLen {
		return s
	}
	if maxLen <= 0 {
		return ""
	}
	r := []rune(s)
	if maxLen <= 3 {
		return string(r[:maxLen])
	}
	return string(r[:maxLen-3]) + "..."
}

func embedLength(e Embed) int {
	n := utf8.RuneCountInString(e.Title) + utf8.RuneCountInString(e.Description)
	for _, f := range e.Fields {
		n += utf8.RuneCountInString(f.Name) + utf8.RuneCountInString(f.Value)
	}
	if e.Footer != nil {
		n += utf8.RuneCountInString(e.Footer.Text)
	}
	return n
}

// SendMessage sends a simple text message.
func (d *discordImpl) SendMessage(ctx context.Context, content string) error {
	if n := utf8.RuneCountInString(content); n > MaxMessageLength {
		return fmt.Errorf("%w: %d characters (max: %d)", ErrMessageTooLong, n, MaxMessageLength)
	}

	return d.sendWithRetry(ctx, &WebhookPayload{
		Content:   content,
		Username:  d.config.DefaultUsername,
		AvatarURL: d.config.DefaultAvatarURL,
	})
}

// SendEmbed sends an embed message with options.
func (d *discordImpl) SendEmbed(ctx context.Context, options MessageOptions) error {
	fields := make([]EmbedField, 0, len(options.Fields))
	for _, f := range options.Fields {
		fields = append(fields, EmbedField{
			Name:   Truncate(f.Name, MaxFieldNameLen),
			Value:  Truncate(f.Value, MaxFieldValueLen),
			Inline: f.Inline,
		})
	}

	embed := Embed{
		Title:       Truncate(options.Title, MaxTitleLen),
		Description: Truncate(options.Description, MaxDescriptionLen),
		Color:       colorFor(options.Type),
		Fields:      fields,
		Footer:      options.Footer,
	}
	if !options.Timestamp.IsZero() {
		embed.Timestamp = options.Timestamp.Format(time.RFC3339)
	}
	if n := embedLength(embed); n > MaxEmbedLength {
		return fmt.Errorf("%w: embed is %d characters (max: %d)", ErrMessageTooLong, n, MaxEmbedLength)
	}

	return d.sendWithRetry(ctx, &WebhookPayload{
		Embeds:    []Embed{embed},
		Username:  d.config.DefaultUsername,
		AvatarURL: d.config.DefaultAvatarURL,
	})
}

// ReportBug sends an error report as a code block.
func (d *discordImpl) ReportBug(ctx context.Context, message string) error {
	return d.SendEmbed(ctx, MessageOptions{
		Type:        MessageTypeError,
		Title:       ReportBugTitle,
		Description: fmt.Sprintf("```%s```", Truncate(message, MaxDescriptionLen-6)),
		Timestamp:   time.Now(),
	})
}
