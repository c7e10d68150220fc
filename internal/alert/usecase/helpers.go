package usecase

import (
	"fmt"
	"html"
	"strconv"
	"strings"

	"builders-panel/internal/formatter"
	"builders-panel/internal/model"
	"builders-panel/pkg/discord"
	"builders-panel/pkg/telegram"
)

const (
	footerText = "Builders Panel • Failure Monitor"

	// maxTextPayload leaves room for the header lines within one Telegram message.
	maxTextPayload = 3500
)

func messageTypeFor(eventType string) discord.MessageType {
	if formatter.EventType(eventType) == formatter.EventConstructionRequestRejected {
		return discord.MessageTypeWarning
	}
	return discord.MessageTypeError
}

func buildField(name string, value string, inline bool) discord.EmbedField {
	if value == "" {
		value = "N/A"
	}
	return discord.EmbedField{
		Name:   discord.Truncate(name, discord.MaxFieldNameLen),
		Value:  discord.Truncate(value, discord.MaxFieldValueLen),
		Inline: inline,
	}
}

func title(n model.Notification) string {
	t := n.Content.Label
	if t == "" {
		t = n.Record.EventType
	}
	if n.Content.Icon != "" {
		t = n.Content.Icon + " " + t
	}
	return t
}

func (uc *implUseCase) buildEmbed(n model.Notification) discord.MessageOptions {
	fields := []discord.EmbedField{
		buildField("Event", n.Record.EventType, true),
		buildField("User", strconv.FormatInt(uc.userID, 10), true),
		buildField("Received", n.Record.RawTimestamp, true),
	}
	for _, f := range n.Content.Fields {
		fields = append(fields, buildField(f.Name, f.Value, true))
	}

	return discord.MessageOptions{
		Type:        messageTypeFor(n.Record.EventType),
		Title:       title(n),
		Description: discord.Truncate(n.Record.Payload, discord.MaxDescriptionLen),
		Fields:      fields,
		Timestamp:   uc.now(),
		Footer:      &discord.EmbedFooter{Text: footerText},
	}
}

// buildText renders n as Telegram HTML. Every backend value is escaped.
func (uc *implUseCase) buildText(n model.Notification) string {
	var b strings.Builder
	fmt.Fprintf(&b, "<b>%s</b>\n", html.EscapeString(title(n)))
	fmt.Fprintf(&b, "<code>%s</code> user %d at %s\n",
		html.EscapeString(n.Record.EventType), uc.userID, html.EscapeString(n.Record.RawTimestamp))
	for _, f := range n.Content.Fields {
		fmt.Fprintf(&b, "%s: %s\n", html.EscapeString(f.Name), html.EscapeString(f.Value))
	}
	if payload := n.Record.Payload; payload != "" {
		b.WriteString("\n")
		b.WriteString(html.EscapeString(telegram.Truncate(payload, maxTextPayload)))
	}
	return b.String()
}
