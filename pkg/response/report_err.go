package response

import (
	"context"
	"fmt"
	"strings"
	"time"

	"builders-panel/pkg/discord"

	"github.com/gin-gonic/gin"
)

const reportTimeout = 30 * time.Second

// sendDiscordMessageAsync reports in the background. Failures are logged by the Discord client.
func sendDiscordMessageAsync(d discord.IDiscord, message string) {
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), reportTimeout)
		defer cancel()
		for _, msg := range splitMessageForDiscord(message) {
			if err := d.ReportBug(ctx, msg); err != nil {
				return
			}
		}
	}()
}

// splitMessageForDiscord splits on line boundaries into chunks of at most DiscordMaxMessageLen.
func splitMessageForDiscord(message string) []string {
	var chunks []string
	var current strings.Builder

	flush := func() {
		if current.Len() > 0 {
			chunks = append(chunks, strings.TrimSuffix(current.String(), "\n"))
			current.Reset()
		}
	}

	for _, line := range strings.Split(message, "\n") {
		line += "\n"
		if current.Len()+len(line) > DiscordMaxMessageLen {
			flush()
			for len(line) > DiscordMaxMessageLen {
				chunks = append(chunks, line[:DiscordMaxMessageLen])
				line = line[DiscordMaxMessageLen:]
			}
		}
		current.WriteString(line)
	}
	flush()
	return chunks
}

// buildInternalServerErrorDataForReportBug formats the failing request for Discord.
// Request bodies are not included; the panel API only takes query parameters.
func buildInternalServerErrorDataForReportBug(c *gin.Context, errString string, backtrace []string) string {
	var sb strings.Builder
	sb.WriteString("================ BUILDERS PANEL ERROR ================\n")
	if c != nil && c.Request != nil {
		sb.WriteString(fmt.Sprintf("Route   : %s\n", c.Request.URL.Path))
		sb.WriteString(fmt.Sprintf("Method  : %s\n", c.Request.Method))
		if params := c.Request.URL.Query().Encode(); params != "" {
			sb.WriteString(fmt.Sprintf("Params  : %s\n", params))
		}
		sb.WriteString("------------------------------------------------------\n")
	}
	sb.WriteString(fmt.Sprintf("Error   : %s\n", errString))

	if len(backtrace) > 0 {
		sb.WriteString("\nBacktrace:\n")
		for i, line := range backtrace {
			sb.WriteString(fmt.Sprintf("[%d]: %s\n", i, line))
		}
	}
	sb.WriteString("======================================================\n")
	return sb.String()
}
