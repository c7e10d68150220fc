package tui

import (
	"strconv"
	"strings"

	"builders-panel/internal/model"

	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"
)

const (
	timeLayout    = "02/01/2006 15:04:05"
	maxToastWidth = 60
)

func (m Model) title() string {
	return titleStyle.Render("Notificaciones") + mutedStyle.Render(" · usuario "+strconv.FormatInt(m.opts.UserID, 10))
}

// header shows the badge only while something is unread.
func (m Model) header() string {
	if m.unread <= 0 {
		return m.title()
	}
	return m.title() + " " + badgeStyle.Render(strconv.Itoa(m.unread))
}

func (m Model) footer() string {
	helpView := m.help.View(m.keys)
	if m.status == "" {
		return helpView
	}
	style := mutedStyle
	if m.failed {
		style = errorStyle
	}
	return style.Render(m.status) + "\n" + helpView
}

func (m Model) renderItem(n model.Notification) string {
	var b strings.Builder
	b.WriteString(eventStyle.Render(n.Record.EventType))
	if ts := n.Record.Timestamp; !ts.IsZero() {
		when := ts.In(m.opts.Location).Format(timeLayout) + " (" + humanize.RelTime(ts, m.now(), "ago", "from now") + ")"
		b.WriteString("  " + mutedStyle.Render(when))
	}
	for _, line := range strings.Split(n.Content.Text(), "\n") {
		b.WriteString("\n  " + line)
	}
	return b.String()
}

func (m Model) renderList() string {
	if len(m.items) == 0 {
		return mutedStyle.Render(model.EmptyListMessage)
	}
	items := make([]string, 0, len(m.items))
	for _, n := range m.items {
		items = append(items, m.renderItem(n))
	}
	return strings.Join(items, "\n\n")
}

func (m Model) renderToasts() string {
	if len(m.toasts) == 0 {
		return ""
	}
	style := toastStyle
	if w := min(m.width-2, maxToastWidth); w > 0 {
		style = style.Width(w)
	}
	rendered := make([]string, 0, len(m.toasts))
	for _, t := range m.toasts {
		rendered = append(rendered, style.Render(t.n.Content.Text()))
	}
	return lipgloss.JoinVertical(lipgloss.Left, rendered...)
}

// layout sizes the list to what header, toasts and footer leave free.
func (m *Model) layout() {
	if m.width <= 0 || m.height <= 0 {
		return
	}
	used := lipgloss.Height(m.header()) + lipgloss.Height(m.footer())
	if t := m.renderToasts(); t != "" {
		used += lipgloss.Height(t)
	}
	m.vp.Width = m.width
	m.vp.Height = max(1, m.height-used)
	m.vp.SetContent(m.renderList())
}

func (m Model) View() string {
	parts := []string{m.header(), m.vp.View()}
	if t := m.renderToasts(); t != "" {
		parts = append(parts, t)
	}
	parts = append(parts, m.footer())
	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}
