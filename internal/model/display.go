package model

import (
	"html"
	"strings"
	"time"
)

// Field is one value extracted from a structured payload.
type Field struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// Row is one labelled line of a structured rendering.
type Row struct {
	Label string `json:"label"`
	Value string `json:"value"`
}

// DisplayContent is the renderable form of a Record.
// Fields carry the extracted values; Rows and Lines are what gets shown.
type DisplayContent struct {
	Kind    string   `json:"kind"`
	Icon    string   `json:"icon,omitempty"`
	Label   string   `json:"label,omitempty"`
	Fields  []Field  `json:"fields,omitempty"`
	Rows    []Row    `json:"rows,omitempty"`
	Lines   []string `json:"lines,omitempty"`
	Matched bool     `json:"matched"`
}

// Field returns the value of the named field.
func (d DisplayContent) Field(name string) (string, bool) {
	for _, f := range d.Fields {
		if f.Name == name {
			return f.Value, true
		}
	}
	return "", false
}

// Values returns the extracted fields keyed by name.
func (d DisplayContent) Values() map[string]string {
	out := make(map[string]string, len(d.Fields))
	for _, f := range d.Fields {
		out[f.Name] = f.Value
	}
	return out
}

func (d DisplayContent) heading() string {
	if d.Label == "" {
		return ""
	}
	if d.Icon == "" {
		return d.Label
	}
	return d.Icon + " " + d.Label
}

// Text renders the content as plain text, one entry per line.
func (d DisplayContent) Text() string {
	parts := make([]string, 0, 1+len(d.Rows)+len(d.Lines))
	if h := d.heading(); h != "" {
		parts = append(parts, h)
	}
	for _, r := range d.Rows {
		parts = append(parts, r.Label+": "+r.Value)
	}
	parts = append(parts, d.Lines...)
	return strings.Join(parts, "\n")
}

// HTML renders the content as an escaped fragment with <br> line breaks.
func (d DisplayContent) HTML() string {
	parts := make([]string, 0, 1+len(d.Rows)+len(d.Lines))
	if d.Label != "" {
		head := "<strong>" + html.EscapeString(d.Label) + "</strong>"
		if d.Icon != "" {
			head = d.Icon + " " + head
		}
		parts = append(parts, head)
	}
	for _, r := range d.Rows {
		parts = append(parts, html.EscapeString(r.Label)+": <strong>"+html.EscapeString(r.Value)+"</strong>")
	}
	for _, line := range d.Lines {
		parts = append(parts, html.EscapeString(line))
	}
	return strings.Join(parts, "<br>")
}

// Notification is a record together with its rendering, as handed to the view layer.
type Notification struct {
	Record        Record         `json:"record"`
	Content       DisplayContent `json:"content"`
	ToastDuration time.Duration  `json:"toast_duration"`
}

// ListUpdate is a full rendering of the latest snapshot.
type ListUpdate struct {
	Items  []Notification `json:"items"`
	Unread int            `json:"unread"`
}

// EmptyListMessage is shown when a user has no notifications.
const EmptyListMessage = "No hay notificaciones"
