package http

import (
	"time"

	"builders-panel/internal/model"
	"builders-panel/internal/tracker"
	pkgErrors "builders-panel/pkg/errors"
	"builders-panel/pkg/response"

	"github.com/dustin/go-humanize"
)

const (
	formatHTML = "html"
	formatText = "text"
)

type listReq struct {
	Format string `form:"format"`
}

func (r *listReq) validate() error {
	switch r.Format {
	case "":
		r.Format = formatHTML
	case formatHTML, formatText:
	default:
		return pkgErrors.NewValidationErrorCollector().
			Add(pkgErrors.NewValidationError(pkgErrors.CodeBadRequest, "format", "must be html or text"))
	}
	return nil
}

type fieldResp struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

type notificationResp struct {
	EventType     string            `json:"event_type"`
	Timestamp     response.DateTime `json:"timestamp"`
	RawTimestamp  string            `json:"raw_timestamp"`
	RelativeTime  string            `json:"relative_time,omitempty"`
	Kind          string            `json:"kind"`
	Icon          string            `json:"icon,omitempty"`
	Label         string            `json:"label,omitempty"`
	Content       string            `json:"content"`
	Fields        []fieldResp       `json:"fields,omitempty"`
	Matched       bool              `json:"matched"`
	Read          bool              `json:"read"`
	ToastDuration int64             `json:"toast_duration_ms"`
}

type listResp struct {
	Items        []notificationResp `json:"items"`
	Total        int                `json:"total"`
	Unread       int                `json:"unread"`
	EmptyMessage string             `json:"empty_message,omitempty"`
}

type sessionResp struct {
	ID        string `json:"id"`
	Cursor    int    `json:"cursor"`
	ReadCount int    `json:"read_count"`
	Unread    int    `json:"unread"`
	Issued    uint64 `json:"issued"`
	Applied   uint64 `json:"applied"`
}

func (h *Handler) newNotificationResp(n model.Notification, format string, rs tracker.ReadSet, now time.Time) notificationResp {
	content := n.Content.HTML()
	if format == formatText {
		content = n.Content.Text()
	}

	resp := notificationResp{
		EventType:     n.Record.EventType,
		Timestamp:     response.DateTime(n.Record.Timestamp),
		RawTimestamp:  n.Record.RawTimestamp,
		Kind:          n.Content.Kind,
		Icon:          n.Content.Icon,
		Label:         n.Content.Label,
		Content:       content,
		Matched:       n.Content.Matched,
		Read:          rs.IsRead(n.Record),
		ToastDuration: n.ToastDuration.Milliseconds(),
	}
	if !n.Record.Timestamp.IsZero() {
		resp.RelativeTime = humanize.RelTime(n.Record.Timestamp, now, "ago", "from now")
	}
	for _, f := range n.Content.Fields {
		resp.Fields = append(resp.Fields, fieldResp{Name: f.Name, Value: f.Value})
	}
	return resp
}

func (h *Handler) newListResp(u model.ListUpdate, format string, rs tracker.ReadSet) listResp {
	now := h.now()
	resp := listResp{
		Items:  make([]notificationResp, 0, len(u.Items)),
		Total:  len(u.Items),
		Unread: u.Unread,
	}
	for _, n := range u.Items {
		resp.Items = append(resp.Items, h.newNotificationResp(n, format, rs, now))
	}
	if len(u.Items) == 0 {
		resp.EmptyMessage = model.EmptyListMessage
	}
	return resp
}

func newSessionResp(st tracker.State) sessionResp {
	return sessionResp{
		ID:        st.ID,
		Cursor:    st.Cursor,
		ReadCount: st.ReadSet.Len(),
		Unread:    st.Unread,
		Issued:    st.Issued,
		Applied:   st.Applied,
	}
}
