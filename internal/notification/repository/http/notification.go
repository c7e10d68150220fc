package http

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"builders-panel/internal/model"
	"builders-panel/internal/notification/repository"
)

const maxBodySize = 4 << 20

func (r *implRepository) byUserURL(userID int64) string {
	q := url.Values{}
	q.Set("userId", strconv.FormatInt(userID, 10))
	return r.baseURL + byUserPath + "?" + q.Encode()
}

func (r *implRepository) ListByUser(ctx context.Context, userID int64) (model.Snapshot, error) {
	if err := repository.ValidateUserID(userID); err != nil {
		return nil, err
	}

	body, err := r.do(ctx, http.MethodGet, r.byUserURL(userID))
	if err != nil {
		r.l.Warnf(ctx, "internal.notification.repository.http.ListByUser.do: %v", err)
		return nil, err
	}

	var dtos []notificationDTO
	if err := json.Unmarshal(body, &dtos); err != nil {
		r.l.Warnf(ctx, "internal.notification.repository.http.ListByUser.Unmarshal: %v", err)
		return nil, fmt.Errorf("%w: %v", repository.ErrDecode, err)
	}

	snapshot := make(model.Snapshot, 0, len(dtos))
	for _, dto := range dtos {
		snapshot = append(snapshot, r.toRecord(ctx, dto))
	}
	return snapshot, nil
}

func (r *implRepository) DeleteByUser(ctx context.Context, userID int64) error {
	if err := repository.ValidateUserID(userID); err != nil {
		return err
	}
	if _, err := r.do(ctx, http.MethodDelete, r.byUserURL(userID)); err != nil {
		r.l.Errorf(ctx, "internal.notification.repository.http.DeleteByUser.do: %v", err)
		return err
	}
	return nil
}

func (r *implRepository) do(ctx context.Context, method, target string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, method, target, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := r.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", repository.ErrUnavailable, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		return nil, fmt.Errorf("%w: read body: %v", repository.ErrUnavailable, err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("%w: %s %s returned %d: %s",
			repository.ErrUnavailable, method, target, resp.StatusCode, truncate(body, 200))
	}
	return body, nil
}

func (r *implRepository) toRecord(ctx context.Context, dto notificationDTO) model.Record {
	rec := model.Record{
		EventType: dto.EventType,
		Payload:   decodePayload(dto.Payload),
	}

	raw, ts, err := decodeTimestamp(dto.Timestamp, r.loc)
	rec.RawTimestamp = raw
	if err != nil {
		r.l.Debugf(ctx, "internal.notification.repository.http.toRecord: %s timestamp %q: %v", dto.EventType, raw, err)
		return rec
	}
	rec.Timestamp = ts
	return rec
}

func decodePayload(raw json.RawMessage) string {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return ""
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}
	return string(raw)
}

// decodeTimestamp returns the identity text of the timestamp and its parsed value.
func decodeTimestamp(raw json.RawMessage, loc *time.Location) (string, time.Time, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return "", time.Time{}, model.ErrInvalidTimestamp
	}

	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		ts, err := model.ParseTimestamp(s, loc)
		return s, ts, err
	}

	var parts []int
	if err := json.Unmarshal(raw, &parts); err != nil || len(parts) < 3 {
		return string(raw), time.Time{}, model.ErrInvalidTimestamp
	}
	for len(parts) < 7 {
		parts = append(parts, 0)
	}
	ts := time.Date(parts[0], time.Month(parts[1]), parts[2], parts[3], parts[4], parts[5], parts[6], loc)
	return ts.Format(model.LocalDateTimeLayout), ts, nil
}

func truncate(b []byte, n int) string {
	if len(b) <= n {
		return string(b)
	}
	return string(b[:n]) + "..."
}
