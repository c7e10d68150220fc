package http

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"builders-panel/internal/model"
	"builders-panel/internal/notification/repository"
	"builders-panel/internal/poller"
	"builders-panel/internal/tracker"
	"builders-panel/pkg/log"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockUseCase struct {
	mock.Mock
}

func (m *mockUseCase) Run(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

func (m *mockUseCase) Poll(ctx context.Context) (poller.PollResult, error) {
	args := m.Called(ctx)
	return args.Get(0).(poller.PollResult), args.Error(1)
}

func (m *mockUseCase) Refresh(ctx context.Context) (model.ListUpdate, error) {
	args := m.Called(ctx)
	return args.Get(0).(model.ListUpdate), args.Error(1)
}

func (m *mockUseCase) MarkAllRead(ctx context.Context) (model.ListUpdate, error) {
	args := m.Called(ctx)
	return args.Get(0).(model.ListUpdate), args.Error(1)
}

func (m *mockUseCase) ClearUpstream(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

func (m *mockUseCase) Unread() poller.UnreadBadge {
	return m.Called().Get(0).(poller.UnreadBadge)
}

func (m *mockUseCase) Current(ctx context.Context) model.ListUpdate {
	return m.Called(ctx).Get(0).(model.ListUpdate)
}

func (m *mockUseCase) State() tracker.State {
	return m.Called().Get(0).(tracker.State)
}

var ts = time.Date(2025, 5, 1, 9, 0, 0, 0, time.Local)

func setup(t *testing.T) (*gin.Engine, *mockUseCase) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	uc := &mockUseCase{}
	h := New(log.NewNop(), uc, nil)
	h.now = func() time.Time { return ts.Add(3 * time.Minute) }

	r := gin.New()
	h.MapRoutes(r.Group("/api/v1/notifications"))
	return r, uc
}

func do(r *gin.Engine, method, target string) (*httptest.ResponseRecorder, map[string]any) {
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(method, target, nil))

	var body map[string]any
	_ = json.Unmarshal(w.Body.Bytes(), &body)
	return w, body
}

func sampleUpdate() model.ListUpdate {
	rec := model.NewRecord("CONSTRUCTION_REQUEST_APPROVED", "Solicitud 4 aprobada", ts)
	return model.ListUpdate{
		Items: []model.Notification{{
			Record: rec,
			Content: model.DisplayContent{
				Kind:    "CONSTRUCTION_REQUEST_APPROVED",
				Icon:    "✔",
				Label:   "SOLICITUD APROBADA",
				Lines:   []string{"Solicitud 4 aprobada"},
				Matched: true,
			},
			ToastDuration: 3500 * time.Millisecond,
		}},
		Unread: 1,
	}
}

func TestList(t *testing.T) {
	r, uc := setup(t)
	uc.On("Refresh", mock.Anything).Return(sampleUpdate(), nil)
	uc.On("State").Return(tracker.State{ReadSet: tracker.NewReadSet()})

	w, body := do(r, http.MethodGet, "/api/v1/notifications?format=text")
	require.Equal(t, http.StatusOK, w.Code)

	data := body["data"].(map[string]any)
	assert.Equal(t, float64(1), data["total"])
	assert.Equal(t, float64(1), data["unread"])

	item := data["items"].([]any)[0].(map[string]any)
	assert.Equal(t, "✔ SOLICITUD APROBADA\nSolicitud 4 aprobada", item["content"])
	assert.Equal(t, "3 minutes ago", item["relative_time"])
	assert.Equal(t, float64(3500), item["toast_duration_ms"])
	assert.Equal(t, false, item["read"])
	uc.AssertExpectations(t)
}

func TestList_DefaultsToHTML(t *testing.T) {
	r, uc := setup(t)
	uc.On("Refresh", mock.Anything).Return(sampleUpdate(), nil)
	uc.On("State").Return(tracker.State{ReadSet: tracker.NewReadSet()})

	_, body := do(r, http.MethodGet, "/api/v1/notifications")
	item := body["data"].(map[string]any)["items"].([]any)[0].(map[string]any)
	assert.Equal(t, "✔ <strong>SOLICITUD APROBADA</strong><br>Solicitud 4 aprobada", item["content"])
}

func TestList_Empty(t *testing.T) {
	r, uc := setup(t)
	uc.On("Refresh", mock.Anything).Return(model.ListUpdate{}, nil)
	uc.On("State").Return(tracker.State{ReadSet: tracker.NewReadSet()})

	_, body := do(r, http.MethodGet, "/api/v1/notifications")
	data := body["data"].(map[string]any)
	assert.Equal(t, model.EmptyListMessage, data["empty_message"])
	assert.Empty(t, data["items"])
}

func TestList_Errors(t *testing.T) {
	tests := []struct {
		name       string
		target     string
		err        error
		wantStatus int
	}{
		{
			name:       "bad format",
			target:     "/api/v1/notifications?format=xml",
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "source down",
			target:     "/api/v1/notifications",
			err:        fmt.Errorf("%w: %w", poller.ErrFetch, repository.ErrUnavailable),
			wantStatus: http.StatusServiceUnavailable,
		},
		{
			name:       "malformed snapshot",
			target:     "/api/v1/notifications",
			err:        fmt.Errorf("%w: %w", poller.ErrFetch, repository.ErrDecode),
			wantStatus: http.StatusBadGateway,
		},
		{
			name:       "unknown",
			target:     "/api/v1/notifications",
			err:        fmt.Errorf("boom"),
			wantStatus: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, uc := setup(t)
			if tt.err != nil {
				uc.On("Refresh", mock.Anything).Return(model.ListUpdate{}, tt.err)
			}

			w, _ := do(r, http.MethodGet, tt.target)
			assert.Equal(t, tt.wantStatus, w.Code)
		})
	}
}

func TestReadAll(t *testing.T) {
	r, uc := setup(t)
	update := sampleUpdate()
	update.Unread = 0
	uc.On("MarkAllRead", mock.Anything).Return(update, nil)
	uc.On("State").Return(tracker.State{ReadSet: tracker.NewReadSet(update.Items[0].Record.Key())})

	w, body := do(r, http.MethodPost, "/api/v1/notifications/read-all")
	require.Equal(t, http.StatusOK, w.Code)

	data := body["data"].(map[string]any)
	assert.Equal(t, float64(0), data["unread"])
	item := data["items"].([]any)[0].(map[string]any)
	assert.Equal(t, true, item["read"])
}

func TestUnread(t *testing.T) {
	r, uc := setup(t)
	uc.On("Unread").Return(poller.NewUnreadBadge(3))

	w, body := do(r, http.MethodGet, "/api/v1/notifications/unread")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, map[string]any{"count": float64(3), "visible": true}, body["data"])
}

func TestClear(t *testing.T) {
	r, uc := setup(t)
	uc.On("ClearUpstream", mock.Anything).Return(nil).Once()

	w, _ := do(r, http.MethodDelete, "/api/v1/notifications")
	assert.Equal(t, http.StatusNoContent, w.Code)

	uc.On("ClearUpstream", mock.Anything).Return(repository.ErrUnavailable).Once()
	w, _ = do(r, http.MethodDelete, "/api/v1/notifications")
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}

func TestSession(t *testing.T) {
	r, uc := setup(t)
	uc.On("State").Return(tracker.State{ID: "s-1", Cursor: 4, Issued: 6, Applied: 5, ReadSet: tracker.NewReadSet("a", "b")})

	_, body := do(r, http.MethodGet, "/api/v1/notifications/session")
	data := body["data"].(map[string]any)
	assert.Equal(t, "s-1", data["id"])
	assert.Equal(t, float64(4), data["cursor"])
	assert.Equal(t, float64(2), data["read_count"])
}
