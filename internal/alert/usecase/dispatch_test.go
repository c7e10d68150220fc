package usecase

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"builders-panel/internal/alert"
	"builders-panel/internal/model"
	"builders-panel/pkg/discord"
	"builders-panel/pkg/log"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockDiscord struct {
	mock.Mock
}

func (m *mockDiscord) SendMessage(ctx context.Context, content string) error {
	return m.Called(ctx, content).Error(0)
}

func (m *mockDiscord) SendEmbed(ctx context.Context, options discord.MessageOptions) error {
	return m.Called(ctx, options).Error(0)
}

func (m *mockDiscord) ReportBug(ctx context.Context, message string) error {
	return m.Called(ctx, message).Error(0)
}

func (m *mockDiscord) Close() error {
	return m.Called().Error(0)
}

type mockTelegram struct {
	mock.Mock
}

func (m *mockTelegram) SendText(ctx context.Context, text string) error {
	return m.Called(ctx, text).Error(0)
}

func (m *mockTelegram) Close() error {
	return m.Called().Error(0)
}

var received = time.Date(2025, 5, 1, 9, 30, 0, 0, time.UTC)

func failed() model.Notification {
	return model.Notification{
		Record: model.NewRecord("CONSTRUCTION_REQUEST_FAILED", "Solicitud 12 falló: sin presupuesto", received),
		Content: model.DisplayContent{
			Kind:  "CONSTRUCTION_REQUEST_FAILED",
			Icon:  "⚠️",
			Label: "ERROR EN SOLICITUD",
			Lines: []string{"Solicitud 12 falló: sin presupuesto"},
		},
	}
}

func newTestUseCase(t *testing.T, d *mockDiscord, burst int) *implUseCase {
	t.Helper()
	uc, err := New(log.NewNop(), d, nil, alert.Options{UserID: 2, Every: time.Hour, Burst: burst})
	require.NoError(t, err)

	impl := uc.(*implUseCase)
	impl.dispatch = func(f func()) { f() }
	impl.now = func() time.Time { return received }
	return impl
}

func TestOnNewNotification_EscalatesFailures(t *testing.T) {
	d := &mockDiscord{}
	d.On("SendEmbed", mock.Anything, mock.MatchedBy(func(o discord.MessageOptions) bool {
		return o.Type == discord.MessageTypeError &&
			o.Title == "⚠️ ERROR EN SOLICITUD" &&
			o.Description == "Solicitud 12 falló: sin presupuesto" &&
			o.Fields[1].Value == "2" &&
			o.Fields[2].Value == "2025-05-01T09:30:00"
	})).Return(nil).Once()

	uc := newTestUseCase(t, d, 3)
	uc.OnNewNotification(context.Background(), failed())

	d.AssertExpectations(t)
	assert.Equal(t, alert.Stats{Sent: 1}, uc.Stats())
}

func TestOnNewNotification_IgnoresOtherEvents(t *testing.T) {
	d := &mockDiscord{}
	uc := newTestUseCase(t, d, 3)

	uc.OnNewNotification(context.Background(), model.Notification{
		Record: model.NewRecord("ORDER_CREATED", "Orden creada", received),
	})
	uc.OnListUpdate(context.Background(), model.ListUpdate{})
	uc.OnUnreadCountChange(context.Background(), 3)

	d.AssertNotCalled(t, "SendEmbed", mock.Anything, mock.Anything)
}

func TestEscalate_RejectedIsWarning(t *testing.T) {
	d := &mockDiscord{}
	d.On("SendEmbed", mock.Anything, mock.MatchedBy(func(o discord.MessageOptions) bool {
		return o.Type == discord.MessageTypeWarning && o.Title == "CONSTRUCTION_REQUEST_REJECTED"
	})).Return(nil).Once()

	uc := newTestUseCase(t, d, 1)
	err := uc.Escalate(context.Background(), model.Notification{
		Record: model.NewRecord("CONSTRUCTION_REQUEST_REJECTED", "Solicitud 3 rechazada", received),
	})

	require.NoError(t, err)
	d.AssertExpectations(t)
}

func TestEscalate_Throttled(t *testing.T) {
	d := &mockDiscord{}
	d.On("SendEmbed", mock.Anything, mock.Anything).Return(nil).Twice()

	uc := newTestUseCase(t, d, 2)
	ctx := context.Background()

	require.NoError(t, uc.Escalate(ctx, failed()))
	require.NoError(t, uc.Escalate(ctx, failed()))
	assert.ErrorIs(t, uc.Escalate(ctx, failed()), alert.ErrThrottled)

	d.AssertNumberOfCalls(t, "SendEmbed", 2)
	assert.Equal(t, alert.Stats{Sent: 2, Suppressed: 1}, uc.Stats())
}

func TestEscalate_DiscordError(t *testing.T) {
	d := &mockDiscord{}
	d.On("SendEmbed", mock.Anything, mock.Anything).Return(errors.New("webhook returned status 500"))

	uc := newTestUseCase(t, d, 1)
	err := uc.Escalate(context.Background(), failed())

	assert.ErrorIs(t, err, alert.ErrDispatchFailed)
	assert.Equal(t, int64(1), uc.Stats().Failed)
}

func TestNew_Validation(t *testing.T) {
	_, err := New(log.NewNop(), nil, nil, alert.Options{Every: time.Second, Burst: 1})
	assert.ErrorIs(t, err, alert.ErrInvalidInput)

	_, err = New(log.NewNop(), &mockDiscord{}, nil, alert.Options{Every: 0, Burst: 1})
	assert.ErrorIs(t, err, alert.ErrInvalidInput)
}

func TestEscalate_Telegram(t *testing.T) {
	tg := &mockTelegram{}
	tg.On("SendText", mock.Anything, mock.MatchedBy(func(text string) bool {
		return strings.HasPrefix(text, "<b>⚠️ ERROR EN SOLICITUD</b>\n") &&
			strings.Contains(text, "<code>CONSTRUCTION_REQUEST_FAILED</code> user 2 at 2025-05-01T09:30:00") &&
			strings.HasSuffix(text, "\nSolicitud 12 falló: sin presupuesto")
	})).Return(nil).Once()

	uc, err := New(log.NewNop(), nil, tg, alert.Options{UserID: 2, Every: time.Hour, Burst: 1})
	require.NoError(t, err)

	require.NoError(t, uc.Escalate(context.Background(), failed()))
	tg.AssertExpectations(t)
	assert.Equal(t, alert.Stats{Sent: 1}, uc.Stats())
}

func TestEscalate_TelegramEscapesHTML(t *testing.T) {
	tg := &mockTelegram{}
	tg.On("SendText", mock.Anything, mock.MatchedBy(func(text string) bool {
		return strings.Contains(text, "Solicitud &lt;7&gt; falló &amp; reintento") && !strings.Contains(text, "<7>")
	})).Return(nil).Once()

	uc, err := New(log.NewNop(), nil, tg, alert.Options{UserID: 2, Every: time.Hour, Burst: 1})
	require.NoError(t, err)

	n := failed()
	n.Record.Payload = "Solicitud <7> falló & reintento"
	require.NoError(t, uc.Escalate(context.Background(), n))
	tg.AssertExpectations(t)
}

func TestEscalate_OneSinkFails(t *testing.T) {
	d := &mockDiscord{}
	d.On("SendEmbed", mock.Anything, mock.Anything).Return(nil).Once()
	tg := &mockTelegram{}
	tg.On("SendText", mock.Anything, mock.Anything).Return(errors.New("chat not found")).Once()

	uc, err := New(log.NewNop(), d, tg, alert.Options{UserID: 2, Every: time.Hour, Burst: 1})
	require.NoError(t, err)

	err = uc.Escalate(context.Background(), failed())
	assert.ErrorIs(t, err, alert.ErrDispatchFailed)
	assert.Contains(t, err.Error(), "telegram: chat not found")
	d.AssertExpectations(t)
	assert.Equal(t, alert.Stats{Failed: 1}, uc.Stats())
}
