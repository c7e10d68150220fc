package redis

import (
	"context"
	"errors"
	"testing"

	"builders-panel/internal/model"
	"builders-panel/internal/websocket"
	"builders-panel/pkg/log"

	"github.com/stretchr/testify/assert"
)

type fakeUseCase struct {
	inputs []websocket.ProcessMessageInput
	err    error
}

func (f *fakeUseCase) OnListUpdate(ctx context.Context, u model.ListUpdate) {}

func (f *fakeUseCase) OnNewNotification(ctx context.Context, n model.Notification) {}

func (f *fakeUseCase) OnUnreadCountChange(ctx context.Context, unread int) {}

func (f *fakeUseCase) Run() {}

func (f *fakeUseCase) Shutdown(ctx context.Context) error {
	return nil
}

func (f *fakeUseCase) Admit(ctx context.Context, userID string) error {
	return nil
}

func (f *fakeUseCase) Register(ctx context.Context, input websocket.ConnectionInput) error {
	return nil
}

func (f *fakeUseCase) GetStats(ctx context.Context) (websocket.HubStats, error) {
	return websocket.HubStats{}, nil
}

func (f *fakeUseCase) ProcessMessage(ctx context.Context, input websocket.ProcessMessageInput) error {
	f.inputs = append(f.inputs, input)
	return f.err
}

func TestHandleMessage(t *testing.T) {
	uc := &fakeUseCase{}
	s := New(log.NewNop(), nil, uc).(*subscriber)

	s.handleMessage(context.Background(), "panel:user:2", []byte(`{"kind":"UNREAD_COUNT"}`))

	if assert.Len(t, uc.inputs, 1) {
		assert.Equal(t, "panel:user:2", uc.inputs[0].Channel)
		assert.JSONEq(t, `{"kind":"UNREAD_COUNT"}`, string(uc.inputs[0].Payload))
	}
}

func TestHandleMessage_ErrorIsLogged(t *testing.T) {
	uc := &fakeUseCase{err: errors.New("invalid message format")}
	s := New(log.NewNop(), nil, uc).(*subscriber)

	assert.NotPanics(t, func() {
		s.handleMessage(context.Background(), "panel:user:x", []byte("{"))
	})
}

func TestShutdown_WithoutStart(t *testing.T) {
	s := New(log.NewNop(), nil, &fakeUseCase{})
	assert.NoError(t, s.Shutdown(context.Background()))
	assert.NoError(t, s.Shutdown(context.Background()))
}
