package notification

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"

	"github.com/agendahub/agenda-api/internal/domain/booking"
)

type fakeTransport struct {
	mu   sync.Mutex
	sent []Message
	err  error
}

func (t *fakeTransport) Send(_ context.Context, msg Message) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.sent = append(t.sent, msg)
	return t.err
}

func (t *fakeTransport) messages() []Message {
	t.mu.Lock()
	defer t.mu.Unlock()
	return append([]Message(nil), t.sent...)
}

func TestDispatcherDeliversOnce(t *testing.T) {
	transport := &fakeTransport{}
	d := NewDispatcher(transport, zap.NewNop(), time.Second)

	d.Dispatch(Event{
		Kind:       KindCreated,
		To:         "ana@x.com",
		ClientName: "Ana",
		Status:     booking.StatusPending,
	})
	d.Close()

	sent := transport.messages()
	assert.Len(t, sent, 1)
	assert.Equal(t, "ana@x.com", sent[0].To)
}

func TestDispatcherSkipsEmptyEmail(t *testing.T) {
	transport := &fakeTransport{}
	d := NewDispatcher(transport, zap.NewNop(), time.Second)

	d.Dispatch(Event{Kind: KindCreated, To: "", Status: booking.StatusPending})
	d.Close()

	assert.Empty(t, transport.messages())
}

func TestDispatcherSkipsMalformedEmail(t *testing.T) {
	transport := &fakeTransport{}
	d := NewDispatcher(transport, zap.NewNop(), time.Second)

	d.Dispatch(Event{Kind: KindCreated, To: "ana.x.com", Status: booking.StatusPending})
	d.Dispatch(Event{Kind: KindCreated, To: "ana@xcom", Status: booking.StatusPending})
	d.Close()

	assert.Empty(t, transport.messages())
}

func TestDispatcherSwallowsTransportFailure(t *testing.T) {
	transport := &fakeTransport{err: errors.New("smtp auth failed")}
	d := NewDispatcher(transport, zap.NewNop(), time.Second)

	d.Dispatch(Event{Kind: KindStatusChanged, To: "ana@x.com", Status: booking.StatusConfirmed})

	// sem pânico e sem erro chegando a quem despachou
	d.Close()
	assert.Len(t, transport.messages(), 1)
}
