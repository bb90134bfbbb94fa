package email

import (
	"context"
	"errors"
	"testing"

	"store/domain/shared"
	"store/infrastructure/persistence/mysql/po"
	"store/pkg/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

type memoryOutbox struct {
	events []shared.DomainEvent
	err    error
}

func (o *memoryOutbox) SaveEvent(_ context.Context, event shared.DomainEvent) error {
	if o.err != nil {
		return o.err
	}
	o.events = append(o.events, event)
	return nil
}

type recordingSender struct {
	sent []Message
}

func (s *recordingSender) Send(_ context.Context, msg Message) error {
	s.sent = append(s.sent, msg)
	return nil
}

func TestOutboxService_RoundTripThroughDispatcher(t *testing.T) {
	ctx := context.Background()
	outbox := &memoryOutbox{}
	svc := NewOutboxService(outbox)

	require.NoError(t, svc.Send(ctx, "maria@store.io", "hello@store.io", "Welcome", "Hi Maria"))
	require.Len(t, outbox.events, 1)
	event := outbox.events[0]
	assert.Equal(t, EventWelcomeEmail, event.EventName())
	require.NoError(t, shared.ValidateEvent(event))

	row, err := po.FromDomainEvent(event)
	require.NoError(t, err)

	sender := &recordingSender{}
	require.NoError(t, NewDispatcher(sender).Publish(ctx, row.EventType, row.Payload))
	assert.Equal(t, []Message{{
		To:      "maria@store.io",
		From:    "hello@store.io",
		Subject: "Welcome",
		Body:    "Hi Maria",
	}}, sender.sent)
}

func TestOutboxService_WrapsStorageErrors(t *testing.T) {
	boom := errors.New("boom")
	svc := NewOutboxService(&memoryOutbox{err: boom})
	assert.ErrorIs(t, svc.Send(context.Background(), "a@b.io", "c@d.io", "s", "b"), boom)
}

func TestDispatcher(t *testing.T) {
	ctx := context.Background()
	core, logs := observer.New(zapcore.InfoLevel)
	t.Cleanup(logger.Replace(zap.New(core)))

	sender := &recordingSender{}
	d := NewDispatcher(sender)

	require.NoError(t, d.Publish(ctx, "order.placed", `{"event_name":"order.placed"}`))
	assert.Empty(t, sender.sent)
	assert.Equal(t, 1, logs.FilterMessage("outbox event published").Len())

	assert.Error(t, d.Publish(ctx, EventWelcomeEmail, "not json"))
	assert.Error(t, d.Publish(ctx, EventWelcomeEmail, `{"data":{}}`))
}

func TestDirectService(t *testing.T) {
	sender := &recordingSender{}
	require.NoError(t, NewDirectService(sender).Send(context.Background(), "a@b.io", "c@d.io", "s", "b"))
	require.Len(t, sender.sent, 1)
	assert.Equal(t, "a@b.io", sender.sent[0].To)
}

func TestLoggingSender(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	t.Cleanup(logger.Replace(zap.New(core)))

	require.NoError(t, LoggingSender{}.Send(context.Background(), Message{To: "a@b.io", Subject: "s"}))
	entries := logs.FilterMessage("email sent").All()
	require.Len(t, entries, 1)
	assert.Equal(t, "a@b.io", entries[0].ContextMap()["to"])
}

func TestConstructorsPanic(t *testing.T) {
	assert.Panics(t, func() { NewOutboxService(nil) })
	assert.Panics(t, func() { NewDirectService(nil) })
	assert.Panics(t, func() { NewDispatcher(nil) })
}
