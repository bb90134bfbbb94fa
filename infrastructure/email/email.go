/*
Package email delivers the store's transactional mail.

The customer handlers hand a message to an EmailService. OutboxService
stores it as a customer.welcome_email outbox event; the outbox worker later
passes it to a Sender through the Dispatcher. DirectService skips the outbox
and calls the Sender at once, for deployments without a database.
*/
package email

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"store/domain/customer"
	"store/domain/shared"
	"store/pkg/logger"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const EventWelcomeEmail = "customer.welcome_email"

type Message struct {
	To      string `json:"to"`
	From    string `json:"from"`
	Subject string `json:"subject"`
	Body    string `json:"body"`
}

// Sender hands a message to the mail transport.
type Sender interface {
	Send(ctx context.Context, msg Message) error
}

// LoggingSender writes messages to the log instead of a mail server.
type LoggingSender struct{}

func (LoggingSender) Send(ctx context.Context, msg Message) error {
	logger.FromContext(ctx).Info("email sent",
		zap.String("to", msg.To),
		zap.String("from", msg.From),
		zap.String("subject", msg.Subject))
	return nil
}

// WelcomeEmailRequested is the outbox record of a queued message. Its
// aggregate id is the message id.
type WelcomeEmailRequested struct {
	shared.BaseEvent
	msg Message
}

func NewWelcomeEmailRequested(msg Message) *WelcomeEmailRequested {
	return &WelcomeEmailRequested{
		BaseEvent: shared.NewBaseEvent(EventWelcomeEmail, uuid.New().String(), time.Now()),
		msg:       msg,
	}
}

func (e *WelcomeEmailRequested) Message() Message { return e.msg }

func (e *WelcomeEmailRequested) Payload() map[string]any {
	return map[string]any{
		"to":      e.msg.To,
		"from":    e.msg.From,
		"subject": e.msg.Subject,
		"body":    e.msg.Body,
	}
}

// OutboxService queues messages in the transactional outbox.
type OutboxService struct {
	outbox shared.OutboxRepository
}

func NewOutboxService(outbox shared.OutboxRepository) *OutboxService {
	if outbox == nil {
		panic("email: NewOutboxService requires an outbox repository")
	}
	return &OutboxService{outbox: outbox}
}

func (s *OutboxService) Send(ctx context.Context, to, from, subject, body string) error {
	event := NewWelcomeEmailRequested(Message{To: to, From: from, Subject: subject, Body: body})
	if err := s.outbox.SaveEvent(ctx, event); err != nil {
		return fmt.Errorf("queue email to %s: %w", to, err)
	}
	return nil
}

// DirectService sends through the Sender immediately.
type DirectService struct {
	sender Sender
}

func NewDirectService(sender Sender) *DirectService {
	if sender == nil {
		panic("email: NewDirectService requires a sender")
	}
	return &DirectService{sender: sender}
}

func (s *DirectService) Send(ctx context.Context, to, from, subject, body string) error {
	return s.sender.Send(ctx, Message{To: to, From: from, Subject: subject, Body: body})
}

// Dispatcher publishes outbox events for the worker: queued mail goes to the
// Sender, every other event is logged.
type Dispatcher struct {
	sender Sender
}

func NewDispatcher(sender Sender) *Dispatcher {
	if sender == nil {
		panic("email: NewDispatcher requires a sender")
	}
	return &Dispatcher{sender: sender}
}

type envelope struct {
	Data Message `json:"data"`
}

func (d *Dispatcher) Publish(ctx context.Context, eventType, payload string) error {
	if eventType != EventWelcomeEmail {
		logger.FromContext(ctx).Info("outbox event published",
			zap.String("event_type", eventType),
			zap.String("payload", payload))
		return nil
	}

	var env envelope
	if err := json.Unmarshal([]byte(payload), &env); err != nil {
		return fmt.Errorf("decode %s payload: %w", eventType, err)
	}
	if env.Data.To == "" {
		return fmt.Errorf("%s payload has no recipient", eventType)
	}
	return d.sender.Send(ctx, env.Data)
}

var (
	_ customer.EmailService = (*OutboxService)(nil)
	_ customer.EmailService = (*DirectService)(nil)
	_ shared.PayloadEvent   = (*WelcomeEmailRequested)(nil)
)
