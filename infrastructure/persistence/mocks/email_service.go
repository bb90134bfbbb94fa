package mocks

import (
	"context"
	"sync"

	"store/domain/customer"
)

type SentEmail struct {
	To      string
	From    string
	Subject string
	Body    string
}

// MockEmailService records messages. When Err is set Send fails without recording.
type MockEmailService struct {
	mu   sync.Mutex
	sent []SentEmail
	Err  error
}

func NewMockEmailService() *MockEmailService {
	return &MockEmailService{}
}

func (s *MockEmailService) Send(_ context.Context, to, from, subject, body string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return s.Err
	}
	s.sent = append(s.sent, SentEmail{To: to, From: from, Subject: subject, Body: body})
	return nil
}

func (s *MockEmailService) Sent() []SentEmail {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]SentEmail(nil), s.sent...)
}

var _ customer.EmailService = (*MockEmailService)(nil)
