package po

import (
	"encoding/json"
	"time"

	"store/domain/shared"

	"github.com/google/uuid"
)

// OutboxEventPO is one pending or processed row of the transactional outbox.
type OutboxEventPO struct {
	ID          string    `gorm:"primaryKey;size:36"`
	AggregateID string    `gorm:"size:36;index;not null"`
	EventType   string    `gorm:"size:100;index;not null"` // e.g. customer.registered, order.placed
	Payload     string    `gorm:"type:text;not null"`
	Status      string    `gorm:"size:20;default:PENDING;index;not null"`
	RetryCount  int       `gorm:"default:0;not null"`
	CreatedAt   time.Time `gorm:"autoCreateTime;index"`
	UpdatedAt   time.Time `gorm:"autoUpdateTime"`
}

func (OutboxEventPO) TableName() string {
	return "outbox_events"
}

type EventStatus string

const (
	EventStatusPending    EventStatus = "PENDING"
	EventStatusProcessing EventStatus = "PROCESSING"
	EventStatusPublished  EventStatus = "PUBLISHED"
	EventStatusFailed     EventStatus = "FAILED"
)

func FromDomainEvent(event shared.DomainEvent) (*OutboxEventPO, error) {
	payload, err := serializeEventToJSON(event)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	return &OutboxEventPO{
		ID:          uuid.New().String(),
		AggregateID: event.GetAggregateID(),
		EventType:   event.EventName(),
		Payload:     payload,
		Status:      string(EventStatusPending),
		CreatedAt:   now,
		UpdatedAt:   now,
	}, nil
}

// serializeEventToJSON writes the envelope fields and, for events that carry
// one, the event payload under "data".
func serializeEventToJSON(event shared.DomainEvent) (string, error) {
	eventData := map[string]any{
		"event_name":   event.EventName(),
		"aggregate_id": event.GetAggregateID(),
		"occurred_on":  event.OccurredOn(),
	}
	if pe, ok := event.(shared.PayloadEvent); ok {
		eventData["data"] = pe.Payload()
	}

	data, err := json.Marshal(eventData)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// ToEventData decodes the stored payload.
func (po *OutboxEventPO) ToEventData() (map[string]any, error) {
	var data map[string]any
	if err := json.Unmarshal([]byte(po.Payload), &data); err != nil {
		return nil, err
	}
	return data, nil
}
