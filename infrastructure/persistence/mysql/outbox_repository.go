package mysql

import (
	"context"
	"fmt"
	"time"

	"store/domain/shared"
	"store/infrastructure/persistence"
	"store/infrastructure/persistence/mysql/po"

	"gorm.io/gorm"
)

// OutboxRepository stores domain events in the outbox table in the same
// transaction as the aggregate that raised them, and serves the worker that
// publishes them afterwards.
type OutboxRepository struct {
	db *gorm.DB
}

func NewOutboxRepository(db *gorm.DB) *OutboxRepository {
	return &OutboxRepository{db: db}
}

func (r *OutboxRepository) getDB(ctx context.Context) *gorm.DB {
	return persistence.DB(ctx, r.db)
}

// SaveEvent joins the unit of work's transaction when there is one.
func (r *OutboxRepository) SaveEvent(ctx context.Context, event shared.DomainEvent) error {
	if err := shared.ValidateEvent(event); err != nil {
		return fmt.Errorf("invalid domain event: %w", err)
	}

	outboxPO, err := po.FromDomainEvent(event)
	if err != nil {
		return fmt.Errorf("failed to convert domain event: %w", err)
	}
	if err := r.getDB(ctx).Create(outboxPO).Error; err != nil {
		return fmt.Errorf("failed to save event to outbox: %w", err)
	}
	return nil
}

// GetPendingEvents returns up to limit pending events, oldest first.
func (r *OutboxRepository) GetPendingEvents(ctx context.Context, limit int) ([]*po.OutboxEventPO, error) {
	var events []*po.OutboxEventPO
	err := r.getDB(ctx).
		Where("status = ?", string(po.EventStatusPending)).
		Order("created_at ASC").
		Limit(limit).
		Find(&events).Error
	if err != nil {
		return nil, fmt.Errorf("failed to get pending events: %w", err)
	}
	return events, nil
}

// MarkEventProcessing claims a pending event. It fails when another worker
// claimed it first.
func (r *OutboxRepository) MarkEventProcessing(ctx context.Context, eventID string) error {
	result := r.getDB(ctx).Model(&po.OutboxEventPO{}).
		Where("id = ? AND status = ?", eventID, string(po.EventStatusPending)).
		Updates(map[string]any{
			"status":     string(po.EventStatusProcessing),
			"updated_at": time.Now(),
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("event not found or already being processed: %s", eventID)
	}
	return nil
}

func (r *OutboxRepository) MarkEventPublished(ctx context.Context, eventID string) error {
	result := r.getDB(ctx).Model(&po.OutboxEventPO{}).
		Where("id = ?", eventID).
		Updates(map[string]any{
			"status":     string(po.EventStatusPublished),
			"updated_at": time.Now(),
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("event not found: %s", eventID)
	}
	return nil
}

// MarkEventFailed puts the event back to pending until it has failed
// maxRetries times, then parks it as failed. It reports whether the event
// was parked.
func (r *OutboxRepository) MarkEventFailed(ctx context.Context, eventID string, maxRetries int) (bool, error) {
	db := r.getDB(ctx)

	var event po.OutboxEventPO
	if err := db.First(&event, "id = ?", eventID).Error; err != nil {
		return false, fmt.Errorf("failed to find event: %w", err)
	}

	retryCount := event.RetryCount + 1
	status := po.EventStatusFailed
	if retryCount < maxRetries {
		status = po.EventStatusPending
	}

	err := db.Model(&po.OutboxEventPO{}).
		Where("id = ?", eventID).
		Updates(map[string]any{
			"status":      string(status),
			"retry_count": retryCount,
			"updated_at":  time.Now(),
		}).Error
	if err != nil {
		return false, err
	}
	return status == po.EventStatusFailed, nil
}

var _ shared.OutboxRepository = (*OutboxRepository)(nil)
