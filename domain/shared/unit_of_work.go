package shared

import "context"

// UnitOfWork wraps a business operation in one transaction and moves the
// events of registered aggregates into the outbox before committing.
type UnitOfWork interface {
	Execute(ctx context.Context, fn func(ctx context.Context) error) error
	RegisterNew(aggregate AggregateRoot)
	RegisterDirty(aggregate AggregateRoot)
	RegisterRemoved(aggregate AggregateRoot)
}

// UnitOfWorkFactory hands out a fresh UnitOfWork per request. A UnitOfWork
// keeps registered aggregates between calls and must not be shared.
type UnitOfWorkFactory interface {
	New() UnitOfWork
}

type OutboxRepository interface {
	SaveEvent(ctx context.Context, event DomainEvent) error
}
