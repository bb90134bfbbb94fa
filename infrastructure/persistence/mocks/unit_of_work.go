package mocks

import (
	"context"
	"sync"

	"store/domain/shared"
	"store/pkg/logger"

	"go.uber.org/zap"
)

// MockUnitOfWork runs fn without a transaction and hands the events of the
// registered aggregates to its factory instead of an outbox table.
type MockUnitOfWork struct {
	factory    *MockUnitOfWorkFactory
	aggregates []shared.AggregateRoot
}

func (u *MockUnitOfWork) Execute(ctx context.Context, fn func(ctx context.Context) error) error {
	u.aggregates = u.aggregates[:0]

	if err := fn(ctx); err != nil {
		return err
	}

	for _, agg := range u.aggregates {
		for _, event := range agg.PullEvents() {
			logger.FromContext(ctx).Debug("mock outbox event",
				zap.String("event", event.EventName()),
				zap.String("aggregate_id", agg.ID()))
			u.factory.record(event)
		}
	}
	return nil
}

func (u *MockUnitOfWork) RegisterNew(aggregate shared.AggregateRoot) {
	u.aggregates = append(u.aggregates, aggregate)
}

func (u *MockUnitOfWork) RegisterDirty(aggregate shared.AggregateRoot) {
	u.aggregates = append(u.aggregates, aggregate)
}

func (u *MockUnitOfWork) RegisterRemoved(aggregate shared.AggregateRoot) {
	u.aggregates = append(u.aggregates, aggregate)
}

// MockUnitOfWorkFactory collects every event committed through its units of work.
type MockUnitOfWorkFactory struct {
	mu     sync.Mutex
	events []shared.DomainEvent
}

func NewMockUnitOfWorkFactory() *MockUnitOfWorkFactory {
	return &MockUnitOfWorkFactory{}
}

func (f *MockUnitOfWorkFactory) New() shared.UnitOfWork {
	return &MockUnitOfWork{factory: f}
}

func (f *MockUnitOfWorkFactory) record(event shared.DomainEvent) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.events = append(f.events, event)
}

// Events returns the committed events in commit order.
func (f *MockUnitOfWorkFactory) Events() []shared.DomainEvent {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]shared.DomainEvent, len(f.events))
	copy(out, f.events)
	return out
}

// EventNames is Events reduced to names, for assertions.
func (f *MockUnitOfWorkFactory) EventNames() []string {
	var names []string
	for _, e := range f.Events() {
		names = append(names, e.EventName())
	}
	return names
}

var (
	_ shared.UnitOfWork        = (*MockUnitOfWork)(nil)
	_ shared.UnitOfWorkFactory = (*MockUnitOfWorkFactory)(nil)
)
