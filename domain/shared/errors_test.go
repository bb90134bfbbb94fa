package shared

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDomainErrorUnwrapsToSentinel(t *testing.T) {
	err := NewNotFoundError("customer", "42")

	assert.True(t, errors.Is(err, ErrNotFound))
	assert.Equal(t, "customer not found: 42", err.Error())

	var de *DomainError
	require.True(t, errors.As(err, &de))
	assert.Equal(t, "customer", de.Entity)
	assert.NotEmpty(t, de.Stack())
}

func TestDomainErrorKinds(t *testing.T) {
	assert.ErrorIs(t, NewConflictError("order", "stale"), ErrConflict)
	assert.ErrorIs(t, NewValidationError("order", "id", "bad"), ErrInvalidInput)
	assert.ErrorIs(t, NewInvalidStateError("order", "already shipped"), ErrInvalidState)
}

func TestValidateEvent(t *testing.T) {
	now := time.Now()

	assert.Error(t, ValidateEvent(nil))
	assert.Error(t, ValidateEvent(NewBaseEvent("", "id", now)))
	assert.Error(t, ValidateEvent(NewBaseEvent("x", "", now)))
	assert.Error(t, ValidateEvent(NewBaseEvent("x", "id", time.Time{})))
	assert.NoError(t, ValidateEvent(NewBaseEvent("x", "id", now)))
}

func TestEventRecorderPullClears(t *testing.T) {
	var r EventRecorder
	r.Record(NewBaseEvent("a", "1", time.Now()))
	r.Record(NewBaseEvent("b", "1", time.Now()))

	events := r.PullEvents()
	require.Len(t, events, 2)
	assert.Equal(t, "a", events[0].EventName())
	assert.Empty(t, r.PullEvents())
}
