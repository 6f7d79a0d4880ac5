package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGenerationTrackerSingleRequest(t *testing.T) {
	tracker := NewGenerationTracker()
	assert.False(t, tracker.InFlight())

	ctx, ticket := tracker.Begin(context.Background())
	assert.True(t, tracker.InFlight())
	assert.NoError(t, ctx.Err())

	assert.True(t, tracker.Accept(ticket))
	assert.False(t, tracker.InFlight())
	assert.Error(t, ctx.Err(), "context is released once the result is accepted")

	assert.False(t, tracker.Accept(ticket), "a ticket is accepted only once")
}

func TestGenerationTrackerSupersedes(t *testing.T) {
	tracker := NewGenerationTracker()

	first, t1 := tracker.Begin(context.Background())
	second, t2 := tracker.Begin(context.Background())

	assert.ErrorIs(t, first.Err(), context.Canceled)
	assert.NoError(t, second.Err())

	assert.False(t, tracker.Accept(t1), "stale result must be dropped")
	assert.True(t, tracker.Accept(t2))
}

func TestGenerationTrackerCancel(t *testing.T) {
	tracker := NewGenerationTracker()

	ctx, ticket := tracker.Begin(context.Background())
	tracker.Cancel()

	assert.ErrorIs(t, ctx.Err(), context.Canceled)
	assert.False(t, tracker.InFlight())
	assert.False(t, tracker.Accept(ticket))

	// cancelling with nothing in flight is a no-op
	tracker.Cancel()
	assert.False(t, tracker.Accept(0))
}
