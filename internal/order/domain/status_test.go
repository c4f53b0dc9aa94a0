package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCanTransitionTo_ForwardOneStep(t *testing.T) {
	assert.True(t, StatusPending.CanTransitionTo(StatusConfirmed))
	assert.True(t, StatusConfirmed.CanTransitionTo(StatusProcessing))
	assert.True(t, StatusProcessing.CanTransitionTo(StatusShipped))
	assert.True(t, StatusShipped.CanTransitionTo(StatusDelivered))
}

func TestCanTransitionTo_NoSkippingOrBacktracking(t *testing.T) {
	assert.False(t, StatusPending.CanTransitionTo(StatusProcessing))
	assert.False(t, StatusPending.CanTransitionTo(StatusDelivered))
	assert.False(t, StatusShipped.CanTransitionTo(StatusConfirmed))
	assert.False(t, StatusConfirmed.CanTransitionTo(StatusConfirmed))
}

func TestCanTransitionTo_CancelFromAnyNonTerminal(t *testing.T) {
	for _, s := range []Status{StatusPending, StatusConfirmed, StatusProcessing, StatusShipped} {
		assert.True(t, s.CanTransitionTo(StatusCancelled), "should cancel from %s", s)
	}
}

func TestCanTransitionTo_TerminalStatesAreFinal(t *testing.T) {
	assert.False(t, StatusDelivered.CanTransitionTo(StatusCancelled))
	assert.False(t, StatusCancelled.CanTransitionTo(StatusPending))
	assert.False(t, StatusCancelled.CanTransitionTo(StatusConfirmed))
}

func TestBadgeColor(t *testing.T) {
	assert.Equal(t, "yellow", StatusPending.BadgeColor())
	assert.Equal(t, "blue", StatusConfirmed.BadgeColor())
	assert.Equal(t, "indigo", StatusProcessing.BadgeColor())
	assert.Equal(t, "purple", StatusShipped.BadgeColor())
	assert.Equal(t, "green", StatusDelivered.BadgeColor())
	assert.Equal(t, "red", StatusCancelled.BadgeColor())
	assert.Equal(t, "gray", Status("unknown").BadgeColor())
}

func TestTimeline(t *testing.T) {
	assert.Equal(t, []Status{StatusPending}, StatusPending.Timeline())
	assert.Equal(t, []Status{StatusPending, StatusConfirmed, StatusProcessing}, StatusProcessing.Timeline())
	assert.Equal(t,
		[]Status{StatusPending, StatusConfirmed, StatusProcessing, StatusShipped, StatusDelivered},
		StatusDelivered.Timeline(),
	)
}

func TestTimeline_CancelledHidesProgress(t *testing.T) {
	assert.Equal(t, []Status{StatusPending, StatusCancelled}, StatusCancelled.Timeline())
}

func TestIsValid(t *testing.T) {
	assert.True(t, StatusPending.IsValid())
	assert.True(t, StatusCancelled.IsValid())
	assert.False(t, Status("paid").IsValid())
	assert.False(t, Status("").IsValid())
}
