package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCanTransitionFromBooked(t *testing.T) {
	a := Appointment{Status: StatusBooked}
	assert.True(t, a.CanTransition(StatusCompleted))
	assert.True(t, a.CanTransition(StatusCancelled))
	assert.False(t, a.CanTransition(StatusBooked))
}

func TestTerminalStatesAreClosed(t *testing.T) {
	for _, terminal := range []AppointmentStatus{StatusCompleted, StatusCancelled} {
		a := Appointment{Status: terminal}
		for _, next := range []AppointmentStatus{StatusBooked, StatusCompleted, StatusCancelled} {
			assert.False(t, a.CanTransition(next), "%s -> %s must be rejected", terminal, next)
		}
	}
}

func TestBeforeCreateDefaults(t *testing.T) {
	a := Appointment{}
	require.NoError(t, a.BeforeCreate(nil))
	assert.Equal(t, StatusBooked, a.Status)
	assert.NotEmpty(t, a.BookingRef)

	b := Appointment{Status: StatusCancelled, BookingRef: "keep-me"}
	require.NoError(t, b.BeforeCreate(nil))
	assert.Equal(t, StatusCancelled, b.Status)
	assert.Equal(t, "keep-me", b.BookingRef)
}

func TestStartInstantCombinesDateAndTime(t *testing.T) {
	date := time.Date(2025, 6, 2, 0, 0, 0, 0, time.Local)
	a := Appointment{Date: date, StartTime: "14:30"}

	start, err := a.StartInstant()
	require.NoError(t, err)
	assert.Equal(t, time.Date(2025, 6, 2, 14, 30, 0, 0, time.Local), start)
}

func TestStartInstantRejectsBadTime(t *testing.T) {
	a := Appointment{Date: time.Now(), StartTime: "25:00"}
	_, err := a.StartInstant()
	assert.Error(t, err)
}

func TestCancellableAt(t *testing.T) {
	date := time.Date(2025, 6, 2, 0, 0, 0, 0, time.Local)
	a := Appointment{Date: date, StartTime: "14:30", Status: StatusBooked}

	before := time.Date(2025, 6, 2, 14, 29, 0, 0, time.Local)
	atStart := time.Date(2025, 6, 2, 14, 30, 0, 0, time.Local)
	after := time.Date(2025, 6, 3, 9, 0, 0, 0, time.Local)

	ok, err := a.CancellableAt(before)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = a.CancellableAt(atStart)
	require.NoError(t, err)
	assert.False(t, ok, "an appointment is not cancellable once its start instant is reached")

	ok, err = a.CancellableAt(after)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestStatusValid(t *testing.T) {
	assert.True(t, StatusBooked.Valid())
	assert.True(t, StatusCompleted.Valid())
	assert.True(t, StatusCancelled.Valid())
	assert.False(t, AppointmentStatus("no_show").Valid())
	assert.False(t, AppointmentStatus("").Valid())
}
