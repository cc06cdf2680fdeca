package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func slotStarts(slots []Slot) []string {
	starts := make([]string, len(slots))
	for i, s := range slots {
		starts[i] = s.StartTime
	}
	return starts
}

func TestGenerateTimeSlotsFullDayNoBookings(t *testing.T) {
	slots, err := GenerateTimeSlots("09:00", "17:00", 30, nil)
	require.NoError(t, err)

	// 09:00 through 16:30 in 15-minute steps.
	require.Len(t, slots, 31)
	assert.Equal(t, "09:00", slots[0].StartTime)
	assert.Equal(t, "09:30", slots[0].EndTime)
	assert.Equal(t, "09:15", slots[1].StartTime)
	assert.Equal(t, "16:30", slots[len(slots)-1].StartTime)
	assert.Equal(t, "17:00", slots[len(slots)-1].EndTime)
	for _, s := range slots {
		assert.True(t, s.Available)
	}
}

func TestGenerateTimeSlotsSkipsOverlaps(t *testing.T) {
	booked := []Interval{{Start: 600, End: 630}} // [10:00, 10:30)
	slots, err := GenerateTimeSlots("09:00", "17:00", 30, booked)
	require.NoError(t, err)

	starts := slotStarts(slots)
	// A 09:45 start would end 10:15, inside the booked interval.
	assert.NotContains(t, starts, "09:45")
	assert.NotContains(t, starts, "10:00")
	assert.NotContains(t, starts, "10:15")
	// Touching boundaries is fine: half-open intervals.
	assert.Contains(t, starts, "09:30")
	assert.Contains(t, starts, "10:30")

	for _, s := range slots {
		start, err := TimeToMinutes(s.StartTime)
		require.NoError(t, err)
		end, err := TimeToMinutes(s.EndTime)
		require.NoError(t, err)
		candidate := Interval{Start: start, End: end}
		assert.False(t, candidate.Overlaps(booked[0]), "slot %s overlaps booking", s.StartTime)
	}
}

func TestGenerateTimeSlotsDurationLongerThanWindow(t *testing.T) {
	slots, err := GenerateTimeSlots("09:00", "10:00", 90, nil)
	require.NoError(t, err)
	assert.Empty(t, slots)
}

func TestGenerateTimeSlotsExactFit(t *testing.T) {
	slots, err := GenerateTimeSlots("09:00", "10:00", 60, nil)
	require.NoError(t, err)
	require.Len(t, slots, 1)
	assert.Equal(t, "09:00", slots[0].StartTime)
	assert.Equal(t, "10:00", slots[0].EndTime)
}

func TestGenerateTimeSlotsRejectsBadWindow(t *testing.T) {
	_, err := GenerateTimeSlots("9:00", "17:00", 30, nil)
	assert.Error(t, err)
	_, err = GenerateTimeSlots("09:00", "25:00", 30, nil)
	assert.Error(t, err)
}

func TestFilterPastSlotsKeepsOnlyFutureStarts(t *testing.T) {
	slots, err := GenerateTimeSlots("09:00", "12:00", 30, nil)
	require.NoError(t, err)

	now := time.Date(2025, 6, 2, 10, 0, 0, 0, time.Local)
	future := FilterPastSlots(slots, now)

	starts := slotStarts(future)
	assert.NotContains(t, starts, "09:45")
	// A slot starting exactly now is not strictly in the future.
	assert.NotContains(t, starts, "10:00")
	assert.Contains(t, starts, "10:15")
	require.NotEmpty(t, future)
	assert.Equal(t, "10:15", future[0].StartTime)
}

func TestIntervalOverlaps(t *testing.T) {
	base := Interval{Start: 600, End: 630}
	assert.True(t, base.Overlaps(Interval{Start: 615, End: 645}))
	assert.True(t, base.Overlaps(Interval{Start: 585, End: 615}))
	assert.True(t, base.Overlaps(Interval{Start: 590, End: 640}))
	assert.False(t, base.Overlaps(Interval{Start: 630, End: 660}))
	assert.False(t, base.Overlaps(Interval{Start: 570, End: 600}))
}
