package utils

import (
	"time"
)

// slotStep is the spacing between candidate start times, independent of
// service duration. A 60-minute service still offers starts every 15
// minutes, which maximizes the start times a client can pick from.
const slotStep = 15

// Interval is a half-open [Start, End) range in minutes since midnight.
type Interval struct {
	Start int
	End   int
}

// Overlaps reports whether two half-open intervals intersect.
func (i Interval) Overlaps(other Interval) bool {
	return !(i.Start >= other.End || i.End <= other.Start)
}

// Slot is one bookable candidate of exact service duration.
type Slot struct {
	StartTime string `json:"startTime"`
	EndTime   string `json:"endTime"`
	Available bool   `json:"available"`
}

// GenerateTimeSlots walks the working window in fixed 15-minute steps
// and keeps every candidate [start, start+duration) that fits in the
// window and overlaps none of the booked intervals. Candidates may
// overlap each other; booking re-validates at commit time.
func GenerateTimeSlots(startTime, endTime string, duration int, booked []Interval) ([]Slot, error) {
	startMinutes, err := TimeToMinutes(startTime)
	if err != nil {
		return nil, err
	}
	endMinutes, err := TimeToMinutes(endTime)
	if err != nil {
		return nil, err
	}

	slots := []Slot{}
	for current := startMinutes; current+duration <= endMinutes; current += slotStep {
		candidate := Interval{Start: current, End: current + duration}
		free := true
		for _, b := range booked {
			if candidate.Overlaps(b) {
				free = false
				break
			}
		}
		if free {
			slots = append(slots, Slot{
				StartTime: MinutesToTime(candidate.Start),
				EndTime:   MinutesToTime(candidate.End),
				Available: true,
			})
		}
	}
	return slots, nil
}

// FilterPastSlots drops slots whose start is not strictly in the
// future. Applied only when the requested date is the current day.
func FilterPastSlots(slots []Slot, now time.Time) []Slot {
	nowMinutes := now.Hour()*60 + now.Minute()
	future := []Slot{}
	for _, s := range slots {
		start, err := TimeToMinutes(s.StartTime)
		if err != nil {
			continue
		}
		if start > nowMinutes {
			future = append(future, s)
		}
	}
	return future
}
