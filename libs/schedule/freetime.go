package schedule

import (
	"fmt"
	"sort"
	"time"
)

// DefaultMinFreeSlot is the minimum gap FindFreeTime reports when the
// caller passes a non-positive minimum.
const DefaultMinFreeSlot = 60 * time.Minute

// TimeOfDay classifies a free slot by the clock hour of its start.
type TimeOfDay string

const (
	Morning   TimeOfDay = "morning"   // start before 12:00
	Afternoon TimeOfDay = "afternoon" // 12:00 to 16:59
	Evening   TimeOfDay = "evening"   // 17:00 onward
)

// FreeSlot is a maximal gap within business hours on one day.
type FreeSlot struct {
	Start           time.Time
	End             time.Time
	DurationMinutes int
	TimeOfDay       TimeOfDay
}

// FreeTimeReport is the full free-time picture for one day: every gap of
// at least the requested minimum, the longest gap, the first gap of an
// hour or more, and the recurring weekly availability for the containing
// week. Nil pointers mean "no such slot", a normal outcome.
type FreeTimeReport struct {
	AllFreeSlots     []FreeSlot
	LongestFreeBlock *FreeSlot
	NextAvailable    *FreeSlot
	WeeklyPattern    []FreeSlot
}

// FindFreeTime computes the gaps between events within the business hours
// of the given day. Only events whose start falls on that calendar day are
// considered; they are sorted internally, so output is identical for any
// input ordering. minDuration <= 0 falls back to DefaultMinFreeSlot.
func FindFreeTime(existing []Event, day time.Time, minDuration time.Duration) (FreeTimeReport, error) {
	for _, e := range existing {
		if err := e.Validate(); err != nil {
			return FreeTimeReport{}, fmt.Errorf("invalid event list: %w", err)
		}
	}
	if minDuration <= 0 {
		minDuration = DefaultMinFreeSlot
	}

	window := BusinessHours(day)

	var todays []Event
	for _, e := range existing {
		if sameDay(e.Start, day) {
			todays = append(todays, e)
		}
	}
	sort.Slice(todays, func(i, j int) bool {
		if !todays[i].Start.Equal(todays[j].Start) {
			return todays[i].Start.Before(todays[j].Start)
		}
		return todays[i].ID < todays[j].ID
	})

	var slots []FreeSlot
	cursor := window.Start
	emit := func(start, end time.Time) {
		gap := Interval{Start: start, End: end}
		if gap.End.Sub(gap.Start) >= minDuration {
			slots = append(slots, newFreeSlot(gap))
		}
	}
	for _, e := range todays {
		eventStart := clampToWindow(e.Start, window)
		eventEnd := clampToWindow(e.End, window)
		if cursor.Before(eventStart) {
			emit(cursor, eventStart)
		}
		if eventEnd.After(cursor) {
			cursor = eventEnd
		}
	}
	if cursor.Before(window.End) {
		emit(cursor, window.End)
	}

	report := FreeTimeReport{
		AllFreeSlots:  slots,
		WeeklyPattern: FindWeeklyPattern(existing, day),
	}
	for i := range slots {
		// Only strictly longer slots replace the incumbent, so the
		// earliest of equal-length slots wins.
		if report.LongestFreeBlock == nil || slots[i].DurationMinutes > report.LongestFreeBlock.DurationMinutes {
			report.LongestFreeBlock = &slots[i]
		}
		if report.NextAvailable == nil && slots[i].DurationMinutes >= 60 {
			report.NextAvailable = &slots[i]
		}
	}
	return report, nil
}

func newFreeSlot(gap Interval) FreeSlot {
	return FreeSlot{
		Start:           gap.Start,
		End:             gap.End,
		DurationMinutes: int(gap.Minutes()),
		TimeOfDay:       classifyTimeOfDay(gap.Start),
	}
}

func classifyTimeOfDay(t time.Time) TimeOfDay {
	switch h := t.Hour(); {
	case h < 12:
		return Morning
	case h < 17:
		return Afternoon
	default:
		return Evening
	}
}

func clampToWindow(t time.Time, window Interval) time.Time {
	if t.Before(window.Start) {
		return window.Start
	}
	if t.After(window.End) {
		return window.End
	}
	return t
}
