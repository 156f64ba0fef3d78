// Package schedule is the interval-scheduling core behind the calendar
// widget: conflict detection, alternative-slot suggestion, free-time
// discovery, weekly availability patterns, and the column layout used to
// render overlapping events side by side.
//
// Every function is pure over its arguments. The caller owns the event
// slice; nothing here retains state between calls, so independent callers
// may invoke the package concurrently without coordination.
package schedule

import (
	"fmt"
	"strings"
	"time"
)

// Event is a calendar entry over the half-open interval [Start, End).
// Color and Category are opaque display tags; the core never branches on
// them.
type Event struct {
	ID          string
	Title       string
	Description string
	Start       time.Time
	End         time.Time
	Color       string
	Category    string
}

// Validate reports whether the event is usable as input. Zero-duration
// events are invalid: Start must be strictly before End.
func (e Event) Validate() error {
	if strings.TrimSpace(e.Title) == "" {
		return fmt.Errorf("event %q: title is required", e.ID)
	}
	if e.Start.IsZero() || e.End.IsZero() {
		return fmt.Errorf("event %q: start and end times are required", e.ID)
	}
	if !e.Start.Before(e.End) {
		return fmt.Errorf("event %q: start must be before end", e.ID)
	}
	return nil
}

// Interval returns the event's time span.
func (e Event) Interval() Interval {
	return Interval{Start: e.Start, End: e.End}
}
