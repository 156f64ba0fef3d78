package schedule

import (
	"fmt"
	"sort"
	"time"
)

// LayoutEvent is an event positioned for side-by-side rendering. Column is
// the zero-based display lane; WidthFraction and LeftOffsetFraction are in
// [0,1] relative to the day column's full width.
type LayoutEvent struct {
	Event
	Column             int
	WidthFraction      float64
	LeftOffsetFraction float64
}

// LayoutDay assigns each event of a single day to a display column such
// that overlapping events never share a column. Events are sorted by start
// time (stable, so ties keep source order) and placed greedily into the
// first column whose last event ends at or before the new event's start.
//
// Every event gets the same width, 1/totalColumns for the day's final
// column count. A per-cluster packing would be tighter, but the uniform
// width is kept for compatibility with the existing renderer.
func LayoutDay(events []Event) ([]LayoutEvent, error) {
	for _, e := range events {
		if err := e.Validate(); err != nil {
			return nil, fmt.Errorf("invalid event list: %w", err)
		}
	}
	if len(events) == 0 {
		return nil, nil
	}

	sorted := make([]Event, len(events))
	copy(sorted, events)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Start.Before(sorted[j].Start)
	})

	out := make([]LayoutEvent, 0, len(sorted))
	var columnEnds []time.Time
	for _, e := range sorted {
		column := -1
		for i, end := range columnEnds {
			// Boundary touch is fine: the strict overlap rule means an
			// event may start exactly when the column's last one ends.
			if !end.After(e.Start) {
				column = i
				break
			}
		}
		if column == -1 {
			column = len(columnEnds)
			columnEnds = append(columnEnds, e.End)
		} else {
			columnEnds[column] = e.End
		}
		out = append(out, LayoutEvent{Event: e, Column: column})
	}

	total := len(columnEnds)
	for i := range out {
		out[i].WidthFraction = 1 / float64(total)
		out[i].LeftOffsetFraction = float64(out[i].Column) / float64(total)
	}
	return out, nil
}
