package schedule

import (
	"fmt"
	"time"
)

const (
	suggestionStep = 30 * time.Minute
	maxSuggestions = 3
)

// SuggestAlternatives proposes conflict-free start times for the candidate,
// keeping its duration. Starts are scanned at 30-minute steps across the
// business hours of the candidate's calendar day; a probe is accepted only
// when it ends by business close and overlaps nothing in existing (minus
// excludeID). At most three starts are returned, ascending.
//
// A candidate longer than the business window yields no suggestions, which
// is a defined outcome rather than an error. The scan never wraps into an
// adjacent day.
func SuggestAlternatives(candidate Event, existing []Event, excludeID string) ([]time.Time, error) {
	if err := candidate.Validate(); err != nil {
		return nil, fmt.Errorf("invalid candidate: %w", err)
	}

	duration := candidate.End.Sub(candidate.Start)
	window := BusinessHours(candidate.Start)

	var suggestions []time.Time
	for s := window.Start; !s.Add(duration).After(window.End); s = s.Add(suggestionStep) {
		probe := Interval{Start: s, End: s.Add(duration)}
		if overlapsAny(probe, existing, excludeID) {
			continue
		}
		suggestions = append(suggestions, s)
		if len(suggestions) == maxSuggestions {
			break
		}
	}
	return suggestions, nil
}
