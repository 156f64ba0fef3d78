package schedule

import (
	"fmt"
	"sort"
	"time"
)

// ConflictResult is the outcome of checking one candidate event against an
// existing set. A populated conflict list is the normal result of the
// check, not an error.
type ConflictResult struct {
	HasConflict       bool
	ConflictingEvents []Event
	Message           string
	SuggestedTimes    []time.Time
}

// DetectConflicts checks the candidate against every existing event using
// the strict half-open overlap rule. The event whose ID equals excludeID is
// skipped, which lets a caller edit an event against a list that still
// contains it. ConflictingEvents comes back sorted by start time (ties by
// ID) so results are deterministic regardless of input order.
//
// When conflicts exist, SuggestedTimes carries up to three alternative
// start times within the candidate day's business hours.
func DetectConflicts(candidate Event, existing []Event, excludeID string) (ConflictResult, error) {
	if err := candidate.Validate(); err != nil {
		return ConflictResult{}, fmt.Errorf("invalid candidate: %w", err)
	}

	var conflicts []Event
	for _, e := range existing {
		if excludeID != "" && e.ID == excludeID {
			continue
		}
		if candidate.Interval().Overlaps(e.Interval()) {
			conflicts = append(conflicts, e)
		}
	}
	if len(conflicts) == 0 {
		return ConflictResult{}, nil
	}

	sort.Slice(conflicts, func(i, j int) bool {
		if !conflicts[i].Start.Equal(conflicts[j].Start) {
			return conflicts[i].Start.Before(conflicts[j].Start)
		}
		return conflicts[i].ID < conflicts[j].ID
	})

	suggestions, err := SuggestAlternatives(candidate, existing, excludeID)
	if err != nil {
		return ConflictResult{}, err
	}

	return ConflictResult{
		HasConflict:       true,
		ConflictingEvents: conflicts,
		Message:           conflictMessage(conflicts),
		SuggestedTimes:    suggestions,
	}, nil
}

func conflictMessage(conflicts []Event) string {
	first := conflicts[0]
	span := fmt.Sprintf("%s-%s", first.Start.Format("15:04"), first.End.Format("15:04"))
	if len(conflicts) == 1 {
		return fmt.Sprintf("conflicts with %q (%s)", first.Title, span)
	}
	return fmt.Sprintf("conflicts with %q (%s) and %d other events", first.Title, span, len(conflicts)-1)
}
