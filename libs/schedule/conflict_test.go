package schedule

import (
	"strings"
	"testing"
)

func event(id, title string, startH, startM, endH, endM int) Event {
	return Event{
		ID:    id,
		Title: title,
		Start: at(startH, startM),
		End:   at(endH, endM),
	}
}

func TestDetectConflicts_SingleConflict(t *testing.T) {
	standup := event("e1", "Standup", 9, 0, 10, 0)
	clientCall := event("e2", "Client Call", 9, 30, 10, 30)

	res, err := DetectConflicts(clientCall, []Event{standup}, "")
	if err != nil {
		t.Fatalf("DetectConflicts failed: %v", err)
	}
	if !res.HasConflict {
		t.Fatal("expected a conflict")
	}
	if len(res.ConflictingEvents) != 1 || res.ConflictingEvents[0].ID != "e1" {
		t.Fatalf("expected exactly Standup to conflict, got %+v", res.ConflictingEvents)
	}
	if !strings.Contains(res.Message, "Standup") || !strings.Contains(res.Message, "09:00-10:00") {
		t.Fatalf("message should name the event and its time range, got %q", res.Message)
	}
	if len(res.SuggestedTimes) == 0 {
		t.Fatal("expected suggested alternative times")
	}

	duration := clientCall.End.Sub(clientCall.Start)
	sawAfterStandup := false
	for _, s := range res.SuggestedTimes {
		probe := Event{ID: "probe", Title: "probe", Start: s, End: s.Add(duration)}
		check, err := DetectConflicts(probe, []Event{standup}, "")
		if err != nil {
			t.Fatalf("probe check failed: %v", err)
		}
		if check.HasConflict {
			t.Fatalf("suggested time %s still conflicts", s.Format("15:04"))
		}
		if !s.Before(at(10, 0)) {
			sawAfterStandup = true
		}
	}
	if !sawAfterStandup {
		t.Fatalf("expected at least one suggestion at or after 10:00, got %v", res.SuggestedTimes)
	}
}

func TestDetectConflicts_NoConflict(t *testing.T) {
	existing := []Event{event("e1", "Standup", 9, 0, 10, 0)}
	candidate := event("e2", "Review", 10, 0, 11, 0)

	res, err := DetectConflicts(candidate, existing, "")
	if err != nil {
		t.Fatalf("DetectConflicts failed: %v", err)
	}
	if res.HasConflict {
		t.Fatal("back-to-back events must not conflict")
	}
	if len(res.SuggestedTimes) != 0 {
		t.Fatalf("no suggestions expected without a conflict, got %v", res.SuggestedTimes)
	}
}

func TestDetectConflicts_ExcludesSelf(t *testing.T) {
	e := event("e1", "Standup", 9, 0, 10, 0)
	res, err := DetectConflicts(e, []Event{e}, "e1")
	if err != nil {
		t.Fatalf("DetectConflicts failed: %v", err)
	}
	if res.HasConflict {
		t.Fatal("an event must not conflict with itself when excluded by id")
	}
}

func TestDetectConflicts_MultipleSortedChronologically(t *testing.T) {
	existing := []Event{
		event("late", "Retro", 11, 0, 12, 0),
		event("early", "Standup", 9, 0, 10, 0),
		event("mid", "Planning", 10, 0, 11, 0),
	}
	candidate := event("c", "Offsite", 9, 30, 11, 30)

	res, err := DetectConflicts(candidate, existing, "")
	if err != nil {
		t.Fatalf("DetectConflicts failed: %v", err)
	}
	if len(res.ConflictingEvents) != 3 {
		t.Fatalf("expected 3 conflicts, got %d", len(res.ConflictingEvents))
	}
	for i, want := range []string{"early", "mid", "late"} {
		if res.ConflictingEvents[i].ID != want {
			t.Fatalf("conflict %d: expected %s, got %s", i, want, res.ConflictingEvents[i].ID)
		}
	}
	if !strings.Contains(res.Message, "Standup") || !strings.Contains(res.Message, "2 other events") {
		t.Fatalf("message should name the earliest conflict and the remainder count, got %q", res.Message)
	}
}

func TestDetectConflicts_InvalidCandidate(t *testing.T) {
	zeroDuration := event("bad", "Bad", 9, 0, 9, 0)
	if _, err := DetectConflicts(zeroDuration, nil, ""); err == nil {
		t.Fatal("expected validation error for zero-duration candidate")
	}
	untitled := Event{ID: "x", Start: at(9, 0), End: at(10, 0)}
	if _, err := DetectConflicts(untitled, nil, ""); err == nil {
		t.Fatal("expected validation error for missing title")
	}
}
