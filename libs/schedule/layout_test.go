package schedule

import (
	"math"
	"testing"
)

func TestLayoutDay_ThreeMutualOverlaps(t *testing.T) {
	events := []Event{
		event("e1", "A", 10, 0, 11, 0),
		event("e2", "B", 10, 30, 11, 30),
		event("e3", "C", 10, 45, 11, 45),
	}
	layout, err := LayoutDay(events)
	if err != nil {
		t.Fatalf("LayoutDay failed: %v", err)
	}
	if len(layout) != 3 {
		t.Fatalf("expected 3 layout events, got %d", len(layout))
	}

	seen := map[int]bool{}
	for _, le := range layout {
		if seen[le.Column] {
			t.Fatalf("column %d assigned twice", le.Column)
		}
		seen[le.Column] = true
		if math.Abs(le.WidthFraction-1.0/3.0) > 1e-9 {
			t.Fatalf("expected width 1/3, got %v", le.WidthFraction)
		}
		wantOffset := float64(le.Column) / 3.0
		if math.Abs(le.LeftOffsetFraction-wantOffset) > 1e-9 {
			t.Fatalf("expected offset %v for column %d, got %v", wantOffset, le.Column, le.LeftOffsetFraction)
		}
	}
}

func TestLayoutDay_BackToBackShareColumn(t *testing.T) {
	events := []Event{
		event("e1", "A", 9, 0, 10, 0),
		event("e2", "B", 10, 0, 11, 0),
	}
	layout, err := LayoutDay(events)
	if err != nil {
		t.Fatalf("LayoutDay failed: %v", err)
	}
	if layout[0].Column != 0 || layout[1].Column != 0 {
		t.Fatalf("back-to-back events should share column 0, got %d and %d", layout[0].Column, layout[1].Column)
	}
	if layout[0].WidthFraction != 1 {
		t.Fatalf("single-column day should use the full width, got %v", layout[0].WidthFraction)
	}
}

func TestLayoutDay_NoColumnDoubleBooks(t *testing.T) {
	events := []Event{
		event("e1", "A", 9, 0, 12, 0),
		event("e2", "B", 9, 30, 10, 0),
		event("e3", "C", 10, 0, 10, 30),
		event("e4", "D", 11, 0, 13, 0),
		event("e5", "E", 12, 0, 14, 0),
	}
	layout, err := LayoutDay(events)
	if err != nil {
		t.Fatalf("LayoutDay failed: %v", err)
	}
	if len(layout) != len(events) {
		t.Fatalf("every event must be placed exactly once, got %d of %d", len(layout), len(events))
	}
	for i := 0; i < len(layout); i++ {
		for j := i + 1; j < len(layout); j++ {
			if layout[i].Column != layout[j].Column {
				continue
			}
			if layout[i].Interval().Overlaps(layout[j].Interval()) {
				t.Fatalf("events %s and %s overlap in column %d", layout[i].ID, layout[j].ID, layout[i].Column)
			}
		}
	}
}

func TestLayoutDay_StableForEqualStarts(t *testing.T) {
	events := []Event{
		event("first", "A", 9, 0, 10, 0),
		event("second", "B", 9, 0, 10, 0),
	}
	layout, err := LayoutDay(events)
	if err != nil {
		t.Fatalf("LayoutDay failed: %v", err)
	}
	if layout[0].ID != "first" || layout[1].ID != "second" {
		t.Fatalf("equal starts must keep source order, got %s then %s", layout[0].ID, layout[1].ID)
	}
	if layout[0].Column != 0 || layout[1].Column != 1 {
		t.Fatalf("expected columns 0 and 1, got %d and %d", layout[0].Column, layout[1].Column)
	}
}

func TestLayoutDay_Empty(t *testing.T) {
	layout, err := LayoutDay(nil)
	if err != nil {
		t.Fatalf("LayoutDay failed: %v", err)
	}
	if len(layout) != 0 {
		t.Fatalf("expected empty layout, got %d", len(layout))
	}
}

func TestLayoutDay_InvalidEvent(t *testing.T) {
	bad := Event{ID: "bad", Title: "Bad", Start: at(10, 0), End: at(10, 0)}
	if _, err := LayoutDay([]Event{bad}); err == nil {
		t.Fatal("expected validation error for zero-duration event")
	}
}
