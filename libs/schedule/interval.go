package schedule

import "time"

// Business hours bound every free-time and suggestion scan. All times are
// assumed to already be in one consistent local frame; the core does no
// timezone conversion.
const (
	BusinessStartHour = 8
	BusinessEndHour   = 18
)

// Interval is a half-open time span [Start, End).
type Interval struct {
	Start time.Time
	End   time.Time
}

// Overlaps reports whether two half-open intervals share any instant.
// [a,b) overlaps [c,d) iff a < d && c < b, so back-to-back intervals that
// touch at a boundary do not overlap.
func (iv Interval) Overlaps(other Interval) bool {
	return iv.Start.Before(other.End) && other.Start.Before(iv.End)
}

// Minutes returns the interval's duration in minutes. May be fractional
// when sub-minute precision is supplied; callers conventionally truncate.
func (iv Interval) Minutes() float64 {
	return iv.End.Sub(iv.Start).Minutes()
}

// ClampToDay clips the interval to [00:00, 24:00) of the given calendar
// day. A clamped interval may come out empty (Start >= End) when it lies
// entirely outside the day.
func (iv Interval) ClampToDay(day time.Time) Interval {
	dayStart := startOfDay(day)
	dayEnd := dayStart.AddDate(0, 0, 1)
	out := iv
	if out.Start.Before(dayStart) {
		out.Start = dayStart
	}
	if out.End.After(dayEnd) {
		out.End = dayEnd
	}
	return out
}

// BusinessHours returns the fixed 08:00-18:00 window of the given day.
func BusinessHours(day time.Time) Interval {
	d := startOfDay(day)
	return Interval{
		Start: d.Add(BusinessStartHour * time.Hour),
		End:   d.Add(BusinessEndHour * time.Hour),
	}
}

func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

func sameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

func overlapsAny(probe Interval, events []Event, excludeID string) bool {
	for _, e := range events {
		if excludeID != "" && e.ID == excludeID {
			continue
		}
		if probe.Overlaps(e.Interval()) {
			return true
		}
	}
	return false
}
