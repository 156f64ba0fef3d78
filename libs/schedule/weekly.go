package schedule

import "time"

// Representative hourly probes for weekly pattern detection: mid-morning
// and mid-afternoon hours where recurring availability is most useful.
var weeklyProbeHours = []int{9, 10, 11, 14, 15, 16}

// A probe qualifies as a pattern when it is conflict-free on at least this
// many days of the week.
const weeklyPatternThreshold = 4

// FindWeeklyPattern scans the ISO week (Monday through Sunday) containing
// reference and reports which of the fixed hourly probes are conflict-free
// on at least 4 of the 7 days. Each qualifying probe yields one
// representative slot anchored to the first conflict-free day found.
// Output follows probe order, chronological by hour.
//
// The scan tests each probe against the whole event set; callers with
// large histories should pre-filter to the relevant week.
func FindWeeklyPattern(existing []Event, reference time.Time) []FreeSlot {
	monday := startOfISOWeek(reference)

	var pattern []FreeSlot
	for _, hour := range weeklyProbeHours {
		freeDays := 0
		var representative *Interval
		for d := 0; d < 7; d++ {
			day := monday.AddDate(0, 0, d)
			probe := Interval{
				Start: day.Add(time.Duration(hour) * time.Hour),
				End:   day.Add(time.Duration(hour+1) * time.Hour),
			}
			if overlapsAny(probe, existing, "") {
				continue
			}
			freeDays++
			if representative == nil {
				p := probe
				representative = &p
			}
		}
		if freeDays >= weeklyPatternThreshold && representative != nil {
			pattern = append(pattern, newFreeSlot(*representative))
		}
	}
	return pattern
}

func startOfISOWeek(t time.Time) time.Time {
	d := startOfDay(t)
	// time.Weekday counts Sunday as 0; shift so Monday is the week start.
	offset := (int(d.Weekday()) + 6) % 7
	return d.AddDate(0, 0, -offset)
}
