package handlers

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rifat-hossain/calcore/libs/schedule"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

var tracer trace.Tracer = otel.Tracer("schedule-service/handlers")

// ScheduleHandler exposes the scheduling core over JSON. The service keeps
// no event store: every request carries the event list it wants evaluated,
// and the handler returns derived values only.
type ScheduleHandler struct {
	logger *slog.Logger
}

func NewScheduleHandler(logger *slog.Logger) *ScheduleHandler {
	return &ScheduleHandler{logger: logger}
}

type eventPayload struct {
	ID          string `json:"id,omitempty"`
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
	StartTime   string `json:"start_time"`
	EndTime     string `json:"end_time"`
	Color       string `json:"color,omitempty"`
	Category    string `json:"category,omitempty"`
}

type freeSlotPayload struct {
	StartTime       string `json:"start_time"`
	EndTime         string `json:"end_time"`
	DurationMinutes int    `json:"duration_minutes"`
	TimeOfDay       string `json:"time_of_day"`
}

type conflictCheckRequest struct {
	Candidate eventPayload   `json:"candidate"`
	Events    []eventPayload `json:"events"`
	ExcludeID string         `json:"exclude_id,omitempty"`
}

type conflictCheckResponse struct {
	CandidateID       string         `json:"candidate_id"`
	HasConflict       bool           `json:"has_conflict"`
	ConflictingEvents []eventPayload `json:"conflicting_events"`
	Message           string         `json:"message,omitempty"`
	SuggestedTimes    []string       `json:"suggested_times"`
}

type suggestionsResponse struct {
	SuggestedTimes []string `json:"suggested_times"`
}

type freeTimeRequest struct {
	Events             []eventPayload `json:"events"`
	Date               string         `json:"date"`
	MinDurationMinutes int            `json:"min_duration_minutes,omitempty"`
}

type freeTimeResponse struct {
	AllFreeSlots     []freeSlotPayload `json:"all_free_slots"`
	LongestFreeBlock *freeSlotPayload  `json:"longest_free_block,omitempty"`
	NextAvailable    *freeSlotPayload  `json:"next_available_slot,omitempty"`
	WeeklyPattern    []freeSlotPayload `json:"weekly_pattern"`
}

type weeklyPatternRequest struct {
	Events        []eventPayload `json:"events"`
	ReferenceDate string         `json:"reference_date"`
}

type weeklyPatternResponse struct {
	Pattern []freeSlotPayload `json:"pattern"`
}

type layoutRequest struct {
	Events []eventPayload `json:"events"`
}

type layoutItem struct {
	eventPayload
	Column             int     `json:"column"`
	WidthFraction      float64 `json:"width_fraction"`
	LeftOffsetFraction float64 `json:"left_offset_fraction"`
}

type layoutResponse struct {
	Events       []layoutItem `json:"events"`
	TotalColumns int          `json:"total_columns"`
}

// CheckConflicts evaluates a candidate against the supplied events. A
// conflicting candidate is still a 200: conflicts are the expected answer,
// not a failure. Only a candidate the core rejects outright (bad times,
// missing title) produces a 422.
func (h *ScheduleHandler) CheckConflicts(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req conflictCheckRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid json body", http.StatusBadRequest)
		return
	}
	candidate, events, ok := h.parseCandidateAndEvents(w, req.Candidate, req.Events)
	if !ok {
		return
	}

	_, span := tracer.Start(r.Context(), "schedule.check_conflicts")
	span.SetAttributes(attribute.Int("schedule.event_count", len(events)))
	res, err := schedule.DetectConflicts(candidate, events, strings.TrimSpace(req.ExcludeID))
	span.End()

	if err != nil {
		http.Error(w, err.Error(), http.StatusUnprocessableEntity)
		return
	}

	resp := conflictCheckResponse{
		CandidateID:       candidate.ID,
		HasConflict:       res.HasConflict,
		ConflictingEvents: make([]eventPayload, 0, len(res.ConflictingEvents)),
		Message:           res.Message,
		SuggestedTimes:    formatTimes(res.SuggestedTimes),
	}
	for _, e := range res.ConflictingEvents {
		resp.ConflictingEvents = append(resp.ConflictingEvents, toPayload(e))
	}
	h.writeJSON(w, http.StatusOK, resp)
}

// Suggestions returns up to three conflict-free alternative start times
// for the candidate, preserving its duration.
func (h *ScheduleHandler) Suggestions(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req conflictCheckRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid json body", http.StatusBadRequest)
		return
	}
	candidate, events, ok := h.parseCandidateAndEvents(w, req.Candidate, req.Events)
	if !ok {
		return
	}

	times, err := schedule.SuggestAlternatives(candidate, events, strings.TrimSpace(req.ExcludeID))
	if err != nil {
		http.Error(w, err.Error(), http.StatusUnprocessableEntity)
		return
	}
	h.writeJSON(w, http.StatusOK, suggestionsResponse{SuggestedTimes: formatTimes(times)})
}

// FreeTime reports the gaps within business hours of one day, plus the
// weekly availability pattern for the containing week.
func (h *ScheduleHandler) FreeTime(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req freeTimeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid json body", http.StatusBadRequest)
		return
	}
	day, err := parseDate(req.Date)
	if err != nil {
		http.Error(w, "invalid date (expected YYYY-MM-DD)", http.StatusBadRequest)
		return
	}
	events, ok := h.parseEvents(w, req.Events)
	if !ok {
		return
	}

	_, span := tracer.Start(r.Context(), "schedule.free_time")
	span.SetAttributes(attribute.Int("schedule.event_count", len(events)))
	report, err := schedule.FindFreeTime(events, day, time.Duration(req.MinDurationMinutes)*time.Minute)
	span.End()

	if err != nil {
		http.Error(w, err.Error(), http.StatusUnprocessableEntity)
		return
	}

	resp := freeTimeResponse{
		AllFreeSlots:  slotPayloads(report.AllFreeSlots),
		WeeklyPattern: slotPayloads(report.WeeklyPattern),
	}
	if report.LongestFreeBlock != nil {
		p := slotPayload(*report.LongestFreeBlock)
		resp.LongestFreeBlock = &p
	}
	if report.NextAvailable != nil {
		p := slotPayload(*report.NextAvailable)
		resp.NextAvailable = &p
	}
	h.writeJSON(w, http.StatusOK, resp)
}

// WeeklyPattern reports which of the fixed hourly probes are conflict-free
// on at least 4 of the 7 days in the reference week.
func (h *ScheduleHandler) WeeklyPattern(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req weeklyPatternRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid json body", http.StatusBadRequest)
		return
	}
	reference, err := parseDate(req.ReferenceDate)
	if err != nil {
		http.Error(w, "invalid reference_date (expected YYYY-MM-DD)", http.StatusBadRequest)
		return
	}
	events, ok := h.parseEvents(w, req.Events)
	if !ok {
		return
	}

	pattern := schedule.FindWeeklyPattern(events, reference)
	h.writeJSON(w, http.StatusOK, weeklyPatternResponse{Pattern: slotPayloads(pattern)})
}

// Layout computes side-by-side rendering geometry for one day's events.
func (h *ScheduleHandler) Layout(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req layoutRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid json body", http.StatusBadRequest)
		return
	}
	events, ok := h.parseEvents(w, req.Events)
	if !ok {
		return
	}

	layout, err := schedule.LayoutDay(events)
	if err != nil {
		http.Error(w, err.Error(), http.StatusUnprocessableEntity)
		return
	}

	resp := layoutResponse{Events: make([]layoutItem, 0, len(layout))}
	for _, le := range layout {
		resp.Events = append(resp.Events, layoutItem{
			eventPayload:       toPayload(le.Event),
			Column:             le.Column,
			WidthFraction:      le.WidthFraction,
			LeftOffsetFraction: le.LeftOffsetFraction,
		})
	}
	if len(layout) > 0 {
		// Uniform widths: the column count is the inverse of any width.
		resp.TotalColumns = int(1/layout[0].WidthFraction + 0.5)
	}
	h.writeJSON(w, http.StatusOK, resp)
}

func (h *ScheduleHandler) parseCandidateAndEvents(w http.ResponseWriter, rawCandidate eventPayload, rawEvents []eventPayload) (schedule.Event, []schedule.Event, bool) {
	candidate, err := fromPayload(rawCandidate)
	if err != nil {
		http.Error(w, "candidate: "+err.Error(), http.StatusBadRequest)
		return schedule.Event{}, nil, false
	}
	if candidate.ID == "" {
		// Give new candidates a stable id so the response can echo it and
		// clients can use exclude_id on a retry.
		candidate.ID = uuid.NewString()
	}
	events, ok := h.parseEvents(w, rawEvents)
	if !ok {
		return schedule.Event{}, nil, false
	}
	return candidate, events, true
}

func (h *ScheduleHandler) parseEvents(w http.ResponseWriter, raw []eventPayload) ([]schedule.Event, bool) {
	events := make([]schedule.Event, 0, len(raw))
	for i, p := range raw {
		e, err := fromPayload(p)
		if err != nil {
			http.Error(w, fmt.Sprintf("events[%d]: %s", i, err), http.StatusBadRequest)
			return nil, false
		}
		events = append(events, e)
	}
	return events, true
}

func (h *ScheduleHandler) writeJSON(w http.ResponseWriter, status int, v any) {
	body, err := json.Marshal(v)
	if err != nil {
		h.logger.Error("response encode failed", "err", err)
		http.Error(w, "failed to build response", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(body)
}

func fromPayload(p eventPayload) (schedule.Event, error) {
	start, err := time.Parse(time.RFC3339, p.StartTime)
	if err != nil {
		return schedule.Event{}, fmt.Errorf("invalid start_time")
	}
	end, err := time.Parse(time.RFC3339, p.EndTime)
	if err != nil {
		return schedule.Event{}, fmt.Errorf("invalid end_time")
	}
	return schedule.Event{
		ID:          strings.TrimSpace(p.ID),
		Title:       strings.TrimSpace(p.Title),
		Description: p.Description,
		Start:       start,
		End:         end,
		Color:       p.Color,
		Category:    p.Category,
	}, nil
}

func toPayload(e schedule.Event) eventPayload {
	return eventPayload{
		ID:          e.ID,
		Title:       e.Title,
		Description: e.Description,
		StartTime:   e.Start.Format(time.RFC3339),
		EndTime:     e.End.Format(time.RFC3339),
		Color:       e.Color,
		Category:    e.Category,
	}
}

func slotPayload(s schedule.FreeSlot) freeSlotPayload {
	return freeSlotPayload{
		StartTime:       s.Start.Format(time.RFC3339),
		EndTime:         s.End.Format(time.RFC3339),
		DurationMinutes: s.DurationMinutes,
		TimeOfDay:       string(s.TimeOfDay),
	}
}

func slotPayloads(slots []schedule.FreeSlot) []freeSlotPayload {
	out := make([]freeSlotPayload, 0, len(slots))
	for _, s := range slots {
		out = append(out, slotPayload(s))
	}
	return out
}

func formatTimes(times []time.Time) []string {
	out := make([]string, 0, len(times))
	for _, t := range times {
		out = append(out, t.Format(time.RFC3339))
	}
	return out
}

func parseDate(raw string) (time.Time, error) {
	return time.Parse("2006-01-02", strings.TrimSpace(raw))
}
