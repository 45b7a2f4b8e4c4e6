package domain

import "time"

// WindowKind identifies which grammar form produced the window.
type WindowKind string

const (
	WindowKindToday  WindowKind = "today"
	WindowKindSingle WindowKind = "single_day"
	WindowKindRange  WindowKind = "range"
	WindowKindMonth  WindowKind = "month"
)

// Window is a closed calendar-date interval. Start and End are midnights in
// the report timezone; Start <= End always holds for a parsed window.
type Window struct {
	Start time.Time  `json:"start"`
	End   time.Time  `json:"end"`
	Kind  WindowKind `json:"kind"`
	Label string     `json:"label"`
}

// NewDay builds a single-day window.
func NewDay(day time.Time, kind WindowKind) Window {
	day = Midnight(day)
	return Window{
		Start: day,
		End:   day,
		Kind:  kind,
		Label: day.Format("02.01.2006"),
	}
}

// NewRange builds an inclusive range window. Callers must validate the order.
func NewRange(start, end time.Time, kind WindowKind) Window {
	start = Midnight(start)
	end = Midnight(end)
	return Window{
		Start: start,
		End:   end,
		Kind:  kind,
		Label: start.Format("02.01") + "–" + end.Format("02.01.2006"),
	}
}

// Contains reports whether the instant, converted to the window's calendar,
// falls on a date within [Start, End].
func (w Window) Contains(t time.Time) bool {
	day := Midnight(t.In(w.Start.Location()))
	return !day.Before(w.Start) && !day.After(w.End)
}

// SingleDay reports whether the window covers exactly one calendar date.
func (w Window) SingleDay() bool {
	return w.Start.Equal(w.End)
}

// Midnight truncates an instant to the start of its calendar date, keeping
// the location.
func Midnight(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
