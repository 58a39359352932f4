// Package period turns report date parameters into whole-day windows.
package period

import (
	"strings"
	"time"

	"github.com/georgemunganga/supermart-backend/internal/apperr"
	"github.com/georgemunganga/supermart-backend/internal/httpx"
)

// Window is the inclusive range [Start, End].
type Window struct {
	Start time.Time
	End   time.Time
}

// StartOfDay returns 00:00:00.000 of t's calendar day in t's location.
func StartOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// EndOfDay returns 23:59:59.999 of t's calendar day in t's location.
func EndOfDay(t time.Time) time.Time {
	return StartOfDay(t).AddDate(0, 0, 1).Add(-time.Millisecond)
}

// Day is the window covering t's calendar day.
func Day(t time.Time) Window {
	return Window{Start: StartOfDay(t), End: EndOfDay(t)}
}

// MonthStart returns midnight on the first of t's month.
func MonthStart(t time.Time) time.Time {
	y, m, _ := t.Date()
	return time.Date(y, m, 1, 0, 0, 0, 0, t.Location())
}

// Contains reports whether t falls inside w.
func (w Window) Contains(t time.Time) bool {
	return !t.Before(w.Start) && !t.After(w.End)
}

// Parse builds a window from optional startDate and endDate values. Missing
// values fall back to defStart and defEnd. Both ends are widened to whole
// days in loc.
func Parse(startRaw, endRaw string, loc *time.Location, defStart, defEnd time.Time) (Window, error) {
	start, err := bound("startDate", startRaw, loc, defStart)
	if err != nil {
		return Window{}, err
	}
	end, err := bound("endDate", endRaw, loc, defEnd)
	if err != nil {
		return Window{}, err
	}
	w := Window{Start: StartOfDay(start), End: EndOfDay(end)}
	if w.Start.After(w.End) {
		return Window{}, apperr.Validation("startDate must not be after endDate")
	}
	return w, nil
}

// ParseBound parses one optional date parameter. It returns nil when raw is
// blank.
func ParseBound(name, raw string, loc *time.Location) (*time.Time, error) {
	if strings.TrimSpace(raw) == "" {
		return nil, nil
	}
	t, err := bound(name, raw, loc, time.Time{})
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func bound(name, raw string, loc *time.Location, def time.Time) (time.Time, error) {
	if strings.TrimSpace(raw) == "" {
		return def.In(loc), nil
	}
	t, err := httpx.ParseDate(raw, loc)
	if err != nil {
		return time.Time{}, apperr.Validation("%s: %v", name, err)
	}
	return t, nil
}
