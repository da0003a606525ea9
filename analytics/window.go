package analytics

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"jewelai/models"
)

// ErrInvalidDateBound is returned for malformed or inverted date windows.
var ErrInvalidDateBound = errors.New("invalid date bound")

const dateLayout = "2006-01-02"

// Window is an inclusive calendar-date range. A nil bound is open.
type Window struct {
	Start *time.Time
	End   *time.Time
}

// IsEmpty reports whether neither bound is set.
func (w Window) IsEmpty() bool {
	return w.Start == nil && w.End == nil
}

// Contains reports whether day falls inside the window, both ends inclusive.
func (w Window) Contains(day time.Time) bool {
	d := DateOnly(day)
	if w.Start != nil && d.Before(*w.Start) {
		return false
	}
	if w.End != nil && d.After(*w.End) {
		return false
	}
	return true
}

// String renders the window for logs.
func (w Window) String() string {
	format := func(t *time.Time) string {
		if t == nil {
			return "…"
		}
		return t.Format(dateLayout)
	}
	return format(w.Start) + " → " + format(w.End)
}

// ParseWindow parses optional ISO YYYY-MM-DD bounds. Empty strings are absent bounds.
func ParseWindow(start, end string) (Window, error) {
	var w Window
	var err error
	if w.Start, err = parseBound("start_date", start); err != nil {
		return Window{}, err
	}
	if w.End, err = parseBound("end_date", end); err != nil {
		return Window{}, err
	}
	if w.Start != nil && w.End != nil && w.Start.After(*w.End) {
		return Window{}, fmt.Errorf("%w: start_date %s is after end_date %s",
			ErrInvalidDateBound, w.Start.Format(dateLayout), w.End.Format(dateLayout))
	}
	return w, nil
}

func parseBound(name, raw string) (*time.Time, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}
	t, err := time.Parse(dateLayout, raw)
	if err != nil {
		return nil, fmt.Errorf("%w: %s %q is not YYYY-MM-DD", ErrInvalidDateBound, name, raw)
	}
	return &t, nil
}

// DateOnly drops the time of day, keeping the calendar date in UTC.
func DateOnly(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// FilterByDate returns the records inside w. With no bounds the input is
// returned unchanged.
func FilterByDate(records []models.SalesRecord, w Window) []models.SalesRecord {
	if w.IsEmpty() {
		return records
	}
	out := make([]models.SalesRecord, 0, len(records))
	for _, r := range records {
		if w.Contains(r.VoucherDate) {
			out = append(out, r)
		}
	}
	return out
}
