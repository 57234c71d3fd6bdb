package task

import (
	"fmt"
	"strings"
	"time"
)

// DateRange bounds createdAt by calendar day. A zero bound is open; both
// bounds are inclusive of their whole day.
type DateRange struct {
	Start time.Time
	End   time.Time
}

// ParseDateRange builds a range from ISO dates. Empty strings leave the
// bound open.
func ParseDateRange(start, end string) (DateRange, error) {
	var r DateRange
	if start != "" {
		d, ok := ParseDate(start)
		if !ok {
			return DateRange{}, &DateError{Value: start}
		}
		r.Start = d
	}
	if end != "" {
		d, ok := ParseDate(end)
		if !ok {
			return DateRange{}, &DateError{Value: end}
		}
		r.End = d
	}
	return r, nil
}

// DateError reports an unparseable date.
type DateError struct {
	Value string
}

func (e *DateError) Error() string {
	return fmt.Sprintf("invalid date %q, expected YYYY-MM-DD", e.Value)
}

// IsZero reports whether neither bound is set.
func (r DateRange) IsZero() bool {
	return r.Start.IsZero() && r.End.IsZero()
}

// Contains reports whether ts falls inside the range.
func (r DateRange) Contains(ts time.Time) bool {
	if !r.Start.IsZero() && ts.Before(dayStart(r.Start)) {
		return false
	}
	if !r.End.IsZero() && !ts.Before(dayStart(r.End).AddDate(0, 0, 1)) {
		return false
	}
	return true
}

func dayStart(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// Filter selects tasks. Zero-valued fields match everything.
type Filter struct {
	Status   Status
	Priority Priority
	Search   string
	// Tags must all be present on a task.
	Tags    []string
	Created DateRange
}

// Match reports whether t satisfies the filter.
func (f Filter) Match(t Task) bool {
	if f.Status != "" && t.Status != f.Status {
		return false
	}
	if f.Priority != "" && t.Priority != f.Priority {
		return false
	}
	if f.Search != "" && !matchesText(t, strings.ToLower(f.Search)) {
		return false
	}
	for _, tag := range f.Tags {
		if !t.HasTag(tag) {
			return false
		}
	}
	return f.Created.Contains(t.CreatedAt)
}

// Apply returns the matching tasks, preserving order.
func (f Filter) Apply(tasks []Task) []Task {
	out := make([]Task, 0, len(tasks))
	for _, t := range tasks {
		if f.Match(t) {
			out = append(out, t)
		}
	}
	return out
}

func matchesText(t Task, query string) bool {
	if strings.Contains(strings.ToLower(t.Title), query) ||
		strings.Contains(strings.ToLower(t.Description), query) {
		return true
	}
	for _, tag := range t.Tags {
		if strings.Contains(strings.ToLower(tag), query) {
			return true
		}
	}
	return false
}
