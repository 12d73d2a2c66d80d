package activity

import "time"

// Filter narrows List and Count to entries matching every present field.
// Nil fields impose no constraint; presence is tagged by the pointer, never by
// a sentinel value. Unrecognized action or status values are legal filters
// that match nothing.
type Filter struct {
	Action   *Action
	Status   *Status
	UserID   *int64
	DateFrom *time.Time
	DateTo   *time.Time
}

// DayStart returns the inclusive lower bound for a calendar-day filter.
func DayStart(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// DayEnd returns the inclusive upper bound for a calendar-day filter
// (23:59:59 of that day).
func DayEnd(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 23, 59, 59, 0, t.Location())
}

// Matches evaluates the filter predicate against one entry. The in-memory
// store uses it directly; the Postgres store compiles the same predicate to a
// WHERE clause.
func (f Filter) Matches(e Entry) bool {
	if f.Action != nil && e.Action != *f.Action {
		return false
	}
	if f.Status != nil && e.Status != *f.Status {
		return false
	}
	if f.UserID != nil && (e.UserID == nil || *e.UserID != *f.UserID) {
		return false
	}
	if f.DateFrom != nil && e.CreatedAt.Before(*f.DateFrom) {
		return false
	}
	if f.DateTo != nil && e.CreatedAt.After(*f.DateTo) {
		return false
	}
	return true
}
