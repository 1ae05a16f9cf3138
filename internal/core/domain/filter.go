package domain

import "time"

// TaskFilter narrows a task listing. Nil fields do not filter.
type TaskFilter struct {
	IsCompleted *bool
	DueDate     *time.Time
}

// DueWindow returns the half-open day [date 00:00, date+1 00:00) in UTC that
// DueDate falls on. Time of day is ignored.
func (f TaskFilter) DueWindow() (from, to time.Time, ok bool) {
	if f.DueDate == nil {
		return time.Time{}, time.Time{}, false
	}

	y, m, d := f.DueDate.UTC().Date()
	from = time.Date(y, m, d, 0, 0, 0, 0, time.UTC)

	return from, from.AddDate(0, 0, 1), true
}
