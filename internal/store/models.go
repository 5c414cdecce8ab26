package store

import "time"

// Entry is one day's (or one session's) work record.
// Date is the business date in YYYY-MM-DD form, distinct from CreatedAt.
type Entry struct {
	ID              int64
	Date            string
	TotalEarnings   float64
	KmDriven        float64
	HoursWorked     float64 // 0 means "not tracked"
	AdditionalCosts float64
	CreatedAt       time.Time
}

type Setting struct {
	Key   string
	Value string
}

// EntryFilter is used to filter entries in queries.
// From/To are inclusive YYYY-MM-DD bounds.
type EntryFilter struct {
	From  *string
	To    *string
	Limit int
}
