package attendance

import (
	"time"
)

// Record is one check-in. EmployeeName is a snapshot taken at check-in time
// so later renames do not rewrite history.
type Record struct {
	ID           string
	EmployeeID   string
	EmployeeName string
	CheckIn      time.Time
	// CheckInDate is the civil date of CheckIn in the office time zone.
	CheckInDate time.Time
	LateMinutes int
	CreatedAt   time.Time
}

func (r Record) IsLate() bool {
	return r.LateMinutes > 0
}

type Period string

const (
	PeriodDaily   Period = "daily"
	PeriodWeekly  Period = "weekly"
	PeriodMonthly Period = "monthly"
)

func (p Period) Valid() bool {
	switch p {
	case PeriodDaily, PeriodWeekly, PeriodMonthly:
		return true
	}
	return false
}
