package attendance

import (
	"errors"
	"fmt"
)

// Attendance domain errors
var (
	ErrInvalidPIN       = errors.New("incorrect PIN")
	ErrAlreadyCheckedIn = errors.New("already checked in today")
	ErrInvalidPeriod    = errors.New("period must be one of daily, weekly, monthly")
)

// AlreadyCheckedInError names who tried to check in twice.
type AlreadyCheckedInError struct {
	EmployeeName string
}

func (e *AlreadyCheckedInError) Error() string {
	return fmt.Sprintf("%s has already checked in today", e.EmployeeName)
}

func (e *AlreadyCheckedInError) Unwrap() error { return ErrAlreadyCheckedIn }
