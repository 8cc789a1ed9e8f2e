package attendance

import (
	"context"
)

// AttendanceService defines business logic for attendance operations
type AttendanceService interface {
	// IssueToken starts a check-in session for the public page
	IssueToken(ctx context.Context) (TokenResponse, error)

	// CheckIn validates location, session, employee and PIN, then records the check-in
	CheckIn(ctx context.Context, req CheckInRequest) (CheckInResponse, error)

	// Today lists today's check-ins, newest first
	Today(ctx context.Context) (ListAttendanceResponse, error)

	// ListByPeriod lists check-ins of the current day, week or month
	ListByPeriod(ctx context.Context, filter PeriodFilter) (ListAttendanceResponse, error)
}
