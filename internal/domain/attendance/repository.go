package attendance

import (
	"context"

	"github.com/cmlabs-hris/checkin-backend-go/internal/pkg/clock"
)

// AttendanceRepository is append-only storage for check-ins.
type AttendanceRepository interface {
	// Create inserts a record. A second record for the same employee and
	// CheckInDate fails with ErrAlreadyCheckedIn.
	Create(ctx context.Context, record Record) (Record, error)

	// ExistsBetween reports whether the employee has a check-in inside r.
	ExistsBetween(ctx context.Context, employeeID string, r clock.Range) (bool, error)

	// ListBetween returns every check-in inside r, newest first.
	ListBetween(ctx context.Context, r clock.Range) ([]Record, error)
}
