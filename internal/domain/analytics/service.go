package analytics

import "context"

// AnalyticsService defines the interface for attendance analytics
type AnalyticsService interface {
	// GetMonthly returns the month-to-date snapshot as of now
	GetMonthly(ctx context.Context) (*AnalyticsResponse, error)
}

// Notifier delivers the list of employees who have not checked in today
type Notifier interface {
	NotifyAbsentees(ctx context.Context, day string, absentees []Absentee) error
}
