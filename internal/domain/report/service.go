package report

import "context"

type ReportService interface {
	// ExportAttendance renders the attendance log of the current day, week or month.
	ExportAttendance(ctx context.Context, req AttendanceExportRequest) (File, error)

	// ExportAnalytics renders the month-to-date statistics.
	ExportAnalytics(ctx context.Context, req AnalyticsExportRequest) (File, error)

	// ExportRoster renders the active employees as a workbook.
	ExportRoster(ctx context.Context) (File, error)
}
