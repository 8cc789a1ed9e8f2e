package report

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/cmlabs-hris/checkin-backend-go/internal/domain/analytics"
	"github.com/cmlabs-hris/checkin-backend-go/internal/domain/attendance"
	"github.com/cmlabs-hris/checkin-backend-go/internal/domain/employee"
	"github.com/cmlabs-hris/checkin-backend-go/internal/domain/report"
	"github.com/cmlabs-hris/checkin-backend-go/internal/pkg/clock"
	"github.com/cmlabs-hris/checkin-backend-go/internal/pkg/export"
)

type ReportServiceImpl struct {
	attendanceService attendance.AttendanceService
	analyticsService  analytics.AnalyticsService
	employeeService   employee.EmployeeService
	renderer          *export.Renderer
	clock             clock.Clock
	zone              clock.Zone
}

func NewReportService(
	attendanceService attendance.AttendanceService,
	analyticsService analytics.AnalyticsService,
	employeeService employee.EmployeeService,
	renderer *export.Renderer,
	clk clock.Clock,
	zone clock.Zone,
) report.ReportService {
	return &ReportServiceImpl{
		attendanceService: attendanceService,
		analyticsService:  analyticsService,
		employeeService:   employeeService,
		renderer:          renderer,
		clock:             clk,
		zone:              zone,
	}
}

func contentType(f report.Format) string {
	if f == report.FormatPDF {
		return export.ContentTypePDF
	}
	return export.ContentTypeExcel
}

// renderFailed logs the renderer error and hides it from the caller.
func renderFailed(kind string, err error) error {
	slog.Error("failed to render report", "report", kind, "error", err)
	return fmt.Errorf("%w: %s", report.ErrReportGenerationFailed, kind)
}

// ExportAttendance implements report.ReportService.
func (s *ReportServiceImpl) ExportAttendance(ctx context.Context, req report.AttendanceExportRequest) (report.File, error) {
	if err := req.Validate(); err != nil {
		return report.File{}, err
	}

	list, err := s.attendanceService.ListByPeriod(ctx, attendance.PeriodFilter{Period: string(req.Period)})
	if err != nil {
		return report.File{}, err
	}

	now := s.clock.Now()
	var data []byte
	switch req.Format {
	case report.FormatPDF:
		data, err = s.renderer.AttendancePDF(list, now)
	default:
		data, err = s.renderer.AttendanceExcel(list, now)
	}
	if err != nil {
		return report.File{}, renderFailed("attendance", err)
	}

	return report.File{
		Name:        export.AttendanceFilename(string(list.Period), list.From, list.To, string(req.Format)),
		ContentType: contentType(req.Format),
		Data:        data,
	}, nil
}

// ExportAnalytics implements report.ReportService.
func (s *ReportServiceImpl) ExportAnalytics(ctx context.Context, req report.AnalyticsExportRequest) (report.File, error) {
	if err := req.Validate(); err != nil {
		return report.File{}, err
	}

	snapshot, err := s.analyticsService.GetMonthly(ctx)
	if err != nil {
		return report.File{}, err
	}

	now := s.clock.Now()
	var data []byte
	switch req.Format {
	case report.FormatPDF:
		data, err = s.renderer.AnalyticsPDF(snapshot, now)
	default:
		data, err = s.renderer.AnalyticsExcel(snapshot, now)
	}
	if err != nil {
		return report.File{}, renderFailed("analytics", err)
	}

	return report.File{
		Name:        fmt.Sprintf("Statistics_%s.%s", snapshot.Month, req.Format),
		ContentType: contentType(req.Format),
		Data:        data,
	}, nil
}

// ExportRoster implements report.ReportService.
func (s *ReportServiceImpl) ExportRoster(ctx context.Context) (report.File, error) {
	data, err := s.employeeService.ExportRoster(ctx)
	if err != nil {
		return report.File{}, err
	}

	return report.File{
		Name:        fmt.Sprintf("Employees_%s.xlsx", s.zone.In(s.clock.Now()).Format("2006-01-02")),
		ContentType: export.ContentTypeExcel,
		Data:        data,
	}, nil
}
