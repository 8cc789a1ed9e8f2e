package report

import (
	"bytes"
	"context"
	"errors"
	"testing"
	"time"

	"github.com/cmlabs-hris/checkin-backend-go/internal/domain/attendance"
	"github.com/cmlabs-hris/checkin-backend-go/internal/domain/employee"
	"github.com/cmlabs-hris/checkin-backend-go/internal/domain/report"
	"github.com/cmlabs-hris/checkin-backend-go/internal/pkg/clock"
	"github.com/cmlabs-hris/checkin-backend-go/internal/pkg/export"
	"github.com/cmlabs-hris/checkin-backend-go/internal/pkg/session"
	"github.com/cmlabs-hris/checkin-backend-go/internal/pkg/validator"
	"github.com/cmlabs-hris/checkin-backend-go/internal/repository/memory"
	analyticssvc "github.com/cmlabs-hris/checkin-backend-go/internal/service/analytics"
	attendancesvc "github.com/cmlabs-hris/checkin-backend-go/internal/service/attendance"
	employeesvc "github.com/cmlabs-hris/checkin-backend-go/internal/service/employee"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

var maputo = clock.MustZone(clock.DefaultTimezone)

func local(day, hour, min int) time.Time {
	return time.Date(2025, time.March, day, hour, min, 0, 0, maputo.Location())
}

func newTestService(t *testing.T) (report.ReportService, *memory.AttendanceRepository) {
	t.Helper()
	start := time.Date(2025, time.February, 1, 9, 0, 0, 0, maputo.Location())
	employees := memory.NewEmployeeRepository(
		employee.Employee{ID: "a", Name: "Ana", Active: true, CreatedAt: start},
		employee.Employee{ID: "b", Name: "Bento", Active: true, CreatedAt: start},
	)
	records := memory.NewAttendanceRepository(
		attendance.Record{EmployeeID: "a", EmployeeName: "Ana", CheckIn: local(5, 7, 45).UTC(), CheckInDate: maputo.Date(local(5, 0, 0)), LateMinutes: 15},
		attendance.Record{EmployeeID: "b", EmployeeName: "Bento", CheckIn: local(4, 7, 10).UTC(), CheckInDate: maputo.Date(local(4, 0, 0))},
	)

	clk := clock.Fixed{T: local(5, 14, 0)}
	renderer := export.NewRenderer(nil, maputo)
	tokens := session.NewTokenService(session.Options{Secret: []byte("test-secret")})

	svc := NewReportService(
		attendancesvc.NewAttendanceService(records, employees, tokens, clk, attendancesvc.Config{Zone: maputo}),
		analyticssvc.NewAnalyticsService(employees, records, clk, maputo, analyticssvc.DefaultMidday),
		employeesvc.NewEmployeeService(employees, renderer, clk, 4),
		renderer,
		clk,
		maputo,
	)
	return svc, records
}

func sheetRows(t *testing.T, data []byte) [][]string {
	t.Helper()
	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	t.Cleanup(func() { _ = f.Close() })

	rows, err := f.GetRows(f.GetSheetName(0))
	require.NoError(t, err)
	return rows
}

func containsCell(rows [][]string, value string) bool {
	for _, row := range rows {
		for _, c := range row {
			if c == value {
				return true
			}
		}
	}
	return false
}

// ===== ATTENDANCE EXPORT TESTS =====

func TestExportAttendance_ExcelWeekly(t *testing.T) {
	svc, _ := newTestService(t)

	file, err := svc.ExportAttendance(context.Background(), report.AttendanceExportRequest{Period: "Weekly", Format: "excel"})
	require.NoError(t, err)

	assert.Equal(t, "Attendance_weekly_2025-03-03_to_2025-03-09.xlsx", file.Name)
	assert.Equal(t, export.ContentTypeExcel, file.ContentType)

	rows := sheetRows(t, file.Data)
	assert.True(t, containsCell(rows, "Ana"))
	assert.True(t, containsCell(rows, "Bento"))
}

func TestExportAttendance_DailyPDF(t *testing.T) {
	svc, _ := newTestService(t)

	file, err := svc.ExportAttendance(context.Background(), report.AttendanceExportRequest{Format: "pdf"})
	require.NoError(t, err)

	assert.Equal(t, "Attendance_daily_2025-03-05_to_2025-03-05.pdf", file.Name)
	assert.Equal(t, export.ContentTypePDF, file.ContentType)
	assert.True(t, bytes.HasPrefix(file.Data, []byte("%PDF-")))
}

func TestExportAttendance_InvalidRequest(t *testing.T) {
	svc, _ := newTestService(t)

	_, err := svc.ExportAttendance(context.Background(), report.AttendanceExportRequest{Period: "yearly", Format: "pdf"})
	assert.ErrorIs(t, err, attendance.ErrInvalidPeriod)

	_, err = svc.ExportAttendance(context.Background(), report.AttendanceExportRequest{Period: "weekly", Format: "csv"})
	var errs validator.ValidationErrors
	require.ErrorAs(t, err, &errs)
	assert.Contains(t, errs.ToMap(), "format")
}

func TestExportAttendance_RepositoryError(t *testing.T) {
	svc, records := newTestService(t)
	records.Err = errors.New("connection refused")

	_, err := svc.ExportAttendance(context.Background(), report.AttendanceExportRequest{})
	assert.Error(t, err)
}

// ===== ANALYTICS EXPORT TESTS =====

func TestExportAnalytics(t *testing.T) {
	svc, _ := newTestService(t)

	file, err := svc.ExportAnalytics(context.Background(), report.AnalyticsExportRequest{})
	require.NoError(t, err)
	assert.Equal(t, "Statistics_2025-03.xlsx", file.Name)
	assert.True(t, containsCell(sheetRows(t, file.Data), "Bento"))

	pdf, err := svc.ExportAnalytics(context.Background(), report.AnalyticsExportRequest{Format: "PDF"})
	require.NoError(t, err)
	assert.Equal(t, "Statistics_2025-03.pdf", pdf.Name)
	assert.True(t, bytes.HasPrefix(pdf.Data, []byte("%PDF-")))
}

// ===== ROSTER EXPORT TESTS =====

func TestExportRoster(t *testing.T) {
	svc, _ := newTestService(t)

	file, err := svc.ExportRoster(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Employees_2025-03-05.xlsx", file.Name)

	rows := sheetRows(t, file.Data)
	assert.True(t, containsCell(rows, "Ana"))
	assert.True(t, containsCell(rows, "a"))
}
