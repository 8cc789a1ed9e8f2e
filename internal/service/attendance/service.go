package attendance

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/cmlabs-hris/checkin-backend-go/internal/domain/attendance"
	"github.com/cmlabs-hris/checkin-backend-go/internal/domain/employee"
	"github.com/cmlabs-hris/checkin-backend-go/internal/pkg/clock"
	"github.com/cmlabs-hris/checkin-backend-go/internal/pkg/geo"
	"github.com/cmlabs-hris/checkin-backend-go/internal/pkg/session"
	"golang.org/x/crypto/bcrypt"
)

// DefaultDeadline is the latest on-time check-in, local time.
var DefaultDeadline = clock.TimeOfDay{Hour: 7, Minute: 30}

type Config struct {
	Zone     clock.Zone
	Deadline clock.TimeOfDay
	Fence    geo.Fence
	// OnCheckIn, when set, receives every recorded check-in. It must not block.
	OnCheckIn func(attendance.AttendanceResponse)
}

type AttendanceServiceImpl struct {
	attendanceRepo attendance.AttendanceRepository
	employeeRepo   employee.EmployeeRepository
	tokens         *session.TokenService
	clock          clock.Clock
	cfg            Config
}

func NewAttendanceService(
	attendanceRepo attendance.AttendanceRepository,
	employeeRepo employee.EmployeeRepository,
	tokens *session.TokenService,
	clk clock.Clock,
	cfg Config,
) attendance.AttendanceService {
	if cfg.Deadline == (clock.TimeOfDay{}) {
		cfg.Deadline = DefaultDeadline
	}
	return &AttendanceServiceImpl{
		attendanceRepo: attendanceRepo,
		employeeRepo:   employeeRepo,
		tokens:         tokens,
		clock:          clk,
		cfg:            cfg,
	}
}

// LateMinutes is zero on weekends and up to the deadline, otherwise at least one.
func LateMinutes(z clock.Zone, deadline clock.TimeOfDay, now time.Time) int {
	if z.IsWeekend(now) {
		return 0
	}
	limit := deadline.On(z, now)
	if !now.After(limit) {
		return 0
	}
	return max(1, int(now.Sub(limit)/time.Minute))
}

func (s *AttendanceServiceImpl) toResponse(rec attendance.Record) attendance.AttendanceResponse {
	local := s.cfg.Zone.In(rec.CheckIn)
	status := attendance.StatusOnTime
	if rec.IsLate() {
		status = attendance.StatusLate
	}
	return attendance.AttendanceResponse{
		ID:           rec.ID,
		EmployeeID:   rec.EmployeeID,
		EmployeeName: rec.EmployeeName,
		CheckIn:      local.Format(time.RFC3339),
		Date:         rec.CheckInDate.Format("2006-01-02"),
		Time:         local.Format("15:04"),
		LateMinutes:  rec.LateMinutes,
		Status:       status,
	}
}

// IssueToken implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) IssueToken(ctx context.Context) (attendance.TokenResponse, error) {
	now := s.clock.Now()
	return attendance.TokenResponse{
		Token:     s.tokens.Issue(now),
		ExpiresAt: now.Add(s.tokens.Window()).UTC().Format(time.RFC3339),
	}, nil
}

// CheckIn implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) CheckIn(ctx context.Context, req attendance.CheckInRequest) (attendance.CheckInResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.CheckInResponse{}, err
	}
	now := s.clock.Now()

	if err := s.cfg.Fence.Validate(geo.NewPoint(req.Latitude, req.Longitude)); err != nil {
		slog.Warn("check-in rejected by geofence", "employee_id", req.EmployeeID, "error", err)
		return attendance.CheckInResponse{}, err
	}

	if err := s.tokens.Verify(req.Token, now); err != nil {
		return attendance.CheckInResponse{}, err
	}

	emp, err := s.employeeRepo.GetByID(ctx, req.EmployeeID)
	if err != nil {
		if errors.Is(err, employee.ErrEmployeeNotFound) {
			return attendance.CheckInResponse{}, err
		}
		return attendance.CheckInResponse{}, fmt.Errorf("failed to get employee: %w", err)
	}
	if !emp.Active {
		return attendance.CheckInResponse{}, employee.ErrEmployeeNotFound
	}

	if bcrypt.CompareHashAndPassword([]byte(emp.PINHash), []byte(req.PIN)) != nil {
		slog.Warn("check-in rejected: incorrect PIN", "employee_id", emp.ID)
		return attendance.CheckInResponse{}, attendance.ErrInvalidPIN
	}

	exists, err := s.attendanceRepo.ExistsBetween(ctx, emp.ID, s.cfg.Zone.DayRange(now))
	if err != nil {
		return attendance.CheckInResponse{}, fmt.Errorf("failed to check today's attendance: %w", err)
	}
	if exists {
		return attendance.CheckInResponse{}, &attendance.AlreadyCheckedInError{EmployeeName: emp.Name}
	}

	lateMinutes := LateMinutes(s.cfg.Zone, s.cfg.Deadline, now)

	created, err := s.attendanceRepo.Create(ctx, attendance.Record{
		EmployeeID:   emp.ID,
		EmployeeName: emp.Name,
		CheckIn:      now.UTC(),
		CheckInDate:  s.cfg.Zone.Date(now),
		LateMinutes:  lateMinutes,
	})
	if err != nil {
		if errors.Is(err, attendance.ErrAlreadyCheckedIn) {
			return attendance.CheckInResponse{}, &attendance.AlreadyCheckedInError{EmployeeName: emp.Name}
		}
		return attendance.CheckInResponse{}, fmt.Errorf("failed to record attendance: %w", err)
	}

	slog.Info("check-in recorded", "employee_id", emp.ID, "attendance_id", created.ID, "late_minutes", lateMinutes)
	if s.cfg.OnCheckIn != nil {
		s.cfg.OnCheckIn(s.toResponse(created))
	}

	message := "Checked in. On time."
	if lateMinutes > 0 {
		message = fmt.Sprintf("Checked in. %d min late.", lateMinutes)
	}

	local := s.cfg.Zone.In(now)
	return attendance.CheckInResponse{
		Message:      message,
		EmployeeName: emp.Name,
		LateMinutes:  lateMinutes,
		CheckIn:      local.Format(time.RFC3339),
		Date:         local.Format("2006-01-02"),
	}, nil
}

// Today implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) Today(ctx context.Context) (attendance.ListAttendanceResponse, error) {
	return s.list(ctx, attendance.PeriodDaily)
}

// ListByPeriod implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) ListByPeriod(ctx context.Context, filter attendance.PeriodFilter) (attendance.ListAttendanceResponse, error) {
	if err := filter.Validate(); err != nil {
		return attendance.ListAttendanceResponse{}, err
	}
	return s.list(ctx, attendance.Period(filter.Period))
}

// PeriodRange returns the civil window of period that contains now.
func PeriodRange(z clock.Zone, period attendance.Period, now time.Time) (clock.Range, error) {
	switch period {
	case attendance.PeriodDaily:
		return z.DayRange(now), nil
	case attendance.PeriodWeekly:
		return z.WeekRange(now), nil
	case attendance.PeriodMonthly:
		return z.MonthRange(now), nil
	}
	return clock.Range{}, attendance.ErrInvalidPeriod
}

func (s *AttendanceServiceImpl) list(ctx context.Context, period attendance.Period) (attendance.ListAttendanceResponse, error) {
	rng, err := PeriodRange(s.cfg.Zone, period, s.clock.Now())
	if err != nil {
		return attendance.ListAttendanceResponse{}, err
	}

	records, err := s.attendanceRepo.ListBetween(ctx, rng)
	if err != nil {
		return attendance.ListAttendanceResponse{}, fmt.Errorf("failed to list attendances: %w", err)
	}

	result := attendance.ListAttendanceResponse{
		Period:      string(period),
		From:        s.cfg.Zone.In(rng.Start).Format("2006-01-02"),
		To:          s.cfg.Zone.In(rng.End).Format("2006-01-02"),
		Total:       len(records),
		Attendances: make([]attendance.AttendanceResponse, 0, len(records)),
	}
	for _, rec := range records {
		if rec.IsLate() {
			result.LateCount++
		}
		result.Attendances = append(result.Attendances, s.toResponse(rec))
	}
	return result, nil
}
