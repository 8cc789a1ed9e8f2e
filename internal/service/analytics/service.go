package analytics

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/cmlabs-hris/checkin-backend-go/internal/domain/analytics"
	"github.com/cmlabs-hris/checkin-backend-go/internal/domain/attendance"
	"github.com/cmlabs-hris/checkin-backend-go/internal/domain/employee"
	"github.com/cmlabs-hris/checkin-backend-go/internal/pkg/clock"
	"golang.org/x/sync/errgroup"
)

type AnalyticsServiceImpl struct {
	employeeRepo   employee.EmployeeRepository
	attendanceRepo attendance.AttendanceRepository
	clock          clock.Clock
	zone           clock.Zone
	midday         clock.TimeOfDay
}

func NewAnalyticsService(
	employeeRepo employee.EmployeeRepository,
	attendanceRepo attendance.AttendanceRepository,
	clk clock.Clock,
	zone clock.Zone,
	midday clock.TimeOfDay,
) *AnalyticsServiceImpl {
	return &AnalyticsServiceImpl{
		employeeRepo:   employeeRepo,
		attendanceRepo: attendanceRepo,
		clock:          clk,
		zone:           zone,
		midday:         midday,
	}
}

// GetMonthly loads the active roster and this month's records in parallel and computes the snapshot.
func (s *AnalyticsServiceImpl) GetMonthly(ctx context.Context) (*analytics.AnalyticsResponse, error) {
	now := s.clock.Now()

	var (
		employees []employee.Employee
		records   []attendance.Record
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		employees, err = s.employeeRepo.ListActive(gctx)
		if err != nil {
			return fmt.Errorf("failed to list employees: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		records, err = s.attendanceRepo.ListBetween(gctx, s.zone.MonthRange(now))
		if err != nil {
			return fmt.Errorf("failed to list attendances: %w", err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	result := Compute(Input{
		Now:       now,
		Zone:      s.zone,
		Midday:    s.midday,
		Employees: employees,
		Records:   records,
	})
	return &result, nil
}

// AbsenteeJob posts the list of employees without a check-in once per civil weekday,
// on its first run after midday.
type AbsenteeJob struct {
	service  analytics.AnalyticsService
	notifier analytics.Notifier
	clock    clock.Clock
	zone     clock.Zone

	mu           sync.Mutex
	lastNotified string
}

func NewAbsenteeJob(service analytics.AnalyticsService, notifier analytics.Notifier, clk clock.Clock, zone clock.Zone) *AbsenteeJob {
	return &AbsenteeJob{service: service, notifier: notifier, clock: clk, zone: zone}
}

// Run is safe to call as often as the scheduler likes.
func (j *AbsenteeJob) Run(ctx context.Context) error {
	j.mu.Lock()
	defer j.mu.Unlock()

	day := j.zone.In(j.clock.Now()).Format("2006-01-02")
	if j.lastNotified == day {
		return nil
	}

	snapshot, err := j.service.GetMonthly(ctx)
	if err != nil {
		return err
	}
	if !snapshot.IsPastNoon || j.zone.IsWeekend(j.clock.Now()) {
		return nil
	}

	if err := j.notifier.NotifyAbsentees(ctx, day, snapshot.AbsenteesToday); err != nil {
		return err
	}

	j.lastNotified = day
	slog.Info("absentee notification sent", "day", day, "absentees", len(snapshot.AbsenteesToday))
	return nil
}
