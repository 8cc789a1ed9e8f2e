package postgresql_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/cmlabs-hris/checkin-backend-go/internal/domain/attendance"
	"github.com/cmlabs-hris/checkin-backend-go/internal/domain/employee"
	"github.com/cmlabs-hris/checkin-backend-go/internal/pkg/clock"
	"github.com/cmlabs-hris/checkin-backend-go/internal/repository/postgresql"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var maputo = clock.MustZone(clock.DefaultTimezone)

func TestAttendanceRepository_CreateAndList(t *testing.T) {
	db := newTestDatabase(t)
	employees := postgresql.NewEmployeeRepository(db)
	repo := postgresql.NewAttendanceRepository(db)
	ctx := context.Background()

	ana := createTestEmployee(t, employees, "Ana")
	bento := createTestEmployee(t, employees, "Bento")

	// 07:10 and 08:00 local on Monday 2025-03-03.
	first := time.Date(2025, 3, 3, 5, 10, 0, 0, time.UTC)
	second := time.Date(2025, 3, 3, 6, 0, 0, 0, time.UTC)

	for _, rec := range []attendance.Record{
		{EmployeeID: ana.ID, EmployeeName: ana.Name, CheckIn: first, CheckInDate: maputo.Date(first)},
		{EmployeeID: bento.ID, EmployeeName: bento.Name, CheckIn: second, CheckInDate: maputo.Date(second), LateMinutes: 30},
	} {
		created, err := repo.Create(ctx, rec)
		require.NoError(t, err)
		assert.NotEmpty(t, created.ID)
		assert.Equal(t, "2025-03-03", created.CheckInDate.Format("2006-01-02"))
	}

	day := maputo.DayRange(first)

	exists, err := repo.ExistsBetween(ctx, ana.ID, day)
	require.NoError(t, err)
	assert.True(t, exists)

	exists, err = repo.ExistsBetween(ctx, ana.ID, maputo.DayRange(first.AddDate(0, 0, 1)))
	require.NoError(t, err)
	assert.False(t, exists)

	records, err := repo.ListBetween(ctx, day)
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, "Bento", records[0].EmployeeName)
	assert.Equal(t, 30, records[0].LateMinutes)
	assert.True(t, second.Equal(records[0].CheckIn))
}

func TestAttendanceRepository_DuplicateDay(t *testing.T) {
	db := newTestDatabase(t)
	employees := postgresql.NewEmployeeRepository(db)
	repo := postgresql.NewAttendanceRepository(db)
	ctx := context.Background()

	ana := createTestEmployee(t, employees, "Ana")
	at := time.Date(2025, 3, 3, 5, 10, 0, 0, time.UTC)
	rec := attendance.Record{EmployeeID: ana.ID, EmployeeName: ana.Name, CheckIn: at, CheckInDate: maputo.Date(at)}

	var wg sync.WaitGroup
	errs := make([]error, 5)
	for i := range errs {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			r := rec
			r.CheckIn = at.Add(time.Duration(i) * time.Second)
			_, errs[i] = repo.Create(ctx, r)
		}(i)
	}
	wg.Wait()

	succeeded := 0
	for _, err := range errs {
		if err == nil {
			succeeded++
			continue
		}
		assert.ErrorIs(t, err, attendance.ErrAlreadyCheckedIn)
	}
	assert.Equal(t, 1, succeeded)

	records, err := repo.ListBetween(ctx, maputo.DayRange(at))
	require.NoError(t, err)
	assert.Len(t, records, 1)
}

func TestWithTransaction_Rollback(t *testing.T) {
	db := newTestDatabase(t)
	employees := postgresql.NewEmployeeRepository(db)
	ctx := context.Background()

	err := postgresql.WithTransaction(ctx, db, func(ctx context.Context) error {
		createTestEmployee(t, employees, "Ghost")
		_, err := employees.Create(ctx, employee.Employee{Name: "Inside", PINHash: "hash-Inside"})
		require.NoError(t, err)
		return assert.AnError
	})
	assert.ErrorIs(t, err, assert.AnError)

	active, err := employees.ListActive(ctx)
	require.NoError(t, err)
	require.Len(t, active, 1)
	assert.Equal(t, "Ghost", active[0].Name)
}

func TestWithTransaction_NestedListJoinsOuter(t *testing.T) {
	db := newTestDatabase(t)
	employees := postgresql.NewEmployeeRepository(db)
	ctx := context.Background()

	err := postgresql.WithTransaction(ctx, db, func(ctx context.Context) error {
		_, err := employees.Create(ctx, employee.Employee{Name: "Pending", PINHash: "hash-Pending"})
		require.NoError(t, err)

		listed, total, err := employees.List(ctx, employee.EmployeeFilter{Page: 1, Limit: 10})
		require.NoError(t, err)
		assert.Equal(t, int64(1), total)
		require.Len(t, listed, 1)
		assert.Equal(t, "Pending", listed[0].Name)
		return assert.AnError
	})
	assert.ErrorIs(t, err, assert.AnError)

	_, total, err := employees.List(ctx, employee.EmployeeFilter{Page: 1, Limit: 10})
	require.NoError(t, err)
	assert.Zero(t, total)
}
