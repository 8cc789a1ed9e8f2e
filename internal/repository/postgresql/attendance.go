package postgresql

import (
	"context"
	"fmt"

	"github.com/cmlabs-hris/checkin-backend-go/internal/domain/attendance"
	"github.com/cmlabs-hris/checkin-backend-go/internal/pkg/clock"
	"github.com/cmlabs-hris/checkin-backend-go/internal/pkg/database"
	"github.com/google/uuid"
)

const attendanceDayConstraint = "attendances_employee_day_key"

type attendanceRepositoryImpl struct {
	db *database.DB
}

func NewAttendanceRepository(db *database.DB) attendance.AttendanceRepository {
	return &attendanceRepositoryImpl{db: db}
}

// Create implements attendance.AttendanceRepository.
func (r *attendanceRepositoryImpl) Create(ctx context.Context, record attendance.Record) (attendance.Record, error) {
	q := GetQuerier(ctx, r.db)

	if record.ID == "" {
		id, err := uuid.NewV7()
		if err != nil {
			return attendance.Record{}, fmt.Errorf("failed to generate attendance id: %w", err)
		}
		record.ID = id.String()
	}

	query := `
		INSERT INTO attendances (id, employee_id, employee_name, check_in, check_in_date, late_minutes)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, employee_id, employee_name, check_in, check_in_date, late_minutes, created_at
	`

	var created attendance.Record
	err := q.QueryRow(ctx, query,
		record.ID, record.EmployeeID, record.EmployeeName,
		record.CheckIn.UTC(), record.CheckInDate, record.LateMinutes,
	).Scan(
		&created.ID, &created.EmployeeID, &created.EmployeeName,
		&created.CheckIn, &created.CheckInDate, &created.LateMinutes, &created.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err, attendanceDayConstraint) {
			return attendance.Record{}, attendance.ErrAlreadyCheckedIn
		}
		return attendance.Record{}, fmt.Errorf("failed to create attendance: %w", err)
	}
	return created, nil
}

// ExistsBetween implements attendance.AttendanceRepository.
func (r *attendanceRepositoryImpl) ExistsBetween(ctx context.Context, employeeID string, rng clock.Range) (bool, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT EXISTS (
			SELECT 1 FROM attendances
			WHERE employee_id = $1 AND check_in BETWEEN $2 AND $3
		)
	`

	var exists bool
	if err := q.QueryRow(ctx, query, employeeID, rng.Start, rng.End).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check attendance for employee %s: %w", employeeID, err)
	}
	return exists, nil
}

// ListBetween implements attendance.AttendanceRepository.
func (r *attendanceRepositoryImpl) ListBetween(ctx context.Context, rng clock.Range) ([]attendance.Record, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, employee_id, employee_name, check_in, check_in_date, late_minutes, created_at
		FROM attendances
		WHERE check_in BETWEEN $1 AND $2
		ORDER BY check_in DESC, id DESC
	`

	rows, err := q.Query(ctx, query, rng.Start, rng.End)
	if err != nil {
		return nil, fmt.Errorf("failed to list attendances: %w", err)
	}
	defer rows.Close()

	records := []attendance.Record{}
	for rows.Next() {
		var rec attendance.Record
		if err := rows.Scan(
			&rec.ID, &rec.EmployeeID, &rec.EmployeeName,
			&rec.CheckIn, &rec.CheckInDate, &rec.LateMinutes, &rec.CreatedAt,
		); err != nil {
			return nil, err
		}
		records = append(records, rec)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return records, nil
}
