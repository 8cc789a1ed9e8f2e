// Package memory holds map-backed repositories with the same contracts as the
// PostgreSQL ones. Service and handler tests run against them.
package memory

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/cmlabs-hris/checkin-backend-go/internal/domain/attendance"
	"github.com/cmlabs-hris/checkin-backend-go/internal/domain/employee"
	"github.com/cmlabs-hris/checkin-backend-go/internal/pkg/clock"
	"github.com/google/uuid"
)

type EmployeeRepository struct {
	mu        sync.RWMutex
	employees map[string]employee.Employee
	// Err, when set, is returned by every method.
	Err error
}

func NewEmployeeRepository(seed ...employee.Employee) *EmployeeRepository {
	r := &EmployeeRepository{employees: make(map[string]employee.Employee)}
	for _, emp := range seed {
		r.employees[emp.ID] = emp
	}
	return r
}

func (r *EmployeeRepository) GetByID(ctx context.Context, id string) (employee.Employee, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if r.Err != nil {
		return employee.Employee{}, r.Err
	}

	emp, ok := r.employees[id]
	if !ok {
		return employee.Employee{}, employee.ErrEmployeeNotFound
	}
	return emp, nil
}

func (r *EmployeeRepository) Create(ctx context.Context, newEmployee employee.Employee) (employee.Employee, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return employee.Employee{}, r.Err
	}

	if newEmployee.ID == "" {
		newEmployee.ID = uuid.Must(uuid.NewV7()).String()
	}
	now := time.Now()
	if newEmployee.CreatedAt.IsZero() {
		newEmployee.CreatedAt = now
	}
	newEmployee.UpdatedAt = now
	newEmployee.Active = true
	r.employees[newEmployee.ID] = newEmployee
	return newEmployee, nil
}

func (r *EmployeeRepository) Update(ctx context.Context, emp employee.Employee) (employee.Employee, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return employee.Employee{}, r.Err
	}

	existing, ok := r.employees[emp.ID]
	if !ok || !existing.Active {
		return employee.Employee{}, employee.ErrEmployeeNotFound
	}
	existing.Name = emp.Name
	existing.PINHash = emp.PINHash
	existing.UpdatedAt = time.Now()
	r.employees[emp.ID] = existing
	return existing, nil
}

func (r *EmployeeRepository) Deactivate(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return r.Err
	}

	existing, ok := r.employees[id]
	if !ok || !existing.Active {
		return employee.ErrEmployeeNotFound
	}
	existing.Active = false
	existing.UpdatedAt = time.Now()
	r.employees[id] = existing
	return nil
}

func (r *EmployeeRepository) List(ctx context.Context, filter employee.EmployeeFilter) ([]employee.Employee, int64, error) {
	active, err := r.ListActive(ctx)
	if err != nil {
		return nil, 0, err
	}

	matched := active[:0:0]
	search := strings.ToLower(filter.Search)
	for _, emp := range active {
		if search == "" || strings.Contains(strings.ToLower(emp.Name), search) {
			matched = append(matched, emp)
		}
	}

	total := int64(len(matched))
	if filter.All {
		return matched, total, nil
	}

	start := (filter.Page - 1) * filter.Limit
	if start >= len(matched) {
		return []employee.Employee{}, total, nil
	}
	end := min(start+filter.Limit, len(matched))
	return matched[start:end], total, nil
}

func (r *EmployeeRepository) ListActive(ctx context.Context) ([]employee.Employee, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if r.Err != nil {
		return nil, r.Err
	}

	employees := []employee.Employee{}
	for _, emp := range r.employees {
		if emp.Active {
			employees = append(employees, emp)
		}
	}
	sort.Slice(employees, func(i, j int) bool {
		if employees[i].Name != employees[j].Name {
			return employees[i].Name < employees[j].Name
		}
		return employees[i].ID < employees[j].ID
	})
	return employees, nil
}

type dayKey struct {
	employeeID string
	date       string
}

// AttendanceRepository enforces one record per employee and check-in date,
// like the unique constraint of the attendances table.
type AttendanceRepository struct {
	mu      sync.RWMutex
	records []attendance.Record
	days    map[dayKey]bool
	// BeforeCreate, when set, runs before the uniqueness check of Create.
	BeforeCreate func()
	Err          error
}

func NewAttendanceRepository(seed ...attendance.Record) *AttendanceRepository {
	r := &AttendanceRepository{days: make(map[dayKey]bool)}
	for _, rec := range seed {
		if rec.ID == "" {
			rec.ID = uuid.Must(uuid.NewV7()).String()
		}
		r.records = append(r.records, rec)
		r.days[dayKey{rec.EmployeeID, rec.CheckInDate.Format("2006-01-02")}] = true
	}
	return r
}

func (r *AttendanceRepository) Create(ctx context.Context, record attendance.Record) (attendance.Record, error) {
	if r.BeforeCreate != nil {
		r.BeforeCreate()
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return attendance.Record{}, r.Err
	}

	key := dayKey{record.EmployeeID, record.CheckInDate.Format("2006-01-02")}
	if r.days[key] {
		return attendance.Record{}, attendance.ErrAlreadyCheckedIn
	}

	if record.ID == "" {
		record.ID = uuid.Must(uuid.NewV7()).String()
	}
	record.CreatedAt = time.Now()
	r.records = append(r.records, record)
	r.days[key] = true
	return record, nil
}

func (r *AttendanceRepository) ExistsBetween(ctx context.Context, employeeID string, rng clock.Range) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if r.Err != nil {
		return false, r.Err
	}

	for _, rec := range r.records {
		if rec.EmployeeID == employeeID && rng.Contains(rec.CheckIn) {
			return true, nil
		}
	}
	return false, nil
}

func (r *AttendanceRepository) ListBetween(ctx context.Context, rng clock.Range) ([]attendance.Record, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if r.Err != nil {
		return nil, r.Err
	}

	records := []attendance.Record{}
	for _, rec := range r.records {
		if rng.Contains(rec.CheckIn) {
			records = append(records, rec)
		}
	}
	sort.SliceStable(records, func(i, j int) bool {
		return records[i].CheckIn.After(records[j].CheckIn)
	})
	return records, nil
}

// Len returns the number of stored records.
func (r *AttendanceRepository) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.records)
}
