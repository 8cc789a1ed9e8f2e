package employee

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"time"

	"github.com/cmlabs-hris/checkin-backend-go/internal/domain/employee"
	"github.com/cmlabs-hris/checkin-backend-go/internal/pkg/clock"
	"github.com/cmlabs-hris/checkin-backend-go/internal/pkg/export"
	"golang.org/x/crypto/bcrypt"
)

type EmployeeServiceImpl struct {
	employeeRepo employee.EmployeeRepository
	renderer     *export.Renderer
	clock        clock.Clock
	bcryptCost   int
}

func NewEmployeeService(
	employeeRepo employee.EmployeeRepository,
	renderer *export.Renderer,
	clk clock.Clock,
	bcryptCost int,
) employee.EmployeeService {
	if bcryptCost == 0 {
		bcryptCost = bcrypt.DefaultCost
	}
	return &EmployeeServiceImpl{
		employeeRepo: employeeRepo,
		renderer:     renderer,
		clock:        clk,
		bcryptCost:   bcryptCost,
	}
}

func mapEmployeeToResponse(emp employee.Employee) employee.EmployeeResponse {
	return employee.EmployeeResponse{
		ID:        emp.ID,
		Name:      emp.Name,
		Active:    emp.Active,
		CreatedAt: emp.CreatedAt.UTC().Format(time.RFC3339),
		UpdatedAt: emp.UpdatedAt.UTC().Format(time.RFC3339),
	}
}

// HashPIN returns the bcrypt hash stored in place of a PIN.
func HashPIN(pin string, cost int) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(pin), cost)
	if err != nil {
		return "", fmt.Errorf("failed to hash PIN: %w", err)
	}
	return string(hashed), nil
}

// GetEmployee implements employee.EmployeeService.
func (s *EmployeeServiceImpl) GetEmployee(ctx context.Context, id string) (employee.EmployeeResponse, error) {
	emp, err := s.employeeRepo.GetByID(ctx, id)
	if err != nil {
		return employee.EmployeeResponse{}, err
	}
	if !emp.Active {
		return employee.EmployeeResponse{}, employee.ErrEmployeeNotFound
	}
	return mapEmployeeToResponse(emp), nil
}

// CreateEmployee implements employee.EmployeeService.
func (s *EmployeeServiceImpl) CreateEmployee(ctx context.Context, req employee.CreateEmployeeRequest) (employee.EmployeeResponse, error) {
	if err := req.Validate(); err != nil {
		return employee.EmployeeResponse{}, err
	}

	pinHash, err := HashPIN(req.PIN, s.bcryptCost)
	if err != nil {
		return employee.EmployeeResponse{}, err
	}

	created, err := s.employeeRepo.Create(ctx, employee.Employee{
		Name:    req.Name,
		PINHash: pinHash,
		Active:  true,
	})
	if err != nil {
		return employee.EmployeeResponse{}, fmt.Errorf("failed to create employee: %w", err)
	}

	slog.Info("employee created", "employee_id", created.ID)
	return mapEmployeeToResponse(created), nil
}

// UpdateEmployee implements employee.EmployeeService.
func (s *EmployeeServiceImpl) UpdateEmployee(ctx context.Context, req employee.UpdateEmployeeRequest) (employee.EmployeeResponse, error) {
	if err := req.Validate(); err != nil {
		return employee.EmployeeResponse{}, err
	}

	existing, err := s.employeeRepo.GetByID(ctx, req.ID)
	if err != nil {
		return employee.EmployeeResponse{}, err
	}
	if !existing.Active {
		return employee.EmployeeResponse{}, employee.ErrEmployeeNotFound
	}

	if req.Name != nil {
		existing.Name = *req.Name
	}
	if req.PIN != nil {
		existing.PINHash, err = HashPIN(*req.PIN, s.bcryptCost)
		if err != nil {
			return employee.EmployeeResponse{}, err
		}
	}

	updated, err := s.employeeRepo.Update(ctx, existing)
	if err != nil {
		if errors.Is(err, employee.ErrEmployeeNotFound) {
			return employee.EmployeeResponse{}, err
		}
		return employee.EmployeeResponse{}, fmt.Errorf("failed to update employee: %w", err)
	}

	slog.Info("employee updated", "employee_id", updated.ID, "pin_changed", req.PIN != nil)
	return mapEmployeeToResponse(updated), nil
}

// DeactivateEmployee implements employee.EmployeeService.
func (s *EmployeeServiceImpl) DeactivateEmployee(ctx context.Context, id string) error {
	if err := s.employeeRepo.Deactivate(ctx, id); err != nil {
		if errors.Is(err, employee.ErrEmployeeNotFound) {
			return err
		}
		return fmt.Errorf("failed to deactivate employee: %w", err)
	}

	slog.Info("employee deactivated", "employee_id", id)
	return nil
}

// ListEmployees implements employee.EmployeeService.
func (s *EmployeeServiceImpl) ListEmployees(ctx context.Context, filter employee.EmployeeFilter) (employee.ListEmployeeResponse, error) {
	if err := filter.Validate(); err != nil {
		return employee.ListEmployeeResponse{}, err
	}

	employees, total, err := s.employeeRepo.List(ctx, filter)
	if err != nil {
		return employee.ListEmployeeResponse{}, fmt.Errorf("failed to list employees: %w", err)
	}

	responses := make([]employee.EmployeeResponse, 0, len(employees))
	for _, emp := range employees {
		responses = append(responses, mapEmployeeToResponse(emp))
	}

	result := employee.ListEmployeeResponse{Employees: responses}
	if !filter.All {
		result.Pagination = &employee.Pagination{
			Total:       total,
			TotalPages:  int(math.Ceil(float64(total) / float64(filter.Limit))),
			CurrentPage: filter.Page,
			PerPage:     filter.Limit,
		}
	}
	return result, nil
}

// Directory implements employee.EmployeeService.
func (s *EmployeeServiceImpl) Directory(ctx context.Context) ([]employee.DirectoryEntry, error) {
	employees, err := s.employeeRepo.ListActive(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list employees: %w", err)
	}

	entries := make([]employee.DirectoryEntry, 0, len(employees))
	for _, emp := range employees {
		entries = append(entries, employee.DirectoryEntry{ID: emp.ID, Name: emp.Name})
	}
	return entries, nil
}

// ExportRoster implements employee.EmployeeService.
func (s *EmployeeServiceImpl) ExportRoster(ctx context.Context) ([]byte, error) {
	employees, err := s.employeeRepo.ListActive(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list employees: %w", err)
	}

	responses := make([]employee.EmployeeResponse, 0, len(employees))
	for _, emp := range employees {
		responses = append(responses, mapEmployeeToResponse(emp))
	}

	return s.renderer.RosterExcel(responses, s.clock.Now())
}
