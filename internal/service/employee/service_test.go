package employee

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/cmlabs-hris/checkin-backend-go/internal/domain/employee"
	"github.com/cmlabs-hris/checkin-backend-go/internal/pkg/clock"
	"github.com/cmlabs-hris/checkin-backend-go/internal/pkg/export"
	"github.com/cmlabs-hris/checkin-backend-go/internal/pkg/validator"
	"github.com/cmlabs-hris/checkin-backend-go/internal/repository/memory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func newTestService(seed ...employee.Employee) (employee.EmployeeService, *memory.EmployeeRepository) {
	repo := memory.NewEmployeeRepository(seed...)
	zone := clock.MustZone(clock.DefaultTimezone)
	now := clock.Fixed{T: time.Date(2025, 3, 3, 10, 0, 0, 0, time.UTC)}
	return NewEmployeeService(repo, export.NewRenderer(nil, zone), now, bcrypt.MinCost), repo
}

func strPtr(s string) *string { return &s }

// ===== CREATE TESTS =====

func TestEmployeeService_Create_HashesPIN(t *testing.T) {
	ctx := context.Background()
	svc, repo := newTestService()

	created, err := svc.CreateEmployee(ctx, employee.CreateEmployeeRequest{Name: "  Ana  ", PIN: "1234"})
	require.NoError(t, err)
	assert.Equal(t, "Ana", created.Name)
	assert.True(t, created.Active)

	stored, err := repo.GetByID(ctx, created.ID)
	require.NoError(t, err)
	assert.NotEqual(t, "1234", stored.PINHash)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored.PINHash), []byte("1234")))
}

func TestEmployeeService_Create_Validation(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService()

	tests := []struct {
		name  string
		req   employee.CreateEmployeeRequest
		field string
	}{
		{"missing name", employee.CreateEmployeeRequest{Name: "  ", PIN: "1234"}, "name"},
		{"short PIN", employee.CreateEmployeeRequest{Name: "Ana", PIN: "123"}, "pin"},
		{"long PIN", employee.CreateEmployeeRequest{Name: "Ana", PIN: "123456789"}, "pin"},
		{"letters in PIN", employee.CreateEmployeeRequest{Name: "Ana", PIN: "12a4"}, "pin"},
		{"negative PIN", employee.CreateEmployeeRequest{Name: "Ana", PIN: "-123"}, "pin"},
		{"signed PIN", employee.CreateEmployeeRequest{Name: "Ana", PIN: "+1234"}, "pin"},
		{"decimal PIN", employee.CreateEmployeeRequest{Name: "Ana", PIN: "12.5"}, "pin"},
		{"exponent PIN", employee.CreateEmployeeRequest{Name: "Ana", PIN: "1e10"}, "pin"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.CreateEmployee(ctx, tt.req)

			var errs validator.ValidationErrors
			require.True(t, errors.As(err, &errs))
			assert.Contains(t, errs.ToMap(), tt.field)
		})
	}
}

// ===== UPDATE TESTS =====

func TestEmployeeService_Update(t *testing.T) {
	ctx := context.Background()
	svc, repo := newTestService()

	created, err := svc.CreateEmployee(ctx, employee.CreateEmployeeRequest{Name: "Ana", PIN: "1234"})
	require.NoError(t, err)

	updated, err := svc.UpdateEmployee(ctx, employee.UpdateEmployeeRequest{ID: created.ID, Name: strPtr("Ana Maria")})
	require.NoError(t, err)
	assert.Equal(t, "Ana Maria", updated.Name)

	stored, _ := repo.GetByID(ctx, created.ID)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored.PINHash), []byte("1234")), "PIN unchanged")

	_, err = svc.UpdateEmployee(ctx, employee.UpdateEmployeeRequest{ID: created.ID, PIN: strPtr("87654321")})
	require.NoError(t, err)

	stored, _ = repo.GetByID(ctx, created.ID)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored.PINHash), []byte("87654321")))
}

func TestEmployeeService_Update_Validation(t *testing.T) {
	ctx := context.Background()
	svc, repo := newTestService(employee.Employee{ID: "e1", Name: "Ana", Active: true})

	tests := []struct {
		name  string
		req   employee.UpdateEmployeeRequest
		field string
	}{
		{"blank name", employee.UpdateEmployeeRequest{ID: "e1", Name: strPtr("   ")}, "name"},
		{"negative PIN", employee.UpdateEmployeeRequest{ID: "e1", PIN: strPtr("-123")}, "pin"},
		{"signed PIN", employee.UpdateEmployeeRequest{ID: "e1", PIN: strPtr("+1234")}, "pin"},
		{"decimal PIN", employee.UpdateEmployeeRequest{ID: "e1", PIN: strPtr("12.5")}, "pin"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.UpdateEmployee(ctx, tt.req)

			var errs validator.ValidationErrors
			require.True(t, errors.As(err, &errs))
			assert.Contains(t, errs.ToMap(), tt.field)
		})
	}

	stored, err := repo.GetByID(ctx, "e1")
	require.NoError(t, err)
	assert.Equal(t, "Ana", stored.Name)
}

func TestEmployeeService_Update_RequiresAField(t *testing.T) {
	svc, _ := newTestService()

	_, err := svc.UpdateEmployee(context.Background(), employee.UpdateEmployeeRequest{ID: "x"})

	var errs validator.ValidationErrors
	assert.True(t, errors.As(err, &errs))
}

func TestEmployeeService_Update_Inactive(t *testing.T) {
	svc, _ := newTestService(employee.Employee{ID: "gone", Name: "Gone", Active: false})

	_, err := svc.UpdateEmployee(context.Background(), employee.UpdateEmployeeRequest{ID: "gone", Name: strPtr("Back")})
	assert.ErrorIs(t, err, employee.ErrEmployeeNotFound)
}

// ===== DEACTIVATE TESTS =====

func TestEmployeeService_Deactivate(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(employee.Employee{ID: "e1", Name: "Ana", Active: true})

	require.NoError(t, svc.DeactivateEmployee(ctx, "e1"))

	_, err := svc.GetEmployee(ctx, "e1")
	assert.ErrorIs(t, err, employee.ErrEmployeeNotFound)

	assert.ErrorIs(t, svc.DeactivateEmployee(ctx, "e1"), employee.ErrEmployeeNotFound)
	assert.ErrorIs(t, svc.DeactivateEmployee(ctx, "missing"), employee.ErrEmployeeNotFound)

	entries, err := svc.Directory(ctx)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

// ===== LIST TESTS =====

func TestEmployeeService_List(t *testing.T) {
	ctx := context.Background()
	var seed []employee.Employee
	for _, name := range []string{"Lara", "Ana", "Bento", "Carla", "Dinis", "Ema", "Fausto", "Gil", "Hugo", "Ines", "Joana", "Kiko"} {
		seed = append(seed, employee.Employee{ID: "id-" + name, Name: name, Active: true})
	}
	seed = append(seed, employee.Employee{ID: "id-old", Name: "Anabela", Active: false})
	svc, _ := newTestService(seed...)

	first, err := svc.ListEmployees(ctx, employee.EmployeeFilter{})
	require.NoError(t, err)
	require.Len(t, first.Employees, employee.DefaultPageSize)
	assert.Equal(t, "Ana", first.Employees[0].Name)
	assert.Equal(t, &employee.Pagination{Total: 12, TotalPages: 2, CurrentPage: 1, PerPage: 10}, first.Pagination)

	second, err := svc.ListEmployees(ctx, employee.EmployeeFilter{Page: 2})
	require.NoError(t, err)
	require.Len(t, second.Employees, 2)
	assert.Equal(t, "Lara", second.Employees[1].Name)

	all, err := svc.ListEmployees(ctx, employee.EmployeeFilter{All: true})
	require.NoError(t, err)
	assert.Len(t, all.Employees, 12)
	assert.Nil(t, all.Pagination)

	found, err := svc.ListEmployees(ctx, employee.EmployeeFilter{Search: "AN", All: true})
	require.NoError(t, err)
	require.Len(t, found.Employees, 2)
	assert.Equal(t, "Ana", found.Employees[0].Name)
	assert.Equal(t, "Joana", found.Employees[1].Name)
}

func TestEmployeeService_List_InvalidPaging(t *testing.T) {
	svc, _ := newTestService()

	_, err := svc.ListEmployees(context.Background(), employee.EmployeeFilter{Page: -1, Limit: 500})

	var errs validator.ValidationErrors
	require.True(t, errors.As(err, &errs))
	assert.Len(t, errs, 2)
}

// ===== DIRECTORY & EXPORT TESTS =====

func TestEmployeeService_Directory(t *testing.T) {
	svc, _ := newTestService(
		employee.Employee{ID: "b", Name: "Bento", PINHash: "secret", Active: true},
		employee.Employee{ID: "a", Name: "Ana", PINHash: "secret", Active: true},
	)

	entries, err := svc.Directory(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []employee.DirectoryEntry{{ID: "a", Name: "Ana"}, {ID: "b", Name: "Bento"}}, entries)
}

func TestEmployeeService_ExportRoster(t *testing.T) {
	svc, _ := newTestService(employee.Employee{ID: "a", Name: "Ana", Active: true})

	data, err := svc.ExportRoster(context.Background())
	require.NoError(t, err)
	assert.NotEmpty(t, data)
}

func TestEmployeeService_RepositoryError(t *testing.T) {
	svc, repo := newTestService()
	repo.Err = errors.New("connection refused")

	_, err := svc.Directory(context.Background())
	assert.ErrorContains(t, err, "connection refused")
}
