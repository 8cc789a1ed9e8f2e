package postgresql_test

import (
	"context"
	"testing"

	"github.com/cmlabs-hris/checkin-backend-go/internal/domain/employee"
	"github.com/cmlabs-hris/checkin-backend-go/internal/repository/postgresql"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func createTestEmployee(t *testing.T, repo employee.EmployeeRepository, name string) employee.Employee {
	t.Helper()
	emp, err := repo.Create(context.Background(), employee.Employee{Name: name, PINHash: "hash-" + name})
	require.NoError(t, err)
	return emp
}

func TestEmployeeRepository_CreateAndGet(t *testing.T) {
	db := newTestDatabase(t)
	repo := postgresql.NewEmployeeRepository(db)
	ctx := context.Background()

	created := createTestEmployee(t, repo, "Ana")
	assert.NotEmpty(t, created.ID)
	assert.True(t, created.Active)

	found, err := repo.GetByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Ana", found.Name)
	assert.Equal(t, "hash-Ana", found.PINHash)
}

func TestEmployeeRepository_GetByID_NotFound(t *testing.T) {
	db := newTestDatabase(t)
	repo := postgresql.NewEmployeeRepository(db)

	_, err := repo.GetByID(context.Background(), "0195a1b2-0000-7000-8000-000000000000")
	assert.ErrorIs(t, err, employee.ErrEmployeeNotFound)

	_, err = repo.GetByID(context.Background(), "not-a-uuid")
	assert.ErrorIs(t, err, employee.ErrEmployeeNotFound)
}

func TestEmployeeRepository_UpdateAndDeactivate(t *testing.T) {
	db := newTestDatabase(t)
	repo := postgresql.NewEmployeeRepository(db)
	ctx := context.Background()

	emp := createTestEmployee(t, repo, "Bento")
	emp.Name = "Bento Silva"

	updated, err := repo.Update(ctx, emp)
	require.NoError(t, err)
	assert.Equal(t, "Bento Silva", updated.Name)

	require.NoError(t, repo.Deactivate(ctx, emp.ID))
	assert.ErrorIs(t, repo.Deactivate(ctx, emp.ID), employee.ErrEmployeeNotFound)

	found, err := repo.GetByID(ctx, emp.ID)
	require.NoError(t, err)
	assert.False(t, found.Active)

	active, err := repo.ListActive(ctx)
	require.NoError(t, err)
	assert.Empty(t, active)
}

func TestEmployeeRepository_List(t *testing.T) {
	db := newTestDatabase(t)
	repo := postgresql.NewEmployeeRepository(db)
	ctx := context.Background()

	for _, name := range []string{"Carla", "Ana", "Bento", "Anabela"} {
		createTestEmployee(t, repo, name)
	}

	page, total, err := repo.List(ctx, employee.EmployeeFilter{Page: 1, Limit: 2})
	require.NoError(t, err)
	assert.Equal(t, int64(4), total)
	require.Len(t, page, 2)
	assert.Equal(t, "Ana", page[0].Name)
	assert.Equal(t, "Anabela", page[1].Name)

	found, total, err := repo.List(ctx, employee.EmployeeFilter{Search: "ana", All: true})
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
	assert.Len(t, found, 2)

	_, total, err = repo.List(ctx, employee.EmployeeFilter{Search: "%", All: true})
	require.NoError(t, err)
	assert.Zero(t, total)
}
