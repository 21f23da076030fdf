package postgresql_test

import (
	"context"
	"testing"
	"time"

	"github.com/emp-proj/employee-register-go/internal/domain/attendance"
	"github.com/emp-proj/employee-register-go/internal/domain/employee"
	"github.com/emp-proj/employee-register-go/internal/repository/postgresql"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAttendanceRepository_Integration(t *testing.T) {
	db := testDatabase(t)
	ctx := context.Background()

	employeeRepo := postgresql.NewEmployeeRepository(db)
	attendanceRepo := postgresql.NewAttendanceRepository(db)

	emp, err := employeeRepo.Create(ctx, employee.Employee{
		Name:       "Nimal Perera",
		Role:       "Cashier",
		JoinDate:   time.Date(2023, time.January, 2, 0, 0, 0, 0, time.UTC),
		BaseSalary: decimal.NewFromInt(2000),
		Status:     employee.StatusActive,
	})
	require.NoError(t, err)

	day := time.Date(2024, time.March, 5, 0, 0, 0, 0, time.UTC)
	total := decimal.NewFromInt(2000)
	created, err := attendanceRepo.Create(ctx, attendance.Attendance{
		EmployeeID:     emp.ID,
		Date:           day,
		Status:         attendance.StatusPresent,
		OvertimeSalary: decimal.Zero,
		TotalSalary:    &total,
	})
	require.NoError(t, err)
	require.NotNil(t, created.ID)

	t.Run("duplicate slot is a conflict", func(t *testing.T) {
		_, err := attendanceRepo.Create(ctx, attendance.Attendance{
			EmployeeID:     emp.ID,
			Date:           day,
			Status:         attendance.StatusAbsent,
			OvertimeSalary: decimal.Zero,
		})

		var conflict *attendance.ConflictError
		require.ErrorAs(t, err, &conflict)
		assert.ErrorIs(t, err, attendance.ErrDuplicateAttendance)
	})

	t.Run("lookup by slot", func(t *testing.T) {
		found, err := attendanceRepo.GetByEmployeeAndDate(ctx, emp.ID, day)
		require.NoError(t, err)
		require.NotNil(t, found)
		assert.Equal(t, *created.ID, *found.ID)

		missing, err := attendanceRepo.GetByEmployeeAndDate(ctx, emp.ID, day.AddDate(0, 0, 1))
		require.NoError(t, err)
		assert.Nil(t, missing)
	})

	t.Run("fetch all", func(t *testing.T) {
		records, err := attendanceRepo.FetchAll(ctx)
		require.NoError(t, err)
		require.Len(t, records, 1)
		assert.Equal(t, "2024-03-05", records[0].Date.Format(attendance.DateLayout))
		require.NotNil(t, records[0].TotalSalary)
		assert.True(t, total.Equal(*records[0].TotalSalary))
	})

	t.Run("employee delete cascades in one transaction", func(t *testing.T) {
		err := postgresql.WithTransaction(ctx, db, func(txCtx context.Context) error {
			n, err := attendanceRepo.DeleteByEmployee(txCtx, emp.ID)
			if err != nil {
				return err
			}
			assert.Equal(t, int64(1), n)
			return employeeRepo.Delete(txCtx, emp.ID)
		})
		require.NoError(t, err)

		_, err = employeeRepo.GetByID(ctx, emp.ID)
		assert.ErrorIs(t, err, employee.ErrEmployeeNotFound)

		records, err := attendanceRepo.FetchAll(ctx)
		require.NoError(t, err)
		assert.Empty(t, records)
	})
}

func TestEmployeeRepository_Integration(t *testing.T) {
	db := testDatabase(t)
	ctx := context.Background()
	repo := postgresql.NewEmployeeRepository(db)

	for _, e := range []employee.Employee{
		{Name: "Kamala Silva", Role: "Manager", Status: employee.StatusActive, BaseSalary: decimal.NewFromInt(3000)},
		{Name: "Sunil Fernando", Role: "Driver", Status: employee.StatusInactive, BaseSalary: decimal.NewFromInt(1500)},
	} {
		e.JoinDate = time.Date(2023, time.June, 1, 0, 0, 0, 0, time.UTC)
		_, err := repo.Create(ctx, e)
		require.NoError(t, err)
	}

	active, err := repo.ListActive(ctx)
	require.NoError(t, err)
	require.Len(t, active, 1)
	assert.Equal(t, "Kamala Silva", active[0].Name)

	found, err := repo.List(ctx, employee.EmployeeFilter{Search: "fern"})
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Equal(t, employee.StatusInactive, found[0].Status)
}
