package dashboard

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/emp-proj/employee-register-go/internal/domain/attendance"
	"github.com/emp-proj/employee-register-go/internal/domain/employee"
	"github.com/emp-proj/employee-register-go/internal/pkg/validator"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSnapshot struct {
	records  []attendance.Attendance
	loadedAt time.Time
}

func (f fakeSnapshot) Snapshot() []attendance.Attendance { return f.records }
func (f fakeSnapshot) LoadedAt() time.Time              { return f.loadedAt }

type fakeEmployees struct {
	active []employee.Employee
	err    error
}

func (f fakeEmployees) ListActive(ctx context.Context) ([]employee.Employee, error) {
	return f.active, f.err
}

func rec(id, empID int64, date string, status attendance.Status, total int64) attendance.Attendance {
	d, _ := time.Parse(attendance.DateLayout, date)
	salary := decimal.NewFromInt(total)
	return attendance.Attendance{ID: &id, EmployeeID: empID, Date: d, Status: status, TotalSalary: &salary}
}

func fixedNow() time.Time {
	return time.Date(2024, time.March, 5, 10, 0, 0, 0, time.UTC)
}

func TestGetDashboard(t *testing.T) {
	snapshot := fakeSnapshot{
		records: []attendance.Attendance{
			rec(1, 1, "2024-03-01", attendance.StatusPresent, 2000),
			rec(2, 1, "2024-03-05", attendance.StatusHalfDay, 1000),
			rec(3, 2, "2024-03-05", attendance.StatusPresent, 3000),
			rec(4, 2, "2024-02-28", attendance.StatusAbsent, 0),
		},
		loadedAt: fixedNow().Add(-time.Minute),
	}
	employees := fakeEmployees{active: []employee.Employee{{ID: 1}, {ID: 2}, {ID: 4}}}

	svc := NewDashboardService(snapshot, employees, fixedNow)
	resp, err := svc.GetDashboard(context.Background(), "")
	require.NoError(t, err)

	assert.Equal(t, "2024-03", resp.Month)
	assert.Equal(t, 2, resp.MonthlySummary.Month)
	assert.Equal(t, 3, resp.MonthlySummary.TotalDays)
	assert.True(t, decimal.NewFromInt(6000).Equal(resp.MonthlySummary.TotalSalary))
	assert.Equal(t, 3, resp.ActiveEmployees)

	assert.Equal(t, "2024-03-05", resp.Today.Date)
	assert.Equal(t, 1, resp.Today.Present)
	assert.Equal(t, 1, resp.Today.HalfDay)
	assert.Equal(t, 2, resp.Today.Marked)
	assert.Equal(t, 1, resp.Today.Unmarked)
	assert.InDelta(t, 75.0, resp.Today.AttendanceRate, 0.001)
	assert.NotEmpty(t, resp.SnapshotAt)
}

func TestGetDashboard_ExplicitMonth(t *testing.T) {
	snapshot := fakeSnapshot{records: []attendance.Attendance{
		rec(4, 2, "2024-02-28", attendance.StatusAbsent, 0),
	}}

	svc := NewDashboardService(snapshot, fakeEmployees{}, fixedNow)
	resp, err := svc.GetDashboard(context.Background(), "2024-02")
	require.NoError(t, err)

	assert.Equal(t, "2024-02", resp.Month)
	assert.Equal(t, 1, resp.MonthlySummary.AbsentDays)
	assert.Zero(t, resp.MonthlySummary.AttendanceRate)
	assert.Empty(t, resp.SnapshotAt)
}

func TestGetDashboard_InvalidMonth(t *testing.T) {
	svc := NewDashboardService(fakeSnapshot{}, fakeEmployees{}, fixedNow)

	_, err := svc.GetDashboard(context.Background(), "March")

	var verrs validator.ValidationErrors
	assert.ErrorAs(t, err, &verrs)
}

func TestGetDashboard_DirectoryFailure(t *testing.T) {
	boom := errors.New("connection refused")
	svc := NewDashboardService(fakeSnapshot{}, fakeEmployees{err: boom}, fixedNow)

	_, err := svc.GetDashboard(context.Background(), "")
	assert.ErrorIs(t, err, boom)
}
