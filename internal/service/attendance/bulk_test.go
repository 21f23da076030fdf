package attendance

import (
	"context"
	"errors"
	"testing"

	"github.com/emp-proj/employee-register-go/internal/domain/attendance"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBulkCoordinator_UpdatesExistingAndCreatesMissing(t *testing.T) {
	date := day(2024, 3, 5)
	existing := record(10, 1, date, attendance.StatusAbsent)
	existing.Description = "sick"

	repo := newFakeAttendanceRepo(existing)
	store := NewStore(nil)
	store.Replace([]attendance.Attendance{existing})

	coordinator := NewBulkCoordinator(repo, store, 2)
	targets := []BulkTarget{
		{EmployeeID: 1, BaseSalary: decimal.NewFromInt(2000)},
		{EmployeeID: 2, BaseSalary: decimal.NewFromInt(3000)},
	}

	result := coordinator.Apply(context.Background(), targets, date, attendance.StatusPresent, "Marked present via bulk action")

	assert.NotEmpty(t, result.OperationID)
	assert.Empty(t, result.Failures)
	require.Len(t, result.Updated, 1)
	require.Len(t, result.Created, 1)
	assert.Equal(t, int64(10), result.Updated[0].IDValue())
	assert.Equal(t, int64(2), result.Created[0].EmployeeID)
	assert.Equal(t, 1, repo.updates)
	assert.Equal(t, 1, repo.creates)

	snap := store.Snapshot()
	require.Len(t, snap, 2)
	assert.Empty(t, attendance.FindDuplicates(snap))

	for _, rec := range snap {
		assert.Equal(t, attendance.StatusPresent, rec.Status)
		assert.Equal(t, "Marked present via bulk action", rec.Description)
		require.NotNil(t, rec.TotalSalary)
	}

	updated, ok := store.FindByID(10)
	require.True(t, ok)
	assert.True(t, updated.TotalSalary.Equal(decimal.NewFromInt(2000)))
}

func TestBulkCoordinator_PartialFailureDoesNotAbortSiblings(t *testing.T) {
	date := day(2024, 3, 5)
	repo := newFakeAttendanceRepo(record(10, 1, date, attendance.StatusAbsent))
	repo.failFor[1] = true

	store := NewStore(nil)
	store.Replace([]attendance.Attendance{record(10, 1, date, attendance.StatusAbsent)})

	coordinator := NewBulkCoordinator(repo, store, 1)
	result := coordinator.Apply(context.Background(), []BulkTarget{
		{EmployeeID: 1}, {EmployeeID: 2}, {EmployeeID: 4},
	}, date, attendance.StatusHalfDay, "Marked halfday via bulk action")

	require.Len(t, result.Failures, 1)
	failure := result.Failures[0]
	assert.Equal(t, attendance.OpUpdate, failure.Op)
	assert.Equal(t, int64(1), failure.EmployeeID)
	assert.Equal(t, int64(10), failure.RecordID)
	assert.Equal(t, result.OperationID, failure.OperationID)
	assert.True(t, errors.Is(failure, attendance.ErrExternalFailure))
	assert.True(t, errors.Is(failure, errBackend))

	assert.Len(t, result.Created, 2)
	assert.False(t, result.AllFailed())
	assert.Equal(t, 3, result.Attempted())

	// the failed update leaves the held record untouched
	held, ok := store.FindByID(10)
	require.True(t, ok)
	assert.Equal(t, attendance.StatusAbsent, held.Status)
	assert.Len(t, store.Snapshot(), 3)
}

func TestBulkCoordinator_AllFailed(t *testing.T) {
	repo := newFakeAttendanceRepo()
	repo.failFor[1] = true
	repo.failFor[2] = true

	store := NewStore(nil)
	coordinator := NewBulkCoordinator(repo, store, 0)

	result := coordinator.Apply(context.Background(), []BulkTarget{{EmployeeID: 1}, {EmployeeID: 2}},
		day(2024, 3, 5), attendance.StatusPresent, "x")

	assert.True(t, result.AllFailed())
	assert.Len(t, result.Failures, 2)
	for _, f := range result.Failures {
		assert.Equal(t, attendance.OpCreate, f.Op)
	}
	assert.Empty(t, store.Snapshot())
}

func TestBulkCoordinator_ClearsStaleOvertime(t *testing.T) {
	date := day(2024, 3, 5)
	existing := record(10, 1, date, attendance.StatusOvertime)
	existing.OvertimeHours = 4
	existing.OvertimeSalary = decimal.NewFromInt(400)
	existing.OvertimeDescription = "inventory"

	repo := newFakeAttendanceRepo(existing)
	store := NewStore(nil)
	store.Replace([]attendance.Attendance{existing})

	result := NewBulkCoordinator(repo, store, 4).Apply(context.Background(),
		[]BulkTarget{{EmployeeID: 1, BaseSalary: decimal.NewFromInt(1000)}}, date, attendance.StatusPresent, "x")

	require.Len(t, result.Updated, 1)
	got := result.Updated[0]
	assert.Zero(t, got.OvertimeHours)
	assert.True(t, got.OvertimeSalary.IsZero())
	assert.Empty(t, got.OvertimeDescription)
	assert.True(t, got.TotalSalary.Equal(decimal.NewFromInt(1000)))
}

func TestBulkCoordinator_UpdatesRecordMissingFromStore(t *testing.T) {
	date := day(2024, 3, 5)
	repo := newFakeAttendanceRepo(record(10, 1, date, attendance.StatusAbsent))
	store := NewStore(nil) // never refreshed

	result := NewBulkCoordinator(repo, store, 2).Apply(context.Background(),
		[]BulkTarget{{EmployeeID: 1, BaseSalary: decimal.NewFromInt(2000)}}, date, attendance.StatusPresent, "x")

	assert.Empty(t, result.Failures)
	assert.Empty(t, result.Created)
	require.Len(t, result.Updated, 1)
	assert.Equal(t, int64(10), result.Updated[0].IDValue())
	assert.Equal(t, 0, repo.creates)
	assert.Equal(t, 1, repo.lookups)

	held, ok := store.Find(1, date)
	require.True(t, ok)
	assert.Equal(t, int64(10), held.IDValue())
	assert.Equal(t, attendance.StatusPresent, held.Status)
}

func TestBulkCoordinator_StoreHitSkipsRepositoryLookup(t *testing.T) {
	date := day(2024, 3, 5)
	existing := record(10, 1, date, attendance.StatusAbsent)
	repo := newFakeAttendanceRepo(existing)
	store := NewStore(nil)
	store.Replace([]attendance.Attendance{existing})

	result := NewBulkCoordinator(repo, store, 1).Apply(context.Background(),
		[]BulkTarget{{EmployeeID: 1}}, date, attendance.StatusPresent, "x")

	require.Len(t, result.Updated, 1)
	assert.Equal(t, 0, repo.lookups)
}

func TestBulkCoordinator_LookupFailureIsReported(t *testing.T) {
	repo := newFakeAttendanceRepo()
	repo.lookupErr = errBackend

	result := NewBulkCoordinator(repo, NewStore(nil), 2).Apply(context.Background(),
		[]BulkTarget{{EmployeeID: 1}, {EmployeeID: 2}}, day(2024, 3, 5), attendance.StatusPresent, "x")

	assert.True(t, result.AllFailed())
	require.Len(t, result.Failures, 2)
	for _, f := range result.Failures {
		assert.Equal(t, attendance.OpFetch, f.Op)
		assert.True(t, errors.Is(f, errBackend))
	}
	assert.Equal(t, 0, repo.creates)
}
