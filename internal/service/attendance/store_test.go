package attendance

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/emp-proj/employee-register-go/internal/domain/attendance"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStore_RefreshReplacesSnapshot(t *testing.T) {
	loaded := time.Date(2024, 3, 5, 9, 0, 0, 0, time.UTC)
	store := NewStore(func() time.Time { return loaded })
	store.Replace([]attendance.Attendance{record(1, 1, day(2024, 3, 1), attendance.StatusAbsent)})

	repo := newFakeAttendanceRepo(record(10, 1, day(2024, 3, 5), attendance.StatusPresent))
	require.NoError(t, store.Refresh(context.Background(), repo))

	snap := store.Snapshot()
	require.Len(t, snap, 1)
	assert.Equal(t, int64(10), snap[0].IDValue())
	assert.Equal(t, loaded, store.LoadedAt())
}

func TestStore_RefreshFailureKeepsSnapshot(t *testing.T) {
	store := NewStore(nil)
	store.Replace([]attendance.Attendance{record(1, 1, day(2024, 3, 1), attendance.StatusAbsent)})

	repo := newFakeAttendanceRepo()
	repo.fetchErr = errBackend

	err := store.Refresh(context.Background(), repo)
	require.Error(t, err)
	assert.True(t, errors.Is(err, attendance.ErrExternalFailure))
	assert.True(t, errors.Is(err, errBackend))

	var opErr *attendance.OperationError
	require.True(t, errors.As(err, &opErr))
	assert.Equal(t, attendance.OpFetch, opErr.Op)
	assert.Len(t, store.Snapshot(), 1)
}

func TestStore_SnapshotIsACopy(t *testing.T) {
	store := NewStore(nil)
	store.Replace([]attendance.Attendance{record(1, 1, day(2024, 3, 1), attendance.StatusAbsent)})

	snap := store.Snapshot()
	snap[0].Status = attendance.StatusPresent

	assert.Equal(t, attendance.StatusAbsent, store.Snapshot()[0].Status)
}

func TestStore_MergeReplacesByIDAndKey(t *testing.T) {
	store := NewStore(nil)
	store.Replace([]attendance.Attendance{
		record(10, 1, day(2024, 3, 5), attendance.StatusAbsent),
		record(11, 2, day(2024, 3, 4), attendance.StatusPresent),
	})

	store.Merge(
		record(10, 1, day(2024, 3, 5), attendance.StatusPresent),
		record(12, 2, day(2024, 3, 5), attendance.StatusHalfDay),
	)

	snap := store.Snapshot()
	require.Len(t, snap, 3)
	assert.Equal(t, attendance.StatusPresent, snap[0].Status)
	assert.Equal(t, int64(12), snap[2].IDValue())

	// one record per key after merge
	assert.Empty(t, attendance.FindDuplicates(snap))
}

func TestStore_MergeLastWins(t *testing.T) {
	store := NewStore(nil)
	store.Merge(
		record(10, 1, day(2024, 3, 5), attendance.StatusAbsent),
		record(10, 1, day(2024, 3, 5), attendance.StatusOvertime),
	)

	snap := store.Snapshot()
	require.Len(t, snap, 1)
	assert.Equal(t, attendance.StatusOvertime, snap[0].Status)
}

func TestStore_FindAndRemove(t *testing.T) {
	store := NewStore(nil)
	store.Replace([]attendance.Attendance{
		record(10, 1, day(2024, 3, 5), attendance.StatusPresent),
		record(11, 1, day(2024, 3, 6), attendance.StatusPresent),
		record(12, 2, day(2024, 3, 6), attendance.StatusPresent),
	})

	rec, ok := store.Find(1, time.Date(2024, 3, 5, 17, 30, 0, 0, time.UTC))
	require.True(t, ok)
	assert.Equal(t, int64(10), rec.IDValue())

	_, ok = store.Find(2, day(2024, 3, 5))
	assert.False(t, ok)

	assert.True(t, store.Remove(10))
	assert.False(t, store.Remove(10))
	_, ok = store.FindByID(10)
	assert.False(t, ok)

	assert.Equal(t, 1, store.RemoveEmployee(1))
	assert.Len(t, store.Snapshot(), 1)
}
