package attendance

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFindDuplicates(t *testing.T) {
	late := newRecord(t, 12, 1, "2024-03-05", StatusHalfDay)
	late.Date = late.Date.Add(15 * time.Hour)

	records := []Attendance{
		newRecord(t, 10, 1, "2024-03-05", StatusPresent),
		newRecord(t, 11, 2, "2024-03-05", StatusPresent),
		late,
		newRecord(t, 13, 2, "2024-03-06", StatusAbsent),
	}

	groups := FindDuplicates(records)

	require.Len(t, groups, 1)
	assert.Equal(t, Key{EmployeeID: 1, Day: "2024-03-05"}, groups[0].Key)
	assert.Equal(t, int64(10), groups[0].Records[0].IDValue())
	assert.Equal(t, int64(12), groups[0].Records[1].IDValue())
}

func TestFindDuplicates_None(t *testing.T) {
	groups := FindDuplicates(nil)
	assert.NotNil(t, groups)
	assert.Empty(t, groups)
}

func TestOperationError(t *testing.T) {
	cause := errors.New("connection reset")
	err := error(&OperationError{Op: OpUpdate, EmployeeID: 1, RecordID: 10, Err: cause})

	assert.ErrorIs(t, err, ErrExternalFailure)
	assert.ErrorIs(t, err, cause)
	assert.Equal(t, "update attendance 10 (employee 1): connection reset", err.Error())

	var opErr *OperationError
	require.ErrorAs(t, err, &opErr)
	assert.Equal(t, OpUpdate, opErr.Op)
}

func TestConflictError(t *testing.T) {
	err := error(&ConflictError{EmployeeID: 1, Date: "2024-03-05", ExistingID: 10})

	assert.ErrorIs(t, err, ErrDuplicateAttendance)
	assert.NotErrorIs(t, err, ErrExternalFailure)
}
