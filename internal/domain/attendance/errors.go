package attendance

import (
	"errors"
	"fmt"
)

// Attendance domain errors
var (
	ErrAttendanceNotFound  = errors.New("attendance record not found")
	ErrDuplicateAttendance = errors.New("attendance already recorded for this employee on this date")
	ErrNotOvertime         = errors.New("cannot update overtime details for non-overtime attendance")
	ErrInactiveEmployee    = errors.New("cannot add attendance for inactive employee")
	ErrNoEmployeesToMark   = errors.New("no active employees found")

	// ErrExternalFailure matches every OperationError via errors.Is.
	ErrExternalFailure = errors.New("attendance store operation failed")
)

// Operation names carried by OperationError.
const (
	OpFetch  = "fetch"
	OpCreate = "create"
	OpUpdate = "update"
	OpDelete = "delete"
	OpBulk   = "bulk"
)

// OperationError reports a failed call to the persistence collaborator.
type OperationError struct {
	Op          string
	OperationID string
	EmployeeID  int64
	RecordID    int64
	Err         error
}

func (e *OperationError) Error() string {
	switch {
	case e.RecordID != 0:
		return fmt.Sprintf("%s attendance %d (employee %d): %v", e.Op, e.RecordID, e.EmployeeID, e.Err)
	case e.EmployeeID != 0:
		return fmt.Sprintf("%s attendance for employee %d: %v", e.Op, e.EmployeeID, e.Err)
	default:
		return fmt.Sprintf("%s attendance: %v", e.Op, e.Err)
	}
}

func (e *OperationError) Unwrap() error {
	return e.Err
}

func (e *OperationError) Is(target error) bool {
	return target == ErrExternalFailure
}

// ConflictError is returned when a create would break the one-record-per-day rule.
type ConflictError struct {
	EmployeeID int64
	Date       string
	ExistingID int64
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("employee %d already has attendance %d on %s", e.EmployeeID, e.ExistingID, e.Date)
}

func (e *ConflictError) Unwrap() error {
	return ErrDuplicateAttendance
}
