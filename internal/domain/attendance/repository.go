package attendance

import (
	"context"
	"time"
)

// RecordSource returns the full current attendance collection.
type RecordSource interface {
	FetchAll(ctx context.Context) ([]Attendance, error)
}

// RecordWriter persists one record per call; a failed call does not affect others.
type RecordWriter interface {
	Create(ctx context.Context, attendance Attendance) (Attendance, error)
	Update(ctx context.Context, attendance Attendance) (Attendance, error)
	Delete(ctx context.Context, id int64) error
}

// RecordLookup finds the record an employee holds on a date.
type RecordLookup interface {
	// GetByEmployeeAndDate returns nil when the employee has no record on date
	GetByEmployeeAndDate(ctx context.Context, employeeID int64, date time.Time) (*Attendance, error)
}

// AttendanceRepository defines data access methods for attendance records.
type AttendanceRepository interface {
	RecordSource
	RecordWriter
	RecordLookup

	// GetByID retrieves attendance by ID
	GetByID(ctx context.Context, id int64) (Attendance, error)

	// DeleteByEmployee removes every record of an employee and returns the count
	DeleteByEmployee(ctx context.Context, employeeID int64) (int64, error)
}
