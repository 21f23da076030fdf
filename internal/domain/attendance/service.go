package attendance

import (
	"context"
)

// AttendanceService defines business logic for attendance operations
type AttendanceService interface {
	// Create records attendance for one employee and day
	Create(ctx context.Context, req CreateAttendanceRequest) (AttendanceResponse, error)

	// Update changes status/description, recomputing the day's salary
	Update(ctx context.Context, req UpdateAttendanceRequest) (AttendanceResponse, error)

	// UpdateOvertime changes overtime details of an overtime record
	UpdateOvertime(ctx context.Context, req UpdateOvertimeRequest) (AttendanceResponse, error)

	Get(ctx context.Context, id int64) (AttendanceResponse, error)
	Delete(ctx context.Context, id int64) error

	// List filters the current snapshot
	List(ctx context.Context, query ListAttendanceQuery) (ListAttendanceResponse, error)

	// Summary aggregates the filtered snapshot over one month
	Summary(ctx context.Context, query SummaryQuery) (SummaryResponse, error)

	// Calendar projects the filtered snapshot onto a month grid
	Calendar(ctx context.Context, query CalendarQuery) (CalendarResponse, error)

	// BulkMark applies one status to many employees for one date
	BulkMark(ctx context.Context, req BulkMarkRequest) (BulkMarkResponse, error)

	// Conflicts lists (employee, date) slots holding more than one record
	Conflicts(ctx context.Context) ([]ConflictResponse, error)

	// Refresh reloads the snapshot from the store
	Refresh(ctx context.Context) error
}
