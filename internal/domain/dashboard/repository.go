package dashboard

import (
	"context"
	"time"

	"github.com/emp-proj/employee-register-go/internal/domain/attendance"
	"github.com/emp-proj/employee-register-go/internal/domain/employee"
)

// AttendanceSnapshot is the in-memory record set the dashboard reads from.
type AttendanceSnapshot interface {
	Snapshot() []attendance.Attendance
	LoadedAt() time.Time
}

// ActiveEmployees lists the employees counted on the dashboard.
type ActiveEmployees interface {
	ListActive(ctx context.Context) ([]employee.Employee, error)
}
