package dashboard

import "github.com/emp-proj/employee-register-go/internal/domain/attendance"

// DashboardResponse is the combined response for the main dashboard endpoint
type DashboardResponse struct {
	Month           string                     `json:"month"` // Format: "YYYY-MM"
	MonthlySummary  attendance.SummaryResponse `json:"monthly_summary"`
	Today           DailyAttendanceResponse    `json:"today"`
	ActiveEmployees int                        `json:"active_employees"`
	SnapshotAt      string                     `json:"snapshot_at,omitempty"`
}

// DailyAttendanceResponse counts today's records per status. Unmarked is the
// number of active employees without a record for the day.
type DailyAttendanceResponse struct {
	Date           string  `json:"date"` // Format: "YYYY-MM-DD"
	Present        int     `json:"present"`
	Absent         int     `json:"absent"`
	HalfDay        int     `json:"halfday"`
	Overtime       int     `json:"overtime"`
	Marked         int     `json:"marked"`
	Unmarked       int     `json:"unmarked"`
	AttendanceRate float64 `json:"attendance_rate"`
}
