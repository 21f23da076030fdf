package dashboard

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/emp-proj/employee-register-go/internal/domain/attendance"
	"github.com/emp-proj/employee-register-go/internal/domain/dashboard"
	"github.com/emp-proj/employee-register-go/internal/domain/employee"
	"github.com/emp-proj/employee-register-go/internal/pkg/validator"
	attendanceService "github.com/emp-proj/employee-register-go/internal/service/attendance"
)

type DashboardServiceImpl struct {
	snapshot  dashboard.AttendanceSnapshot
	employees dashboard.ActiveEmployees
	now       func() time.Time
}

func NewDashboardService(snapshot dashboard.AttendanceSnapshot, employees dashboard.ActiveEmployees, now func() time.Time) *DashboardServiceImpl {
	if now == nil {
		now = time.Now
	}
	return &DashboardServiceImpl{
		snapshot:  snapshot,
		employees: employees,
		now:       now,
	}
}

// parseMonth parses YYYY-MM format into a 0-based month, defaults to current month
func parseMonth(month string, now time.Time) (int, int, error) {
	if month == "" {
		return int(now.Month()) - 1, now.Year(), nil
	}

	parsed, err := time.Parse("2006-01", month)
	if err != nil {
		return 0, 0, validator.ValidationErrors{{Field: "month", Message: "month must be in YYYY-MM format"}}
	}
	return int(parsed.Month()) - 1, parsed.Year(), nil
}

// GetDashboard reads one snapshot so the monthly and daily figures agree.
func (s *DashboardServiceImpl) GetDashboard(ctx context.Context, month string) (*dashboard.DashboardResponse, error) {
	now := s.now()
	m, year, err := parseMonth(month, now)
	if err != nil {
		return nil, err
	}

	active, err := s.employees.ListActive(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list active employees: %w", err)
	}

	records := s.snapshot.Snapshot()
	summary := attendance.Summarize(records, m, year, 0)

	resp := &dashboard.DashboardResponse{
		Month:           fmt.Sprintf("%04d-%02d", year, m+1),
		MonthlySummary:  attendanceService.MapSummaryToResponse(summary),
		Today:           dailyStats(records, active, now),
		ActiveEmployees: len(active),
	}
	if loaded := s.snapshot.LoadedAt(); !loaded.IsZero() {
		resp.SnapshotAt = loaded.Format(time.RFC3339)
	}

	slog.Debug("dashboard computed", "month", resp.Month, "records", len(records), "active_employees", len(active))
	return resp, nil
}

// dailyStats counts today's records. Records of employees outside the active
// directory still count toward the totals but not toward Unmarked.
func dailyStats(records []attendance.Attendance, active []employee.Employee, now time.Time) dashboard.DailyAttendanceResponse {
	today := now.Format(attendance.DateLayout)
	stats := dashboard.DailyAttendanceResponse{Date: today}

	var todays []attendance.Attendance
	marked := make(map[int64]bool)
	for _, rec := range records {
		if rec.Date.Format(attendance.DateLayout) != today {
			continue
		}
		todays = append(todays, rec)
		if rec.Status.IsValid() {
			marked[rec.EmployeeID] = true
		}
	}

	counts := attendance.CountByStatus(todays)
	stats.Present = counts.Present
	stats.Absent = counts.Absent
	stats.HalfDay = counts.HalfDay
	stats.Overtime = counts.Overtime
	stats.Marked = counts.TotalDays
	stats.AttendanceRate = counts.AttendanceRate()

	for _, emp := range active {
		if !marked[emp.ID] {
			stats.Unmarked++
		}
	}
	return stats
}
