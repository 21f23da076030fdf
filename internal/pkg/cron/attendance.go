package cron

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/emp-proj/employee-register-go/internal/domain/attendance"
)

const (
	JobRefreshSnapshot  = "refresh_attendance_snapshot"
	JobDetectDuplicates = "detect_duplicate_attendance"
)

// AttendanceMaintenance is the part of the attendance service the jobs drive.
type AttendanceMaintenance interface {
	Refresh(ctx context.Context) error
	Conflicts(ctx context.Context) ([]attendance.ConflictResponse, error)
}

type AttendanceJobs struct {
	service AttendanceMaintenance
}

func NewAttendanceJobs(service AttendanceMaintenance) *AttendanceJobs {
	return &AttendanceJobs{service: service}
}

func (j *AttendanceJobs) RegisterJobs(scheduler *Scheduler, refreshInterval, duplicateInterval time.Duration) {
	scheduler.AddJob(JobRefreshSnapshot, refreshInterval, j.RefreshSnapshot)
	scheduler.AddJob(JobDetectDuplicates, duplicateInterval, j.DetectDuplicates)
}

// RefreshSnapshot reloads the in-memory attendance records. A failed reload
// keeps the previous snapshot.
func (j *AttendanceJobs) RefreshSnapshot(ctx context.Context) error {
	if err := j.service.Refresh(ctx); err != nil {
		return fmt.Errorf("failed to refresh attendance snapshot: %w", err)
	}
	return nil
}

// DetectDuplicates logs every (employee, date) slot holding more than one record.
func (j *AttendanceJobs) DetectDuplicates(ctx context.Context) error {
	groups, err := j.service.Conflicts(ctx)
	if err != nil {
		return fmt.Errorf("failed to detect duplicate attendance: %w", err)
	}

	if len(groups) == 0 {
		slog.Debug("Cron: No duplicate attendance found")
		return nil
	}

	for _, g := range groups {
		slog.Warn("Cron: Duplicate attendance detected",
			"employee_id", g.EmployeeID,
			"date", g.Date,
			"record_ids", g.RecordIDs,
		)
	}
	slog.Warn("Cron: Duplicate attendance summary", "groups", len(groups))
	return nil
}
