package attendance

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"sort"
	"time"

	"github.com/emp-proj/employee-register-go/internal/domain/attendance"
	"github.com/emp-proj/employee-register-go/internal/domain/employee"
	"github.com/emp-proj/employee-register-go/internal/pkg/validator"
)

type AttendanceServiceImpl struct {
	attendanceRepo attendance.AttendanceRepository
	employeeRepo   employee.EmployeeRepository
	store          *Store
	bulk           *BulkCoordinator
	now            func() time.Time
	weekStart      time.Weekday
}

type Options struct {
	WeekStart       time.Weekday
	BulkConcurrency int
	Now             func() time.Time
}

func NewAttendanceService(
	attendanceRepo attendance.AttendanceRepository,
	employeeRepo employee.EmployeeRepository,
	store *Store,
	opts Options,
) *AttendanceServiceImpl {
	now := opts.Now
	if now == nil {
		now = time.Now
	}
	weekStart := opts.WeekStart
	if weekStart < time.Sunday || weekStart > time.Saturday {
		weekStart = time.Sunday
	}
	return &AttendanceServiceImpl{
		attendanceRepo: attendanceRepo,
		employeeRepo:   employeeRepo,
		store:          store,
		bulk:           NewBulkCoordinator(attendanceRepo, store, opts.BulkConcurrency),
		now:            now,
		weekStart:      weekStart,
	}
}

func mapAttendanceToResponse(att attendance.Attendance, names attendance.NameResolver) attendance.AttendanceResponse {
	resp := attendance.AttendanceResponse{
		ID:                  att.IDValue(),
		EmployeeID:          att.EmployeeID,
		Date:                att.Date.Format(attendance.DateLayout),
		Status:              att.Status,
		Description:         att.Description,
		OvertimeDescription: att.OvertimeDescription,
		OvertimeHours:       att.OvertimeHours,
		OvertimeSalary:      att.OvertimeSalary,
		TotalSalary:         att.TotalSalary,
	}
	if names != nil {
		resp.EmployeeName, _ = names.NameOf(att.EmployeeID)
	}
	if !att.CreatedAt.IsZero() {
		resp.CreatedAt = att.CreatedAt.Format(time.RFC3339)
	}
	if !att.UpdatedAt.IsZero() {
		resp.UpdatedAt = att.UpdatedAt.Format(time.RFC3339)
	}
	return resp
}

func mapAttendancesToResponse(records []attendance.Attendance, names attendance.NameResolver) []attendance.AttendanceResponse {
	responses := make([]attendance.AttendanceResponse, 0, len(records))
	for _, att := range records {
		responses = append(responses, mapAttendanceToResponse(att, names))
	}
	return responses
}

// directory loads every employee, active or not, so historic records keep their names.
func (a *AttendanceServiceImpl) directory(ctx context.Context) (employee.Directory, error) {
	employees, err := a.employeeRepo.List(ctx, employee.EmployeeFilter{})
	if err != nil {
		return nil, fmt.Errorf("failed to load employee directory: %w", err)
	}
	return employee.NewDirectory(employees), nil
}

func (a *AttendanceServiceImpl) activeEmployee(ctx context.Context, employeeID int64) (employee.Employee, error) {
	emp, err := a.employeeRepo.GetByID(ctx, employeeID)
	if err != nil {
		return employee.Employee{}, err
	}
	if !emp.IsActive() {
		return employee.Employee{}, attendance.ErrInactiveEmployee
	}
	return emp, nil
}

// existingRecord looks in the snapshot first and falls back to the repository
// since the snapshot may lag behind other writers.
func (a *AttendanceServiceImpl) existingRecord(ctx context.Context, employeeID int64, date time.Time) (*attendance.Attendance, error) {
	if rec, ok := a.store.Find(employeeID, date); ok {
		return &rec, nil
	}
	rec, err := a.attendanceRepo.GetByEmployeeAndDate(ctx, employeeID, date)
	if err != nil {
		return nil, &attendance.OperationError{Op: attendance.OpFetch, EmployeeID: employeeID, Err: err}
	}
	return rec, nil
}

// Create implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) Create(ctx context.Context, req attendance.CreateAttendanceRequest) (attendance.AttendanceResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.AttendanceResponse{}, err
	}
	date, _ := validator.IsValidDate(req.Date)

	emp, err := a.activeEmployee(ctx, req.EmployeeID)
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}

	existing, err := a.existingRecord(ctx, req.EmployeeID, date)
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}

	rec := attendance.Attendance{
		EmployeeID:          req.EmployeeID,
		Date:                date,
		Status:              req.Status,
		Description:         req.Description,
		OvertimeDescription: req.OvertimeDescription,
		OvertimeHours:       req.OvertimeHours,
		OvertimeSalary:      req.OvertimeSalary,
	}
	rec = withSalary(rec, emp.BaseSalary)

	var saved attendance.Attendance
	if existing != nil {
		if !req.Overwrite {
			return attendance.AttendanceResponse{}, &attendance.ConflictError{
				EmployeeID: req.EmployeeID,
				Date:       req.Date,
				ExistingID: existing.IDValue(),
			}
		}
		rec.ID = existing.ID
		rec.CreatedAt = existing.CreatedAt
		saved, err = a.attendanceRepo.Update(ctx, rec)
		if err != nil {
			return attendance.AttendanceResponse{}, writeError(attendance.OpUpdate, rec, err)
		}
		slog.Info("attendance overwritten", "attendance_id", saved.IDValue(), "employee_id", saved.EmployeeID, "date", req.Date)
	} else {
		saved, err = a.attendanceRepo.Create(ctx, rec)
		if err != nil {
			return attendance.AttendanceResponse{}, writeError(attendance.OpCreate, rec, err)
		}
		slog.Info("attendance created", "attendance_id", saved.IDValue(), "employee_id", saved.EmployeeID, "date", req.Date)
	}

	a.store.Merge(saved)
	return mapAttendanceToResponse(saved, employee.NewDirectory([]employee.Employee{emp})), nil
}

// writeError keeps domain errors as they are and wraps everything else as an
// external failure of op.
func writeError(op string, rec attendance.Attendance, err error) error {
	switch {
	case errors.Is(err, attendance.ErrDuplicateAttendance),
		errors.Is(err, attendance.ErrAttendanceNotFound),
		errors.Is(err, employee.ErrEmployeeNotFound):
		return err
	}
	return &attendance.OperationError{
		Op:         op,
		EmployeeID: rec.EmployeeID,
		RecordID:   rec.IDValue(),
		Err:        err,
	}
}

func (a *AttendanceServiceImpl) getRecord(ctx context.Context, id int64) (attendance.Attendance, error) {
	rec, err := a.attendanceRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, attendance.ErrAttendanceNotFound) {
			return attendance.Attendance{}, err
		}
		return attendance.Attendance{}, &attendance.OperationError{Op: attendance.OpFetch, RecordID: id, Err: err}
	}
	return rec, nil
}

func (a *AttendanceServiceImpl) save(ctx context.Context, rec attendance.Attendance) (attendance.AttendanceResponse, error) {
	emp, err := a.employeeRepo.GetByID(ctx, rec.EmployeeID)
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}
	rec = withSalary(rec, emp.BaseSalary)

	saved, err := a.attendanceRepo.Update(ctx, rec)
	if err != nil {
		return attendance.AttendanceResponse{}, writeError(attendance.OpUpdate, rec, err)
	}
	a.store.Merge(saved)

	slog.Info("attendance updated", "attendance_id", saved.IDValue(), "employee_id", saved.EmployeeID, "status", saved.Status)
	return mapAttendanceToResponse(saved, employee.NewDirectory([]employee.Employee{emp})), nil
}

// Update implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) Update(ctx context.Context, req attendance.UpdateAttendanceRequest) (attendance.AttendanceResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.AttendanceResponse{}, err
	}

	rec, err := a.getRecord(ctx, req.ID)
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}

	rec.Status = req.Status
	rec.Description = req.Description
	if req.OvertimeDescription != nil {
		rec.OvertimeDescription = *req.OvertimeDescription
	}
	if req.OvertimeHours != nil {
		rec.OvertimeHours = *req.OvertimeHours
	}
	if req.OvertimeSalary != nil {
		rec.OvertimeSalary = *req.OvertimeSalary
	}

	return a.save(ctx, rec)
}

// UpdateOvertime implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) UpdateOvertime(ctx context.Context, req attendance.UpdateOvertimeRequest) (attendance.AttendanceResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.AttendanceResponse{}, err
	}

	rec, err := a.getRecord(ctx, req.ID)
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}
	if rec.Status != attendance.StatusOvertime {
		return attendance.AttendanceResponse{}, attendance.ErrNotOvertime
	}

	rec.OvertimeDescription = req.OvertimeDescription
	rec.OvertimeHours = req.OvertimeHours
	rec.OvertimeSalary = req.OvertimeSalary

	return a.save(ctx, rec)
}

// Get implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) Get(ctx context.Context, id int64) (attendance.AttendanceResponse, error) {
	rec, err := a.getRecord(ctx, id)
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}

	var names attendance.NameResolver
	if emp, err := a.employeeRepo.GetByID(ctx, rec.EmployeeID); err == nil {
		names = employee.NewDirectory([]employee.Employee{emp})
	}
	return mapAttendanceToResponse(rec, names), nil
}

// Delete implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) Delete(ctx context.Context, id int64) error {
	if err := a.attendanceRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, attendance.ErrAttendanceNotFound) {
			a.store.Remove(id)
			return err
		}
		return &attendance.OperationError{Op: attendance.OpDelete, RecordID: id, Err: err}
	}
	a.store.Remove(id)

	slog.Info("attendance deleted", "attendance_id", id)
	return nil
}

// filtered applies the query filter to the current snapshot.
func (a *AttendanceServiceImpl) filtered(ctx context.Context, query attendance.FilterQuery) ([]attendance.Attendance, employee.Directory, error) {
	dir, err := a.directory(ctx)
	if err != nil {
		return nil, nil, err
	}
	matcher := attendance.NewMatcher(query.Spec(), dir)
	return attendance.Filter(a.store.Snapshot(), matcher), dir, nil
}

// List implements attendance.AttendanceService. Newest records come first.
func (a *AttendanceServiceImpl) List(ctx context.Context, query attendance.ListAttendanceQuery) (attendance.ListAttendanceResponse, error) {
	if err := query.Validate(); err != nil {
		return attendance.ListAttendanceResponse{}, err
	}

	records, dir, err := a.filtered(ctx, query.FilterQuery)
	if err != nil {
		return attendance.ListAttendanceResponse{}, err
	}

	sort.SliceStable(records, func(i, j int) bool {
		if !records[i].Date.Equal(records[j].Date) {
			return records[i].Date.After(records[j].Date)
		}
		return records[i].IDValue() > records[j].IDValue()
	})

	counts := attendance.CountByStatus(records)
	total := len(records)

	// Pages past the end are empty; the multiplication only runs when it cannot overflow.
	start := total
	if query.Page-1 <= total/query.Limit {
		start = min((query.Page-1)*query.Limit, total)
	}
	end := min(start+query.Limit, total)
	page := records[start:end]

	totalPages := int(math.Ceil(float64(total) / float64(query.Limit)))
	showing := fmt.Sprintf("%d-%d of %d", start+1, end, total)
	if total == 0 || start == end {
		showing = fmt.Sprintf("0 of %d", total)
	}

	return attendance.ListAttendanceResponse{
		TotalCount: int64(total),
		Page:       query.Page,
		Limit:      query.Limit,
		TotalPages: totalPages,
		Showing:    showing,
		Stats: attendance.StatusCountsResponse{
			Present:        counts.Present,
			Absent:         counts.Absent,
			HalfDay:        counts.HalfDay,
			Overtime:       counts.Overtime,
			TotalDays:      counts.TotalDays,
			AttendanceRate: counts.AttendanceRate(),
		},
		Attendances: mapAttendancesToResponse(page, dir),
	}, nil
}

// Summary implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) Summary(ctx context.Context, query attendance.SummaryQuery) (attendance.SummaryResponse, error) {
	if err := query.Validate(); err != nil {
		return attendance.SummaryResponse{}, err
	}

	records, dir, err := a.filtered(ctx, query.FilterQuery)
	if err != nil {
		return attendance.SummaryResponse{}, err
	}

	month, year := query.MonthYear(a.now())
	summary := attendance.Summarize(records, month, year, query.EmployeeID)

	resp := MapSummaryToResponse(summary)
	if query.EmployeeID != 0 {
		resp.EmployeeName, _ = dir.NameOf(query.EmployeeID)
	}
	return resp, nil
}

func MapSummaryToResponse(summary attendance.PeriodSummary) attendance.SummaryResponse {
	return attendance.SummaryResponse{
		EmployeeID:          summary.EmployeeID,
		Month:               summary.Month,
		Year:                summary.Year,
		PresentDays:         summary.PresentDays,
		AbsentDays:          summary.AbsentDays,
		HalfDays:            summary.HalfDays,
		OvertimeDays:        summary.OvertimeDays,
		TotalDays:           summary.TotalDays,
		TotalSalary:         summary.TotalSalary,
		TotalOvertimeSalary: summary.TotalOvertimeSalary,
		TotalOvertimeHours:  summary.TotalOvertimeHours,
		AttendanceRate:      summary.AttendanceRate(),
	}
}

// Calendar implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) Calendar(ctx context.Context, query attendance.CalendarQuery) (attendance.CalendarResponse, error) {
	if err := query.Validate(); err != nil {
		return attendance.CalendarResponse{}, err
	}

	records, dir, err := a.filtered(ctx, query.FilterQuery)
	if err != nil {
		return attendance.CalendarResponse{}, err
	}

	weekStart := a.weekStart
	if query.WeekStart != nil {
		weekStart = time.Weekday(*query.WeekStart)
	}

	now := a.now()
	month, year := query.MonthYear(now)
	grid := attendance.BuildCalendar(records, month, year, now, weekStart)

	days := make([]attendance.CalendarDayResponse, 0, len(grid))
	for _, day := range grid {
		days = append(days, attendance.CalendarDayResponse{
			Date:           day.Date.Format(attendance.DateLayout),
			IsCurrentMonth: day.IsCurrentMonth,
			IsToday:        day.IsToday,
			Records:        mapAttendancesToResponse(day.Records, dir),
		})
	}

	return attendance.CalendarResponse{
		Month:     month,
		Year:      year,
		WeekStart: int(weekStart),
		Weeks:     len(grid) / 7,
		Days:      days,
	}, nil
}

// BulkMark implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) BulkMark(ctx context.Context, req attendance.BulkMarkRequest) (attendance.BulkMarkResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.BulkMarkResponse{}, err
	}
	date, _ := validator.IsValidDate(req.Date)

	active, err := a.employeeRepo.ListActive(ctx)
	if err != nil {
		return attendance.BulkMarkResponse{}, fmt.Errorf("failed to list active employees: %w", err)
	}
	dir := employee.NewDirectory(active)

	ids := req.EmployeeIDs
	if len(ids) == 0 {
		ids = employee.ActiveIDs(active)
	}
	if len(ids) == 0 {
		return attendance.BulkMarkResponse{}, attendance.ErrNoEmployeesToMark
	}

	var errs validator.ValidationErrors
	targets := make([]BulkTarget, 0, len(ids))
	seen := make(map[int64]bool, len(ids))
	for i, id := range ids {
		if seen[id] {
			continue
		}
		seen[id] = true

		emp, ok := dir[id]
		if !ok {
			errs = append(errs, validator.ValidationError{
				Field:   fmt.Sprintf("employee_ids[%d]", i),
				Message: fmt.Sprintf("employee %d is not an active employee", id),
			})
			continue
		}
		targets = append(targets, BulkTarget{EmployeeID: id, BaseSalary: emp.BaseSalary})
	}
	if len(errs) > 0 {
		return attendance.BulkMarkResponse{}, errs
	}

	result := a.bulk.Apply(ctx, targets, date, req.Status, req.BulkDescription())

	resp := attendance.BulkMarkResponse{
		OperationID: result.OperationID,
		Date:        req.Date,
		Status:      req.Status,
		Created:     make([]int64, 0, len(result.Created)),
		Updated:     make([]int64, 0, len(result.Updated)),
		Failed:      make([]attendance.BulkFailureResponse, 0, len(result.Failures)),
	}
	for _, rec := range result.Created {
		resp.Created = append(resp.Created, rec.IDValue())
	}
	for _, rec := range result.Updated {
		resp.Updated = append(resp.Updated, rec.IDValue())
	}
	for _, f := range result.Failures {
		resp.Failed = append(resp.Failed, attendance.BulkFailureResponse{
			EmployeeID: f.EmployeeID,
			Operation:  f.Op,
			RecordID:   f.RecordID,
			Error:      f.Err.Error(),
		})
	}

	if result.AllFailed() {
		return resp, &attendance.OperationError{
			Op:          attendance.OpBulk,
			OperationID: result.OperationID,
			Err:         errors.Join(failureErrors(result.Failures)...),
		}
	}
	return resp, nil
}

func failureErrors(failures []*attendance.OperationError) []error {
	errs := make([]error, 0, len(failures))
	for _, f := range failures {
		errs = append(errs, f)
	}
	return errs
}

// Conflicts implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) Conflicts(ctx context.Context) ([]attendance.ConflictResponse, error) {
	groups := attendance.FindDuplicates(a.store.Snapshot())

	conflicts := make([]attendance.ConflictResponse, 0, len(groups))
	for _, g := range groups {
		ids := make([]int64, 0, len(g.Records))
		for _, rec := range g.Records {
			ids = append(ids, rec.IDValue())
		}
		conflicts = append(conflicts, attendance.ConflictResponse{
			EmployeeID: g.Key.EmployeeID,
			Date:       g.Key.Day,
			RecordIDs:  ids,
		})
	}
	return conflicts, nil
}

// Refresh implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) Refresh(ctx context.Context) error {
	if err := a.store.Refresh(ctx, a.attendanceRepo); err != nil {
		slog.Error("failed to refresh attendance snapshot", "error", err)
		return err
	}
	slog.Info("attendance snapshot refreshed", "records", len(a.store.Snapshot()), "loaded_at", a.store.LoadedAt())
	return nil
}

var _ attendance.AttendanceService = (*AttendanceServiceImpl)(nil)
