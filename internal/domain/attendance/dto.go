package attendance

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/emp-proj/employee-register-go/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

// ========================================
// ATTENDANCE DTOs
// ========================================

type CreateAttendanceRequest struct {
	EmployeeID          int64           `json:"employee_id"`
	Date                string          `json:"date"` // YYYY-MM-DD
	Status              Status          `json:"status"`
	Description         string          `json:"description"`
	OvertimeDescription string          `json:"overtime_description"`
	OvertimeHours       float64         `json:"overtime_hours"`
	OvertimeSalary      decimal.Decimal `json:"overtime_salary"`

	// Overwrite turns a duplicate create into an update of the existing record.
	Overwrite bool `json:"-"`
}

func (r *CreateAttendanceRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.EmployeeID <= 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "employee_id",
			Message: "employee_id is required",
		})
	}

	if validator.IsEmpty(r.Date) {
		errs = append(errs, validator.ValidationError{
			Field:   "date",
			Message: "date is required",
		})
	} else if _, valid := validator.IsValidDate(r.Date); !valid {
		errs = append(errs, validator.ValidationError{
			Field:   "date",
			Message: "date must be in YYYY-MM-DD format",
		})
	}

	if !r.Status.IsValid() {
		errs = append(errs, validator.ValidationError{
			Field:   "status",
			Message: "status must be one of: present, absent, halfday, overtime",
		})
	}

	errs = append(errs, validateOvertime(&r.OvertimeHours, &r.OvertimeSalary)...)

	if len(errs) > 0 {
		return errs
	}

	return nil
}

// UpdateAttendanceRequest changes status and description of an existing record.
// Overtime fields are only applied when provided.
type UpdateAttendanceRequest struct {
	ID                  int64            `json:"-"`
	Status              Status           `json:"status"`
	Description         string           `json:"description"`
	OvertimeDescription *string          `json:"overtime_description,omitempty"`
	OvertimeHours       *float64         `json:"overtime_hours,omitempty"`
	OvertimeSalary      *decimal.Decimal `json:"overtime_salary,omitempty"`
}

func (r *UpdateAttendanceRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.ID <= 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "id",
			Message: "id is required",
		})
	}

	if !r.Status.IsValid() {
		errs = append(errs, validator.ValidationError{
			Field:   "status",
			Message: "status must be one of: present, absent, halfday, overtime",
		})
	}

	errs = append(errs, validateOvertime(r.OvertimeHours, r.OvertimeSalary)...)

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type UpdateOvertimeRequest struct {
	ID                  int64           `json:"-"`
	OvertimeDescription string          `json:"overtime_description"`
	OvertimeHours       float64         `json:"overtime_hours"`
	OvertimeSalary      decimal.Decimal `json:"overtime_salary"`
}

func (r *UpdateOvertimeRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.ID <= 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "id",
			Message: "id is required",
		})
	}

	errs = append(errs, validateOvertime(&r.OvertimeHours, &r.OvertimeSalary)...)

	if len(errs) > 0 {
		return errs
	}

	return nil
}

func validateOvertime(hours *float64, salary *decimal.Decimal) validator.ValidationErrors {
	var errs validator.ValidationErrors
	if hours != nil && (*hours < 0 || math.IsNaN(*hours) || math.IsInf(*hours, 0)) {
		errs = append(errs, validator.ValidationError{
			Field:   "overtime_hours",
			Message: "overtime_hours must be a non-negative number",
		})
	}
	if salary != nil && salary.IsNegative() {
		errs = append(errs, validator.ValidationError{
			Field:   "overtime_salary",
			Message: "overtime_salary must not be negative",
		})
	}
	return errs
}

// FilterQuery is the query-string form of FilterSpec.
type FilterQuery struct {
	EmployeeID int64   `json:"employee_id,omitempty"`
	Status     string  `json:"status,omitempty"`
	StartDate  *string `json:"start_date,omitempty"` // YYYY-MM-DD
	EndDate    *string `json:"end_date,omitempty"`   // YYYY-MM-DD
	Search     string  `json:"search,omitempty"`
}

func (f *FilterQuery) validate() validator.ValidationErrors {
	var errs validator.ValidationErrors

	if f.EmployeeID < 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "employee_id",
			Message: "employee_id must be a positive number",
		})
	}

	if f.Status != "" && Status(f.Status) != StatusAll && !Status(f.Status).IsValid() {
		errs = append(errs, validator.ValidationError{
			Field:   "status",
			Message: "status must be one of: all, present, absent, halfday, overtime",
		})
	}

	if f.StartDate != nil && *f.StartDate != "" {
		if _, valid := validator.IsValidDate(*f.StartDate); !valid {
			errs = append(errs, validator.ValidationError{
				Field:   "start_date",
				Message: "start_date must be in YYYY-MM-DD format",
			})
		}
	}

	if f.EndDate != nil && *f.EndDate != "" {
		if _, valid := validator.IsValidDate(*f.EndDate); !valid {
			errs = append(errs, validator.ValidationError{
				Field:   "end_date",
				Message: "end_date must be in YYYY-MM-DD format",
			})
		}
	}

	return errs
}

// Spec converts a validated query into a FilterSpec. Unparseable dates are left open.
func (f FilterQuery) Spec() FilterSpec {
	spec := FilterSpec{
		EmployeeID: f.EmployeeID,
		Status:     Status(f.Status),
		Search:     f.Search,
	}
	if spec.Status == "" {
		spec.Status = StatusAll
	}
	if f.StartDate != nil {
		if d, ok := validator.IsValidDate(*f.StartDate); ok {
			spec.From = &d
		}
	}
	if f.EndDate != nil {
		if d, ok := validator.IsValidDate(*f.EndDate); ok {
			spec.To = &d
		}
	}
	return spec
}

type ListAttendanceQuery struct {
	FilterQuery

	// Pagination
	Page  int `json:"page"`
	Limit int `json:"limit"`
}

func (q *ListAttendanceQuery) Validate() error {
	errs := q.FilterQuery.validate()

	// Page validation
	if q.Page < 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "page",
			Message: "page must be a positive number",
		})
	}
	if q.Page == 0 {
		q.Page = 1 // Default page
	}

	// Limit validation
	if q.Limit < 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "limit",
			Message: "limit must be a positive number",
		})
	}
	if q.Limit == 0 {
		q.Limit = 20 // Default limit
	}
	if q.Limit > 100 {
		errs = append(errs, validator.ValidationError{
			Field:   "limit",
			Message: "limit must not exceed 100",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

// PeriodQuery addresses one month as YYYY-MM. Empty means the current month.
type PeriodQuery struct {
	Period string `json:"period,omitempty"`
}

func (p PeriodQuery) validate() validator.ValidationErrors {
	var errs validator.ValidationErrors
	if p.Period != "" {
		if _, err := time.Parse("2006-01", p.Period); err != nil {
			errs = append(errs, validator.ValidationError{
				Field:   "period",
				Message: "period must be in YYYY-MM format",
			})
		}
	}
	return errs
}

// MonthYear resolves the period to a 0-based month and a year, defaulting to now.
func (p PeriodQuery) MonthYear(now time.Time) (int, int) {
	if p.Period != "" {
		if parsed, err := time.Parse("2006-01", p.Period); err == nil {
			return int(parsed.Month()) - 1, parsed.Year()
		}
	}
	return int(now.Month()) - 1, now.Year()
}

type SummaryQuery struct {
	FilterQuery
	PeriodQuery
}

func (q *SummaryQuery) Validate() error {
	errs := q.FilterQuery.validate()
	errs = append(errs, q.PeriodQuery.validate()...)
	if len(errs) > 0 {
		return errs
	}
	return nil
}

type CalendarQuery struct {
	FilterQuery
	PeriodQuery

	// WeekStart is 0 (Sunday) to 6 (Saturday); nil uses the configured default.
	WeekStart *int `json:"week_start,omitempty"`
}

func (q *CalendarQuery) Validate() error {
	errs := q.FilterQuery.validate()
	errs = append(errs, q.PeriodQuery.validate()...)
	if q.WeekStart != nil && (*q.WeekStart < 0 || *q.WeekStart > 6) {
		errs = append(errs, validator.ValidationError{
			Field:   "week_start",
			Message: "week_start must be between 0 (Sunday) and 6 (Saturday)",
		})
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}

type BulkMarkRequest struct {
	// EmployeeIDs defaults to every active employee when empty.
	EmployeeIDs []int64 `json:"employee_ids"`
	Date        string  `json:"date"` // YYYY-MM-DD
	Status      Status  `json:"status"`
	Description string  `json:"description"`
}

func (r *BulkMarkRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.Date) {
		errs = append(errs, validator.ValidationError{
			Field:   "date",
			Message: "date is required",
		})
	} else if _, valid := validator.IsValidDate(r.Date); !valid {
		errs = append(errs, validator.ValidationError{
			Field:   "date",
			Message: "date must be in YYYY-MM-DD format",
		})
	}

	if !r.Status.IsValid() {
		errs = append(errs, validator.ValidationError{
			Field:   "status",
			Message: "status must be one of: present, absent, halfday, overtime",
		})
	}

	for i, id := range r.EmployeeIDs {
		if id <= 0 {
			errs = append(errs, validator.ValidationError{
				Field:   fmt.Sprintf("employee_ids[%d]", i),
				Message: "employee id must be a positive number",
			})
		}
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

// BulkDescription is the description stored when the request leaves it blank.
func (r BulkMarkRequest) BulkDescription() string {
	if d := strings.TrimSpace(r.Description); d != "" {
		return d
	}
	return fmt.Sprintf("Marked %s via bulk action", r.Status)
}

// ========================================
// RESPONSES
// ========================================

type AttendanceResponse struct {
	ID                  int64            `json:"id"`
	EmployeeID          int64            `json:"employee_id"`
	EmployeeName        string           `json:"employee_name,omitempty"`
	Date                string           `json:"date"`
	Status              Status           `json:"status"`
	Description         string           `json:"description"`
	OvertimeDescription string           `json:"overtime_description,omitempty"`
	OvertimeHours       float64          `json:"overtime_hours"`
	OvertimeSalary      decimal.Decimal  `json:"overtime_salary"`
	TotalSalary         *decimal.Decimal `json:"total_salary,omitempty"`
	CreatedAt           string           `json:"created_at,omitempty"`
	UpdatedAt           string           `json:"updated_at,omitempty"`
}

type StatusCountsResponse struct {
	Present        int     `json:"present"`
	Absent         int     `json:"absent"`
	HalfDay        int     `json:"halfday"`
	Overtime       int     `json:"overtime"`
	TotalDays      int     `json:"total_days"`
	AttendanceRate float64 `json:"attendance_rate"`
}

type ListAttendanceResponse struct {
	TotalCount  int64                `json:"total_count"`
	Page        int                  `json:"page"`
	Limit       int                  `json:"limit"`
	TotalPages  int                  `json:"total_pages"`
	Showing     string               `json:"showing"`
	Stats       StatusCountsResponse `json:"stats"`
	Attendances []AttendanceResponse `json:"attendances"`
}

type SummaryResponse struct {
	EmployeeID          int64           `json:"employee_id"`
	EmployeeName        string          `json:"employee_name,omitempty"`
	Month               int             `json:"month"` // 0 = January
	Year                int             `json:"year"`
	PresentDays         int             `json:"present_days"`
	AbsentDays          int             `json:"absent_days"`
	HalfDays            int             `json:"half_days"`
	OvertimeDays        int             `json:"overtime_days"`
	TotalDays           int             `json:"total_days"`
	TotalSalary         decimal.Decimal `json:"total_salary"`
	TotalOvertimeSalary decimal.Decimal `json:"total_overtime_salary"`
	TotalOvertimeHours  float64         `json:"total_overtime_hours"`
	AttendanceRate      float64         `json:"attendance_rate"`
}

type CalendarDayResponse struct {
	Date           string               `json:"date"`
	IsCurrentMonth bool                 `json:"is_current_month"`
	IsToday        bool                 `json:"is_today"`
	Records        []AttendanceResponse `json:"records"`
}

type CalendarResponse struct {
	Month     int                   `json:"month"` // 0 = January
	Year      int                   `json:"year"`
	WeekStart int                   `json:"week_start"`
	Weeks     int                   `json:"weeks"`
	Days      []CalendarDayResponse `json:"days"`
}

type BulkFailureResponse struct {
	EmployeeID int64  `json:"employee_id"`
	Operation  string `json:"operation"`
	RecordID   int64  `json:"record_id,omitempty"`
	Error      string `json:"error"`
}

type BulkMarkResponse struct {
	OperationID string                `json:"operation_id"`
	Date        string                `json:"date"`
	Status      Status                `json:"status"`
	Created     []int64               `json:"created"`
	Updated     []int64               `json:"updated"`
	Failed      []BulkFailureResponse `json:"failed"`
}

type ConflictResponse struct {
	EmployeeID int64   `json:"employee_id"`
	Date       string  `json:"date"`
	RecordIDs  []int64 `json:"record_ids"`
}
