package response

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/emp-proj/employee-register-go/internal/domain/attendance"
	"github.com/emp-proj/employee-register-go/internal/domain/auth"
	"github.com/emp-proj/employee-register-go/internal/domain/employee"
	"github.com/emp-proj/employee-register-go/internal/domain/user"
	"github.com/emp-proj/employee-register-go/internal/pkg/validator"
)

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	HandleErrorWithData(w, err, nil)
}

// HandleErrorWithData is HandleError for operations that carry a partial result,
// which is attached to upstream failures.
func HandleErrorWithData(w http.ResponseWriter, err error, data interface{}) {
	// Check if it's a validation error
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	var conflict *attendance.ConflictError
	if errors.As(err, &conflict) {
		details := map[string]string{
			"employee_id": strconv.FormatInt(conflict.EmployeeID, 10),
			"date":        conflict.Date,
		}
		if conflict.ExistingID != 0 {
			details["existing_id"] = strconv.FormatInt(conflict.ExistingID, 10)
		}
		Conflict(w, attendance.ErrDuplicateAttendance.Error(), details)
		return
	}

	var opErr *attendance.OperationError
	if errors.As(err, &opErr) {
		slog.Error("attendance store operation failed", "op", opErr.Op, "operation_id", opErr.OperationID, "error", opErr.Err)
		details := map[string]string{"operation": opErr.Op}
		if opErr.OperationID != "" {
			details["operation_id"] = opErr.OperationID
		}
		if opErr.EmployeeID != 0 {
			details["employee_id"] = strconv.FormatInt(opErr.EmployeeID, 10)
		}
		if opErr.RecordID != 0 {
			details["record_id"] = strconv.FormatInt(opErr.RecordID, 10)
		}
		BadGateway(w, "Attendance store is unavailable", details, data)
		return
	}

	switch {
	// Auth errors
	case errors.Is(err, auth.ErrInvalidToken):
		Unauthorized(w, err.Error())
	case errors.Is(err, auth.ErrTokenExpired):
		Unauthorized(w, "Token expired")
	case errors.Is(err, auth.ErrMissingToken):
		Unauthorized(w, err.Error())
	case errors.Is(err, user.ErrManagerAccessRequired):
		Forbidden(w, "Manager access required")
	case errors.Is(err, user.ErrInsufficientPermissions):
		Forbidden(w, err.Error())

	// Employee domain errors
	case errors.Is(err, employee.ErrEmployeeNotFound):
		NotFound(w, "Employee not found")

	// Attendance domain errors
	case errors.Is(err, attendance.ErrAttendanceNotFound):
		NotFound(w, "Attendance record not found")
	case errors.Is(err, attendance.ErrDuplicateAttendance):
		Conflict(w, err.Error(), nil)
	case errors.Is(err, attendance.ErrNotOvertime):
		BadRequest(w, err.Error(), nil)
	case errors.Is(err, attendance.ErrInactiveEmployee):
		BadRequest(w, err.Error(), nil)
	case errors.Is(err, attendance.ErrNoEmployeesToMark):
		BadRequest(w, err.Error(), nil)

	// Default
	default:
		slog.Error("unhandled error", "error", err)
		InternalServerError(w, "An unexpected error occurred")
	}
}
