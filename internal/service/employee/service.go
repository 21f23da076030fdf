package employee

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/emp-proj/employee-register-go/internal/domain/attendance"
	"github.com/emp-proj/employee-register-go/internal/domain/employee"
	"github.com/emp-proj/employee-register-go/internal/pkg/database"
	"github.com/emp-proj/employee-register-go/internal/pkg/validator"
	"github.com/emp-proj/employee-register-go/internal/repository/postgresql"
)

// AttendanceCache is the part of the attendance snapshot an employee delete touches.
type AttendanceCache interface {
	RemoveEmployee(employeeID int64) int
}

type EmployeeServiceImpl struct {
	db             database.Pool
	employeeRepo   employee.EmployeeRepository
	attendanceRepo attendance.AttendanceRepository
	cache          AttendanceCache
	now            func() time.Time
}

func NewEmployeeService(
	db database.Pool,
	employeeRepo employee.EmployeeRepository,
	attendanceRepo attendance.AttendanceRepository,
	cache AttendanceCache,
) *EmployeeServiceImpl {
	return &EmployeeServiceImpl{
		db:             db,
		employeeRepo:   employeeRepo,
		attendanceRepo: attendanceRepo,
		cache:          cache,
		now:            time.Now,
	}
}

// Helper function to map Employee to EmployeeResponse
func mapEmployeeToResponse(emp employee.Employee) employee.EmployeeResponse {
	resp := employee.EmployeeResponse{
		ID:         emp.ID,
		Name:       emp.Name,
		PhoneNo:    emp.PhoneNo,
		Address:    emp.Address,
		Role:       emp.Role,
		BaseSalary: emp.BaseSalary,
		Status:     emp.Status,
	}
	if !emp.JoinDate.IsZero() {
		resp.JoinDate = emp.JoinDate.Format("2006-01-02")
	}
	if !emp.CreatedAt.IsZero() {
		resp.CreatedAt = emp.CreatedAt.Format("2006-01-02 15:04:05")
	}
	if !emp.UpdatedAt.IsZero() {
		resp.UpdatedAt = emp.UpdatedAt.Format("2006-01-02 15:04:05")
	}
	return resp
}

// GetEmployee implements employee.EmployeeService.
func (s *EmployeeServiceImpl) GetEmployee(ctx context.Context, id int64) (employee.EmployeeResponse, error) {
	emp, err := s.employeeRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, employee.ErrEmployeeNotFound) {
			return employee.EmployeeResponse{}, err
		}
		return employee.EmployeeResponse{}, fmt.Errorf("failed to get employee: %w", err)
	}
	return mapEmployeeToResponse(emp), nil
}

// CreateEmployee implements employee.EmployeeService.
func (s *EmployeeServiceImpl) CreateEmployee(ctx context.Context, req employee.CreateEmployeeRequest) (employee.EmployeeResponse, error) {
	if err := req.Validate(); err != nil {
		return employee.EmployeeResponse{}, err
	}

	joinDate := s.now().UTC()
	if d, ok := validator.IsValidDate(req.JoinDate); ok {
		joinDate = d
	}

	created, err := s.employeeRepo.Create(ctx, employee.Employee{
		Name:       req.Name,
		PhoneNo:    req.PhoneNo,
		Address:    req.Address,
		Role:       req.Role,
		JoinDate:   joinDate,
		BaseSalary: req.BaseSalary,
		Status:     req.Status,
	})
	if err != nil {
		return employee.EmployeeResponse{}, fmt.Errorf("failed to create employee: %w", err)
	}

	slog.Info("employee created", "employee_id", created.ID, "status", created.Status)
	return mapEmployeeToResponse(created), nil
}

// UpdateEmployee implements employee.EmployeeService.
func (s *EmployeeServiceImpl) UpdateEmployee(ctx context.Context, req employee.UpdateEmployeeRequest) (employee.EmployeeResponse, error) {
	if err := req.Validate(); err != nil {
		return employee.EmployeeResponse{}, err
	}

	emp, err := s.employeeRepo.GetByID(ctx, req.ID)
	if err != nil {
		if errors.Is(err, employee.ErrEmployeeNotFound) {
			return employee.EmployeeResponse{}, err
		}
		return employee.EmployeeResponse{}, fmt.Errorf("failed to get employee: %w", err)
	}

	emp.Name = req.Name
	emp.PhoneNo = req.PhoneNo
	emp.Address = req.Address
	emp.Role = req.Role
	emp.BaseSalary = req.BaseSalary
	emp.Status = req.Status
	if d, ok := validator.IsValidDate(req.JoinDate); ok {
		emp.JoinDate = d
	}

	updated, err := s.employeeRepo.Update(ctx, emp)
	if err != nil {
		if errors.Is(err, employee.ErrEmployeeNotFound) {
			return employee.EmployeeResponse{}, err
		}
		return employee.EmployeeResponse{}, fmt.Errorf("failed to update employee: %w", err)
	}

	return mapEmployeeToResponse(updated), nil
}

// DeleteEmployee implements employee.EmployeeService. The employee's attendance
// goes in the same transaction.
func (s *EmployeeServiceImpl) DeleteEmployee(ctx context.Context, id int64) error {
	var removed int64
	err := postgresql.WithTransaction(ctx, s.db, func(txCtx context.Context) error {
		n, err := s.attendanceRepo.DeleteByEmployee(txCtx, id)
		if err != nil {
			return err
		}
		removed = n
		return s.employeeRepo.Delete(txCtx, id)
	})
	if err != nil {
		if errors.Is(err, employee.ErrEmployeeNotFound) {
			return err
		}
		return fmt.Errorf("failed to delete employee: %w", err)
	}

	if s.cache != nil {
		s.cache.RemoveEmployee(id)
	}

	slog.Info("employee deleted", "employee_id", id, "attendance_removed", removed)
	return nil
}

// ListEmployees implements employee.EmployeeService.
func (s *EmployeeServiceImpl) ListEmployees(ctx context.Context, filter employee.EmployeeFilter) ([]employee.EmployeeResponse, error) {
	if err := filter.Validate(); err != nil {
		return nil, err
	}

	employees, err := s.employeeRepo.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list employees: %w", err)
	}

	responses := make([]employee.EmployeeResponse, 0, len(employees))
	for _, emp := range employees {
		responses = append(responses, mapEmployeeToResponse(emp))
	}
	return responses, nil
}

// ActiveDirectory implements employee.EmployeeService.
func (s *EmployeeServiceImpl) ActiveDirectory(ctx context.Context) ([]employee.DirectoryEntry, error) {
	employees, err := s.employeeRepo.ListActive(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list active employees: %w", err)
	}

	entries := make([]employee.DirectoryEntry, 0, len(employees))
	for _, emp := range employees {
		entries = append(entries, employee.DirectoryEntry{
			ID:     emp.ID,
			Name:   emp.Name,
			Role:   emp.Role,
			Status: emp.Status,
		})
	}
	return entries, nil
}

var _ employee.EmployeeService = (*EmployeeServiceImpl)(nil)
