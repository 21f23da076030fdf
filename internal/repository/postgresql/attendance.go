package postgresql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/emp-proj/employee-register-go/internal/domain/attendance"
	"github.com/emp-proj/employee-register-go/internal/domain/employee"
	"github.com/emp-proj/employee-register-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/shopspring/decimal"
)

const (
	uniqueViolationCode     = "23505"
	foreignKeyViolationCode = "23503"
)

const attendanceColumns = `id, emp_id, date, status, description, overtime_description,
		overtime_hours, overtime_salary, total_salary, created_at, updated_at`

type attendanceRepository struct {
	db database.Querier
}

func NewAttendanceRepository(db database.Querier) attendance.AttendanceRepository {
	return &attendanceRepository{
		db: db,
	}
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanAttendance(row rowScanner) (attendance.Attendance, error) {
	var (
		att    attendance.Attendance
		id     int64
		status string
	)
	err := row.Scan(
		&id, &att.EmployeeID, &att.Date, &status, &att.Description, &att.OvertimeDescription,
		&att.OvertimeHours, &att.OvertimeSalary, &att.TotalSalary, &att.CreatedAt, &att.UpdatedAt,
	)
	if err != nil {
		return attendance.Attendance{}, err
	}
	att.ID = &id
	att.Status = attendance.Status(status)
	return att, nil
}

// translateAttendancePgError maps constraint violations to domain errors.
func translateAttendancePgError(err error, att attendance.Attendance) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case uniqueViolationCode:
			return &attendance.ConflictError{
				EmployeeID: att.EmployeeID,
				Date:       att.Date.Format(attendance.DateLayout),
			}
		case foreignKeyViolationCode:
			return fmt.Errorf("employee %d: %w", att.EmployeeID, employee.ErrEmployeeNotFound)
		}
	}
	return err
}

// FetchAll implements attendance.RecordSource.
func (a *attendanceRepository) FetchAll(ctx context.Context) ([]attendance.Attendance, error) {
	q := GetQuerier(ctx, a.db)

	query := `SELECT ` + attendanceColumns + `
		FROM attendance
		ORDER BY date ASC, id ASC`

	rows, err := q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch attendance: %w", err)
	}
	defer rows.Close()

	records := make([]attendance.Attendance, 0)
	for rows.Next() {
		att, err := scanAttendance(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan attendance: %w", err)
		}
		records = append(records, att)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate attendance: %w", err)
	}

	return records, nil
}

// Create implements attendance.RecordWriter.
func (a *attendanceRepository) Create(ctx context.Context, newAttendance attendance.Attendance) (attendance.Attendance, error) {
	q := GetQuerier(ctx, a.db)

	query := `
		INSERT INTO attendance (
			emp_id, date, status, description, overtime_description,
			overtime_hours, overtime_salary, total_salary
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8
		) RETURNING id, created_at, updated_at
	`

	var id int64
	err := q.QueryRow(ctx, query,
		newAttendance.EmployeeID,
		newAttendance.Date,
		string(newAttendance.Status),
		newAttendance.Description,
		newAttendance.OvertimeDescription,
		newAttendance.OvertimeHours,
		newAttendance.OvertimeSalary,
		nullableDecimal(newAttendance.TotalSalary),
	).Scan(&id, &newAttendance.CreatedAt, &newAttendance.UpdatedAt)

	if err != nil {
		return attendance.Attendance{}, translateAttendancePgError(err, newAttendance)
	}

	newAttendance.ID = &id
	return newAttendance, nil
}

// Update implements attendance.RecordWriter. Employee and date are part of the update
// so a bulk overwrite keeps the slot it was looked up by.
func (a *attendanceRepository) Update(ctx context.Context, att attendance.Attendance) (attendance.Attendance, error) {
	if att.ID == nil {
		return attendance.Attendance{}, attendance.ErrAttendanceNotFound
	}
	q := GetQuerier(ctx, a.db)

	query := `
		UPDATE attendance SET
			emp_id = $2,
			date = $3,
			status = $4,
			description = $5,
			overtime_description = $6,
			overtime_hours = $7,
			overtime_salary = $8,
			total_salary = $9,
			updated_at = NOW()
		WHERE id = $1
		RETURNING created_at, updated_at
	`

	err := q.QueryRow(ctx, query,
		*att.ID,
		att.EmployeeID,
		att.Date,
		string(att.Status),
		att.Description,
		att.OvertimeDescription,
		att.OvertimeHours,
		att.OvertimeSalary,
		nullableDecimal(att.TotalSalary),
	).Scan(&att.CreatedAt, &att.UpdatedAt)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return attendance.Attendance{}, attendance.ErrAttendanceNotFound
		}
		return attendance.Attendance{}, translateAttendancePgError(err, att)
	}

	return att, nil
}

// Delete implements attendance.RecordWriter.
func (a *attendanceRepository) Delete(ctx context.Context, id int64) error {
	q := GetQuerier(ctx, a.db)

	tag, err := q.Exec(ctx, `DELETE FROM attendance WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete attendance: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return attendance.ErrAttendanceNotFound
	}
	return nil
}

// GetByID implements attendance.AttendanceRepository.
func (a *attendanceRepository) GetByID(ctx context.Context, id int64) (attendance.Attendance, error) {
	q := GetQuerier(ctx, a.db)

	query := `SELECT ` + attendanceColumns + `
		FROM attendance
		WHERE id = $1`

	att, err := scanAttendance(q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return attendance.Attendance{}, attendance.ErrAttendanceNotFound
		}
		return attendance.Attendance{}, fmt.Errorf("failed to get attendance by ID: %w", err)
	}

	return att, nil
}

// GetByEmployeeAndDate implements attendance.AttendanceRepository.
func (a *attendanceRepository) GetByEmployeeAndDate(ctx context.Context, employeeID int64, date time.Time) (*attendance.Attendance, error) {
	q := GetQuerier(ctx, a.db)

	query := `SELECT ` + attendanceColumns + `
		FROM attendance
		WHERE emp_id = $1
		  AND date = $2
		LIMIT 1`

	att, err := scanAttendance(q.QueryRow(ctx, query, employeeID, date))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil // No existing attendance found
		}
		return nil, fmt.Errorf("failed to get attendance by employee and date: %w", err)
	}

	return &att, nil
}

// DeleteByEmployee implements attendance.AttendanceRepository.
func (a *attendanceRepository) DeleteByEmployee(ctx context.Context, employeeID int64) (int64, error) {
	q := GetQuerier(ctx, a.db)

	tag, err := q.Exec(ctx, `DELETE FROM attendance WHERE emp_id = $1`, employeeID)
	if err != nil {
		return 0, fmt.Errorf("failed to delete attendance of employee %d: %w", employeeID, err)
	}
	return tag.RowsAffected(), nil
}

func nullableDecimal(d *decimal.Decimal) interface{} {
	if d == nil {
		return nil
	}
	return *d
}
