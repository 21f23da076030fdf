package attendance

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/emp-proj/employee-register-go/internal/domain/attendance"
	"github.com/emp-proj/employee-register-go/internal/domain/employee"
	"github.com/shopspring/decimal"
)

var errBackend = errors.New("backend unavailable")

type fakeAttendanceRepo struct {
	mu        sync.Mutex
	records   map[int64]attendance.Attendance
	nextID    int64
	failFor   map[int64]bool // employee ids whose writes fail
	fetchErr  error
	lookupErr error
	creates   int
	updates   int
	lookups   int
	dupOnSave bool
}

func newFakeAttendanceRepo(records ...attendance.Attendance) *fakeAttendanceRepo {
	repo := &fakeAttendanceRepo{
		records: make(map[int64]attendance.Attendance),
		nextID:  100,
		failFor: make(map[int64]bool),
	}
	for _, rec := range records {
		repo.records[rec.IDValue()] = rec
	}
	return repo
}

func (f *fakeAttendanceRepo) FetchAll(ctx context.Context) ([]attendance.Attendance, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.fetchErr != nil {
		return nil, f.fetchErr
	}
	out := make([]attendance.Attendance, 0, len(f.records))
	for _, rec := range f.records {
		out = append(out, rec)
	}
	return out, nil
}

func (f *fakeAttendanceRepo) Create(ctx context.Context, rec attendance.Attendance) (attendance.Attendance, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.creates++
	if f.failFor[rec.EmployeeID] {
		return attendance.Attendance{}, errBackend
	}
	if f.dupOnSave {
		return attendance.Attendance{}, &attendance.ConflictError{EmployeeID: rec.EmployeeID}
	}
	f.nextID++
	id := f.nextID
	rec.ID = &id
	rec.CreatedAt = time.Date(2024, 3, 5, 8, 0, 0, 0, time.UTC)
	rec.UpdatedAt = rec.CreatedAt
	f.records[id] = rec
	return rec, nil
}

func (f *fakeAttendanceRepo) Update(ctx context.Context, rec attendance.Attendance) (attendance.Attendance, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.updates++
	if f.failFor[rec.EmployeeID] {
		return attendance.Attendance{}, errBackend
	}
	if _, ok := f.records[rec.IDValue()]; !ok {
		return attendance.Attendance{}, attendance.ErrAttendanceNotFound
	}
	f.records[rec.IDValue()] = rec
	return rec, nil
}

func (f *fakeAttendanceRepo) Delete(ctx context.Context, id int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.records[id]; !ok {
		return attendance.ErrAttendanceNotFound
	}
	delete(f.records, id)
	return nil
}

func (f *fakeAttendanceRepo) GetByID(ctx context.Context, id int64) (attendance.Attendance, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	rec, ok := f.records[id]
	if !ok {
		return attendance.Attendance{}, attendance.ErrAttendanceNotFound
	}
	return rec, nil
}

func (f *fakeAttendanceRepo) GetByEmployeeAndDate(ctx context.Context, employeeID int64, date time.Time) (*attendance.Attendance, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.lookups++
	if f.lookupErr != nil {
		return nil, f.lookupErr
	}
	for _, rec := range f.records {
		if rec.Key() == attendance.KeyFor(employeeID, date) {
			return &rec, nil
		}
	}
	return nil, nil
}

func (f *fakeAttendanceRepo) DeleteByEmployee(ctx context.Context, employeeID int64) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var n int64
	for id, rec := range f.records {
		if rec.EmployeeID == employeeID {
			delete(f.records, id)
			n++
		}
	}
	return n, nil
}

type fakeEmployeeRepo struct {
	employees []employee.Employee
}

func (f *fakeEmployeeRepo) GetByID(ctx context.Context, id int64) (employee.Employee, error) {
	for _, emp := range f.employees {
		if emp.ID == id {
			return emp, nil
		}
	}
	return employee.Employee{}, employee.ErrEmployeeNotFound
}

func (f *fakeEmployeeRepo) List(ctx context.Context, filter employee.EmployeeFilter) ([]employee.Employee, error) {
	return f.employees, nil
}

func (f *fakeEmployeeRepo) ListActive(ctx context.Context) ([]employee.Employee, error) {
	var active []employee.Employee
	for _, emp := range f.employees {
		if emp.IsActive() {
			active = append(active, emp)
		}
	}
	return active, nil
}

func (f *fakeEmployeeRepo) Create(ctx context.Context, emp employee.Employee) (employee.Employee, error) {
	return emp, nil
}

func (f *fakeEmployeeRepo) Update(ctx context.Context, emp employee.Employee) (employee.Employee, error) {
	return emp, nil
}

func (f *fakeEmployeeRepo) Delete(ctx context.Context, id int64) error {
	return nil
}

func ptr[T any](v T) *T {
	return &v
}

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func record(id, employeeID int64, date time.Time, status attendance.Status) attendance.Attendance {
	return attendance.Attendance{
		ID:         ptr(id),
		EmployeeID: employeeID,
		Date:       date,
		Status:     status,
	}
}

func staff() *fakeEmployeeRepo {
	return &fakeEmployeeRepo{employees: []employee.Employee{
		{ID: 1, Name: "Nimal Perera", Status: employee.StatusActive, BaseSalary: decimal.NewFromInt(2000)},
		{ID: 2, Name: "Kamala Silva", Status: employee.StatusActive, BaseSalary: decimal.NewFromInt(3000)},
		{ID: 3, Name: "Sunil Fernando", Status: employee.StatusInactive, BaseSalary: decimal.NewFromInt(1500)},
	}}
}
