package attendance

import (
	"time"

	"github.com/shopspring/decimal"
)

type Status string

const (
	StatusPresent  Status = "present"
	StatusAbsent   Status = "absent"
	StatusHalfDay  Status = "halfday"
	StatusOvertime Status = "overtime"

	// StatusAll is a filter selector, never stored on a record.
	StatusAll Status = "all"
)

// Statuses lists every storable status.
var Statuses = []Status{StatusPresent, StatusAbsent, StatusHalfDay, StatusOvertime}

func (s Status) IsValid() bool {
	switch s {
	case StatusPresent, StatusAbsent, StatusHalfDay, StatusOvertime:
		return true
	}
	return false
}

type Attendance struct {
	ID                  *int64
	EmployeeID          int64
	Date                time.Time
	Status              Status
	Description         string
	OvertimeDescription string
	OvertimeHours       float64
	OvertimeSalary      decimal.Decimal
	TotalSalary         *decimal.Decimal
	CreatedAt           time.Time
	UpdatedAt           time.Time
}

// Key identifies the (employee, day) slot a record occupies.
type Key struct {
	EmployeeID int64
	Day        string // YYYY-MM-DD
}

func (a Attendance) Key() Key {
	return KeyFor(a.EmployeeID, a.Date)
}

func KeyFor(employeeID int64, date time.Time) Key {
	return Key{EmployeeID: employeeID, Day: date.Format(DateLayout)}
}

// IDValue returns the record id or zero when the record is not persisted yet.
func (a Attendance) IDValue() int64 {
	if a.ID == nil {
		return 0
	}
	return *a.ID
}

const DateLayout = "2006-01-02"

// StartOfDay truncates t to local midnight in t's own location.
func StartOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// CivilDay maps t to midnight UTC of the same calendar date, so dates read in
// different locations compare by year, month and day only.
func CivilDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// SameDay compares calendar dates only.
func SameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}
