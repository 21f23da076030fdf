package attendance

import (
	"github.com/emp-proj/employee-register-go/internal/domain/attendance"
	"github.com/shopspring/decimal"
)

var two = decimal.NewFromInt(2)

// dailySalary is the pay one attendance record earns: a full base salary when
// present, half of it on a half day, base plus overtime pay on an overtime day
// and nothing when absent.
func dailySalary(status attendance.Status, baseSalary, overtimeSalary decimal.Decimal) decimal.Decimal {
	if baseSalary.IsNegative() {
		baseSalary = decimal.Zero
	}
	if overtimeSalary.IsNegative() {
		overtimeSalary = decimal.Zero
	}

	switch status {
	case attendance.StatusPresent:
		return baseSalary
	case attendance.StatusHalfDay:
		return baseSalary.Div(two)
	case attendance.StatusOvertime:
		return baseSalary.Add(overtimeSalary)
	default:
		return decimal.Zero
	}
}

// withSalary recomputes the stored total of rec and clears overtime details on
// records that are not overtime.
func withSalary(rec attendance.Attendance, baseSalary decimal.Decimal) attendance.Attendance {
	if rec.Status != attendance.StatusOvertime {
		rec.OvertimeDescription = ""
		rec.OvertimeHours = 0
		rec.OvertimeSalary = decimal.Zero
	}
	total := dailySalary(rec.Status, baseSalary, rec.OvertimeSalary)
	rec.TotalSalary = &total
	return rec
}
