package attendance

import (
	"math"
	"time"

	"github.com/shopspring/decimal"
)

// PeriodSummary aggregates one month of attendance. Month is 0-based (0 = January).
type PeriodSummary struct {
	EmployeeID          int64
	Month               int
	Year                int
	PresentDays         int
	AbsentDays          int
	HalfDays            int
	OvertimeDays        int
	TotalDays           int
	TotalSalary         decimal.Decimal
	TotalOvertimeSalary decimal.Decimal
	TotalOvertimeHours  float64
}

// ValidPeriod reports whether month (0-11) and year address a real month.
func ValidPeriod(month, year int) bool {
	return month >= 0 && month <= 11 && year > 0
}

// InPeriod reports whether t falls in the 0-based month of year.
func InPeriod(t time.Time, month, year int) bool {
	return t.Year() == year && int(t.Month())-1 == month
}

// Summarize reduces records to the summary of one month. A non-zero employeeID
// restricts the tally to that employee. Records with an unknown status are
// skipped, as are malformed amounts, so the result never holds negative values.
func Summarize(records []Attendance, month, year int, employeeID int64) PeriodSummary {
	summary := PeriodSummary{
		EmployeeID:          employeeID,
		Month:               month,
		Year:                year,
		TotalSalary:         decimal.Zero,
		TotalOvertimeSalary: decimal.Zero,
	}
	if !ValidPeriod(month, year) {
		return summary
	}

	for _, rec := range records {
		if employeeID != 0 && rec.EmployeeID != employeeID {
			continue
		}
		if !InPeriod(rec.Date, month, year) {
			continue
		}

		switch rec.Status {
		case StatusPresent:
			summary.PresentDays++
		case StatusAbsent:
			summary.AbsentDays++
		case StatusHalfDay:
			summary.HalfDays++
		case StatusOvertime:
			summary.OvertimeDays++
			summary.TotalOvertimeSalary = summary.TotalOvertimeSalary.Add(nonNegative(rec.OvertimeSalary))
			summary.TotalOvertimeHours += nonNegativeHours(rec.OvertimeHours)
		default:
			continue
		}

		summary.TotalDays++
		if rec.TotalSalary != nil {
			summary.TotalSalary = summary.TotalSalary.Add(nonNegative(*rec.TotalSalary))
		}
	}

	return summary
}

// AttendanceRate weights half days at 0.5 and overtime at 1, as a percentage in [0, 100].
func (s PeriodSummary) AttendanceRate() float64 {
	return attendanceRate(s.PresentDays, s.HalfDays, s.OvertimeDays, s.TotalDays)
}

func attendanceRate(present, half, overtime, total int) float64 {
	if total <= 0 {
		return 0
	}
	rate := (float64(present) + float64(half)*0.5 + float64(overtime)) / float64(total) * 100
	return math.Max(0, math.Min(100, rate))
}

// StatusCounts is the unscoped tally shown next to a filtered list.
type StatusCounts struct {
	Present   int
	Absent    int
	HalfDay   int
	Overtime  int
	TotalDays int
}

func CountByStatus(records []Attendance) StatusCounts {
	var counts StatusCounts
	for _, rec := range records {
		switch rec.Status {
		case StatusPresent:
			counts.Present++
		case StatusAbsent:
			counts.Absent++
		case StatusHalfDay:
			counts.HalfDay++
		case StatusOvertime:
			counts.Overtime++
		default:
			continue
		}
		counts.TotalDays++
	}
	return counts
}

func (c StatusCounts) AttendanceRate() float64 {
	return attendanceRate(c.Present, c.HalfDay, c.Overtime, c.TotalDays)
}

func nonNegative(d decimal.Decimal) decimal.Decimal {
	if d.IsNegative() {
		return decimal.Zero
	}
	return d
}

func nonNegativeHours(h float64) float64 {
	if math.IsNaN(h) || math.IsInf(h, 0) || h < 0 {
		return 0
	}
	return h
}
