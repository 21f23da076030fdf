package attendance

import (
	"strings"
	"time"
)

// FilterSpec selects attendance records. The zero value matches everything.
type FilterSpec struct {
	EmployeeID int64 // 0 means all employees
	Status     Status
	From       *time.Time
	To         *time.Time
	Search     string
}

// NameResolver maps an employee id to its display name.
type NameResolver interface {
	NameOf(employeeID int64) (string, bool)
}

type Matcher func(Attendance) bool

// NewMatcher compiles spec into a single predicate. Every active clause must hold.
func NewMatcher(spec FilterSpec, names NameResolver) Matcher {
	var clauses []Matcher

	if spec.EmployeeID != 0 {
		id := spec.EmployeeID
		clauses = append(clauses, func(a Attendance) bool {
			return a.EmployeeID == id
		})
	}

	if spec.Status != "" && spec.Status != StatusAll {
		status := spec.Status
		clauses = append(clauses, func(a Attendance) bool {
			return a.Status == status
		})
	}

	// Bounds compare calendar days, so an upper bound covers its whole day.
	if spec.From != nil {
		from := CivilDay(*spec.From)
		clauses = append(clauses, func(a Attendance) bool {
			return !CivilDay(a.Date).Before(from)
		})
	}

	if spec.To != nil {
		to := CivilDay(*spec.To)
		clauses = append(clauses, func(a Attendance) bool {
			return !CivilDay(a.Date).After(to)
		})
	}

	if term := strings.ToLower(strings.TrimSpace(spec.Search)); term != "" {
		clauses = append(clauses, func(a Attendance) bool {
			if names != nil {
				if name, ok := names.NameOf(a.EmployeeID); ok && strings.Contains(strings.ToLower(name), term) {
					return true
				}
			}
			return strings.Contains(strings.ToLower(a.Description), term) ||
				strings.Contains(strings.ToLower(a.OvertimeDescription), term)
		})
	}

	return func(a Attendance) bool {
		for _, match := range clauses {
			if !match(a) {
				return false
			}
		}
		return true
	}
}

// Filter returns the records accepted by m, preserving order. records is not modified.
func Filter(records []Attendance, m Matcher) []Attendance {
	result := make([]Attendance, 0, len(records))
	for _, rec := range records {
		if m == nil || m(rec) {
			result = append(result, rec)
		}
	}
	return result
}
