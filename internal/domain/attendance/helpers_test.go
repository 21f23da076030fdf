package attendance

import (
	"math/rand"
	"testing"
	"time"

	"github.com/shopspring/decimal"
)

type names map[int64]string

func (n names) NameOf(id int64) (string, bool) {
	name, ok := n[id]
	return name, ok
}

func mustDay(t *testing.T, s string) time.Time {
	t.Helper()
	d, err := time.Parse(DateLayout, s)
	if err != nil {
		t.Fatalf("bad date %q: %v", s, err)
	}
	return d
}

func newRecord(t *testing.T, id, empID int64, date string, status Status) Attendance {
	return Attendance{
		ID:             &id,
		EmployeeID:     empID,
		Date:           mustDay(t, date),
		Status:         status,
		OvertimeSalary: decimal.Zero,
	}
}

// randomRecords spreads n records over February to April 2024.
func randomRecords(rng *rand.Rand, n int) []Attendance {
	start := time.Date(2024, time.February, 1, 0, 0, 0, 0, time.UTC)
	statuses := append([]Status{"late"}, Statuses...)

	records := make([]Attendance, n)
	for i := range records {
		id := int64(i + 1)
		status := statuses[rng.Intn(len(statuses))]
		salary := decimal.NewFromInt(int64(rng.Intn(4000) - 500))
		rec := Attendance{
			ID:          &id,
			EmployeeID:  int64(rng.Intn(5) + 1),
			Date:        start.AddDate(0, 0, rng.Intn(90)).Add(time.Duration(rng.Intn(23)) * time.Hour),
			Status:      status,
			TotalSalary: &salary,
		}
		if status == StatusOvertime {
			rec.OvertimeHours = float64(rng.Intn(6) - 1)
			rec.OvertimeSalary = decimal.NewFromInt(int64(rng.Intn(800) - 100))
		}
		records[i] = rec
	}
	return records
}
