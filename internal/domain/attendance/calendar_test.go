package attendance

import (
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildCalendar_WholeWeeks(t *testing.T) {
	now := time.Date(2024, time.March, 5, 10, 0, 0, 0, time.UTC)

	for year := 2023; year <= 2025; year++ {
		for month := 0; month < 12; month++ {
			for ws := time.Sunday; ws <= time.Saturday; ws++ {
				grid := BuildCalendar(nil, month, year, now, ws)

				require.NotEmpty(t, grid)
				assert.Zero(t, len(grid)%7)
				assert.GreaterOrEqual(t, len(grid), 28)
				assert.LessOrEqual(t, len(grid), 42)
				assert.Equal(t, ws, grid[0].Date.Weekday())
			}
		}
	}
}

func TestBuildCalendar_March2024(t *testing.T) {
	now := time.Date(2024, time.March, 5, 22, 30, 0, 0, time.UTC)

	grid := BuildCalendar(nil, 2, 2024, now, time.Sunday)

	// March 2024 starts on a Friday and ends on a Sunday.
	require.Len(t, grid, 42)
	assert.Equal(t, "2024-02-25", grid[0].Date.Format(DateLayout))
	assert.False(t, grid[0].IsCurrentMonth)
	assert.Equal(t, "2024-03-01", grid[5].Date.Format(DateLayout))
	assert.True(t, grid[5].IsCurrentMonth)
	assert.Equal(t, "2024-04-06", grid[41].Date.Format(DateLayout))

	today := 0
	for _, day := range grid {
		if day.IsToday {
			today++
			assert.Equal(t, "2024-03-05", day.Date.Format(DateLayout))
		}
		assert.NotNil(t, day.Records)
	}
	assert.Equal(t, 1, today)
}

func TestBuildCalendar_MonthStartingOnWeekStart(t *testing.T) {
	// September 2024 starts on a Sunday.
	grid := BuildCalendar(nil, 8, 2024, time.Time{}, time.Sunday)

	assert.Equal(t, "2024-09-01", grid[0].Date.Format(DateLayout))
	assert.True(t, grid[0].IsCurrentMonth)
}

func TestBuildCalendar_TodayOutsideGrid(t *testing.T) {
	now := time.Date(2024, time.June, 1, 0, 0, 0, 0, time.UTC)

	for _, day := range BuildCalendar(nil, 2, 2024, now, time.Monday) {
		assert.False(t, day.IsToday)
	}
}

func TestBuildCalendar_StableWithinDay(t *testing.T) {
	records := []Attendance{
		newRecord(t, 9, 2, "2024-03-04", StatusAbsent),
		newRecord(t, 3, 1, "2024-03-04", StatusPresent),
		newRecord(t, 5, 1, "2024-02-26", StatusHalfDay),
	}

	grid := BuildCalendar(records, 2, 2024, time.Time{}, time.Monday)

	require.Equal(t, "2024-02-26", grid[0].Date.Format(DateLayout))
	assert.Len(t, grid[0].Records, 1)
	assert.False(t, grid[0].IsCurrentMonth)

	monday := grid[7]
	require.Equal(t, "2024-03-04", monday.Date.Format(DateLayout))
	require.Len(t, monday.Records, 2)
	assert.Equal(t, int64(9), monday.Records[0].IDValue())
	assert.Equal(t, int64(3), monday.Records[1].IDValue())
}

func TestBuildCalendar_Invalid(t *testing.T) {
	assert.Empty(t, BuildCalendar(nil, 12, 2024, time.Time{}, time.Sunday))
	assert.Empty(t, BuildCalendar(nil, 1, 2024, time.Time{}, time.Weekday(7)))
}

func TestBuildCalendar_RoundTripMatchesSummary(t *testing.T) {
	rng := rand.New(rand.NewSource(11))

	for i := 0; i < 30; i++ {
		records := randomRecords(rng, 1+rng.Intn(100))
		for month := 1; month <= 3; month++ {
			flattened := FlattenCurrentMonth(BuildCalendar(records, month, 2024, time.Time{}, time.Weekday(rng.Intn(7))))

			var inMonth []Attendance
			for _, rec := range records {
				if InPeriod(rec.Date, month, 2024) {
					inMonth = append(inMonth, rec)
				}
			}
			assert.ElementsMatch(t, inMonth, flattened)

			want := Summarize(records, month, 2024, 0)
			got := Summarize(flattened, month, 2024, 0)
			assert.Equal(t, want.TotalDays, got.TotalDays)
			assert.True(t, want.TotalSalary.Equal(got.TotalSalary))
			assert.True(t, want.TotalOvertimeSalary.Equal(got.TotalOvertimeSalary))
		}
	}
}
