package attendance

import (
	"context"
	"sync"
	"time"

	"github.com/emp-proj/employee-register-go/internal/domain/attendance"
)

// Store holds the current attendance snapshot. Every view reads from one
// snapshot and mutations land through Merge or Remove.
type Store struct {
	mu       sync.RWMutex
	records  []attendance.Attendance
	loadedAt time.Time
	now      func() time.Time
}

func NewStore(now func() time.Time) *Store {
	if now == nil {
		now = time.Now
	}
	return &Store{now: now}
}

// Refresh replaces the snapshot with everything the source returns.
// On failure the previous snapshot stays in place.
func (s *Store) Refresh(ctx context.Context, source attendance.RecordSource) error {
	records, err := source.FetchAll(ctx)
	if err != nil {
		return &attendance.OperationError{Op: attendance.OpFetch, Err: err}
	}
	s.Replace(records)
	return nil
}

func (s *Store) Replace(records []attendance.Attendance) {
	cp := make([]attendance.Attendance, len(records))
	copy(cp, records)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.records = cp
	s.loadedAt = s.now()
}

// Snapshot returns a copy of the current records.
func (s *Store) Snapshot() []attendance.Attendance {
	s.mu.RLock()
	defer s.mu.RUnlock()
	cp := make([]attendance.Attendance, len(s.records))
	copy(cp, s.records)
	return cp
}

func (s *Store) LoadedAt() time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loadedAt
}

// Find returns the first record held for the employee on date.
func (s *Store) Find(employeeID int64, date time.Time) (attendance.Attendance, bool) {
	key := attendance.KeyFor(employeeID, date)

	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, rec := range s.records {
		if rec.Key() == key {
			return rec, true
		}
	}
	return attendance.Attendance{}, false
}

// FindByID returns the record with id.
func (s *Store) FindByID(id int64) (attendance.Attendance, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, rec := range s.records {
		if rec.IDValue() == id {
			return rec, true
		}
	}
	return attendance.Attendance{}, false
}

// Merge folds records into the snapshot in a single step. A record replaces
// the held one with the same id, else the one in the same (employee, date)
// slot, else it is appended. Later records in the same call win.
func (s *Store) Merge(records ...attendance.Attendance) {
	if len(records) == 0 {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	byID := make(map[int64]int, len(s.records))
	byKey := make(map[attendance.Key]int, len(s.records))
	for i, rec := range s.records {
		if id := rec.IDValue(); id != 0 {
			byID[id] = i
		}
		if _, ok := byKey[rec.Key()]; !ok {
			byKey[rec.Key()] = i
		}
	}

	for _, rec := range records {
		i, ok := -1, false
		if id := rec.IDValue(); id != 0 {
			i, ok = byID[id]
		}
		if !ok {
			i, ok = byKey[rec.Key()]
		}
		if ok {
			// the slot may have moved if the record changed date
			delete(byKey, s.records[i].Key())
			s.records[i] = rec
		} else {
			i = len(s.records)
			s.records = append(s.records, rec)
		}
		if id := rec.IDValue(); id != 0 {
			byID[id] = i
		}
		byKey[rec.Key()] = i
	}
}

// Remove drops the record with id. It reports whether anything was removed.
func (s *Store) Remove(id int64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, rec := range s.records {
		if rec.IDValue() == id {
			s.records = append(s.records[:i], s.records[i+1:]...)
			return true
		}
	}
	return false
}

// RemoveEmployee drops every record of the employee and returns how many went.
func (s *Store) RemoveEmployee(employeeID int64) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	kept := s.records[:0]
	removed := 0
	for _, rec := range s.records {
		if rec.EmployeeID == employeeID {
			removed++
			continue
		}
		kept = append(kept, rec)
	}
	s.records = kept
	return removed
}
