package attendance

import (
	"context"
	"log/slog"
	"time"

	"github.com/emp-proj/employee-register-go/internal/domain/attendance"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"
)

const defaultBulkConcurrency = 8

// BulkTarget is one employee a bulk mark applies to.
type BulkTarget struct {
	EmployeeID int64
	BaseSalary decimal.Decimal
}

// BulkMarkResult reports what a bulk mark did. Created and Updated follow the
// order of the targets.
type BulkMarkResult struct {
	OperationID string
	Date        time.Time
	Status      attendance.Status
	Created     []attendance.Attendance
	Updated     []attendance.Attendance
	Failures    []*attendance.OperationError
}

func (r BulkMarkResult) Attempted() int {
	return len(r.Created) + len(r.Updated) + len(r.Failures)
}

// AllFailed reports whether nothing was written.
func (r BulkMarkResult) AllFailed() bool {
	return len(r.Failures) > 0 && len(r.Created) == 0 && len(r.Updated) == 0
}

// BulkRepository is what the coordinator reads and writes through.
type BulkRepository interface {
	attendance.RecordWriter
	attendance.RecordLookup
}

// BulkCoordinator applies one status to many employees for one date. Writes
// run concurrently and a failed write never aborts the others.
type BulkCoordinator struct {
	repo   BulkRepository
	store  *Store
	limit  int
	newID  func() string
}

func NewBulkCoordinator(repo BulkRepository, store *Store, concurrency int) *BulkCoordinator {
	if concurrency <= 0 {
		concurrency = defaultBulkConcurrency
	}
	return &BulkCoordinator{
		repo:   repo,
		store:  store,
		limit:  concurrency,
		newID:  func() string { return uuid.New().String() },
	}
}

type bulkOutcome struct {
	record  attendance.Attendance
	updated bool
	err     *attendance.OperationError
}

// Apply marks every target with status on date. Existing records are looked up
// in the store and updated in place; the rest are created. Successful writes
// are merged into the store together once every write has resolved.
func (c *BulkCoordinator) Apply(ctx context.Context, targets []BulkTarget, date time.Time, status attendance.Status, description string) BulkMarkResult {
	result := BulkMarkResult{
		OperationID: c.newID(),
		Date:        date,
		Status:      status,
		Created:     make([]attendance.Attendance, 0),
		Updated:     make([]attendance.Attendance, 0),
		Failures:    make([]*attendance.OperationError, 0),
	}

	outcomes := make([]bulkOutcome, len(targets))

	var g errgroup.Group
	g.SetLimit(c.limit)

	for i, target := range targets {
		g.Go(func() error {
			outcomes[i] = c.markOne(ctx, result.OperationID, target, date, status, description)
			return nil
		})
	}
	_ = g.Wait()

	merged := make([]attendance.Attendance, 0, len(outcomes))
	for _, out := range outcomes {
		switch {
		case out.err != nil:
			result.Failures = append(result.Failures, out.err)
		case out.updated:
			result.Updated = append(result.Updated, out.record)
			merged = append(merged, out.record)
		default:
			result.Created = append(result.Created, out.record)
			merged = append(merged, out.record)
		}
	}
	c.store.Merge(merged...)

	slog.Info("bulk attendance applied",
		"operation_id", result.OperationID,
		"date", date.Format(attendance.DateLayout),
		"status", status,
		"created", len(result.Created),
		"updated", len(result.Updated),
		"failed", len(result.Failures),
	)

	return result
}

func (c *BulkCoordinator) markOne(ctx context.Context, operationID string, target BulkTarget, date time.Time, status attendance.Status, description string) bulkOutcome {
	existing, err := c.existing(ctx, target.EmployeeID, date)
	if err != nil {
		slog.Warn("bulk attendance lookup failed",
			"operation_id", operationID,
			"employee_id", target.EmployeeID,
			"error", err,
		)
		return bulkOutcome{err: &attendance.OperationError{
			Op:          attendance.OpFetch,
			OperationID: operationID,
			EmployeeID:  target.EmployeeID,
			Err:         err,
		}}
	}

	if existing != nil && existing.ID != nil {
		rec := *existing
		rec.Status = status
		rec.Description = description
		rec = withSalary(rec, target.BaseSalary)

		saved, err := c.repo.Update(ctx, rec)
		if err != nil {
			slog.Warn("bulk attendance update failed",
				"operation_id", operationID,
				"employee_id", target.EmployeeID,
				"attendance_id", *existing.ID,
				"error", err,
			)
			return bulkOutcome{err: &attendance.OperationError{
				Op:          attendance.OpUpdate,
				OperationID: operationID,
				EmployeeID:  target.EmployeeID,
				RecordID:    *existing.ID,
				Err:         err,
			}}
		}
		return bulkOutcome{record: saved, updated: true}
	}

	rec := withSalary(attendance.Attendance{
		EmployeeID:  target.EmployeeID,
		Date:        date,
		Status:      status,
		Description: description,
	}, target.BaseSalary)

	saved, err := c.repo.Create(ctx, rec)
	if err != nil {
		slog.Warn("bulk attendance create failed",
			"operation_id", operationID,
			"employee_id", target.EmployeeID,
			"error", err,
		)
		return bulkOutcome{err: &attendance.OperationError{
			Op:          attendance.OpCreate,
			OperationID: operationID,
			EmployeeID:  target.EmployeeID,
			Err:         err,
		}}
	}
	return bulkOutcome{record: saved}
}

// existing checks the store first and the repository when the snapshot has no match.
func (c *BulkCoordinator) existing(ctx context.Context, employeeID int64, date time.Time) (*attendance.Attendance, error) {
	if rec, ok := c.store.Find(employeeID, date); ok {
		return &rec, nil
	}
	return c.repo.GetByEmployeeAndDate(ctx, employeeID, date)
}
