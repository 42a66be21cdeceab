/*
store.go - Persistence interfaces for the two durable entities

PURPOSE:
  The engine computes; it does not persist. These interfaces are what the
  directory and leave ledger are built on. Implementations live in
  store/sqlite (production) and store/memory (tests/dev).

CONTRACTS:
  - InsertIntern fails with DuplicateCodeError on an employee-code collision.
  - InsertLeave fails with DuplicateLeaveError, carrying the existing record,
    on a (intern_id, leave_date) collision.
  - Get* return the NotFound sentinels for unknown ids, never zero values.
  - ListInterns is ordered by creation; ListLeave by leave date descending.
*/
package engine

import "context"

// InternStore persists intern records.
type InternStore interface {
	// InsertIntern stores a new record. The employee code is unique across
	// all interns, active or not.
	InsertIntern(ctx context.Context, rec InternRecord) error

	// GetIntern returns ErrInternNotFound for unknown ids.
	GetIntern(ctx context.Context, id InternID) (InternRecord, error)

	// ListInterns returns records ordered by creation time.
	// StatusAny returns every record.
	ListInterns(ctx context.Context, status Status) ([]InternRecord, error)
}

// LeaveStore persists leave records.
type LeaveStore interface {
	// InsertLeave stores a new record, enforcing (intern, date) uniqueness.
	InsertLeave(ctx context.Context, rec LeaveRecord) error

	// GetLeave returns ErrLeaveNotFound for unknown ids.
	GetLeave(ctx context.Context, id LeaveID) (LeaveRecord, error)

	// DeleteLeave removes a record, ErrLeaveNotFound if absent.
	DeleteLeave(ctx context.Context, id LeaveID) error

	// ListLeave returns an intern's records with dates inside p,
	// most recent date first.
	ListLeave(ctx context.Context, internID InternID, p Period) ([]LeaveRecord, error)

	// AllLeave returns every record for an intern, in no guaranteed order.
	// Feeds LeaveCalendar construction.
	AllLeave(ctx context.Context, internID InternID) ([]LeaveRecord, error)
}
