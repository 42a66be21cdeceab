/*
Package engine is the accrual and statistics core.

PURPOSE:
  Converts an intern's daily wage and work-time window into a continuously
  accruing earnings figure, and aggregates completed days, leave days, and
  period totals. Everything here is a pure function of
  (InternRecord, set of LeaveRecords, instant): there is no cached or
  mutable derived state, so a backfilled absence self-corrects on the next
  computation with no reconciliation step.

KEY CONCEPTS IN THIS FILE (types.go):
  - InternRecord: the durable entity carrying wage, work window, hire date
  - LeaveRecord:  one whole non-accruing calendar date for one intern
  - AccrualSnapshot / PeriodStatistics: derived read models, never stored

DESIGN PRINCIPLES:
  1. Precision: decimal.Decimal for all money; division never pre-rounded
  2. Derivation: snapshots and statistics are recomputed on every request
  3. Type safety: InternID and LeaveID are distinct string types

SEE ALSO:
  - accrual.go: snapshot computation
  - stats.go:   period aggregation
  - time.go:    Date / TimeOfDay / Period calendar arithmetic
*/
package engine

import (
	"time"

	"github.com/shopspring/decimal"
)

// =============================================================================
// IDENTIFIERS
// =============================================================================

type InternID string
type LeaveID string

// =============================================================================
// INTERN RECORD - Durable entity owned by the directory
// =============================================================================

type Status string

const (
	// StatusAny is the empty filter value: no status restriction.
	StatusAny      Status = ""
	StatusActive   Status = "active"
	StatusInactive Status = "inactive"
)

func (s Status) Valid() bool {
	return s == StatusActive || s == StatusInactive
}

type InternRecord struct {
	ID           InternID
	EmployeeCode string
	Name         string
	Phone        string
	Department   string

	// DailyWage is positive; WorkEnd is strictly after WorkStart.
	// Both are validated at creation time, so computation treats a
	// zero-length window as an invariant violation, not an error path.
	DailyWage decimal.Decimal
	WorkStart TimeOfDay
	WorkEnd   TimeOfDay

	HireDate  Date
	Status    Status
	CreatedAt time.Time
}

// WorkSecondsPerDay is the accrual denominator. Never zero for a
// validated record.
func (r InternRecord) WorkSecondsPerDay() int64 {
	return r.WorkEnd.Seconds() - r.WorkStart.Seconds()
}

// SalaryPerSecond is the exact per-second rate. Display-only: totals are
// computed with a single final division instead of multiplying by this
// pre-divided rate.
func (r InternRecord) SalaryPerSecond() decimal.Decimal {
	return r.DailyWage.Div(decimal.NewFromInt(r.WorkSecondsPerDay()))
}

// =============================================================================
// LEAVE RECORD - Durable entity owned by the leave ledger
// =============================================================================

// LeaveRecord marks one whole calendar date as non-accruing for one intern.
// At most one record exists per (InternID, Date).
type LeaveRecord struct {
	ID        LeaveID
	InternID  InternID
	Date      Date
	Reason    string
	CreatedAt time.Time
}

// =============================================================================
// DERIVED READ MODELS
// =============================================================================

// AccrualSnapshot is a point-in-time view of accrued earnings.
// It has no lifecycle: recomputed on every request, never persisted.
type AccrualSnapshot struct {
	InternID InternID
	AsOf     time.Time

	TodayWorkedSeconds int64
	TodaySalary        decimal.Decimal

	// CompletedDays counts whole prior eligible days since hire. Today is
	// never included, even after the work window closes; it is represented
	// by TodaySalary so the two figures stay independently auditable.
	CompletedDays int
	LeaveDays     int

	TotalSalary       decimal.Decimal
	DailyWage         decimal.Decimal
	SalaryPerSecond   decimal.Decimal
	WorkSecondsPerDay int64
}

// PeriodStatistics aggregates one closed calendar range.
type PeriodStatistics struct {
	InternID InternID
	Period   Period

	// WorkDays counts eligible days strictly before today; an in-progress
	// today contributes its partial accrual to TotalSalary only.
	WorkDays    int
	LeaveDays   int
	TotalSalary decimal.Decimal
}
