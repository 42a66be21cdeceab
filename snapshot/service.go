/*
Package snapshot is the boundary-facing read model.

PURPOSE:
  Single entry point the API layer calls for derived figures. Wraps the
  directory, the leave ledger, and the engine's pure math behind the
  consistency guarantee: every computation runs against exactly one
  leave-ledger view (leave.Ledger.View), so a concurrent add/remove is
  wholly reflected or wholly absent - a leave day can never be counted in
  LeaveDays yet still appear as a completed day in the same snapshot.

  Computations are deterministic and side-effect-free; identical calls for
  the same (intern, instant) return identical results.
*/
package snapshot

import (
	"context"
	"time"

	"github.com/drippay/intern-engine/engine"
	"github.com/drippay/intern-engine/leave"
	"github.com/drippay/intern-engine/roster"
)

// Service serves point-in-time snapshots and period rollups.
type Service struct {
	directory *roster.Directory
	ledger    *leave.Ledger
}

func NewService(directory *roster.Directory, ledger *leave.Ledger) *Service {
	return &Service{directory: directory, ledger: ledger}
}

// Snapshot computes the live accrual state of one intern at now.
// engine.ErrInternNotFound for unknown ids.
func (s *Service) Snapshot(ctx context.Context, internID engine.InternID, now time.Time) (engine.AccrualSnapshot, error) {
	rec, err := s.directory.Get(ctx, internID)
	if err != nil {
		return engine.AccrualSnapshot{}, err
	}
	cal, err := s.ledger.View(ctx, internID)
	if err != nil {
		return engine.AccrualSnapshot{}, err
	}
	return engine.ComputeSnapshot(rec, cal, now)
}

// Period computes statistics over an explicit closed date range.
func (s *Service) Period(ctx context.Context, internID engine.InternID, p engine.Period, now time.Time) (engine.PeriodStatistics, error) {
	rec, err := s.directory.Get(ctx, internID)
	if err != nil {
		return engine.PeriodStatistics{}, err
	}
	cal, err := s.ledger.View(ctx, internID)
	if err != nil {
		return engine.PeriodStatistics{}, err
	}
	return engine.ComputePeriod(rec, cal, p, now)
}

// Monthly computes statistics for a calendar month, clamped at today when
// the month is in progress.
func (s *Service) Monthly(ctx context.Context, internID engine.InternID, year int, month time.Month, now time.Time) (engine.PeriodStatistics, error) {
	return s.Period(ctx, internID, engine.MonthPeriod(year, month, engine.DateOf(now)), now)
}

// Yearly computes statistics for a calendar year, clamped at today when
// the year is in progress.
func (s *Service) Yearly(ctx context.Context, internID engine.InternID, year int, now time.Time) (engine.PeriodStatistics, error) {
	return s.Period(ctx, internID, engine.YearPeriod(year, engine.DateOf(now)), now)
}
