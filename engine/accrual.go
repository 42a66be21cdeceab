/*
accrual.go - "How much has this intern earned, as of this exact instant?"

ALGORITHM (today):
  1. Leave date today            -> zero, regardless of clock time
  2. Before hire date            -> zero
  3. Otherwise clamp the instant's clock time into [WorkStart, WorkEnd]
     and accrue proportionally: today = wage * elapsed / window

ALGORITHM (running total):
  completed_days = whole dates in [hire, today) that are not leave dates
  leave_days     = leave dates strictly before today
  total          = completed_days * wage + today

The current day is never a "completed" day, even after WorkEnd: it lives in
TodaySalary until midnight, so the two figures never double-count the
boundary instant.

PRECISION:
  Today's salary is computed as wage * elapsed / window with one final
  division, rather than multiplying by a pre-divided per-second rate.
  At WorkEnd the division is exact and today equals the full daily wage.
*/
package engine

import (
	"time"

	"github.com/shopspring/decimal"
)

// =============================================================================
// LEAVE CALENDAR - One intern's leave dates as a set
// =============================================================================

type LeaveCalendar map[Date]struct{}

// NewLeaveCalendar builds the date set from ledger records.
// Duplicate dates cannot occur (ledger invariant) but would collapse harmlessly.
func NewLeaveCalendar(records []LeaveRecord) LeaveCalendar {
	cal := make(LeaveCalendar, len(records))
	for _, r := range records {
		cal[r.Date] = struct{}{}
	}
	return cal
}

func (c LeaveCalendar) Contains(d Date) bool {
	_, ok := c[d]
	return ok
}

// CountBefore counts leave dates strictly before d.
func (c LeaveCalendar) CountBefore(d Date) int {
	n := 0
	for ld := range c {
		if ld.Before(d) {
			n++
		}
	}
	return n
}

// CountIn counts leave dates inside the closed range p.
func (c LeaveCalendar) CountIn(p Period) int {
	n := 0
	for ld := range c {
		if p.Contains(ld) {
			n++
		}
	}
	return n
}

// =============================================================================
// SNAPSHOT COMPUTATION
// =============================================================================

// ComputeSnapshot derives the full accrual state of one intern at one
// instant. Pure: identical inputs give identical snapshots, so any number
// of concurrent calls for the same (intern, instant) agree.
func ComputeSnapshot(rec InternRecord, cal LeaveCalendar, now time.Time) (AccrualSnapshot, error) {
	window := rec.WorkSecondsPerDay()
	if window <= 0 {
		return AccrualSnapshot{}, ErrInvalidWorkWindow
	}

	today := DateOf(now)
	elapsed := todayWorkedSeconds(rec, cal, today, TimeOfDayOf(now))
	todaySalary := salaryForSeconds(rec.DailyWage, elapsed, window)

	completed := 0
	if span := DaysBetween(rec.HireDate, today); span > 0 {
		completed = span - cal.CountIn(Period{Start: rec.HireDate, End: today.AddDays(-1)})
	}

	total := rec.DailyWage.Mul(decimal.NewFromInt(int64(completed))).Add(todaySalary)

	return AccrualSnapshot{
		InternID:           rec.ID,
		AsOf:               now,
		TodayWorkedSeconds: elapsed,
		TodaySalary:        todaySalary,
		CompletedDays:      completed,
		LeaveDays:          cal.CountBefore(today),
		TotalSalary:        total,
		DailyWage:          rec.DailyWage,
		SalaryPerSecond:    rec.SalaryPerSecond(),
		WorkSecondsPerDay:  window,
	}, nil
}

// todayWorkedSeconds applies the leave/hire/clamp rules for the current day.
func todayWorkedSeconds(rec InternRecord, cal LeaveCalendar, today Date, tod TimeOfDay) int64 {
	if cal.Contains(today) {
		return 0 // leave days never accrue, regardless of time of day
	}
	if today.Before(rec.HireDate) {
		return 0 // not yet eligible
	}
	switch {
	case tod <= rec.WorkStart:
		return 0
	case tod >= rec.WorkEnd:
		return rec.WorkSecondsPerDay()
	default:
		return tod.Seconds() - rec.WorkStart.Seconds()
	}
}

// salaryForSeconds is wage * elapsed / window, the single division of the
// accrual math. Exact at the endpoints (zero and full window).
func salaryForSeconds(wage decimal.Decimal, elapsed, window int64) decimal.Decimal {
	if elapsed == 0 {
		return decimal.Zero
	}
	return wage.Mul(decimal.NewFromInt(elapsed)).Div(decimal.NewFromInt(window))
}
