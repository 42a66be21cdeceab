/*
stats.go - Calendar-range aggregation (monthly / yearly rollups)

For a closed range [Start, End]:
  work_days   = dates in range that are on/after hire, strictly before
                today, and not leave dates
  leave_days  = leave dates falling inside the range
  total       = work_days * wage, plus today's partial accrual when today
                is inside the range and itself eligible (counted once)

The range may reach into the future; future dates never contribute days or
salary. Iteration is bounded by the requested range.
*/
package engine

import (
	"time"

	"github.com/shopspring/decimal"
)

// ComputePeriod derives the statistics for one intern over p, as of now.
// Same derivation rules as ComputeSnapshot restricted to the range.
func ComputePeriod(rec InternRecord, cal LeaveCalendar, p Period, now time.Time) (PeriodStatistics, error) {
	if !p.IsValid() {
		return PeriodStatistics{}, &ValidationError{Field: "period", Reason: "end before start"}
	}
	window := rec.WorkSecondsPerDay()
	if window <= 0 {
		return PeriodStatistics{}, ErrInvalidWorkWindow
	}

	today := DateOf(now)

	workDays := 0
	for d := p.Start; !d.After(p.End); d = d.AddDays(1) {
		if d.Before(rec.HireDate) || !d.Before(today) || cal.Contains(d) {
			continue
		}
		workDays++
	}

	total := rec.DailyWage.Mul(decimal.NewFromInt(int64(workDays)))
	if p.Contains(today) && !today.Before(rec.HireDate) && !cal.Contains(today) {
		elapsed := todayWorkedSeconds(rec, cal, today, TimeOfDayOf(now))
		total = total.Add(salaryForSeconds(rec.DailyWage, elapsed, window))
	}

	return PeriodStatistics{
		InternID:    rec.ID,
		Period:      p,
		WorkDays:    workDays,
		LeaveDays:   cal.CountIn(p),
		TotalSalary: total,
	}, nil
}
