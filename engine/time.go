package engine

import (
	"fmt"
	"time"
)

// =============================================================================
// DATE - Calendar date with no time-of-day component
// =============================================================================

// Date is a plain calendar date. It is comparable and usable as a map key.
// All accrual math happens on Dates; the instant "now" is collapsed to a
// Date plus a TimeOfDay in the instant's own location.
type Date struct {
	Year  int
	Month time.Month
	Day   int
}

func NewDate(year int, month time.Month, day int) Date {
	// Route through time.Date so out-of-range components normalize
	// (e.g. Feb 30 becomes Mar 1/2), matching stdlib behavior.
	t := time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
	return Date{Year: t.Year(), Month: t.Month(), Day: t.Day()}
}

// DateOf extracts the calendar date of an instant in that instant's location.
func DateOf(t time.Time) Date {
	y, m, d := t.Date()
	return Date{Year: y, Month: m, Day: d}
}

// ParseDate parses a date in YYYY-MM-DD form.
func ParseDate(s string) (Date, error) {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return Date{}, fmt.Errorf("invalid date %q: %w", s, err)
	}
	return DateOf(t), nil
}

// Time returns the date as midnight UTC. Used for arithmetic only;
// it carries no timezone meaning.
func (d Date) Time() time.Time {
	return time.Date(d.Year, d.Month, d.Day, 0, 0, 0, 0, time.UTC)
}

func (d Date) IsZero() bool { return d.Year == 0 && d.Month == 0 && d.Day == 0 }

func (d Date) Before(other Date) bool { return d.Time().Before(other.Time()) }
func (d Date) After(other Date) bool  { return d.Time().After(other.Time()) }
func (d Date) Equal(other Date) bool  { return d == other }

func (d Date) AddDays(n int) Date {
	return DateOf(d.Time().AddDate(0, 0, n))
}

func (d Date) String() string { return d.Time().Format("2006-01-02") }

// DaysBetween returns the number of whole days from one date to another.
// Negative when to is before from.
func DaysBetween(from, to Date) int {
	return int(to.Time().Sub(from.Time()).Hours() / 24)
}

// =============================================================================
// TIME OF DAY - Clock time within a work day
// =============================================================================

// TimeOfDay is a clock time expressed as seconds since midnight.
type TimeOfDay int

func NewTimeOfDay(hour, minute, second int) TimeOfDay {
	return TimeOfDay(hour*3600 + minute*60 + second)
}

// TimeOfDayOf extracts the clock time of an instant in its own location.
func TimeOfDayOf(t time.Time) TimeOfDay {
	return NewTimeOfDay(t.Hour(), t.Minute(), t.Second())
}

// ParseTimeOfDay parses HH:MM:SS, also accepting HH:MM.
func ParseTimeOfDay(s string) (TimeOfDay, error) {
	for _, layout := range []string{"15:04:05", "15:04"} {
		if t, err := time.Parse(layout, s); err == nil {
			return TimeOfDayOf(t), nil
		}
	}
	return 0, fmt.Errorf("invalid time of day %q (want HH:MM:SS)", s)
}

func (t TimeOfDay) Seconds() int64 { return int64(t) }

func (t TimeOfDay) String() string {
	s := int(t)
	return fmt.Sprintf("%02d:%02d:%02d", s/3600, s%3600/60, s%60)
}

// =============================================================================
// PERIOD - Closed calendar date range [Start, End]
// =============================================================================

type Period struct {
	Start Date
	End   Date
}

func (p Period) IsValid() bool { return !p.End.Before(p.Start) }

func (p Period) Contains(d Date) bool {
	return !d.Before(p.Start) && !d.After(p.End)
}

func (p Period) String() string {
	return "[" + p.Start.String() + ", " + p.End.String() + "]"
}

// MonthPeriod returns the statistics range for a calendar month.
// A month still in progress is clamped at today; future leave declarations
// inside the month do not count yet.
func MonthPeriod(year int, month time.Month, today Date) Period {
	start := NewDate(year, month, 1)
	end := start.AddDays(daysInMonth(year, month) - 1)
	if today.Before(end) && !today.Before(start) {
		end = today
	}
	return Period{Start: start, End: end}
}

// YearPeriod returns the statistics range for a calendar year, clamped at
// today when the year is in progress.
func YearPeriod(year int, today Date) Period {
	start := NewDate(year, time.January, 1)
	end := NewDate(year, time.December, 31)
	if today.Before(end) && !today.Before(start) {
		end = today
	}
	return Period{Start: start, End: end}
}

func daysInMonth(year int, month time.Month) int {
	first := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	return first.AddDate(0, 1, -1).Day()
}
