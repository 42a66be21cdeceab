package engine_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/drippay/intern-engine/engine"
)

func TestParseDate(t *testing.T) {
	d, err := engine.ParseDate("2025-06-20")
	require.NoError(t, err)
	assert.Equal(t, engine.NewDate(2025, time.June, 20), d)
	assert.Equal(t, "2025-06-20", d.String())

	_, err = engine.ParseDate("20/06/2025")
	assert.Error(t, err)

	_, err = engine.ParseDate("")
	assert.Error(t, err)
}

func TestDateOf_UsesInstantLocation(t *testing.T) {
	// 2025-06-20 23:30 in UTC+8 is still June 20 for that wall clock,
	// even though it is June 20 15:30 UTC.
	loc := time.FixedZone("UTC+8", 8*3600)
	now := time.Date(2025, time.June, 20, 23, 30, 0, 0, loc)

	assert.Equal(t, engine.NewDate(2025, time.June, 20), engine.DateOf(now))
}

func TestDate_AddDaysAcrossBoundaries(t *testing.T) {
	assert.Equal(t, engine.NewDate(2025, time.July, 1), engine.NewDate(2025, time.June, 30).AddDays(1))
	assert.Equal(t, engine.NewDate(2025, time.December, 31), engine.NewDate(2026, time.January, 1).AddDays(-1))
	// Leap day.
	assert.Equal(t, engine.NewDate(2024, time.February, 29), engine.NewDate(2024, time.February, 28).AddDays(1))
}

func TestDaysBetween(t *testing.T) {
	a := engine.NewDate(2025, time.June, 10)
	b := engine.NewDate(2025, time.June, 20)

	assert.Equal(t, 10, engine.DaysBetween(a, b))
	assert.Equal(t, -10, engine.DaysBetween(b, a))
	assert.Equal(t, 0, engine.DaysBetween(a, a))
}

func TestParseTimeOfDay(t *testing.T) {
	tod, err := engine.ParseTimeOfDay("09:00:00")
	require.NoError(t, err)
	assert.Equal(t, engine.NewTimeOfDay(9, 0, 0), tod)

	// Short form without seconds is accepted.
	tod, err = engine.ParseTimeOfDay("18:30")
	require.NoError(t, err)
	assert.Equal(t, engine.NewTimeOfDay(18, 30, 0), tod)

	assert.Equal(t, "09:00:00", engine.NewTimeOfDay(9, 0, 0).String())

	_, err = engine.ParseTimeOfDay("9am")
	assert.Error(t, err)
}

func TestPeriod_Contains(t *testing.T) {
	p := engine.Period{
		Start: engine.NewDate(2025, time.March, 1),
		End:   engine.NewDate(2025, time.March, 31),
	}

	assert.True(t, p.Contains(engine.NewDate(2025, time.March, 1)))
	assert.True(t, p.Contains(engine.NewDate(2025, time.March, 31)))
	assert.False(t, p.Contains(engine.NewDate(2025, time.February, 28)))
	assert.False(t, p.Contains(engine.NewDate(2025, time.April, 1)))
}

func TestMonthPeriod_PastMonthIsFullMonth(t *testing.T) {
	today := engine.NewDate(2025, time.June, 20)

	p := engine.MonthPeriod(2025, time.March, today)

	assert.Equal(t, engine.NewDate(2025, time.March, 1), p.Start)
	assert.Equal(t, engine.NewDate(2025, time.March, 31), p.End)
}

func TestMonthPeriod_InProgressMonthClampsAtToday(t *testing.T) {
	today := engine.NewDate(2025, time.June, 20)

	p := engine.MonthPeriod(2025, time.June, today)

	assert.Equal(t, engine.NewDate(2025, time.June, 1), p.Start)
	assert.Equal(t, today, p.End)
}

func TestMonthPeriod_LeapFebruary(t *testing.T) {
	today := engine.NewDate(2025, time.January, 1)

	p := engine.MonthPeriod(2024, time.February, today)

	assert.Equal(t, engine.NewDate(2024, time.February, 29), p.End)
}

func TestYearPeriod_Clamping(t *testing.T) {
	today := engine.NewDate(2025, time.June, 20)

	inProgress := engine.YearPeriod(2025, today)
	assert.Equal(t, engine.NewDate(2025, time.January, 1), inProgress.Start)
	assert.Equal(t, today, inProgress.End)

	past := engine.YearPeriod(2024, today)
	assert.Equal(t, engine.NewDate(2024, time.December, 31), past.End)
}
