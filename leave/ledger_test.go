package leave_test

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/drippay/intern-engine/engine"
	"github.com/drippay/intern-engine/leave"
	"github.com/drippay/intern-engine/store/memory"
)

func newTestLedger(t *testing.T) *leave.Ledger {
	t.Helper()
	return leave.NewLedger(memory.New())
}

func wholeRange() engine.Period {
	return engine.Period{
		Start: engine.NewDate(2000, time.January, 1),
		End:   engine.NewDate(9999, time.December, 31),
	}
}

// =============================================================================
// UNIQUENESS INVARIANT
// =============================================================================

func TestLedger_DuplicateDate_ReportsExistingRecord(t *testing.T) {
	// GIVEN: a leave date already recorded
	// WHEN:  adding the same (intern, date) again
	// THEN:  one stored record; the conflict carries the original

	ledger := newTestLedger(t)
	ctx := context.Background()
	date := engine.NewDate(2025, time.June, 15)

	first, err := ledger.Add(ctx, "intern-1", date, "sick")
	require.NoError(t, err)

	second, err := ledger.Add(ctx, "intern-1", date, "retry")
	assert.ErrorIs(t, err, engine.ErrDuplicateLeaveDate)
	assert.True(t, engine.IsConflict(err))
	assert.Equal(t, first.ID, second.ID, "conflict should report the existing record")

	records, err := ledger.List(ctx, "intern-1", wholeRange())
	require.NoError(t, err)
	assert.Len(t, records, 1)
}

func TestLedger_SameDate_DifferentInterns_Independent(t *testing.T) {
	ledger := newTestLedger(t)
	ctx := context.Background()
	date := engine.NewDate(2025, time.June, 15)

	_, err := ledger.Add(ctx, "intern-1", date, "")
	require.NoError(t, err)
	_, err = ledger.Add(ctx, "intern-2", date, "")
	assert.NoError(t, err, "different interns may share a leave date")
}

// =============================================================================
// REMOVE
// =============================================================================

func TestLedger_Remove(t *testing.T) {
	ledger := newTestLedger(t)
	ctx := context.Background()

	rec, err := ledger.Add(ctx, "intern-1", engine.NewDate(2025, time.June, 15), "")
	require.NoError(t, err)

	require.NoError(t, ledger.Remove(ctx, rec.ID))

	err = ledger.Remove(ctx, rec.ID)
	assert.ErrorIs(t, err, engine.ErrLeaveNotFound)

	// The date is free again after removal.
	_, err = ledger.Add(ctx, "intern-1", engine.NewDate(2025, time.June, 15), "again")
	assert.NoError(t, err)
}

// =============================================================================
// LISTING AND COUNTING
// =============================================================================

func TestLedger_List_MostRecentFirst(t *testing.T) {
	ledger := newTestLedger(t)
	ctx := context.Background()

	dates := []engine.Date{
		engine.NewDate(2025, time.June, 3),
		engine.NewDate(2025, time.June, 17),
		engine.NewDate(2025, time.June, 9),
	}
	for _, d := range dates {
		_, err := ledger.Add(ctx, "intern-1", d, "")
		require.NoError(t, err)
	}

	records, err := ledger.List(ctx, "intern-1", wholeRange())
	require.NoError(t, err)

	require.Len(t, records, 3)
	assert.Equal(t, engine.NewDate(2025, time.June, 17), records[0].Date)
	assert.Equal(t, engine.NewDate(2025, time.June, 9), records[1].Date)
	assert.Equal(t, engine.NewDate(2025, time.June, 3), records[2].Date)
}

func TestLedger_List_RangeFilter(t *testing.T) {
	ledger := newTestLedger(t)
	ctx := context.Background()

	for day := 1; day <= 20; day += 5 {
		_, err := ledger.Add(ctx, "intern-1", engine.NewDate(2025, time.June, day), "")
		require.NoError(t, err)
	}

	p := engine.Period{
		Start: engine.NewDate(2025, time.June, 6),
		End:   engine.NewDate(2025, time.June, 16),
	}
	records, err := ledger.List(ctx, "intern-1", p)
	require.NoError(t, err)
	assert.Len(t, records, 3) // 6th, 11th, 16th

	n, err := ledger.Count(ctx, "intern-1", p)
	require.NoError(t, err)
	assert.Equal(t, len(records), n, "count is derived from the same set")
}

func TestLedger_List_InvalidRange(t *testing.T) {
	ledger := newTestLedger(t)

	p := engine.Period{
		Start: engine.NewDate(2025, time.June, 20),
		End:   engine.NewDate(2025, time.June, 1),
	}
	_, err := ledger.List(context.Background(), "intern-1", p)
	assert.True(t, engine.IsValidation(err))
}

// =============================================================================
// CONCURRENCY
// =============================================================================

func TestLedger_ConcurrentAddsAndViews(t *testing.T) {
	// Writers add distinct dates while readers take views; every view must
	// be a coherent set and the final count must equal the writes.

	ledger := newTestLedger(t)
	ctx := context.Background()
	const writers = 8
	const datesPerWriter = 25

	var wg sync.WaitGroup
	for w := 0; w < writers; w++ {
		wg.Add(1)
		go func(w int) {
			defer wg.Done()
			base := engine.NewDate(2025, time.January, 1).AddDays(w * datesPerWriter)
			for i := 0; i < datesPerWriter; i++ {
				_, err := ledger.Add(ctx, "intern-1", base.AddDays(i), "")
				assert.NoError(t, err)
			}
		}(w)
	}
	for r := 0; r < 4; r++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < 50; i++ {
				_, err := ledger.View(ctx, "intern-1")
				assert.NoError(t, err)
			}
		}()
	}
	wg.Wait()

	cal, err := ledger.View(ctx, "intern-1")
	require.NoError(t, err)
	assert.Len(t, cal, writers*datesPerWriter)
}

func TestLedger_ConcurrentDuplicateAdds_OneWins(t *testing.T) {
	// GIVEN: many goroutines racing to add the same (intern, date)
	// THEN:  exactly one insert wins; every loser sees the winner's record

	ledger := newTestLedger(t)
	ctx := context.Background()
	date := engine.NewDate(2025, time.June, 15)

	const attempts = 16
	ids := make([]engine.LeaveID, attempts)
	var wg sync.WaitGroup
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			rec, _ := ledger.Add(ctx, "intern-1", date, fmt.Sprintf("attempt-%d", i))
			ids[i] = rec.ID
		}(i)
	}
	wg.Wait()

	for i := 1; i < attempts; i++ {
		assert.Equal(t, ids[0], ids[i], "all attempts must resolve to one record")
	}

	records, err := ledger.List(ctx, "intern-1", wholeRange())
	require.NoError(t, err)
	assert.Len(t, records, 1)
}
