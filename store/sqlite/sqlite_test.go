package sqlite_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/drippay/intern-engine/engine"
	"github.com/drippay/intern-engine/store/sqlite"
)

// =============================================================================
// TEST SETUP
// =============================================================================

func newTestStore(t *testing.T) *sqlite.Store {
	t.Helper()
	store, err := sqlite.New(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func internFixture(id engine.InternID, code string, createdAt time.Time) engine.InternRecord {
	return engine.InternRecord{
		ID:           id,
		EmployeeCode: code,
		Name:         "Mei",
		Phone:        "555-0100",
		Department:   "Platform",
		DailyWage:    decimal.NewFromInt(200),
		WorkStart:    engine.NewTimeOfDay(9, 0, 0),
		WorkEnd:      engine.NewTimeOfDay(18, 0, 0),
		HireDate:     engine.NewDate(2025, time.June, 10),
		Status:       engine.StatusActive,
		CreatedAt:    createdAt,
	}
}

func leaveFixture(id engine.LeaveID, internID engine.InternID, date engine.Date) engine.LeaveRecord {
	return engine.LeaveRecord{
		ID:        id,
		InternID:  internID,
		Date:      date,
		Reason:    "sick",
		CreatedAt: time.Date(2025, time.June, 14, 8, 0, 0, 0, time.UTC),
	}
}

// =============================================================================
// INTERN STORE
// =============================================================================

func TestStore_InternRoundtrip(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	want := internFixture("intern-1", "E001", time.Date(2025, time.June, 10, 9, 0, 0, 0, time.UTC))
	require.NoError(t, store.InsertIntern(ctx, want))

	got, err := store.GetIntern(ctx, "intern-1")
	require.NoError(t, err)

	assert.Equal(t, want.ID, got.ID)
	assert.Equal(t, want.EmployeeCode, got.EmployeeCode)
	assert.Equal(t, want.Phone, got.Phone)
	assert.Equal(t, want.Department, got.Department)
	assert.True(t, want.DailyWage.Equal(got.DailyWage))
	assert.Equal(t, want.WorkStart, got.WorkStart)
	assert.Equal(t, want.WorkEnd, got.WorkEnd)
	assert.Equal(t, want.HireDate, got.HireDate)
	assert.Equal(t, want.Status, got.Status)
	assert.True(t, want.CreatedAt.Equal(got.CreatedAt))
}

func TestStore_GetIntern_NotFound(t *testing.T) {
	store := newTestStore(t)

	_, err := store.GetIntern(context.Background(), "missing")
	assert.ErrorIs(t, err, engine.ErrInternNotFound)
}

func TestStore_InsertIntern_DuplicateCode(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.InsertIntern(ctx, internFixture("intern-1", "E001", time.Now().UTC())))

	err := store.InsertIntern(ctx, internFixture("intern-2", "E001", time.Now().UTC()))
	assert.ErrorIs(t, err, engine.ErrDuplicateEmployeeCode)

	var dup *engine.DuplicateCodeError
	require.ErrorAs(t, err, &dup)
	assert.Equal(t, "E001", dup.EmployeeCode)
}

func TestStore_ListInterns_OrderAndFilter(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	base := time.Date(2025, time.June, 1, 9, 0, 0, 0, time.UTC)
	first := internFixture("intern-1", "E001", base)
	second := internFixture("intern-2", "E002", base.Add(time.Minute))
	third := internFixture("intern-3", "E003", base.Add(2*time.Minute))
	third.Status = engine.StatusInactive

	// Insert out of creation order; listing must sort by created_at.
	require.NoError(t, store.InsertIntern(ctx, second))
	require.NoError(t, store.InsertIntern(ctx, third))
	require.NoError(t, store.InsertIntern(ctx, first))

	all, err := store.ListInterns(ctx, engine.StatusAny)
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, engine.InternID("intern-1"), all[0].ID)
	assert.Equal(t, engine.InternID("intern-2"), all[1].ID)
	assert.Equal(t, engine.InternID("intern-3"), all[2].ID)

	active, err := store.ListInterns(ctx, engine.StatusActive)
	require.NoError(t, err)
	require.Len(t, active, 2)

	inactive, err := store.ListInterns(ctx, engine.StatusInactive)
	require.NoError(t, err)
	require.Len(t, inactive, 1)
	assert.Equal(t, engine.InternID("intern-3"), inactive[0].ID)
}

// =============================================================================
// LEAVE STORE
// =============================================================================

func TestStore_LeaveRoundtrip(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.InsertIntern(ctx, internFixture("intern-1", "E001", time.Now().UTC())))

	want := leaveFixture("leave-1", "intern-1", engine.NewDate(2025, time.June, 15))
	require.NoError(t, store.InsertLeave(ctx, want))

	got, err := store.GetLeave(ctx, "leave-1")
	require.NoError(t, err)
	assert.Equal(t, want.ID, got.ID)
	assert.Equal(t, want.InternID, got.InternID)
	assert.Equal(t, want.Date, got.Date)
	assert.Equal(t, want.Reason, got.Reason)
	assert.True(t, want.CreatedAt.Equal(got.CreatedAt))
}

func TestStore_InsertLeave_DuplicateDate_CarriesExisting(t *testing.T) {
	// The unique index is the backstop under the ledger's locks; the error
	// it surfaces must still identify the record already holding the date.

	store := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.InsertIntern(ctx, internFixture("intern-1", "E001", time.Now().UTC())))

	date := engine.NewDate(2025, time.June, 15)
	require.NoError(t, store.InsertLeave(ctx, leaveFixture("leave-1", "intern-1", date)))

	err := store.InsertLeave(ctx, leaveFixture("leave-2", "intern-1", date))
	assert.ErrorIs(t, err, engine.ErrDuplicateLeaveDate)

	var dup *engine.DuplicateLeaveError
	require.ErrorAs(t, err, &dup)
	assert.Equal(t, engine.InternID("intern-1"), dup.InternID)
	assert.Equal(t, date, dup.Date)
	assert.Equal(t, engine.LeaveID("leave-1"), dup.Existing.ID)
}

func TestStore_InsertLeave_SameDateOtherIntern(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.InsertIntern(ctx, internFixture("intern-1", "E001", time.Now().UTC())))
	require.NoError(t, store.InsertIntern(ctx, internFixture("intern-2", "E002", time.Now().UTC())))

	date := engine.NewDate(2025, time.June, 15)
	require.NoError(t, store.InsertLeave(ctx, leaveFixture("leave-1", "intern-1", date)))
	assert.NoError(t, store.InsertLeave(ctx, leaveFixture("leave-2", "intern-2", date)))
}

func TestStore_DeleteLeave(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.InsertIntern(ctx, internFixture("intern-1", "E001", time.Now().UTC())))
	require.NoError(t, store.InsertLeave(ctx, leaveFixture("leave-1", "intern-1", engine.NewDate(2025, time.June, 15))))

	require.NoError(t, store.DeleteLeave(ctx, "leave-1"))

	err := store.DeleteLeave(ctx, "leave-1")
	assert.ErrorIs(t, err, engine.ErrLeaveNotFound)

	_, err = store.GetLeave(ctx, "leave-1")
	assert.ErrorIs(t, err, engine.ErrLeaveNotFound)
}

func TestStore_ListLeave_RangeAndOrder(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.InsertIntern(ctx, internFixture("intern-1", "E001", time.Now().UTC())))

	days := []int{3, 17, 9, 25}
	for i, day := range days {
		rec := leaveFixture(engine.LeaveID("leave-"+string(rune('a'+i))), "intern-1", engine.NewDate(2025, time.June, day))
		require.NoError(t, store.InsertLeave(ctx, rec))
	}

	p := engine.Period{
		Start: engine.NewDate(2025, time.June, 5),
		End:   engine.NewDate(2025, time.June, 20),
	}
	records, err := store.ListLeave(ctx, "intern-1", p)
	require.NoError(t, err)

	require.Len(t, records, 2)
	assert.Equal(t, engine.NewDate(2025, time.June, 17), records[0].Date, "most recent first")
	assert.Equal(t, engine.NewDate(2025, time.June, 9), records[1].Date)

	all, err := store.AllLeave(ctx, "intern-1")
	require.NoError(t, err)
	assert.Len(t, all, 4)
}
