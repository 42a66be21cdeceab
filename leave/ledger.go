/*
Package leave is the per-intern leave ledger.

PURPOSE:
  Owns LeaveRecords (the intern id on a record is a lookup key, not
  ownership) and enforces the two hard guarantees around them:

  1. UNIQUENESS: at most one record per (intern, date). A duplicate add is
     a conflict that reports the existing record, so retried adds are safe.
  2. READ CONSISTENCY: View hands out one coherent copy of an intern's
     leave set. A concurrent add/remove is wholly visible or wholly not -
     never half-applied inside a snapshot computation.

CONCURRENCY MODEL:
  One RWMutex per intern. Writes for the same intern serialize; writes for
  different interns never block each other; reads run in parallel and only
  wait out a same-intern write in flight. The store underneath may add its
  own constraint enforcement (sqlite unique index) as a second line.

COUNTING:
  Count is always a fresh derivation from the record set. No stored
  counter exists to drift out of sync.
*/
package leave

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/drippay/intern-engine/engine"
)

// Ledger manages leave records on top of a LeaveStore.
type Ledger struct {
	store engine.LeaveStore

	mu    sync.Mutex
	locks map[engine.InternID]*sync.RWMutex
}

func NewLedger(store engine.LeaveStore) *Ledger {
	return &Ledger{
		store: store,
		locks: make(map[engine.InternID]*sync.RWMutex),
	}
}

// lockFor returns the mutex guarding one intern's leave set.
func (l *Ledger) lockFor(id engine.InternID) *sync.RWMutex {
	l.mu.Lock()
	defer l.mu.Unlock()
	lk, ok := l.locks[id]
	if !ok {
		lk = &sync.RWMutex{}
		l.locks[id] = lk
	}
	return lk
}

// Add records a leave date for an intern. On a duplicate date it returns
// the existing record together with *engine.DuplicateLeaveError, so a
// retried add is reported, not crashed.
func (l *Ledger) Add(ctx context.Context, internID engine.InternID, date engine.Date, reason string) (engine.LeaveRecord, error) {
	lk := l.lockFor(internID)
	lk.Lock()
	defer lk.Unlock()

	rec := engine.LeaveRecord{
		ID:        engine.LeaveID(ulid.Make().String()),
		InternID:  internID,
		Date:      date,
		Reason:    reason,
		CreatedAt: time.Now().UTC(),
	}

	if err := l.store.InsertLeave(ctx, rec); err != nil {
		var dup *engine.DuplicateLeaveError
		if errors.As(err, &dup) {
			return dup.Existing, dup
		}
		return engine.LeaveRecord{}, err
	}
	return rec, nil
}

// Remove deletes a leave record by id. engine.ErrLeaveNotFound if absent.
func (l *Ledger) Remove(ctx context.Context, id engine.LeaveID) error {
	// The record is looked up first so the delete runs under the owning
	// intern's write lock; a racing delete surfaces as NotFound below.
	rec, err := l.store.GetLeave(ctx, id)
	if err != nil {
		return err
	}

	lk := l.lockFor(rec.InternID)
	lk.Lock()
	defer lk.Unlock()

	return l.store.DeleteLeave(ctx, id)
}

// List returns an intern's leave records with dates inside p,
// most recent date first.
func (l *Ledger) List(ctx context.Context, internID engine.InternID, p engine.Period) ([]engine.LeaveRecord, error) {
	if !p.IsValid() {
		return nil, &engine.ValidationError{Field: "period", Reason: "end before start"}
	}
	lk := l.lockFor(internID)
	lk.RLock()
	defer lk.RUnlock()

	return l.store.ListLeave(ctx, internID, p)
}

// Count is the derived size of List's result set.
func (l *Ledger) Count(ctx context.Context, internID engine.InternID, p engine.Period) (int, error) {
	records, err := l.List(ctx, internID, p)
	if err != nil {
		return 0, err
	}
	return len(records), nil
}

// View returns one consistent copy of an intern's full leave set as a
// calendar. Taken under the intern's read lock: every date in the result
// belongs to a single logical ledger state.
func (l *Ledger) View(ctx context.Context, internID engine.InternID) (engine.LeaveCalendar, error) {
	lk := l.lockFor(internID)
	lk.RLock()
	defer lk.RUnlock()

	records, err := l.store.AllLeave(ctx, internID)
	if err != nil {
		return nil, err
	}
	return engine.NewLeaveCalendar(records), nil
}
