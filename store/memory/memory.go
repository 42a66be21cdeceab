// Package memory provides an in-memory store implementation (tests/dev).
package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/drippay/intern-engine/engine"
)

// =============================================================================
// MEMORY STORE - Implements engine.InternStore and engine.LeaveStore
// =============================================================================

type Store struct {
	mu sync.RWMutex

	interns     map[engine.InternID]engine.InternRecord
	internOrder []engine.InternID
	codes       map[string]engine.InternID

	leaves       map[engine.LeaveID]engine.LeaveRecord
	byInternDate map[internDate]engine.LeaveID
}

type internDate struct {
	InternID engine.InternID
	Date     engine.Date
}

func New() *Store {
	return &Store{
		interns:      make(map[engine.InternID]engine.InternRecord),
		codes:        make(map[string]engine.InternID),
		leaves:       make(map[engine.LeaveID]engine.LeaveRecord),
		byInternDate: make(map[internDate]engine.LeaveID),
	}
}

// =============================================================================
// INTERN STORE
// =============================================================================

func (s *Store) InsertIntern(_ context.Context, rec engine.InternRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, taken := s.codes[rec.EmployeeCode]; taken {
		return &engine.DuplicateCodeError{EmployeeCode: rec.EmployeeCode}
	}
	s.interns[rec.ID] = rec
	s.internOrder = append(s.internOrder, rec.ID)
	s.codes[rec.EmployeeCode] = rec.ID
	return nil
}

func (s *Store) GetIntern(_ context.Context, id engine.InternID) (engine.InternRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rec, ok := s.interns[id]
	if !ok {
		return engine.InternRecord{}, engine.ErrInternNotFound
	}
	return rec, nil
}

func (s *Store) ListInterns(_ context.Context, status engine.Status) ([]engine.InternRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]engine.InternRecord, 0, len(s.internOrder))
	for _, id := range s.internOrder {
		rec := s.interns[id]
		if status != engine.StatusAny && rec.Status != status {
			continue
		}
		result = append(result, rec)
	}
	return result, nil
}

// =============================================================================
// LEAVE STORE
// =============================================================================

func (s *Store) InsertLeave(_ context.Context, rec engine.LeaveRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := internDate{InternID: rec.InternID, Date: rec.Date}
	if existingID, taken := s.byInternDate[key]; taken {
		return &engine.DuplicateLeaveError{
			InternID: rec.InternID,
			Date:     rec.Date,
			Existing: s.leaves[existingID],
		}
	}
	s.leaves[rec.ID] = rec
	s.byInternDate[key] = rec.ID
	return nil
}

func (s *Store) GetLeave(_ context.Context, id engine.LeaveID) (engine.LeaveRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rec, ok := s.leaves[id]
	if !ok {
		return engine.LeaveRecord{}, engine.ErrLeaveNotFound
	}
	return rec, nil
}

func (s *Store) DeleteLeave(_ context.Context, id engine.LeaveID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	rec, ok := s.leaves[id]
	if !ok {
		return engine.ErrLeaveNotFound
	}
	delete(s.leaves, id)
	delete(s.byInternDate, internDate{InternID: rec.InternID, Date: rec.Date})
	return nil
}

func (s *Store) ListLeave(_ context.Context, internID engine.InternID, p engine.Period) ([]engine.LeaveRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var result []engine.LeaveRecord
	for _, rec := range s.leaves {
		if rec.InternID == internID && p.Contains(rec.Date) {
			result = append(result, rec)
		}
	}
	// Most recent date first.
	sort.Slice(result, func(i, j int) bool {
		return result[j].Date.Before(result[i].Date)
	})
	return result, nil
}

func (s *Store) AllLeave(_ context.Context, internID engine.InternID) ([]engine.LeaveRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var result []engine.LeaveRecord
	for _, rec := range s.leaves {
		if rec.InternID == internID {
			result = append(result, rec)
		}
	}
	return result, nil
}
