/*
Package roster is the intern directory.

PURPOSE:
  Holds intern records and enforces the creation-time invariants the
  accrual math relies on: positive wage, a strictly positive work window
  (the division guard), non-empty name and employee code, unique employee
  code, present hire date. A record that makes it past Create is safe for
  every downstream computation.

No side effects beyond the store mutation; lookups are plain delegation.
*/
package roster

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/drippay/intern-engine/engine"
)

// Directory manages intern records on top of an InternStore.
type Directory struct {
	store engine.InternStore
}

func NewDirectory(store engine.InternStore) *Directory {
	return &Directory{store: store}
}

// Draft is the validated-on-create input for a new intern.
type Draft struct {
	Name         string
	EmployeeCode string
	Phone        string
	Department   string
	DailyWage    decimal.Decimal
	WorkStart    engine.TimeOfDay
	WorkEnd      engine.TimeOfDay
	HireDate     engine.Date
}

// Create validates the draft and stores a new active intern.
// Returns *engine.ValidationError for bad input and
// *engine.DuplicateCodeError when the employee code is taken.
func (d *Directory) Create(ctx context.Context, draft Draft) (engine.InternRecord, error) {
	if err := validate(draft); err != nil {
		return engine.InternRecord{}, err
	}

	rec := engine.InternRecord{
		ID:           engine.InternID(uuid.NewString()),
		EmployeeCode: draft.EmployeeCode,
		Name:         draft.Name,
		Phone:        draft.Phone,
		Department:   draft.Department,
		DailyWage:    draft.DailyWage,
		WorkStart:    draft.WorkStart,
		WorkEnd:      draft.WorkEnd,
		HireDate:     draft.HireDate,
		Status:       engine.StatusActive,
		CreatedAt:    time.Now().UTC(),
	}

	if err := d.store.InsertIntern(ctx, rec); err != nil {
		return engine.InternRecord{}, err
	}
	return rec, nil
}

// Get returns one intern, engine.ErrInternNotFound when unknown.
func (d *Directory) Get(ctx context.Context, id engine.InternID) (engine.InternRecord, error) {
	return d.store.GetIntern(ctx, id)
}

// List returns interns ordered by creation, optionally filtered by status.
func (d *Directory) List(ctx context.Context, status engine.Status) ([]engine.InternRecord, error) {
	if status != engine.StatusAny && !status.Valid() {
		return nil, &engine.ValidationError{Field: "status", Reason: "must be active or inactive"}
	}
	return d.store.ListInterns(ctx, status)
}

func validate(draft Draft) error {
	if draft.Name == "" {
		return &engine.ValidationError{Field: "name", Reason: "required"}
	}
	if draft.EmployeeCode == "" {
		return &engine.ValidationError{Field: "employee_id", Reason: "required"}
	}
	if !draft.DailyWage.IsPositive() {
		return &engine.ValidationError{Field: "daily_salary", Reason: "must be positive"}
	}
	if draft.WorkEnd <= draft.WorkStart {
		return &engine.ValidationError{Field: "work_end_time", Reason: "must be after work_start_time"}
	}
	if draft.HireDate.IsZero() {
		return &engine.ValidationError{Field: "entry_date", Reason: "required"}
	}
	return nil
}
