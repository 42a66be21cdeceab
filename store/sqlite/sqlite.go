/*
Package sqlite provides the SQLite-backed implementation of the storage
interfaces.

INTERFACES IMPLEMENTED:
  engine.InternStore: intern records
  engine.LeaveStore:  leave records

CONSTRAINTS IN THE SCHEMA:
  The two conflict invariants are enforced by unique indexes as well as by
  the layers above:
  - interns.employee_code UNIQUE
  - leave_records(intern_id, leave_date) UNIQUE

WAL MODE:
  Opened with WAL so snapshot reads don't block behind writes. The leave
  ledger serializes same-intern writes above this layer; the database is
  the second line of defense, not the coordination point.

USAGE:
  store, err := sqlite.New("./intern.db")  // ":memory:" for tests
  defer store.Close()

MIGRATION:
  Schema is auto-migrated on New().

SEE ALSO:
  - engine/store.go: interface contracts
  - store/memory:    in-memory implementation for tests
*/
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	sqlite3 "github.com/mattn/go-sqlite3"
	"github.com/shopspring/decimal"

	"github.com/drippay/intern-engine/engine"
)

// Store implements the storage interfaces using SQLite.
type Store struct {
	db *sql.DB
}

// New opens (and migrates) a SQLite store at the given path.
// Use ":memory:" for an in-memory database.
func New(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite3", dbPath+"?_foreign_keys=on&_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	store := &Store{db: db}
	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}
	return store, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS interns (
		id TEXT PRIMARY KEY,
		employee_code TEXT NOT NULL UNIQUE,
		name TEXT NOT NULL,
		phone TEXT NOT NULL DEFAULT '',
		department TEXT NOT NULL DEFAULT '',
		daily_wage TEXT NOT NULL,
		work_start TEXT NOT NULL,
		work_end TEXT NOT NULL,
		hire_date TEXT NOT NULL,
		status TEXT NOT NULL,
		created_at TEXT NOT NULL
	);

	CREATE TABLE IF NOT EXISTS leave_records (
		id TEXT PRIMARY KEY,
		intern_id TEXT NOT NULL REFERENCES interns(id),
		leave_date TEXT NOT NULL,
		reason TEXT NOT NULL DEFAULT '',
		created_at TEXT NOT NULL,
		UNIQUE(intern_id, leave_date)
	);

	-- Hot path: newest-first range listing and calendar loads per intern.
	CREATE INDEX IF NOT EXISTS idx_leave_intern_date
		ON leave_records(intern_id, leave_date DESC);
	`
	_, err := s.db.Exec(schema)
	return err
}

// =============================================================================
// INTERN STORE
// =============================================================================

func (s *Store) InsertIntern(ctx context.Context, rec engine.InternRecord) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO interns
		(id, employee_code, name, phone, department, daily_wage,
		 work_start, work_end, hire_date, status, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		string(rec.ID), rec.EmployeeCode, rec.Name, rec.Phone, rec.Department,
		rec.DailyWage.String(), rec.WorkStart.String(), rec.WorkEnd.String(),
		rec.HireDate.String(), string(rec.Status),
		rec.CreatedAt.UTC().Format(time.RFC3339Nano),
	)
	if isUniqueViolation(err) {
		return &engine.DuplicateCodeError{EmployeeCode: rec.EmployeeCode}
	}
	return err
}

func (s *Store) GetIntern(ctx context.Context, id engine.InternID) (engine.InternRecord, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, employee_code, name, phone, department, daily_wage,
		       work_start, work_end, hire_date, status, created_at
		FROM interns WHERE id = ?`, string(id))

	rec, err := scanIntern(row)
	if errors.Is(err, sql.ErrNoRows) {
		return engine.InternRecord{}, engine.ErrInternNotFound
	}
	return rec, err
}

func (s *Store) ListInterns(ctx context.Context, status engine.Status) ([]engine.InternRecord, error) {
	query := `
		SELECT id, employee_code, name, phone, department, daily_wage,
		       work_start, work_end, hire_date, status, created_at
		FROM interns`
	args := []any{}
	if status != engine.StatusAny {
		query += ` WHERE status = ?`
		args = append(args, string(status))
	}
	query += ` ORDER BY created_at, id`

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []engine.InternRecord
	for rows.Next() {
		rec, err := scanIntern(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, rec)
	}
	return result, rows.Err()
}

// =============================================================================
// LEAVE STORE
// =============================================================================

func (s *Store) InsertLeave(ctx context.Context, rec engine.LeaveRecord) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO leave_records (id, intern_id, leave_date, reason, created_at)
		VALUES (?, ?, ?, ?, ?)`,
		string(rec.ID), string(rec.InternID), rec.Date.String(), rec.Reason,
		rec.CreatedAt.UTC().Format(time.RFC3339Nano),
	)
	if isUniqueViolation(err) {
		dup := &engine.DuplicateLeaveError{InternID: rec.InternID, Date: rec.Date}
		if existing, lookupErr := s.leaveByDate(ctx, rec.InternID, rec.Date); lookupErr == nil {
			dup.Existing = existing
		}
		return dup
	}
	return err
}

func (s *Store) GetLeave(ctx context.Context, id engine.LeaveID) (engine.LeaveRecord, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, intern_id, leave_date, reason, created_at
		FROM leave_records WHERE id = ?`, string(id))

	rec, err := scanLeave(row)
	if errors.Is(err, sql.ErrNoRows) {
		return engine.LeaveRecord{}, engine.ErrLeaveNotFound
	}
	return rec, err
}

func (s *Store) DeleteLeave(ctx context.Context, id engine.LeaveID) error {
	res, err := s.db.ExecContext(ctx,
		`DELETE FROM leave_records WHERE id = ?`, string(id))
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return engine.ErrLeaveNotFound
	}
	return nil
}

func (s *Store) ListLeave(ctx context.Context, internID engine.InternID, p engine.Period) ([]engine.LeaveRecord, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, intern_id, leave_date, reason, created_at
		FROM leave_records
		WHERE intern_id = ? AND leave_date >= ? AND leave_date <= ?
		ORDER BY leave_date DESC`,
		string(internID), p.Start.String(), p.End.String())
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectLeave(rows)
}

func (s *Store) AllLeave(ctx context.Context, internID engine.InternID) ([]engine.LeaveRecord, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, intern_id, leave_date, reason, created_at
		FROM leave_records WHERE intern_id = ?`, string(internID))
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectLeave(rows)
}

func (s *Store) leaveByDate(ctx context.Context, internID engine.InternID, date engine.Date) (engine.LeaveRecord, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, intern_id, leave_date, reason, created_at
		FROM leave_records WHERE intern_id = ? AND leave_date = ?`,
		string(internID), date.String())
	return scanLeave(row)
}

// =============================================================================
// SCAN HELPERS
// =============================================================================

type rowScanner interface {
	Scan(dest ...any) error
}

func scanIntern(row rowScanner) (engine.InternRecord, error) {
	var rec engine.InternRecord
	var id, wage, start, end, hire, status, createdAt string
	err := row.Scan(&id, &rec.EmployeeCode, &rec.Name, &rec.Phone, &rec.Department,
		&wage, &start, &end, &hire, &status, &createdAt)
	if err != nil {
		return engine.InternRecord{}, err
	}

	rec.ID = engine.InternID(id)
	rec.Status = engine.Status(status)
	if rec.DailyWage, err = decimal.NewFromString(wage); err != nil {
		return engine.InternRecord{}, fmt.Errorf("corrupt daily_wage for intern %s: %w", id, err)
	}
	if rec.WorkStart, err = engine.ParseTimeOfDay(start); err != nil {
		return engine.InternRecord{}, err
	}
	if rec.WorkEnd, err = engine.ParseTimeOfDay(end); err != nil {
		return engine.InternRecord{}, err
	}
	if rec.HireDate, err = engine.ParseDate(hire); err != nil {
		return engine.InternRecord{}, err
	}
	if rec.CreatedAt, err = time.Parse(time.RFC3339Nano, createdAt); err != nil {
		return engine.InternRecord{}, err
	}
	return rec, nil
}

func scanLeave(row rowScanner) (engine.LeaveRecord, error) {
	var rec engine.LeaveRecord
	var id, internID, date, createdAt string
	err := row.Scan(&id, &internID, &date, &rec.Reason, &createdAt)
	if err != nil {
		return engine.LeaveRecord{}, err
	}

	rec.ID = engine.LeaveID(id)
	rec.InternID = engine.InternID(internID)
	if rec.Date, err = engine.ParseDate(date); err != nil {
		return engine.LeaveRecord{}, err
	}
	if rec.CreatedAt, err = time.Parse(time.RFC3339Nano, createdAt); err != nil {
		return engine.LeaveRecord{}, err
	}
	return rec, nil
}

func collectLeave(rows *sql.Rows) ([]engine.LeaveRecord, error) {
	var result []engine.LeaveRecord
	for rows.Next() {
		rec, err := scanLeave(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, rec)
	}
	return result, rows.Err()
}

func isUniqueViolation(err error) bool {
	var serr sqlite3.Error
	return errors.As(err, &serr) &&
		(serr.ExtendedCode == sqlite3.ErrConstraintUnique ||
			serr.ExtendedCode == sqlite3.ErrConstraintPrimaryKey)
}
