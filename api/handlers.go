/*
handlers.go - HTTP handlers for the intern earnings API

ENDPOINTS:
  Interns:
    GET    /api/interns            List interns (?status=active|inactive)
    POST   /api/interns            Create intern
    GET    /api/interns/{id}       Get one intern

  Salary (read-only, recomputed per request):
    GET    /api/salary/realtime    ?intern_id=       Live accrual snapshot
    GET    /api/salary/monthly     ?intern_id=&year=&month=
    GET    /api/salary/yearly      ?intern_id=&year=

  Leave:
    GET    /api/leave              ?intern_id=&start_date=&end_date=
    POST   /api/leave              Add a leave date
    DELETE /api/leave/{id}         Remove a leave record

ERROR HANDLING:
  Domain errors map onto HTTP statuses:
  - 400 validation (malformed input)
  - 404 unknown intern / leave record
  - 409 duplicate employee code / duplicate leave date
  - 500 everything else (message not leaked)

The handler holds a Now func so tests can pin the clock; the engine itself
always takes the instant as an argument.
*/
package api

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"github.com/drippay/intern-engine/engine"
	"github.com/drippay/intern-engine/leave"
	"github.com/drippay/intern-engine/roster"
	"github.com/drippay/intern-engine/snapshot"
)

// Handler holds all dependencies for the HTTP handlers.
type Handler struct {
	Directory *roster.Directory
	Ledger    *leave.Ledger
	Snapshots *snapshot.Service

	// Now supplies the current instant; replaced in tests.
	Now func() time.Time
}

func NewHandler(directory *roster.Directory, ledger *leave.Ledger, snapshots *snapshot.Service) *Handler {
	return &Handler{
		Directory: directory,
		Ledger:    ledger,
		Snapshots: snapshots,
		Now:       time.Now,
	}
}

// =============================================================================
// INTERN HANDLERS
// =============================================================================

// ListInterns returns interns ordered by creation, optionally filtered.
func (h *Handler) ListInterns(w http.ResponseWriter, r *http.Request) {
	status := engine.Status(r.URL.Query().Get("status"))

	interns, err := h.Directory.List(r.Context(), status)
	if err != nil {
		h.writeDomainError(w, err)
		return
	}

	dtos := make([]InternDTO, len(interns))
	for i, rec := range interns {
		dtos[i] = toInternDTO(rec)
	}
	writeData(w, dtos)
}

// GetIntern returns a single intern.
func (h *Handler) GetIntern(w http.ResponseWriter, r *http.Request) {
	rec, err := h.Directory.Get(r.Context(), engine.InternID(chi.URLParam(r, "id")))
	if err != nil {
		h.writeDomainError(w, err)
		return
	}
	writeData(w, toInternDTO(rec))
}

// CreateIntern validates and stores a new intern.
func (h *Handler) CreateIntern(w http.ResponseWriter, r *http.Request) {
	var req CreateInternRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	draft, err := draftFromRequest(req)
	if err != nil {
		h.writeDomainError(w, err)
		return
	}

	rec, err := h.Directory.Create(r.Context(), draft)
	if err != nil {
		h.writeDomainError(w, err)
		return
	}
	writeData(w, toInternDTO(rec))
}

func draftFromRequest(req CreateInternRequest) (roster.Draft, error) {
	draft := roster.Draft{
		Name:         req.Name,
		EmployeeCode: req.EmployeeID,
		Phone:        req.Phone,
		Department:   req.Department,
		DailyWage:    decimal.NewFromFloat(req.DailySalary),
	}

	var err error
	if req.EntryDate != "" {
		if draft.HireDate, err = engine.ParseDate(req.EntryDate); err != nil {
			return roster.Draft{}, &engine.ValidationError{Field: "entry_date", Reason: "must be YYYY-MM-DD"}
		}
	}
	if req.WorkStart != "" {
		if draft.WorkStart, err = engine.ParseTimeOfDay(req.WorkStart); err != nil {
			return roster.Draft{}, &engine.ValidationError{Field: "work_start_time", Reason: "must be HH:MM:SS"}
		}
	}
	if req.WorkEnd != "" {
		if draft.WorkEnd, err = engine.ParseTimeOfDay(req.WorkEnd); err != nil {
			return roster.Draft{}, &engine.ValidationError{Field: "work_end_time", Reason: "must be HH:MM:SS"}
		}
	}
	return draft, nil
}

// =============================================================================
// SALARY HANDLERS
// =============================================================================

// RealtimeSalary returns the live accrual snapshot for one intern.
// The client polls this once per second; every call recomputes from the
// ledger, so identical concurrent polls agree.
func (h *Handler) RealtimeSalary(w http.ResponseWriter, r *http.Request) {
	internID := r.URL.Query().Get("intern_id")
	if internID == "" {
		writeError(w, http.StatusBadRequest, "intern_id is required")
		return
	}

	snap, err := h.Snapshots.Snapshot(r.Context(), engine.InternID(internID), h.Now())
	if err != nil {
		h.writeDomainError(w, err)
		return
	}
	writeData(w, toRealtimeSalaryDTO(snap))
}

// MonthlySalary returns one month's statistics.
func (h *Handler) MonthlySalary(w http.ResponseWriter, r *http.Request) {
	internID := r.URL.Query().Get("intern_id")
	if internID == "" {
		writeError(w, http.StatusBadRequest, "intern_id is required")
		return
	}
	year, err := strconv.Atoi(r.URL.Query().Get("year"))
	if err != nil || year < 1 {
		writeError(w, http.StatusBadRequest, "year must be a positive integer")
		return
	}
	month, err := strconv.Atoi(r.URL.Query().Get("month"))
	if err != nil || month < 1 || month > 12 {
		writeError(w, http.StatusBadRequest, "month must be 1-12")
		return
	}

	stats, err := h.Snapshots.Monthly(r.Context(), engine.InternID(internID), year, time.Month(month), h.Now())
	if err != nil {
		h.writeDomainError(w, err)
		return
	}
	writeData(w, MonthlySalaryDTO{
		InternID:    internID,
		Year:        year,
		Month:       month,
		TotalSalary: stats.TotalSalary.InexactFloat64(),
		WorkDays:    stats.WorkDays,
		LeaveDays:   stats.LeaveDays,
	})
}

// YearlySalary returns one year's statistics.
func (h *Handler) YearlySalary(w http.ResponseWriter, r *http.Request) {
	internID := r.URL.Query().Get("intern_id")
	if internID == "" {
		writeError(w, http.StatusBadRequest, "intern_id is required")
		return
	}
	year, err := strconv.Atoi(r.URL.Query().Get("year"))
	if err != nil || year < 1 {
		writeError(w, http.StatusBadRequest, "year must be a positive integer")
		return
	}

	stats, err := h.Snapshots.Yearly(r.Context(), engine.InternID(internID), year, h.Now())
	if err != nil {
		h.writeDomainError(w, err)
		return
	}
	writeData(w, YearlySalaryDTO{
		InternID:       internID,
		Year:           year,
		TotalSalary:    stats.TotalSalary.InexactFloat64(),
		TotalWorkDays:  stats.WorkDays,
		TotalLeaveDays: stats.LeaveDays,
	})
}

// =============================================================================
// LEAVE HANDLERS
// =============================================================================

// ListLeave returns an intern's leave records, most recent first.
// start_date / end_date bound the range; both default open.
func (h *Handler) ListLeave(w http.ResponseWriter, r *http.Request) {
	internID := r.URL.Query().Get("intern_id")
	if internID == "" {
		writeError(w, http.StatusBadRequest, "intern_id is required")
		return
	}
	if _, err := h.Directory.Get(r.Context(), engine.InternID(internID)); err != nil {
		h.writeDomainError(w, err)
		return
	}

	p := engine.Period{
		Start: engine.NewDate(1, time.January, 1),
		End:   engine.NewDate(9999, time.December, 31),
	}
	if s := r.URL.Query().Get("start_date"); s != "" {
		d, err := engine.ParseDate(s)
		if err != nil {
			writeError(w, http.StatusBadRequest, "start_date must be YYYY-MM-DD")
			return
		}
		p.Start = d
	}
	if s := r.URL.Query().Get("end_date"); s != "" {
		d, err := engine.ParseDate(s)
		if err != nil {
			writeError(w, http.StatusBadRequest, "end_date must be YYYY-MM-DD")
			return
		}
		p.End = d
	}

	records, err := h.Ledger.List(r.Context(), engine.InternID(internID), p)
	if err != nil {
		h.writeDomainError(w, err)
		return
	}
	writeData(w, toLeaveDTOs(records))
}

// AddLeave records a leave date. A duplicate date is a 409 that reports
// the record already holding the date.
func (h *Handler) AddLeave(w http.ResponseWriter, r *http.Request) {
	var req AddLeaveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.InternID == "" {
		writeError(w, http.StatusBadRequest, "intern_id is required")
		return
	}
	date, err := engine.ParseDate(req.LeaveDate)
	if err != nil {
		writeError(w, http.StatusBadRequest, "leave_date must be YYYY-MM-DD")
		return
	}

	// Unknown interns are a 404, not a silently orphaned record.
	if _, err := h.Directory.Get(r.Context(), engine.InternID(req.InternID)); err != nil {
		h.writeDomainError(w, err)
		return
	}

	rec, err := h.Ledger.Add(r.Context(), engine.InternID(req.InternID), date, req.Reason)
	if err != nil {
		var dup *engine.DuplicateLeaveError
		if errors.As(err, &dup) {
			writeConflict(w, "leave already recorded for "+dup.Date.String(), toLeaveDTO(dup.Existing))
			return
		}
		h.writeDomainError(w, err)
		return
	}
	writeData(w, toLeaveDTO(rec))
}

// RemoveLeave deletes a leave record by id.
func (h *Handler) RemoveLeave(w http.ResponseWriter, r *http.Request) {
	if err := h.Ledger.Remove(r.Context(), engine.LeaveID(chi.URLParam(r, "id"))); err != nil {
		h.writeDomainError(w, err)
		return
	}
	writeData(w, nil)
}

// =============================================================================
// RESPONSE HELPERS
// =============================================================================

func writeData(w http.ResponseWriter, data any) {
	writeJSON(w, http.StatusOK, envelope{Code: http.StatusOK, Message: "success", Data: data})
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, envelope{Code: status, Message: message})
}

// writeConflict is a 409 that still carries the conflicting record, so a
// retried add can adopt it instead of failing.
func writeConflict(w http.ResponseWriter, message string, data any) {
	writeJSON(w, http.StatusConflict, envelope{Code: http.StatusConflict, Message: message, Data: data})
}

func (h *Handler) writeDomainError(w http.ResponseWriter, err error) {
	switch {
	case engine.IsValidation(err):
		writeError(w, http.StatusBadRequest, err.Error())
	case engine.IsNotFound(err):
		writeError(w, http.StatusNotFound, err.Error())
	case engine.IsConflict(err):
		writeError(w, http.StatusConflict, err.Error())
	default:
		log.Printf("internal error: %v", err)
		writeError(w, http.StatusInternalServerError, "internal error")
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("failed to encode response: %v", err)
	}
}
