/*
dto.go - JSON structures for the API boundary

PURPOSE:
  Decouples the domain model from the wire contract. The field names and
  the {code, message, data} envelope match what the display client
  consumes. Money leaves the core as exact decimals and is converted to
  float64 only here - the presentation boundary.

NAMING CONVENTION:
  - *DTO:     response payloads
  - *Request: request bodies
*/
package api

import (
	"time"

	"github.com/drippay/intern-engine/engine"
)

// envelope is the uniform response wrapper. Code mirrors the HTTP status;
// clients branch on code == 200.
type envelope struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Data    any    `json:"data,omitempty"`
}

// =============================================================================
// INTERNS
// =============================================================================

type InternDTO struct {
	ID          string  `json:"id"`
	EmployeeID  string  `json:"employee_id"`
	Name        string  `json:"name"`
	DailySalary float64 `json:"daily_salary"`
	WorkStart   string  `json:"work_start_time"`
	WorkEnd     string  `json:"work_end_time"`
	EntryDate   string  `json:"entry_date"`
	Phone       string  `json:"phone,omitempty"`
	Department  string  `json:"department,omitempty"`
	Status      string  `json:"status"`
	CreatedAt   string  `json:"created_at"`
}

type CreateInternRequest struct {
	Name        string  `json:"name"`
	EmployeeID  string  `json:"employee_id"`
	DailySalary float64 `json:"daily_salary"`
	WorkStart   string  `json:"work_start_time"`
	WorkEnd     string  `json:"work_end_time"`
	EntryDate   string  `json:"entry_date"`
	Phone       string  `json:"phone,omitempty"`
	Department  string  `json:"department,omitempty"`
}

func toInternDTO(rec engine.InternRecord) InternDTO {
	return InternDTO{
		ID:          string(rec.ID),
		EmployeeID:  rec.EmployeeCode,
		Name:        rec.Name,
		DailySalary: rec.DailyWage.InexactFloat64(),
		WorkStart:   rec.WorkStart.String(),
		WorkEnd:     rec.WorkEnd.String(),
		EntryDate:   rec.HireDate.String(),
		Phone:       rec.Phone,
		Department:  rec.Department,
		Status:      string(rec.Status),
		CreatedAt:   rec.CreatedAt.Format(time.RFC3339),
	}
}

// =============================================================================
// SALARY
// =============================================================================

type RealtimeSalaryDTO struct {
	InternID           string  `json:"intern_id"`
	Date               string  `json:"date"`
	TotalSalary        float64 `json:"total_salary"`
	TodaySalary        float64 `json:"today_salary"`
	TodayWorkedSeconds int64   `json:"today_worked_seconds"`
	WorkSecondsPerDay  int64   `json:"work_seconds_per_day"`
	CompletedDays      int     `json:"completed_days"`
	LeaveDays          int     `json:"leave_days"`
	DailySalary        float64 `json:"daily_salary"`
	SalaryPerSecond    float64 `json:"salary_per_second"`
}

func toRealtimeSalaryDTO(s engine.AccrualSnapshot) RealtimeSalaryDTO {
	return RealtimeSalaryDTO{
		InternID:           string(s.InternID),
		Date:               engine.DateOf(s.AsOf).String(),
		TotalSalary:        s.TotalSalary.InexactFloat64(),
		TodaySalary:        s.TodaySalary.InexactFloat64(),
		TodayWorkedSeconds: s.TodayWorkedSeconds,
		WorkSecondsPerDay:  s.WorkSecondsPerDay,
		CompletedDays:      s.CompletedDays,
		LeaveDays:          s.LeaveDays,
		DailySalary:        s.DailyWage.InexactFloat64(),
		SalaryPerSecond:    s.SalaryPerSecond.InexactFloat64(),
	}
}

type MonthlySalaryDTO struct {
	InternID    string  `json:"intern_id"`
	Year        int     `json:"year"`
	Month       int     `json:"month"`
	TotalSalary float64 `json:"total_salary"`
	WorkDays    int     `json:"work_days"`
	LeaveDays   int     `json:"leave_days"`
}

type YearlySalaryDTO struct {
	InternID       string  `json:"intern_id"`
	Year           int     `json:"year"`
	TotalSalary    float64 `json:"total_salary"`
	TotalWorkDays  int     `json:"total_work_days"`
	TotalLeaveDays int     `json:"total_leave_days"`
}

// =============================================================================
// LEAVE
// =============================================================================

type LeaveDTO struct {
	ID        string `json:"id"`
	InternID  string `json:"intern_id"`
	LeaveDate string `json:"leave_date"`
	Reason    string `json:"reason,omitempty"`
	CreatedAt string `json:"created_at"`
}

type AddLeaveRequest struct {
	InternID  string `json:"intern_id"`
	LeaveDate string `json:"leave_date"`
	Reason    string `json:"reason,omitempty"`
}

func toLeaveDTO(rec engine.LeaveRecord) LeaveDTO {
	return LeaveDTO{
		ID:        string(rec.ID),
		InternID:  string(rec.InternID),
		LeaveDate: rec.Date.String(),
		Reason:    rec.Reason,
		CreatedAt: rec.CreatedAt.Format(time.RFC3339),
	}
}

func toLeaveDTOs(records []engine.LeaveRecord) []LeaveDTO {
	dtos := make([]LeaveDTO, len(records))
	for i, rec := range records {
		dtos[i] = toLeaveDTO(rec)
	}
	return dtos
}
