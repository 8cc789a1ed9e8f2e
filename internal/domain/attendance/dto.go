package attendance

import (
	"strings"

	"github.com/cmlabs-hris/checkin-backend-go/internal/pkg/validator"
)

// ========================================
// CHECK-IN DTOs
// ========================================

type CheckInRequest struct {
	EmployeeID string   `json:"employee_id" validate:"required"`
	PIN        string   `json:"pin" validate:"required"`
	Token      string   `json:"token" validate:"required"`
	Latitude   *float64 `json:"latitude,omitempty" validate:"omitempty,latitude"`
	Longitude  *float64 `json:"longitude,omitempty" validate:"omitempty,longitude"`
}

func (r *CheckInRequest) Validate() error {
	r.EmployeeID = strings.TrimSpace(r.EmployeeID)
	r.Token = strings.TrimSpace(r.Token)
	return validator.Struct(r)
}

type CheckInResponse struct {
	Message      string `json:"message"`
	EmployeeName string `json:"employee_name"`
	LateMinutes  int    `json:"late_minutes"`
	CheckIn      string `json:"check_in"`
	Date         string `json:"date"`
}

type TokenResponse struct {
	Token     string `json:"token"`
	ExpiresAt string `json:"expires_at"`
}

// ========================================
// LISTING DTOs
// ========================================

type PeriodFilter struct {
	Period string `json:"period"`
}

// Validate defaults an empty period to daily and returns ErrInvalidPeriod
// for anything other than daily, weekly or monthly.
func (f *PeriodFilter) Validate() error {
	f.Period = strings.ToLower(strings.TrimSpace(f.Period))
	if f.Period == "" {
		f.Period = string(PeriodDaily)
	}
	if !Period(f.Period).Valid() {
		return ErrInvalidPeriod
	}
	return nil
}

type AttendanceResponse struct {
	ID           string `json:"id"`
	EmployeeID   string `json:"employee_id"`
	EmployeeName string `json:"employee_name"`
	CheckIn      string `json:"check_in"`
	Date         string `json:"date"`
	Time         string `json:"time"`
	LateMinutes  int    `json:"late_minutes"`
	Status       string `json:"status"`
}

type ListAttendanceResponse struct {
	Period      string               `json:"period"`
	From        string               `json:"from"`
	To          string               `json:"to"`
	Total       int                  `json:"total"`
	LateCount   int                  `json:"late_count"`
	Attendances []AttendanceResponse `json:"attendances"`
}

const (
	StatusOnTime = "on_time"
	StatusLate   = "late"
)
