package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/cmlabs-hris/checkin-backend-go/internal/domain/attendance"
	"github.com/cmlabs-hris/checkin-backend-go/internal/handler/http/response"
)

type AttendanceHandler interface {
	IssueToken(w http.ResponseWriter, r *http.Request)
	CheckIn(w http.ResponseWriter, r *http.Request)
	Today(w http.ResponseWriter, r *http.Request)
	ListByPeriod(w http.ResponseWriter, r *http.Request)
}

type attendanceHandlerImpl struct {
	attendanceService attendance.AttendanceService
}

func NewAttendanceHandler(attendanceService attendance.AttendanceService) AttendanceHandler {
	return &attendanceHandlerImpl{
		attendanceService: attendanceService,
	}
}

// IssueToken implements AttendanceHandler. The public page fetches one on load.
func (h *attendanceHandlerImpl) IssueToken(w http.ResponseWriter, r *http.Request) {
	result, err := h.attendanceService.IssueToken(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	w.Header().Set("Cache-Control", "no-store")
	response.Success(w, result)
}

// CheckIn implements AttendanceHandler
func (h *attendanceHandlerImpl) CheckIn(w http.ResponseWriter, r *http.Request) {
	var req attendance.CheckInRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	result, err := h.attendanceService.CheckIn(r.Context(), req)
	if err != nil {
		slog.Warn("check-in rejected", "employee_id", req.EmployeeID, "error", err)
		response.HandleError(w, err)
		return
	}

	response.Created(w, result.Message, result)
}

// Today implements AttendanceHandler
func (h *attendanceHandlerImpl) Today(w http.ResponseWriter, r *http.Request) {
	result, err := h.attendanceService.Today(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// ListByPeriod implements AttendanceHandler
func (h *attendanceHandlerImpl) ListByPeriod(w http.ResponseWriter, r *http.Request) {
	filter := attendance.PeriodFilter{
		Period: r.URL.Query().Get("period"),
	}

	result, err := h.attendanceService.ListByPeriod(r.Context(), filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}
