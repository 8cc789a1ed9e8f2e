package http

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/cmlabs-hris/checkin-backend-go/internal/domain/attendance"
	"github.com/cmlabs-hris/checkin-backend-go/internal/domain/report"
	"github.com/cmlabs-hris/checkin-backend-go/internal/handler/http/response"
	"github.com/go-chi/chi/v5"
)

type ReportHandler interface {
	ExportAttendance(w http.ResponseWriter, r *http.Request)
	ExportAnalytics(w http.ResponseWriter, r *http.Request)
	ExportRoster(w http.ResponseWriter, r *http.Request)
}

type reportHandlerImpl struct {
	reportService report.ReportService
}

func NewReportHandler(reportService report.ReportService) ReportHandler {
	return &reportHandlerImpl{
		reportService: reportService,
	}
}

func writeFile(w http.ResponseWriter, file report.File) {
	w.Header().Set("Content-Type", file.ContentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", file.Name))
	w.Header().Set("Content-Length", strconv.Itoa(len(file.Data)))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(file.Data)
}

// ExportAttendance implements ReportHandler. The format comes from the path: excel or pdf.
func (h *reportHandlerImpl) ExportAttendance(w http.ResponseWriter, r *http.Request) {
	req := report.AttendanceExportRequest{
		Period: attendance.Period(r.URL.Query().Get("period")),
		Format: report.Format(chi.URLParam(r, "format")),
	}

	file, err := h.reportService.ExportAttendance(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	writeFile(w, file)
}

// ExportAnalytics implements ReportHandler
func (h *reportHandlerImpl) ExportAnalytics(w http.ResponseWriter, r *http.Request) {
	req := report.AnalyticsExportRequest{
		Format: report.Format(chi.URLParam(r, "format")),
	}

	file, err := h.reportService.ExportAnalytics(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	writeFile(w, file)
}

// ExportRoster implements ReportHandler
func (h *reportHandlerImpl) ExportRoster(w http.ResponseWriter, r *http.Request) {
	file, err := h.reportService.ExportRoster(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	writeFile(w, file)
}
