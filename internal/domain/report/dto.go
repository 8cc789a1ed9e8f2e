package report

import (
	"strings"

	"github.com/cmlabs-hris/checkin-backend-go/internal/domain/attendance"
	"github.com/cmlabs-hris/checkin-backend-go/internal/pkg/validator"
)

type Format string

const (
	FormatExcel Format = "xlsx"
	FormatPDF   Format = "pdf"
)

// File is a rendered report ready to be streamed as an attachment.
type File struct {
	Name        string
	ContentType string
	Data        []byte
}

type AttendanceExportRequest struct {
	Period attendance.Period `json:"period"`
	Format Format            `json:"format" validate:"required,oneof=xlsx pdf"`
}

func (r *AttendanceExportRequest) Validate() error {
	filter := attendance.PeriodFilter{Period: string(r.Period)}
	if err := filter.Validate(); err != nil {
		return err
	}
	r.Period = attendance.Period(filter.Period)
	r.Format = normalizeFormat(r.Format)
	return validator.Struct(r)
}

type AnalyticsExportRequest struct {
	Format Format `json:"format" validate:"required,oneof=xlsx pdf"`
}

func (r *AnalyticsExportRequest) Validate() error {
	r.Format = normalizeFormat(r.Format)
	return validator.Struct(r)
}

// normalizeFormat accepts "excel" as an alias and defaults to xlsx.
func normalizeFormat(f Format) Format {
	name := strings.ToLower(strings.TrimSpace(string(f)))
	if validator.IsInSlice(name, []string{"", "excel", "xlsx"}) {
		return FormatExcel
	}
	return Format(name)
}
