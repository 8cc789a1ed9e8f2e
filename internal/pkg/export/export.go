// Package export renders attendance logs, analytics and the employee roster
// as Excel workbooks and PDF documents.
package export

import (
	"fmt"
	"time"

	"github.com/cmlabs-hris/checkin-backend-go/internal/pkg/clock"
)

const (
	ContentTypeExcel = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	ContentTypePDF   = "application/pdf"
)

// DefaultInstitution is the letterhead printed above every report.
var DefaultInstitution = []string{
	"República de Moçambique",
	"Província de Inhambane",
	"Governo do Distrito de Maxixe",
	"Serviço Distrital de Educação, Juventude e Tecnologia de Maxixe",
}

const (
	titleAttendance = "Attendance Log"
	titleAnalytics  = "Attendance and Punctuality Statistics"
	titleRoster     = "Employee Roster"

	noteAttendance = "(Operational report, for information only)"
	noteAnalytics  = "Note: statistical monitoring document. Absences are subject to administrative justification."
)

// Renderer turns service output into downloadable files.
type Renderer struct {
	institution []string
	zone        clock.Zone
}

func NewRenderer(institution []string, zone clock.Zone) *Renderer {
	if len(institution) == 0 {
		institution = DefaultInstitution
	}
	return &Renderer{institution: institution, zone: zone}
}

func (r *Renderer) generatedLine(at time.Time) string {
	return "Generated at: " + r.zone.In(at).Format("02/01/2006 15:04")
}

// displayDate turns "YYYY-MM-DD" into "DD/MM/YYYY".
func displayDate(isoDate string) string {
	t, err := time.Parse("2006-01-02", isoDate)
	if err != nil {
		return isoDate
	}
	return t.Format("02/01/2006")
}

func percent(v int) string {
	return fmt.Sprintf("%d%%", v)
}

func status(lateMinutes int) string {
	if lateMinutes > 0 {
		return "Late"
	}
	return "On time"
}

// AttendanceFilename names an attendance export after its period and range.
func AttendanceFilename(period, from, to, ext string) string {
	return fmt.Sprintf("Attendance_%s_%s_to_%s.%s", period, from, to, ext)
}
