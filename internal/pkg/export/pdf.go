package export

import (
	"bytes"
	"fmt"
	"strconv"
	"time"

	"github.com/cmlabs-hris/checkin-backend-go/internal/domain/analytics"
	"github.com/cmlabs-hris/checkin-backend-go/internal/domain/attendance"
	"github.com/jung-kurt/gofpdf"
)

const (
	pdfRowHeight      = 7.0
	pdfHeaderHeight   = 8.0
	pdfNoteLineHeight = 4.0
	pdfNoteGap        = 4.0
)

type pdfColumn struct {
	title string
	width float64
	align string
}

type document struct {
	pdf  *gofpdf.Fpdf
	tr   func(string) string
	cols []pdfColumn
}

func (r *Renderer) newDocument(orientation, title, subtitle string, generatedAt time.Time) *document {
	pdf := gofpdf.New(orientation, "mm", "A4", "")
	pdf.SetMargins(15, 15, 15)
	pdf.SetAutoPageBreak(false, 15)
	pdf.AddPage()

	d := &document{pdf: pdf, tr: pdf.UnicodeTranslatorFromDescriptor("")}
	width, _ := pdf.GetPageSize()
	left, _, right, _ := pdf.GetMargins()
	content := width - left - right

	pdf.SetFont("Helvetica", "B", 12)
	for i, line := range r.institution {
		if i == len(r.institution)-1 {
			pdf.SetFont("Helvetica", "B", 10)
		}
		pdf.CellFormat(content, 6, d.tr(line), "", 1, "C", false, 0, "")
	}

	y := pdf.GetY() + 2
	pdf.SetLineWidth(0.5)
	pdf.Line(left+25, y, width-right-25, y)
	pdf.Ln(6)

	pdf.SetFont("Helvetica", "B", 15)
	pdf.SetTextColor(40, 40, 40)
	pdf.CellFormat(content, 8, d.tr(title), "", 1, "C", false, 0, "")

	pdf.SetFont("Helvetica", "", 9)
	pdf.SetTextColor(100, 100, 100)
	pdf.CellFormat(content, 5, d.tr(subtitle), "", 1, "C", false, 0, "")
	pdf.CellFormat(content, 5, d.tr(r.generatedLine(generatedAt)), "", 1, "C", false, 0, "")
	pdf.Ln(4)
	pdf.SetTextColor(0, 0, 0)

	return d
}

func (d *document) header(cols []pdfColumn) {
	d.cols = cols
	d.pdf.SetFont("Helvetica", "B", 9)
	d.pdf.SetFillColor(44, 62, 80)
	d.pdf.SetTextColor(255, 255, 255)
	for _, c := range cols {
		d.pdf.CellFormat(c.width, pdfHeaderHeight, d.tr(c.title), "1", 0, "C", true, 0, "")
	}
	d.pdf.Ln(-1)
	d.pdf.SetTextColor(0, 0, 0)
	d.pdf.SetFont("Helvetica", "", 9)
}

// row writes one table row, starting a new page with a repeated header when needed.
// highlight marks columns to print in bold red.
func (d *document) row(values []string, highlight map[int]bool) {
	_, pageHeight := d.pdf.GetPageSize()
	_, _, _, bottom := d.pdf.GetMargins()
	if d.pdf.GetY()+pdfRowHeight > pageHeight-bottom {
		d.pdf.AddPage()
		d.header(d.cols)
	}

	for i, v := range values {
		if highlight[i] {
			d.pdf.SetFont("Helvetica", "B", 9)
			d.pdf.SetTextColor(231, 76, 60)
		}
		d.pdf.CellFormat(d.cols[i].width, pdfRowHeight, d.tr(v), "1", 0, d.cols[i].align, false, 0, "")
		if highlight[i] {
			d.pdf.SetFont("Helvetica", "", 9)
			d.pdf.SetTextColor(0, 0, 0)
		}
	}
	d.pdf.Ln(-1)
}

// note writes a centered footnote under the table. Page breaks are manual, so
// a note that does not fit above the bottom margin goes on a new page.
func (d *document) note(text string) {
	d.pdf.SetFont("Helvetica", "I", 8)
	width, pageHeight := d.pdf.GetPageSize()
	left, _, right, bottom := d.pdf.GetMargins()

	lines := d.pdf.SplitLines([]byte(d.tr(text)), width-left-right)
	height := float64(len(lines)) * pdfNoteLineHeight
	if d.pdf.GetY()+pdfNoteGap+height > pageHeight-bottom {
		d.pdf.AddPage()
	} else {
		d.pdf.Ln(pdfNoteGap)
	}

	d.pdf.SetTextColor(85, 85, 85)
	d.pdf.MultiCell(0, pdfNoteLineHeight, d.tr(text), "", "C", false)
	d.pdf.SetTextColor(0, 0, 0)
}

func (d *document) bytes() ([]byte, error) {
	var buf bytes.Buffer
	if err := d.pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("write pdf: %w", err)
	}
	return buf.Bytes(), nil
}

// AttendancePDF renders an attendance log as an A4 portrait table.
func (r *Renderer) AttendancePDF(list attendance.ListAttendanceResponse, generatedAt time.Time) ([]byte, error) {
	subtitle := fmt.Sprintf("Period: %s (%s to %s)", list.Period, displayDate(list.From), displayDate(list.To))
	d := r.newDocument("P", titleAttendance, subtitle, generatedAt)

	d.header([]pdfColumn{
		{"Name", 70, "L"},
		{"Date", 28, "C"},
		{"Time", 22, "C"},
		{"Late", 22, "C"},
		{"Status", 38, "C"},
	})

	for _, a := range list.Attendances {
		late := "-"
		if a.LateMinutes > 0 {
			late = "+" + strconv.Itoa(a.LateMinutes)
		}
		d.row(
			[]string{a.EmployeeName, displayDate(a.Date), a.Time, late, status(a.LateMinutes)},
			map[int]bool{4: a.LateMinutes > 0},
		)
	}

	return d.bytes()
}

// AnalyticsPDF renders the monthly ranking as an A4 landscape table.
func (r *Renderer) AnalyticsPDF(a *analytics.AnalyticsResponse, generatedAt time.Time) ([]byte, error) {
	subtitle := fmt.Sprintf("Month: %s, business days counted: %d", a.Month, a.BusinessDays)
	d := r.newDocument("L", titleAnalytics, subtitle, generatedAt)

	d.header([]pdfColumn{
		{"Employee", 77, "L"},
		{"Expected", 28, "C"},
		{"Present", 28, "C"},
		{"Absences", 28, "C"},
		{"Attendance", 30, "C"},
		{"Punctuality", 30, "C"},
		{"Late (min)", 46, "C"},
	})

	for _, e := range a.Employees {
		d.row(
			[]string{
				e.Name,
				strconv.Itoa(e.ExpectedDays),
				strconv.Itoa(e.PresentDays),
				strconv.Itoa(e.Absences),
				percent(e.AttendanceRate),
				percent(e.PunctualityRate),
				strconv.Itoa(e.TotalLateMinutes),
			},
			map[int]bool{3: e.Absences > 0},
		)
	}

	d.note(noteAnalytics)

	return d.bytes()
}
