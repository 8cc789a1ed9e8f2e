package export

import (
	"fmt"
	"time"

	"github.com/cmlabs-hris/checkin-backend-go/internal/domain/analytics"
	"github.com/cmlabs-hris/checkin-backend-go/internal/domain/attendance"
	"github.com/cmlabs-hris/checkin-backend-go/internal/domain/employee"
	"github.com/xuri/excelize/v2"
)

const (
	colorHeader = "#2C3E50"
	colorLate   = "#FF0000"
	colorGood   = "#155724"
	colorWarn   = "#856404"
	colorLowBg  = "#F8D7DA"
	colorMuted  = "#555555"
)

type column struct {
	title string
	width float64
}

// sheet appends rows to one worksheet and keeps track of the current row.
type sheet struct {
	f      *excelize.File
	name   string
	row    int
	styles map[string]int
}

func newWorkbook(sheetName string) (*sheet, error) {
	f := excelize.NewFile()
	if err := f.SetSheetName("Sheet1", sheetName); err != nil {
		f.Close()
		return nil, err
	}

	s := &sheet{f: f, name: sheetName, row: 1, styles: map[string]int{}}

	defs := map[string]*excelize.Style{
		"letterhead": {
			Font:      &excelize.Font{Bold: true, Size: 12, Family: "Arial"},
			Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
		},
		"title": {
			Font:      &excelize.Font{Bold: true, Size: 14, Family: "Arial"},
			Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
		},
		"note": {
			Font:      &excelize.Font{Italic: true, Size: 9, Color: colorMuted},
			Alignment: &excelize.Alignment{Horizontal: "center"},
		},
		"header": {
			Font:      &excelize.Font{Bold: true, Color: "#FFFFFF"},
			Fill:      excelize.Fill{Type: "pattern", Color: []string{colorHeader}, Pattern: 1},
			Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
		},
		"center": {
			Alignment: &excelize.Alignment{Horizontal: "center"},
		},
		"late": {
			Font:      &excelize.Font{Bold: true, Color: colorLate},
			Alignment: &excelize.Alignment{Horizontal: "center"},
		},
		"good": {
			Font:      &excelize.Font{Bold: true, Color: colorGood},
			Alignment: &excelize.Alignment{Horizontal: "center"},
		},
		"warn": {
			Font:      &excelize.Font{Color: colorWarn},
			Alignment: &excelize.Alignment{Horizontal: "center"},
		},
		"low": {
			Fill:      excelize.Fill{Type: "pattern", Color: []string{colorLowBg}, Pattern: 1},
			Alignment: &excelize.Alignment{Horizontal: "center"},
		},
	}
	for name, def := range defs {
		id, err := f.NewStyle(def)
		if err != nil {
			f.Close()
			return nil, fmt.Errorf("create %s style: %w", name, err)
		}
		s.styles[name] = id
	}

	return s, nil
}

func cell(col, row int) string {
	name, _ := excelize.CoordinatesToCellName(col, row)
	return name
}

// banner writes text merged across width columns on its own row.
func (s *sheet) banner(text string, width int, style string) error {
	first, last := cell(1, s.row), cell(width, s.row)
	if err := s.f.SetCellValue(s.name, first, text); err != nil {
		return err
	}
	if width > 1 {
		if err := s.f.MergeCell(s.name, first, last); err != nil {
			return err
		}
	}
	if err := s.f.SetCellStyle(s.name, first, last, s.styles[style]); err != nil {
		return err
	}
	s.row++
	return nil
}

func (s *sheet) letterhead(institution []string, title string, notes []string, width int) error {
	for _, line := range institution {
		if err := s.banner(line, width, "letterhead"); err != nil {
			return err
		}
	}
	if err := s.banner(title, width, "title"); err != nil {
		return err
	}
	for _, note := range notes {
		if err := s.banner(note, width, "note"); err != nil {
			return err
		}
	}
	s.row++
	return nil
}

func (s *sheet) tableHeader(cols []column) error {
	for i, c := range cols {
		if err := s.f.SetCellValue(s.name, cell(i+1, s.row), c.title); err != nil {
			return err
		}
		colName, _ := excelize.ColumnNumberToName(i + 1)
		if err := s.f.SetColWidth(s.name, colName, colName, c.width); err != nil {
			return err
		}
	}
	if err := s.f.SetCellStyle(s.name, cell(1, s.row), cell(len(cols), s.row), s.styles["header"]); err != nil {
		return err
	}
	if err := s.f.SetRowHeight(s.name, s.row, 20); err != nil {
		return err
	}
	s.row++
	return nil
}

// values writes one data row; styles[i] applies to column i+1 when not empty.
func (s *sheet) values(values []interface{}, styles []string) error {
	for i, v := range values {
		ref := cell(i+1, s.row)
		if err := s.f.SetCellValue(s.name, ref, v); err != nil {
			return err
		}
		if i < len(styles) && styles[i] != "" {
			if err := s.f.SetCellStyle(s.name, ref, ref, s.styles[styles[i]]); err != nil {
				return err
			}
		}
	}
	s.row++
	return nil
}

func (s *sheet) bytes() ([]byte, error) {
	defer s.f.Close()
	buf, err := s.f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("write workbook: %w", err)
	}
	return buf.Bytes(), nil
}

// AttendanceExcel renders an attendance log, newest first as given.
func (r *Renderer) AttendanceExcel(list attendance.ListAttendanceResponse, generatedAt time.Time) ([]byte, error) {
	cols := []column{
		{"Employee", 35},
		{"Date", 15},
		{"Time", 12},
		{"Late (min)", 14},
		{"Status", 16},
	}

	s, err := newWorkbook("Attendance Log")
	if err != nil {
		return nil, err
	}

	notes := []string{
		noteAttendance,
		fmt.Sprintf("Period: %s (%s to %s)", list.Period, displayDate(list.From), displayDate(list.To)),
		r.generatedLine(generatedAt),
	}
	if err := s.letterhead(r.institution, titleAttendance, notes, len(cols)); err != nil {
		s.f.Close()
		return nil, err
	}
	if err := s.tableHeader(cols); err != nil {
		s.f.Close()
		return nil, err
	}

	for _, a := range list.Attendances {
		lateStyle := "center"
		if a.LateMinutes > 0 {
			lateStyle = "late"
		}
		err := s.values(
			[]interface{}{a.EmployeeName, displayDate(a.Date), a.Time, a.LateMinutes, status(a.LateMinutes)},
			[]string{"", "center", "center", lateStyle, lateStyle},
		)
		if err != nil {
			s.f.Close()
			return nil, err
		}
	}

	return s.bytes()
}

// AnalyticsExcel renders the monthly ranking.
func (r *Renderer) AnalyticsExcel(a *analytics.AnalyticsResponse, generatedAt time.Time) ([]byte, error) {
	cols := []column{
		{"Employee", 35},
		{"Expected Days", 15},
		{"Present Days", 15},
		{"Absences", 14},
		{"Attendance Rate", 17},
		{"Punctuality Rate", 17},
		{"Late Minutes", 15},
	}

	s, err := newWorkbook("Statistics")
	if err != nil {
		return nil, err
	}

	notes := []string{
		noteAnalytics,
		fmt.Sprintf("Month: %s, business days counted: %d", a.Month, a.BusinessDays),
		r.generatedLine(generatedAt),
	}
	if err := s.letterhead(r.institution, titleAnalytics, notes, len(cols)); err != nil {
		s.f.Close()
		return nil, err
	}
	if err := s.tableHeader(cols); err != nil {
		s.f.Close()
		return nil, err
	}

	for _, e := range a.Employees {
		absStyle := "center"
		if e.Absences > 0 {
			absStyle = "late"
		}
		attStyle := "center"
		switch {
		case e.AttendanceRate < 75:
			attStyle = "low"
		case e.AttendanceRate >= 95:
			attStyle = "good"
		}
		puncStyle := "center"
		if e.PunctualityRate < 80 {
			puncStyle = "warn"
		}

		err := s.values(
			[]interface{}{
				e.Name, e.ExpectedDays, e.PresentDays, e.Absences,
				percent(e.AttendanceRate), percent(e.PunctualityRate), e.TotalLateMinutes,
			},
			[]string{"", "center", "center", absStyle, attStyle, puncStyle, "center"},
		)
		if err != nil {
			s.f.Close()
			return nil, err
		}
	}

	return s.bytes()
}

// RosterExcel renders the active employee list. PINs are never exported.
func (r *Renderer) RosterExcel(employees []employee.EmployeeResponse, generatedAt time.Time) ([]byte, error) {
	cols := []column{
		{"Full Name", 40},
		{"System ID", 40},
		{"Registered", 16},
	}

	s, err := newWorkbook("Employees")
	if err != nil {
		return nil, err
	}

	if err := s.letterhead(r.institution, titleRoster, []string{r.generatedLine(generatedAt)}, len(cols)); err != nil {
		s.f.Close()
		return nil, err
	}
	if err := s.tableHeader(cols); err != nil {
		s.f.Close()
		return nil, err
	}

	for _, e := range employees {
		registered := e.CreatedAt
		if t, err := time.Parse(time.RFC3339, e.CreatedAt); err == nil {
			registered = r.zone.In(t).Format("02/01/2006")
		}
		if err := s.values([]interface{}{e.Name, e.ID, registered}, []string{"", "center", "center"}); err != nil {
			s.f.Close()
			return nil, err
		}
	}

	return s.bytes()
}
