package analytics

// ========== MONTHLY ANALYTICS ==========

// AnalyticsResponse is the month-to-date snapshot shown on the admin dashboard
type AnalyticsResponse struct {
	Month          string         `json:"month"` // Format: "YYYY-MM"
	GeneratedAt    string         `json:"generated_at"`
	IsPastNoon     bool           `json:"is_past_noon"`
	BusinessDays   int            `json:"business_days"`
	Summary        Summary        `json:"summary"`
	Employees      []EmployeeStat `json:"employees"`
	DailyTrend     []TrendPoint   `json:"daily_trend"`
	AbsenteesToday []Absentee     `json:"absentees_today"`
}

// EmployeeStat is one row of the ranking, best attendance first
type EmployeeStat struct {
	EmployeeID       string `json:"employee_id"`
	Name             string `json:"name"`
	ExpectedDays     int    `json:"expected_days"`
	PresentDays      int    `json:"present_days"`
	Absences         int    `json:"absences"`
	LateOccurrences  int    `json:"late_occurrences"`
	TotalLateMinutes int    `json:"total_late_minutes"`
	AttendanceRate   int    `json:"attendance_rate"`  // percent
	PunctualityRate  int    `json:"punctuality_rate"` // percent
}

// TrendPoint is the rounded mean lateness of one civil day
type TrendPoint struct {
	Date           string `json:"date"`  // Format: "YYYY-MM-DD"
	Label          string `json:"label"` // Format: "DD/MM"
	AvgLateMinutes int    `json:"avg_late_minutes"`
	Checkins       int    `json:"checkins"`
}

type Summary struct {
	TotalCheckins       int `json:"total_checkins"`
	LateCheckins        int `json:"late_checkins"`
	AvgDelayMinutes     int `json:"avg_delay_minutes"`
	DelayOccurrenceRate int `json:"delay_occurrence_rate"` // percent
}

type Absentee struct {
	EmployeeID string `json:"employee_id"`
	Name       string `json:"name"`
}
