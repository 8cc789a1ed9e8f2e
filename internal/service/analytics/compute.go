package analytics

import (
	"sort"
	"time"

	"github.com/cmlabs-hris/checkin-backend-go/internal/domain/analytics"
	"github.com/cmlabs-hris/checkin-backend-go/internal/domain/attendance"
	"github.com/cmlabs-hris/checkin-backend-go/internal/domain/employee"
	"github.com/cmlabs-hris/checkin-backend-go/internal/pkg/clock"
	"github.com/shopspring/decimal"
)

// DefaultMidday is the cutoff after which today counts as an expected day.
var DefaultMidday = clock.TimeOfDay{Hour: 12, Minute: 0}

// Input is everything Compute needs. Records must fall inside the civil month of Now.
type Input struct {
	Now       time.Time
	Zone      clock.Zone
	Midday    clock.TimeOfDay
	Employees []employee.Employee
	Records   []attendance.Record
}

type counters struct {
	emp          employee.Employee
	owedDays     int
	presentDays  int
	lateMinutes  int
	lateArrivals int
}

type dayTotal struct {
	minutes int
	count   int
}

// roundRatio returns round(100*num/den) with halves rounded up.
func roundRatio(num, den int) int {
	if den == 0 {
		return 0
	}
	return int(decimal.NewFromInt(int64(num)).Mul(decimal.NewFromInt(100)).
		Div(decimal.NewFromInt(int64(den))).Round(0).IntPart())
}

// roundMean returns round(sum/count) with halves rounded up.
func roundMean(sum, count int) int {
	if count == 0 {
		return 0
	}
	return int(decimal.NewFromInt(int64(sum)).Div(decimal.NewFromInt(int64(count))).Round(0).IntPart())
}

// BusinessDays lists the weekdays from the first of the month through today
// when past midday, otherwise through yesterday. Each entry is local midnight.
func BusinessDays(z clock.Zone, now time.Time, pastNoon bool) []time.Time {
	last := z.StartOfDay(now)
	if !pastNoon {
		last = last.AddDate(0, 0, -1)
	}

	var days []time.Time
	for d := z.StartOfMonth(now); !d.After(last); d = d.AddDate(0, 0, 1) {
		if !z.IsWeekend(d) {
			days = append(days, d)
		}
	}
	return days
}

// effectiveStart is the later of the month start and the civil date the employee was created.
func effectiveStart(z clock.Zone, monthStart time.Time, emp employee.Employee) time.Time {
	created := z.Date(emp.CreatedAt)
	if created.Before(monthStart) {
		return monthStart
	}
	return created
}

// Compute builds the month-to-date snapshot. It reads nothing but its input.
func Compute(in Input) analytics.AnalyticsResponse {
	z := in.Zone
	midday := in.Midday
	if midday == (clock.TimeOfDay{}) {
		midday = DefaultMidday
	}

	pastNoon := in.Now.After(midday.On(z, in.Now))
	monthStart := z.StartOfMonth(in.Now)
	today := z.StartOfDay(in.Now)
	businessDays := BusinessDays(z, in.Now, pastNoon)

	stats := make(map[string]*counters, len(in.Employees))
	for _, emp := range in.Employees {
		start := effectiveStart(z, monthStart, emp)
		c := &counters{emp: emp}
		for _, day := range businessDays {
			if !day.Before(start) {
				c.owedDays++
			}
		}
		stats[emp.ID] = c
	}

	trend := map[string]*dayTotal{}
	checkedInToday := map[string]bool{}
	var summary analytics.Summary
	totalLate := 0

	for _, rec := range in.Records {
		summary.TotalCheckins++
		totalLate += rec.LateMinutes
		if rec.IsLate() {
			summary.LateCheckins++
		}

		if z.StartOfDay(rec.CheckIn).Equal(today) {
			checkedInToday[rec.EmployeeID] = true
		}

		c, ok := stats[rec.EmployeeID]
		if !ok {
			continue
		}
		c.presentDays++
		c.lateMinutes += rec.LateMinutes
		if rec.IsLate() {
			c.lateArrivals++
		}

		key := z.In(rec.CheckIn).Format("2006-01-02")
		if trend[key] == nil {
			trend[key] = &dayTotal{}
		}
		trend[key].minutes += rec.LateMinutes
		trend[key].count++
	}

	summary.AvgDelayMinutes = roundMean(totalLate, summary.TotalCheckins)
	summary.DelayOccurrenceRate = roundRatio(summary.LateCheckins, summary.TotalCheckins)

	employees := make([]analytics.EmployeeStat, 0, len(in.Employees))
	for _, emp := range in.Employees {
		c := stats[emp.ID]
		expected := max(1, c.owedDays)

		punctuality := 100
		switch {
		case c.presentDays > 0:
			punctuality = roundRatio(c.presentDays-c.lateArrivals, c.presentDays)
		case c.owedDays > 0:
			punctuality = 0
		}

		employees = append(employees, analytics.EmployeeStat{
			EmployeeID:       emp.ID,
			Name:             emp.Name,
			ExpectedDays:     expected,
			PresentDays:      c.presentDays,
			Absences:         max(0, expected-c.presentDays),
			LateOccurrences:  c.lateArrivals,
			TotalLateMinutes: c.lateMinutes,
			AttendanceRate:   roundRatio(c.presentDays, expected),
			PunctualityRate:  punctuality,
		})
	}
	sort.SliceStable(employees, func(i, j int) bool {
		a, b := employees[i], employees[j]
		if a.AttendanceRate != b.AttendanceRate {
			return a.AttendanceRate > b.AttendanceRate
		}
		if a.PunctualityRate != b.PunctualityRate {
			return a.PunctualityRate > b.PunctualityRate
		}
		return a.Name < b.Name
	})

	dailyTrend := make([]analytics.TrendPoint, 0, len(trend))
	for key, total := range trend {
		day, _ := time.Parse("2006-01-02", key)
		dailyTrend = append(dailyTrend, analytics.TrendPoint{
			Date:           key,
			Label:          day.Format("02/01"),
			AvgLateMinutes: roundMean(total.minutes, total.count),
			Checkins:       total.count,
		})
	}
	sort.Slice(dailyTrend, func(i, j int) bool {
		return dailyTrend[i].Date < dailyTrend[j].Date
	})

	absentees := []analytics.Absentee{}
	if pastNoon && !z.IsWeekend(in.Now) {
		for _, emp := range in.Employees {
			if z.Date(emp.CreatedAt).After(today) || checkedInToday[emp.ID] {
				continue
			}
			absentees = append(absentees, analytics.Absentee{EmployeeID: emp.ID, Name: emp.Name})
		}
		sort.SliceStable(absentees, func(i, j int) bool {
			return absentees[i].Name < absentees[j].Name
		})
	}

	return analytics.AnalyticsResponse{
		Month:          z.In(in.Now).Format("2006-01"),
		GeneratedAt:    in.Now.UTC().Format(time.RFC3339),
		IsPastNoon:     pastNoon,
		BusinessDays:   len(businessDays),
		Summary:        summary,
		Employees:      employees,
		DailyTrend:     dailyTrend,
		AbsenteesToday: absentees,
	}
}
