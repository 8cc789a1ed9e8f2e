package analytics

import (
	"testing"
	"time"

	"github.com/cmlabs-hris/checkin-backend-go/internal/domain/analytics"
	"github.com/cmlabs-hris/checkin-backend-go/internal/domain/attendance"
	"github.com/cmlabs-hris/checkin-backend-go/internal/domain/employee"
	"github.com/cmlabs-hris/checkin-backend-go/internal/pkg/clock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var maputo = clock.MustZone(clock.DefaultTimezone)

func local(month time.Month, day, hour, min int) time.Time {
	return time.Date(2025, month, day, hour, min, 0, 0, maputo.Location())
}

func emp(id, name string, created time.Time) employee.Employee {
	return employee.Employee{ID: id, Name: name, Active: true, CreatedAt: created}
}

func rec(employeeID string, at time.Time, late int) attendance.Record {
	return attendance.Record{
		EmployeeID:  employeeID,
		CheckIn:     at.UTC(),
		CheckInDate: maputo.Date(at),
		LateMinutes: late,
	}
}

// marchWeekdays are the 20 business days of March 2025 up to Friday the 28th.
func marchWeekdays() []time.Time {
	var days []time.Time
	for d := 3; d <= 28; d++ {
		day := local(time.March, d, 0, 0)
		if !maputo.IsWeekend(day) {
			days = append(days, day)
		}
	}
	return days
}

func statFor(t *testing.T, res analytics.AnalyticsResponse, id string) analytics.EmployeeStat {
	t.Helper()
	for _, s := range res.Employees {
		if s.EmployeeID == id {
			return s
		}
	}
	require.Failf(t, "missing employee", "no stats for %s", id)
	return analytics.EmployeeStat{}
}

func TestRoundingIsHalfUp(t *testing.T) {
	assert.Equal(t, 83, roundRatio(15, 18))
	assert.Equal(t, 50, roundRatio(1, 2))
	assert.Equal(t, 67, roundRatio(2, 3))
	assert.Equal(t, 13, roundRatio(1, 8)) // 12.5
	assert.Equal(t, 0, roundRatio(5, 0))
	assert.Equal(t, 8, roundMean(15, 2)) // 7.5
	assert.Equal(t, 0, roundMean(0, 0))
}

func TestBusinessDays(t *testing.T) {
	assert.Len(t, BusinessDays(maputo, local(time.March, 28, 15, 0), true), 20)
	assert.Len(t, BusinessDays(maputo, local(time.March, 28, 10, 0), false), 19)
	// The 1st of March 2025 is a Saturday; before noon on Monday the 3rd nothing is owed yet.
	assert.Empty(t, BusinessDays(maputo, local(time.March, 3, 9, 0), false))
	assert.Len(t, BusinessDays(maputo, local(time.March, 3, 13, 0), true), 1)
}

func TestCompute_AttendanceAndPunctuality(t *testing.T) {
	var records []attendance.Record
	for i, day := range marchWeekdays()[:18] {
		late := 0
		if i < 3 {
			late = 10 * (i + 1)
		}
		records = append(records, rec("ana", day.Add(7*time.Hour), late))
	}

	res := Compute(Input{
		Now:       local(time.March, 28, 15, 0),
		Zone:      maputo,
		Employees: []employee.Employee{emp("ana", "Ana", local(time.February, 1, 9, 0))},
		Records:   records,
	})

	ana := statFor(t, res, "ana")
	assert.Equal(t, 20, ana.ExpectedDays)
	assert.Equal(t, 18, ana.PresentDays)
	assert.Equal(t, 2, ana.Absences)
	assert.Equal(t, 3, ana.LateOccurrences)
	assert.Equal(t, 60, ana.TotalLateMinutes)
	assert.Equal(t, 90, ana.AttendanceRate)
	assert.Equal(t, 83, ana.PunctualityRate)

	assert.True(t, res.IsPastNoon)
	assert.Equal(t, "2025-03", res.Month)
	assert.Equal(t, 20, res.BusinessDays)
	assert.Equal(t, analytics.Summary{
		TotalCheckins:       18,
		LateCheckins:        3,
		AvgDelayMinutes:     3, // 60/18
		DelayOccurrenceRate: 17,
	}, res.Summary)
}

func TestCompute_ProratedExpectedDays(t *testing.T) {
	res := Compute(Input{
		Now:  local(time.March, 28, 15, 0),
		Zone: maputo,
		Employees: []employee.Employee{
			// Saturday the 15th: the ten weekdays from the 17th on are owed.
			emp("new", "Newcomer", local(time.March, 15, 10, 0)),
			// Created late on the 28th is still owed the 28th.
			emp("today", "Today", local(time.March, 28, 14, 0)),
		},
	})

	assert.Equal(t, 10, statFor(t, res, "new").ExpectedDays)
	assert.Equal(t, 1, statFor(t, res, "today").ExpectedDays)
}

func TestCompute_CreatedAtUsesLocalDate(t *testing.T) {
	// 23:00 UTC on the 16th is already Monday the 17th in Maputo.
	created := time.Date(2025, 3, 16, 23, 0, 0, 0, time.UTC)

	res := Compute(Input{
		Now:       local(time.March, 28, 15, 0),
		Zone:      maputo,
		Employees: []employee.Employee{emp("e", "E", created)},
	})
	assert.Equal(t, 10, statFor(t, res, "e").ExpectedDays)
}

func TestCompute_BeforeNoonExcludesToday(t *testing.T) {
	res := Compute(Input{
		Now:       local(time.March, 28, 11, 59),
		Zone:      maputo,
		Employees: []employee.Employee{emp("ana", "Ana", local(time.February, 1, 9, 0))},
	})

	assert.False(t, res.IsPastNoon)
	assert.Equal(t, 19, statFor(t, res, "ana").ExpectedDays)
	assert.Empty(t, res.AbsenteesToday)
}

func TestCompute_NoPresence(t *testing.T) {
	t.Run("owed days", func(t *testing.T) {
		res := Compute(Input{
			Now:       local(time.March, 5, 15, 0),
			Zone:      maputo,
			Employees: []employee.Employee{emp("ana", "Ana", local(time.February, 1, 9, 0))},
		})
		ana := statFor(t, res, "ana")
		assert.Equal(t, 3, ana.ExpectedDays)
		assert.Equal(t, 3, ana.Absences)
		assert.Equal(t, 0, ana.AttendanceRate)
		assert.Equal(t, 0, ana.PunctualityRate)
	})

	t.Run("nothing owed yet", func(t *testing.T) {
		res := Compute(Input{
			Now:       local(time.March, 3, 9, 0),
			Zone:      maputo,
			Employees: []employee.Employee{emp("ana", "Ana", local(time.February, 1, 9, 0))},
		})
		ana := statFor(t, res, "ana")
		assert.Equal(t, 1, ana.ExpectedDays, "floored at one")
		assert.Equal(t, 0, ana.AttendanceRate)
		assert.Equal(t, 100, ana.PunctualityRate)
	})
}

func TestCompute_Ranking(t *testing.T) {
	start := local(time.February, 1, 9, 0)
	now := local(time.March, 5, 15, 0) // three business days owed

	res := Compute(Input{
		Now:  now,
		Zone: maputo,
		Employees: []employee.Employee{
			emp("c", "Carla", start),
			emp("b", "Bento", start),
			emp("a", "Ana", start),
			emp("d", "Dinis", start),
		},
		Records: []attendance.Record{
			rec("a", local(time.March, 3, 7, 0), 0),
			rec("a", local(time.March, 4, 8, 0), 30),
			rec("b", local(time.March, 3, 7, 0), 0),
			rec("b", local(time.March, 4, 7, 0), 0),
			rec("c", local(time.March, 3, 7, 0), 0),
			rec("c", local(time.March, 4, 7, 0), 0),
		},
	})

	var names []string
	for _, s := range res.Employees {
		names = append(names, s.Name)
	}
	// Bento and Carla tie on both rates and are ordered by name.
	assert.Equal(t, []string{"Bento", "Carla", "Ana", "Dinis"}, names)
}

func TestCompute_DailyTrend(t *testing.T) {
	start := local(time.February, 1, 9, 0)

	res := Compute(Input{
		Now:       local(time.March, 5, 15, 0),
		Zone:      maputo,
		Employees: []employee.Employee{emp("a", "Ana", start), emp("b", "Bento", start)},
		Records: []attendance.Record{
			rec("a", local(time.March, 4, 7, 0), 0),
			rec("b", local(time.March, 4, 7, 45), 15),
			rec("a", local(time.March, 3, 8, 0), 30),
			// 00:30 local on the 5th is the 4th in UTC.
			rec("b", local(time.March, 5, 0, 30), 0),
		},
	})

	assert.Equal(t, []analytics.TrendPoint{
		{Date: "2025-03-03", Label: "03/03", AvgLateMinutes: 30, Checkins: 1},
		{Date: "2025-03-04", Label: "04/03", AvgLateMinutes: 8, Checkins: 2},
		{Date: "2025-03-05", Label: "05/03", AvgLateMinutes: 0, Checkins: 1},
	}, res.DailyTrend)
}

func TestCompute_AbsenteesToday(t *testing.T) {
	start := local(time.February, 1, 9, 0)
	roster := []employee.Employee{
		emp("a", "Ana", start),
		emp("b", "Bento", start),
		emp("c", "Carla", start),
	}
	records := []attendance.Record{
		rec("a", local(time.March, 5, 7, 10), 0),
		rec("b", local(time.March, 4, 7, 10), 0), // yesterday only
	}

	res := Compute(Input{Now: local(time.March, 5, 13, 0), Zone: maputo, Employees: roster, Records: records})
	assert.Equal(t, []analytics.Absentee{{EmployeeID: "b", Name: "Bento"}, {EmployeeID: "c", Name: "Carla"}}, res.AbsenteesToday)

	morning := Compute(Input{Now: local(time.March, 5, 11, 0), Zone: maputo, Employees: roster, Records: records})
	assert.Empty(t, morning.AbsenteesToday)

	saturday := Compute(Input{Now: local(time.March, 8, 15, 0), Zone: maputo, Employees: roster, Records: records})
	assert.Empty(t, saturday.AbsenteesToday)
}

func TestCompute_RecordsOfFormerEmployees(t *testing.T) {
	res := Compute(Input{
		Now:       local(time.March, 5, 15, 0),
		Zone:      maputo,
		Employees: []employee.Employee{emp("a", "Ana", local(time.February, 1, 9, 0))},
		Records: []attendance.Record{
			rec("a", local(time.March, 5, 7, 0), 0),
			rec("gone", local(time.March, 5, 8, 0), 30),
		},
	})

	require.Len(t, res.Employees, 1)
	assert.Equal(t, 2, res.Summary.TotalCheckins)
	assert.Equal(t, 50, res.Summary.DelayOccurrenceRate)
	require.Len(t, res.DailyTrend, 1)
	assert.Equal(t, 1, res.DailyTrend[0].Checkins)
}
