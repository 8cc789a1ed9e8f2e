package clock

import (
	"fmt"
	"time"
	_ "time/tzdata" // scratch images ship without zoneinfo
)

// DefaultTimezone is the civil zone every attendance day is bucketed in.
const DefaultTimezone = "Africa/Maputo"

// Clock returns the current instant. Services take a Clock so tests can pin "now".
type Clock interface {
	Now() time.Time
}

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now() }

// System returns the wall clock of the host.
func System() Clock { return systemClock{} }

// Fixed is a Clock that always returns T.
type Fixed struct {
	T time.Time
}

func (f Fixed) Now() time.Time { return f.T }

// Zone converts absolute instants to a fixed civil time zone and computes
// day, week and month boundaries in it.
type Zone struct {
	loc *time.Location
}

func NewZone(name string) (Zone, error) {
	if name == "" {
		name = DefaultTimezone
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		return Zone{}, fmt.Errorf("load timezone %q: %w", name, err)
	}
	return Zone{loc: loc}, nil
}

// MustZone is NewZone for package-level and test setup.
func MustZone(name string) Zone {
	z, err := NewZone(name)
	if err != nil {
		panic(err)
	}
	return z
}

func (z Zone) Location() *time.Location {
	if z.loc == nil {
		return time.UTC
	}
	return z.loc
}

func (z Zone) String() string { return z.Location().String() }

// In returns t as wall-clock time in the zone.
func (z Zone) In(t time.Time) time.Time {
	return t.In(z.Location())
}

// StartOfDay is local midnight of the civil day containing t.
func (z Zone) StartOfDay(t time.Time) time.Time {
	l := z.In(t)
	return time.Date(l.Year(), l.Month(), l.Day(), 0, 0, 0, 0, z.Location())
}

// EndOfDay is the last nanosecond of the civil day containing t.
func (z Zone) EndOfDay(t time.Time) time.Time {
	return z.StartOfDay(t).AddDate(0, 0, 1).Add(-time.Nanosecond)
}

// StartOfWeek is local midnight of the Monday on or before t.
func (z Zone) StartOfWeek(t time.Time) time.Time {
	day := z.StartOfDay(t)
	offset := (int(day.Weekday()) + 6) % 7
	return day.AddDate(0, 0, -offset)
}

func (z Zone) EndOfWeek(t time.Time) time.Time {
	return z.StartOfWeek(t).AddDate(0, 0, 7).Add(-time.Nanosecond)
}

func (z Zone) StartOfMonth(t time.Time) time.Time {
	l := z.In(t)
	return time.Date(l.Year(), l.Month(), 1, 0, 0, 0, 0, z.Location())
}

func (z Zone) EndOfMonth(t time.Time) time.Time {
	return z.StartOfMonth(t).AddDate(0, 1, 0).Add(-time.Nanosecond)
}

// IsWeekend reports whether t falls on a local Saturday or Sunday.
func (z Zone) IsWeekend(t time.Time) bool {
	wd := z.In(t).Weekday()
	return wd == time.Saturday || wd == time.Sunday
}

// At sets the local time of day on the civil date of t.
func (z Zone) At(t time.Time, hour, minute int) time.Time {
	l := z.In(t)
	return time.Date(l.Year(), l.Month(), l.Day(), hour, minute, 0, 0, z.Location())
}

// Date is the civil date of t, as local midnight.
func (z Zone) Date(t time.Time) time.Time {
	return z.StartOfDay(t)
}

// Range is an inclusive interval of absolute instants, ready to be used in store queries.
type Range struct {
	Start time.Time
	End   time.Time
}

func (r Range) Contains(t time.Time) bool {
	return !t.Before(r.Start) && !t.After(r.End)
}

func (z Zone) DayRange(t time.Time) Range {
	return Range{Start: z.StartOfDay(t).UTC(), End: z.EndOfDay(t).UTC()}
}

func (z Zone) WeekRange(t time.Time) Range {
	return Range{Start: z.StartOfWeek(t).UTC(), End: z.EndOfWeek(t).UTC()}
}

func (z Zone) MonthRange(t time.Time) Range {
	return Range{Start: z.StartOfMonth(t).UTC(), End: z.EndOfMonth(t).UTC()}
}

// TimeOfDay is a local "HH:MM" used for the check-in deadline and the midday cutoff.
type TimeOfDay struct {
	Hour   int
	Minute int
}

func ParseTimeOfDay(s string) (TimeOfDay, error) {
	t, err := time.Parse("15:04", s)
	if err != nil {
		return TimeOfDay{}, fmt.Errorf("invalid time of day %q: must be HH:MM", s)
	}
	return TimeOfDay{Hour: t.Hour(), Minute: t.Minute()}, nil
}

func (t TimeOfDay) String() string {
	return fmt.Sprintf("%02d:%02d", t.Hour, t.Minute)
}

// On returns the instant at this time of day on the civil date of day.
func (t TimeOfDay) On(z Zone, day time.Time) time.Time {
	return z.At(day, t.Hour, t.Minute)
}
