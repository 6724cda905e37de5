package domain

import (
	"fmt"
	"regexp"
	"strconv"
	"time"
)

var calendarDayRegex = regexp.MustCompile(`^([0-9]{4})-([0-9]{2})-([0-9]{2})$`)

// CalendarDay is a validated civil date with no time or zone attached.
// The zero value is not a valid day; use NewCalendarDay or ParseCalendarDay.
type CalendarDay struct {
	year  int
	month time.Month
	day   int
}

// NewCalendarDay validates the triple against the calendar (rejects Feb 30 etc.)
func NewCalendarDay(year int, month time.Month, day int) (CalendarDay, error) {
	input := fmt.Sprintf("%04d-%02d-%02d", year, int(month), day)
	if year < 1 || year > 9999 {
		return CalendarDay{}, &SyntaxError{Input: input, Reason: "year out of range"}
	}
	if month < time.January || month > time.December {
		return CalendarDay{}, &SyntaxError{Input: input, Reason: "month out of range"}
	}
	if day < 1 || day > daysIn(year, month) {
		return CalendarDay{}, &SyntaxError{Input: input, Reason: "day out of range for month"}
	}
	return CalendarDay{year: year, month: month, day: day}, nil
}

// ParseCalendarDay parses a YYYY-MM-DD literal
func ParseCalendarDay(s string) (CalendarDay, error) {
	m := calendarDayRegex.FindStringSubmatch(s)
	if m == nil {
		return CalendarDay{}, &SyntaxError{Input: s, Reason: "expected YYYY-MM-DD"}
	}
	year, _ := strconv.Atoi(m[1])
	month, _ := strconv.Atoi(m[2])
	day, _ := strconv.Atoi(m[3])
	return NewCalendarDay(year, time.Month(month), day)
}

// MustCalendarDay is NewCalendarDay for constants known to be valid
func MustCalendarDay(year int, month time.Month, day int) CalendarDay {
	d, err := NewCalendarDay(year, month, day)
	if err != nil {
		panic(err)
	}
	return d
}

// DayOf projects an instant onto the civil calendar of loc
func DayOf(t time.Time, loc *time.Location) CalendarDay {
	if loc == nil {
		loc = time.UTC
	}
	y, m, d := t.In(loc).Date()
	return CalendarDay{year: y, month: m, day: d}
}

func (d CalendarDay) Year() int         { return d.year }
func (d CalendarDay) Month() time.Month { return d.month }
func (d CalendarDay) Day() int          { return d.day }

// InRange reports whether d lies within the years 0001..9999 that
// ParseCalendarDay accepts. Day arithmetic can step outside that span.
func (d CalendarDay) InRange() bool {
	return d.year >= 1 && d.year <= 9999
}

// IsZero reports whether d is the unset zero value
func (d CalendarDay) IsZero() bool {
	return d.year == 0
}

func (d CalendarDay) String() string {
	return fmt.Sprintf("%04d-%02d-%02d", d.year, int(d.month), d.day)
}

// Compare returns -1, 0 or 1 in calendar order
func (d CalendarDay) Compare(o CalendarDay) int {
	switch {
	case d.year != o.year:
		return cmpInt(d.year, o.year)
	case d.month != o.month:
		return cmpInt(int(d.month), int(o.month))
	default:
		return cmpInt(d.day, o.day)
	}
}

func (d CalendarDay) Equal(o CalendarDay) bool  { return d == o }
func (d CalendarDay) Before(o CalendarDay) bool { return d.Compare(o) < 0 }
func (d CalendarDay) After(o CalendarDay) bool  { return d.Compare(o) > 0 }

// Weekday of the civil date
func (d CalendarDay) Weekday() time.Weekday {
	return d.noonUTC().Weekday()
}

// AddDays moves n days forward (or back when n < 0), crossing month and year
// boundaries.
func (d CalendarDay) AddDays(n int) CalendarDay {
	y, m, dd := d.noonUTC().AddDate(0, 0, n).Date()
	return CalendarDay{year: y, month: m, day: dd}
}

// AddMonths moves n calendar months, clamping the day to the end of a shorter
// target month (Jan 31 + 1 month = Feb 28/29).
func (d CalendarDay) AddMonths(n int) CalendarDay {
	total := d.year*12 + int(d.month-1) + n
	year := total / 12
	month := time.Month(total%12 + 1)
	if total < 0 {
		year = (total - 11) / 12
		month = time.Month(total - year*12 + 1)
	}
	day := d.day
	if last := daysIn(year, month); day > last {
		day = last
	}
	return CalendarDay{year: year, month: month, day: day}
}

// AddYears moves n calendar years with the same clamping as AddMonths (Feb 29)
func (d CalendarDay) AddYears(n int) CalendarDay {
	return d.AddMonths(12 * n)
}

// WeekStart returns the Monday on or before d
func (d CalendarDay) WeekStart() CalendarDay {
	offset := (int(d.Weekday()) + 6) % 7
	return d.AddDays(-offset)
}

// MonthStart returns the first day of d's month
func (d CalendarDay) MonthStart() CalendarDay {
	return CalendarDay{year: d.year, month: d.month, day: 1}
}

// MonthEnd returns the last day of d's month
func (d CalendarDay) MonthEnd() CalendarDay {
	return CalendarDay{year: d.year, month: d.month, day: daysIn(d.year, d.month)}
}

// DaysUntil counts whole days from d to o (negative when o is earlier)
func (d CalendarDay) DaysUntil(o CalendarDay) int {
	return int(o.noonUTC().Sub(d.noonUTC()).Hours() / 24)
}

func (d CalendarDay) noonUTC() time.Time {
	return time.Date(d.year, d.month, d.day, 12, 0, 0, 0, time.UTC)
}

func daysIn(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

func cmpInt(a, b int) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}
