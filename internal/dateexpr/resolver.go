// Package dateexpr resolves relative date expressions ("today", "+3d",
// "~fri", "next-monday", "this-week", "2025-12-01") to calendar days and
// periods. "Today" is always the reference instant rendered in the caller's
// time zone, never the process zone.
package dateexpr

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"locus/internal/domain"
)

// Error reports an expression that could not be resolved
type Error struct {
	Expr   string
	Reason string
}

func (e *Error) Error() string {
	return fmt.Sprintf("invalid date expression %q: %s", e.Expr, e.Reason)
}

func (e *Error) Is(target error) bool {
	return target == domain.ErrInvalidSyntax
}

var (
	offsetRegex      = regexp.MustCompile(`^([~+])([0-9]+)([a-z]+)$`)
	shortWeekdayRe   = regexp.MustCompile(`^([~+])([a-z]+)$`)
	longWeekdayRegex = regexp.MustCompile(`^(next|last)-([a-z]+)$`)
	literalRegex     = regexp.MustCompile(`^[0-9]{4}-[0-9]{2}-[0-9]{2}$`)
)

var simpleKeywords = map[string]int{
	"today":     0,
	"td":        0,
	"tomorrow":  1,
	"tm":        1,
	"yesterday": -1,
	"yd":        -1,
}

type periodUnit int

const (
	unitWeek periodUnit = iota
	unitMonth
)

type period struct {
	unit   periodUnit
	offset int
}

var periodKeywords = map[string]period{
	"this-week":  {unitWeek, 0},
	"tw":         {unitWeek, 0},
	"next-week":  {unitWeek, 1},
	"nw":         {unitWeek, 1},
	"last-week":  {unitWeek, -1},
	"lw":         {unitWeek, -1},
	"this-month": {unitMonth, 0},
	"next-month": {unitMonth, 1},
	"last-month": {unitMonth, -1},
}

var shortWeekdays = map[string]time.Weekday{
	"sun": time.Sunday,
	"mon": time.Monday,
	"tue": time.Tuesday,
	"wed": time.Wednesday,
	"thu": time.Thursday,
	"fri": time.Friday,
	"sat": time.Saturday,
}

var longWeekdays = map[string]time.Weekday{
	"sunday":    time.Sunday,
	"monday":    time.Monday,
	"tuesday":   time.Tuesday,
	"wednesday": time.Wednesday,
	"thursday":  time.Thursday,
	"friday":    time.Friday,
	"saturday":  time.Saturday,
}

// Today is the calendar day of ref rendered in loc
func Today(loc *time.Location, ref time.Time) domain.CalendarDay {
	return domain.DayOf(ref, loc)
}

// IsPeriodKeyword reports whether expr names a week or month period
func IsPeriodKeyword(expr string) bool {
	_, ok := periodKeywords[strings.ToLower(strings.TrimSpace(expr))]
	return ok
}

// IsDateExpression reports whether expr is shaped like a date expression.
// Shape only: "+3x" and "2025-02-30" are date expressions that fail to
// resolve, so callers report them instead of treating them as aliases.
func IsDateExpression(expr string) bool {
	e := strings.ToLower(strings.TrimSpace(expr))
	if _, ok := simpleKeywords[e]; ok {
		return true
	}
	if _, ok := periodKeywords[e]; ok {
		return true
	}
	if offsetRegex.MatchString(e) || literalRegex.MatchString(e) {
		return true
	}
	if m := shortWeekdayRe.FindStringSubmatch(e); m != nil {
		_, ok := shortWeekdays[m[2]]
		return ok
	}
	if m := longWeekdayRegex.FindStringSubmatch(e); m != nil {
		_, ok := longWeekdays[m[2]]
		return ok
	}
	return false
}

// ResolveDate turns expr into a single calendar day. Period keywords resolve
// to the first day of the period (Monday, or the 1st of the month).
func ResolveDate(expr string, loc *time.Location, ref time.Time) (domain.CalendarDay, error) {
	d, err := resolveDate(expr, loc, ref)
	if err != nil {
		return domain.CalendarDay{}, err
	}
	if !d.InRange() {
		return domain.CalendarDay{}, errOutOfRange(expr)
	}
	return d, nil
}

func resolveDate(expr string, loc *time.Location, ref time.Time) (domain.CalendarDay, error) {
	e := strings.ToLower(strings.TrimSpace(expr))
	today := Today(loc, ref)

	if n, ok := simpleKeywords[e]; ok {
		return today.AddDays(n), nil
	}

	if p, ok := periodKeywords[e]; ok {
		from, _ := p.bounds(today)
		return from, nil
	}

	if m := offsetRegex.FindStringSubmatch(e); m != nil {
		n, err := strconv.Atoi(m[2])
		if err != nil {
			return domain.CalendarDay{}, errOutOfRange(expr)
		}
		if limit, ok := maxOffset[m[3]]; ok && n > limit {
			return domain.CalendarDay{}, errOutOfRange(expr)
		}
		if m[1] == "~" {
			n = -n
		}
		switch m[3] {
		case "d":
			return today.AddDays(n), nil
		case "w":
			return today.AddDays(7 * n), nil
		case "m":
			return today.AddMonths(n), nil
		case "y":
			return today.AddYears(n), nil
		default:
			return domain.CalendarDay{}, &Error{Expr: expr, Reason: fmt.Sprintf("unknown unit %q (want d, w, m or y)", m[3])}
		}
	}

	if m := shortWeekdayRe.FindStringSubmatch(e); m != nil {
		if wd, ok := shortWeekdays[m[2]]; ok {
			return nearestWeekday(today, wd, m[1] == "+"), nil
		}
		return domain.CalendarDay{}, &Error{Expr: expr, Reason: fmt.Sprintf("unknown weekday %q", m[2])}
	}

	if m := longWeekdayRegex.FindStringSubmatch(e); m != nil {
		if wd, ok := longWeekdays[m[2]]; ok {
			return nearestWeekday(today, wd, m[1] == "next"), nil
		}
		return domain.CalendarDay{}, &Error{Expr: expr, Reason: fmt.Sprintf("unknown weekday %q", m[2])}
	}

	d, err := domain.ParseCalendarDay(e)
	if err != nil {
		return domain.CalendarDay{}, &Error{Expr: expr, Reason: "not a keyword, offset, weekday or YYYY-MM-DD date"}
	}
	return d, nil
}

// ResolvePeriod turns a period keyword into its inclusive [from, to] span:
// Monday..Sunday for weeks, 1st..last day for months.
func ResolvePeriod(expr string, loc *time.Location, ref time.Time) (domain.DateRange, error) {
	e := strings.ToLower(strings.TrimSpace(expr))
	p, ok := periodKeywords[e]
	if !ok {
		return domain.DateRange{}, &Error{Expr: expr, Reason: "not a period keyword"}
	}
	from, to := p.bounds(Today(loc, ref))
	if !from.InRange() || !to.InRange() {
		return domain.DateRange{}, errOutOfRange(expr)
	}
	return domain.DateRange{From: from, To: to}, nil
}

// maxOffset bounds each offset unit to roughly the whole 0001..9999 span so
// the arithmetic cannot overflow; the result is range-checked afterwards
var maxOffset = map[string]int{
	"d": 10000 * 366,
	"w": 10000 * 53,
	"m": 10000 * 12,
	"y": 10000,
}

func errOutOfRange(expr string) error {
	return &Error{Expr: expr, Reason: "date out of range (years 0001-9999)"}
}

func (p period) bounds(today domain.CalendarDay) (domain.CalendarDay, domain.CalendarDay) {
	switch p.unit {
	case unitWeek:
		monday := today.WeekStart().AddDays(7 * p.offset)
		return monday, monday.AddDays(6)
	default:
		first := today.MonthStart().AddMonths(p.offset)
		return first, first.MonthEnd()
	}
}

// nearestWeekday finds wd strictly after (forward) or strictly before today;
// the distance is always 1..7 days, never 0.
func nearestWeekday(today domain.CalendarDay, wd time.Weekday, forward bool) domain.CalendarDay {
	cur := int(today.Weekday())
	target := int(wd)
	if forward {
		delta := (target - cur + 7) % 7
		if delta == 0 {
			delta = 7
		}
		return today.AddDays(delta)
	}
	delta := (cur - target + 7) % 7
	if delta == 0 {
		delta = 7
	}
	return today.AddDays(-delta)
}
