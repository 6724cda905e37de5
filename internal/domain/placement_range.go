package domain

import (
	"fmt"
	"strconv"
)

// PlacementRange is a query shape over placements. The variant set is closed:
// SingleRange, DateRange and NumericRange.
type PlacementRange interface {
	String() string
	isPlacementRange()
}

// SingleRange selects exactly one placement
type SingleRange struct {
	At Placement
}

// DateRange selects the root placement of every day in [From, To]
type DateRange struct {
	From CalendarDay
	To   CalendarDay
}

// NumericRange selects Parent/n for every n in [From, To]
type NumericRange struct {
	Parent Placement
	From   int
	To     int
}

func (SingleRange) isPlacementRange()  {}
func (DateRange) isPlacementRange()    {}
func (NumericRange) isPlacementRange() {}

// MaxRangeSpan caps how many placements a date or numeric range may cover
const MaxRangeSpan = 10000

// CheckSpan rejects a date or numeric range that is reversed, starts below
// section 1, or covers more than MaxRangeSpan placements
func CheckSpan(r PlacementRange) error {
	switch r := r.(type) {
	case DateRange:
		if r.From.After(r.To) {
			return &SyntaxError{Input: r.String(), Reason: "range start is after range end"}
		}
		if r.From.DaysUntil(r.To) >= MaxRangeSpan {
			return &SyntaxError{Input: r.String(), Reason: fmt.Sprintf("range covers more than %d days", MaxRangeSpan)}
		}
	case NumericRange:
		if r.From < 1 || r.From > r.To {
			return &SyntaxError{Input: r.String(), Reason: "range bounds must satisfy 1 <= start <= end"}
		}
		if r.To-r.From >= MaxRangeSpan {
			return &SyntaxError{Input: r.String(), Reason: fmt.Sprintf("range covers more than %d sections", MaxRangeSpan)}
		}
	}
	return nil
}

// Single wraps a placement as a range
func Single(p Placement) SingleRange {
	return SingleRange{At: p}
}

// NewDateRange validates from <= to
func NewDateRange(from, to CalendarDay) (DateRange, error) {
	if from.After(to) {
		return DateRange{}, &SyntaxError{
			Input:  from.String() + ".." + to.String(),
			Reason: "range start is after range end",
		}
	}
	r := DateRange{From: from, To: to}
	if err := CheckSpan(r); err != nil {
		return DateRange{}, err
	}
	return r, nil
}

// NewNumericRange validates 1 <= from <= to
func NewNumericRange(parent Placement, from, to int) (NumericRange, error) {
	input := fmt.Sprintf("%s/%d..%d", parent, from, to)
	if from < 1 {
		return NumericRange{}, &SyntaxError{Input: input, Token: strconv.Itoa(from), Reason: "range start must be positive"}
	}
	if to < 1 {
		return NumericRange{}, &SyntaxError{Input: input, Token: strconv.Itoa(to), Reason: "range end must be positive"}
	}
	if from > to {
		return NumericRange{}, &SyntaxError{Input: input, Reason: "range start is after range end"}
	}
	r := NumericRange{Parent: parent, From: from, To: to}
	if err := CheckSpan(r); err != nil {
		return NumericRange{}, err
	}
	return r, nil
}

func (r SingleRange) String() string { return r.At.String() }

func (r DateRange) String() string {
	return r.From.String() + ".." + r.To.String()
}

func (r NumericRange) String() string {
	return fmt.Sprintf("%s/%d..%d", r.Parent, r.From, r.To)
}

// Days lists every day of the range in order
func (r DateRange) Days() []CalendarDay {
	n := r.From.DaysUntil(r.To)
	if n < 0 {
		return nil
	}
	days := make([]CalendarDay, 0, n+1)
	for d := r.From; !d.After(r.To); d = d.AddDays(1) {
		days = append(days, d)
	}
	return days
}

// Placements lists Parent/n for each n in the range
func (r NumericRange) Placements() []Placement {
	if r.From > r.To {
		return nil
	}
	out := make([]Placement, 0, r.To-r.From+1)
	for n := r.From; n <= r.To; n++ {
		out = append(out, r.Parent.Child(n))
	}
	return out
}

// Expand lists every placement a range covers
func Expand(r PlacementRange) []Placement {
	switch r := r.(type) {
	case SingleRange:
		return []Placement{r.At}
	case DateRange:
		days := r.Days()
		out := make([]Placement, len(days))
		for i, d := range days {
			out[i] = AtDate(d)
		}
		return out
	case NumericRange:
		return r.Placements()
	default:
		return nil
	}
}
