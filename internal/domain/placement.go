package domain

import (
	"slices"
	"strconv"
	"strings"
)

// PermanentKeyword is the text form of the permanent head
const PermanentKeyword = "permanent"

// HeadKind names the variant of a Head
type HeadKind int

const (
	HeadDate HeadKind = iota
	HeadItem
	HeadPermanent
)

func (k HeadKind) String() string {
	switch k {
	case HeadDate:
		return "date"
	case HeadItem:
		return "item"
	case HeadPermanent:
		return "permanent"
	default:
		return "unknown"
	}
}

// Head anchors a Placement. The variant set is closed: DateHead, ItemHead and
// PermanentHead are the only implementations.
type Head interface {
	Kind() HeadKind
	String() string
	isHead()
}

// DateHead anchors a placement on a calendar day
type DateHead struct {
	Day CalendarDay
}

// ItemHead anchors a placement beneath an owning item
type ItemHead struct {
	ID ItemID
}

// PermanentHead is the fixed anchor for undated, unowned items
type PermanentHead struct{}

func (DateHead) Kind() HeadKind      { return HeadDate }
func (ItemHead) Kind() HeadKind      { return HeadItem }
func (PermanentHead) Kind() HeadKind { return HeadPermanent }

func (h DateHead) String() string    { return h.Day.String() }
func (h ItemHead) String() string    { return string(h.ID) }
func (PermanentHead) String() string { return PermanentKeyword }

func (DateHead) isHead()      {}
func (ItemHead) isHead()      {}
func (PermanentHead) isHead() {}

// Placement is an immutable address: a head plus a path of 1-based section
// indices. Construct with NewPlacement, AtDate, UnderItem or Permanent.
type Placement struct {
	head    Head
	section []int
}

// NewPlacement validates section indices and copies them
func NewPlacement(head Head, section ...int) (Placement, error) {
	if head == nil {
		return Placement{}, &SyntaxError{Input: "", Reason: "placement needs a head"}
	}
	for _, n := range section {
		if n < 1 {
			return Placement{}, &SyntaxError{
				Input:  head.String(),
				Token:  strconv.Itoa(n),
				Reason: "section index must be positive",
			}
		}
	}
	return Placement{head: head, section: slices.Clone(section)}, nil
}

// AtDate is the root placement of a day
func AtDate(d CalendarDay) Placement {
	return Placement{head: DateHead{Day: d}}
}

// UnderItem is the root placement beneath an item
func UnderItem(id ItemID) Placement {
	return Placement{head: ItemHead{ID: id}}
}

// Permanent is the root of the permanent anchor
func Permanent() Placement {
	return Placement{head: PermanentHead{}}
}

// Head returns the anchor
func (p Placement) Head() Head { return p.head }

// Section returns a copy of the section indices
func (p Placement) Section() []int { return slices.Clone(p.section) }

// Depth is the number of section indices
func (p Placement) Depth() int { return len(p.section) }

// IsZero reports whether p was never constructed
func (p Placement) IsZero() bool { return p.head == nil }

// IsRoot reports whether p has no section indices
func (p Placement) IsRoot() bool { return len(p.section) == 0 }

// Last returns the final section index, or 0 at a root
func (p Placement) Last() int {
	if len(p.section) == 0 {
		return 0
	}
	return p.section[len(p.section)-1]
}

// Child extends p with one more section index. n must be positive.
func (p Placement) Child(n int) Placement {
	section := make([]int, len(p.section), len(p.section)+1)
	copy(section, p.section)
	return Placement{head: p.head, section: append(section, n)}
}

// Parent drops the last section index. The second result is false at a
// root; going above a root requires loading the owning item.
func (p Placement) Parent() (Placement, bool) {
	if len(p.section) == 0 {
		return p, false
	}
	return Placement{head: p.head, section: slices.Clone(p.section[:len(p.section)-1])}, true
}

// Root returns p with all section indices dropped
func (p Placement) Root() Placement {
	return Placement{head: p.head}
}

// Equal compares head and section element-wise
func (p Placement) Equal(o Placement) bool {
	if p.head == nil || o.head == nil {
		return p.head == nil && o.head == nil
	}
	return p.head == o.head && slices.Equal(p.section, o.section)
}

// SameParent reports whether p and o share the head and all but the last
// section index, and both have at least one index.
func (p Placement) SameParent(o Placement) bool {
	if len(p.section) == 0 || len(p.section) != len(o.section) {
		return false
	}
	pp, _ := p.Parent()
	op, _ := o.Parent()
	return pp.Equal(op)
}

func (p Placement) String() string {
	if p.head == nil {
		return ""
	}
	var b strings.Builder
	b.WriteString(p.head.String())
	for _, n := range p.section {
		b.WriteByte('/')
		b.WriteString(strconv.Itoa(n))
	}
	return b.String()
}

// ParsePlacement parses the canonical text form produced by String
func ParsePlacement(s string) (Placement, error) {
	parts := strings.Split(strings.Trim(strings.TrimSpace(s), "/"), "/")
	if len(parts) == 0 || parts[0] == "" {
		return Placement{}, &SyntaxError{Input: s, Reason: "empty placement"}
	}

	var head Head
	switch {
	case parts[0] == PermanentKeyword:
		head = PermanentHead{}
	case calendarDayRegex.MatchString(parts[0]):
		d, err := ParseCalendarDay(parts[0])
		if err != nil {
			return Placement{}, err
		}
		head = DateHead{Day: d}
	default:
		id, err := ParseItemID(parts[0])
		if err != nil {
			return Placement{}, &SyntaxError{Input: s, Token: parts[0], Reason: "head must be a date, an item ID or permanent"}
		}
		head = ItemHead{ID: id}
	}

	section := make([]int, 0, len(parts)-1)
	for _, part := range parts[1:] {
		n, err := strconv.Atoi(part)
		if err != nil || n < 1 {
			return Placement{}, &SyntaxError{Input: s, Token: part, Reason: "section index must be a positive integer"}
		}
		section = append(section, n)
	}
	return Placement{head: head, section: section}, nil
}
