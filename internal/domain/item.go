package domain

import (
	"slices"
	"strings"
	"time"
	"unicode"

	"github.com/google/uuid"

	"locus/internal/alias"
)

// ItemID identifies an item. IDs are canonical lowercase UUID strings.
type ItemID string

// NewItemID returns a fresh random item ID
func NewItemID() ItemID {
	return ItemID(uuid.New().String())
}

// ParseItemID validates and canonicalizes an item ID
func ParseItemID(s string) (ItemID, error) {
	u, err := uuid.Parse(strings.TrimSpace(s))
	if err != nil {
		return "", &SyntaxError{Input: s, Reason: "not an item ID"}
	}
	return ItemID(u.String()), nil
}

func (id ItemID) String() string { return string(id) }

// Short returns the first UUID group, enough for display
func (id ItemID) Short() string {
	s := string(id)
	if i := strings.IndexByte(s, '-'); i > 0 {
		return s[:i]
	}
	return s
}

// ItemKind distinguishes notes from tasks
type ItemKind string

const (
	KindNote ItemKind = "note"
	KindTask ItemKind = "task"
)

// ParseItemKind accepts note/task, defaulting empty input to note
func ParseItemKind(s string) (ItemKind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "note":
		return KindNote, nil
	case "task":
		return KindTask, nil
	default:
		return "", &SyntaxError{Input: s, Reason: "kind must be note or task"}
	}
}

// TaskStatus is the completion state of a task; notes leave it empty
type TaskStatus string

const (
	StatusOpen TaskStatus = "open"
	StatusDone TaskStatus = "done"
)

// Item is a stored note or task. Its Placement and Rank are authoritative;
// the adjacency index is derived from them.
type Item struct {
	ID        ItemID
	Kind      ItemKind
	Title     string
	Body      string
	Status    TaskStatus
	Placement Placement
	Rank      Rank
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Ref returns the adjacency reference for this item
func (it Item) Ref() EdgeRef {
	return EdgeRef{ItemID: it.ID, Rank: it.Rank}
}

// Relocate returns a copy of item placed at p with rank r
func Relocate(item Item, p Placement, r Rank) Item {
	if item.Placement.Equal(p) && item.Rank == r {
		return item
	}
	item.Placement = p
	item.Rank = r
	return item
}

// Retitle returns a copy of item with a new title
func Retitle(item Item, title string) Item {
	item.Title = title
	return item
}

// SetStatus returns a copy of item with a new task status
func SetStatus(item Item, status TaskStatus) Item {
	item.Status = status
	return item
}

// EdgeRef is one entry of a parent's adjacency list
type EdgeRef struct {
	ItemID ItemID
	Rank   Rank
}

// Alias maps a human-chosen name to an item. Key is the normalized form of
// Raw used for lookups; Raw is kept for display.
type Alias struct {
	Raw    string
	Key    string
	ItemID ItemID
}

// NewAlias builds an alias, deriving its lookup key
func NewAlias(raw string, id ItemID) (Alias, error) {
	key := alias.Normalize(raw)
	if key == "" {
		return Alias{}, &SyntaxError{Input: raw, Reason: "alias is empty after normalization"}
	}
	if _, err := uuid.Parse(key); err == nil {
		return Alias{}, &SyntaxError{Input: raw, Reason: "alias must not look like an item ID"}
	}
	if i := strings.IndexFunc(key, func(r rune) bool { return unicode.IsSpace(r) || r == '/' }); i >= 0 {
		return Alias{}, &SyntaxError{Input: raw, Token: key[i : i+1], Reason: "alias must not contain spaces or slashes"}
	}
	return Alias{Raw: strings.TrimSpace(raw), Key: key, ItemID: id}, nil
}

// SortItems orders items by rank, breaking ties by creation time
func SortItems(items []Item) {
	slices.SortStableFunc(items, func(a, b Item) int {
		if c := a.Rank.Compare(b.Rank); c != 0 {
			return c
		}
		return a.CreatedAt.Compare(b.CreatedAt)
	})
}
