package domain

import (
	"fmt"
	"strings"
)

// rankDigits is the rank alphabet in ascending order. Byte order of the
// alphabet matches string order, so ranks compare with plain string comparison.
const rankDigits = "0123456789abcdefghijklmnopqrstuvwxyz"

// Rank orders siblings. Ranks are compared as strings, never numerically.
//
// A valid rank is non-empty, uses only rankDigits and does not end in '0'.
// Read as a base-36 fraction, a rank without trailing zeros has exactly one
// spelling, which keeps string order dense: between any two distinct ranks
// there is always another one.
type Rank string

// ParseRank validates s as a rank
func ParseRank(s string) (Rank, error) {
	if s == "" {
		return "", &SyntaxError{Input: s, Reason: "rank is empty"}
	}
	for i := 0; i < len(s); i++ {
		if strings.IndexByte(rankDigits, s[i]) < 0 {
			return "", &SyntaxError{Input: s, Token: s[i : i+1], Reason: "rank may only contain 0-9 and a-z"}
		}
	}
	if s[len(s)-1] == rankDigits[0] {
		return "", &SyntaxError{Input: s, Reason: "rank must not end in 0"}
	}
	return Rank(s), nil
}

func (r Rank) String() string { return string(r) }

// Compare orders ranks by string order
func (r Rank) Compare(o Rank) int {
	return strings.Compare(string(r), string(o))
}

// InitialRank is the rank given to the first child of an empty parent
func InitialRank() Rank {
	r, _ := RankBetween("", "")
	return r
}

// RankAfter returns a rank sorting after r
func RankAfter(r Rank) (Rank, error) {
	return RankBetween(r, "")
}

// RankBefore returns a rank sorting before r
func RankBefore(r Rank) (Rank, error) {
	return RankBetween("", r)
}

// RankBetween returns a rank strictly between lo and hi.
// An empty lo means "no lower bound" and an empty hi "no upper bound".
func RankBetween(lo, hi Rank) (Rank, error) {
	if lo != "" {
		if _, err := ParseRank(string(lo)); err != nil {
			return "", err
		}
	}
	if hi != "" {
		if _, err := ParseRank(string(hi)); err != nil {
			return "", err
		}
		if lo >= hi {
			return "", fmt.Errorf("rank bounds out of order: %q >= %q", lo, hi)
		}
	}
	return Rank(midpoint(string(lo), string(hi), hi == "")), nil
}

// midpoint computes a digit string strictly between a and b, treating a
// missing digit in a as '0'. When open is set b is ignored and treated as
// one past the largest digit.
func midpoint(a, b string, open bool) string {
	zero := rankDigits[0]
	if !open {
		n := 0
		for n < len(b) && digitAt(a, n, zero) == b[n] {
			n++
		}
		if n > 0 {
			rest := ""
			if n < len(a) {
				rest = a[n:]
			}
			return b[:n] + midpoint(rest, b[n:], false)
		}
	}

	digitA := 0
	if a != "" {
		digitA = strings.IndexByte(rankDigits, a[0])
	}
	digitB := len(rankDigits)
	if !open {
		digitB = strings.IndexByte(rankDigits, b[0])
	}

	if digitB-digitA > 1 {
		return string(rankDigits[(digitA+digitB+1)/2])
	}
	// consecutive first digits
	if !open && len(b) > 1 {
		return b[:1]
	}
	rest := ""
	if len(a) > 1 {
		rest = a[1:]
	}
	return string(rankDigits[digitA]) + midpoint(rest, "", true)
}

func digitAt(s string, i int, pad byte) byte {
	if i < len(s) {
		return s[i]
	}
	return pad
}
