// Package pathexpr tokenizes placement path and range expressions such as
// "proj/1..3", "../2", "/today/1" or "2025-12-01..2025-12-03".
package pathexpr

import (
	"strconv"
	"strings"

	"locus/internal/dateexpr"
	"locus/internal/domain"
)

// TokenKind is the variant of a path token
type TokenKind int

const (
	TokenDot TokenKind = iota
	TokenDotDot
	TokenDate
	TokenNumeric
	TokenIDOrAlias
	TokenPermanent
)

func (k TokenKind) String() string {
	switch k {
	case TokenDot:
		return "dot"
	case TokenDotDot:
		return "dotdot"
	case TokenDate:
		return "date"
	case TokenNumeric:
		return "numeric"
	case TokenIDOrAlias:
		return "idOrAlias"
	case TokenPermanent:
		return "permanent"
	default:
		return "unknown"
	}
}

// Token is one path segment. Text holds the raw segment; Index is set for
// numeric tokens.
type Token struct {
	Kind  TokenKind
	Text  string
	Index int
}

// DefinesHead reports whether the token can open an absolute expression
func (t Token) DefinesHead() bool {
	switch t.Kind {
	case TokenDate, TokenIDOrAlias, TokenPermanent:
		return true
	default:
		return false
	}
}

// Path is a tokenized path expression
type Path struct {
	Absolute bool
	Tokens   []Token
}

// Range is a tokenized range expression. To is nil for a single path.
type Range struct {
	From Path
	To   *Path
}

func (p Path) String() string {
	parts := make([]string, len(p.Tokens))
	for i, t := range p.Tokens {
		parts[i] = t.Text
	}
	s := strings.Join(parts, "/")
	if p.Absolute {
		return "/" + s
	}
	return s
}

func (r Range) String() string {
	if r.To == nil {
		return r.From.String()
	}
	return r.From.String() + ".." + r.To.String()
}

// IsSingleToken reports whether the path is exactly one token of kind k
func (p Path) IsSingleToken(k TokenKind) bool {
	return len(p.Tokens) == 1 && p.Tokens[0].Kind == k
}

// ParsePath tokenizes a single path. A leading "/" marks it absolute; a
// trailing "/" is ignored. Range separators are rejected here.
func ParsePath(text string) (Path, error) {
	segments, absolute, err := split(text)
	if err != nil {
		return Path{}, err
	}
	for _, seg := range segments {
		if isRangeSegment(seg) {
			return Path{}, &domain.SyntaxError{Input: text, Token: seg, Reason: "range not allowed here"}
		}
	}
	return tokenize(text, segments, absolute)
}

// ParseRange tokenizes a path or a from..to range. The first segment that
// contains ".." (and is not itself "..") splits the expression; segments
// before it prefix both endpoints: "p/1..3" is "p/1" to "p/3".
func ParseRange(text string) (Range, error) {
	segments, absolute, err := split(text)
	if err != nil {
		return Range{}, err
	}

	at := -1
	for i, seg := range segments {
		if !isRangeSegment(seg) {
			continue
		}
		if at >= 0 {
			return Range{}, &domain.SyntaxError{Input: text, Token: seg, Reason: "only one range separator allowed"}
		}
		at = i
	}

	if at < 0 {
		from, err := tokenize(text, segments, absolute)
		if err != nil {
			return Range{}, err
		}
		return Range{From: from}, nil
	}

	left, right, _ := strings.Cut(segments[at], "..")
	if left == "" || right == "" || strings.Contains(right, "..") {
		return Range{}, &domain.SyntaxError{Input: text, Token: segments[at], Reason: "range needs a start and an end"}
	}

	prefix := segments[:at]
	fromSegs := append(append([]string{}, prefix...), left)
	toSegs := append(append(append([]string{}, prefix...), right), segments[at+1:]...)

	from, err := tokenize(text, fromSegs, absolute)
	if err != nil {
		return Range{}, err
	}
	to, err := tokenize(text, toSegs, absolute)
	if err != nil {
		return Range{}, err
	}
	return Range{From: from, To: &to}, nil
}

func split(text string) ([]string, bool, error) {
	t := strings.TrimSpace(text)
	if t == "" {
		return nil, false, &domain.SyntaxError{Input: text, Reason: "empty expression"}
	}
	absolute := strings.HasPrefix(t, "/")
	t = strings.TrimPrefix(t, "/")
	t = strings.TrimSuffix(t, "/")
	if t == "" {
		if absolute {
			return nil, true, nil
		}
		return nil, false, &domain.SyntaxError{Input: text, Reason: "empty expression"}
	}
	segments := strings.Split(t, "/")
	for _, seg := range segments {
		if seg == "" {
			return nil, false, &domain.SyntaxError{Input: text, Reason: "empty path segment"}
		}
	}
	return segments, absolute, nil
}

func isRangeSegment(seg string) bool {
	return seg != ".." && strings.Contains(seg, "..")
}

func tokenize(input string, segments []string, absolute bool) (Path, error) {
	tokens := make([]Token, 0, len(segments))
	for _, seg := range segments {
		tok, err := classify(input, seg)
		if err != nil {
			return Path{}, err
		}
		tokens = append(tokens, tok)
	}
	return Path{Absolute: absolute, Tokens: tokens}, nil
}

func classify(input, seg string) (Token, error) {
	switch {
	case seg == ".":
		return Token{Kind: TokenDot, Text: seg}, nil
	case seg == "..":
		return Token{Kind: TokenDotDot, Text: seg}, nil
	case isDigits(seg):
		n, err := strconv.Atoi(seg)
		if err != nil || n < 1 {
			return Token{}, &domain.SyntaxError{Input: input, Token: seg, Reason: "section index must be a positive integer"}
		}
		return Token{Kind: TokenNumeric, Text: seg, Index: n}, nil
	case strings.EqualFold(seg, domain.PermanentKeyword) || strings.EqualFold(seg, "perm"):
		return Token{Kind: TokenPermanent, Text: seg}, nil
	case dateexpr.IsDateExpression(seg):
		return Token{Kind: TokenDate, Text: seg}, nil
	default:
		return Token{Kind: TokenIDOrAlias, Text: seg}, nil
	}
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}
