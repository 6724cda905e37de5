package domain

import (
	"errors"
	"fmt"
)

// Sentinel errors for domain-level failures
var (
	ErrInvalidSyntax = errors.New("invalid syntax")
	ErrIndexCorrupt  = errors.New("index corrupt")
)

// SyntaxError reports malformed input along with the offending token
type SyntaxError struct {
	Input  string
	Token  string
	Reason string
}

func (e *SyntaxError) Error() string {
	if e.Token != "" && e.Token != e.Input {
		return fmt.Sprintf("invalid %q in %q: %s", e.Token, e.Input, e.Reason)
	}
	return fmt.Sprintf("invalid %q: %s", e.Input, e.Reason)
}

func (e *SyntaxError) Is(target error) bool {
	return target == ErrInvalidSyntax
}
